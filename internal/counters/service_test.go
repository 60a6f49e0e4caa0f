package counters

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu        sync.Mutex
	counters  map[string][]Counter
	everSaved map[string]bool
	saves     int
	loadErr   error
}

func newMemStore() *memStore {
	return &memStore{
		counters:  map[string][]Counter{},
		everSaved: map[string]bool{},
	}
}

func (m *memStore) Load(_ context.Context, userID string) ([]Counter, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	stored := m.counters[userID]
	return append([]Counter(nil), stored...), m.everSaved[userID], nil
}

func (m *memStore) Update(_ context.Context, userID string, fn func([]Counter, bool) ([]Counter, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return m.loadErr
	}
	updated, err := fn(append([]Counter(nil), m.counters[userID]...), m.everSaved[userID])
	if err != nil {
		return err
	}
	m.saves++
	m.counters[userID] = append([]Counter(nil), updated...)
	m.everSaved[userID] = true
	return nil
}

func newTestService(store store, now time.Time) *Service {
	s := NewService(store)
	s.now = func() time.Time { return now }
	ids := 0
	s.newID = func() string {
		ids++
		return "counter-" + string(rune('0'+ids))
	}
	return s
}

func TestService_List_SeedsUntilEverSaved(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	s := newTestService(st, time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local))

	counters, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, counters, 3)
	assert.Equal(t, 0, st.saves, "seeding alone does not persist")

	// delete everything, the empty list must stay empty
	for _, c := range counters {
		require.NoError(t, s.Delete(ctx, "u1", c.ID))
	}
	counters, err = s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, counters)
}

func TestService_Increment_DailyReset(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	st.everSaved["u1"] = true
	st.counters["u1"] = []Counter{
		{ID: "c1", Name: "pushups", UserID: "u1", CurrentCount: 100, TodayCount: 20, LastResetDate: "2024-01-01"},
	}
	s := newTestService(st, time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local))

	c, err := s.Increment(ctx, "u1", "c1", 5)
	require.NoError(t, err)
	assert.Equal(t, 105, c.CurrentCount)
	assert.Equal(t, 5, c.TodayCount)
	assert.Equal(t, "2024-01-02", c.LastResetDate)
	assert.Equal(t, *c, st.counters["u1"][0])
}

func TestService_Decrement_Floor(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	st.everSaved["u1"] = true
	st.counters["u1"] = []Counter{
		{ID: "c1", UserID: "u1", CurrentCount: 3, TodayCount: 3, LastResetDate: "2024-01-02"},
	}
	s := newTestService(st, time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local))

	c, err := s.Decrement(ctx, "u1", "c1", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, c.CurrentCount)
	assert.Equal(t, 0, c.TodayCount)
}

func TestService_List_PassiveReset(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	st.everSaved["u1"] = true
	st.counters["u1"] = []Counter{
		{ID: "c1", UserID: "u1", CurrentCount: 30, TodayCount: 6, LastResetDate: "2024-01-01"},
	}
	s := newTestService(st, time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local))

	counters, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, counters, 1)
	assert.Equal(t, 0, counters[0].TodayCount)
	assert.Equal(t, 30, counters[0].CurrentCount)
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	st.everSaved["u1"] = true
	s := newTestService(st, time.Now())

	_, err := s.Increment(ctx, "u1", "missing", 1)
	assert.ErrorIs(t, err, ErrCounterNotFound)
	_, err = s.Increment(ctx, "u1", "missing", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = s.Decrement(ctx, "u1", "missing", -2)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = s.Create(ctx, "u1", "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.ErrorIs(t, s.Delete(ctx, "u1", "missing"), ErrCounterNotFound)
	_, err = s.GetStats(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrCounterNotFound)

	st.loadErr = errors.New("redis down")
	_, err = s.List(ctx, "u1")
	assert.ErrorContains(t, err, "load counters: redis down")
}

func TestService_CreateUpdateStats(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local)
	s := newTestService(st, now)

	created, err := s.Create(ctx, "u1", "  Squats ")
	require.NoError(t, err)
	assert.Equal(t, "Squats", created.Name)
	assert.Equal(t, "2024-03-05", created.LastResetDate)
	// seeded examples got persisted along with the new counter
	assert.Len(t, st.counters["u1"], 4)

	updated, err := s.Update(ctx, "u1", created.ID, "Front squats")
	require.NoError(t, err)
	assert.Equal(t, "Front squats", updated.Name)

	_, err = s.Increment(ctx, "u1", created.ID, 10)
	require.NoError(t, err)
	stats, err := s.GetStats(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Today)
	assert.Equal(t, 5, stats.Yesterday)
	assert.Equal(t, 10, stats.ThisWeek)
	assert.Equal(t, 10, stats.AllTime)
}

func TestService_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	s := newTestService(st, time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local))

	c, err := s.Create(ctx, "u1", "pullups")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Increment(ctx, "u1", c.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	counters, err := s.List(ctx, "u1")
	require.NoError(t, err)
	idx := indexOf(counters, c.ID)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, 20, counters[idx].CurrentCount)
	assert.Equal(t, 20, counters[idx].TodayCount)
}
