package counters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type store interface {
	Load(ctx context.Context, userID string) ([]Counter, bool, error)
	Update(ctx context.Context, userID string, fn func(counters []Counter, everSaved bool) ([]Counter, error)) error
}

type Service struct {
	store store
	// injectable for tests, the local date of now() drives the daily reset
	now   func() time.Time
	newID func() string
}

func NewService(store store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// prepared applies the passive daily reset to stored counters.
// Users who never saved anything get the example counters.
func (s *Service) prepared(userID string, counters []Counter, everSaved bool) []Counter {
	now := s.now()
	if len(counters) == 0 && !everSaved {
		return exampleCounters(userID, now)
	}

	today := now.Format(DateLayout)
	for i := range counters {
		counters[i], _ = counters[i].loadReset(today)
	}
	return counters
}

func (s *Service) load(ctx context.Context, userID string) ([]Counter, error) {
	counters, everSaved, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load counters: %w", err)
	}
	return s.prepared(userID, counters, everSaved), nil
}

// update persists the result of change applied to the prepared counters.
func (s *Service) update(ctx context.Context, userID string, change func(counters []Counter) ([]Counter, error)) error {
	err := s.store.Update(ctx, userID, func(counters []Counter, everSaved bool) ([]Counter, error) {
		return change(s.prepared(userID, counters, everSaved))
	})
	if err != nil {
		return fmt.Errorf("update counters: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID string) (_ []Counter, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.counters.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	return s.load(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID, name string) (_ *Counter, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.counters.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	now := s.now()
	c := Counter{
		ID:            s.newID(),
		Name:          name,
		UserID:        userID,
		CreatedAt:     now,
		LastResetDate: now.Format(DateLayout),
	}
	err = s.update(ctx, userID, func(counters []Counter) ([]Counter, error) {
		return append(counters, c), nil
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("counter [%s] created for user [%s]", c.ID, userID)
	return &c, nil
}

func (s *Service) Update(ctx context.Context, userID, id, name string) (_ *Counter, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.counters.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	return s.modify(ctx, userID, id, func(c Counter, _ string) Counter {
		c.Name = name
		return c
	})
}

func (s *Service) Delete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.counters.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("counter.id", id))

	return s.update(ctx, userID, func(counters []Counter) ([]Counter, error) {
		idx := indexOf(counters, id)
		if idx < 0 {
			return nil, ErrCounterNotFound
		}
		return append(counters[:idx], counters[idx+1:]...), nil
	})
}

func (s *Service) Increment(ctx context.Context, userID, id string, amount int) (_ *Counter, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.counters.increment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.modify(ctx, userID, id, func(c Counter, today string) Counter {
		return c.incremented(amount, today)
	})
}

func (s *Service) Decrement(ctx context.Context, userID, id string, amount int) (_ *Counter, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.counters.decrement")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.modify(ctx, userID, id, func(c Counter, today string) Counter {
		return c.decremented(amount, today)
	})
}

func (s *Service) GetStats(ctx context.Context, userID, id string) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.counters.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	counters, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := indexOf(counters, id)
	if idx < 0 {
		return nil, ErrCounterNotFound
	}
	stats := counters[idx].Stats()
	return &stats, nil
}

func (s *Service) modify(
	ctx context.Context,
	userID, id string,
	change func(c Counter, today string) Counter,
) (*Counter, error) {
	var updated Counter
	err := s.update(ctx, userID, func(counters []Counter) ([]Counter, error) {
		idx := indexOf(counters, id)
		if idx < 0 {
			return nil, ErrCounterNotFound
		}
		updated = change(counters[idx], s.now().Format(DateLayout))
		counters[idx] = updated
		return counters, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func indexOf(counters []Counter, id string) int {
	for i := range counters {
		if counters[i].ID == id {
			return i
		}
	}
	return -1
}
