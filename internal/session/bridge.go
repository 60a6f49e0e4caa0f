package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/2beens/liftlog/internal/workout"

	log "github.com/sirupsen/logrus"
)

const DefaultTickInterval = time.Second

var (
	ErrWorkoutConflict = errors.New("another workout is already active")
	ErrNoActiveWorkout = errors.New("no active workout")
)

type SnapshotStore interface {
	Save(ctx context.Context, userID string, snapshot Snapshot) error
	Load(ctx context.Context, userID string) (*Snapshot, error)
	Delete(ctx context.Context, userID string) error
}

type BridgeParams struct {
	UserID       string
	Store        SnapshotStore // optional
	TickInterval time.Duration
	Now          func() time.Time
}

// Bridge holds at most one active workout snapshot for a user, and drives
// the elapsed duration ticker while that workout runs.
type Bridge struct {
	mu           sync.Mutex
	userID       string
	snapshot     *Snapshot
	store        SnapshotStore
	tickInterval time.Duration
	now          func() time.Time

	listeners      map[int]func(duration string)
	nextListenerID int

	tickerCancel context.CancelFunc
	tickerDone   chan struct{}
}

func NewBridge(params BridgeParams) *Bridge {
	if params.TickInterval <= 0 {
		params.TickInterval = DefaultTickInterval
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Bridge{
		userID:       params.UserID,
		store:        params.Store,
		tickInterval: params.TickInterval,
		now:          params.Now,
		listeners:    map[int]func(string){},
	}
}

// StartWorkout registers a new active workout. An already active workout is
// never overwritten, ErrWorkoutConflict is returned instead.
func (b *Bridge) StartWorkout(ctx context.Context, routineID, routineName string, exercises []workout.WorkoutExercise) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.snapshot != nil && b.snapshot.IsActive {
		return ErrWorkoutConflict
	}

	b.snapshot = &Snapshot{
		RoutineID:   routineID,
		RoutineName: routineName,
		Exercises:   workout.CloneExercises(exercises),
		StartTime:   b.now(),
		IsActive:    true,
	}
	b.persistLocked(ctx)
	b.startTickerLocked()

	log.Debugf("user [%s] workout started [%s]", b.userID, routineName)
	return nil
}

func (b *Bridge) UpdateSession(ctx context.Context, routineID, routineName string, exercises []workout.WorkoutExercise) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.snapshot == nil {
		return ErrNoActiveWorkout
	}
	b.snapshot.RoutineID = routineID
	b.snapshot.RoutineName = routineName
	b.snapshot.Exercises = workout.CloneExercises(exercises)
	b.persistLocked(ctx)
	return nil
}

// GetWorkoutState returns a copy of the active snapshot, or nil.
func (b *Bridge) GetWorkoutState() *Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.snapshot == nil {
		return nil
	}
	c := b.snapshot.Clone()
	return &c
}

func (b *Bridge) IsActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot != nil && b.snapshot.IsActive
}

func (b *Bridge) PauseWorkout(ctx context.Context) error {
	b.mu.Lock()
	if b.snapshot == nil {
		b.mu.Unlock()
		return ErrNoActiveWorkout
	}
	if b.snapshot.IsPaused {
		b.mu.Unlock()
		return nil
	}

	pausedAt := b.now()
	b.snapshot.IsPaused = true
	b.snapshot.PausedAt = &pausedAt
	b.persistLocked(ctx)
	done := b.stopTickerLocked()
	b.mu.Unlock()

	waitStopped(done)
	return nil
}

func (b *Bridge) ResumeWorkout(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.snapshot == nil {
		return ErrNoActiveWorkout
	}
	if !b.snapshot.IsPaused {
		return nil
	}

	if b.snapshot.PausedAt != nil {
		b.snapshot.PausedTotal += b.now().Sub(*b.snapshot.PausedAt)
	}
	b.snapshot.IsPaused = false
	b.snapshot.PausedAt = nil
	b.persistLocked(ctx)
	b.startTickerLocked()
	return nil
}

// DiscardWorkout drops the active workout without saving anything.
func (b *Bridge) DiscardWorkout(ctx context.Context) {
	b.clear(ctx, "discarded")
}

// Clear drops the active workout after it was finished and saved elsewhere.
func (b *Bridge) Clear(ctx context.Context) {
	b.clear(ctx, "finished")
}

func (b *Bridge) clear(ctx context.Context, reason string) {
	b.mu.Lock()
	hadSnapshot := b.snapshot != nil
	b.snapshot = nil
	if hadSnapshot && b.store != nil {
		if err := b.store.Delete(ctx, b.userID); err != nil {
			log.Errorf("delete session snapshot for user [%s]: %s", b.userID, err)
		}
	}
	done := b.stopTickerLocked()
	b.mu.Unlock()

	waitStopped(done)
	if hadSnapshot {
		log.Debugf("user [%s] workout %s", b.userID, reason)
	}
}

func (b *Bridge) Elapsed() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.snapshot == nil {
		return 0
	}
	return b.snapshot.Elapsed(b.now())
}

func (b *Bridge) DurationString() string {
	return FormatDuration(b.Elapsed())
}

// Subscribe registers a listener for duration ticks. The returned func removes it.
func (b *Bridge) Subscribe(listener func(duration string)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextListenerID
	b.nextListenerID++
	b.listeners[id] = listener

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Restore adopts a snapshot persisted before a restart, unless one is already held.
func (b *Bridge) Restore(ctx context.Context) error {
	if b.store == nil {
		return nil
	}

	stored, err := b.store.Load(ctx, b.userID)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if stored == nil || b.snapshot != nil {
		return nil
	}
	b.snapshot = stored
	if stored.IsActive && !stored.IsPaused {
		b.startTickerLocked()
	}
	log.Debugf("user [%s] workout [%s] restored", b.userID, stored.RoutineName)
	return nil
}

// Close stops the ticker and keeps the snapshot.
func (b *Bridge) Close() {
	b.mu.Lock()
	done := b.stopTickerLocked()
	b.mu.Unlock()
	waitStopped(done)
}

func (b *Bridge) persistLocked(ctx context.Context) {
	if b.store == nil || b.snapshot == nil {
		return
	}
	if err := b.store.Save(ctx, b.userID, b.snapshot.Clone()); err != nil {
		log.Errorf("save session snapshot for user [%s]: %s", b.userID, err)
	}
}

func (b *Bridge) startTickerLocked() {
	if b.tickerCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	b.tickerCancel = cancel
	b.tickerDone = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(b.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.tick()
			}
		}
	}()
}

// stopTickerLocked cancels the ticker and returns the channel closed once the
// goroutine exits. Callers wait on it only after releasing the lock.
func (b *Bridge) stopTickerLocked() chan struct{} {
	if b.tickerCancel == nil {
		return nil
	}
	b.tickerCancel()
	done := b.tickerDone
	b.tickerCancel = nil
	b.tickerDone = nil
	return done
}

func waitStopped(done chan struct{}) {
	if done != nil {
		<-done
	}
}

func (b *Bridge) tick() {
	b.mu.Lock()
	if b.snapshot == nil || !b.snapshot.IsActive || b.snapshot.IsPaused {
		b.mu.Unlock()
		return
	}
	duration := FormatDuration(b.snapshot.Elapsed(b.now()))
	listeners := make([]func(string), 0, len(b.listeners))
	for _, l := range b.listeners {
		listeners = append(listeners, l)
	}
	b.mu.Unlock()

	for _, l := range listeners {
		l(duration)
	}
}
