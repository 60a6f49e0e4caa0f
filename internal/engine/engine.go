package engine

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/history"
	"github.com/2beens/liftlog/internal/session"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=engine_mocks_test.go -package=engine

const defaultQuickName = "Quick Workout"

type sessionBridge interface {
	StartWorkout(ctx context.Context, routineID, routineName string, exercises []workout.WorkoutExercise) error
	UpdateSession(ctx context.Context, routineID, routineName string, exercises []workout.WorkoutExercise) error
	GetWorkoutState() *session.Snapshot
	PauseWorkout(ctx context.Context) error
	ResumeWorkout(ctx context.Context) error
	DiscardWorkout(ctx context.Context)
	Clear(ctx context.Context)
	Elapsed() time.Duration
	DurationString() string
}

type routineStore interface {
	GetWorkoutByID(ctx context.Context, userID, id string) (*workout.Workout, error)
	Create(ctx context.Context, userID, name string, exercises []workout.WorkoutExercise) (*workout.Workout, error)
	ReplaceExercises(ctx context.Context, userID, id string, exercises []workout.WorkoutExercise) error
	MarkPerformed(ctx context.Context, userID, id string, at time.Time) error
}

type historyStore interface {
	SaveWorkoutHistory(ctx context.Context, h workout.WorkoutHistory) (*workout.WorkoutHistory, error)
}

type historyResolver interface {
	ResolveAll(ctx context.Context, userID string, exercises []workout.Exercise, progress func(processed, total int)) map[string]map[int]history.SetHistory
	LastNotesFor(ctx context.Context, userID, exerciseID string) (string, bool, error)
}

type phase int

const (
	phaseIdle phase = iota
	phaseInitializing
	phaseActive
	phaseCommitting
	phaseEnded
)

type Params struct {
	UserID         string
	Bridge         sessionBridge
	Routines       routineStore
	Histories      historyStore
	Resolver       historyResolver // optional, no enrichment without it
	MetricsManager *metrics.Manager
	Now            func() time.Time
}

// StartRequest selects the entry mode: a routine when RoutineID is set, a quick workout otherwise.
type StartRequest struct {
	RoutineID string `json:"routineId"`
	Name      string `json:"name"`
}

func (r StartRequest) matches(active *session.Snapshot) bool {
	return active.RoutineID == r.RoutineID
}

// Engine drives one workout session for one user. All mutations are
// serialized by mu; history enrichment runs in the background and is merged
// only while the generation it was started with is still current.
type Engine struct {
	mu             sync.Mutex
	userID         string
	bridge         sessionBridge
	routines       routineStore
	histories      historyStore
	resolver       historyResolver
	metricsManager *metrics.Manager
	now            func() time.Time

	phase         phase
	status        Status
	routineID     string
	routineName   string
	colorHex      string
	fromRoutine   bool
	modified      bool
	exercises     []workout.WorkoutExercise
	totalVolume   float64
	totalSets     int
	reorderMode   bool
	replace       replaceFlow
	finish        finishFlow
	routinePrompt *RoutineUpdatePrompt
	savedHistory  *workout.WorkoutHistory
	finalDuration string
	previousNotes map[string]string

	generation     uint64
	enrichCtx      context.Context
	enrichCancel   context.CancelFunc
	enrichWG       sync.WaitGroup
	enrichProgress Progress

	listeners      map[int]func(View)
	nextListenerID int
}

func NewEngine(params Params) *Engine {
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Engine{
		userID:         params.UserID,
		bridge:         params.Bridge,
		routines:       params.Routines,
		histories:      params.Histories,
		resolver:       params.Resolver,
		metricsManager: params.MetricsManager,
		now:            params.Now,
		status:         Status{Kind: StatusInitial},
		previousNotes:  map[string]string{},
		listeners:      map[int]func(View){},
	}
}

// Start picks the entry mode from the bridge state. The same target as the
// active workout resumes it, a different one yields a *ConflictError.
func (e *Engine) Start(ctx context.Context, req StartRequest) error {
	if active := e.bridge.GetWorkoutState(); active != nil && active.IsActive {
		if !req.matches(active) {
			e.metricsManager.CounterSessionConflicts.Inc()
			return newConflictError(active)
		}
		return e.InitializeFromPausedSession(ctx)
	}
	if req.RoutineID != "" {
		return e.InitializeFromRoutine(ctx, req.RoutineID)
	}
	return e.InitializeQuick(ctx, req.Name)
}

// ResolveConflict applies the user's answer to a conflict returned by Start.
// DiscardAndStart needs an engine that does not own a session yet.
func (e *Engine) ResolveConflict(ctx context.Context, req StartRequest, resolution Resolution) error {
	switch resolution {
	case ResolutionCancel:
		return nil
	case ResolutionResume:
		return e.InitializeFromPausedSession(ctx)
	case ResolutionDiscardAndStart:
		e.mu.Lock()
		idle := e.phase == phaseIdle
		e.mu.Unlock()
		if !idle {
			return ErrSessionInProgress
		}
		if e.bridge.GetWorkoutState() != nil {
			e.bridge.DiscardWorkout(ctx)
			e.metricsManager.CounterSessionsDiscarded.Inc()
		}
		return e.Start(ctx, req)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownResolution, resolution)
	}
}

// InitializeFromRoutine publishes the routine exercises with default sets right
// away, then enriches them with history in the background. Only the first
// initialization of an engine has any effect.
func (e *Engine) InitializeFromRoutine(ctx context.Context, routineID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.initialize-from-routine")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", routineID))

	e.mu.Lock()
	if e.phase != phaseIdle {
		e.mu.Unlock()
		return nil
	}
	if e.userID == "" {
		e.mu.Unlock()
		return auth.ErrUserNotAuthenticated
	}
	e.phase = phaseInitializing
	e.status = Status{Kind: StatusLoading}
	e.unlockAndNotify()

	routine, err := e.routines.GetWorkoutByID(ctx, e.userID, routineID)
	if err != nil {
		e.mu.Lock()
		e.resetInitializingLocked()
		if errors.Is(err, ErrRoutineNotFound) {
			e.status = Status{Kind: StatusInitial}
			e.unlockAndNotify()
			return ErrRoutineNotFound
		}
		e.status = errorStatus(err)
		e.unlockAndNotify()
		return fmt.Errorf("load routine: %w", err)
	}

	exercises := sessionExercises(routine.Exercises)
	if err := e.bridge.StartWorkout(ctx, routine.ID, routine.Name, exercises); err != nil {
		e.mu.Lock()
		e.resetInitializingLocked()
		e.status = Status{Kind: StatusInitial}
		e.unlockAndNotify()
		return e.bridgeStartError(err)
	}

	e.mu.Lock()
	if e.phase != phaseInitializing {
		// discarded while the routine was loading
		e.mu.Unlock()
		e.bridge.DiscardWorkout(ctx)
		return ErrNoActiveSession
	}
	e.beginSessionLocked(routine.ID, routine.Name, exercises)
	e.colorHex = routine.ColorHex
	e.fromRoutine = true
	e.startEnrichmentLocked(exerciseDefinitions(exercises))
	e.metricsManager.CounterSessionsStarted.WithLabelValues("routine").Inc()
	e.unlockAndNotify()

	log.Debugf("user [%s] started routine [%s]", e.userID, routine.ID)
	return nil
}

// InitializeFromPausedSession adopts the bridge snapshot as is. The elapsed
// clock keeps running from the stored start time.
func (e *Engine) InitializeFromPausedSession(ctx context.Context) error {
	e.mu.Lock()
	if e.phase != phaseIdle {
		e.mu.Unlock()
		return nil
	}

	active := e.bridge.GetWorkoutState()
	if active == nil {
		e.mu.Unlock()
		return ErrNoActiveSession
	}

	e.beginSessionLocked(active.RoutineID, active.RoutineName, active.Exercises)
	e.fromRoutine = active.RoutineID != ""
	e.metricsManager.CounterSessionsStarted.WithLabelValues("resume").Inc()
	e.unlockAndNotify()

	log.Debugf("user [%s] resumed workout [%s]", e.userID, active.RoutineName)
	return nil
}

// InitializeQuick starts an ad-hoc workout with no exercises. It is registered
// with the bridge right away so it can be resumed.
func (e *Engine) InitializeQuick(ctx context.Context, name string) error {
	e.mu.Lock()
	if e.phase != phaseIdle {
		e.mu.Unlock()
		return nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultQuickName
	}

	if err := e.bridge.StartWorkout(ctx, "", name, nil); err != nil {
		e.mu.Unlock()
		return e.bridgeStartError(err)
	}

	e.beginSessionLocked("", name, []workout.WorkoutExercise{})
	e.metricsManager.CounterSessionsStarted.WithLabelValues("quick").Inc()
	e.unlockAndNotify()
	return nil
}

// resetInitializingLocked lets a failed initialization be retried.
func (e *Engine) resetInitializingLocked() {
	if e.phase == phaseInitializing {
		e.phase = phaseIdle
	}
}

func (e *Engine) bridgeStartError(err error) error {
	if errors.Is(err, session.ErrWorkoutConflict) {
		e.metricsManager.CounterSessionConflicts.Inc()
		return newConflictError(e.bridge.GetWorkoutState())
	}
	return fmt.Errorf("start workout: %w", err)
}

func (e *Engine) beginSessionLocked(routineID, routineName string, exercises []workout.WorkoutExercise) {
	e.phase = phaseActive
	e.status = Status{Kind: StatusInitial}
	e.routineID = routineID
	e.routineName = routineName
	e.exercises = workout.CloneExercises(exercises)
	e.modified = false
	e.reorderMode = false
	e.replace = replaceFlow{}
	e.finish = finishFlow{}
	e.routinePrompt = nil
	e.savedHistory = nil

	e.generation++
	e.enrichCtx, e.enrichCancel = context.WithCancel(context.Background())
	e.enrichProgress = Progress{}

	e.recomputeLocked()
	e.metricsManager.GaugeActiveSessions.Inc()
}

// endSessionLocked makes any in-flight enrichment stale.
func (e *Engine) endSessionLocked() {
	if e.enrichCancel != nil {
		e.enrichCancel()
		e.enrichCancel = nil
	}
	e.generation++
	if e.phase == phaseActive || e.phase == phaseCommitting {
		e.metricsManager.GaugeActiveSessions.Dec()
	}
	e.phase = phaseEnded
	e.reorderMode = false
	e.replace = replaceFlow{}
	e.finish = finishFlow{}
}

func (e *Engine) recomputeLocked() {
	e.totalVolume = 0
	e.totalSets = 0
	for _, we := range e.exercises {
		e.totalVolume += we.Volume()
		e.totalSets += we.CompletedCount()
	}
}

// pushLocked hands the current exercises to the bridge. Failures only cost resumability.
func (e *Engine) pushLocked(ctx context.Context) {
	if e.phase != phaseActive {
		return
	}
	if err := e.bridge.UpdateSession(ctx, e.routineID, e.routineName, e.exercises); err != nil {
		log.Warnf("user [%s] push session snapshot: %s", e.userID, err)
	}
}

// sessionExercises materializes routine exercises with fresh default sets,
// keeping the routine set count. Duplicate exercise ids are dropped.
func sessionExercises(template []workout.WorkoutExercise) []workout.WorkoutExercise {
	out := make([]workout.WorkoutExercise, 0, len(template))
	seen := make(map[string]bool, len(template))
	for _, we := range template {
		ex := we.Exercise.WithDerivedID()
		if ex.ID == "" || seen[ex.ID] {
			continue
		}
		seen[ex.ID] = true

		fresh := workout.NewWorkoutExercise(ex)
		if len(we.Sets) > 0 {
			sets := make([]workout.ExerciseSet, len(we.Sets))
			for i := range sets {
				sets[i] = ex.DefaultSet(i + 1)
			}
			fresh.Sets = sets
		}
		fresh.IsSuperset = we.IsSuperset
		fresh.IsDropset = we.IsDropset
		out = append(out, fresh)
	}
	return out
}

func exerciseDefinitions(list []workout.WorkoutExercise) []workout.Exercise {
	out := make([]workout.Exercise, len(list))
	for i, we := range list {
		out[i] = we.Exercise
	}
	return out
}

func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

func (e *Engine) viewLocked() View {
	v := View{
		Status:              e.status,
		Active:              e.phase == phaseActive,
		RoutineID:           e.routineID,
		RoutineName:         e.routineName,
		ColorHex:            e.colorHex,
		Exercises:           workout.CloneExercises(e.exercises),
		TotalVolume:         e.totalVolume,
		TotalSets:           e.totalSets,
		ReorderMode:         e.reorderMode,
		Modified:            e.modified,
		PendingFinish:       e.finish.pending(),
		RoutineUpdatePrompt: e.routinePrompt,
		Enrichment:          e.enrichProgress,
		PreviousNotes:       maps.Clone(e.previousNotes),
		SavedHistory:        e.savedHistory,
	}
	if v.Exercises == nil {
		v.Exercises = []workout.WorkoutExercise{}
	}
	v.PendingReplace, _ = e.replace.pending()

	switch e.phase {
	case phaseActive, phaseCommitting:
		v.Duration = e.bridge.DurationString()
		if active := e.bridge.GetWorkoutState(); active != nil {
			v.Paused = active.IsPaused
		}
	case phaseEnded:
		v.Duration = e.finalDuration
	}

	if e.phase == phaseIdle || e.phase == phaseEnded {
		if active := e.bridge.GetWorkoutState(); active != nil && active.IsActive {
			v.Resumable = &ResumableWorkout{
				RoutineID:   active.RoutineID,
				RoutineName: active.RoutineName,
				StartedAt:   active.StartTime,
				Paused:      active.IsPaused,
				Duration:    e.bridge.DurationString(),
			}
		}
	}
	return v
}

func (e *Engine) CompletionStatus() CompletionStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return completionOf(e.exercises)
}

// Active reports whether the engine owns a running session.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase == phaseActive || e.phase == phaseCommitting
}

// Ended is true after finish or discard. An ended engine is never reused.
func (e *Engine) Ended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase == phaseEnded
}

// Subscribe registers a listener called with a fresh view after every change.
// Listeners run outside the engine lock. The returned func removes it.
func (e *Engine) Subscribe(listener func(View)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextListenerID
	e.nextListenerID++
	e.listeners[id] = listener

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

// unlockAndNotify releases mu and passes the view taken under it to listeners.
func (e *Engine) unlockAndNotify() {
	view, listeners := e.snapshotForListenersLocked()
	e.mu.Unlock()
	for _, l := range listeners {
		l(view)
	}
}

func (e *Engine) snapshotForListenersLocked() (View, []func(View)) {
	if len(e.listeners) == 0 {
		return View{}, nil
	}
	listeners := make([]func(View), 0, len(e.listeners))
	for _, l := range e.listeners {
		listeners = append(listeners, l)
	}
	return e.viewLocked(), listeners
}

// WaitForEnrichment blocks until all background history lookups are done.
func (e *Engine) WaitForEnrichment() {
	e.enrichWG.Wait()
}

// Close cancels background enrichment and waits for it. The session itself
// stays in the bridge.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.enrichCancel != nil {
		e.enrichCancel()
	}
	e.mu.Unlock()
	e.enrichWG.Wait()
}
