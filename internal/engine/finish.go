package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/session"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	log "github.com/sirupsen/logrus"
)

// RequestFinish saves the workout when every exercise is complete. Otherwise
// a confirmation is staged and reported back; nothing is saved until
// ConfirmFinish. Zero completed sets fail with ErrNoCompletedSets.
func (e *Engine) RequestFinish(ctx context.Context) (*FinishResult, error) {
	e.mu.Lock()
	if e.phase != phaseActive {
		e.mu.Unlock()
		return nil, ErrNoActiveSession
	}

	status := completionOf(e.exercises)
	if status.CompletedSets == 0 {
		e.mu.Unlock()
		return nil, ErrNoCompletedSets
	}
	if !status.IsFullyCompleted {
		e.finish.stage(status.IncompleteExercises)
		e.unlockAndNotify()
		return &FinishResult{
			NeedsConfirmation:   true,
			IncompleteExercises: status.IncompleteExercises,
		}, nil
	}

	return e.commit(ctx)
}

// ConfirmFinish saves a workout whose finish was staged by RequestFinish.
func (e *Engine) ConfirmFinish(ctx context.Context) (*FinishResult, error) {
	e.mu.Lock()
	if e.phase != phaseActive {
		e.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	if !e.finish.take() {
		e.mu.Unlock()
		return nil, ErrNothingToConfirm
	}
	// sets may have been uncompleted after staging
	if completionOf(e.exercises).CompletedSets == 0 {
		e.unlockAndNotify()
		return nil, ErrNoCompletedSets
	}

	return e.commit(ctx)
}

func (e *Engine) CancelFinish() {
	e.mu.Lock()
	if !e.finish.cancel() {
		e.mu.Unlock()
		return
	}
	e.unlockAndNotify()
}

// commit is entered with mu held and releases it. Only completed sets are saved.
func (e *Engine) commit(ctx context.Context) (_ *FinishResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if e.userID == "" {
		e.mu.Unlock()
		return nil, auth.ErrUserNotAuthenticated
	}

	end := e.now()
	start := end
	if active := e.bridge.GetWorkoutState(); active != nil {
		start = active.StartTime
	}
	duration := e.bridge.Elapsed()

	record := workout.NewWorkoutHistory(e.routineName, start, end, e.exercises)
	record.UserID = e.userID
	record.RoutineID = e.routineID
	record.ColorHex = e.colorHex

	var prompt *RoutineUpdatePrompt
	if e.fromRoutine && e.modified && e.routineID != "" {
		prompt = &RoutineUpdatePrompt{
			RoutineID:   e.routineID,
			RoutineName: e.routineName,
			Exercises:   workout.TemplateExercises(e.exercises),
		}
	}
	userID, routineID := e.userID, e.routineID

	e.phase = phaseCommitting
	e.status = Status{Kind: StatusLoading}
	e.unlockAndNotify()

	saved, err := e.histories.SaveWorkoutHistory(ctx, record)
	if err != nil {
		e.mu.Lock()
		e.phase = phaseActive
		e.status = errorStatus(err)
		e.unlockAndNotify()
		return nil, fmt.Errorf("save workout history: %w", err)
	}

	if routineID != "" {
		// logged only, the history record is already stored
		if err := e.routines.MarkPerformed(ctx, userID, routineID, end); err != nil {
			log.Errorf("mark routine [%s] performed for user [%s]: %s", routineID, userID, err)
		}
	}
	e.bridge.Clear(ctx)

	e.mu.Lock()
	e.endSessionLocked()
	e.status = Status{Kind: StatusSuccess}
	e.savedHistory = saved
	e.routinePrompt = prompt
	e.finalDuration = session.FormatDuration(duration)
	e.metricsManager.CounterSessionsFinished.Inc()
	e.metricsManager.HistogramWorkoutDurations.Observe(duration.Seconds())
	e.unlockAndNotify()

	log.Debugf("user [%s] finished workout [%s]: %d sets", userID, saved.Name, saved.TotalSets)
	return &FinishResult{
		History:             saved,
		RoutineUpdatePrompt: prompt,
	}, nil
}

// Discard drops the session and the bridge snapshot without saving anything.
func (e *Engine) Discard(ctx context.Context) {
	e.mu.Lock()
	if e.phase == phaseCommitting {
		e.mu.Unlock()
		return
	}
	wasActive := e.phase == phaseActive
	e.endSessionLocked()
	e.exercises = nil
	e.recomputeLocked()
	e.routinePrompt = nil
	e.savedHistory = nil
	e.status = Status{Kind: StatusInitial}
	e.finalDuration = ""
	view, listeners := e.snapshotForListenersLocked()
	e.mu.Unlock()

	// the bridge waits for its ticker to stop, never under mu
	e.bridge.DiscardWorkout(ctx)
	if wasActive {
		e.metricsManager.CounterSessionsDiscarded.Inc()
	}
	for _, l := range listeners {
		l(view)
	}
}

func (e *Engine) Pause(ctx context.Context) error {
	return e.pauseOrResume(ctx, e.bridge.PauseWorkout)
}

func (e *Engine) Resume(ctx context.Context) error {
	return e.pauseOrResume(ctx, e.bridge.ResumeWorkout)
}

func (e *Engine) pauseOrResume(ctx context.Context, fn func(ctx context.Context) error) error {
	if !e.Active() {
		return ErrNoActiveSession
	}
	if err := fn(ctx); err != nil {
		if errors.Is(err, session.ErrNoActiveWorkout) {
			return ErrNoActiveSession
		}
		return err
	}
	e.mu.Lock()
	e.unlockAndNotify()
	return nil
}

// SaveAsRoutine stores the session exercises as a new routine. It works on an
// active session and on a finished one. A quick session becomes bound to the
// created routine.
func (e *Engine) SaveAsRoutine(ctx context.Context, name string) (_ *workout.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.save-as-routine")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRoutineName
	}

	e.mu.Lock()
	if len(e.exercises) == 0 {
		e.mu.Unlock()
		return nil, ErrNoExercises
	}
	if e.userID == "" {
		e.mu.Unlock()
		return nil, auth.ErrUserNotAuthenticated
	}
	exercises := workout.CloneExercises(e.exercises)
	userID := e.userID
	e.status = Status{Kind: StatusLoading}
	e.unlockAndNotify()

	created, err := e.routines.Create(ctx, userID, name, exercises)
	if err != nil {
		e.mu.Lock()
		e.status = errorStatus(err)
		e.unlockAndNotify()
		return nil, fmt.Errorf("create routine: %w", err)
	}

	e.mu.Lock()
	e.status = Status{Kind: StatusSuccess}
	if e.phase == phaseActive && e.routineID == "" {
		e.routineID = created.ID
		e.routineName = created.Name
		e.colorHex = created.ColorHex
		e.fromRoutine = true
		e.modified = false
		e.pushLocked(ctx)
	}
	e.unlockAndNotify()
	return created, nil
}

// UpdateRoutineFromSession writes the finished session structure back to its
// routine. It is the accepting answer to a RoutineUpdatePrompt.
func (e *Engine) UpdateRoutineFromSession(ctx context.Context) error {
	e.mu.Lock()
	prompt := e.routinePrompt
	userID := e.userID
	e.mu.Unlock()

	if prompt == nil {
		return ErrNothingToConfirm
	}
	if err := e.routines.ReplaceExercises(ctx, userID, prompt.RoutineID, prompt.Exercises); err != nil {
		return fmt.Errorf("update routine: %w", err)
	}

	e.mu.Lock()
	e.routinePrompt = nil
	e.unlockAndNotify()
	return nil
}

// DismissRoutineUpdate is the declining answer to a RoutineUpdatePrompt.
func (e *Engine) DismissRoutineUpdate() {
	e.mu.Lock()
	if e.routinePrompt == nil {
		e.mu.Unlock()
		return
	}
	e.routinePrompt = nil
	e.unlockAndNotify()
}
