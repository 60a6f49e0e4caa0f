package engine

import (
	"context"
	"slices"

	"github.com/2beens/liftlog/internal/workout"
)

// Mutations only fail with ErrNoActiveSession. Requests that make no sense
// for the current list (unknown ids, duplicates, bad indexes) are ignored.

// mutate runs fn under the lock. fn reports whether it changed anything;
// unchanged sessions are neither pushed to the bridge nor published.
func (e *Engine) mutate(ctx context.Context, fn func() bool) error {
	e.mu.Lock()
	if e.phase != phaseActive {
		e.mu.Unlock()
		return ErrNoActiveSession
	}
	if !fn() {
		e.mu.Unlock()
		return nil
	}
	e.recomputeLocked()
	e.pushLocked(ctx)
	e.unlockAndNotify()
	return nil
}

func (e *Engine) indexOfLocked(exerciseID string) int {
	return slices.IndexFunc(e.exercises, func(we workout.WorkoutExercise) bool {
		return we.ID() == exerciseID
	})
}

func (e *Engine) updateExercise(
	ctx context.Context,
	exerciseID string,
	fn func(we workout.WorkoutExercise) (workout.WorkoutExercise, bool),
) error {
	return e.mutate(ctx, func() bool {
		i := e.indexOfLocked(exerciseID)
		if i < 0 {
			return false
		}
		updated, changed := fn(e.exercises[i])
		if !changed {
			return false
		}
		e.exercises[i] = updated
		return true
	})
}

func (e *Engine) updateSet(
	ctx context.Context,
	exerciseID string,
	setNumber int,
	fn func(ex workout.Exercise, s workout.ExerciseSet) workout.ExerciseSet,
) error {
	return e.updateExercise(ctx, exerciseID, func(we workout.WorkoutExercise) (workout.WorkoutExercise, bool) {
		j := we.SetIndex(setNumber)
		if j < 0 {
			return we, false
		}
		sets := slices.Clone(we.Sets)
		sets[j] = fn(we.Exercise, sets[j])
		return we.WithSets(sets), true
	})
}

// markModifiedLocked records a structural change of a routine based session.
func (e *Engine) markModifiedLocked() {
	if e.fromRoutine {
		e.modified = true
	}
}

// AddExercise appends the exercise with default sets. An exercise without an
// id gets one derived from its name; an id already in the workout is ignored.
func (e *Engine) AddExercise(ctx context.Context, exercise workout.Exercise) error {
	exercise = exercise.WithDerivedID()
	return e.mutate(ctx, func() bool {
		if exercise.ID == "" || e.indexOfLocked(exercise.ID) >= 0 {
			return false
		}
		e.exercises = append(e.exercises, workout.NewWorkoutExercise(exercise))
		e.markModifiedLocked()
		e.startEnrichmentLocked([]workout.Exercise{exercise})
		return true
	})
}

func (e *Engine) RemoveExercise(ctx context.Context, exerciseID string) error {
	return e.mutate(ctx, func() bool {
		i := e.indexOfLocked(exerciseID)
		if i < 0 {
			return false
		}
		e.exercises = slices.Delete(e.exercises, i, i+1)
		e.markModifiedLocked()
		if staged, ok := e.replace.pending(); ok && staged == exerciseID {
			e.replace.cancel()
		}
		return true
	})
}

// AddSet appends a set carrying the reps of the last set forward.
func (e *Engine) AddSet(ctx context.Context, exerciseID string) error {
	return e.updateExercise(ctx, exerciseID, func(we workout.WorkoutExercise) (workout.WorkoutExercise, bool) {
		n := len(we.Sets) + 1
		next := we.Exercise.DefaultSet(n)
		if len(we.Sets) > 0 {
			next = workout.ExerciseSet{
				SetNumber: n,
				Reps:      we.Sets[len(we.Sets)-1].Reps,
			}
		}
		sets := append(slices.Clone(we.Sets), next)
		return we.WithSets(sets), true
	})
}

// DeleteSet removes the set and renumbers the rest from 1.
func (e *Engine) DeleteSet(ctx context.Context, exerciseID string, setNumber int) error {
	return e.updateExercise(ctx, exerciseID, func(we workout.WorkoutExercise) (workout.WorkoutExercise, bool) {
		j := we.SetIndex(setNumber)
		if j < 0 {
			return we, false
		}
		sets := slices.Delete(slices.Clone(we.Sets), j, j+1)
		return we.WithSets(workout.Renumber(sets)), true
	})
}

func (e *Engine) UpdateWeight(ctx context.Context, exerciseID string, setNumber int, weight float64) error {
	if weight < 0 {
		return e.mutate(ctx, noChange)
	}
	return e.updateSet(ctx, exerciseID, setNumber, func(_ workout.Exercise, s workout.ExerciseSet) workout.ExerciseSet {
		return s.WithWeight(weight)
	})
}

func (e *Engine) UpdateReps(ctx context.Context, exerciseID string, setNumber int, reps int) error {
	if reps < 0 {
		return e.mutate(ctx, noChange)
	}
	return e.updateSet(ctx, exerciseID, setNumber, func(_ workout.Exercise, s workout.ExerciseSet) workout.ExerciseSet {
		return s.WithReps(reps)
	})
}

func (e *Engine) UpdateDistance(ctx context.Context, exerciseID string, setNumber int, distance float64) error {
	if distance < 0 {
		return e.mutate(ctx, noChange)
	}
	return e.updateSet(ctx, exerciseID, setNumber, func(_ workout.Exercise, s workout.ExerciseSet) workout.ExerciseSet {
		return s.WithDistance(distance)
	})
}

func (e *Engine) UpdateTime(ctx context.Context, exerciseID string, setNumber int, seconds int) error {
	if seconds < 0 {
		return e.mutate(ctx, noChange)
	}
	return e.updateSet(ctx, exerciseID, setNumber, func(ex workout.Exercise, s workout.ExerciseSet) workout.ExerciseSet {
		return s.WithTime(seconds, ex.LowerTimeIsBetter)
	})
}

// SetCompleted toggles completion; completing ratchets all best values.
func (e *Engine) SetCompleted(ctx context.Context, exerciseID string, setNumber int, completed bool) error {
	return e.updateSet(ctx, exerciseID, setNumber, func(ex workout.Exercise, s workout.ExerciseSet) workout.ExerciseSet {
		if completed && !s.IsCompleted {
			e.metricsManager.CounterSetsCompleted.Inc()
		}
		return s.WithCompleted(completed, ex.LowerTimeIsBetter)
	})
}

func (e *Engine) UpdateNotes(ctx context.Context, exerciseID, notes string) error {
	return e.updateExercise(ctx, exerciseID, func(we workout.WorkoutExercise) (workout.WorkoutExercise, bool) {
		if we.Notes == notes {
			return we, false
		}
		return we.WithNotes(notes), true
	})
}

func (e *Engine) ArrangeExercise(ctx context.Context) error {
	return e.mutate(ctx, func() bool {
		if e.reorderMode {
			return false
		}
		e.reorderMode = true
		return true
	})
}

func (e *Engine) ExitReorderMode(ctx context.Context) error {
	return e.mutate(ctx, func() bool {
		if !e.reorderMode {
			return false
		}
		e.reorderMode = false
		return true
	})
}

// ReorderExercises moves the exercise at index from to index to.
func (e *Engine) ReorderExercises(ctx context.Context, from, to int) error {
	return e.mutate(ctx, func() bool {
		n := len(e.exercises)
		if from == to || from < 0 || to < 0 || from >= n || to >= n {
			return false
		}
		moved := e.exercises[from]
		e.exercises = slices.Insert(slices.Delete(e.exercises, from, from+1), to, moved)
		e.markModifiedLocked()
		return true
	})
}

func (e *Engine) AddToSuperset(ctx context.Context, exerciseID string) error {
	return e.updateExercise(ctx, exerciseID, func(we workout.WorkoutExercise) (workout.WorkoutExercise, bool) {
		we.IsSuperset = !we.IsSuperset
		return we, true
	})
}

func (e *Engine) ToggleDropset(ctx context.Context, exerciseID string) error {
	return e.updateExercise(ctx, exerciseID, func(we workout.WorkoutExercise) (workout.WorkoutExercise, bool) {
		we.IsDropset = !we.IsDropset
		return we, true
	})
}

// ReplaceExercise stages the exercise to be swapped by ConfirmReplaceExercise.
func (e *Engine) ReplaceExercise(ctx context.Context, exerciseID string) error {
	return e.mutate(ctx, func() bool {
		if e.indexOfLocked(exerciseID) < 0 {
			return false
		}
		e.replace.stage(exerciseID)
		return true
	})
}

// ConfirmReplaceExercise swaps the staged exercise for replacement. The set
// count survives, values and history annotations are reset to the new
// exercise defaults. Notes and superset/dropset flags are kept.
func (e *Engine) ConfirmReplaceExercise(ctx context.Context, replacement workout.Exercise) error {
	replacement = replacement.WithDerivedID()
	return e.mutate(ctx, func() bool {
		targetID, ok := e.replace.take()
		if !ok || replacement.ID == "" {
			return ok
		}
		i := e.indexOfLocked(targetID)
		if i < 0 {
			return true
		}
		if j := e.indexOfLocked(replacement.ID); j >= 0 && j != i {
			// would duplicate an exercise already in the workout
			return true
		}

		old := e.exercises[i]
		sets := make([]workout.ExerciseSet, len(old.Sets))
		for k := range sets {
			sets[k] = replacement.DefaultSet(k + 1)
		}
		e.exercises[i] = workout.WorkoutExercise{
			Exercise:   replacement,
			Sets:       sets,
			Notes:      old.Notes,
			IsSuperset: old.IsSuperset,
			IsDropset:  old.IsDropset,
		}
		e.markModifiedLocked()
		return true
	})
}

func (e *Engine) CancelReplaceExercise(ctx context.Context) error {
	return e.mutate(ctx, func() bool {
		return e.replace.cancel()
	})
}

func noChange() bool {
	return false
}
