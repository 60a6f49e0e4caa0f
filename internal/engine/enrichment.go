package engine

import (
	"context"

	"github.com/2beens/liftlog/internal/history"
	"github.com/2beens/liftlog/internal/workout"

	log "github.com/sirupsen/logrus"
)

// startEnrichmentLocked resolves history for the exercises in the background.
// The result is merged only if the session generation did not change meanwhile.
func (e *Engine) startEnrichmentLocked(exercises []workout.Exercise) {
	if e.resolver == nil || len(exercises) == 0 || e.enrichCtx == nil {
		return
	}

	gen := e.generation
	ctx := e.enrichCtx
	userID := e.userID
	e.enrichProgress.Total += len(exercises)

	e.enrichWG.Add(1)
	go func() {
		defer e.enrichWG.Done()

		resolved := e.resolver.ResolveAll(ctx, userID, exercises, func(_, _ int) {
			e.enrichmentStepDone(gen)
		})
		notes := e.lastNotes(ctx, userID, exercises)
		e.mergeEnrichment(ctx, gen, resolved, notes)
	}()
}

func (e *Engine) enrichmentStepDone(gen uint64) {
	e.mu.Lock()
	if gen != e.generation {
		e.mu.Unlock()
		return
	}
	e.enrichProgress.Processed++
	e.unlockAndNotify()
}

func (e *Engine) lastNotes(ctx context.Context, userID string, exercises []workout.Exercise) map[string]string {
	notes := map[string]string{}
	for _, ex := range exercises {
		if ctx.Err() != nil {
			break
		}
		n, found, err := e.resolver.LastNotesFor(ctx, userID, ex.ID)
		if err != nil {
			log.Warnf("last notes for exercise [%s], user [%s]: %s", ex.ID, userID, err)
			continue
		}
		if found && n != "" {
			notes[ex.ID] = n
		}
	}
	return notes
}

func (e *Engine) mergeEnrichment(
	ctx context.Context,
	gen uint64,
	resolved map[string]map[int]history.SetHistory,
	notes map[string]string,
) {
	e.mu.Lock()
	if gen != e.generation || e.phase != phaseActive {
		e.mu.Unlock()
		e.metricsManager.CounterStaleEnrichments.Inc()
		log.Debugf("user [%s] dropped stale history enrichment", e.userID)
		return
	}

	for i, we := range e.exercises {
		byPosition, ok := resolved[we.ID()]
		if !ok {
			continue
		}
		e.exercises[i] = applyHistory(we, byPosition)
	}
	for id, n := range notes {
		e.previousNotes[id] = n
	}

	e.recomputeLocked()
	e.pushLocked(ctx)
	e.unlockAndNotify()
}

// applyHistory attaches previous/best per set position. Sets the user has
// not touched yet are pre-populated from previous. Completed sets keep
// the best values ratcheted during this session.
func applyHistory(we workout.WorkoutExercise, byPosition map[int]history.SetHistory) workout.WorkoutExercise {
	sets := make([]workout.ExerciseSet, len(we.Sets))
	lowerTime := we.Exercise.LowerTimeIsBetter
	for i, s := range we.Sets {
		h, ok := byPosition[s.SetNumber]
		if !ok {
			sets[i] = s
			continue
		}
		untouched := !s.IsCompleted && s.Values() == we.Exercise.DefaultSet(s.SetNumber).Values()
		updated := s.WithHistory(h.Previous, h.Best, untouched)
		if s.IsCompleted {
			// best reached earlier in this session survives a lower current value
			updated.Best = workout.MergeBest(updated.Best, s.Best, lowerTime)
			updated = updated.WithCompleted(false, lowerTime).WithCompleted(true, lowerTime)
		}
		sets[i] = updated
	}
	return we.WithSets(sets)
}
