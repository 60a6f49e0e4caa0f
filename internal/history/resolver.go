package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=resolver_mocks_test.go -package=history_test

const (
	DefaultLookback = 15
	maxParallel     = 8
)

type historySource interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]workout.WorkoutHistory, error)
	ListForExercise(ctx context.Context, userID, exerciseID string, limit int) ([]workout.WorkoutHistory, error)
}

type Resolver struct {
	source         historySource
	lookback       int
	metricsManager *metrics.Manager
}

func NewResolver(source historySource, lookback int, metricsManager *metrics.Manager) *Resolver {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Resolver{
		source:         source,
		lookback:       lookback,
		metricsManager: metricsManager,
	}
}

// Resolve scans the user's most recent workouts for the exercise.
func (r *Resolver) Resolve(ctx context.Context, userID string, exercise workout.Exercise) (_ map[int]SetHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "history.resolver.resolve")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exercise.ID))

	entries, err := r.source.ListRecent(ctx, userID, r.lookback)
	if err != nil {
		return nil, fmt.Errorf("list recent history: %w", err)
	}
	return Compute(entries, exercise), nil
}

// ResolveAll resolves every exercise concurrently and merges the results keyed
// by exercise ID. A failed lookup is logged and leaves its exercise out of the
// result. progress, if set, is called after each lookup with the processed count.
func (r *Resolver) ResolveAll(
	ctx context.Context,
	userID string,
	exercises []workout.Exercise,
	progress func(processed, total int),
) map[string]map[int]SetHistory {
	ctx, span := tracing.GlobalTracer.Start(ctx, "history.resolver.resolve-all")
	defer span.End()
	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))

	if r.metricsManager != nil {
		defer func(begin time.Time) {
			r.metricsManager.HistogramEnrichmentTime.Observe(time.Since(begin).Seconds())
		}(time.Now())
	}

	var (
		mu        sync.Mutex
		processed int
		merged    = make(map[string]map[int]SetHistory, len(exercises))
		total     = len(exercises)
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, ex := range exercises {
		g.Go(func() error {
			resolved, err := r.Resolve(gCtx, userID, ex)

			mu.Lock()
			defer mu.Unlock()
			processed++
			if err != nil {
				log.Warnf("resolve history for exercise [%s], user [%s]: %s", ex.ID, userID, err)
				if r.metricsManager != nil {
					r.metricsManager.CounterEnrichmentFailures.Inc()
				}
			} else {
				merged[ex.ID] = resolved
			}
			if progress != nil {
				progress(processed, total)
			}
			// never fail the group, one exercise must not cancel the others
			return nil
		})
	}
	_ = g.Wait()

	return merged
}

// LastNotesFor returns the notes from the newest workout containing the exercise.
func (r *Resolver) LastNotesFor(ctx context.Context, userID, exerciseID string) (_ string, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "history.resolver.last-notes")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := r.source.ListForExercise(ctx, userID, exerciseID, 1)
	if err != nil {
		return "", false, fmt.Errorf("list exercise history: %w", err)
	}
	if len(entries) == 0 {
		return "", false, nil
	}
	ce, ok := entries[0].Exercise(exerciseID)
	if !ok {
		return "", false, nil
	}
	return ce.Notes, true, nil
}
