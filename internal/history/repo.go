package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrHistoryNotFound = errors.New("workout history not found")

const historyColumns = `id, user_id, name, start_time, end_time, exercises, total_volume, total_sets, color_hex, routine_id, exercise_ids`

// Repo is the append-only store of finished workouts.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) SaveWorkoutHistory(ctx context.Context, h workout.WorkoutHistory) (_ *workout.WorkoutHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("history.id", h.ID))

	exercisesJson, err := json.Marshal(h.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_history
				(`+historyColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11);`,
		h.ID, h.UserID, h.Name, h.StartTime, h.EndTime, exercisesJson,
		h.TotalVolume, h.TotalSets, h.ColorHex, h.RoutineID, h.ExerciseIDs,
	)
	if err != nil {
		return nil, err
	}

	return &h, nil
}

// ListRecent returns the user's newest workouts first.
func (r *Repo) ListRecent(ctx context.Context, userID string, limit int) (_ []workout.WorkoutHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.list-recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+historyColumns+` FROM workout_history
			WHERE user_id = $1
			ORDER BY start_time DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHistories(rows)
}

// ListForExercise returns the user's newest workouts containing the exercise.
func (r *Repo) ListForExercise(ctx context.Context, userID, exerciseID string, limit int) (_ []workout.WorkoutHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.list-for-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+historyColumns+` FROM workout_history
			WHERE user_id = $1 AND $2 = ANY(exercise_ids)
			ORDER BY start_time DESC
			LIMIT $3;`,
		userID, exerciseID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHistories(rows)
}

func (r *Repo) Get(ctx context.Context, userID, id string) (_ *workout.WorkoutHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("history.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+historyColumns+` FROM workout_history WHERE user_id = $1 AND id = $2;`,
		userID, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories, err := scanHistories(rows)
	if err != nil {
		return nil, err
	}
	if len(histories) == 0 {
		return nil, ErrHistoryNotFound
	}
	return &histories[0], nil
}

func scanHistories(rows pgx.Rows) ([]workout.WorkoutHistory, error) {
	var histories []workout.WorkoutHistory
	for rows.Next() {
		var (
			h             workout.WorkoutHistory
			exercisesJson []byte
			routineID     *string
		)
		if err := rows.Scan(
			&h.ID, &h.UserID, &h.Name, &h.StartTime, &h.EndTime, &exercisesJson,
			&h.TotalVolume, &h.TotalSets, &h.ColorHex, &routineID, &h.ExerciseIDs,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if err := json.Unmarshal(exercisesJson, &h.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises: %w", err)
		}
		if routineID != nil {
			h.RoutineID = *routineID
		}
		histories = append(histories, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return histories, nil
}
