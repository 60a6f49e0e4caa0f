package catalog

import (
	"context"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exerciseColumns = `id, name, muscle_group, equipment, default_reps, default_sets,
	is_bodyweight, uses_weight, tracks_distance, is_time_based, description, lower_time_is_better`

// Repo reads builtin exercises (user_id IS NULL) together with the user's custom ones.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListExercises(ctx context.Context, userID string) (_ []workout.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+exerciseColumns+` FROM exercise
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY name;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanExercises(rows)
}

// AddCustom inserts a user exercise. Returns false when the id is already taken for that user.
func (r *Repo) AddCustom(ctx context.Context, userID string, ex workout.Exercise) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.add-custom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`INSERT INTO exercise (`+exerciseColumns+`, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT DO NOTHING;`,
		ex.ID, ex.Name, ex.MuscleGroup, ex.Equipment, ex.DefaultReps, ex.DefaultSets,
		ex.IsBodyweight, ex.UsesWeight, ex.TracksDistance, ex.IsTimeBased, ex.Description,
		ex.LowerTimeIsBetter, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanExercises(rows pgx.Rows) ([]workout.Exercise, error) {
	var exercises []workout.Exercise
	for rows.Next() {
		var ex workout.Exercise
		if err := rows.Scan(
			&ex.ID, &ex.Name, &ex.MuscleGroup, &ex.Equipment, &ex.DefaultReps, &ex.DefaultSets,
			&ex.IsBodyweight, &ex.UsesWeight, &ex.TracksDistance, &ex.IsTimeBased, &ex.Description,
			&ex.LowerTimeIsBetter,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	return exercises, rows.Err()
}
