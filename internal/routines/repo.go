package routines

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"
	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrRoutineNotFound = errors.New("routine not found")
	ErrRoutineExists   = errors.New("routine already exists")
	ErrUnknownOwner    = errors.New("routine owner does not exist")
)

const routineColumns = `id, user_id, name, exercises, created_at, color_hex, last_performed`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetWorkoutByID(ctx context.Context, userID, id string) (_ *workout.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+routineColumns+` FROM routine WHERE user_id = $1 AND id = $2;`,
		userID, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines, err := scanRoutines(rows)
	if err != nil {
		return nil, err
	}
	if len(routines) == 0 {
		return nil, ErrRoutineNotFound
	}
	return &routines[0], nil
}

func (r *Repo) ListWorkouts(ctx context.Context, userID string) (_ []workout.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+routineColumns+` FROM routine WHERE user_id = $1 ORDER BY created_at;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRoutines(rows)
}

func (r *Repo) GetWorkoutCount(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM routine WHERE user_id = $1;`,
		userID,
	).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repo) CreateWorkout(ctx context.Context, w workout.Workout) (_ *workout.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("routine.id", w.ID))

	exercisesJson, err := json.Marshal(w.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO routine (`+routineColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		w.ID, w.UserID, w.Name, exercisesJson, w.CreatedAt, w.ColorHex, w.LastPerformed,
	)
	if pkg.IsUniqueViolationError(err) {
		return nil, ErrRoutineExists
	}
	if pkg.IsForeignKeyViolationError(err) {
		return nil, ErrUnknownOwner
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repo) UpdateWorkout(ctx context.Context, w workout.Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", w.ID))

	exercisesJson, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE routine SET name = $1, exercises = $2, color_hex = $3, last_performed = $4 WHERE user_id = $5 AND id = $6;`,
		w.Name, exercisesJson, w.ColorHex, w.LastPerformed, w.UserID, w.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

func (r *Repo) SetLastPerformed(ctx context.Context, userID, id string, at time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.set-last-performed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE routine SET last_performed = $1 WHERE user_id = $2 AND id = $3;`,
		at, userID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

func (r *Repo) DeleteWorkout(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM routine WHERE user_id = $1 AND id = $2;`,
		userID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

func scanRoutines(rows pgx.Rows) ([]workout.Workout, error) {
	var routines []workout.Workout
	for rows.Next() {
		var (
			w             workout.Workout
			exercisesJson []byte
		)
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.Name, &exercisesJson, &w.CreatedAt, &w.ColorHex, &w.LastPerformed,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if err := json.Unmarshal(exercisesJson, &w.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises: %w", err)
		}
		routines = append(routines, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return routines, nil
}
