package routines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=routines_test

var (
	ErrEmptyName       = errors.New("routine name is empty")
	ErrNoExercises     = errors.New("routine has no exercises")
	ErrUpgradeRequired = errors.New("routine limit reached, upgrade required")
)

type routinesRepo interface {
	GetWorkoutByID(ctx context.Context, userID, id string) (*workout.Workout, error)
	ListWorkouts(ctx context.Context, userID string) ([]workout.Workout, error)
	GetWorkoutCount(ctx context.Context, userID string) (int, error)
	CreateWorkout(ctx context.Context, w workout.Workout) (*workout.Workout, error)
	UpdateWorkout(ctx context.Context, w workout.Workout) error
	SetLastPerformed(ctx context.Context, userID, id string, at time.Time) error
	DeleteWorkout(ctx context.Context, userID, id string) error
}

type quotaGate interface {
	CanCreateRoutine(ctx context.Context, userID string, currentCount int) (bool, error)
}

type Service struct {
	repo    routinesRepo
	quota   quotaGate
	palette []string
	now     func() time.Time
}

func NewService(repo routinesRepo, quota quotaGate) *Service {
	return &Service{
		repo:    repo,
		quota:   quota,
		palette: DefaultPalette,
		now:     time.Now,
	}
}

// Create validates, checks the routine quota, assigns the next free palette
// color and stores the routine. Session state is stripped from the exercises.
func (s *Service) Create(ctx context.Context, userID, name string, exercises []workout.WorkoutExercise) (_ *workout.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.routines.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}

	count, err := s.repo.GetWorkoutCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count routines: %w", err)
	}

	allowed, err := s.quota.CanCreateRoutine(ctx, userID, count)
	if err != nil {
		return nil, fmt.Errorf("check routine quota: %w", err)
	}
	if !allowed {
		return nil, ErrUpgradeRequired
	}

	existing, err := s.repo.ListWorkouts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}

	usedColors := make([]string, 0, len(existing))
	for _, w := range existing {
		if w.ColorHex != "" {
			usedColors = append(usedColors, w.ColorHex)
		}
	}

	created, err := s.repo.CreateWorkout(ctx, workout.Workout{
		Name:      name,
		UserID:    userID,
		Exercises: workout.TemplateExercises(exercises),
		CreatedAt: s.now(),
		ColorHex:  AssignColor(s.palette, usedColors),
	})
	if err != nil {
		return nil, fmt.Errorf("create routine: %w", err)
	}

	log.Debugf("routine [%s] created for user [%s] with color %s", created.ID, userID, created.ColorHex)
	return created, nil
}

// GetWorkoutByID returns ErrRoutineNotFound for unknown ids.
func (s *Service) GetWorkoutByID(ctx context.Context, userID, id string) (*workout.Workout, error) {
	return s.repo.GetWorkoutByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]workout.Workout, error) {
	return s.repo.ListWorkouts(ctx, userID)
}

// Update replaces name and exercises, keeping ownership, color and creation time.
func (s *Service) Update(ctx context.Context, userID, id, name string, exercises []workout.WorkoutExercise) (_ *workout.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.routines.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}

	current, err := s.repo.GetWorkoutByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	current.Name = name
	current.Exercises = workout.TemplateExercises(exercises)
	if err := s.repo.UpdateWorkout(ctx, *current); err != nil {
		return nil, fmt.Errorf("update routine: %w", err)
	}
	return current, nil
}

// ReplaceExercises overwrites only the exercise list of a routine.
func (s *Service) ReplaceExercises(ctx context.Context, userID, id string, exercises []workout.WorkoutExercise) error {
	current, err := s.repo.GetWorkoutByID(ctx, userID, id)
	if err != nil {
		return err
	}
	current.Exercises = workout.TemplateExercises(exercises)
	return s.repo.UpdateWorkout(ctx, *current)
}

func (s *Service) MarkPerformed(ctx context.Context, userID, id string, at time.Time) error {
	return s.repo.SetLastPerformed(ctx, userID, id, at)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.DeleteWorkout(ctx, userID, id)
}
