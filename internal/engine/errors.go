package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/routines"
	"github.com/2beens/liftlog/internal/session"
)

var (
	ErrNoActiveSession   = errors.New("no active workout session")
	ErrNoCompletedSets   = errors.New("workout has no completed sets")
	ErrEmptyRoutineName  = errors.New("routine name is empty")
	ErrNoExercises       = errors.New("workout has no exercises")
	ErrNothingToConfirm  = errors.New("nothing to confirm")
	ErrSessionInProgress = errors.New("engine already owns a session")
	ErrUnknownResolution = errors.New("unknown conflict resolution")

	// shared with the routine store so errors.Is works across both
	ErrUpgradeRequired = routines.ErrUpgradeRequired
	ErrRoutineNotFound = routines.ErrRoutineNotFound
	ErrRoutineExists   = routines.ErrRoutineExists
	ErrUnknownOwner    = routines.ErrUnknownOwner
)

// ConflictError is returned when a workout is started while another one is
// still active. The caller decides how to resolve it.
type ConflictError struct {
	ActiveRoutineID   string    `json:"activeRoutineId,omitempty"`
	ActiveRoutineName string    `json:"activeRoutineName"`
	StartedAt         time.Time `json:"startedAt"`
}

func newConflictError(active *session.Snapshot) *ConflictError {
	if active == nil {
		return &ConflictError{}
	}
	return &ConflictError{
		ActiveRoutineID:   active.RoutineID,
		ActiveRoutineName: active.RoutineName,
		StartedAt:         active.StartTime,
	}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("workout [%s] is already in progress", e.ActiveRoutineName)
}

func (e *ConflictError) Unwrap() error {
	return session.ErrWorkoutConflict
}

type Resolution string

const (
	ResolutionResume          Resolution = "resume"
	ResolutionDiscardAndStart Resolution = "discard"
	ResolutionCancel          Resolution = "cancel"
)

func ParseResolution(s string) (Resolution, error) {
	switch r := Resolution(s); r {
	case ResolutionResume, ResolutionDiscardAndStart, ResolutionCancel:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownResolution, s)
	}
}
