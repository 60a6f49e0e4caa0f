package engine

import (
	"time"

	"github.com/2beens/liftlog/internal/workout"
)

type StatusKind string

const (
	StatusInitial StatusKind = "initial"
	StatusLoading StatusKind = "loading"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status tracks the last load, finish or save attempt. Error is retryable.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message,omitempty"`
}

func errorStatus(err error) Status {
	return Status{Kind: StatusError, Message: err.Error()}
}

type Progress struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
}

type RoutineUpdatePrompt struct {
	RoutineID   string                    `json:"routineId"`
	RoutineName string                    `json:"routineName"`
	Exercises   []workout.WorkoutExercise `json:"exercises"`
}

type CompletionStatus struct {
	TotalExercises      int      `json:"totalExercises"`
	CompletedExercises  []string `json:"completedExercises"`
	IncompleteExercises []string `json:"incompleteExercises"`
	TotalSets           int      `json:"totalSets"`
	CompletedSets       int      `json:"completedSets"`
	IsFullyCompleted    bool     `json:"isFullyCompleted"`
}

// completionOf computes status on demand. Exercises without sets are in neither list.
func completionOf(exercises []workout.WorkoutExercise) CompletionStatus {
	status := CompletionStatus{
		TotalExercises:      len(exercises),
		CompletedExercises:  []string{},
		IncompleteExercises: []string{},
	}
	for _, we := range exercises {
		status.TotalSets += len(we.Sets)
		status.CompletedSets += we.CompletedCount()
		if len(we.Sets) == 0 {
			continue
		}
		if we.IsFullyCompleted() {
			status.CompletedExercises = append(status.CompletedExercises, we.ID())
		} else {
			status.IncompleteExercises = append(status.IncompleteExercises, we.ID())
		}
	}
	status.IsFullyCompleted = len(status.IncompleteExercises) == 0 && status.CompletedSets > 0
	return status
}

type FinishResult struct {
	NeedsConfirmation   bool                    `json:"needsConfirmation"`
	IncompleteExercises []string                `json:"incompleteExercises,omitempty"`
	History             *workout.WorkoutHistory `json:"history,omitempty"`
	RoutineUpdatePrompt *RoutineUpdatePrompt    `json:"routineUpdatePrompt,omitempty"`
}

// View is an immutable copy of the engine state handed to callers and subscribers.
type View struct {
	Status              Status                    `json:"status"`
	Active              bool                      `json:"active"`
	Paused              bool                      `json:"paused"`
	RoutineID           string                    `json:"routineId,omitempty"`
	RoutineName         string                    `json:"routineName"`
	ColorHex            string                    `json:"colorHex,omitempty"`
	Exercises           []workout.WorkoutExercise `json:"exercises"`
	TotalVolume         float64                   `json:"totalVolume"`
	TotalSets           int                       `json:"totalSets"`
	Duration            string                    `json:"duration"`
	ReorderMode         bool                      `json:"reorderMode"`
	Modified            bool                      `json:"modified"`
	PendingReplace      string                    `json:"pendingReplace,omitempty"`
	PendingFinish       *FinishConfirmation       `json:"pendingFinish,omitempty"`
	RoutineUpdatePrompt *RoutineUpdatePrompt      `json:"routineUpdatePrompt,omitempty"`
	Enrichment          Progress                  `json:"enrichment"`
	PreviousNotes       map[string]string         `json:"previousNotes,omitempty"`
	SavedHistory        *workout.WorkoutHistory   `json:"savedHistory,omitempty"`
	// set while the engine is idle but the bridge still holds an active
	// workout, e.g. one restored after a restart
	Resumable *ResumableWorkout `json:"resumable,omitempty"`
}

type ResumableWorkout struct {
	RoutineID   string    `json:"routineId,omitempty"`
	RoutineName string    `json:"routineName"`
	StartedAt   time.Time `json:"startedAt"`
	Paused      bool      `json:"paused"`
	Duration    string    `json:"duration"`
}
