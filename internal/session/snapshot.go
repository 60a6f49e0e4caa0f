package session

import (
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/workout"
)

// Snapshot is the one workout currently in progress.
type Snapshot struct {
	RoutineID   string                    `json:"routineId,omitempty"`
	RoutineName string                    `json:"routineName"`
	Exercises   []workout.WorkoutExercise `json:"exercises"`
	StartTime   time.Time                 `json:"startTime"`
	IsActive    bool                      `json:"isActive"`
	IsPaused    bool                      `json:"isPaused"`
	PausedAt    *time.Time                `json:"pausedAt,omitempty"`
	PausedTotal time.Duration             `json:"pausedTotal"`
}

func (s Snapshot) Clone() Snapshot {
	c := s
	c.Exercises = workout.CloneExercises(s.Exercises)
	if s.PausedAt != nil {
		pausedAt := *s.PausedAt
		c.PausedAt = &pausedAt
	}
	return c
}

// Elapsed is the time since start, paused intervals excluded.
func (s Snapshot) Elapsed(now time.Time) time.Duration {
	end := now
	if s.IsPaused && s.PausedAt != nil {
		end = *s.PausedAt
	}
	elapsed := end.Sub(s.StartTime) - s.PausedTotal
	return max(0, elapsed)
}

// FormatDuration renders mm:ss, or h:mm:ss once past the hour.
func FormatDuration(d time.Duration) string {
	total := int(d / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
