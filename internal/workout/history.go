package workout

import "time"

// CompletedSet is a persisted set. Only completed sets are ever stored.
type CompletedSet struct {
	SetNumber int     `json:"setNumber"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	Distance  float64 `json:"distance"`
	Time      int     `json:"time"`
}

func (cs CompletedSet) Values() SetValues {
	return SetValues{
		Weight:   cs.Weight,
		Reps:     cs.Reps,
		Distance: cs.Distance,
		Time:     cs.Time,
	}
}

type CompletedExercise struct {
	ExerciseID  string         `json:"exerciseId"`
	Name        string         `json:"name"`
	MuscleGroup string         `json:"muscleGroup"`
	Notes       string         `json:"notes"`
	Sets        []CompletedSet `json:"sets"`
}

// WorkoutHistory is an immutable record of a finished workout.
type WorkoutHistory struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	StartTime   time.Time           `json:"startTime"`
	EndTime     time.Time           `json:"endTime"`
	Exercises   []CompletedExercise `json:"exercises"`
	TotalVolume float64             `json:"totalVolume"`
	TotalSets   int                 `json:"totalSets"`
	ColorHex    string              `json:"colorHex"`
	RoutineID   string              `json:"routineId,omitempty"`
	UserID      string              `json:"userId"`
	ExerciseIDs []string            `json:"exerciseIds"`
}

// Exercise returns the completed exercise with the given ID, if present.
func (h WorkoutHistory) Exercise(exerciseID string) (CompletedExercise, bool) {
	for _, ce := range h.Exercises {
		if ce.ExerciseID == exerciseID {
			return ce, true
		}
	}
	return CompletedExercise{}, false
}

// NewWorkoutHistory keeps only completed sets, and only exercises that have
// at least one of them. Sets keep their session set numbers so that
// later lookups by set position line up with what was actually performed.
func NewWorkoutHistory(name string, start, end time.Time, exercises []WorkoutExercise) WorkoutHistory {
	h := WorkoutHistory{
		Name:        name,
		StartTime:   start,
		EndTime:     end,
		Exercises:   make([]CompletedExercise, 0, len(exercises)),
		ExerciseIDs: make([]string, 0, len(exercises)),
	}
	for _, we := range exercises {
		var sets []CompletedSet
		for _, s := range we.Sets {
			if !s.IsCompleted {
				continue
			}
			sets = append(sets, CompletedSet{
				SetNumber: s.SetNumber,
				Weight:    s.Weight,
				Reps:      s.Reps,
				Distance:  s.Distance,
				Time:      s.Time,
			})
			h.TotalVolume += s.Volume()
			h.TotalSets++
		}
		if len(sets) == 0 {
			continue
		}
		h.Exercises = append(h.Exercises, CompletedExercise{
			ExerciseID:  we.Exercise.ID,
			Name:        we.Exercise.Name,
			MuscleGroup: we.Exercise.MuscleGroup,
			Notes:       we.Notes,
			Sets:        sets,
		})
		h.ExerciseIDs = append(h.ExerciseIDs, we.Exercise.ID)
	}
	return h
}
