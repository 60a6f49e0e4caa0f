package workout

import (
	"slices"
	"time"
)

// WorkoutExercise is one exercise instance within a session or a routine.
type WorkoutExercise struct {
	Exercise   Exercise      `json:"exercise"`
	Sets       []ExerciseSet `json:"sets"`
	Notes      string        `json:"notes"`
	IsSuperset bool          `json:"isSuperset"`
	IsDropset  bool          `json:"isDropset"`
}

// NewWorkoutExercise builds a workout exercise with default sets.
func NewWorkoutExercise(e Exercise) WorkoutExercise {
	return WorkoutExercise{
		Exercise:   e,
		Sets:       e.DefaultSetList(),
		IsSuperset: e.IsSuperset,
		IsDropset:  e.IsDropset,
	}
}

func (we WorkoutExercise) ID() string {
	return we.Exercise.ID
}

// Clone deep-copies the sets slice so the result shares nothing with we.
func (we WorkoutExercise) Clone() WorkoutExercise {
	sets := make([]ExerciseSet, len(we.Sets))
	for i, s := range we.Sets {
		s.Previous = copyValues(s.Previous)
		s.Best = copyValues(s.Best)
		sets[i] = s
	}
	we.Sets = sets
	return we
}

func (we WorkoutExercise) WithSets(sets []ExerciseSet) WorkoutExercise {
	we.Sets = sets
	return we
}

func (we WorkoutExercise) WithNotes(notes string) WorkoutExercise {
	we.Notes = notes
	return we
}

func (we WorkoutExercise) CompletedCount() int {
	n := 0
	for _, s := range we.Sets {
		if s.IsCompleted {
			n++
		}
	}
	return n
}

// Volume is the sum of weight x reps over completed sets only.
func (we WorkoutExercise) Volume() float64 {
	var v float64
	for _, s := range we.Sets {
		if s.IsCompleted {
			v += s.Volume()
		}
	}
	return v
}

// IsFullyCompleted needs at least one set, all of them completed.
func (we WorkoutExercise) IsFullyCompleted() bool {
	completed := we.CompletedCount()
	return completed > 0 && completed == len(we.Sets)
}

func (we WorkoutExercise) SetIndex(setNumber int) int {
	return slices.IndexFunc(we.Sets, func(s ExerciseSet) bool {
		return s.SetNumber == setNumber
	})
}

// Renumber makes set numbers contiguous starting at 1, keeping order.
func Renumber(sets []ExerciseSet) []ExerciseSet {
	out := make([]ExerciseSet, len(sets))
	for i, s := range sets {
		out[i] = s.WithSetNumber(i + 1)
	}
	return out
}

// CloneExercises deep-copies a list of workout exercises.
func CloneExercises(list []WorkoutExercise) []WorkoutExercise {
	if list == nil {
		return nil
	}
	out := make([]WorkoutExercise, len(list))
	for i, we := range list {
		out[i] = we.Clone()
	}
	return out
}

// Workout is a routine: a named, reusable, user-owned template.
type Workout struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	UserID        string            `json:"userId"`
	Exercises     []WorkoutExercise `json:"exercises"`
	CreatedAt     time.Time         `json:"createdAt"`
	ColorHex      string            `json:"colorHex"`
	LastPerformed *time.Time        `json:"lastPerformed,omitempty"`
}

// TemplateExercises strips session state from the exercises:
// values are kept as targets, completion and history annotations are dropped.
func TemplateExercises(list []WorkoutExercise) []WorkoutExercise {
	out := make([]WorkoutExercise, len(list))
	for i, we := range list {
		sets := make([]ExerciseSet, len(we.Sets))
		for j, s := range we.Sets {
			sets[j] = ExerciseSet{
				SetNumber: j + 1,
				Weight:    s.Weight,
				Reps:      s.Reps,
				Distance:  s.Distance,
				Time:      s.Time,
			}
		}
		we.Sets = sets
		out[i] = we
	}
	return out
}
