package history

import (
	"sort"

	"github.com/2beens/liftlog/internal/workout"
)

// SetHistory annotates one set position of an exercise.
type SetHistory struct {
	Previous *workout.SetValues `json:"previous,omitempty"`
	Best     *workout.SetValues `json:"best,omitempty"`
}

// Compute derives previous and best values per set position from the given
// history entries. Entries are ordered newest first before scanning.
// Positions without any data are absent from the result.
func Compute(entries []workout.WorkoutHistory, exercise workout.Exercise) map[int]SetHistory {
	ordered := make([]workout.WorkoutHistory, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.After(ordered[j].StartTime)
	})

	result := map[int]SetHistory{}
	candidates := map[int][]workout.SetValues{}
	previousFound := false

	for _, entry := range ordered {
		ce, ok := entry.Exercise(exercise.ID)
		if !ok {
			continue
		}
		for _, cs := range ce.Sets {
			values := cs.Values()
			if !previousFound {
				sh := result[cs.SetNumber]
				sh.Previous = &values
				result[cs.SetNumber] = sh
			}
			candidates[cs.SetNumber] = append(candidates[cs.SetNumber], values)
		}
		previousFound = true
	}

	for position, sets := range candidates {
		best, ok := bestOf(sets, exercise.LowerTimeIsBetter)
		if !ok {
			continue
		}
		sh := result[position]
		sh.Best = &best
		result[position] = sh
	}

	return result
}

type category int

const (
	categoryWeightDistance category = iota
	categoryWeightReps
	categoryDistance
	categoryTime
	categoryReps
)

func categoryOf(v workout.SetValues) category {
	switch {
	case v.Weight > 0 && v.Distance > 0:
		return categoryWeightDistance
	case v.Weight > 0:
		return categoryWeightReps
	case v.Distance > 0:
		return categoryDistance
	case v.Time > 0:
		return categoryTime
	default:
		return categoryReps
	}
}

func score(v workout.SetValues, c category) float64 {
	switch c {
	case categoryWeightDistance:
		return v.Weight * v.Distance
	case categoryWeightReps:
		return v.Weight * float64(v.Reps)
	case categoryDistance:
		return v.Distance
	case categoryTime:
		return float64(v.Time)
	default:
		return float64(v.Reps)
	}
}

// bestOf picks the best set from the highest priority non-empty category and
// compares only within it. Earlier sets win ties.
func bestOf(sets []workout.SetValues, lowerTimeIsBetter bool) (workout.SetValues, bool) {
	if len(sets) == 0 {
		return workout.SetValues{}, false
	}

	top := categoryReps
	for _, s := range sets {
		top = min(top, categoryOf(s))
	}

	var best workout.SetValues
	found := false
	for _, s := range sets {
		if categoryOf(s) != top {
			continue
		}
		if !found {
			best, found = s, true
			continue
		}
		current, candidate := score(best, top), score(s, top)
		if top == categoryTime && lowerTimeIsBetter {
			if candidate < current {
				best = s
			}
			continue
		}
		if candidate > current {
			best = s
		}
	}
	return best, found
}
