package workout

// SetValues holds the measured values of a set.
type SetValues struct {
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
	Distance float64 `json:"distance"`
	Time     int     `json:"time"` // seconds
}

func (v SetValues) IsZero() bool {
	return v.Weight == 0 && v.Reps == 0 && v.Distance == 0 && v.Time == 0
}

// ExerciseSet is one set of an active session.
// Previous and Best are history annotations and may be nil.
type ExerciseSet struct {
	SetNumber   int        `json:"setNumber"`
	Weight      float64    `json:"weight"`
	Reps        int        `json:"reps"`
	Distance    float64    `json:"distance"`
	Time        int        `json:"time"`
	IsCompleted bool       `json:"isCompleted"`
	Previous    *SetValues `json:"previous,omitempty"`
	Best        *SetValues `json:"best,omitempty"`
}

func (s ExerciseSet) Values() SetValues {
	return SetValues{
		Weight:   s.Weight,
		Reps:     s.Reps,
		Distance: s.Distance,
		Time:     s.Time,
	}
}

func (s ExerciseSet) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

func (s ExerciseSet) WithWeight(w float64) ExerciseSet {
	s.Weight = w
	if s.IsCompleted {
		s.Best = ratchetWeight(s.Best, w)
	}
	return s
}

func (s ExerciseSet) WithReps(r int) ExerciseSet {
	s.Reps = r
	if s.IsCompleted {
		s.Best = ratchetReps(s.Best, r)
	}
	return s
}

func (s ExerciseSet) WithDistance(d float64) ExerciseSet {
	s.Distance = d
	if s.IsCompleted {
		s.Best = ratchetDistance(s.Best, d)
	}
	return s
}

func (s ExerciseSet) WithTime(t int, lowerIsBetter bool) ExerciseSet {
	s.Time = t
	if s.IsCompleted {
		s.Best = ratchetTime(s.Best, t, lowerIsBetter)
	}
	return s
}

// WithCompleted toggles completion. On transition to completed all four
// best values are ratcheted against the current values.
func (s ExerciseSet) WithCompleted(completed bool, lowerTimeIsBetter bool) ExerciseSet {
	wasCompleted := s.IsCompleted
	s.IsCompleted = completed
	if completed && !wasCompleted {
		s.Best = ratchetWeight(s.Best, s.Weight)
		s.Best = ratchetReps(s.Best, s.Reps)
		s.Best = ratchetDistance(s.Best, s.Distance)
		s.Best = ratchetTime(s.Best, s.Time, lowerTimeIsBetter)
	}
	return s
}

func (s ExerciseSet) WithSetNumber(n int) ExerciseSet {
	s.SetNumber = n
	return s
}

// WithHistory attaches previous/best annotations. When the set still holds
// untouched values, non-zero previous values are used to pre-populate it.
func (s ExerciseSet) WithHistory(previous, best *SetValues, prefill bool) ExerciseSet {
	s.Previous = copyValues(previous)
	s.Best = copyValues(best)
	if !prefill || previous == nil || s.IsCompleted {
		return s
	}
	if previous.Weight > 0 {
		s.Weight = previous.Weight
	}
	if previous.Reps > 0 {
		s.Reps = previous.Reps
	}
	if previous.Distance > 0 {
		s.Distance = previous.Distance
	}
	if previous.Time > 0 {
		s.Time = previous.Time
	}
	return s
}

// MergeBest combines two best annotations field by field, keeping the
// better value of each. Either side may be nil.
func MergeBest(a, b *SetValues, lowerTimeIsBetter bool) *SetValues {
	if a == nil {
		return copyValues(b)
	}
	if b == nil {
		return copyValues(a)
	}
	merged := ratchetWeight(a, b.Weight)
	merged = ratchetReps(merged, b.Reps)
	merged = ratchetDistance(merged, b.Distance)
	return ratchetTime(merged, b.Time, lowerTimeIsBetter)
}

func copyValues(v *SetValues) *SetValues {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func ratchetBase(best *SetValues) *SetValues {
	if best == nil {
		return &SetValues{}
	}
	c := *best
	return &c
}

func ratchetWeight(best *SetValues, w float64) *SetValues {
	b := ratchetBase(best)
	b.Weight = max(b.Weight, w)
	return b
}

func ratchetReps(best *SetValues, r int) *SetValues {
	b := ratchetBase(best)
	b.Reps = max(b.Reps, r)
	return b
}

func ratchetDistance(best *SetValues, d float64) *SetValues {
	b := ratchetBase(best)
	b.Distance = max(b.Distance, d)
	return b
}

// ratchetTime moves best time up, or down for lower-is-better exercises.
// Zero means "no time recorded" and never wins a lower-is-better comparison.
func ratchetTime(best *SetValues, t int, lowerIsBetter bool) *SetValues {
	b := ratchetBase(best)
	if !lowerIsBetter {
		b.Time = max(b.Time, t)
		return b
	}
	if t > 0 && (b.Time == 0 || t < b.Time) {
		b.Time = t
	}
	return b
}
