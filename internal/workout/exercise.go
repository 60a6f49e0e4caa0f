package workout

import (
	"strings"
	"unicode"
)

const defaultSetsCount = 3

// Exercise is a catalog entry. It is referenced by value from sets and sessions.
type Exercise struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MuscleGroup    string `json:"muscleGroup"`
	Equipment      string `json:"equipment"`
	DefaultReps    int    `json:"defaultReps"`
	DefaultSets    int    `json:"defaultSets"`
	IsBodyweight   bool   `json:"isBodyweight"`
	UsesWeight     bool   `json:"usesWeight"`
	TracksDistance bool   `json:"tracksDistance"`
	IsTimeBased    bool   `json:"isTimeBased"`
	Description    string `json:"description"`
	IsSuperset     bool   `json:"isSuperset,omitempty"`
	IsDropset      bool   `json:"isDropset,omitempty"`
	// LowerTimeIsBetter flips the time comparison for sprints and timed runs.
	// Holds (planks etc.) leave it false, so longer counts as better.
	LowerTimeIsBetter bool `json:"lowerTimeIsBetter,omitempty"`
}

// DeriveID builds the stable slug used as exercise ID: lowercased name
// with all whitespace and punctuation removed.
func DeriveID(name string) string {
	return normalize(name)
}

// WithDerivedID returns the exercise with ID set from its name, if missing.
func (e Exercise) WithDerivedID() Exercise {
	if e.ID == "" {
		e.ID = DeriveID(e.Name)
	}
	return e
}

// Matches reports whether the free-text query is contained in the
// normalized name, equipment or muscle group. An empty query matches everything.
func (e Exercise) Matches(query string) bool {
	q := normalize(query)
	if q == "" {
		return true
	}
	return strings.Contains(normalize(e.Name), q) ||
		strings.Contains(normalize(e.Equipment), q) ||
		strings.Contains(normalize(e.MuscleGroup), q)
}

// RepBased is true for exercises measured primarily in repetitions.
func (e Exercise) RepBased() bool {
	return !e.IsTimeBased && !e.TracksDistance
}

// DefaultSet builds set number n populated per the measurement flags.
func (e Exercise) DefaultSet(n int) ExerciseSet {
	s := ExerciseSet{SetNumber: n}
	if e.RepBased() {
		s.Reps = e.DefaultReps
	}
	return s
}

// DefaultSetList builds the initial sets for a new workout exercise.
func (e Exercise) DefaultSetList() []ExerciseSet {
	count := e.DefaultSets
	if count <= 0 {
		count = defaultSetsCount
	}
	sets := make([]ExerciseSet, 0, count)
	for i := 1; i <= count; i++ {
		sets = append(sets, e.DefaultSet(i))
	}
	return sets
}

func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
