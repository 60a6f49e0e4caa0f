//go:build integration_test || all_tests

package integration_testing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/liftlog/internal/counters"
	"github.com/2beens/liftlog/internal/engine"
	"github.com/2beens/liftlog/internal/workout"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRoutineWorkoutFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.login(ctx, t)

	bench := workout.NewWorkoutExercise(workout.Exercise{
		ID:          "benchpress",
		Name:        "Bench Press",
		DefaultReps: 8,
		DefaultSets: 2,
		UsesWeight:  true,
	})
	var routine workout.Workout
	s.doJSON(ctx, t, http.MethodPost, "/routines", token, map[string]any{
		"name":      "Push " + gofakeit.Word(),
		"exercises": []workout.WorkoutExercise{bench},
	}, http.StatusCreated, &routine)
	require.NotEmpty(t, routine.ID)
	require.NotEmpty(t, routine.ColorHex)

	var view engine.View
	s.doJSON(ctx, t, http.MethodPost, "/session/start", token, engine.StartRequest{RoutineID: routine.ID}, http.StatusOK, &view)
	require.True(t, view.Active)
	assert.Equal(t, routine.ID, view.RoutineID)
	require.Len(t, view.Exercises, 1)
	require.Len(t, view.Exercises[0].Sets, 2)

	for set := 1; set <= 2; set++ {
		s.doJSON(ctx, t, http.MethodPut, fmt.Sprintf("/session/exercises/benchpress/sets/%d", set), token, map[string]any{
			"weight":    100,
			"reps":      8,
			"completed": true,
		}, http.StatusOK, &view)
	}
	assert.Equal(t, float64(1600), view.TotalVolume)

	var result engine.FinishResult
	s.doJSON(ctx, t, http.MethodPost, "/session/finish", token, nil, http.StatusOK, &result)
	assert.False(t, result.NeedsConfirmation)
	require.NotNil(t, result.History)
	assert.Equal(t, 2, result.History.TotalSets)
	assert.Equal(t, []string{"benchpress"}, result.History.ExerciseIDs)

	var histories []workout.WorkoutHistory
	s.doJSON(ctx, t, http.MethodGet, "/history", token, nil, http.StatusOK, &histories)
	require.NotEmpty(t, histories)
	assert.Equal(t, result.History.ID, histories[0].ID)
	assert.Equal(t, routine.ID, histories[0].RoutineID)

	var performed workout.Workout
	s.doJSON(ctx, t, http.MethodGet, "/routines/"+routine.ID, token, nil, http.StatusOK, &performed)
	assert.NotNil(t, performed.LastPerformed)

	// no active session anymore
	status, _ := s.doRequest(ctx, t, http.MethodPost, "/session/pause", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestSessionConflict() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.login(ctx, t)

	var view engine.View
	s.doJSON(ctx, t, http.MethodPost, "/session/start", token, engine.StartRequest{Name: "Morning"}, http.StatusOK, &view)
	s.doJSON(ctx, t, http.MethodPost, "/session/exercises", token, workout.Exercise{
		ID:          "squat",
		Name:        "Squat",
		DefaultReps: 5,
		DefaultSets: 3,
		UsesWeight:  true,
	}, http.StatusOK, &view)

	status, body := s.doRequest(ctx, t, http.MethodPost, "/session/start", token, engine.StartRequest{RoutineID: "missing"})
	require.Equal(t, http.StatusConflict, status, string(body))

	s.doJSON(ctx, t, http.MethodPost, "/session/conflict/resume", token, engine.StartRequest{RoutineID: "missing"}, http.StatusOK, &view)
	assert.Equal(t, "Morning", view.RoutineName)
	require.Len(t, view.Exercises, 1)

	status, _ = s.doRequest(ctx, t, http.MethodPost, "/session/discard", token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func (s *IntegrationTestSuite) TestRoutineLimit() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.login(ctx, t)

	var existing []workout.Workout
	s.doJSON(ctx, t, http.MethodGet, "/routines", token, nil, http.StatusOK, &existing)

	plank := workout.NewWorkoutExercise(workout.Exercise{ID: "plank", Name: "Plank", IsTimeBased: true, DefaultSets: 1})
	for i := len(existing); i < 2; i++ {
		var created workout.Workout
		s.doJSON(ctx, t, http.MethodPost, "/routines", token, map[string]any{
			"name":      fmt.Sprintf("Core %d %s", i, gofakeit.UUID()),
			"exercises": []workout.WorkoutExercise{plank},
		}, http.StatusCreated, &created)
		defer func() {
			status, _ := s.doRequest(ctx, t, http.MethodDelete, "/routines/"+created.ID, token, nil)
			assert.Equal(t, http.StatusNoContent, status)
		}()
	}

	status, body := s.doRequest(ctx, t, http.MethodPost, "/routines", token, map[string]any{
		"name":      "One too many",
		"exercises": []workout.WorkoutExercise{plank},
	})
	assert.Equal(t, http.StatusPaymentRequired, status, string(body))
}

func (s *IntegrationTestSuite) TestCounters() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.login(ctx, t)

	var c counters.Counter
	s.doJSON(ctx, t, http.MethodPost, "/counters", token, map[string]string{"name": gofakeit.HipsterWord()}, http.StatusCreated, &c)
	require.NotEmpty(t, c.ID)

	s.doJSON(ctx, t, http.MethodPost, "/counters/"+c.ID+"/increment", token, map[string]int{"amount": 20}, http.StatusOK, &c)
	s.doJSON(ctx, t, http.MethodPost, "/counters/"+c.ID+"/decrement", token, nil, http.StatusOK, &c)
	assert.Equal(t, 19, c.CurrentCount)
	assert.Equal(t, 19, c.TodayCount)

	var stats counters.Stats
	s.doJSON(ctx, t, http.MethodGet, "/counters/"+c.ID+"/stats", token, nil, http.StatusOK, &stats)
	assert.Equal(t, 19, stats.Today)
	assert.Equal(t, 19, stats.AllTime)

	status, _ := s.doRequest(ctx, t, http.MethodDelete, "/counters/"+c.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, status)
}
