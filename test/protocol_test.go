//go:build integration

package test

import (
	"context"
	"net/http"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/aresprotocol/internal/protocol"
	"github.com/2beens/aresprotocol/internal/state"
)

func testProfile() state.UserProfile {
	return state.UserProfile{
		Name:              gofakeit.Name(),
		Age:               31,
		Weight:            86,
		Height:            182,
		Gender:            state.GenderMale,
		BodyType:          state.BodyTypeMesomorph,
		UnitSystem:        state.UnitSystemMetric,
		SelectedDays:      []int{0, 1, 2, 3, 4, 5, 6},
		Goal:              state.GoalCutting,
		CurrentBodyFat:    18,
		CardioPreference:  []string{"Walking"},
		CuisinePreference: "Mediterranean",
		Timezone:          "UTC",
	}
}

func (s *IntegrationTestSuite) TestProtocol_OnboardAndTrain() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := s.register(ctx, t)

	// nothing stored before onboarding
	resp := s.do(ctx, t, http.MethodGet, "/v1/state", sess.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	profile := testProfile()
	var onboarded state.AppState
	s.doJSON(ctx, t, http.MethodPost, "/v1/protocol/onboard", sess.Token, profile, &onboarded, http.StatusOK)
	require.True(t, onboarded.IsOnboarded)
	require.NotNil(t, onboarded.Profile)
	assert.Equal(t, sess.Email, onboarded.Profile.Email)
	assert.Equal(t, 80.0, onboarded.Profile.GoalWeight)
	require.Len(t, onboarded.Routines, 1)
	assert.True(t, onboarded.Routines[0].IsOfficial)
	require.Len(t, onboarded.DailyMeals, 2)

	// the stored blob is encrypted
	var payload string
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT payload FROM user_state WHERE user_id = $1`, sess.UserID,
	).Scan(&payload))
	assert.NotContains(t, payload, profile.Name)
	assert.NotContains(t, payload, "Barbell Bench Press")

	var today protocol.TodayView
	s.doJSON(ctx, t, http.MethodGet, "/v1/protocol/today", sess.Token, nil, &today, http.StatusOK)
	require.NotNil(t, today.Workout)
	assert.False(t, today.Completed)

	s.doJSON(ctx, t, http.MethodPost, "/v1/protocol/workouts/start", sess.Token, protocol.StartWorkoutRequest{}, nil, http.StatusOK)

	var result protocol.CompleteWorkoutResult
	s.doJSON(ctx, t, http.MethodPost, "/v1/protocol/workouts/complete", sess.Token, protocol.CompleteWorkoutRequest{
		DurationSecs: 1800,
		Logs: map[string][]state.ExerciseLog{
			"0": {
				{Weight: "100", Reps: "5", RIR: "2", Completed: true, Type: state.SetTypeNormal},
				{Weight: "100", Reps: "5", RIR: "1", Completed: true, Type: state.SetTypeNormal},
			},
		},
	}, &result, http.StatusOK)
	assert.Equal(t, 1000.0, result.Volume)
	assert.Equal(t, 2, result.Sets)

	s.doJSON(ctx, t, http.MethodGet, "/v1/protocol/today", sess.Token, nil, &today, http.StatusOK)
	assert.True(t, today.Completed)
	assert.Equal(t, state.DayStatusWorkoutOnly, today.Status)

	var setsLogged int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM exercise_log WHERE user_id = $1`, sess.UserID,
	).Scan(&setsLogged))
	assert.Equal(t, 2, setsLogged)

	var eventTypes []string
	rows, err := s.DB.QueryContext(ctx, `SELECT type FROM gymstats_event WHERE user_id = $1 ORDER BY id`, sess.UserID)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var et string
		require.NoError(t, rows.Scan(&et))
		eventTypes = append(eventTypes, et)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"plan_synthesized", "training_finished"}, eventTypes)
}

func (s *IntegrationTestSuite) TestProtocol_MealsAndDiet() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := s.register(ctx, t)

	var onboarded state.AppState
	s.doJSON(ctx, t, http.MethodPost, "/v1/protocol/onboard", sess.Token, testProfile(), &onboarded, http.StatusOK)

	for _, meal := range onboarded.DailyMeals {
		s.doJSON(ctx, t, http.MethodPost, "/v1/protocol/meals/"+meal.ID+"/toggle", sess.Token, nil, nil, http.StatusOK)
	}
	s.doJSON(ctx, t, http.MethodPost, "/v1/protocol/meals/no-such-meal/toggle", sess.Token, nil, nil, http.StatusNotFound)

	var regenerated state.AppState
	s.doJSON(ctx, t, http.MethodPost, "/v1/protocol/diet/regenerate", sess.Token, nil, &regenerated, http.StatusOK)
	require.Len(t, regenerated.DailyMeals, 1)
	assert.Equal(t, "Eggs", regenerated.DailyMeals[0].Name)
	assert.False(t, regenerated.DailyMeals[0].Checked)

	s.doJSON(ctx, t, http.MethodPost, "/v1/protocol/weight", sess.Token, protocol.WeightRequest{Weight: 84.5}, nil, http.StatusOK)

	var stored state.AppState
	s.doJSON(ctx, t, http.MethodGet, "/v1/state", sess.Token, nil, &stored, http.StatusOK)
	assert.Equal(t, 84.5, stored.Profile.Weight)
}

func (s *IntegrationTestSuite) TestProtocol_NotOnboarded() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := s.register(ctx, t)
	s.doJSON(ctx, t, http.MethodGet, "/v1/protocol/today", sess.Token, nil, nil, http.StatusNotFound)

	invalid := testProfile()
	invalid.SelectedDays = []int{9}
	s.doJSON(ctx, t, http.MethodPost, "/v1/protocol/onboard", sess.Token, invalid, nil, http.StatusBadRequest)
}

func (s *IntegrationTestSuite) TestCatalog_Public() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var exercises []state.ExerciseMetadata
	s.doJSON(ctx, t, http.MethodGet, "/v1/catalog/exercises?q=bench%20press", "", nil, &exercises, http.StatusOK)
	require.NotEmpty(t, exercises)

	found := false
	for _, e := range exercises {
		if strings.EqualFold(e.Name, "Barbell Bench Press") {
			found = true
		}
	}
	assert.True(t, found)
}
