//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/2beens/aresprotocol/internal/auth"
)

const testPassword = "correct-horse-battery"

// fakePlan is what the fake provider answers to plan synthesis.
const fakePlan = `{
  "workoutPlan": [
    {"dayName": "Day 1", "focus": "Push", "exercises": [
      {"name": "Barbell Bench Press", "sets": 3, "reps": "8-10", "instructions": "Control the descent.", "category": "Compound"}
    ]},
    {"dayName": "Day 2", "focus": "Pull", "exercises": [
      {"name": "Chest Supported T-Bar Row", "sets": 3, "reps": "10", "instructions": "Squeeze at the top.", "category": "Compound"}
    ]}
  ],
  "dietPlan": [
    {"name": "Oats", "calories": 500, "protein": 30, "carbs": 70, "fats": 10, "fiber": 8},
    {"name": "Chicken Rice", "calories": 700, "protein": 55, "carbs": 80, "fats": 15, "fiber": 5}
  ],
  "goalWeight": 80,
  "targetBodyFat": 12,
  "cardioRecommendation": "Walk 8k steps daily."
}`

const fakeMeals = `[{"name": "Eggs", "calories": 400, "protein": 30, "carbs": 5, "fats": 25, "fiber": 1}]`

// fakeChatCompletions answers like an OpenAI compatible server: meal arrays for
// diet prompts, the fixed plan otherwise.
func fakeChatCompletions() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		content := fakePlan
		switch {
		case strings.Contains(string(body), "image_url"):
			content = "Balanced physique, keep training."
		case strings.Contains(string(body), "Generate a daily diet plan"):
			content = fakeMeals
		}
		encoded, _ := json.Marshal(content)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%s},"finish_reason":"stop"}]}`, encoded)
	})
}

type session struct {
	Token  string
	UserID string
	Email  string
}

func (s *IntegrationTestSuite) register(ctx context.Context, t *testing.T) session {
	t.Helper()

	email := strings.ToLower(gofakeit.Email())
	body, err := json.Marshal(auth.Credentials{Email: email, Password: testPassword})
	require.NoError(t, err)

	resp := s.do(ctx, t, http.MethodPost, "/v1/auth/register", "", bytes.NewReader(body))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var loginResp auth.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	require.NotEmpty(t, loginResp.Token)

	return session{Token: loginResp.Token, UserID: loginResp.UserID, Email: email}
}

func (s *IntegrationTestSuite) do(ctx context.Context, t *testing.T, method, path, token string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, body)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	return resp
}

// doJSON sends in as the body and decodes the response into out when the status matches.
func (s *IntegrationTestSuite) doJSON(ctx context.Context, t *testing.T, method, path, token string, in, out any, expectedStatus int) {
	t.Helper()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	resp := s.do(ctx, t, method, path, token, body)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, resp.StatusCode, string(respBytes))

	if out != nil {
		require.NoError(t, json.Unmarshal(respBytes, out))
	}
}
