//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/aresprotocol/internal/auth"
)

func (s *IntegrationTestSuite) TestAuth_LoginLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := s.register(ctx, t)

	// duplicate registration
	s.doJSON(ctx, t, http.MethodPost, "/v1/auth/register", "", auth.Credentials{
		Email:    sess.Email,
		Password: testPassword,
	}, nil, http.StatusConflict)

	s.doJSON(ctx, t, http.MethodPost, "/v1/auth/login", "", auth.Credentials{
		Email:    sess.Email,
		Password: "wrong-password",
	}, nil, http.StatusUnauthorized)

	var login auth.LoginResponse
	s.doJSON(ctx, t, http.MethodPost, "/v1/auth/login", "", auth.Credentials{
		Email:    sess.Email,
		Password: testPassword,
	}, &login, http.StatusOK)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, sess.UserID, login.UserID)

	resp := s.do(ctx, t, http.MethodPost, "/v1/auth/logout", login.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// the logged out token is rejected, the first one still works
	resp = s.do(ctx, t, http.MethodGet, "/v1/protocol/today", login.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(ctx, t, http.MethodGet, "/v1/protocol/today", sess.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestAuth_MissingToken() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, path := range []string{"/v1/state", "/v1/protocol/today", "/v1/events"} {
		resp := s.do(ctx, t, http.MethodGet, path, "", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func (s *IntegrationTestSuite) TestState_Sync() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := s.register(ctx, t)

	payload, err := json.Marshal(map[string]any{
		"isAuthenticated": true,
		"isOnboarded":     false,
		"currentView":     "onboarding",
		"theme":           "light",
	})
	require.NoError(t, err)

	var syncResp struct {
		Stored    bool  `json:"stored"`
		Timestamp int64 `json:"timestamp"`
	}
	s.doJSON(ctx, t, http.MethodPost, "/v1/sync", sess.Token, map[string]any{
		"email":     sess.Email,
		"timestamp": int64(1767225600000),
		"payload":   json.RawMessage(payload),
	}, &syncResp, http.StatusOK)
	assert.True(t, syncResp.Stored)
	assert.Equal(t, int64(1767225600000), syncResp.Timestamp)

	// another user's email is refused
	body, err := json.Marshal(map[string]any{
		"email":     "someone@else.com",
		"timestamp": 1,
		"payload":   json.RawMessage(payload),
	})
	require.NoError(t, err)
	resp := s.do(ctx, t, http.MethodPost, "/v1/sync", sess.Token, bytes.NewReader(body))
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var stored map[string]any
	s.doJSON(ctx, t, http.MethodGet, "/v1/state", sess.Token, nil, &stored, http.StatusOK)
	assert.Equal(t, "light", stored["theme"])
	assert.Equal(t, "onboarding", stored["currentView"])

	var clientTS int64
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT client_ts FROM user_state WHERE user_id = $1`, sess.UserID,
	).Scan(&clientTS))
	assert.Equal(t, int64(1767225600000), clientTS)
}
