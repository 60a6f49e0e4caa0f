//go:build integration_test || all_tests

package integration_testing

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/2beens/liftlog/internal/auth"

	"github.com/stretchr/testify/assert"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cases := map[string]struct {
		creds          auth.Credentials
		expectedStatus int
	}{
		"good creds": {
			creds:          auth.Credentials{Email: testEmail, Password: testPassword},
			expectedStatus: http.StatusOK,
		},
		"bad password": {
			creds:          auth.Credentials{Email: testEmail, Password: "bad-password"},
			expectedStatus: http.StatusUnauthorized,
		},
		"unknown user": {
			creds:          auth.Credentials{Email: "nobody@liftlog.test", Password: testPassword},
			expectedStatus: http.StatusUnauthorized,
		},
		"empty password": {
			creds:          auth.Credentials{Email: testEmail},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := s.doRequest(ctx, t, http.MethodPost, "/auth/login", "", tc.creds)
			assert.Equal(t, tc.expectedStatus, status, strings.TrimSpace(string(body)))
		})
	}
}

func (s *IntegrationTestSuite) TestLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := s.login(ctx, t)

	status, _ := s.doRequest(ctx, t, http.MethodGet, "/routines", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body := s.doRequest(ctx, t, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "logged-out", string(body))

	status, _ = s.doRequest(ctx, t, http.MethodGet, "/routines", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestPublicEndpoints() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	status, body := s.doRequest(ctx, t, http.MethodGet, "/version", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "test-version-info", string(body))

	status, _ = s.doRequest(ctx, t, http.MethodGet, "/catalog/exercises", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.doRequest(ctx, t, http.MethodGet, "/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
