//go:build integration_test || all_tests

package integration_testing

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/2beens/liftlog/internal/auth"

	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	t *testing.T,
	method, path, token string,
	body any,
) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) doJSON(
	ctx context.Context,
	t *testing.T,
	method, path, token string,
	body any,
	expectedStatus int,
	out any,
) {
	t.Helper()
	status, respBytes := s.doRequest(ctx, t, method, path, token, body)
	require.Equal(t, expectedStatus, status, string(respBytes))
	if out != nil {
		require.NoError(t, json.Unmarshal(respBytes, out))
	}
}

func (s *IntegrationTestSuite) login(ctx context.Context, t *testing.T) string {
	t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	s.doJSON(ctx, t, http.MethodPost, "/auth/login", "", auth.Credentials{
		Email:    testEmail,
		Password: testPassword,
	}, http.StatusOK, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
