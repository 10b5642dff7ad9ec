// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/dealdesk/cliparse"
	"github.com/danielhkuo/dealdesk/middleware"
	"github.com/danielhkuo/dealdesk/seed"
	"github.com/danielhkuo/dealdesk/session"
)

// Seed application ids by stage, as shipped in the embedded dataset.
const (
	// Voting, two other partners have voted, the demo user has not.
	VotingAppID = "app-1"
	// Voting, one other partner has voted.
	PartialAppID = "app-2"
	// New, no votes.
	NewAppID = "app-3"
	// Deliberation, all three partners have voted.
	InterviewAppID = "app-4"
	// Invested.
	ArchivedAppID = "app-5"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		SessionTTL:    session.DefaultTTL,
		CurrentUserID: "partner-1",
		TokenSalt:     "test-token-salt",
		Mode:          cliparse.ModeServe,
	}
}

// NewTestStore returns a session store over the embedded seed, with its
// metrics on a private registry.
func NewTestStore(t *testing.T, cfg cliparse.Config) *session.Store {
	t.Helper()

	ds, err := seed.Default()
	if err != nil {
		t.Fatalf("Failed to load seed: %v", err)
	}

	store, err := session.NewStore(ds, session.Options{
		TTL:           cfg.SessionTTL,
		Salt:          cfg.TokenSalt,
		CurrentUserID: cfg.CurrentUserID,
		RequireQuorum: cfg.RequireQuorum,
		Registry:      prometheus.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

// CreateTestSession starts a session and returns its token
func CreateTestSession(t *testing.T, store *session.Store) string {
	t.Helper()

	token, _, err := store.Create()
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	return token
}

// SessionHeaders returns the headers that authenticate as token
func SessionHeaders(token string) map[string]string {
	return map[string]string{middleware.SessionHeader: token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
