package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/guestbook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct{ err error }

func (s stubChecker) Ping(context.Context) error { return s.err }

type stubStats struct{ stats store.PoolStats }

func (s stubStats) Stats() store.PoolStats { return s.stats }

func TestHealth(t *testing.T) {
	stats := stubStats{store.PoolStats{Acquired: 1, Idle: 2, Total: 3, Max: 100}}

	tests := []struct {
		name       string
		checker    HealthChecker
		stats      PoolStatsReporter
		wantStatus int
		wantBody   HealthResponse
	}{
		{"healthy", stubChecker{}, stats, http.StatusOK, HealthResponse{Status: "ok", Pool: &stats.stats}},
		{"healthy without stats", stubChecker{}, nil, http.StatusOK, HealthResponse{Status: "ok"}},
		{"database down", stubChecker{errors.New("dial tcp: connection refused")}, stats, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Pool: &stats.stats}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(tc.checker, tc.stats, nil)
			w := httptest.NewRecorder()

			h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tc.wantStatus, w.Code)
			var got HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tc.wantBody, got)
		})
	}
}
