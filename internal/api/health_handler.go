package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/guestbook/internal/api/shared"
	"github.com/phrazzld/guestbook/internal/platform/logger"
	"github.com/phrazzld/guestbook/internal/redact"
	"github.com/phrazzld/guestbook/internal/store"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker verifies the database answers queries.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// PoolStatsReporter reports connection pool usage.
type PoolStatsReporter interface {
	Stats() store.PoolStats
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string           `json:"status"`
	Pool   *store.PoolStats `json:"pool,omitempty"`
}

// HealthHandler reports whether the service can reach its database.
type HealthHandler struct {
	checker HealthChecker
	stats   PoolStatsReporter
	logger  *slog.Logger
}

// NewHealthHandler creates a HealthHandler. stats may be nil.
func NewHealthHandler(checker HealthChecker, stats PoolStatsReporter, log *slog.Logger) *HealthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HealthHandler{checker: checker, stats: stats, logger: log.With("component", "health_handler")}
}

// Health handles GET /health requests
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if h.stats != nil {
		stats := h.stats.Stats()
		resp.Pool = &stats
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.checker.Ping(ctx); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("health check failed",
			"error", redact.Error(err))
		resp.Status = "unavailable"
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, resp)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
