package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ciEnvVars lists the CI variables copied onto every record, keyed by the
// attribute name they are logged under.
var ciEnvVars = map[string]string{
	"ci_provider": "CI_NAME",
	"ci_run_id":   "GITHUB_RUN_ID",
	"ci_job":      "GITHUB_JOB",
	"ci_commit":   "GITHUB_SHA",
	"ci_ref":      "GITHUB_REF",
}

// IsCIEnvironment reports whether the process runs under a CI system.
func IsCIEnvironment() bool {
	return os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != ""
}

// CIHandler is a slog.Handler that adds CI environment metadata to every
// record before delegating to a JSON handler.
type CIHandler struct {
	handler slog.Handler
}

// NewCIHandler creates a CIHandler writing JSON to out.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	attrs := make([]slog.Attr, 0, len(ciEnvVars))
	for attr, env := range ciEnvVars {
		if value := os.Getenv(env); value != "" {
			attrs = append(attrs, slog.String(attr, value))
		}
	}
	return &CIHandler{handler: slog.NewJSONHandler(out, opts).WithAttrs(attrs)}
}

// Enabled implements the slog.Handler interface.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup implements the slog.Handler interface.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{handler: h.handler.WithGroup(name)}
}

// Handle implements the slog.Handler interface.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.handler.Handle(ctx, record)
}
