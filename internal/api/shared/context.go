package shared

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/phrazzld/guestbook/internal/service/auth"
)

// Key type for context values
type ContextKey string

// Context keys for various values
const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// SessionKey is the key for the signed-in user's session
	SessionKey ContextKey = "session"
)

// TraceIDHeader echoes the trace ID back to the client.
const TraceIDHeader = "X-Trace-ID"

// SetTraceID adds a trace ID to the context and returns it.
// The request ID assigned by chi's RequestID middleware is reused when present
// so access logs and application logs share one identifier.
func SetTraceID(ctx context.Context) (context.Context, string) {
	traceID := middleware.GetReqID(ctx)
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return context.WithValue(ctx, TraceIDKey, traceID), traceID
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *auth.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSession returns the signed-in user's session, if any.
func GetSession(ctx context.Context) (*auth.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*auth.Session)
	return session, ok && session != nil
}
