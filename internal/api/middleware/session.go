package middleware

import (
	"errors"
	"net/http"

	"github.com/phrazzld/guestbook/internal/api/shared"
	"github.com/phrazzld/guestbook/internal/platform/logger"
	"github.com/phrazzld/guestbook/internal/service/auth"
)

// SessionCookieName is the cookie holding the signed session token.
const SessionCookieName = "guestbook_session"

// SessionMiddleware loads the signed-in user's session from its cookie.
// Requests without a valid session continue anonymously; an invalid or expired
// cookie is cleared.
type SessionMiddleware struct {
	sessions auth.SessionService
	secure   bool
}

// NewSessionMiddleware creates a SessionMiddleware. secure marks cleared
// cookies Secure and should match how the session cookie was set.
func NewSessionMiddleware(sessions auth.SessionService, secure bool) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, secure: secure}
}

// LoadSession adds the session to the request context when one is present.
func (m *SessionMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.sessions.ParseSession(r.Context(), cookie.Value)
		if err != nil {
			log := logger.FromContext(r.Context())
			if errors.Is(err, auth.ErrExpiredSession) {
				log.Debug("session expired")
			} else {
				log.Warn("discarding invalid session cookie", "error", err)
			}
			http.SetCookie(w, ClearCookie(SessionCookieName, m.secure))
			next.ServeHTTP(w, r)
			return
		}

		ctx := shared.WithSession(r.Context(), session)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("subject", session.Subject))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// NewCookie returns an HttpOnly cookie scoped to the whole site.
func NewCookie(name, value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie returns a cookie that deletes name.
func ClearCookie(name string, secure bool) *http.Cookie {
	return NewCookie(name, "", -1, secure)
}
