package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/guestbook/internal/api/middleware"
	"github.com/phrazzld/guestbook/internal/api/shared"
	"github.com/phrazzld/guestbook/internal/platform/logger"
	"github.com/phrazzld/guestbook/internal/redact"
	"github.com/phrazzld/guestbook/internal/service/auth"
	"golang.org/x/oauth2"
)

// StateCookieName is the cookie holding the signed OAuth state during login.
const StateCookieName = "guestbook_oauth_state"

// Authenticator is the identity provider side of the login flow.
// *auth.Authenticator implements it.
type Authenticator interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	IDTokenClaims(token *oauth2.Token) (map[string]any, error)
	UserInfo(ctx context.Context, token *oauth2.Token) (map[string]any, error)
	LogoutURL(returnTo string) string
}

var _ Authenticator = (*auth.Authenticator)(nil)

// AuthHandler handles the login, callback and logout routes.
type AuthHandler struct {
	authenticator Authenticator
	sessions      auth.SessionService
	baseURL       string
	sessionMaxAge int
	secure        bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. baseURL is the public origin
// users return to after logout; cookies are marked Secure when it is https.
func NewAuthHandler(
	authenticator Authenticator,
	sessions auth.SessionService,
	baseURL string,
	sessionLifetimeHours int,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		authenticator: authenticator,
		sessions:      sessions,
		baseURL:       strings.TrimRight(baseURL, "/"),
		sessionMaxAge: sessionLifetimeHours * 3600,
		secure:        strings.HasPrefix(baseURL, "https://"),
		logger:        log.With("component", "auth_handler"),
	}
}

// Login handles GET /login requests by redirecting to the provider.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, token, err := h.sessions.IssueState(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to start login", err)
		return
	}

	http.SetCookie(w, middleware.NewCookie(StateCookieName, token, int(auth.StateLifetime.Seconds()), h.secure))
	http.Redirect(w, r, h.authenticator.AuthCodeURL(state), http.StatusFound)
}

// Callback handles GET and POST /callback requests from the provider.
// A failed userinfo request does not fail the login: the session is created
// from the ID token alone and marked as having no known profile.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	// The state cookie is single use.
	http.SetCookie(w, middleware.ClearCookie(StateCookieName, h.secure))

	if providerErr := r.FormValue("error"); providerErr != "" {
		err := fmt.Errorf("%w: %s: %s", auth.ErrTokenExchange, providerErr, r.FormValue("error_description"))
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, GetSafeErrorMessage(err), err,
			shared.WithElevatedLogLevel())
		return
	}

	stateCookie, err := r.Cookie(StateCookieName)
	if err != nil {
		h.respondWithError(w, r, fmt.Errorf("%w: no state cookie", auth.ErrStateMismatch))
		return
	}
	if err := h.sessions.VerifyState(ctx, stateCookie.Value, r.FormValue("state")); err != nil {
		if !errors.Is(err, auth.ErrStateMismatch) {
			err = fmt.Errorf("%w: %v", auth.ErrStateMismatch, err)
		}
		h.respondWithError(w, r, err)
		return
	}

	token, err := h.authenticator.Exchange(ctx, r.FormValue("code"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	claims, err := h.authenticator.IDTokenClaims(token)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		h.respondWithError(w, r, fmt.Errorf("%w: id_token has no subject", auth.ErrMissingIDToken))
		return
	}

	session := auth.Session{Subject: subject}
	profile, err := h.authenticator.UserInfo(ctx, token)
	if err != nil {
		log.Warn("userinfo unavailable, continuing without profile",
			"subject", subject,
			"error", redact.Error(err))
	} else {
		session.Profile = profile
		session.ProfileKnown = true
	}

	sessionToken, err := h.sessions.IssueSession(ctx, session)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	http.SetCookie(w, middleware.NewCookie(middleware.SessionCookieName, sessionToken, h.sessionMaxAge, h.secure))
	log.Info("user logged in", "subject", subject, "profile_known", session.ProfileKnown)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /logout requests by clearing the session and sending
// the browser to the provider's logout endpoint.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, middleware.ClearCookie(middleware.SessionCookieName, h.secure))
	http.Redirect(w, r, h.authenticator.LogoutURL(h.baseURL+"/"), http.StatusFound)
}

func (h *AuthHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err,
		shared.WithElevatedLogLevel())
}
