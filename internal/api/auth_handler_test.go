package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/phrazzld/guestbook/internal/api/middleware"
	"github.com/phrazzld/guestbook/internal/config"
	"github.com/phrazzld/guestbook/internal/platform/logger"
	"github.com/phrazzld/guestbook/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// fakeAuthenticator stands in for the identity provider.
type fakeAuthenticator struct {
	exchangeErr error
	claims      map[string]any
	claimsErr   error
	profile     map[string]any
	userInfoErr error
}

func (f *fakeAuthenticator) AuthCodeURL(state string) string {
	return "https://idp.test/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeAuthenticator) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &oauth2.Token{AccessToken: "access-" + code, TokenType: "Bearer"}, nil
}

func (f *fakeAuthenticator) IDTokenClaims(*oauth2.Token) (map[string]any, error) {
	return f.claims, f.claimsErr
}

func (f *fakeAuthenticator) UserInfo(context.Context, *oauth2.Token) (map[string]any, error) {
	return f.profile, f.userInfoErr
}

func (f *fakeAuthenticator) LogoutURL(returnTo string) string {
	return "https://idp.test/v2/logout?returnTo=" + url.QueryEscape(returnTo)
}

func newAuthHandler(t *testing.T, fake *fakeAuthenticator) (*AuthHandler, auth.SessionService) {
	t.Helper()
	sessions, err := auth.NewSessionService(config.AuthConfig{
		SecretKey:            "auth-handler-test-secret",
		SessionLifetimeHours: 1,
	})
	require.NoError(t, err)
	return NewAuthHandler(fake, sessions, "http://localhost:8080/", 1, nil), sessions
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// login runs GET /login and returns the state sent to the provider and the state cookie.
func login(t *testing.T, h *AuthHandler) (string, *http.Cookie) {
	t.Helper()
	w := httptest.NewRecorder()
	h.Login(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusFound, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "idp.test", location.Host)

	cookie := findCookie(w, StateCookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	return location.Query().Get("state"), cookie
}

func callback(h *AuthHandler, state string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state="+url.QueryEscape(state), nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	h.Callback(w, req)
	return w
}

func TestAuthHandler_LoginAndCallback(t *testing.T) {
	fake := &fakeAuthenticator{
		claims:  map[string]any{"sub": "auth0|ada"},
		profile: map[string]any{"name": "Ada Lovelace"},
	}
	h, sessions := newAuthHandler(t, fake)

	state, cookie := login(t, h)
	require.NotEmpty(t, state)

	w := callback(h, state, cookie)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	stateCookie := findCookie(w, StateCookieName)
	require.NotNil(t, stateCookie)
	assert.Less(t, stateCookie.MaxAge, 0, "state cookie should be cleared")

	sessionCookie := findCookie(w, middleware.SessionCookieName)
	require.NotNil(t, sessionCookie)
	assert.Equal(t, 3600, sessionCookie.MaxAge)
	assert.False(t, sessionCookie.Secure)

	session, err := sessions.ParseSession(context.Background(), sessionCookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "auth0|ada", session.Subject)
	assert.True(t, session.ProfileKnown)
	assert.Equal(t, "Ada Lovelace", session.Profile["name"])
}

func TestAuthHandler_CallbackUserInfoFailure(t *testing.T) {
	fake := &fakeAuthenticator{
		claims:      map[string]any{"sub": "auth0|ada"},
		userInfoErr: auth.ErrUserInfo,
	}
	h, sessions := newAuthHandler(t, fake)
	log, buf := logger.NewTestLogger()

	state, cookie := login(t, h)
	req := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state="+url.QueryEscape(state), nil)
	req.AddCookie(cookie)
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	w := httptest.NewRecorder()
	h.Callback(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code, "login still succeeds without a profile")

	sessionCookie := findCookie(w, middleware.SessionCookieName)
	require.NotNil(t, sessionCookie)
	session, err := sessions.ParseSession(context.Background(), sessionCookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "auth0|ada", session.Subject)
	assert.False(t, session.ProfileKnown)
	assert.Nil(t, session.Profile)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	var warned bool
	for _, e := range entries {
		if e["level"] == "WARN" && e["msg"] == "userinfo unavailable, continuing without profile" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestAuthHandler_CallbackFailures(t *testing.T) {
	tests := []struct {
		name       string
		fake       *fakeAuthenticator
		mutate     func(state string, cookie *http.Cookie) (string, *http.Cookie)
		query      string
		wantStatus int
	}{
		{
			name:       "missing state cookie",
			fake:       &fakeAuthenticator{claims: map[string]any{"sub": "s"}},
			mutate:     func(state string, _ *http.Cookie) (string, *http.Cookie) { return state, nil },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "state mismatch",
			fake:       &fakeAuthenticator{claims: map[string]any{"sub": "s"}},
			mutate:     func(_ string, c *http.Cookie) (string, *http.Cookie) { return "forged", c },
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "tampered state cookie",
			fake: &fakeAuthenticator{claims: map[string]any{"sub": "s"}},
			mutate: func(state string, c *http.Cookie) (string, *http.Cookie) {
				return state, &http.Cookie{Name: c.Name, Value: c.Value + "x"}
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "exchange rejected",
			fake:       &fakeAuthenticator{exchangeErr: auth.ErrTokenExchange},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no id token",
			fake:       &fakeAuthenticator{claimsErr: auth.ErrMissingIDToken},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "id token without subject",
			fake:       &fakeAuthenticator{claims: map[string]any{"email": "x@example.com"}},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newAuthHandler(t, tc.fake)
			state, cookie := login(t, h)
			if tc.mutate != nil {
				state, cookie = tc.mutate(state, cookie)
			}

			w := callback(h, state, cookie)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Nil(t, findCookie(w, middleware.SessionCookieName))
		})
	}
}

func TestAuthHandler_CallbackProviderError(t *testing.T) {
	h, _ := newAuthHandler(t, &fakeAuthenticator{})
	req := httptest.NewRequest(http.MethodGet, "/callback?error=access_denied&error_description=user+cancelled", nil)
	w := httptest.NewRecorder()

	h.Callback(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	h, _ := newAuthHandler(t, &fakeAuthenticator{})
	w := httptest.NewRecorder()

	h.Logout(w, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/", location.Query().Get("returnTo"))

	cookie := findCookie(w, middleware.SessionCookieName)
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0)
}
