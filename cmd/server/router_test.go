package main

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/phrazzld/guestbook/internal/config"
	"github.com/phrazzld/guestbook/internal/mocks"
	"github.com/phrazzld/guestbook/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type okChecker struct{}

func (okChecker) Ping(context.Context) error { return nil }

// stubAuthenticator is a provider that accepts every login.
type stubAuthenticator struct{}

func (stubAuthenticator) AuthCodeURL(state string) string {
	return "/callback?code=ok&state=" + url.QueryEscape(state)
}

func (stubAuthenticator) Exchange(context.Context, string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "token", TokenType: "Bearer"}, nil
}

func (stubAuthenticator) IDTokenClaims(*oauth2.Token) (map[string]any, error) {
	return map[string]any{"sub": "auth0|ada"}, nil
}

func (stubAuthenticator) UserInfo(context.Context, *oauth2.Token) (map[string]any, error) {
	return map[string]any{"name": "Ada Lovelace"}, nil
}

func (stubAuthenticator) LogoutURL(string) string {
	return "/"
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug", BaseURL: "http://localhost:8080"},
		Database: config.DatabaseConfig{
			URL:      "postgres://localhost/guestbook",
			MinConns: 1,
			MaxConns: 100,
		},
		Auth: config.AuthConfig{SecretKey: "router-test-secret-key", SessionLifetimeHours: 1},
	}
}

// newTestServer starts the full router over an in-memory guest store.
func newTestServer(t *testing.T, withLogin bool) (*httptest.Server, *mocks.MemoryGuestStore) {
	t.Helper()
	log, _ := logger.NewTestLogger()
	guests := mocks.NewMemoryGuestStore()

	app := &application{
		config:     testConfig(),
		logger:     log,
		guestStore: guests,
		health:     okChecker{},
	}
	require.NoError(t, app.initServices())
	if withLogin {
		app.authenticator = stubAuthenticator{}
	}

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv, guests
}

func sign(t *testing.T, client *http.Client, base, name string) *http.Response {
	t.Helper()
	resp, err := client.PostForm(base+"/", url.Values{"guest": {name}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestGuestbook_EndToEnd(t *testing.T) {
	t.Run("signed name is listed", func(t *testing.T) {
		srv, guests := newTestServer(t, false)

		resp := sign(t, srv.Client(), srv.URL, "Ada")
		require.Equal(t, http.StatusOK, resp.StatusCode, "303 should land on the list")
		assert.Equal(t, "/", resp.Request.URL.Path)
		assert.Equal(t, http.MethodGet, resp.Request.Method)
		assert.Contains(t, body(t, resp), "<li>Ada</li>")

		stored, err := guests.List(context.Background())
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Ada", stored[0].Name)
	})

	t.Run("empty name is not inserted", func(t *testing.T) {
		srv, guests := newTestServer(t, false)

		resp := sign(t, srv.Client(), srv.URL, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body(t, resp), "Nobody has signed yet.")

		stored, err := guests.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("guests are listed in insertion order", func(t *testing.T) {
		srv, _ := newTestServer(t, false)

		sign(t, srv.Client(), srv.URL, "Ada")
		resp := sign(t, srv.Client(), srv.URL, "Grace")

		page := body(t, resp)
		ada := strings.Index(page, "<li>Ada</li>")
		grace := strings.Index(page, "<li>Grace</li>")
		require.NotEqual(t, -1, ada)
		require.NotEqual(t, -1, grace)
		assert.Less(t, ada, grace)
	})
}

func TestRouter_LoginRoutes(t *testing.T) {
	t.Run("not mounted without a provider", func(t *testing.T) {
		srv, _ := newTestServer(t, false)
		for _, path := range []string{"/login", "/callback", "/logout"} {
			resp, err := srv.Client().Get(srv.URL + path)
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		}
	})

	t.Run("login round trip shows the profile", func(t *testing.T) {
		srv, _ := newTestServer(t, true)
		jar, err := cookiejar.New(nil)
		require.NoError(t, err)
		client := srv.Client()
		client.Jar = jar

		resp, err := client.Get(srv.URL + "/login")
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })

		require.Equal(t, http.StatusOK, resp.StatusCode)
		page := body(t, resp)
		assert.Contains(t, page, "Signed in as <strong>Ada Lovelace</strong>")
		assert.Contains(t, page, `href="/logout"`)

		resp, err = client.Get(srv.URL + "/logout")
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		assert.Contains(t, body(t, resp), `href="/login"`)
	})
}

func TestRouter_Health(t *testing.T) {
	srv, _ := newTestServer(t, false)

	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body(t, resp))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestInitServices(t *testing.T) {
	t.Run("rejects missing store", func(t *testing.T) {
		log, _ := logger.NewTestLogger()
		app := &application{config: testConfig(), logger: log}
		assert.Error(t, app.initServices())
	})

	t.Run("provider configured", func(t *testing.T) {
		log, _ := logger.NewTestLogger()
		cfg := testConfig()
		cfg.Auth.Domain = "tenant.us.auth0.com"
		cfg.Auth.ClientID = "id"
		cfg.Auth.ClientSecret = "secret"

		app := &application{config: cfg, logger: log, guestStore: mocks.NewMemoryGuestStore()}
		require.NoError(t, app.initServices())
		assert.NotNil(t, app.authenticator)
	})

	t.Run("cleanup without pool", func(t *testing.T) {
		log, buf := logger.NewTestLogger()
		app := &application{config: testConfig(), logger: log}
		app.cleanup()
		assert.Contains(t, buf.String(), "Application shutdown completed")
	})
}
