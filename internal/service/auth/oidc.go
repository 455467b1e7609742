package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/guestbook/internal/config"
	"golang.org/x/oauth2"
)

// CallbackPath is where the provider redirects after login.
const CallbackPath = "/callback"

// DefaultScopes are requested at login.
var DefaultScopes = []string{"openid", "profile", "email"}

// Authenticator drives the OpenID Connect authorization-code flow against a
// hosted identity provider. Endpoints follow the Auth0 layout:
// /authorize, /oauth/token, /userinfo and /v2/logout under the tenant domain.
type Authenticator struct {
	oauth    *oauth2.Config
	issuer   *url.URL
	clientID string
}

// NewAuthenticator creates an Authenticator for the provider in cfg.
// baseURL is this application's public origin and is used to build the
// callback URL registered with the provider.
func NewAuthenticator(cfg config.AuthConfig, baseURL string) (*Authenticator, error) {
	if !cfg.OIDCEnabled() {
		return nil, ErrOIDCNotConfigured
	}
	issuer := &url.URL{Scheme: "https", Host: cfg.Domain, Path: "/"}
	return newAuthenticator(issuer, cfg.ClientID, cfg.ClientSecret, baseURL)
}

func newAuthenticator(issuer *url.URL, clientID, clientSecret, baseURL string) (*Authenticator, error) {
	callback, err := url.JoinPath(baseURL, CallbackPath)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	return &Authenticator{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callback,
			Scopes:       DefaultScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   issuer.JoinPath("authorize").String(),
				TokenURL:  issuer.JoinPath("oauth", "token").String(),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		issuer:   issuer,
		clientID: clientID,
	}, nil
}

// AuthCodeURL returns the provider login URL carrying state.
func (a *Authenticator) AuthCodeURL(state string) string {
	return a.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for tokens.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}
	return token, nil
}

// IDTokenClaims returns the claims of the id_token in a token response.
// The signature is not verified: the token came straight from the provider's
// token endpoint over TLS.
func (a *Authenticator) IDTokenClaims(token *oauth2.Token) (map[string]any, error) {
	raw, _ := token.Extra("id_token").(string)
	if raw == "" {
		return nil, ErrMissingIDToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("failed to parse id_token: %w", err)
	}
	return claims, nil
}

// UserInfo fetches the profile of the user token was issued to.
func (a *Authenticator) UserInfo(ctx context.Context, token *oauth2.Token) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.issuer.JoinPath("userinfo").String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserInfo, err)
	}

	resp, err := a.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserInfo, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUserInfo, resp.StatusCode)
	}

	var profile map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrUserInfo, err)
	}
	return profile, nil
}

// LogoutURL returns the provider logout URL that sends the browser back to returnTo.
func (a *Authenticator) LogoutURL(returnTo string) string {
	u := a.issuer.JoinPath("v2", "logout")
	q := url.Values{}
	q.Set("returnTo", returnTo)
	q.Set("client_id", a.clientID)
	u.RawQuery = q.Encode()
	return u.String()
}
