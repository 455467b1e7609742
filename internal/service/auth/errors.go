package auth

import "errors"

// Common authentication errors
var (
	// ErrInvalidSession indicates the session token is malformed or its signature doesn't match
	ErrInvalidSession = errors.New("invalid session token")

	// ErrExpiredSession indicates the session token has expired
	ErrExpiredSession = errors.New("session token has expired")

	// ErrWrongTokenType indicates a state token was presented as a session or vice versa
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrStateMismatch indicates the OAuth state returned by the provider does not
	// match the one issued at login
	ErrStateMismatch = errors.New("oauth state mismatch")

	// ErrTokenExchange indicates the provider rejected the authorization code
	ErrTokenExchange = errors.New("authorization code exchange failed")

	// ErrMissingIDToken indicates the token response carried no id_token
	ErrMissingIDToken = errors.New("token response has no id_token")

	// ErrUserInfo indicates the userinfo endpoint did not return a profile
	ErrUserInfo = errors.New("userinfo request failed")

	// ErrOIDCNotConfigured indicates no identity provider domain is configured
	ErrOIDCNotConfigured = errors.New("identity provider is not configured")
)
