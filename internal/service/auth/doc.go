// Package auth implements login through a hosted OpenID Connect provider and
// the signed cookies that carry the resulting session.
//
// Authenticator wraps golang.org/x/oauth2 for the authorization-code flow.
// SessionService signs session and OAuth state tokens with the application
// secret using HMAC-SHA256 JWTs.
package auth
