package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/guestbook/internal/config"
	"github.com/phrazzld/guestbook/internal/platform/logger"
)

const (
	tokenTypeSession = "session"
	tokenTypeState   = "state"

	// StateLifetime bounds how long a login round trip may take.
	StateLifetime = 10 * time.Minute

	minSecretLength = 16

	// MaxSessionTokenLength keeps the session cookie under the 4096 byte
	// limit browsers apply to a cookie's name, value and attributes together.
	MaxSessionTokenLength = 3800
)

// sessionProfileClaims are the userinfo claims copied into the session.
// Only string values are kept.
var sessionProfileClaims = []string{"name", "nickname", "email", "picture"}

// Session is the signed-in user as carried in the session cookie.
type Session struct {
	// Subject is the provider's stable user identifier (the "sub" claim).
	Subject string
	// Profile holds the display claims from userinfo. It is nil when ProfileKnown is false.
	Profile map[string]any
	// ProfileKnown is false when the userinfo request failed during login.
	ProfileKnown bool

	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// DisplayName picks the most readable identifier available for the user.
func (s *Session) DisplayName() string {
	if s.ProfileKnown {
		for _, key := range []string{"name", "nickname", "email"} {
			if v, ok := s.Profile[key].(string); ok && v != "" {
				return v
			}
		}
	}
	return s.Subject
}

// SessionService issues and validates the signed cookies used by the login flow.
type SessionService interface {
	// IssueSession signs session and returns the cookie value.
	IssueSession(ctx context.Context, session Session) (string, error)

	// ParseSession validates a session cookie value and returns its contents.
	ParseSession(ctx context.Context, token string) (*Session, error)

	// IssueState creates a fresh OAuth state value and the signed cookie value carrying it.
	IssueState(ctx context.Context) (state string, token string, err error)

	// VerifyState checks that token is a valid state cookie carrying state.
	VerifyState(ctx context.Context, token, state string) error
}

// hmacSessionService signs tokens with HMAC-SHA256 using the application secret.
type hmacSessionService struct {
	signingKey      []byte
	sessionLifetime time.Duration
	timeFunc        func() time.Time // Injectable for testing
	clockSkew       time.Duration
}

type sessionClaims struct {
	TokenType    string         `json:"type"`
	Profile      map[string]any `json:"profile,omitempty"`
	ProfileKnown bool           `json:"profile_known,omitempty"`
	State        string         `json:"state,omitempty"`
	jwt.RegisteredClaims
}

var _ SessionService = (*hmacSessionService)(nil)

// NewSessionService creates a SessionService signing with cfg.SecretKey.
func NewSessionService(cfg config.AuthConfig) (SessionService, error) {
	if len(cfg.SecretKey) < minSecretLength {
		return nil, fmt.Errorf("secret key must be at least %d characters", minSecretLength)
	}
	if cfg.SessionLifetimeHours <= 0 {
		return nil, fmt.Errorf("session lifetime must be positive, got %d hours", cfg.SessionLifetimeHours)
	}
	return newSessionService(
		cfg.SecretKey,
		time.Duration(cfg.SessionLifetimeHours)*time.Hour,
		time.Now,
	), nil
}

func newSessionService(secret string, lifetime time.Duration, timeFunc func() time.Time) *hmacSessionService {
	return &hmacSessionService{
		signingKey:      []byte(secret),
		sessionLifetime: lifetime,
		timeFunc:        timeFunc,
		clockSkew:       2 * time.Minute,
	}
}

// IssueSession implements SessionService.
func (s *hmacSessionService) IssueSession(ctx context.Context, session Session) (string, error) {
	now := s.timeFunc()
	claims := sessionClaims{
		TokenType:    tokenTypeSession,
		ProfileKnown: session.ProfileKnown,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionLifetime)),
			ID:        uuid.NewString(),
		},
	}
	if session.ProfileKnown {
		claims.Profile = profileSubset(session.Profile)
	}

	signed, err := s.sign(claims)
	if err == nil && len(signed) > MaxSessionTokenLength && claims.ProfileKnown {
		logger.FromContext(ctx).Warn("session profile too large for cookie, dropping profile",
			"token_length", len(signed),
			"max_length", MaxSessionTokenLength)
		claims.Profile = nil
		claims.ProfileKnown = false
		signed, err = s.sign(claims)
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign session token",
			"error", err,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", err
	}
	return signed, nil
}

func profileSubset(profile map[string]any) map[string]any {
	subset := make(map[string]any, len(sessionProfileClaims))
	for _, key := range sessionProfileClaims {
		if v, ok := profile[key].(string); ok && v != "" {
			subset[key] = v
		}
	}
	return subset
}

// ParseSession implements SessionService.
func (s *hmacSessionService) ParseSession(ctx context.Context, token string) (*Session, error) {
	claims, err := s.parse(ctx, token, tokenTypeSession)
	if err != nil {
		return nil, err
	}

	session := &Session{
		Subject:      claims.Subject,
		ProfileKnown: claims.ProfileKnown,
		ID:           claims.ID,
	}
	if claims.ProfileKnown {
		session.Profile = claims.Profile
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// IssueState implements SessionService.
func (s *hmacSessionService) IssueState(ctx context.Context) (string, string, error) {
	now := s.timeFunc()
	state := uuid.NewString()
	claims := sessionClaims{
		TokenType: tokenTypeState,
		State:     state,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(StateLifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := s.sign(claims)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign state token", "error", err)
		return "", "", err
	}
	return state, signed, nil
}

// VerifyState implements SessionService.
func (s *hmacSessionService) VerifyState(ctx context.Context, token, state string) error {
	claims, err := s.parse(ctx, token, tokenTypeState)
	if err != nil {
		return err
	}
	if state == "" || claims.State != state {
		logger.FromContext(ctx).Warn("oauth state mismatch")
		return ErrStateMismatch
	}
	return nil
}

func (s *hmacSessionService) sign(claims sessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token with HMAC-SHA256: %w", claims.TokenType, err)
	}
	return signed, nil
}

func (s *hmacSessionService) parse(ctx context.Context, tokenString, wantType string) (*sessionClaims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&sessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "token_type", wantType)
			return nil, ErrExpiredSession
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature", "token_type", wantType)
		default:
			log.Debug("token validation failed",
				"error", err,
				"token_type", wantType,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidSession
	}
	if claims.TokenType != wantType {
		log.Debug("token validation failed: wrong token type",
			"expected", wantType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
