package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonathan/hiretrack/internal/config"
	"github.com/jonathan/hiretrack/internal/server/middleware"
)

const tokenIssuer = "hiretrack-stub"

var (
	// ErrTokenExpired is returned for a well-formed session token past its expiry.
	ErrTokenExpired = errors.New("session token expired")
	// ErrTokenInvalid covers every other rejected session token.
	ErrTokenInvalid = errors.New("session token invalid")
)

// SessionClaims identifies the signed-in recruiter by subject.
type SessionClaims struct {
	jwt.RegisteredClaims
}

func (c *SessionClaims) GetUserID() string { return c.Subject }

// TokenIssuer signs and verifies the HS256 bearer tokens handed out by the
// auth routes.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer builds an issuer from the auth settings.
func NewTokenIssuer(cfg *config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(cfg.ExpirationHours) * time.Hour,
		now:    time.Now,
	}
}

// Issue returns a token whose subject is userID.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := t.now()
	claims := &SessionClaims{jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry and returns the claims.
func (t *TokenIssuer) Verify(raw string) (*SessionClaims, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrTokenInvalid)
	}
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	case claims.Subject == "":
		return nil, fmt.Errorf("%w: no subject", ErrTokenInvalid)
	}
	return claims, nil
}

// ValidateToken lets the issuer guard routes through middleware.AuthMiddleware.
func (t *TokenIssuer) ValidateToken(raw string) (middleware.UserIDGetter, error) {
	claims, err := t.Verify(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
