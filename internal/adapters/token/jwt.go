package token

// Package token implements ports.TokenIssuer with HS256-signed JWTs.
// The signing secret is process-wide configuration, loaded once at startup
// and immutable thereafter.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/ports"
)

// DefaultTTL is the session lifetime used when none is configured.
const DefaultTTL = time.Hour

// Config describes how session tokens are signed.
type Config struct {
	// Secret is the symmetric HMAC signing key. Required.
	Secret string
	// TTL is the token lifetime; DefaultTTL when zero.
	TTL time.Duration
	// Now overrides the time source (useful for tests).
	Now func() time.Time
}

// JWTIssuer signs and verifies session tokens. Safe for concurrent use.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

// ErrInvalidToken is returned by Verify for any token that fails signature,
// structure, or expiry checks. Callers should not distinguish causes in
// client-visible responses.
var ErrInvalidToken = errors.New("invalid or expired token")

// NewJWTIssuer validates the config and builds an issuer. A missing secret
// is a configuration error surfaced at startup, never at request time.
func NewJWTIssuer(cfg Config) (*JWTIssuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &JWTIssuer{secret: []byte(cfg.Secret), ttl: ttl, now: now}, nil
}

// TTL returns the configured token lifetime.
func (i *JWTIssuer) TTL() time.Duration { return i.ttl }

// Issue creates a signed token binding the user ID to an expiry instant.
func (i *JWTIssuer) Issue(userID string) (domainauth.Token, error) {
	if userID == "" {
		return domainauth.Token{}, errors.New("user ID is required")
	}

	issuedAt := i.now().UTC()
	expiresAt := issuedAt.Add(i.ttl)
	tokenID := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        tokenID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return domainauth.Token{}, fmt.Errorf("sign token: %w", err)
	}

	return domainauth.Token{
		Raw:       raw,
		ID:        tokenID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks the token's signature and expiry and returns its claims.
// All failure causes collapse to ErrInvalidToken; the underlying cause is
// preserved in the wrap chain for server-side logging.
func (i *JWTIssuer) Verify(raw string) (domainauth.Claims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domainauth.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return domainauth.Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	out := domainauth.Claims{
		UserID:  claims.Subject,
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
