package config

import "time"

// AuthConfig groups token signing and session cookie configuration.
type AuthConfig struct {
	// JWTSecret signs session tokens. Required; the server refuses to start
	// without one.
	JWTSecret string `env:"JWT_SECRET,required"`

	// TokenTTL is how long an issued session token stays valid.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`

	// ForceSecureCookies marks session cookies Secure even on plain HTTP,
	// for deployments behind a TLS-terminating proxy.
	ForceSecureCookies bool `env:"AUTH_FORCE_SECURE_COOKIES" envDefault:"false"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenTTL <= 0 {
		a.TokenTTL = time.Hour
	}
}
