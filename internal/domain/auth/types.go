package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the supported values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role string and reports whether it is supported.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	if role.Valid() {
		return role, true
	}
	return "", false
}

// Satisfies reports whether a holder of this role may access a resource
// gated at the required role. Hierarchy: user < admin.
func (r Role) Satisfies(required Role) bool {
	levels := map[Role]int{
		RoleUser:  1,
		RoleAdmin: 2,
	}
	have, haveOK := levels[r]
	want, wantOK := levels[required]
	if !haveOK || !wantOK {
		return false
	}
	return have >= want
}

// Token is a signed session credential bound to a user and an expiry instant.
// Raw is the compact serialized form delivered to the client in a cookie.
// The token is self-contained: validity is determined by signature and expiry
// checks at verification time, not by server-side state.
type Token struct {
	Raw       string
	ID        string // unique token identifier (jti), used for revocation
	UserID    string
	ExpiresAt time.Time
}

// Claims is the verified content of a session token.
type Claims struct {
	UserID    string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
