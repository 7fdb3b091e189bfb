package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
)

const (
	maxUserNameLen  = 100
	maxEducationLen = 100
	minPasswordLen  = 8
	maxPasswordLen  = 72 // bcrypt input limit
)

// User is an identity record. PasswordHash is never serialized; API
// responses carry the remaining fields only.
type User struct {
	ID           string          `json:"id"                  db:"id"`
	Name         string          `json:"name"                db:"name"`
	Email        string          `json:"email"               db:"email"`
	PasswordHash string          `json:"-"                   db:"password_hash"`
	Phone        string          `json:"phone"               db:"phone"`
	Education    string          `json:"education"           db:"education"`
	Role         domainauth.Role `json:"role"                db:"role"`
	Photo        MediaAsset      `json:"photo"               db:"-"`
	CreatedAt    time.Time       `json:"created_at"          db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"          db:"updated_at"`
}

// RegisterRequest carries the fields submitted at account creation.
// The photo file travels separately as multipart content.
type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Education string `json:"education"`
}

// Validate validates RegisterRequest and normalizes the email and role.
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxUserNameLen {
		return errors.New("name cannot exceed 100 characters")
	}

	email, err := NormalizeEmail(r.Email)
	if err != nil {
		return err
	}
	r.Email = email

	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	if len(r.Password) > maxPasswordLen {
		return errors.New("password cannot exceed 72 characters")
	}

	role, ok := domainauth.ParseRole(r.Role)
	if !ok {
		return errors.New("role must be one of: user, admin")
	}
	r.Role = string(role)

	r.Education = strings.TrimSpace(r.Education)
	if utf8.RuneCountInString(r.Education) > maxEducationLen {
		return errors.New("education cannot exceed 100 characters")
	}
	r.Phone = strings.TrimSpace(r.Phone)
	return nil
}

// LoginRequest carries login credentials. Role is optional; when present the
// authenticated user's stored role must match it.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate validates LoginRequest and normalizes the email.
func (r *LoginRequest) Validate() error {
	email, err := NormalizeEmail(r.Email)
	if err != nil {
		return err
	}
	r.Email = email
	if r.Password == "" {
		return errors.New("password is required and cannot be empty")
	}
	if r.Role != "" {
		role, ok := domainauth.ParseRole(r.Role)
		if !ok {
			return errors.New("role must be one of: user, admin")
		}
		r.Role = string(role)
	}
	return nil
}

// UpdateProfileRequest represents a partial profile update. Nil fields are
// left untouched; the photo replacement travels as multipart content.
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Education *string `json:"education,omitempty"`
}

// Validate validates UpdateProfileRequest.
func (r *UpdateProfileRequest) Validate() error {
	if r.Name == nil && r.Phone == nil && r.Education == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return errors.New("name is required and cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxUserNameLen {
			return errors.New("name cannot exceed 100 characters")
		}
		*r.Name = name
	}
	if r.Education != nil && utf8.RuneCountInString(*r.Education) > maxEducationLen {
		return errors.New("education cannot exceed 100 characters")
	}
	return nil
}

// NormalizeEmail trims, lowercases, and syntax-checks an email address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errors.New("email is required and cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", errors.New("email must be a valid address")
	}
	return email, nil
}
