package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxContactMessageLen = 5000

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Email     string    `json:"email"      db:"email"`
	Message   string    `json:"message"    db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SubmitContactRequest represents a contact-form submission.
type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate validates SubmitContactRequest and normalizes the email.
func (r *SubmitContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	email, err := NormalizeEmail(r.Email)
	if err != nil {
		return err
	}
	r.Email = email
	r.Message = strings.TrimSpace(r.Message)
	if r.Message == "" {
		return errors.New("message is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Message) > maxContactMessageLen {
		return errors.New("message cannot exceed 5000 characters")
	}
	return nil
}
