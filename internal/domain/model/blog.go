package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxBlogTitleLen    = 200
	maxBlogCategoryLen = 60
	minBlogAboutLen    = 200
)

// Blog is a published post. Author name and photo are denormalized at write
// time so list views render without a join against users.
type Blog struct {
	ID              string     `json:"id"                db:"id"`
	Title           string     `json:"title"             db:"title"`
	Category        string     `json:"category"          db:"category"`
	About           string     `json:"about"             db:"about"`
	Image           MediaAsset `json:"image"             db:"-"`
	AuthorID        string     `json:"author_id"         db:"author_id"`
	AuthorName      string     `json:"author_name"       db:"author_name"`
	AuthorPhotoURL  string     `json:"author_photo_url"  db:"author_photo_url"`
	Views           int64      `json:"views"             db:"views"`
	CreatedAt       time.Time  `json:"created_at"        db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"        db:"updated_at"`
}

// CreateBlogRequest represents parameters to create a Blog.
// The image file travels separately as multipart content.
type CreateBlogRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	About    string `json:"about"`
}

// Validate validates CreateBlogRequest.
func (r *CreateBlogRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Title) > maxBlogTitleLen {
		return errors.New("title cannot exceed 200 characters")
	}
	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		return errors.New("category is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Category) > maxBlogCategoryLen {
		return errors.New("category cannot exceed 60 characters")
	}
	r.About = strings.TrimSpace(r.About)
	if utf8.RuneCountInString(r.About) < minBlogAboutLen {
		return errors.New("about must be at least 200 characters")
	}
	return nil
}

// UpdateBlogRequest represents a partial update to a Blog. Nil fields are
// left untouched.
type UpdateBlogRequest struct {
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
	About    *string `json:"about,omitempty"`
}

// Validate validates UpdateBlogRequest.
func (r *UpdateBlogRequest) Validate() error {
	if r.Title == nil && r.Category == nil && r.About == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return errors.New("title is required and cannot be empty")
		}
		if utf8.RuneCountInString(title) > maxBlogTitleLen {
			return errors.New("title cannot exceed 200 characters")
		}
		*r.Title = title
	}
	if r.Category != nil {
		category := strings.TrimSpace(*r.Category)
		if category == "" {
			return errors.New("category is required and cannot be empty")
		}
		if utf8.RuneCountInString(category) > maxBlogCategoryLen {
			return errors.New("category cannot exceed 60 characters")
		}
		*r.Category = category
	}
	if r.About != nil {
		about := strings.TrimSpace(*r.About)
		if utf8.RuneCountInString(about) < minBlogAboutLen {
			return errors.New("about must be at least 200 characters")
		}
		*r.About = about
	}
	return nil
}

// BlogsListOptions controls paging and filtering for listing blogs.
// Notes:
// - Q matches title via ILIKE substring.
// - Category matches exactly (case-insensitive).
type BlogsListOptions struct {
	Limit    int
	Offset   int
	Q        *string
	Category *string
}
