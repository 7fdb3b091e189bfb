// Package httpx provides the JSON API handlers and middleware for the
// blogforge server.
package httpx

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/blogforge/blogforge/internal/data"
	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/domain/model"
	"github.com/blogforge/blogforge/internal/ports"
	"github.com/blogforge/blogforge/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest, photo *ports.UploadInput) (*model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.User, domainauth.Token, error)
	Logout(ctx context.Context, rawToken string) error
}

// CookieConfig controls how the session cookie is written.
type CookieConfig struct {
	Domain string
	// ForceSecure marks cookies Secure even when the request arrived over
	// plain HTTP, for deployments that terminate TLS upstream.
	ForceSecure bool
}

// AuthHandlers provides HTTP handlers for registration and session management.
type AuthHandlers struct {
	Svc    AuthServiceInterface
	Cookie CookieConfig
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Register handles account creation.
// POST /api/user/register (multipart form with optional "photo" file, or JSON).
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	var photo *ports.UploadInput

	if isMultipart(r) {
		file, cleanup, ok := parseRegisterForm(w, r, &req)
		if !ok {
			return
		}
		defer cleanup()
		photo = file
	} else if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Register(r.Context(), req, photo)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEmailExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "email_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		case writeAppError(w, err):
		default:
			h.logger().ErrorContext(r.Context(), "register failed", "error", err)
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "register_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and issues the session cookie.
// POST /api/user/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, tok, err := h.Svc.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_credentials", Err: err})
			return
		}
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		h.logger().ErrorContext(r.Context(), "login failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}

	h.setSessionCookie(w, r, tok)
	WriteJSON(w, http.StatusOK, user)
}

// Logout revokes the current session token and clears the cookie.
// POST /api/user/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearSessionCookie(w, r)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// setSessionCookie writes the session cookie with the token's own expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, tok domainauth.Token) {
	secure := h.cookieSecure(r)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    tok.Raw,
		Path:     "/",
		Domain:   h.Cookie.Domain,
		HttpOnly: true,
		Secure:   secure,
		SameSite: cookieSameSite(secure),
		Expires:  tok.ExpiresAt,
		MaxAge:   int(time.Until(tok.ExpiresAt).Seconds()),
	})
}

// clearSessionCookie expires the session cookie on the client. Attributes
// mirror setSessionCookie so browsers match the cookie during deletion.
func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	secure := h.cookieSecure(r)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.Cookie.Domain,
		HttpOnly: true,
		Secure:   secure,
		SameSite: cookieSameSite(secure),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

func (h *AuthHandlers) cookieSecure(r *http.Request) bool {
	return h.Cookie.ForceSecure ||
		r.TLS != nil ||
		strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// cookieSameSite picks the strictest mode the browser will accept. SameSite
// None requires Secure, so plain HTTP deployments fall back to Lax.
func cookieSameSite(secure bool) http.SameSite {
	if secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// isMultipart reports whether the request body is a multipart form.
func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// parseRegisterForm populates req from a multipart form and extracts the
// optional "photo" file. The returned cleanup closes the file; ok is false
// when an error response has already been written.
func parseRegisterForm(
	w http.ResponseWriter,
	r *http.Request,
	req *model.RegisterRequest,
) (*ports.UploadInput, func(), bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return nil, nil, false
	}

	req.Name = r.FormValue("name")
	req.Email = r.FormValue("email")
	req.Phone = r.FormValue("phone")
	req.Password = r.FormValue("password")
	req.Education = r.FormValue("education")
	req.Role = r.FormValue("role")

	file, upload, ok := formFile(w, r, "photo")
	if !ok {
		return nil, nil, false
	}

	cleanup := func() {
		if file != nil {
			_ = file.Close()
		}
	}
	return upload, cleanup, true
}

// formFile opens the named optional file field. A missing field is not an
// error; any other failure writes a 400 and returns ok=false.
func formFile(
	w http.ResponseWriter,
	r *http.Request,
	field string,
) (multipart.File, *ports.UploadInput, bool) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, true
	}
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return nil, nil, false
	}

	return file, &ports.UploadInput{Reader: file, Filename: header.Filename}, true
}
