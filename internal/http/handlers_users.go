package httpx

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/blogforge/blogforge/internal/domain/model"
	"github.com/blogforge/blogforge/internal/ports"
)

// UserServiceInterface defines the interface for profile operations.
type UserServiceInterface interface {
	UpdateProfile(ctx context.Context, user *model.User, req model.UpdateProfileRequest, photo *ports.UploadInput) (*model.User, error)
	ListAdmins(ctx context.Context, limit, offset int) ([]*model.User, error)
}

// UserHandlers provides HTTP handlers for profile operations.
type UserHandlers struct {
	Svc    UserServiceInterface
	Logger *slog.Logger
}

func (h *UserHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Me returns the authenticated caller's profile.
// GET /api/user/me.
func (h *UserHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// UpdateMe updates the caller's profile fields and optionally replaces the
// profile photo.
// PUT /api/user/me (multipart form with optional "photo" file, or JSON).
func (h *UserHandlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req model.UpdateProfileRequest
	var photo *ports.UploadInput

	if isMultipart(r) {
		file, upload, formOK := parseProfileForm(w, r, &req)
		if !formOK {
			return
		}
		if file != nil {
			defer func() { _ = file.Close() }()
		}
		photo = upload
	} else if !DecodeJSON(w, r, &req) {
		return
	}

	updated, err := h.Svc.UpdateProfile(r.Context(), user, req, photo)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		if writeAppError(w, err) {
			return
		}
		h.logger().ErrorContext(r.Context(), "profile update failed", "error", err, "user_id", user.ID)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// Admins lists admin accounts with pagination. Admin-only route.
// GET /api/user/admins.
func (h *UserHandlers) Admins(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)

	window, err := FetchWindow(r.Context(), h.Svc.ListAdmins, limit, offset)
	if err != nil {
		if !writeAppError(w, err) {
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, window)
}

// parseProfileForm populates req from a multipart form. Absent fields stay
// nil so the service only touches what the caller sent.
func parseProfileForm(
	w http.ResponseWriter,
	r *http.Request,
	req *model.UpdateProfileRequest,
) (multipart.File, *ports.UploadInput, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return nil, nil, false
	}

	req.Name = formValuePtr(r, "name")
	req.Phone = formValuePtr(r, "phone")
	req.Education = formValuePtr(r, "education")

	return formFile(w, r, "photo")
}

// formValuePtr returns a pointer to the form value when the field was present
// in the submission, and nil when it was omitted.
func formValuePtr(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}
