package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/blogforge/blogforge/internal/domain/model"
)

// ContactServiceInterface defines the interface for contact form operations.
type ContactServiceInterface interface {
	Submit(ctx context.Context, req model.SubmitContactRequest) (*model.ContactMessage, error)
	List(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error)
}

// ContactHandlers provides HTTP handlers for the contact form.
type ContactHandlers struct {
	Svc    ContactServiceInterface
	Logger *slog.Logger
}

func (h *ContactHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Submit accepts a contact form message. Public route.
// POST /api/contact.
func (h *ContactHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitContactRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	msg, err := h.Svc.Submit(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		if writeAppError(w, err) {
			return
		}
		h.logger().ErrorContext(r.Context(), "contact submit failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "submit_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, msg)
}

// List returns submitted messages, newest first. Admin-only route.
// GET /api/contact.
func (h *ContactHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)

	window, err := FetchWindow(r.Context(), h.Svc.List, limit, offset)
	if err != nil {
		if !writeAppError(w, err) {
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, window)
}
