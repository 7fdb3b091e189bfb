package httpx

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/blogforge/blogforge/internal/data"
	"github.com/blogforge/blogforge/internal/domain/model"
	"github.com/blogforge/blogforge/internal/ports"
)

// BlogServiceInterface defines the interface for blog post operations.
type BlogServiceInterface interface {
	Create(ctx context.Context, author *model.User, req model.CreateBlogRequest, image *ports.UploadInput) (*model.Blog, error)
	Read(ctx context.Context, id string) (*model.Blog, error)
	List(ctx context.Context, opts model.BlogsListOptions) ([]*model.Blog, error)
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*model.Blog, error)
	Update(ctx context.Context, actor *model.User, id string, req model.UpdateBlogRequest, image *ports.UploadInput) (*model.Blog, error)
	Delete(ctx context.Context, actor *model.User, id string) error
}

// BlogHandlers provides HTTP handlers for blog posts.
type BlogHandlers struct {
	Svc    BlogServiceInterface
	Logger *slog.Logger
}

func (h *BlogHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Create publishes a new post under the authenticated author.
// POST /api/blog (multipart form with optional "blogImage" file, or JSON).
func (h *BlogHandlers) Create(w http.ResponseWriter, r *http.Request) {
	author, ok := GetUserFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	var req model.CreateBlogRequest
	var image *ports.UploadInput

	if isMultipart(r) {
		file, upload, formOK := parseBlogCreateForm(w, r, &req)
		if !formOK {
			return
		}
		if file != nil {
			defer func() { _ = file.Close() }()
		}
		image = upload
	} else if !DecodeJSON(w, r, &req) {
		return
	}

	blog, err := h.Svc.Create(r.Context(), author, req, image)
	if err != nil {
		h.writeBlogError(w, r, err, "create_failed")
		return
	}

	WriteJSON(w, http.StatusCreated, blog)
}

// List returns a page of posts, optionally filtered by search term and
// category. Public route.
// GET /api/blog?q=<term>&category=<name>.
func (h *BlogHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	opts := model.BlogsListOptions{}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}
	if category := r.URL.Query().Get("category"); category != "" {
		opts.Category = &category
	}

	fetch := func(ctx context.Context, limit, offset int) ([]*model.Blog, error) {
		opts.Limit = limit
		opts.Offset = offset
		return h.Svc.List(ctx, opts)
	}

	window, err := FetchWindow(r.Context(), fetch, limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, window)
}

// Get returns a single post and counts the read. Public route.
// GET /api/blog/{id}.
func (h *BlogHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("blog id is required")})
		return
	}

	blog, err := h.Svc.Read(r.Context(), id)
	if err != nil {
		h.writeBlogError(w, r, err, "get_failed")
		return
	}

	WriteJSON(w, http.StatusOK, blog)
}

// Mine lists the authenticated author's own posts.
// GET /api/blog/mine.
func (h *BlogHandlers) Mine(w http.ResponseWriter, r *http.Request) {
	author, ok := GetUserFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	fetch := func(ctx context.Context, limit, offset int) ([]*model.Blog, error) {
		return h.Svc.ListByAuthor(ctx, author.ID, limit, offset)
	}

	window, err := FetchWindow(r.Context(), fetch, limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, window)
}

// Update edits a post. Only the author or an admin may edit.
// PUT /api/blog/{id} (multipart form with optional "blogImage" file, or JSON).
func (h *BlogHandlers) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := GetUserFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("blog id is required")})
		return
	}

	var req model.UpdateBlogRequest
	var image *ports.UploadInput

	if isMultipart(r) {
		file, upload, formOK := parseBlogUpdateForm(w, r, &req)
		if !formOK {
			return
		}
		if file != nil {
			defer func() { _ = file.Close() }()
		}
		image = upload
	} else if !DecodeJSON(w, r, &req) {
		return
	}

	blog, err := h.Svc.Update(r.Context(), actor, id, req, image)
	if err != nil {
		h.writeBlogError(w, r, err, "update_failed")
		return
	}

	WriteJSON(w, http.StatusOK, blog)
}

// Delete removes a post and its cover image. Only the author or an admin may
// delete.
// DELETE /api/blog/{id}.
func (h *BlogHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := GetUserFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("blog id is required")})
		return
	}

	if err := h.Svc.Delete(r.Context(), actor, id); err != nil {
		h.writeBlogError(w, r, err, "delete_failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// writeBlogError maps blog service failures to HTTP statuses. The not-found
// sentinel keeps its specific code; everything else defers to the shared
// AppError classification before the logged 500 fallback.
func (h *BlogHandlers) writeBlogError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, data.ErrBlogNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "blog_not_found", Err: err})
	case isValidationError(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
	case writeAppError(w, err):
	default:
		h.logger().ErrorContext(r.Context(), "blog operation failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: fallback, Err: err})
	}
}

func writeAuthRequired(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}

func parseBlogCreateForm(
	w http.ResponseWriter,
	r *http.Request,
	req *model.CreateBlogRequest,
) (multipart.File, *ports.UploadInput, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return nil, nil, false
	}

	req.Title = r.FormValue("title")
	req.Category = r.FormValue("category")
	req.About = r.FormValue("about")

	return formFile(w, r, "blogImage")
}

func parseBlogUpdateForm(
	w http.ResponseWriter,
	r *http.Request,
	req *model.UpdateBlogRequest,
) (multipart.File, *ports.UploadInput, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return nil, nil, false
	}

	req.Title = formValuePtr(r, "title")
	req.Category = formValuePtr(r, "category")
	req.About = formValuePtr(r, "about")

	return formFile(w, r, "blogImage")
}
