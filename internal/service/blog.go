package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blogforge/blogforge/internal/core"
	"github.com/blogforge/blogforge/internal/data"
	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/domain/model"
	apperrors "github.com/blogforge/blogforge/internal/errors"
	"github.com/blogforge/blogforge/internal/ports"
)

// BlogServiceOptions groups dependencies for BlogService.
type BlogServiceOptions struct {
	Blogs  core.BlogRepository
	Media  ports.MediaStore
	Logger *slog.Logger
}

// BlogService handles blog post CRUD, cover images, and view counting.
type BlogService struct {
	blogs  core.BlogRepository
	media  ports.MediaStore
	logger *slog.Logger
}

// NewBlogService constructs a new BlogService.
func NewBlogService(opts BlogServiceOptions) *BlogService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BlogService{
		blogs:  opts.Blogs,
		media:  opts.Media,
		logger: logger.With("component", "blogs"),
	}
}

// Create publishes a new blog post by the given author. The cover image
// upload is optional.
func (s *BlogService) Create(
	ctx context.Context,
	author *model.User,
	req model.CreateBlogRequest,
	image *ports.UploadInput,
) (*model.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var asset model.MediaAsset
	if image != nil {
		var err error
		asset, err = s.media.Upload(ctx, *image)
		if err != nil {
			return nil, fmt.Errorf("upload cover image: %w", err)
		}
	}

	blog, err := s.blogs.Create(ctx, author.ID, req, asset)
	if err != nil {
		if !asset.IsZero() {
			if destroyErr := s.media.Destroy(ctx, asset.PublicID); destroyErr != nil {
				s.logger.WarnContext(ctx, "failed to clean up orphaned cover image",
					"public_id", asset.PublicID, "err", destroyErr)
			}
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "blog created", "blog_id", blog.ID, "author_id", author.ID)
	return blog, nil
}

// Get returns a blog post without touching its view counter.
func (s *BlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	return s.blogs.GetByID(ctx, id)
}

// Read returns a blog post and counts the read as a view.
func (s *BlogService) Read(ctx context.Context, id string) (*model.Blog, error) {
	return s.blogs.GetByIDIncrementingViews(ctx, id)
}

// List returns a page of blog posts with optional title and category filters.
func (s *BlogService) List(ctx context.Context, opts model.BlogsListOptions) ([]*model.Blog, error) {
	return s.blogs.List(ctx, opts)
}

// ListByAuthor returns a page of the given author's posts.
func (s *BlogService) ListByAuthor(
	ctx context.Context,
	authorID string,
	limit, offset int,
) ([]*model.Blog, error) {
	return s.blogs.ListByAuthor(ctx, authorID, limit, offset)
}

// Update edits a blog post. Only the author or an admin may edit; the image
// upload, when present, replaces the cover.
func (s *BlogService) Update(
	ctx context.Context,
	actor *model.User,
	id string,
	req model.UpdateBlogRequest,
	image *ports.UploadInput,
) (*model.Blog, error) {
	blog, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	updated := blog
	if req.Title != nil || req.Category != nil || req.About != nil {
		updated, err = s.blogs.Update(ctx, id, req)
		if err != nil {
			return nil, err
		}
	}

	if image != nil {
		asset, uploadErr := s.media.Upload(ctx, *image)
		if uploadErr != nil {
			return nil, fmt.Errorf("upload cover image: %w", uploadErr)
		}

		old := blog.Image
		updated, err = s.blogs.SetImage(ctx, id, asset)
		if err != nil {
			if destroyErr := s.media.Destroy(ctx, asset.PublicID); destroyErr != nil {
				s.logger.WarnContext(ctx, "failed to clean up orphaned cover image",
					"public_id", asset.PublicID, "err", destroyErr)
			}
			return nil, err
		}

		if !old.IsZero() {
			if destroyErr := s.media.Destroy(ctx, old.PublicID); destroyErr != nil {
				s.logger.WarnContext(ctx, "failed to remove replaced cover image",
					"public_id", old.PublicID, "err", destroyErr)
			}
		}
	}

	return updated, nil
}

// Delete removes a blog post and its cover image. Only the author or an
// admin may delete.
func (s *BlogService) Delete(ctx context.Context, actor *model.User, id string) error {
	blog, err := s.authorize(ctx, actor, id)
	if err != nil {
		return err
	}

	deleted, err := s.blogs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return data.ErrBlogNotFound
	}

	if !blog.Image.IsZero() {
		if destroyErr := s.media.Destroy(ctx, blog.Image.PublicID); destroyErr != nil {
			s.logger.WarnContext(ctx, "failed to remove deleted blog cover image",
				"public_id", blog.Image.PublicID, "err", destroyErr)
		}
	}

	s.logger.InfoContext(ctx, "blog deleted", "blog_id", id, "actor_id", actor.ID)
	return nil
}

// authorize loads the blog and checks that the actor may modify it.
func (s *BlogService) authorize(
	ctx context.Context,
	actor *model.User,
	id string,
) (*model.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != actor.ID && actor.Role != domainauth.RoleAdmin {
		return nil, apperrors.Forbidden("you do not have permission to modify this blog")
	}
	return blog, nil
}
