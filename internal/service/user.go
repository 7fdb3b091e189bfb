package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blogforge/blogforge/internal/core"
	"github.com/blogforge/blogforge/internal/domain/model"
	"github.com/blogforge/blogforge/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users  core.UserRepository
	Media  ports.MediaStore
	Logger *slog.Logger
}

// UserService handles profile reads and updates.
type UserService struct {
	users  core.UserRepository
	media  ports.MediaStore
	logger *slog.Logger
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:  opts.Users,
		media:  opts.Media,
		logger: logger.With("component", "users"),
	}
}

// Profile returns the account for the given user ID.
func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile updates the caller's mutable profile fields and, when a photo
// upload is present, replaces the profile photo.
func (s *UserService) UpdateProfile(
	ctx context.Context,
	user *model.User,
	req model.UpdateProfileRequest,
	photo *ports.UploadInput,
) (*model.User, error) {
	if req.Name == nil && req.Phone == nil && req.Education == nil && photo == nil {
		return nil, errors.New("at least one field must be updated")
	}

	updated := user

	if req.Name != nil || req.Phone != nil || req.Education != nil {
		var err error
		updated, err = s.users.UpdateProfile(ctx, user.ID, req)
		if err != nil {
			return nil, err
		}
	}

	if photo != nil {
		asset, err := s.media.Upload(ctx, *photo)
		if err != nil {
			return nil, fmt.Errorf("upload profile photo: %w", err)
		}

		old := user.Photo
		updated, err = s.users.SetPhoto(ctx, user.ID, asset)
		if err != nil {
			if destroyErr := s.media.Destroy(ctx, asset.PublicID); destroyErr != nil {
				s.logger.WarnContext(ctx, "failed to clean up orphaned photo",
					"public_id", asset.PublicID, "err", destroyErr)
			}
			return nil, err
		}

		// Old photo removal is best-effort; a leaked asset is logged, not fatal.
		if !old.IsZero() {
			if destroyErr := s.media.Destroy(ctx, old.PublicID); destroyErr != nil {
				s.logger.WarnContext(ctx, "failed to remove replaced photo",
					"public_id", old.PublicID, "err", destroyErr)
			}
		}
	}

	return updated, nil
}

// ListAdmins returns a page of admin accounts, newest first.
func (s *UserService) ListAdmins(ctx context.Context, limit, offset int) ([]*model.User, error) {
	return s.users.ListAdmins(ctx, limit, offset)
}
