// Package core defines the repository interfaces the service layer depends
// on. Implementations live in internal/data; the interfaces keep services
// testable without a database.
package core

import (
	"context"

	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/domain/model"
)

// CreateUserParams carries the already-validated, already-hashed fields for a
// new account row. Password hashing happens in the service layer.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Education    string
	Role         domainauth.Role
	Photo        model.MediaAsset
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, req model.UpdateProfileRequest) (*model.User, error)
	SetPhoto(ctx context.Context, id string, photo model.MediaAsset) (*model.User, error)
	ListAdmins(ctx context.Context, limit, offset int) ([]*model.User, error)
}

// BlogRepository defines persistence operations for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, authorID string, req model.CreateBlogRequest, image model.MediaAsset) (*model.Blog, error)
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	GetByIDIncrementingViews(ctx context.Context, id string) (*model.Blog, error)
	List(ctx context.Context, opts model.BlogsListOptions) ([]*model.Blog, error)
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*model.Blog, error)
	Update(ctx context.Context, id string, req model.UpdateBlogRequest) (*model.Blog, error)
	SetImage(ctx context.Context, id string, image model.MediaAsset) (*model.Blog, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ContactRepository defines persistence operations for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, req model.SubmitContactRequest) (*model.ContactMessage, error)
	List(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error)
}
