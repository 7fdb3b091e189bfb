package httpx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blogforge/blogforge/internal/data"
	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/domain/model"
	apperrors "github.com/blogforge/blogforge/internal/errors"
	"github.com/blogforge/blogforge/internal/ports"
)

// Hand-written fakes for the narrow service interfaces the handlers consume.
// They return the same sentinel errors the real services do so the handlers'
// status mapping gets exercised.

var (
	errBlogMissing     = data.ErrBlogNotFound
	errNotYours        = apperrors.Forbidden("you do not have permission to modify this blog")
	errNothingToUpdate = errors.New("at least one field must be updated")
)

func testUser(id string, role domainauth.Role) *model.User {
	return &model.User{
		ID:    id,
		Name:  "Test User",
		Email: id + "@example.com",
		Role:  role,
	}
}

type fakeAuthenticator struct {
	user *model.User
	err  error
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, rawToken string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if rawToken == "" {
		return nil, fmt.Errorf("empty token")
	}
	return f.user, nil
}

type fakeAuthService struct {
	registerUser *model.User
	registerErr  error

	loginUser *model.User
	loginTok  domainauth.Token
	loginErr  error

	loggedOut []string
}

func (f *fakeAuthService) Register(_ context.Context, req model.RegisterRequest, _ *ports.UploadInput) (*model.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return f.registerUser, nil
}

func (f *fakeAuthService) Login(_ context.Context, _ model.LoginRequest) (*model.User, domainauth.Token, error) {
	if f.loginErr != nil {
		return nil, domainauth.Token{}, f.loginErr
	}
	return f.loginUser, f.loginTok, nil
}

func (f *fakeAuthService) Logout(_ context.Context, rawToken string) error {
	f.loggedOut = append(f.loggedOut, rawToken)
	return nil
}

type fakeBlogService struct {
	blogs map[string]*model.Blog
	err   error
}

func newFakeBlogService() *fakeBlogService {
	return &fakeBlogService{blogs: make(map[string]*model.Blog)}
}

func (f *fakeBlogService) Create(_ context.Context, author *model.User, req model.CreateBlogRequest, image *ports.UploadInput) (*model.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	blog := &model.Blog{
		ID:         fmt.Sprintf("blog-%d", len(f.blogs)+1),
		Title:      req.Title,
		Category:   req.Category,
		About:      req.About,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		CreatedAt:  time.Now().UTC(),
	}
	if image != nil {
		blog.Image = model.MediaAsset{PublicID: "fake/cover", URL: "https://media.test/fake/cover"}
	}
	f.blogs[blog.ID] = blog
	return blog, nil
}

func (f *fakeBlogService) Read(_ context.Context, id string) (*model.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	blog, ok := f.blogs[id]
	if !ok {
		return nil, errBlogMissing
	}
	blog.Views++
	return blog, nil
}

func (f *fakeBlogService) List(_ context.Context, opts model.BlogsListOptions) ([]*model.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Blog
	for _, b := range f.blogs {
		if opts.Category != nil && b.Category != *opts.Category {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBlogService) ListByAuthor(_ context.Context, authorID string, _, _ int) ([]*model.Blog, error) {
	var out []*model.Blog
	for _, b := range f.blogs {
		if b.AuthorID == authorID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBlogService) Update(_ context.Context, actor *model.User, id string, req model.UpdateBlogRequest, _ *ports.UploadInput) (*model.Blog, error) {
	blog, ok := f.blogs[id]
	if !ok {
		return nil, errBlogMissing
	}
	if blog.AuthorID != actor.ID && actor.Role != domainauth.RoleAdmin {
		return nil, errNotYours
	}
	if req.Title != nil {
		blog.Title = *req.Title
	}
	return blog, nil
}

func (f *fakeBlogService) Delete(_ context.Context, actor *model.User, id string) error {
	blog, ok := f.blogs[id]
	if !ok {
		return errBlogMissing
	}
	if blog.AuthorID != actor.ID && actor.Role != domainauth.RoleAdmin {
		return errNotYours
	}
	delete(f.blogs, id)
	return nil
}

type fakeUserService struct {
	admins    []*model.User
	updateErr error
}

func (f *fakeUserService) UpdateProfile(_ context.Context, user *model.User, req model.UpdateProfileRequest, photo *ports.UploadInput) (*model.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if req.Name == nil && req.Phone == nil && req.Education == nil && photo == nil {
		return nil, errNothingToUpdate
	}
	updated := *user
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if photo != nil {
		updated.Photo = model.MediaAsset{PublicID: "fake/photo", URL: "https://media.test/fake/photo"}
	}
	return &updated, nil
}

func (f *fakeUserService) ListAdmins(_ context.Context, limit, offset int) ([]*model.User, error) {
	if offset >= len(f.admins) {
		return nil, nil
	}
	out := f.admins[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type fakeContactService struct {
	messages []*model.ContactMessage
}

func (f *fakeContactService) Submit(_ context.Context, req model.SubmitContactRequest) (*model.ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	msg := &model.ContactMessage{
		ID:      fmt.Sprintf("msg-%d", len(f.messages)+1),
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeContactService) List(_ context.Context, limit, offset int) ([]*model.ContactMessage, error) {
	if offset >= len(f.messages) {
		return nil, nil
	}
	out := f.messages[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
