package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/blogforge/blogforge/internal/core"
	"github.com/blogforge/blogforge/internal/data"
	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/domain/model"
	"github.com/blogforge/blogforge/internal/ports"
)

// Hand-written in-memory fakes for the repository and adapter interfaces.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*model.User
	nextID int
	// failWith, when set, is returned from every method.
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, params core.CreateUserParams) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Email == params.Email {
			return nil, data.ErrEmailExists
		}
	}
	f.nextID++
	now := time.Now().UTC()
	user := &model.User{
		ID:           fmt.Sprintf("user-%d", f.nextID),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Phone:        params.Phone,
		Education:    params.Education,
		Role:         params.Role,
		Photo:        params.Photo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[user.ID] = user
	return cloneUser(user), nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[id]
	if !ok {
		return nil, data.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, data.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id string, req model.UpdateProfileRequest) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, data.ErrUserNotFound
	}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Education != nil {
		u.Education = strings.TrimSpace(*req.Education)
	}
	return cloneUser(u), nil
}

func (f *fakeUserRepo) SetPhoto(_ context.Context, id string, photo model.MediaAsset) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, data.ErrUserNotFound
	}
	u.Photo = photo
	return cloneUser(u), nil
}

func (f *fakeUserRepo) ListAdmins(_ context.Context, limit, offset int) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var admins []*model.User
	for _, u := range f.users {
		if u.Role == domainauth.RoleAdmin {
			admins = append(admins, cloneUser(u))
		}
	}
	if offset >= len(admins) {
		return nil, nil
	}
	admins = admins[offset:]
	if limit > 0 && limit < len(admins) {
		admins = admins[:limit]
	}
	return admins, nil
}

func (f *fakeUserRepo) delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func cloneUser(u *model.User) *model.User {
	c := *u
	return &c
}

type fakeBlogRepo struct {
	mu     sync.Mutex
	blogs  map[string]*model.Blog
	users  *fakeUserRepo
	nextID int
}

func newFakeBlogRepo(users *fakeUserRepo) *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[string]*model.Blog), users: users}
}

func (f *fakeBlogRepo) Create(ctx context.Context, authorID string, req model.CreateBlogRequest, image model.MediaAsset) (*model.Blog, error) {
	author, err := f.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now().UTC()
	blog := &model.Blog{
		ID:             fmt.Sprintf("blog-%d", f.nextID),
		Title:          req.Title,
		Category:       req.Category,
		About:          req.About,
		Image:          image,
		AuthorID:       author.ID,
		AuthorName:     author.Name,
		AuthorPhotoURL: author.Photo.URL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.blogs[blog.ID] = blog
	return cloneBlog(blog), nil
}

func (f *fakeBlogRepo) GetByID(_ context.Context, id string) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok {
		return nil, data.ErrBlogNotFound
	}
	return cloneBlog(b), nil
}

func (f *fakeBlogRepo) GetByIDIncrementingViews(_ context.Context, id string) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok {
		return nil, data.ErrBlogNotFound
	}
	b.Views++
	return cloneBlog(b), nil
}

func (f *fakeBlogRepo) List(_ context.Context, _ model.BlogsListOptions) ([]*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Blog
	for _, b := range f.blogs {
		out = append(out, cloneBlog(b))
	}
	return out, nil
}

func (f *fakeBlogRepo) ListByAuthor(_ context.Context, authorID string, _, _ int) ([]*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Blog
	for _, b := range f.blogs {
		if b.AuthorID == authorID {
			out = append(out, cloneBlog(b))
		}
	}
	return out, nil
}

func (f *fakeBlogRepo) Update(_ context.Context, id string, req model.UpdateBlogRequest) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok {
		return nil, data.ErrBlogNotFound
	}
	if req.Title != nil {
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		b.Category = strings.TrimSpace(*req.Category)
	}
	if req.About != nil {
		b.About = strings.TrimSpace(*req.About)
	}
	return cloneBlog(b), nil
}

func (f *fakeBlogRepo) SetImage(_ context.Context, id string, image model.MediaAsset) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok {
		return nil, data.ErrBlogNotFound
	}
	b.Image = image
	return cloneBlog(b), nil
}

func (f *fakeBlogRepo) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blogs[id]; !ok {
		return false, nil
	}
	delete(f.blogs, id)
	return true, nil
}

func cloneBlog(b *model.Blog) *model.Blog {
	c := *b
	return &c
}

type fakeContactRepo struct {
	mu       sync.Mutex
	messages []*model.ContactMessage
}

func (f *fakeContactRepo) Create(_ context.Context, req model.SubmitContactRequest) (*model.ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := &model.ContactMessage{
		ID:        fmt.Sprintf("msg-%d", len(f.messages)+1),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeContactRepo) List(_ context.Context, limit, offset int) ([]*model.ContactMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if offset >= len(f.messages) {
		return nil, nil
	}
	out := f.messages[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type fakeMediaStore struct {
	mu        sync.Mutex
	uploads   int
	assets    map[string]bool
	uploadErr error
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{assets: make(map[string]bool)}
}

func (f *fakeMediaStore) Upload(_ context.Context, in ports.UploadInput) (model.MediaAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return model.MediaAsset{}, f.uploadErr
	}
	if in.Reader != nil {
		if _, err := io.Copy(io.Discard, in.Reader); err != nil {
			return model.MediaAsset{}, err
		}
	}
	f.uploads++
	publicID := fmt.Sprintf("fake/%d", f.uploads)
	f.assets[publicID] = true
	return model.MediaAsset{PublicID: publicID, URL: "https://media.test/" + publicID}, nil
}

func (f *fakeMediaStore) Destroy(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.assets, publicID)
	return nil
}

func (f *fakeMediaStore) has(publicID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.assets[publicID]
}

type fakeRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]bool
	err     error
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: make(map[string]bool)}
}

func (f *fakeRevocationStore) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.revoked[tokenID] = true
	return nil
}

func (f *fakeRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[tokenID], nil
}

var errBackendDown = errors.New("backend unavailable")
