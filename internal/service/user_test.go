package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/domain/model"
	"github.com/blogforge/blogforge/internal/ports"
	"github.com/blogforge/blogforge/internal/testutil"
)

func newTestUserService(t *testing.T) (*UserService, *fakeUserRepo, *fakeMediaStore) {
	t.Helper()
	users := newFakeUserRepo()
	media := newFakeMediaStore()
	svc := NewUserService(UserServiceOptions{Users: users, Media: media})
	return svc, users, media
}

func TestUserService_UpdateProfileFields(t *testing.T) {
	svc, users, _ := newTestUserService(t)
	user := seedUser(t, users, "profile@example.com", domainauth.RoleUser)
	ctx := context.Background()

	updated, err := svc.UpdateProfile(ctx, user, model.UpdateProfileRequest{
		Name:  testutil.StringPtr("New Name"),
		Phone: testutil.StringPtr("555-0101"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "555-0101", updated.Phone)
}

func TestUserService_UpdateProfileNothingToDo(t *testing.T) {
	svc, users, _ := newTestUserService(t)
	user := seedUser(t, users, "empty@example.com", domainauth.RoleUser)

	_, err := svc.UpdateProfile(context.Background(), user, model.UpdateProfileRequest{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one field")
}

func TestUserService_UpdateProfileReplacesPhoto(t *testing.T) {
	svc, users, media := newTestUserService(t)
	user := seedUser(t, users, "photo@example.com", domainauth.RoleUser)
	ctx := context.Background()

	// First photo.
	withPhoto, err := svc.UpdateProfile(ctx, user, model.UpdateProfileRequest{},
		&ports.UploadInput{Reader: strings.NewReader("first")})
	require.NoError(t, err)
	firstID := withPhoto.Photo.PublicID
	assert.True(t, media.has(firstID))

	// Replacement destroys the first.
	replaced, err := svc.UpdateProfile(ctx, withPhoto, model.UpdateProfileRequest{},
		&ports.UploadInput{Reader: strings.NewReader("second")})
	require.NoError(t, err)
	assert.NotEqual(t, firstID, replaced.Photo.PublicID)
	assert.True(t, media.has(replaced.Photo.PublicID))
	assert.False(t, media.has(firstID))
}

func TestUserService_ListAdmins(t *testing.T) {
	svc, users, _ := newTestUserService(t)
	seedUser(t, users, "a1@example.com", domainauth.RoleAdmin)
	seedUser(t, users, "a2@example.com", domainauth.RoleAdmin)
	seedUser(t, users, "u1@example.com", domainauth.RoleUser)

	admins, err := svc.ListAdmins(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Len(t, admins, 2)
}
