package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogforge/blogforge/internal/core"
	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/domain/model"
	"github.com/blogforge/blogforge/internal/testutil"
)

func testUserParams(email string, role domainauth.Role) core.CreateUserParams {
	return core.CreateUserParams{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakehashfortesting",
		Phone:        "555-0100",
		Education:    "BSc",
		Role:         role,
		Photo: model.MediaAsset{
			PublicID: "avatars/test",
			URL:      "https://media.example.com/avatars/test.png",
		},
	}
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, testUserParams("asha@example.com", domainauth.RoleUser))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "asha@example.com", created.Email)
	assert.Equal(t, domainauth.RoleUser, created.Role)
	assert.Equal(t, "avatars/test", created.Photo.PublicID)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byEmail, err := repo.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, testUserParams("dup@example.com", domainauth.RoleUser))
	require.NoError(t, err)

	_, err = repo.Create(ctx, testUserParams("dup@example.com", domainauth.RoleAdmin))
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepo_GetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepo_UpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, testUserParams("upd@example.com", domainauth.RoleUser))
	require.NoError(t, err)

	updated, err := repo.UpdateProfile(ctx, created.ID, model.UpdateProfileRequest{
		Name:  testutil.StringPtr("Renamed User"),
		Phone: testutil.StringPtr("555-0199"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", updated.Name)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "BSc", updated.Education)

	_, err = repo.UpdateProfile(ctx, "00000000-0000-0000-0000-000000000000", model.UpdateProfileRequest{
		Name: testutil.StringPtr("Ghost"),
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepo_SetPhoto(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, testUserParams("photo@example.com", domainauth.RoleUser))
	require.NoError(t, err)

	updated, err := repo.SetPhoto(ctx, created.ID, model.MediaAsset{
		PublicID: "avatars/new",
		URL:      "https://media.example.com/avatars/new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "avatars/new", updated.Photo.PublicID)
	assert.Equal(t, "https://media.example.com/avatars/new.png", updated.Photo.URL)
}

func TestUserRepo_ListAdmins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewUserRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, testUserParams("admin1@example.com", domainauth.RoleAdmin))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testUserParams("admin2@example.com", domainauth.RoleAdmin))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testUserParams("reader@example.com", domainauth.RoleUser))
	require.NoError(t, err)

	admins, err := repo.ListAdmins(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	for _, a := range admins {
		assert.Equal(t, domainauth.RoleAdmin, a.Role)
	}

	page, err := repo.ListAdmins(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
