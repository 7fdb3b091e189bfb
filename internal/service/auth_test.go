package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogforge/blogforge/internal/adapters/token"
	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/domain/model"
	"github.com/blogforge/blogforge/internal/ports"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeMediaStore, *fakeRevocationStore) {
	t.Helper()
	issuer, err := token.NewJWTIssuer(token.Config{Secret: "test-secret"})
	require.NoError(t, err)

	users := newFakeUserRepo()
	media := newFakeMediaStore()
	revocations := newFakeRevocationStore()

	svc := NewAuthService(AuthServiceOptions{
		Users:       users,
		Tokens:      issuer,
		Revocations: revocations,
		Media:       media,
	})
	return svc, users, media, revocations
}

func registerRequest(email string) model.RegisterRequest {
	return model.RegisterRequest{
		Name:     "Asha Blogger",
		Email:    email,
		Phone:    "555-0100",
		Password: "correct horse battery",
		Role:     "user",
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, _, media, _ := newTestAuthService(t)
	ctx := context.Background()

	photo := &ports.UploadInput{Reader: strings.NewReader("png bytes"), Filename: "me.png"}
	user, err := svc.Register(ctx, registerRequest("asha@example.com"), photo)
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domainauth.RoleUser, user.Role)
	assert.True(t, media.has(user.Photo.PublicID))

	// Stored hash verifies against the original password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse battery")))
}

func TestAuthService_Register_DuplicateEmailCleansUpPhoto(t *testing.T) {
	svc, _, media, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("dup@example.com"), nil)
	require.NoError(t, err)

	photo := &ports.UploadInput{Reader: strings.NewReader("png bytes"), Filename: "me.png"}
	_, err = svc.Register(ctx, registerRequest("dup@example.com"), photo)
	require.Error(t, err)

	// The second upload was rolled back.
	assert.False(t, media.has("fake/1"))
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerRequest("login@example.com"), nil)
	require.NoError(t, err)

	user, tok, err := svc.Login(ctx, model.LoginRequest{
		Email:    "login@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tok.Raw)
	assert.Equal(t, registered.ID, tok.UserID)
}

func TestAuthService_Login_Rejections(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("reject@example.com"), nil)
	require.NoError(t, err)

	// Unknown email, wrong password, and role mismatch all collapse to the
	// same error.
	_, _, err = svc.Login(ctx, model.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, model.LoginRequest{Email: "reject@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, model.LoginRequest{
		Email:    "reject@example.com",
		Password: "correct horse battery",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerRequest("authn@example.com"), nil)
	require.NoError(t, err)

	_, tok, err := svc.Login(ctx, model.LoginRequest{
		Email:    "authn@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, tok.Raw)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthService_Authenticate_BadTokens(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	svc, users, _, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerRequest("gone@example.com"), nil)
	require.NoError(t, err)

	_, tok, err := svc.Login(ctx, model.LoginRequest{
		Email:    "gone@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	users.delete(registered.ID)

	// Valid credential, vanished account: forbidden, not unauthenticated.
	_, err = svc.Authenticate(ctx, tok.Raw)
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestAuthService_Authenticate_InfraFailureFailsClosed(t *testing.T) {
	svc, _, _, revocations := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("infra@example.com"), nil)
	require.NoError(t, err)

	_, tok, err := svc.Login(ctx, model.LoginRequest{
		Email:    "infra@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	revocations.err = errBackendDown

	_, err = svc.Authenticate(ctx, tok.Raw)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
	assert.NotErrorIs(t, err, ErrUnknownUser)
	assert.ErrorIs(t, err, errBackendDown)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("logout@example.com"), nil)
	require.NoError(t, err)

	_, tok, err := svc.Login(ctx, model.LoginRequest{
		Email:    "logout@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, tok.Raw))

	_, err = svc.Authenticate(ctx, tok.Raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_LogoutWithBadTokenIsNoop(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
