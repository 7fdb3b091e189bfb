package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/blogforge/blogforge/internal/core"
	"github.com/blogforge/blogforge/internal/data"
	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/domain/model"
	"github.com/blogforge/blogforge/internal/ports"
)

// Authentication outcomes. The HTTP layer maps these to status codes:
// ErrInvalidCredentials and ErrInvalidToken deny with 401, ErrUnknownUser
// with 403. Anything else is treated as an infrastructure failure and the
// request is denied with 500; a backend outage never lets a caller through.
var (
	// ErrInvalidCredentials is returned when login email, password, or role do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for tokens that are missing, malformed, expired, or revoked.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnknownUser is returned when a verified token references an account that no longer exists.
	ErrUnknownUser = errors.New("unknown user")
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users  core.UserRepository
	Tokens ports.TokenIssuer
	// Revocations is optional. When nil, logout cannot invalidate tokens
	// early and they simply age out at their natural expiry.
	Revocations ports.RevocationStore
	Media       ports.MediaStore
	Logger      *slog.Logger
}

// AuthService orchestrates registration, login, logout, and token-based
// request authentication.
type AuthService struct {
	users       core.UserRepository
	tokens      ports.TokenIssuer
	revocations ports.RevocationStore
	media       ports.MediaStore
	logger      *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:       opts.Users,
		tokens:      opts.Tokens,
		revocations: opts.Revocations,
		media:       opts.Media,
		logger:      logger.With("component", "auth"),
	}
}

// Register creates a new account. The photo upload is optional.
func (s *AuthService) Register(
	ctx context.Context,
	req model.RegisterRequest,
	photo *ports.UploadInput,
) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var asset model.MediaAsset
	if photo != nil {
		asset, err = s.media.Upload(ctx, *photo)
		if err != nil {
			return nil, fmt.Errorf("upload profile photo: %w", err)
		}
	}

	user, err := s.users.Create(ctx, core.CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Education:    req.Education,
		Role:         domainauth.Role(req.Role),
		Photo:        asset,
	})
	if err != nil {
		// The account row never existed, so drop the orphaned upload.
		if !asset.IsZero() {
			if destroyErr := s.media.Destroy(ctx, asset.PublicID); destroyErr != nil {
				s.logger.WarnContext(ctx, "failed to clean up orphaned photo",
					"public_id", asset.PublicID, "err", destroyErr)
			}
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies credentials and issues a session token. All credential
// failures collapse to ErrInvalidCredentials so a caller cannot probe which
// emails are registered.
func (s *AuthService) Login(
	ctx context.Context,
	req model.LoginRequest,
) (*model.User, domainauth.Token, error) {
	if err := req.Validate(); err != nil {
		return nil, domainauth.Token{}, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, domainauth.Token{}, ErrInvalidCredentials
		}
		return nil, domainauth.Token{}, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, domainauth.Token{}, ErrInvalidCredentials
	}

	// The login form asks for a role; a mismatch is a credential failure,
	// not a permission one.
	if req.Role != "" && user.Role != domainauth.Role(req.Role) {
		return nil, domainauth.Token{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, domainauth.Token{}, fmt.Errorf("issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return user, token, nil
}

// Logout revokes the presented token so it stops working before its natural
// expiry. Unverifiable tokens are ignored: logout with a bad token is a no-op,
// not an error, and the handler clears the cookie either way.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" || s.revocations == nil {
		return nil
	}

	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil
	}

	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.InfoContext(ctx, "token revoked", "user_id", claims.UserID)
	return nil
}

// Authenticate resolves a raw token to the account it belongs to. The caller
// distinguishes three outcomes: ErrInvalidToken (the credential itself is
// bad), ErrUnknownUser (valid credential, no such account), and any other
// error (infrastructure failure, deny without blaming the caller).
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*model.User, error) {
	if rawToken == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if s.revocations != nil {
		revoked, revErr := s.revocations.IsRevoked(ctx, claims.TokenID)
		if revErr != nil {
			// Fail closed: an unreachable revocation store denies the
			// request rather than accepting a possibly revoked token.
			return nil, fmt.Errorf("check revocation: %w", revErr)
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	return user, nil
}
