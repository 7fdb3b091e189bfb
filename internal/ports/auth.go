package ports

// Package ports defines interfaces (hexagonal ports) for auth- and
// media-related behavior. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"
	"io"
	"time"

	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/domain/model"
)

// TokenIssuer produces and verifies signed, time-limited session tokens.
// Tokens are stateless: verification checks signature and expiry only.
type TokenIssuer interface {
	// Issue creates a signed token for the given user ID.
	Issue(userID string) (domainauth.Token, error)

	// Verify checks signature and expiry and returns the embedded claims.
	Verify(raw string) (domainauth.Claims, error)
}

// RevocationStore records token IDs that must be rejected before their
// natural expiry. Entries may be dropped once the expiry instant passes.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UploadInput carries an image payload bound for the hosted media service.
type UploadInput struct {
	Reader   io.Reader
	Filename string
	Folder   string
}

// MediaStore uploads and deletes images on the hosted media service.
type MediaStore interface {
	Upload(ctx context.Context, in UploadInput) (model.MediaAsset, error)
	Destroy(ctx context.Context, publicID string) error
}
