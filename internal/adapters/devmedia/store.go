package devmedia

// Package devmedia is a media store for local development. It discards
// uploaded bytes and fabricates stable asset references so the rest of the
// system behaves normally without Cloudinary credentials.

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/google/uuid"

	"github.com/blogforge/blogforge/internal/domain/model"
	"github.com/blogforge/blogforge/internal/ports"
)

// Store is an in-memory stand-in for the hosted media service.
// Not for production use.
type Store struct {
	mu     sync.Mutex
	assets map[string]model.MediaAsset
}

var _ ports.MediaStore = (*Store)(nil)

// NewStore creates a development media store.
func NewStore() *Store {
	return &Store{assets: make(map[string]model.MediaAsset)}
}

func (s *Store) Upload(_ context.Context, in ports.UploadInput) (model.MediaAsset, error) {
	if in.Reader != nil {
		// Drain so multipart readers are consumed the same as in production.
		if _, err := io.Copy(io.Discard, in.Reader); err != nil {
			return model.MediaAsset{}, fmt.Errorf("read upload: %w", err)
		}
	}

	publicID := path.Join(in.Folder, uuid.NewString())
	asset := model.MediaAsset{
		PublicID: publicID,
		URL:      "https://media.localhost/" + publicID,
	}

	s.mu.Lock()
	s.assets[publicID] = asset
	s.mu.Unlock()

	return asset, nil
}

func (s *Store) Destroy(_ context.Context, publicID string) error {
	s.mu.Lock()
	delete(s.assets, publicID)
	s.mu.Unlock()
	return nil
}

// Has reports whether an asset with the given public ID was uploaded and not
// yet destroyed. Test helper.
func (s *Store) Has(publicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.assets[publicID]
	return ok
}
