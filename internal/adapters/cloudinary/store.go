package cloudinary

// Package cloudinary implements ports.MediaStore against the Cloudinary
// hosted media service.

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/blogforge/blogforge/internal/domain/model"
	"github.com/blogforge/blogforge/internal/ports"
)

// Config holds Cloudinary account credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	// Folder is the default upload folder when the caller does not set one.
	Folder string
}

// Store uploads and deletes images on Cloudinary.
type Store struct {
	cld    *cloudinary.Cloudinary
	folder string
}

var _ ports.MediaStore = (*Store)(nil)

// NewStore creates a Cloudinary-backed media store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary credentials are required")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Store{cld: cld, folder: cfg.Folder}, nil
}

func (s *Store) Upload(ctx context.Context, in ports.UploadInput) (model.MediaAsset, error) {
	if in.Reader == nil {
		return model.MediaAsset{}, errors.New("upload reader is required")
	}

	folder := in.Folder
	if folder == "" {
		folder = s.folder
	}

	res, err := s.cld.Upload.Upload(ctx, in.Reader, uploader.UploadParams{
		Folder:           folder,
		FilenameOverride: in.Filename,
	})
	if err != nil {
		return model.MediaAsset{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return model.MediaAsset{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	return model.MediaAsset{
		PublicID: res.PublicID,
		URL:      res.SecureURL,
	}, nil
}

func (s *Store) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil // Nothing to delete
	}

	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	// "not found" is treated as success so delete is idempotent.
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: unexpected result %q", res.Result)
	}
	return nil
}
