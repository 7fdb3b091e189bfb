package service

import (
	"context"
	"log/slog"

	"github.com/blogforge/blogforge/internal/core"
	"github.com/blogforge/blogforge/internal/domain/model"
)

// ContactServiceOptions groups dependencies for ContactService.
type ContactServiceOptions struct {
	Contacts core.ContactRepository
	Logger   *slog.Logger
}

// ContactService handles public contact-form submissions.
type ContactService struct {
	contacts core.ContactRepository
	logger   *slog.Logger
}

// NewContactService constructs a new ContactService.
func NewContactService(opts ContactServiceOptions) *ContactService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactService{
		contacts: opts.Contacts,
		logger:   logger.With("component", "contact"),
	}
}

// Submit records a contact-form message.
func (s *ContactService) Submit(
	ctx context.Context,
	req model.SubmitContactRequest,
) (*model.ContactMessage, error) {
	msg, err := s.contacts.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "contact message received", "message_id", msg.ID)
	return msg, nil
}

// List returns a page of contact messages, newest first.
func (s *ContactService) List(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error) {
	return s.contacts.List(ctx, limit, offset)
}
