package data

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/blogforge/blogforge/internal/core"
	"github.com/blogforge/blogforge/internal/data/pgxutil"
	"github.com/blogforge/blogforge/internal/domain/model"
)

// ContactRepo provides database operations for contact form submissions.
type ContactRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.ContactRepository = (*ContactRepo)(nil)

// NewContactRepo creates a new ContactRepo with real time provider.
func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewContactRepoWithTimeProvider creates a new ContactRepo with a custom time provider (useful for tests).
func NewContactRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: tp}
}

// Create inserts a new contact message.
func (r *ContactRepo) Create(
	ctx context.Context,
	req model.SubmitContactRequest,
) (*model.ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.ContactMessage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO contact_messages (name, email, message, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING `+contactColumns,
			strings.TrimSpace(req.Name),
			req.Email,
			strings.TrimSpace(req.Message),
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ContactMessage])
		return err
	}); err != nil {
		return nil, mapDBErr(err, nil, "failed to create contact message")
	}
	return &out, nil
}

// List retrieves contact messages with pagination, newest first.
func (r *ContactRepo) List(ctx context.Context, limit, offset int) ([]*model.ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.ContactMessage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, contactListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ContactMessage])
		return err
	}); err != nil {
		return nil, mapDBErr(err, nil, "failed to list contact messages")
	}

	res := make([]*model.ContactMessage, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// --- helpers ---

const (
	contactColumns = `id, name, email, message, created_at`

	contactListQuery = `
		SELECT ` + contactColumns + `
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)
