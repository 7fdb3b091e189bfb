package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/blogforge/blogforge/internal/core"
	"github.com/blogforge/blogforge/internal/data/pgxutil"
	domainauth "github.com/blogforge/blogforge/internal/domain/auth"
	"github.com/blogforge/blogforge/internal/domain/model"
	apperrors "github.com/blogforge/blogforge/internal/errors"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when attempting to register a duplicate email.
	ErrEmailExists = errors.New("email already exists")
)

// UserRepo provides database operations for user accounts.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.UserRepository = (*UserRepo)(nil)

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a new user account.
func (r *UserRepo) Create(ctx context.Context, params core.CreateUserParams) (*model.User, error) {
	now := r.timeProvider.Now().UTC()

	var row userRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (
				name, email, password_hash, phone, education, role, photo_public_id, photo_url, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $9
			) RETURNING `+userColumns,
			params.Name,
			params.Email,
			params.PasswordHash,
			params.Phone,
			params.Education,
			params.Role,
			params.Photo.PublicID,
			params.Photo.URL,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return row.toModel(), nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByIDQuery, "failed to get user by ID", id)
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByEmailQuery, "failed to get user by email", email)
}

// UpdateProfile updates the mutable profile fields of a user.
func (r *UserRepo) UpdateProfile(
	ctx context.Context,
	id string,
	req model.UpdateProfileRequest,
) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)

	var row userRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE users SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + userColumns
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		row, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return row.toModel(), nil
}

// SetPhoto replaces the user's profile photo reference.
func (r *UserRepo) SetPhoto(ctx context.Context, id string, photo model.MediaAsset) (*model.User, error) {
	var row userRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE users SET photo_public_id = $1, photo_url = $2, updated_at = $3
			WHERE id = $4
			RETURNING `+userColumns,
			photo.PublicID, photo.URL, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		row, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return row.toModel(), nil
}

// ListAdmins retrieves admin accounts with pagination, newest first.
func (r *UserRepo) ListAdmins(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []userRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userListAdminsQuery, domainauth.RoleAdmin, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[userRow])
		return err
	}); err != nil {
		return nil, mapDBErr(err, nil, "failed to list admins")
	}

	res := make([]*model.User, len(rowsOut))
	for i := range rowsOut {
		res[i] = rowsOut[i].toModel()
	}
	return res, nil
}

// buildUpdateClause builds the SQL SET clause and args for a profile update.
// UpdateProfileRequest.Validate guarantees at least one field is set.
func (r *UserRepo) buildUpdateClause(req model.UpdateProfileRequest) (string, []any) {
	setParts := make([]string, 0, 4)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Phone))
	}
	if req.Education != nil {
		setParts = append(setParts, fmt.Sprintf("education = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Education))
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// --- helpers ---

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	userColumns = `id, name, email, password_hash, phone, education, role,
		photo_public_id, photo_url, created_at, updated_at`

	userGetByIDQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	userGetByEmailQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1`

	userListAdminsQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
)

// userRow mirrors the users table layout. The photo columns are folded into
// a MediaAsset on the way out.
type userRow struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Email         string          `db:"email"`
	PasswordHash  string          `db:"password_hash"`
	Phone         string          `db:"phone"`
	Education     string          `db:"education"`
	Role          domainauth.Role `db:"role"`
	PhotoPublicID string          `db:"photo_public_id"`
	PhotoURL      string          `db:"photo_url"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (row userRow) toModel() *model.User {
	return &model.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Phone:        row.Phone,
		Education:    row.Education,
		Role:         row.Role,
		Photo: model.MediaAsset{
			PublicID: row.PhotoPublicID,
			URL:      row.PhotoURL,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// getByQuery is a helper function to execute a query and return a single user.
func (r *UserRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.User, error) {
	var row userRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
		return err
	})
	if err != nil {
		return nil, mapDBErr(err, ErrUserNotFound, errMsg)
	}
	return row.toModel(), nil
}

// mapWriteErr classifies write failures through the shared DB error mapper.
// A unique violation on a user write can only be the email column, so a
// conflict classification becomes ErrEmailExists.
func (r *UserRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	mapped := apperrors.MapDBError(err)
	if includeNotFound && apperrors.IsNotFound(mapped) {
		return ErrUserNotFound
	}
	if apperrors.IsConflict(mapped) {
		return ErrEmailExists
	}
	return mapped
}
