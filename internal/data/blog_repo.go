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
	"github.com/blogforge/blogforge/internal/data/database"
	"github.com/blogforge/blogforge/internal/data/pgxutil"
	"github.com/blogforge/blogforge/internal/domain/model"
)

// ErrBlogNotFound is returned when a blog post is not found.
var ErrBlogNotFound = errors.New("blog not found")

// BlogRepo provides database operations for blog posts.
type BlogRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.BlogRepository = (*BlogRepo)(nil)

// NewBlogRepo creates a new BlogRepo with real time provider.
func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewBlogRepoWithTimeProvider creates a new BlogRepo with a custom time provider (useful for tests).
func NewBlogRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *BlogRepo {
	return &BlogRepo{DB: db, timeProvider: tp}
}

// Create inserts a new blog post. The author's display name and photo are
// snapshotted onto the row inside one transaction so concurrent profile
// updates cannot produce a torn byline.
func (r *BlogRepo) Create(
	ctx context.Context,
	authorID string,
	req model.CreateBlogRequest,
	image model.MediaAsset,
) (*model.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var row blogRow
	err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		var authorName, authorPhotoURL string
		if err := tx.QueryRow(ctx,
			`SELECT name, photo_url FROM users WHERE id = $1`, authorID,
		).Scan(&authorName, &authorPhotoURL); err != nil {
			return err
		}

		rows, err := tx.Query(ctx, `
			INSERT INTO blogs (
				title, category, about, image_public_id, image_url,
				author_id, author_name, author_photo_url, views, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $9
			) RETURNING `+blogColumns,
			req.Title,
			req.Category,
			req.About,
			image.PublicID,
			image.URL,
			authorID,
			authorName,
			authorPhotoURL,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[blogRow])
		return err
	})
	if err != nil {
		return nil, mapDBErr(err, ErrUserNotFound, "failed to create blog")
	}
	return row.toModel(), nil
}

// GetByID retrieves a blog post by ID.
func (r *BlogRepo) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	return r.getByQuery(ctx, blogGetByIDQuery, "failed to get blog by ID", id)
}

// GetByIDIncrementingViews retrieves a blog post and bumps its view counter
// in the same statement, so concurrent readers never lose an increment.
func (r *BlogRepo) GetByIDIncrementingViews(ctx context.Context, id string) (*model.Blog, error) {
	return r.getByQuery(ctx, blogIncrementViewsQuery, "failed to get blog by ID", id)
}

// List retrieves blog posts with optional filters, newest first.
func (r *BlogRepo) List(ctx context.Context, opts model.BlogsListOptions) ([]*model.Blog, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(blogColumnNames()...),
		database.WithOrderBy("created_at", "DESC"),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("title", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.Category != nil && strings.TrimSpace(*opts.Category) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("category", database.Equal, strings.TrimSpace(*opts.Category)),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("blogs", queryOpts...))

	var rowsOut []blogRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[blogRow])
		return err
	}); err != nil {
		return nil, mapDBErr(err, nil, "failed to list blogs")
	}

	return rowsToModels(rowsOut), nil
}

// ListByAuthor retrieves blog posts written by the given user, newest first.
func (r *BlogRepo) ListByAuthor(
	ctx context.Context,
	authorID string,
	limit, offset int,
) ([]*model.Blog, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []blogRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, blogListByAuthorQuery, authorID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[blogRow])
		return err
	}); err != nil {
		return nil, mapDBErr(err, nil, "failed to list blogs by author")
	}

	return rowsToModels(rowsOut), nil
}

// Update updates fields of a blog post.
func (r *BlogRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateBlogRequest,
) (*model.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)

	var row blogRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE blogs SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + blogColumns
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		row, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[blogRow])
		return e
	})
	if err != nil {
		return nil, mapDBErr(err, ErrBlogNotFound, "failed to update blog")
	}
	return row.toModel(), nil
}

// SetImage replaces the blog's cover image reference.
func (r *BlogRepo) SetImage(ctx context.Context, id string, image model.MediaAsset) (*model.Blog, error) {
	var row blogRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE blogs SET image_public_id = $1, image_url = $2, updated_at = $3
			WHERE id = $4
			RETURNING `+blogColumns,
			image.PublicID, image.URL, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		row, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[blogRow])
		return e
	})
	if err != nil {
		return nil, mapDBErr(err, ErrBlogNotFound, "failed to set blog image")
	}
	return row.toModel(), nil
}

// Delete deletes a blog post by ID.
func (r *BlogRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, mapDBErr(err, nil, "failed to delete blog")
	}
	return rows > 0, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a blog.
// UpdateBlogRequest.Validate guarantees at least one field is set.
func (r *BlogRepo) buildUpdateClause(req model.UpdateBlogRequest) (string, []any) {
	setParts := make([]string, 0, 4)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Category != nil {
		setParts = append(setParts, fmt.Sprintf("category = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Category))
	}
	if req.About != nil {
		setParts = append(setParts, fmt.Sprintf("about = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.About))
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// --- helpers ---

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	blogColumns = `id, title, category, about, image_public_id, image_url,
		author_id, author_name, author_photo_url, views, created_at, updated_at`

	blogGetByIDQuery = `
		SELECT ` + blogColumns + `
		FROM blogs
		WHERE id = $1`

	blogIncrementViewsQuery = `
		UPDATE blogs SET views = views + 1
		WHERE id = $1
		RETURNING ` + blogColumns

	blogListByAuthorQuery = `
		SELECT ` + blogColumns + `
		FROM blogs
		WHERE author_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
)

// blogColumnNames returns the column list for dynamically built list queries.
func blogColumnNames() []string {
	return []string{
		"id",
		"title",
		"category",
		"about",
		"image_public_id",
		"image_url",
		"author_id",
		"author_name",
		"author_photo_url",
		"views",
		"created_at",
		"updated_at",
	}
}

// blogRow mirrors the blogs table layout. The image columns are folded into
// a MediaAsset on the way out.
type blogRow struct {
	ID             string    `db:"id"`
	Title          string    `db:"title"`
	Category       string    `db:"category"`
	About          string    `db:"about"`
	ImagePublicID  string    `db:"image_public_id"`
	ImageURL       string    `db:"image_url"`
	AuthorID       string    `db:"author_id"`
	AuthorName     string    `db:"author_name"`
	AuthorPhotoURL string    `db:"author_photo_url"`
	Views          int64     `db:"views"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (row blogRow) toModel() *model.Blog {
	return &model.Blog{
		ID:       row.ID,
		Title:    row.Title,
		Category: row.Category,
		About:    row.About,
		Image: model.MediaAsset{
			PublicID: row.ImagePublicID,
			URL:      row.ImageURL,
		},
		AuthorID:       row.AuthorID,
		AuthorName:     row.AuthorName,
		AuthorPhotoURL: row.AuthorPhotoURL,
		Views:          row.Views,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func rowsToModels(rows []blogRow) []*model.Blog {
	res := make([]*model.Blog, len(rows))
	for i := range rows {
		res[i] = rows[i].toModel()
	}
	return res
}

// getByQuery is a helper function to execute a query and return a single blog.
func (r *BlogRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.Blog, error) {
	var row blogRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[blogRow])
		return err
	})
	if err != nil {
		return nil, mapDBErr(err, ErrBlogNotFound, errMsg)
	}
	return row.toModel(), nil
}
