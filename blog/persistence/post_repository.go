package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agzertuche/inkwell/blog/domain"
	"github.com/agzertuche/inkwell/shared/db"
)

var _ domain.PostRepository = (*SQLitePostRepository)(nil)

// SQLitePostRepository implements domain.PostRepository using SQL database (SQLite)
type SQLitePostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new SQLitePostRepository from a standard sql.DB
func NewPostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{
		db: db,
	}
}

const slugExistsQuery = `
	SELECT EXISTS(SELECT 1 FROM posts WHERE slug = ?)
`

const insertPostQuery = `
	INSERT INTO posts (slug, title, markdown, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)
`

// CreatePost inserts a new post. The existence check and the insert run in
// one transaction so a duplicate slug always surfaces as ErrSlugTaken rather
// than a driver-level constraint error.
func (r *SQLitePostRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	if p == nil {
		return fmt.Errorf("post cannot be nil")
	}

	if p.Slug == "" {
		return fmt.Errorf("post slug cannot be empty")
	}

	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		var exists bool
		if err := executor.QueryRowContext(txCtx, slugExistsQuery, p.Slug).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check slug: %w", err)
		}
		if exists {
			return domain.ErrSlugTaken
		}

		now := time.Now().UTC()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now

		_, err := executor.ExecContext(txCtx, insertPostQuery,
			p.Slug,
			p.Title,
			p.Markdown,
			p.CreatedAt,
			p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}

		return nil
	})
}

const getPostQuery = `
	SELECT slug, title, markdown, created_at, updated_at
	FROM posts
	WHERE slug = ?
`

// GetPost retrieves a single post by slug
func (r *SQLitePostRepository) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	if slug == "" {
		return nil, fmt.Errorf("post slug cannot be empty")
	}

	executor := db.GetExecutor(ctx, r.db)

	var row postRow
	err := executor.QueryRowContext(ctx, getPostQuery, slug).Scan(
		&row.Slug,
		&row.Title,
		&row.Markdown,
		&row.CreatedAt,
		&row.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostNotFound, slug)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return row.toDomain(), nil
}

const listPostSummariesQuery = `
	SELECT slug, title
	FROM posts
	ORDER BY created_at ASC, slug ASC
`

// ListPostSummaries retrieves all posts in creation order
func (r *SQLitePostRepository) ListPostSummaries(ctx context.Context) ([]domain.PostSummary, error) {
	executor := db.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, listPostSummariesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.PostSummary, 0)
	for rows.Next() {
		var s domain.PostSummary
		if err := rows.Scan(&s.Slug, &s.Title); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return summaries, nil
}

const updatePostQuery = `
	UPDATE posts
	SET title = ?, markdown = ?, updated_at = ?
	WHERE slug = ?
`

// UpdatePost replaces the title and markdown of an existing post.
// The slug column is never touched.
func (r *SQLitePostRepository) UpdatePost(ctx context.Context, slug string, title string, markdown string) error {
	if slug == "" {
		return fmt.Errorf("post slug cannot be empty")
	}

	executor := db.GetExecutor(ctx, r.db)

	res, err := executor.ExecContext(ctx, updatePostQuery, title, markdown, time.Now().UTC(), slug)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPostNotFound, slug)
	}

	return nil
}

const deletePostQuery = `
	DELETE FROM posts WHERE slug = ?
`

// DeletePost removes a post. The call is synchronous: when it returns, the
// row is gone and any subsequent read will not see the post.
func (r *SQLitePostRepository) DeletePost(ctx context.Context, slug string) error {
	if slug == "" {
		return fmt.Errorf("post slug cannot be empty")
	}

	executor := db.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, deletePostQuery, slug); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

// postRow is a private struct used to scan database rows
type postRow struct {
	Slug      string    `db:"slug"`
	Title     string    `db:"title"`
	Markdown  string    `db:"markdown"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// toDomain converts a postRow to a domain.Post
func (pr *postRow) toDomain() *domain.Post {
	return &domain.Post{
		Slug:      pr.Slug,
		Title:     pr.Title,
		Markdown:  pr.Markdown,
		CreatedAt: pr.CreatedAt,
		UpdatedAt: pr.UpdatedAt,
	}
}
