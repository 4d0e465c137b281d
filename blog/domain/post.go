package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrPostNotFound is returned when no post exists for a given slug.
	ErrPostNotFound = errors.New("post not found")

	// ErrSlugTaken is returned when creating a post whose slug is already
	// in use by an existing post.
	ErrSlugTaken = errors.New("slug already in use")
)

// Post represents a blog post.
// The slug is the post's URL-safe identifier and is immutable once the post
// has been created; edits may only change the title and markdown source.
type Post struct {
	Slug      string
	Title     string
	Markdown  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostSummary is a listing row: just enough to render a link to the post.
type PostSummary struct {
	Slug  string
	Title string
}

type PostRepository interface {
	// CreatePost inserts a new post. Returns ErrSlugTaken if a post with
	// the same slug already exists; it never overwrites.
	CreatePost(ctx context.Context, p *Post) error

	// GetPost retrieves a single post by slug, or ErrPostNotFound.
	GetPost(ctx context.Context, slug string) (*Post, error)

	// ListPostSummaries returns all posts in creation order.
	ListPostSummaries(ctx context.Context) ([]PostSummary, error)

	// UpdatePost replaces the title and markdown of the post identified by
	// slug. The slug itself never changes. Returns ErrPostNotFound if no
	// such post exists.
	UpdatePost(ctx context.Context, slug string, title string, markdown string) error

	// DeletePost removes the post identified by slug. It returns only once
	// the row is gone, so a subsequent read never sees the deleted post.
	DeletePost(ctx context.Context, slug string) error
}
