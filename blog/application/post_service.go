package application

import (
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/agzertuche/inkwell/blog/domain"
)

// NewPostSlug is the route parameter used for a post that does not exist
// yet. It is reserved: no real post may use it as a slug.
const NewPostSlug = "new"

// AdminListPath is where every successful mutation redirects to.
const AdminListPath = "/admin/posts"

// Intent discriminates what a submitted post form is asking for.
type Intent string

const (
	IntentCreate Intent = "create"
	IntentUpdate Intent = "update"
	IntentDelete Intent = "delete"
)

// PostForm carries the submitted fields of the admin post form.
type PostForm struct {
	Intent   Intent
	Title    string
	Slug     string
	Markdown string
}

// FieldErrors maps each form field to a validation message. An empty string
// means the field is valid.
type FieldErrors struct {
	Title    string
	Slug     string
	Markdown string
}

// HasErrors reports whether any field failed validation.
func (e FieldErrors) HasErrors() bool {
	return e.Title != "" || e.Slug != "" || e.Markdown != ""
}

// SubmitResult is the outcome of handling a post form submission: either a
// redirect target, or field errors plus the submitted values so the form
// can be redisplayed pre-filled.
type SubmitResult struct {
	RedirectTo string
	Errors     *FieldErrors
	Form       PostForm
}

// PostPage is a rendered public post view.
type PostPage struct {
	Slug  string
	Title string
	HTML  template.HTML
}

// PostService composes the post repository and the markdown renderer behind
// the web handlers. It holds no per-request state.
type PostService struct {
	repo     domain.PostRepository
	markdown MarkdownRenderer
}

func NewPostService(repo domain.PostRepository, markdown MarkdownRenderer) *PostService {
	return &PostService{
		repo:     repo,
		markdown: markdown,
	}
}

// Submit handles one admin form submission. routeSlug is the slug from the
// URL: NewPostSlug for the blank form, otherwise the slug of the post being
// edited. The intent field decides which mutation runs; at most one store
// mutation happens per call, and it is always awaited before the result is
// decided. Store failures are returned unwrapped in meaning: the caller maps
// them to the generic error page.
func (s *PostService) Submit(ctx context.Context, routeSlug string, form PostForm) (*SubmitResult, error) {
	switch form.Intent {
	case IntentDelete:
		return s.deletePost(ctx, routeSlug)
	case IntentCreate, IntentUpdate:
		return s.savePost(ctx, routeSlug, form)
	default:
		return nil, fmt.Errorf("unknown form intent %q", form.Intent)
	}
}

func (s *PostService) deletePost(ctx context.Context, routeSlug string) (*SubmitResult, error) {
	if routeSlug == NewPostSlug {
		return nil, fmt.Errorf("cannot delete a post that does not exist yet")
	}

	// The delete must complete before we decide on the redirect; issuing
	// the navigation while the delete is still in flight would let a
	// subsequent list read observe the doomed post.
	if err := s.repo.DeletePost(ctx, routeSlug); err != nil {
		return nil, err
	}

	return &SubmitResult{RedirectTo: AdminListPath}, nil
}

func (s *PostService) savePost(ctx context.Context, routeSlug string, form PostForm) (*SubmitResult, error) {
	fieldErrs := validatePostForm(form)
	if fieldErrs.HasErrors() {
		return &SubmitResult{Errors: &fieldErrs, Form: form}, nil
	}

	if form.Intent == IntentCreate {
		if routeSlug != NewPostSlug {
			return nil, fmt.Errorf("create submitted against existing post %q", routeSlug)
		}

		// NewPostSlug is the blank-form route parameter; a post stored
		// under it could never be edited or deleted again.
		if form.Slug == NewPostSlug {
			fieldErrs.Slug = "Slug is reserved"
			return &SubmitResult{Errors: &fieldErrs, Form: form}, nil
		}

		post := &domain.Post{
			Slug:     form.Slug,
			Title:    form.Title,
			Markdown: form.Markdown,
		}
		err := s.repo.CreatePost(ctx, post)
		if errors.Is(err, domain.ErrSlugTaken) {
			fieldErrs.Slug = "Slug is already in use"
			return &SubmitResult{Errors: &fieldErrs, Form: form}, nil
		}
		if err != nil {
			return nil, err
		}

		return &SubmitResult{RedirectTo: AdminListPath}, nil
	}

	if routeSlug == NewPostSlug {
		return nil, fmt.Errorf("update submitted against a post that does not exist yet")
	}

	// Updates are keyed by the slug from the route, never the form: the
	// slug is immutable once the post exists.
	if err := s.repo.UpdatePost(ctx, routeSlug, form.Title, form.Markdown); err != nil {
		return nil, err
	}

	return &SubmitResult{RedirectTo: AdminListPath}, nil
}

func validatePostForm(form PostForm) FieldErrors {
	var errs FieldErrors
	if form.Title == "" {
		errs.Title = "Title is required"
	}
	if form.Slug == "" {
		errs.Slug = "Slug is required"
	}
	if form.Markdown == "" {
		errs.Markdown = "Markdown is required"
	}
	return errs
}

// ViewPost loads a post for the public view and renders its markdown.
// Returns domain.ErrPostNotFound when the slug has no post.
func (s *PostService) ViewPost(ctx context.Context, slug string) (*PostPage, error) {
	post, err := s.repo.GetPost(ctx, slug)
	if err != nil {
		return nil, err
	}

	html, err := s.markdown.Render([]byte(post.Markdown))
	if err != nil {
		return nil, fmt.Errorf("failed to render post %q: %w", slug, err)
	}

	return &PostPage{
		Slug:  post.Slug,
		Title: post.Title,
		HTML:  html,
	}, nil
}

// ListPosts returns the summaries for the index and admin navigation lists.
func (s *PostService) ListPosts(ctx context.Context) ([]domain.PostSummary, error) {
	return s.repo.ListPostSummaries(ctx)
}

// EditorPost loads the post backing the admin form. For NewPostSlug it
// returns (nil, nil): the blank form. For anything else the post must
// exist, otherwise domain.ErrPostNotFound is returned.
func (s *PostService) EditorPost(ctx context.Context, routeSlug string) (*domain.Post, error) {
	if routeSlug == NewPostSlug {
		return nil, nil
	}

	return s.repo.GetPost(ctx, routeSlug)
}
