package web

import (
	"errors"
	"net/http"

	"github.com/agzertuche/inkwell/blog/application"
	"github.com/agzertuche/inkwell/blog/domain"
	"github.com/gin-gonic/gin"
)

// AdminList is the admin navigation: every post plus the create link.
func (h *Handlers) AdminList(c *gin.Context) {
	summaries, err := h.posts.ListPosts(c.Request.Context())
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin.html", h.pageData(c, "Blog Admin", gin.H{
		"Posts": summaries,
	}))
}

// EditorForm serves the post form: blank for the "new" slug, pre-filled for
// an existing post.
func (h *Handlers) EditorForm(c *gin.Context) {
	routeSlug := c.Param("slug")

	post, err := h.posts.EditorPost(c.Request.Context(), routeSlug)
	if errors.Is(err, domain.ErrPostNotFound) {
		h.renderPostNotFound(c, routeSlug)
		return
	}
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	form := application.PostForm{}
	if post != nil {
		form.Title = post.Title
		form.Slug = post.Slug
		form.Markdown = post.Markdown
	}

	h.renderEditor(c, http.StatusOK, routeSlug, form, nil)
}

// EditorSubmit handles the multi-purpose form POST. The intent field picks
// create, update or delete; validation failures re-render the form with the
// submitted values preserved.
func (h *Handlers) EditorSubmit(c *gin.Context) {
	routeSlug := c.Param("slug")

	form := application.PostForm{
		Intent:   application.Intent(c.PostForm("intent")),
		Title:    c.PostForm("title"),
		Slug:     c.PostForm("slug"),
		Markdown: c.PostForm("markdown"),
	}

	result, err := h.posts.Submit(c.Request.Context(), routeSlug, form)
	if errors.Is(err, domain.ErrPostNotFound) {
		h.renderPostNotFound(c, routeSlug)
		return
	}
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	if result.Errors != nil {
		h.renderEditor(c, http.StatusBadRequest, routeSlug, result.Form, result.Errors)
		return
	}

	c.Redirect(http.StatusSeeOther, result.RedirectTo)
}

func (h *Handlers) renderEditor(c *gin.Context, status int, routeSlug string, form application.PostForm, fieldErrs *application.FieldErrors) {
	isNew := routeSlug == application.NewPostSlug

	title := "Edit Post"
	if isNew {
		title = "New Post"
	}

	c.HTML(status, "post_form.html", h.pageData(c, title, gin.H{
		"RouteSlug": routeSlug,
		"IsNew":     isNew,
		"Form":      form,
		"Errors":    fieldErrs,
	}))
}
