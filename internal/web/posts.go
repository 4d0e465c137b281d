package web

import (
	"errors"
	"net/http"

	"github.com/agzertuche/inkwell/blog/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) RedirectToPosts(c *gin.Context) {
	c.Redirect(http.StatusMovedPermanently, "/posts")
}

// Index is the public list of posts.
func (h *Handlers) Index(c *gin.Context) {
	summaries, err := h.posts.ListPosts(c.Request.Context())
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", h.pageData(c, "Posts", gin.H{
		"Posts": summaries,
	}))
}

// Show is the public single-post view. The rendered markdown is inserted as
// trusted HTML; post bodies are admin-authored only.
func (h *Handlers) Show(c *gin.Context) {
	slug := c.Param("slug")

	page, err := h.posts.ViewPost(c.Request.Context(), slug)
	if errors.Is(err, domain.ErrPostNotFound) {
		h.renderPostNotFound(c, slug)
		return
	}
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	c.HTML(http.StatusOK, "post.html", h.pageData(c, page.Title, gin.H{
		"Page": page,
	}))
}
