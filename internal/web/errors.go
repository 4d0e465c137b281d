package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// renderErrorPage writes one of the two user-facing fallback pages. Any
// other status reaching this point is a programming error, so it panics
// rather than silently inventing a page for it.
func renderErrorPage(c *gin.Context, status int, data gin.H) {
	switch status {
	case http.StatusNotFound:
		c.HTML(http.StatusNotFound, "error404.html", data)
	case http.StatusInternalServerError:
		c.HTML(http.StatusInternalServerError, "error500.html", data)
	default:
		panic(fmt.Sprintf("unhandled error status %d", status))
	}
	c.Abort()
}

// renderPostNotFound renders the 404 fallback scoped to a missing post,
// naming the slug that had no match.
func (h *Handlers) renderPostNotFound(c *gin.Context, slug string) {
	renderErrorPage(c, http.StatusNotFound, gin.H{
		"Title": "Post not found",
		"Slug":  slug,
	})
}

// renderServerError logs the failure with full detail and shows the user
// only the generic fallback.
func (h *Handlers) renderServerError(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unexpected error")

	renderErrorPage(c, http.StatusInternalServerError, gin.H{
		"Title": "Something went wrong",
	})
}

// NotFound serves the fallback for routes that match nothing.
func (h *Handlers) NotFound(c *gin.Context) {
	renderErrorPage(c, http.StatusNotFound, gin.H{
		"Title": "Page not found",
	})
}
