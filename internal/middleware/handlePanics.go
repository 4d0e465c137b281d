package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HandlePanics logs the recovered value with full detail and serves the
// generic error page. The user never sees the panic message itself.
func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")

		c.HTML(http.StatusInternalServerError, "error500.html", gin.H{
			"Title": "Something went wrong",
		})
		c.Abort()
	}
}
