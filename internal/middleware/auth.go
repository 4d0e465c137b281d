package middleware

import (
	"errors"
	"net/http"

	"github.com/agzertuche/inkwell/blog/application"
	"github.com/agzertuche/inkwell/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SessionCookieName is the cookie holding the opaque session token.
const SessionCookieName = "session"

const userContextKey = "currentUser"

// CurrentUser resolves the session cookie to an optional user and stores it
// on the request context. Requests without a valid session pass through
// anonymously; only RequireAdmin turns that into a redirect.
func CurrentUser(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := auth.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrSessionNotFound) {
				log.Error().Err(err).Msg("Failed to resolve session")
			}
			c.Next()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin gates the admin routes. Anyone without an admin session is
// redirected to the login page before the handler runs.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFromContext(c)
		if user == nil || !user.IsAdmin {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserFromContext returns the authenticated user for this request, or nil.
func UserFromContext(c *gin.Context) *domain.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}

	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return user
}
