package web

import (
	"errors"
	"net/http"

	"github.com/agzertuche/inkwell/blog/application"
	"github.com/agzertuche/inkwell/internal/middleware"
	"github.com/gin-gonic/gin"
)

// LoginForm serves the login page. An already authenticated admin is sent
// straight to the admin list.
func (h *Handlers) LoginForm(c *gin.Context) {
	if user := middleware.UserFromContext(c); user != nil && user.IsAdmin {
		c.Redirect(http.StatusSeeOther, application.AdminListPath)
		return
	}

	c.HTML(http.StatusOK, "login.html", h.pageData(c, "Log in", gin.H{
		"Error":    "",
		"Username": "",
	}))
}

// Login checks the submitted credentials and issues the session cookie.
func (h *Handlers) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := h.auth.Login(c.Request.Context(), username, password)
	if errors.Is(err, application.ErrInvalidCredentials) {
		c.HTML(http.StatusUnauthorized, "login.html", h.pageData(c, "Log in", gin.H{
			"Error":    "Invalid username or password",
			"Username": username,
		}))
		return
	}
	if err != nil {
		h.renderServerError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookieName,
		token,
		int(h.auth.SessionTTL().Seconds()),
		"/",
		"",
		h.cfg.SecureCookies,
		true,
	)

	c.Redirect(http.StatusSeeOther, application.AdminListPath)
}

// Logout destroys the session and clears the cookie.
func (h *Handlers) Logout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			h.renderServerError(c, err)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.cfg.SecureCookies, true)

	c.Redirect(http.StatusSeeOther, "/posts")
}
