package web

import (
	"embed"
	"encoding/json"
	"html/template"

	"github.com/agzertuche/inkwell/blog/application"
	"github.com/agzertuche/inkwell/internal/middleware"
	"github.com/agzertuche/inkwell/shared/config"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handlers holds the services behind the HTTP surface. It carries no
// per-request state.
type Handlers struct {
	cfg   *config.Config
	posts *application.PostService
	auth  *application.AuthService

	// publicEnv is the whitelisted config serialized once for the base
	// layout's window.ENV script.
	publicEnv template.JS
}

// NewRouter builds the gin engine with all middleware, templates and routes
// registered.
func NewRouter(cfg *config.Config, posts *application.PostService, auth *application.AuthService) *gin.Engine {
	env, err := json.Marshal(cfg.Public())
	if err != nil {
		// The whitelist is a map of strings; this cannot fail.
		panic(err)
	}

	h := &Handlers{
		cfg:       cfg,
		posts:     posts,
		auth:      auth,
		publicEnv: template.JS(env),
	}

	r := gin.New()
	r.Use(middleware.RequestLogging())
	r.Use(gin.CustomRecovery(middleware.HandlePanics()))
	r.Use(middleware.CurrentUser(auth))

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", h.RedirectToPosts)
	r.GET("/posts", h.Index)
	r.GET("/posts/:slug", h.Show)

	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	admin := r.Group("/admin/posts", middleware.RequireAdmin())
	{
		admin.GET("", h.AdminList)
		admin.GET("/:slug", h.EditorForm)
		admin.POST("/:slug", h.EditorSubmit)
	}

	r.NoRoute(h.NotFound)

	return r
}

// pageData assembles the fields every layout render needs, merged with the
// page-specific ones.
func (h *Handlers) pageData(c *gin.Context, title string, extra gin.H) gin.H {
	data := gin.H{
		"SiteName": h.cfg.SiteName,
		"Title":    title,
		"User":     middleware.UserFromContext(c),
		"Env":      h.publicEnv,
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
