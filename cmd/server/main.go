package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/agzertuche/inkwell/blog/application"
	"github.com/agzertuche/inkwell/blog/persistence"
	"github.com/agzertuche/inkwell/internal/web"
	"github.com/agzertuche/inkwell/shared/config"
	"github.com/agzertuche/inkwell/shared/db"
	"github.com/agzertuche/inkwell/shared/db/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	shutdownTimeout        = 5 * time.Second
	sessionCleanupInterval = 1 * time.Hour
)

func main() {
	cfg := config.Load()

	var database db.Database = sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: cfg.SQLitePath})
	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	postRepo := persistence.NewPostRepository(database.DB())
	sessionRepo := persistence.NewSessionRepository(database.DB())

	markdownRenderer := application.NewMarkdownRenderer()
	postService := application.NewPostService(postRepo, markdownRenderer)

	authService, err := application.NewAuthService(sessionRepo, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth service")
	}
	authService.StartSessionCleanup(sessionCleanupInterval)
	defer func() {
		if err := authService.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to gracefully close auth service")
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	r := web.NewRouter(cfg, postService, authService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
