package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accountd/pkg/account"
	"accountd/pkg/config"
	"accountd/pkg/log"
	"accountd/pkg/uploads"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10

// Server exposes the account profile API over HTTP.
type Server struct {
	cfg      *config.Config
	echo     *echo.Echo
	version  string
	accounts *account.Store
	files    *uploads.Store
}

// NewServer wires the HTTP surface to the account and file stores.
func NewServer(cfg *config.Config, accounts *account.Store, files *uploads.Store, version string) *Server {
	return &Server{
		cfg:      cfg,
		echo:     echo.New(),
		version:  version,
		accounts: accounts,
		files:    files,
	}
}

// Start runs the server until SIGINT or SIGTERM, then shuts down gracefully.
func (srv *Server) Start(addr string) error {
	srv.setupRoutes()

	// Start server in a goroutine
	go func() {
		log.Info().
			Str("addr", addr).
			Str("uploads_dir", srv.files.Dir()).
			Str("origin", srv.cfg.FrontendOrigin).
			Str("version", srv.version).
			Msg("Starting account server")

		if err := srv.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return srv.Shutdown()
}

// Shutdown stops the server, waiting for in-flight requests.
func (srv *Server) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout*time.Second)
	defer cancel()

	if err := srv.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}

func (srv *Server) setupRoutes() {
	// Echo configuration
	srv.echo.HideBanner = true
	srv.echo.HidePort = true

	// Setup middleware with custom logger
	srv.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${status} ${method} ${uri} (${latency_human})\n",
	}))
	srv.echo.Use(middleware.Recover())

	// Only the configured frontend origin may call the API cross-origin.
	srv.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{srv.cfg.FrontendOrigin},
	}))

	// Setup routes
	srv.echo.GET("/api/account", srv.getAccount)
	srv.echo.GET("/api/account/username", srv.checkUsername)
	srv.echo.PUT("/api/account", srv.updateAccount)
	srv.echo.POST("/api/account/avatar", srv.uploadAvatar)
	srv.echo.Static("/uploads", srv.files.Dir())
}
