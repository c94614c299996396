// Package server wires configuration, storage and the HTTP API together and
// runs them until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/robotika/internal/logging"
	"github.com/dmitrijs2005/robotika/internal/server/auth"
	"github.com/dmitrijs2005/robotika/internal/server/config"
	"github.com/dmitrijs2005/robotika/internal/server/httpserver"
	"github.com/dmitrijs2005/robotika/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/robotika/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Test seams.
var (
	openDB               = repomanager.Open
	newManager           = repomanager.NewPostgresRepositoryManager
	logOutput  io.Writer = os.Stdout
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

// NewApp validates c, connects to the database and applies pending
// migrations. The returned App owns the pool; Run closes it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewJSON(logOutput, c.LogLevel)

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := newManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	if c.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenValidityDuration)

	h := httpserver.NewHandler(httpserver.Options{
		Users:        services.NewUserService(db, m, tokens),
		Updates:      services.NewUpdateService(db, m),
		Suggestions:  services.NewSuggestionService(db, m),
		Site:         services.NewSiteService(db, m),
		Tokens:       tokens,
		SecureCookie: c.Production,
		Logger:       logger,
	})

	return &App{config: c, logger: logger, db: db, handler: h.Router()}, nil
}

// Run serves HTTP until ctx is cancelled or the process receives SIGINT or
// SIGTERM.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...", "production", app.config.Production)

	s := httpserver.NewHTTPServer(app.config.HTTPAddress, app.handler, app.logger)
	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
