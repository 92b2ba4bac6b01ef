// Package server assembles the notely backend: it opens the database, applies
// migrations, builds the services and runs the HTTP API together with the gRPC
// health endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/notely/internal/logging"
	"github.com/dmitrijs2005/notely/internal/server/blobstore"
	"github.com/dmitrijs2005/notely/internal/server/config"
	"github.com/dmitrijs2005/notely/internal/server/httpapi"
	"github.com/dmitrijs2005/notely/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notely/internal/server/services"

	gs "github.com/dmitrijs2005/notely/internal/server/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	manager repomanager.RepositoryManager
	auth    *services.AuthService
	notes   *services.NoteStore
	health  *gs.HealthServer
}

// NewApp opens the database and builds the service graph. Migrations are
// applied by Run so that the health endpoint can report progress.
func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(c.Env)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	blobs := blobstore.NewS3Store(c)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		manager: m,
		auth:    services.NewAuthService(db, m, blobs),
		notes:   services.NewNoteStore(db, m),
		health:  gs.NewHealthServer(c.EndpointAddrGRPC, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) prepareDB(ctx context.Context) error {
	if err := app.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}
	if err := app.manager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:         app.config.EndpointAddrHTTP,
		Handler:      httpapi.NewRouter(app.logger, app.auth, app.notes),
		ReadTimeout:  app.config.HTTPTimeout,
		WriteTimeout: app.config.HTTPTimeout,
		IdleTimeout:  app.config.HTTPIdleTimeout,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a shutdown signal arrives or one of the
// servers fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...", "env", app.config.Env)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if err := app.prepareDB(ctx); err != nil {
		app.logger.Error(ctx, "database not ready", "error", err)
		cancelFunc()
		wg.Wait()
		return err
	}
	app.health.SetServing(true)

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.logger.Info(context.Background(), "App stopped")

	return nil
}
