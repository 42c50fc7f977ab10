// Package server initializes and runs the auth server application.
// It selects the user store, runs migrations, starts the HTTP API and the gRPC
// health endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/yeabtsegataye/equb-system/internal/dbx"
	"github.com/yeabtsegataye/equb-system/internal/logging"
	"github.com/yeabtsegataye/equb-system/internal/server/auth"
	"github.com/yeabtsegataye/equb-system/internal/server/config"
	"github.com/yeabtsegataye/equb-system/internal/server/passwords"
	"github.com/yeabtsegataye/equb-system/internal/server/repositories/repomanager"
	"github.com/yeabtsegataye/equb-system/internal/server/rest"
	"github.com/yeabtsegataye/equb-system/internal/server/services"

	gs "github.com/yeabtsegataye/equb-system/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
}

// openPostgres is a seam for tests.
var openPostgres = repomanager.OpenPostgres

// NewApp validates c, opens the store and builds the services. An empty
// DatabaseDSN selects the in-memory store.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	tokens, err := auth.NewManager(c.AccessTokenSecret, c.RefreshTokenSecret,
		c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token manager init error: %w", err)
	}

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, users are kept in memory")
		rm = repomanager.NewInMemoryRepositoryManager()
	} else {
		db, err = openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db migration error: %w", err)
		}
	}

	as := services.NewAuthService(dbOrNil(db), rm, tokens, passwords.NewBcryptHasher(passwords.DefaultCost), c.CipherKey, logger)

	return &App{config: c, logger: logger, db: db, authService: as}, nil
}

// dbOrNil keeps a nil *sql.DB from becoming a non-nil interface value.
func dbOrNil(db *sql.DB) dbx.DBTX {
	if db == nil {
		return nil
	}
	return db
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	gin.SetMode(gin.ReleaseMode)

	h := rest.NewHandler(app.authService, rest.CookieOptions{
		Secure: app.config.CookieSecure,
		MaxAge: app.config.RefreshTokenValidityDuration,
	}, app.logger)

	s := rest.NewServer(app.config.EndpointAddrHTTP, rest.NewRouter(h), app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run starts both servers and blocks until a termination signal arrives or
// either server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if !app.config.CookieSecure {
		app.logger.Warn(ctx, "refresh cookie is not marked Secure; use only for development")
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close error", "error", err)
		}
	}

	app.logger.Info(context.Background(), "App stopped")
}
