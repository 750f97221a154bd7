// Package server initializes and runs the account management backend.
// It opens the database, applies schema migrations, seeds the bootstrap
// admin account, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msoler84/userhub/internal/logging"
	"github.com/msoler84/userhub/internal/server/auth"
	"github.com/msoler84/userhub/internal/server/config"
	"github.com/msoler84/userhub/internal/server/repositories/repomanager"
	"github.com/msoler84/userhub/internal/server/services"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	UserService     *services.UserService
	UserTypeService *services.UserTypeService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher := auth.NewPasswordHasher(c.BcryptCost)
	tokens := auth.NewTokenService([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	rm, err := repomanager.NewPostgresRepositoryManager(hasher, tokens)
	if err != nil {
		return nil, fmt.Errorf("repository init error: %w", err)
	}

	us := services.NewUserService(db, rm, c)
	uts := services.NewUserTypeService(db, rm)

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		repomanager:     rm,
		UserService:     us,
		UserTypeService: uts,
	}, nil
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

// bootstrap runs migrations and seeds the admin account. It is idempotent,
// so restarting the app is always safe.
func (app *App) bootstrap(ctx context.Context) error {
	if err := app.db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	app.logger.Info(ctx, "running migrations")
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if err := app.UserService.EnsureAdmin(ctx); err != nil {
		return fmt.Errorf("admin seed error: %w", err)
	}

	return nil
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	bootstrapCtx, bootstrapCancel := context.WithTimeout(ctx, 30*time.Second)
	defer bootstrapCancel()
	if err := app.bootstrap(bootstrapCtx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "app ready")

	<-ctx.Done()

	app.logger.Info(context.Background(), "shutting down")
	if err := app.db.Close(); err != nil {
		return fmt.Errorf("db close error: %w", err)
	}
	return nil
}
