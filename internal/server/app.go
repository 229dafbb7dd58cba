// Package server initializes and runs the identity service: it opens the
// PostgreSQL pool, applies migrations, connects the Redis cache and object
// storage, wires the account services together, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"

	"github.com/dmitrijs2005/messenger/internal/logging"
	"github.com/dmitrijs2005/messenger/internal/server/cache"
	"github.com/dmitrijs2005/messenger/internal/server/config"
	"github.com/dmitrijs2005/messenger/internal/server/media"
	"github.com/dmitrijs2005/messenger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/messenger/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger

	db    *sql.DB
	redis *redis.Client

	authService    *services.AuthService
	accountService *services.AccountService
	friendService  *services.FriendService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	userCache := cache.NewRedisUserCache(rdb, cfg.UserCacheTTL)

	var uploader media.Uploader = media.NewS3Uploader(cfg)
	if cfg.S3UsePresignedUpload {
		uploader = media.NewPresignUploader(cfg)
	}

	as := services.NewAuthService(db, rm, cfg, logger)
	acs := services.NewAccountService(db, rm, userCache, uploader, logger)
	fs := services.NewFriendService(db, rm, cfg, logger)

	return &App{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          rdb,
		authService:    as,
		accountService: acs,
		friendService:  fs,
	}, nil
}

// Auth returns the sign-up/sign-in service.
func (app *App) Auth() *services.AuthService { return app.authService }

// Account returns the profile and credential service.
func (app *App) Account() *services.AccountService { return app.accountService }

// Friends returns the follow-graph service.
func (app *App) Friends() *services.FriendService { return app.friendService }

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the context is cancelled or a termination signal arrives,
// then releases the backends.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	<-ctx.Done()

	app.logger.Info(ctx, "Shutting down...")
	app.Close()
}

// Close releases the database pool and the cache connection.
func (app *App) Close() {
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err.Error())
	}
	if err := app.redis.Close(); err != nil {
		app.logger.Error(context.Background(), "redis close error", "error", err.Error())
	}
}
