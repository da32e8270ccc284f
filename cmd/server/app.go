package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/book-api/internal/api/middleware"
	"github.com/phrazzld/book-api/internal/config"
	"github.com/phrazzld/book-api/internal/platform/memory"
	"github.com/phrazzld/book-api/internal/platform/postgres"
	"github.com/phrazzld/book-api/internal/platform/ratelimit"
	"github.com/phrazzld/book-api/internal/service"
	"github.com/phrazzld/book-api/internal/service/auth"
	"github.com/phrazzld/book-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// application holds the shared dependencies of the server and owns their
// cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *redis.Client

	bookStore     store.BookStore
	categoryStore store.CategoryStore
	userStore     store.UserStore

	jwtService      auth.JWTService
	bookService     service.BookService
	categoryService service.CategoryService
	authService     service.AuthService

	limiter ratelimit.Limiter
	metrics *middleware.Metrics
}

// newApplication wires stores, services and infrastructure from cfg.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupStores(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.bookService = service.NewBookService(app.bookStore, app.categoryStore, logger)
	app.categoryService = service.NewCategoryService(app.categoryStore, logger)
	app.authService = service.NewAuthService(
		app.userStore,
		app.jwtService,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		time.Duration(cfg.Auth.RefreshTokenLifetimeMinutes)*time.Minute,
		logger,
	)

	if err := app.setupRateLimiter(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = middleware.NewMetrics(reg)

	logger.Info("application initialized successfully")
	return app, nil
}

func (app *application) setupStores(ctx context.Context) error {
	switch app.config.Database.Driver {
	case "postgres":
		db, err := setupAppDatabase(ctx, app.config.Database.URL, app.logger)
		if err != nil {
			return err
		}
		app.db = db
		app.bookStore = postgres.NewPostgresBookStore(db, app.logger)
		app.categoryStore = postgres.NewPostgresCategoryStore(db)
		app.userStore = postgres.NewPostgresUserStore(db, app.logger)
	default:
		mem := memory.New()
		app.bookStore = mem.Books()
		app.categoryStore = mem.Categories()
		app.userStore = mem.Users()
		app.logger.Info("using in-memory storage")
	}
	return nil
}

func (app *application) setupRateLimiter(ctx context.Context) error {
	rl := app.config.RateLimit
	if !rl.Enabled {
		return nil
	}

	switch rl.Backend {
	case "redis":
		opts, err := redis.ParseURL(rl.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid rate_limit.redis_url: %w", err)
		}
		app.redis = redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := app.redis.Ping(pingCtx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}

		limiter, err := ratelimit.NewRedisLimiter(app.redis, rl.RequestsPerMinute, time.Minute)
		if err != nil {
			return fmt.Errorf("failed to create redis rate limiter: %w", err)
		}
		app.limiter = limiter
	default:
		limiter, err := ratelimit.NewMemoryLimiter(rl.RequestsPerMinute, rl.Burst)
		if err != nil {
			return fmt.Errorf("failed to create rate limiter: %w", err)
		}
		app.limiter = limiter
	}

	app.logger.Info("rate limiting enabled",
		"backend", rl.Backend,
		"requests_per_minute", rl.RequestsPerMinute)
	return nil
}

// Run serves HTTP until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
