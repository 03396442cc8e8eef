package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/waitlisthq/waitlist-service/internal/api/http"
	"github.com/waitlisthq/waitlist-service/internal/api/http/handlers"
	"github.com/waitlisthq/waitlist-service/internal/auth"
	"github.com/waitlisthq/waitlist-service/internal/config"
	"github.com/waitlisthq/waitlist-service/internal/events"
	"github.com/waitlisthq/waitlist-service/internal/observability"
	"github.com/waitlisthq/waitlist-service/internal/persistence"
	"github.com/waitlisthq/waitlist-service/internal/repository"
	"github.com/waitlisthq/waitlist-service/internal/repository/memory"
	"github.com/waitlisthq/waitlist-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger,
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
	)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.InsecureSecret {
		logger.Warn("JWT_SECRET_KEY not set; using the development secret")
	}

	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("invalid password hasher config", zap.Error(err))
	}
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatal("invalid token config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	admins, contacts, waitlist := buildRepositories(pg, logger)

	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger, cfg.Notification).RegisterHandlers()

	adminService := service.NewAdminService(service.AdminDependencies{
		AdminRepo:  admins,
		Hasher:     hasher,
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	contactService := service.NewContactService(contacts, dispatcher, logger)
	waitlistService := service.NewWaitlistService(waitlist, dispatcher, logger)

	metrics := observability.NewMetrics()
	mwCfg := httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		Timeout:        cfg.App.RequestTimeout(),
		Production:     cfg.App.IsProduction(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimitMax:   cfg.RateLimit.Max,
		RateLimitTTL:   cfg.RateLimit.Window(),
	}
	if redis.Enabled() {
		mwCfg.LimiterStorage = persistence.NewRedisStorage(redis.Client, "ratelimit:")
	}

	app := httptransport.NewApp(mwCfg)
	httptransport.RegisterMiddlewares(app, mwCfg)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		BasePath: cfg.App.BasePath,
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Admin:          handlers.NewAdminHandler(adminService),
		Contact:        handlers.NewContactHandler(contactService),
		Waitlist:       handlers.NewWaitlistHandler(waitlistService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// buildRepositories picks Postgres when a pool is open and in-memory stores otherwise.
func buildRepositories(pg *persistence.Postgres, logger *zap.Logger) (repository.AdminRepository, repository.ContactRepository, repository.WaitlistRepository) {
	if pg.Enabled() {
		pool := pg.PoolHandle()
		return repository.NewAdminRepository(pool), repository.NewContactRepository(pool), repository.NewWaitlistRepository(pool)
	}
	logger.Warn("using in-memory storage; data is lost on restart")
	return memory.NewAdminRepository(), memory.NewContactRepository(), memory.NewWaitlistRepository()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
