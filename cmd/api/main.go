package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/api"
	"github.com/pageza/recipe-catalog/backend/internal/auth"
	"github.com/pageza/recipe-catalog/backend/internal/cache"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logger"
	"github.com/pageza/recipe-catalog/backend/internal/matching"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/repository"
	"github.com/pageza/recipe-catalog/backend/internal/router"
	"github.com/pageza/recipe-catalog/backend/internal/server"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server exited with error", zap.Error(err))
	}
	zl.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := database.Open(cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(ctx, db, "migrations", log); err != nil {
			return err
		}
	}

	redisClient := connectRedis(cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	languages := repository.NewLanguageStore(db)
	recipes := repository.NewRecipeStore(db)

	var opts []service.MatchServiceOption
	opts = append(opts, service.WithLogger(log))
	var invalidator repository.Invalidator
	if redisClient != nil && cfg.Cache.Enabled {
		resultCache := cache.NewRedisMatchCache(redisClient, cfg.Cache.TTL)
		invalidator = resultCache
		opts = append(opts, service.WithCache(resultCache))
	}

	var source matching.RecipeSource = recipes
	if cfg.Match.UseIndex {
		index := repository.NewInvertedIndex()
		if err := index.Refresh(ctx, recipes); err != nil {
			return err
		}
		// writes rebuild the index before the cache generation moves
		refresher := repository.NewIndexRefresher(index, recipes, invalidator, log)
		go refresher.Run(ctx, cfg.Match.IndexRefresh)
		invalidator = refresher
		source = index
		log.Info("serving match candidates from inverted index",
			zap.Int("recipes", index.Len()),
			zap.Duration("refresh", cfg.Match.IndexRefresh))
	}
	if invalidator != nil {
		if err := database.RegisterInvalidationHooks(db, invalidator, log); err != nil {
			return err
		}
	}

	engine := matching.NewEngine(source, repository.NewTranslationStore(db), matching.WithLogger(log))
	matchService := service.NewMatchService(engine, languages, cfg.Match.DefaultLanguage, opts...)

	deps := router.Deps{
		Logger:         log,
		MatchService:   matchService,
		Languages:      languages,
		HealthChecks:   healthChecks(db, redisClient),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	if cfg.JWT.Secret != "" {
		validator, err := auth.NewJWTValidator(cfg.JWT.Secret)
		if err != nil {
			return err
		}
		deps.TokenValidator = validator
	} else {
		log.Warn("jwt secret not set, admin routes disabled")
	}
	if redisClient != nil && cfg.RateLimit.Enabled {
		deps.RateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window: cfg.RateLimit.Window,
			Limit:  cfg.RateLimit.Requests,
		}, log)
	}

	return server.New(cfg.Server, router.SetupRouter(deps), log).Start(ctx)
}

// connectRedis returns nil when redis is unreachable; caching and rate
// limiting are then disabled
func connectRedis(cfg *config.Config, log *zap.Logger) *redis.Client {
	if !cfg.Cache.Enabled && !cfg.RateLimit.Enabled {
		return nil
	}
	client, err := database.NewRedisClient(cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, match cache and rate limiting disabled", zap.Error(err))
		return nil
	}
	return client
}

func healthChecks(db *gorm.DB, redisClient *redis.Client) map[string]api.Pinger {
	checks := map[string]api.Pinger{
		"database": func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	return checks
}
