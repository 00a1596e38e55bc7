package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/edustack/platform/pkg/api"
	"github.com/edustack/platform/pkg/auth"
	"github.com/edustack/platform/pkg/config"
	"github.com/edustack/platform/pkg/observability"
	"github.com/edustack/platform/pkg/storage"
	"github.com/edustack/platform/pkg/storage/postgres"
)

const serviceVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.WithFields(map[string]interface{}{
		"environment": cfg.Environment,
		"version":     serviceVersion,
	}).Info("Starting EduStack platform")

	fatal := func(message string, err error) {
		logger.WithError(err).Error(message)
		os.Exit(1)
	}

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout)

	// Tracing
	otelProviders, err := observability.InitOTel(context.Background(), observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: serviceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		fatal("Failed to initialize tracing", err)
	}
	if otelProviders != nil {
		shutdown.Register("otel", otelProviders.Shutdown)
	}

	// Metrics
	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(nil)
	}

	// Database
	db, err := postgres.Connect(cfg.Database)
	if err != nil {
		fatal("Failed to connect to database", err)
	}
	shutdown.Register("database", func(ctx context.Context) error {
		return db.Close()
	})

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgres.EnsureSchema(schemaCtx, db, cfg.Database.Driver); err != nil {
		cancelSchema()
		fatal("Failed to ensure database schema", err)
	}
	cancelSchema()
	logger.WithField("driver", cfg.Database.Driver).Info("Database ready")

	users := postgres.NewUserStore(db)

	// Redis is optional; without it the materials listing is fetched
	// from the object store on every request.
	var redisClient *redis.Client
	var listingCache *storage.ListingCache
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		shutdown.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		listingCache = storage.NewListingCache(redisClient, cfg.Storage.ListingCacheTTL, logger, metrics)
		logger.WithField("addr", cfg.Redis.Addr).Info("Redis listing cache enabled")
	}

	// Object store: S3 when fully configured, otherwise the built-in
	// mock so the API works in local development.
	var store storage.ObjectStore
	if cfg.Storage.S3Configured() {
		store, err = storage.NewS3Store(cfg.Storage, logger, metrics)
		if err != nil {
			fatal("Failed to initialize object store", err)
		}
	} else {
		store = storage.NewMockStore(cfg.Storage, logger)
	}
	logger.WithField("backend", store.Backend()).Info("Object store ready")

	// Auth
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	authSvc := auth.NewService(users, issuer, hasher, logger)

	health := observability.NewHealthChecker(db, redisClient, store)

	server := api.NewServer(api.Options{
		AuthService:  authSvc,
		Users:        users,
		Store:        store,
		ListingCache: listingCache,
		Health:       health,
		Logger:       logger,
		Metrics:      metrics,
		CORSOrigins:  cfg.Server.CORSOrigins,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		CookieSecure: cfg.Auth.CookieSecure,
		MockBaseURL:  cfg.Storage.MockBaseURL,
	})

	// Background jobs: keep the listing cache warm and the active user
	// gauge current without waiting for request traffic.
	scheduler := cron.New()
	if listingCache != nil {
		if _, err := scheduler.AddFunc(cfg.Redis.WarmSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := listingCache.Warm(ctx, store); err != nil {
				logger.WithError(err).Warn("Listing cache warm failed")
			}
		}); err != nil {
			fatal("Invalid cache warm schedule", err)
		}
	}
	if metrics != nil {
		if _, err := scheduler.AddFunc("@every 1m", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if count, err := users.CountActive(ctx); err == nil {
				metrics.ActiveUsersTotal.Set(float64(count))
			}
		}); err != nil {
			fatal("Failed to schedule metrics refresh", err)
		}
	}
	scheduler.Start()
	shutdown.Register("scheduler", func(ctx context.Context) error {
		stopped := scheduler.Stop()
		select {
		case <-stopped.Done():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	shutdown.Register("http-server", httpServer.Shutdown)

	go func() {
		logger.WithField("addr", httpServer.Addr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal("HTTP server failed", err)
		}
	}()

	shutdown.Wait()
}
