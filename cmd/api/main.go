package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"userhub/internal/app/user"
	"userhub/internal/cache"
	"userhub/internal/config"
	"userhub/internal/db"
	"userhub/internal/db/memory"
	"userhub/internal/db/repository"
	dom "userhub/internal/domain/user"
	"userhub/internal/http/handlers/health"
	userhandler "userhub/internal/http/handlers/user"
	"userhub/internal/http/router"
	"userhub/internal/kafka"
	"userhub/internal/logging"
	"userhub/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2) Logger
	logger, err := logging.New(cfg.Observability.ServiceName, cfg.Observability.ServiceEnv)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logging.Sync(logger)

	logger.Info("starting service",
		"env", cfg.Environment,
		"db_driver", cfg.Postgres.Driver,
	)

	// 3) Telemetry (no-op unless OTEL_ENABLED)
	otelShutdown, err := telemetry.Setup(ctx, cfg.Observability, logger)
	if err != nil {
		logger.Error("failed to setup telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown telemetry", "error", err)
		}
	}()

	// 4) Storage
	userRepo, dbPinger, closeDB, err := openStorage(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to init storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeDB(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// 5) Redis (optional)
	var userCache cache.UserCache = cache.NoopUserCache{}
	var cachePinger health.Pinger
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Error("failed to init redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis", "error", err)
			}
		}()
		userCache = cache.NewUserCache(redisClient)
		cachePinger = redisClient
	}

	// 6) Kafka bus and consumer router (no-op unless KAFKA_ENABLED)
	bus, closeBus, err := kafka.NewBus(cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka bus", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = closeBus(context.Background())
	}()

	kafkaRouter, err := kafka.NewRouter(ctx, cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka router", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = kafkaRouter.Close()
	}()

	// 7) Services and handlers
	userEvents := kafka.NewUserEvents(bus, cfg.Kafka, logger)
	userService := user.NewService(userRepo, userCache, userEvents, logger)

	healthHandler := health.NewHandler(dbPinger, cachePinger)
	userHandler := userhandler.NewHandler(userService, logger)

	httpRouter := router.NewRouter(logger, cfg.HTTP.CORSOrigins, healthHandler, userHandler)

	// 8) HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           otelhttp.NewHandler(httpRouter, cfg.Observability.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting",
			"host", cfg.HTTP.Host,
			"port", cfg.HTTP.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		if err := kafkaRouter.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("fatal error from subsystem", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server", "error", err)
	}

	logger.Info("service stopped")
}

// openStorage picks the user repository backing for DB_DRIVER.
func openStorage(
	ctx context.Context,
	cfg config.PostgresConfig,
	logger logging.Logger,
) (dom.Repository, health.Pinger, func() error, error) {
	switch cfg.Driver {
	case "memory":
		repo := memory.NewUserRepository()
		logger.Warn("using in-memory user store; data is lost on restart")
		return repo, repo, func() error { return nil }, nil
	case "postgres", "":
		client, err := db.NewClient(ctx, cfg, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return repository.NewUserRepository(client, logger), client, client.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}
}
