// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

// Command api is the entry point for the Demarthology HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables and .env.
//  3. Run database migrations (idempotent).
//  4. Connect to PostgreSQL (pgxpool) and Redis.
//  5. Wire repositories, services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/htilssu/demarthology-api/internal/api"
	"github.com/htilssu/demarthology-api/internal/forum/question"
	"github.com/htilssu/demarthology-api/internal/forum/symptom"
	"github.com/htilssu/demarthology-api/internal/platform/config"
	"github.com/htilssu/demarthology-api/internal/platform/constants"
	"github.com/htilssu/demarthology-api/internal/platform/migration"
	"github.com/htilssu/demarthology-api/internal/platform/notify"
	pgstore "github.com/htilssu/demarthology-api/internal/platform/postgres"
	redisstore "github.com/htilssu/demarthology-api/internal/platform/redis"
	"github.com/htilssu/demarthology-api/internal/platform/sec"
	"github.com/htilssu/demarthology-api/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 4. Storage ────────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenCodec(cfg.TokenConfig())
	must(log, err, "initialize token codec")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	roleRepository := auth.NewRoleRepository(pool)
	authService := auth.NewService(userRepository, roleRepository, tokens, newSender(cfg, rdb))
	resolver := auth.NewCurrentUserResolver(auth.NewBearerSessionProvider(tokens), userRepository)

	symptomService := symptom.NewService(symptom.NewPostgresRepository(pool), log)
	questionService := question.NewService(question.NewPostgresRepository(pool), log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, resolver, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Symptom:   symptom.NewHandler(symptomService),
		Question:  question.NewHandler(questionService),
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// newSender logs reset links in development and queues them on Redis elsewhere.
func newSender(cfg *config.Config, client *redis.Client) notify.Sender {
	if cfg.IsDevelopment() {
		return notify.NewLogSender(cfg.ResetLinkBaseURL)
	}
	return notify.NewRedisSender(client, cfg.NotifyQueue, cfg.ResetLinkBaseURL)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// Startup wiring only.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
