package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cetprep/cetprep-backend/internal/config"
	"github.com/cetprep/cetprep-backend/internal/database"
	"github.com/cetprep/cetprep-backend/internal/handler"
	"github.com/cetprep/cetprep-backend/internal/logger"
	"github.com/cetprep/cetprep-backend/internal/repository"
	"github.com/cetprep/cetprep-backend/internal/router"
	"github.com/cetprep/cetprep-backend/internal/service"
	"github.com/cetprep/cetprep-backend/internal/validator"
	"github.com/cetprep/cetprep-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("test_store", cfg.TestStore).
		Msg("Starting CETPrep Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Test Store ─────────────────────────────────────────
	// The default is the seeded in-memory catalog; PostgreSQL is opt-in.
	var testRepo repository.TestRepository
	if cfg.TestStore == config.TestStorePostgres {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		testRepo = repository.NewPostgresTestRepository(pool)

		// The archive worker only runs with a database to archive into.
		workerCtx, workerCancel := context.WithCancel(context.Background())
		defer func() {
			workerCancel()
			time.Sleep(2 * time.Second) // Allow the worker to drain.
		}()
		archiveWorker := worker.NewArchiveWorker(pool, rdb, log)
		go archiveWorker.Start(workerCtx)
	} else {
		testRepo = repository.NewMemoryTestRepository(repository.SeedTests(time.Now()))
		log.Info().Msg("Using seeded in-memory test store")
	}

	// ─── Initialize Services ───────────────────────────────────────────
	resultStore := repository.NewRedisResultStore(rdb, cfg.ResultTTL)
	tokenService := service.NewTokenService(cfg)
	testService := service.NewTestService(testRepo, cfg, logger.Component(log, "test_service"))
	attemptService := service.NewAttemptService(testRepo, resultStore, tokenService, rdb, cfg,
		logger.Component(log, "attempt_service"))
	resultService := service.NewResultService(resultStore)

	// ─── Initialize Handlers ───────────────────────────────────────────
	handlers := &router.Handlers{
		Test:    handler.NewTestHandler(testService),
		Attempt: handler.NewAttemptHandler(attemptService),
		Result:  handler.NewResultHandler(resultService),
		WS:      handler.NewWSHandler(attemptService, cfg, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(tokenService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop live attempt countdowns. Unsubmitted attempts are abandoned.
	attemptService.Shutdown()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
