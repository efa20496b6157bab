package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/folkadonis/proffessor/internal/config"
	"github.com/folkadonis/proffessor/internal/database"
	"github.com/folkadonis/proffessor/internal/handler"
	"github.com/folkadonis/proffessor/internal/logger"
	"github.com/folkadonis/proffessor/internal/repository"
	"github.com/folkadonis/proffessor/internal/router"
	"github.com/folkadonis/proffessor/internal/service"
	"github.com/folkadonis/proffessor/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Proffessor Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	moduleRepo := repository.NewModuleRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo)
	questionService := service.NewQuestionService(questionRepo)
	moduleService := service.NewModuleService(moduleRepo, attemptRepo)
	attemptService := service.NewAttemptService(attemptRepo, moduleRepo, questionRepo, log)
	reportService := service.NewReportService(reportRepo, rdb, cfg, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, userService),
		AdminUser: handler.NewAdminUserHandler(userService, authService),
		Question:  handler.NewQuestionHandler(questionService),
		Module:    handler.NewModuleHandler(moduleService),
		Test:      handler.NewTestHandler(moduleService, attemptService),
		Report:    handler.NewReportHandler(reportService),
		Dashboard: handler.NewDashboardHandler(reportService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, userService, handlers, cfg)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
