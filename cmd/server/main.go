package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/geoquiz/geoquiz-backend/internal/config"
	"github.com/geoquiz/geoquiz-backend/internal/database"
	"github.com/geoquiz/geoquiz-backend/internal/flagapi"
	"github.com/geoquiz/geoquiz-backend/internal/handler"
	"github.com/geoquiz/geoquiz-backend/internal/logger"
	"github.com/geoquiz/geoquiz-backend/internal/repository"
	"github.com/geoquiz/geoquiz-backend/internal/router"
	"github.com/geoquiz/geoquiz-backend/internal/service"
	"github.com/geoquiz/geoquiz-backend/internal/validator"
	"github.com/geoquiz/geoquiz-backend/internal/worker"
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
		Msg("Starting GeoQuiz Backend")

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
	quizRepo := repository.NewQuizRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	scoreRepo := repository.NewScoreRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	quizService := service.NewQuizService(quizRepo, questionRepo)
	questionService := service.NewQuestionService(questionRepo, quizService)
	scoreService := service.NewScoreService(scoreRepo, rdb, log)
	quizSessionService := service.NewQuizSessionService(questionRepo, quizService, scoreService, rdb, cfg, log)

	flagClient := flagapi.NewClient(cfg.FlagAPIBaseURL, cfg.FlagAPITimeout)
	mapSessionService := service.NewMapSessionService(scoreService, flagClient, rdb, cfg, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService, userService),
		User:        handler.NewUserHandler(userService),
		Quiz:        handler.NewQuizHandler(quizService),
		Question:    handler.NewQuestionHandler(questionService),
		Score:       handler.NewScoreHandler(scoreService),
		QuizSession: handler.NewQuizSessionHandler(quizSessionService),
		MapSession:  handler.NewMapSessionHandler(mapSessionService),
		Geo:         handler.NewGeoHandler(),
		WS:          handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	scoreWorker := worker.NewScoreWorker(pool, rdb, log)
	go scoreWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

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

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
