package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/justsurfingit/talentflow/internal/config"
	"github.com/justsurfingit/talentflow/internal/database"
	"github.com/justsurfingit/talentflow/internal/handlers"
	"github.com/justsurfingit/talentflow/internal/services"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	// 2. Database Connection
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedData {
		if err := services.NewSeeder(db, services.DefaultSeedOptions(), logger).SeedDatabase(ctx); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	// 3. Initialize Core Services
	gate := services.NewAssessmentGate(db, nil)
	jobService := services.NewJobService(db)
	candidateService := services.NewCandidateService(db)
	svc := handlers.Services{
		Jobs:         jobService,
		Candidates:   candidateService,
		Applications: services.NewApplicationService(db, jobService, candidateService),
		Notes:        services.NewNoteService(db, candidateService),
		Assessments:  services.NewAssessmentService(db, gate),
		Dashboard:    services.NewDashboardService(db),
		Workflow:     services.NewWorkflowService(db, gate, services.WithLogger(logger)),
	}

	// 4. Setup Router
	r, err := handlers.NewRouter(svc, handlers.RouterOptions{
		AllowOrigins:      cfg.CORSAllowOrigins,
		TransitionLimiter: handlers.NewRateLimiter(cfg.TransitionRatePerSec, cfg.TransitionBurst),
		Logger:            logger,
	})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}
