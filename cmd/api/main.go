package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/01moynul/vidshop/internal/ai"
	"github.com/01moynul/vidshop/internal/auth"
	"github.com/01moynul/vidshop/internal/config"
	"github.com/01moynul/vidshop/internal/database"
	"github.com/01moynul/vidshop/internal/handlers"
	"github.com/01moynul/vidshop/internal/logger"
	"github.com/01moynul/vidshop/internal/routes"
	"github.com/01moynul/vidshop/internal/store"
)

func main() {
	// 0. --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. --- Database ---
	db, err := database.Open(cfg.DSN)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		zl.Fatal("failed to migrate database", zap.Error(err))
	}

	app := &handlers.Handlers{
		Store:  store.New(db),
		Tokens: auth.NewTokens(cfg.JWTSecret),
		Log:    zl,
	}

	// 2. --- AI (optional) ---
	if cfg.GeminiKey != "" {
		describer, err := ai.NewDescriptionService(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			zl.Fatal("failed to initialize AI service", zap.Error(err))
		}
		defer describer.Close()
		app.AI = describer
	} else {
		zl.Warn("GEMINI_API_KEY not set; product descriptions disabled")
	}

	// 3. --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRouter(app, cfg.CORSOrigin),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting API server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
