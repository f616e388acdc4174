package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/bytesearch/internal/api"
	"github.com/Anish-Chanda/bytesearch/internal/config"
	"github.com/Anish-Chanda/bytesearch/internal/db"
	"github.com/Anish-Chanda/bytesearch/internal/logger"
	"github.com/Anish-Chanda/bytesearch/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config load: %w", err))
	}

	// console-friendly logger
	log := logger.New(cfg.LogLevel)
	defer log.Sync()
	zap.ReplaceGlobals(log)

	// run history is optional
	var store service.RunStore
	if cfg.PostgresDSN != "" {
		if err := db.Migrate(cfg.MigrationsDir, cfg.PostgresDSN); err != nil {
			zap.L().Fatal("migrate", zap.Error(err))
		}
		dbClient, err := db.New(cfg)
		if err != nil {
			zap.L().Fatal("DB init", zap.Error(err))
		}
		defer dbClient.Close()
		store = dbClient
	} else {
		zap.L().Info("BSEARCH_POSTGRES_DSN not set, runs will not be recorded")
	}

	svc := service.New(store)
	h := api.NewHandler(svc, cfg.MaxTextBytes)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      api.NewRouter(h, zap.L()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zap.L().Info("starting server", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zap.L().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("forced shutdown", zap.Error(err))
		return
	}
	zap.L().Info("server exited gracefully")
}
