package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"agencyhub/internal/config"
	"agencyhub/internal/crypto"
	"agencyhub/internal/repository"
	"agencyhub/internal/server"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Cipher for ad-platform tokens at rest
	cipher, err := crypto.NewTokenCipher()
	if err != nil {
		logger.Fatal("Failed to initialize token cipher", zap.Error(err))
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize and run the server
	srv, err := server.NewServer(db, cfg, cipher, logger)
	if err != nil {
		logger.Fatal("Failed to initialize server", zap.Error(err))
	}
	if err := srv.Run(ctx, cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed", zap.Error(err))
	}

	logger.Info("Application stopped.")
}
