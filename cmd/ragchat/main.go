// Command ragchat answers questions from local documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/ragchat/internal/adapters/driven/config/env"
	"github.com/custodia-labs/ragchat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ragchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragchat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ragchat/internal/adapters/driving/cli"
	"github.com/custodia-labs/ragchat/internal/core/domain"
	"github.com/custodia-labs/ragchat/internal/core/ports/driven"
	"github.com/custodia-labs/ragchat/internal/core/services"
	"github.com/custodia-labs/ragchat/internal/extractors"
	"github.com/custodia-labs/ragchat/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	storage, closeStorage, err := openStorage(cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStorage()

	documents := services.NewDocumentService(storage, extractors.Default(), cfg.Documents)
	sessions := services.NewSessionService(storage)
	settings := services.NewSettingsService(storage)
	chat := services.NewChatService(documents, sessions, settings, services.NewComposer(cfg.Composer), cfg.Stream)

	cli.Configure(cli.Services{
		Document: documents,
		Session:  sessions,
		Chat:     chat,
		Settings: settings,
	})
	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx)
}

// loadConfig reads ~/.ragchat/config.toml and applies RAGCHAT_* overrides.
func loadConfig() (domain.Config, error) {
	store, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("config file unavailable, using defaults: %v", err)
		cfg := services.LoadConfig(nil)
		return cfg, env.Apply(&cfg)
	}

	cfg := services.LoadConfig(store)
	if err := env.Apply(&cfg); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// openStorage opens the configured backend. A SQLite store that cannot be
// opened falls back to memory so the session still works.
func openStorage(cfg domain.StorageConfig) (driven.Storage, func(), error) {
	if cfg.Backend == domain.StorageMemory {
		return memory.NewStorage(), func() {}, nil
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		logger.Warn("opening database, falling back to memory: %v", err)
		return memory.NewStorage(), func() {}, nil
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing database: %v", err)
		}
	}, nil
}
