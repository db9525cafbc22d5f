package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/emreunal/gramscout/internal/api"
	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/engine"
	"github.com/emreunal/gramscout/internal/storage"
)

var servePort int

// serveCmd creates the "serve" subcommand.
func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the discovery API server",
		Long:  "Start the REST API server that drives logins and hashtag searches on request.",
		RunE:  runServe,
	}

	cmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	store, err := openStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	eng := engine.New(cfg, logger)
	srv := api.NewServer(cfg.Server, eng, store, logger)

	logger.Info("serving",
		"port", cfg.Server.Port,
		"storage", store.Name(),
		"rate_limit", cfg.Server.RateLimit,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down...", "signal", sig)
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", "error", err)
	}
	if err := eng.Close(); err != nil {
		logger.Warn("closing browser failed", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Warn("closing storage failed", "error", err)
	}
	return nil
}

// openStore builds the storage backend named in the config.
func openStore(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Storage.Type {
	case "mongodb":
		return storage.NewMongoStore(cfg.Storage.MongoURI, cfg.Storage.MongoDatabase, cfg.Storage.HistoryCap, logger)
	default:
		return storage.NewFileStore(cfg.Storage.DataDir, cfg.Storage.HistoryCap, logger)
	}
}
