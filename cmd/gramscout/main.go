package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/emreunal/gramscout/internal/config"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	// A missing .env is fine; credentials can come from the environment.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gramscout",
		Short: "gramscout — small-business account discovery for Instagram",
		Long: `gramscout drives a stealth headless browser to discover small-business
Instagram accounts through hashtag search.

Features:
  • Hashtag keyword search with scroll pagination
  • Follower-ceiling and city filtering
  • Business-profile heuristics (contact affordances, bio signals)
  • JSON file or MongoDB persistence with new-account diffing
  • REST API with per-client rate limiting`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gramscout %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Browser:\n")
			fmt.Printf("  Headless:          %v\n", cfg.Browser.Headless)
			fmt.Printf("  Window Size:       %s\n", cfg.Browser.WindowSize)
			fmt.Printf("  Proxy:             %s\n", orNone(cfg.Browser.ProxyURL))
			fmt.Printf("\nSession:\n")
			fmt.Printf("  Base URL:          %s\n", cfg.Session.BaseURL)
			fmt.Printf("  Page Load Timeout: %s\n", cfg.Session.PageLoadTimeout)
			fmt.Printf("  Login Wait:        %s\n", cfg.Session.LoginWaitTimeout)
			fmt.Printf("\nSearch:\n")
			fmt.Printf("  Result Cap:        %d\n", cfg.Search.ResultCap)
			fmt.Printf("  Scroll Attempts:   %d\n", cfg.Search.MaxScrollAttempts)
			fmt.Printf("  Min Followers:     %d\n", cfg.Search.MinFollowers)
			fmt.Printf("  Visit Delay:       %s–%s\n", cfg.Search.VisitDelayMin, cfg.Search.VisitDelayMax)
			fmt.Printf("\nClassifier:\n")
			fmt.Printf("  Min Bio Length:    %d\n", cfg.Classifier.MinBioLength)
			fmt.Printf("  Keywords:          %d configured\n", len(cfg.Classifier.Keywords))
			fmt.Printf("\nServer:\n")
			fmt.Printf("  Port:              %d\n", cfg.Server.Port)
			fmt.Printf("  Rate Limit:        %d per %s\n", cfg.Server.RateLimit, cfg.Server.RateWindow)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Type:              %s\n", cfg.Storage.Type)
			fmt.Printf("  Data Dir:          %s\n", cfg.Storage.DataDir)
			fmt.Printf("  History Cap:       %d\n", cfg.Storage.HistoryCap)
			return nil
		},
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// setupLogger creates a structured logger.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
