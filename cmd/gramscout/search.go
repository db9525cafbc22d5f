package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/engine"
	"github.com/emreunal/gramscout/internal/types"
)

var (
	searchMaxFollowers int
	searchCity         string
	searchScrolls      int
	searchCap          int
	searchUsername     string
	searchPassword     string
)

// searchCmd creates the "search" subcommand for one-shot runs.
func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [hashtag]",
		Short: "Run a single hashtag search",
		Long: `Log in, search the given hashtag, and print the discovered accounts.

Credentials come from --username/--password or the IG_USERNAME and
IG_PASSWORD environment variables (a .env file is read if present).`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVarP(&searchMaxFollowers, "max-followers", "m", 5000, "follower ceiling for accepted accounts")
	cmd.Flags().StringVar(&searchCity, "city", "", "only accept accounts whose bio mentions this city")
	cmd.Flags().IntVar(&searchScrolls, "scrolls", 0, "scroll pagination attempts (0 = config default)")
	cmd.Flags().IntVar(&searchCap, "limit", 0, "stop after this many accepted accounts (0 = config default)")
	cmd.Flags().StringVarP(&searchUsername, "username", "u", "", "Instagram username")
	cmd.Flags().StringVarP(&searchPassword, "password", "P", "", "Instagram password")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	username := searchUsername
	if username == "" {
		username = os.Getenv("IG_USERNAME")
	}
	password := searchPassword
	if password == "" {
		password = os.Getenv("IG_PASSWORD")
	}
	if username == "" || password == "" {
		return fmt.Errorf("credentials required: set --username/--password or IG_USERNAME/IG_PASSWORD")
	}

	logger := setupLogger(cfg.Logging)
	ctx := context.Background()

	eng := engine.New(cfg, logger)
	defer eng.Close()

	result, err := eng.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("login rejected (%s): %s", result.Kind, result.Message)
	}

	req := types.SearchRequest{
		Hashtag:           args[0],
		MaxFollowers:      searchMaxFollowers,
		City:              searchCity,
		MaxScrollAttempts: searchScrolls,
		ResultCap:         searchCap,
	}

	outcome, err := eng.Search(ctx, req)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	fmt.Printf("\n✅ Search complete: inspected %d posts, accepted %d accounts\n\n",
		outcome.TotalInspected, len(outcome.Accepted))
	for _, rec := range outcome.Accepted {
		fmt.Printf("   @%-30s %7d followers\n", rec.Handle, rec.FollowerCount)
	}

	return nil
}
