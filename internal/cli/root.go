// Package cli provides the command-line interface for rebuttal.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/raphaelgruber/rebuttal-go/internal/config"
	"github.com/raphaelgruber/rebuttal-go/internal/db"
	"github.com/raphaelgruber/rebuttal-go/internal/history"
	"github.com/raphaelgruber/rebuttal-go/internal/llm"
	"github.com/raphaelgruber/rebuttal-go/internal/metrics"
	"github.com/raphaelgruber/rebuttal-go/internal/service"
	"github.com/raphaelgruber/rebuttal-go/internal/session"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and db client
	cfg       config.Config
	dbClient  *db.Client
	collector *metrics.Collector

	// Lazy-initialized generator
	generator llm.Generator
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rebuttal",
	Short: "Debate practice against an AI opponent",
	Long: `Rebuttal is a debate trainer: pick a topic and a side, argue against
an AI opponent, and get a scored assessment of your performance.

Completed debates are saved to your profile so you can track progress,
browse your history and compare yourself on the leaderboard.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		collector = metrics.NewCollector()

		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		var err error
		dbClient, err = db.NewClient(ctx, dbCfg, nil, collector)
		if err != nil {
			// Debating works without the store; history simply won't be
			// saved. Read commands check for the client themselves.
			fmt.Fprintf(os.Stderr, "Warning: profile store unavailable, history will not be saved: %v\n", err)
			dbClient = nil
			return nil
		}

		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}
		if _, err := dbClient.EnsureProfile(ctx, cfg.Profile); err != nil {
			return fmt.Errorf("ensure profile: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
	},
}

// getDebateService builds the debate service with lazy generator init.
func getDebateService() (*service.DebateService, error) {
	if generator == nil {
		var err error
		generator, err = llm.NewGenerator(cfg, collector)
		if err != nil {
			return nil, fmt.Errorf("init generator: %w", err)
		}
	}

	var store history.ProfileStore
	if dbClient != nil {
		store = dbClient
	}
	gateway := history.NewGateway(store, cfg.Profile, nil)
	return service.NewDebateService(session.NewStore(nil, nil), generator, gateway, nil), nil
}

// getStatsService returns the stats service, failing when the store is down.
func getStatsService() (*service.StatsService, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("profile store unavailable")
	}
	return service.NewStatsService(dbClient, collector), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(debateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(statsCmd)
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
