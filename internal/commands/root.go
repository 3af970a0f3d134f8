// Package commands implements the screentime-cli subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"screentime/internal/backend"
	"screentime/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "screentime-cli",
	Short: "Track and review daily screen time from the terminal",
	Long: `screentime-cli logs usage hours per category into the same store
the web dashboard reads, and prints aggregate reports.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Keep command output clean; only warnings reach the terminal.
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))
		slog.SetDefault(logger)
		_ = godotenv.Load()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(dashboardCmd)
}

// openBackend builds the configured backend for a command invocation.
// Read-only commands skip the broker entirely; mutating commands
// publish entry events like the dashboard does, so the worker alerts
// on CLI-created entries too. A missing broker degrades to a warning.
func openBackend(ctx context.Context, withEvents bool) (*backend.BackendResult, *config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	backendCfg, err := backendConfig(cfg, withEvents)
	if err != nil {
		return nil, nil, err
	}

	result, err := backend.NewFactory(nil).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, nil, err
	}
	return result, cfg, nil
}

func backendConfig(cfg *config.Config, withEvents bool) (backend.Config, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return backend.Config{}, err
	}
	if !withEvents {
		backendCfg.AMQPURL = ""
	}
	return backendCfg, nil
}

func closeBackend(result *backend.BackendResult) {
	if result.Cleanup != nil {
		if err := result.Cleanup(); err != nil {
			slog.Warn("Backend cleanup error", "error", err)
		}
	}
}
