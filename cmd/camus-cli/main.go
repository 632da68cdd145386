package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "camus-cli",
	Short: "Camus CLI - maintenance tool for the conversation store",
	Long: `camus-cli talks directly to the conversation database.

It reads the same environment (and .env files) as the API server.

Examples:
  # Schema management
  camus-cli migrate up
  camus-cli migrate down --steps 1

  # Inspect stored conversations
  camus-cli conversations list --user user-123
  camus-cli conversations show 6a1f...

  # Title conversations that were left untitled
  camus-cli titles backfill --limit 100`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(titlesCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
