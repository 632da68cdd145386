package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "Conversation title maintenance",
}

var titlesBackfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Title conversations that have a user message but no title",
	Long: `Run one title backfill pass now instead of waiting for the scheduled job.

Titles come from the configured model when AI titles are enabled, otherwise
from the first user message. Titles set in the meantime are never overwritten.`,
	RunE: runTitlesBackfill,
}

func init() {
	titlesCmd.AddCommand(titlesBackfillCmd)

	titlesBackfillCmd.Flags().Int("limit", 25, "Maximum number of conversations to title")
}

func runTitlesBackfill(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}

	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	service, err := rt.conversationService()
	if err != nil {
		return err
	}
	titled, err := rt.titleGenerator(service).Backfill(cmd.Context(), limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "titled %d conversation(s)\n", titled)
	return nil
}
