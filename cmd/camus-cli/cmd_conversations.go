package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/janhq/camus/internal/domain/session"
	"github.com/janhq/camus/internal/interfaces/httpserver/responses"
)

var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"conv"},
	Short:   "Inspect stored conversations",
}

var conversationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent conversations of a user or session",
	Long: `List up to 50 conversations, most recently updated first.

--user takes precedence over --session, as it does for API callers.`,
	RunE: runConversationsList,
}

var conversationsShowCmd = &cobra.Command{
	Use:   "show [conversation-id]",
	Short: "Print the rebuilt conversation as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runConversationsShow,
}

func init() {
	conversationsCmd.AddCommand(conversationsListCmd)
	conversationsCmd.AddCommand(conversationsShowCmd)

	conversationsListCmd.Flags().String("user", "", "Owning user id")
	conversationsListCmd.Flags().String("session", "", "Client session id of an anonymous owner")
	conversationsListCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}

func runConversationsList(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	sessionID, _ := cmd.Flags().GetString("session")
	asJSON, _ := cmd.Flags().GetBool("json")
	if userID == "" && sessionID == "" {
		return fmt.Errorf("one of --user or --session is required")
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
	summaries, err := service.ListConversations(cmd.Context(), session.Identity{UserID: userID, ClientSessionID: sessionID})
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd, responses.NewConversationList(summaries))
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tUPDATED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Title, time.UnixMilli(s.Timestamp).UTC().Format(time.RFC3339))
	}
	return w.Flush()
}

func runConversationsShow(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	service, err := rt.conversationService()
	if err != nil {
		return err
	}
	view, err := service.GetConversationByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd, responses.NewConversationView(view))
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
