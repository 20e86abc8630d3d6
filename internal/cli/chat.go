package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/set-night/zeno/internal/ui"
)

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <text>",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			if err := a.chat.Send(cmd.Context(), strings.Join(args, " ")); err != nil {
				return err
			}

			transcript := a.chat.Transcript()
			if n := len(transcript); n > 0 {
				a.term.Println(ui.FormatMessage(transcript[n-1]))
			}
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var clear bool
	var deleteID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, delete from, or clear the chat history",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			if clear {
				return a.history.Clear(cmd.Context())
			}
			if deleteID != "" {
				return a.history.Delete(cmd.Context(), deleteID)
			}

			if err := a.history.Load(cmd.Context()); err != nil {
				return err
			}
			messages := a.history.Messages()
			if len(messages) == 0 {
				a.term.Println("No chat history available.")
				return nil
			}
			for _, m := range messages {
				a.term.Println(ui.FormatHistoryEntry(m))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "clear all chat history")
	cmd.Flags().StringVar(&deleteID, "delete", "", "delete one message by id")
	return cmd
}
