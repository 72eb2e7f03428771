package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petasbytes/companion/internal/intent"
	"github.com/petasbytes/companion/memory"
)

func NewRemindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Show the saved reminders",
		Long:  `Print the reminders from the saved memory document without starting a conversation.`,
		Args:  cobra.NoArgs,
		RunE:  runReminders,
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runReminders(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	doc, err := memory.NewStore(cfg.MemoryPath).Load()
	switch {
	case errors.Is(err, memory.ErrNotFound):
		if asJSON {
			doc = memory.NewDocument()
			break
		}
		fmt.Fprintf(cmd.OutOrStdout(), "No saved memory found at %s.\n", cfg.MemoryPath)
		return nil
	case err != nil:
		return fmt.Errorf("read reminders: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc.Reminders)
	}
	fmt.Fprintln(cmd.OutOrStdout(), intent.FormatReminders(doc.Reminders))
	return nil
}
