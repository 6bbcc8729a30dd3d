package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a project",
	Long:  "Remove a project from the collection document. Image assets are left in place; delete them separately if needed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	store := newStore(cmd)

	removed, err := store.Delete(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Removed %s (%q)\n", removed.ID, removed.Title)
	return nil
}
