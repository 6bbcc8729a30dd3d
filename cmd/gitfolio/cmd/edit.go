package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stalker-doge/gitfolio"
)

var editFrom string

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update fields of an existing project",
	Long: "Apply a shallow merge onto a project: fields present in the patch replace the " +
		"stored value wholesale, absent fields are preserved. The id never changes.",
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editFrom, "from", "", "JSON patch file")
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("subtitle", "", "new subtitle")
	editCmd.Flags().String("description", "", "new description")
	editCmd.Flags().String("status", "", "new status (draft|published)")
	editCmd.Flags().Bool("featured", false, "featured flag")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id := args[0]

	var patch gitfolio.Patch
	if editFrom != "" {
		data, err := os.ReadFile(editFrom)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &patch); err != nil {
			return fmt.Errorf("parse patch %s: %w", editFrom, err)
		}
	}

	// Only flags the user actually set become part of the patch.
	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		patch.Title = &v
	}
	if cmd.Flags().Changed("subtitle") {
		v, _ := cmd.Flags().GetString("subtitle")
		patch.Subtitle = &v
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		patch.Description = &v
	}
	if cmd.Flags().Changed("status") {
		v, _ := cmd.Flags().GetString("status")
		status := gitfolio.Status(v)
		patch.Status = &status
	}
	if cmd.Flags().Changed("featured") {
		v, _ := cmd.Flags().GetBool("featured")
		patch.Featured = &v
	}

	store := newStore(cmd)
	updated, err := store.Update(context.Background(), id, patch)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s (modified %s)\n", updated.ID, updated.LastModified)
	return nil
}
