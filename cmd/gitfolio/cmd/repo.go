package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Show backing repository metadata",
	Args:  cobra.NoArgs,
	RunE:  runRepo,
}

func init() {
	rootCmd.AddCommand(repoCmd)
}

func runRepo(cmd *cobra.Command, args []string) error {
	store := newStore(cmd)

	info, err := store.RepoInfo(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Repository:     %s\n", info.FullName)
	if info.Description != "" {
		fmt.Printf("Description:    %s\n", info.Description)
	}
	fmt.Printf("Default branch: %s\n", info.DefaultBranch)
	fmt.Printf("Private:        %v\n", info.Private)
	fmt.Printf("Updated:        %s\n", info.UpdatedAt)
	return nil
}
