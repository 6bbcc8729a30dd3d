package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stalker-doge/gitfolio"
)

var (
	listStatus  string
	listRefresh bool
	listJSON    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List portfolio projects",
	Long:  "List the projects in the collection document, optionally filtered by status.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (draft|published)")
	listCmd.Flags().BoolVar(&listRefresh, "refresh", false, "drop the read cache before listing")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print raw JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store := newStore(cmd)
	if listRefresh {
		store.ClearCache()
	}

	projects, err := store.Projects(context.Background())
	if err != nil {
		return err
	}

	if listStatus != "" {
		filtered := projects[:0]
		for _, p := range projects {
			if string(p.Status) == listStatus {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	}

	if len(projects) == 0 {
		fmt.Println("(no projects)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tMODIFIED")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Status, p.LastModified)
	}
	return w.Flush()
}

// loadDraft reads a Project draft from a JSON file.
func loadDraft(path string) (gitfolio.Project, error) {
	var p gitfolio.Project
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse draft %s: %w", path, err)
	}
	return p, nil
}
