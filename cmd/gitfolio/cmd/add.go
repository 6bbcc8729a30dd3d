package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stalker-doge/gitfolio"
)

var (
	addFrom        string
	addTitle       string
	addSubtitle    string
	addDescription string
	addCategory    []string
	addTech        []string
	addFeatures    []string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new project",
	Long:  "Create a project from a JSON draft file or from flags. New projects start as drafts.",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addFrom, "from", "", "JSON draft file")
	addCmd.Flags().StringVar(&addTitle, "title", "", "project title")
	addCmd.Flags().StringVar(&addSubtitle, "subtitle", "", "project subtitle")
	addCmd.Flags().StringVar(&addDescription, "description", "", "project description")
	addCmd.Flags().StringSliceVar(&addCategory, "category", nil, "category tags")
	addCmd.Flags().StringSliceVar(&addTech, "tech", nil, "technologies, in order")
	addCmd.Flags().StringSliceVar(&addFeatures, "feature", nil, "feature list, in order")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	var draft gitfolio.Project
	if addFrom != "" {
		var err error
		draft, err = loadDraft(addFrom)
		if err != nil {
			return err
		}
	}
	if addTitle != "" {
		draft.Title = addTitle
	}
	if addSubtitle != "" {
		draft.Subtitle = addSubtitle
	}
	if addDescription != "" {
		draft.Description = addDescription
	}
	if len(addCategory) > 0 {
		draft.Category = addCategory
	}
	if len(addTech) > 0 {
		draft.Technologies = addTech
	}
	if len(addFeatures) > 0 {
		draft.Features = addFeatures
	}

	store := newStore(cmd)
	created, err := store.Create(context.Background(), draft)
	if err != nil {
		var verr *gitfolio.ValidationError
		if errors.As(err, &verr) {
			for _, issue := range verr.Issues {
				fmt.Fprintln(os.Stderr, "invalid:", issue)
			}
		}
		return err
	}

	fmt.Printf("Created %s (%s)\n", created.ID, created.Status)
	return nil
}
