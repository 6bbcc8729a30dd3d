package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadName string

var uploadCmd = &cobra.Command{
	Use:   "upload <project-id> <file>",
	Short: "Upload an image asset for a project",
	Long:  "Store a binary file under the project's asset directory in the repository. Re-uploading the same name replaces the asset.",
	Args:  cobra.ExactArgs(2),
	RunE:  runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "asset name (default: the file's basename)")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	projectID, file := args[0], args[1]

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	name := uploadName
	if name == "" {
		name = filepath.Base(file)
	}

	store := newStore(cmd)
	asset, err := store.UploadAsset(context.Background(), projectID, name, data)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Printf("Uploaded %s\n", asset.Path)
	if asset.DownloadURL != "" {
		fmt.Println(asset.DownloadURL)
	}
	return nil
}
