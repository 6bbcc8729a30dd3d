package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <out.tar.zst>",
	Short: "Snapshot the collection and its assets",
	Long:  "Write the collection document and every referenced image asset as a zstd-compressed tarball.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	out, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	store := newStore(cmd)

	fmt.Fprintf(os.Stderr, "Exporting to %s...\n", args[0])
	if err := store.Export(context.Background(), out); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Done.")
	return nil
}
