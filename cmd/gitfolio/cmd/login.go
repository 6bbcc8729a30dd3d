package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stalker-doge/gitfolio"
	"github.com/stalker-doge/gitfolio/internal/token"
)

var loginCmd = &cobra.Command{
	Use:   "login <token>",
	Short: "Persist a GitHub credential",
	Long:  "Store a GitHub token in the config file. Environment variables (GITFOLIO_TOKEN, GITHUB_TOKEN) still take priority over the stored value.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	viper.Set("github_token", args[0])

	if err := viper.WriteConfig(); err != nil {
		// No config file yet: create one in the default location.
		dir := configDir()
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err := viper.WriteConfigAs(filepath.Join(dir, "config.yaml")); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
	}

	fmt.Fprintln(os.Stderr, "Token saved.")
	return nil
}

// tokenChain puts the environment ahead of the persisted login.
func tokenChain(persisted string) gitfolio.TokenSource {
	return token.Chain{token.Default(), token.Static(persisted)}
}
