package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/stalker-doge/gitfolio"
)

var rootCmd = &cobra.Command{
	Use:   "gitfolio",
	Short: "Portfolio content manager backed by a GitHub repository",
	Long:  "Manage portfolio projects and image assets stored as JSON and blobs in a GitHub repository.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/gitfolio/config.yaml)")
	rootCmd.PersistentFlags().String("owner", "", "repository owner")
	rootCmd.PersistentFlags().String("repo", "", "repository name")
	rootCmd.PersistentFlags().String("branch", "main", "target branch")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")

	viper.BindPFlag("owner", rootCmd.PersistentFlags().Lookup("owner"))
	viper.BindPFlag("repo", rootCmd.PersistentFlags().Lookup("repo"))
	viper.BindPFlag("branch", rootCmd.PersistentFlags().Lookup("branch"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GITFOLIO")
	viper.AutomaticEnv()
	viper.SetDefault("branch", "main")

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitfolio")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "gitfolio")
	}
	return ".gitfolio"
}

// newStore builds a store from config. The persisted login (if any) sits at
// the bottom of the token chain, below the environment, mirroring the old
// admin panel's localStorage fallback.
func newStore(cmd *cobra.Command) *gitfolio.Store {
	opts := []gitfolio.Option{
		gitfolio.WithBranch(viper.GetString("branch")),
		gitfolio.WithLogger(newLogger(cmd)),
	}
	if tok := viper.GetString("github_token"); tok != "" {
		opts = append(opts, gitfolio.WithTokenSource(tokenChain(tok)))
	}
	return gitfolio.New(viper.GetString("owner"), viper.GetString("repo"), opts...)
}

func newLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
