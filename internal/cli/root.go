package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/realmorrisliu/openrouter-go/internal/config"
)

const (
	AppName = "openrouter"
	Version = "0.1.0"
)

var (
	logger *slog.Logger
	cfgMgr *config.Manager
)

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})
	logger = slog.New(handler)

	cfgMgr = config.NewManager(config.DefaultDir())
}

var rootCmd = &cobra.Command{
	Use:     AppName,
	Short:   "OpenRouter API client",
	Long:    `Chat with models, inspect the catalog, and manage keys and credits through the OpenRouter API.`,
	Version: Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(creditsCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(guardrailsCmd)
	rootCmd.AddCommand(configCmd)
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
}
