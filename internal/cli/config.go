package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/realmorrisliu/openrouter-go/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Manage the client configuration file.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration interactively",
	Long:  `Initialize configuration by prompting for the API key and defaults.`,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the resolved configuration, with secrets redacted.`,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	color.Blue("OpenRouter client setup")

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("\nAPI Key: ")
	apiKey, _ := reader.ReadString('\n')
	apiKey = strings.TrimSpace(apiKey)

	fmt.Print("Default Model (e.g. deepseek/deepseek-chat): ")
	model, _ := reader.ReadString('\n')
	model = strings.TrimSpace(model)

	fmt.Print("App title for attribution (optional): ")
	title, _ := reader.ReadString('\n')
	title = strings.TrimSpace(title)

	cfg := &config.Config{
		BaseURL:      config.DefaultBaseURL,
		APIKey:       apiKey,
		DefaultModel: model,
		XTitle:       title,
	}

	if err := cfgMgr.SaveAsYAML(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	color.Green("Configuration saved to: %s", cfgMgr.GetPath())
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg := cfgMgr.Get()

	color.Blue("Configuration (%s):", cfgMgr.GetPath())
	fmt.Printf("  %-18s: %s\n", "Base URL", cfg.BaseURL)
	fmt.Printf("  %-18s: %s\n", "API Key", redact(cfg.APIKey))
	fmt.Printf("  %-18s: %s\n", "Provisioning Key", redact(cfg.ProvisioningKey))
	fmt.Printf("  %-18s: %s\n", "Default Model", cfg.DefaultModel)
	fmt.Printf("  %-18s: %s\n", "X-Title", cfg.XTitle)
	fmt.Printf("  %-18s: %s\n", "HTTP Referer", cfg.HTTPReferer)
	return nil
}

func redact(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
