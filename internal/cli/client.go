package cli

import (
	"fmt"

	"github.com/fatih/color"

	openrouter "github.com/realmorrisliu/openrouter-go"
	"github.com/realmorrisliu/openrouter-go/internal/config"
)

// newClient builds an API client from the resolved configuration.
func newClient() (*openrouter.Client, *config.Config, error) {
	cfg := cfgMgr.Get()
	if cfg.APIKey == "" && cfg.ProvisioningKey == "" {
		color.Yellow("No API key configured.")
		fmt.Printf("Set %s or run '%s config init'\n", config.EnvAPIKey, AppName)
		return nil, nil, fmt.Errorf("api key required")
	}

	opts := []openrouter.Option{
		openrouter.WithLogger(logger),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openrouter.WithBaseURL(cfg.BaseURL))
	}
	if cfg.ProvisioningKey != "" {
		opts = append(opts, openrouter.WithProvisioningKey(cfg.ProvisioningKey))
	}
	if cfg.XTitle != "" {
		opts = append(opts, openrouter.WithXTitle(cfg.XTitle))
	}
	if cfg.HTTPReferer != "" {
		opts = append(opts, openrouter.WithHTTPReferer(cfg.HTTPReferer))
	}

	return openrouter.NewClient(cfg.APIKey, opts...), cfg, nil
}
