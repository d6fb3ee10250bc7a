package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFilename = "config.json"
	DefaultYAMLFilename   = "config.yaml"

	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// Environment variables override file values when set.
	EnvAPIKey          = "OPENROUTER_API_KEY"
	EnvBaseURL         = "OPENROUTER_BASE_URL"
	EnvProvisioningKey = "OPENROUTER_PROVISIONING_KEY"
)

// Config holds client settings shared by library consumers and the CLI.
type Config struct {
	BaseURL         string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey          string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	ProvisioningKey string `json:"provisioning_key,omitempty" yaml:"provisioning_key,omitempty"`
	DefaultModel    string `json:"default_model,omitempty" yaml:"default_model,omitempty"`
	XTitle          string `json:"x_title,omitempty" yaml:"x_title,omitempty"`
	HTTPReferer     string `json:"http_referer,omitempty" yaml:"http_referer,omitempty"`
}

// Manager loads and persists Config under a base directory. YAML takes
// precedence over JSON when both exist. The loaded value is cached
// atomically so Get is safe from any goroutine.
type Manager struct {
	jsonPath    string
	yamlPath    string
	configValue atomic.Value
}

func NewManager(baseDir string) *Manager {
	return &Manager{
		jsonPath: filepath.Join(baseDir, DefaultConfigFilename),
		yamlPath: filepath.Join(baseDir, DefaultYAMLFilename),
	}
}

// DefaultDir returns the per-user config directory.
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "openrouter")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".openrouter")
}

func (m *Manager) Load() (*Config, error) {
	var cfg Config

	switch {
	case m.HasYAML():
		data, err := os.ReadFile(m.yamlPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml config: %w", err)
		}
	case m.HasJSON():
		data, err := os.ReadFile(m.jsonPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	m.configValue.Store(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvProvisioningKey); v != "" {
		cfg.ProvisioningKey = v
	}
}

func (m *Manager) Get() *Config {
	if v := m.configValue.Load(); v != nil {
		return v.(*Config)
	}

	cfg, err := m.Load()
	if err != nil {
		// Fall back to defaults plus environment when loading fails
		cfg = &Config{}
		applyDefaults(cfg)
		applyEnvOverrides(cfg)
		return cfg
	}
	return cfg
}

func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(m.jsonPath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(m.jsonPath, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	m.configValue.Store(cfg)
	return nil
}

func (m *Manager) SaveAsYAML(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(m.yamlPath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml config: %w", err)
	}

	if err := os.WriteFile(m.yamlPath, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	m.configValue.Store(cfg)
	return nil
}

// CreateExampleYAML writes a starter config for new installs.
func (m *Manager) CreateExampleYAML() error {
	return m.SaveAsYAML(&Config{
		BaseURL:      DefaultBaseURL,
		APIKey:       "your-api-key-here",
		DefaultModel: "deepseek/deepseek-chat",
	})
}

// GetPath returns the path of the active config file, preferring YAML.
func (m *Manager) GetPath() string {
	if m.HasYAML() {
		return m.yamlPath
	}
	return m.jsonPath
}

func (m *Manager) Exists() bool {
	return m.HasYAML() || m.HasJSON()
}

func (m *Manager) HasYAML() bool {
	_, err := os.Stat(m.yamlPath)
	return err == nil
}

func (m *Manager) HasJSON() bool {
	_, err := os.Stat(m.jsonPath)
	return err == nil
}
