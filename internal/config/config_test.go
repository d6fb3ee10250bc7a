package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvProvisioningKey, "")
}

func TestManager_LoadJSON(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	mgr := NewManager(tempDir)

	jsonConfig := `{
		"api_key": "sk-or-json",
		"default_model": "deepseek/deepseek-chat",
		"x_title": "My App"
	}`

	err := os.WriteFile(filepath.Join(tempDir, DefaultConfigFilename), []byte(jsonConfig), 0600)
	require.NoError(t, err)

	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-or-json", cfg.APIKey)
	assert.Equal(t, "deepseek/deepseek-chat", cfg.DefaultModel)
	assert.Equal(t, "My App", cfg.XTitle)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestManager_LoadYAML(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	mgr := NewManager(tempDir)

	yamlConfig := `
base_url: "https://proxy.example.com/api/v1"
api_key: "sk-or-yaml"
provisioning_key: "sk-or-prov"
http_referer: "https://example.com"
`

	err := os.WriteFile(filepath.Join(tempDir, DefaultYAMLFilename), []byte(yamlConfig), 0600)
	require.NoError(t, err)

	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://proxy.example.com/api/v1", cfg.BaseURL)
	assert.Equal(t, "sk-or-yaml", cfg.APIKey)
	assert.Equal(t, "sk-or-prov", cfg.ProvisioningKey)
	assert.Equal(t, "https://example.com", cfg.HTTPReferer)
}

func TestManager_YAMLTakesPrecedence(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	mgr := NewManager(tempDir)

	err := os.WriteFile(filepath.Join(tempDir, DefaultConfigFilename), []byte(`{"api_key": "json-key"}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(tempDir, DefaultYAMLFilename), []byte(`api_key: "yaml-key"`), 0600)
	require.NoError(t, err)

	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, "yaml-key", cfg.APIKey)
	assert.Equal(t, filepath.Join(tempDir, DefaultYAMLFilename), mgr.GetPath())
}

func TestManager_EnvOverrides(t *testing.T) {
	tempDir := t.TempDir()
	mgr := NewManager(tempDir)

	err := os.WriteFile(filepath.Join(tempDir, DefaultConfigFilename), []byte(`{"api_key": "file-key"}`), 0600)
	require.NoError(t, err)

	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvBaseURL, "https://env.example.com/api/v1")
	t.Setenv(EnvProvisioningKey, "")

	cfg, err := mgr.Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://env.example.com/api/v1", cfg.BaseURL)
}

func TestManager_GetWithoutFiles(t *testing.T) {
	clearEnv(t)

	mgr := NewManager(t.TempDir())

	cfg := mgr.Get()
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.APIKey)
}

func TestManager_SaveRoundTrip(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	mgr := NewManager(tempDir)

	cfg := &Config{
		APIKey:       "sk-or-saved",
		DefaultModel: "anthropic/claude-sonnet-4",
	}

	require.NoError(t, mgr.Save(cfg))
	assert.True(t, mgr.HasJSON())

	loaded, err := NewManager(tempDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-or-saved", loaded.APIKey)
	assert.Equal(t, "anthropic/claude-sonnet-4", loaded.DefaultModel)
}

func TestManager_SaveAsYAML(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	mgr := NewManager(tempDir)

	require.NoError(t, mgr.SaveAsYAML(&Config{APIKey: "sk-or-yaml-saved"}))
	assert.FileExists(t, filepath.Join(tempDir, DefaultYAMLFilename))

	loaded, err := NewManager(tempDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-or-yaml-saved", loaded.APIKey)
}

func TestManager_CreateExampleYAML(t *testing.T) {
	clearEnv(t)

	tempDir := t.TempDir()
	mgr := NewManager(tempDir)

	require.NoError(t, mgr.CreateExampleYAML())

	cfg, err := mgr.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "your-api-key-here", cfg.APIKey)
	assert.NotEmpty(t, cfg.DefaultModel)
}

func TestManager_FileDetection(t *testing.T) {
	tempDir := t.TempDir()
	mgr := NewManager(tempDir)

	assert.False(t, mgr.Exists())
	assert.False(t, mgr.HasYAML())
	assert.False(t, mgr.HasJSON())

	err := os.WriteFile(filepath.Join(tempDir, DefaultConfigFilename), []byte(`{}`), 0600)
	require.NoError(t, err)

	assert.True(t, mgr.Exists())
	assert.True(t, mgr.HasJSON())
	assert.Equal(t, filepath.Join(tempDir, DefaultConfigFilename), mgr.GetPath())
}
