package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Model.Name)
	assert.Equal(t, int32(8192), cfg.Model.MaxOutputTokens)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
  allowed_origins:
    - https://app.example.com
model:
  temperature: 0.3
storage:
  path: /tmp/plans.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
	assert.InDelta(t, 0.3, cfg.Model.Temperature, 1e-6)
	// unset keys keep defaults
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Model.Name)
	assert.Equal(t, "/tmp/plans.db", cfg.Storage.Path)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestSaveToFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Server.PublicURL = "https://agent.example.com"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("NUTRIGENIUS_DB", ":memory:")
	t.Setenv("PUBLIC_URL", "https://agent.example.com/")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model.Name)
	assert.Equal(t, ":memory:", cfg.Storage.Path)
	assert.Equal(t, "https://agent.example.com", cfg.BaseURL())
}

func TestApplyEnvInvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")
	assert.Error(t, DefaultConfig().ApplyEnv())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"model name", func(c *Config) { c.Model.Name = "" }},
		{"temperature", func(c *Config) { c.Model.Temperature = 3 }},
		{"top_p", func(c *Config) { c.Model.TopP = 1.5 }},
		{"max tokens", func(c *Config) { c.Model.MaxOutputTokens = 0 }},
		{"storage path", func(c *Config) { c.Storage.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
