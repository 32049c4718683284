package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  port: 9000\nmodel:\n  name: from-file\n"), 0644))
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("GEMINI_MODEL=from-env\n"), 0644))
	t.Setenv("GEMINI_MODEL", "")
	os.Unsetenv("GEMINI_MODEL")
	t.Setenv("PORT", "")

	cfg, err := loadConfig(runOptions{configPath: cfgPath, envFile: envPath, port: 7000}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Model.Name)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadConfigMissingEnvFile(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := loadConfig(runOptions{envFile: filepath.Join(t.TempDir(), "absent.env")}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("PORT", "")
	_, err := loadConfig(runOptions{port: 70000}, discardLogger())
	assert.Error(t, err)
}

func TestInitConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "nutrigenius.yaml")

	cmd := rootCmd()
	cmd.SetArgs([]string{"init-config", path})
	require.NoError(t, cmd.Execute())

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	cmd = rootCmd()
	cmd.SetArgs([]string{"init-config", path})
	assert.Error(t, cmd.Execute())

	cmd = rootCmd()
	cmd.SetArgs([]string{"init-config", "--force", path})
	assert.NoError(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"version"})
	assert.NoError(t, cmd.Execute())
}
