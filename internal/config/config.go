// Package config provides configuration loading for the NutriGenius server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Model   ModelConfig   `yaml:"model"`
	Storage StorageConfig `yaml:"storage"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port int `yaml:"port"`
	// AllowedOrigins lists CORS origins (empty = allow all)
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
	// PublicURL is advertised in the agent card (empty = http://localhost:<port>)
	PublicURL string `yaml:"public_url,omitempty"`
}

// ModelConfig configures the Gemini model settings
type ModelConfig struct {
	Name            string  `yaml:"name"`
	Temperature     float32 `yaml:"temperature"`
	TopP            float32 `yaml:"top_p"`
	MaxOutputTokens int32   `yaml:"max_output_tokens"`
}

// StorageConfig configures the SQLite database
type StorageConfig struct {
	// Path is the database file (":memory:" for a throwaway database)
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Model: ModelConfig{
			Name:            "gemini-2.5-flash-lite",
			Temperature:     0.7,
			TopP:            0.95,
			MaxOutputTokens: 8192,
		},
		Storage: StorageConfig{
			Path: "nutrigenius.db",
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides values from PORT, ALLOWED_ORIGINS, GEMINI_MODEL and NUTRIGENIUS_DB.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("PUBLIC_URL"); v != "" {
		c.Server.PublicURL = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Model.Name = v
	}
	if v := os.Getenv("NUTRIGENIUS_DB"); v != "" {
		c.Storage.Path = v
	}
	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535"))
	}
	if c.Model.Name == "" {
		errs = append(errs, fmt.Errorf("model.name is required"))
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		errs = append(errs, fmt.Errorf("model.temperature must be between 0 and 2"))
	}
	if c.Model.TopP < 0 || c.Model.TopP > 1 {
		errs = append(errs, fmt.Errorf("model.top_p must be between 0 and 1"))
	}
	if c.Model.MaxOutputTokens <= 0 {
		errs = append(errs, fmt.Errorf("model.max_output_tokens must be positive"))
	}
	if c.Storage.Path == "" {
		errs = append(errs, fmt.Errorf("storage.path is required"))
	}
	return errors.Join(errs...)
}

// BaseURL is the externally reachable root of the server.
func (c *Config) BaseURL() string {
	if c.Server.PublicURL != "" {
		return strings.TrimRight(c.Server.PublicURL, "/")
	}
	return fmt.Sprintf("http://localhost:%d", c.Server.Port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
