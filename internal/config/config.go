// Package config loads server settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs at startup.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`
	// DataDir is the PocketBase data directory.
	DataDir string `yaml:"data_dir"`
	// BaseURL is the public origin used in canonical links and the
	// sitemap, e.g. "https://grants.example.org".
	BaseURL string `yaml:"base_url"`
	// SeedFile is an optional JSON fixture loaded at startup when the
	// grants collection is empty.
	SeedFile string `yaml:"seed_file"`
}

// Default returns the zero-config defaults.
func Default() Config {
	return Config{
		Port:    "8080",
		DataDir: "./pb_data",
		BaseURL: "http://localhost:8080",
	}
}

// Load reads the YAML file at path (skipped when path is empty or the
// file does not exist) and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./pb_data"
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SEED_FILE"); v != "" {
		c.SeedFile = v
	}
}
