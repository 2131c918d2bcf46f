// Package config loads Player HUD settings: store selection, the save key,
// and the XP rate-resolution table. Values come from an optional YAML file
// with environment variables taking precedence, so the dashboard still runs
// (in a degraded, store-less mode) when nothing is configured at all.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/storage"
)

const defaultConfigName = ".playerhud.yaml"

type Supabase struct {
	URL            string `yaml:"url"`
	ServiceRoleKey string `yaml:"service_role_key"`
}

type Config struct {
	SaveKey  string          `yaml:"save_key"`
	DBPath   string          `yaml:"db_path"`
	NoStore  bool            `yaml:"no_store"`
	Supabase Supabase        `yaml:"supabase"`
	Rates    map[string]Rate `yaml:"rates"`
}

func Default() *Config {
	return &Config{
		SaveKey: storage.DefaultSaveKey,
		Rates:   DefaultRates(),
	}
}

// Load reads the config file (PLAYERHUD_CONFIG or ~/.playerhud.yaml) and
// applies environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("PLAYERHUD_CONFIG")
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, defaultConfigName)
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.SaveKey != "" {
		c.SaveKey = file.SaveKey
	}
	if file.DBPath != "" {
		c.DBPath = file.DBPath
	}
	if file.NoStore {
		c.NoStore = true
	}
	if file.Supabase.URL != "" {
		c.Supabase.URL = file.Supabase.URL
	}
	if file.Supabase.ServiceRoleKey != "" {
		c.Supabase.ServiceRoleKey = file.Supabase.ServiceRoleKey
	}
	for category, rate := range file.Rates {
		c.Rates[category] = rate
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		c.Supabase.URL = v
	}
	if v := os.Getenv("SUPABASE_SERVICE_ROLE_KEY"); v != "" {
		c.Supabase.ServiceRoleKey = v
	}
	if v := os.Getenv("PLAYERHUD_SAVE_KEY"); v != "" {
		c.SaveKey = v
	}
	if v := os.Getenv("PLAYERHUD_DB"); v != "" {
		c.DBPath = v
	}
	if os.Getenv("PLAYERHUD_NO_STORE") == "1" {
		c.NoStore = true
	}
}

// CloudEnabled reports whether the remote store is fully configured.
func (c *Config) CloudEnabled() bool {
	return c.Supabase.URL != "" && c.Supabase.ServiceRoleKey != "" && c.SaveKey != ""
}

// Rate returns the configured rate for an XP category (zero Rate if none).
func (c *Config) Rate(category string) Rate {
	return c.Rates[category]
}
