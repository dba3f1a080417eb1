package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvWordsProvider = "TYPEFALL_WORDS_PROVIDER"
	EnvWordsURL      = "TYPEFALL_WORDS_URL"
	EnvWordsTimeout  = "TYPEFALL_WORDS_TIMEOUT"
	EnvLexiconPath   = "TYPEFALL_LEXICON"
)

// Load loads and validates the game configuration.
// Search order: customPath -> ~/.typefall/config.yaml -> ./configs/typefall.yaml -> embedded default.
// Files are decoded on top of DefaultConfig, so partial files only override
// the keys they name.
func Load(customPath string) (Config, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", userCfgPath, err)
			}
			return cfg, nil
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "typefall.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse configs/typefall.yaml: %w", err)
		}
		return cfg, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadEnv reads KEY=VALUE pairs from the given .env files into the process
// environment. With no arguments it reads ./.env and tolerates its absence.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	return nil
}

// ApplyEnv overrides word source settings from TYPEFALL_* variables.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvWordsProvider); v != "" {
		cfg.WordBank.Provider = v
	}
	if v := os.Getenv(EnvWordsURL); v != "" {
		cfg.WordBank.URL = v
	}
	if v := os.Getenv(EnvWordsTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWordsTimeout, v, err)
		}
		cfg.WordBank.Timeout = d
	}
	if v := os.Getenv(EnvLexiconPath); v != "" {
		cfg.WordBank.LexiconPath = v
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".typefall", filename)
}
