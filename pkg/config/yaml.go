package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config file names searched, in order, when no explicit path is given.
var configFileNames = []string{".prelint.yaml", ".prelint.yml"}

// ErrNoConfig indicates that no config file was found.
var ErrNoConfig = errors.New("no config file found")

// Load reads and parses a config file, merging it over defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Checks == nil {
		cfg.Checks = make(map[string]CheckConfig)
	}

	return cfg, nil
}

// Discover searches dir and its ancestors for a config file and loads the
// first one found. Returns ErrNoConfig if none exists.
func Discover(dir string) (*Config, string, error) {
	for {
		for _, name := range configFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				return cfg, path, err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", ErrNoConfig
		}
		dir = parent
	}
}

// LoadOrDefault loads the given path, or discovers one from the working
// directory, falling back to defaults when nothing is found.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	wd, err := os.Getwd()
	if err != nil {
		return NewConfig(), nil
	}

	cfg, _, err := Discover(wd)
	if errors.Is(err, ErrNoConfig) {
		return NewConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
