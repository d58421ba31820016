package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultSimilarCount is the number of similar tracks retrieved per
// song when neither the config file nor the CLI overrides it.
const DefaultSimilarCount = 10

type Config struct {
	Similarity SimilarityConfig `koanf:"similarity"`
}

// SimilarityConfig holds AudioMuse-AI related configuration. Values
// act as defaults for the similarity command's flags.
type SimilarityConfig struct {
	Server string `koanf:"server"` // e.g., "192.168.1.10:8000"
	Count  int    `koanf:"count"`  // similar tracks per song
}

// Load reads the configuration. A missing config file is not an error;
// all values have working defaults.
func Load() (*Config, error) {
	return loadFrom(configPaths())
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Similarity.Count <= 0 {
		cfg.Similarity.Count = DefaultSimilarCount
	}

	return cfg, nil
}

func configPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/stepsync/config.toml
		filepath.Join(xdg.ConfigHome, "stepsync", "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}
