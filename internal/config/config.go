package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStorePath = "./store"
	DefaultLogLevel  = "info"
)

type Config struct {
	StorePath     string `yaml:"store_path"`
	LockFreeReads bool   `yaml:"lock_free_reads"`
	Seed          uint64 `yaml:"seed"`
	LogLevel      string `yaml:"log_level"`
}

// LoadConfig loads configuration from a YAML file if path is provided,
// then applies environment variable overrides and defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	if cfg.StorePath == "" {
		cfg.StorePath = DefaultStorePath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if hclog.LevelFromString(cfg.LogLevel) == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	return &cfg, nil
}

// applyEnvOverrides lets environment variables override file values.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("SKIPINDEX_STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("SKIPINDEX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SKIPINDEX_LOCK_FREE_READS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SKIPINDEX_LOCK_FREE_READS value: %w", err)
		}
		cfg.LockFreeReads = b
	}
	if v := os.Getenv("SKIPINDEX_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SKIPINDEX_SEED value: %w", err)
		}
		cfg.Seed = seed
	}
	return nil
}
