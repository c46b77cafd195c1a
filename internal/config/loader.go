package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	configPathEnv     = "CONFIG_PATH"
	defaultConfigPath = "./config.yaml"
)

// Load builds the server configuration. Values resolve ENV first, then the
// YAML file named by CONFIG_PATH (default ./config.yaml), then env-default
// tags. A missing default file is fine; a missing explicit one is an error.
func Load() (*Config, error) {
	var cfg Config
	if err := read(os.Getenv(configPathEnv), &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// LoadClient builds the terminal client configuration from the environment.
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read client env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate client: %w", err)
	}
	return &cfg, nil
}

func read(path string, dst any) error {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, dst); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return nil
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("config: file %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(dst); err != nil {
		return fmt.Errorf("config: read env: %w", err)
	}
	return nil
}
