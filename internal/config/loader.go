package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvConfigPath names the variable holding the config file location.
const EnvConfigPath = "CONFIG_PATH"

const defaultConfigPath = "config.yaml"

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in increasing priority, then validates it.
//
// The file is taken from CONFIG_PATH and must exist when that variable is
// set. Otherwise ./config.yaml is used if present.
func Load() (*Config, error) {
	path, required := os.Getenv(EnvConfigPath), true
	if path == "" {
		path, required = defaultConfigPath, false
	}
	return loadFrom(path, required)
}

func loadFrom(path string, required bool) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("config: %w", statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
