package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"gopkg.in/yaml.v3"
)

const configHeader = "# hostdash configuration\n# Run 'hostdash check' to list interfaces and volumes on this host.\n\n"

// Marshal renders cfg as the YAML written by 'hostdash init'.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't encode config", "")
	}
	return append([]byte(configHeader), data...), nil
}

// Write saves cfg to path. Existing files are left alone unless force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+path,
				"Use --force to overwrite it")
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't create config directory "+dir, "Check directory permissions")
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write config file "+path, "Check directory permissions")
	}
	return nil
}
