package config

import (
	"fmt"

	"github.com/jsnovaweb/ServerSensei/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sensei only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest release: https://github.com/jsnovaweb/ServerSensei/releases")
	}

	for name, target := range cfg.Targets {
		if err := validateTarget(name, target); err != nil {
			return err
		}
	}

	if cfg.Default != "" && cfg.Default != "local" {
		if _, ok := cfg.Targets[cfg.Default]; !ok {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Default target '%s' is not defined under 'targets'", cfg.Default),
				"Add it to the targets section, or set default to 'local'.")
		}
	}

	if cfg.ConnectTimeout < 0 {
		return errors.New(errors.ErrConfig,
			"connect_timeout can't be negative",
			"Use a duration like '10s' or '1m'.")
	}

	return nil
}

func validateTarget(name string, target Target) error {
	if name == "local" {
		return errors.New(errors.ErrConfig,
			"'local' is a reserved target name",
			"Pick a different name; local monitoring needs no target entry.")
	}
	if target.Host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Target '%s' has no host", name),
			"Set 'host' to a hostname, user@hostname, or SSH config alias.")
	}
	if target.Port < 0 || target.Port > 65535 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Target '%s' has an invalid port %d", name, target.Port),
			"Ports are 1-65535; leave it out to use the default.")
	}
	return nil
}
