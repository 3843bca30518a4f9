package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/jsnovaweb/ServerSensei/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".sensei.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/sensei"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'sensei init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .sensei.yaml in the current directory
// 3. ~/.config/sensei/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults
// if not found. Commands like 'sensei init' and local-only monitoring
// work without an existing config.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetDefault("snapshot_file", cfg.SnapshotFile)
	v.SetDefault("connect_timeout", "10s")

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Resolve picks the connection target for the given name. An empty
// name falls back to the config's default target, and then to local
// monitoring.
func (c *Config) Resolve(name string) (ConnectionTarget, error) {
	if name == "" {
		name = c.Default
	}
	if name == "" || name == "local" {
		return Local(), nil
	}

	target, ok := c.Targets[name]
	if !ok {
		return ConnectionTarget{}, errors.New(errors.ErrConfig,
			"Unknown target '"+name+"'",
			"Add it to "+ConfigFileName+" under 'targets', or pass a host directly with --host")
	}
	return RemoteTarget(name, target), nil
}
