package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// DefaultConnectTimeout bounds SSH connection establishment.
const DefaultConnectTimeout = 10 * time.Second

// Config represents the complete .sensei.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Targets are the named machines this tool can monitor.
	Targets map[string]Target `yaml:"targets" mapstructure:"targets"`

	// Default names the target used when none is given on the
	// command line. Empty means monitor the local machine.
	Default string `yaml:"default" mapstructure:"default"`

	// SnapshotFile is where the comparison baseline is persisted.
	SnapshotFile string `yaml:"snapshot_file" mapstructure:"snapshot_file"`

	// ConnectTimeout bounds SSH connection establishment.
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`
}

// Target defines a remote machine and its connection settings.
type Target struct {
	// Host is a hostname, user@hostname, or SSH config alias.
	Host string `yaml:"host" mapstructure:"host"`

	// Port overrides the SSH port. Zero means resolved/default.
	Port int `yaml:"port" mapstructure:"port"`

	// User overrides the SSH username.
	User string `yaml:"user" mapstructure:"user"`

	// KeyFile is an explicit private key path.
	KeyFile string `yaml:"key_file" mapstructure:"key_file"`
}

// ConnectionTarget selects where metrics come from. A nil Remote means
// the local machine. Exactly one target is active at a time; switching
// tears down the previous session and resets rate-tracker baselines.
type ConnectionTarget struct {
	Name   string
	Remote *Target
}

// Local returns the local-machine target.
func Local() ConnectionTarget {
	return ConnectionTarget{Name: "local"}
}

// RemoteTarget returns a remote connection target.
func RemoteTarget(name string, t Target) ConnectionTarget {
	return ConnectionTarget{Name: name, Remote: &t}
}

// IsLocal reports whether this target is the local machine.
func (c ConnectionTarget) IsLocal() bool {
	return c.Remote == nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		Targets:        map[string]Target{},
		SnapshotFile:   "system_snapshot.json",
		ConnectTimeout: DefaultConnectTimeout,
	}
}
