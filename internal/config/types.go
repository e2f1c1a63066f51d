package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// DefaultVolume is the disk volume shown when the config doesn't name one.
const DefaultVolume = "/"

// Config represents the complete .hostdash.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Network NetworkConfig `yaml:"network" mapstructure:"network"`
	Disk    DiskConfig    `yaml:"disk" mapstructure:"disk"`
}

// NetworkConfig selects the interface whose throughput is sampled.
type NetworkConfig struct {
	// Interface is an OS interface name such as wlan0, en0 or eth0.
	Interface string `yaml:"interface" mapstructure:"interface"`
}

// DiskConfig selects the volume shown in the disk panel.
type DiskConfig struct {
	// Volume is a mount point (/, /home) or a drive root (C:\).
	Volume string `yaml:"volume" mapstructure:"volume"`
}

// DefaultConfig returns a Config with sensible defaults.
// The network interface has no default; it must be chosen per host.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Disk:    DiskConfig{Volume: DefaultVolume},
	}
}
