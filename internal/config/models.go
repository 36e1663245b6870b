package config

import (
	"time"

	"github.com/muurk/uvcctl/internal/device"
)

// CurrentVersion is the only config file version understood
const CurrentVersion = 1

// Config represents the entire user configuration file
type Config struct {
	Version  int            `yaml:"version"`
	Device   string         `yaml:"device"` // Video device node, e.g. /dev/video0
	Driver   DriverConfig   `yaml:"driver"`
	Log      LogConfig      `yaml:"log"`
	Profiles ProfilesConfig `yaml:"profiles"`
}

// DriverConfig describes how the v4l2-ctl binary is invoked
type DriverConfig struct {
	Path    string        `yaml:"path"`    // Binary name or absolute path
	Timeout time.Duration `yaml:"timeout"` // Per-invocation timeout, e.g. "5s"
}

// LogConfig controls diagnostic logging. The interactive controller owns the
// terminal, so logs go to File when one is set.
type LogConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error; empty = silent
	File  string `yaml:"file,omitempty"`
}

// ProfilesConfig holds the targets of the optimize and reset operations
type ProfilesConfig struct {
	Optimal  device.Profile `yaml:"optimal"`
	Defaults device.Profile `yaml:"defaults"`
}

// Default returns a configuration populated with built-in defaults
func Default() *Config {
	dc := device.DefaultConfig()
	return &Config{
		Version: CurrentVersion,
		Device:  dc.DevicePath,
		Driver: DriverConfig{
			Path:    dc.DriverPath,
			Timeout: dc.Timeout,
		},
		Profiles: ProfilesConfig{
			Optimal:  dc.Optimal,
			Defaults: dc.Defaults,
		},
	}
}

// DeviceConfig converts the file configuration into backend configuration
func (c *Config) DeviceConfig() device.Config {
	return device.Config{
		DevicePath: c.Device,
		DriverPath: c.Driver.Path,
		Timeout:    c.Driver.Timeout,
		Optimal:    c.Profiles.Optimal,
		Defaults:   c.Profiles.Defaults,
	}
}
