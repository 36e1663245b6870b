package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/muurk/uvcctl/internal/device"
	"github.com/muurk/uvcctl/internal/settings"
)

const (
	appName    = "uvcctl"
	configFile = "config.yaml"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/uvcctl or $HOME/.config/uvcctl
//   - macOS: $HOME/.config/uvcctl (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\uvcctl
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		// Linux and other Unix-like systems: Use XDG_CONFIG_HOME or $HOME/.config
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the configuration at path from fs.
// If the file doesn't exist, returns the default configuration.
// Fields missing from the file keep their default values.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}
	if !exists {
		return cfg, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, CurrentVersion)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDefault loads the configuration from the standard location
func LoadDefault(fs afero.Fs) (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return Load(fs, path)
}

// Save writes the configuration to path on fs.
// Performs an atomic write to prevent corruption on crash.
func (c *Config) Save(fs afero.Fs, path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := fs.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# uvcctl configuration file
#
# device:   video device node controlled by uvcctl
# driver:   v4l2-ctl binary and per-call timeout
# profiles: targets for "optimize" (o) and "reset" (r)
#
# Location: ` + path + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := afero.WriteFile(fs, tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		// Clean up temp file on error
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Device == "" {
		result = multierror.Append(result, errors.New("device must not be empty"))
	}
	if c.Driver.Path == "" {
		result = multierror.Append(result, errors.New("driver.path must not be empty"))
	}
	if c.Driver.Timeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("driver.timeout must be positive, got %s", c.Driver.Timeout))
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}

	for _, err := range validateProfile("profiles.optimal", c.Profiles.Optimal) {
		result = multierror.Append(result, err)
	}
	for _, err := range validateProfile("profiles.defaults", c.Profiles.Defaults) {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func validateProfile(name string, p device.Profile) []error {
	var errs []error

	if res := p.Format.Resolution(); !settings.ValidResolution(res) {
		errs = append(errs, fmt.Errorf("%s.format: unsupported resolution %s", name, res))
	}
	if !settings.ValidPixelFormat(p.Format.PixelFormat) {
		errs = append(errs, fmt.Errorf("%s.format: unsupported pixel format %q", name, p.Format.PixelFormat))
	}
	if !settings.ValidFrameRate(p.Format.FrameRate) {
		errs = append(errs, fmt.Errorf("%s.format: unsupported frame rate %d", name, p.Format.FrameRate))
	}
	if !p.Controls.PowerLineFrequency.Valid() {
		errs = append(errs, fmt.Errorf("%s.controls: invalid power line frequency %d", name, p.Controls.PowerLineFrequency))
	}

	return errs
}
