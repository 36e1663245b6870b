package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/uvcctl/internal/config"
	"github.com/muurk/uvcctl/internal/device"
	"github.com/muurk/uvcctl/internal/logging"
	"github.com/muurk/uvcctl/internal/tui"
)

// Persistent flags (override the config file)
var (
	devicePath string
	driverPath string
	configPath string
	logLevel   string
	logFile    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&devicePath, "device", "", "Video device node (default from config, /dev/video0)")
	rootCmd.PersistentFlags().StringVar(&driverPath, "driver", "", "Path to the v4l2-ctl binary")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/uvcctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(fs afero.Fs) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(fs, path)
	if err != nil {
		return nil, err
	}

	applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config) {
	if devicePath != "" {
		cfg.Device = devicePath
	}
	if driverPath != "" {
		cfg.Driver.Path = driverPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
}

// logTarget picks where logs go. The interactive controller draws on the
// whole terminal, so it never logs to stderr.
func logTarget(cfg *config.Config, interactive bool) (string, error) {
	if cfg.Log.File != "" || !interactive || cfg.Log.Level == "" {
		return cfg.Log.File, nil
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "uvcctl.log"), nil
}

// session is everything a command needs to talk to the camera
type session struct {
	cfg      *config.Config
	fs       afero.Fs
	logger   *zap.Logger
	backend  device.Backend
	pipeline *tui.Pipeline
}

func newSession(cmd *cobra.Command, interactive bool) (*session, error) {
	// Suppress usage on execution errors (we're past argument parsing)
	cmd.SilenceUsage = true

	fs := afero.NewOsFs()
	cfg, err := loadConfig(fs)
	if err != nil {
		return nil, err
	}

	target, err := logTarget(cfg, interactive)
	if err != nil {
		return nil, err
	}
	if target != "" {
		if err := fs.MkdirAll(filepath.Dir(target), 0700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	if err := logging.InitializeFile(cfg.Log.Level, target); err != nil {
		return nil, err
	}

	logger := logging.GetLogger()
	backend := device.NewV4L2Backend(cfg.DeviceConfig(), logger)

	return &session{
		cfg:      cfg,
		fs:       fs,
		logger:   logger,
		backend:  backend,
		pipeline: tui.NewPipeline(backend, logger),
	}, nil
}

// requirePrerequisites fails when the driver or the device node is missing
func (s *session) requirePrerequisites(ctx context.Context) error {
	result := device.ValidatePrerequisites(ctx, s.cfg.DeviceConfig(), s.fs)
	if result.AllAvailable {
		return nil
	}
	for _, check := range result.Checks {
		if !check.Available {
			return fmt.Errorf("%s: %s", check.Name, check.Message)
		}
	}
	return fmt.Errorf("prerequisites not met")
}

func (s *session) close() {
	logging.Sync()
}
