// Package config provides user configuration management for uvcctl.
//
// This package manages a YAML-based configuration file that stores the device
// node, the v4l2-ctl invocation settings, logging preferences and the two
// profiles used by the optimize and reset operations.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/uvcctl/config.yaml or $HOME/.config/uvcctl/config.yaml
//   - macOS: $HOME/.config/uvcctl/config.yaml
//   - Windows: %LOCALAPPDATA%\uvcctl\config.yaml
//
// # File Format
//
//	version: 1
//	device: /dev/video0
//	driver:
//	    path: v4l2-ctl
//	    timeout: 5s
//	profiles:
//	    optimal:
//	        format: {width: 1920, height: 1080, pixel_format: MJPG, frame_rate: 30}
//	        controls: {brightness: 128, auto_exposure: true, power_line_frequency: 2}
//
// Fields left out of the file keep their built-in defaults.
//
// # Usage Example
//
//	fs := afero.NewOsFs()
//	cfg, err := config.LoadDefault(fs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	backend := device.NewV4L2Backend(cfg.DeviceConfig(), logger)
//
// All file access goes through an afero.Fs so tests can use a memory
// filesystem. Save writes atomically (temporary file and rename).
package config
