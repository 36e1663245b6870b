package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/muurk/uvcctl/internal/device"
)

const testPath = "/home/user/.config/uvcctl/config.yaml"

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "uvcctl") {
		t.Errorf("GetConfigDir() = %v, should contain 'uvcctl'", configDir)
	}

	if runtime.GOOS == "linux" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := GetConfigDir()
		if err != nil {
			t.Fatalf("GetConfigDir() error = %v", err)
		}
		if dir != filepath.Join("/tmp/xdg", "uvcctl") {
			t.Errorf("GetConfigDir() = %v, want XDG_CONFIG_HOME/uvcctl", dir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Version != 1 {
		t.Errorf("Version = %v, want 1", cfg.Version)
	}
	if cfg.Device != "/dev/video0" {
		t.Errorf("Device = %v, want /dev/video0", cfg.Device)
	}
	if cfg.Driver.Path != "v4l2-ctl" || cfg.Driver.Timeout != 5*time.Second {
		t.Errorf("Driver = %+v", cfg.Driver)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), testPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Device != "/dev/video0" {
		t.Errorf("Device = %v, want default", cfg.Device)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `version: 1
device: /dev/video2
driver:
  timeout: 2s
profiles:
  optimal:
    format:
      width: 1280
      height: 720
    controls:
      brightness: 150
`
	if err := afero.WriteFile(fs, testPath, []byte(data), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(fs, testPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Device != "/dev/video2" {
		t.Errorf("Device = %v, want /dev/video2", cfg.Device)
	}
	if cfg.Driver.Path != "v4l2-ctl" {
		t.Errorf("Driver.Path = %v, want default v4l2-ctl", cfg.Driver.Path)
	}
	if cfg.Driver.Timeout != 2*time.Second {
		t.Errorf("Driver.Timeout = %v, want 2s", cfg.Driver.Timeout)
	}

	optimal := cfg.Profiles.Optimal
	if optimal.Format.Resolution() != "1280x720" || optimal.Format.PixelFormat != "MJPG" {
		t.Errorf("Optimal.Format = %+v", optimal.Format)
	}
	if optimal.Controls.Brightness != 150 || !optimal.Controls.AutoExposure {
		t.Errorf("Optimal.Controls = %+v", optimal.Controls)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"bad yaml", "version: [1", "failed to parse"},
		{"wrong version", "version: 2\n", "unsupported config version"},
		{"bad frame rate", "version: 1\nprofiles:\n  defaults:\n    format:\n      frame_rate: 60\n", "unsupported frame rate 60"},
		{"bad log level", "version: 1\nlog:\n  level: verbose\n", "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, testPath, []byte(tt.data), 0600); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			_, err := Load(fs, testPath)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg := Default()
	cfg.Device = "/dev/video4"
	cfg.Log = LogConfig{Level: "debug", File: "/tmp/uvcctl.log"}
	cfg.Profiles.Defaults.Controls.PowerLineFrequency = device.PowerLine50Hz

	if err := cfg.Save(fs, testPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if exists, _ := afero.Exists(fs, testPath+".tmp"); exists {
		t.Error("temporary file should be renamed away")
	}

	data, err := afero.ReadFile(fs, testPath)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# uvcctl configuration file") {
		t.Error("saved config should start with the header comment")
	}
	if !strings.Contains(string(data), "timeout: 5s") {
		t.Errorf("timeout should be written as a duration string:\n%s", data)
	}

	loaded, err := Load(fs, testPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Device != "/dev/video4" {
		t.Errorf("Device = %v, want /dev/video4", loaded.Device)
	}
	if loaded.Log != cfg.Log {
		t.Errorf("Log = %+v, want %+v", loaded.Log, cfg.Log)
	}
	if loaded.Profiles != cfg.Profiles {
		t.Errorf("Profiles = %+v, want %+v", loaded.Profiles, cfg.Profiles)
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Device = ""
	cfg.Driver.Timeout = 0
	cfg.Profiles.Optimal.Format.PixelFormat = "H264"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, want := range []string{"device must not be empty", "driver.timeout", "H264"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error missing %q: %v", want, err)
		}
	}
}

func TestDeviceConfig(t *testing.T) {
	cfg := Default()
	cfg.Device = "/dev/video1"
	cfg.Driver.Path = "/usr/local/bin/v4l2-ctl"

	dc := cfg.DeviceConfig()
	if dc.DevicePath != "/dev/video1" || dc.DriverPath != "/usr/local/bin/v4l2-ctl" {
		t.Errorf("DeviceConfig() = %+v", dc)
	}
	if dc.Optimal != cfg.Profiles.Optimal || dc.Defaults != cfg.Profiles.Defaults {
		t.Error("DeviceConfig() should carry both profiles")
	}
}

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}
