package tui

import (
	"context"
	"fmt"

	"github.com/muurk/uvcctl/internal/device"
)

// fakeBackend keeps camera state in memory and records every mutating call.
// Setters update the state so the pipeline's refresh sees the change.
type fakeBackend struct {
	settings device.DeviceSettings
	format   device.VideoFormat
	status   device.DeviceStatus

	calls []string
	errs  map[string]error

	optimal device.CompositeResult
	reset   device.CompositeResult
	info    string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		settings: device.DeviceSettings{
			Brightness:         128,
			Contrast:           128,
			Saturation:         128,
			Sharpness:          128,
			Gain:               0,
			AutoExposure:       false,
			AutoFocus:          true,
			AutoWhiteBalance:   false,
			ExposureValue:      250,
			FocusValue:         0,
			WhiteBalanceValue:  4000,
			PowerLineFrequency: device.PowerLine60Hz,
		},
		format:  device.VideoFormat{Width: 1280, Height: 720, PixelFormat: "MJPG", FrameRate: 30},
		status:  device.DeviceStatus{Available: true},
		errs:    make(map[string]error),
		optimal: device.CompositeResult{Success: true},
		reset:   device.CompositeResult{Success: true},
		info:    "Device: /dev/video0",
	}
}

func (f *fakeBackend) record(call string) error {
	f.calls = append(f.calls, call)
	return f.errs[call]
}

func (f *fakeBackend) GetCurrentSettings(ctx context.Context) (device.DeviceSettings, error) {
	return f.settings, f.errs["GetCurrentSettings"]
}

func (f *fakeBackend) GetCurrentVideoFormat(ctx context.Context) (device.VideoFormat, error) {
	return f.format, f.errs["GetCurrentVideoFormat"]
}

func (f *fakeBackend) GetDeviceStatus(ctx context.Context) device.DeviceStatus {
	return f.status
}

func (f *fakeBackend) setInt(name string, field *int, value int) error {
	if err := f.record(fmt.Sprintf("%s=%d", name, value)); err != nil {
		return err
	}
	*field = value
	return nil
}

func (f *fakeBackend) setBool(name string, field *bool, value bool) error {
	if err := f.record(fmt.Sprintf("%s=%v", name, value)); err != nil {
		return err
	}
	*field = value
	return nil
}

func (f *fakeBackend) SetBrightness(ctx context.Context, v int) error {
	return f.setInt("brightness", &f.settings.Brightness, v)
}

func (f *fakeBackend) SetContrast(ctx context.Context, v int) error {
	return f.setInt("contrast", &f.settings.Contrast, v)
}

func (f *fakeBackend) SetSaturation(ctx context.Context, v int) error {
	return f.setInt("saturation", &f.settings.Saturation, v)
}

func (f *fakeBackend) SetSharpness(ctx context.Context, v int) error {
	return f.setInt("sharpness", &f.settings.Sharpness, v)
}

func (f *fakeBackend) SetGain(ctx context.Context, v int) error {
	return f.setInt("gain", &f.settings.Gain, v)
}

func (f *fakeBackend) SetAutoExposure(ctx context.Context, v bool) error {
	return f.setBool("autoExposure", &f.settings.AutoExposure, v)
}

func (f *fakeBackend) SetAutoFocus(ctx context.Context, v bool) error {
	return f.setBool("autoFocus", &f.settings.AutoFocus, v)
}

func (f *fakeBackend) SetAutoWhiteBalance(ctx context.Context, v bool) error {
	return f.setBool("autoWhiteBalance", &f.settings.AutoWhiteBalance, v)
}

func (f *fakeBackend) SetExposureValue(ctx context.Context, v int) error {
	return f.setInt("exposureValue", &f.settings.ExposureValue, v)
}

func (f *fakeBackend) SetFocusValue(ctx context.Context, v int) error {
	return f.setInt("focusValue", &f.settings.FocusValue, v)
}

func (f *fakeBackend) SetWhiteBalanceValue(ctx context.Context, v int) error {
	return f.setInt("whiteBalanceValue", &f.settings.WhiteBalanceValue, v)
}

func (f *fakeBackend) SetPowerLineFrequency(ctx context.Context, freq device.PowerLineFrequency) error {
	if err := f.record(fmt.Sprintf("powerLineFrequency=%d", freq)); err != nil {
		return err
	}
	f.settings.PowerLineFrequency = freq
	return nil
}

func (f *fakeBackend) SetVideoFormat(ctx context.Context, width, height int, pixelFormat string) error {
	if err := f.record(fmt.Sprintf("videoFormat=%dx%d/%s", width, height, pixelFormat)); err != nil {
		return err
	}
	f.format.Width, f.format.Height, f.format.PixelFormat = width, height, pixelFormat
	return nil
}

func (f *fakeBackend) SetFrameRate(ctx context.Context, fps int) error {
	if err := f.record(fmt.Sprintf("frameRate=%d", fps)); err != nil {
		return err
	}
	f.format.FrameRate = fps
	return nil
}

func (f *fakeBackend) ApplyOptimalSettings(ctx context.Context) device.CompositeResult {
	f.calls = append(f.calls, "ApplyOptimalSettings")
	return f.optimal
}

func (f *fakeBackend) ResetToDefaults(ctx context.Context) device.CompositeResult {
	f.calls = append(f.calls, "ResetToDefaults")
	return f.reset
}

func (f *fakeBackend) GetDetailedInfo(ctx context.Context) string {
	return f.info
}

var _ device.Backend = (*fakeBackend)(nil)
