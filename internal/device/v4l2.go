package device

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Config holds the configuration for the v4l2-ctl backend.
type Config struct {
	// DevicePath is the V4L2 device node.
	// Default: "/dev/video0"
	DevicePath string

	// DriverPath is the path to the v4l2-ctl binary.
	// Default: "v4l2-ctl" (searches PATH)
	DriverPath string

	// Timeout is the maximum time to wait for a single driver call.
	// Default: 5 seconds
	Timeout time.Duration

	// Optimal is the profile written by ApplyOptimalSettings.
	Optimal Profile

	// Defaults is the fallback profile for ResetToDefaults when the driver
	// does not report a control default.
	Defaults Profile
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DevicePath: "/dev/video0",
		DriverPath: "v4l2-ctl",
		Timeout:    5 * time.Second,
		Optimal:    DefaultOptimalProfile(),
		Defaults:   DefaultResetProfile(),
	}
}

// DefaultOptimalProfile is full HD MJPG at 30 fps with every automatic mode on
func DefaultOptimalProfile() Profile {
	return Profile{
		Format: VideoFormat{Width: 1920, Height: 1080, PixelFormat: "MJPG", FrameRate: 30},
		Controls: DeviceSettings{
			Brightness:         128,
			Contrast:           128,
			Saturation:         128,
			Sharpness:          128,
			Gain:               0,
			AutoExposure:       true,
			AutoFocus:          true,
			AutoWhiteBalance:   true,
			ExposureValue:      250,
			FocusValue:         0,
			WhiteBalanceValue:  4000,
			PowerLineFrequency: PowerLine60Hz,
		},
	}
}

// DefaultResetProfile is VGA YUYV at 30 fps with UVC factory control values
func DefaultResetProfile() Profile {
	return Profile{
		Format: VideoFormat{Width: 640, Height: 480, PixelFormat: "YUYV", FrameRate: 30},
		Controls: DeviceSettings{
			Brightness:         128,
			Contrast:           128,
			Saturation:         128,
			Sharpness:          128,
			Gain:               0,
			AutoExposure:       true,
			AutoFocus:          true,
			AutoWhiteBalance:   true,
			ExposureValue:      250,
			FocusValue:         0,
			WhiteBalanceValue:  4000,
			PowerLineFrequency: PowerLine60Hz,
		},
	}
}

// V4L2Backend implements Backend by shelling out to v4l2-ctl.
// Every public method holds a per-device lock for its full duration, so
// composite operations are never interleaved with single changes.
type V4L2Backend struct {
	config Config
	runner Runner
	usage  UsageChecker
	fs     afero.Fs
	logger *zap.Logger

	mu sync.Mutex

	// names maps each control to the driver name seen in the last listing
	names map[ControlID]string
}

var _ Backend = (*V4L2Backend)(nil)

// Option customizes a V4L2Backend
type Option func(*V4L2Backend)

// WithRunner replaces the os/exec driver runner
func WithRunner(r Runner) Option {
	return func(b *V4L2Backend) { b.runner = r }
}

// WithUsageChecker replaces the process-table usage check
func WithUsageChecker(u UsageChecker) Option {
	return func(b *V4L2Backend) { b.usage = u }
}

// WithFs replaces the filesystem used to check the device node
func WithFs(fs afero.Fs) Option {
	return func(b *V4L2Backend) { b.fs = fs }
}

// NewV4L2Backend creates a backend for the configured device
func NewV4L2Backend(config Config, logger *zap.Logger, opts ...Option) *V4L2Backend {
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &V4L2Backend{
		config: config,
		fs:     afero.NewOsFs(),
		logger: logger.With(zap.String("device", config.DevicePath)),
		names:  make(map[ControlID]string),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.runner == nil {
		b.runner = NewExecRunner(config.DriverPath, config.Timeout, b.logger)
	}
	if b.usage == nil {
		b.usage = NewProcessScanner()
	}
	return b
}

// DevicePath returns the device node this backend controls
func (b *V4L2Backend) DevicePath() string {
	return b.config.DevicePath
}

// run invokes the driver against the configured device and classifies failures.
// v4l2-ctl sometimes exits 0 after a failed ioctl, so stderr is checked too.
func (b *V4L2Backend) run(ctx context.Context, op string, args ...string) (Output, error) {
	full := append([]string{"--device=" + b.config.DevicePath}, args...)

	out, err := b.runner.Run(ctx, full...)
	if err != nil {
		return out, ClassifyExecError(err, op, out.ExitCode, out.Stderr)
	}

	if strings.Contains(out.Stderr, "failed") {
		return out, ClassifyExecError(errors.New("driver reported failure"), op, out.ExitCode, out.Stderr)
	}

	return out, nil
}

// listControls reads every control and remembers which alias the device uses
func (b *V4L2Backend) listControls(ctx context.Context) (map[string]Control, error) {
	out, err := b.run(ctx, "list-ctrls", "--list-ctrls")
	if err != nil {
		return nil, err
	}

	controls, err := ParseControls(out.Stdout)
	if err != nil {
		return nil, err
	}

	for _, id := range allControls {
		if ctrl, ok := lookupControl(controls, id); ok {
			b.names[id] = ctrl.Name
		}
	}
	return controls, nil
}

func lookupControl(controls map[string]Control, id ControlID) (Control, bool) {
	for _, name := range controlAliases[id] {
		if ctrl, ok := controls[name]; ok {
			return ctrl, true
		}
	}
	return Control{}, false
}

func (b *V4L2Backend) controlName(id ControlID) string {
	if name, ok := b.names[id]; ok {
		return name
	}
	return string(id)
}

// GetCurrentSettings reads all managed controls from the device
func (b *V4L2Backend) GetCurrentSettings(ctx context.Context) (DeviceSettings, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	controls, err := b.listControls(ctx)
	if err != nil {
		return DeviceSettings{}, fmt.Errorf("failed to read controls: %w", err)
	}
	return settingsFromControls(controls), nil
}

func settingsFromControls(controls map[string]Control) DeviceSettings {
	value := func(id ControlID) int {
		if ctrl, ok := lookupControl(controls, id); ok {
			return ctrl.Value
		}
		return 0
	}

	s := DeviceSettings{
		Brightness:         value(CtrlBrightness),
		Contrast:           value(CtrlContrast),
		Saturation:         value(CtrlSaturation),
		Sharpness:          value(CtrlSharpness),
		Gain:               value(CtrlGain),
		AutoFocus:          value(CtrlAutoFocus) != 0,
		AutoWhiteBalance:   value(CtrlAutoWhiteBalance) != 0,
		ExposureValue:      value(CtrlExposureValue),
		FocusValue:         value(CtrlFocusValue),
		WhiteBalanceValue:  value(CtrlWhiteBalanceValue),
		PowerLineFrequency: PowerLineFrequency(value(CtrlPowerLine)),
	}

	// Anything other than manual mode counts as automatic exposure
	if ctrl, ok := lookupControl(controls, CtrlAutoExposure); ok {
		s.AutoExposure = ctrl.Value != exposureManual
	}

	return s
}

// GetCurrentVideoFormat reads the capture format and frame rate
func (b *V4L2Backend) GetCurrentVideoFormat(ctx context.Context) (VideoFormat, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.readVideoFormat(ctx)
}

func (b *V4L2Backend) readVideoFormat(ctx context.Context) (VideoFormat, error) {
	out, err := b.run(ctx, "get-fmt-video", "--get-fmt-video")
	if err != nil {
		return VideoFormat{}, fmt.Errorf("failed to read video format: %w", err)
	}
	format, err := ParseVideoFormat(out.Stdout)
	if err != nil {
		return VideoFormat{}, fmt.Errorf("failed to read video format: %w", err)
	}

	out, err = b.run(ctx, "get-parm", "--get-parm")
	if err != nil {
		return VideoFormat{}, fmt.Errorf("failed to read frame rate: %w", err)
	}
	format.FrameRate, err = ParseFrameRate(out.Stdout)
	if err != nil {
		return VideoFormat{}, fmt.Errorf("failed to read frame rate: %w", err)
	}

	return format, nil
}

// GetDeviceStatus checks the device node and whether another process holds it
func (b *V4L2Backend) GetDeviceStatus(ctx context.Context) DeviceStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.status(ctx)
}

func (b *V4L2Backend) status(ctx context.Context) DeviceStatus {
	if _, err := b.fs.Stat(b.config.DevicePath); err != nil {
		return DeviceStatus{
			Available: false,
			Error:     fmt.Sprintf("device %s not found", b.config.DevicePath),
		}
	}

	inUse, err := b.usage.InUse(ctx, b.config.DevicePath)
	if err != nil {
		b.logger.Warn("usage check failed", zap.Error(err))
		return DeviceStatus{
			Available: true,
			Error:     fmt.Sprintf("could not determine whether device is in use: %v", err),
		}
	}

	return DeviceStatus{Available: true, InUse: inUse}
}

func (b *V4L2Backend) setControl(ctx context.Context, id ControlID, value int) error {
	name := b.controlName(id)
	_, err := b.run(ctx, name, fmt.Sprintf("--set-ctrl=%s=%d", name, value))
	if err != nil {
		b.logger.Warn("control update failed",
			zap.String("control", name),
			zap.Int("value", value),
			zap.Error(err),
		)
		return err
	}

	b.logger.Info("control updated",
		zap.String("control", name),
		zap.Int("value", value),
	)
	return nil
}

func (b *V4L2Backend) setLocked(ctx context.Context, id ControlID, value int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.setControl(ctx, id, value)
}

// SetBrightness sets the brightness control
func (b *V4L2Backend) SetBrightness(ctx context.Context, value int) error {
	return b.setLocked(ctx, CtrlBrightness, value)
}

// SetContrast sets the contrast control
func (b *V4L2Backend) SetContrast(ctx context.Context, value int) error {
	return b.setLocked(ctx, CtrlContrast, value)
}

// SetSaturation sets the saturation control
func (b *V4L2Backend) SetSaturation(ctx context.Context, value int) error {
	return b.setLocked(ctx, CtrlSaturation, value)
}

// SetSharpness sets the sharpness control
func (b *V4L2Backend) SetSharpness(ctx context.Context, value int) error {
	return b.setLocked(ctx, CtrlSharpness, value)
}

// SetGain sets the gain control
func (b *V4L2Backend) SetGain(ctx context.Context, value int) error {
	return b.setLocked(ctx, CtrlGain, value)
}

// SetAutoExposure switches between aperture priority (auto) and manual exposure
func (b *V4L2Backend) SetAutoExposure(ctx context.Context, enabled bool) error {
	mode := exposureManual
	if enabled {
		mode = exposureAperturePriority
	}
	return b.setLocked(ctx, CtrlAutoExposure, mode)
}

// SetAutoFocus toggles continuous autofocus
func (b *V4L2Backend) SetAutoFocus(ctx context.Context, enabled bool) error {
	return b.setLocked(ctx, CtrlAutoFocus, boolToInt(enabled))
}

// SetAutoWhiteBalance toggles automatic white balance
func (b *V4L2Backend) SetAutoWhiteBalance(ctx context.Context, enabled bool) error {
	return b.setLocked(ctx, CtrlAutoWhiteBalance, boolToInt(enabled))
}

// SetExposureValue sets the manual exposure time
func (b *V4L2Backend) SetExposureValue(ctx context.Context, value int) error {
	return b.setLocked(ctx, CtrlExposureValue, value)
}

// SetFocusValue sets the manual focus position
func (b *V4L2Backend) SetFocusValue(ctx context.Context, value int) error {
	return b.setLocked(ctx, CtrlFocusValue, value)
}

// SetWhiteBalanceValue sets the manual white balance temperature
func (b *V4L2Backend) SetWhiteBalanceValue(ctx context.Context, value int) error {
	return b.setLocked(ctx, CtrlWhiteBalanceValue, value)
}

// SetPowerLineFrequency sets the anti-flicker filter
func (b *V4L2Backend) SetPowerLineFrequency(ctx context.Context, freq PowerLineFrequency) error {
	if !freq.Valid() {
		return fmt.Errorf("invalid power line frequency %d", int(freq))
	}
	return b.setLocked(ctx, CtrlPowerLine, int(freq))
}

// SetVideoFormat changes resolution and pixel format together.
// Returns a busy DeviceError while another application is streaming.
func (b *V4L2Backend) SetVideoFormat(ctx context.Context, width, height int, pixelFormat string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.setVideoFormat(ctx, width, height, pixelFormat)
}

func (b *V4L2Backend) setVideoFormat(ctx context.Context, width, height int, pixelFormat string) error {
	arg := fmt.Sprintf("--set-fmt-video=width=%d,height=%d,pixelformat=%s", width, height, pixelFormat)
	if _, err := b.run(ctx, "video format", arg); err != nil {
		b.logger.Warn("video format update failed",
			zap.Int("width", width),
			zap.Int("height", height),
			zap.String("pixel_format", pixelFormat),
			zap.Error(err),
		)
		return err
	}

	b.logger.Info("video format updated",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.String("pixel_format", pixelFormat),
	)
	return nil
}

// SetFrameRate changes the capture frame rate.
// Returns a busy DeviceError while another application is streaming.
func (b *V4L2Backend) SetFrameRate(ctx context.Context, fps int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.setFrameRate(ctx, fps)
}

func (b *V4L2Backend) setFrameRate(ctx context.Context, fps int) error {
	if _, err := b.run(ctx, "frame rate", fmt.Sprintf("--set-parm=%d", fps)); err != nil {
		b.logger.Warn("frame rate update failed", zap.Int("fps", fps), zap.Error(err))
		return err
	}

	b.logger.Info("frame rate updated", zap.Int("fps", fps))
	return nil
}
