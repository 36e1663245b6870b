package device

import "fmt"

// PowerLineFrequency is the anti-flicker filter setting of the camera.
// The numeric values match the UVC power_line_frequency menu.
type PowerLineFrequency int

const (
	PowerLineDisabled PowerLineFrequency = 0
	PowerLine50Hz     PowerLineFrequency = 1
	PowerLine60Hz     PowerLineFrequency = 2
)

// String returns the display label for the frequency
func (f PowerLineFrequency) String() string {
	switch f {
	case PowerLineDisabled:
		return "Disabled"
	case PowerLine50Hz:
		return "50Hz"
	case PowerLine60Hz:
		return "60Hz"
	default:
		return fmt.Sprintf("PowerLineFrequency(%d)", int(f))
	}
}

// Valid reports whether f is one of the three defined menu entries
func (f PowerLineFrequency) Valid() bool {
	return f >= PowerLineDisabled && f <= PowerLine60Hz
}

// ParsePowerLineFrequency converts a display label back to its menu value
func ParsePowerLineFrequency(label string) (PowerLineFrequency, error) {
	switch label {
	case "Disabled":
		return PowerLineDisabled, nil
	case "50Hz":
		return PowerLine50Hz, nil
	case "60Hz":
		return PowerLine60Hz, nil
	default:
		return PowerLineDisabled, fmt.Errorf("unknown power line frequency %q", label)
	}
}

// DeviceSettings holds the picture and automatic controls read from the camera.
// The backend is the only source of truth; callers must re-read after every change.
type DeviceSettings struct {
	Brightness int `json:"brightness" yaml:"brightness"`
	Contrast   int `json:"contrast" yaml:"contrast"`
	Saturation int `json:"saturation" yaml:"saturation"`
	Sharpness  int `json:"sharpness" yaml:"sharpness"`
	Gain       int `json:"gain" yaml:"gain"`

	AutoExposure     bool `json:"autoExposure" yaml:"auto_exposure"`
	AutoFocus        bool `json:"autoFocus" yaml:"auto_focus"`
	AutoWhiteBalance bool `json:"autoWhiteBalance" yaml:"auto_white_balance"`

	ExposureValue     int `json:"exposureValue" yaml:"exposure_value"`
	FocusValue        int `json:"focusValue" yaml:"focus_value"`
	WhiteBalanceValue int `json:"whiteBalanceValue" yaml:"white_balance_value"`

	PowerLineFrequency PowerLineFrequency `json:"powerLineFrequency" yaml:"power_line_frequency"`
}

// VideoFormat is the canonical record of the capture format.
// Resolution and pixel format displays are both derived from this one value.
type VideoFormat struct {
	Width       int    `json:"width" yaml:"width"`
	Height      int    `json:"height" yaml:"height"`
	PixelFormat string `json:"pixelFormat" yaml:"pixel_format"`
	FrameRate   int    `json:"frameRate" yaml:"frame_rate"`
}

// Resolution returns the "{width}x{height}" form of the format
func (f VideoFormat) Resolution() string {
	return fmt.Sprintf("%dx%d", f.Width, f.Height)
}

// ParseResolution splits a "{width}x{height}" string
func ParseResolution(s string) (width, height int, err error) {
	if _, err := fmt.Sscanf(s, "%dx%d", &width, &height); err != nil {
		return 0, 0, fmt.Errorf("invalid resolution %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid resolution %q", s)
	}
	return width, height, nil
}

// DeviceStatus describes whether the camera can currently be reconfigured.
// It is derived fresh on every request and never cached.
type DeviceStatus struct {
	Available bool   `json:"available"`
	InUse     bool   `json:"inUse"`
	Error     string `json:"error,omitempty"`
}

// CompositeResult is the outcome of a multi-step operation (optimize, reset).
// Every step is attempted; Errors collects one message per failed step.
type CompositeResult struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
}

// Profile is a complete target configuration used by the composite operations
type Profile struct {
	Format   VideoFormat    `yaml:"format"`
	Controls DeviceSettings `yaml:"controls"`
}
