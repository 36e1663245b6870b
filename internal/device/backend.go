package device

import "context"

// Backend is the driver interface through which all camera state is read and
// mutated. Implementations must serialize calls per device.
//
// Scalar setters report failures through their error return, but callers are
// expected to re-read the device afterwards rather than trust it: many controls
// silently no-op while the device is busy.
//
// SetVideoFormat and SetFrameRate return a *DeviceError with ErrTypeBusy when
// another application holds the stream; any other error is opaque.
type Backend interface {
	GetCurrentSettings(ctx context.Context) (DeviceSettings, error)
	GetCurrentVideoFormat(ctx context.Context) (VideoFormat, error)
	GetDeviceStatus(ctx context.Context) DeviceStatus

	SetBrightness(ctx context.Context, value int) error
	SetContrast(ctx context.Context, value int) error
	SetSaturation(ctx context.Context, value int) error
	SetSharpness(ctx context.Context, value int) error
	SetGain(ctx context.Context, value int) error

	SetAutoExposure(ctx context.Context, enabled bool) error
	SetAutoFocus(ctx context.Context, enabled bool) error
	SetAutoWhiteBalance(ctx context.Context, enabled bool) error

	SetExposureValue(ctx context.Context, value int) error
	SetFocusValue(ctx context.Context, value int) error
	SetWhiteBalanceValue(ctx context.Context, value int) error

	SetPowerLineFrequency(ctx context.Context, freq PowerLineFrequency) error

	SetVideoFormat(ctx context.Context, width, height int, pixelFormat string) error
	SetFrameRate(ctx context.Context, fps int) error

	ApplyOptimalSettings(ctx context.Context) CompositeResult
	ResetToDefaults(ctx context.Context) CompositeResult

	GetDetailedInfo(ctx context.Context) string
}

// ControlID identifies one of the fixed driver controls this tool manages
type ControlID string

const (
	CtrlBrightness        ControlID = "brightness"
	CtrlContrast          ControlID = "contrast"
	CtrlSaturation        ControlID = "saturation"
	CtrlSharpness         ControlID = "sharpness"
	CtrlGain              ControlID = "gain"
	CtrlAutoExposure      ControlID = "auto_exposure"
	CtrlExposureValue     ControlID = "exposure_time_absolute"
	CtrlAutoFocus         ControlID = "focus_automatic_continuous"
	CtrlFocusValue        ControlID = "focus_absolute"
	CtrlAutoWhiteBalance  ControlID = "white_balance_automatic"
	CtrlWhiteBalanceValue ControlID = "white_balance_temperature"
	CtrlPowerLine         ControlID = "power_line_frequency"
)

// controlAliases lists the driver names each control has used across kernel
// versions, current name first.
var controlAliases = map[ControlID][]string{
	CtrlBrightness:        {"brightness"},
	CtrlContrast:          {"contrast"},
	CtrlSaturation:        {"saturation"},
	CtrlSharpness:         {"sharpness"},
	CtrlGain:              {"gain"},
	CtrlAutoExposure:      {"auto_exposure", "exposure_auto"},
	CtrlExposureValue:     {"exposure_time_absolute", "exposure_absolute"},
	CtrlAutoFocus:         {"focus_automatic_continuous", "focus_auto"},
	CtrlFocusValue:        {"focus_absolute"},
	CtrlAutoWhiteBalance:  {"white_balance_automatic", "white_balance_temperature_auto"},
	CtrlWhiteBalanceValue: {"white_balance_temperature"},
	CtrlPowerLine:         {"power_line_frequency"},
}

// allControls is the fixed order used when listing and applying controls
var allControls = []ControlID{
	CtrlBrightness,
	CtrlContrast,
	CtrlSaturation,
	CtrlSharpness,
	CtrlGain,
	CtrlAutoExposure,
	CtrlExposureValue,
	CtrlAutoFocus,
	CtrlFocusValue,
	CtrlAutoWhiteBalance,
	CtrlWhiteBalanceValue,
	CtrlPowerLine,
}

// Label returns a human-readable name for the control
func (id ControlID) Label() string {
	switch id {
	case CtrlBrightness:
		return "brightness"
	case CtrlContrast:
		return "contrast"
	case CtrlSaturation:
		return "saturation"
	case CtrlSharpness:
		return "sharpness"
	case CtrlGain:
		return "gain"
	case CtrlAutoExposure:
		return "auto exposure"
	case CtrlExposureValue:
		return "exposure"
	case CtrlAutoFocus:
		return "auto focus"
	case CtrlFocusValue:
		return "focus"
	case CtrlAutoWhiteBalance:
		return "auto white balance"
	case CtrlWhiteBalanceValue:
		return "white balance"
	case CtrlPowerLine:
		return "power line frequency"
	default:
		return string(id)
	}
}

// UVC auto_exposure menu entries
const (
	exposureManual           = 1
	exposureAperturePriority = 3
)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
