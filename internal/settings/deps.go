package settings

import "github.com/muurk/uvcctl/internal/device"

// dependencyRules maps each manual value to the automatic mode that governs it.
// While the governing mode is on, the manual value is hidden and locked.
var dependencyRules = map[Key]Key{
	KeyExposureValue:     KeyAutoExposure,
	KeyFocusValue:        KeyAutoFocus,
	KeyWhiteBalanceValue: KeyAutoWhiteBalance,
}

// Controller returns the automatic mode governing key, if any
func Controller(key Key) (Key, bool) {
	ctrl, ok := dependencyRules[key]
	return ctrl, ok
}

func autoEnabled(key Key, s device.DeviceSettings) bool {
	switch key {
	case KeyAutoExposure:
		return s.AutoExposure
	case KeyAutoFocus:
		return s.AutoFocus
	case KeyAutoWhiteBalance:
		return s.AutoWhiteBalance
	default:
		return false
	}
}

// IsVisible reports whether key takes part in navigation
func IsVisible(key Key, s device.DeviceSettings) bool {
	ctrl, ok := dependencyRules[key]
	if !ok {
		return true
	}
	return !autoEnabled(ctrl, s)
}

// IsLocked reports whether key is excluded from direct mutation by its
// automatic mode
func IsLocked(key Key, s device.DeviceSettings) bool {
	ctrl, ok := dependencyRules[key]
	if !ok {
		return false
	}
	return autoEnabled(ctrl, s)
}

// Visible filters c down to the entries that take part in navigation,
// preserving order
func Visible(c Catalog, s device.DeviceSettings) Catalog {
	out := make(Catalog, 0, len(c))
	for _, e := range c {
		if IsVisible(e.Definition.Key, s) {
			out = append(out, e)
		}
	}
	return out
}
