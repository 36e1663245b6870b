package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muurk/uvcctl/internal/device"
)

// Key identifies a catalog slot
type Key string

const (
	KeyResolution         Key = "resolution"
	KeyFormat             Key = "format"
	KeyFrameRate          Key = "framerate"
	KeyBrightness         Key = "brightness"
	KeyContrast           Key = "contrast"
	KeySaturation         Key = "saturation"
	KeySharpness          Key = "sharpness"
	KeyGain               Key = "gain"
	KeyAutoExposure       Key = "autoExposure"
	KeyExposureValue      Key = "exposureValue"
	KeyAutoWhiteBalance   Key = "autoWhiteBalance"
	KeyWhiteBalanceValue  Key = "whiteBalanceValue"
	KeyAutoFocus          Key = "autoFocus"
	KeyFocusValue         Key = "focusValue"
	KeyPowerLineFrequency Key = "powerLineFrequency"
)

// Kind is the value domain of a setting
type Kind int

const (
	KindRange Kind = iota
	KindToggle
	KindSelect
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindToggle:
		return "toggle"
	case KindSelect:
		return "select"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Fixed option sets for the select settings
var (
	ResolutionOptions   = []string{"640x480", "800x600", "1024x576", "1280x720", "1920x1080"}
	FrameRateOptions    = []string{"5fps", "10fps", "15fps", "20fps", "24fps", "30fps"}
	PixelFormatOptions  = []string{"YUYV", "MJPG"}
	PowerLineOptions    = []string{"Disabled", "50Hz", "60Hz"}
	frameRateOptionVals = []int{5, 10, 15, 20, 24, 30}
)

// Definition describes one catalog slot. Definitions never change at runtime;
// Min, Max and Step apply to KindRange, Options to KindSelect.
type Definition struct {
	Key     Key
	Label   string
	Kind    Kind
	Min     int
	Max     int
	Step    int
	Options []string
}

// Value is the current value of a setting, read according to its Kind:
// Number for ranges, Flag for toggles, Choice for selects.
type Value struct {
	Number int
	Flag   bool
	Choice string
}

// Entry pairs a definition with its current value
type Entry struct {
	Definition Definition
	Value      Value
}

// Catalog is the ordered list of settings. Order is navigation order.
type Catalog []Entry

// Find returns the entry for key
func (c Catalog) Find(key Key) (Entry, bool) {
	for _, e := range c {
		if e.Definition.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// IndexOf returns the position of key, or -1
func (c Catalog) IndexOf(key Key) int {
	for i, e := range c {
		if e.Definition.Key == key {
			return i
		}
	}
	return -1
}

var definitions = []Definition{
	{Key: KeyResolution, Label: "Resolution", Kind: KindSelect, Options: ResolutionOptions},
	{Key: KeyFormat, Label: "Format", Kind: KindSelect, Options: PixelFormatOptions},
	{Key: KeyFrameRate, Label: "Frame Rate", Kind: KindSelect, Options: FrameRateOptions},
	{Key: KeyBrightness, Label: "Brightness", Kind: KindRange, Min: 0, Max: 255, Step: 1},
	{Key: KeyContrast, Label: "Contrast", Kind: KindRange, Min: 0, Max: 255, Step: 1},
	{Key: KeySaturation, Label: "Saturation", Kind: KindRange, Min: 0, Max: 255, Step: 1},
	{Key: KeySharpness, Label: "Sharpness", Kind: KindRange, Min: 0, Max: 255, Step: 1},
	{Key: KeyGain, Label: "Gain", Kind: KindRange, Min: 0, Max: 255, Step: 1},
	{Key: KeyAutoExposure, Label: "Auto Exposure", Kind: KindToggle},
	{Key: KeyExposureValue, Label: "Exposure", Kind: KindRange, Min: 3, Max: 2047, Step: 1},
	{Key: KeyAutoWhiteBalance, Label: "Auto White Balance", Kind: KindToggle},
	{Key: KeyWhiteBalanceValue, Label: "White Balance", Kind: KindRange, Min: 2000, Max: 6500, Step: 10},
	{Key: KeyAutoFocus, Label: "Auto Focus", Kind: KindToggle},
	{Key: KeyFocusValue, Label: "Focus", Kind: KindRange, Min: 0, Max: 250, Step: 5},
	{Key: KeyPowerLineFrequency, Label: "Power Line Frequency", Kind: KindSelect, Options: PowerLineOptions},
}

// Definitions returns the fixed catalog definitions in navigation order
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// DefinitionFor returns the definition for key
func DefinitionFor(key Key) (Definition, bool) {
	for _, d := range definitions {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// BuildCatalog derives the full ordered catalog from the two backend records.
// Range values are clamped into their declared bounds.
func BuildCatalog(s device.DeviceSettings, f device.VideoFormat) Catalog {
	catalog := make(Catalog, 0, len(definitions))
	for _, def := range definitions {
		catalog = append(catalog, Entry{
			Definition: def,
			Value:      valueOf(def, s, f),
		})
	}
	return catalog
}

func valueOf(def Definition, s device.DeviceSettings, f device.VideoFormat) Value {
	switch def.Key {
	case KeyResolution:
		return Value{Choice: f.Resolution()}
	case KeyFormat:
		return Value{Choice: f.PixelFormat}
	case KeyFrameRate:
		return Value{Choice: FormatFrameRate(f.FrameRate)}
	case KeyBrightness:
		return Value{Number: clamp(s.Brightness, def.Min, def.Max)}
	case KeyContrast:
		return Value{Number: clamp(s.Contrast, def.Min, def.Max)}
	case KeySaturation:
		return Value{Number: clamp(s.Saturation, def.Min, def.Max)}
	case KeySharpness:
		return Value{Number: clamp(s.Sharpness, def.Min, def.Max)}
	case KeyGain:
		return Value{Number: clamp(s.Gain, def.Min, def.Max)}
	case KeyAutoExposure:
		return Value{Flag: s.AutoExposure}
	case KeyExposureValue:
		return Value{Number: clamp(s.ExposureValue, def.Min, def.Max)}
	case KeyAutoWhiteBalance:
		return Value{Flag: s.AutoWhiteBalance}
	case KeyWhiteBalanceValue:
		return Value{Number: clamp(s.WhiteBalanceValue, def.Min, def.Max)}
	case KeyAutoFocus:
		return Value{Flag: s.AutoFocus}
	case KeyFocusValue:
		return Value{Number: clamp(s.FocusValue, def.Min, def.Max)}
	case KeyPowerLineFrequency:
		return Value{Choice: s.PowerLineFrequency.String()}
	default:
		return Value{}
	}
}

// FormatFrameRate renders fps as "{fps}fps"
func FormatFrameRate(fps int) string {
	return strconv.Itoa(fps) + "fps"
}

// ParseFrameRate converts a "{fps}fps" option back to its number
func ParseFrameRate(choice string) (int, error) {
	fps, err := strconv.Atoi(strings.TrimSuffix(choice, "fps"))
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q", choice)
	}
	return fps, nil
}

// Display returns the value as shown to the user
func (e Entry) Display() string {
	switch e.Definition.Kind {
	case KindToggle:
		if e.Value.Flag {
			return "On"
		}
		return "Off"
	case KindRange:
		return strconv.Itoa(e.Value.Number)
	default:
		return e.Value.Choice
	}
}

// ParseValue converts user text into a Value for def. Select input must be one
// of the options; range input is clamped.
func ParseValue(def Definition, text string) (Value, error) {
	switch def.Kind {
	case KindToggle:
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "on", "true", "1", "yes":
			return Value{Flag: true}, nil
		case "off", "false", "0", "no":
			return Value{Flag: false}, nil
		}
		return Value{}, fmt.Errorf("%s expects on or off, got %q", def.Label, text)

	case KindRange:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return Value{}, fmt.Errorf("%s expects a number, got %q", def.Label, text)
		}
		return Value{Number: clamp(n, def.Min, def.Max)}, nil

	case KindSelect:
		choice := strings.TrimSpace(text)
		if def.Key == KeyFrameRate && !strings.HasSuffix(choice, "fps") {
			choice += "fps"
		}
		for _, opt := range def.Options {
			if strings.EqualFold(opt, choice) {
				return Value{Choice: opt}, nil
			}
		}
		return Value{}, fmt.Errorf("%s must be one of %s, got %q",
			def.Label, strings.Join(def.Options, ", "), text)
	}

	return Value{}, fmt.Errorf("unsupported setting kind %v", def.Kind)
}

// ValidFrameRate reports whether fps is one of the selectable frame rates
func ValidFrameRate(fps int) bool {
	for _, v := range frameRateOptionVals {
		if v == fps {
			return true
		}
	}
	return false
}

// ValidResolution reports whether "{w}x{h}" is one of the selectable resolutions
func ValidResolution(res string) bool {
	return contains(ResolutionOptions, res)
}

// ValidPixelFormat reports whether pf is one of the selectable pixel formats
func ValidPixelFormat(pf string) bool {
	return contains(PixelFormatOptions, pf)
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
