package device

import (
	"testing"
)

// Captured from a Logitech C920 on kernel 6.x
const sampleListCtrls = `
User Controls

                     brightness 0x00980900 (int)    : min=0 max=255 step=1 default=128 value=140
                       contrast 0x00980901 (int)    : min=0 max=255 step=1 default=128 value=128
                     saturation 0x00980902 (int)    : min=0 max=255 step=1 default=128 value=100
        white_balance_automatic 0x0098090c (bool)   : default=1 value=0
                           gain 0x00980913 (int)    : min=0 max=255 step=1 default=0 value=12
           power_line_frequency 0x00980918 (menu)   : min=0 max=2 default=2 value=1 (50 Hz)
      white_balance_temperature 0x0098091a (int)    : min=2000 max=6500 step=1 default=4000 value=4500
                      sharpness 0x0098091b (int)    : min=0 max=255 step=1 default=128 value=128
         backlight_compensation 0x0098091c (int)    : min=0 max=1 step=1 default=0 value=0

Camera Controls

                  auto_exposure 0x009a0901 (menu)   : min=0 max=3 default=3 value=1 (Manual Mode)
         exposure_time_absolute 0x009a0902 (int)    : min=3 max=2047 step=1 default=250 value=300
     exposure_dynamic_framerate 0x009a0903 (bool)   : default=0 value=1
                 focus_absolute 0x009a090a (int)    : min=0 max=250 step=5 default=0 value=40 flags=inactive
     focus_automatic_continuous 0x009a090c (bool)   : default=1 value=1
`

// Older kernels used different names for the automatic controls
const legacyListCtrls = `
                     brightness 0x00980900 (int)    : min=0 max=255 step=1 default=128 value=128
 white_balance_temperature_auto 0x0098090c (bool)   : default=1 value=1
                  exposure_auto 0x009a0901 (menu)   : min=0 max=3 default=3 value=3
              exposure_absolute 0x009a0902 (int)    : min=3 max=2047 step=1 default=250 value=250 flags=inactive
                     focus_auto 0x009a090c (bool)   : default=1 value=0
`

const sampleFmtVideo = `Format Video Capture:
	Width/Height      : 1280/720
	Pixel Format      : 'MJPG' (Motion-JPEG)
	Field             : None
	Bytes per Line    : 0
	Size Image        : 1843200
	Colorspace        : sRGB
`

const sampleParm = `Streaming Parameters Video Capture:
	Capabilities     : timeperframe
	Frames per second: 30.000 (30/1)
	Read buffers     : 0
`

func TestParseControls(t *testing.T) {
	controls, err := ParseControls(sampleListCtrls)
	if err != nil {
		t.Fatalf("ParseControls() error = %v", err)
	}

	if len(controls) != 14 {
		t.Errorf("ParseControls() found %d controls, want 14", len(controls))
	}

	brightness, ok := controls["brightness"]
	if !ok {
		t.Fatal("brightness control missing")
	}
	if brightness.Value != 140 || brightness.Min != 0 || brightness.Max != 255 || brightness.Default != 128 {
		t.Errorf("brightness = %+v, want value=140 min=0 max=255 default=128", brightness)
	}
	if brightness.Type != "int" {
		t.Errorf("brightness.Type = %q, want int", brightness.Type)
	}

	focus := controls["focus_absolute"]
	if focus.Step != 5 {
		t.Errorf("focus_absolute.Step = %d, want 5", focus.Step)
	}
	if !focus.Inactive() {
		t.Error("focus_absolute should be inactive")
	}

	wb := controls["white_balance_automatic"]
	if wb.Type != "bool" || wb.Value != 0 || !wb.HasDefault || wb.Default != 1 {
		t.Errorf("white_balance_automatic = %+v", wb)
	}

	plf := controls["power_line_frequency"]
	if plf.Value != 1 {
		t.Errorf("power_line_frequency.Value = %d, want 1 (menu label ignored)", plf.Value)
	}
}

// PTZ cameras list write-only buttons next to the regular controls
const ptzListCtrls = `
Camera Controls

                  auto_exposure 0x009a0901 (menu)   : min=0 max=3 default=3 value=3 (Aperture Priority Mode)
         exposure_time_absolute 0x009a0902 (int)    : min=3 max=2047 step=1 default=250 value=250 flags=inactive, volatile
                 pan_tilt_reset 0x009a0904 (button) : flags=write-only, execute-on-write
                   zoom_absolute 0x009a090d (int)    : min=100 max=500 step=1 default=100 value=100
`

func TestParseControls_SkipsControlsWithoutValue(t *testing.T) {
	controls, err := ParseControls(sampleListCtrls + ptzListCtrls)
	if err != nil {
		t.Fatalf("ParseControls() error = %v", err)
	}

	if _, ok := controls["pan_tilt_reset"]; ok {
		t.Error("button control should be skipped")
	}
	if _, ok := controls["brightness"]; !ok {
		t.Error("brightness should still be parsed")
	}
	if zoom := controls["zoom_absolute"]; zoom.Value != 100 || zoom.Max != 500 {
		t.Errorf("zoom_absolute = %+v", zoom)
	}

	s := settingsFromControls(controls)
	if s.Brightness != 140 {
		t.Errorf("Brightness = %d, want 140", s.Brightness)
	}
	if !s.AutoExposure {
		t.Error("AutoExposure should be true for auto_exposure=3")
	}
}

func TestParseControls_Flags(t *testing.T) {
	controls, err := ParseControls(ptzListCtrls)
	if err != nil {
		t.Fatalf("ParseControls() error = %v", err)
	}

	exposure := controls["exposure_time_absolute"]
	want := []string{"inactive", "volatile"}
	if len(exposure.Flags) != len(want) {
		t.Fatalf("Flags = %q, want %q", exposure.Flags, want)
	}
	for i := range want {
		if exposure.Flags[i] != want[i] {
			t.Errorf("Flags[%d] = %q, want %q", i, exposure.Flags[i], want[i])
		}
	}
	if !exposure.Inactive() {
		t.Error("exposure_time_absolute should be inactive")
	}
	if exposure.Value != 250 || exposure.Default != 250 {
		t.Errorf("exposure_time_absolute = %+v", exposure)
	}
}

func TestParseControls_OnlyButtons(t *testing.T) {
	_, err := ParseControls("pan_tilt_reset 0x009a0904 (button) : flags=write-only, execute-on-write\n")
	if !IsParseError(err) {
		t.Errorf("output with no readable controls should be a parse error, got %v", err)
	}
}

func TestParseControls_Empty(t *testing.T) {
	_, err := ParseControls("User Controls\n\n")
	if err == nil {
		t.Fatal("ParseControls() should fail on output without controls")
	}
	if !IsParseError(err) {
		t.Errorf("error should be a parse error, got %T", err)
	}
}

func TestSettingsFromControls(t *testing.T) {
	controls, err := ParseControls(sampleListCtrls)
	if err != nil {
		t.Fatalf("ParseControls() error = %v", err)
	}

	s := settingsFromControls(controls)

	want := DeviceSettings{
		Brightness:         140,
		Contrast:           128,
		Saturation:         100,
		Sharpness:          128,
		Gain:               12,
		AutoExposure:       false,
		AutoFocus:          true,
		AutoWhiteBalance:   false,
		ExposureValue:      300,
		FocusValue:         40,
		WhiteBalanceValue:  4500,
		PowerLineFrequency: PowerLine50Hz,
	}
	if s != want {
		t.Errorf("settingsFromControls() = %+v, want %+v", s, want)
	}
}

func TestSettingsFromControls_LegacyNames(t *testing.T) {
	controls, err := ParseControls(legacyListCtrls)
	if err != nil {
		t.Fatalf("ParseControls() error = %v", err)
	}

	s := settingsFromControls(controls)

	if !s.AutoExposure {
		t.Error("AutoExposure should be true for exposure_auto=3")
	}
	if !s.AutoWhiteBalance {
		t.Error("AutoWhiteBalance should be true for white_balance_temperature_auto=1")
	}
	if s.AutoFocus {
		t.Error("AutoFocus should be false for focus_auto=0")
	}
	if s.ExposureValue != 250 {
		t.Errorf("ExposureValue = %d, want 250", s.ExposureValue)
	}
}

func TestParseVideoFormat(t *testing.T) {
	format, err := ParseVideoFormat(sampleFmtVideo)
	if err != nil {
		t.Fatalf("ParseVideoFormat() error = %v", err)
	}

	if format.Width != 1280 || format.Height != 720 {
		t.Errorf("size = %dx%d, want 1280x720", format.Width, format.Height)
	}
	if format.PixelFormat != "MJPG" {
		t.Errorf("PixelFormat = %q, want MJPG", format.PixelFormat)
	}
}

func TestParseVideoFormat_Missing(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"empty", ""},
		{"no pixel format", "Format Video Capture:\n\tWidth/Height      : 640/480\n"},
		{"no size", "Format Video Capture:\n\tPixel Format      : 'YUYV' (YUYV 4:2:2)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseVideoFormat(tt.output); !IsParseError(err) {
				t.Errorf("ParseVideoFormat() error = %v, want parse error", err)
			}
		})
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   int
	}{
		{"whole", sampleParm, 30},
		{"fractional rounds", "Frames per second: 29.970 (30000/1001)\n", 30},
		{"low", "Frames per second: 5.000 (5/1)\n", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrameRate(tt.output)
			if err != nil {
				t.Fatalf("ParseFrameRate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFrameRate() = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := ParseFrameRate("Capabilities : timeperframe"); !IsParseError(err) {
		t.Errorf("ParseFrameRate() without fps line error = %v, want parse error", err)
	}
}

func TestParseDriverInfo(t *testing.T) {
	output := `Driver Info:
	Driver name      : uvcvideo
	Card type        : HD Pro Webcam C920
	Bus info         : usb-0000:00:14.0-2
	Driver version   : 6.8.12
Media Driver Info:
	Driver name      : uvcvideo
`
	info := ParseDriverInfo(output)

	if info["Driver name"] != "uvcvideo" {
		t.Errorf("Driver name = %q, want uvcvideo", info["Driver name"])
	}
	if info["Card type"] != "HD Pro Webcam C920" {
		t.Errorf("Card type = %q", info["Card type"])
	}
	if _, ok := info["Driver Info"]; ok {
		t.Error("section headers should not be parsed as fields")
	}
}

func TestParseResolution(t *testing.T) {
	w, h, err := ParseResolution("1920x1080")
	if err != nil || w != 1920 || h != 1080 {
		t.Errorf("ParseResolution(1920x1080) = %d, %d, %v", w, h, err)
	}

	for _, bad := range []string{"", "1920", "x1080", "0x0"} {
		if _, _, err := ParseResolution(bad); err == nil {
			t.Errorf("ParseResolution(%q) should fail", bad)
		}
	}
}

func TestPowerLineFrequency(t *testing.T) {
	for _, f := range []PowerLineFrequency{PowerLineDisabled, PowerLine50Hz, PowerLine60Hz} {
		parsed, err := ParsePowerLineFrequency(f.String())
		if err != nil || parsed != f {
			t.Errorf("ParsePowerLineFrequency(%q) = %v, %v; want %v", f.String(), parsed, err, f)
		}
	}

	if PowerLineFrequency(3).Valid() {
		t.Error("PowerLineFrequency(3) should be invalid")
	}
	if _, err := ParsePowerLineFrequency("100Hz"); err == nil {
		t.Error("ParsePowerLineFrequency(100Hz) should fail")
	}
}
