package settings

import (
	"testing"

	"github.com/muurk/uvcctl/internal/device"
)

func TestIsVisible(t *testing.T) {
	tests := []struct {
		name   string
		key    Key
		mutate func(s *device.DeviceSettings)
		want   bool
	}{
		{"exposure hidden by auto", KeyExposureValue, func(s *device.DeviceSettings) { s.AutoExposure = true }, false},
		{"exposure shown when manual", KeyExposureValue, func(s *device.DeviceSettings) { s.AutoExposure = false }, true},
		{"focus hidden by auto", KeyFocusValue, func(s *device.DeviceSettings) { s.AutoFocus = true }, false},
		{"focus shown when manual", KeyFocusValue, func(s *device.DeviceSettings) { s.AutoFocus = false }, true},
		{"white balance hidden by auto", KeyWhiteBalanceValue, func(s *device.DeviceSettings) { s.AutoWhiteBalance = true }, false},
		{"white balance shown when manual", KeyWhiteBalanceValue, func(s *device.DeviceSettings) { s.AutoWhiteBalance = false }, true},
		{"auto flag itself always shown", KeyAutoExposure, func(s *device.DeviceSettings) { s.AutoExposure = true }, true},
		{"unrelated key always shown", KeyBrightness, func(s *device.DeviceSettings) { s.AutoExposure = true }, true},
		{"exclusive key always shown", KeyResolution, func(s *device.DeviceSettings) {}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampleSettings()
			tt.mutate(&s)
			if got := IsVisible(tt.key, s); got != tt.want {
				t.Errorf("IsVisible(%s) = %v, want %v", tt.key, got, tt.want)
			}
			if got := IsLocked(tt.key, s); got != !tt.want {
				t.Errorf("IsLocked(%s) = %v, want %v", tt.key, got, !tt.want)
			}
		})
	}
}

func TestVisible_Counts(t *testing.T) {
	s := sampleSettings()
	s.AutoExposure = false
	s.AutoFocus = true
	s.AutoWhiteBalance = false

	visible := Visible(BuildCatalog(s, sampleFormat()), s)
	if len(visible) != 14 {
		t.Fatalf("visible = %d, want 14", len(visible))
	}
	if visible.IndexOf(KeyFocusValue) != -1 {
		t.Error("focusValue should be hidden while auto focus is on")
	}
	if visible.IndexOf(KeyExposureValue) == -1 {
		t.Error("exposureValue should be visible while auto exposure is off")
	}

	s.AutoExposure, s.AutoFocus, s.AutoWhiteBalance = true, true, true
	if got := len(Visible(BuildCatalog(s, sampleFormat()), s)); got != 12 {
		t.Errorf("visible with all auto modes on = %d, want 12", got)
	}

	s.AutoExposure, s.AutoFocus, s.AutoWhiteBalance = false, false, false
	if got := len(Visible(BuildCatalog(s, sampleFormat()), s)); got != 15 {
		t.Errorf("visible with all auto modes off = %d, want 15", got)
	}
}

func TestVisible_PreservesOrder(t *testing.T) {
	s := sampleSettings()
	visible := Visible(BuildCatalog(s, sampleFormat()), s)

	prev := -1
	full := BuildCatalog(s, sampleFormat())
	for _, e := range visible {
		idx := full.IndexOf(e.Definition.Key)
		if idx <= prev {
			t.Errorf("%s out of order", e.Definition.Key)
		}
		prev = idx
	}
}

func TestController(t *testing.T) {
	if ctrl, ok := Controller(KeyFocusValue); !ok || ctrl != KeyAutoFocus {
		t.Errorf("Controller(focusValue) = %s, %v", ctrl, ok)
	}
	if _, ok := Controller(KeyGain); ok {
		t.Error("gain should have no controlling mode")
	}
}

func TestMayMutate(t *testing.T) {
	for _, def := range Definitions() {
		exclusive := def.Key == KeyResolution || def.Key == KeyFormat || def.Key == KeyFrameRate

		if IsExclusive(def.Key) != exclusive {
			t.Errorf("IsExclusive(%s) = %v, want %v", def.Key, IsExclusive(def.Key), exclusive)
		}
		if !MayMutate(def.Key, false) {
			t.Errorf("MayMutate(%s, idle) = false, want true", def.Key)
		}
		if got := MayMutate(def.Key, true); got == exclusive {
			t.Errorf("MayMutate(%s, busy) = %v, want %v", def.Key, got, !exclusive)
		}
	}
}

func TestMayMutate_PowerLineNeverExclusive(t *testing.T) {
	if !MayMutate(KeyPowerLineFrequency, true) {
		t.Error("power line frequency must stay adjustable while the camera is busy")
	}
}
