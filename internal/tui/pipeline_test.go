package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/uvcctl/internal/device"
	"github.com/muurk/uvcctl/internal/settings"
)

func newTestPipeline(t *testing.T, backend *fakeBackend) *Pipeline {
	t.Helper()
	p := NewPipeline(backend, nil)
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	return p
}

func TestPipeline_Refresh(t *testing.T) {
	backend := newFakeBackend()
	backend.status = device.DeviceStatus{Available: true, InUse: true}
	p := newTestPipeline(t, backend)

	state := p.State()
	if state.Settings != backend.settings || state.Format != backend.format || state.Status != backend.status {
		t.Errorf("State() = %+v, want backend state", state)
	}
}

func TestPipeline_RefreshKeepsStateOnReadFailure(t *testing.T) {
	backend := newFakeBackend()
	p := newTestPipeline(t, backend)

	backend.settings.Brightness = 10
	backend.errs["GetCurrentVideoFormat"] = device.NewParseError("get-fmt-video", "no size")

	if err := p.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() should fail")
	}
	if got := p.State().Settings.Brightness; got != 128 {
		t.Errorf("Brightness = %d, want previous value 128", got)
	}
	if p.State().Status.Error == "" {
		t.Error("status should carry the refresh failure")
	}
}

func TestPipeline_ApplyScalars(t *testing.T) {
	tests := []struct {
		key   settings.Key
		value settings.Value
		call  string
	}{
		{settings.KeyBrightness, settings.Value{Number: 100}, "brightness=100"},
		{settings.KeyContrast, settings.Value{Number: 90}, "contrast=90"},
		{settings.KeySaturation, settings.Value{Number: 80}, "saturation=80"},
		{settings.KeySharpness, settings.Value{Number: 70}, "sharpness=70"},
		{settings.KeyGain, settings.Value{Number: 60}, "gain=60"},
		{settings.KeyAutoExposure, settings.Value{Flag: true}, "autoExposure=true"},
		{settings.KeyAutoFocus, settings.Value{Flag: false}, "autoFocus=false"},
		{settings.KeyAutoWhiteBalance, settings.Value{Flag: true}, "autoWhiteBalance=true"},
		{settings.KeyExposureValue, settings.Value{Number: 400}, "exposureValue=400"},
		{settings.KeyFocusValue, settings.Value{Number: 25}, "focusValue=25"},
		{settings.KeyWhiteBalanceValue, settings.Value{Number: 5000}, "whiteBalanceValue=5000"},
		{settings.KeyPowerLineFrequency, settings.Value{Choice: "50Hz"}, "powerLineFrequency=1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			backend := newFakeBackend()
			p := newTestPipeline(t, backend)

			outcome := p.Apply(context.Background(), tt.key, tt.value)

			if outcome.Message != "" || outcome.Err != nil {
				t.Errorf("Apply() = %+v, want silent success", outcome)
			}
			if len(backend.calls) != 1 || backend.calls[0] != tt.call {
				t.Errorf("calls = %v, want [%s]", backend.calls, tt.call)
			}
		})
	}
}

func TestPipeline_ApplyUsesCanonicalFormat(t *testing.T) {
	backend := newFakeBackend()
	p := newTestPipeline(t, backend)
	ctx := context.Background()

	p.Apply(ctx, settings.KeyResolution, settings.Value{Choice: "1920x1080"})
	p.Apply(ctx, settings.KeyFormat, settings.Value{Choice: "YUYV"})
	p.Apply(ctx, settings.KeyFrameRate, settings.Value{Choice: "15fps"})

	want := []string{
		"videoFormat=1920x1080/MJPG",
		"videoFormat=1920x1080/YUYV",
		"frameRate=15",
	}
	if strings.Join(backend.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", backend.calls, want)
	}

	got := p.State().Format
	if got.Resolution() != "1920x1080" || got.PixelFormat != "YUYV" || got.FrameRate != 15 {
		t.Errorf("Format = %+v after refresh", got)
	}
}

func TestPipeline_ApplyBusyNamesSetting(t *testing.T) {
	tests := []struct {
		key   settings.Key
		value settings.Value
		call  string
		want  string
	}{
		{
			settings.KeyResolution, settings.Value{Choice: "1920x1080"}, "videoFormat=1920x1080/MJPG",
			"Cannot change resolution: camera is in use by another application",
		},
		{
			settings.KeyFormat, settings.Value{Choice: "YUYV"}, "videoFormat=1280x720/YUYV",
			device.MsgFormatBusy,
		},
		{
			settings.KeyFrameRate, settings.Value{Choice: "24fps"}, "frameRate=24",
			device.MsgFrameRateBusy,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			backend := newFakeBackend()
			backend.errs[tt.call] = device.NewBusyError("video format")
			p := newTestPipeline(t, backend)

			outcome := p.Apply(context.Background(), tt.key, tt.value)

			if outcome.Message != tt.want {
				t.Errorf("Message = %q, want %q", outcome.Message, tt.want)
			}
			if outcome.Severity != SeverityError {
				t.Errorf("Severity = %v, want error", outcome.Severity)
			}
		})
	}
}

func TestPipeline_ApplyUnknownFailureIsSilent(t *testing.T) {
	backend := newFakeBackend()
	backend.errs["frameRate=24"] = errors.New("driver crashed")
	backend.errs["brightness=10"] = errors.New("control rejected")
	p := newTestPipeline(t, backend)
	ctx := context.Background()

	for _, tc := range []struct {
		key   settings.Key
		value settings.Value
	}{
		{settings.KeyFrameRate, settings.Value{Choice: "24fps"}},
		{settings.KeyBrightness, settings.Value{Number: 10}},
	} {
		outcome := p.Apply(ctx, tc.key, tc.value)
		if outcome.Message != "" {
			t.Errorf("%s: Message = %q, want silent", tc.key, outcome.Message)
		}
		if outcome.Err == nil {
			t.Errorf("%s: Err should carry the backend error", tc.key)
		}
	}

	// State reflects what the backend holds, not what was requested
	if got := p.State().Settings.Brightness; got != 128 {
		t.Errorf("Brightness = %d, want 128 from resync", got)
	}
	if got := p.State().Format.FrameRate; got != 30 {
		t.Errorf("FrameRate = %d, want 30 from resync", got)
	}
}

func TestPipeline_ApplyRefreshesStatus(t *testing.T) {
	backend := newFakeBackend()
	p := newTestPipeline(t, backend)

	backend.status = device.DeviceStatus{Available: true, InUse: true}
	p.Apply(context.Background(), settings.KeyGain, settings.Value{Number: 5})

	if !p.State().Status.InUse {
		t.Error("status should be re-read after apply")
	}
}

func TestPipeline_Permit(t *testing.T) {
	backend := newFakeBackend()
	backend.status.InUse = true
	backend.settings.AutoFocus = true
	p := newTestPipeline(t, backend)

	err := p.Permit(settings.KeyResolution)
	var pe *PolicyError
	if !errors.As(err, &pe) || !pe.Busy {
		t.Fatalf("Permit(resolution) = %v, want busy policy error", err)
	}
	if pe.Error() != settings.MsgBusyRejected {
		t.Errorf("message = %q, want %q", pe.Error(), settings.MsgBusyRejected)
	}

	err = p.Permit(settings.KeyFocusValue)
	if !IsPolicyError(err) {
		t.Fatalf("Permit(focusValue) = %v, want policy error", err)
	}
	if !strings.Contains(err.Error(), "Auto Focus") {
		t.Errorf("message = %q, should name the controlling mode", err.Error())
	}

	if err := p.Permit(settings.KeyPowerLineFrequency); err != nil {
		t.Errorf("Permit(powerLineFrequency) = %v, want nil while busy", err)
	}
}

func TestPipeline_Composite(t *testing.T) {
	backend := newFakeBackend()
	backend.optimal = device.CompositeResult{Success: false, Errors: []string{device.MsgFormatBusy}}
	p := newTestPipeline(t, backend)

	backend.settings.Brightness = 140
	result := p.Optimize(context.Background())

	if result.Success || len(result.Errors) != 1 {
		t.Errorf("Optimize() = %+v", result)
	}
	if p.State().Settings.Brightness != 140 {
		t.Error("state should be refreshed after optimize")
	}

	if got := p.Reset(context.Background()); !got.Success {
		t.Errorf("Reset() = %+v, want success", got)
	}
}
