package tui

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/uvcctl/internal/device"
	"github.com/muurk/uvcctl/internal/logging"
	"github.com/muurk/uvcctl/internal/settings"
)

// State is the local copy of everything read from the backend. It is only
// ever replaced as a whole by Pipeline.Refresh.
type State struct {
	Settings device.DeviceSettings `json:"settings"`
	Format   device.VideoFormat    `json:"format"`
	Status   device.DeviceStatus   `json:"status"`
}

// Catalog builds the settings catalog for the state
func (s State) Catalog() settings.Catalog {
	return settings.BuildCatalog(s.Settings, s.Format)
}

// Visible returns the catalog entries that take part in navigation
func (s State) Visible() settings.Catalog {
	return settings.Visible(s.Catalog(), s.Settings)
}

// Outcome describes the user-facing result of a single apply.
// An empty Message means nothing should be shown.
type Outcome struct {
	Message  string
	Severity Severity
	Err      error
}

// PolicyError is returned when a change is rejected before reaching the
// backend
type PolicyError struct {
	Key     settings.Key
	Message string
	Busy    bool
}

func (e *PolicyError) Error() string {
	return e.Message
}

// IsPolicyError reports whether err is a local rejection
func IsPolicyError(err error) bool {
	var pe *PolicyError
	return errors.As(err, &pe)
}

// Pipeline applies changes through the backend and keeps State in sync with
// it. After every backend call the full state is re-read.
type Pipeline struct {
	backend device.Backend
	logger  *zap.Logger
	state   State
}

// NewPipeline creates a pipeline for backend. Call Refresh before use.
func NewPipeline(backend device.Backend, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		backend: backend,
		logger:  logger,
	}
}

// State returns the last refreshed state
func (p *Pipeline) State() State {
	return p.state
}

// Refresh re-reads settings, format and status from the backend.
// If either read fails the previous settings and format are kept together
// and the error is returned; status is always replaced.
func (p *Pipeline) Refresh(ctx context.Context) error {
	s, sErr := p.backend.GetCurrentSettings(ctx)
	f, fErr := p.backend.GetCurrentVideoFormat(ctx)
	status := p.backend.GetDeviceStatus(ctx)

	if err := errors.Join(sErr, fErr); err != nil {
		p.logger.Warn("state refresh failed", zap.Error(err))
		if status.Error == "" {
			status.Error = device.GetShortErrorMessage(err)
		}
		p.state.Status = status
		return fmt.Errorf("failed to refresh device state: %w", err)
	}

	p.state = State{Settings: s, Format: f, Status: status}
	return nil
}

// Permit checks whether key may be changed in the current state
func (p *Pipeline) Permit(key settings.Key) error {
	if settings.IsLocked(key, p.state.Settings) {
		ctrl, _ := settings.Controller(key)
		ctrlDef, _ := settings.DefinitionFor(ctrl)
		def, _ := settings.DefinitionFor(key)
		return &PolicyError{
			Key:     key,
			Message: fmt.Sprintf("%s is controlled by %s", def.Label, ctrlDef.Label),
		}
	}
	if !settings.MayMutate(key, p.state.Status.InUse) {
		return &PolicyError{Key: key, Message: settings.MsgBusyRejected, Busy: true}
	}
	return nil
}

// Apply sends value for key to the backend, then refreshes.
//
// Busy failures of the exclusive-access settings produce an error message
// naming the setting. Every other failure is logged and left to the refresh
// to reveal.
func (p *Pipeline) Apply(ctx context.Context, key settings.Key, value settings.Value) Outcome {
	err := p.send(ctx, key, value)

	outcome := "applied"
	if err != nil {
		outcome = "failed"
	}
	def, _ := settings.DefinitionFor(key)
	logging.LogSettingChange(p.logger, string(key), settings.Entry{Definition: def, Value: value}.Display(), outcome)

	if refreshErr := p.Refresh(ctx); refreshErr != nil {
		p.logger.Warn("refresh after apply failed", zap.String("key", string(key)), zap.Error(refreshErr))
	}

	if err == nil {
		return Outcome{}
	}

	if settings.IsExclusive(key) && device.IsBusy(err) {
		return Outcome{
			Message:  busyMessage(key),
			Severity: SeverityError,
			Err:      err,
		}
	}

	p.logger.Warn("setting not applied", zap.String("key", string(key)), zap.Error(err))
	return Outcome{Err: err}
}

func busyMessage(key settings.Key) string {
	switch key {
	case settings.KeyFormat:
		return device.MsgFormatBusy
	case settings.KeyFrameRate:
		return device.MsgFrameRateBusy
	default:
		return "Cannot change resolution: camera is in use by another application"
	}
}

func (p *Pipeline) send(ctx context.Context, key settings.Key, value settings.Value) error {
	b := p.backend
	format := p.state.Format

	switch key {
	case settings.KeyResolution:
		w, h, err := device.ParseResolution(value.Choice)
		if err != nil {
			return err
		}
		return b.SetVideoFormat(ctx, w, h, format.PixelFormat)
	case settings.KeyFormat:
		return b.SetVideoFormat(ctx, format.Width, format.Height, value.Choice)
	case settings.KeyFrameRate:
		fps, err := settings.ParseFrameRate(value.Choice)
		if err != nil {
			return err
		}
		return b.SetFrameRate(ctx, fps)

	case settings.KeyBrightness:
		return b.SetBrightness(ctx, value.Number)
	case settings.KeyContrast:
		return b.SetContrast(ctx, value.Number)
	case settings.KeySaturation:
		return b.SetSaturation(ctx, value.Number)
	case settings.KeySharpness:
		return b.SetSharpness(ctx, value.Number)
	case settings.KeyGain:
		return b.SetGain(ctx, value.Number)

	case settings.KeyAutoExposure:
		return b.SetAutoExposure(ctx, value.Flag)
	case settings.KeyAutoFocus:
		return b.SetAutoFocus(ctx, value.Flag)
	case settings.KeyAutoWhiteBalance:
		return b.SetAutoWhiteBalance(ctx, value.Flag)

	case settings.KeyExposureValue:
		return b.SetExposureValue(ctx, value.Number)
	case settings.KeyFocusValue:
		return b.SetFocusValue(ctx, value.Number)
	case settings.KeyWhiteBalanceValue:
		return b.SetWhiteBalanceValue(ctx, value.Number)

	case settings.KeyPowerLineFrequency:
		freq, err := device.ParsePowerLineFrequency(value.Choice)
		if err != nil {
			return err
		}
		return b.SetPowerLineFrequency(ctx, freq)
	}

	return fmt.Errorf("unknown setting %q", key)
}

// Optimize runs the backend's optimal-settings sequence and refreshes
func (p *Pipeline) Optimize(ctx context.Context) device.CompositeResult {
	result := p.backend.ApplyOptimalSettings(ctx)
	if err := p.Refresh(ctx); err != nil {
		p.logger.Warn("refresh after optimize failed", zap.Error(err))
	}
	return result
}

// Reset runs the backend's reset sequence and refreshes
func (p *Pipeline) Reset(ctx context.Context) device.CompositeResult {
	result := p.backend.ResetToDefaults(ctx)
	if err := p.Refresh(ctx); err != nil {
		p.logger.Warn("refresh after reset failed", zap.Error(err))
	}
	return result
}

// Info returns the backend's diagnostic report
func (p *Pipeline) Info(ctx context.Context) string {
	return p.backend.GetDetailedInfo(ctx)
}
