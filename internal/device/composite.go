package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Fixed messages for exclusive-access failures during composite operations
const (
	MsgFormatBusy    = "Cannot change video format: camera is in use by another application"
	MsgFrameRateBusy = "Cannot change frame rate: camera is in use by another application"
)

// ApplyOptimalSettings writes the optimal profile: format, frame rate, then all
// scalar controls. Every step runs even if an earlier one failed.
func (b *V4L2Backend) ApplyOptimalSettings(ctx context.Context) CompositeResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.logger.Info("applying optimal settings")
	return b.applyProfile(ctx, b.config.Optimal)
}

// ResetToDefaults writes the default format and every control's driver-reported
// default value, falling back to the configured defaults profile.
func (b *V4L2Backend) ResetToDefaults(ctx context.Context) CompositeResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.logger.Info("resetting to defaults")
	profile := b.config.Defaults

	controls, err := b.listControls(ctx)
	if err != nil {
		b.logger.Warn("could not read driver defaults, using configured profile", zap.Error(err))
	} else {
		profile.Controls = driverDefaults(controls, profile.Controls)
	}

	return b.applyProfile(ctx, profile)
}

// driverDefaults overlays the driver's default= values onto fallback
func driverDefaults(controls map[string]Control, fallback DeviceSettings) DeviceSettings {
	s := fallback
	def := func(id ControlID, dst *int) {
		if ctrl, ok := lookupControl(controls, id); ok && ctrl.HasDefault {
			*dst = ctrl.Default
		}
	}
	flag := func(id ControlID, dst *bool) {
		if ctrl, ok := lookupControl(controls, id); ok && ctrl.HasDefault {
			*dst = ctrl.Default != 0
		}
	}

	def(CtrlBrightness, &s.Brightness)
	def(CtrlContrast, &s.Contrast)
	def(CtrlSaturation, &s.Saturation)
	def(CtrlSharpness, &s.Sharpness)
	def(CtrlGain, &s.Gain)
	def(CtrlExposureValue, &s.ExposureValue)
	def(CtrlFocusValue, &s.FocusValue)
	def(CtrlWhiteBalanceValue, &s.WhiteBalanceValue)
	flag(CtrlAutoFocus, &s.AutoFocus)
	flag(CtrlAutoWhiteBalance, &s.AutoWhiteBalance)

	if ctrl, ok := lookupControl(controls, CtrlAutoExposure); ok && ctrl.HasDefault {
		s.AutoExposure = ctrl.Default != exposureManual
	}
	if ctrl, ok := lookupControl(controls, CtrlPowerLine); ok && ctrl.HasDefault {
		s.PowerLineFrequency = PowerLineFrequency(ctrl.Default)
	}

	return s
}

// applyProfile runs the fixed composite sequence. Caller holds b.mu.
func (b *V4L2Backend) applyProfile(ctx context.Context, profile Profile) CompositeResult {
	var result *multierror.Error

	f := profile.Format
	if err := b.setVideoFormat(ctx, f.Width, f.Height, f.PixelFormat); err != nil {
		if IsBusy(err) {
			result = multierror.Append(result, errors.New(MsgFormatBusy))
		} else {
			result = multierror.Append(result, fmt.Errorf("Failed to set video format: %s", GetShortErrorMessage(err)))
		}
	}

	if err := b.setFrameRate(ctx, f.FrameRate); err != nil {
		if IsBusy(err) {
			result = multierror.Append(result, errors.New(MsgFrameRateBusy))
		} else {
			result = multierror.Append(result, fmt.Errorf("Failed to set frame rate: %s", GetShortErrorMessage(err)))
		}
	}

	for _, step := range scalarSteps(profile.Controls) {
		if err := b.setControl(ctx, step.id, step.value); err != nil {
			result = multierror.Append(result, fmt.Errorf("Failed to set %s: %s", step.id.Label(), GetShortErrorMessage(err)))
		}
	}

	messages := flattenErrors(result)
	if len(messages) > 0 {
		b.logger.Warn("composite operation finished with errors", zap.Strings("errors", messages))
	}

	return CompositeResult{
		Success: len(messages) == 0,
		Errors:  messages,
	}
}

type controlStep struct {
	id    ControlID
	value int
}

// scalarSteps orders the control writes: automatic modes first, then manual
// values whose automatic mode is off (the driver rejects them otherwise),
// then picture controls and power line frequency.
func scalarSteps(s DeviceSettings) []controlStep {
	exposureMode := exposureManual
	if s.AutoExposure {
		exposureMode = exposureAperturePriority
	}

	steps := []controlStep{
		{CtrlAutoExposure, exposureMode},
		{CtrlAutoWhiteBalance, boolToInt(s.AutoWhiteBalance)},
		{CtrlAutoFocus, boolToInt(s.AutoFocus)},
	}
	if !s.AutoExposure {
		steps = append(steps, controlStep{CtrlExposureValue, s.ExposureValue})
	}
	if !s.AutoWhiteBalance {
		steps = append(steps, controlStep{CtrlWhiteBalanceValue, s.WhiteBalanceValue})
	}
	if !s.AutoFocus {
		steps = append(steps, controlStep{CtrlFocusValue, s.FocusValue})
	}

	return append(steps,
		controlStep{CtrlBrightness, s.Brightness},
		controlStep{CtrlContrast, s.Contrast},
		controlStep{CtrlSaturation, s.Saturation},
		controlStep{CtrlSharpness, s.Sharpness},
		controlStep{CtrlGain, s.Gain},
		controlStep{CtrlPowerLine, int(s.PowerLineFrequency)},
	)
}

func flattenErrors(merr *multierror.Error) []string {
	if merr == nil {
		return nil
	}
	messages := make([]string, 0, len(merr.Errors))
	for _, err := range merr.Errors {
		messages = append(messages, err.Error())
	}
	return messages
}
