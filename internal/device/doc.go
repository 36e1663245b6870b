// Package device provides the camera backend: the contract through which all
// UVC webcam state is read and changed, and its v4l2-ctl implementation.
//
// The backend owns the hardware state. Callers never patch local copies of
// DeviceSettings or VideoFormat; after any change they re-read both and ask for
// a fresh DeviceStatus.
//
// # Usage Example
//
//	backend := device.NewV4L2Backend(device.DefaultConfig(), logger)
//
//	settings, err := backend.GetCurrentSettings(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := backend.SetVideoFormat(ctx, 1280, 720, "MJPG"); device.IsBusy(err) {
//	    fmt.Println("camera is streaming elsewhere")
//	}
//
// # Driver Invocation
//
// Every operation is one or more v4l2-ctl calls:
//   - --list-ctrls: picture and automatic controls
//   - --get-fmt-video / --get-parm: resolution, pixel format, frame rate
//   - --set-ctrl, --set-fmt-video, --set-parm: changes
//   - --info: driver details for the diagnostic report
//
// Invocations go through a Runner so tests can substitute canned output.
//
// # Exclusive Access
//
// Resolution, pixel format and frame rate can only change while no other
// application is streaming. The driver then fails with EBUSY, which is reported
// as a DeviceError with ErrTypeBusy (see IsBusy).
//
// # Composite Operations
//
// ApplyOptimalSettings and ResetToDefaults run a fixed sequence (format, frame
// rate, then every scalar control) and never stop early. Failures are collected
// into CompositeResult.Errors.
//
// # Thread Safety
//
// V4L2Backend serializes all calls with a per-device mutex.
package device
