// Package settings defines the fixed catalog of camera settings and the pure
// rules that govern them.
//
// # Catalog
//
// BuildCatalog turns the backend's DeviceSettings and VideoFormat into an
// ordered Catalog. The order is the navigation order of the interactive
// controller:
//
//	resolution, format, framerate,
//	brightness, contrast, saturation, sharpness, gain,
//	autoExposure, exposureValue,
//	autoWhiteBalance, whiteBalanceValue,
//	autoFocus, focusValue,
//	powerLineFrequency
//
// # Rules
//
//   - IsVisible / IsLocked: a manual value is hidden and locked while its
//     automatic mode is on
//   - IsExclusive / MayMutate: resolution, format and frame rate are rejected
//     while another application is using the camera
//   - Adjust: computes the next value for a key press
//
// Nothing here talks to the device. Callers check visibility and lockout
// before calling Adjust, then hand the result to the apply pipeline.
package settings
