package device

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrorType represents the category of a driver failure
type ErrorType int

const (
	// ErrTypeBusy indicates the device refused an exclusive-access change because
	// another process holds the stream (EBUSY)
	ErrTypeBusy ErrorType = iota
	// ErrTypeExec indicates the driver ran but exited with a failure
	ErrTypeExec
	// ErrTypeParse indicates the driver output could not be understood
	ErrTypeParse
	// ErrTypeNotFound indicates the driver binary or the device node is missing
	ErrTypeNotFound
	// ErrTypeTimeout indicates the driver did not finish in time
	ErrTypeTimeout
	// ErrTypeUnknown indicates any other failure
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeBusy:
		return "Device Busy"
	case ErrTypeExec:
		return "Driver Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents a failure reported while talking to the camera driver
type DeviceError struct {
	Type     ErrorType // Category of error
	Message  string    // Human-readable error message
	Control  string    // Driver control or operation involved (if any)
	ExitCode int       // Driver exit code (-1 when it never ran)
	Stderr   string    // Driver stderr (trimmed)
	Err      error     // Underlying error (if any)
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Control != "" {
		msg = fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Control)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (caused by: %v)", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// busyMarkers are the stderr fragments v4l2-ctl prints when an ioctl fails with EBUSY
var busyMarkers = []string{
	"Device or resource busy",
	"EBUSY",
}

// ClassifyExecError turns a failed driver invocation into a DeviceError.
// control names the operation for context; stderr is the captured driver output.
func ClassifyExecError(err error, control string, exitCode int, stderr string) *DeviceError {
	stderr = strings.TrimSpace(stderr)

	for _, marker := range busyMarkers {
		if strings.Contains(stderr, marker) {
			return &DeviceError{
				Type:     ErrTypeBusy,
				Message:  "device is in use by another application",
				Control:  control,
				ExitCode: exitCode,
				Stderr:   stderr,
				Err:      err,
			}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &DeviceError{
			Type:     ErrTypeTimeout,
			Message:  "driver did not respond in time",
			Control:  control,
			ExitCode: exitCode,
			Stderr:   stderr,
			Err:      err,
		}
	}

	if errors.Is(err, exec.ErrNotFound) {
		return &DeviceError{
			Type:     ErrTypeNotFound,
			Message:  "driver binary not found",
			Control:  control,
			ExitCode: -1,
			Err:      err,
		}
	}

	if strings.Contains(stderr, "No such file or directory") || strings.Contains(stderr, "Cannot open device") {
		return &DeviceError{
			Type:     ErrTypeNotFound,
			Message:  "device not found",
			Control:  control,
			ExitCode: exitCode,
			Stderr:   stderr,
			Err:      err,
		}
	}

	if exitCode > 0 {
		return &DeviceError{
			Type:     ErrTypeExec,
			Message:  firstLine(stderr, "driver exited with an error"),
			Control:  control,
			ExitCode: exitCode,
			Stderr:   stderr,
			Err:      err,
		}
	}

	return &DeviceError{
		Type:     ErrTypeUnknown,
		Message:  firstLine(stderr, "driver call failed"),
		Control:  control,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      err,
	}
}

// NewParseError creates a parsing error
func NewParseError(control, message string) *DeviceError {
	return &DeviceError{
		Type:     ErrTypeParse,
		Message:  message,
		Control:  control,
		ExitCode: 0,
	}
}

// NewBusyError creates a busy error for the given operation
func NewBusyError(control string) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeBusy,
		Message: "device is in use by another application",
		Control: control,
	}
}

// IsBusy checks if an error is a device-busy error
func IsBusy(err error) bool {
	return hasType(err, ErrTypeBusy)
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	return hasType(err, ErrTypeParse)
}

// IsNotFound checks if an error is a missing driver or device error
func IsNotFound(err error) bool {
	return hasType(err, ErrTypeNotFound)
}

// IsTimeout checks if an error is a driver timeout
func IsTimeout(err error) bool {
	return hasType(err, ErrTypeTimeout)
}

func hasType(err error, t ErrorType) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == t
	}
	return false
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		return err.Error()
	}

	switch devErr.Type {
	case ErrTypeBusy:
		return "Camera is in use by another application"
	case ErrTypeTimeout:
		return "Camera driver not responding (timeout)"
	case ErrTypeNotFound:
		if devErr.Message == "driver binary not found" {
			return "v4l2-ctl not found - install v4l-utils"
		}
		return "Camera not found - is it plugged in?"
	case ErrTypeParse:
		return "Failed to parse driver output"
	default:
		return devErr.Message
	}
}

func firstLine(s, fallback string) string {
	if s == "" {
		return fallback
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
