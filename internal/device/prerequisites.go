package device

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// PrerequisiteCheck represents the result of checking a single prerequisite.
type PrerequisiteCheck struct {
	// Name is the human-readable name of the prerequisite
	Name string
	// Available indicates whether the prerequisite is available
	Available bool
	// Path is the resolved path (for binary checks)
	Path string
	// Version is the detected version (if applicable)
	Version string
	// Message provides additional context (error message or success info)
	Message string
	// Error contains the underlying error if check failed
	Error error
}

// PrerequisiteResult contains the results of all prerequisite checks.
type PrerequisiteResult struct {
	// Checks contains individual check results
	Checks []PrerequisiteCheck
	// AllAvailable is true if all prerequisites are available
	AllAvailable bool
}

// ValidatePrerequisites checks that the driver binary runs and the device node exists.
func ValidatePrerequisites(ctx context.Context, config Config, fs afero.Fs) *PrerequisiteResult {
	result := &PrerequisiteResult{
		Checks:       make([]PrerequisiteCheck, 0, 2),
		AllAvailable: true,
	}

	for _, check := range []PrerequisiteCheck{
		checkDriverBinary(ctx, config.DriverPath),
		checkDeviceNode(fs, config.DevicePath),
	} {
		result.Checks = append(result.Checks, check)
		if !check.Available {
			result.AllAvailable = false
		}
	}

	return result
}

// checkDriverBinary verifies that v4l2-ctl is available and executable.
func checkDriverBinary(ctx context.Context, driverPath string) PrerequisiteCheck {
	check := PrerequisiteCheck{
		Name: driverPath,
	}

	path, err := exec.LookPath(driverPath)
	if err != nil {
		check.Error = err
		check.Message = driverPath + " not found in PATH\n" +
			"Install on Debian/Ubuntu: sudo apt-get install v4l-utils\n" +
			"Install on Fedora: sudo dnf install v4l-utils"
		return check
	}
	check.Path = path

	versionCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	output, err := exec.CommandContext(versionCtx, path, "--version").Output()
	if err != nil {
		check.Error = err
		check.Message = fmt.Sprintf("%s found at %s but failed to execute: %v", driverPath, path, err)
		return check
	}

	if lines := strings.Split(string(output), "\n"); len(lines) > 0 {
		check.Version = strings.TrimSpace(lines[0])
	}

	check.Available = true
	check.Message = fmt.Sprintf("Found at %s", path)
	return check
}

// checkDeviceNode verifies that the V4L2 device node exists.
func checkDeviceNode(fs afero.Fs, devicePath string) PrerequisiteCheck {
	check := PrerequisiteCheck{
		Name: "Camera device",
		Path: devicePath,
	}

	info, err := fs.Stat(devicePath)
	if err != nil {
		check.Error = err
		check.Message = fmt.Sprintf("%s does not exist\n"+
			"Check that the camera is plugged in and list devices with: v4l2-ctl --list-devices", devicePath)
		return check
	}
	if info.IsDir() {
		check.Message = fmt.Sprintf("%s is a directory, not a device node", devicePath)
		return check
	}

	check.Available = true
	check.Message = fmt.Sprintf("Found %s", devicePath)
	return check
}
