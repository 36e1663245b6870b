package device

import (
	"bufio"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Control is one entry of the driver's control listing
type Control struct {
	Name       string
	Type       string // int, bool, menu, ...
	Min        int
	Max        int
	Step       int
	Default    int
	Value      int
	HasDefault bool
	Flags      []string
}

// Inactive reports whether the driver marked the control inactive
// (typically a manual value while its automatic mode is on)
func (c Control) Inactive() bool {
	for _, f := range c.Flags {
		if f == "inactive" {
			return true
		}
	}
	return false
}

// controlLine matches lines such as:
//
//	brightness 0x00980900 (int)    : min=0 max=255 step=1 default=128 value=128
var controlLine = regexp.MustCompile(`^\s*([a-z0-9_]+)\s+0x[0-9a-fA-F]+\s+\(([a-z0-9 ]+)\)\s*:\s*(.*)$`)

// flagsField matches the trailing flag list, e.g. "flags=inactive, volatile"
var flagsField = regexp.MustCompile(`flags=([a-z-]+(?:,\s*[a-z-]+)*)`)

// ParseControls parses `v4l2-ctl --list-ctrls` output into controls keyed by name.
// Section headers ("User Controls") and menu entries are skipped, as are
// controls without a current value (buttons, write-only controls).
func ParseControls(output string) (map[string]Control, error) {
	controls := make(map[string]Control)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		m := controlLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		ctrl := Control{
			Name: m[1],
			Type: strings.TrimSpace(m[2]),
			Step: 1,
		}

		attrs := m[3]
		if f := flagsField.FindStringSubmatch(attrs); f != nil {
			for _, flag := range strings.Split(f[1], ",") {
				ctrl.Flags = append(ctrl.Flags, strings.TrimSpace(flag))
			}
			attrs = strings.Replace(attrs, f[0], "", 1)
		}

		hasValue := false
		for _, field := range strings.Fields(attrs) {
			key, val, ok := strings.Cut(field, "=")
			if !ok {
				// Trailing menu label such as "(60 Hz)"
				continue
			}
			n, err := strconv.Atoi(val)
			if err != nil {
				continue
			}
			switch key {
			case "min":
				ctrl.Min = n
			case "max":
				ctrl.Max = n
			case "step":
				ctrl.Step = n
			case "default":
				ctrl.Default = n
				ctrl.HasDefault = true
			case "value":
				ctrl.Value = n
				hasValue = true
			}
		}

		if !hasValue {
			continue
		}
		controls[ctrl.Name] = ctrl
	}
	if err := scanner.Err(); err != nil {
		return nil, NewParseError("list-ctrls", err.Error())
	}

	if len(controls) == 0 {
		return nil, NewParseError("list-ctrls", "no controls found in driver output")
	}
	return controls, nil
}

var (
	sizeLine        = regexp.MustCompile(`Width/Height\s*:\s*(\d+)/(\d+)`)
	pixelFormatLine = regexp.MustCompile(`Pixel Format\s*:\s*'([^']+)'`)
	fpsLine         = regexp.MustCompile(`Frames per second\s*:\s*([0-9.]+)`)
)

// ParseVideoFormat parses `v4l2-ctl --get-fmt-video` output.
// FrameRate is left zero; it comes from ParseFrameRate.
func ParseVideoFormat(output string) (VideoFormat, error) {
	var format VideoFormat

	size := sizeLine.FindStringSubmatch(output)
	if size == nil {
		return format, NewParseError("get-fmt-video", "Width/Height not found")
	}
	format.Width, _ = strconv.Atoi(size[1])
	format.Height, _ = strconv.Atoi(size[2])

	pf := pixelFormatLine.FindStringSubmatch(output)
	if pf == nil {
		return format, NewParseError("get-fmt-video", "Pixel Format not found")
	}
	format.PixelFormat = strings.TrimSpace(pf[1])

	return format, nil
}

// ParseFrameRate parses `v4l2-ctl --get-parm` output, rounding to whole frames
func ParseFrameRate(output string) (int, error) {
	m := fpsLine.FindStringSubmatch(output)
	if m == nil {
		return 0, NewParseError("get-parm", "Frames per second not found")
	}
	fps, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, NewParseError("get-parm", fmt.Sprintf("invalid frame rate %q", m[1]))
	}
	return int(math.Round(fps)), nil
}

// ParseDriverInfo extracts the "Driver Info" block from `v4l2-ctl --info`
func ParseDriverInfo(output string) map[string]string {
	info := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if key == "" || val == "" {
			continue
		}
		if _, exists := info[key]; !exists {
			info[key] = val
		}
	}
	return info
}
