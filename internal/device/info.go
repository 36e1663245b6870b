package device

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// driverInfoKeys are the --info fields shown in the detail text, in order
var driverInfoKeys = []string{
	"Driver name",
	"Card type",
	"Bus info",
	"Driver version",
}

// GetDetailedInfo returns a diagnostic report for the Info dialog.
// Failures are folded into the text rather than returned.
func (b *V4L2Backend) GetDetailedInfo(ctx context.Context) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Device: %s\n", b.config.DevicePath))

	if out, err := b.run(ctx, "info", "--info"); err != nil {
		sb.WriteString(fmt.Sprintf("Driver info unavailable: %s\n", GetShortErrorMessage(err)))
	} else {
		info := ParseDriverInfo(out.Stdout)
		for _, key := range driverInfoKeys {
			if val, ok := info[key]; ok {
				sb.WriteString(fmt.Sprintf("%s: %s\n", key, val))
			}
		}
	}

	if format, err := b.readVideoFormat(ctx); err != nil {
		sb.WriteString(fmt.Sprintf("Format: unavailable (%s)\n", GetShortErrorMessage(err)))
	} else {
		sb.WriteString(fmt.Sprintf("Format: %s %s @ %dfps (%s)\n",
			format.Resolution(),
			format.PixelFormat,
			format.FrameRate,
			humanize.SIWithDigits(float64(format.Width*format.Height), 1, "px"),
		))
	}

	status := b.status(ctx)
	switch {
	case !status.Available:
		sb.WriteString("Status: not available\n")
	case status.InUse:
		sb.WriteString("Status: in use by another application\n")
	default:
		sb.WriteString("Status: available\n")
	}
	if status.Error != "" {
		sb.WriteString(fmt.Sprintf("Status error: %s\n", status.Error))
	}

	controls, err := b.listControls(ctx)
	if err != nil {
		sb.WriteString(fmt.Sprintf("Controls unavailable: %s", GetShortErrorMessage(err)))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Controls (%d):\n", len(controls)))
	names := make([]string, 0, len(controls))
	for name := range controls {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString("  " + FormatControl(controls[name]) + "\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatControl renders one control as a single line
func FormatControl(c Control) string {
	line := fmt.Sprintf("%s (%s): %d", c.Name, c.Type, c.Value)
	if c.Type != "bool" {
		line += fmt.Sprintf(" [%d..%d]", c.Min, c.Max)
	}
	if c.HasDefault {
		line += fmt.Sprintf(" default=%d", c.Default)
	}
	if c.Inactive() {
		line += " (inactive)"
	}
	return line
}
