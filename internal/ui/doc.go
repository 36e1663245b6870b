// Package ui provides styled terminal output for the non-interactive uvcctl
// commands.
//
// These components use Lipgloss and follow a "print once and exit" pattern;
// the interactive controller lives in package tui.
//
// # Components
//
//   - Header: Command banner showing operation name and parameters
//   - Result: Success/failure/warning boxes with details and troubleshooting
//   - Confirm: Warning box followed by a y/N prompt
//   - Printer: Writes the above to an io.Writer at a fixed width
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Reset to Defaults", "uvcctl reset",
//	    ui.Field{Key: "Device", Value: "/dev/video0"})
//	p.PrintSuccess("Camera reset to defaults")
//
// Logging is silent unless UVCCTL_LOG_LEVEL is set, so styled output is not
// interleaved with log lines.
package ui
