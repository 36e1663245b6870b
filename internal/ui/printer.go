package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Printer provides methods for printing UI components to a writer.
// This is the primary way non-interactive commands output styled content.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Field) {
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Field) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.Println(NewFailureResult(title, err, troubleshooting).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details []Field, troubleshooting []string) {
	r := NewWarningResult(title, details...).SetWidth(p.width)
	r.Troubleshooting = troubleshooting
	p.Println(r.Render())
}

// PrintCheck prints one pass/fail line with an optional indented message
func (p *Printer) PrintCheck(ok bool, name, detail, message string) {
	marker := lipgloss.NewStyle().Foreground(SuccessColor).Render(SuccessMarker)
	if !ok {
		marker = lipgloss.NewStyle().Foreground(ErrorColor).Render(FailureMarker)
	}

	line := fmt.Sprintf("  %s  %s", marker, HeaderParamValueStyle.Render(name))
	if detail != "" {
		line += "  " + HeaderParamKeyStyle.UnsetPaddingLeft().Render(detail)
	}
	p.Println(line)

	if message != "" {
		p.Println(CheckMessageStyle.Render(message))
	}
}
