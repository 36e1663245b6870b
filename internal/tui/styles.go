package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/uvcctl/internal/version"
)

// AppName is the title shown in the header
const AppName = "UVC CAMERA CONTROL"

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	LabelWidth       = 22 // Width of the setting label column
	BarWidth         = 24 // Width of the range bar
)

// Color palette
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	// Neutral colors
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

// Common styles
var (
	// Row style (unselected)
	RowStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(TextColor)

	// Row style (selected)
	SelectedRowStyle = lipgloss.NewStyle().
				PaddingLeft(0).
				Foreground(HighlightColor).
				Bold(true)

	// Hint next to a row value ("auto", "locked: in use")
	HintStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// Locked hint
	LockedHintStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Italic(true)

	// Section title inside dialogs
	DialogTitleStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	// Subtitle inside the help dialog
	DialogSubtitleStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	// Modal container
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)

	// Error modal container
	ErrorModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(1, 2)

	// Status line styles
	StatusOKStyle    = lipgloss.NewStyle().Foreground(SecondaryColor)
	StatusBusyStyle  = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)

	// Notification styles by severity
	NotifyInfoStyle    = lipgloss.NewStyle().Foreground(TextColor)
	NotifySuccessStyle = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	NotifyErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
)

// notificationStyle returns the style for a severity
func notificationStyle(s Severity) lipgloss.Style {
	switch s {
	case SeveritySuccess:
		return NotifySuccessStyle
	case SeverityError:
		return NotifyErrorStyle
	default:
		return NotifyInfoStyle
	}
}

// notificationIcon returns the leading glyph for a severity
func notificationIcon(s Severity) string {
	switch s {
	case SeveritySuccess:
		return "✓ "
	case SeverityError:
		return "✗ "
	default:
		return "ℹ "
	}
}

// BuildHeaderContent creates header content with app name and device path
func BuildHeaderContent(devicePath string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(devicePath)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer wraps the screen in a full-terminal bordered
// panel with a header and footer.
//
// Parameters:
//   - header: Header line content
//   - content: The screen's main content
//   - footerText: Help and status text for the bottom of the panel
//   - terminalWidth: Current terminal width (from tea.WindowSizeMsg)
//   - terminalHeight: Current terminal height (from tea.WindowSizeMsg)
func RenderApplicationContainer(header, content, footerText string, terminalWidth, terminalHeight int) string {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}
	if terminalHeight < 10 {
		terminalHeight = 10
	}

	// Create header section with bottom border
	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4). // Leave room for outer border
		Padding(0, 1)

	// Create footer section with top border
	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(header),
		contentStyle.Render(content),
		footerStyle.Render(BuildFooterContent(footerText)),
	)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		borderStyle.Render(innerContent),
	)
}

// SafeModalWidth returns the smaller of requestedWidth and what fits in the
// terminal, never less than 40 columns
func SafeModalWidth(requestedWidth, terminalWidth int) int {
	maxWidth := terminalWidth - 4
	if maxWidth < 40 {
		maxWidth = 40
	}
	if requestedWidth < maxWidth {
		return requestedWidth
	}
	return maxWidth
}

// RenderModal centers modalContent over a dimmed full-screen background.
// The modal content should already be styled with borders and padding.
func RenderModal(modalContent string, terminalWidth, terminalHeight int) string {
	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("240")),
	)
}
