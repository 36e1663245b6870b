package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/uvcctl/internal/settings"
	"github.com/muurk/uvcctl/internal/urls"
)

// View renders the controller
func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	if m.Dialog.Active() {
		return RenderModal(m.renderDialog(), m.Width, m.Height)
	}

	return RenderApplicationContainer(
		BuildHeaderContent(m.devicePath),
		m.renderSettings(),
		m.renderFooter(),
		m.Width,
		m.Height,
	)
}

// renderSettings renders one row per visible setting
func (m Model) renderSettings() string {
	state := m.pipeline.State()
	visible := state.Visible()

	if len(visible) == 0 {
		return HintStyle.Render("  No settings available")
	}

	rows := make([]string, 0, len(visible)+1)
	rows = append(rows, "")
	for i, e := range visible {
		rows = append(rows, m.renderRow(e, i == m.Cursor, rowHint(e, state)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// rowHint explains why a row behaves differently from its neighbours
func rowHint(e settings.Entry, state State) string {
	key := e.Definition.Key
	if !settings.MayMutate(key, state.Status.InUse) {
		return LockedHintStyle.Render("locked: in use")
	}
	if e.Definition.Kind == settings.KindToggle && e.Value.Flag {
		return HintStyle.Render("auto")
	}
	return ""
}

// renderRow renders a single setting row
func (m Model) renderRow(e settings.Entry, selected bool, hint string) string {
	label := fmt.Sprintf("%-*s", LabelWidth, e.Definition.Label)

	var value string
	switch e.Definition.Kind {
	case settings.KindRange:
		value = fmt.Sprintf("%s %5d", renderBar(e), e.Value.Number)
	case settings.KindSelect:
		value = "‹ " + e.Display() + " ›"
	default:
		if e.Value.Flag {
			value = "[✓] On"
		} else {
			value = "[ ] Off"
		}
	}

	line := label + value
	if hint != "" {
		line += "  " + hint
	}

	if selected {
		return SelectedRowStyle.Render("→ " + line)
	}
	return RowStyle.Render(line)
}

// renderBar renders a proportional bar for a range value
func renderBar(e settings.Entry) string {
	def := e.Definition
	span := def.Max - def.Min
	if span <= 0 {
		return strings.Repeat("░", BarWidth)
	}
	filled := (e.Value.Number - def.Min) * BarWidth / span
	if filled < 0 {
		filled = 0
	}
	if filled > BarWidth {
		filled = BarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", BarWidth-filled)
}

// renderFooter renders the notification, device status and key help
func (m Model) renderFooter() string {
	lines := make([]string, 0, 3)

	if n := m.notifier.Current(); n.Visible {
		lines = append(lines, notificationStyle(n.Severity).Render(notificationIcon(n.Severity)+n.Message))
	}

	lines = append(lines, m.renderStatus())
	lines = append(lines, m.Help.View(m.Keys))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderStatus renders the device status line
func (m Model) renderStatus() string {
	state := m.pipeline.State()
	status := state.Status
	format := fmt.Sprintf("%s %s @ %s",
		state.Format.Resolution(), state.Format.PixelFormat, settings.FormatFrameRate(state.Format.FrameRate))

	switch {
	case !status.Available:
		msg := "● camera unavailable"
		if status.Error != "" {
			msg += ": " + status.Error
		}
		return StatusErrorStyle.Render(msg)
	case status.InUse:
		return StatusBusyStyle.Render("● in use by another application") + "  " + format
	case status.Error != "":
		return StatusOKStyle.Render("● ready") + "  " + format + "  " + HintStyle.Render(status.Error)
	default:
		return StatusOKStyle.Render("● ready") + "  " + format
	}
}

// renderDialog renders the active dialog's modal content
func (m Model) renderDialog() string {
	width := SafeModalWidth(72, m.Width)

	switch m.Dialog.Kind {
	case DialogHelp:
		return ModalStyle.Width(width).Render(m.renderHelpContent())

	case DialogInfo:
		content := lipgloss.JoinVertical(lipgloss.Left,
			DialogTitleStyle.Render(strings.ToUpper(m.Dialog.Title)),
			"",
			m.Dialog.Message,
			"",
			HintStyle.Render("Press enter, esc or q to close"),
		)
		return ModalStyle.Width(width).Render(content)

	case DialogConfirm:
		content := lipgloss.JoinVertical(lipgloss.Left,
			DialogTitleStyle.Render(m.Dialog.Title),
			"",
			m.Dialog.Message,
			"",
			"[y] Yes    [n] No",
		)
		return ModalStyle.Width(width).Render(content)

	case DialogError:
		content := lipgloss.JoinVertical(lipgloss.Left,
			StatusErrorStyle.Render("✗ "+m.Dialog.Title),
			"",
			m.Dialog.Message,
			"",
			HintStyle.Render("Press enter, esc or q to close"),
		)
		return ErrorModalStyle.Width(width).Render(content)
	}

	return ""
}

// renderHelpContent renders the help dialog body
func (m Model) renderHelpContent() string {
	keys := m.Help.FullHelpView(m.Keys.FullHelp())

	rules := lipgloss.JoinVertical(lipgloss.Left,
		DialogSubtitleStyle.Render("Automatic modes:"),
		"  Exposure, white balance and focus values are hidden",
		"  while their automatic mode is on.",
		"",
		DialogSubtitleStyle.Render("Camera in use:"),
		"  Resolution, format and frame rate cannot change while",
		"  another application is streaming from the camera.",
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		DialogTitleStyle.Render("KEYBOARD HELP"),
		"",
		keys,
		"",
		rules,
		"",
		HintStyle.Render(urls.Repository),
		HintStyle.Render("Press enter, esc or q to close"),
	)
}
