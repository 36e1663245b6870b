package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/uvcctl/internal/device"
	"github.com/muurk/uvcctl/internal/settings"
)

// Feedback texts for the composite operations
const (
	MsgOptimized = "Optimal settings applied"
	MsgReset     = "Camera reset to defaults"
)

// Model is the interactive controller. It owns the selection cursor, the
// dialog slot and the notification slot; all device state lives in the
// pipeline.
type Model struct {
	ctx        context.Context
	pipeline   *Pipeline
	logger     *zap.Logger
	devicePath string

	// Navigation
	Cursor int    // Index into the visible settings
	Dialog Dialog // Active modal, DialogNone when closed

	notifier Notifier

	// UI state
	Width    int
	Height   int
	Quitting bool

	// Help
	Help help.Model
	Keys keyMap
}

// NewModel creates the controller. The pipeline should already have been
// refreshed once so the first frame shows real values.
func NewModel(ctx context.Context, pipeline *Pipeline, devicePath string, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		ctx:        ctx,
		pipeline:   pipeline,
		logger:     logger,
		devicePath: devicePath,
		notifier:   NewNotifier(),
		Help:       help.New(),
		Keys:       newKeyMap(),
	}
	m.clampCursor()
	return m
}

// Init initializes the controller
func (m Model) Init() tea.Cmd {
	return nil
}

// Notification returns the current notification
func (m Model) Notification() Notification {
	return m.notifier.Current()
}

// State returns the device state the controller is showing
func (m Model) State() State {
	return m.pipeline.State()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case notificationExpiredMsg:
		m.notifier.Expire(msg)
		return m, nil

	case tea.KeyMsg:
		// An open dialog owns every key
		if m.Dialog.Active() {
			return m.updateDialog(msg)
		}
		return m.updateNormalMode(msg)
	}

	return m, nil
}

// updateDialog handles input while a dialog is open
func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, confirmed := m.Dialog.HandleKey(msg.String())
	m.Dialog = next

	if confirmed {
		result := m.pipeline.Reset(m.ctx)
		m.clampCursor()
		return m.compositeFeedback(result, ResetFailedTitle, MsgReset)
	}

	return m, nil
}

// updateNormalMode handles input when no dialog is open
func (m Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.notifier.Stop()
		m.Quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.Keys.Left):
		return m.adjustSelected(-1)
	case key.Matches(msg, m.Keys.Right):
		return m.adjustSelected(1)
	case key.Matches(msg, m.Keys.PageUp):
		return m.adjustSelected(10)
	case key.Matches(msg, m.Keys.PageDown):
		return m.adjustSelected(-10)
	case key.Matches(msg, m.Keys.Enter):
		return m.adjustSelected(0)

	case key.Matches(msg, m.Keys.Optimize):
		result := m.pipeline.Optimize(m.ctx)
		m.clampCursor()
		return m.compositeFeedback(result, OptimizeFailedTitle, MsgOptimized)

	case key.Matches(msg, m.Keys.Reset):
		m.Dialog = confirmResetDialog()

	case key.Matches(msg, m.Keys.Info):
		m.Dialog = infoDialog(m.pipeline.Info(m.ctx))

	case key.Matches(msg, m.Keys.Help):
		m.Dialog = helpDialog()
	}

	return m, nil
}

// moveCursor moves the selection by delta, clamped to the visible settings
func (m *Model) moveCursor(delta int) {
	m.Cursor += delta
	m.clampCursor()
}

// clampCursor keeps the cursor inside the visible settings
func (m *Model) clampCursor() {
	n := len(m.pipeline.State().Visible())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// follow moves the cursor to key if it is still visible, otherwise clamps
func (m *Model) follow(k settings.Key) {
	if idx := m.pipeline.State().Visible().IndexOf(k); idx >= 0 {
		m.Cursor = idx
		return
	}
	m.clampCursor()
}

// selected returns the entry under the cursor
func (m Model) selected() (settings.Entry, bool) {
	visible := m.pipeline.State().Visible()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return settings.Entry{}, false
	}
	return visible[m.Cursor], true
}

// adjustSelected runs one key press against the selected setting.
// Page deltas only apply to ranges and Enter only to toggles.
func (m Model) adjustSelected(delta int) (tea.Model, tea.Cmd) {
	entry, ok := m.selected()
	if !ok {
		return m, nil
	}
	def := entry.Definition

	if (delta == 10 || delta == -10) && def.Kind != settings.KindRange {
		return m, nil
	}
	if delta == 0 && def.Kind != settings.KindToggle {
		return m, nil
	}

	if err := m.pipeline.Permit(def.Key); err != nil {
		severity := SeverityInfo
		var pe *PolicyError
		if errors.As(err, &pe) && pe.Busy {
			severity = SeverityError
		}
		return m, m.notifier.Notify(err.Error(), severity)
	}

	next := settings.Adjust(def, entry.Value, delta)
	if next == entry.Value {
		return m, nil
	}

	m.logger.Debug("applying setting",
		zap.String("key", string(def.Key)),
		zap.Int("delta", delta),
	)

	outcome := m.pipeline.Apply(m.ctx, def.Key, next)
	m.follow(def.Key)

	if outcome.Message != "" {
		return m, m.notifier.Notify(outcome.Message, outcome.Severity)
	}
	return m, nil
}

// compositeFeedback opens an error dialog listing every failure, or shows a
// success notification
func (m Model) compositeFeedback(result device.CompositeResult, failTitle, successMsg string) (tea.Model, tea.Cmd) {
	if len(result.Errors) > 0 {
		m.Dialog = errorDialog(failTitle, strings.Join(result.Errors, ". "))
		return m, nil
	}
	return m, m.notifier.Notify(successMsg, SeveritySuccess)
}
