package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines key bindings for the controller screen
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Enter    key.Binding
	Optimize key.Binding
	Reset    key.Binding
	Info     key.Binding
	Help     key.Binding
	Quit     key.Binding

	// Combined arrow hints for the footer; never matched against input
	navigate key.Binding
	adjust   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.navigate, k.adjust, k.Enter, k.Optimize, k.Reset, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PageUp, k.PageDown, k.Enter},
		{k.Optimize, k.Reset, k.Info},
		{k.Help, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous setting"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next setting"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "increase"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "increase ×10"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "decrease ×10"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle"),
		),
		Optimize: key.NewBinding(
			key.WithKeys("o", "O"),
			key.WithHelp("o", "optimize"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "reset"),
		),
		Info: key.NewBinding(
			key.WithKeys("i", "I"),
			key.WithHelp("i", "device info"),
		),
		navigate: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "select"),
		),
		adjust: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "adjust"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "H", "?"),
			key.WithHelp("h/?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
