package tui

// DialogKind tags the active modal dialog
type DialogKind int

const (
	DialogNone DialogKind = iota
	DialogHelp
	DialogInfo
	DialogConfirm
	DialogError
)

// String returns the dialog kind name
func (k DialogKind) String() string {
	switch k {
	case DialogNone:
		return "none"
	case DialogHelp:
		return "help"
	case DialogInfo:
		return "info"
	case DialogConfirm:
		return "confirm"
	case DialogError:
		return "error"
	default:
		return "unknown"
	}
}

// Dialog texts
const (
	InfoTitle           = "Device Information"
	ConfirmResetTitle   = "Reset to Defaults"
	ConfirmResetMessage = "This will reset all camera settings to their default values. Continue?"
	OptimizeFailedTitle = "Optimization Failed"
	ResetFailedTitle    = "Reset Failed"
)

// Dialog is the single modal slot. While Kind is not DialogNone the dialog
// owns all keyboard input.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
}

// Active reports whether a dialog is open
func (d Dialog) Active() bool {
	return d.Kind != DialogNone
}

func helpDialog() Dialog {
	return Dialog{Kind: DialogHelp, Title: "Help"}
}

func infoDialog(message string) Dialog {
	return Dialog{Kind: DialogInfo, Title: InfoTitle, Message: message}
}

func confirmResetDialog() Dialog {
	return Dialog{Kind: DialogConfirm, Title: ConfirmResetTitle, Message: ConfirmResetMessage}
}

func errorDialog(title, message string) Dialog {
	return Dialog{Kind: DialogError, Title: title, Message: message}
}

// HandleKey applies a key press to the dialog and returns the next dialog
// state. confirmed is true only when a Confirm dialog was accepted; the
// caller then runs the pending action.
func (d Dialog) HandleKey(key string) (next Dialog, confirmed bool) {
	switch d.Kind {
	case DialogHelp, DialogInfo, DialogError:
		switch key {
		case "enter", "esc", "q":
			return Dialog{}, false
		}

	case DialogConfirm:
		switch key {
		case "y", "Y":
			return Dialog{}, true
		case "n", "N", "esc":
			return Dialog{}, false
		}
	}

	return d, false
}
