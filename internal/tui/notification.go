package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// NotificationTimeout is how long a notification stays visible
const NotificationTimeout = 2000 * time.Millisecond

// Severity controls how a notification is rendered
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

// String returns the severity name
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is the single transient message shown in the footer.
// Expiry clears Visible but keeps Message and Severity.
type Notification struct {
	Message  string
	Severity Severity
	Visible  bool
}

// notificationExpiredMsg is delivered when a notification timer fires.
// id identifies the timer; expiries for superseded timers are dropped.
type notificationExpiredMsg struct {
	id int
}

type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

// Notifier owns the one notification slot and its expiry timer.
//
// bubbletea timers cannot be cancelled once scheduled, so each Notify starts
// a new timer id and the previous one is released: its expiry, if it still
// arrives, no longer matches and is ignored.
type Notifier struct {
	current Notification
	timerID int
	pending bool
	timeout time.Duration
	tick    tickFunc
}

// NewNotifier creates an empty notifier using the standard timeout
func NewNotifier() Notifier {
	return Notifier{
		timeout: NotificationTimeout,
		tick:    tea.Tick,
	}
}

// Current returns the notification as it should be rendered
func (n *Notifier) Current() Notification {
	return n.current
}

// Notify replaces the current notification and restarts the expiry timer.
// The returned command must be handed back to bubbletea.
func (n *Notifier) Notify(message string, severity Severity) tea.Cmd {
	n.timerID++
	n.pending = true
	n.current = Notification{
		Message:  message,
		Severity: severity,
		Visible:  true,
	}

	id := n.timerID
	tick := n.tick
	if tick == nil {
		tick = tea.Tick
	}
	timeout := n.timeout
	if timeout <= 0 {
		timeout = NotificationTimeout
	}
	return tick(timeout, func(time.Time) tea.Msg {
		return notificationExpiredMsg{id: id}
	})
}

// Expire handles a timer message. It reports whether the notification was
// hidden; stale and released timers return false.
func (n *Notifier) Expire(msg notificationExpiredMsg) bool {
	if !n.pending || msg.id != n.timerID {
		return false
	}
	n.pending = false
	n.current.Visible = false
	return true
}

// Stop releases the active timer so a late expiry has no effect.
// Called when the program is about to quit.
func (n *Notifier) Stop() {
	n.pending = false
	n.timerID++
}

// Pending reports whether an expiry timer is outstanding
func (n *Notifier) Pending() bool {
	return n.pending
}
