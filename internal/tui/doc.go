// Package tui implements the interactive camera controller using Bubble Tea.
//
// # Architecture
//
// The controller is a single Bubble Tea model composed of:
//   - Pipeline: applies changes through the device backend and re-reads the
//     full device state after every call
//   - Dialog: the one modal slot (help, info, confirm, error)
//   - Notifier: the one transient notification and its expiry timer
//   - Model: the navigation controller owning the cursor
//
// Settings rules (catalog, visibility, busy lockout, adjustment) live in the
// settings package.
//
// # Input Flow
//
//	key → dialog open? → Dialog.HandleKey
//	    → otherwise    → cursor move
//	                   → Permit → settings.Adjust → Pipeline.Apply → refresh
//
// Backend calls run inside Update. Bubble Tea delivers messages one at a
// time, so no key is handled while the driver is working.
//
// # Key Bindings
//
//	↑/↓          select setting
//	←/→          adjust by one step
//	pgup/pgdown  adjust by ten steps (ranges only)
//	enter        toggle
//	o            apply optimal settings
//	r            reset to defaults (asks first)
//	i            device information
//	h, ?         help
//	q, ctrl+c    quit
//
// # Usage
//
//	pipeline := tui.NewPipeline(backend, logger)
//	if err := pipeline.Refresh(ctx); err != nil {
//	    return err
//	}
//	model := tui.NewModel(ctx, pipeline, "/dev/video0", logger)
//	p := tea.NewProgram(model, tea.WithAltScreen())
//	_, err := p.Run()
package tui
