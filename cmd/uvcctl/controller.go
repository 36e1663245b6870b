package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/uvcctl/internal/tui"
)

func runController(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive controller needs a terminal; use 'uvcctl show' or 'uvcctl set' in scripts")
	}

	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := s.requirePrerequisites(ctx); err != nil {
		return err
	}

	// The first frame should show real values; a failed read still starts
	// the controller, with the error in the status line
	if err := s.pipeline.Refresh(ctx); err != nil {
		s.logger.Warn("initial refresh failed", zap.Error(err))
	}

	s.logger.Info("starting controller", zap.String("device", s.cfg.Device))

	model := tui.NewModel(ctx, s.pipeline, s.cfg.Device, s.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("controller error: %w", err)
	}
	return nil
}
