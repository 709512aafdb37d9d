// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/gdinject/internal/app"
	"github.com/jeranaias/gdinject/internal/ui/injector"
	"github.com/jeranaias/gdinject/internal/ui/styles"
)

const (
	statusTTL       = 5 * time.Second
	shutdownTimeout = 5 * time.Second
)

// runTUI opens the interactive editor and saves the state when it exits.
func runTUI(cmd *cobra.Command, o *options) error {
	if err := RequiresTTY("open the editor"); err != nil {
		return err
	}

	s, err := openSession(o, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a := s.app
	o.log.Info("starting editor", "state", a.StatePath(), "pids", len(a.PIDs()), "shortcuts", a.Store().Len())

	m := injector.New(a, styles.NewTheme(), injector.Options{
		HideDelay:  o.cfg.HideDelay(),
		MaxVisible: o.cfg.Editor.MaxVisible,
		StatusTTL:  statusTTL,
	})
	if s.loadErr != nil {
		m.SetStatus(app.StatusFor(s.loadErr), true)
	}
	if o.cfg.Watch.Enabled {
		if err := m.Watch(o.cfg.Debounce()); err != nil {
			o.log.Warn("state file watch disabled", "error", err)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, runErr := p.Run()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if s.loadErr != nil && a.Store().Len() == 0 && len(a.PIDs()) == 0 {
		// Nothing was added; keep the unreadable file for the user to repair.
		s.close()
	} else {
		shutdownErr = a.Shutdown(ctx)
	}
	o.log.Info("editor closed")

	if runErr != nil {
		return fmt.Errorf("editor: %w", runErr)
	}
	if shutdownErr != nil {
		return fmt.Errorf("save state: %w", shutdownErr)
	}
	return nil
}
