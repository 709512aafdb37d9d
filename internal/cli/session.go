// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/gdinject/internal/app"
	"github.com/jeranaias/gdinject/internal/clipboard"
	"github.com/jeranaias/gdinject/internal/editor"
	"github.com/jeranaias/gdinject/internal/history"
	"github.com/jeranaias/gdinject/internal/state"
)

// session is an App opened for one command.
type session struct {
	app  *app.App
	clip clipboard.Writer

	// loadErr is set when the state file exists but could not be read.
	loadErr error
}

// openSession builds an App from the loaded settings and reads the state file.
// Warnings go to stderr. A state file that cannot be read is not fatal; the
// session starts empty and loadErr records why.
func openSession(o *options, stderr io.Writer) (*session, error) {
	cfg := o.cfg

	var clip clipboard.Writer = clipboard.NewSystem()
	if o.noClipboard {
		clip = &clipboard.Memory{}
	}

	var hist *history.Store
	if cfg.History.Enabled {
		h, err := history.Open(cfg.Paths.HistoryDB)
		if err != nil {
			fmt.Fprintf(stderr, "warning: copy history disabled: %v\n", err)
			o.log.Warn("failed to open history", "path", cfg.Paths.HistoryDB, "error", err)
		} else {
			hist = h
		}
	}

	mode, err := editor.ParseSubstitution(cfg.Editor.Substitution)
	if err != nil {
		if hist != nil {
			hist.Close()
		}
		return nil, &ConfigError{Path: "editor.substitution", Err: err}
	}

	a := app.New(app.Options{
		StatePath:    cfg.Paths.StateFile,
		Clipboard:    clip,
		History:      hist,
		HistoryLimit: cfg.History.Limit,
		Logger:       o.log.WithComponent("app"),
		Substitution: mode,
	})

	s := &session{app: a, clip: clip}
	if err := a.Load(); err != nil {
		var rerr *state.ReadError
		if !errors.As(err, &rerr) {
			s.close()
			return nil, err
		}
		s.loadErr = err
		fmt.Fprintf(stderr, "warning: %s\n", app.StatusFor(err))
	}
	return s, nil
}

// writable fails when the state file could not be read. Commands that change
// state check it first so the original stays on disk for the user to repair.
func (s *session) writable() error {
	if s.loadErr != nil {
		return fmt.Errorf("refusing to overwrite unreadable state file: %w", s.loadErr)
	}
	return nil
}

// close releases the history database without saving.
func (s *session) close() {
	if h := s.app.History(); h != nil {
		h.Close()
	}
}
