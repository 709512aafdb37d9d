// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"

	"github.com/jeranaias/gdinject/internal/clipboard"
	"github.com/jeranaias/gdinject/internal/shortcut"
	"github.com/jeranaias/gdinject/internal/state"
)

// Status line texts.
const (
	StatusNoPID         = "Please select or add a PID first"
	StatusNothingToCopy = "No code to copy"
	StatusCodeCopied    = "Code copied to clipboard!"
)

// CopiedStatus is shown after a single reference was copied.
func CopiedStatus(name string) string {
	return `"` + name + `" has been copied to the clipboard`
}

// StatusFor turns an error from App into a status line.
func StatusFor(err error) string {
	if err == nil {
		return ""
	}

	var (
		werr *clipboard.WriteError
		verr *shortcut.ValidationError
		rerr *state.ReadError
	)
	switch {
	case errors.Is(err, ErrNoPID):
		return StatusNoPID
	case errors.Is(err, ErrNothingToCopy):
		return StatusNothingToCopy
	case errors.As(err, &werr):
		return "Error copying to clipboard: " + werr.Error()
	case errors.As(err, &verr):
		return "Invalid shortcut: " + verr.Error()
	case errors.As(err, &rerr):
		return "Could not read saved state: " + rerr.Err.Error()
	case errors.Is(err, shortcut.ErrNotFound):
		return "Shortcut no longer exists"
	default:
		return "Error: " + err.Error()
	}
}
