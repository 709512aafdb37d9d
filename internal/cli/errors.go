// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/gdinject/internal/app"
	"github.com/jeranaias/gdinject/internal/clipboard"
	"github.com/jeranaias/gdinject/internal/config"
	"github.com/jeranaias/gdinject/internal/reference"
	"github.com/jeranaias/gdinject/internal/shortcut"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitNotFound     = 4
	ExitClipboard    = 5
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// NotFoundError reports a shortcut or PID that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// UsageError reports bad arguments.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// ConfigError wraps a failure to load or change the settings file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("settings %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		nf   *NotFoundError
		ue   *UsageError
		ce   *ConfigError
		we   *clipboard.WriteError
		ve   *shortcut.ValidationError
		cves config.ValidateErrors
	)
	switch {
	case errors.As(err, &nf), errors.Is(err, shortcut.ErrNotFound), errors.Is(err, app.ErrUnknownPID):
		return ExitNotFound
	case errors.As(err, &ue), errors.As(err, &ve), errors.Is(err, reference.ErrMalformed),
		errors.Is(err, app.ErrEmptyPID), errors.Is(err, app.ErrNoPID):
		return ExitUsageError
	case errors.As(err, &ce), errors.As(err, &cves):
		return ExitConfigError
	case errors.As(err, &we):
		return ExitClipboard
	default:
		return ExitGeneralError
	}
}
