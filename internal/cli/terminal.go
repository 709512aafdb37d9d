// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/gdinject/internal/shortcut"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// isTerminal reports whether w is a terminal. Anything other than an
// *os.File (a buffer in tests, a pipe wrapper) is not.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TTYRequiredError is returned when an operation requires a TTY but none is available.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	if e.Operation != "" {
		return "stdin is not a terminal; cannot " + e.Operation + " interactively"
	}
	return "stdin is not a terminal; interactive input not available"
}

// RequiresTTY returns an error if stdin or stdout is not a terminal.
func RequiresTTY(operation string) error {
	if !IsTTY() || !IsStdoutTTY() {
		return &TTYRequiredError{Operation: operation}
	}
	return nil
}

// =============================================================================
// PRINTER
// =============================================================================

// printer writes command output. On a terminal it uses colour; otherwise it
// writes plain text so the output can be piped.
type printer struct {
	w   io.Writer
	tty bool

	title   lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	errorS  lipgloss.Style
	metric  lipgloss.Style
	other   lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	tty := isTerminal(w)
	r := lipgloss.NewRenderer(w)
	if !tty || os.Getenv("NO_COLOR") != "" {
		r.SetColorProfile(termenv.Ascii)
	}
	return &printer{
		w:       w,
		tty:     tty,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		label:   r.NewStyle().Foreground(lipgloss.Color("245")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("242")),
		success: r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		errorS:  r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		metric:  r.NewStyle().Foreground(lipgloss.Color("35")),
		other:   r.NewStyle().Foreground(lipgloss.Color("141")),
	}
}

func (p *printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *printer) printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// styleFor colours a shortcut name by category.
func (p *printer) styleFor(c shortcut.Category) lipgloss.Style {
	if c == shortcut.Metric {
		return p.metric
	}
	return p.other
}
