// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gdinject/internal/ui/styles"
	"github.com/jeranaias/gdinject/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusKind colors the status message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// StatusBar is the bottom line: last status message on the left, key hints on
// the right.
type StatusBar struct {
	message string
	kind    StatusKind
	hints   string
	width   int
	theme   *styles.Theme
}

// NewStatusBar creates an empty status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{width: 80, theme: theme}
}

// Set replaces the status message.
func (s *StatusBar) Set(message string, kind StatusKind) {
	s.message = message
	s.kind = kind
}

// Clear removes the status message.
func (s *StatusBar) Clear() {
	s.message = ""
	s.kind = StatusInfo
}

// Message returns the current status message.
func (s *StatusBar) Message() string {
	return s.message
}

// Kind returns the current status kind.
func (s *StatusBar) Kind() StatusKind {
	return s.kind
}

// SetHints sets the key hints shown on the right (already rendered).
func (s *StatusBar) SetHints(hints string) {
	s.hints = hints
}

// SetWidth sets the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	inner := s.width - 2
	if inner < 1 {
		return ""
	}

	left := ""
	if s.message != "" {
		switch s.kind {
		case StatusSuccess:
			left = s.theme.StatusSuccess.Render(util.TruncateWidth(styles.StatusIndicators.Success+" "+s.message, inner))
		case StatusError:
			left = s.theme.StatusError.Render(util.TruncateWidth(styles.StatusIndicators.Error+" "+s.message, inner))
		default:
			left = util.TruncateWidth(s.message, inner)
		}
	}

	right := ""
	if room := inner - lipgloss.Width(left) - 2; room > 8 && s.hints != "" {
		right = s.hints
		if lipgloss.Width(right) > room {
			right = ""
		}
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return s.theme.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}
