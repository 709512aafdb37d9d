// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/jeranaias/gdinject/internal/ui/styles"
)

// =============================================================================
// HELP VIEW
// =============================================================================

// HelpView renders markdown help text with glamour, caching the result per width.
type HelpView struct {
	markdown string
	visible  bool
	width    int
	rendered string
	theme    *styles.Theme
}

// NewHelpView creates a hidden help view over markdown.
func NewHelpView(theme *styles.Theme, markdown string) *HelpView {
	return &HelpView{markdown: markdown, width: 80, theme: theme}
}

// Toggle shows or hides the help.
func (h *HelpView) Toggle() {
	h.visible = !h.visible
}

// Hide hides the help.
func (h *HelpView) Hide() {
	h.visible = false
}

// Visible reports whether the help is shown.
func (h *HelpView) Visible() bool {
	return h.visible
}

// SetWidth sets the wrap width; the cached rendering is dropped on change.
func (h *HelpView) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if width != h.width {
		h.width = width
		h.rendered = ""
	}
}

// View renders the help. Rendering errors fall back to the raw markdown.
func (h *HelpView) View() string {
	if !h.visible {
		return ""
	}
	if h.rendered == "" {
		h.rendered = h.render()
	}
	return h.rendered
}

func (h *HelpView) render() string {
	style := "light"
	if h.theme != nil && h.theme.IsDark {
		style = "dark"
	}
	if h.theme != nil && h.theme.ColorProfile == termenv.Ascii {
		style = "notty"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(h.width-4),
	)
	if err != nil {
		return h.markdown
	}
	out, err := r.Render(h.markdown)
	if err != nil {
		return h.markdown
	}
	return strings.TrimRight(out, "\n")
}
