// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gdinject/internal/ui/styles"
)

// =============================================================================
// CONFIRM DIALOG
// =============================================================================

// ConfirmResult is the outcome of a key press in a Confirm dialog.
type ConfirmResult int

const (
	ConfirmPending ConfirmResult = iota
	ConfirmYes
	ConfirmNo
)

// Button options
const (
	ButtonYes = 0
	ButtonNo  = 1
)

// Confirm is a yes/no modal. No is preselected.
type Confirm struct {
	title    string
	message  string
	selected int
	visible  bool
	width    int
	theme    *styles.Theme
}

// NewConfirm creates a hidden confirm dialog.
func NewConfirm(theme *styles.Theme) *Confirm {
	return &Confirm{theme: theme, width: 44, selected: ButtonNo}
}

// Show opens the dialog.
func (c *Confirm) Show(title, message string) {
	c.title = title
	c.message = message
	c.selected = ButtonNo
	c.visible = true
}

// Hide closes the dialog.
func (c *Confirm) Hide() {
	c.visible = false
}

// Visible reports whether the dialog is open.
func (c *Confirm) Visible() bool {
	return c.visible
}

// Selected returns the highlighted button.
func (c *Confirm) Selected() int {
	return c.selected
}

// Update handles key events. The dialog hides itself once answered.
func (c *Confirm) Update(msg tea.Msg) ConfirmResult {
	if !c.visible {
		return ConfirmPending
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return ConfirmPending
	}

	switch km.String() {
	case "left", "right", "tab", "shift+tab", "h", "l":
		c.selected = 1 - c.selected
		return ConfirmPending
	case "y", "Y":
		c.Hide()
		return ConfirmYes
	case "n", "N", "esc":
		c.Hide()
		return ConfirmNo
	case "enter", " ":
		c.Hide()
		if c.selected == ButtonYes {
			return ConfirmYes
		}
		return ConfirmNo
	}
	return ConfirmPending
}

// View renders the dialog.
func (c *Confirm) View() string {
	if !c.visible {
		return ""
	}

	button := func(label string, active bool) string {
		style := lipgloss.NewStyle().Padding(0, 2).Foreground(styles.TextSecondary)
		if active {
			style = style.Foreground(styles.TextInverse).Background(styles.Rose).Bold(true)
		}
		return style.Render(label)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		button("Yes", c.selected == ButtonYes),
		"  ",
		button("No", c.selected == ButtonNo),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		c.theme.DialogTitle.Render(c.title),
		lipgloss.NewStyle().Width(c.width-6).Render(c.message),
		"",
		buttons,
	)
	return c.theme.DialogDanger.Width(c.width).Render(body)
}
