// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	PIDLabel    lipgloss.Style
	PIDValue    lipgloss.Style
	PIDMissing  lipgloss.Style

	// ==========================================================================
	// SHORTCUT PANEL STYLES
	// ==========================================================================

	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelItem    lipgloss.Style
	PanelCursor  lipgloss.Style
	PanelEmpty   lipgloss.Style

	// ==========================================================================
	// EDITOR STYLES
	// ==========================================================================

	Editor        lipgloss.Style
	EditorFocused lipgloss.Style
	EditorText    lipgloss.Style
	MetricToken   lipgloss.Style
	OtherToken    lipgloss.Style
	Caret         lipgloss.Style
	Placeholder   lipgloss.Style

	// ==========================================================================
	// SUGGESTION POPUP STYLES
	// ==========================================================================

	Popup         lipgloss.Style
	PopupItem     lipgloss.Style
	PopupSelected lipgloss.Style
	PopupCategory lipgloss.Style

	// ==========================================================================
	// DIALOG STYLES
	// ==========================================================================

	Dialog       lipgloss.Style
	DialogDanger lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogLabel  lipgloss.Style
	DialogError  lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar     lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	t.PIDLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.PIDValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.PIDMissing = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	// Shortcut panels
	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PanelFocused = t.Panel.
		BorderForeground(FocusRing)

	t.PanelTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.PanelItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.PanelCursor = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Blue).
		Bold(true)

	t.PanelEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Editor
	t.Editor = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.EditorFocused = t.Editor.
		BorderForeground(FocusRing)

	t.EditorText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.MetricToken = lipgloss.NewStyle().
		Foreground(MetricGreen).
		Bold(true)

	t.OtherToken = lipgloss.NewStyle().
		Foreground(OtherPurple).
		Bold(true)

	t.Caret = lipgloss.NewStyle().
		Reverse(true)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Suggestion popup
	t.Popup = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Background(Surface).
		Padding(0, 1)

	t.PopupItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.PopupSelected = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.PopupCategory = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Dialogs
	t.Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Blue).
		Padding(1, 2)

	t.DialogDanger = t.Dialog.
		BorderForeground(Rose)

	t.DialogTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		MarginBottom(1)

	t.DialogLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.DialogError = lipgloss.NewStyle().
		Foreground(Rose)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusSuccess = lipgloss.NewStyle().
		Foreground(Emerald)

	t.StatusError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Blue).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns: panels stacked
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
