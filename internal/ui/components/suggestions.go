// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gdinject/internal/editor"
	"github.com/jeranaias/gdinject/internal/shortcut"
	"github.com/jeranaias/gdinject/internal/ui/styles"
	"github.com/jeranaias/gdinject/internal/util"
)

// =============================================================================
// SUGGESTION POPUP COMPONENT
// =============================================================================

// SuggestionPopup displays the editor's suggestion overlay.
type SuggestionPopup struct {
	items      []shortcut.Shortcut
	selected   int
	maxVisible int
	width      int
	theme      *styles.Theme
}

// NewSuggestionPopup creates a new suggestion popup.
func NewSuggestionPopup(theme *styles.Theme) *SuggestionPopup {
	return &SuggestionPopup{
		maxVisible: 8,
		width:      36,
		theme:      theme,
	}
}

// SetOverlay mirrors the editor overlay. A hidden overlay clears the popup.
func (p *SuggestionPopup) SetOverlay(o editor.Overlay) {
	if !o.Visible {
		p.items = nil
		p.selected = 0
		return
	}
	p.items = o.Items
	p.selected = o.Highlight
}

// Visible returns true if there are suggestions to show.
func (p *SuggestionPopup) Visible() bool {
	return len(p.items) > 0
}

// Selected returns the highlighted index.
func (p *SuggestionPopup) Selected() int {
	return p.selected
}

// SetWidth sets the popup width including its border.
func (p *SuggestionPopup) SetWidth(width int) {
	if width < 12 {
		width = 12
	}
	p.width = width
}

// Width returns the popup width including its border.
func (p *SuggestionPopup) Width() int {
	return p.width
}

// SetMaxVisible sets the maximum number of visible rows.
func (p *SuggestionPopup) SetMaxVisible(n int) {
	if n < 1 {
		n = 1
	}
	p.maxVisible = n
}

// Window returns the range of items currently drawn. The window keeps the
// highlighted item roughly centered.
func (p *SuggestionPopup) Window() (start, end int) {
	end = len(p.items)
	if len(p.items) <= p.maxVisible {
		return 0, end
	}
	start = p.selected - p.maxVisible/2
	if start < 0 {
		start = 0
	}
	end = start + p.maxVisible
	if end > len(p.items) {
		end = len(p.items)
		start = end - p.maxVisible
	}
	return start, end
}

// ItemAtRow maps a row inside the popup (0 is the top border) to an item index.
func (p *SuggestionPopup) ItemAtRow(row int) (int, bool) {
	start, end := p.Window()
	idx := start + row - 1
	if row < 1 || idx >= end {
		return 0, false
	}
	return idx, true
}

// Height returns the rendered height including borders, or 0 when hidden.
func (p *SuggestionPopup) Height() int {
	if !p.Visible() {
		return 0
	}
	start, end := p.Window()
	return end - start + 2
}

// View renders the popup.
func (p *SuggestionPopup) View() string {
	if !p.Visible() {
		return ""
	}

	start, end := p.Window()
	inner := p.width - 4 // border + padding
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, p.renderItem(p.items[i], i == p.selected, inner))
	}

	return p.theme.Popup.
		Width(p.width - 2).
		Render(strings.Join(rows, "\n"))
}

func (p *SuggestionPopup) renderItem(sc shortcut.Shortcut, selected bool, width int) string {
	tag := sc.Category.String()
	nameWidth := width - 2 - len(tag) - 1
	if nameWidth < 4 {
		nameWidth = width - 2
		tag = ""
	}

	indicator := "  "
	nameStyle := p.theme.PopupItem
	if selected {
		indicator = "> "
		nameStyle = p.theme.PopupSelected
	}

	name := nameStyle.Render(util.PadRight(sc.Name, nameWidth))
	if tag == "" {
		return indicator + name
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		indicator,
		name,
		" ",
		p.theme.PopupCategory.Render(tag),
	)
}
