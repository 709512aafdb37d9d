// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/gdinject/internal/shortcut"
	"github.com/jeranaias/gdinject/internal/ui/styles"
	"github.com/jeranaias/gdinject/internal/util"
)

// =============================================================================
// SHORTCUT PANEL COMPONENT
// =============================================================================

// ShortcutPanel lists the shortcuts of one category.
type ShortcutPanel struct {
	category shortcut.Category
	items    []shortcut.Shortcut
	cursor   int
	offset   int
	focused  bool
	width    int
	height   int
	theme    *styles.Theme
}

// NewShortcutPanel creates an empty panel for category.
func NewShortcutPanel(category shortcut.Category, theme *styles.Theme) *ShortcutPanel {
	return &ShortcutPanel{
		category: category,
		width:    30,
		height:   10,
		theme:    theme,
	}
}

// Category returns the category the panel shows.
func (p *ShortcutPanel) Category() shortcut.Category {
	return p.category
}

// SetItems replaces the listed shortcuts, keeping the cursor on the same
// shortcut when it still exists.
func (p *ShortcutPanel) SetItems(items []shortcut.Shortcut) {
	var currentID string
	if sc, ok := p.Selected(); ok {
		currentID = sc.ID
	}
	p.items = items
	p.cursor = clampIndex(p.cursor, len(items))
	for i, sc := range items {
		if sc.ID == currentID {
			p.cursor = i
			break
		}
	}
	p.scroll()
}

// Len returns the number of listed shortcuts.
func (p *ShortcutPanel) Len() int {
	return len(p.items)
}

// Selected returns the shortcut under the cursor.
func (p *ShortcutPanel) Selected() (shortcut.Shortcut, bool) {
	if p.cursor < 0 || p.cursor >= len(p.items) {
		return shortcut.Shortcut{}, false
	}
	return p.items[p.cursor], true
}

// Cursor returns the cursor index.
func (p *ShortcutPanel) Cursor() int {
	return p.cursor
}

// MoveCursor moves the cursor by delta, clamped to the list.
func (p *ShortcutPanel) MoveCursor(delta int) {
	p.cursor = clampIndex(p.cursor+delta, len(p.items))
	p.scroll()
}

// SetCursor moves the cursor to index i, clamped to the list.
func (p *ShortcutPanel) SetCursor(i int) {
	p.cursor = clampIndex(i, len(p.items))
	p.scroll()
}

// ItemAtRow maps a row inside the panel (0 is the top border, 1 the title) to
// an item index.
func (p *ShortcutPanel) ItemAtRow(row int) (int, bool) {
	if row < 2 || row-2 >= p.rows() {
		return 0, false
	}
	idx := p.offset + row - 2
	if idx >= len(p.items) {
		return 0, false
	}
	return idx, true
}

// SetFocused marks the panel as the keyboard target.
func (p *ShortcutPanel) SetFocused(focused bool) {
	p.focused = focused
}

// Focused reports whether the panel has focus.
func (p *ShortcutPanel) Focused() bool {
	return p.focused
}

// SetSize sets the outer size of the panel.
func (p *ShortcutPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.scroll()
}

func (p *ShortcutPanel) rows() int {
	// border (2) + title line
	if n := p.height - 3; n > 0 {
		return n
	}
	return 1
}

func (p *ShortcutPanel) scroll() {
	rows := p.rows()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+rows {
		p.offset = p.cursor - rows + 1
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

// View renders the panel.
func (p *ShortcutPanel) View() string {
	inner := p.width - 4
	if inner < 4 {
		inner = 4
	}

	title := p.theme.PanelTitle.Render(util.TruncateWidth(fmt.Sprintf("%s (%d)", p.category.Title(), len(p.items)), inner))
	lines := []string{title}

	if len(p.items) == 0 {
		lines = append(lines, p.theme.PanelEmpty.Render(util.TruncateWidth("empty, press a to add", inner)))
	}
	end := p.offset + p.rows()
	if end > len(p.items) {
		end = len(p.items)
	}
	for i := p.offset; i < end; i++ {
		text := util.PadRight(p.items[i].Name, inner)
		if i == p.cursor && p.focused {
			lines = append(lines, p.theme.PanelCursor.Render(text))
		} else {
			lines = append(lines, p.theme.PanelItem.Render(text))
		}
	}

	box := p.theme.Panel
	if p.focused {
		box = p.theme.PanelFocused
	}
	return box.
		Width(p.width - 2).
		Height(p.height - 2).
		Render(strings.Join(lines, "\n"))
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
