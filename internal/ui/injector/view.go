// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package injector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/gdinject/internal/shortcut"
	"github.com/jeranaias/gdinject/internal/util"
)

// editorPadLeft is the screen column of the first text cell: border and padding.
const editorPadLeft = 2

const placeholder = "Type code here. Names of saved shortcuts are suggested after two letters."

// =============================================================================
// LAYOUT
// =============================================================================

type layout struct {
	panelY  int
	panelH  int
	panelW  [3]int
	editorY int
	editorH int
	statusY int
}

// layout splits the screen: header, panel row, editor, status bar.
func (m *Model) layout() layout {
	panelH := (m.height - 2) / 3
	panelH = max(5, min(panelH, 12))

	editorH := max(m.height-2-panelH, 3)

	w := m.width / 3
	return layout{
		panelY:  1,
		panelH:  panelH,
		panelW:  [3]int{w, w, m.width - 2*w},
		editorY: 1 + panelH,
		editorH: editorH,
		statusY: 1 + panelH + editorH,
	}
}

// editorInner returns the text area of the editor in rows and columns.
func (m *Model) editorInner() (rows, cols int) {
	l := m.layout()
	return max(l.editorH-2, 1), max(m.width-4, 1)
}

// popupOrigin places the suggestion list under the word being completed, or
// above it when there is no room below.
func (m *Model) popupOrigin(l layout) (x, y int) {
	o := m.ed.Overlay()
	line, col := m.ed.Position(o.Anchor)
	runes := lineRunes(m.ed.Text(), line)

	x = editorPadLeft + columnAt(runes, col) - m.scrollX
	row := l.editorY + 1 + line - m.scrollY
	y = row + 1
	if h := m.popup.Height(); y+h > l.statusY && row-h >= 0 {
		y = row - h
	}

	if x+m.popup.Width() > m.width {
		x = m.width - m.popup.Width()
	}
	return max(x, 0), y
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the screen.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	panels := make([]string, len(m.panels))
	for i, p := range m.panels {
		panels[i] = p.View()
	}

	screen := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, panels...),
		m.renderEditor(l),
		m.status.View(),
	)
	lines := strings.Split(screen, "\n")

	if m.popup.Visible() {
		x, y := m.popupOrigin(l)
		overlayAt(lines, strings.Split(m.popup.View(), "\n"), x, y)
	}

	switch {
	case m.helpView.Visible():
		overlayCenter(lines, m.helpView.View(), m.width)
	case m.dialog == dialogDelete:
		overlayCenter(lines, m.confirm.View(), m.width)
	case m.dialog != dialogNone:
		overlayCenter(lines, m.form.View(), m.width)
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("GoodData Injector")

	var pid string
	if cur := m.app.CurrentPID(); cur != "" {
		pid = m.theme.PIDLabel.Render("PID ") + m.theme.PIDValue.Render(cur)
		if n := len(m.app.PIDs()); n > 1 {
			pid += m.theme.PIDLabel.Render(fmt.Sprintf("  (%d saved, C-n/C-b to switch)", n))
		}
	} else {
		pid = m.theme.PIDMissing.Render("No PID, press C-p to add one")
	}

	inner := max(m.width-2, 1)
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(pid), 1)
	line := title + strings.Repeat(" ", gap) + pid
	if lipgloss.Width(line) > inner {
		line = ansi.Truncate(line, inner, "")
	}
	return m.theme.Header.Width(m.width).Render(line)
}

// =============================================================================
// EDITOR RENDERING
// =============================================================================

type cellStyle int

const (
	cellText cellStyle = iota
	cellMetric
	cellOther
	cellCaret
)

func (m *Model) renderEditor(l layout) string {
	rows, cols := m.editorInner()
	focused := m.focus == focusEditor && m.dialog == dialogNone

	box := m.theme.Editor
	if focused {
		box = m.theme.EditorFocused
	}
	box = box.Width(m.width - 2).Height(l.editorH - 2)

	if m.ed.Len() == 0 {
		body := m.theme.Placeholder.Render(util.TruncateWidth(placeholder, cols))
		if focused {
			body = m.theme.Caret.Render(" ") + m.theme.Placeholder.Render(util.TruncateWidth(placeholder, cols-1))
		}
		return box.Render(body)
	}

	kinds := make([]cellStyle, m.ed.Len())
	for _, s := range m.ed.Spans() {
		kind := cellOther
		if s.Category == shortcut.Metric {
			kind = cellMetric
		}
		for i := s.Start; i < s.End && i < len(kinds); i++ {
			kinds[i] = kind
		}
	}

	caret := -1
	if focused {
		caret = m.ed.Caret()
	}

	lines := splitLines(m.ed.Text())
	offset := 0
	var out []string
	for i, line := range lines {
		if i >= m.scrollY && i < m.scrollY+rows {
			out = append(out, m.renderLine(line, offset, kinds, caret, cols))
		}
		offset += len(line) + 1
	}
	return box.Render(strings.Join(out, "\n"))
}

// renderLine draws one buffer line starting at buffer offset start, clipped
// horizontally to the scroll position.
func (m *Model) renderLine(line []rune, start int, kinds []cellStyle, caret, cols int) string {
	styles := [...]lipgloss.Style{
		cellText:   m.theme.EditorText,
		cellMetric: m.theme.MetricToken,
		cellOther:  m.theme.OtherToken,
		cellCaret:  m.theme.Caret,
	}

	var (
		b       strings.Builder
		run     strings.Builder
		runKind = cellText
		col     int
		used    int
	)
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(styles[runKind].Render(run.String()))
			run.Reset()
		}
	}

	for i, r := range line {
		w := util.RuneWidth(r)
		if col < m.scrollX {
			col += w
			continue
		}
		if used+w > cols {
			break
		}
		kind := kinds[start+i]
		if start+i == caret {
			kind = cellCaret
		}
		if kind != runKind {
			flush()
			runKind = kind
		}
		if r == '\t' {
			r = ' '
		}
		run.WriteRune(r)
		col += w
		used += w
	}
	flush()

	if caret == start+len(line) && used < cols {
		b.WriteString(styles[cellCaret].Render(" "))
	}
	return b.String()
}

// =============================================================================
// TEXT HELPERS
// =============================================================================

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	out := make([][]rune, len(parts))
	for i, p := range parts {
		out[i] = []rune(p)
	}
	return out
}

func lineRunes(text string, line int) []rune {
	lines := splitLines(text)
	if line < 0 || line >= len(lines) {
		return nil
	}
	return lines[line]
}

// columnAt returns the display column of rune index col in line.
func columnAt(line []rune, col int) int {
	col = max(0, min(col, len(line)))
	return util.ColumnOf(line[:col])
}

// runeIndexAt returns the rune index whose cell covers display column x.
func runeIndexAt(line []rune, x int) int {
	col := 0
	for i, r := range line {
		w := util.RuneWidth(r)
		if x < col+w {
			return i
		}
		col += w
	}
	return len(line)
}

// =============================================================================
// OVERLAYS
// =============================================================================

// overlayAt draws fg over bg with its top-left corner at x, y. Lines of bg are
// cut by display width so styled text on either side survives.
func overlayAt(bg []string, fg []string, x, y int) {
	if x < 0 {
		x = 0
	}
	for i, fgLine := range fg {
		row := y + i
		if row < 0 || row >= len(bg) {
			continue
		}
		w := ansi.StringWidth(fgLine)
		bgLine := bg[row]
		bgW := ansi.StringWidth(bgLine)

		left := ansi.Cut(bgLine, 0, x)
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if x+w < bgW {
			right = ansi.Cut(bgLine, x+w, bgW)
		}
		bg[row] = left + fgLine + right
	}
}

// overlayCenter draws fg in the middle of bg.
func overlayCenter(bg []string, fg string, width int) {
	if fg == "" {
		return
	}
	lines := strings.Split(fg, "\n")
	w := lipgloss.Width(fg)
	x := max((width-w)/2, 0)
	y := max((len(bg)-len(lines))/2, 0)
	overlayAt(bg, lines, x, y)
}
