// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package injector

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/gdinject/internal/app"
	"github.com/jeranaias/gdinject/internal/editor"
	"github.com/jeranaias/gdinject/internal/shortcut"
	"github.com/jeranaias/gdinject/internal/ui/components"
)

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case hideSuggestionsMsg:
		if m.ed.HideAfter(msg.Token) {
			m.syncPopup()
		}
		return m, nil

	case StateChangedMsg:
		return m, tea.Batch(m.handleStateChanged(), m.waitForChange())

	case clearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.status.Clear()
		}
		return m, nil
	}

	// Cursor blink and similar messages for the open form.
	if m.form.Visible() {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress routes a key to the open overlay, the global bindings, or the
// focused pane, in that order.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, m.quit()
	}

	if m.helpView.Visible() {
		switch msg.String() {
		case "esc", "q", "f1", "enter":
			m.helpView.Hide()
		}
		return m, nil
	}

	if m.dialog != dialogNone {
		return m, m.handleDialogKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Copy):
		return m, m.copySnippet()
	case key.Matches(msg, m.keys.AddPID):
		return m, m.openPIDForm()
	case key.Matches(msg, m.keys.NextPID):
		return m, m.cyclePID(1)
	case key.Matches(msg, m.keys.PrevPID):
		return m, m.cyclePID(-1)
	case key.Matches(msg, m.keys.Help):
		m.helpView.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.ed.Reset()
		m.syncPopup()
		m.scrollEditor()
		return m, nil
	}

	if m.focus == focusEditor {
		return m, m.handleEditorKey(msg)
	}
	return m, m.handlePanelKey(msg)
}

// =============================================================================
// EDITOR
// =============================================================================

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	suggesting := m.ed.State() == editor.Suggesting

	switch {
	case suggesting && key.Matches(msg, m.keys.Accept):
		m.ed.Accept()
	case key.Matches(msg, m.keys.NextFocus):
		cmd = m.setFocus(focusMetrics)
	case key.Matches(msg, m.keys.PrevFocus):
		cmd = m.setFocus(focusDates)
	case key.Matches(msg, m.keys.Dismiss):
		m.ed.Dismiss()
	case key.Matches(msg, m.keys.Up):
		m.ed.Up()
	case key.Matches(msg, m.keys.Down):
		m.ed.Down()
	case key.Matches(msg, m.keys.WordBack):
		m.ed.DeleteWordBackward()
	case key.Matches(msg, m.keys.LineStart):
		m.ed.LineStart()
	case key.Matches(msg, m.keys.LineEnd):
		m.ed.LineEnd()
	default:
		switch msg.Type {
		case tea.KeyEnter:
			m.ed.InsertText("\n")
		case tea.KeyBackspace:
			m.ed.Backspace()
		case tea.KeyDelete:
			m.ed.DeleteForward()
		case tea.KeyLeft:
			m.ed.MoveLeft()
		case tea.KeyRight:
			m.ed.MoveRight()
		case tea.KeySpace:
			m.ed.InsertText(" ")
		case tea.KeyRunes:
			if !msg.Alt {
				m.ed.InsertText(string(msg.Runes))
			}
		}
	}

	m.syncPopup()
	m.scrollEditor()
	return cmd
}

// scrollEditor keeps the caret inside the visible part of the editor.
func (m *Model) scrollEditor() {
	if m.height == 0 {
		return
	}
	rows, cols := m.editorInner()
	line, col := m.ed.Position(m.ed.Caret())
	if line < m.scrollY {
		m.scrollY = line
	}
	if line >= m.scrollY+rows {
		m.scrollY = line - rows + 1
	}

	runes := lineRunes(m.ed.Text(), line)
	x := columnAt(runes, col)
	if x < m.scrollX {
		m.scrollX = x
	}
	// One extra column for the caret cell.
	if x >= m.scrollX+cols {
		m.scrollX = x - cols + 1
	}
}

// =============================================================================
// PANELS
// =============================================================================

func (m *Model) handlePanelKey(msg tea.KeyMsg) tea.Cmd {
	p := m.panel()

	switch {
	case key.Matches(msg, m.keys.NextFocus):
		return m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.PrevFocus):
		return m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Back):
		return m.setFocus(focusEditor)
	case key.Matches(msg, m.keys.PanelUp):
		p.MoveCursor(-1)
	case key.Matches(msg, m.keys.PanelDown):
		p.MoveCursor(1)
	case key.Matches(msg, m.keys.CopyRef):
		if sc, ok := p.Selected(); ok {
			return m.copyReference(sc.ID)
		}
	case key.Matches(msg, m.keys.Add):
		return m.openShortcutForm(p.Category(), nil)
	case key.Matches(msg, m.keys.Edit):
		if sc, ok := p.Selected(); ok {
			return m.openShortcutForm(sc.Category, &sc)
		}
	case key.Matches(msg, m.keys.Delete):
		if sc, ok := p.Selected(); ok {
			m.dialog = dialogDelete
			m.dialogTarget = sc.ID
			m.confirm.Show("Confirm Delete", fmt.Sprintf("Are you sure you want to delete '%s'?", sc.Name))
		}
	}
	return nil
}

// =============================================================================
// DIALOGS
// =============================================================================

func (m *Model) openShortcutForm(category shortcut.Category, existing *shortcut.Shortcut) tea.Cmd {
	if existing == nil && m.app.CurrentPID() == "" {
		return m.setError(app.ErrNoPID)
	}

	blur := m.leaveEditor()
	m.form = components.NewForm(m.theme, "", "Name", "ID")
	m.form.SetWidth(min(60, max(m.width-4, 24)))
	m.dialogCategory = category

	var show tea.Cmd
	if existing == nil {
		m.dialog = dialogAddShortcut
		m.dialogTarget = ""
		m.form.SetTitle("Add " + categorySingular(category))
		m.form.SetPlaceholder(1, "object id, e.g. 12345")
		show = m.form.Show()
	} else {
		m.dialog = dialogEditShortcut
		m.dialogTarget = existing.ID
		m.form.SetTitle("Edit " + categorySingular(category))
		show = m.form.Show(existing.Name, existing.ObjectID)
	}
	return tea.Batch(blur, show)
}

func (m *Model) openPIDForm() tea.Cmd {
	blur := m.leaveEditor()
	m.form = components.NewForm(m.theme, "Add New PID", "PID")
	m.form.SetWidth(min(60, max(m.width-4, 24)))
	m.dialog = dialogAddPID
	return tea.Batch(blur, m.form.Show())
}

// leaveEditor starts the delayed hide when a dialog takes over from the editor.
func (m *Model) leaveEditor() tea.Cmd {
	if m.focus != focusEditor {
		return nil
	}
	return m.blurEditor()
}

func (m *Model) closeDialog() {
	m.dialog = dialogNone
	m.dialogTarget = ""
	m.form.Hide()
	m.confirm.Hide()
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	if m.dialog == dialogDelete {
		switch m.confirm.Update(msg) {
		case components.ConfirmYes:
			id := m.dialogTarget
			m.closeDialog()
			return m.deleteShortcut(id)
		case components.ConfirmNo:
			m.closeDialog()
		}
		return nil
	}

	res, cmd := m.form.Update(msg)
	switch res {
	case components.FormCancelled:
		m.closeDialog()
		return nil
	case components.FormSubmitted:
		return m.submitForm()
	}
	return cmd
}

func (m *Model) submitForm() tea.Cmd {
	values := m.form.Values()

	switch m.dialog {
	case dialogAddPID:
		err := m.app.AddPID(values[0])
		if errors.Is(err, app.ErrEmptyPID) {
			m.form.SetError(err.Error())
			return nil
		}
		m.closeDialog()
		if err != nil {
			return m.setError(err)
		}
		return m.setStatus("PID "+m.app.CurrentPID()+" selected", components.StatusSuccess)

	case dialogAddShortcut, dialogEditShortcut:
		var (
			sc  shortcut.Shortcut
			err error
		)
		if m.dialog == dialogAddShortcut {
			sc, err = m.app.CreateShortcut(m.dialogCategory, values[0], values[1])
		} else {
			sc, err = m.app.EditShortcut(m.dialogTarget, values[0], values[1])
		}

		var verr *shortcut.ValidationError
		if errors.As(err, &verr) {
			m.form.SetError(verr.Error())
			return nil
		}
		added := m.dialog == dialogAddShortcut
		m.closeDialog()
		m.refreshPanels()
		if sc.ID != "" {
			m.selectShortcut(sc)
		}
		if err != nil {
			return m.setError(err)
		}
		if added {
			return m.setStatus(fmt.Sprintf("Added %q", sc.Name), components.StatusSuccess)
		}
		return m.setStatus(fmt.Sprintf("Updated %q", sc.Name), components.StatusSuccess)
	}

	m.closeDialog()
	return nil
}

func (m *Model) deleteShortcut(id string) tea.Cmd {
	sc, err := m.app.DeleteShortcut(id)
	m.refreshPanels()
	if err != nil {
		return m.setError(err)
	}
	return m.setStatus(fmt.Sprintf("Deleted %q", sc.Name), components.StatusInfo)
}

// selectShortcut moves the cursor of sc's panel onto it.
func (m *Model) selectShortcut(sc shortcut.Shortcut) {
	for _, p := range m.panels {
		if p.Category() != sc.Category {
			continue
		}
		for i, item := range m.app.Store().ByCategory(sc.Category) {
			if item.ID == sc.ID {
				p.SetCursor(i)
				return
			}
		}
	}
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m *Model) copySnippet() tea.Cmd {
	if _, err := m.app.CopySnippet(m.ctx); err != nil {
		return m.setError(err)
	}
	return m.setStatus(app.StatusCodeCopied, components.StatusSuccess)
}

func (m *Model) copyReference(id string) tea.Cmd {
	sc, _, err := m.app.CopyReference(m.ctx, id)
	if err != nil {
		return m.setError(err)
	}
	return m.setStatus(app.CopiedStatus(sc.Name), components.StatusSuccess)
}

func (m *Model) cyclePID(delta int) tea.Cmd {
	pid, err := m.app.CyclePID(delta)
	if err != nil {
		return m.setError(err)
	}
	return m.setStatus("PID "+pid+" selected", components.StatusInfo)
}

func (m *Model) handleStateChanged() tea.Cmd {
	changed, err := m.app.ReloadState()
	if err != nil {
		return m.setError(err)
	}
	if !changed {
		return nil
	}
	m.ed.Dismiss()
	m.syncPopup()
	m.refreshPanels()
	return m.setStatus("Reloaded shortcuts changed on disk", components.StatusInfo)
}

// =============================================================================
// MOUSE
// =============================================================================

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Type != tea.MouseLeft || m.dialog != dialogNone || m.helpView.Visible() {
		return nil
	}
	l := m.layout()

	// The popup floats above everything else.
	if m.popup.Visible() {
		x, y := m.popupOrigin(l)
		if msg.X >= x && msg.X < x+m.popup.Width() && msg.Y >= y && msg.Y < y+m.popup.Height() {
			if idx, ok := m.popup.ItemAtRow(msg.Y - y); ok && m.ed.Select(idx) {
				m.ed.Accept()
				m.syncPopup()
				m.scrollEditor()
				return m.setFocus(focusEditor)
			}
			return nil
		}
	}

	switch {
	case msg.Y >= l.panelY && msg.Y < l.panelY+l.panelH:
		x := 0
		for i, w := range l.panelW {
			if msg.X >= x && msg.X < x+w {
				cmd := m.setFocus(focusMetrics + focus(i))
				p := m.panels[i]
				if idx, ok := p.ItemAtRow(msg.Y - l.panelY); ok {
					p.SetCursor(idx)
					if sc, ok := p.Selected(); ok {
						return tea.Batch(cmd, m.copyReference(sc.ID))
					}
				}
				return cmd
			}
			x += w
		}

	case msg.Y >= l.editorY && msg.Y < l.editorY+l.editorH:
		cmd := m.setFocus(focusEditor)
		line := m.scrollY + msg.Y - l.editorY - 1
		col := m.scrollX + msg.X - editorPadLeft
		m.ed.SetCaret(m.offsetAt(line, col))
		m.ed.Dismiss()
		m.syncPopup()
		m.scrollEditor()
		return cmd
	}
	return nil
}

// offsetAt converts a line and display column to a buffer offset, clamped to
// the text.
func (m *Model) offsetAt(line, col int) int {
	lines := splitLines(m.ed.Text())
	if line < 0 {
		return 0
	}
	if line >= len(lines) {
		return m.ed.Len()
	}
	offset := 0
	for i := 0; i < line; i++ {
		offset += len(lines[i]) + 1
	}
	return offset + runeIndexAt(lines[line], col)
}

func categorySingular(c shortcut.Category) string {
	switch c {
	case shortcut.Metric:
		return "Metric"
	case shortcut.Attribute:
		return "Attribute"
	default:
		return "Date"
	}
}
