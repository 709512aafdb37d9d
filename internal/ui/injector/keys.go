// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package injector

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the injector.
type KeyMap struct {
	// Global
	Copy      key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	AddPID    key.Binding
	NextPID   key.Binding
	PrevPID   key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding

	// Editor
	Accept    key.Binding
	Dismiss   key.Binding
	Up        key.Binding
	Down      key.Binding
	WordBack  key.Binding
	LineStart key.Binding
	LineEnd   key.Binding

	// Panels
	PanelUp   key.Binding
	PanelDown key.Binding
	CopyRef   key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Back      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy code"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next pane"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous pane"),
		),
		AddPID: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "add PID"),
		),
		NextPID: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "next PID"),
		),
		PrevPID: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "previous PID"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear code"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("C-q", "quit"),
		),

		Accept: key.NewBinding(
			key.WithKeys("tab", "enter"),
			key.WithHelp("Tab/Enter", "insert suggestion"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close suggestions"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "previous suggestion / line"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next suggestion / line"),
		),
		WordBack: key.NewBinding(
			key.WithKeys("ctrl+w", "alt+backspace"),
			key.WithHelp("C-w", "delete word"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("Home", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("End", "line end"),
		),

		PanelUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous shortcut"),
		),
		PanelDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next shortcut"),
		),
		CopyRef: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("Enter", "copy reference"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "+"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "i"),
			key.WithHelp("Esc/i", "back to code"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.NextFocus, k.Help, k.Quit}
}

// FullHelp returns the bindings grouped for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Copy, k.Clear, k.AddPID, k.NextPID, k.PrevPID},
		{k.Accept, k.Dismiss, k.Up, k.Down, k.WordBack},
		{k.PanelUp, k.PanelDown, k.CopyRef, k.Add, k.Edit, k.Delete, k.Back},
		{k.NextFocus, k.PrevFocus, k.Help, k.Quit},
	}
}

// panelHelp is the short help shown while a panel has focus.
type panelHelp struct{ k KeyMap }

func (h panelHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.CopyRef, h.k.Add, h.k.Edit, h.k.Delete, h.k.Back}
}

func (h panelHelp) FullHelp() [][]key.Binding {
	return h.k.FullHelp()
}
