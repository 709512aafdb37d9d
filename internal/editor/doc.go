// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor implements the inline reference editor.
//
// The editor owns one text buffer and a caret. While the analyst types, the word
// ending at the caret is matched against the shortcut collection; when there are
// matches the editor is Suggesting and exposes an Overlay (ordered items plus a
// highlighted index) for the presentation layer to draw. Accepting a suggestion
// replaces the typed word with the shortcut's display name and records a Span
// that maps that text back to its encoded reference. RenderFinalText swaps every
// live span for its encoded reference without touching the buffer.
//
// The editor knows nothing about terminals or key codes. The TUI translates key
// presses into calls such as InsertText, Backspace, MoveHighlight and Accept.
//
// # States
//
//   - Idle: no suggestion list
//   - Suggesting: list visible, one item highlighted
//
// # Spans and edits
//
// Spans track rune offsets. Edits before a span shift it; an edit that touches
// the inside of a span, or removes part of it, drops the span and leaves the
// text as plain typed text. With ByText substitution the export instead replaces
// the first remaining literal occurrence of each span's display text, newest
// span first.
//
// # Usage
//
//	ed := editor.New(store, func() string { return pid })
//	ed.InsertText("sum of Rev")
//	if ed.State() == editor.Suggesting {
//	    ed.MoveHighlight(1)
//	    ed.Accept()
//	}
//	out := ed.RenderFinalText()
package editor
