// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/jeranaias/gdinject/internal/reference"
	"github.com/jeranaias/gdinject/internal/shortcut"
	"github.com/jeranaias/gdinject/internal/suggest"
)

// State is the suggestion state of the editor.
type State int

const (
	Idle State = iota
	Suggesting
)

func (s State) String() string {
	if s == Suggesting {
		return "suggesting"
	}
	return "idle"
}

// Source supplies the shortcut collection the editor suggests from.
// *shortcut.Store satisfies it.
type Source interface {
	All() []shortcut.Shortcut
}

// Overlay describes the floating suggestion list. Anchor is the buffer offset of
// the word being completed; where to draw it is up to the caller.
type Overlay struct {
	Visible    bool
	Anchor     int
	Items      []shortcut.Shortcut
	Highlight  int
	Generation uint64
}

// =============================================================================
// EDITOR
// =============================================================================

// Editor is the inline reference editor. It is not safe for concurrent use; all
// calls are expected to come from one event loop.
type Editor struct {
	buf   []rune
	caret int
	spans []Span

	state     State
	items     []shortcut.Shortcut
	highlight int
	anchor    int
	gen       uint64

	source Source
	pid    func() string
	mode   Substitution
}

// New creates an empty editor. pid is consulted at accept time to build the
// encoded reference.
func New(source Source, pid func() string) *Editor {
	if pid == nil {
		pid = func() string { return "" }
	}
	return &Editor{source: source, pid: pid}
}

// SetSubstitution selects how RenderFinalText substitutes spans.
func (e *Editor) SetSubstitution(mode Substitution) {
	e.mode = mode
}

// Substitution returns the active substitution mode.
func (e *Editor) Substitution() Substitution {
	return e.mode
}

// Text returns the visible buffer contents.
func (e *Editor) Text() string {
	return string(e.buf)
}

// Len returns the buffer length in runes.
func (e *Editor) Len() int {
	return len(e.buf)
}

// Caret returns the caret offset in runes.
func (e *Editor) Caret() int {
	return e.caret
}

// State returns the current suggestion state.
func (e *Editor) State() State {
	return e.state
}

// Spans returns the live spans in creation order.
func (e *Editor) Spans() []Span {
	out := make([]Span, len(e.spans))
	copy(out, e.spans)
	return out
}

// Overlay returns what the suggestion list should show.
func (e *Editor) Overlay() Overlay {
	if e.state != Suggesting {
		return Overlay{Generation: e.gen}
	}
	items := make([]shortcut.Shortcut, len(e.items))
	copy(items, e.items)
	return Overlay{
		Visible:    true,
		Anchor:     e.anchor,
		Items:      items,
		Highlight:  e.highlight,
		Generation: e.gen,
	}
}

// SetText replaces the whole buffer, drops all spans and parks the caret at the end.
func (e *Editor) SetText(text string) {
	e.buf = []rune(normalizeNewlines(text))
	e.caret = len(e.buf)
	e.spans = nil
	e.hide()
}

// Reset clears the buffer and all spans.
func (e *Editor) Reset() {
	e.SetText("")
}

// SetCaret moves the caret without recomputing suggestions.
func (e *Editor) SetCaret(offset int) {
	e.caret = clamp(offset, 0, len(e.buf))
}

// =============================================================================
// EDITING
// =============================================================================

// InsertText inserts text at the caret and refreshes suggestions.
func (e *Editor) InsertText(text string) {
	runes := []rune(normalizeNewlines(text))
	if len(runes) == 0 {
		return
	}
	e.insertAt(e.caret, runes)
	e.caret += len(runes)
	e.refresh()
}

// Backspace deletes the rune before the caret.
func (e *Editor) Backspace() {
	if e.caret == 0 {
		return
	}
	e.deleteRange(e.caret-1, e.caret)
	e.caret--
	e.refresh()
}

// DeleteForward deletes the rune after the caret.
func (e *Editor) DeleteForward() {
	if e.caret >= len(e.buf) {
		return
	}
	e.deleteRange(e.caret, e.caret+1)
	e.refresh()
}

// DeleteWordBackward deletes back to the start of the current word, or the
// whitespace run before the caret when the caret follows whitespace.
func (e *Editor) DeleteWordBackward() {
	if e.caret == 0 {
		return
	}
	start := e.caret
	for start > 0 && unicode.IsSpace(e.buf[start-1]) {
		start--
	}
	for start > 0 && !unicode.IsSpace(e.buf[start-1]) {
		start--
	}
	e.deleteRange(start, e.caret)
	e.caret = start
	e.refresh()
}

// =============================================================================
// CARET MOVEMENT
// =============================================================================

// MoveLeft moves the caret one rune left.
func (e *Editor) MoveLeft() {
	if e.caret > 0 {
		e.caret--
	}
	e.refresh()
}

// MoveRight moves the caret one rune right.
func (e *Editor) MoveRight() {
	if e.caret < len(e.buf) {
		e.caret++
	}
	e.refresh()
}

// LineStart moves the caret to the start of its line.
func (e *Editor) LineStart() {
	e.caret = e.lineStart(e.caret)
	e.refresh()
}

// LineEnd moves the caret to the end of its line.
func (e *Editor) LineEnd() {
	e.caret = e.lineEnd(e.caret)
	e.refresh()
}

// Up moves the highlight up while suggesting, otherwise the caret up a line.
func (e *Editor) Up() {
	if e.MoveHighlight(-1) {
		return
	}
	e.moveVertical(-1)
}

// Down moves the highlight down while suggesting, otherwise the caret down a line.
func (e *Editor) Down() {
	if e.MoveHighlight(1) {
		return
	}
	e.moveVertical(1)
}

func (e *Editor) moveVertical(dir int) {
	line, col := e.Position(e.caret)
	target := line + dir
	if target < 0 {
		e.caret = 0
		return
	}
	start := 0
	for i := 0; i < target; i++ {
		next := indexRune(e.buf, '\n', start)
		if next < 0 {
			e.caret = len(e.buf)
			return
		}
		start = next + 1
	}
	end := e.lineEnd(start)
	e.caret = start + min(col, end-start)
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// MoveHighlight moves the highlighted suggestion by delta, clamped to the list.
// It reports whether the editor was suggesting.
func (e *Editor) MoveHighlight(delta int) bool {
	if e.state != Suggesting {
		return false
	}
	e.highlight = clamp(e.highlight+delta, 0, len(e.items)-1)
	return true
}

// Select highlights the suggestion at index, as a click on the list would.
func (e *Editor) Select(index int) bool {
	if e.state != Suggesting || index < 0 || index >= len(e.items) {
		return false
	}
	e.highlight = index
	return true
}

// Accept replaces the current word with the highlighted shortcut and records a
// span for it. It reports false when there is nothing to accept.
func (e *Editor) Accept() (Span, bool) {
	if e.state != Suggesting || len(e.items) == 0 {
		return Span{}, false
	}
	chosen := e.items[e.highlight]
	word := []rune(e.CurrentWord())
	start := e.caret - len(word)

	e.deleteRange(start, e.caret)
	name := []rune(chosen.Name)
	e.insertAt(start, name)
	e.caret = start + len(name)

	span := Span{
		ID:        uuid.NewString(),
		Display:   chosen.Name,
		Reference: reference.Encode(e.pid(), chosen.ObjectID),
		Start:     start,
		End:       start + len(name),
		Category:  chosen.Category,
	}
	e.spans = append(e.spans, span)
	e.hide()
	return span, true
}

// Dismiss hides the suggestion list without accepting anything.
func (e *Editor) Dismiss() {
	e.hide()
}

// Blur is called when the editor loses focus. It returns a token for HideAfter;
// the caller is expected to call HideAfter(token) after a short delay.
func (e *Editor) Blur() uint64 {
	return e.gen
}

// HideAfter hides the list if nothing has been shown since token was issued.
// It reports whether the list was hidden.
func (e *Editor) HideAfter(token uint64) bool {
	if e.state != Suggesting || token != e.gen {
		return false
	}
	e.hide()
	return true
}

// CurrentWord returns the non-whitespace run that ends at the caret.
func (e *Editor) CurrentWord() string {
	start := e.caret
	for start > 0 && !unicode.IsSpace(e.buf[start-1]) {
		start--
	}
	return string(e.buf[start:e.caret])
}

func (e *Editor) refresh() {
	word := e.CurrentWord()
	var items []shortcut.Shortcut
	if e.source != nil {
		items = suggest.Match(word, e.source.All())
	}
	if len(items) == 0 {
		e.hide()
		return
	}

	if e.state != Suggesting {
		e.highlight = 0
	}
	e.state = Suggesting
	e.items = items
	e.highlight = clamp(e.highlight, 0, len(items)-1)
	e.anchor = e.caret - len([]rune(word))
	e.gen++
}

func (e *Editor) hide() {
	e.state = Idle
	e.items = nil
	e.highlight = 0
}

// =============================================================================
// EXPORT
// =============================================================================

// RenderFinalText returns the buffer with every live span replaced by its
// encoded reference. The buffer itself is left unchanged.
func (e *Editor) RenderFinalText() string {
	if len(e.spans) == 0 {
		return string(e.buf)
	}
	if e.mode == ByText {
		return e.renderByText()
	}
	return e.renderByOffset()
}

func (e *Editor) renderByOffset() string {
	spans := e.Spans()
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start > spans[j].Start })

	out := make([]rune, len(e.buf))
	copy(out, e.buf)
	for _, s := range spans {
		if s.End > len(out) || string(out[s.Start:s.End]) != s.Display {
			continue
		}
		tail := append([]rune(s.Reference), out[s.End:]...)
		out = append(out[:s.Start], tail...)
	}
	return string(out)
}

func (e *Editor) renderByText() string {
	text := string(e.buf)
	for i := len(e.spans) - 1; i >= 0; i-- {
		s := e.spans[i]
		text = strings.Replace(text, s.Display, s.Reference, 1)
	}
	return text
}

// =============================================================================
// BUFFER HELPERS
// =============================================================================

// Position converts a rune offset into a zero-based line and column.
func (e *Editor) Position(offset int) (line, col int) {
	offset = clamp(offset, 0, len(e.buf))
	start := 0
	for i := 0; i < offset; i++ {
		if e.buf[i] == '\n' {
			line++
			start = i + 1
		}
	}
	return line, offset - start
}

func (e *Editor) insertAt(pos int, runes []rune) {
	e.spans = shiftForInsert(e.spans, pos, len(runes))
	tail := append(append([]rune(nil), runes...), e.buf[pos:]...)
	e.buf = append(e.buf[:pos], tail...)
}

func (e *Editor) deleteRange(from, to int) {
	if from >= to {
		return
	}
	e.spans = shiftForDelete(e.spans, from, to)
	e.buf = append(e.buf[:from], e.buf[to:]...)
}

func (e *Editor) lineStart(offset int) int {
	for offset > 0 && e.buf[offset-1] != '\n' {
		offset--
	}
	return offset
}

func (e *Editor) lineEnd(offset int) int {
	for offset < len(e.buf) && e.buf[offset] != '\n' {
		offset++
	}
	return offset
}

func indexRune(buf []rune, r rune, from int) int {
	for i := from; i < len(buf); i++ {
		if buf[i] == r {
			return i
		}
	}
	return -1
}

func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
