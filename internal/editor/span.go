// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"fmt"
	"strings"

	"github.com/jeranaias/gdinject/internal/shortcut"
)

// Span maps an inserted display token back to its encoded reference.
// Start and End are rune offsets into the buffer, End exclusive.
type Span struct {
	ID        string
	Display   string
	Reference string
	Start     int
	End       int
	Category  shortcut.Category
}

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Substitution selects how RenderFinalText locates span text.
type Substitution int

const (
	// ByOffset replaces each live span at its tracked offsets.
	ByOffset Substitution = iota
	// ByText replaces the first remaining literal occurrence of each span's
	// display text, newest span first.
	ByText
)

func (m Substitution) String() string {
	switch m {
	case ByOffset:
		return "offset"
	case ByText:
		return "text"
	default:
		return fmt.Sprintf("substitution(%d)", int(m))
	}
}

// ParseSubstitution parses "offset" or "text".
func ParseSubstitution(s string) (Substitution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "offset":
		return ByOffset, nil
	case "text":
		return ByText, nil
	}
	return ByOffset, fmt.Errorf("unknown substitution mode %q (want offset or text)", s)
}

// shiftForInsert adjusts spans for n runes inserted at pos.
// Spans that the insertion lands inside are dropped.
func shiftForInsert(spans []Span, pos, n int) []Span {
	out := spans[:0]
	for _, s := range spans {
		switch {
		case pos <= s.Start:
			s.Start += n
			s.End += n
		case pos >= s.End:
		default:
			continue
		}
		out = append(out, s)
	}
	return out
}

// shiftForDelete adjusts spans for the runes in [from, to) being removed.
// Spans overlapping the removed range are dropped.
func shiftForDelete(spans []Span, from, to int) []Span {
	n := to - from
	out := spans[:0]
	for _, s := range spans {
		switch {
		case to <= s.Start:
			s.Start -= n
			s.End -= n
		case from >= s.End:
		default:
			continue
		}
		out = append(out, s)
	}
	return out
}
