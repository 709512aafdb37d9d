// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest matches a partially typed word against the shortcut collection.
package suggest

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/jeranaias/gdinject/internal/shortcut"
)

// MinPrefixLen is the shortest partial word that produces suggestions.
const MinPrefixLen = 2

// Match returns the shortcuts whose name starts with partial, ignoring case.
//
// Results keep the relative order of all. A partial word shorter than
// MinPrefixLen runes yields no suggestions.
func Match(partial string, all []shortcut.Shortcut) []shortcut.Shortcut {
	if utf8.RuneCountInString(partial) < MinPrefixLen {
		return nil
	}

	// A Caser carries transform state, so each call gets its own.
	fold := cases.Fold()
	want := fold.String(partial)

	var out []shortcut.Shortcut
	for _, s := range all {
		if strings.HasPrefix(fold.String(s.Name), want) {
			out = append(out, s)
		}
	}
	return out
}
