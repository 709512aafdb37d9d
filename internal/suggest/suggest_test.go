// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"strings"
	"testing"

	"github.com/jeranaias/gdinject/internal/shortcut"
)

func collection() []shortcut.Shortcut {
	return []shortcut.Shortcut{
		{Name: "Revenue", ObjectID: "1", Category: shortcut.Metric},
		{Name: "Cost", ObjectID: "2", Category: shortcut.Metric},
		{Name: "Reviewed", ObjectID: "3", Category: shortcut.Metric},
		{Name: "region", ObjectID: "4", Category: shortcut.Attribute},
		{Name: "Ärger", ObjectID: "5", Category: shortcut.Attribute},
		{Name: "REVISION date", ObjectID: "6", Category: shortcut.Date},
	}
}

func matchNames(list []shortcut.Shortcut) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Name)
	}
	return out
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		partial string
		want    []string
	}{
		{"prefix keeps order", "Rev", []string{"Revenue", "Reviewed", "REVISION date"}},
		{"case insensitive", "rEVi", []string{"Reviewed", "REVISION date"}},
		{"lowercase entry", "RE", []string{"Revenue", "Reviewed", "region", "REVISION date"}},
		{"unicode folding", "är", []string{"Ärger"}},
		{"no match", "Xy", nil},
		{"exact name", "cost", []string{"Cost"}},
		{"infix does not match", "ven", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchNames(Match(tt.partial, collection()))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Match(%q) = %v, want %v", tt.partial, got, tt.want)
			}
		})
	}
}

func TestMatchShortPrefixIsSuppressed(t *testing.T) {
	for _, partial := range []string{"", "R", "r", "Ä"} {
		if got := Match(partial, collection()); len(got) != 0 {
			t.Errorf("Match(%q) returned %d results, want none", partial, len(got))
		}
	}
}

func TestMatchOnlyReturnsPrefixMatches(t *testing.T) {
	all := collection()
	for _, partial := range []string{"re", "Rev", "co", "reg", "revision d"} {
		lower := strings.ToLower(partial)
		prev := -1
		for _, s := range Match(partial, all) {
			if !strings.HasPrefix(strings.ToLower(s.Name), lower) {
				t.Errorf("Match(%q) returned %q which does not start with it", partial, s.Name)
			}
			// Relative order must follow the input order.
			idx := -1
			for i := range all {
				if all[i].ObjectID == s.ObjectID {
					idx = i
				}
			}
			if idx <= prev {
				t.Errorf("Match(%q) broke input order at %q", partial, s.Name)
			}
			prev = idx
		}
	}
}

func TestMatchDoesNotMutateInput(t *testing.T) {
	all := collection()
	_ = Match("re", all)
	if all[0].Name != "Revenue" || len(all) != 6 {
		t.Error("Match() must not modify its input")
	}
}
