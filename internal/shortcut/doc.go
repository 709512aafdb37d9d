// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shortcut holds the named shortcuts an analyst keeps for GoodData objects.
//
// Shortcuts are grouped into three categories (metrics, attributes, dates) and
// kept in insertion order inside each category. The Store is the single owner of
// that collection; the TUI panels, the CLI and the suggestion matcher all read
// from it.
//
// # Key Types
//
//   - Shortcut: a display name pointing at an object id
//   - Category: Metric, Attribute or Date
//   - Store: ordered, category-grouped collection with add/edit/delete
//   - ValidationError: returned when a name or id is empty
//
// # Usage
//
//	store := shortcut.NewStore()
//	s, err := store.Add("Revenue", "123", shortcut.Metric)
//	for _, s := range store.All() {
//	    fmt.Println(s.Name, s.ObjectID)
//	}
package shortcut
