// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shortcut

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a shortcut handle does not exist in the store.
var ErrNotFound = errors.New("shortcut not found")

// =============================================================================
// STORE
// =============================================================================

// Store keeps shortcuts grouped by category, each group in insertion order.
//
// Store is not safe for concurrent use. It is owned by the UI event loop (or a
// single CLI invocation) and mutated only from there.
type Store struct {
	groups [3][]Shortcut
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a new shortcut to the end of its category.
func (s *Store) Add(name, objectID string, category Category) (Shortcut, error) {
	if !category.Valid() {
		return Shortcut{}, &ValidationError{Field: "category", Message: category.String() + " is not a category"}
	}
	if err := Validate(name, objectID); err != nil {
		return Shortcut{}, err
	}
	sc := Shortcut{
		ID:       uuid.NewString(),
		Name:     name,
		ObjectID: objectID,
		Category: category,
	}
	s.groups[category] = append(s.groups[category], sc)
	return sc, nil
}

// Edit renames and repoints an existing shortcut. The shortcut keeps its position.
func (s *Store) Edit(id, newName, newObjectID string) (Shortcut, error) {
	if err := Validate(newName, newObjectID); err != nil {
		return Shortcut{}, err
	}
	cat, i, ok := s.locate(id)
	if !ok {
		return Shortcut{}, ErrNotFound
	}
	sc := &s.groups[cat][i]
	sc.Name = newName
	sc.ObjectID = newObjectID
	return *sc, nil
}

// Delete removes a shortcut.
func (s *Store) Delete(id string) (Shortcut, error) {
	cat, i, ok := s.locate(id)
	if !ok {
		return Shortcut{}, ErrNotFound
	}
	removed := s.groups[cat][i]
	group := s.groups[cat]
	s.groups[cat] = append(group[:i:i], group[i+1:]...)
	return removed, nil
}

// Get returns the shortcut with the given handle.
func (s *Store) Get(id string) (Shortcut, bool) {
	cat, i, ok := s.locate(id)
	if !ok {
		return Shortcut{}, false
	}
	return s.groups[cat][i], true
}

// FindByName returns the first shortcut in category whose name equals name exactly.
func (s *Store) FindByName(category Category, name string) (Shortcut, bool) {
	if !category.Valid() {
		return Shortcut{}, false
	}
	for _, sc := range s.groups[category] {
		if sc.Name == name {
			return sc, true
		}
	}
	return Shortcut{}, false
}

// ByCategory returns a copy of the shortcuts in one category.
func (s *Store) ByCategory(category Category) []Shortcut {
	if !category.Valid() {
		return nil
	}
	out := make([]Shortcut, len(s.groups[category]))
	copy(out, s.groups[category])
	return out
}

// All returns every shortcut: metrics first, then attributes, then dates.
func (s *Store) All() []Shortcut {
	out := make([]Shortcut, 0, s.Len())
	for _, cat := range Categories {
		out = append(out, s.groups[cat]...)
	}
	return out
}

// Len returns the total number of shortcuts.
func (s *Store) Len() int {
	n := 0
	for _, g := range s.groups {
		n += len(g)
	}
	return n
}

// Entries returns the persisted form of one category.
func (s *Store) Entries(category Category) []Entry {
	group := s.ByCategory(category)
	out := make([]Entry, 0, len(group))
	for _, sc := range group {
		out = append(out, sc.Entry())
	}
	return out
}

// Replace discards the current contents of category and loads entries in order.
// Entries with an empty name or id are skipped; the number skipped is returned.
func (s *Store) Replace(category Category, entries []Entry) int {
	if !category.Valid() {
		return len(entries)
	}
	s.groups[category] = s.groups[category][:0]
	skipped := 0
	for _, e := range entries {
		if _, err := s.Add(e.Name, e.ID, category); err != nil {
			skipped++
		}
	}
	return skipped
}

func (s *Store) locate(id string) (Category, int, bool) {
	for _, cat := range Categories {
		for i, sc := range s.groups[cat] {
			if sc.ID == id {
				return cat, i, true
			}
		}
	}
	return 0, 0, false
}
