// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shortcut

import (
	"fmt"
	"strings"
)

// Category groups shortcuts the way the analyst sees them.
type Category int

const (
	Metric Category = iota
	Attribute
	Date
)

// Categories lists every category in display order.
var Categories = []Category{Metric, Attribute, Date}

// String returns the singular lowercase name of the category.
func (c Category) String() string {
	switch c {
	case Metric:
		return "metric"
	case Attribute:
		return "attribute"
	case Date:
		return "date"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Title returns the plural heading used for panels.
func (c Category) Title() string {
	switch c {
	case Metric:
		return "Metrics"
	case Attribute:
		return "Attributes"
	case Date:
		return "Dates"
	default:
		return c.String()
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= Metric && c <= Date
}

// ParseCategory accepts singular or plural names, case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metric", "metrics", "m":
		return Metric, nil
	case "attribute", "attributes", "attr", "a":
		return Attribute, nil
	case "date", "dates", "d":
		return Date, nil
	}
	return 0, fmt.Errorf("unknown category %q (want metric, attribute or date)", s)
}

// Shortcut is a named pointer to a GoodData object.
type Shortcut struct {
	// ID is an in-memory handle, stable for the lifetime of the store entry.
	ID       string
	Name     string
	ObjectID string
	Category Category
}

// Entry is the persisted form of a shortcut.
type Entry struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Entry returns the persisted form of s.
func (s Shortcut) Entry() Entry {
	return Entry{Name: s.Name, ID: s.ObjectID}
}

// ValidationError reports an invalid shortcut field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks that name and object id are both present.
func Validate(name, objectID string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if strings.TrimSpace(objectID) == "" {
		return &ValidationError{Field: "id", Message: "must not be empty"}
	}
	return nil
}
