// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package state

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jeranaias/gdinject/internal/shortcut"
	"github.com/jeranaias/gdinject/internal/util"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "gdinject-state.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// =============================================================================
// STATE
// =============================================================================

// State is the persisted application state.
type State struct {
	CurrentPID string           `json:"current_pid"`
	SavedPIDs  []string         `json:"saved_pids"`
	Metrics    []shortcut.Entry `json:"metrics"`
	Attributes []shortcut.Entry `json:"attributes"`
	Dates      []shortcut.Entry `json:"dates"`
}

// Empty returns a state with no PIDs and no shortcuts.
func Empty() *State {
	return &State{
		SavedPIDs:  []string{},
		Metrics:    []shortcut.Entry{},
		Attributes: []shortcut.Entry{},
		Dates:      []shortcut.Entry{},
	}
}

// Entries returns the list stored for category.
func (s *State) Entries(category shortcut.Category) []shortcut.Entry {
	switch category {
	case shortcut.Metric:
		return s.Metrics
	case shortcut.Attribute:
		return s.Attributes
	case shortcut.Date:
		return s.Dates
	}
	return nil
}

// SetEntries replaces the list stored for category.
func (s *State) SetEntries(category shortcut.Category, entries []shortcut.Entry) {
	if entries == nil {
		entries = []shortcut.Entry{}
	}
	switch category {
	case shortcut.Metric:
		s.Metrics = entries
	case shortcut.Attribute:
		s.Attributes = entries
	case shortcut.Date:
		s.Dates = entries
	}
}

// normalize replaces nil slices so the file always carries empty arrays.
func (s *State) normalize() {
	if s.SavedPIDs == nil {
		s.SavedPIDs = []string{}
	}
	for _, cat := range shortcut.Categories {
		s.SetEntries(cat, s.Entries(cat))
	}
}

// =============================================================================
// ERRORS
// =============================================================================

// ReadError reports a state file that exists but could not be used.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read state %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the state at path. It always returns a usable state; the error is
// non-nil only for a file that exists but is unreadable or malformed, and is
// then a *ReadError.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Empty(), nil
		}
		return Empty(), &ReadError{Path: path, Err: err}
	}

	st, err := Decode(data)
	if err != nil {
		return Empty(), &ReadError{Path: path, Err: err}
	}
	return st, nil
}

// Decode parses and validates a state document.
func Decode(data []byte) (*State, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := stateSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	st := Empty()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	st.normalize()
	return st, nil
}

// Encode renders st the way Save writes it.
func Encode(st *State) ([]byte, error) {
	st.normalize()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes st to path atomically with owner-only permissions.
func Save(path string, st *State) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFileWithDir(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

func stateSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add state schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile state schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}
