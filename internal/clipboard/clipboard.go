// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clipboard puts exported references and snippets on the system
// clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported reports that no clipboard utility is available
// (e.g. a headless Linux box without xclip, xsel or wl-copy).
var ErrUnsupported = errors.New("clipboard not available")

// Writer accepts text destined for the clipboard.
type Writer interface {
	Write(text string) error
}

// WriteError wraps a failed clipboard write.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// System writes to the OS clipboard.
type System struct{}

// NewSystem returns the OS clipboard writer.
func NewSystem() System {
	return System{}
}

// Write replaces the clipboard contents with text.
func (System) Write(text string) error {
	if clipboard.Unsupported {
		return &WriteError{Err: ErrUnsupported}
	}
	if err := clipboard.WriteAll(text); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// Memory is an in-process clipboard. The CLI uses it under --no-clipboard and
// tests use it to observe what was copied.
type Memory struct {
	mu      sync.Mutex
	history []string
	fail    error
}

// Write records text, or returns the configured failure.
func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return &WriteError{Err: m.fail}
	}
	m.history = append(m.history, text)
	return nil
}

// FailWith makes subsequent writes fail with err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	m.fail = err
	m.mu.Unlock()
}

// Last returns the most recent successful write.
func (m *Memory) Last() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.history) == 0 {
		return "", false
	}
	return m.history[len(m.history)-1], true
}

// Writes returns how many writes succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// String is for debugging output.
func (m *Memory) String() string {
	last, _ := m.Last()
	return fmt.Sprintf("clipboard.Memory{writes: %d, last: %q}", m.Writes(), last)
}
