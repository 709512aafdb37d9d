// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/gdinject/internal/clipboard"
	"github.com/jeranaias/gdinject/internal/editor"
	"github.com/jeranaias/gdinject/internal/history"
	"github.com/jeranaias/gdinject/internal/logging"
	"github.com/jeranaias/gdinject/internal/reference"
	"github.com/jeranaias/gdinject/internal/shortcut"
	"github.com/jeranaias/gdinject/internal/state"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNoPID         = errors.New("no PID selected")
	ErrEmptyPID      = errors.New("PID must not be empty")
	ErrUnknownPID    = errors.New("unknown PID")
	ErrNothingToCopy = errors.New("nothing to copy")
)

// =============================================================================
// APP
// =============================================================================

// Options configures an App. Clipboard is required; History and Logger are
// optional.
type Options struct {
	StatePath    string
	Clipboard    clipboard.Writer
	History      *history.Store
	HistoryLimit int
	Logger       *logging.Logger
	Substitution editor.Substitution
}

// App is the injector's application context. Like the editor it is driven
// from a single goroutine.
type App struct {
	store   *shortcut.Store
	pids    []string
	current string
	editor  *editor.Editor

	statePath string
	lastSaved []byte

	clip         clipboard.Writer
	hist         *history.Store
	historyLimit int
	log          *logging.Logger
	watcher      *state.Watcher
}

// New creates an App with an empty store. Call Load to read the state file.
func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	a := &App{
		store:        shortcut.NewStore(),
		pids:         []string{},
		statePath:    opts.StatePath,
		clip:         opts.Clipboard,
		hist:         opts.History,
		historyLimit: opts.HistoryLimit,
		log:          log,
	}
	a.editor = editor.New(a.store, a.CurrentPID)
	a.editor.SetSubstitution(opts.Substitution)
	return a
}

// Store returns the shortcut store.
func (a *App) Store() *shortcut.Store { return a.store }

// Editor returns the reference editor.
func (a *App) Editor() *editor.Editor { return a.editor }

// History returns the copy history, or nil when disabled.
func (a *App) History() *history.Store { return a.hist }

// StatePath returns the state file location.
func (a *App) StatePath() string { return a.statePath }

// =============================================================================
// PERSISTENCE
// =============================================================================

// Load replaces the in-memory state with the state file. A file that exists
// but cannot be used is logged and returned as *state.ReadError; the app then
// starts empty.
func (a *App) Load() error {
	st, err := state.Load(a.statePath)
	if err != nil {
		a.log.Warn("ignoring unreadable state file", "path", a.statePath, "error", err)
	}
	a.apply(st)
	a.lastSaved = nil
	return err
}

// Save writes the current state to the state file.
func (a *App) Save() error {
	snap := a.Snapshot()
	if err := state.Save(a.statePath, snap); err != nil {
		a.log.Error("failed to save state", "path", a.statePath, "error", err)
		return err
	}
	// Same bytes Save just wrote; lets ReloadState recognise our own writes.
	a.lastSaved, _ = state.Encode(snap)
	a.log.Debug("state saved", "path", a.statePath, "shortcuts", a.store.Len(), "pids", len(a.pids))
	return nil
}

// Snapshot returns the persisted form of the current state.
func (a *App) Snapshot() *state.State {
	st := state.Empty()
	st.CurrentPID = a.current
	st.SavedPIDs = append(st.SavedPIDs, a.pids...)
	for _, cat := range shortcut.Categories {
		st.SetEntries(cat, a.store.Entries(cat))
	}
	return st
}

// ReloadState re-reads the state file after an external change. It reports
// false when the file holds exactly what this app last wrote.
func (a *App) ReloadState() (bool, error) {
	data, err := os.ReadFile(a.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, &state.ReadError{Path: a.statePath, Err: err}
	}
	if a.lastSaved != nil && bytes.Equal(data, a.lastSaved) {
		return false, nil
	}

	st, err := state.Decode(data)
	if err != nil {
		rerr := &state.ReadError{Path: a.statePath, Err: err}
		a.log.Warn("ignoring external state change", "error", rerr)
		return false, rerr
	}
	a.apply(st)
	a.lastSaved = data
	a.log.Info("state reloaded after external change", "path", a.statePath)
	return true, nil
}

func (a *App) apply(st *state.State) {
	for _, cat := range shortcut.Categories {
		if skipped := a.store.Replace(cat, st.Entries(cat)); skipped > 0 {
			a.log.Warn("skipped invalid shortcuts", "category", cat.String(), "count", skipped)
		}
	}

	a.pids = a.pids[:0]
	for _, pid := range st.SavedPIDs {
		a.addPIDToList(pid)
	}
	a.current = strings.TrimSpace(st.CurrentPID)
	if a.current != "" {
		a.addPIDToList(a.current)
	}
}

// Watch starts reloading on external changes to the state file. notify runs on
// the watcher goroutine and should only hand off to the owner of the App,
// which then calls ReloadState.
func (a *App) Watch(debounce time.Duration, notify func()) error {
	if a.watcher != nil {
		return nil
	}
	w, err := state.NewWatcher(a.statePath, debounce, notify, func(err error) {
		a.log.Warn("state watcher error", "error", err)
	})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.Close()
		return err
	}
	a.watcher = w
	return nil
}

// Shutdown saves the state, trims the history and releases resources. The
// first error encountered is returned, but every step runs.
func (a *App) Shutdown(ctx context.Context) error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	if a.watcher != nil {
		keep(a.watcher.Close())
		a.watcher = nil
	}
	keep(a.Save())
	if a.hist != nil {
		if a.historyLimit > 0 {
			if n, err := a.hist.Prune(ctx, a.historyLimit); err != nil {
				a.log.Warn("failed to prune history", "error", err)
			} else if n > 0 {
				a.log.Debug("history pruned", "removed", n)
			}
		}
		keep(a.hist.Close())
	}
	return first
}

// =============================================================================
// PIDS
// =============================================================================

// CurrentPID returns the selected project identifier, possibly empty.
func (a *App) CurrentPID() string { return a.current }

// PIDs returns the saved project identifiers in the order they were added.
func (a *App) PIDs() []string {
	out := make([]string, len(a.pids))
	copy(out, a.pids)
	return out
}

// AddPID saves pid (once) and makes it current.
func (a *App) AddPID(pid string) error {
	pid = strings.TrimSpace(pid)
	if pid == "" {
		return ErrEmptyPID
	}
	a.addPIDToList(pid)
	a.current = pid
	a.log.Info("pid selected", "pid", pid)
	return a.Save()
}

// UsePID makes a saved pid current.
func (a *App) UsePID(pid string) error {
	pid = strings.TrimSpace(pid)
	if !a.hasPID(pid) {
		return fmt.Errorf("%w: %s", ErrUnknownPID, pid)
	}
	a.current = pid
	a.log.Info("pid selected", "pid", pid)
	return a.Save()
}

// CyclePID selects the next (delta > 0) or previous saved pid, wrapping
// around. It returns the new current pid.
func (a *App) CyclePID(delta int) (string, error) {
	if len(a.pids) == 0 {
		return "", ErrNoPID
	}
	idx := -1
	for i, p := range a.pids {
		if p == a.current {
			idx = i
			break
		}
	}
	n := len(a.pids)
	switch {
	case idx < 0:
		idx = 0
	case delta > 0:
		idx = (idx + 1) % n
	case delta < 0:
		idx = (idx - 1 + n) % n
	}
	return a.pids[idx], a.UsePID(a.pids[idx])
}

func (a *App) addPIDToList(pid string) {
	pid = strings.TrimSpace(pid)
	if pid == "" || a.hasPID(pid) {
		return
	}
	a.pids = append(a.pids, pid)
}

func (a *App) hasPID(pid string) bool {
	for _, p := range a.pids {
		if p == pid {
			return true
		}
	}
	return false
}

// =============================================================================
// SHORTCUTS
// =============================================================================

// CreateShortcut adds a shortcut and saves. A PID must be selected first.
func (a *App) CreateShortcut(category shortcut.Category, name, objectID string) (shortcut.Shortcut, error) {
	if a.current == "" {
		return shortcut.Shortcut{}, ErrNoPID
	}
	sc, err := a.store.Add(strings.TrimSpace(name), strings.TrimSpace(objectID), category)
	if err != nil {
		return shortcut.Shortcut{}, err
	}
	a.log.Info("shortcut added", "category", category.String(), "name", sc.Name, "object_id", sc.ObjectID)
	return sc, a.Save()
}

// EditShortcut renames and re-targets a shortcut and saves.
func (a *App) EditShortcut(id, name, objectID string) (shortcut.Shortcut, error) {
	sc, err := a.store.Edit(id, strings.TrimSpace(name), strings.TrimSpace(objectID))
	if err != nil {
		return shortcut.Shortcut{}, err
	}
	a.log.Info("shortcut edited", "category", sc.Category.String(), "name", sc.Name, "object_id", sc.ObjectID)
	return sc, a.Save()
}

// DeleteShortcut removes a shortcut and saves.
func (a *App) DeleteShortcut(id string) (shortcut.Shortcut, error) {
	sc, err := a.store.Delete(id)
	if err != nil {
		return shortcut.Shortcut{}, err
	}
	a.log.Info("shortcut deleted", "category", sc.Category.String(), "name", sc.Name)
	return sc, a.Save()
}

// =============================================================================
// CLIPBOARD
// =============================================================================

// CopyReference puts the encoded reference of one shortcut on the clipboard
// using the current PID, and returns what was copied.
func (a *App) CopyReference(ctx context.Context, id string) (shortcut.Shortcut, string, error) {
	sc, ok := a.store.Get(id)
	if !ok {
		return shortcut.Shortcut{}, "", shortcut.ErrNotFound
	}
	ref := reference.Encode(a.current, sc.ObjectID)
	if err := a.write(ctx, history.KindReference, ref); err != nil {
		return sc, "", err
	}
	return sc, ref, nil
}

// CopySnippet exports the editor buffer with every reference substituted. A
// blank buffer is ErrNothingToCopy and leaves the clipboard alone.
func (a *App) CopySnippet(ctx context.Context) (string, error) {
	if strings.TrimSpace(a.editor.Text()) == "" {
		return "", ErrNothingToCopy
	}
	text := strings.TrimSpace(a.editor.RenderFinalText())
	if err := a.write(ctx, history.KindSnippet, text); err != nil {
		return "", err
	}
	return text, nil
}

func (a *App) write(ctx context.Context, kind history.Kind, text string) error {
	if a.clip == nil {
		return &clipboard.WriteError{Err: clipboard.ErrUnsupported}
	}
	if err := a.clip.Write(text); err != nil {
		a.log.Warn("clipboard write failed", "kind", string(kind), "error", err)
		return err
	}
	if a.hist != nil {
		if _, err := a.hist.Record(ctx, a.current, kind, text); err != nil {
			a.log.Warn("failed to record copy history", "error", err)
		}
	}
	return nil
}
