// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the gdinject TUI.
//
// # Components
//
//   - ShortcutPanel: one category's shortcuts as a selectable list
//   - SuggestionPopup: the floating list of matching shortcuts under the caret
//   - Form: modal dialog with labelled text inputs (add/edit shortcut, add PID)
//   - Confirm: yes/no modal for destructive actions
//   - StatusBar: single-line status message plus key hints
//   - HelpView: markdown help rendered with glamour
//
// Components render with a shared *styles.Theme and keep no references to
// application state; the injector model feeds them data on every update.
package components
