// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package injector is the Bubble Tea front end of gdinject.
//
// The screen has four parts:
//   - Header: the current PID and how many are saved
//   - Panels: one list per shortcut category (metrics, attributes, dates)
//   - Editor: the snippet being composed, with accepted references highlighted
//     and the suggestion popup floating under the word being completed
//   - Status bar: the result of the last action and key hints
//
// All state lives in an *app.App; the model only translates input into App and
// editor calls and renders the result.
package injector
