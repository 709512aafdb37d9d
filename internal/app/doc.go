// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app holds the state shared by the TUI and the CLI: the shortcut
// store, the PID list, the reference editor and the collaborators that copy,
// persist and record.
//
// Every mutation of shortcuts or PIDs is written to the state file before the
// call returns. Clipboard and history failures never lose data; they come back
// as errors that StatusFor turns into a one-line status message.
package app
