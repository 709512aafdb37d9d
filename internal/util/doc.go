// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across gdinject.
//
//   - AtomicWriteFile: crash-safe file writes (temp file, fsync, rename)
//   - TruncateWidth, PadRight, ColumnOf: terminal column math via go-runewidth
package util
