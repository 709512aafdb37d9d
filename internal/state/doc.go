// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package state persists the analyst's PIDs and shortcuts as JSON.
//
// The file layout matches the original injector's config.json so an existing
// file keeps working:
//
//	{
//	  "current_pid": "abc",
//	  "saved_pids": ["abc"],
//	  "metrics": [{"name": "Revenue", "id": "123"}],
//	  "attributes": [],
//	  "dates": []
//	}
//
// A missing file is an empty state. A file that cannot be read, parsed or
// validated against the embedded JSON schema also yields an empty state, along
// with a *ReadError the caller is expected to log and otherwise ignore.
//
// Watcher reports changes made to the file by other processes (for example the
// gdinject CLI while the TUI is open).
package state
