// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package injector

// hideSuggestionsMsg fires after the hide delay that follows the editor losing
// focus. Token is the generation returned by Editor.Blur.
type hideSuggestionsMsg struct {
	Token uint64
}

// StateChangedMsg reports that the state file was changed by another process.
type StateChangedMsg struct{}

// clearStatusMsg clears the status line if it still shows message Seq.
type clearStatusMsg struct {
	Seq int
}
