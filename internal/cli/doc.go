// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the gdinject command line.
//
// Running gdinject without a subcommand starts the interactive editor. The
// subcommands work on the same state file and are meant for scripts:
//
//	gdinject shortcut list|add|edit|rm   manage shortcuts
//	gdinject pid list|add|use            manage project identifiers
//	gdinject ref <category> <name>       print and copy one encoded reference
//	gdinject decode <ref>                split an encoded reference
//	gdinject history                     list recent clipboard copies
//	gdinject config path|show|get|set    inspect and change settings
//	gdinject version                     print build information
//
// Output is decorated when stdout is a terminal and plain (tab separated)
// otherwise. Most listing commands also accept --json.
package cli
