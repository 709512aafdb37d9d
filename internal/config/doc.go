// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for gdinject.
//
// Settings live in a TOML file next to the state file, with sensible
// defaults, environment variable overrides, and validation.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (GDINJECT_*)
//   - ~/.gooddata_injector/settings.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil && cfg == nil {
//	    return err
//	}
//	delay := cfg.HideDelay()
package config
