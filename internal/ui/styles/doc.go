// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the gdinject TUI.
//
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
// Metric references render green and attribute/date references purple, the
// same distinction the editor makes between token categories.
//
//	theme := styles.NewTheme()
//	token := theme.MetricToken.Render("Revenue")
package styles
