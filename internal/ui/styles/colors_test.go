// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// COLOR DEFINITION TESTS
// =============================================================================

func TestColorsAreHex(t *testing.T) {
	colors := []struct {
		name  string
		color lipgloss.AdaptiveColor
	}{
		{"Blue", Blue},
		{"BlueDeep", BlueDeep},
		{"Cyan", Cyan},
		{"MetricGreen", MetricGreen},
		{"OtherPurple", OtherPurple},
		{"Emerald", Emerald},
		{"Rose", Rose},
		{"Amber", Amber},
		{"Surface", Surface},
		{"SurfaceDim", SurfaceDim},
		{"Overlay", Overlay},
		{"SelectionBg", SelectionBg},
		{"TextPrimary", TextPrimary},
		{"TextSecondary", TextSecondary},
		{"TextMuted", TextMuted},
		{"TextInverse", TextInverse},
	}

	for _, c := range colors {
		for variant, value := range map[string]string{"Light": c.color.Light, "Dark": c.color.Dark} {
			if !strings.HasPrefix(value, "#") || len(value) != 7 {
				t.Errorf("%s.%s = %q, want #RRGGBB", c.name, variant, value)
			}
		}
	}
}

func TestStatusIndicatorsAreASCII(t *testing.T) {
	for _, ind := range []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
	} {
		for _, r := range ind {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", ind, r)
			}
		}
	}
}
