// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

// Package frame holds small rendering building blocks shared by the entry
// form: a dismiss-only alert and a one-line status footer.
package frame

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Footer builds a one-line footer from left and right tokens, aligning the
// right token to the right edge of a line with the specified width.
// It truncates the left side if space is insufficient. Widths are measured
// in terminal cells, so styled tokens are fine on the right side.
func Footer(left, right string, width int) string {
	if width <= 0 {
		return left + " " + right
	}
	lw := lipgloss.Width(left)
	rw := lipgloss.Width(right)
	if lw+rw+1 <= width {
		return left + strings.Repeat(" ", width-lw-rw) + right
	}
	maxLeft := width - rw - 1
	if maxLeft <= 0 {
		return trimToWidth(right, width)
	}
	return trimToWidth(left, maxLeft) + " " + right
}

// trimToWidth cuts plain text to w runes.
func trimToWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	return string(runes[:w])
}
