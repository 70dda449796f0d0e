// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used in the TUI.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // Teal/cyan
	colorError     = lipgloss.Color("196") // Bright red
	colorSuccess   = lipgloss.Color("40")  // Green
	colorWhite     = lipgloss.Color("231")
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(0, 0, 1, 0)

	helpStyle    = lipgloss.NewStyle().Foreground(colorSubtle)
	labelStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	focusedLabel = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)

	// Segmented mode selector
	segmentStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(colorSubtle).
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorSubtle)
	selectedSegmentStyle = segmentStyle.
				Foreground(colorWhite).
				Background(lipgloss.Color("60")).
				BorderForeground(lipgloss.Color("60"))
	focusedSegmentStyle = selectedSegmentStyle.
				BorderForeground(colorHighlight).
				Bold(true)

	// Buttons
	buttonStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("237")).
			Padding(0, 3).
			MarginRight(2)
	activeButtonStyle = buttonStyle.
				Background(colorHighlight).
				Underline(true)
	disabledButtonStyle = buttonStyle.
				Foreground(colorSubtle).
				Background(lipgloss.Color("235"))
)
