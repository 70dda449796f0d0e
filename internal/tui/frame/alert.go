// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

package frame

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AlertKeyMap holds the keys that dismiss an alert.
type AlertKeyMap struct {
	Dismiss key.Binding
}

func (k AlertKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Dismiss} }

func (k AlertKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Dismiss}} }

var DefaultAlertKeyMap = AlertKeyMap{
	Dismiss: key.NewBinding(
		key.WithKeys("enter", "esc", " "),
		key.WithHelp("enter/esc", "dismiss"),
	),
}

// Alert is a modal, dismiss-only notification with a title, a message and a
// single button. While an alert is shown it consumes all key input.
type Alert struct {
	title     string
	message   string
	button    string
	width     int
	keys      AlertKeyMap
	onDismiss func()
	dismissed bool
}

// NewAlert creates an alert. onDismiss runs once, from Update, when the user
// dismisses the alert.
func NewAlert(title, message, button string, onDismiss func()) *Alert {
	return &Alert{
		title:     title,
		message:   message,
		button:    button,
		width:     50,
		keys:      DefaultAlertKeyMap,
		onDismiss: onDismiss,
	}
}

// SetWidth sets the alert width, clamped to a usable minimum.
func (a *Alert) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	a.width = width
}

func (a *Alert) Title() string   { return a.title }
func (a *Alert) Message() string { return a.message }

// Dismissed reports whether the alert was closed.
func (a *Alert) Dismissed() bool { return a.dismissed }

// KeyMap returns the bindings active while the alert is shown.
func (a *Alert) KeyMap() AlertKeyMap { return a.keys }

// Update handles key input. It reports true when msg dismissed the alert.
func (a *Alert) Update(msg tea.Msg) bool {
	if a.dismissed {
		return false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !key.Matches(kmsg, a.keys.Dismiss) {
		return false
	}
	a.Dismiss()
	return true
}

// Dismiss closes the alert and runs the completion callback. Later calls
// are no-ops.
func (a *Alert) Dismiss() {
	if a.dismissed {
		return
	}
	a.dismissed = true
	if cb := a.onDismiss; cb != nil {
		a.onDismiss = nil
		cb()
	}
}

// Render produces the alert box.
func (a *Alert) Render() string {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("124")).
		Bold(true).
		Width(a.width)

	header := headerStyle.Render(" " + a.title)

	messageStyle := lipgloss.NewStyle().
		Width(a.width-4).
		Padding(1, 2, 0, 2)

	message := messageStyle.Render(a.message)

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("60")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("60")).
		Padding(0, 3, 0, 3)

	buttonArea := lipgloss.NewStyle().
		Padding(1, 2, 1, 2).
		Render(buttonStyle.Render(a.button))

	body := lipgloss.JoinVertical(lipgloss.Left, header, message, buttonArea)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Width(a.width).
		Render(body)
}
