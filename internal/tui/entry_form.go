// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui provides the terminal user interface for Twofa.
// This file holds the two-factor entry form: a mode selector, a token input
// and cancel/submit buttons bound to the token shape rules.
package tui // import "github.com/toeirei/twofa/internal/tui"

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/twofa/internal/i18n"
	"github.com/toeirei/twofa/internal/logging"
	"github.com/toeirei/twofa/internal/tui/frame"
	"github.com/toeirei/twofa/internal/twofactor"
)

// Phase is the lifecycle state of an entry form.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseRejected
	PhaseAccepted
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseRejected:
		return "rejected"
	case PhaseAccepted:
		return "accepted"
	case PhaseCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Terminal reports whether the form is done and should be dismissed.
func (p Phase) Terminal() bool {
	return p == PhaseAccepted || p == PhaseCancelled
}

// control identifies the focusable controls, in tab order.
type control int

const (
	controlMode control = iota
	controlText
	controlCancel
	controlSubmit
	controlCount
)

// FormState is a snapshot of the form, used by the host and by tests.
type FormState struct {
	Phase         Phase
	Mode          twofactor.Mode
	Text          string
	Valid         bool
	Accepting     bool
	ModeEnabled   bool
	InputEnabled  bool
	SubmitEnabled bool
	InputFocused  bool
	AlertShown    bool
}

// EntryForm is the two-factor entry screen. It reports exactly one outcome
// to its listener and then drops the reference to it.
type EntryForm struct {
	listener twofactor.Listener

	mode  twofactor.Mode
	input textinput.Model
	focus control
	phase Phase

	accepting     bool
	modeEnabled   bool
	inputEnabled  bool
	submitEnabled bool

	alert    *frame.Alert
	pending  tea.Cmd
	keys     KeyMap
	help     help.Model
	width    int
	hideHelp bool
}

type Option func(f *EntryForm)

// WithMode preselects the selector position.
func WithMode(mode twofactor.Mode) Option {
	return func(f *EntryForm) { f.mode = mode }
}

// WithKeyMap replaces DefaultKeyMap.
func WithKeyMap(km KeyMap) Option {
	return func(f *EntryForm) { f.keys = km }
}

// WithoutHelp hides the key help line.
func WithoutHelp() Option {
	return func(f *EntryForm) { f.hideHelp = true }
}

// NewEntryForm creates a form in the editing phase with the text input
// focused. The form does not own listener.
func NewEntryForm(listener twofactor.Listener, opts ...Option) *EntryForm {
	f := &EntryForm{
		listener:     listener,
		mode:         twofactor.ModeNumeric,
		focus:        controlText,
		phase:        PhaseEditing,
		accepting:    true,
		modeEnabled:  true,
		inputEnabled: true,
		keys:         DefaultKeyMap,
		help:         help.New(),
		width:        60,
	}
	for _, opt := range opts {
		opt(f)
	}

	t := textinput.New()
	t.Prompt = "> "
	t.CharLimit = 128
	t.Width = 46
	t.Cursor.Style = focusedLabel
	f.input = t
	f.input.Focus()
	f.updatePlaceholder()
	f.onModeOrTextChanged()

	return f
}

func (f *EntryForm) Init() tea.Cmd {
	return textinput.Blink
}

// State returns a snapshot of the form.
func (f *EntryForm) State() FormState {
	return FormState{
		Phase:         f.phase,
		Mode:          f.mode,
		Text:          f.input.Value(),
		Valid:         twofactor.Valid(f.mode, f.input.Value()),
		Accepting:     f.accepting,
		ModeEnabled:   f.modeEnabled,
		InputEnabled:  f.inputEnabled,
		SubmitEnabled: f.submitEnabled,
		InputFocused:  f.input.Focused(),
		AlertShown:    f.alert != nil,
	}
}

func (f *EntryForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		f.width = msg.Width
		f.help.Width = msg.Width
		if f.alert != nil {
			f.alert.SetWidth(f.alertWidth())
		}
		return f, nil
	}

	// A visible alert is modal.
	if f.alert != nil {
		if f.alert.Update(msg) {
			f.alert = nil
			cmd := f.pending
			f.pending = nil
			return f, cmd
		}
		return f, nil
	}

	if f.phase != PhaseEditing {
		return f, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return f, cmd
	}

	switch {
	case key.Matches(kmsg, f.keys.Cancel):
		f.Cancel()
		return f, nil
	case key.Matches(kmsg, f.keys.Next):
		return f, f.moveFocus(1)
	case key.Matches(kmsg, f.keys.Prev):
		return f, f.moveFocus(-1)
	case key.Matches(kmsg, f.keys.ToggleMode):
		f.SelectMode(int(f.mode+1) % len(twofactor.Modes))
		return f, nil
	case key.Matches(kmsg, f.keys.Submit):
		return f, f.activate()
	}

	switch f.focus {
	case controlMode:
		switch {
		case key.Matches(kmsg, f.keys.Left) && f.mode > twofactor.ModeNumeric:
			f.SelectMode(int(f.mode) - 1)
		case key.Matches(kmsg, f.keys.Right) && int(f.mode) < len(twofactor.Modes)-1:
			f.SelectMode(int(f.mode) + 1)
		}
		return f, nil
	case controlText:
		before := f.input.Value()
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		if f.input.Value() != before {
			f.onModeOrTextChanged()
		}
		return f, cmd
	}

	return f, nil
}

// activate handles the submit key for the focused control.
func (f *EntryForm) activate() tea.Cmd {
	switch f.focus {
	case controlMode:
		return f.setFocus(controlText)
	case controlCancel:
		f.Cancel()
		return nil
	case controlText, controlSubmit:
		if f.submitEnabled {
			return f.Submit()
		}
	}
	return nil
}

// SelectMode moves the selector to segment index. Indices outside the two
// segments are kept and never validate. Ignored unless the selector is
// enabled.
func (f *EntryForm) SelectMode(index int) {
	if !f.modeEnabled || f.phase != PhaseEditing {
		return
	}
	mode := twofactor.Mode(index)
	if mode == f.mode {
		return
	}
	f.mode = mode
	f.updatePlaceholder()
	f.onModeOrTextChanged()
}

// SetText replaces the token text as if typed. Ignored unless the input is
// enabled.
func (f *EntryForm) SetText(s string) {
	if !f.inputEnabled || f.phase != PhaseEditing {
		return
	}
	f.input.SetValue(s)
	f.onModeOrTextChanged()
}

// onModeOrTextChanged keeps the submit button in line with live validity.
func (f *EntryForm) onModeOrTextChanged() {
	f.submitEnabled = twofactor.Valid(f.mode, f.input.Value())
}

// Cancel reports cancellation to the listener. Only valid while editing.
func (f *EntryForm) Cancel() {
	if f.phase != PhaseEditing {
		return
	}
	f.phase = PhaseCancelled
	logging.Infof("two-factor entry cancelled")
	if l := f.release(); l != nil {
		l.TwoFactorCancelled()
	}
}

// Submit locks the controls and re-validates the current input. A valid
// token goes to the listener; otherwise an invalid-token alert is shown and
// the controls are unlocked again when it is dismissed.
func (f *EntryForm) Submit() tea.Cmd {
	if f.phase != PhaseEditing {
		return nil
	}
	f.phase = PhaseSubmitting
	f.accepting = false
	f.modeEnabled, f.inputEnabled, f.submitEnabled = false, false, false
	f.input.Blur()

	token, err := twofactor.ComputeValidToken(f.mode, f.input.Value())
	if err != nil {
		logging.Debugf("two-factor submission rejected: %v", err)
		f.phase = PhaseRejected
		f.alert = frame.NewAlert(
			i18n.T("twofa.error.invalid_token"),
			i18n.T("twofa.error.invalid_token_hint"),
			i18n.T("twofa.alert.ok"),
			f.reactivate,
		)
		f.alert.SetWidth(f.alertWidth())
		return nil
	}

	f.phase = PhaseAccepted
	logging.Infof("two-factor token entered (%s)", token.Mode())
	if l := f.release(); l != nil {
		l.TwoFactorEntered(token)
	}
	return nil
}

// reactivate is the alert completion callback. It restores every control
// so the form is back in a usable editing state.
func (f *EntryForm) reactivate() {
	f.phase = PhaseEditing
	f.accepting = true
	f.modeEnabled, f.inputEnabled = true, true
	f.onModeOrTextChanged()
	f.pending = f.setFocus(controlText)
}

func (f *EntryForm) release() twofactor.Listener {
	l := f.listener
	f.listener = nil
	return l
}

func (f *EntryForm) enabled(c control) bool {
	switch c {
	case controlMode:
		return f.modeEnabled
	case controlText:
		return f.inputEnabled
	case controlSubmit:
		return f.submitEnabled
	default:
		return f.phase == PhaseEditing
	}
}

func (f *EntryForm) moveFocus(step int) tea.Cmd {
	next := f.focus
	for i := 0; i < int(controlCount); i++ {
		next = control((int(next) + step + int(controlCount)) % int(controlCount))
		if f.enabled(next) {
			return f.setFocus(next)
		}
	}
	return nil
}

func (f *EntryForm) setFocus(c control) tea.Cmd {
	f.focus = c
	if c == controlText {
		return f.input.Focus()
	}
	f.input.Blur()
	return nil
}

func (f *EntryForm) updatePlaceholder() {
	switch f.mode {
	case twofactor.ModeNumeric:
		f.input.Placeholder = i18n.T("twofa.input.placeholder_totp")
	case twofactor.ModeRecovery:
		f.input.Placeholder = i18n.T("twofa.input.placeholder_recovery")
	default:
		f.input.Placeholder = ""
	}
}

func (f *EntryForm) alertWidth() int {
	return min(max(f.width-8, 20), 60)
}

func (f *EntryForm) View() string {
	var viewItems []string
	viewItems = append(viewItems, titleStyle.Render("🔐 "+i18n.T("twofa.title")))

	if f.alert != nil {
		viewItems = append(viewItems, f.alert.Render())
		if !f.hideHelp {
			viewItems = append(viewItems, "", f.help.View(f.alert.KeyMap()))
		}
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, viewItems...))
	}

	viewItems = append(viewItems,
		helpStyle.Render(i18n.T("twofa.subtitle")),
		"",
		f.label(controlMode, i18n.T("twofa.mode.label")),
		f.renderSelector(),
		"",
		f.label(controlText, i18n.T("twofa.input.label")),
		f.input.View(),
		f.renderStatus(),
		"",
		f.renderButtons(),
	)

	if !f.hideHelp {
		viewItems = append(viewItems, "", f.help.View(f.keys))
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, viewItems...))
}

func (f *EntryForm) label(c control, text string) string {
	if f.focus == c && f.enabled(c) {
		return focusedLabel.Render(text)
	}
	return labelStyle.Render(text)
}

func (f *EntryForm) renderSelector() string {
	names := []string{i18n.T("twofa.mode.totp"), i18n.T("twofa.mode.recovery")}
	segments := make([]string, len(names))
	for i, name := range names {
		style := segmentStyle
		if twofactor.Mode(i) == f.mode {
			style = selectedSegmentStyle
			if f.focus == controlMode && f.modeEnabled {
				style = focusedSegmentStyle
			}
		}
		if !f.modeEnabled {
			style = style.Faint(true)
		}
		segments[i] = style.Render(name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (f *EntryForm) renderStatus() string {
	return frame.Footer(f.statusText(), helpStyle.Render(f.mode.String()), f.input.Width+len(f.input.Prompt))
}

func (f *EntryForm) statusText() string {
	if f.phase == PhaseSubmitting {
		return helpStyle.Render(i18n.T("twofa.status.submitting"))
	}
	if f.submitEnabled {
		return successStyle.Render("✓ " + i18n.T("twofa.status.ready"))
	}
	want := twofactor.ExpectedLength(f.mode)
	if want == 0 {
		return errorStyle.Render(i18n.T("twofa.error.invalid_token"))
	}
	return helpStyle.Render(i18n.T("twofa.status.length", len([]rune(f.input.Value())), want))
}

func (f *EntryForm) renderButtons() string {
	render := func(c control, text string) string {
		switch {
		case !f.enabled(c):
			return disabledButtonStyle.Render(text)
		case f.focus == c:
			return activeButtonStyle.Render(text)
		default:
			return buttonStyle.Render(text)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		render(controlCancel, i18n.T("twofa.button.cancel")),
		render(controlSubmit, i18n.T("twofa.button.submit")),
	)
}

// *EntryForm implements tea.Model
var _ tea.Model = (*EntryForm)(nil)
