// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/twofa/internal/i18n"
	"github.com/toeirei/twofa/internal/twofactor"
)

var recoveryCode = strings.Repeat("qwertyuiopa", 4)

// recorder is a test listener that counts calls.
type recorder struct {
	entered   []twofactor.Token
	cancelled int
}

func (r *recorder) TwoFactorEntered(t twofactor.Token) { r.entered = append(r.entered, t) }
func (r *recorder) TwoFactorCancelled()                { r.cancelled++ }

func typeText(f *EntryForm, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(f *EntryForm, t tea.KeyType) {
	f.Update(tea.KeyMsg{Type: t})
}

func TestEntryForm_InitialState(t *testing.T) {
	i18n.Init("en")
	f := NewEntryForm(&recorder{})
	st := f.State()
	if st.Phase != PhaseEditing || st.Mode != twofactor.ModeNumeric {
		t.Fatalf("unexpected initial state: %+v", st)
	}
	if !st.Accepting || !st.ModeEnabled || !st.InputEnabled || st.SubmitEnabled {
		t.Fatalf("unexpected initial control state: %+v", st)
	}
	if !st.InputFocused {
		t.Fatalf("expected text input to start focused")
	}
}

func TestEntryForm_SubmitEnabledTracksValidity(t *testing.T) {
	i18n.Init("en")
	f := NewEntryForm(&recorder{})

	typeText(f, "12345")
	if f.State().SubmitEnabled {
		t.Fatalf("submit must stay disabled for 5 digits")
	}
	typeText(f, "6")
	if !f.State().SubmitEnabled {
		t.Fatalf("submit should be enabled for 6 digits")
	}
	press(f, tea.KeyBackspace)
	if f.State().SubmitEnabled {
		t.Fatalf("submit must be disabled again after backspace")
	}

	// switching mode re-validates the same text
	f.SetText("123456")
	if !f.State().SubmitEnabled {
		t.Fatalf("expected valid numeric text")
	}
	f.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if st := f.State(); st.Mode != twofactor.ModeRecovery || st.SubmitEnabled {
		t.Fatalf("expected recovery mode with submit disabled, got %+v", st)
	}
	f.SetText(recoveryCode)
	if !f.State().SubmitEnabled {
		t.Fatalf("expected recovery code to enable submit")
	}
}

func TestEntryForm_InvariantHoldsForEveryEdit(t *testing.T) {
	i18n.Init("en")
	f := NewEntryForm(&recorder{})
	inputs := []string{"", "1", "123456", " 123456 ", "12345a", recoveryCode, recoveryCode + "A"}
	for _, idx := range []int{0, 1, 2} {
		f.SelectMode(idx)
		for _, in := range inputs {
			f.SetText(in)
			st := f.State()
			if st.SubmitEnabled != twofactor.Valid(twofactor.Mode(idx), in) {
				t.Fatalf("mode %d text %q: submit enabled=%v, valid=%v", idx, in, st.SubmitEnabled, st.Valid)
			}
		}
	}
}

// Scenario A
func TestEntryForm_SubmitValidNumeric(t *testing.T) {
	i18n.Init("en")
	rec := &recorder{}
	f := NewEntryForm(rec)

	typeText(f, "123456")
	press(f, tea.KeyEnter)

	if len(rec.entered) != 1 || rec.cancelled != 0 {
		t.Fatalf("expected exactly one entered call, got %+v", rec)
	}
	tok := rec.entered[0]
	if tok.Mode() != twofactor.ModeNumeric || tok.Value() != "123456" {
		t.Fatalf("unexpected token: %v %q", tok.Mode(), tok.Value())
	}
	st := f.State()
	if st.Phase != PhaseAccepted || st.ModeEnabled || st.InputEnabled || st.SubmitEnabled || st.InputFocused {
		t.Fatalf("expected locked accepted form, got %+v", st)
	}

	// further input is ignored and the listener is not called again
	press(f, tea.KeyEnter)
	press(f, tea.KeyEsc)
	if len(rec.entered) != 1 || rec.cancelled != 0 {
		t.Fatalf("listener called again after acceptance: %+v", rec)
	}
}

// Scenario C via the submit button
func TestEntryForm_SubmitRecoveryViaButton(t *testing.T) {
	i18n.Init("en")
	rec := &recorder{}
	f := NewEntryForm(rec, WithMode(twofactor.ModeRecovery))

	f.SetText("  " + recoveryCode + "\n")
	press(f, tea.KeyTab) // cancel
	press(f, tea.KeyTab) // submit
	press(f, tea.KeyEnter)

	if len(rec.entered) != 1 {
		t.Fatalf("expected token to be entered, got %+v", rec)
	}
	if got := rec.entered[0]; got.Mode() != twofactor.ModeRecovery || got.Value() != recoveryCode {
		t.Fatalf("unexpected token %v %q", got.Mode(), got.Value())
	}
}

// Scenario E
func TestEntryForm_SubmitInvalidShowsAlertAndReactivates(t *testing.T) {
	i18n.Init("en")
	rec := &recorder{}
	f := NewEntryForm(rec)

	f.SetText(" 12345 ")
	f.Submit()

	st := f.State()
	if st.Phase != PhaseRejected || !st.AlertShown {
		t.Fatalf("expected rejected phase with alert, got %+v", st)
	}
	if st.ModeEnabled || st.InputEnabled || st.SubmitEnabled || st.Accepting || st.InputFocused {
		t.Fatalf("controls must be locked while the alert is shown: %+v", st)
	}
	if len(rec.entered) != 0 || rec.cancelled != 0 {
		t.Fatalf("listener must not be called on invalid submit: %+v", rec)
	}
	view := f.View()
	if !strings.Contains(view, "Token is invalid") || !strings.Contains(view, "Enter a valid token.") {
		t.Fatalf("expected alert texts in view, got: %q", view)
	}

	// typing while the alert is up does not reach the input
	typeText(f, "9")
	if f.State().Text != " 12345 " {
		t.Fatalf("input changed behind the modal alert: %q", f.State().Text)
	}
	// esc dismisses the alert, it does not cancel the form
	press(f, tea.KeyEsc)
	if rec.cancelled != 0 {
		t.Fatalf("dismissing the alert must not cancel")
	}

	st = f.State()
	if st.Phase != PhaseEditing || st.AlertShown {
		t.Fatalf("expected editing phase after dismissal, got %+v", st)
	}
	if !st.InputEnabled || !st.ModeEnabled || !st.Accepting || !st.InputFocused {
		t.Fatalf("expected controls reactivated after dismissal, got %+v", st)
	}
	if st.SubmitEnabled {
		t.Fatalf("submit must follow validity after dismissal")
	}

	// the form is usable again
	f.SetText("123456")
	press(f, tea.KeyEnter)
	if len(rec.entered) != 1 {
		t.Fatalf("expected resubmission to succeed, got %+v", rec)
	}
}

// Scenario F
func TestEntryForm_CancelNotifiesOnce(t *testing.T) {
	i18n.Init("en")
	rec := &recorder{}
	f := NewEntryForm(rec)

	typeText(f, "123")
	press(f, tea.KeyEsc)
	press(f, tea.KeyEsc)
	f.Cancel()
	press(f, tea.KeyEnter)

	if rec.cancelled != 1 || len(rec.entered) != 0 {
		t.Fatalf("expected exactly one cancellation, got %+v", rec)
	}
	if f.State().Phase != PhaseCancelled {
		t.Fatalf("expected cancelled phase, got %v", f.State().Phase)
	}
}

func TestEntryForm_CancelButton(t *testing.T) {
	i18n.Init("en")
	rec := &recorder{}
	f := NewEntryForm(rec)

	f.SetText("123456")
	press(f, tea.KeyTab) // cancel button
	press(f, tea.KeyEnter)
	if rec.cancelled != 1 || len(rec.entered) != 0 {
		t.Fatalf("expected cancel via button, got %+v", rec)
	}
}

func TestEntryForm_UnknownModeNeverValidates(t *testing.T) {
	i18n.Init("en")
	rec := &recorder{}
	f := NewEntryForm(rec)

	f.SelectMode(2)
	f.SetText("123456")
	if f.State().SubmitEnabled {
		t.Fatalf("unknown mode must keep submit disabled")
	}
	f.Submit()
	if !f.State().AlertShown || len(rec.entered) != 0 {
		t.Fatalf("expected alert for unknown mode, got %+v", f.State())
	}
}

func TestEntryForm_ModeSelectorKeys(t *testing.T) {
	i18n.Init("en")
	f := NewEntryForm(&recorder{})

	press(f, tea.KeyShiftTab) // selector
	if f.State().InputFocused {
		t.Fatalf("input should lose focus when selector is focused")
	}
	press(f, tea.KeyRight)
	if f.State().Mode != twofactor.ModeRecovery {
		t.Fatalf("right should select recovery")
	}
	press(f, tea.KeyRight)
	if f.State().Mode != twofactor.ModeRecovery {
		t.Fatalf("right on the last segment must not leave the selector range")
	}
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	if f.State().Mode != twofactor.ModeNumeric {
		t.Fatalf("h should select numeric")
	}
	press(f, tea.KeyEnter) // back to the input
	if !f.State().InputFocused {
		t.Fatalf("enter on the selector should focus the input")
	}
}

func TestEntryForm_TabSkipsDisabledSubmit(t *testing.T) {
	i18n.Init("en")
	f := NewEntryForm(&recorder{})

	press(f, tea.KeyTab) // cancel
	press(f, tea.KeyTab) // submit disabled -> selector
	if f.focus != controlMode {
		t.Fatalf("expected focus on selector, got %v", f.focus)
	}
}

func TestEntryForm_DropsListenerAfterOutcome(t *testing.T) {
	i18n.Init("en")
	f := NewEntryForm(&recorder{})
	f.SetText("123456")
	f.Submit()
	if f.listener != nil {
		t.Fatalf("form must not keep its listener after the outcome")
	}
}

func TestEntryForm_ViewShowsControls(t *testing.T) {
	i18n.Init("en")
	f := NewEntryForm(&recorder{})
	out := f.View()
	for _, want := range []string{"Two-Factor Authentication", "Authenticator code", "Recovery code", "Back", "Done", "0/6 characters"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view, got: %q", want, out)
		}
	}
	f.SetText("123456")
	if !strings.Contains(f.View(), "ready to submit") {
		t.Fatalf("expected ready status in view")
	}
}
