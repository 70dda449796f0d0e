// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/twofa/internal/twofactor"
)

// ErrNoOutcome is returned by Run when the program ended before the form
// reported a token or a cancellation.
var ErrNoOutcome = errors.New("two-factor entry ended without an outcome")

// Outcome is what the form reported to the host.
type Outcome struct {
	Token     twofactor.Token
	Cancelled bool
}

// RunOptions configures Run. Zero values use the process terminal.
type RunOptions struct {
	Mode      twofactor.Mode
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
	FormOpts  []Option
}

// hostModel presents the form and dismisses it once the listener has been
// notified, the way a navigation stack pops a finished screen.
type hostModel struct {
	form    *EntryForm
	outcome *Outcome
}

func newHostModel(listener twofactor.Listener, outcome *Outcome, opts ...Option) *hostModel {
	recorder := twofactor.ListenerFuncs{
		Entered: func(t twofactor.Token) {
			outcome.Token = t
			if listener != nil {
				listener.TwoFactorEntered(t)
			}
		},
		Cancelled: func() {
			outcome.Cancelled = true
			if listener != nil {
				listener.TwoFactorCancelled()
			}
		},
	}
	return &hostModel{form: NewEntryForm(recorder, opts...), outcome: outcome}
}

func (h *hostModel) Init() tea.Cmd {
	return h.form.Init()
}

func (h *hostModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := h.form.Update(msg)
	if h.form.State().Phase.Terminal() {
		return h, tea.Quit
	}
	return h, cmd
}

func (h *hostModel) View() string {
	if h.form.State().Phase.Terminal() {
		return ""
	}
	return h.form.View()
}

// Run shows the entry form until the user submits a valid token or cancels.
// listener, if not nil, is notified before Run returns.
func Run(ctx context.Context, listener twofactor.Listener, opts RunOptions) (Outcome, error) {
	var outcome Outcome
	formOpts := append([]Option{WithMode(opts.Mode)}, opts.FormOpts...)
	host := newHostModel(listener, &outcome, formOpts...)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(host, progOpts...).Run(); err != nil {
		return outcome, fmt.Errorf("two-factor entry: %w", err)
	}
	if outcome.Token.IsZero() && !outcome.Cancelled {
		return outcome, ErrNoOutcome
	}
	return outcome, nil
}
