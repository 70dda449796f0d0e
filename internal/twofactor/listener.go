// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

package twofactor

// Listener receives the outcome of a two-factor entry. Exactly one of the
// methods is called, at most once, per form instance.
type Listener interface {
	TwoFactorEntered(token Token)
	TwoFactorCancelled()
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Entered   func(Token)
	Cancelled func()
}

func (l ListenerFuncs) TwoFactorEntered(token Token) {
	if l.Entered != nil {
		l.Entered(token)
	}
}

func (l ListenerFuncs) TwoFactorCancelled() {
	if l.Cancelled != nil {
		l.Cancelled()
	}
}

// ListenerFuncs implements Listener
var _ Listener = ListenerFuncs{}
