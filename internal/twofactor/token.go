// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

// package twofactor holds the token model shared by the entry form, the CLI
// and the listeners that receive a validated token.
package twofactor // import "github.com/toeirei/twofa/internal/twofactor"

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Mode selects the shape a token must have. The numeric values match the
// segment indices of the mode selector.
type Mode int

const (
	// ModeNumeric is a 6-digit time-based one-time code.
	ModeNumeric Mode = iota
	// ModeRecovery is a 44-character recovery code of lowercase letters.
	ModeRecovery
)

const (
	numericLength  = 6
	recoveryLength = 44
)

// ErrInvalidTokenFormat is returned when text does not match the shape rule
// of the selected mode.
var ErrInvalidTokenFormat = errors.New("token is invalid")

// Modes lists the selectable modes in selector order.
var Modes = []Mode{ModeNumeric, ModeRecovery}

func (m Mode) String() string {
	switch m {
	case ModeNumeric:
		return "totp"
	case ModeRecovery:
		return "recovery"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMode parses a mode name as used in config files and flags.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "totp", "numeric", "0":
		return ModeNumeric, nil
	case "recovery", "1":
		return ModeRecovery, nil
	}
	return 0, fmt.Errorf("unknown token mode %q (want totp or recovery)", s)
}

// ExpectedLength returns the required token length for m, or 0 for modes
// that never validate.
func ExpectedLength(m Mode) int {
	switch m {
	case ModeNumeric:
		return numericLength
	case ModeRecovery:
		return recoveryLength
	default:
		return 0
	}
}

// Token is a validated two-factor token. The zero value is not a valid token.
type Token struct {
	mode  Mode
	value string
}

// Mode reports which shape rule the token satisfied.
func (t Token) Mode() Mode { return t.mode }

// Value returns the trimmed token text.
func (t Token) Value() string { return t.value }

// IsZero reports whether t was not produced by ComputeValidToken.
func (t Token) IsZero() bool { return t.value == "" }

// String keeps the secret out of logs and error messages.
func (t Token) String() string {
	if t.IsZero() {
		return "<none>"
	}
	return t.mode.String() + ":" + strings.Repeat("*", len(t.value))
}

type tokenDoc struct {
	Mode  string `json:"mode" yaml:"mode"`
	Token string `json:"token" yaml:"token"`
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenDoc{Mode: t.mode.String(), Token: t.value})
}

func (t Token) MarshalYAML() (any, error) {
	return tokenDoc{Mode: t.mode.String(), Token: t.value}, nil
}

// ComputeValidToken trims raw and checks it against the shape rule of mode.
// It is the only way to construct a Token.
func ComputeValidToken(mode Mode, raw string) (Token, error) {
	s := strings.TrimSpace(raw)

	var ok bool
	switch mode {
	case ModeNumeric:
		ok = len(s) == numericLength && allBytesIn(s, '0', '9')
	case ModeRecovery:
		ok = len(s) == recoveryLength && allBytesIn(s, 'a', 'z')
	}
	if !ok {
		return Token{}, fmt.Errorf("%w: mode %s, length %d", ErrInvalidTokenFormat, mode, len([]rune(s)))
	}
	return Token{mode: mode, value: s}, nil
}

// Valid reports whether raw is a valid token for mode.
func Valid(mode Mode, raw string) bool {
	_, err := ComputeValidToken(mode, raw)
	return err == nil
}

// allBytesIn reports whether every byte of s lies in [lo, hi]. Multi-byte
// runes never match since their bytes are all >= 0x80.
func allBytesIn(s string, lo, hi byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < lo || s[i] > hi {
			return false
		}
	}
	return true
}
