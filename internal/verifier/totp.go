// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

// Package verifier checks accepted tokens against a locally known TOTP
// secret. The entry form never calls it; the CLI applies it to the token
// the form reported.
package verifier

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/toeirei/twofa/internal/twofactor"
)

// ErrCodeRejected is returned when a numeric token does not match the secret.
var ErrCodeRejected = errors.New("code rejected by verifier")

// TOTP validates numeric tokens with the standard 30s/6-digit/SHA1 profile.
type TOTP struct {
	secret string
	skew   uint
	now    func() time.Time
}

// NewTOTP returns a verifier for a base32 secret. skew is the number of
// periods accepted on either side of the current one.
func NewTOTP(secret string, skew uint) (*TOTP, error) {
	secret = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(secret), " ", ""))
	if secret == "" {
		return nil, fmt.Errorf("secret cannot be empty")
	}
	return &TOTP{secret: secret, skew: skew, now: time.Now}, nil
}

// Verify checks token. Recovery tokens cannot be checked locally and pass
// through.
func (v *TOTP) Verify(token twofactor.Token) error {
	if token.Mode() != twofactor.ModeNumeric {
		return nil
	}
	valid, err := totp.ValidateCustom(token.Value(), v.secret, v.now().UTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      v.skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return fmt.Errorf("failed to validate code: %w", err)
	}
	if !valid {
		return ErrCodeRejected
	}
	return nil
}
