// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Callers should use the helper functions
// below instead of reaching for L directly.
var L = clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "twofa"})

// SetLevel parses a level name ("debug", "info", "warn", "error") and
// applies it to L.
func SetLevel(level string) error {
	lvl, err := clog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	L.SetLevel(lvl)
	return nil
}

// SetOutput redirects L. The TUI owns the terminal while the form is shown,
// so the CLI points this at a file or io.Discard.
func SetOutput(w io.Writer) {
	L.SetOutput(w)
}

// OpenFile points L at path (appending) and returns the file for closing.
// An empty path discards all output.
func OpenFile(path string) (io.Closer, error) {
	if path == "" {
		SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("could not open log file %s: %w", path, err)
	}
	SetOutput(f)
	return f, nil
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
