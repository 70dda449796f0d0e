// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/goccy/go-yaml"
	"github.com/toeirei/twofa/internal/twofactor"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	case "":
		return formatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// writeToken writes the accepted token. Text output is the bare token so
// callers can use $(twofa).
func writeToken(w io.Writer, token twofactor.Token, format outputFormat) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		return enc.Encode(token)
	case formatYAML:
		data, err := yaml.Marshal(token)
		if err != nil {
			return fmt.Errorf("could not encode token: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		_, err := fmt.Fprintln(w, token.Value())
		return err
	}
}
