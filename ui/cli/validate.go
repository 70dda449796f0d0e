// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/toeirei/twofa/internal/i18n"
	"github.com/toeirei/twofa/internal/logging"
	"github.com/toeirei/twofa/internal/twofactor"
)

func newValidateCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate [token]",
		Short: "Check a token's shape without showing the form",
		Long: `Check a token against the rule of the selected type (--mode).
The token is read from the argument, or from the first line of stdin when
no argument is given. On success the token is written like the form would
write it; on failure the command exits with status 1.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readRawToken(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			token, err := twofactor.ComputeValidToken(a.mode, raw)
			if err != nil {
				logging.Debugf("validate: %v", err)
				return fmt.Errorf("%s. %s (%w)", i18n.T("twofa.error.invalid_token"), i18n.T("twofa.error.invalid_token_hint"), err)
			}

			if quiet {
				fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.validate.ok", token.Mode()))
				return nil
			}
			return a.emit(cmd, token)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report validity, do not print the token")

	return cmd
}

func readRawToken(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("could not read token from stdin: %w", err)
	}
	return "", errors.New("no token given")
}
