// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for Twofa using the
// Cobra library. It defines the root command (the interactive entry form),
// the validate subcommand, flags, and the main entry point for execution.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/twofa/buildvars"
	"github.com/toeirei/twofa/internal/config"
	"github.com/toeirei/twofa/internal/i18n"
	"github.com/toeirei/twofa/internal/logging"
	"github.com/toeirei/twofa/internal/tui"
	"github.com/toeirei/twofa/internal/twofactor"
	"github.com/toeirei/twofa/internal/verifier"
	"golang.org/x/term"
)

// ErrCancelled is returned by the root command when the user backs out of
// the form.
var ErrCancelled = errors.New("two-factor entry cancelled")

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"language":    "lang",
	"mode":        "mode",
	"output":      "output",
	"clipboard":   "clipboard",
	"log.level":   "log-level",
	"log.file":    "log-file",
	"verify.skew": "skew",
}

// Seams for tests.
var (
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
	runForm = tui.Run
)

// app carries per-invocation state between PersistentPreRunE and the
// command handlers.
type app struct {
	cfgFile   string
	altScreen bool
	noHelp    bool
	cfg       config.Config
	mode    twofactor.Mode
	logFile io.Closer
}

// Execute runs the root command with the process arguments.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates a fresh root command. Tests build their own instances.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "twofa",
		Short: "Twofa asks for a two-factor token and prints it once it is well-formed.",
		Long: `Twofa shows a small terminal form for a two-factor token.
Pick the token type (a 6-digit authenticator code or a 44-letter recovery
code), type the token, and submit. The token is only checked for its shape;
the validated token is written to stdout for the calling program.

Use 'twofa validate' to run the same check without the form.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logFile != nil {
				_ = a.logFile.Close()
			}
		},
		RunE: a.runForm,
	}

	cmd.Version = buildvars.Describe("dev")

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/twofa/twofa.yaml or ./twofa.yaml)")
	cmd.PersistentFlags().String("lang", "en", `UI language ("en", "de")`)
	cmd.PersistentFlags().String("mode", "totp", `token type: "totp" or "recovery"`)
	cmd.PersistentFlags().StringP("output", "o", "text", `output format: "text", "json" or "yaml"`)
	cmd.PersistentFlags().Bool("clipboard", false, "also copy the accepted token to the clipboard")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	cmd.PersistentFlags().Uint("skew", 1, "accepted clock skew in 30s periods for the local TOTP check")

	cmd.Flags().BoolVar(&a.altScreen, "alt-screen", false, "show the form on the alternate screen")
	cmd.Flags().BoolVar(&a.noHelp, "no-help", false, "hide the key help below the form")

	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// setup loads configuration and initialises i18n and logging for every
// command.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, used, err := config.LoadConfig[config.Config](cmd.Flags(), flagKeys, config.Defaults(), a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	i18n.Init(cfg.Language)

	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		return err
	}
	if cfg.Log.File != "" {
		closer, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		a.logFile = closer
	}
	if used != "" {
		logging.Debugf("using config file %s", used)
	}
	if _, ok := i18n.GetAvailableLocales()[cfg.Language]; !ok {
		logging.Warnf("no translation for language %q, available: %s", cfg.Language, strings.Join(i18n.SortedLocales(), ", "))
	}

	a.mode, err = twofactor.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	if _, err := parseFormat(cfg.Output); err != nil {
		return err
	}
	return nil
}

// runForm shows the entry form and emits the accepted token.
func (a *app) runForm(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return errors.New(i18n.T("cli.error.no_terminal"))
	}

	// The form owns the terminal; keep stray log lines out of it.
	if a.cfg.Log.File == "" {
		logging.SetOutput(io.Discard)
		defer logging.SetOutput(cmd.ErrOrStderr())
	}

	opts := tui.RunOptions{Mode: a.mode, AltScreen: a.altScreen}
	if a.noHelp {
		opts.FormOpts = append(opts.FormOpts, tui.WithoutHelp())
	}
	outcome, err := runForm(cmd.Context(), nil, opts)
	if err != nil {
		return err
	}
	if outcome.Cancelled {
		logging.Infof("entry cancelled by user")
		return errCancelledLocalized()
	}
	return a.emit(cmd, outcome.Token)
}

// emit runs the optional verifier and writes the token to the configured
// sinks.
func (a *app) emit(cmd *cobra.Command, token twofactor.Token) error {
	if a.cfg.Verify.Secret != "" {
		v, err := verifier.NewTOTP(a.cfg.Verify.Secret, a.cfg.Verify.Skew)
		if err != nil {
			return fmt.Errorf("invalid verifier configuration: %w", err)
		}
		if err := v.Verify(token); err != nil {
			logging.Warnf("local verification failed for %s token: %v", token.Mode(), err)
			return fmt.Errorf("%s: %w", i18n.T("cli.error.verification_failed"), err)
		}
		logging.Debugf("local verification passed for %s token", token.Mode())
	}

	format, _ := parseFormat(a.cfg.Output)
	if err := writeToken(cmd.OutOrStdout(), token, format); err != nil {
		return err
	}

	if a.cfg.Clipboard {
		if err := copyToClipboard(token.Value()); err != nil {
			return fmt.Errorf("could not copy token to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.clipboard.copied"))
	}
	return nil
}

type cancelledError struct{ msg string }

func (e cancelledError) Error() string { return e.msg }
func (e cancelledError) Is(target error) bool {
	return target == ErrCancelled
}

// errCancelledLocalized carries the translated message while still matching
// ErrCancelled.
func errCancelledLocalized() error {
	return cancelledError{msg: i18n.T("cli.error.cancelled")}
}
