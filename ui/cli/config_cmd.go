// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/toeirei/twofa/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialise the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg
			if c.Verify.Secret != "" {
				c.Verify.Secret = "********"
			}
			data, err := yaml.Marshal(&c)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the user config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg
			path, err := config.WriteConfigFile(&c, false)
			if err != nil {
				return fmt.Errorf("could not write config file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print where 'config init' writes the user config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.UserConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}
