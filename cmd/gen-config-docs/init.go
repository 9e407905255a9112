// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"os"

	"github.com/spf13/cobra"

	"grimm.is/cfgdoc/internal/config"
	"grimm.is/cfgdoc/internal/errors"
)

func (a *app) initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.out = cmd.OutOrStdout()
			err := a.writeDefaultConfig(force)
			if err != nil {
				a.fail(err)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (a *app) writeDefaultConfig(force bool) error {
	if _, err := os.Stat(a.configPath); err == nil && !force {
		return errors.Attr(errors.New(errors.KindConflict, "config file already exists"), "path", a.configPath)
	}
	if err := os.WriteFile(a.configPath, config.Encode(config.DefaultConfig()), 0o644); err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to write config"), "path", a.configPath)
	}
	a.ok("wrote %s", a.configPath)
	return nil
}
