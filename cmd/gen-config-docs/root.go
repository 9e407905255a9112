// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"io"

	"github.com/spf13/cobra"

	"grimm.is/cfgdoc/internal/config"
	"grimm.is/cfgdoc/internal/logging"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	cfg        *config.Config
	log        *logging.Logger
	out        io.Writer
	styles     styles
}

func newRootCmd() *cobra.Command {
	a := &app{styles: newStyles()}

	root := &cobra.Command{
		Use:           "gen-config-docs",
		Short:         "Generate configuration reference documentation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultFile, "path to the tool configuration")

	// Flag errors are printed like command failures.
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		a.out = cmd.ErrOrStderr()
		a.fail(err)
		return err
	})

	root.AddCommand(
		a.generateCmd(),
		a.checkCmd(),
		a.watchCmd(),
		a.cacheCmd(),
		a.initCmd(),
	)
	return root
}

// load reads the config file and installs the configured logger. It is
// the PreRunE of every command that needs a config.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	a.out = cmd.OutOrStdout()
	cfg, err := config.Load(a.configPath)
	if err != nil {
		a.fail(err)
		return err
	}
	a.cfg = cfg

	logCfg := cfg.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logging.SetDefault(logging.New(logCfg))
	a.log = logging.WithComponent("cli")
	return nil
}

// wrap turns a command body into a RunE that reports failures styled.
func (a *app) wrap(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			a.fail(err)
			return err
		}
		return nil
	}
}
