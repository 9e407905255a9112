// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"grimm.is/cfgdoc/internal/errors"
)

// errStale is returned by check when the output dir differs from a fresh run.
var errStale = errors.New(errors.KindConflict, "documentation is stale, run gen-config-docs generate")

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fail when the documentation files are out of date",
		Long: "check renders the documentation in memory and compares it with the output\n" +
			"directory. Differences are printed as a unified diff.",
		Args:    cobra.NoArgs,
		PreRunE: a.load,
		RunE: a.wrap(func(cmd *cobra.Command, _ []string) error {
			res, err := a.run(cmd.Context())
			if err != nil {
				return err
			}
			diff, err := res.files.Diff(a.cfg.OutputDir)
			if err != nil {
				return err
			}
			a.log.Debug("check finished", "run", res.output.RunID, "stale", diff != "")
			if diff != "" {
				fmt.Fprint(a.out, diff)
				return errStale
			}
			a.ok("%d files up to date in %s", len(res.files), a.cfg.OutputDir)
			return nil
		}),
	}
}
