// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"grimm.is/cfgdoc/internal/errors"
)

func (a *app) generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Short:   "Scan every configuration root and write the documentation files",
		Args:    cobra.NoArgs,
		PreRunE: a.load,
		RunE: a.wrap(func(cmd *cobra.Command, _ []string) error {
			return a.generate(cmd.Context())
		}),
	}
}

// generate runs the pipeline and writes changed files to the output dir.
func (a *app) generate(ctx context.Context) error {
	res, err := a.run(ctx)
	if err != nil {
		return err
	}

	written, err := res.files.WriteToDir(a.cfg.OutputDir)
	if err != nil {
		return err
	}
	res.metrics.FilesWritten.Add(float64(written))

	if a.cfg.MetricsFile != "" {
		if err := res.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
			return errors.Attr(err, "run", res.output.RunID)
		}
	}

	a.log.Info("documentation generated",
		"run", res.output.RunID,
		"files", len(res.files),
		"written", written,
		"elapsed", res.elapsed)

	if written == 0 {
		a.ok("%d files up to date in %s", len(res.files), a.cfg.OutputDir)
	} else {
		a.ok("wrote %d of %d files to %s", written, len(res.files), a.cfg.OutputDir)
	}
	a.note("run %s, %d roots, %s", res.output.RunID, len(res.output.Roots), res.elapsed.Round(time.Millisecond))
	return nil
}
