// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"grimm.is/cfgdoc/internal/config"
	"grimm.is/cfgdoc/internal/errors"
)

const defaultDebounce = 300 * time.Millisecond

func (a *app) watchCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Regenerate the documentation whenever a descriptor or Go source changes",
		Args:    cobra.NoArgs,
		PreRunE: a.load,
		RunE: a.wrap(func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, debounce)
		}),
	}
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before regenerating")
	return cmd
}

func (a *app) watch(ctx context.Context, debounce time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to create watcher")
	}
	defer w.Close()

	dirs := watchDirs(a.cfg)
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return errors.Attr(errors.Wrap(err, errors.KindNotFound, "failed to watch directory"), "path", dir)
		}
	}

	log := a.log.With("dirs", len(dirs))
	if err := a.generate(ctx); err != nil {
		a.fail(err)
	}
	a.note("watching %s", strings.Join(dirs, ", "))

	// Editors emit bursts of events per save; regenerate once per burst.
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isSourceFile(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			log.Debug("change detected", "op", ev.Op.String(), "file", ev.Name)
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)

		case <-timer.C:
			if err := a.generate(ctx); err != nil {
				// Keep watching; the next save may fix the descriptor.
				a.fail(err)
				log.Warn("regeneration failed", "error", err)
			}
		}
	}
}

// watchDirs returns the sorted directories holding descriptors, Go sources
// and the config file itself.
func watchDirs(cfg *config.Config) []string {
	seen := make(map[string]bool)
	add := func(dir string) {
		if dir == "" {
			dir = "."
		}
		seen[filepath.Clean(dir)] = true
	}

	for _, pattern := range cfg.Descriptors {
		// The directory part of a pattern may itself contain wildcards.
		if matches, err := filepath.Glob(pattern); err == nil {
			for _, m := range matches {
				add(filepath.Dir(m))
			}
		}
		if dir := filepath.Dir(pattern); !strings.ContainsAny(dir, "*?[") {
			add(dir)
		}
	}
	for _, dir := range cfg.GoSourceDirs {
		add(dir)
	}
	if cfg.Path != "" {
		add(filepath.Dir(cfg.Path))
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// isSourceFile reports whether a change to name can affect the output.
func isSourceFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	if strings.HasSuffix(base, "_test.go") {
		return false
	}
	switch filepath.Ext(base) {
	case ".hcl", ".yaml", ".yml", ".json", ".toml", ".go":
		return true
	}
	return false
}
