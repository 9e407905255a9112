// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"context"
	"time"

	"grimm.is/cfgdoc/internal/config"
	"grimm.is/cfgdoc/internal/configdoc"
	"grimm.is/cfgdoc/internal/descriptor"
	"grimm.is/cfgdoc/internal/errors"
	"grimm.is/cfgdoc/internal/groupcache"
	"grimm.is/cfgdoc/internal/metrics"
	"grimm.is/cfgdoc/internal/render"
)

// Cache namespaces.
const (
	groupsNamespace = "groups"
	rootsNamespace  = "roots"
)

// result is one rendered generation run.
type result struct {
	output  *configdoc.Output
	files   render.Files
	metrics *metrics.Metrics
	elapsed time.Duration
}

// loadModel merges every descriptor file and Go source directory.
func loadModel(cfg *config.Config) (*descriptor.Model, error) {
	model := descriptor.NewModel()
	if len(cfg.Descriptors) > 0 {
		m, err := descriptor.LoadGlobs(cfg.Descriptors)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(m); err != nil {
			return nil, err
		}
	}
	for _, dir := range cfg.GoSourceDirs {
		m, err := descriptor.ParseGoDir(dir)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(m); err != nil {
			return nil, errors.Attr(err, "path", dir)
		}
	}
	if len(model.Roots) == 0 {
		return nil, errors.New(errors.KindNotFound, "no configuration roots found")
	}
	return model, nil
}

func openStores(cfg *config.Config) (groups, roots groupcache.Store, err error) {
	groups, err = groupcache.Open(cfg.Cache.Backend, cfg.Cache.Path, groupsNamespace)
	if err != nil {
		return nil, nil, err
	}
	roots, err = groupcache.Open(cfg.Cache.Backend, cfg.Cache.Path, rootsNamespace)
	if err != nil {
		groups.Close()
		return nil, nil, err
	}
	return groups, roots, nil
}

// run loads the model, scans every root and renders the configured formats.
// Nothing is written to the output directory.
func (a *app) run(ctx context.Context) (*result, error) {
	start := time.Now()

	model, err := loadModel(a.cfg)
	if err != nil {
		return nil, err
	}

	groups, roots, err := openStores(a.cfg)
	if err != nil {
		return nil, err
	}
	defer groups.Close()
	defer roots.Close()

	m := metrics.New()
	opts := a.cfg.ScannerOptions()
	opts.Observer = m
	opts.Logger = a.log

	gen := configdoc.NewGenerator(model, configdoc.NewGroupCache(groups), roots, opts)
	out, err := gen.Run(ctx)
	if err != nil {
		return nil, err
	}

	files, err := render.RenderAll(out, a.cfg.Formats)
	if err != nil {
		return nil, err
	}
	return &result{output: out, files: files, metrics: m, elapsed: time.Since(start)}, nil
}
