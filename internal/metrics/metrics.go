// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package metrics exposes generation statistics as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"grimm.is/cfgdoc/internal/configdoc"
	"grimm.is/cfgdoc/internal/errors"
)

var _ configdoc.Observer = (*Metrics)(nil)

// Metrics holds the scanner counters. It implements configdoc.Observer.
type Metrics struct {
	registry *prometheus.Registry

	MembersScanned prometheus.Counter
	CacheRequests  *prometheus.CounterVec
	ItemsEmitted   *prometheus.CounterVec
	ScanDuration   *prometheus.HistogramVec
	FilesWritten   prometheus.Counter
}

// New creates the metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		MembersScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cfgdoc_members_scanned_total",
			Help: "Total number of documented members visited by the scanner",
		}),
		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cfgdoc_group_cache_requests_total",
				Help: "Group cache lookups by result",
			},
			[]string{"result"},
		),
		ItemsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cfgdoc_items_emitted_total",
				Help: "Documentation items produced by kind",
			},
			[]string{"kind"},
		),
		ScanDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cfgdoc_scan_duration_seconds",
				Help:    "Time spent scanning one configuration root",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"root"},
		),
		FilesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cfgdoc_files_written_total",
			Help: "Documentation files written to the output directory",
		}),
	}

	m.registry.MustRegister(
		m.MembersScanned,
		m.CacheRequests,
		m.ItemsEmitted,
		m.ScanDuration,
		m.FilesWritten,
	)
	return m
}

// Registry returns the registry holding all cfgdoc metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) MemberScanned() {
	m.MembersScanned.Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) ItemEmitted(section bool) {
	kind := "key"
	if section {
		kind = "section"
	}
	m.ItemsEmitted.WithLabelValues(kind).Inc()
}

func (m *Metrics) RootScanned(root string, elapsed time.Duration) {
	m.ScanDuration.WithLabelValues(root).Observe(elapsed.Seconds())
}

// WriteTextfile dumps the current values in the node_exporter textfile
// format. Batch runs have no scrape endpoint, so this is how they report.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to write metrics textfile"), "path", path)
	}
	return nil
}
