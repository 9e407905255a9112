// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/cfgdoc/internal/configdoc"
	"grimm.is/cfgdoc/internal/descriptor"
	"grimm.is/cfgdoc/internal/logging"
)

const model = `
root "quarkus.a" {
  type = "io.acme.A"
}

root "quarkus.b" {
  type = "io.acme.B"
}

composite "io.acme.A" {
  member "port" { type = "int" }
  member "pool" { type = "io.acme.Pool" }
}

composite "io.acme.B" {
  member "pool" { type = "io.acme.Pool" }
}

group "io.acme.Pool" {
  member "size" { type = "int" }
}
`

func TestObserverCounts(t *testing.T) {
	m := New()
	mod, err := descriptor.ParseHCL([]byte(model), "model.hcl")
	require.NoError(t, err)

	g := configdoc.NewGenerator(mod, nil, nil, configdoc.Options{Observer: m, Logger: logging.Discard()})
	_, err = g.Run(context.Background())
	require.NoError(t, err)

	// a.port, a.pool, pool.size (raw), b.pool
	assert.Equal(t, 4.0, testutil.ToFloat64(m.MembersScanned))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ItemsEmitted.WithLabelValues("section")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ItemsEmitted.WithLabelValues("key")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.ScanDuration))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.MemberScanned()
	m.RootScanned("quarkus.a", 3*time.Millisecond)

	path := filepath.Join(t.TempDir(), "cfgdoc.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cfgdoc_members_scanned_total 1")
	assert.Contains(t, string(data), `cfgdoc_scan_duration_seconds_count{root="quarkus.a"} 1`)
}

func TestWriteTextfileBadPath(t *testing.T) {
	m := New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}
