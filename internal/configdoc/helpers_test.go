// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"grimm.is/cfgdoc/internal/descriptor"
	"grimm.is/cfgdoc/internal/logging"
)

const serverModel = `
root "quarkus.server" {
  type  = "io.acme.ServerConfig"
  owner = "acme-server"
  phase = "build_time"
}

composite "io.acme.ServerConfig" {
  member "port" {
    type    = "int"
    default = "8080"
    doc     = "The HTTP port."
  }
  member "tls" {
    type = "java.util.Optional<io.acme.GroupTls>"
    doc  = "TLS settings. Only used when a certificate is configured."
  }
}

group "io.acme.GroupTls" {
  member "enabled" {
    type = "boolean"
  }
  member "cert-path" {
    type = "java.util.Optional<java.lang.String>"
  }
}
`

func loadModel(t *testing.T, src string) *descriptor.Model {
	t.Helper()
	m, err := descriptor.ParseHCL([]byte(src), "test.hcl")
	require.NoError(t, err)
	return m
}

func newTestScanner(m *descriptor.Model, opts Options) *Scanner {
	opts.Logger = logging.Discard()
	return NewScanner(m, NewGroupCache(nil), opts)
}

func scanRoot(t *testing.T, s *Scanner, m *descriptor.Model, name string) []ConfigDocItem {
	t.Helper()
	for _, r := range m.Roots {
		if r.Name == name {
			items, err := s.ScanRoot(context.Background(), r)
			require.NoError(t, err)
			return items
		}
	}
	t.Fatalf("root %s not found", name)
	return nil
}

func keyByName(t *testing.T, items []ConfigDocItem, key string) *ConfigKey {
	t.Helper()
	for _, k := range Keys(items) {
		if k.Key == key {
			return k
		}
	}
	t.Fatalf("key %s not found", key)
	return nil
}

func keyNames(items []ConfigDocItem) []string {
	var out []string
	for _, k := range Keys(items) {
		out = append(out, k.Key)
	}
	return out
}
