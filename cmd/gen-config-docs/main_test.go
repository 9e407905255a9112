// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/cfgdoc/internal/config"
	"grimm.is/cfgdoc/internal/errors"
)

const descriptorHCL = `
root "quarkus.server" {
  type  = "io.acme.ServerConfig"
  owner = "acme-server"
}

composite "io.acme.ServerConfig" {
  member "port" {
    type    = "int"
    default = 8080
  }
  member "tls" {
    type = "io.acme.GroupTls"
  }
}

group "io.acme.GroupTls" {
  member "enabled" {
    type    = "boolean"
    default = true
  }
}
`

const toolHCL = `
descriptors = ["descriptors/*.hcl"]
output_dir  = "docs"
formats     = ["markdown", "schema"]

log {
  level = "error"
}
`

// workspace lays out a config file and one descriptor under a temp dir.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "descriptors"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "descriptors", "server.hcl"), []byte(descriptorHCL), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte(toolHCL), 0o644))
	return dir
}

func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, config.DefaultFile)}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateAndCheck(t *testing.T) {
	dir := workspace(t)

	out, err := execute(t, dir, "generate")
	require.NoError(t, err, out)
	assert.Contains(t, out, "wrote 4 of 4 files")

	for _, name := range []string{"acme-server.md", "acme-server-server.md", "acme-server.schema.json", "acme-server-server.schema.json"} {
		assert.FileExists(t, filepath.Join(dir, "docs", name))
	}
	md, err := os.ReadFile(filepath.Join(dir, "docs", "acme-server.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "`quarkus.server.tls.enabled`")

	out, err = execute(t, dir, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "4 files up to date")

	out, err = execute(t, dir, "check")
	require.NoError(t, err, out)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "acme-server.md"), []byte("# Old\n"), 0o644))
	out, err = execute(t, dir, "check")
	require.ErrorIs(t, err, errStale)
	assert.Contains(t, out, "-# Old")
	assert.Contains(t, out, "documentation is stale")
}

func TestCacheListAndClear(t *testing.T) {
	dir := workspace(t)
	_, err := execute(t, dir, "generate")
	require.NoError(t, err)

	out, err := execute(t, dir, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "groups (1)")
	assert.Contains(t, out, "  io.acme.GroupTls")
	assert.Contains(t, out, "roots (1)")
	assert.Contains(t, out, "  quarkus.server")

	out, err = execute(t, dir, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared 1 groups entries")

	out, err = execute(t, dir, "cache", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "groups (0)")
}

func TestMissingConfig(t *testing.T) {
	out, err := execute(t, t.TempDir(), "generate")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
	assert.Contains(t, out, "failed to read config file")
	assert.Contains(t, out, "path=")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, []string{config.FormatMarkdown}, cfg.Formats)

	_, err = execute(t, dir, "init")
	assert.True(t, errors.IsKind(err, errors.KindConflict))

	_, err = execute(t, dir, "init", "--force")
	assert.NoError(t, err)
}

func TestWatchDirs(t *testing.T) {
	dir := workspace(t)
	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	cfg.GoSourceDirs = []string{filepath.Join(dir, "pkg")}

	assert.Equal(t, []string{dir, filepath.Join(dir, "descriptors"), filepath.Join(dir, "pkg")}, watchDirs(cfg))
}

func TestIsSourceFile(t *testing.T) {
	for name, want := range map[string]bool{
		"descriptors/server.hcl":      true,
		"descriptors/server.yml":      true,
		"pkg/config.go":               true,
		"pkg/config_test.go":          false,
		"descriptors/.server.hcl.swp": false,
		"descriptors/server.hcl~":     false,
		"README.md":                   false,
	} {
		assert.Equal(t, want, isSourceFile(name), name)
	}
}

func TestFormatAttrs(t *testing.T) {
	assert.Empty(t, formatAttrs(nil))
	assert.Equal(t, "key=k path=a.hcl", formatAttrs(map[string]any{"path": "a.hcl", "key": "k"}))
}
