// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"grimm.is/cfgdoc/internal/configdoc"
	"grimm.is/cfgdoc/internal/errors"
)

func testOutput() *configdoc.Output {
	items := []configdoc.ConfigDocItem{
		configdoc.KeyItem(&configdoc.ConfigKey{
			Key: "quarkus.server.port", Type: "int", DefaultValue: "8080",
			ConfigDoc: "The HTTP port.", Phase: configdoc.PhaseBuildTime,
		}),
		configdoc.KeyItem(&configdoc.ConfigKey{
			Key: "quarkus.server.name", Type: "string", Phase: configdoc.PhaseRunTime,
		}),
		configdoc.KeyItem(&configdoc.ConfigKey{
			Key: "quarkus.server.mode", Type: "Mode", Enum: true, DefaultValue: "fast",
			AcceptedValues: []string{"tooltip:fast[Go fast.]", "slow"}, Phase: configdoc.PhaseRunTime,
		}),
		configdoc.KeyItem(&configdoc.ConfigKey{
			Key: "quarkus.server.hosts", Type: "list of string", List: true, Optional: true,
			Phase: configdoc.PhaseRunTime,
		}),
		configdoc.SectionItem(&configdoc.ConfigSection{
			Name: "quarkus.server.tls", SectionDetailsTitle: "TLS settings",
			SectionDetails: "TLS settings. Only used with a certificate.", ShowSection: true, Optional: true,
			Phase: configdoc.PhaseRunTime,
			Items: []configdoc.ConfigDocItem{
				configdoc.KeyItem(&configdoc.ConfigKey{
					Key: "quarkus.server.tls.enabled", Type: "boolean", DefaultValue: "false",
					Phase: configdoc.PhaseRunTime,
				}),
			},
		}),
	}
	return &configdoc.Output{
		RunID: "test",
		Files: map[string][]configdoc.ConfigDocItem{"acme-server": items},
	}
}

func render(t *testing.T, format string) Files {
	t.Helper()
	r, err := New(format)
	require.NoError(t, err)
	assert.Equal(t, format, r.Format())
	files, err := r.Render(testOutput())
	require.NoError(t, err)
	return files
}

func TestMarkdown(t *testing.T) {
	files := render(t, "markdown")
	require.Equal(t, []string{"acme-server.md"}, files.Paths())
	md := string(files["acme-server.md"])

	assert.True(t, strings.HasPrefix(md, "# Acme Server\n\n"))
	assert.Contains(t, md, lockIcon+" Configuration property fixed at build time.")
	assert.Contains(t, md, "| "+lockIcon+" `quarkus.server.port` | `int` | `8080` | The HTTP port. Environment variable: `QUARKUS_SERVER_PORT`. |")
	assert.Contains(t, md, "| `quarkus.server.name` | `string` | required |")
	assert.Contains(t, md, "Values: `fast` (Go fast.), `slow`.")
	assert.Contains(t, md, "| `quarkus.server.hosts` | `list of string` |  |")
	assert.Contains(t, md, "## TLS settings\n\n*Optional.* TLS settings. Only used with a certificate.\n\n")
	assert.Contains(t, md, "| `quarkus.server.tls.enabled` | `boolean` | `false` |")
}

func TestHugo(t *testing.T) {
	files := render(t, "hugo")
	require.Equal(t, []string{"hugo/_index.md", "hugo/acme-server.md"}, files.Paths())

	assert.Contains(t, string(files["hugo/_index.md"]), `| [Acme Server]({{< relref "acme-server" >}}) | 5 |`)

	page := string(files["hugo/acme-server.md"])
	assert.True(t, strings.HasPrefix(page, "---\ntitle: Acme Server\nlinkTitle: Acme Server\nweight: 20\ndescription: TLS settings\n---\n\n"), page)
	assert.Contains(t, page, "`quarkus.server.tls.enabled`")
}

func TestSchema(t *testing.T) {
	js := GenerateSchema("acme-server", testOutput().Files["acme-server"])

	assert.Equal(t, "object", js.Type)
	assert.Equal(t, []string{"quarkus.server.name"}, js.Required)

	port := js.Properties["quarkus.server.port"]
	assert.Equal(t, "integer", port.Type)
	assert.Equal(t, int64(8080), port.Default)
	assert.Equal(t, "BUILD_TIME", port.Phase)
	assert.Equal(t, "QUARKUS_SERVER_PORT", port.EnvVar)

	mode := js.Properties["quarkus.server.mode"]
	assert.Equal(t, "string", mode.Type)
	assert.Equal(t, []string{"fast", "slow"}, mode.Enum)

	hosts := js.Properties["quarkus.server.hosts"]
	assert.Equal(t, "array", hosts.Type)
	assert.Equal(t, "string", hosts.Items.Type)

	assert.Equal(t, false, js.Properties["quarkus.server.tls.enabled"].Default)

	files := render(t, "schema")
	assert.Contains(t, string(files["acme-server.schema.json"]), `"$schema": "https://json-schema.org/draft/2020-12/schema"`)
}

func TestYAMLQuickReference(t *testing.T) {
	files := render(t, "yaml")
	data := files["acme-server.yaml"]
	assert.Contains(t, string(data), "# Acme Server quick reference")
	assert.Contains(t, string(data), "# The HTTP port\n")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	port := doc["quarkus.server.port"].(map[string]any)
	assert.Equal(t, "8080", port["default"])
	assert.Equal(t, "BUILD_TIME", port["phase"])

	mode := doc["quarkus.server.mode"].(map[string]any)
	assert.Equal(t, []any{"fast", "slow"}, mode["values"])

	tls := doc["quarkus.server.tls"].(map[string]any)
	assert.Contains(t, tls, "quarkus.server.tls.enabled")
}

func TestJSON(t *testing.T) {
	files := render(t, "json")
	items, err := configdoc.DecodeItems(files["acme-server.json"])
	require.NoError(t, err)
	assert.Len(t, configdoc.Keys(items), 5)
}

func TestRenderAll(t *testing.T) {
	files, err := RenderAll(testOutput(), []string{"markdown", "hugo", "schema", "yaml", "json"})
	require.NoError(t, err)
	assert.Len(t, files, 6)

	_, err = RenderAll(testOutput(), []string{"pdf"})
	assert.True(t, errors.IsKind(err, errors.KindUnsupported))

	_, err = RenderAll(testOutput(), []string{"markdown", "markdown"})
	assert.True(t, errors.IsKind(err, errors.KindConflict))
}

func TestWriteToDirAndDiff(t *testing.T) {
	dir := t.TempDir()
	files := render(t, "markdown")

	diff, err := files.Diff(dir)
	require.NoError(t, err)
	assert.Contains(t, diff, "+++ b/acme-server.md")

	n, err := files.WriteToDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = files.WriteToDir(dir)
	require.NoError(t, err)
	assert.Zero(t, n, "unchanged files are not rewritten")

	diff, err = files.Diff(dir)
	require.NoError(t, err)
	assert.Empty(t, diff)

	path := filepath.Join(dir, "acme-server.md")
	require.NoError(t, os.WriteFile(path, []byte("# Stale\n"), 0o644))
	diff, err = files.Diff(dir)
	require.NoError(t, err)
	assert.Contains(t, diff, "--- a/acme-server.md")
	assert.Contains(t, diff, "-# Stale")
	assert.Contains(t, diff, "+# Acme Server")
}

func TestWriteToDirRejectsEscapingPaths(t *testing.T) {
	dir := t.TempDir()
	_, err := Files{"../outside.md": []byte("x")}.WriteToDir(dir)
	assert.True(t, errors.IsKind(err, errors.KindValidation))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "outside.md"))
}

func TestAcceptedValue(t *testing.T) {
	v, doc := acceptedValue("tooltip:red[Red [hot] color.]")
	assert.Equal(t, "red", v)
	assert.Equal(t, "Red [hot] color.", doc)

	v, doc = acceptedValue("plain")
	assert.Equal(t, "plain", v)
	assert.Empty(t, doc)
}
