// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package render turns generated documentation items into output files.
package render

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"grimm.is/cfgdoc/internal/configdoc"
	"grimm.is/cfgdoc/internal/errors"
	"grimm.is/cfgdoc/internal/validation"
)

// Renderer produces output files for one format.
type Renderer interface {
	Format() string
	Render(out *configdoc.Output) (Files, error)
}

// New returns the renderer for format.
func New(format string) (Renderer, error) {
	switch format {
	case "markdown":
		return markdownRenderer{}, nil
	case "hugo":
		return hugoRenderer{}, nil
	case "schema":
		return schemaRenderer{}, nil
	case "yaml":
		return yamlRenderer{}, nil
	case "json":
		return jsonRenderer{}, nil
	}
	return nil, errors.Attr(errors.New(errors.KindUnsupported, "unknown output format"), "format", format)
}

// RenderAll runs the renderers for formats and merges their files.
func RenderAll(out *configdoc.Output, formats []string) (Files, error) {
	all := make(Files)
	for _, f := range formats {
		r, err := New(f)
		if err != nil {
			return nil, err
		}
		files, err := r.Render(out)
		if err != nil {
			return nil, errors.Attr(err, "format", f)
		}
		for path, content := range files {
			if _, dup := all[path]; dup {
				return nil, errors.Attr(errors.Errorf(errors.KindConflict, "two formats write %s", path), "format", f)
			}
			all[path] = content
		}
	}
	return all, nil
}

// Files maps output paths, relative to the output directory, to contents.
type Files map[string][]byte

// Paths returns the file paths in sorted order.
func (f Files) Paths() []string {
	paths := make([]string, 0, len(f))
	for p := range f {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// WriteToDir writes every file below dir and returns how many files had to
// be written. Files whose content is unchanged are left alone.
func (f Files) WriteToDir(dir string) (int, error) {
	written := 0
	for _, p := range f.Paths() {
		if err := validation.ValidateRelativePath(p); err != nil {
			return written, err
		}
		full := filepath.Join(dir, filepath.FromSlash(p))
		if old, err := os.ReadFile(full); err == nil && bytes.Equal(old, f[p]) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return written, errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to create output directory"), "path", full)
		}
		if err := os.WriteFile(full, f[p], 0o644); err != nil {
			return written, errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to write output file"), "path", full)
		}
		written++
	}
	return written, nil
}

// Diff compares the files with what is on disk below dir and returns a
// unified diff of every stale or missing file. An empty result means the
// directory is up to date.
func (f Files) Diff(dir string) (string, error) {
	var sb strings.Builder
	for _, p := range f.Paths() {
		full := filepath.Join(dir, filepath.FromSlash(p))
		old, err := os.ReadFile(full)
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to read output file"), "path", full)
		}
		if bytes.Equal(old, f[p]) {
			continue
		}
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(old)),
			B:        difflib.SplitLines(string(f[p])),
			FromFile: "a/" + p,
			ToFile:   "b/" + p,
			Context:  3,
		})
		if err != nil {
			return "", errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to diff output file"), "path", p)
		}
		sb.WriteString(diff)
	}
	return sb.String(), nil
}

var titleCase = cases.Title(language.English)

// titleFor turns a file id such as acme-server-http into "Acme Server Http".
func titleFor(id string) string {
	return titleCase.String(strings.ReplaceAll(id, "-", " "))
}

// truncateDesc flattens a description onto one line and cuts it to maxLen.
func truncateDesc(desc string, maxLen int) string {
	desc = strings.Join(strings.Fields(desc), " ")
	if maxLen <= 3 || len(desc) <= maxLen {
		return desc
	}
	return desc[:maxLen-3] + "..."
}

// acceptedValue splits a rendered enum value into its value and tooltip.
// "tooltip:red[Red hot.]" yields ("red", "Red hot.").
func acceptedValue(v string) (value, doc string) {
	rest, ok := strings.CutPrefix(v, "tooltip:")
	if !ok || !strings.HasSuffix(rest, "]") {
		return v, ""
	}
	i := strings.Index(rest, "[")
	if i < 0 {
		return v, ""
	}
	return rest[:i], rest[i+1 : len(rest)-1]
}

// phaseLabel is the human wording of a phase.
func phaseLabel(p configdoc.ConfigPhase) string {
	switch p {
	case configdoc.PhaseBuildTime:
		return "build time"
	case configdoc.PhaseBuildAndRunTimeFixed:
		return "build time, fixed at run time"
	case configdoc.PhaseBootstrap:
		return "bootstrap"
	case configdoc.PhaseRunTime:
		return "run time"
	}
	return "unknown"
}
