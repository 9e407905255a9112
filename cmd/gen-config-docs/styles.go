// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"grimm.is/cfgdoc/internal/errors"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// styles are the status line styles of the CLI.
type styles struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Subtle  lipgloss.Style
	Bold    lipgloss.Style
}

func newStyles() styles {
	return styles{
		Success: lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Subtle:  lipgloss.NewStyle().Foreground(colorMuted),
		Bold:    lipgloss.NewStyle().Bold(true),
	}
}

func (a *app) ok(format string, args ...any) {
	fmt.Fprintln(a.out, a.styles.Success.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func (a *app) warn(format string, args ...any) {
	fmt.Fprintln(a.out, a.styles.Warning.Render("!")+" "+fmt.Sprintf(format, args...))
}

// fail prints err followed by its attributes, e.g. "(path=a.hcl type=Foo)".
func (a *app) fail(err error) {
	line := a.styles.Error.Render("✗") + " " + err.Error()
	if attrs := formatAttrs(errors.GetAttributes(err)); attrs != "" {
		line += " " + a.styles.Subtle.Render("("+attrs+")")
	}
	fmt.Fprintln(a.out, line)
}

func formatAttrs(attrs map[string]any) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, attrs[k])
	}
	return strings.Join(parts, " ")
}

func (a *app) note(format string, args ...any) {
	fmt.Fprintln(a.out, a.styles.Subtle.Render(fmt.Sprintf(format, args...)))
}
