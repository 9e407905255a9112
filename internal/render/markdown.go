// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"fmt"
	"strings"

	"grimm.is/cfgdoc/internal/configdoc"
)

const lockIcon = "🔒"

type markdownRenderer struct{}

func (markdownRenderer) Format() string { return "markdown" }

// Render writes one <id>.md page per output file.
func (markdownRenderer) Render(out *configdoc.Output) (Files, error) {
	files := make(Files, len(out.Files))
	for _, id := range out.FileIDs() {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("# %s\n\n", titleFor(id)))
		writeBody(&sb, out.Files[id])
		files[id+".md"] = []byte(sb.String())
	}
	return files, nil
}

// writeBody writes the legend and the item tables shared by the markdown
// and hugo pages.
func writeBody(sb *strings.Builder, items []configdoc.ConfigDocItem) {
	for _, k := range configdoc.Keys(items) {
		if k.Phase.FixedAtBuildTime() {
			sb.WriteString(fmt.Sprintf("%s Configuration property fixed at build time. All other properties are overridable at run time.\n\n", lockIcon))
			break
		}
	}
	writeItems(sb, items, 2)
}

func writeItems(sb *strings.Builder, items []configdoc.ConfigDocItem, level int) {
	var keys []*configdoc.ConfigKey
	var sections []*configdoc.ConfigSection
	for _, it := range items {
		it.Match(
			func(k *configdoc.ConfigKey) { keys = append(keys, k) },
			func(s *configdoc.ConfigSection) { sections = append(sections, s) },
		)
	}

	if len(keys) > 0 {
		writeKeysTable(sb, keys)
	}
	for _, s := range sections {
		writeSection(sb, s, level)
	}
}

func writeSection(sb *strings.Builder, s *configdoc.ConfigSection, level int) {
	title := s.SectionDetailsTitle
	if title == "" {
		title = s.Name
	}
	sb.WriteString(fmt.Sprintf("%s %s\n\n", strings.Repeat("#", min(level, 6)), title))
	if s.Optional {
		sb.WriteString("*Optional.* ")
	}
	if s.SectionDetails != "" {
		sb.WriteString(s.SectionDetails)
		sb.WriteString("\n\n")
	} else if s.Optional {
		sb.WriteString("\n\n")
	}
	writeItems(sb, s.Items, level+1)
}

// writeKeysTable writes a markdown table for keys.
func writeKeysTable(sb *strings.Builder, keys []*configdoc.ConfigKey) {
	sb.WriteString("| Configuration property | Type | Default | Description |\n")
	sb.WriteString("|------------------------|------|---------|-------------|\n")

	for _, k := range keys {
		name := fmt.Sprintf("`%s`", k.Key)
		if k.Phase.FixedAtBuildTime() {
			name = lockIcon + " " + name
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			escapeCell(name), escapeCell(typeCell(k)), escapeCell(defaultCell(k)), escapeCell(description(k))))
	}
	sb.WriteString("\n")
}

func typeCell(k *configdoc.ConfigKey) string {
	t := k.Type
	if !strings.Contains(t, "`") {
		t = "`" + t + "`"
	}
	if k.JavadocSiteLink != "" {
		t = fmt.Sprintf("[%s](%s)", t, k.JavadocSiteLink)
	}
	return t
}

func defaultCell(k *configdoc.ConfigKey) string {
	switch {
	case k.DefaultValue != "":
		return "`" + k.DefaultValue + "`"
	case k.Required() && !k.WithinAMap:
		return "required"
	}
	return ""
}

func description(k *configdoc.ConfigKey) string {
	var parts []string
	if k.ConfigDoc != "" {
		parts = append(parts, truncateDesc(k.ConfigDoc, 0))
	}
	if len(k.AdditionalKeys) > 0 {
		parts = append(parts, "Also settable as `"+strings.Join(k.AdditionalKeys, "`, `")+"`.")
	}
	if len(k.AcceptedValues) > 0 {
		var vals []string
		for _, v := range k.AcceptedValues {
			value, doc := acceptedValue(v)
			if doc != "" {
				vals = append(vals, fmt.Sprintf("`%s` (%s)", value, doc))
			} else {
				vals = append(vals, "`"+value+"`")
			}
		}
		parts = append(parts, "Values: "+strings.Join(vals, ", ")+".")
	}
	parts = append(parts, "Environment variable: `"+k.EnvironmentVariable()+"`.")
	return strings.Join(parts, " ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
