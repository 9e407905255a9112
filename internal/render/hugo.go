// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"grimm.is/cfgdoc/internal/configdoc"
	"grimm.is/cfgdoc/internal/errors"
)

// HugoDir is the subdirectory holding the hugo content pages.
const HugoDir = "hugo"

type hugoRenderer struct{}

func (hugoRenderer) Format() string { return "hugo" }

type frontMatter struct {
	Title       string `yaml:"title"`
	LinkTitle   string `yaml:"linkTitle"`
	Weight      int    `yaml:"weight"`
	Description string `yaml:"description,omitempty"`
}

// Render creates hugo/_index.md (overview) and one hugo/<id>.md page per
// output file, each with front matter.
func (hugoRenderer) Render(out *configdoc.Output) (Files, error) {
	files := make(Files, len(out.Files)+1)

	index, err := hugoIndex(out)
	if err != nil {
		return nil, err
	}
	files[HugoDir+"/_index.md"] = index

	for i, id := range out.FileIDs() {
		page, err := hugoPage(id, out.Files[id], 20+i) // weight starts at 20
		if err != nil {
			return nil, errors.Attr(err, "file", id)
		}
		files[HugoDir+"/"+id+".md"] = page
	}
	return files, nil
}

func writeFrontMatter(sb *strings.Builder, fm frontMatter) error {
	data, err := yaml.Marshal(fm)
	if err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to encode front matter")
	}
	sb.WriteString("---\n")
	sb.Write(data)
	sb.WriteString("---\n\n")
	return nil
}

// hugoIndex lists every page with its number of properties.
func hugoIndex(out *configdoc.Output) ([]byte, error) {
	var sb strings.Builder
	err := writeFrontMatter(&sb, frontMatter{
		Title:       "Configuration Reference",
		LinkTitle:   "Reference",
		Weight:      10,
		Description: "Complete reference of all configuration properties.",
	})
	if err != nil {
		return nil, err
	}

	sb.WriteString("| Page | Properties |\n")
	sb.WriteString("|------|------------|\n")
	for _, id := range out.FileIDs() {
		link := fmt.Sprintf("[%s]({{< relref \"%s\" >}})", titleFor(id), id)
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", link, len(configdoc.Keys(out.Files[id]))))
	}
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}

func hugoPage(id string, items []configdoc.ConfigDocItem, weight int) ([]byte, error) {
	var sb strings.Builder
	err := writeFrontMatter(&sb, frontMatter{
		Title:       titleFor(id),
		LinkTitle:   titleFor(id),
		Weight:      weight,
		Description: pageDescription(items),
	})
	if err != nil {
		return nil, err
	}
	writeBody(&sb, items)
	return []byte(sb.String()), nil
}

// pageDescription uses the title of the first documented section.
func pageDescription(items []configdoc.ConfigDocItem) string {
	for _, it := range items {
		if s := it.ConfigSection(); s != nil && s.SectionDetailsTitle != "" {
			return truncateDesc(s.SectionDetailsTitle, 100)
		}
	}
	return ""
}
