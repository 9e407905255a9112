// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"grimm.is/cfgdoc/internal/configdoc"
	"grimm.is/cfgdoc/internal/errors"
)

type yamlRenderer struct{}

func (yamlRenderer) Format() string { return "yaml" }

// Render writes a <id>.yaml quick reference per output file.
func (yamlRenderer) Render(out *configdoc.Output) (Files, error) {
	files := make(Files, len(out.Files))
	for _, id := range out.FileIDs() {
		node := ToYAMLNode(out.Files[id])
		node.HeadComment = titleFor(id) + " quick reference"

		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to encode yaml"), "file", id)
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to encode yaml"), "file", id)
		}
		files[id+".yaml"] = buf.Bytes()
	}
	return files, nil
}

// ToYAMLNode converts items to a mapping node. Keys map to their
// attributes, sections map to a nested mapping of their children. The first
// sentence of each doc becomes the head comment of its entry.
func ToYAMLNode(items []configdoc.ConfigDocItem) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, it := range items {
		it.Match(
			func(k *configdoc.ConfigKey) {
				name := scalar(k.Key)
				name.HeadComment = configdoc.SectionTitle(k.ConfigDoc)
				node.Content = append(node.Content, name, keyNode(k))
			},
			func(s *configdoc.ConfigSection) {
				name := scalar(s.Name)
				name.HeadComment = s.SectionDetailsTitle
				node.Content = append(node.Content, name, ToYAMLNode(s.Items))
			},
		)
	}
	return node
}

func keyNode(k *configdoc.ConfigKey) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, val *yaml.Node) {
		node.Content = append(node.Content, scalar(key), val)
	}

	add("type", scalar(k.Type))
	if k.DefaultValue != "" {
		add("default", scalar(k.DefaultValue))
	}
	add("phase", scalar(k.Phase.String()))
	add("env", scalar(k.EnvironmentVariable()))
	if k.Optional {
		add("optional", boolNode(true))
	}
	if k.DocMapKey != "" {
		add("map_key", scalar(k.DocMapKey))
	}
	if len(k.AcceptedValues) > 0 {
		values := make([]string, 0, len(k.AcceptedValues))
		for _, v := range k.AcceptedValues {
			value, _ := acceptedValue(v)
			values = append(values, value)
		}
		add("values", strSliceToNode(values))
	}
	if len(k.AdditionalKeys) > 0 {
		add("aliases", strSliceToNode(k.AdditionalKeys))
	}
	return node
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func boolNode(b bool) *yaml.Node {
	v := "false"
	if b {
		v = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v}
}

func strSliceToNode(s []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range s {
		node.Content = append(node.Content, scalar(v))
	}
	return node
}
