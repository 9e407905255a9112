// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package descriptor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"grimm.is/cfgdoc/internal/errors"
)

// document is the serialization-neutral shape shared by the YAML, JSON and
// TOML loaders. The HCL loader converts into it as well.
type document struct {
	Roots      []docRoot      `yaml:"roots" toml:"roots"`
	Groups     []docComposite `yaml:"groups" toml:"groups"`
	Composites []docComposite `yaml:"composites" toml:"composites"`
	Enums      []docEnum      `yaml:"enums" toml:"enums"`
}

type docRoot struct {
	Name    string `yaml:"name" toml:"name"`
	Type    string `yaml:"type" toml:"type"`
	Owner   string `yaml:"owner" toml:"owner"`
	Phase   string `yaml:"phase" toml:"phase"`
	Mapping bool   `yaml:"mapping" toml:"mapping"`
}

type docComposite struct {
	Name       string      `yaml:"name" toml:"name"`
	Superclass string      `yaml:"superclass" toml:"superclass"`
	Interfaces []string    `yaml:"interfaces" toml:"interfaces"`
	Abstract   bool        `yaml:"abstract" toml:"abstract"`
	Doc        string      `yaml:"doc" toml:"doc"`
	Members    []docMember `yaml:"members" toml:"members"`
}

type docMember struct {
	Name          string `yaml:"name" toml:"name"`
	Type          string `yaml:"type" toml:"type"`
	Kind          string `yaml:"kind" toml:"kind"`
	Static        bool   `yaml:"static" toml:"static"`
	Abstract      *bool  `yaml:"abstract" toml:"abstract"`
	Params        int    `yaml:"params" toml:"params"`
	Doc           string `yaml:"doc" toml:"doc"`
	ConfigName    string `yaml:"config_name" toml:"config_name"`
	ParentName    bool   `yaml:"parent_name" toml:"parent_name"`
	Default       any    `yaml:"default" toml:"default"`
	DocDefault    string `yaml:"doc_default" toml:"doc_default"`
	Section       bool   `yaml:"section" toml:"section"`
	Ignore        bool   `yaml:"ignore" toml:"ignore"`
	Deprecated    bool   `yaml:"deprecated" toml:"deprecated"`
	MapKey        string `yaml:"map_key" toml:"map_key"`
	UnnamedMapKey bool   `yaml:"unnamed_map_key" toml:"unnamed_map_key"`
	Converter     bool   `yaml:"converter" toml:"converter"`
}

type docEnum struct {
	Name      string        `yaml:"name" toml:"name"`
	Doc       string        `yaml:"doc" toml:"doc"`
	Constants []docConstant `yaml:"constants" toml:"constants"`
}

type docConstant struct {
	Name  string `yaml:"name" toml:"name"`
	Doc   string `yaml:"doc" toml:"doc"`
	Value string `yaml:"value" toml:"value"`
}

// LoadFile loads a descriptor file, choosing the decoder by extension.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Attr(errors.Wrap(err, errors.KindNotFound, "failed to read descriptor"), "path", path)
	}

	var m *Model
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		m, err = ParseHCL(data, path)
	case ".yaml", ".yml", ".json":
		m, err = ParseYAML(data)
	case ".toml":
		m, err = ParseTOML(data)
	default:
		return nil, errors.Attr(errors.Errorf(errors.KindUnsupported, "unsupported descriptor format %q", filepath.Ext(path)), "path", path)
	}
	if err != nil {
		return nil, errors.Attr(err, "path", path)
	}
	return m, nil
}

// LoadGlobs expands each pattern and merges every matching descriptor file.
// Matches are processed in lexical order so the merged model is stable.
func LoadGlobs(patterns []string) (*Model, error) {
	var files []string
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, errors.Attr(errors.Wrap(err, errors.KindValidation, "bad descriptor pattern"), "pattern", p)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	merged := NewModel()
	for _, f := range files {
		m, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		if err := merged.Merge(m); err != nil {
			return nil, errors.Attr(err, "path", f)
		}
	}
	return merged, nil
}

// ParseYAML decodes a YAML (or JSON) descriptor document.
func ParseYAML(data []byte) (*Model, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, errors.KindValidation, "invalid YAML descriptor")
	}
	return doc.model()
}

// ParseTOML decodes a TOML descriptor document.
func ParseTOML(data []byte) (*Model, error) {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindValidation, "invalid TOML descriptor")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf(errors.KindValidation, "unknown TOML keys: %v", undecoded)
	}
	return doc.model()
}

func (d *document) model() (*Model, error) {
	m := NewModel()
	var errs []error

	for _, r := range d.Roots {
		m.Roots = append(m.Roots, Root(r))
	}
	for _, g := range d.Groups {
		c, err := g.composite()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := m.AddComposite(c); err != nil {
			errs = append(errs, err)
		}
		m.RegisterGroup(c.Name)
	}
	for _, dc := range d.Composites {
		c, err := dc.composite()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := m.AddComposite(c); err != nil {
			errs = append(errs, err)
		}
	}
	for _, de := range d.Enums {
		e := &Enum{Name: de.Name, Doc: de.Doc}
		for _, c := range de.Constants {
			e.Constants = append(e.Constants, EnumConstant{Name: c.Name, Doc: c.Doc, Override: c.Value})
		}
		if err := m.AddEnum(e); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

func (dc docComposite) composite() (*Composite, error) {
	c := &Composite{
		Name:       dc.Name,
		Superclass: dc.Superclass,
		Interfaces: dc.Interfaces,
		Abstract:   dc.Abstract,
		Doc:        dc.Doc,
	}
	for _, dm := range dc.Members {
		mem, err := dm.member()
		if err != nil {
			return nil, errors.Attr(errors.Attr(err, "type", dc.Name), "member", dm.Name)
		}
		c.Members = append(c.Members, mem)
	}
	return c, nil
}

func (dm docMember) member() (Member, error) {
	kind, err := ParseMemberKind(dm.Kind)
	if err != nil {
		return Member{}, err
	}
	t, err := ParseType(dm.Type)
	if err != nil {
		return Member{}, err
	}

	mem := Member{
		Name:     dm.Name,
		Kind:     kind,
		Type:     t,
		Static:   dm.Static,
		Abstract: kind == MemberMethod,
		Params:   dm.Params,
		Doc:      dm.Doc,
		Directives: Directives{
			Name:          dm.ConfigName,
			DocDefault:    dm.DocDefault,
			Section:       dm.Section,
			Ignore:        dm.Ignore,
			Deprecated:    dm.Deprecated,
			MapKey:        dm.MapKey,
			UnnamedMapKey: dm.UnnamedMapKey,
			Converter:     dm.Converter,
		},
	}
	if dm.Abstract != nil {
		mem.Abstract = *dm.Abstract
	}
	if dm.ParentName {
		mem.Directives.Name = NameParent
	}
	if dm.Default != nil {
		mem.Directives.Default = scalarString(dm.Default)
		mem.Directives.HasDefault = true
	}
	return mem, nil
}

// scalarString renders a decoded YAML/TOML scalar the way it was written.
func scalarString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%g", x), ".0")
	default:
		return fmt.Sprint(x)
	}
}
