// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package descriptor

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"grimm.is/cfgdoc/internal/errors"
)

// HCL descriptor layout:
//
//	root "quarkus.server" {
//	  type  = "io.acme.ServerConfig"
//	  owner = "acme-server"
//	  phase = "build_time"
//	}
//
//	composite "io.acme.ServerConfig" {
//	  doc = "Server configuration."
//	  member "port" {
//	    type    = "int"
//	    default = 8080
//	  }
//	  member "tls" {
//	    type = "java.util.Optional<io.acme.GroupTls>"
//	  }
//	}
//
//	group "io.acme.GroupTls" {
//	  member "enabled" { type = "boolean" }
//	}
//
//	enum "io.acme.Color" {
//	  constant "RED" {}
//	  constant "DARK_BLUE" { doc = "A darker blue." }
//	}
type hclFile struct {
	Roots      []hclRoot      `hcl:"root,block"`
	Groups     []hclComposite `hcl:"group,block"`
	Composites []hclComposite `hcl:"composite,block"`
	Enums      []hclEnum      `hcl:"enum,block"`
}

type hclRoot struct {
	Name    string `hcl:"name,label"`
	Type    string `hcl:"type"`
	Owner   string `hcl:"owner,optional"`
	Phase   string `hcl:"phase,optional"`
	Mapping bool   `hcl:"mapping,optional"`
}

type hclComposite struct {
	Name       string      `hcl:"name,label"`
	Superclass string      `hcl:"superclass,optional"`
	Interfaces []string    `hcl:"interfaces,optional"`
	Abstract   bool        `hcl:"abstract,optional"`
	Doc        string      `hcl:"doc,optional"`
	Members    []hclMember `hcl:"member,block"`
}

type hclMember struct {
	Name          string    `hcl:"name,label"`
	Type          string    `hcl:"type"`
	Kind          string    `hcl:"kind,optional"`
	Static        bool      `hcl:"static,optional"`
	Abstract      *bool     `hcl:"abstract,optional"`
	Params        int       `hcl:"params,optional"`
	Doc           string    `hcl:"doc,optional"`
	ConfigName    string    `hcl:"config_name,optional"`
	ParentName    bool      `hcl:"parent_name,optional"`
	Default       cty.Value `hcl:"default,optional"`
	DocDefault    string    `hcl:"doc_default,optional"`
	Section       bool      `hcl:"section,optional"`
	Ignore        bool      `hcl:"ignore,optional"`
	Deprecated    bool      `hcl:"deprecated,optional"`
	MapKey        string    `hcl:"map_key,optional"`
	UnnamedMapKey bool      `hcl:"unnamed_map_key,optional"`
	Converter     bool      `hcl:"converter,optional"`
}

type hclEnum struct {
	Name      string        `hcl:"name,label"`
	Doc       string        `hcl:"doc,optional"`
	Constants []hclConstant `hcl:"constant,block"`
}

type hclConstant struct {
	Name  string `hcl:"name,label"`
	Doc   string `hcl:"doc,optional"`
	Value string `hcl:"value,optional"`
}

// ParseHCL decodes an HCL descriptor document.
func ParseHCL(src []byte, filename string) (*Model, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, errors.KindValidation, "invalid HCL descriptor")
	}

	var f hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &f); diags.HasErrors() {
		return nil, errors.Wrap(diags, errors.KindValidation, "invalid HCL descriptor")
	}

	doc := document{}
	for _, r := range f.Roots {
		doc.Roots = append(doc.Roots, docRoot(r))
	}
	for _, g := range f.Groups {
		dc, err := g.doc()
		if err != nil {
			return nil, err
		}
		doc.Groups = append(doc.Groups, dc)
	}
	for _, c := range f.Composites {
		dc, err := c.doc()
		if err != nil {
			return nil, err
		}
		doc.Composites = append(doc.Composites, dc)
	}
	for _, e := range f.Enums {
		de := docEnum{Name: e.Name, Doc: e.Doc}
		for _, c := range e.Constants {
			de.Constants = append(de.Constants, docConstant(c))
		}
		doc.Enums = append(doc.Enums, de)
	}
	return doc.model()
}

func (c hclComposite) doc() (docComposite, error) {
	dc := docComposite{
		Name:       c.Name,
		Superclass: c.Superclass,
		Interfaces: c.Interfaces,
		Abstract:   c.Abstract,
		Doc:        c.Doc,
	}
	for _, m := range c.Members {
		def, err := defaultString(m.Default)
		if err != nil {
			return docComposite{}, errors.Attr(errors.Attr(err, "type", c.Name), "member", m.Name)
		}
		dm := docMember{
			Name:          m.Name,
			Type:          m.Type,
			Kind:          m.Kind,
			Static:        m.Static,
			Abstract:      m.Abstract,
			Params:        m.Params,
			Doc:           m.Doc,
			ConfigName:    m.ConfigName,
			ParentName:    m.ParentName,
			DocDefault:    m.DocDefault,
			Section:       m.Section,
			Ignore:        m.Ignore,
			Deprecated:    m.Deprecated,
			MapKey:        m.MapKey,
			UnnamedMapKey: m.UnnamedMapKey,
			Converter:     m.Converter,
		}
		if def != nil {
			dm.Default = *def
		}
		dc.Members = append(dc.Members, dm)
	}
	return dc, nil
}

// defaultString converts an HCL default of any primitive type to its string
// form. An absent or null default yields nil.
func defaultString(v cty.Value) (*string, error) {
	if v == cty.NilVal || v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.New(errors.KindValidation, "default must be a literal value")
	}
	sv, err := convert.Convert(v, cty.String)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindValidation, "default must be a string, number or bool")
	}
	s := sv.AsString()
	return &s, nil
}
