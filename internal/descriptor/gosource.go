// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package descriptor

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"grimm.is/cfgdoc/internal/errors"
)

// Go source descriptors.
//
// Structs carrying at least one `cfgdoc` tag become composites. The type doc
// comment may declare a root:
//
//	// ServerConfig configures the HTTP server.
//	//
//	// @root: quarkus.server
//	// @phase: build_time
//	// @owner: acme-server
//	type ServerConfig struct {
//		Port int       `cfgdoc:",default=8080"`
//		TLS  *GroupTls `cfgdoc:"tls"`
//	}
//
// Tagged structs that are not roots are registered as groups. The tag value is
// "name,option,...". An empty name keeps the hyphenated field name, "-" skips
// the field. Options: default=V, docdefault=V, section, parent, mapkey=K,
// unnamed, converter, ignore.
//
// Named string or integer types with constants of that type become enums.

const tagKey = "cfgdoc"

// goTypes maps Go builtin and well known types onto descriptor type names.
var goTypes = map[string]string{
	"string":        "java.lang.String",
	"bool":          "boolean",
	"int":           "int",
	"int8":          "byte",
	"int16":         "short",
	"int32":         "int",
	"int64":         "long",
	"uint":          "long",
	"uint8":         "byte",
	"byte":          "byte",
	"uint16":        "int",
	"uint32":        "long",
	"uint64":        "long",
	"float32":       "float",
	"float64":       "double",
	"rune":          "int",
	"any":           ObjectType,
	"time.Duration": "java.time.Duration",
	"regexp.Regexp": "java.util.regex.Pattern",
}

// GoSourceParser extracts descriptors from Go packages.
type GoSourceParser struct {
	fset  *token.FileSet
	model *Model
}

// NewGoSourceParser creates an empty parser.
func NewGoSourceParser() *GoSourceParser {
	return &GoSourceParser{
		fset:  token.NewFileSet(),
		model: NewModel(),
	}
}

// Model returns everything extracted so far.
func (p *GoSourceParser) Model() *Model {
	return p.model
}

// ParseGoDir is a convenience wrapper parsing a single directory.
func ParseGoDir(dir string) (*Model, error) {
	p := NewGoSourceParser()
	if err := p.ParseDir(dir); err != nil {
		return nil, err
	}
	return p.Model(), nil
}

// ParseDir parses the non-test Go files in dir.
func (p *GoSourceParser) ParseDir(dir string) error {
	pkgs, err := parser.ParseDir(p.fset, dir, nil, parser.ParseComments)
	if err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindValidation, "failed to parse Go sources"), "path", dir)
	}

	names := make([]string, 0, len(pkgs))
	for name := range pkgs {
		if strings.HasSuffix(name, "_test") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := p.extract(name, pkgs[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type goEnum struct {
	enum  *Enum
	local string
}

func (p *GoSourceParser) extract(pkgName string, pkg *ast.Package) error {
	files := make([]string, 0, len(pkg.Files))
	for f := range pkg.Files {
		files = append(files, f)
	}
	sort.Strings(files)

	q := func(local string) string { return pkgName + "." + local }

	// First pass: type declarations.
	type structDecl struct {
		name string
		doc  string
		st   *ast.StructType
	}
	var structs []structDecl
	enums := make(map[string]*goEnum)
	var enumOrder []string

	for _, fn := range files {
		for _, decl := range pkg.Files[fn].Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := commentText(ts.Doc)
				if doc == "" {
					doc = commentText(gd.Doc)
				}
				switch t := ts.Type.(type) {
				case *ast.StructType:
					if hasTag(t) {
						structs = append(structs, structDecl{name: ts.Name.Name, doc: doc, st: t})
					}
				case *ast.Ident:
					if isEnumBase(t.Name) {
						enums[ts.Name.Name] = &goEnum{
							enum:  &Enum{Name: q(ts.Name.Name), Doc: cleanDoc(doc)},
							local: ts.Name.Name,
						}
						enumOrder = append(enumOrder, ts.Name.Name)
					}
				}
			}
		}
	}

	// Second pass: constants of enum-like types.
	for _, fn := range files {
		for _, decl := range pkg.Files[fn].Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}
			var current string
			for _, spec := range gd.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				if id, ok := vs.Type.(*ast.Ident); ok {
					current = id.Name
				} else if vs.Type != nil || len(vs.Values) > 0 && !isIota(vs.Values[0]) {
					current = ""
				}
				ge := enums[current]
				if ge == nil {
					continue
				}
				for i, n := range vs.Names {
					if n.Name == "_" {
						continue
					}
					c := EnumConstant{
						Name: strings.TrimPrefix(n.Name, ge.local),
						Doc:  cleanDoc(commentText(vs.Doc)),
					}
					if c.Name == "" {
						c.Name = n.Name
					}
					if i < len(vs.Values) {
						if lit, ok := vs.Values[i].(*ast.BasicLit); ok && lit.Kind == token.STRING {
							if s, err := strconv.Unquote(lit.Value); err == nil {
								c.Override = s
							}
						}
					}
					ge.enum.Constants = append(ge.enum.Constants, c)
				}
			}
		}
	}

	var errs []error
	for _, name := range enumOrder {
		ge := enums[name]
		if len(ge.enum.Constants) == 0 {
			continue
		}
		if err := p.model.AddEnum(ge.enum); err != nil {
			errs = append(errs, err)
		}
	}

	resolve := func(expr ast.Expr) TypeRef { return goTypeRef(expr, pkgName) }
	for _, sd := range structs {
		c := &Composite{Name: q(sd.name)}
		ann := annotations(sd.doc)
		c.Doc = cleanDoc(sd.doc)

		for _, field := range sd.st.Fields.List {
			if len(field.Names) == 0 {
				embedded := resolve(field.Type)
				if embedded.Name == "java.util.Optional" && len(embedded.Args) == 1 {
					embedded = embedded.Args[0]
				}
				if c.Superclass == "" {
					c.Superclass = embedded.Name
				} else {
					c.Interfaces = append(c.Interfaces, embedded.Name)
				}
				continue
			}
			for _, n := range field.Names {
				if !n.IsExported() {
					continue
				}
				m, ok := fieldMember(n.Name, field, resolve)
				if ok {
					c.Members = append(c.Members, m)
				}
			}
		}

		if err := p.model.AddComposite(c); err != nil {
			errs = append(errs, err)
			continue
		}
		if root := ann["root"]; root != "" {
			p.model.Roots = append(p.model.Roots, Root{
				Name:    root,
				Type:    c.Name,
				Owner:   ann["owner"],
				Phase:   ann["phase"],
				Mapping: ann["mapping"] == "true",
			})
			continue
		}
		p.model.RegisterGroup(c.Name)
	}
	return errors.Join(errs...)
}

func fieldMember(name string, field *ast.Field, resolve func(ast.Expr) TypeRef) (Member, bool) {
	doc := commentText(field.Doc)
	if inline := commentText(field.Comment); inline != "" {
		if doc == "" {
			doc = inline
		} else {
			doc += " " + inline
		}
	}

	m := Member{
		Name: name,
		Kind: MemberField,
		Type: resolve(field.Type),
		Doc:  cleanDoc(doc),
	}

	var tag string
	if field.Tag != nil {
		tag = reflect.StructTag(strings.Trim(field.Tag.Value, "`")).Get(tagKey)
	}
	if tag == "-" {
		return Member{}, false
	}
	applyTag(&m.Directives, tag)

	ann := annotations(doc)
	if v, ok := ann["default"]; ok && !m.Directives.HasDefault {
		m.Directives.Default = v
		m.Directives.HasDefault = true
	}
	if v, ok := ann["docdefault"]; ok && m.Directives.DocDefault == "" {
		m.Directives.DocDefault = v
	}
	if isDeprecated(doc) {
		m.Directives.Deprecated = true
	}
	return m, true
}

func applyTag(d *Directives, tag string) {
	if tag == "" {
		return
	}
	parts := strings.Split(tag, ",")
	d.Name = parts[0]
	for _, part := range parts[1:] {
		key, val, _ := strings.Cut(part, "=")
		switch strings.TrimSpace(key) {
		case "default":
			d.Default = val
			d.HasDefault = true
		case "docdefault":
			d.DocDefault = val
		case "section":
			d.Section = true
		case "parent":
			d.Name = NameParent
		case "mapkey":
			d.MapKey = val
		case "unnamed":
			d.UnnamedMapKey = true
		case "converter":
			d.Converter = true
		case "ignore":
			d.Ignore = true
		}
	}
}

// goTypeRef converts a field type expression. Unqualified non-builtin
// identifiers are qualified with the declaring package name.
func goTypeRef(expr ast.Expr, pkgName string) TypeRef {
	switch t := expr.(type) {
	case *ast.Ident:
		if n, ok := goTypes[t.Name]; ok {
			return Named(n)
		}
		return Named(pkgName + "." + t.Name)
	case *ast.SelectorExpr:
		name := selectorName(t)
		if n, ok := goTypes[name]; ok {
			return Named(n)
		}
		return Named(name)
	case *ast.StarExpr:
		return Named("java.util.Optional", goTypeRef(t.X, pkgName))
	case *ast.ArrayType:
		return Named("java.util.List", goTypeRef(t.Elt, pkgName))
	case *ast.MapType:
		return Named("java.util.Map", goTypeRef(t.Key, pkgName), goTypeRef(t.Value, pkgName))
	case *ast.InterfaceType:
		return Named(ObjectType)
	default:
		return Named(ObjectType)
	}
}

func selectorName(s *ast.SelectorExpr) string {
	if id, ok := s.X.(*ast.Ident); ok {
		return id.Name + "." + s.Sel.Name
	}
	return s.Sel.Name
}

func hasTag(s *ast.StructType) bool {
	if s.Fields == nil {
		return false
	}
	for _, f := range s.Fields.List {
		if f.Tag != nil && strings.Contains(f.Tag.Value, tagKey+":") {
			return true
		}
	}
	return false
}

func isEnumBase(name string) bool {
	switch name {
	case "string", "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32":
		return true
	}
	return false
}

func isIota(e ast.Expr) bool {
	id, ok := e.(*ast.Ident)
	return ok && id.Name == "iota"
}

func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}

// annotations collects "@name: value" lines.
func annotations(doc string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "@") {
			continue
		}
		key, val, ok := strings.Cut(line[1:], ":")
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(val)
	}
	return out
}

func isDeprecated(doc string) bool {
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "Deprecated:") {
			return true
		}
	}
	return false
}

// cleanDoc drops annotation lines and the trailing blank lines they leave.
func cleanDoc(doc string) string {
	lines := strings.Split(doc, "\n")
	clean := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "@") {
			continue
		}
		clean = append(clean, line)
	}
	return strings.TrimSpace(strings.Join(clean, "\n"))
}
