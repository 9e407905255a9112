// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strings"

	"grimm.is/cfgdoc/internal/descriptor"
)

// Category is the documentation shape of a member type once wrappers are
// peeled away.
type Category int

const (
	CategoryScalar Category = iota
	CategoryEnum
	CategoryGroup
	CategoryGroupInMap
	CategoryPassThroughMap
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryScalar:
		return "SCALAR"
	case CategoryEnum:
		return "ENUM"
	case CategoryGroup:
		return "GROUP"
	case CategoryGroupInMap:
		return "GROUP_IN_MAP"
	case CategoryPassThroughMap:
		return "PASS_THROUGH_MAP"
	default:
		return "OTHER"
	}
}

// Shape is the classifier verdict for one declared type.
type Shape struct {
	Category Category
	// Element is the innermost type: the scalar, enum or group type.
	Element descriptor.TypeRef
	// MapValue is the value type of the outermost map, if any.
	MapValue descriptor.TypeRef
	Optional bool
	List     bool
	// PassThroughMap marks maps whose values are not groups; such keys are
	// always within a map.
	PassThroughMap bool
	// MapDepth counts nested map levels in front of a group.
	MapDepth    int
	DisplayType string
}

// IsGroup reports whether the shape expands into a nested group.
func (s Shape) IsGroup() bool {
	return s.Category == CategoryGroup || s.Category == CategoryGroupInMap
}

const (
	typeOptional       = "java.util.Optional"
	typeOptionalInt    = "java.util.OptionalInt"
	typeOptionalLong   = "java.util.OptionalLong"
	typeOptionalDouble = "java.util.OptionalDouble"
	typeDuration       = "java.time.Duration"
)

var listTypes = map[string]bool{
	"java.util.List":       true,
	"java.util.Set":        true,
	"java.util.SortedSet":  true,
	"java.util.Collection": true,
}

var mapTypes = map[string]bool{
	"java.util.Map":       true,
	"java.util.SortedMap": true,
	"java.util.TreeMap":   true,
	"java.util.HashMap":   true,
}

var optionalScalars = map[string]string{
	typeOptionalInt:    "int",
	typeOptionalLong:   "long",
	typeOptionalDouble: "double",
}

var primitives = map[string]bool{
	"boolean": true,
	"byte":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"char":    true,
}

var boxedScalars = map[string]string{
	"java.lang.Boolean":   "boolean",
	"java.lang.Byte":      "byte",
	"java.lang.Short":     "short",
	"java.lang.Integer":   "int",
	"java.lang.Long":      "long",
	"java.lang.Float":     "float",
	"java.lang.Double":    "double",
	"java.lang.Character": "char",
	"java.lang.String":    "string",
}

// DefaultDisplayTypes substitutes documentation wrapper types.
var DefaultDisplayTypes = map[string]string{
	"java.lang.Class":                             "Class",
	"java.util.regex.Pattern":                     "Pattern",
	"io.quarkus.runtime.configuration.MemorySize": "MemorySize",
	"java.time.Duration":                          "Duration",
}

// Classifier decides the documentation shape of member types against a
// descriptor model.
type Classifier struct {
	model   *descriptor.Model
	display map[string]string
}

// NewClassifier returns a classifier using the default substitution table
// extended (or overridden) by extra.
func NewClassifier(model *descriptor.Model, extra map[string]string) *Classifier {
	display := make(map[string]string, len(DefaultDisplayTypes)+len(extra))
	for k, v := range DefaultDisplayTypes {
		display[k] = v
	}
	for k, v := range extra {
		display[k] = v
	}
	return &Classifier{model: model, display: display}
}

// Classify peels Optional, collection and map wrappers off t and classifies
// what remains.
func (c *Classifier) Classify(t descriptor.TypeRef) Shape {
	var s Shape
	cur := t
	for {
		switch {
		case cur.IsWildcard():
			if len(cur.Args) == 1 {
				cur = cur.Args[0]
			} else {
				cur = descriptor.Named(descriptor.ObjectType)
			}
			continue
		case cur.IsArray():
			s.List = true
			cur = cur.Args[0]
			continue
		case cur.Name == typeOptional && len(cur.Args) == 1:
			s.Optional = true
			cur = cur.Args[0]
			continue
		case optionalScalars[cur.Name] != "" && len(cur.Args) == 0:
			s.Optional = true
			cur = descriptor.Named(optionalScalars[cur.Name])
			continue
		case listTypes[cur.Name] && len(cur.Args) == 1:
			s.List = true
			cur = cur.Args[0]
			continue
		case mapTypes[cur.Name] && len(cur.Args) == 2:
			return c.classifyMap(s, cur)
		}
		break
	}

	s.Element = cur
	switch {
	case c.model.IsGroup(cur.Name):
		s.Category = CategoryGroup
		s.DisplayType = cur.SimpleName()
	case c.isEnum(cur):
		s.Category = CategoryEnum
		s.DisplayType = cur.SimpleName()
	case primitives[cur.Name] && len(cur.Args) == 0:
		s.Category = CategoryScalar
		s.DisplayType = cur.Name
	case boxedScalars[cur.Name] != "":
		s.Category = CategoryScalar
		s.DisplayType = boxedScalars[cur.Name]
	case c.display[cur.Name] != "":
		s.Category = CategoryScalar
		s.DisplayType = c.display[cur.Name]
	case len(cur.Args) > 0:
		s.Category = CategoryOther
		s.DisplayType = "`" + cur.String() + "`"
	default:
		s.Category = CategoryOther
		s.DisplayType = cur.SimpleName()
	}
	if s.List && !s.IsGroup() {
		s.DisplayType = "list of " + s.DisplayType
	}
	return s
}

func (c *Classifier) classifyMap(s Shape, m descriptor.TypeRef) Shape {
	s.MapValue = m.Args[1]
	s.MapDepth = 1
	value := m.Args[1]
	for {
		if value.Name == typeOptional && len(value.Args) == 1 {
			value = value.Args[0]
			continue
		}
		if mapTypes[value.Name] && len(value.Args) == 2 {
			s.MapDepth++
			value = value.Args[1]
			continue
		}
		break
	}

	if c.model.IsGroup(value.Name) {
		s.Category = CategoryGroupInMap
		s.Element = value
		s.DisplayType = value.SimpleName()
		return s
	}

	s.Category = CategoryPassThroughMap
	s.PassThroughMap = true
	s.Element = m
	s.MapDepth = 0
	s.DisplayType = "`" + m.String() + "`"
	return s
}

func (c *Classifier) isEnum(t descriptor.TypeRef) bool {
	_, ok := c.model.Enum(t.Name)
	return ok
}

// AcceptedValues renders the constants of an enum: the override or the
// hyphenated name, as tooltip:<value>[<doc>] when the constant is documented.
func (c *Classifier) AcceptedValues(enumType string) []string {
	e, ok := c.model.Enum(enumType)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(e.Constants))
	for _, k := range e.Constants {
		v := constantValue(k)
		if doc := CleanJavadoc(k.Doc); doc != "" {
			v = "tooltip:" + v + "[" + strings.Join(strings.Fields(doc), " ") + "]"
		}
		out = append(out, v)
	}
	return out
}

func constantValue(k descriptor.EnumConstant) string {
	if k.Override != "" {
		return k.Override
	}
	return Hyphenate(k.Name)
}
