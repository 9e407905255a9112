// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package descriptor holds the pre-resolved metadata the documentation scanner
// works on: configuration roots, composite types with their member
// declarations, enums, and the registry of reusable configuration groups.
//
// Descriptors are produced once, by a loader reading HCL, YAML, JSON or TOML
// descriptor files or by extracting tagged structs from Go source, and are
// read-only afterwards.
package descriptor

import (
	"fmt"
	"sort"
	"strings"

	"grimm.is/cfgdoc/internal/errors"
	"grimm.is/cfgdoc/internal/validation"
)

// Name directive sentinels.
const (
	// NameHyphenated uses the hyphenated member name (the default).
	NameHyphenated = "<<hyphenated element name>>"
	// NameParent collapses the member onto its parent's key.
	NameParent = "<<parent>>"
	// NoDefault marks an explicit "no default value".
	NoDefault = "<<no default>>"
)

// ObjectType is the universal root type; it never contributes members.
const ObjectType = "java.lang.Object"

// MemberKind distinguishes fields from accessor methods.
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberMethod
)

func (k MemberKind) String() string {
	if k == MemberMethod {
		return "method"
	}
	return "field"
}

// ParseMemberKind accepts "field" (or empty) and "method".
func ParseMemberKind(s string) (MemberKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "field":
		return MemberField, nil
	case "method", "accessor":
		return MemberMethod, nil
	default:
		return MemberField, errors.Errorf(errors.KindValidation, "unknown member kind %q", s)
	}
}

// Directives is the annotation bag attached to a member.
type Directives struct {
	// Name overrides the derived property name. See NameHyphenated, NameParent.
	Name string
	// Default is the machine default value; only meaningful when HasDefault.
	Default    string
	HasDefault bool
	// DocDefault is a human readable default shown instead of Default.
	DocDefault string
	// Section starts a named, boxed documentation section.
	Section bool
	// Ignore skips the member entirely.
	Ignore bool
	// Deprecated members produce no documentation.
	Deprecated bool
	// MapKey overrides the placeholder used for map entries.
	MapKey string
	// UnnamedMapKey additionally documents the map group without the entry segment.
	UnnamedMapKey bool
	// Converter signals a custom converter; enum defaults keep their casing.
	Converter bool
}

// Member is one documented declaration of a composite.
type Member struct {
	Name       string
	Kind       MemberKind
	Type       TypeRef
	Static     bool
	Abstract   bool
	Params     int
	Doc        string
	Directives Directives
}

// Composite is a class-like type: a root, a group, or a supertype of either.
type Composite struct {
	Name       string
	Superclass string
	Interfaces []string
	Abstract   bool
	Doc        string
	Members    []Member
}

// EnumConstant is one enum value.
type EnumConstant struct {
	Name string
	Doc  string
	// Override replaces the hyphenated constant name in accepted values.
	Override string
}

// Enum is an enumerated type.
type Enum struct {
	Name      string
	Doc       string
	Constants []EnumConstant
}

// Root is a top-level configuration namespace.
type Root struct {
	// Name is the dotted property prefix, e.g. "quarkus.server".
	Name string
	// Type is the qualified composite type backing the root.
	Type string
	// Owner identifies the extension or module declaring the root.
	Owner string
	// Phase is the configuration phase name, parsed by the scanner.
	Phase string
	// Mapping enables accessor-method discovery for this root.
	Mapping bool
}

// Model is the complete descriptor set for one generation run.
type Model struct {
	Roots      []Root
	Composites map[string]*Composite
	Enums      map[string]*Enum
	Groups     map[string]bool
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		Composites: make(map[string]*Composite),
		Enums:      make(map[string]*Enum),
		Groups:     make(map[string]bool),
	}
}

// AddComposite registers c. Redefining a type is a conflict.
func (m *Model) AddComposite(c *Composite) error {
	if c.Name == "" {
		return errors.New(errors.KindValidation, "composite without a name")
	}
	if _, ok := m.Composites[c.Name]; ok {
		return errors.Attr(errors.Errorf(errors.KindConflict, "composite %s defined twice", c.Name), "type", c.Name)
	}
	m.Composites[c.Name] = c
	return nil
}

// AddEnum registers e. Redefining a type is a conflict.
func (m *Model) AddEnum(e *Enum) error {
	if e.Name == "" {
		return errors.New(errors.KindValidation, "enum without a name")
	}
	if _, ok := m.Enums[e.Name]; ok {
		return errors.Attr(errors.Errorf(errors.KindConflict, "enum %s defined twice", e.Name), "type", e.Name)
	}
	m.Enums[e.Name] = e
	return nil
}

// RegisterGroup marks typeName as a reusable configuration group.
func (m *Model) RegisterGroup(typeName string) {
	m.Groups[typeName] = true
}

// Composite looks up a composite by qualified name.
func (m *Model) Composite(name string) (*Composite, bool) {
	c, ok := m.Composites[name]
	return c, ok
}

// Enum looks up an enum by qualified name.
func (m *Model) Enum(name string) (*Enum, bool) {
	e, ok := m.Enums[name]
	return e, ok
}

// IsGroup reports whether name is a registered configuration group.
func (m *Model) IsGroup(name string) bool {
	return m.Groups[name]
}

// GroupNames returns the registered group types in sorted order.
func (m *Model) GroupNames() []string {
	names := make([]string, 0, len(m.Groups))
	for n := range m.Groups {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge folds other into m. Duplicate definitions are conflicts.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	var errs []error
	m.Roots = append(m.Roots, other.Roots...)
	for _, name := range sortedKeys(other.Composites) {
		if err := m.AddComposite(other.Composites[name]); err != nil {
			errs = append(errs, err)
		}
	}
	for _, name := range sortedKeys(other.Enums) {
		if err := m.AddEnum(other.Enums[name]); err != nil {
			errs = append(errs, err)
		}
	}
	for g := range other.Groups {
		m.RegisterGroup(g)
	}
	return errors.Join(errs...)
}

// Validate checks cross references: every root must point at a known
// composite and root names must be unique.
func (m *Model) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for _, r := range m.Roots {
		if r.Name == "" {
			errs = append(errs, errors.Errorf(errors.KindValidation, "root of type %s has no name", r.Type))
			continue
		}
		if seen[r.Name] {
			errs = append(errs, errors.Attr(errors.Errorf(errors.KindConflict, "root %s declared twice", r.Name), "root", r.Name))
		}
		seen[r.Name] = true
		if err := validateRoot(r); err != nil {
			errs = append(errs, errors.Attr(err, "root", r.Name))
			continue
		}
		if _, ok := m.Composites[r.Type]; !ok {
			errs = append(errs, errors.Attr(errors.Errorf(errors.KindValidation,
				"root %s references unknown type %q", r.Name, r.Type), "root", r.Name))
		}
	}
	return errors.Join(errs...)
}

// validateRoot checks the names a root contributes to keys and file ids.
func validateRoot(r Root) error {
	if err := validation.ValidateRootName(r.Name); err != nil {
		return err
	}
	if err := validation.ValidateTypeName(r.Type); err != nil {
		return err
	}
	if r.Owner != "" {
		return validation.ValidateIdentifier(r.Owner)
	}
	return nil
}

func (m *Model) String() string {
	return fmt.Sprintf("model{roots=%d composites=%d enums=%d groups=%d}",
		len(m.Roots), len(m.Composites), len(m.Enums), len(m.Groups))
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
