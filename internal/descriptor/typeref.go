// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package descriptor

import (
	"strings"

	"grimm.is/cfgdoc/internal/errors"
)

// Special type names used inside TypeRef.
const (
	ArrayTypeName    = "[]"
	WildcardTypeName = "?"
)

// TypeRef is a fully resolved, possibly parameterized type reference such as
// java.util.Map<java.lang.String,io.acme.GroupTls>.
//
// Arrays are represented as Name "[]" with the element as the single argument.
// Wildcards use Name "?" with the bound, if any, as the single argument.
type TypeRef struct {
	Name string    `json:"name" yaml:"name"`
	Args []TypeRef `json:"args,omitempty" yaml:"args,omitempty"`
}

// Named returns a TypeRef without type arguments.
func Named(name string, args ...TypeRef) TypeRef {
	return TypeRef{Name: name, Args: args}
}

// ArrayOf returns the array type of elem.
func ArrayOf(elem TypeRef) TypeRef {
	return TypeRef{Name: ArrayTypeName, Args: []TypeRef{elem}}
}

// IsArray reports whether t is an array type.
func (t TypeRef) IsArray() bool { return t.Name == ArrayTypeName && len(t.Args) == 1 }

// IsWildcard reports whether t is a wildcard type argument.
func (t TypeRef) IsWildcard() bool { return t.Name == WildcardTypeName }

// IsZero reports whether t is unset.
func (t TypeRef) IsZero() bool { return t.Name == "" }

// String renders the raw signature.
func (t TypeRef) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t TypeRef) write(sb *strings.Builder) {
	switch {
	case t.IsArray():
		t.Args[0].write(sb)
		sb.WriteString("[]")
		return
	case t.IsWildcard():
		sb.WriteString("?")
		if len(t.Args) == 1 {
			sb.WriteString(" extends ")
			t.Args[0].write(sb)
		}
		return
	}
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			a.write(sb)
		}
		sb.WriteByte('>')
	}
}

// SimpleName returns the unqualified name, with nested type separators
// resolved: io.acme.Outer$Inner -> Inner.
func (t TypeRef) SimpleName() string {
	return SimpleName(t.Name)
}

// SimpleName strips the package and outer class from a qualified name.
func SimpleName(qualified string) string {
	if i := strings.LastIndexAny(qualified, ".$"); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// ParseType parses a Java-style type signature. Whitespace is insignificant.
//
//	int
//	java.util.Optional<io.acme.GroupTls>
//	java.util.Map<java.lang.String, java.util.List<java.lang.String>>
//	java.lang.String[]
//	java.lang.Class<? extends io.acme.Handler>
func ParseType(sig string) (TypeRef, error) {
	p := &sigParser{src: sig}
	t, err := p.parseType()
	if err != nil {
		return TypeRef{}, errors.Attr(err, "signature", sig)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeRef{}, errors.Attr(errors.Errorf(errors.KindValidation,
			"unexpected %q at offset %d", p.src[p.pos:], p.pos), "signature", sig)
	}
	return t, nil
}

// MustParseType is ParseType for static signatures; it panics on error.
func MustParseType(sig string) TypeRef {
	t, err := ParseType(sig)
	if err != nil {
		panic(err)
	}
	return t
}

type sigParser struct {
	src string
	pos int
}

func (p *sigParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *sigParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *sigParser) parseType() (TypeRef, error) {
	var t TypeRef
	if p.peek() == '?' {
		p.pos++
		t = TypeRef{Name: WildcardTypeName}
		word := p.ident()
		switch word {
		case "":
		case "extends", "super":
			bound, err := p.parseType()
			if err != nil {
				return TypeRef{}, err
			}
			if word == "extends" {
				t.Args = []TypeRef{bound}
			}
		default:
			return TypeRef{}, errors.Errorf(errors.KindValidation, "unexpected %q after wildcard", word)
		}
		return t, nil
	}

	name := p.ident()
	if name == "" {
		return TypeRef{}, errors.Errorf(errors.KindValidation, "expected type name at offset %d", p.pos)
	}
	t.Name = name

	if p.peek() == '<' {
		p.pos++
		for {
			arg, err := p.parseType()
			if err != nil {
				return TypeRef{}, err
			}
			t.Args = append(t.Args, arg)
			c := p.peek()
			if c == ',' {
				p.pos++
				continue
			}
			if c == '>' {
				p.pos++
				break
			}
			return TypeRef{}, errors.Errorf(errors.KindValidation, "unterminated type arguments for %s", name)
		}
	}

	for p.peek() == '[' {
		if !strings.HasPrefix(p.src[p.pos:], "[]") {
			return TypeRef{}, errors.Errorf(errors.KindValidation, "malformed array suffix at offset %d", p.pos)
		}
		p.pos += 2
		t = ArrayOf(t)
	}
	return t, nil
}

func (p *sigParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '.' || c == '$' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}
