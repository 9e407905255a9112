// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"grimm.is/cfgdoc/internal/descriptor"
	"grimm.is/cfgdoc/internal/errors"
)

// Group cache keys are <type>[#extended]@<fingerprint>. The fingerprint
// hashes every descriptor a raw scan of the type can read, so an edited
// group, supertype, nested group or enum yields a new key.
const (
	extendedSuffix = "#extended"
	versionSep     = "@"
)

// closure is the descriptor input of one raw scan.
type closure struct {
	Composites map[string]*descriptor.Composite `json:"composites"`
	Enums      map[string]*descriptor.Enum      `json:"enums"`
	Groups     []string                         `json:"groups"`
	Options    string                           `json:"options"`
}

// fingerprinter memoizes type fingerprints for one immutable model.
type fingerprinter struct {
	model   *descriptor.Model
	options string
	memo    map[string]string
}

func newFingerprinter(model *descriptor.Model, opts Options) *fingerprinter {
	return &fingerprinter{
		model:   model,
		options: optionsFingerprint(opts),
		memo:    make(map[string]string),
	}
}

// optionsFingerprint covers the options that change raw items.
func optionsFingerprint(opts Options) string {
	var sb strings.Builder
	for _, table := range []map[string]string{opts.DisplayTypes, opts.JavadocLinks} {
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s=%s;", k, table[k])
		}
		sb.WriteString("|")
	}
	return sb.String()
}

func (f *fingerprinter) fingerprint(typeName string) (string, error) {
	if fp, ok := f.memo[typeName]; ok {
		return fp, nil
	}

	c := closure{
		Composites: make(map[string]*descriptor.Composite),
		Enums:      make(map[string]*descriptor.Enum),
		Options:    f.options,
	}
	groups := make(map[string]bool)
	f.collect(typeName, &c, groups)
	for g := range groups {
		c.Groups = append(c.Groups, g)
	}
	sort.Strings(c.Groups)

	data, err := json.Marshal(c)
	if err != nil {
		return "", errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to fingerprint descriptor"), "type", typeName)
	}
	fp := fmt.Sprintf("%016x", xxhash.Sum64(data))
	f.memo[typeName] = fp
	return fp, nil
}

// collect adds name and everything reachable from it: supertypes, member
// types and their type arguments.
func (f *fingerprinter) collect(name string, c *closure, groups map[string]bool) {
	if _, done := c.Composites[name]; done {
		return
	}
	if _, done := c.Enums[name]; done {
		return
	}
	if f.model.IsGroup(name) {
		groups[name] = true
	}
	if e, ok := f.model.Enum(name); ok {
		c.Enums[name] = e
		return
	}
	comp, ok := f.model.Composite(name)
	if !ok {
		return
	}
	c.Composites[name] = comp
	for _, sup := range supertypes(comp) {
		f.collect(sup, c, groups)
	}
	for _, m := range comp.Members {
		f.collectType(m.Type, c, groups)
	}
}

func (f *fingerprinter) collectType(t descriptor.TypeRef, c *closure, groups map[string]bool) {
	if t.Name != "" {
		f.collect(t.Name, c, groups)
	}
	for _, a := range t.Args {
		f.collectType(a, c, groups)
	}
}

// cacheKey is the versioned group cache key of typeName.
func (s *Scanner) cacheKey(typeName string, extended bool) (string, error) {
	fp, err := s.fingerprints.fingerprint(typeName)
	if err != nil {
		return "", err
	}
	return cacheKeyPrefix(typeName, extended) + fp, nil
}

func cacheKeyPrefix(typeName string, extended bool) string {
	if extended {
		return typeName + extendedSuffix + versionSep
	}
	return typeName + versionSep
}
