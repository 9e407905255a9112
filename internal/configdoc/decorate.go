// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"sort"

	"grimm.is/cfgdoc/internal/descriptor"
)

// Decoration is the usage-site context applied to raw group items.
type Decoration struct {
	Phase            ConfigPhase
	TopLevelRootName string
	// ParentNamePrefix is prepended to every key and section name.
	ParentNamePrefix string
	// AdditionalNamePrefixes yield alternate spellings of every key.
	AdditionalNamePrefixes []string
	// WithinAMap is OR-ed into the items, never cleared.
	WithinAMap bool
	// WithinAConfigGroup marks leaves as members of a group. Only group
	// usage sites set it. Items inherited from a supertype are decorated
	// without it and stay unmarked, since they belong to the composite that
	// declares the supertype rather than to a group. Once set it is never
	// cleared by a later decoration.
	WithinAConfigGroup bool
	// DocMapKey is set on leaves that do not carry a map placeholder yet.
	DocMapKey string
	// Collector, when set, receives the decorated children of nested
	// sections backed by registered groups.
	Collector *GroupDocs
}

// Decorate returns decorated deep copies of items. The input is not modified.
func Decorate(items []ConfigDocItem, d Decoration) []ConfigDocItem {
	out := CloneItems(items)
	decorateInPlace(out, d)
	return out
}

func decorateInPlace(items []ConfigDocItem, d Decoration) {
	for _, it := range items {
		it.Match(
			func(k *ConfigKey) { decorateKey(k, d) },
			func(s *ConfigSection) {
				s.Phase = d.Phase
				s.WithinAMap = s.WithinAMap || d.WithinAMap
				s.TopLevelGrouping = d.TopLevelRootName
				s.Name = d.ParentNamePrefix + s.Name
				decorateInPlace(s.Items, d)
				if d.Collector != nil {
					d.Collector.Collect(s.ConfigGroupType, s.Items)
				}
			},
		)
	}
}

func decorateKey(k *ConfigKey, d Decoration) {
	k.Phase = d.Phase
	k.WithinAMap = k.WithinAMap || d.WithinAMap
	if d.WithinAConfigGroup {
		k.WithinAConfigGroup = true
	}
	k.TopLevelGrouping = d.TopLevelRootName
	if k.DocMapKey == "" {
		k.DocMapKey = d.DocMapKey
	}

	var additional []string
	for _, ak := range k.AdditionalKeys {
		additional = append(additional, d.ParentNamePrefix+ak)
		for _, n := range d.AdditionalNamePrefixes {
			additional = append(additional, n+ak)
		}
	}
	for _, n := range d.AdditionalNamePrefixes {
		additional = append(additional, n+k.Key)
	}
	k.AdditionalKeys = additional
	k.Key = d.ParentNamePrefix + k.Key
}

// GroupDocs collects decorated group items per group type for separate
// group documentation files. Every usage site contributes its own copy.
type GroupDocs struct {
	model *descriptor.Model
	docs  map[string][]ConfigDocItem
}

// NewGroupDocs creates a collector accepting the groups registered in model.
func NewGroupDocs(model *descriptor.Model) *GroupDocs {
	return &GroupDocs{model: model, docs: make(map[string][]ConfigDocItem)}
}

// Collect appends copies of items under groupType if it is a registered group.
func (g *GroupDocs) Collect(groupType string, items []ConfigDocItem) {
	if g == nil || !g.model.IsGroup(groupType) {
		return
	}
	g.docs[groupType] = append(g.docs[groupType], CloneItems(items)...)
}

// Types returns the collected group types in sorted order.
func (g *GroupDocs) Types() []string {
	types := make([]string, 0, len(g.docs))
	for t := range g.docs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Items returns the items collected for groupType.
func (g *GroupDocs) Items(groupType string) []ConfigDocItem {
	return g.docs[groupType]
}
