// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import "sort"

// SortItems returns a copy of items ordered keys before sections, then by
// phase precedence, otherwise keeping input order. Section children are
// sorted the same way.
func SortItems(items []ConfigDocItem) []ConfigDocItem {
	out := CloneItems(items)
	sortInPlace(out)
	return out
}

func sortInPlace(items []ConfigDocItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.IsConfigSection() != b.IsConfigSection() {
			return !a.IsConfigSection()
		}
		return a.Phase() < b.Phase()
	})
	for _, it := range items {
		if s := it.ConfigSection(); s != nil {
			sortInPlace(s.Items)
		}
	}
}

// Flatten returns a copy of items where sections that are not shown are
// replaced by their children. An optional hidden section makes the spliced
// children optional.
func Flatten(items []ConfigDocItem) []ConfigDocItem {
	var out []ConfigDocItem
	for _, it := range items {
		it = it.Clone()
		s := it.ConfigSection()
		if s == nil {
			out = append(out, it)
			continue
		}
		children := Flatten(s.Items)
		if s.ShowSection {
			s.Items = children
			out = append(out, it)
			continue
		}
		if s.Optional {
			for _, c := range children {
				c.Match(
					func(k *ConfigKey) { k.Optional = true },
					func(cs *ConfigSection) { cs.Optional = true },
				)
			}
		}
		out = append(out, children...)
	}
	return out
}

// Keys returns every leaf of items in depth-first order.
func Keys(items []ConfigDocItem) []*ConfigKey {
	var out []*ConfigKey
	for _, it := range items {
		it.Match(
			func(k *ConfigKey) { out = append(out, k) },
			func(s *ConfigSection) { out = append(out, Keys(s.Items)...) },
		)
	}
	return out
}
