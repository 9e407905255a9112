// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phased(k string, p ConfigPhase) ConfigDocItem {
	return KeyItem(&ConfigKey{Key: k, Phase: p})
}

func names(items []ConfigDocItem) []string {
	var out []string
	for _, it := range items {
		it.Match(
			func(k *ConfigKey) { out = append(out, k.Key) },
			func(s *ConfigSection) { out = append(out, "["+s.Name+"]") },
		)
	}
	return out
}

func TestSortItems(t *testing.T) {
	items := []ConfigDocItem{
		SectionItem(&ConfigSection{Name: "s1", Phase: PhaseBuildTime, Items: []ConfigDocItem{
			phased("s1.b", PhaseRunTime),
			phased("s1.a", PhaseBuildTime),
		}}),
		phased("run", PhaseRunTime),
		phased("boot", PhaseBootstrap),
		phased("build1", PhaseBuildTime),
		phased("fixed", PhaseBuildAndRunTimeFixed),
		phased("build2", PhaseBuildTime),
	}

	sorted := SortItems(items)
	assert.Equal(t, []string{"build1", "build2", "fixed", "boot", "run", "[s1]"}, names(sorted))
	assert.Equal(t, []string{"s1.a", "s1.b"}, names(sorted[5].ConfigSection().Items))

	assert.Equal(t, "[s1]", names(items)[0], "input order untouched")
	assert.Equal(t, []string{"s1.b", "s1.a"}, names(items[0].ConfigSection().Items))
}

func TestSortItemsIsIdempotent(t *testing.T) {
	items := []ConfigDocItem{phased("b", PhaseRunTime), phased("a", PhaseBuildTime)}
	once := SortItems(items)
	assert.Equal(t, once, SortItems(once))
}

func TestFlatten(t *testing.T) {
	items := []ConfigDocItem{
		phased("top", PhaseBuildTime),
		SectionItem(&ConfigSection{Name: "hidden", Optional: true, Items: []ConfigDocItem{
			phased("hidden.a", PhaseBuildTime),
			SectionItem(&ConfigSection{Name: "hidden.shown", ShowSection: true, Items: []ConfigDocItem{
				SectionItem(&ConfigSection{Name: "hidden.shown.inner", Items: []ConfigDocItem{
					phased("hidden.shown.inner.x", PhaseBuildTime),
				}}),
			}}),
		}}),
	}

	flat := Flatten(items)
	require.Equal(t, []string{"top", "hidden.a", "[hidden.shown]"}, names(flat))
	assert.False(t, flat[0].ConfigKey().Optional)
	assert.True(t, flat[1].ConfigKey().Optional)
	assert.True(t, flat[2].ConfigSection().Optional)

	shown := flat[2].ConfigSection()
	assert.Equal(t, []string{"hidden.shown.inner.x"}, names(shown.Items), "hidden sections spliced at every level")
	assert.False(t, shown.Items[0].ConfigKey().Optional)

	assert.False(t, items[1].ConfigSection().Items[0].ConfigKey().Optional, "input untouched")
}
