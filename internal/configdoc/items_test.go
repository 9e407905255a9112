// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/cfgdoc/internal/errors"
)

func TestParsePhase(t *testing.T) {
	tests := []struct {
		in   string
		want ConfigPhase
	}{
		{"BUILD_TIME", PhaseBuildTime},
		{"build-and-run-time-fixed", PhaseBuildAndRunTimeFixed},
		{" bootstrap ", PhaseBootstrap},
		{"Run_Time", PhaseRunTime},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePhase(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParsePhase("later")
	assert.True(t, errors.IsKind(err, errors.KindValidation))
}

func TestPhaseOrdering(t *testing.T) {
	assert.Less(t, int(PhaseBuildTime), int(PhaseBuildAndRunTimeFixed))
	assert.Less(t, int(PhaseBuildAndRunTimeFixed), int(PhaseBootstrap))
	assert.Less(t, int(PhaseBootstrap), int(PhaseRunTime))
	assert.True(t, PhaseBuildAndRunTimeFixed.FixedAtBuildTime())
	assert.False(t, PhaseBootstrap.FixedAtBuildTime())
}

func TestConfigKeyDerived(t *testing.T) {
	k := &ConfigKey{Key: `quarkus.foo."my-items".url`}
	assert.Equal(t, "QUARKUS_FOO__MY_ITEMS__URL", k.EnvironmentVariable())
	assert.True(t, k.Required())

	k.Optional = true
	assert.False(t, k.Required())
	k.Optional = false
	k.DefaultValue = "x"
	assert.False(t, k.Required())
}

func TestItemUnion(t *testing.T) {
	key := KeyItem(&ConfigKey{Key: "a", Phase: PhaseRunTime})
	sec := SectionItem(&ConfigSection{Name: "b", Items: []ConfigDocItem{key}})

	assert.True(t, key.IsConfigKey())
	assert.False(t, key.IsConfigSection())
	assert.Nil(t, key.ConfigSection())
	assert.True(t, sec.IsConfigSection())
	assert.Nil(t, sec.ConfigKey())

	var visited []string
	for _, it := range []ConfigDocItem{key, sec} {
		it.Match(
			func(k *ConfigKey) { visited = append(visited, "key:"+k.Key) },
			func(s *ConfigSection) { visited = append(visited, "section:"+s.Name) },
		)
	}
	assert.Equal(t, []string{"key:a", "section:b"}, visited)

	assert.Panics(t, func() {
		ConfigDocItem{}.Match(func(*ConfigKey) {}, func(*ConfigSection) {})
	})
}

func TestCloneIsDeep(t *testing.T) {
	orig := SectionItem(&ConfigSection{
		Name: "s",
		Items: []ConfigDocItem{
			KeyItem(&ConfigKey{Key: "k", AdditionalKeys: []string{"alt"}, AcceptedValues: []string{"a"}}),
		},
	})
	c := orig.Clone()
	c.ConfigSection().Name = "changed"
	inner := c.ConfigSection().Items[0].ConfigKey()
	inner.Key = "changed"
	inner.AdditionalKeys[0] = "changed"
	inner.AcceptedValues[0] = "changed"

	assert.Equal(t, "s", orig.ConfigSection().Name)
	origKey := orig.ConfigSection().Items[0].ConfigKey()
	assert.Equal(t, "k", origKey.Key)
	assert.Equal(t, []string{"alt"}, origKey.AdditionalKeys)
	assert.Equal(t, []string{"a"}, origKey.AcceptedValues)
}

func TestItemJSON(t *testing.T) {
	items := []ConfigDocItem{
		KeyItem(&ConfigKey{Key: ".port", Type: "int", DefaultValue: "8080", Phase: PhaseBuildTime}),
		SectionItem(&ConfigSection{Name: ".tls", ConfigGroupType: "io.acme.GroupTls", Optional: true,
			Items: []ConfigDocItem{KeyItem(&ConfigKey{Key: ".tls.enabled", Type: "boolean"})}}),
	}
	data, err := EncodeItems(items)
	require.NoError(t, err)
	assert.Contains(t, string(data), `{"configKey":{"key":".port"`)
	assert.Contains(t, string(data), `"configPhase":"BUILD_TIME"`)
	assert.Contains(t, string(data), `{"configSection":{"name":".tls"`)

	decoded, err := DecodeItems(data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, items[0].ConfigKey(), decoded[0].ConfigKey())
	assert.Equal(t, ".tls.enabled", decoded[1].ConfigSection().Items[0].ConfigKey().Key)
	assert.Equal(t, PhaseUnknown, decoded[1].ConfigSection().Items[0].ConfigKey().Phase)

	empty, err := EncodeItems(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestDecodeCorruptItems(t *testing.T) {
	payloads := map[string]string{
		"both":      `[{"configKey":{"key":"a"},"configSection":{"name":"b"}}]`,
		"neither":   `[{}]`,
		"truncated": `[{"configKey":{"key":`,
		"null":      `null`,
		"empty":     ``,
		"phase":     `[{"configKey":{"key":"a","configPhase":"SOMETIMES"}}]`,
	}
	for name, p := range payloads {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeItems([]byte(p))
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindCorrupt), "got %v", err)
		})
	}

	_, err := EncodeItems([]ConfigDocItem{{}})
	assert.Error(t, err)
}
