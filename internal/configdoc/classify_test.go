// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grimm.is/cfgdoc/internal/descriptor"
)

const classifyModel = `
group "io.acme.Pool" {
  member "size" { type = "int" }
}

enum "io.acme.Color" {
  constant "RED" {
    doc = "Red <b>hot</b>\n  color."
  }
  constant "DARK_BLUE" {}
  constant "LEGACY" {
    value = "old"
  }
}
`

func TestClassify(t *testing.T) {
	c := NewClassifier(loadModel(t, classifyModel), map[string]string{"io.acme.Secret": "secret"})

	tests := []struct {
		sig      string
		category Category
		display  string
		optional bool
		list     bool
		depth    int
	}{
		{"int", CategoryScalar, "int", false, false, 0},
		{"java.lang.Integer", CategoryScalar, "int", false, false, 0},
		{"java.util.Optional<java.lang.String>", CategoryScalar, "string", true, false, 0},
		{"java.util.OptionalLong", CategoryScalar, "long", true, false, 0},
		{"java.util.List<java.lang.String>", CategoryScalar, "list of string", false, true, 0},
		{"java.lang.String[]", CategoryScalar, "list of string", false, true, 0},
		{"java.time.Duration", CategoryScalar, "Duration", false, false, 0},
		{"io.acme.Secret", CategoryScalar, "secret", false, false, 0},
		{"io.acme.Color", CategoryEnum, "Color", false, false, 0},
		{"java.util.Optional<java.util.List<io.acme.Color>>", CategoryEnum, "list of Color", true, true, 0},
		{"io.acme.Pool", CategoryGroup, "Pool", false, false, 0},
		{"java.util.Optional<io.acme.Pool>", CategoryGroup, "Pool", true, false, 0},
		{"java.util.List<io.acme.Pool>", CategoryGroup, "Pool", false, true, 0},
		{"java.util.Map<java.lang.String, io.acme.Pool>", CategoryGroupInMap, "Pool", false, false, 1},
		{"java.util.Map<java.lang.String, java.util.Map<java.lang.String, io.acme.Pool>>", CategoryGroupInMap, "Pool", false, false, 2},
		{"java.util.Map<java.lang.String, java.lang.String>", CategoryPassThroughMap,
			"`java.util.Map<java.lang.String,java.lang.String>`", false, false, 0},
		{"io.acme.Widget", CategoryOther, "Widget", false, false, 0},
		{"io.acme.Box<java.lang.String>", CategoryOther, "`io.acme.Box<java.lang.String>`", false, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			s := c.Classify(descriptor.MustParseType(tt.sig))
			assert.Equal(t, tt.category, s.Category, s.Category.String())
			assert.Equal(t, tt.display, s.DisplayType)
			assert.Equal(t, tt.optional, s.Optional, "optional")
			assert.Equal(t, tt.list, s.List, "list")
			assert.Equal(t, tt.depth, s.MapDepth, "map depth")
		})
	}
}

func TestClassifyPassThroughMapFlags(t *testing.T) {
	c := NewClassifier(loadModel(t, classifyModel), nil)
	s := c.Classify(descriptor.MustParseType("java.util.Map<java.lang.String, java.util.List<java.lang.String>>"))
	assert.True(t, s.PassThroughMap)
	assert.False(t, s.IsGroup())
	assert.Equal(t, "java.util.Map", s.Element.Name)
}

func TestAcceptedValues(t *testing.T) {
	c := NewClassifier(loadModel(t, classifyModel), nil)
	assert.Equal(t, []string{"tooltip:red[Red hot color.]", "dark-blue", "old"}, c.AcceptedValues("io.acme.Color"))
	assert.Nil(t, c.AcceptedValues("io.acme.Missing"))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "GROUP_IN_MAP", CategoryGroupInMap.String())
	assert.Equal(t, "PASS_THROUGH_MAP", CategoryPassThroughMap.String())
}
