// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"

	"grimm.is/cfgdoc/internal/errors"
)

// ConfigPhase is the lifecycle stage at which a property can be set.
// Constants are declared in ordering precedence.
type ConfigPhase int

const (
	PhaseUnknown ConfigPhase = iota
	PhaseBuildTime
	PhaseBuildAndRunTimeFixed
	PhaseBootstrap
	PhaseRunTime
)

var phaseNames = map[ConfigPhase]string{
	PhaseBuildTime:            "BUILD_TIME",
	PhaseBuildAndRunTimeFixed: "BUILD_AND_RUN_TIME_FIXED",
	PhaseBootstrap:            "BOOTSTRAP",
	PhaseRunTime:              "RUN_TIME",
}

func (p ConfigPhase) String() string {
	if n, ok := phaseNames[p]; ok {
		return n
	}
	return "UNKNOWN"
}

// FixedAtBuildTime reports whether values are frozen once the build is done.
func (p ConfigPhase) FixedAtBuildTime() bool {
	return p == PhaseBuildTime || p == PhaseBuildAndRunTimeFixed
}

// ParsePhase parses a phase name case-insensitively; '-' is accepted for '_'.
func ParsePhase(s string) (ConfigPhase, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for p, n := range phaseNames {
		if n == norm {
			return p, nil
		}
	}
	return PhaseUnknown, errors.Errorf(errors.KindValidation, "unknown config phase %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p ConfigPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ConfigPhase) UnmarshalText(b []byte) error {
	if string(b) == "UNKNOWN" {
		*p = PhaseUnknown
		return nil
	}
	v, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ConfigKey is a documented leaf property.
type ConfigKey struct {
	Key                string      `json:"key"`
	AdditionalKeys     []string    `json:"additionalKeys,omitempty"`
	ConfigDoc          string      `json:"configDoc,omitempty"`
	Type               string      `json:"type"`
	DefaultValue       string      `json:"defaultValue"`
	JavadocSiteLink    string      `json:"javadocSiteLink,omitempty"`
	Phase              ConfigPhase `json:"configPhase"`
	WithinAMap         bool        `json:"withinAMap,omitempty"`
	WithinAConfigGroup bool        `json:"withinAConfigGroup,omitempty"`
	Optional           bool        `json:"optional,omitempty"`
	List               bool        `json:"list,omitempty"`
	Enum               bool        `json:"enum,omitempty"`
	PassThroughMap     bool        `json:"passThroughMap,omitempty"`
	AcceptedValues     []string    `json:"acceptedValues,omitempty"`
	TopLevelGrouping   string      `json:"topLevelGrouping,omitempty"`
	DocMapKey          string      `json:"docMapKey,omitempty"`
}

// EnvironmentVariable returns the environment variable spelling of the key.
func (k *ConfigKey) EnvironmentVariable() string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(k.Key) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Required reports whether the property must be set by the user.
func (k *ConfigKey) Required() bool {
	return k.DefaultValue == "" && !k.Optional && !k.List && !k.PassThroughMap
}

func (k *ConfigKey) clone() *ConfigKey {
	c := *k
	c.AdditionalKeys = cloneStrings(k.AdditionalKeys)
	c.AcceptedValues = cloneStrings(k.AcceptedValues)
	return &c
}

// ConfigSection groups the items of a nested configuration group.
type ConfigSection struct {
	Name                string          `json:"name"`
	SectionDetailsTitle string          `json:"sectionDetailsTitle,omitempty"`
	SectionDetails      string          `json:"sectionDetails,omitempty"`
	ConfigGroupType     string          `json:"configGroupType"`
	ShowSection         bool            `json:"showSection,omitempty"`
	Optional            bool            `json:"optional,omitempty"`
	WithinAMap          bool            `json:"withinAMap,omitempty"`
	Phase               ConfigPhase     `json:"configPhase"`
	TopLevelGrouping    string          `json:"topLevelGrouping,omitempty"`
	Items               []ConfigDocItem `json:"configDocItems"`
}

func (s *ConfigSection) clone() *ConfigSection {
	c := *s
	c.Items = CloneItems(s.Items)
	return &c
}

// ConfigDocItem holds exactly one of a ConfigKey or a ConfigSection.
// The zero value holds neither and is only valid as a decode target.
type ConfigDocItem struct {
	key     *ConfigKey
	section *ConfigSection
}

// KeyItem wraps a leaf.
func KeyItem(k *ConfigKey) ConfigDocItem {
	return ConfigDocItem{key: k}
}

// SectionItem wraps a section.
func SectionItem(s *ConfigSection) ConfigDocItem {
	return ConfigDocItem{section: s}
}

func (i ConfigDocItem) IsConfigKey() bool     { return i.key != nil }
func (i ConfigDocItem) IsConfigSection() bool { return i.section != nil }

// ConfigKey returns the leaf, or nil for sections.
func (i ConfigDocItem) ConfigKey() *ConfigKey { return i.key }

// ConfigSection returns the section, or nil for leaves.
func (i ConfigDocItem) ConfigSection() *ConfigSection { return i.section }

// Match calls exactly one of the handlers. It panics on the zero value.
func (i ConfigDocItem) Match(onKey func(*ConfigKey), onSection func(*ConfigSection)) {
	switch {
	case i.key != nil:
		onKey(i.key)
	case i.section != nil:
		onSection(i.section)
	default:
		panic("configdoc: empty ConfigDocItem")
	}
}

// Phase returns the phase of whichever variant is held.
func (i ConfigDocItem) Phase() ConfigPhase {
	if i.key != nil {
		return i.key.Phase
	}
	if i.section != nil {
		return i.section.Phase
	}
	return PhaseUnknown
}

// Clone returns a deep copy.
func (i ConfigDocItem) Clone() ConfigDocItem {
	switch {
	case i.key != nil:
		return KeyItem(i.key.clone())
	case i.section != nil:
		return SectionItem(i.section.clone())
	}
	return ConfigDocItem{}
}

// identity is what makes two items the same entry for additive merging.
func (i ConfigDocItem) identity() string {
	if i.key != nil {
		return "key:" + i.key.Key
	}
	if i.section != nil {
		return "section:" + i.section.Name + "#" + i.section.ConfigGroupType
	}
	return ""
}

type itemJSON struct {
	ConfigKey     *ConfigKey     `json:"configKey,omitempty"`
	ConfigSection *ConfigSection `json:"configSection,omitempty"`
}

// MarshalJSON encodes the item as {"configKey":{...}} or {"configSection":{...}}.
func (i ConfigDocItem) MarshalJSON() ([]byte, error) {
	if i.key == nil && i.section == nil {
		return nil, errors.New(errors.KindInternal, "cannot encode empty ConfigDocItem")
	}
	return json.Marshal(itemJSON{ConfigKey: i.key, ConfigSection: i.section})
}

// UnmarshalJSON decodes an item. Payloads holding both or neither variant are
// corrupt.
func (i *ConfigDocItem) UnmarshalJSON(b []byte) error {
	var v itemJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return errors.Wrap(err, errors.KindCorrupt, "malformed item")
	}
	if (v.ConfigKey == nil) == (v.ConfigSection == nil) {
		return errors.New(errors.KindCorrupt, "item must hold exactly one of configKey or configSection")
	}
	i.key, i.section = v.ConfigKey, v.ConfigSection
	return nil
}

// CloneItems deep-copies a list.
func CloneItems(items []ConfigDocItem) []ConfigDocItem {
	if items == nil {
		return nil
	}
	out := make([]ConfigDocItem, len(items))
	for idx, it := range items {
		out[idx] = it.Clone()
	}
	return out
}

// EncodeItems serializes a list for storage.
func EncodeItems(items []ConfigDocItem) ([]byte, error) {
	if items == nil {
		items = []ConfigDocItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "failed to encode items")
	}
	return b, nil
}

// DecodeItems parses a stored list. Any malformed content is KindCorrupt.
func DecodeItems(b []byte) ([]ConfigDocItem, error) {
	if trimmed := bytes.TrimSpace(b); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New(errors.KindCorrupt, "empty item list payload")
	}
	items := []ConfigDocItem{}
	if err := json.Unmarshal(b, &items); err != nil {
		if errors.IsKind(err, errors.KindCorrupt) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.KindCorrupt, "malformed item list")
	}
	return items, nil
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
