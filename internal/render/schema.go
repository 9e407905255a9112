// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package render

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"grimm.is/cfgdoc/internal/configdoc"
	"grimm.is/cfgdoc/internal/errors"
)

const jsonSchemaDraft = "https://json-schema.org/draft/2020-12/schema"

// ConfigSchema is the subset of JSON Schema emitted for configuration files.
type ConfigSchema struct {
	Schema      string                   `json:"$schema,omitempty"`
	ID          string                   `json:"$id,omitempty"`
	Title       string                   `json:"title,omitempty"`
	Description string                   `json:"description,omitempty"`
	Type        string                   `json:"type,omitempty"`
	Properties  map[string]*ConfigSchema `json:"properties,omitempty"`
	Required    []string                 `json:"required,omitempty"`

	// Property-level fields
	Items   *ConfigSchema `json:"items,omitempty"`
	Enum    []string      `json:"enum,omitempty"`
	Default any           `json:"default,omitempty"`
	Phase   string        `json:"x-config-phase,omitempty"`
	EnvVar  string        `json:"x-env-var,omitempty"`
}

type schemaRenderer struct{}

func (schemaRenderer) Format() string { return "schema" }

// Render writes one <id>.schema.json per output file. Every leaf key is a
// property of the root object; map placeholders stay in the property name.
func (schemaRenderer) Render(out *configdoc.Output) (Files, error) {
	files := make(Files, len(out.Files))
	for _, id := range out.FileIDs() {
		js := GenerateSchema(id, out.Files[id])
		data, err := json.MarshalIndent(js, "", "  ")
		if err != nil {
			return nil, errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to encode schema"), "file", id)
		}
		files[id+".schema.json"] = append(data, '\n')
	}
	return files, nil
}

// GenerateSchema builds the schema of one output file.
func GenerateSchema(id string, items []configdoc.ConfigDocItem) *ConfigSchema {
	js := &ConfigSchema{
		Schema:     jsonSchemaDraft,
		ID:         id + ".schema.json",
		Title:      titleFor(id),
		Type:       "object",
		Properties: make(map[string]*ConfigSchema),
	}
	for _, k := range configdoc.Keys(items) {
		js.Properties[k.Key] = keySchema(k)
		if k.Required() && !k.WithinAMap {
			js.Required = append(js.Required, k.Key)
		}
	}
	return js
}

func keySchema(k *configdoc.ConfigKey) *ConfigSchema {
	js := &ConfigSchema{
		Description: truncateDesc(k.ConfigDoc, 0),
		Phase:       k.Phase.String(),
		EnvVar:      k.EnvironmentVariable(),
	}

	elem := &ConfigSchema{Type: jsonType(strings.TrimPrefix(k.Type, "list of "))}
	if k.Enum {
		elem.Type = "string"
		for _, v := range k.AcceptedValues {
			value, _ := acceptedValue(v)
			elem.Enum = append(elem.Enum, value)
		}
	}

	if k.List {
		js.Type = "array"
		js.Items = elem
		if k.DefaultValue != "" {
			var def []any
			for _, v := range strings.Split(k.DefaultValue, ",") {
				def = append(def, parseDefaultValue(strings.TrimSpace(v), elem.Type))
			}
			js.Default = def
		}
		return js
	}

	js.Type = elem.Type
	js.Enum = elem.Enum
	if k.DefaultValue != "" {
		js.Default = parseDefaultValue(k.DefaultValue, js.Type)
	}
	return js
}

// jsonType maps a display type to a JSON Schema type.
func jsonType(displayType string) string {
	switch displayType {
	case "boolean":
		return "boolean"
	case "byte", "short", "int", "long":
		return "integer"
	case "float", "double":
		return "number"
	default:
		return "string"
	}
}

// parseDefaultValue parses a default value string to the appropriate type.
// Values that do not parse stay strings.
func parseDefaultValue(def string, jsonType string) any {
	switch jsonType {
	case "boolean":
		if b, err := strconv.ParseBool(def); err == nil {
			return b
		}
	case "integer":
		if n, err := strconv.ParseInt(def, 10, 64); err == nil {
			return n
		}
	case "number":
		if n, err := strconv.ParseFloat(def, 64); err == nil {
			return n
		}
	}
	return def
}
