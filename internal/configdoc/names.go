// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Hyphenate converts a member or constant name to kebab case:
// myItems -> my-items, DARK_BLUE -> dark-blue, HTTPServer -> http-server.
func Hyphenate(name string) string {
	var words []string
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' || r == '.' }) {
		words = append(words, camelWords(part)...)
	}
	return lower.String(strings.Join(words, "-"))
}

func camelWords(s string) []string {
	rs := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(rs); i++ {
		if !unicode.IsUpper(rs[i]) {
			continue
		}
		prev := rs[i-1]
		boundary := unicode.IsLower(prev) || unicode.IsDigit(prev) ||
			unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
		if boundary {
			words = append(words, string(rs[start:i]))
			start = i
		}
	}
	return append(words, string(rs[start:]))
}

// primitiveDefaults is used for non-optional primitives without a default.
var primitiveDefaults = map[string]string{
	"boolean": "false",
	"byte":    "0",
	"short":   "0",
	"int":     "0",
	"long":    "0",
	"float":   "0.0",
	"double":  "0.0",
}

// NormalizeDuration renders a duration default in its canonical short form:
// "10" -> "10S", "PT1M" -> "1M", "500ms" -> "500MS".
func NormalizeDuration(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	if isDigits(v) {
		return v + "S"
	}
	up := strings.ToUpper(v)
	return strings.TrimPrefix(up, "PT")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// mapKeySegment renders the placeholder segment for a map entry.
func mapKeySegment(mapKey string) string {
	return `."` + mapKey + `"`
}
