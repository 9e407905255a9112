// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

var inlineTag = regexp.MustCompile(`\{@(?:code|link|linkplain|literal)\s+([^}]*)\}`)

// CleanJavadoc turns HTML flavoured documentation into plain text. Paragraphs
// become blank-line separated, code and links become backticked literals and
// list items become "* " bullets. Unparseable input degrades to the raw text.
func CleanJavadoc(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	raw = inlineTag.ReplaceAllStringFunc(raw, func(m string) string {
		sub := inlineTag.FindStringSubmatch(m)
		ref := strings.TrimSpace(sub[1])
		if i := strings.IndexAny(ref, " \t"); i > 0 && strings.HasPrefix(m, "{@link") {
			ref = ref[:i]
		}
		ref = strings.TrimPrefix(ref, "#")
		return "`" + ref + "`"
	})

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(raw))
	inPre := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return tidy(sb.String())
		case html.TextToken:
			text := string(z.Text())
			if !inPre {
				text = collapseSpace(text)
			}
			sb.WriteString(text)
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "p":
				sb.WriteString("\n\n")
			case "br":
				sb.WriteString("\n")
			case "li":
				sb.WriteString("\n* ")
			case "ul", "ol":
				sb.WriteString("\n")
			case "code", "tt":
				sb.WriteString("`")
			case "pre":
				inPre = true
				sb.WriteString("\n\n")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "code", "tt":
				sb.WriteString("`")
			case "pre":
				inPre = false
				sb.WriteString("\n\n")
			case "ul", "ol":
				sb.WriteString("\n\n")
			}
		}
	}
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			return " "
		}
		return ""
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeft(s, " \t\r\n") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\r\n") != s {
		out += " "
	}
	return out
}

// tidy trims each line and squeezes runs of blank lines.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// SectionTitle returns the first sentence of a cleaned doc, without the
// terminating period.
func SectionTitle(doc string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return ""
	}
	if i := strings.Index(doc, "\n\n"); i >= 0 {
		doc = doc[:i]
	}
	for i := 0; i < len(doc); i++ {
		if doc[i] != '.' {
			continue
		}
		if i+1 == len(doc) || doc[i+1] == ' ' || doc[i+1] == '\n' {
			doc = doc[:i]
			break
		}
	}
	return strings.Join(strings.Fields(doc), " ")
}

// JDKJavadocBase is where standard library types are documented.
const JDKJavadocBase = "https://docs.oracle.com/en/java/javase/17/docs/api/java.base/"

// DefaultJavadocLinks is the built-in package prefix to javadoc site table.
var DefaultJavadocLinks = map[string]string{
	"io.vertx.":  "https://javadoc.io/doc/io.vertx/vertx-core/latest/",
	"io.agroal.": "https://javadoc.io/doc/io.agroal/agroal-api/latest/",
}

var unlinkedJDKTypes = map[string]bool{
	"java.lang.String":    true,
	"java.lang.Boolean":   true,
	"java.lang.Byte":      true,
	"java.lang.Short":     true,
	"java.lang.Integer":   true,
	"java.lang.Long":      true,
	"java.lang.Float":     true,
	"java.lang.Double":    true,
	"java.lang.Character": true,
}

// JavadocLinker resolves external documentation links for types.
type JavadocLinker struct {
	prefixes []string
	bases    map[string]string
}

// NewJavadocLinker builds a linker from the default table plus extra, where
// extra entries override defaults with the same prefix.
func NewJavadocLinker(extra map[string]string) *JavadocLinker {
	l := &JavadocLinker{bases: make(map[string]string)}
	for p, u := range DefaultJavadocLinks {
		l.bases[p] = u
	}
	for p, u := range extra {
		l.bases[p] = u
	}
	for p := range l.bases {
		l.prefixes = append(l.prefixes, p)
	}
	// Longest prefix first.
	sort.Slice(l.prefixes, func(i, j int) bool {
		if len(l.prefixes[i]) != len(l.prefixes[j]) {
			return len(l.prefixes[i]) > len(l.prefixes[j])
		}
		return l.prefixes[i] < l.prefixes[j]
	})
	return l
}

// Link returns the documentation URL for a qualified type name, or "".
func (l *JavadocLinker) Link(typeName string) string {
	if typeName == "" || !strings.Contains(typeName, ".") {
		return ""
	}
	path := strings.ReplaceAll(typeName, "$", ".")
	if strings.HasPrefix(typeName, "java.") || strings.HasPrefix(typeName, "javax.") {
		if unlinkedJDKTypes[typeName] {
			return ""
		}
		return JDKJavadocBase + javadocPath(path) + ".html"
	}
	for _, p := range l.prefixes {
		if strings.HasPrefix(typeName, p) {
			return l.bases[p] + javadocPath(path) + ".html"
		}
	}
	return ""
}

// javadocPath maps io.acme.Outer.Inner onto io/acme/Outer.Inner: package
// segments are lower case, class segments start upper case.
func javadocPath(name string) string {
	parts := strings.Split(name, ".")
	i := 0
	for i < len(parts)-1 && parts[i] != "" && !startsUpper(parts[i]) {
		i++
	}
	return strings.Join(parts[:i], "/") + "/" + strings.Join(parts[i:], ".")
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}
