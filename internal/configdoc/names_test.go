// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHyphenate(t *testing.T) {
	tests := map[string]string{
		"port":          "port",
		"myItems":       "my-items",
		"DARK_BLUE":     "dark-blue",
		"HTTPServer":    "http-server",
		"maxPoolSize2":  "max-pool-size2",
		"io.acme.Tls":   "io-acme-tls",
		"already-kebab": "already-kebab",
	}
	for in, want := range tests {
		assert.Equal(t, want, Hyphenate(in), in)
	}
}

func TestNormalizeDuration(t *testing.T) {
	assert.Equal(t, "10S", NormalizeDuration("10"))
	assert.Equal(t, "1M", NormalizeDuration("PT1M"))
	assert.Equal(t, "500MS", NormalizeDuration(" 500ms "))
	assert.Equal(t, "", NormalizeDuration(""))
}

func TestCleanJavadoc(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "  ", ""},
		{"inline code", "The {@code port} value.<p>Second   paragraph.", "The `port` value.\n\nSecond paragraph."},
		{"link label dropped", "See {@link io.acme.Pool#size the size}.", "See `io.acme.Pool#size`."},
		{"member link", "Use {@link #enabled}.", "Use `enabled`."},
		{"list", "Modes:<ul><li>one</li><li>two</li></ul>", "Modes:\n\n* one\n* two"},
		{"html code", "Set <code>true</code> to enable.", "Set `true` to enable."},
		{"whitespace", "Line one\n   continues here.", "Line one continues here."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJavadoc(tt.in))
		})
	}
}

func TestSectionTitle(t *testing.T) {
	assert.Equal(t, "TLS settings", SectionTitle("TLS settings. Only used when a certificate is configured."))
	assert.Equal(t, "Uses v1.2 of the protocol", SectionTitle("Uses v1.2 of the protocol. More."))
	assert.Equal(t, "First paragraph", SectionTitle("First paragraph\n\nSecond."))
	assert.Equal(t, "", SectionTitle(""))
}

func TestJavadocLinker(t *testing.T) {
	l := NewJavadocLinker(map[string]string{"io.acme.": "https://docs.acme.io/api/"})

	assert.Equal(t, JDKJavadocBase+"java/time/Duration.html", l.Link("java.time.Duration"))
	assert.Empty(t, l.Link("java.lang.String"))
	assert.Empty(t, l.Link("int"))
	assert.Empty(t, l.Link("org.unknown.Thing"))
	assert.Equal(t, "https://javadoc.io/doc/io.vertx/vertx-core/latest/io/vertx/core/http/HttpServerOptions.html",
		l.Link("io.vertx.core.http.HttpServerOptions"))
	assert.Equal(t, "https://docs.acme.io/api/io/acme/Outer.Inner.html", l.Link("io.acme.Outer$Inner"))
}

func TestJavadocLinkerLongestPrefixWins(t *testing.T) {
	l := NewJavadocLinker(map[string]string{
		"io.":          "https://generic/",
		"io.acme.sub.": "https://sub/",
	})
	assert.Equal(t, "https://sub/io/acme/sub/Type.html", l.Link("io.acme.sub.Type"))
	assert.Equal(t, "https://generic/io/other/Type.html", l.Link("io.other.Type"))
}
