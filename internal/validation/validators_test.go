// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grimm.is/cfgdoc/internal/errors"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) error
		input string
		ok    bool
	}{
		{"owner", ValidateIdentifier, "acme-server", true},
		{"owner with slash", ValidateIdentifier, "../etc", false},
		{"empty owner", ValidateIdentifier, "", false},
		{"root", ValidateRootName, "quarkus.log.console", true},
		{"single segment root", ValidateRootName, "quarkus", true},
		{"root with empty segment", ValidateRootName, "quarkus..log", false},
		{"root with shell chars", ValidateRootName, "quarkus;rm", false},
		{"type", ValidateTypeName, "io.acme.Outer$Inner", true},
		{"go type", ValidateTypeName, "server.ServerConfig", true},
		{"generic type", ValidateTypeName, "java.util.List<String>", false},
		{"type starting with digit", ValidateTypeName, "io.1acme.X", false},
		{"path", ValidateRelativePath, "hugo/acme-server.md", true},
		{"absolute path", ValidateRelativePath, "/etc/passwd", false},
		{"traversal", ValidateRelativePath, "hugo/../../x.md", false},
		{"dotted file name", ValidateRelativePath, "a..b.md", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsKind(err, errors.KindValidation), "got %v", err)
		})
	}
}
