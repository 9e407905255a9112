// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package validation checks descriptor names that end up in property keys,
// file names and cache keys.
package validation

import (
	"path/filepath"
	"regexp"
	"strings"

	"grimm.is/cfgdoc/internal/errors"
)

var (
	// Valid identifier: alphanumeric, dash, underscore
	identifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	// Valid root name: dot separated segments, e.g. quarkus.log.console
	rootNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+(\.[a-zA-Z0-9_-]+)*$`)

	// Valid qualified type name: io.acme.Outer$Inner, server.ServerConfig
	typeNameRegex = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*(\.[a-zA-Z_$][a-zA-Z0-9_$]*)*$`)

	// Dangerous characters that should never appear in names
	dangerousChars = []string{";", "|", "&", "`", "(", ")", "<", ">", "\\", "\"", "'", "\n", "\r", "\x00"}
)

const maxNameLength = 255

// ValidateIdentifier validates a plain identifier such as a root owner.
// Owners become output file names.
func ValidateIdentifier(id string) error {
	if id == "" {
		return errors.New(errors.KindValidation, "identifier cannot be empty")
	}
	if len(id) > maxNameLength {
		return errors.New(errors.KindValidation, "identifier too long (max 255 characters)")
	}
	if !identifierRegex.MatchString(id) {
		return errors.Errorf(errors.KindValidation, "invalid identifier: %s (must be alphanumeric with -_)", id)
	}
	return nil
}

// ValidateRootName validates a dotted root property prefix.
func ValidateRootName(name string) error {
	if name == "" {
		return errors.New(errors.KindValidation, "root name cannot be empty")
	}
	if len(name) > maxNameLength {
		return errors.Errorf(errors.KindValidation, "root name too long (max 255 characters): %s", name)
	}
	if err := checkDangerous("root name", name); err != nil {
		return err
	}
	if !rootNameRegex.MatchString(name) {
		return errors.Errorf(errors.KindValidation, "invalid root name: %s (must be dot separated segments)", name)
	}
	return nil
}

// ValidateTypeName validates a qualified, non-generic type name.
func ValidateTypeName(name string) error {
	if name == "" {
		return errors.New(errors.KindValidation, "type name cannot be empty")
	}
	if err := checkDangerous("type name", name); err != nil {
		return err
	}
	if !typeNameRegex.MatchString(name) {
		return errors.Errorf(errors.KindValidation, "invalid type name: %s", name)
	}
	return nil
}

// ValidateRelativePath validates an output path that is joined below a
// base directory. Absolute paths and traversal are rejected.
func ValidateRelativePath(path string) error {
	if path == "" {
		return errors.New(errors.KindValidation, "path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return errors.New(errors.KindValidation, "null byte in path")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.Errorf(errors.KindValidation, "path must be relative: %s", path)
	}
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == ".." {
			return errors.Errorf(errors.KindValidation, "path traversal not allowed: %s", path)
		}
	}
	return nil
}

func checkDangerous(what, s string) error {
	for _, char := range dangerousChars {
		if strings.Contains(s, char) {
			return errors.Errorf(errors.KindValidation, "%s contains dangerous character: %q", what, char)
		}
	}
	return nil
}
