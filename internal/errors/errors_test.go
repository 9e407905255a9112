// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package errors

import (
	"errors"
	"testing"
)

func TestError(t *testing.T) {
	err := New(KindCorrupt, "malformed cache entry")
	if err.Error() != "malformed cache entry" {
		t.Errorf("expected 'malformed cache entry', got '%s'", err.Error())
	}

	wrapped := Wrap(err, KindInternal, "failed to read group")
	if wrapped.Error() != "failed to read group: malformed cache entry" {
		t.Errorf("unexpected message '%s'", wrapped.Error())
	}

	if Wrap(nil, KindInternal, "noop") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestGetKind(t *testing.T) {
	err := New(KindValidation, "dangling root")
	if GetKind(err) != KindValidation {
		t.Errorf("expected KindValidation, got %v", GetKind(err))
	}

	wrapped := Wrap(err, KindInternal, "load failed")
	if GetKind(wrapped) != KindInternal {
		t.Errorf("expected KindInternal, got %v", GetKind(wrapped))
	}
	if !IsKind(wrapped, KindValidation) {
		t.Error("expected KindValidation somewhere in the chain")
	}
	if IsKind(wrapped, KindCorrupt) {
		t.Error("did not expect KindCorrupt in the chain")
	}

	if GetKind(errors.New("std error")) != KindUnknown {
		t.Errorf("expected KindUnknown, got %v", GetKind(errors.New("std error")))
	}
}

func TestAttributes(t *testing.T) {
	err := New(KindCorrupt, "bad payload")
	err = Attr(err, "type", "io.acme.GroupTls")
	err = Attr(err, "bytes", 12)

	attrs := GetAttributes(err)
	if attrs["type"] != "io.acme.GroupTls" {
		t.Errorf("expected type attribute, got %v", attrs["type"])
	}
	if attrs["bytes"] != 12 {
		t.Errorf("expected 12, got %v", attrs["bytes"])
	}

	wrapped := Wrap(err, KindInternal, "scan failed")
	wrapped = Attr(wrapped, "root", "quarkus.server")

	allAttrs := GetAttributes(wrapped)
	if allAttrs["type"] != "io.acme.GroupTls" || allAttrs["root"] != "quarkus.server" {
		t.Errorf("missing attributes: %v", allAttrs)
	}
}

func TestKindString(t *testing.T) {
	if KindCorrupt.String() != "corrupt" {
		t.Errorf("unexpected %q", KindCorrupt.String())
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("unexpected %q", Kind(99).String())
	}
}

func TestAttrKeepsJoinedErrors(t *testing.T) {
	joined := Join(New(KindConflict, "composite a defined twice"), New(KindConflict, "enum b defined twice"))
	err := Attr(joined, "path", "b.hcl")

	if !IsKind(err, KindConflict) {
		t.Errorf("expected KindConflict, got %v", GetKind(err))
	}
	if err.Error() != joined.Error() {
		t.Errorf("joined message lost: %q", err.Error())
	}
	if GetAttributes(err)["path"] != "b.hcl" {
		t.Errorf("missing path attribute: %v", GetAttributes(err))
	}
}
