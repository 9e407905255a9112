// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package configdoc resolves configuration roots into documentation items.
//
// A root composite is walked member by member. Each member type is classified
// (scalar, enum, optional, list, map, nested group) and turned into either a
// ConfigKey leaf or a ConfigSection wrapping the items of a nested group.
//
// Groups are scanned once, relative to their own declaration, and stored raw in
// a GroupCache. Every usage site then decorates a deep copy of the raw items
// with what is only known there: the key prefix, the configuration phase, the
// owning root and map nesting.
//
// The package works on descriptor.Model values and never inspects Go or Java
// types directly.
package configdoc
