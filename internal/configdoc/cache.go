// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"context"
	"strings"

	"grimm.is/cfgdoc/internal/errors"
	"grimm.is/cfgdoc/internal/groupcache"
	"grimm.is/cfgdoc/internal/logging"
)

// GroupCache stores raw, usage independent group scans. The scanner keys
// entries by qualified type name, discovery mode and descriptor fingerprint. Every Get decodes a fresh copy, so callers may mutate results.
type GroupCache struct {
	store groupcache.Store
	log   *logging.Logger
}

// NewGroupCache wraps store. A nil store means an in-memory cache.
func NewGroupCache(store groupcache.Store) *GroupCache {
	if store == nil {
		store = groupcache.NewMemoryStore()
	}
	return &GroupCache{
		store: store,
		log:   logging.WithComponent("groupcache"),
	}
}

// Get returns the cached items of typeName. A stored payload that cannot be
// decoded is a KindCorrupt error; there is no fallback rescan.
func (c *GroupCache) Get(ctx context.Context, typeName string) ([]ConfigDocItem, bool, error) {
	data, ok, err := c.store.Load(ctx, typeName)
	if err != nil || !ok {
		return nil, false, errors.Attr(err, "type", typeName)
	}
	items, err := DecodeItems(data)
	if err != nil {
		return nil, false, errors.Attr(err, "type", typeName)
	}
	return items, true, nil
}

// Put merges items into the entry for typeName. Stored items are kept as
// they are; items whose key (or section name and group type) is not stored
// yet are appended in order.
func (c *GroupCache) Put(ctx context.Context, typeName string, items []ConfigDocItem) error {
	existing, ok, err := c.Get(ctx, typeName)
	if err != nil {
		return err
	}

	merged := existing
	seen := make(map[string]bool, len(existing)+len(items))
	for _, it := range existing {
		seen[it.identity()] = true
	}
	added := 0
	for _, it := range items {
		id := it.identity()
		if seen[id] {
			continue
		}
		seen[id] = true
		merged = append(merged, it)
		added++
	}
	if ok && added == 0 {
		return nil
	}

	data, err := EncodeItems(merged)
	if err != nil {
		return errors.Attr(err, "type", typeName)
	}
	if err := c.store.Save(ctx, typeName, data); err != nil {
		return errors.Attr(err, "type", typeName)
	}
	c.log.Debug("stored group", "type", typeName, "items", len(merged), "added", added)
	return nil
}

// Types lists the cached keys.
func (c *GroupCache) Types(ctx context.Context) ([]string, error) {
	return c.store.Keys(ctx)
}

// Prune deletes every entry whose key starts with prefix, except keep.
func (c *GroupCache) Prune(ctx context.Context, prefix, keep string) (int, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, k := range keys {
		if k == keep || !strings.HasPrefix(k, prefix) {
			continue
		}
		if err := c.store.Delete(ctx, k); err != nil {
			return n, errors.Attr(err, "key", k)
		}
		n++
	}
	return n, nil
}
