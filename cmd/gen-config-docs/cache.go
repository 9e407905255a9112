// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"grimm.is/cfgdoc/internal/configdoc"
	"grimm.is/cfgdoc/internal/groupcache"
)

func (a *app) cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the group and root caches",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Short:   "List cached group types and root names",
			Args:    cobra.NoArgs,
			PreRunE: a.load,
			RunE: a.wrap(func(cmd *cobra.Command, _ []string) error {
				return a.withStores(func(ns string, s groupcache.Store) error {
					if ns == groupsNamespace {
						return a.listGroups(cmd.Context(), configdoc.NewGroupCache(s))
					}
					keys, err := s.Keys(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintln(a.out, a.styles.Bold.Render(fmt.Sprintf("%s (%d)", ns, len(keys))))
					for _, k := range keys {
						fmt.Fprintln(a.out, "  "+k)
					}
					return nil
				})
			}),
		},
		&cobra.Command{
			Use:     "clear",
			Short:   "Delete every cached entry",
			Args:    cobra.NoArgs,
			PreRunE: a.load,
			RunE: a.wrap(func(cmd *cobra.Command, _ []string) error {
				return a.withStores(func(ns string, s groupcache.Store) error {
					n, err := groupcache.Clear(cmd.Context(), s)
					if err != nil {
						return err
					}
					a.log.Info("cache cleared", "namespace", ns, "entries", n)
					a.ok("cleared %d %s entries", n, ns)
					return nil
				})
			}),
		},
	)
	return cmd
}

// withStores calls fn for the groups store and then the roots store.
func (a *app) withStores(fn func(namespace string, s groupcache.Store) error) error {
	if a.cfg.Cache.Backend == groupcache.BackendMemory {
		a.warn("cache backend is memory, nothing is persisted")
	}
	groups, roots, err := openStores(a.cfg)
	if err != nil {
		return err
	}
	defer groups.Close()
	defer roots.Close()

	if err := fn(groupsNamespace, groups); err != nil {
		return err
	}
	return fn(rootsNamespace, roots)
}

// listGroups decodes every cached group, so a corrupt entry fails the listing.
func (a *app) listGroups(ctx context.Context, c *configdoc.GroupCache) error {
	types, err := c.Types(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.styles.Bold.Render(fmt.Sprintf("%s (%d)", groupsNamespace, len(types))))
	for _, t := range types {
		items, _, err := c.Get(ctx, t)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "  "+t+" "+a.styles.Subtle.Render(fmt.Sprintf("%d items", len(items))))
	}
	return nil
}
