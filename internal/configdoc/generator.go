// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"grimm.is/cfgdoc/internal/descriptor"
	"grimm.is/cfgdoc/internal/errors"
	"grimm.is/cfgdoc/internal/groupcache"
	"grimm.is/cfgdoc/internal/logging"
)

// DefaultOwner names the output file of roots that declare no owner.
const DefaultOwner = "config"

// Output is the result of one generation run.
type Output struct {
	RunID string
	// Files maps output file ids to sorted, flattened items.
	Files map[string][]ConfigDocItem
	// Roots maps root names to their scanned items.
	Roots map[string][]ConfigDocItem
}

// FileIDs returns the output file ids in sorted order.
func (o *Output) FileIDs() []string {
	ids := make([]string, 0, len(o.Files))
	for id := range o.Files {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Generator scans every root of a model and assembles output files.
type Generator struct {
	model     *descriptor.Model
	scanner   *Scanner
	rootStore groupcache.Store
	opts      Options
	log       *logging.Logger
}

// NewGenerator creates a generator. rootStore may be nil, in which case
// scanned roots are not persisted.
func NewGenerator(model *descriptor.Model, cache *GroupCache, rootStore groupcache.Store, opts Options) *Generator {
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	return &Generator{
		model:     model,
		scanner:   NewScanner(model, cache, opts),
		rootStore: rootStore,
		opts:      opts,
		log:       log.WithComponent("generator"),
	}
}

// Run scans all roots in name order.
func (g *Generator) Run(ctx context.Context) (*Output, error) {
	if err := g.model.Validate(); err != nil {
		return nil, err
	}

	out := &Output{
		RunID: uuid.NewString(),
		Files: make(map[string][]ConfigDocItem),
		Roots: make(map[string][]ConfigDocItem),
	}
	log := g.log.With("run", out.RunID)

	roots := append([]descriptor.Root(nil), g.model.Roots...)
	sort.SliceStable(roots, func(i, j int) bool { return roots[i].Name < roots[j].Name })

	for _, root := range roots {
		items, err := g.scanner.ScanRoot(ctx, root)
		if err != nil {
			return nil, err
		}
		out.Roots[root.Name] = items

		if g.rootStore != nil {
			data, err := EncodeItems(items)
			if err != nil {
				return nil, errors.Attr(err, "root", root.Name)
			}
			if err := g.rootStore.Save(ctx, root.Name, data); err != nil {
				return nil, errors.Attr(err, "root", root.Name)
			}
		}

		owner := OwnerFileID(root)
		out.Files[owner] = append(out.Files[owner], items...)
		out.Files[RootFileID(root)] = append(out.Files[RootFileID(root)], items...)
		log.Debug("root done", "root", root.Name, "owner", owner, "items", len(items))
	}

	if g.opts.SeparateGroupDocs {
		docs := g.scanner.GroupDocs()
		types := docs.Types()
		ids := groupFileIDs(types)
		for _, t := range types {
			out.Files[ids[t]] = append(out.Files[ids[t]], docs.Items(t)...)
		}
	}

	for id, items := range out.Files {
		out.Files[id] = SortItems(Flatten(items))
	}
	log.Info("generation finished", "roots", len(roots), "files", len(out.Files))
	return out, nil
}

// OwnerFileID is the id of the file merging every root of an owner.
func OwnerFileID(root descriptor.Root) string {
	if root.Owner == "" {
		return DefaultOwner
	}
	return root.Owner
}

// RootFileID is <owner>-<hyphenated root name without its first segment>.
func RootFileID(root descriptor.Root) string {
	suffix := root.Name
	if i := strings.Index(suffix, "."); i >= 0 {
		suffix = suffix[i+1:]
	}
	return OwnerFileID(root) + "-" + Hyphenate(suffix)
}

// GroupFileID is the id of a separate group documentation file.
func GroupFileID(groupType string) string {
	return "config-group-" + Hyphenate(descriptor.SimpleName(groupType))
}

// groupFileIDs maps each group type to its file id. Types sharing a simple
// name use their hyphenated qualified name instead.
func groupFileIDs(types []string) map[string]string {
	seen := make(map[string]int, len(types))
	for _, t := range types {
		seen[GroupFileID(t)]++
	}
	ids := make(map[string]string, len(types))
	for _, t := range types {
		id := GroupFileID(t)
		if seen[id] > 1 {
			id = "config-group-" + Hyphenate(t)
		}
		ids[t] = id
	}
	return ids
}
