// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"context"
	"strings"
	"time"

	"grimm.is/cfgdoc/internal/descriptor"
	"grimm.is/cfgdoc/internal/errors"
	"grimm.is/cfgdoc/internal/logging"
)

// DefaultMaxDepth bounds group nesting. Type graphs are acyclic, so hitting
// it means a descriptor is recursive.
const DefaultMaxDepth = 64

// Observer receives scan statistics.
type Observer interface {
	MemberScanned()
	CacheLookup(hit bool)
	ItemEmitted(section bool)
	RootScanned(root string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) MemberScanned()                    {}
func (nopObserver) CacheLookup(bool)                  {}
func (nopObserver) ItemEmitted(bool)                  {}
func (nopObserver) RootScanned(string, time.Duration) {}

// Options configure a Scanner.
type Options struct {
	MaxDepth          int
	SeparateGroupDocs bool
	ExtendedDiscovery bool
	// DisplayTypes extends DefaultDisplayTypes.
	DisplayTypes map[string]string
	// JavadocLinks extends DefaultJavadocLinks.
	JavadocLinks map[string]string
	Observer     Observer
	Logger       *logging.Logger
}

// ScanContext is the position of a composite in the walk.
type ScanContext struct {
	// RootName is the top-level grouping. Empty for raw group scans.
	RootName string
	// ParentName prefixes member names. Empty for raw group scans, which
	// yields relative keys such as ".port".
	ParentName        string
	Phase             ConfigPhase
	WithinAMap        bool
	Depth             int
	SeparateGroupDocs bool
	ExtendedDiscovery bool
}

func (sc ScanContext) raw() ScanContext {
	return ScanContext{
		Depth:             sc.Depth + 1,
		SeparateGroupDocs: sc.SeparateGroupDocs,
		ExtendedDiscovery: sc.ExtendedDiscovery,
	}
}

// Scanner walks composites and produces documentation items.
type Scanner struct {
	model        *descriptor.Model
	cache        *GroupCache
	classifier   *Classifier
	linker       *JavadocLinker
	groupDocs    *GroupDocs
	fingerprints *fingerprinter
	opts         Options
	obs          Observer
	log          *logging.Logger
}

// NewScanner creates a scanner over model backed by cache.
func NewScanner(model *descriptor.Model, cache *GroupCache, opts Options) *Scanner {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if cache == nil {
		cache = NewGroupCache(nil)
	}
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	return &Scanner{
		model:        model,
		cache:        cache,
		classifier:   NewClassifier(model, opts.DisplayTypes),
		linker:       NewJavadocLinker(opts.JavadocLinks),
		groupDocs:    NewGroupDocs(model),
		fingerprints: newFingerprinter(model, opts),
		opts:         opts,
		obs:          obs,
		log:          log.WithComponent("scanner"),
	}
}

// GroupDocs returns the per group items collected in separate group docs mode.
func (s *Scanner) GroupDocs() *GroupDocs {
	return s.groupDocs
}

// RootPhase parses the phase of a root; an empty phase means build time.
func RootPhase(root descriptor.Root) (ConfigPhase, error) {
	if strings.TrimSpace(root.Phase) == "" {
		return PhaseBuildTime, nil
	}
	p, err := ParsePhase(root.Phase)
	return p, errors.Attr(err, "root", root.Name)
}

// ScanRoot scans the composite backing root.
func (s *Scanner) ScanRoot(ctx context.Context, root descriptor.Root) ([]ConfigDocItem, error) {
	start := time.Now()
	phase, err := RootPhase(root)
	if err != nil {
		return nil, err
	}

	items, err := s.Scan(ctx, root.Type, ScanContext{
		RootName:          root.Name,
		ParentName:        root.Name,
		Phase:             phase,
		SeparateGroupDocs: s.opts.SeparateGroupDocs,
		ExtendedDiscovery: s.opts.ExtendedDiscovery || root.Mapping,
	})
	if err != nil {
		return nil, errors.Attr(err, "root", root.Name)
	}

	elapsed := time.Since(start)
	s.obs.RootScanned(root.Name, elapsed)
	s.log.Debug("scanned root", "root", root.Name, "type", root.Type, "items", len(items), "elapsed", elapsed)
	return items, nil
}

// Scan walks typeName: supertype items first, then its own members.
func (s *Scanner) Scan(ctx context.Context, typeName string, sc ScanContext) ([]ConfigDocItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sc.Depth > s.opts.MaxDepth {
		return nil, errors.Attr(errors.Attr(errors.Errorf(errors.KindInternal,
			"nesting deeper than %d levels, recursive descriptor?", s.opts.MaxDepth), "type", typeName), "depth", sc.Depth)
	}

	comp, ok := s.model.Composite(typeName)
	if !ok {
		return nil, errors.Attr(errors.New(errors.KindNotFound, "no descriptor for composite"), "type", typeName)
	}

	var items []ConfigDocItem
	for _, sup := range supertypes(comp) {
		if _, ok := s.model.Composite(sup); !ok {
			s.log.Debug("skipping supertype without descriptor", "type", typeName, "supertype", sup)
			continue
		}
		raw, err := s.rawItems(ctx, sup, sc)
		if err != nil {
			return nil, err
		}
		items = append(items, Decorate(raw, Decoration{
			Phase:            sc.Phase,
			TopLevelRootName: sc.RootName,
			ParentNamePrefix: sc.ParentName,
			WithinAMap:       sc.WithinAMap,
			Collector:        s.collector(sc),
		})...)
	}

	for _, m := range comp.Members {
		if !s.documented(comp, m, sc) {
			continue
		}
		s.obs.MemberScanned()

		item, ok, err := s.member(ctx, m, sc)
		if err != nil {
			return nil, errors.Attr(err, "member", typeName+"."+m.Name)
		}
		if ok {
			s.obs.ItemEmitted(item.IsConfigSection())
			items = append(items, item)
		}
	}
	return items, nil
}

func supertypes(c *descriptor.Composite) []string {
	var out []string
	if c.Superclass != "" && c.Superclass != descriptor.ObjectType {
		out = append(out, c.Superclass)
	}
	return append(out, c.Interfaces...)
}

func (s *Scanner) documented(c *descriptor.Composite, m descriptor.Member, sc ScanContext) bool {
	if m.Kind == descriptor.MemberMethod {
		if !sc.ExtendedDiscovery || !c.Abstract || !m.Abstract || m.Params != 0 || m.Name == "toString" {
			return false
		}
	}
	return !m.Static && !m.Directives.Ignore && !m.Directives.Deprecated
}

// collector returns the group docs collector for usage-site decorations.
// Raw scans have no root and must not contribute.
func (s *Scanner) collector(sc ScanContext) *GroupDocs {
	if !sc.SeparateGroupDocs || sc.RootName == "" {
		return nil
	}
	return s.groupDocs
}

// rawItems returns the raw items of a group or supertype, scanning and
// caching them on a miss. Entries are keyed by the discovery mode and the
// descriptor fingerprint; a miss drops the outdated versions of the type.
func (s *Scanner) rawItems(ctx context.Context, typeName string, sc ScanContext) ([]ConfigDocItem, error) {
	key, err := s.cacheKey(typeName, sc.ExtendedDiscovery)
	if err != nil {
		return nil, err
	}
	items, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	s.obs.CacheLookup(ok)
	if ok {
		return items, nil
	}

	raw, err := s.Scan(ctx, typeName, sc.raw())
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, key, raw); err != nil {
		return nil, err
	}
	if n, err := s.cache.Prune(ctx, cacheKeyPrefix(typeName, sc.ExtendedDiscovery), key); err != nil {
		return nil, err
	} else if n > 0 {
		s.log.Debug("dropped outdated group versions", "type", typeName, "versions", n)
	}
	return raw, nil
}

func memberName(parent string, m descriptor.Member) string {
	switch n := m.Directives.Name; n {
	case "", descriptor.NameHyphenated:
		return parent + "." + Hyphenate(m.Name)
	case descriptor.NameParent:
		return parent
	default:
		return parent + "." + n
	}
}

func (s *Scanner) member(ctx context.Context, m descriptor.Member, sc ScanContext) (ConfigDocItem, bool, error) {
	name := memberName(sc.ParentName, m)
	shape := s.classifier.Classify(m.Type)
	doc := CleanJavadoc(m.Doc)

	if shape.IsGroup() {
		section, ok, err := s.group(ctx, name, doc, m, shape, sc)
		if err != nil || !ok {
			return ConfigDocItem{}, false, err
		}
		return SectionItem(section), true, nil
	}

	key := &ConfigKey{
		Key:              name,
		ConfigDoc:        doc,
		Type:             shape.DisplayType,
		DefaultValue:     s.defaultValue(m, shape),
		Phase:            sc.Phase,
		WithinAMap:       sc.WithinAMap,
		Optional:         shape.Optional,
		List:             shape.List,
		Enum:             shape.Category == CategoryEnum,
		TopLevelGrouping: sc.RootName,
	}
	if shape.PassThroughMap {
		mapKey := mapKeyName(m)
		key.Key = name + mapKeySegment(mapKey)
		key.DocMapKey = mapKey
		key.PassThroughMap = true
		key.WithinAMap = true
	} else {
		key.JavadocSiteLink = s.linker.Link(shape.Element.Name)
	}
	if key.Enum {
		key.AcceptedValues = s.classifier.AcceptedValues(shape.Element.Name)
	}
	return KeyItem(key), true, nil
}

func mapKeyName(m descriptor.Member) string {
	if m.Directives.MapKey != "" {
		return m.Directives.MapKey
	}
	return Hyphenate(m.Name)
}

// group expands a group member into a section holding the decorated raw
// items of the group type.
func (s *Scanner) group(ctx context.Context, name, doc string, m descriptor.Member, shape Shape, sc ScanContext) (*ConfigSection, bool, error) {
	groupType := shape.Element.Name
	if _, ok := s.model.Composite(groupType); !ok {
		s.log.Warn("group has no descriptor, skipping", "group", groupType, "key", name)
		return nil, false, nil
	}

	raw, err := s.rawItems(ctx, groupType, sc)
	if err != nil {
		return nil, false, err
	}

	d := Decoration{
		Phase:              sc.Phase,
		TopLevelRootName:   sc.RootName,
		ParentNamePrefix:   name,
		WithinAMap:         sc.WithinAMap,
		WithinAConfigGroup: true,
		Collector:          s.collector(sc),
	}
	if shape.Category == CategoryGroupInMap {
		mapKey := mapKeyName(m)
		seg := mapKeySegment(mapKey)
		d.ParentNamePrefix = name + strings.Repeat(seg, shape.MapDepth)
		d.WithinAMap = true
		d.DocMapKey = mapKey
		if m.Directives.UnnamedMapKey {
			d.AdditionalNamePrefixes = []string{name + strings.Repeat(seg, shape.MapDepth-1)}
		}
	}
	items := Decorate(raw, d)
	if c := s.collector(sc); c != nil {
		c.Collect(groupType, items)
	}

	return &ConfigSection{
		Name:                d.ParentNamePrefix,
		SectionDetailsTitle: SectionTitle(doc),
		SectionDetails:      doc,
		ConfigGroupType:     groupType,
		ShowSection:         m.Directives.Section,
		Optional:            shape.Optional,
		WithinAMap:          d.WithinAMap,
		Phase:               sc.Phase,
		TopLevelGrouping:    sc.RootName,
		Items:               items,
	}, true, nil
}

func (s *Scanner) defaultValue(m descriptor.Member, shape Shape) string {
	d := m.Directives
	switch {
	case d.DocDefault != "":
		return d.DocDefault
	case d.HasDefault && d.Default != descriptor.NoDefault:
		v := d.Default
		switch {
		case shape.Category == CategoryEnum && !d.Converter:
			return s.enumDefault(shape.Element.Name, v)
		case shape.Element.Name == typeDuration:
			return NormalizeDuration(v)
		}
		return v
	case len(m.Type.Args) == 0 && !shape.Optional:
		return primitiveDefaults[m.Type.Name]
	}
	return ""
}

// enumDefault renders each comma separated constant the way accepted values
// render it.
func (s *Scanner) enumDefault(enumType, v string) string {
	e, _ := s.model.Enum(enumType)
	parts := strings.Split(v, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		parts[i] = Hyphenate(p)
		if e == nil {
			continue
		}
		for _, k := range e.Constants {
			if k.Name == p {
				parts[i] = constantValue(k)
				break
			}
		}
	}
	return strings.Join(parts, ",")
}
