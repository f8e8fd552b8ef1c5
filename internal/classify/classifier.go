// Package classify implements the dual-rule Data/Logic classifier.
//
// IsData and IsLogic walk a type graph through a typeinfo.Provider. The walk
// is guarded against cycles by the parent Chain (a type already on the path
// passes immediately) and, when the classifier carries a Cache, every
// (type, category) pair resolved independently of its ancestors is memoized
// for the rest of the run, so a cached answer always equals recomputation.
// Failures are fail-fast: the first violated rule aborts its branch and its
// path-qualified reason propagates unchanged to the root.
package classify

import (
	"dlcheck/internal/logging"
	"dlcheck/internal/typeinfo"
	"dlcheck/internal/whitelist"

	"go.uber.org/zap/zapcore"
)

// Default special-method names.
var (
	DefaultEqualityMethods = []string{"Equals", "Equal"}
	DefaultHashMethods     = []string{"GetHashCode", "Hash", "HashCode"}
)

// Classifier answers IsData and IsLogic. A Classifier with a cache is not
// safe for concurrent use.
type Classifier struct {
	provider    typeinfo.Provider
	whitelist   *whitelist.Registry
	collections func(namespace string) bool
	equality    map[string]bool
	hash        map[string]bool
	cache       *Cache
	log         *logging.Logger

	// seen collects every type whose chain membership the memoized
	// evaluation under way depended on; nil outside memoize.
	seen map[typeinfo.TypeID]bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithWhitelist sets the whitelist registry (default: whitelist.New()).
func WithWhitelist(w *whitelist.Registry) Option {
	return func(c *Classifier) { c.whitelist = w }
}

// WithCollections sets the trusted-collection namespace predicate.
func WithCollections(isCollection func(namespace string) bool) Option {
	return func(c *Classifier) { c.collections = isCollection }
}

// WithEqualityMethods overrides the names treated as custom equality.
func WithEqualityMethods(names ...string) Option {
	return func(c *Classifier) { c.equality = nameSet(names) }
}

// WithHashMethods overrides the names treated as custom hash codes.
func WithHashMethods(names ...string) Option {
	return func(c *Classifier) { c.hash = nameSet(names) }
}

// WithCache opts the classifier into memoization.
func WithCache(cache *Cache) Option {
	return func(c *Classifier) { c.cache = cache }
}

// New builds a classifier over provider.
func New(provider typeinfo.Provider, opts ...Option) *Classifier {
	c := &Classifier{
		provider: provider,
		equality: nameSet(DefaultEqualityMethods),
		hash:     nameSet(DefaultHashMethods),
		log:      logging.Get(logging.CategoryClassifier),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.whitelist == nil {
		c.whitelist = whitelist.New()
	}
	return c
}

// Uncached returns a copy of the classifier that never consults a cache.
// The driver uses it to rebuild full explanations for failing roots.
func (c *Classifier) Uncached() *Classifier {
	cp := *c
	cp.cache = nil
	return &cp
}

// Cached reports whether the classifier memoizes verdicts.
func (c *Classifier) Cached() bool { return c.cache != nil }

// IsData checks id against the Data rules.
func (c *Classifier) IsData(id typeinfo.TypeID, parents Chain) Verdict {
	return c.data(c.Name(id), id, parents)
}

// IsLogic checks id against the Logic rules.
func (c *Classifier) IsLogic(id typeinfo.TypeID, parents Chain) Verdict {
	return c.logic(c.Name(id), id, parents)
}

// Name is the expanded display name used as the root of failure paths.
func (c *Classifier) Name(id typeinfo.TypeID) string {
	return typeinfo.ExpandName(c.provider, id)
}

// Exempt reports whether id is settled without classification because it is
// whitelisted, approved or ignored.
func (c *Classifier) Exempt(id typeinfo.TypeID) bool {
	if c.whitelist.Contains(id) {
		return true
	}
	d, err := c.provider.Describe(id)
	if err != nil {
		return false
	}
	return c.accepted(d) || c.ignored(d)
}

func (c *Classifier) accepted(d *typeinfo.Descriptor) bool {
	return c.whitelist.IsWhitelisted(c.provider, d) || d.Approved || c.whitelist.IsApproved(d.ID)
}

func (c *Classifier) ignored(d *typeinfo.Descriptor) bool {
	return d.Ignored || c.whitelist.IsIgnored(d.ID)
}

func (c *Classifier) isCollection(namespace string) bool {
	return namespace != "" && c.collections != nil && c.collections(namespace)
}

// shapeExempt covers enumerations, tag declarations, function types and
// synthesized or anonymous shapes.
func shapeExempt(k typeinfo.Kind) bool {
	switch k {
	case typeinfo.KindEnum, typeinfo.KindTag, typeinfo.KindFunction, typeinfo.KindSynthetic:
		return true
	}
	return false
}

// onChain reports whether id is already on parents. The question itself is
// recorded: the answer changes with the path.
func (c *Classifier) onChain(id typeinfo.TypeID, parents Chain) bool {
	if c.seen != nil {
		c.seen[id] = true
	}
	return parents.Contains(id)
}

// recall answers from the cache. A stored pass holds on every path, since a
// longer chain only guards more edges. A stored failure holds only while
// none of the types its evaluation depended on are on the current chain.
func (c *Classifier) recall(category Category, prefix string, id typeinfo.TypeID, parents Chain) (Verdict, bool) {
	e, found := c.cache.lookup(category, id)
	if !found {
		return Verdict{}, false
	}
	if e.passed {
		return Pass(), true
	}
	if parents.meets(e.seen) {
		return Verdict{}, false
	}
	if c.seen != nil {
		for t := range e.seen {
			c.seen[t] = true
		}
	}
	return failf("%s: %s not %s", prefix, c.Name(id), category.label()), true
}

// memoize evaluates rules for id and caches the outcome when it did not
// depend on any of id's ancestors being assumed valid.
func (c *Classifier) memoize(category Category, id typeinfo.TypeID, parents Chain, rules func() Verdict) Verdict {
	outer := c.seen
	c.seen = map[typeinfo.TypeID]bool{id: true}
	v := rules()
	seen := c.seen
	c.seen = outer

	if outer != nil {
		for t := range seen {
			outer[t] = true
		}
	}
	if !parents.meets(seen) {
		c.cache.store(category, id, v.OK(), seen)
	}
	return v
}

type methodView struct {
	typeinfo.Method
	params []typeinfo.Param
}

// methods filters out ignored, special and synthetic methods, and drops
// ignored, self-typed and on-path parameters.
func (c *Classifier) methods(d *typeinfo.Descriptor, parents Chain) []methodView {
	var out []methodView
	for _, m := range d.Methods {
		if m.Ignored || m.Special || m.Synthetic {
			continue
		}
		var ps []typeinfo.Param
		for _, p := range m.Params {
			if p.Ignored || p.Type == d.ID || c.onChain(p.Type, parents) {
				continue
			}
			ps = append(ps, p)
		}
		out = append(out, methodView{Method: m, params: ps})
	}
	return out
}

// typeArgsData requires every generic argument of d (and of its base) to be
// Data. owner and arguments already on the path are skipped.
func (c *Classifier) typeArgsData(prefix string, owner typeinfo.TypeID, d *typeinfo.Descriptor, parents Chain) Verdict {
	args := append([]typeinfo.TypeID(nil), d.TypeArgs...)
	if d.Base != "" {
		if b, err := c.provider.Describe(d.Base); err == nil {
			args = append(args, b.TypeArgs...)
		}
	}
	next := parents.With(owner)
	for _, a := range args {
		if a == owner || c.onChain(a, parents) {
			continue
		}
		if v := c.data(prefix+" generic parameter "+c.Name(a), a, next); !v.OK() {
			return v
		}
	}
	return Pass()
}

func (c *Classifier) trace(category Category, prefix string, v Verdict) {
	if c.log.Enabled(zapcore.DebugLevel) {
		c.log.Debug("%s %s: %s", category, prefix, v)
	}
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
