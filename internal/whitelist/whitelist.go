// Package whitelist holds the opaque primitive types that are always Data and
// the caller-supplied ignore / approved-data predicates.
package whitelist

import (
	"dlcheck/internal/typeinfo"

	"github.com/bmatcuk/doublestar"
)

// Predicate reports whether a type matches.
type Predicate func(id typeinfo.TypeID) bool

// Defaults are universally immutable value kinds accepted as Data without
// recursion. Builtin scalars are added separately from typeinfo.BasicTypes.
var Defaults = []typeinfo.TypeID{
	"time.Time",
	"time.Duration",
	"github.com/google/uuid.UUID",
	"net/url.URL",
	"*net/url.URL",
	"net/netip.Addr",
	"net/netip.Prefix",
	"net/netip.AddrPort",
	// unit / null marker
	"struct{}",
	// opaque handles
	"error",
	"context.Context",
}

// Registry answers the whitelist, ignore and approval questions.
type Registry struct {
	ids      map[typeinfo.TypeID]bool
	ignore   Predicate
	approved Predicate
}

// Option configures a Registry.
type Option func(*Registry)

// WithIgnore installs the custom ignore predicate.
func WithIgnore(p Predicate) Option {
	return func(r *Registry) { r.ignore = p }
}

// WithApproved installs the approved-external-data predicate.
func WithApproved(p Predicate) Option {
	return func(r *Registry) { r.approved = p }
}

// WithExtra whitelists additional type IDs.
func WithExtra(ids ...typeinfo.TypeID) Option {
	return func(r *Registry) {
		for _, id := range ids {
			r.ids[id] = true
		}
	}
}

// New builds a registry with the builtin scalars and Defaults.
func New(opts ...Option) *Registry {
	r := &Registry{ids: make(map[typeinfo.TypeID]bool, len(typeinfo.BasicTypes)+len(Defaults))}
	for _, id := range typeinfo.BasicTypes {
		r.ids[id] = true
	}
	for _, id := range Defaults {
		r.ids[id] = true
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsWhitelisted reports whether d is an opaque primitive. Tuples qualify
// when every element does: an element is whitelisted or approved by ID, or,
// resolved through p, is an approved type or itself a qualifying tuple. A nil
// p limits elements to the ID checks.
func (r *Registry) IsWhitelisted(p typeinfo.Provider, d *typeinfo.Descriptor) bool {
	if d == nil {
		return false
	}
	if r.ids[d.ID] {
		return true
	}
	if d.Kind != typeinfo.KindTuple {
		return false
	}
	for _, el := range d.TypeArgs {
		if !r.element(p, el) {
			return false
		}
	}
	return true
}

func (r *Registry) element(p typeinfo.Provider, id typeinfo.TypeID) bool {
	if r.ids[id] || r.IsApproved(id) {
		return true
	}
	if p == nil {
		return false
	}
	d, err := p.Describe(id)
	if err != nil {
		return false
	}
	return d.Approved || r.IsWhitelisted(p, d)
}

// Contains reports whether id is whitelisted by identity alone.
func (r *Registry) Contains(id typeinfo.TypeID) bool {
	return r.ids[id]
}

// IsApproved reports whether the approved-data predicate accepts id.
func (r *Registry) IsApproved(id typeinfo.TypeID) bool {
	return r.approved != nil && r.approved(id)
}

// IsIgnored reports whether the custom ignore predicate accepts id.
func (r *Registry) IsIgnored(id typeinfo.TypeID) bool {
	return r.ignore != nil && r.ignore(id)
}

// Glob returns a predicate matching type IDs against doublestar patterns.
// A pattern that fails to compile never matches; validate patterns up front
// with ValidatePatterns.
func Glob(patterns ...string) Predicate {
	if len(patterns) == 0 {
		return nil
	}
	return func(id typeinfo.TypeID) bool {
		for _, p := range patterns {
			if ok, err := doublestar.Match(p, string(id)); err == nil && ok {
				return true
			}
		}
		return false
	}
}

// ValidatePatterns returns the first malformed pattern's error.
func ValidatePatterns(patterns ...string) error {
	for _, p := range patterns {
		if _, err := doublestar.Match(p, ""); err != nil {
			return err
		}
	}
	return nil
}

// Any combines predicates; nil predicates are skipped.
func Any(ps ...Predicate) Predicate {
	var live []Predicate
	for _, p := range ps {
		if p != nil {
			live = append(live, p)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return func(id typeinfo.TypeID) bool {
		for _, p := range live {
			if p(id) {
				return true
			}
		}
		return false
	}
}
