package classify

import (
	"fmt"

	"dlcheck/internal/typeinfo"
)

// Category is one of the two architectural roles.
type Category int

const (
	CategoryData Category = iota
	CategoryLogic
)

func (c Category) String() string {
	switch c {
	case CategoryData:
		return "data"
	case CategoryLogic:
		return "logic"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// label is the capitalized name used in failure messages.
func (c Category) label() string {
	switch c {
	case CategoryData:
		return "Data"
	case CategoryLogic:
		return "Logic"
	default:
		return c.String()
	}
}

// Status of a verdict.
type Status int

const (
	NotYetResolved Status = iota
	Passed
	Failed
)

// Verdict is the outcome of one IsData / IsLogic question. A failed verdict
// carries a path-qualified reason naming the offending member, method or
// parameter and the violated rule.
type Verdict struct {
	Status Status
	Reason string
}

// Pass is the passing verdict.
func Pass() Verdict { return Verdict{Status: Passed} }

// Fail returns a failed verdict.
func Fail(reason string) Verdict { return Verdict{Status: Failed, Reason: reason} }

func failf(format string, args ...interface{}) Verdict {
	return Fail(fmt.Sprintf(format, args...))
}

// OK reports whether the verdict passed.
func (v Verdict) OK() bool { return v.Status == Passed }

func (v Verdict) String() string {
	switch v.Status {
	case Passed:
		return "pass"
	case Failed:
		return "fail: " + v.Reason
	default:
		return "unresolved"
	}
}

// Chain is the path of types from the run's root to the node being checked.
// It is append-only: With returns a new chain and never touches the receiver.
type Chain struct {
	ids []typeinfo.TypeID
}

// NewChain builds a chain from ids, root first.
func NewChain(ids ...typeinfo.TypeID) Chain {
	return Chain{ids: append([]typeinfo.TypeID(nil), ids...)}
}

// With returns a copy of the chain extended by id.
func (c Chain) With(id typeinfo.TypeID) Chain {
	next := make([]typeinfo.TypeID, len(c.ids), len(c.ids)+1)
	copy(next, c.ids)
	return Chain{ids: append(next, id)}
}

// Contains reports whether id is already on the path.
func (c Chain) Contains(id typeinfo.TypeID) bool {
	for _, p := range c.ids {
		if p == id {
			return true
		}
	}
	return false
}

// meets reports whether any type on the path is in set.
func (c Chain) meets(set map[typeinfo.TypeID]bool) bool {
	for _, p := range c.ids {
		if set[p] {
			return true
		}
	}
	return false
}

// Len is the path length.
func (c Chain) Len() int { return len(c.ids) }

// IDs returns a copy of the path.
func (c Chain) IDs() []typeinfo.TypeID { return append([]typeinfo.TypeID(nil), c.ids...) }

type cacheKey struct {
	id       typeinfo.TypeID
	category Category
}

// Cache memoizes boolean verdicts per (type, category) for one run. Entries
// are write-once. A Cache is not safe for concurrent use; every validation
// session owns its own.
type Cache struct {
	entries map[cacheKey]cacheEntry
	hits    int
	misses  int
}

type cacheEntry struct {
	passed bool
	// seen is kept for failures: the types whose chain membership the
	// failing evaluation depended on.
	seen map[typeinfo.TypeID]bool
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]cacheEntry)}
}

// Lookup returns the cached verdict and whether one was present.
func (c *Cache) Lookup(category Category, id typeinfo.TypeID) (passed, found bool) {
	e, found := c.lookup(category, id)
	return e.passed, found
}

func (c *Cache) lookup(category Category, id typeinfo.TypeID) (cacheEntry, bool) {
	e, found := c.entries[cacheKey{id: id, category: category}]
	if found {
		c.hits++
	} else {
		c.misses++
	}
	return e, found
}

// Store records a verdict unless one is already present for the pair.
func (c *Cache) Store(category Category, id typeinfo.TypeID, passed bool) {
	c.store(category, id, passed, nil)
}

func (c *Cache) store(category Category, id typeinfo.TypeID, passed bool, seen map[typeinfo.TypeID]bool) {
	key := cacheKey{id: id, category: category}
	if _, exists := c.entries[key]; exists {
		return
	}
	e := cacheEntry{passed: passed}
	if !passed {
		e.seen = seen
	}
	c.entries[key] = e
}

// Len is the number of stored entries.
func (c *Cache) Len() int { return len(c.entries) }

// Stats returns hit and miss counters.
func (c *Cache) Stats() (hits, misses int) { return c.hits, c.misses }
