package classify

import (
	"fmt"

	"dlcheck/internal/typeinfo"
)

func (c *Classifier) data(prefix string, id typeinfo.TypeID, parents Chain) Verdict {
	if c.onChain(id, parents) {
		return Pass()
	}
	if c.cache == nil {
		return c.dataRules(prefix, id, parents)
	}
	if v, ok := c.recall(CategoryData, prefix, id, parents); ok {
		return v
	}
	return c.memoize(CategoryData, id, parents, func() Verdict {
		return c.dataRules(prefix, id, parents)
	})
}

func (c *Classifier) dataRules(prefix string, id typeinfo.TypeID, parents Chain) (v Verdict) {
	defer func() { c.trace(CategoryData, prefix, v) }()

	if c.whitelist.Contains(id) {
		return Pass()
	}
	d, err := c.provider.Describe(id)
	if err != nil {
		return failf("%s cannot be resolved: %v", prefix, err)
	}

	if c.accepted(d) || c.ignored(d) || shapeExempt(d.Kind) {
		return Pass()
	}
	if d.State {
		return failf("%s cannot be a State", prefix)
	}
	if d.Kind != typeinfo.KindValue {
		return failf("%s cannot be a class", prefix)
	}

	if v := c.typeArgsData(prefix, id, d, parents); !v.OK() {
		return v
	}

	// trusted collections are judged by their type arguments only
	if c.isCollection(d.Namespace) {
		return Pass()
	}

	var members []typeinfo.Member
	for _, m := range d.Members {
		if m.Ignored || m.Synthetic || m.Const {
			continue
		}
		members = append(members, m)
	}
	methods := c.methods(d, parents)

	// payload-free marker shapes
	if len(members) == 0 && len(methods) == 0 {
		return Pass()
	}

	next := parents.With(id)
	for _, m := range members {
		if c.isCollection(m.DeclaredIn) {
			continue
		}
		if v := c.data(prefix+" member "+m.Name, m.Type, next); !v.OK() {
			return v
		}
	}

	for _, m := range methods {
		if c.isCollection(m.DeclaredIn) {
			continue
		}
		if c.hash[m.Name] {
			return failf("%s cannot have GetHashCode()", prefix)
		}
		if c.equality[m.Name] && len(m.Params) == 1 && m.Params[0].Type == id {
			return failf("%s cannot have Equals(T)", prefix)
		}
		for _, p := range m.params {
			pp := fmt.Sprintf("%s method %s parameter %s", prefix, m.Name, p.Name)
			if v := c.data(pp, p.Type, next); !v.OK() {
				return v
			}
		}
	}

	return Pass()
}
