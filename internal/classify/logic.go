package classify

import (
	"fmt"

	"dlcheck/internal/typeinfo"
)

func (c *Classifier) logic(prefix string, id typeinfo.TypeID, parents Chain) Verdict {
	if c.onChain(id, parents) {
		return Pass()
	}
	if c.cache == nil {
		return c.logicRules(prefix, id, parents)
	}
	if v, ok := c.recall(CategoryLogic, prefix, id, parents); ok {
		return v
	}
	return c.memoize(CategoryLogic, id, parents, func() Verdict {
		return c.logicRules(prefix, id, parents)
	})
}

func (c *Classifier) logicRules(prefix string, id typeinfo.TypeID, parents Chain) (v Verdict) {
	defer func() { c.trace(CategoryLogic, prefix, v) }()

	if c.whitelist.Contains(id) {
		return Pass()
	}
	d, err := c.provider.Describe(id)
	if err != nil {
		return failf("%s cannot be resolved: %v", prefix, err)
	}

	// the State container is opaque: recognized, never inspected
	if c.accepted(d) || c.ignored(d) || shapeExempt(d.Kind) || d.State {
		return Pass()
	}
	if d.Kind == typeinfo.KindValue {
		return failf("%s cannot be a record", prefix)
	}

	next := parents.With(id)

	for _, m := range d.Members {
		if m.Ignored || m.Synthetic || m.Type == id || c.onChain(m.Type, next) {
			continue
		}
		mp := prefix + " member " + m.Name

		md, err := c.provider.Describe(m.Type)
		if err != nil {
			if c.whitelist.Contains(m.Type) && !typeinfo.IsBasic(m.Type) {
				continue
			}
			return failf("%s cannot be resolved: %v", mp, err)
		}
		if md.Basic {
			return failf("%s cannot be a basic type", mp)
		}
		if md.State {
			if m.Visibility == typeinfo.Public {
				return failf("%s cannot be a public State", mp)
			}
			if v := c.typeArgsData(mp, id, md, next); !v.OK() {
				return v
			}
			continue
		}
		if v := c.logic(mp, m.Type, next); !v.OK() {
			return v
		}
	}

	for _, m := range c.methods(d, next) {
		for _, p := range m.params {
			pp := fmt.Sprintf("%s method %s parameter %s", prefix, m.Name, p.Name)

			if c.whitelist.Contains(p.Type) {
				continue
			}
			pd, err := c.provider.Describe(p.Type)
			if err != nil {
				return failf("%s cannot be resolved: %v", pp, err)
			}
			if pd.State {
				if v := c.typeArgsData(pp, id, pd, next); !v.OK() {
					return v
				}
				continue
			}

			// logic methods may take pure values or other components
			dv := c.data(pp, p.Type, next)
			if dv.OK() {
				continue
			}
			if lv := c.logic(pp, p.Type, next); lv.OK() {
				continue
			}
			return dv
		}
	}

	return Pass()
}
