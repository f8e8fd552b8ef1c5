package typeinfo

import (
	"fmt"
	"sync"
)

// Registry is an explicit self-registration table. Candidate types register
// their shape at start-up and the classifier reads it back through Describe.
type Registry struct {
	mu    sync.RWMutex
	types map[TypeID]*Descriptor
	order []TypeID
}

// NewRegistry returns a registry pre-seeded with the Go builtin scalars.
// Builtins are describable but are not enumerated by Types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[TypeID]*Descriptor)}
	for _, id := range BasicTypes {
		d := BasicDescriptor(id)
		r.types[id] = &d
	}
	return r
}

// Register adds a descriptor. Registering the same ID twice is an error.
func (r *Registry) Register(d Descriptor) error {
	if d.ID == "" {
		return fmt.Errorf("register: empty type id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[d.ID]; exists {
		return fmt.Errorf("register %s: %w", d.ID, ErrDuplicateType)
	}
	r.types[d.ID] = d.Clone()
	r.order = append(r.order, d.ID)
	return nil
}

// MustRegister registers every descriptor and panics on the first error.
func (r *Registry) MustRegister(ds ...Descriptor) {
	for _, d := range ds {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
}

// Types returns the registered (non-builtin) IDs in registration order.
func (r *Registry) Types() []TypeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]TypeID(nil), r.order...)
}

// Describe returns the descriptor for id with members and methods inherited
// along the Base chain merged in. Declared members win on name collision and
// constructors are never inherited.
func (r *Registry) Describe(id TypeID) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.types[id]
	if !ok {
		return nil, fmt.Errorf("describe %s: %w", id, ErrUnknownType)
	}
	out := d.Clone()

	seenMembers := make(map[string]bool, len(out.Members))
	for _, m := range out.Members {
		seenMembers[m.Name] = true
	}
	seenMethods := make(map[string]bool, len(out.Methods))
	for _, m := range out.Methods {
		seenMethods[m.Name] = true
	}

	visited := map[TypeID]bool{id: true}
	for base := d.Base; base != ""; {
		if visited[base] {
			break
		}
		visited[base] = true

		b, ok := r.types[base]
		if !ok {
			return nil, fmt.Errorf("describe %s: base %s: %w", id, base, ErrUnknownType)
		}
		for _, m := range b.Members {
			if seenMembers[m.Name] {
				continue
			}
			seenMembers[m.Name] = true
			out.Members = append(out.Members, m)
		}
		for _, m := range b.Methods {
			if m.Constructor || seenMethods[m.Name] {
				continue
			}
			seenMethods[m.Name] = true
			m.Params = append([]Param(nil), m.Params...)
			out.Methods = append(out.Methods, m)
		}
		base = b.Base
	}
	return out, nil
}
