// Package typeinfo describes the shape of declared types for the classifier.
//
// A Provider turns a type identity into a Descriptor: its members, methods
// and constructors, generic arguments, base type, kind and declarative tags.
// Two providers ship with dlcheck: the explicit self-registration Registry in
// this package and the go/types backed provider in typeinfo/gotypes.
package typeinfo

import (
	"errors"
	"fmt"
)

// TypeID uniquely identifies a declared (or instantiated) type within a run.
// For Go types this is the fully qualified type string, e.g.
// "example.com/app/model.Point" or "example.com/app/coll.List[int]".
type TypeID string

// Kind is the representation shape of a type.
type Kind int

const (
	// KindValue is a value type with structural equality.
	KindValue Kind = iota
	// KindReference carries identity rather than value semantics.
	KindReference
	KindEnum
	// KindTag is an attribute-like marker declaration.
	KindTag
	KindFunction
	KindInterface
	KindTuple
	// KindSynthetic covers compiler-synthesized and anonymous shapes,
	// including unbound type parameters.
	KindSynthetic
)

var kindNames = map[Kind]string{
	KindValue:     "value",
	KindReference: "reference",
	KindEnum:      "enum",
	KindTag:       "tag",
	KindFunction:  "function",
	KindInterface: "interface",
	KindTuple:     "tuple",
	KindSynthetic: "synthetic",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Visibility of a member.
type Visibility int

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

// Member is a field or property.
type Member struct {
	Name       string
	Type       TypeID
	Visibility Visibility
	// DeclaredIn is the namespace (package path) of the declaring type.
	DeclaredIn string
	Ignored    bool
	// Synthetic marks compiler-synthesized members such as blank padding fields.
	Synthetic bool
	Const     bool
}

// Param is a method or constructor parameter.
type Param struct {
	Name    string
	Type    TypeID
	Ignored bool
}

// Method is a method or constructor.
type Method struct {
	Name       string
	Params     []Param
	DeclaredIn string
	Ignored    bool
	// Special marks operator and other special-name methods.
	Special     bool
	Synthetic   bool
	Constructor bool
}

// Descriptor is the immutable shape of one type.
type Descriptor struct {
	ID        TypeID
	Name      string
	Namespace string
	Kind      Kind
	// Basic marks primitive scalars and raw builtin storage (slices, maps,
	// channels) that a logic component must not hold directly.
	Basic bool
	// Composite marks builtin composites (arrays, slices, maps, pointers)
	// whose Name already spells out their element types.
	Composite bool
	Members   []Member
	Methods   []Method
	TypeArgs  []TypeID
	Base      TypeID
	// State marks the opaque mutable-state container abstraction.
	State    bool
	Ignored  bool
	Approved bool
}

// Clone returns a deep copy so callers can never mutate a provider's state.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	out := *d
	out.Members = append([]Member(nil), d.Members...)
	out.TypeArgs = append([]TypeID(nil), d.TypeArgs...)
	out.Methods = nil
	for _, m := range d.Methods {
		m.Params = append([]Param(nil), m.Params...)
		out.Methods = append(out.Methods, m)
	}
	return &out
}

// DisplayName returns Name, falling back to the ID.
func (d *Descriptor) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return string(d.ID)
}

// Provider abstracts over type introspection. Describe must be deterministic:
// the same id yields an equal descriptor for the whole run.
type Provider interface {
	Describe(id TypeID) (*Descriptor, error)
}

// Enumerator lists the root types a validation run should classify.
type Enumerator interface {
	Types() []TypeID
}

var (
	ErrUnknownType   = errors.New("unknown type")
	ErrDuplicateType = errors.New("type already registered")
)
