package typeinfo

import (
	"strings"
)

// BasicTypes are the Go predeclared scalar types.
var BasicTypes = []TypeID{
	"bool", "string",
	"int", "int8", "int16", "int32", "int64",
	"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
	"float32", "float64", "complex64", "complex128",
	"byte", "rune",
}

// IsBasic reports whether id names a predeclared scalar.
func IsBasic(id TypeID) bool {
	for _, b := range BasicTypes {
		if b == id {
			return true
		}
	}
	return false
}

// BasicDescriptor describes a predeclared scalar.
func BasicDescriptor(id TypeID) Descriptor {
	return Descriptor{ID: id, Name: string(id), Kind: KindValue, Basic: true}
}

// ExpandName renders id with its generic arguments expanded recursively,
// e.g. "Wrapper[BadCounter]". Unknown types render as their raw ID.
func ExpandName(p Provider, id TypeID) string {
	return expandName(p, id, map[TypeID]bool{})
}

func expandName(p Provider, id TypeID, active map[TypeID]bool) string {
	d, err := p.Describe(id)
	if err != nil {
		return string(id)
	}
	name := d.DisplayName()
	if d.Composite || len(d.TypeArgs) == 0 || active[id] {
		return name
	}
	active[id] = true
	defer delete(active, id)

	args := make([]string, len(d.TypeArgs))
	for i, a := range d.TypeArgs {
		args[i] = expandName(p, a, active)
	}
	return name + "[" + strings.Join(args, ",") + "]"
}
