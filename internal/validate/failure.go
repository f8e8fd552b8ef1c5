package validate

import (
	"fmt"

	"dlcheck/internal/typeinfo"
)

// DualCategoryFailure is returned when a type satisfies neither the Data nor
// the Logic rules. Both reasons come from an uncached pass so they name the
// full path to the offending member, method or parameter.
type DualCategoryFailure struct {
	Type        typeinfo.TypeID
	Name        string
	DataReason  string
	LogicReason string
}

func (f *DualCategoryFailure) Error() string {
	return fmt.Sprintf("invalid type %s:\nnot Data: %s\nnot Logic: %s", f.Name, f.DataReason, f.LogicReason)
}
