//go:build !dlcheck_release

package validate

import (
	"dlcheck/internal/typeinfo"
)

// Enabled reports whether RunValidation performs any work in this build.
const Enabled = true

// RunValidation validates roots against provider in a fresh session and
// returns nil or the failure. With no roots, every type the provider can
// enumerate is validated.
func RunValidation(provider typeinfo.Provider, roots []typeinfo.TypeID, opts ...Option) error {
	if roots == nil {
		if e, ok := provider.(typeinfo.Enumerator); ok {
			roots = e.Types()
		}
	}
	_, err := NewSession(provider, opts...).Run(roots)
	return err
}
