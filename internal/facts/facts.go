// Package facts renders classification results as Datalog facts.
//
// Type IDs and reasons are always string constants; only values wrapped in
// Name become name constants (/data, /logic, ...). Type IDs routinely contain
// slashes, so no string is ever guessed to be a name.
package facts

import (
	"fmt"
	"strings"

	"github.com/google/mangle/ast"
)

// Predicates emitted by dlcheck.
const (
	PredTypeCategory          = "type_category"
	PredClassificationFailure = "classification_failure"
	PredTypeKind              = "type_kind"
)

// Name is a Datalog name constant such as /data.
type Name string

// Fact is a single ground atom.
type Fact struct {
	Predicate string
	Args      []interface{}
}

// TypeCategory records the category a type resolved to.
func TypeCategory(id, category string) Fact {
	return Fact{Predicate: PredTypeCategory, Args: []interface{}{id, Name("/" + category)}}
}

// ClassificationFailure records a type that is neither Data nor Logic.
func ClassificationFailure(id, dataReason, logicReason string) Fact {
	return Fact{Predicate: PredClassificationFailure, Args: []interface{}{id, dataReason, logicReason}}
}

// TypeKind records the descriptor kind of an enumerated type.
func TypeKind(id, kind string) Fact {
	return Fact{Predicate: PredTypeKind, Args: []interface{}{id, Name("/" + kind)}}
}

// String returns the Datalog text of the fact.
func (f Fact) String() string {
	args := make([]string, 0, len(f.Args))
	for _, arg := range f.Args {
		switch v := arg.(type) {
		case Name:
			args = append(args, string(v))
		case string:
			args = append(args, fmt.Sprintf("%q", v))
		case int:
			args = append(args, fmt.Sprintf("%d", v))
		case int64:
			args = append(args, fmt.Sprintf("%d", v))
		case bool:
			if v {
				args = append(args, "/true")
			} else {
				args = append(args, "/false")
			}
		default:
			args = append(args, fmt.Sprintf("%q", fmt.Sprint(v)))
		}
	}
	return fmt.Sprintf("%s(%s).", f.Predicate, strings.Join(args, ", "))
}

// ToAtom converts the fact to a Mangle AST atom. Malformed name constants
// are an error.
func (f Fact) ToAtom() (ast.Atom, error) {
	terms := make([]ast.BaseTerm, 0, len(f.Args))
	for i, arg := range f.Args {
		switch v := arg.(type) {
		case Name:
			c, err := ast.Name(string(v))
			if err != nil {
				return ast.Atom{}, fmt.Errorf("%s argument %d: %w", f.Predicate, i, err)
			}
			terms = append(terms, c)
		case string:
			terms = append(terms, ast.String(v))
		case int:
			terms = append(terms, ast.Number(int64(v)))
		case int64:
			terms = append(terms, ast.Number(v))
		case bool:
			if v {
				terms = append(terms, ast.TrueConstant)
			} else {
				terms = append(terms, ast.FalseConstant)
			}
		default:
			terms = append(terms, ast.String(fmt.Sprint(v)))
		}
	}
	return ast.NewAtom(f.Predicate, terms...), nil
}

// Program renders facts one per line.
func Program(fs []Fact) string {
	var sb strings.Builder
	for _, f := range fs {
		sb.WriteString(f.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Atoms converts every fact, stopping at the first malformed one.
func Atoms(fs []Fact) ([]ast.Atom, error) {
	atoms := make([]ast.Atom, 0, len(fs))
	for _, f := range fs {
		a, err := f.ToAtom()
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, a)
	}
	return atoms, nil
}
