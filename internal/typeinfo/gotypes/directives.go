package gotypes

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"
)

const directivePrefix = "//dlcheck:"

// directives are the //dlcheck:<word> lines found in a declaration's doc.
type directives struct {
	data     bool
	logic    bool
	ignore   bool
	approved bool
	state    bool
	tag      bool
}

func parseDirectives(groups ...*ast.CommentGroup) (directives, bool) {
	var d directives
	found := false
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			word, ok := strings.CutPrefix(strings.TrimSpace(c.Text), directivePrefix)
			if !ok {
				continue
			}
			switch strings.TrimSpace(word) {
			case "data":
				d.data = true
			case "logic":
				d.logic = true
			case "ignore":
				d.ignore = true
			case "approved":
				d.approved = true
			case "state":
				d.state = true
			case "tag":
				d.tag = true
			default:
				continue
			}
			found = true
		}
	}
	return d, found
}

// collectDirectives indexes type and method directives by their defining
// object.
func collectDirectives(pkg *packages.Package, into map[types.Object]directives) {
	if pkg.TypesInfo == nil {
		return
	}
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch decl := decl.(type) {
			case *ast.GenDecl:
				if decl.Tok != token.TYPE {
					continue
				}
				for _, spec := range decl.Specs {
					ts := spec.(*ast.TypeSpec)
					groups := []*ast.CommentGroup{ts.Doc}
					if len(decl.Specs) == 1 {
						groups = append(groups, decl.Doc)
					}
					if d, ok := parseDirectives(groups...); ok {
						if obj := pkg.TypesInfo.Defs[ts.Name]; obj != nil {
							into[obj] = d
						}
					}
				}
			case *ast.FuncDecl:
				if decl.Recv == nil {
					continue
				}
				if d, ok := parseDirectives(decl.Doc); ok {
					if obj := pkg.TypesInfo.Defs[decl.Name]; obj != nil {
						into[obj] = d
					}
				}
			}
		}
	}
}
