// Package gotypes provides type descriptors for Go source loaded with
// golang.org/x/tools/go/packages.
//
// Type IDs are types.TypeString with full package paths, e.g.
// "example.com/app.Point", "*example.com/app.Counter",
// "example.com/coll.List[example.com/app.Point]" or "[]int".
package gotypes

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"sort"
	"strings"
	"sync"

	"dlcheck/internal/logging"
	"dlcheck/internal/typeinfo"
	"dlcheck/internal/whitelist"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/multierr"
	"golang.org/x/tools/go/packages"
)

// BuiltinNamespace is the namespace of builtin collections treated as
// trusted: arrays always, slices and maps when Config.BuiltinCollections is
// set.
const BuiltinNamespace = "builtin"

// ErrLoad wraps package loading failures.
var ErrLoad = errors.New("failed to load packages")

// LoadMode is the go/packages mode the provider needs.
const LoadMode = packages.NeedName | packages.NeedFiles | packages.NeedImports | packages.NeedDeps |
	packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo

// Config controls loading and mapping.
type Config struct {
	// Dir is the module directory; empty means the working directory.
	Dir        string
	Patterns   []string
	Tests      bool
	BuildFlags []string
	// StateTypes are doublestar globs over qualified names
	// ("example.com/state.State") recognized as the mutable-state container.
	StateTypes []string
	// BuiltinCollections makes slices and maps trusted collections.
	BuiltinCollections bool
	// CacheSize bounds the descriptor memo; <= 0 uses 4096.
	CacheSize int
}

// Provider describes the types of a loaded set of packages. It implements
// typeinfo.Provider and typeinfo.Enumerator.
type Provider struct {
	mu    sync.RWMutex
	index map[typeinfo.TypeID]types.Type
	roots []typeinfo.TypeID

	directives   map[types.Object]directives
	constructors map[*types.TypeName][]*types.Func

	isState            whitelist.Predicate
	builtinCollections bool

	memo *lru.Cache[typeinfo.TypeID, *typeinfo.Descriptor]
	log  *logging.Logger
}

// Load loads the packages matching cfg.Patterns and indexes their package
// level types.
func Load(ctx context.Context, cfg Config) (*Provider, error) {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pcfg := &packages.Config{
		Context:    ctx,
		Mode:       LoadMode,
		Dir:        cfg.Dir,
		Tests:      cfg.Tests,
		BuildFlags: cfg.BuildFlags,
	}
	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	var loadErrs error
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, e := range p.Errors {
			loadErrs = multierr.Append(loadErrs, e)
		}
	})
	if loadErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, loadErrs)
	}

	p, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		collectDirectives(pkg, p.directives)
		p.collectConstructors(pkg)
	})

	seen := make(map[typeinfo.TypeID]bool)
	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || tn.IsAlias() {
				continue
			}
			id := p.register(tn.Type())
			if !seen[id] {
				seen[id] = true
				p.roots = append(p.roots, id)
			}
		}
	}
	sort.Slice(p.roots, func(i, j int) bool { return p.roots[i] < p.roots[j] })

	p.log.Info("loaded %d packages, %d types", len(pkgs), len(p.roots))
	return p, nil
}

func newProvider(cfg Config) (*Provider, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = 4096
	}
	memo, err := lru.New[typeinfo.TypeID, *typeinfo.Descriptor](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create descriptor cache: %w", err)
	}
	return &Provider{
		index:              make(map[typeinfo.TypeID]types.Type),
		directives:         make(map[types.Object]directives),
		constructors:       make(map[*types.TypeName][]*types.Func),
		isState:            whitelist.Glob(cfg.StateTypes...),
		builtinCollections: cfg.BuiltinCollections,
		memo:               memo,
		log:                logging.Get(logging.CategoryProvider),
	}, nil
}

// Types lists the package-level types of the matched packages, sorted.
func (p *Provider) Types() []typeinfo.TypeID {
	return append([]typeinfo.TypeID(nil), p.roots...)
}

// Describe returns the descriptor for id. Only types reachable from a
// loaded package, plus the builtin scalars, are known.
func (p *Provider) Describe(id typeinfo.TypeID) (*typeinfo.Descriptor, error) {
	if d, ok := p.memo.Get(id); ok {
		return d.Clone(), nil
	}

	p.mu.RLock()
	t, ok := p.index[id]
	p.mu.RUnlock()
	if !ok {
		if typeinfo.IsBasic(id) {
			d := typeinfo.BasicDescriptor(id)
			return &d, nil
		}
		return nil, fmt.Errorf("describe %s: %w", id, typeinfo.ErrUnknownType)
	}

	d := p.build(id, t)
	p.memo.Add(id, d)
	p.log.Debug("described %s as %s", id, d.Kind)
	return d.Clone(), nil
}

// register records t under its ID so later Describe calls can find it.
func (p *Provider) register(t types.Type) typeinfo.TypeID {
	t = types.Unalias(t)
	id := typeinfo.TypeID(types.TypeString(t, nil))
	p.mu.Lock()
	if _, ok := p.index[id]; !ok {
		p.index[id] = t
	}
	p.mu.Unlock()
	return id
}

func display(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string { return pkg.Name() })
}

func (p *Provider) build(id typeinfo.TypeID, t types.Type) *typeinfo.Descriptor {
	switch t := t.(type) {
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return &typeinfo.Descriptor{ID: id, Name: "unsafe.Pointer", Namespace: "unsafe",
				Kind: typeinfo.KindReference, Basic: true}
		}
		d := typeinfo.BasicDescriptor(id)
		return &d
	case *types.Named:
		return p.buildNamed(id, t)
	case *types.Pointer:
		return p.buildPointer(id, t)
	default:
		d := &typeinfo.Descriptor{ID: id, Name: display(t), Composite: true}
		p.buildComposite(d, t)
		return d
	}
}

func (p *Provider) buildNamed(id typeinfo.TypeID, t *types.Named) *typeinfo.Descriptor {
	obj := t.Obj()
	d := &typeinfo.Descriptor{ID: id, Name: obj.Name()}
	if pkg := obj.Pkg(); pkg != nil {
		d.Namespace = pkg.Path()
	}
	qualified := obj.Name()
	if d.Namespace != "" {
		qualified = d.Namespace + "." + obj.Name()
	}

	args := t.TypeArgs()
	for i := 0; i < args.Len(); i++ {
		d.TypeArgs = append(d.TypeArgs, p.register(args.At(i)))
	}

	switch u := t.Underlying().(type) {
	case *types.Struct:
		d.Members = p.fields(u)
		d.Methods = p.methods(t)
		d.Kind = typeinfo.KindReference
		if valueReceivers(t) && types.Comparable(t) {
			d.Kind = typeinfo.KindValue
		}
	case *types.Basic:
		d.Kind = typeinfo.KindEnum
		d.Methods = p.methods(t)
	case *types.Interface:
		d.Kind = typeinfo.KindInterface
		d.Methods = p.interfaceMethods(u)
	case *types.Signature:
		d.Kind = typeinfo.KindFunction
	default:
		// named slices, maps, arrays and channels behave like their
		// underlying composite
		d.TypeArgs = nil
		p.buildComposite(d, u)
		d.Composite = true
		d.Methods = p.methods(t)
	}
	d.Methods = append(d.Methods, p.constructorsOf(obj)...)

	dir := p.directives[obj]
	if dir.state || (p.isState != nil && p.isState(typeinfo.TypeID(qualified))) {
		d.State = true
		d.Kind = typeinfo.KindReference
	}
	switch {
	case dir.tag:
		d.Kind = typeinfo.KindTag
	case dir.data:
		d.Kind = typeinfo.KindValue
	case dir.logic:
		d.Kind = typeinfo.KindReference
	}
	d.Ignored = dir.ignore
	d.Approved = dir.approved
	return d
}

// buildPointer describes *T with the members and methods of T. Pointers to
// non-struct types are raw storage.
func (p *Provider) buildPointer(id typeinfo.TypeID, t *types.Pointer) *typeinfo.Descriptor {
	elem := types.Unalias(t.Elem())
	named, ok := elem.(*types.Named)
	if !ok {
		d := &typeinfo.Descriptor{ID: id, Name: display(t), Composite: true, Kind: typeinfo.KindReference}
		if s, ok := elem.(*types.Struct); ok {
			d.Members = p.fields(s)
		} else {
			d.Basic = true
			d.TypeArgs = []typeinfo.TypeID{p.register(elem)}
		}
		return d
	}

	d := p.buildNamed(p.register(named), named)
	d.ID = id
	d.Name = "*" + d.Name
	d.Kind = typeinfo.KindReference
	switch named.Underlying().(type) {
	case *types.Struct, *types.Interface:
	default:
		d.Basic = true
	}
	return d
}

func (p *Provider) buildComposite(d *typeinfo.Descriptor, t types.Type) {
	switch u := t.(type) {
	case *types.Array:
		d.Kind = typeinfo.KindValue
		d.Namespace = BuiltinNamespace
		d.TypeArgs = []typeinfo.TypeID{p.register(u.Elem())}
	case *types.Slice:
		d.TypeArgs = []typeinfo.TypeID{p.register(u.Elem())}
		p.rawOrTrusted(d)
	case *types.Map:
		d.TypeArgs = []typeinfo.TypeID{p.register(u.Key()), p.register(u.Elem())}
		p.rawOrTrusted(d)
	case *types.Chan:
		d.Kind = typeinfo.KindReference
		d.Basic = true
		d.TypeArgs = []typeinfo.TypeID{p.register(u.Elem())}
	case *types.Signature:
		d.Kind = typeinfo.KindFunction
	case *types.Interface:
		d.Kind = typeinfo.KindInterface
		d.Methods = p.interfaceMethods(u)
	case *types.Struct:
		d.Kind = typeinfo.KindSynthetic
		d.Members = p.fields(u)
	case *types.Pointer:
		d.Kind = typeinfo.KindReference
		d.Basic = true
	case *types.Basic:
		d.Kind = typeinfo.KindValue
		d.Basic = true
	default:
		// type parameters, unions
		d.Kind = typeinfo.KindSynthetic
	}
}

func (p *Provider) rawOrTrusted(d *typeinfo.Descriptor) {
	if p.builtinCollections {
		d.Kind = typeinfo.KindValue
		d.Namespace = BuiltinNamespace
		return
	}
	d.Kind = typeinfo.KindReference
	d.Basic = true
}

func (p *Provider) fields(s *types.Struct) []typeinfo.Member {
	members := make([]typeinfo.Member, 0, s.NumFields())
	for i := 0; i < s.NumFields(); i++ {
		f := s.Field(i)
		m := typeinfo.Member{
			Name:      f.Name(),
			Type:      p.register(f.Type()),
			Ignored:   reflect.StructTag(s.Tag(i)).Get("dlcheck") == "ignore",
			Synthetic: f.Name() == "_",
		}
		if f.Exported() {
			m.Visibility = typeinfo.Public
		}
		if pkg := f.Pkg(); pkg != nil {
			m.DeclaredIn = pkg.Path()
		}
		members = append(members, m)
	}
	return members
}

func (p *Provider) methods(t *types.Named) []typeinfo.Method {
	var out []typeinfo.Method
	for i := 0; i < t.NumMethods(); i++ {
		out = append(out, p.method(t.Method(i)))
	}
	return out
}

func (p *Provider) interfaceMethods(it *types.Interface) []typeinfo.Method {
	var out []typeinfo.Method
	for i := 0; i < it.NumMethods(); i++ {
		out = append(out, p.method(it.Method(i)))
	}
	return out
}

func (p *Provider) method(fn *types.Func) typeinfo.Method {
	m := typeinfo.Method{
		Name:    fn.Name(),
		Params:  p.params(fn.Type().(*types.Signature)),
		Ignored: p.directives[fn.Origin()].ignore,
	}
	if pkg := fn.Pkg(); pkg != nil {
		m.DeclaredIn = pkg.Path()
	}
	return m
}

func (p *Provider) params(sig *types.Signature) []typeinfo.Param {
	ps := sig.Params()
	out := make([]typeinfo.Param, 0, ps.Len())
	for i := 0; i < ps.Len(); i++ {
		v := ps.At(i)
		name := v.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("p%d", i)
		}
		out = append(out, typeinfo.Param{Name: name, Type: p.register(v.Type())})
	}
	return out
}

// valueReceivers reports whether every declared method has a value receiver.
func valueReceivers(t *types.Named) bool {
	origin := t.Origin()
	for i := 0; i < origin.NumMethods(); i++ {
		recv := origin.Method(i).Type().(*types.Signature).Recv()
		if recv == nil {
			continue
		}
		if _, ptr := recv.Type().(*types.Pointer); ptr {
			return false
		}
	}
	return true
}

// collectConstructors attaches package-level NewX functions returning X or
// *X to X.
func (p *Provider) collectConstructors(pkg *packages.Package) {
	if pkg.Types == nil {
		return
	}
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok || !strings.HasPrefix(name, "New") {
			continue
		}
		res := fn.Type().(*types.Signature).Results()
		if res.Len() == 0 {
			continue
		}
		rt := types.Unalias(res.At(0).Type())
		if ptr, ok := rt.(*types.Pointer); ok {
			rt = types.Unalias(ptr.Elem())
		}
		named, ok := rt.(*types.Named)
		if !ok || named.Obj().Pkg() != pkg.Types {
			continue
		}
		p.constructors[named.Obj()] = append(p.constructors[named.Obj()], fn)
	}
}

func (p *Provider) constructorsOf(obj *types.TypeName) []typeinfo.Method {
	fns := p.constructors[obj]
	out := make([]typeinfo.Method, 0, len(fns))
	for _, fn := range fns {
		m := typeinfo.Method{
			Name:        fn.Name(),
			Params:      p.params(fn.Type().(*types.Signature)),
			DeclaredIn:  fn.Pkg().Path(),
			Constructor: true,
		}
		out = append(out, m)
	}
	return out
}
