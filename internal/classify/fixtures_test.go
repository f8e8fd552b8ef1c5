package classify

import (
	"dlcheck/internal/typeinfo"
	"dlcheck/internal/whitelist"
)

func field(name string, typ typeinfo.TypeID) typeinfo.Member {
	return typeinfo.Member{Name: name, Type: typ, DeclaredIn: "app"}
}

func public(m typeinfo.Member) typeinfo.Member {
	m.Visibility = typeinfo.Public
	return m
}

func method(name string, params ...typeinfo.Param) typeinfo.Method {
	return typeinfo.Method{Name: name, Params: params, DeclaredIn: "app"}
}

func param(name string, typ typeinfo.TypeID) typeinfo.Param {
	return typeinfo.Param{Name: name, Type: typ}
}

func stateOf(arg typeinfo.TypeID) typeinfo.Descriptor {
	return typeinfo.Descriptor{
		ID:        typeinfo.TypeID("state.State[" + string(arg) + "]"),
		Name:      "State",
		Namespace: "state",
		Kind:      typeinfo.KindReference,
		State:     true,
		TypeArgs:  []typeinfo.TypeID{arg},
	}
}

// fixture registers the scenario types shared by the classifier tests.
func fixture() *typeinfo.Registry {
	r := typeinfo.NewRegistry()
	r.MustRegister(
		stateOf("int"),
		stateOf("app.Point"),
		stateOf("app.Counter"),
		typeinfo.Descriptor{
			ID: "app.Point", Name: "Point", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{public(field("X", "int")), public(field("Y", "int"))},
			Methods: []typeinfo.Method{method("String")},
		},
		typeinfo.Descriptor{
			ID: "app.Counter", Name: "Counter", Namespace: "app", Kind: typeinfo.KindReference,
			Members: []typeinfo.Member{field("count", "state.State[int]")},
			Methods: []typeinfo.Method{method("Increment")},
		},
		typeinfo.Descriptor{
			ID: "app.BadCounter", Name: "BadCounter", Namespace: "app", Kind: typeinfo.KindReference,
			Members: []typeinfo.Member{public(field("Count", "state.State[int]"))},
			Methods: []typeinfo.Method{method("Increment")},
		},
		typeinfo.Descriptor{
			ID: "coll.List[app.BadCounter]", Name: "List", Namespace: "coll", Kind: typeinfo.KindValue,
			TypeArgs: []typeinfo.TypeID{"app.BadCounter"},
			Members:  []typeinfo.Member{{Name: "root", Type: "coll.node", DeclaredIn: "coll"}},
		},
		typeinfo.Descriptor{
			ID: "coll.List[app.Point]", Name: "List", Namespace: "coll", Kind: typeinfo.KindValue,
			TypeArgs: []typeinfo.TypeID{"app.Point"},
			Members:  []typeinfo.Member{{Name: "root", Type: "coll.node", DeclaredIn: "coll"}},
		},
		typeinfo.Descriptor{
			ID: "app.Wrapper", Name: "Wrapper", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{public(field("Items", "coll.List[app.BadCounter]"))},
		},
		typeinfo.Descriptor{
			ID: "app.Polygon", Name: "Polygon", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{public(field("Vertices", "coll.List[app.Point]"))},
		},
		typeinfo.Descriptor{
			ID: "app.Money", Name: "Money", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{field("cents", "int64")},
			Methods: []typeinfo.Method{method("Equals", param("other", "app.Money"))},
		},
		typeinfo.Descriptor{
			ID: "app.Hashed", Name: "Hashed", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{field("v", "int")},
			Methods: []typeinfo.Method{method("Hash")},
		},
		typeinfo.Descriptor{
			ID: "app.Account", Name: "Account", Namespace: "app", Kind: typeinfo.KindReference,
			Members: []typeinfo.Member{public(field("Balance", "int"))},
		},
		typeinfo.Descriptor{
			ID: "app.Request", Name: "Request", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{public(field("Path", "string")), public(field("At", "time.Time"))},
		},
		typeinfo.Descriptor{
			ID: "app.Service", Name: "Service", Namespace: "app", Kind: typeinfo.KindReference,
			Members: []typeinfo.Member{field("counter", "app.Counter")},
			Methods: []typeinfo.Method{
				method("Handle", param("req", "app.Request"), param("other", "app.Counter"), param("ctx", "context.Context")),
				method("Snapshot", param("into", "state.State[app.Point]")),
			},
		},
		typeinfo.Descriptor{
			ID: "app.Leaky", Name: "Leaky", Namespace: "app", Kind: typeinfo.KindReference,
			Methods: []typeinfo.Method{method("Take", param("c", "app.BadCounter"))},
		},
		typeinfo.Descriptor{
			ID: "app.StateTaker", Name: "StateTaker", Namespace: "app", Kind: typeinfo.KindReference,
			Methods: []typeinfo.Method{method("Apply", param("s", "state.State[app.Counter]"))},
		},
		typeinfo.Descriptor{
			ID: "app.Status", Name: "Status", Namespace: "app", Kind: typeinfo.KindEnum,
		},
		typeinfo.Descriptor{
			ID: "app.Marker", Name: "Marker", Namespace: "app", Kind: typeinfo.KindTag,
		},
		typeinfo.Descriptor{
			ID: "app.Handler", Name: "Handler", Namespace: "app", Kind: typeinfo.KindFunction,
		},
		typeinfo.Descriptor{
			ID: "app.Empty", Name: "Empty", Namespace: "app", Kind: typeinfo.KindValue,
		},
	)
	return r
}

func collections(ns string) bool { return ns == "coll" }

func newClassifier(r *typeinfo.Registry, opts ...Option) *Classifier {
	base := []Option{WithCollections(collections), WithWhitelist(whitelist.New())}
	return New(r, append(base, opts...)...)
}
