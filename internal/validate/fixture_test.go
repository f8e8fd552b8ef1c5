package validate

import (
	"dlcheck/internal/classify"
	"dlcheck/internal/typeinfo"
)

func registry() *typeinfo.Registry {
	r := typeinfo.NewRegistry()
	r.MustRegister(
		typeinfo.Descriptor{ID: "state.State[int]", Name: "State", Namespace: "state",
			Kind: typeinfo.KindReference, State: true, TypeArgs: []typeinfo.TypeID{"int"}},
		typeinfo.Descriptor{ID: "app.Point", Name: "Point", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{
				{Name: "X", Type: "int", Visibility: typeinfo.Public},
				{Name: "Y", Type: "int", Visibility: typeinfo.Public},
			}},
		typeinfo.Descriptor{ID: "app.Counter", Name: "Counter", Namespace: "app", Kind: typeinfo.KindReference,
			Members: []typeinfo.Member{{Name: "count", Type: "state.State[int]"}},
			Methods: []typeinfo.Method{{Name: "Add", Params: []typeinfo.Param{{Name: "p", Type: "app.Point"}}}}},
		typeinfo.Descriptor{ID: "app.Account", Name: "Account", Namespace: "app", Kind: typeinfo.KindReference,
			Members: []typeinfo.Member{{Name: "Balance", Type: "int", Visibility: typeinfo.Public}}},
		typeinfo.Descriptor{ID: "app.Ledger", Name: "Ledger", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{{Name: "owner", Type: "app.Account"}}},
		typeinfo.Descriptor{ID: "app.Status", Name: "Status", Namespace: "app", Kind: typeinfo.KindEnum},
		typeinfo.Descriptor{ID: "app.Legacy", Name: "Legacy", Namespace: "app", Kind: typeinfo.KindReference,
			Ignored: true, Members: []typeinfo.Member{{Name: "Raw", Type: "int", Visibility: typeinfo.Public}}},
		// mutually referencing values
		typeinfo.Descriptor{ID: "app.T", Name: "T", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{{Name: "u", Type: "app.U"}}},
		typeinfo.Descriptor{ID: "app.U", Name: "U", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{{Name: "t", Type: "app.T"}}},
		// a value that refers to itself
		typeinfo.Descriptor{ID: "app.Node", Name: "Node", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{{Name: "next", Type: "app.Node"}}},
	)
	return r
}

// cyclicRegistry adds a Logic component whose method takes a value that
// holds the component: the value is valid only while the component is on
// the path.
func cyclicRegistry() *typeinfo.Registry {
	r := registry()
	r.MustRegister(
		typeinfo.Descriptor{ID: "app.Svc", Name: "Svc", Namespace: "app", Kind: typeinfo.KindReference,
			Methods: []typeinfo.Method{{Name: "Use", Params: []typeinfo.Param{{Name: "b", Type: "app.Box"}}}}},
		typeinfo.Descriptor{ID: "app.Box", Name: "Box", Namespace: "app", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{{Name: "svc", Type: "app.Svc"}}},
	)
	return r
}

var allRoots = []typeinfo.TypeID{
	"app.Point", "app.Counter", "app.Account", "app.Ledger", "app.Status",
	"app.Legacy", "app.T", "app.U", "app.Node", "time.Time",
}

func verdicts(c *classify.Classifier, id typeinfo.TypeID) (data, logic bool) {
	return c.IsData(id, classify.Chain{}).OK(), c.IsLogic(id, classify.Chain{}).OK()
}
