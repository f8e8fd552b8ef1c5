package classify

import (
	"testing"

	"dlcheck/internal/typeinfo"
	"dlcheck/internal/whitelist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsData_WhitelistedAlwaysPass(t *testing.T) {
	c := newClassifier(fixture())
	for _, id := range typeinfo.BasicTypes {
		assert.True(t, c.IsData(id, Chain{}).OK(), id)
	}
	for _, id := range whitelist.Defaults {
		assert.True(t, c.IsData(id, Chain{}).OK(), id)
	}
}

func TestIsData_StateAlwaysFails(t *testing.T) {
	c := newClassifier(fixture())
	for _, arg := range []typeinfo.TypeID{"int", "app.Point", "app.Counter"} {
		id := typeinfo.TypeID("state.State[" + string(arg) + "]")
		v := c.IsData(id, Chain{})
		require.False(t, v.OK(), id)
		assert.Contains(t, v.Reason, "cannot be a State")
	}
}

func TestScenarioA_PointIsData(t *testing.T) {
	c := newClassifier(fixture())
	assert.True(t, c.IsData("app.Point", Chain{}).OK())

	v := c.IsLogic("app.Point", Chain{})
	require.False(t, v.OK())
	assert.Equal(t, "Point cannot be a record", v.Reason)
}

func TestScenarioB_CounterIsLogic(t *testing.T) {
	c := newClassifier(fixture())
	assert.True(t, c.IsLogic("app.Counter", Chain{}).OK())

	v := c.IsData("app.Counter", Chain{})
	require.False(t, v.OK())
	assert.Equal(t, "Counter cannot be a class", v.Reason)
}

func TestScenarioC_PublicStateRejected(t *testing.T) {
	c := newClassifier(fixture())
	v := c.IsLogic("app.BadCounter", Chain{})
	require.False(t, v.OK())
	assert.Contains(t, v.Reason, "cannot be a public State")
	assert.Equal(t, "BadCounter member Count cannot be a public State", v.Reason)
}

func TestScenarioD_CollectionArgumentChecked(t *testing.T) {
	c := newClassifier(fixture())
	v := c.IsData("app.Wrapper", Chain{})
	require.False(t, v.OK())
	assert.Equal(t, "Wrapper member Items generic parameter BadCounter cannot be a class", v.Reason)

	assert.True(t, c.IsData("app.Polygon", Chain{}).OK(), "collection internals are not inspected")
}

func TestScenarioE_CustomEquality(t *testing.T) {
	c := newClassifier(fixture())
	v := c.IsData("app.Money", Chain{})
	require.False(t, v.OK())
	assert.Contains(t, v.Reason, "cannot have Equals(T)")

	v = c.IsData("app.Hashed", Chain{})
	require.False(t, v.OK())
	assert.Equal(t, "Hashed cannot have GetHashCode()", v.Reason)
}

func TestScenarioF_NeitherShape(t *testing.T) {
	c := newClassifier(fixture())
	dv := c.IsData("app.Account", Chain{})
	lv := c.IsLogic("app.Account", Chain{})
	require.False(t, dv.OK())
	require.False(t, lv.OK())
	assert.Equal(t, "Account cannot be a class", dv.Reason)
	assert.Equal(t, "Account member Balance cannot be a basic type", lv.Reason)
}

func TestIsLogic_Parameters(t *testing.T) {
	c := newClassifier(fixture())

	assert.True(t, c.IsLogic("app.Service", Chain{}).OK(), "data, logic and state parameters are all accepted")

	v := c.IsLogic("app.Leaky", Chain{})
	require.False(t, v.OK())
	assert.Equal(t, "Leaky method Take parameter c cannot be a class", v.Reason,
		"the data failure is the representative message")

	v = c.IsLogic("app.StateTaker", Chain{})
	require.False(t, v.OK())
	assert.Equal(t, "StateTaker method Apply parameter s generic parameter Counter cannot be a class", v.Reason)
}

func TestShapeExemptions(t *testing.T) {
	c := newClassifier(fixture())
	for _, id := range []typeinfo.TypeID{"app.Status", "app.Marker", "app.Handler"} {
		assert.True(t, c.IsData(id, Chain{}).OK(), id)
		assert.True(t, c.IsLogic(id, Chain{}).OK(), id)
	}
	assert.True(t, c.IsData("app.Empty", Chain{}).OK(), "payload-free value shapes pass")
	assert.True(t, c.IsLogic("state.State[int]", Chain{}).OK(), "the state container is opaque to IsLogic")
}

func TestIgnoreAndApproved(t *testing.T) {
	r := fixture()
	r.MustRegister(
		typeinfo.Descriptor{ID: "app.Skipped", Kind: typeinfo.KindReference, Ignored: true,
			Members: []typeinfo.Member{public(field("Raw", "int"))}},
		typeinfo.Descriptor{ID: "ext.Decimal", Name: "Decimal", Namespace: "ext", Kind: typeinfo.KindReference},
		typeinfo.Descriptor{ID: "app.Invoice", Name: "Invoice", Kind: typeinfo.KindValue,
			Members: []typeinfo.Member{
				field("total", "ext.Decimal"),
				{Name: "scratch", Type: "app.Counter", Ignored: true},
				{Name: "_", Type: "app.Counter", Synthetic: true},
				{Name: "Max", Type: "app.Counter", Const: true},
			}},
	)

	c := newClassifier(r)
	assert.True(t, c.IsData("app.Skipped", Chain{}).OK())
	assert.True(t, c.IsLogic("app.Skipped", Chain{}).OK())

	v := c.IsData("app.Invoice", Chain{})
	require.False(t, v.OK())
	assert.Equal(t, "Invoice member total cannot be a class", v.Reason)

	wl := whitelist.New(
		whitelist.WithApproved(whitelist.Glob("ext.*")),
		whitelist.WithIgnore(func(id typeinfo.TypeID) bool { return id == "app.Account" }),
	)
	c = New(r, WithCollections(collections), WithWhitelist(wl))
	assert.True(t, c.IsData("app.Invoice", Chain{}).OK())
	assert.True(t, c.IsData("app.Account", Chain{}).OK())
	assert.True(t, c.Exempt("app.Account"))
	assert.True(t, c.Exempt("ext.Decimal"))
	assert.False(t, c.Exempt("app.Point"))
}

func TestInheritedTypeArguments(t *testing.T) {
	r := fixture()
	r.MustRegister(
		typeinfo.Descriptor{ID: "app.Box[app.Counter]", Name: "Box", Kind: typeinfo.KindValue,
			TypeArgs: []typeinfo.TypeID{"app.Counter"}},
		typeinfo.Descriptor{ID: "app.CounterBox", Name: "CounterBox", Kind: typeinfo.KindValue,
			Base: "app.Box[app.Counter]"},
	)
	v := newClassifier(r).IsData("app.CounterBox", Chain{})
	require.False(t, v.OK())
	assert.Equal(t, "CounterBox generic parameter Counter cannot be a class", v.Reason)
}

func TestCustomSpecialMethodNames(t *testing.T) {
	r := fixture()
	c := newClassifier(r, WithEqualityMethods("Same"), WithHashMethods("Digest"))
	assert.True(t, c.IsData("app.Money", Chain{}).OK(), "Equals is no longer special")
	assert.True(t, c.IsData("app.Hashed", Chain{}).OK())
}

func TestUnknownTypesFailWithPath(t *testing.T) {
	r := fixture()
	r.MustRegister(typeinfo.Descriptor{ID: "app.Dangling", Name: "Dangling", Kind: typeinfo.KindValue,
		Members: []typeinfo.Member{field("ghost", "app.Ghost")}})

	v := newClassifier(r).IsData("app.Dangling", Chain{})
	require.False(t, v.OK())
	assert.Contains(t, v.Reason, "Dangling member ghost cannot be resolved")
}

func TestVerdictAndChain(t *testing.T) {
	assert.Equal(t, "pass", Pass().String())
	assert.Equal(t, "fail: x", Fail("x").String())
	assert.Equal(t, "unresolved", Verdict{}.String())
	assert.Equal(t, "data", CategoryData.String())
	assert.Equal(t, "logic", CategoryLogic.String())

	root := NewChain("a")
	child := root.With("b")
	sibling := root.With("c")
	assert.Equal(t, 1, root.Len())
	assert.Equal(t, []typeinfo.TypeID{"a", "b"}, child.IDs())
	assert.Equal(t, []typeinfo.TypeID{"a", "c"}, sibling.IDs())
	assert.True(t, child.Contains("a"))
	assert.False(t, root.Contains("b"))
}
