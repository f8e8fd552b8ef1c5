package whitelist

import (
	"testing"

	"dlcheck/internal/typeinfo"

	"github.com/stretchr/testify/assert"
)

func TestIsWhitelisted_Builtins(t *testing.T) {
	r := New()
	for _, id := range typeinfo.BasicTypes {
		d := typeinfo.BasicDescriptor(id)
		assert.True(t, r.IsWhitelisted(nil, &d), id)
	}
	for _, id := range Defaults {
		assert.True(t, r.IsWhitelisted(nil, &typeinfo.Descriptor{ID: id}), id)
	}
	assert.False(t, r.IsWhitelisted(nil, &typeinfo.Descriptor{ID: "app.Point"}))
	assert.False(t, r.IsWhitelisted(nil, nil))
}

func TestIsWhitelisted_Tuples(t *testing.T) {
	r := New()
	ok := &typeinfo.Descriptor{ID: "(int,string)", Kind: typeinfo.KindTuple, TypeArgs: []typeinfo.TypeID{"int", "string"}}
	bad := &typeinfo.Descriptor{ID: "(int,app.X)", Kind: typeinfo.KindTuple, TypeArgs: []typeinfo.TypeID{"int", "app.X"}}
	assert.True(t, r.IsWhitelisted(nil, ok))
	assert.False(t, r.IsWhitelisted(nil, bad))
}

func TestIsWhitelisted_NestedTuples(t *testing.T) {
	p := typeinfo.NewRegistry()
	p.MustRegister(
		typeinfo.Descriptor{ID: "(int,string)", Kind: typeinfo.KindTuple, TypeArgs: []typeinfo.TypeID{"int", "string"}},
		typeinfo.Descriptor{ID: "(int,app.X)", Kind: typeinfo.KindTuple, TypeArgs: []typeinfo.TypeID{"int", "app.X"}},
		typeinfo.Descriptor{ID: "app.X", Name: "X", Kind: typeinfo.KindReference},
		typeinfo.Descriptor{ID: "app.Stamp", Name: "Stamp", Kind: typeinfo.KindReference, Approved: true},
	)
	r := New(WithApproved(Glob("ext.*")))

	cases := []struct {
		name string
		args []typeinfo.TypeID
		want bool
	}{
		{"whitelisted tuple element", []typeinfo.TypeID{"bool", "(int,string)"}, true},
		{"approved by predicate", []typeinfo.TypeID{"int", "ext.Decimal"}, true},
		{"approved by descriptor", []typeinfo.TypeID{"time.Time", "app.Stamp"}, true},
		{"tuple with a class", []typeinfo.TypeID{"bool", "(int,app.X)"}, false},
		{"unknown element", []typeinfo.TypeID{"int", "app.Ghost"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &typeinfo.Descriptor{ID: "tuple", Kind: typeinfo.KindTuple, TypeArgs: tc.args}
			assert.Equal(t, tc.want, r.IsWhitelisted(p, d))
		})
	}

	// without a provider nested tuples cannot be resolved
	nested := &typeinfo.Descriptor{ID: "tuple", Kind: typeinfo.KindTuple, TypeArgs: []typeinfo.TypeID{"(int,string)"}}
	assert.False(t, r.IsWhitelisted(nil, nested))
}

func TestExtraAndPredicates(t *testing.T) {
	r := New(
		WithExtra("app.Money"),
		WithIgnore(Glob("example.com/app/gen/**")),
		WithApproved(Glob("github.com/shopspring/decimal.*")),
	)
	assert.True(t, r.Contains("app.Money"))
	assert.True(t, r.IsIgnored("example.com/app/gen/proto.Msg"))
	assert.False(t, r.IsIgnored("example.com/app/model.Point"))
	assert.True(t, r.IsApproved("github.com/shopspring/decimal.Decimal"))
	assert.False(t, r.IsApproved("app.Money"))
}

func TestDefaultsRejectNothingExtra(t *testing.T) {
	r := New()
	assert.False(t, r.IsIgnored("anything"))
	assert.False(t, r.IsApproved("anything"))
}

func TestGlobAndAny(t *testing.T) {
	assert.Nil(t, Glob())
	assert.Nil(t, Any(nil, nil))

	p := Any(nil, Glob("a.*"), func(id typeinfo.TypeID) bool { return id == "b.X" })
	assert.True(t, p("a.Y"))
	assert.True(t, p("b.X"))
	assert.False(t, p("c.Z"))
}

func TestValidatePatterns(t *testing.T) {
	assert.NoError(t, ValidatePatterns("example.com/**", "app.*", "x.[AB]"))
}
