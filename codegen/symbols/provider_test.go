package symbols

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxidegen/oxidegen/model"
)

// staticProvider is a minimal base resolver for chain tests.
type staticProvider struct{}

func (staticProvider) ToSymbol(shape *model.Shape) *Symbol {
	return New(shape.ID.Name(), "crate::model")
}

func (staticProvider) MemberName(_ *model.Shape, m *model.Member) string {
	return m.Name
}

// suffixStage appends a marker so application order is observable.
type suffixStage struct {
	PassthroughStage
	marker string
}

func (s suffixStage) Name() string { return "suffix-" + s.marker }

func (s suffixStage) TransformSymbol(_ *model.Shape, sym *Symbol) *Symbol {
	sym.Name += s.marker
	return sym
}

func (s suffixStage) TransformMemberName(_ *model.Shape, _ *model.Member, name string) string {
	return name + s.marker
}

func TestChainAppliesStagesInOrder(t *testing.T) {
	t.Parallel()

	chain := NewChain(staticProvider{}, suffixStage{marker: "_a"}, suffixStage{marker: "_b"})
	shape := &model.Shape{ID: "example.test#Thing", Kind: model.KindStructure}

	sym := chain.ToSymbol(shape)
	require.Equal(t, "Thing_a_b", sym.Name)

	m := &model.Member{Name: "field", Target: "smithy.api#String"}
	require.Equal(t, "field_a_b", chain.MemberName(shape, m))
}

func TestChainWithoutStagesIsBase(t *testing.T) {
	t.Parallel()

	chain := NewChain(staticProvider{})
	shape := &model.Shape{ID: "example.test#Thing", Kind: model.KindStructure}
	require.Equal(t, "Thing", chain.ToSymbol(shape).Name)
	require.Empty(t, chain.Stages())
}

func TestPassthroughStage(t *testing.T) {
	t.Parallel()

	shape := &model.Shape{ID: "example.test#Thing", Kind: model.KindStructure}
	sym := New("Thing", "crate::model")
	require.Same(t, sym, PassthroughStage{}.TransformSymbol(shape, sym))
	require.Equal(t, "x", PassthroughStage{}.TransformMemberName(shape, nil, "x"))
}

func TestSymbolProperties(t *testing.T) {
	t.Parallel()

	sym := New("Thing", "crate::model")
	require.Equal(t, "crate::model::Thing", sym.FullName())
	require.False(t, sym.BoolProperty(PropSensitive))

	sym.SetProperty(PropSensitive, true)
	require.True(t, sym.BoolProperty(PropSensitive))

	sym.AppendAttribute("#[non_exhaustive]")
	sym.AppendAttribute("#[non_exhaustive]")
	require.Equal(t, []string{"#[non_exhaustive]"}, sym.Attributes())

	ref := New("String", "")
	sym.AddReference(ref)
	require.Len(t, sym.References(), 1)

	require.Equal(t, "String", New("String", "").FullName())
}

func TestSymbolEqual(t *testing.T) {
	t.Parallel()

	a := New("Thing", "crate::model").SetProperty(PropStreaming, true)
	b := New("Thing", "crate::model").SetProperty(PropStreaming, true)
	require.True(t, a.Equal(b))

	b.SetProperty(PropSensitive, true)
	require.False(t, a.Equal(b))
}
