package symbols

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/oxidegen/oxidegen/diag"
	"github.com/oxidegen/oxidegen/model"
)

func streamingGraph(t *testing.T) *model.Graph {
	t.Helper()
	g, err := model.NewGraph([]*model.Shape{
		{ID: "smithy.api#Blob", Kind: model.KindPrimitive, Primitive: model.PrimitiveBlob},
		{
			ID:     "example.media#Payload",
			Kind:   model.KindPrimitive,
			Traits: model.TraitSet{model.TraitStreaming: map[string]any{}},
		},
		{
			ID:   "example.media#UploadInput",
			Kind: model.KindStructure,
			Members: []*model.Member{
				{Name: "data", Target: "example.media#Payload"},
			},
		},
		{
			ID:   "example.media#Plain",
			Kind: model.KindStructure,
			Members: []*model.Member{
				{Name: "data", Target: "smithy.api#Blob"},
			},
		},
		{
			ID:   "example.media#Tagged",
			Kind: model.KindStructure,
			Members: []*model.Member{
				{
					Name:   "data",
					Target: "smithy.api#Blob",
					Traits: model.TraitSet{model.TraitStreaming: map[string]any{}},
				},
			},
		},
	})
	require.NoError(t, err)
	return g
}

func TestStreamingStageMarksStreamingShapes(t *testing.T) {
	t.Parallel()

	g := streamingGraph(t)
	st := StreamingStage{Graph: g}

	payload, _ := g.Shape("example.media#Payload")
	sym := st.TransformSymbol(payload, New("Payload", ""))
	require.True(t, sym.BoolProperty(PropStreaming))
	require.True(t, sym.BoolProperty(PropSkipDerivedEq))
}

func TestStreamingStageMarksContainers(t *testing.T) {
	t.Parallel()

	g := streamingGraph(t)
	st := StreamingStage{Graph: g}

	input, _ := g.Shape("example.media#UploadInput")
	sym := st.TransformSymbol(input, New("UploadInput", "crate::model"))
	require.False(t, sym.BoolProperty(PropStreaming))
	require.True(t, sym.BoolProperty(PropSkipDerivedEq))

	plain, _ := g.Shape("example.media#Plain")
	sym = st.TransformSymbol(plain, New("Plain", "crate::model"))
	require.False(t, sym.BoolProperty(PropSkipDerivedEq))
}

func TestStreamingStageIgnoresMemberLevelTrait(t *testing.T) {
	t.Parallel()

	// A streaming trait sitting on the member itself is not a signal: only
	// the target shape's trait counts, the same decision protocol generators
	// read off the target's resolved symbol. A member-trait-only member keeps
	// derived equality on its container.
	g := streamingGraph(t)
	st := StreamingStage{Graph: g}

	tagged, _ := g.Shape("example.media#Tagged")
	sym := st.TransformSymbol(tagged, New("Tagged", "crate::model"))
	require.False(t, sym.BoolProperty(PropSkipDerivedEq))
}

func TestSensitiveStage(t *testing.T) {
	t.Parallel()

	shape := &model.Shape{
		ID:     "example.auth#Credentials",
		Kind:   model.KindStructure,
		Traits: model.TraitSet{model.TraitSensitive: map[string]any{}},
	}
	sym := SensitiveStage{}.TransformSymbol(shape, New("Credentials", "crate::model"))
	require.True(t, sym.BoolProperty(PropSensitive))

	bare := &model.Shape{ID: "example.auth#Public", Kind: model.KindStructure}
	sym = SensitiveStage{}.TransformSymbol(bare, New("Public", "crate::model"))
	require.False(t, sym.BoolProperty(PropSensitive))
}

func TestReservedStageRenamesAndReports(t *testing.T) {
	t.Parallel()

	list := &diag.ListSink{}
	st := NewReservedStage([]string{"type", "match"}, "_value", diag.Bind(context.Background(), list))

	shape := &model.Shape{ID: "example.test#Thing", Kind: model.KindStructure}
	sym := st.TransformSymbol(shape, New("type", "crate::model"))
	require.Equal(t, "type_value", sym.Name)

	m := &model.Member{Name: "match", Target: "smithy.api#String"}
	require.Equal(t, "match_value", st.TransformMemberName(shape, m, "match"))

	// Safe names pass through silently.
	require.Equal(t, "city", st.TransformMemberName(shape, &model.Member{Name: "city"}, "city"))

	diags := list.Diagnostics()
	require.Len(t, diags, 2)
	require.Equal(t, diag.SeverityInfo, diags[0].Severity)
	require.Equal(t, StageNameReserved, diags[0].Stage)
	require.Equal(t, model.ShapeID("example.test#Thing"), diags[0].Shape)
	require.Equal(t, model.ShapeID("example.test#Thing$match"), diags[1].Shape)
}

func TestReservedStageEscapeIsFixedPoint(t *testing.T) {
	st := NewReservedStage(reservedTestWords(), "_value", nil)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("escaping an escaped identifier is a no-op", prop.ForAll(
		func(name string) bool {
			once := st.Escape(name)
			return st.Escape(once) == once
		},
		gen.Identifier(),
	))
	properties.Property("reserved words always gain the suffix", prop.ForAll(
		func(i int) bool {
			words := reservedTestWords()
			w := words[((i%len(words))+len(words))%len(words)]
			return st.Escape(w) == w+"_value"
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}

// reservedTestWords is a fixed sample of the Rust reserved table used by the
// fixed-point property.
func reservedTestWords() []string {
	return []string{"type", "match", "fn", "impl", "build", "builder", "new", "send"}
}
