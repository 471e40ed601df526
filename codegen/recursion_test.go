package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxidegen/oxidegen/model"
)

func TestRecursiveEdgesSelfLoop(t *testing.T) {
	t.Parallel()

	g, err := model.NewGraph([]*model.Shape{
		{ID: "smithy.api#String", Kind: model.KindPrimitive, Primitive: model.PrimitiveString},
		{
			ID:   "example.tree#Node",
			Kind: model.KindStructure,
			Members: []*model.Member{
				{Name: "label", Target: "smithy.api#String"},
				{Name: "next", Target: "example.tree#Node"},
			},
		},
	})
	require.NoError(t, err)

	boxed := recursiveEdges(g, []model.ShapeID{"example.tree#Node", "smithy.api#String"})
	require.True(t, boxed.has("example.tree#Node", "next"))
	require.False(t, boxed.has("example.tree#Node", "label"))
}

func TestRecursiveEdgesMutualCycle(t *testing.T) {
	t.Parallel()

	g, err := model.NewGraph([]*model.Shape{
		{
			ID:      "example.tree#A",
			Kind:    model.KindStructure,
			Members: []*model.Member{{Name: "b", Target: "example.tree#B"}},
		},
		{
			ID:      "example.tree#B",
			Kind:    model.KindStructure,
			Members: []*model.Member{{Name: "a", Target: "example.tree#A"}},
		},
	})
	require.NoError(t, err)

	boxed := recursiveEdges(g, []model.ShapeID{"example.tree#A", "example.tree#B"})
	require.True(t, boxed.has("example.tree#A", "b"))
	require.True(t, boxed.has("example.tree#B", "a"))
}

func TestRecursiveEdgesAcyclic(t *testing.T) {
	t.Parallel()

	g, err := model.NewGraph([]*model.Shape{
		{ID: "smithy.api#String", Kind: model.KindPrimitive, Primitive: model.PrimitiveString},
		{
			ID:      "example.tree#Leaf",
			Kind:    model.KindStructure,
			Members: []*model.Member{{Name: "label", Target: "smithy.api#String"}},
		},
		{
			ID:      "example.tree#Root",
			Kind:    model.KindStructure,
			Members: []*model.Member{{Name: "leaf", Target: "example.tree#Leaf"}},
		},
	})
	require.NoError(t, err)

	boxed := recursiveEdges(g, []model.ShapeID{"example.tree#Leaf", "example.tree#Root", "smithy.api#String"})
	require.False(t, boxed.has("example.tree#Root", "leaf"))
	require.False(t, boxed.has("example.tree#Leaf", "label"))
}

func TestRecursiveEdgesThroughList(t *testing.T) {
	t.Parallel()

	// Node -> NodeList -> Node closes a cycle through the list shape; both
	// edges of the cycle are boxed.
	g, err := model.NewGraph([]*model.Shape{
		{
			ID:      "example.tree#Node",
			Kind:    model.KindStructure,
			Members: []*model.Member{{Name: "children", Target: "example.tree#NodeList"}},
		},
		{
			ID:      "example.tree#NodeList",
			Kind:    model.KindList,
			Members: []*model.Member{{Name: "member", Target: "example.tree#Node"}},
		},
	})
	require.NoError(t, err)

	boxed := recursiveEdges(g, []model.ShapeID{"example.tree#Node", "example.tree#NodeList"})
	require.True(t, boxed.has("example.tree#Node", "children"))
	require.True(t, boxed.has("example.tree#NodeList", "member"))
}
