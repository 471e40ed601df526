package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func stringShape() *Shape {
	return &Shape{ID: "smithy.api#String", Kind: KindPrimitive, Primitive: PrimitiveString}
}

func TestNewGraphRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := NewGraph([]*Shape{stringShape(), stringShape()})
	require.ErrorContains(t, err, "duplicate shape id")
}

func TestNewGraphRejectsDanglingReferences(t *testing.T) {
	t.Parallel()

	s := &Shape{
		ID:      "example.weather#Forecast",
		Kind:    KindStructure,
		Members: []*Member{{Name: "city", Target: "example.weather#Missing"}},
	}
	_, err := NewGraph([]*Shape{s})
	require.ErrorContains(t, err, "unknown shape")
}

func TestClosureWalksCycles(t *testing.T) {
	t.Parallel()

	// Node references itself; the closure must terminate and include every
	// reachable shape exactly once, sorted.
	shapes := []*Shape{
		stringShape(),
		{
			ID:   "example.tree#Node",
			Kind: KindStructure,
			Members: []*Member{
				{Name: "label", Target: "smithy.api#String"},
				{Name: "next", Target: "example.tree#Node"},
			},
		},
		{
			ID:     "example.tree#GetNode",
			Kind:   KindOperation,
			Output: "example.tree#Node",
		},
		{
			ID:         "example.tree#Tree",
			Kind:       KindService,
			Version:    "2024-01-01",
			Operations: []ShapeID{"example.tree#GetNode"},
		},
	}
	g, err := NewGraph(shapes)
	require.NoError(t, err)

	closure, err := g.Closure("example.tree#Tree")
	require.NoError(t, err)
	require.Equal(t, []ShapeID{
		"example.tree#GetNode",
		"example.tree#Node",
		"example.tree#Tree",
		"smithy.api#String",
	}, closure)
}

func TestClosureRejectsNonService(t *testing.T) {
	t.Parallel()

	g, err := NewGraph([]*Shape{stringShape()})
	require.NoError(t, err)

	_, err = g.Closure("smithy.api#String")
	require.ErrorContains(t, err, "not a service")

	_, err = g.Closure("example.weather#Nope")
	require.ErrorContains(t, err, "not found")
}

func TestShapesSortedByID(t *testing.T) {
	t.Parallel()

	g, err := NewGraph([]*Shape{
		{ID: "b.ns#Two", Kind: KindStructure},
		{ID: "a.ns#One", Kind: KindStructure},
	})
	require.NoError(t, err)

	shapes := g.Shapes()
	require.Len(t, shapes, 2)
	require.Equal(t, ShapeID("a.ns#One"), shapes[0].ID)
	require.Equal(t, ShapeID("b.ns#Two"), shapes[1].ID)
}
