package symbols

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/oxidegen/oxidegen/model"
)

// countingProvider counts resolutions so caching is observable.
type countingProvider struct {
	calls atomic.Int64
}

func (p *countingProvider) ToSymbol(shape *model.Shape) *Symbol {
	p.calls.Add(1)
	return New(shape.ID.Name(), "crate::model")
}

func (p *countingProvider) MemberName(_ *model.Shape, m *model.Member) string {
	return m.Name
}

func TestCacheReturnsSameSymbol(t *testing.T) {
	t.Parallel()

	p := &countingProvider{}
	c := NewCache(p)
	shape := &model.Shape{ID: "example.test#Thing", Kind: model.KindStructure}

	first := c.ToSymbol(shape)
	second := c.ToSymbol(shape)
	require.Same(t, first, second)
	require.Equal(t, int64(1), p.calls.Load())

	got, ok := c.Resolved("example.test#Thing")
	require.True(t, ok)
	require.Same(t, first, got)

	_, ok = c.Resolved("example.test#Other")
	require.False(t, ok)
}

func TestCacheConcurrentResolutionObservesOneSymbol(t *testing.T) {
	t.Parallel()

	c := NewCache(&countingProvider{})
	shape := &model.Shape{ID: "example.test#Thing", Kind: model.KindStructure}

	const n = 32
	results := make([]*Symbol, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.ToSymbol(shape)
		}()
	}
	wg.Wait()

	// First writer wins; every caller sees the same stored symbol value.
	for _, sym := range results {
		require.True(t, results[0].Equal(sym))
	}
}

func TestResolveAllPopulatesCache(t *testing.T) {
	t.Parallel()

	g, err := model.NewGraph([]*model.Shape{
		{ID: "a.ns#One", Kind: model.KindStructure},
		{ID: "a.ns#Two", Kind: model.KindStructure},
		{ID: "a.ns#Three", Kind: model.KindStructure},
	})
	require.NoError(t, err)

	p := &countingProvider{}
	c := NewCache(p)
	ids := []model.ShapeID{"a.ns#One", "a.ns#Two", "a.ns#Three"}
	require.NoError(t, c.ResolveAll(context.Background(), g, ids))

	for _, id := range ids {
		_, ok := c.Resolved(id)
		require.True(t, ok, "shape %s not resolved", id)
	}
	require.Equal(t, int64(3), p.calls.Load())
}

func TestResolveAllUnknownShape(t *testing.T) {
	t.Parallel()

	g, err := model.NewGraph(nil)
	require.NoError(t, err)

	c := NewCache(&countingProvider{})
	err = c.ResolveAll(context.Background(), g, []model.ShapeID{"a.ns#Missing"})
	require.ErrorContains(t, err, "not in graph")
}

func TestCacheResolutionIsIdempotentProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("re-resolving any shape yields an equal symbol", prop.ForAll(
		func(name string) bool {
			c := NewCache(&countingProvider{})
			shape := &model.Shape{ID: model.ShapeID("example.test#" + name), Kind: model.KindStructure}
			return c.ToSymbol(shape).Equal(c.ToSymbol(shape))
		},
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
