package symbols

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/oxidegen/oxidegen/model"
)

// Cache memoizes symbol resolution per shape id. Because resolution is a pure
// function of (shape, chain configuration), recomputation is idempotent and
// the cache uses first-writer-wins semantics: concurrent resolvers may race,
// every caller observes an equal symbol.
type Cache struct {
	provider Provider

	mu   sync.RWMutex
	syms map[model.ShapeID]*Symbol
}

// NewCache wraps provider with a per-run symbol cache.
func NewCache(provider Provider) *Cache {
	return &Cache{provider: provider, syms: make(map[model.ShapeID]*Symbol)}
}

// ToSymbol returns the cached symbol for the shape, resolving it on first use.
func (c *Cache) ToSymbol(shape *model.Shape) *Symbol {
	c.mu.RLock()
	sym, ok := c.syms[shape.ID]
	c.mu.RUnlock()
	if ok {
		return sym
	}

	resolved := c.provider.ToSymbol(shape)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.syms[shape.ID]; ok {
		return existing
	}
	c.syms[shape.ID] = resolved
	return resolved
}

// MemberName delegates to the wrapped provider; member naming is cheap and
// already deterministic.
func (c *Cache) MemberName(parent *model.Shape, m *model.Member) string {
	return c.provider.MemberName(parent, m)
}

// ResolveAll eagerly resolves every listed shape, populating the cache. Work
// fans out across a bounded worker group; two-phase emission relies on this
// completing before any body is rendered.
func (c *Cache) ResolveAll(ctx context.Context, graph *model.Graph, ids []model.ShapeID) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			shape, ok := graph.Shape(id)
			if !ok {
				return fmt.Errorf("resolve %q: shape not in graph", id)
			}
			c.ToSymbol(shape)
			return nil
		})
	}
	return g.Wait()
}

// Resolved returns the cached symbol for id, when already resolved.
func (c *Cache) Resolved(id model.ShapeID) (*Symbol, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sym, ok := c.syms[id]
	return sym, ok
}
