package symbols

import (
	"github.com/oxidegen/oxidegen/model"
)

type (
	// Provider resolves shapes to symbols and members to safe target
	// identifiers. Implementations are total, deterministic functions: every
	// well-formed shape resolves, shapes with no direct target representation
	// resolve to a stand-in flagged PropNeedsCustomHandling.
	Provider interface {
		// ToSymbol maps a shape to its target symbol.
		ToSymbol(shape *model.Shape) *Symbol
		// MemberName maps a member to its rendered target identifier.
		MemberName(parent *model.Shape, m *model.Member) string
	}

	// Stage is one transform of the resolution chain. A stage receives the
	// symbol produced so far and must return it unchanged when the
	// shape/trait combination does not concern it; there is no implicit
	// fallthrough to override.
	Stage interface {
		// Name identifies the stage in diagnostics.
		Name() string
		// TransformSymbol refines the symbol resolved for shape.
		TransformSymbol(shape *model.Shape, sym *Symbol) *Symbol
		// TransformMemberName refines the rendered name for a member.
		TransformMemberName(parent *model.Shape, m *model.Member, name string) string
	}

	// Chain folds an ordered stage list over a base resolver. Stage order is
	// load-bearing: semantic stages (streaming, sensitivity) run before the
	// syntactic reserved-word stage, which must be last so it sees final
	// semantic decisions only as names.
	Chain struct {
		base   Provider
		stages []Stage
	}

	// PassthroughStage provides no-op transforms for embedding in stages that
	// only refine one of the two directions.
	PassthroughStage struct{}
)

// NewChain builds a chain over base. Stages apply in the given order; the
// last stage is outermost.
func NewChain(base Provider, stages ...Stage) *Chain {
	return &Chain{base: base, stages: stages}
}

// ToSymbol resolves the base symbol and folds every stage over it in order.
func (c *Chain) ToSymbol(shape *model.Shape) *Symbol {
	sym := c.base.ToSymbol(shape)
	for _, st := range c.stages {
		sym = st.TransformSymbol(shape, sym)
	}
	return sym
}

// MemberName resolves the base member name and folds every stage over it.
func (c *Chain) MemberName(parent *model.Shape, m *model.Member) string {
	name := c.base.MemberName(parent, m)
	for _, st := range c.stages {
		name = st.TransformMemberName(parent, m, name)
	}
	return name
}

// Stages returns the chain's stages in application order.
func (c *Chain) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// TransformSymbol returns sym unchanged.
func (PassthroughStage) TransformSymbol(_ *model.Shape, sym *Symbol) *Symbol { return sym }

// TransformMemberName returns name unchanged.
func (PassthroughStage) TransformMemberName(_ *model.Shape, _ *model.Member, name string) string {
	return name
}
