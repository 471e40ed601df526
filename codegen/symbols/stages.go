package symbols

import (
	"context"
	"fmt"

	"github.com/oxidegen/oxidegen/diag"
	"github.com/oxidegen/oxidegen/model"
)

type (
	// StreamingStage projects streaming traits into symbol attributes so
	// later stages and protocol generators never consult raw traits. Shapes
	// carrying the streaming trait are marked PropStreaming; aggregates with
	// a streaming member lose derived structural equality.
	StreamingStage struct {
		PassthroughStage

		// Graph is consulted to follow member targets.
		Graph *model.Graph
	}

	// SensitiveStage marks sensitive shapes so emission redacts their debug
	// rendering.
	SensitiveStage struct {
		PassthroughStage
	}

	// ReservedStage renames identifiers colliding with target-language
	// reserved words or generated built-in method names by appending Suffix.
	// Renaming is purely syntactic, deterministic, and idempotent: a renamed
	// identifier never collides again, so re-applying the stage is a no-op.
	// Collisions are reported as diagnostics, never as failures. It must be
	// the last stage of the chain.
	ReservedStage struct {
		words  map[string]bool
		suffix string
		report *diag.Bound
	}
)

// StageNameStreaming, StageNameSensitive and StageNameReserved identify the
// built-in stages in diagnostics.
const (
	StageNameStreaming = "streaming"
	StageNameSensitive = "sensitive"
	StageNameReserved  = "reserved-words"
)

// Name implements Stage.
func (StreamingStage) Name() string { return StageNameStreaming }

// TransformSymbol marks streaming shapes and aggregates containing them.
func (st StreamingStage) TransformSymbol(shape *model.Shape, sym *Symbol) *Symbol {
	if shape.Traits.Has(model.TraitStreaming) {
		sym.SetProperty(PropStreaming, true)
		sym.SetProperty(PropSkipDerivedEq, true)
	}
	if shape.Kind != model.KindStructure && shape.Kind != model.KindUnion {
		return sym
	}
	for _, m := range shape.Members {
		if st.memberStreams(m) {
			sym.SetProperty(PropSkipDerivedEq, true)
			return sym
		}
	}
	return sym
}

// memberStreams reports whether the member's target shape streams. The target
// shape's trait is the only streaming signal; protocol generators read the
// same decision off the target's resolved symbol.
func (st StreamingStage) memberStreams(m *model.Member) bool {
	if st.Graph == nil {
		return false
	}
	target, ok := st.Graph.Shape(m.Target)
	return ok && target.Traits.Has(model.TraitStreaming)
}

// Name implements Stage.
func (SensitiveStage) Name() string { return StageNameSensitive }

// TransformSymbol marks sensitive shapes for redacted debug output.
func (SensitiveStage) TransformSymbol(shape *model.Shape, sym *Symbol) *Symbol {
	if shape.Traits.Has(model.TraitSensitive) {
		sym.SetProperty(PropSensitive, true)
	}
	return sym
}

// NewReservedStage builds the rename stage for the given reserved-word set.
// Suffixed forms of reserved words are implicitly safe; the constructor
// guarantees that by construction since "w+suffix" is never in words (callers
// validate the configured list, see codegen.Settings).
func NewReservedStage(words []string, suffix string, report *diag.Bound) *ReservedStage {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	if suffix == "" {
		suffix = "_value"
	}
	if report == nil {
		report = diag.Bind(context.Background(), nil)
	}
	return &ReservedStage{words: set, suffix: suffix, report: report}
}

// Name implements Stage.
func (*ReservedStage) Name() string { return StageNameReserved }

// Escape returns the collision-free form of name: name itself when safe,
// name+suffix otherwise. Escape is a fixed point on its own output.
func (st *ReservedStage) Escape(name string) string {
	if st.words[name] {
		return name + st.suffix
	}
	return name
}

// TransformSymbol renames colliding symbol names.
func (st *ReservedStage) TransformSymbol(shape *model.Shape, sym *Symbol) *Symbol {
	escaped := st.Escape(sym.Name)
	if escaped == sym.Name {
		return sym
	}
	st.report.Report(diag.Diagnostic{
		Severity: diag.SeverityInfo,
		Stage:    StageNameReserved,
		Shape:    shape.ID,
		Message:  fmt.Sprintf("renamed %q to %q: collides with a reserved identifier", sym.Name, escaped),
	})
	sym.Name = escaped
	return sym
}

// TransformMemberName renames colliding member names.
func (st *ReservedStage) TransformMemberName(parent *model.Shape, m *model.Member, name string) string {
	escaped := st.Escape(name)
	if escaped == name {
		return name
	}
	st.report.Report(diag.Diagnostic{
		Severity: diag.SeverityInfo,
		Stage:    StageNameReserved,
		Shape:    parent.ID.WithMember(m.Name),
		Message:  fmt.Sprintf("renamed member %q to %q: collides with a reserved identifier", name, escaped),
	})
	return escaped
}
