// Package protocol defines the pluggable wire-protocol contract: given an
// operation shape, a Generator produces serialization and deserialization
// fragments for exactly one protocol. Generators register against the
// protocol trait that selects them; selection happens once per service before
// traversal begins.
package protocol

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/oxidegen/oxidegen/codegen/fragment"
	"github.com/oxidegen/oxidegen/codegen/symbols"
	"github.com/oxidegen/oxidegen/model"
)

type (
	// Context carries the read-only inputs a generator renders against.
	// Streaming and sensitivity decisions are read from resolved symbol
	// properties, never re-derived from raw traits.
	Context struct {
		// Graph is the immutable shape graph.
		Graph *model.Graph
		// Symbols resolves shapes through the configured chain.
		Symbols symbols.Provider
		// Service is the service shape the operation belongs to.
		Service *model.Shape
	}

	// Generator produces wire-protocol fragments for operations. Both
	// methods are pure functions of (operation shape, resolved symbols).
	Generator interface {
		// Protocol returns the trait id that selects this generator.
		Protocol() model.TraitID
		// SerializerFor renders the request serializer for the operation.
		SerializerFor(ctx Context, op *model.Shape) (fragment.Fragment, error)
		// DeserializerFor renders the response deserializer for the
		// operation.
		DeserializerFor(ctx Context, op *model.Shape) (fragment.Fragment, error)
	}

	// Registry maps protocol traits to generators. Registration is explicit
	// and load-time, mirroring the decorator registry.
	Registry struct {
		mu   sync.Mutex
		gens map[model.TraitID]Generator
	}
)

// NewRegistry returns an empty protocol registry.
func NewRegistry() *Registry {
	return &Registry{gens: make(map[model.TraitID]Generator)}
}

// Register adds a generator; a second generator for the same trait is a
// wiring defect and is rejected.
func (r *Registry) Register(g Generator) error {
	if g == nil || g.Protocol() == "" {
		return fmt.Errorf("protocol generator must declare a protocol trait")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.gens[g.Protocol()]; ok {
		return fmt.Errorf("protocol %q already registered", g.Protocol())
	}
	r.gens[g.Protocol()] = g
	return nil
}

// Select resolves the single generator for the service. The service's
// protocol traits are intersected with the registered generators; override,
// when non-empty, must name one of the service's protocols. No applicable
// protocol, or more than one without an override, is a configuration error
// raised before traversal.
func (r *Registry) Select(service *model.Shape, override model.TraitID) (Generator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	declared := service.ProtocolTraits()
	var applicable []model.TraitID
	for _, t := range declared {
		if _, ok := r.gens[t]; ok {
			applicable = append(applicable, t)
		}
	}

	if override != "" {
		if !slices.Contains(applicable, override) {
			return nil, fmt.Errorf("protocol override %q is not a supported protocol of service %q", override, service.ID)
		}
		return r.gens[override], nil
	}

	switch len(applicable) {
	case 0:
		return nil, fmt.Errorf("service %q declares no supported protocol", service.ID)
	case 1:
		return r.gens[applicable[0]], nil
	default:
		names := make([]string, len(applicable))
		for i, t := range applicable {
			names[i] = string(t)
		}
		return nil, fmt.Errorf("service %q declares multiple protocols (%s) and no override is configured", service.ID, strings.Join(names, ", "))
	}
}

// inputShape returns the operation's input structure, or nil when the
// operation takes no input.
func inputShape(ctx Context, op *model.Shape) *model.Shape {
	if op.Input == "" {
		return nil
	}
	in, ok := ctx.Graph.Shape(op.Input)
	if !ok {
		return nil
	}
	return in
}

// outputShape returns the operation's output structure, or nil.
func outputShape(ctx Context, op *model.Shape) *model.Shape {
	if op.Output == "" {
		return nil
	}
	out, ok := ctx.Graph.Shape(op.Output)
	if !ok {
		return nil
	}
	return out
}

// streamingMember reports whether the member's resolved symbol carries the
// streaming attribute set by the symbol chain.
func streamingMember(ctx Context, m *model.Member) bool {
	target, ok := ctx.Graph.Shape(m.Target)
	if !ok {
		return false
	}
	return ctx.Symbols.ToSymbol(target).BoolProperty(symbols.PropStreaming)
}
