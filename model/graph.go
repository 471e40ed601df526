package model

import (
	"fmt"
	"slices"
	"strings"
)

// Graph is the validated, immutable shape graph handed to a generation run.
// It is safe for concurrent readers.
type Graph struct {
	shapes map[ShapeID]*Shape
	ids    []ShapeID
}

// NewGraph builds a graph from the given shapes. Duplicate ids are rejected;
// dangling member or operation targets are rejected so downstream resolution
// never observes an absent shape.
func NewGraph(shapes []*Shape) (*Graph, error) {
	g := &Graph{shapes: make(map[ShapeID]*Shape, len(shapes))}
	for _, s := range shapes {
		if s == nil {
			continue
		}
		if _, ok := g.shapes[s.ID]; ok {
			return nil, fmt.Errorf("duplicate shape id %q", s.ID)
		}
		g.shapes[s.ID] = s
		g.ids = append(g.ids, s.ID)
	}
	slices.SortFunc(g.ids, func(a, b ShapeID) int { return strings.Compare(string(a), string(b)) })
	for _, s := range g.shapes {
		for _, ref := range s.neighbors() {
			if _, ok := g.shapes[ref]; !ok {
				return nil, fmt.Errorf("shape %q references unknown shape %q", s.ID, ref)
			}
		}
	}
	return g, nil
}

// Shapes returns every shape sorted by id.
func (g *Graph) Shapes() []*Shape {
	out := make([]*Shape, 0, len(g.ids))
	for _, id := range g.ids {
		out = append(out, g.shapes[id])
	}
	return out
}

// Shape returns the shape with the given id, when present.
func (g *Graph) Shape(id ShapeID) (*Shape, bool) {
	s, ok := g.shapes[id]
	return s, ok
}

// Closure returns the ids of every shape reachable from the service's
// operations (inputs, outputs, errors, and transitively through members),
// including the service and operation shapes themselves. The walk tolerates
// cycles and the result is sorted so traversal order is deterministic.
func (g *Graph) Closure(serviceID ShapeID) ([]ShapeID, error) {
	svc, ok := g.shapes[serviceID]
	if !ok {
		return nil, fmt.Errorf("service shape %q not found", serviceID)
	}
	if svc.Kind != KindService {
		return nil, fmt.Errorf("shape %q is a %s, not a service", serviceID, svc.Kind)
	}
	seen := make(map[ShapeID]bool)
	stack := []ShapeID{serviceID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		s, ok := g.shapes[id]
		if !ok {
			// NewGraph guarantees reachable ids resolve; defend anyway.
			return nil, fmt.Errorf("closure of %q reached unknown shape %q", serviceID, id)
		}
		stack = append(stack, s.neighbors()...)
	}
	out := make([]ShapeID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b ShapeID) int { return strings.Compare(string(a), string(b)) })
	return out, nil
}

// neighbors returns every shape id directly referenced by s.
func (s *Shape) neighbors() []ShapeID {
	var out []ShapeID
	for _, m := range s.Members {
		out = append(out, m.Target)
	}
	if s.Input != "" {
		out = append(out, s.Input)
	}
	if s.Output != "" {
		out = append(out, s.Output)
	}
	out = append(out, s.Errors...)
	out = append(out, s.Operations...)
	out = append(out, s.Resources...)
	return out
}
