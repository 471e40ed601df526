package codegen

import (
	"github.com/oxidegen/oxidegen/model"
)

// edgeSet records the member edges that participate in a reference cycle and
// therefore must be boxed in the emitted code.
type edgeSet map[model.ShapeID]map[string]bool

func (e edgeSet) add(parent model.ShapeID, member string) {
	m, ok := e[parent]
	if !ok {
		m = make(map[string]bool)
		e[parent] = m
	}
	m[member] = true
}

func (e edgeSet) has(parent model.ShapeID, member string) bool {
	return e[parent][member]
}

// recursiveEdges computes, once per closure, the member edges closing a
// reference cycle among aggregate shapes. Strongly connected components are
// found with Tarjan's algorithm over member-target edges; an edge is boxed
// when both endpoints share a cyclic component. The result depends only on
// the graph, keeping emission deterministic.
func recursiveEdges(graph *model.Graph, closure []model.ShapeID) edgeSet {
	inClosure := make(map[model.ShapeID]bool, len(closure))
	for _, id := range closure {
		inClosure[id] = true
	}

	targets := func(id model.ShapeID) []*model.Member {
		s, ok := graph.Shape(id)
		if !ok {
			return nil
		}
		switch s.Kind {
		case model.KindStructure, model.KindUnion, model.KindList, model.KindMap:
			return s.Members
		default:
			return nil
		}
	}

	var (
		index   = make(map[model.ShapeID]int)
		lowlink = make(map[model.ShapeID]int)
		onStack = make(map[model.ShapeID]bool)
		stack   []model.ShapeID
		next    int
		comp    = make(map[model.ShapeID]int)
		size    = make(map[int]int)
		nComp   int
	)

	var strongconnect func(id model.ShapeID)
	strongconnect = func(id model.ShapeID) {
		index[id] = next
		lowlink[id] = next
		next++
		stack = append(stack, id)
		onStack[id] = true

		for _, m := range targets(id) {
			t := m.Target
			if !inClosure[t] {
				continue
			}
			if _, seen := index[t]; !seen {
				strongconnect(t)
				if lowlink[t] < lowlink[id] {
					lowlink[id] = lowlink[t]
				}
			} else if onStack[t] && index[t] < lowlink[id] {
				lowlink[id] = index[t]
			}
		}

		if lowlink[id] == index[id] {
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[top] = false
				comp[top] = nComp
				size[nComp]++
				if top == id {
					break
				}
			}
			nComp++
		}
	}

	for _, id := range closure {
		if _, seen := index[id]; !seen {
			strongconnect(id)
		}
	}

	boxed := make(edgeSet)
	for _, id := range closure {
		for _, m := range targets(id) {
			if !inClosure[m.Target] {
				continue
			}
			sameComp := comp[id] == comp[m.Target]
			cyclic := size[comp[id]] > 1 || id == m.Target
			if sameComp && cyclic {
				boxed.add(id, m.Name)
			}
		}
	}
	return boxed
}
