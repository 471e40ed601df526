package decor

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/oxidegen/oxidegen/codegen/fragment"
)

type (
	// Registry is the explicit load-time decorator registry: a fixed built-in
	// baseline plus registrations keyed by declared decorator names. There is
	// no reflective discovery; plugins register from init or main wiring.
	Registry struct {
		mu       sync.Mutex
		builtin  []Decorator
		external []Decorator
		names    map[string]bool
	}

	// Combined is N decorators merged into one, ordered ascending by
	// priority with ties broken lexically by name so output stays
	// reproducible regardless of registration order.
	Combined struct {
		decorators []Decorator
	}
)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]bool)}
}

// RegisterBuiltin adds a baseline decorator that every run receives.
func (r *Registry) RegisterBuiltin(d Decorator) error { return r.add(d, true) }

// Register adds an externally authored decorator, selectable by name at run
// start.
func (r *Registry) Register(d Decorator) error { return r.add(d, false) }

func (r *Registry) add(d Decorator, builtin bool) error {
	if d == nil || d.Name() == "" {
		return fmt.Errorf("decorator must have a name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.names[d.Name()] {
		return fmt.Errorf("duplicate decorator name %q", d.Name())
	}
	r.names[d.Name()] = true
	if builtin {
		r.builtin = append(r.builtin, d)
	} else {
		r.external = append(r.external, d)
	}
	return nil
}

// Discover returns the run's decorator set: the built-in baseline plus the
// named external decorators. A nil enabled list selects every external
// decorator; naming an unregistered decorator fails fast. The result is
// sorted lexically by name; priority ordering is applied by Combine.
func (r *Registry) Discover(enabled []string) ([]Decorator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := slices.Clone(r.builtin)
	if enabled == nil {
		out = append(out, r.external...)
	} else {
		byName := make(map[string]Decorator, len(r.external))
		for _, d := range r.external {
			byName[d.Name()] = d
		}
		for _, name := range enabled {
			d, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("decorator %q is not registered", name)
			}
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b Decorator) int { return strings.Compare(a.Name(), b.Name()) })
	return out, nil
}

// Combine merges the decorators into one, ordered by (priority, name).
func Combine(decorators []Decorator) *Combined {
	ordered := slices.Clone(decorators)
	slices.SortStableFunc(ordered, func(a, b Decorator) int {
		if a.Priority() != b.Priority() {
			return int(a.Priority()) - int(b.Priority())
		}
		return strings.Compare(a.Name(), b.Name())
	})
	return &Combined{decorators: ordered}
}

// Decorators returns the merged decorators in query order.
func (c *Combined) Decorators() []Decorator {
	return slices.Clone(c.decorators)
}

// Customizations folds every decorator over base in merge order, verifying
// the additive contract: each decorator must return its input with items
// appended, never removed or reordered.
func (c *Combined) Customizations(category Category, base []Customization) ([]Customization, error) {
	out := base
	for _, d := range c.decorators {
		next := d.Customizations(category, out)
		if err := verifyAdditive(out, next); err != nil {
			return nil, fmt.Errorf("decorator %q violated the additive contract for category %q: %w", d.Name(), category, err)
		}
		out = next
	}
	return out, nil
}

// Fragments renders every applicable customization of the category against
// the section, in merge order, dropping empty contributions.
func (c *Combined) Fragments(ctx *Context, category Category, section Section) ([]fragment.Fragment, error) {
	customs, err := c.Customizations(category, nil)
	if err != nil {
		return nil, err
	}
	var out []fragment.Fragment
	for _, custom := range customs {
		if !AppliesTo(custom, section.Kind) {
			continue
		}
		if f := custom.Render(ctx, section); !f.Empty() {
			out = append(out, f)
		}
	}
	return out, nil
}

func verifyAdditive(base, next []Customization) error {
	if len(next) < len(base) {
		return fmt.Errorf("%d contributions removed", len(base)-len(next))
	}
	for i := range base {
		if next[i] != base[i] {
			return fmt.Errorf("contribution %q was displaced", base[i].Name())
		}
	}
	return nil
}
