// Package decor composes independently authored customization bundles into a
// single ordered decorator. Discovery is an explicit load-time registry (no
// reflection); merging is strictly additive so decorator authors need no
// knowledge of each other.
package decor

import (
	"github.com/oxidegen/oxidegen/codegen/fragment"
	"github.com/oxidegen/oxidegen/codegen/symbols"
	"github.com/oxidegen/oxidegen/diag"
	"github.com/oxidegen/oxidegen/model"
)

type (
	// Category groups customizations by contribution area. A decorator is
	// queried once per category during emission.
	Category string

	// SectionKind tags a point of the emitted output that customizations can
	// contribute to.
	SectionKind string

	// Section is the tagged section value passed to Render: the kind plus
	// the subject shape when the section is shape-scoped.
	Section struct {
		// Kind identifies the extension point.
		Kind SectionKind
		// Shape is the subject (service, operation, or type shape) for
		// shape-scoped sections, nil otherwise.
		Shape *model.Shape
	}

	// Context is the read-only generation context customizations render
	// against: the graph, the resolved symbol provider, the service being
	// generated, and the diagnostics reporter.
	Context struct {
		// Graph is the immutable shape graph.
		Graph *model.Graph
		// Symbols resolves shapes through the configured chain (cached).
		Symbols symbols.Provider
		// Service is the service shape of the run.
		Service *model.Shape
		// Crate is the configured target module root name.
		Crate string
		// Report receives non-fatal diagnostics.
		Report *diag.Bound
	}

	// Customization is a pure function of the generation context: it declares
	// the sections it applies to and renders a fragment for one of them,
	// returning a zero fragment rather than failing when not applicable.
	Customization interface {
		// Name identifies the contribution in fragments and diagnostics.
		Name() string
		// Sections lists the section kinds the customization applies to.
		Sections() []SectionKind
		// Render produces the contribution for the section, or a zero
		// fragment when the section does not apply.
		Render(ctx *Context, section Section) fragment.Fragment
	}

	// Decorator is a named, priority-ordered bundle of customizations.
	// Customizations must return base with items appended — never removed or
	// reordered; Combined enforces that contract.
	Decorator interface {
		// Name is the unique decorator name.
		Name() string
		// Priority orders decorators; lower runs first, ties break lexically
		// by name.
		Priority() int8
		// Customizations extends base with the decorator's contributions for
		// the category.
		Customizations(category Category, base []Customization) []Customization
	}

	// Bundle is a map-backed Decorator for the common case of a static set of
	// customizations per category.
	Bundle struct {
		// BundleName is the decorator name.
		BundleName string
		// BundlePriority is the decorator priority.
		BundlePriority int8
		// ByCategory holds the contributed customizations per category, in
		// contribution order.
		ByCategory map[Category][]Customization
	}

	// Func adapts a render function into a Customization. Use it by pointer:
	// contributions are tracked by identity when the additive contract is
	// verified.
	Func struct {
		// FuncName identifies the customization.
		FuncName string
		// Applies lists the section kinds the function handles.
		Applies []SectionKind
		// RenderFunc produces the fragment.
		RenderFunc func(ctx *Context, section Section) fragment.Fragment
	}
)

const (
	CategoryConfig    Category = "config"
	CategoryModel     Category = "model"
	CategoryOperation Category = "operation"
	CategoryService   Category = "service"
)

const (
	// SectionConfigFields contributes fields to the generated client config
	// struct.
	SectionConfigFields SectionKind = "config-fields"
	// SectionConfigDefaults contributes default-value expressions to the
	// config builder.
	SectionConfigDefaults SectionKind = "config-defaults"
	// SectionShapeAttributes contributes attribute lines above a generated
	// type item.
	SectionShapeAttributes SectionKind = "shape-attributes"
	// SectionShapeBody supplies the body of a shape the base generator has no
	// representation for.
	SectionShapeBody SectionKind = "shape-body"
	// SectionOperationExtras contributes items to an operation module.
	SectionOperationExtras SectionKind = "operation-extras"
	// SectionServiceExtras contributes items to the client (or server) root
	// module.
	SectionServiceExtras SectionKind = "service-extras"
)

// Name implements Decorator.
func (b *Bundle) Name() string { return b.BundleName }

// Priority implements Decorator.
func (b *Bundle) Priority() int8 { return b.BundlePriority }

// Customizations implements Decorator by appending the bundle's entries for
// the category to base.
func (b *Bundle) Customizations(category Category, base []Customization) []Customization {
	return append(base, b.ByCategory[category]...)
}

// Name implements Customization.
func (f *Func) Name() string { return f.FuncName }

// Sections implements Customization.
func (f *Func) Sections() []SectionKind { return f.Applies }

// Render implements Customization.
func (f *Func) Render(ctx *Context, section Section) fragment.Fragment {
	return f.RenderFunc(ctx, section)
}

// AppliesTo reports whether the customization declares the section kind.
func AppliesTo(c Customization, kind SectionKind) bool {
	for _, k := range c.Sections() {
		if k == kind {
			return true
		}
	}
	return false
}
