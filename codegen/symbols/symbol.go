// Package symbols maps shapes of the model graph to target-language symbols.
//
// Resolution is a pure function of (shape, chain configuration): a Chain folds
// an explicit ordered list of transform stages over a base resolver, and a
// Cache memoizes the result per shape id. Stages that do not recognize a
// shape/trait combination pass their input through unchanged.
package symbols

import (
	"reflect"
	"slices"
	"strings"
)

// Symbol is the target-language representation produced for a shape: a
// rendered identifier, its namespace, a string-keyed property bag carrying
// semantic decisions for later stages, and the symbols it references (used for
// import generation). Symbols are produced fresh per resolution call and are
// never shared mutable state.
type Symbol struct {
	// Name is the rendered target identifier.
	Name string
	// Namespace is the target module path ("crate::model"); empty for
	// built-in types that need no import.
	Namespace string

	properties map[string]any
	references []*Symbol
}

// Property keys set by the built-in stages and consumed downstream.
const (
	// PropNeedsCustomHandling marks a stand-in symbol for a shape with no
	// direct target representation. Emission fails unless a customization
	// supplies the body.
	PropNeedsCustomHandling = "needs_custom_handling"
	// PropBuiltin marks target built-in types that require no import.
	PropBuiltin = "builtin"
	// PropStreaming marks symbols whose member carries a streaming payload.
	PropStreaming = "streaming"
	// PropSkipDerivedEq suppresses derived structural equality on containers
	// of streaming members.
	PropSkipDerivedEq = "skip_derived_eq"
	// PropSensitive marks symbols whose debug rendering must be redacted.
	PropSensitive = "sensitive"
	// PropAttributes accumulates target attribute lines ([]string) emitted
	// above the item declaration.
	PropAttributes = "attributes"
	// PropError marks symbols generated into the error namespace.
	PropError = "error"
)

// New returns a symbol with the given rendered name and namespace.
func New(name, namespace string) *Symbol {
	return &Symbol{Name: name, Namespace: namespace}
}

// FullName returns the namespace-qualified identifier.
func (s *Symbol) FullName() string {
	if s.Namespace == "" {
		return s.Name
	}
	return s.Namespace + "::" + s.Name
}

// SetProperty records a property value and returns the symbol for chaining.
func (s *Symbol) SetProperty(key string, value any) *Symbol {
	if s.properties == nil {
		s.properties = make(map[string]any)
	}
	s.properties[key] = value
	return s
}

// Property returns the property value and whether it is set.
func (s *Symbol) Property(key string) (any, bool) {
	v, ok := s.properties[key]
	return v, ok
}

// BoolProperty returns the property as a bool, false when unset.
func (s *Symbol) BoolProperty(key string) bool {
	v, ok := s.properties[key]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// AppendAttribute adds a target attribute line to PropAttributes, skipping
// duplicates so re-applying a stage stays idempotent.
func (s *Symbol) AppendAttribute(attr string) *Symbol {
	attrs := s.Attributes()
	if slices.Contains(attrs, attr) {
		return s
	}
	return s.SetProperty(PropAttributes, append(attrs, attr))
}

// Attributes returns the accumulated attribute lines.
func (s *Symbol) Attributes() []string {
	v, ok := s.properties[PropAttributes]
	if !ok {
		return nil
	}
	attrs, _ := v.([]string)
	return attrs
}

// AddReference records a referenced symbol used for import generation.
func (s *Symbol) AddReference(ref *Symbol) *Symbol {
	if ref != nil {
		s.references = append(s.references, ref)
	}
	return s
}

// References returns the referenced symbols in registration order.
func (s *Symbol) References() []*Symbol {
	out := make([]*Symbol, len(s.references))
	copy(out, s.references)
	return out
}

// Equal reports deep structural equality, the relation cached resolution is
// idempotent under.
func (s *Symbol) Equal(o *Symbol) bool {
	if s == nil || o == nil {
		return s == o
	}
	return reflect.DeepEqual(s, o)
}

// CompareFullName orders symbols by qualified name; used wherever symbol
// collections must iterate deterministically.
func CompareFullName(a, b *Symbol) int {
	return strings.Compare(a.FullName(), b.FullName())
}
