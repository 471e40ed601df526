// Package fragment defines the opaque units of emitted source text and the
// (namespace, section)-keyed tree the generator hands to the external
// emission engine. Fragments are tracked for ordered concatenation only; all
// formatting and layout is owned by the consumer.
package fragment

import (
	"slices"
	"strings"
)

type (
	// Fragment is one opaque unit of emitted source text. A zero Fragment
	// means "no contribution" and is dropped on append.
	Fragment struct {
		// Name identifies the contribution for diagnostics and ordering ties.
		Name string
		// Content is the raw source text.
		Content string
	}

	// Section is an ordered list of fragments within a namespace.
	Section struct {
		// Name identifies the section within its namespace.
		Name string

		fragments []Fragment
	}

	// Tree collects the sections of a single namespace in append order.
	Tree struct {
		sections []*Section
		byName   map[string]*Section
	}
)

// Empty reports whether the fragment carries no content.
func (f Fragment) Empty() bool { return f.Content == "" }

// Of builds a named fragment from already-rendered source text.
func Of(name, content string) Fragment { return Fragment{Name: name, Content: content} }

// NewTree returns an empty fragment tree.
func NewTree() *Tree {
	return &Tree{byName: make(map[string]*Section)}
}

// Append adds f to the named section, creating the section on first use.
// Empty fragments are dropped so customizations can contribute
// unconditionally.
func (t *Tree) Append(section string, f Fragment) {
	if f.Empty() {
		return
	}
	s, ok := t.byName[section]
	if !ok {
		s = &Section{Name: section}
		t.byName[section] = s
		t.sections = append(t.sections, s)
	}
	s.fragments = append(s.fragments, f)
}

// Sections returns the tree's sections in first-append order.
func (t *Tree) Sections() []*Section {
	out := make([]*Section, len(t.sections))
	copy(out, t.sections)
	return out
}

// Section returns the named section, or nil when nothing was appended to it.
func (t *Tree) Section(name string) *Section { return t.byName[name] }

// Fragments returns the section's fragments in append order.
func (s *Section) Fragments() []Fragment {
	out := make([]Fragment, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// Render concatenates the section's fragments separated by blank lines.
func (s *Section) Render() string {
	parts := make([]string, 0, len(s.fragments))
	for _, f := range s.fragments {
		parts = append(parts, strings.TrimRight(f.Content, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// Render concatenates every section in append order, each terminated by a
// newline. The result is deterministic for a fixed append sequence.
func (t *Tree) Render() string {
	var b strings.Builder
	for i, s := range t.sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s.Render())
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// SortSections reorders sections by name. Emission normally relies on append
// order; this exists for consumers that want a stable layout independent of
// contribution order.
func (t *Tree) SortSections() {
	slices.SortFunc(t.sections, func(a, b *Section) int { return strings.Compare(a.Name, b.Name) })
}
