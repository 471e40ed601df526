// Package rust is the Rust target binding of the symbol pipeline: naming
// conventions, the reserved-identifier table, and the base symbol resolver
// the stage chain folds over.
package rust

import (
	"strings"

	"goa.design/goa/v3/codegen"
)

// FieldName renders a model member name as a snake_case Rust field or
// function identifier.
func FieldName(name string) string {
	return sanitize(codegen.SnakeCase(name), "field")
}

// ModName renders a shape name as a snake_case Rust module path segment.
func ModName(name string) string {
	return sanitize(codegen.SnakeCase(name), "mod")
}

// TypeName renders a shape name as a PascalCase Rust item identifier.
func TypeName(name string) string {
	parts := strings.FieldsFunc(sanitize(codegen.SnakeCase(name), "type"), func(r rune) bool {
		return r == '_'
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	if b.Len() == 0 {
		return "Type"
	}
	return b.String()
}

// VariantName renders a union or enum member name as a PascalCase variant.
func VariantName(name string) string { return TypeName(name) }

// sanitize restricts s to [a-z0-9_], collapses repeats, and falls back when
// nothing survives.
func sanitize(s, fallback string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	if s == "" {
		return fallback
	}
	// identifiers cannot start with a digit
	if s[0] >= '0' && s[0] <= '9' {
		s = "n" + s
	}
	return s
}
