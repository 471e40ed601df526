// Package model holds the in-memory interface-definition model consumed by the
// generator: shapes, traits, the immutable shape graph, and a loader for the
// Smithy 2.0 JSON AST.
//
// The graph is loaded once and never mutated afterwards; everything downstream
// (symbol resolution, decoration, emission) treats it as read-only shared state.
package model
