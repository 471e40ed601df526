package model

import (
	"fmt"
	"strings"
)

type (
	// ShapeID uniquely identifies a shape as "namespace#Name", or a member of a
	// shape as "namespace#Name$member".
	ShapeID string

	// Kind classifies a shape node.
	Kind string

	// Primitive identifies the concrete simple type of a KindPrimitive shape.
	Primitive string

	// TraitID identifies a trait applied to a shape or member.
	TraitID string

	// TraitSet is the orderless trait-id to trait-value mapping carried by
	// shapes and members. Values are the decoded JSON node of the trait
	// (bool, string, float64, map, slice).
	TraitSet map[TraitID]any

	// Member is an ordered, named reference from a container shape to a target
	// shape. Lists expose a single "member"; maps expose "key" and "value";
	// structures, unions and enums expose their declared members in
	// declaration order.
	Member struct {
		// Name is the member name as declared in the model.
		Name string
		// Target is the id of the shape the member points at.
		Target ShapeID
		// Traits holds the member-level traits.
		Traits TraitSet
	}

	// Shape is one immutable node of the shape graph.
	Shape struct {
		// ID is the unique shape id.
		ID ShapeID
		// Kind classifies the node.
		Kind Kind
		// Primitive is set when Kind is KindPrimitive.
		Primitive Primitive
		// Members lists the shape's members in declaration order.
		Members []*Member
		// Traits holds the shape-level traits.
		Traits TraitSet

		// Input, Output and Errors are set for operation shapes.
		Input  ShapeID
		Output ShapeID
		Errors []ShapeID

		// Version and Operations are set for service shapes.
		Version    string
		Operations []ShapeID
		// Resources lists resource bindings of a service or resource shape.
		Resources []ShapeID
	}
)

const (
	KindPrimitive Kind = "primitive"
	KindList      Kind = "list"
	KindMap       Kind = "map"
	KindStructure Kind = "structure"
	KindUnion     Kind = "union"
	KindEnum      Kind = "enum"
	KindService   Kind = "service"
	KindOperation Kind = "operation"
	KindResource  Kind = "resource"
)

const (
	PrimitiveBlob       Primitive = "blob"
	PrimitiveBoolean    Primitive = "boolean"
	PrimitiveString     Primitive = "string"
	PrimitiveByte       Primitive = "byte"
	PrimitiveShort      Primitive = "short"
	PrimitiveInteger    Primitive = "integer"
	PrimitiveLong       Primitive = "long"
	PrimitiveFloat      Primitive = "float"
	PrimitiveDouble     Primitive = "double"
	PrimitiveBigInteger Primitive = "bigInteger"
	PrimitiveBigDecimal Primitive = "bigDecimal"
	PrimitiveTimestamp  Primitive = "timestamp"
	PrimitiveDocument   Primitive = "document"
)

// Well-known traits consumed by the generator core.
const (
	TraitDocumentation TraitID = "smithy.api#documentation"
	TraitRequired      TraitID = "smithy.api#required"
	TraitStreaming     TraitID = "smithy.api#streaming"
	TraitSensitive     TraitID = "smithy.api#sensitive"
	TraitDeprecated    TraitID = "smithy.api#deprecated"
	TraitError         TraitID = "smithy.api#error"
	TraitEnumValue     TraitID = "smithy.api#enumValue"
	TraitHTTP          TraitID = "smithy.api#http"

	TraitAWSJSON1  TraitID = "aws.protocols#awsJson1_0"
	TraitRestJSON1 TraitID = "aws.protocols#restJson1"
)

// ParseShapeID validates and returns id. Valid ids contain exactly one '#'
// separating a non-empty namespace from a non-empty name, optionally followed
// by "$member".
func ParseShapeID(s string) (ShapeID, error) {
	id := ShapeID(s)
	ns, rest, ok := strings.Cut(s, "#")
	if !ok || ns == "" || rest == "" {
		return "", fmt.Errorf("invalid shape id %q: want namespace#Name", s)
	}
	if name, member, ok := strings.Cut(rest, "$"); ok && (name == "" || member == "") {
		return "", fmt.Errorf("invalid shape id %q: empty name or member", s)
	}
	return id, nil
}

// Namespace returns the namespace portion of the id.
func (id ShapeID) Namespace() string {
	ns, _, _ := strings.Cut(string(id), "#")
	return ns
}

// Name returns the shape name portion of the id, without any member suffix.
func (id ShapeID) Name() string {
	_, rest, _ := strings.Cut(string(id), "#")
	name, _, _ := strings.Cut(rest, "$")
	return name
}

// MemberName returns the member portion of a member id, or "" for shape ids.
func (id ShapeID) MemberName() string {
	_, rest, _ := strings.Cut(string(id), "#")
	_, member, _ := strings.Cut(rest, "$")
	return member
}

// WithMember returns the member id for the named member of this shape.
func (id ShapeID) WithMember(name string) ShapeID {
	return ShapeID(string(id) + "$" + name)
}

// Has reports whether the trait is present.
func (ts TraitSet) Has(id TraitID) bool {
	_, ok := ts[id]
	return ok
}

// Get returns the trait value and whether it is present.
func (ts TraitSet) Get(id TraitID) (any, bool) {
	v, ok := ts[id]
	return v, ok
}

// IsError reports whether the shape carries the error trait.
func (s *Shape) IsError() bool { return s.Traits.Has(TraitError) }

// Member returns the named member, or nil when absent.
func (s *Shape) Member(name string) *Member {
	for _, m := range s.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ProtocolTraits returns the protocol traits declared on the shape, sorted by
// trait id for deterministic selection.
func (s *Shape) ProtocolTraits() []TraitID {
	var out []TraitID
	for _, id := range []TraitID{TraitAWSJSON1, TraitRestJSON1} {
		if s.Traits.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
