package rust

import (
	"fmt"

	"github.com/oxidegen/oxidegen/codegen/symbols"
	"github.com/oxidegen/oxidegen/model"
)

// Namespaces generated code is organized under. The crate root is configured
// at run start; these are the module paths below it.
const (
	NamespaceModel     = "crate::model"
	NamespaceError     = "crate::error"
	NamespaceOperation = "crate::operation"
	NamespaceClient    = "crate"
	NamespaceConfig    = "crate::config"
	NamespaceServer    = "crate::server"
	// NamespaceRuntime holds types supplied by the external runtime library.
	NamespaceRuntime = "oxide_runtime::types"
)

// SymbolVisitor is the base resolver of the chain: a total, deterministic
// mapping from shapes to Rust symbols. Shapes with no direct Rust
// representation resolve to a stand-in flagged needs-custom-handling instead
// of failing; rejecting them is an emission decision, not a resolution one.
type SymbolVisitor struct {
	// Graph resolves member targets of collection shapes.
	Graph *model.Graph
}

var _ symbols.Provider = SymbolVisitor{}

// ToSymbol implements symbols.Provider.
func (v SymbolVisitor) ToSymbol(shape *model.Shape) *symbols.Symbol {
	return v.resolve(shape, make(map[model.ShapeID]bool))
}

// MemberName implements symbols.Provider. Union and enum members render as
// PascalCase variants, everything else as snake_case fields.
func (v SymbolVisitor) MemberName(parent *model.Shape, m *model.Member) string {
	switch parent.Kind {
	case model.KindUnion, model.KindEnum:
		return VariantName(m.Name)
	default:
		return FieldName(m.Name)
	}
}

// resolve carries the set of in-flight collection ids so malformed
// self-referential collections degrade to a stand-in instead of recursing.
func (v SymbolVisitor) resolve(shape *model.Shape, visiting map[model.ShapeID]bool) *symbols.Symbol {
	switch shape.Kind {
	case model.KindPrimitive:
		return v.primitive(shape)

	case model.KindList:
		visiting[shape.ID] = true
		elem := v.target(shape.Members[0].Target, visiting)
		delete(visiting, shape.ID)
		sym := symbols.New(fmt.Sprintf("Vec<%s>", elem.FullName()), "")
		sym.SetProperty(symbols.PropBuiltin, true)
		sym.AddReference(elem)
		return sym

	case model.KindMap:
		visiting[shape.ID] = true
		key := v.target(shape.Members[0].Target, visiting)
		value := v.target(shape.Members[1].Target, visiting)
		delete(visiting, shape.ID)
		sym := symbols.New(fmt.Sprintf("HashMap<%s, %s>", key.FullName(), value.FullName()), "std::collections")
		sym.AddReference(key)
		sym.AddReference(value)
		return sym

	case model.KindStructure:
		ns := NamespaceModel
		sym := symbols.New(TypeName(shape.ID.Name()), ns)
		if shape.IsError() {
			sym.Namespace = NamespaceError
			sym.SetProperty(symbols.PropError, true)
		}
		return sym

	case model.KindUnion, model.KindEnum:
		return symbols.New(TypeName(shape.ID.Name()), NamespaceModel)

	case model.KindOperation:
		name := TypeName(shape.ID.Name())
		return symbols.New(name, NamespaceOperation+"::"+ModName(shape.ID.Name()))

	case model.KindService:
		return symbols.New("Client", NamespaceClient)

	default:
		// No direct Rust representation (resources, future kinds): a
		// decorator must supply the body or emission rejects the shape.
		sym := symbols.New(TypeName(shape.ID.Name()), NamespaceModel)
		sym.SetProperty(symbols.PropNeedsCustomHandling, true)
		return sym
	}
}

// target resolves a member target id, degrading to an opaque document when
// the shape is absent or part of a malformed collection cycle.
func (v SymbolVisitor) target(id model.ShapeID, visiting map[model.ShapeID]bool) *symbols.Symbol {
	if visiting[id] {
		return standInDocument()
	}
	if v.Graph == nil {
		return standInDocument()
	}
	shape, ok := v.Graph.Shape(id)
	if !ok {
		return standInDocument()
	}
	return v.resolve(shape, visiting)
}

func standInDocument() *symbols.Symbol {
	sym := symbols.New("Document", NamespaceRuntime)
	sym.SetProperty(symbols.PropNeedsCustomHandling, true)
	return sym
}

// primitive maps simple shapes to Rust std or runtime-library types.
func (v SymbolVisitor) primitive(shape *model.Shape) *symbols.Symbol {
	builtin := func(name string) *symbols.Symbol {
		sym := symbols.New(name, "")
		sym.SetProperty(symbols.PropBuiltin, true)
		return sym
	}
	switch shape.Primitive {
	case model.PrimitiveBlob:
		return builtin("Vec<u8>")
	case model.PrimitiveBoolean:
		return builtin("bool")
	case model.PrimitiveString:
		return builtin("String")
	case model.PrimitiveByte:
		return builtin("i8")
	case model.PrimitiveShort:
		return builtin("i16")
	case model.PrimitiveInteger:
		return builtin("i32")
	case model.PrimitiveLong:
		return builtin("i64")
	case model.PrimitiveFloat:
		return builtin("f32")
	case model.PrimitiveDouble:
		return builtin("f64")
	case model.PrimitiveBigInteger:
		return symbols.New("BigInt", NamespaceRuntime)
	case model.PrimitiveBigDecimal:
		return symbols.New("BigDecimal", NamespaceRuntime)
	case model.PrimitiveTimestamp:
		return symbols.New("DateTime", NamespaceRuntime)
	case model.PrimitiveDocument:
		return symbols.New("Document", NamespaceRuntime)
	default:
		sym := symbols.New(TypeName(shape.ID.Name()), NamespaceModel)
		sym.SetProperty(symbols.PropNeedsCustomHandling, true)
		return sym
	}
}
