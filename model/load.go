package model

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed smithy-ast.schema.json
var astSchemaBytes []byte

type (
	astModel struct {
		Smithy string                       `json:"smithy"`
		Shapes map[string]gojson.RawMessage `json:"shapes"`
	}

	astRef struct {
		Target string `json:"target"`
	}

	astMember struct {
		Target string         `json:"target"`
		Traits map[string]any `json:"traits"`
	}

	astShape struct {
		Type       string               `json:"type"`
		Traits     map[string]any       `json:"traits"`
		Members    map[string]astMember `json:"members"`
		Member     *astMember           `json:"member"`
		Key        *astMember           `json:"key"`
		Value      *astMember           `json:"value"`
		Input      *astRef              `json:"input"`
		Output     *astRef              `json:"output"`
		Errors     []astRef             `json:"errors"`
		Version    string               `json:"version"`
		Operations []astRef             `json:"operations"`
		Resources  []astRef             `json:"resources"`
	}
)

// primitiveTypes maps Smithy AST simple type names to Primitive kinds.
var primitiveTypes = map[string]Primitive{
	"blob":       PrimitiveBlob,
	"boolean":    PrimitiveBoolean,
	"string":     PrimitiveString,
	"byte":       PrimitiveByte,
	"short":      PrimitiveShort,
	"integer":    PrimitiveInteger,
	"long":       PrimitiveLong,
	"float":      PrimitiveFloat,
	"double":     PrimitiveDouble,
	"bigInteger": PrimitiveBigInteger,
	"bigDecimal": PrimitiveBigDecimal,
	"timestamp":  PrimitiveTimestamp,
	"document":   PrimitiveDocument,
}

// preludeShapes are the smithy.api shapes a model may reference without
// declaring. They are synthesized on demand during load.
var preludeShapes = map[ShapeID]func() *Shape{
	"smithy.api#Blob":       func() *Shape { return preludePrimitive("smithy.api#Blob", PrimitiveBlob) },
	"smithy.api#Boolean":    func() *Shape { return preludePrimitive("smithy.api#Boolean", PrimitiveBoolean) },
	"smithy.api#String":     func() *Shape { return preludePrimitive("smithy.api#String", PrimitiveString) },
	"smithy.api#Byte":       func() *Shape { return preludePrimitive("smithy.api#Byte", PrimitiveByte) },
	"smithy.api#Short":      func() *Shape { return preludePrimitive("smithy.api#Short", PrimitiveShort) },
	"smithy.api#Integer":    func() *Shape { return preludePrimitive("smithy.api#Integer", PrimitiveInteger) },
	"smithy.api#Long":       func() *Shape { return preludePrimitive("smithy.api#Long", PrimitiveLong) },
	"smithy.api#Float":      func() *Shape { return preludePrimitive("smithy.api#Float", PrimitiveFloat) },
	"smithy.api#Double":     func() *Shape { return preludePrimitive("smithy.api#Double", PrimitiveDouble) },
	"smithy.api#BigInteger": func() *Shape { return preludePrimitive("smithy.api#BigInteger", PrimitiveBigInteger) },
	"smithy.api#BigDecimal": func() *Shape { return preludePrimitive("smithy.api#BigDecimal", PrimitiveBigDecimal) },
	"smithy.api#Timestamp":  func() *Shape { return preludePrimitive("smithy.api#Timestamp", PrimitiveTimestamp) },
	"smithy.api#Document":   func() *Shape { return preludePrimitive("smithy.api#Document", PrimitiveDocument) },
	"smithy.api#Unit":       func() *Shape { return &Shape{ID: "smithy.api#Unit", Kind: KindStructure} },
}

func preludePrimitive(id ShapeID, p Primitive) *Shape {
	return &Shape{ID: id, Kind: KindPrimitive, Primitive: p}
}

// Load decodes and validates a Smithy 2.0 JSON AST document into a Graph.
// The document is checked against an embedded JSON Schema first so the rest of
// the pipeline can assume a well-formed model. Member declaration order is
// preserved. Prelude (smithy.api) targets are synthesized as needed.
func Load(data []byte) (*Graph, error) {
	if err := validateAST(data); err != nil {
		return nil, fmt.Errorf("model document is not a valid Smithy AST: %w", err)
	}

	var doc astModel
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode model document: %w", err)
	}
	if !strings.HasPrefix(doc.Smithy, "2.") {
		return nil, fmt.Errorf("unsupported smithy version %q", doc.Smithy)
	}

	names := make([]string, 0, len(doc.Shapes))
	for name := range doc.Shapes {
		names = append(names, name)
	}
	slices.Sort(names)

	shapes := make([]*Shape, 0, len(names))
	for _, name := range names {
		id, err := ParseShapeID(name)
		if err != nil {
			return nil, err
		}
		var raw astShape
		if err := gojson.Unmarshal(doc.Shapes[name], &raw); err != nil {
			return nil, fmt.Errorf("decode shape %q: %w", name, err)
		}
		shape, err := buildShape(id, &raw, doc.Shapes[name])
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, shape)
	}

	shapes = append(shapes, synthesizePrelude(shapes)...)
	return NewGraph(shapes)
}

// validateAST checks the raw document against the embedded AST schema.
func validateAST(data []byte) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(astSchemaBytes))
	if err != nil {
		return fmt.Errorf("decode embedded schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("smithy-ast.schema.json", schemaDoc); err != nil {
		return err
	}
	schema, err := c.Compile("smithy-ast.schema.json")
	if err != nil {
		return fmt.Errorf("compile embedded schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return schema.Validate(inst)
}

func buildShape(id ShapeID, raw *astShape, rawJSON []byte) (*Shape, error) {
	s := &Shape{
		ID:      id,
		Traits:  decodeTraits(raw.Traits),
		Version: raw.Version,
	}

	if p, ok := primitiveTypes[raw.Type]; ok {
		s.Kind = KindPrimitive
		s.Primitive = p
		return s, nil
	}

	switch raw.Type {
	case "list":
		s.Kind = KindList
		if raw.Member == nil {
			return nil, fmt.Errorf("list shape %q has no member", id)
		}
		m, err := buildMember(id, "member", raw.Member)
		if err != nil {
			return nil, err
		}
		s.Members = []*Member{m}
	case "map":
		s.Kind = KindMap
		if raw.Key == nil || raw.Value == nil {
			return nil, fmt.Errorf("map shape %q is missing key or value", id)
		}
		k, err := buildMember(id, "key", raw.Key)
		if err != nil {
			return nil, err
		}
		v, err := buildMember(id, "value", raw.Value)
		if err != nil {
			return nil, err
		}
		s.Members = []*Member{k, v}
	case "structure", "union", "enum":
		switch raw.Type {
		case "structure":
			s.Kind = KindStructure
		case "union":
			s.Kind = KindUnion
		case "enum":
			s.Kind = KindEnum
		}
		order, err := memberOrder(rawJSON)
		if err != nil {
			return nil, fmt.Errorf("scan members of %q: %w", id, err)
		}
		for _, name := range order {
			am := raw.Members[name]
			m, err := buildMember(id, name, &am)
			if err != nil {
				return nil, err
			}
			s.Members = append(s.Members, m)
		}
	case "operation":
		s.Kind = KindOperation
		if raw.Input != nil {
			tid, err := ParseShapeID(raw.Input.Target)
			if err != nil {
				return nil, fmt.Errorf("operation %q input: %w", id, err)
			}
			s.Input = tid
		}
		if raw.Output != nil {
			tid, err := ParseShapeID(raw.Output.Target)
			if err != nil {
				return nil, fmt.Errorf("operation %q output: %w", id, err)
			}
			s.Output = tid
		}
		for _, e := range raw.Errors {
			tid, err := ParseShapeID(e.Target)
			if err != nil {
				return nil, fmt.Errorf("operation %q error: %w", id, err)
			}
			s.Errors = append(s.Errors, tid)
		}
	case "service":
		s.Kind = KindService
		for _, op := range raw.Operations {
			tid, err := ParseShapeID(op.Target)
			if err != nil {
				return nil, fmt.Errorf("service %q operation: %w", id, err)
			}
			s.Operations = append(s.Operations, tid)
		}
		for _, r := range raw.Resources {
			tid, err := ParseShapeID(r.Target)
			if err != nil {
				return nil, fmt.Errorf("service %q resource: %w", id, err)
			}
			s.Resources = append(s.Resources, tid)
		}
	case "resource":
		s.Kind = KindResource
		for _, op := range raw.Operations {
			tid, err := ParseShapeID(op.Target)
			if err != nil {
				return nil, fmt.Errorf("resource %q operation: %w", id, err)
			}
			s.Operations = append(s.Operations, tid)
		}
	default:
		return nil, fmt.Errorf("shape %q has unsupported type %q", id, raw.Type)
	}
	return s, nil
}

func buildMember(parent ShapeID, name string, am *astMember) (*Member, error) {
	target, err := ParseShapeID(am.Target)
	if err != nil {
		return nil, fmt.Errorf("member %q of %q: %w", name, parent, err)
	}
	return &Member{Name: name, Target: target, Traits: decodeTraits(am.Traits)}, nil
}

func decodeTraits(raw map[string]any) TraitSet {
	if len(raw) == 0 {
		return nil
	}
	ts := make(TraitSet, len(raw))
	for k, v := range raw {
		ts[TraitID(k)] = v
	}
	return ts
}

// memberOrder scans a raw shape object and returns the keys of its "members"
// object in document order. JSON object decoding loses key order, but member
// order is semantically significant to the model, so it is recovered with a
// token scan.
func memberOrder(raw []byte) ([]string, error) {
	dec := gojson.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if key != "members" {
			var sink gojson.RawMessage
			if err := dec.Decode(&sink); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := dec.Token(); err != nil { // members opening brace
			return nil, err
		}
		var order []string
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			name, _ := nameTok.(string)
			order = append(order, name)
			var sink gojson.RawMessage
			if err := dec.Decode(&sink); err != nil {
				return nil, err
			}
		}
		return order, nil
	}
	return nil, nil
}

// synthesizePrelude returns prelude shapes for every smithy.api target that
// the declared shapes reference but the document does not define.
func synthesizePrelude(declared []*Shape) []*Shape {
	defined := make(map[ShapeID]bool, len(declared))
	for _, s := range declared {
		defined[s.ID] = true
	}
	needed := make(map[ShapeID]bool)
	for _, s := range declared {
		for _, ref := range s.neighbors() {
			if !defined[ref] && ref.Namespace() == "smithy.api" {
				needed[ref] = true
			}
		}
	}
	ids := make([]ShapeID, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b ShapeID) int { return strings.Compare(string(a), string(b)) })

	var out []*Shape
	for _, id := range ids {
		if mk, ok := preludeShapes[id]; ok {
			out = append(out, mk())
		}
	}
	return out
}
