package protocol

import (
	"fmt"
	"strings"

	"github.com/oxidegen/oxidegen/codegen/fragment"
	"github.com/oxidegen/oxidegen/codegen/rust"
	"github.com/oxidegen/oxidegen/model"
)

// RestJSON1 generates serializers and deserializers for the restJson1
// protocol: method and URI come from the operation's http trait and the
// input document travels as the JSON body, with streaming members bound to
// the raw body instead.
type RestJSON1 struct{}

var _ Generator = RestJSON1{}

// Protocol implements Generator.
func (RestJSON1) Protocol() model.TraitID { return model.TraitRestJSON1 }

// httpBinding extracts method and uri from the operation's http trait,
// defaulting to POST / when absent.
func httpBinding(op *model.Shape) (method, uri string) {
	method, uri = "POST", "/"
	v, ok := op.Traits.Get(model.TraitHTTP)
	if !ok {
		return method, uri
	}
	binding, ok := v.(map[string]any)
	if !ok {
		return method, uri
	}
	if m, ok := binding["method"].(string); ok && m != "" {
		method = m
	}
	if u, ok := binding["uri"].(string); ok && u != "" {
		uri = u
	}
	return method, uri
}

// SerializerFor implements Generator.
func (g RestJSON1) SerializerFor(ctx Context, op *model.Shape) (fragment.Fragment, error) {
	opMod := rust.ModName(op.ID.Name())
	method, uri := httpBinding(op)

	var b strings.Builder
	if in := inputType(ctx, op); in != "" {
		fmt.Fprintf(&b, "pub fn serialize_%s(input: &%s) -> oxide_runtime::http::Request {\n", opMod, in)
	} else {
		fmt.Fprintf(&b, "pub fn serialize_%s() -> oxide_runtime::http::Request {\n", opMod)
	}
	fmt.Fprintf(&b, "    let mut request = oxide_runtime::http::Request::new(%q, %q);\n", method, uri)
	b.WriteString("    request.header(\"content-type\", \"application/json\");\n")

	stream := serializeJSONBody(ctx, inputShape(ctx, op), &b)
	if stream != nil {
		fmt.Fprintf(&b, "    request.set_streaming_body(input.%s.clone());\n", stream.name)
	}
	b.WriteString("    request\n}\n")
	return fragment.Of("serialize_"+opMod, b.String()), nil
}

// DeserializerFor implements Generator.
func (g RestJSON1) DeserializerFor(ctx Context, op *model.Shape) (fragment.Fragment, error) {
	opMod := rust.ModName(op.ID.Name())
	outType := outputType(ctx, op)
	errType := errorType(ctx, op)

	var b strings.Builder
	fmt.Fprintf(&b, "pub fn deserialize_%s(response: oxide_runtime::http::Response) -> Result<%s, %s> {\n", opMod, outType, errType)

	out := outputShape(ctx, op)
	if out == nil || out.ID == "smithy.api#Unit" || len(out.Members) == 0 {
		b.WriteString("    let _ = response;\n")
		if outType == "()" {
			b.WriteString("    Ok(())\n}\n")
		} else {
			fmt.Fprintf(&b, "    Ok(%s::builder().build())\n}\n", outType)
		}
		return fragment.Of("deserialize_"+opMod, b.String()), nil
	}

	fmt.Fprintf(&b, "    let mut builder = %s::builder();\n", outType)
	deserializeJSONBody(ctx, out, &b)
	b.WriteString("    Ok(builder.build())\n}\n")
	return fragment.Of("deserialize_"+opMod, b.String()), nil
}
