package protocol

import (
	"fmt"
	"strings"

	"github.com/oxidegen/oxidegen/codegen/fragment"
	"github.com/oxidegen/oxidegen/codegen/rust"
	"github.com/oxidegen/oxidegen/model"
)

// AWSJSON1 generates serializers and deserializers for the awsJson1_0
// protocol: a POST to "/" carrying the operation in the X-Amz-Target header
// and the input document as the JSON body. Streaming members bypass the
// document and become the raw request body.
type AWSJSON1 struct{}

var _ Generator = AWSJSON1{}

// Protocol implements Generator.
func (AWSJSON1) Protocol() model.TraitID { return model.TraitAWSJSON1 }

// SerializerFor implements Generator.
func (g AWSJSON1) SerializerFor(ctx Context, op *model.Shape) (fragment.Fragment, error) {
	opMod := rust.ModName(op.ID.Name())
	target := fmt.Sprintf("%s.%s", ctx.Service.ID.Name(), op.ID.Name())

	var b strings.Builder
	if in := inputType(ctx, op); in != "" {
		fmt.Fprintf(&b, "pub fn serialize_%s(input: &%s) -> oxide_runtime::http::Request {\n", opMod, in)
	} else {
		fmt.Fprintf(&b, "pub fn serialize_%s() -> oxide_runtime::http::Request {\n", opMod)
	}
	b.WriteString("    let mut request = oxide_runtime::http::Request::post(\"/\");\n")
	b.WriteString("    request.header(\"content-type\", \"application/x-amz-json-1.0\");\n")
	fmt.Fprintf(&b, "    request.header(\"x-amz-target\", %q);\n", target)

	stream := serializeJSONBody(ctx, inputShape(ctx, op), &b)
	if stream != nil {
		fmt.Fprintf(&b, "    request.set_streaming_body(input.%s.clone());\n", stream.name)
	}
	b.WriteString("    request\n}\n")
	return fragment.Of("serialize_"+opMod, b.String()), nil
}

// DeserializerFor implements Generator.
func (g AWSJSON1) DeserializerFor(ctx Context, op *model.Shape) (fragment.Fragment, error) {
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
