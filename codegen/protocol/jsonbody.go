package protocol

import (
	"fmt"
	"strings"

	"github.com/oxidegen/oxidegen/model"
)

// memberRef pairs a member with its rendered target identifier.
type memberRef struct {
	member *model.Member
	name   string
}

// inputType renders the operation input type, or "" when the operation takes
// none.
func inputType(ctx Context, op *model.Shape) string {
	in := inputShape(ctx, op)
	if in == nil || in.ID == "smithy.api#Unit" {
		return ""
	}
	return ctx.Symbols.ToSymbol(in).FullName()
}

// outputType renders the operation output type, or "()" when the operation
// returns none.
func outputType(ctx Context, op *model.Shape) string {
	out := outputShape(ctx, op)
	if out == nil || out.ID == "smithy.api#Unit" {
		return "()"
	}
	return ctx.Symbols.ToSymbol(out).FullName()
}

// errorType renders the per-operation error enum emitted alongside the
// operation module.
func errorType(ctx Context, op *model.Shape) string {
	sym := ctx.Symbols.ToSymbol(op)
	return sym.FullName() + "Error"
}

// serializeJSONBody writes the JSON document construction for every
// non-streaming input member and returns the streaming member, when any.
// Streaming is decided by the member target's resolved symbol, never by raw
// traits.
func serializeJSONBody(ctx Context, in *model.Shape, b *strings.Builder) (stream *memberRef) {
	if in == nil {
		return nil
	}
	b.WriteString("    let mut body = oxide_runtime::json::Object::new();\n")
	for _, m := range in.Members {
		if streamingMember(ctx, m) {
			stream = &memberRef{member: m, name: ctx.Symbols.MemberName(in, m)}
			continue
		}
		name := ctx.Symbols.MemberName(in, m)
		fmt.Fprintf(b, "    body.insert(%q, &input.%s);\n", m.Name, name)
	}
	b.WriteString("    request.set_body(body.into_bytes());\n")
	return stream
}

// deserializeJSONBody writes the builder population for every output member,
// binding the streaming member to the raw response body.
func deserializeJSONBody(ctx Context, out *model.Shape, b *strings.Builder) {
	var stream *memberRef
	for _, m := range out.Members {
		if streamingMember(ctx, m) {
			stream = &memberRef{member: m, name: ctx.Symbols.MemberName(out, m)}
		}
	}
	if stream != nil {
		fmt.Fprintf(b, "    builder = builder.%s(response.take_streaming_body());\n", stream.name)
	}
	b.WriteString("    let document = oxide_runtime::json::parse(response.body())?;\n")
	for _, m := range out.Members {
		if stream != nil && m == stream.member {
			continue
		}
		name := ctx.Symbols.MemberName(out, m)
		fmt.Fprintf(b, "    builder = builder.%s(document.get(%q)?);\n", name, m.Name)
	}
}
