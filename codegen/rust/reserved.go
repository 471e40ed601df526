package rust

// keywords are the Rust language keywords (strict, reserved, and weak) that
// can never be used as raw generated identifiers.
var keywords = []string{
	"abstract", "as", "async", "await", "become", "box", "break", "const",
	"continue", "crate", "do", "dyn", "else", "enum", "extern", "false",
	"final", "fn", "for", "gen", "if", "impl", "in", "let", "loop", "macro",
	"match", "mod", "move", "mut", "override", "priv", "pub", "ref", "return",
	"self", "static", "struct", "super", "trait", "true", "try", "type",
	"typeof", "unsafe", "unsized", "use", "virtual", "where", "while", "yield",
}

// builtinMethods are method names the generated builders and clients define
// on every type; a model member rendering to one of these would shadow the
// generated API.
var builtinMethods = []string{
	"build", "builder", "clone", "default", "drop", "from", "into", "new",
	"send", "to_owned", "to_string",
}

// ReservedWords returns the full collision table for the reserved-word stage:
// language keywords plus generated built-in method names, with any
// configured extras appended.
func ReservedWords(extra ...string) []string {
	out := make([]string, 0, len(keywords)+len(builtinMethods)+len(extra))
	out = append(out, keywords...)
	out = append(out, builtinMethods...)
	out = append(out, extra...)
	return out
}
