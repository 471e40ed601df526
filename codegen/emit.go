package codegen

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/oxidegen/oxidegen/codegen/fragment"
	"github.com/oxidegen/oxidegen/codegen/symbols"
	"github.com/oxidegen/oxidegen/model"
)

type (
	// structField is the prepared emission data for one structure field.
	structField struct {
		Doc        []string
		Name       string
		Type       string
		SetterType string
		BuildExpr  string
	}

	// structData drives the structure template.
	structData struct {
		Doc         []string
		Attrs       []string
		Name        string
		Fields      []structField
		Builder     bool
		BuilderName string
		Sensitive   bool
	}

	// variantData is one union or enum variant.
	variantData struct {
		Doc     []string
		Name    string
		Payload string
	}

	// enumData drives the union and enum templates.
	enumData struct {
		Doc      []string
		Attrs    []string
		Name     string
		Variants []variantData
	}
)

var structTmpl = template.Must(template.New("struct").Parse(`{{range .Doc}}/// {{.}}
{{end}}{{range .Attrs}}{{.}}
{{end}}pub struct {{.Name}} {
{{- range .Fields}}
{{- range .Doc}}
    /// {{.}}
{{- end}}
    pub {{.Name}}: {{.Type}},
{{- end}}
}
{{- if .Sensitive}}

impl std::fmt::Debug for {{.Name}} {
    fn fmt(&self, f: &mut std::fmt::Formatter<'_>) -> std::fmt::Result {
        f.write_str("{{.Name}} { ** redacted ** }")
    }
}
{{- end}}
{{- if .Builder}}

impl {{.Name}} {
    /// Returns a builder for [` + "`{{.Name}}`" + `].
    pub fn builder() -> {{.BuilderName}} {
        {{.BuilderName}}::default()
    }
}

#[derive(Default)]
pub struct {{.BuilderName}} {
{{- range .Fields}}
    {{.Name}}: Option<{{.SetterType}}>,
{{- end}}
}

impl {{.BuilderName}} {
{{- range .Fields}}
    pub fn {{.Name}}(mut self, value: {{.SetterType}}) -> Self {
        self.{{.Name}} = Some(value);
        self
    }
{{- end}}

    pub fn build(self) -> {{.Name}} {
        {{.Name}} {
{{- range .Fields}}
            {{.Name}}: {{.BuildExpr}},
{{- end}}
        }
    }
}
{{- end}}
`))

var enumTmpl = template.Must(template.New("enum").Parse(`{{range .Doc}}/// {{.}}
{{end}}{{range .Attrs}}{{.}}
{{end}}pub enum {{.Name}} {
{{- range .Variants}}
{{- range .Doc}}
    /// {{.}}
{{- end}}
{{- if .Payload}}
    {{.Name}}({{.Payload}}),
{{- else}}
    {{.Name}},
{{- end}}
{{- end}}
}
`))

// fragmentBuilder accumulates newline-terminated source lines.
type fragmentBuilder struct {
	b strings.Builder
}

func (f *fragmentBuilder) linef(format string, args ...any) {
	fmt.Fprintf(&f.b, format, args...)
	f.b.WriteByte('\n')
}

func (f *fragmentBuilder) String() string { return f.b.String() }

// docLines splits a documentation trait value into rendered doc lines.
func docLines(ts model.TraitSet) []string {
	v, ok := ts.Get(model.TraitDocumentation)
	if !ok {
		return nil
	}
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

// renderType renders the resolved symbol of a member target as Rust type
// text. Streaming symbols render as the runtime byte stream regardless of
// their base mapping; the decision was made by the symbol chain, not here.
func renderType(sym *symbols.Symbol) string {
	if sym.BoolProperty(symbols.PropStreaming) {
		return "oxide_runtime::types::ByteStream"
	}
	if sym.BoolProperty(symbols.PropBuiltin) {
		return sym.Name
	}
	return sym.FullName()
}

// derives assembles the derive attribute for an aggregate symbol, honoring
// the equality and sensitivity decisions carried on the symbol.
func derives(sym *symbols.Symbol, extra ...string) []string {
	traits := []string{"Clone"}
	if !sym.BoolProperty(symbols.PropSensitive) {
		traits = append(traits, "Debug")
	}
	if !sym.BoolProperty(symbols.PropSkipDerivedEq) {
		traits = append(traits, "PartialEq")
		traits = append(traits, extra...)
	}
	attrs := []string{fmt.Sprintf("#[derive(%s)]", strings.Join(traits, ", "))}
	return append(attrs, sym.Attributes()...)
}

// renderStruct renders a structure body (with optional builder) as one
// fragment.
func renderStruct(data structData) fragment.Fragment {
	var b strings.Builder
	if err := structTmpl.Execute(&b, data); err != nil {
		// templates are compile-time constants; failure is a programming
		// error surfaced loudly in tests
		panic(err)
	}
	return fragment.Of(data.Name, b.String())
}

// renderEnum renders a union or enum body as one fragment.
func renderEnum(data enumData) fragment.Fragment {
	var b strings.Builder
	if err := enumTmpl.Execute(&b, data); err != nil {
		panic(err)
	}
	return fragment.Of(data.Name, b.String())
}
