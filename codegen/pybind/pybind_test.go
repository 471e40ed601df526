package pybind

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxidegen/oxidegen/codegen/decor"
	"github.com/oxidegen/oxidegen/model"
)

func TestPyclassAttrTargetsStructuresAndEnums(t *testing.T) {
	t.Parallel()

	d := Decorator()
	require.Equal(t, Name, d.Name())

	customs := d.Customizations(decor.CategoryModel, nil)
	require.Len(t, customs, 1)
	attr := customs[0]

	render := func(kind model.Kind) string {
		return attr.Render(&decor.Context{}, decor.Section{
			Kind:  decor.SectionShapeAttributes,
			Shape: &model.Shape{ID: "example.weather#Thing", Kind: kind},
		}).Content
	}

	require.Contains(t, render(model.KindStructure), "pyo3::pyclass")
	require.Contains(t, render(model.KindEnum), "pyo3::pyclass")
	require.Empty(t, render(model.KindUnion))

	require.True(t, attr.Render(&decor.Context{}, decor.Section{Kind: decor.SectionShapeAttributes}).Empty())
}

func TestPymoduleRegistersClient(t *testing.T) {
	t.Parallel()

	d := Decorator()
	customs := d.Customizations(decor.CategoryService, nil)
	require.Len(t, customs, 1)

	frag := customs[0].Render(&decor.Context{Crate: "weather"}, decor.Section{Kind: decor.SectionServiceExtras})
	require.Contains(t, frag.Content, "#[pyo3::pymodule]")
	require.Contains(t, frag.Content, "fn weather(")
	require.Contains(t, frag.Content, "m.add_class::<Client>()?;")
}
