// Package pybind is an independently authored decorator bundle that adds
// Python host-language bindings (pyo3) to the generated crate. It contributes
// purely additively: class attributes on model items and a module
// registration block on the service, without touching the base generator.
package pybind

import (
	"fmt"

	"github.com/oxidegen/oxidegen/codegen/decor"
	"github.com/oxidegen/oxidegen/codegen/fragment"
	"github.com/oxidegen/oxidegen/model"
)

// Name is the decorator name used to enable the bundle in run settings.
const Name = "python-bindings"

// Decorator returns the Python bindings decorator bundle.
func Decorator() decor.Decorator {
	return &decor.Bundle{
		BundleName:     Name,
		BundlePriority: 10,
		ByCategory: map[decor.Category][]decor.Customization{
			decor.CategoryModel: {
				&decor.Func{
					FuncName:   "pyclass-attr",
					Applies:    []decor.SectionKind{decor.SectionShapeAttributes},
					RenderFunc: pyclassAttr,
				},
			},
			decor.CategoryService: {
				&decor.Func{
					FuncName:   "pymodule",
					Applies:    []decor.SectionKind{decor.SectionServiceExtras},
					RenderFunc: pymodule,
				},
			},
		},
	}
}

// pyclassAttr annotates concrete model items as Python classes. Unions map to
// Python via a wrapper, so only structures and enums are annotated.
func pyclassAttr(_ *decor.Context, section decor.Section) fragment.Fragment {
	if section.Shape == nil {
		return fragment.Fragment{}
	}
	switch section.Shape.Kind {
	case model.KindStructure, model.KindEnum:
		return fragment.Of("pyclass-attr", `#[cfg_attr(feature = "python", pyo3::pyclass)]`)
	default:
		return fragment.Fragment{}
	}
}

// pymodule registers the client with the Python module initializer.
func pymodule(ctx *decor.Context, _ decor.Section) fragment.Fragment {
	content := fmt.Sprintf(`#[cfg(feature = "python")]
#[pyo3::pymodule]
fn %s(m: &pyo3::Bound<'_, pyo3::types::PyModule>) -> pyo3::PyResult<()> {
    m.add_class::<Client>()?;
    Ok(())
}
`, ctx.Crate)
	return fragment.Of("pymodule", content)
}
