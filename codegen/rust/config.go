package rust

import (
	"github.com/oxidegen/oxidegen/codegen/decor"
	"github.com/oxidegen/oxidegen/codegen/fragment"
)

// ConfigDecorator returns the built-in baseline decorator: the client config
// fields every generated crate carries. Its priority is the lowest possible
// so baseline fields always precede externally contributed ones.
func ConfigDecorator() decor.Decorator {
	return &decor.Bundle{
		BundleName:     "base-config",
		BundlePriority: -128,
		ByCategory: map[decor.Category][]decor.Customization{
			decor.CategoryConfig: {
				&decor.Func{
					FuncName: "endpoint-field",
					Applies:  []decor.SectionKind{decor.SectionConfigFields},
					RenderFunc: func(_ *decor.Context, _ decor.Section) fragment.Fragment {
						return fragment.Of("endpoint-field", "pub endpoint_url: Option<String>,")
					},
				},
				&decor.Func{
					FuncName: "timeout-field",
					Applies:  []decor.SectionKind{decor.SectionConfigFields},
					RenderFunc: func(_ *decor.Context, _ decor.Section) fragment.Fragment {
						return fragment.Of("timeout-field", "pub timeout_ms: Option<u64>,")
					},
				},
				&decor.Func{
					FuncName: "timeout-default",
					Applies:  []decor.SectionKind{decor.SectionConfigDefaults},
					RenderFunc: func(_ *decor.Context, _ decor.Section) fragment.Fragment {
						return fragment.Of("timeout-default", "config.timeout_ms = Some(30_000);")
					},
				},
			},
		},
	}
}
