package fragment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTreeAppendOrder(t *testing.T) {
	t.Parallel()

	tr := NewTree()
	tr.Append("types", Of("b", "struct B;"))
	tr.Append("types", Of("a", "struct A;"))
	tr.Append("impls", Of("impl-a", "impl A {}"))

	sections := tr.Sections()
	require.Len(t, sections, 2)
	require.Equal(t, "types", sections[0].Name)
	require.Equal(t, "impls", sections[1].Name)

	frags := tr.Section("types").Fragments()
	require.Len(t, frags, 2)
	require.Equal(t, "b", frags[0].Name)
	require.Equal(t, "a", frags[1].Name)

	require.Nil(t, tr.Section("missing"))
}

func TestTreeDropsEmptyFragments(t *testing.T) {
	t.Parallel()

	tr := NewTree()
	tr.Append("types", Fragment{Name: "nothing"})
	require.Nil(t, tr.Section("types"))
	require.Empty(t, tr.Render())
}

func TestRenderJoinsWithBlankLines(t *testing.T) {
	t.Parallel()

	tr := NewTree()
	tr.Append("types", Of("a", "struct A;\n"))
	tr.Append("types", Of("b", "struct B;"))
	tr.Append("impls", Of("impl-a", "impl A {}\n"))

	require.Equal(t, "struct A;\n\nstruct B;\n\nimpl A {}\n", tr.Render())
}

func TestSortSections(t *testing.T) {
	t.Parallel()

	tr := NewTree()
	tr.Append("zeta", Of("z", "z"))
	tr.Append("alpha", Of("a", "a"))
	tr.SortSections()

	sections := tr.Sections()
	require.Equal(t, "alpha", sections[0].Name)
	require.Equal(t, "zeta", sections[1].Name)
}
