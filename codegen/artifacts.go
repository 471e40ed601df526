package codegen

import (
	"slices"
	"strings"

	"github.com/oxidegen/oxidegen/codegen/fragment"
	"github.com/oxidegen/oxidegen/diag"
)

type (
	// ArtifactSet is the run output: one fragment tree per target namespace,
	// handed to the external emission engine. Namespaces iterate sorted so
	// identical runs render byte-identical output.
	ArtifactSet struct {
		trees map[string]*fragment.Tree
	}

	// Result is a successful run outcome: the artifacts plus the non-fatal
	// diagnostics that rode alongside them.
	Result struct {
		// RunID correlates logs and diagnostics of one run. It never
		// influences artifact content.
		RunID string
		// Artifacts is the generated artifact set.
		Artifacts *ArtifactSet
		// Diagnostics lists non-fatal anomalies in report order.
		Diagnostics []diag.Diagnostic
	}
)

// NewArtifactSet returns an empty artifact set.
func NewArtifactSet() *ArtifactSet {
	return &ArtifactSet{trees: make(map[string]*fragment.Tree)}
}

// Tree returns the fragment tree for the namespace, creating it on first use.
func (a *ArtifactSet) Tree(namespace string) *fragment.Tree {
	t, ok := a.trees[namespace]
	if !ok {
		t = fragment.NewTree()
		a.trees[namespace] = t
	}
	return t
}

// Namespaces returns the populated namespaces in sorted order.
func (a *ArtifactSet) Namespaces() []string {
	out := make([]string, 0, len(a.trees))
	for ns := range a.trees {
		out = append(out, ns)
	}
	slices.Sort(out)
	return out
}

// Render concatenates every namespace tree into final source text, keyed by
// namespace.
func (a *ArtifactSet) Render() map[string]string {
	out := make(map[string]string, len(a.trees))
	for _, ns := range a.Namespaces() {
		out[ns] = a.trees[ns].Render()
	}
	return out
}

// FilePath maps a namespace to a relative source path for file writers:
// "crate::model" becomes "src/model.rs", "crate" becomes "src/lib.rs".
func FilePath(namespace string) string {
	if namespace == "crate" {
		return "src/lib.rs"
	}
	rel := strings.TrimPrefix(namespace, "crate::")
	return "src/" + strings.ReplaceAll(rel, "::", "/") + ".rs"
}
