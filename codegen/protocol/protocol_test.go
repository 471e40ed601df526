package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxidegen/oxidegen/codegen/fragment"
	"github.com/oxidegen/oxidegen/model"
)

type stubGenerator struct {
	trait model.TraitID
}

func (g stubGenerator) Protocol() model.TraitID { return g.trait }

func (g stubGenerator) SerializerFor(Context, *model.Shape) (fragment.Fragment, error) {
	return fragment.Of("ser", "fn serialize() {}"), nil
}

func (g stubGenerator) DeserializerFor(Context, *model.Shape) (fragment.Fragment, error) {
	return fragment.Of("deser", "fn deserialize() {}"), nil
}

func registryWith(t *testing.T, traits ...model.TraitID) *Registry {
	t.Helper()
	r := NewRegistry()
	for _, tr := range traits {
		require.NoError(t, r.Register(stubGenerator{trait: tr}))
	}
	return r
}

func service(traits ...model.TraitID) *model.Shape {
	ts := make(model.TraitSet, len(traits))
	for _, tr := range traits {
		ts[tr] = map[string]any{}
	}
	return &model.Shape{ID: "example.weather#Weather", Kind: model.KindService, Traits: ts}
}

func TestRegisterRejectsDuplicateTrait(t *testing.T) {
	t.Parallel()

	r := registryWith(t, model.TraitAWSJSON1)
	require.ErrorContains(t, r.Register(stubGenerator{trait: model.TraitAWSJSON1}), "already registered")
	require.ErrorContains(t, r.Register(nil), "must declare")
}

func TestSelectSingleProtocol(t *testing.T) {
	t.Parallel()

	r := registryWith(t, model.TraitAWSJSON1, model.TraitRestJSON1)
	g, err := r.Select(service(model.TraitAWSJSON1), "")
	require.NoError(t, err)
	require.Equal(t, model.TraitAWSJSON1, g.Protocol())
}

func TestSelectNoSupportedProtocol(t *testing.T) {
	t.Parallel()

	r := registryWith(t, model.TraitAWSJSON1)
	_, err := r.Select(service(), "")
	require.ErrorContains(t, err, "declares no supported protocol")

	// Declared but unregistered counts as unsupported.
	_, err = r.Select(service(model.TraitRestJSON1), "")
	require.ErrorContains(t, err, "declares no supported protocol")
}

func TestSelectAmbiguousWithoutOverride(t *testing.T) {
	t.Parallel()

	r := registryWith(t, model.TraitAWSJSON1, model.TraitRestJSON1)
	svc := service(model.TraitAWSJSON1, model.TraitRestJSON1)

	_, err := r.Select(svc, "")
	require.ErrorContains(t, err, "multiple protocols")

	g, err := r.Select(svc, model.TraitRestJSON1)
	require.NoError(t, err)
	require.Equal(t, model.TraitRestJSON1, g.Protocol())
}

func TestSelectOverrideMustBeApplicable(t *testing.T) {
	t.Parallel()

	r := registryWith(t, model.TraitAWSJSON1, model.TraitRestJSON1)
	_, err := r.Select(service(model.TraitAWSJSON1), model.TraitRestJSON1)
	require.ErrorContains(t, err, "not a supported protocol")
}
