package rust

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldName(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"city", "city"},
		{"CityName", "city_name"},
		{"HTTPStatus", "http_status"},
		{"maxResults", "max_results"},
		{"with-dash", "with_dash"},
		{"123abc", "n123abc"},
		{"", "field"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FieldName(tc.in), "FieldName(%q)", tc.in)
	}
}

func TestTypeName(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"GetForecast", "GetForecast"},
		{"get_forecast", "GetForecast"},
		{"forecast", "Forecast"},
		{"HTTPStatus", "HttpStatus"},
		{"", "Type"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, TypeName(tc.in), "TypeName(%q)", tc.in)
	}
}

func TestModName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "get_forecast", ModName("GetForecast"))
	require.Equal(t, "weather", ModName("Weather"))
	require.Equal(t, "mod", ModName("!!!"))
}

func TestVariantName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "NotFound", VariantName("notFound"))
	require.Equal(t, "Celsius", VariantName("CELSIUS"))
}

func TestReservedWordsTable(t *testing.T) {
	t.Parallel()

	words := ReservedWords()
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	// Language keywords and generated method names are both present.
	for _, w := range []string{"type", "match", "fn", "build", "builder", "new", "send"} {
		require.True(t, set[w], "missing %q", w)
	}

	extended := ReservedWords("endpoint")
	require.Contains(t, extended, "endpoint")
	require.Len(t, extended, len(words)+1)
}
