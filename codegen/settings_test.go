package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSettingsAppliesDefaults(t *testing.T) {
	t.Parallel()

	s, err := LoadSettings([]byte("service: example.weather#Weather\n"))
	require.NoError(t, err)
	require.Equal(t, ModeClient, s.Mode)
	require.Equal(t, "weather", s.Crate)
	require.NotNil(t, s.GenerateBuilders)
	require.True(t, *s.GenerateBuilders)
}

func TestLoadSettingsFullDocument(t *testing.T) {
	t.Parallel()

	doc := `service: example.weather#Weather
crate: weather_sdk
mode: both
protocol: aws.protocols#restJson1
reserved_words: [endpoint]
decorators: [python-bindings]
generate_builders: false
`
	s, err := LoadSettings([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, "weather_sdk", s.Crate)
	require.Equal(t, ModeBoth, s.Mode)
	require.Equal(t, "aws.protocols#restJson1", s.Protocol)
	require.Equal(t, []string{"endpoint"}, s.ReservedWords)
	require.Equal(t, []string{"python-bindings"}, s.Decorators)
	require.False(t, *s.GenerateBuilders)
}

func TestLoadSettingsRejectsBadYAML(t *testing.T) {
	t.Parallel()

	_, err := LoadSettings([]byte("service: [nope"))
	require.ErrorContains(t, err, "decode settings")
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		settings Settings
		want     string
	}{
		{
			name:     "missing service",
			settings: Settings{Mode: ModeClient},
			want:     "must name a service",
		},
		{
			name:     "malformed service id",
			settings: Settings{Service: "Weather", Mode: ModeClient},
			want:     "invalid service shape id",
		},
		{
			name:     "invalid mode",
			settings: Settings{Service: "example.weather#Weather", Mode: "proxy"},
			want:     "invalid mode",
		},
		{
			name:     "malformed reserved word",
			settings: Settings{Service: "example.weather#Weather", Mode: ModeClient, ReservedWords: []string{"no spaces"}},
			want:     "malformed reserved word",
		},
		{
			name:     "suffix collision",
			settings: Settings{Service: "example.weather#Weather", Mode: ModeClient, ReservedWords: []string{"type_value"}},
			want:     "rename suffix",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := tc.settings.validate()
			require.Error(t, err)
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestValidateReturnsFullWordTable(t *testing.T) {
	t.Parallel()

	s := Settings{Service: "example.weather#Weather", Mode: ModeClient, ReservedWords: []string{"endpoint"}}
	words, err := s.validate()
	require.NoError(t, err)
	require.Contains(t, words, "type")
	require.Contains(t, words, "builder")
	require.Contains(t, words, "endpoint")
}
