package codegen

import (
	"fmt"
	"strings"

	"github.com/aws/smithy-go/ptr"
	"gopkg.in/yaml.v3"

	"github.com/oxidegen/oxidegen/codegen/rust"
	"github.com/oxidegen/oxidegen/model"
)

type (
	// Mode selects which SDK variants a run emits.
	Mode string

	// Settings is the opaque run configuration owned by the caller and
	// consumed once at run start.
	Settings struct {
		// Service is the shape id of the service to generate.
		Service string `yaml:"service"`
		// Crate is the target module root (crate) name; defaults to a
		// sanitized form of the service name.
		Crate string `yaml:"crate"`
		// Mode selects client, server, or both variants. Defaults to client.
		Mode Mode `yaml:"mode"`
		// Protocol optionally forces a protocol trait id when the service
		// declares several.
		Protocol string `yaml:"protocol"`
		// ReservedWords extends the built-in reserved-identifier table.
		ReservedWords []string `yaml:"reserved_words"`
		// Decorators names the enabled external decorators. Nil enables all
		// registered decorators; an empty list enables none.
		Decorators []string `yaml:"decorators"`
		// GenerateBuilders controls emission of builder types for
		// structures. Defaults to true.
		GenerateBuilders *bool `yaml:"generate_builders"`
	}
)

const (
	ModeClient Mode = "client"
	ModeServer Mode = "server"
	ModeBoth   Mode = "both"
)

// renameSuffix is appended to identifiers that collide with reserved words.
const renameSuffix = "_value"

// LoadSettings decodes YAML settings and applies defaults. Validation happens
// in Generate so programmatically built Settings take the same path.
func LoadSettings(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	s.applyDefaults()
	return &s, nil
}

func (s *Settings) applyDefaults() {
	if s.Mode == "" {
		s.Mode = ModeClient
	}
	if s.Crate == "" && s.Service != "" {
		s.Crate = rust.ModName(model.ShapeID(s.Service).Name())
	}
	if s.GenerateBuilders == nil {
		s.GenerateBuilders = ptr.Bool(true)
	}
}

// validate checks the settings and returns the full reserved-word table.
func (s *Settings) validate() ([]string, error) {
	if s.Service == "" {
		return nil, configErr(nil, "settings must name a service shape")
	}
	if _, err := model.ParseShapeID(s.Service); err != nil {
		return nil, configErr(err, "invalid service shape id %q", s.Service)
	}
	switch s.Mode {
	case ModeClient, ModeServer, ModeBoth:
	default:
		return nil, configErr(nil, "invalid mode %q: want client, server, or both", s.Mode)
	}

	for _, w := range s.ReservedWords {
		if w == "" || strings.ContainsFunc(w, func(r rune) bool {
			return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_')
		}) {
			return nil, configErr(nil, "malformed reserved word %q", w)
		}
	}

	words := rust.ReservedWords(s.ReservedWords...)
	// A reserved word whose suffixed form is itself reserved would defeat the
	// rename fixed point; reject the configuration instead of renaming twice.
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	for _, w := range words {
		if set[w+renameSuffix] {
			return nil, configErr(nil, "reserved word %q conflicts with the rename suffix of %q", w+renameSuffix, w)
		}
	}
	return words, nil
}
