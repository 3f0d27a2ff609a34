// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config holds the language settings which influence call resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Features toggles language features.
type Features struct {
	// OperatorRem resolves `%` to `rem`, falling back to the deprecated alias when nothing applies.
	// When disabled, `%` resolves to the alias directly.
	OperatorRem bool `yaml:"operator_rem" toml:"operator_rem"`
	// UnderscoredTypeArguments allows `_` placeholders in explicit type arguments.
	UnderscoredTypeArguments bool `yaml:"underscored_type_arguments" toml:"underscored_type_arguments"`
	// ContextReceivers enables context-receiver groups in the scope tower.
	ContextReceivers bool `yaml:"context_receivers" toml:"context_receivers"`
	// BuilderInference enables stub-based inference through trailing lambdas.
	BuilderInference bool `yaml:"builder_inference" toml:"builder_inference"`
	// DslMarkers enables the implicit-receiver DSL scope check.
	DslMarkers bool `yaml:"dsl_markers" toml:"dsl_markers"`
}

// Settings configures a resolver.
type Settings struct {
	Features Features `yaml:"features" toml:"features"`
	// RemAliases maps remainder operator names to their deprecated aliases.
	RemAliases map[string]string `yaml:"rem_aliases" toml:"rem_aliases"`
	// HidesMembersNames lists names for which hides-members extensions are searched before members.
	HidesMembersNames []string `yaml:"hides_members_names" toml:"hides_members_names"`
	// CollectAllCandidates keeps every non-hidden candidate for diagnostics.
	CollectAllCandidates bool `yaml:"collect_all_candidates" toml:"collect_all_candidates"`
}

// Default returns settings with every feature enabled except underscored type arguments, which
// must be opted into.
func Default() *Settings {
	return &Settings{
		Features: Features{
			OperatorRem:      true,
			ContextReceivers: true,
			BuilderInference: true,
			DslMarkers:       true,
		},
		RemAliases:        map[string]string{"rem": "mod", "remAssign": "modAssign"},
		HidesMembersNames: []string{"forEach"},
	}
}

// HidesMembers returns true if name is searched in hides-members levels first.
func (s *Settings) HidesMembers(name string) bool {
	for _, n := range s.HidesMembersNames {
		if n == name {
			return true
		}
	}
	return false
}

// RemAlias returns the deprecated alias for a remainder operator name.
func (s *Settings) RemAlias(name string) (string, bool) {
	alias, ok := s.RemAliases[name]
	return alias, ok
}

// Format of a settings file.
type Format int

const (
	YAML Format = iota
	TOML
)

// FormatOf selects a format by file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return 0, fmt.Errorf("unsupported settings file extension: %q", filepath.Ext(path))
}

// Parse decodes settings on top of Default.
func Parse(data []byte, format Format) (*Settings, error) {
	s := Default()
	var err error
	switch format {
	case TOML:
		err = toml.Unmarshal(data, s)
	default:
		err = yaml.Unmarshal(data, s)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if s.RemAliases == nil {
		s.RemAliases = map[string]string{}
	}
	return s, nil
}

// Load reads settings from a YAML or TOML file.
func Load(path string) (*Settings, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return Parse(data, format)
}
