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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.True(t, s.Features.OperatorRem)
	require.True(t, s.Features.BuilderInference)
	require.False(t, s.Features.UnderscoredTypeArguments)
	require.True(t, s.HidesMembers("forEach"))
}

func TestParseYAML(t *testing.T) {
	s, err := Parse([]byte(`
features:
  operator_rem: false
  builder_inference: true
hides_members_names: [forEach, also]
`), YAML)
	require.NoError(t, err)
	require.False(t, s.Features.OperatorRem)
	require.True(t, s.Features.BuilderInference)
	require.True(t, s.HidesMembers("also"))
	alias, ok := s.RemAlias("rem")
	require.True(t, ok)
	require.Equal(t, "mod", alias)
}

func TestParseTOML(t *testing.T) {
	s, err := Parse([]byte(`
collect_all_candidates = true

[features]
underscored_type_arguments = true

[rem_aliases]
rem = "legacyMod"
`), TOML)
	require.NoError(t, err)
	require.True(t, s.CollectAllCandidates)
	require.True(t, s.Features.UnderscoredTypeArguments)
	alias, _ := s.RemAlias("rem")
	require.Equal(t, "legacyMod", alias)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte("features:\n  dsl_markers: false\n"), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	require.False(t, s.Features.DslMarkers)
	require.True(t, s.Features.OperatorRem)

	_, err = Load(filepath.Join(dir, "settings.json"))
	require.Error(t, err)
}
