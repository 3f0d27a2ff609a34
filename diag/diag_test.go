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

package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindNamesAreComplete(t *testing.T) {
	for k := DeprecationHidden; k <= OverloadResolutionAmbiguity; k++ {
		require.NotEmpty(t, kindNames[k], "kind %d has no name", int(k))
	}
	assert.Equal(t, "Kind(999)", Kind(999).String())
}

func TestResultApplicability(t *testing.T) {
	require.Equal(t, Resolved, ResultApplicability(nil))

	ds := []Diagnostic{
		New(Deprecated, nil, "use %s instead", "bar"),
		New(InfixCallNoInfixModifier, nil, ""),
		New(ArgumentTypeMismatch, nil, "String is not Int"),
	}
	require.Equal(t, Inapplicable, ResultApplicability(ds))
	require.Equal(t, ConventionError, ResultApplicability(ds[:2]))
	require.Len(t, Errors(ds), 2)
	assert.Equal(t, "DEPRECATION: use bar instead", ds[0].String())
	assert.Equal(t, "INFIX_MODIFIER_REQUIRED", ds[1].String())
}

func TestApplicabilityOrdering(t *testing.T) {
	require.True(t, Resolved.IsSuccess())
	require.True(t, ResolvedLowPriority.IsSuccess())
	require.False(t, ResolvedWithError.IsSuccess())
	require.Less(t, int(Hidden), int(WrongReceiver))
	require.Less(t, int(WrongReceiver), int(Inapplicable))
	assert.Equal(t, "RESOLVED_LOW_PRIORITY", ResolvedLowPriority.String())
}
