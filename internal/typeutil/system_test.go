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

package typeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/calls/types"
)

var argPos = Position{Kind: ArgumentPosition}

func newVars(n int) (*VarTracker, *System, []*types.Var) {
	vt, sys := &VarTracker{}, NewSystem()
	vs := make([]*types.Var, n)
	for i := range vs {
		vs[i] = vt.New(&types.Param{Name: "T"})
		sys.AddVar(vs[i])
	}
	return vt, sys, vs
}

func TestResultTypeFromLowerBounds(t *testing.T) {
	_, sys, vs := newVars(1)
	T := vs[0]
	require.True(t, sys.AddSubtype(types.Int, T, argPos))
	require.True(t, sys.AddSubtype(types.Double, T, argPos))
	require.True(t, sys.AddSubtype(types.Int, T, argPos))
	require.Len(t, sys.Bounds(T), 2)

	result, ok := sys.ResultType(T)
	require.True(t, ok)
	assert.Equal(t, "Number", types.TypeString(result))
}

func TestResultTypeDirection(t *testing.T) {
	_, sys, vs := newVars(1)
	T := vs[0]
	sys.AddSubtype(types.Int, T, argPos)
	sys.AddSubtype(T, types.Number, argPos)

	result, _ := sys.ResultType(T)
	assert.Equal(t, types.Int, result)

	sys.InferDirections(types.NewFunc([]types.Type{T}, types.Unit))
	require.Equal(t, ToSupertype, sys.Direction(T))
	result, _ = sys.ResultType(T)
	assert.Equal(t, types.Number, result)
}

func TestDeclaredUpperBoundIsNotProper(t *testing.T) {
	vt, sys := &VarTracker{}, NewSystem()
	p := &types.Param{Name: "T", Bounds: []types.Type{types.Number}}
	inst := Instantiate(vt, sys, []*types.Param{p})
	T := inst.Vars[0]

	require.False(t, sys.HasProperConstraints(T))
	_, ok := sys.ResultType(T)
	require.False(t, ok)

	require.False(t, sys.AddSubtype(types.String, T, argPos), "String violates the declared bound")
	require.Len(t, sys.Errors(), 1)
	assert.Contains(t, sys.Errors()[0].Error(), "String <: Number")
}

func TestIncorporationThroughVariables(t *testing.T) {
	_, sys, vs := newVars(2)
	T, R := vs[0], vs[1]
	sys.AddSubtype(T, R, argPos)
	sys.AddSubtype(types.Int, T, argPos)

	require.Equal(t, []types.Type{types.Int}, sys.ProperBounds(R, Lower, false))
	require.True(t, sys.AddSubtype(R, types.Number, argPos))
	require.False(t, sys.AddSubtype(R, types.String, argPos))
}

func TestGenericArgumentsByVariance(t *testing.T) {
	_, sys, vs := newVars(1)
	T := vs[0]
	require.True(t, sys.AddSubtype(types.MutableListOf(types.Int), types.ListOf(T), argPos))
	require.Equal(t, []types.Type{types.Int}, sys.ProperBounds(T, Lower, false))

	_, sys, vs = newVars(1)
	T = vs[0]
	require.True(t, sys.AddSubtype(types.MutableListOf(types.Int), types.MutableListOf(T), argPos))
	require.Equal(t, []types.Type{types.Int}, sys.ProperBounds(T, Lower, false))
	require.Equal(t, []types.Type{types.Int}, sys.ProperBounds(T, Upper, false))

	require.False(t, sys.AddSubtype(types.ListOf(types.Int), types.MutableListOf(types.Int), argPos))
}

func TestFixChecksBounds(t *testing.T) {
	_, sys, vs := newVars(1)
	T := vs[0]
	sys.AddSubtype(types.Int, T, argPos)
	sys.Fix(T, types.String)
	require.True(t, sys.HasErrors())
	require.Empty(t, sys.NotFixed())
	require.True(t, sys.IsProper(types.ListOf(T)))
	assert.Equal(t, "List<String>", types.TypeString(sys.Substitute(types.ListOf(T))))
	require.Panics(t, func() { sys.Fix(T, types.Int) })
}

func TestForkIsIndependent(t *testing.T) {
	_, sys, vs := newVars(1)
	T := vs[0]
	sys.AddSubtype(types.Int, T, argPos)
	fork := sys.Fork()
	fork.AddSubtype(types.String, T, argPos)
	fork.Fix(T, types.Any)

	require.Len(t, sys.Bounds(T), 1)
	require.False(t, sys.IsFixed(T))
	require.True(t, fork.IsFixed(T))

	sys.CopyFixedFrom(fork)
	fixed, ok := sys.FixedType(T)
	require.True(t, ok)
	assert.Equal(t, types.Any, fixed)
}

func TestMergeIncorporatesBounds(t *testing.T) {
	vt, outer, vs := newVars(1)
	T := vs[0]
	outer.AddSubtype(T, types.Number, argPos)

	inner := NewSystem()
	R := vt.New(nil)
	inner.AddSubtype(types.String, R, argPos)
	inner.AddSubtype(R, T, argPos)
	require.False(t, inner.HasErrors())

	outer.Merge(inner)
	require.True(t, outer.Has(R))
	require.True(t, outer.HasErrors(), "String is not a Number")
}

func TestStubConstraintsAreRecorded(t *testing.T) {
	_, sys, vs := newVars(1)
	stub := &types.Stub{Var: vs[0]}
	require.True(t, sys.AddSubtype(types.Int, stub, argPos))
	require.True(t, sys.AddSubtype(types.MutableListOf(stub), types.MutableListOf(types.Int), argPos))
	require.Len(t, sys.StubConstraints(), 3)
	require.False(t, sys.HasErrors())
}

func TestFunctionTypes(t *testing.T) {
	_, sys, vs := newVars(2)
	P, R := vs[0], vs[1]
	fn := types.NewFunc([]types.Type{types.Number}, types.Int)
	require.True(t, sys.AddSubtype(fn, types.NewFunc([]types.Type{P}, R), argPos))
	require.Equal(t, []types.Type{types.Number}, sys.ProperBounds(P, Upper, false))
	require.Equal(t, []types.Type{types.Int}, sys.ProperBounds(R, Lower, false))

	ref := &types.Func{Params: []types.Type{types.Int}, Return: types.Int, Reflective: true}
	require.False(t, sys.AddSubtype(ref, fn.Return, argPos))
	require.False(t, sys.AddSubtype(fn, ref, argPos))
}

func TestSubstitutor(t *testing.T) {
	_, sys, vs := newVars(2)
	sys.Fix(vs[1], types.String)
	sys.Fix(vs[0], types.ListOf(vs[1]))

	sub := sys.Substitutor()
	require.Equal(t, 2, sub.Len())
	assert.Equal(t, "List<String>", types.TypeString(sub.Apply(vs[0])))
	assert.Equal(t, "String", types.TypeString(sub.Apply(&types.Stub{Var: vs[1]})))

	var ids []int
	sub.Range(func(v *types.Var, _ types.Type) bool {
		ids = append(ids, v.Id())
		return true
	})
	require.Equal(t, []int{0, 1}, ids)
	require.Equal(t, 0, EmptySubstitutor().Len())
	require.Equal(t, 1, EmptySubstitutor().With(vs[0], types.Int).Len())
}
