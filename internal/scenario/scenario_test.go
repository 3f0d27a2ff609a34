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

package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/calls"
	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/binding"
	"github.com/wdamron/calls/exprcheck"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/types"
)

func TestParseType(t *testing.T) {
	ref, err := ParseType("Map<K, List<V>>")
	require.NoError(t, err)
	assert.Equal(t, "Map", ref.Name)
	require.Len(t, ref.Args, 2)
	assert.Equal(t, "List", ref.Args[1].Name)
	assert.Equal(t, "V", ref.Args[1].Args[0].Name)

	ref, err = ParseType("(Int, String) -> Boolean")
	require.NoError(t, err)
	assert.True(t, ref.IsFunc)
	assert.Nil(t, ref.Receiver)
	assert.Len(t, ref.Params, 2)
	assert.Equal(t, "Boolean", ref.Return.Name)

	ref, err = ParseType("MutableList<E>.() -> Unit")
	require.NoError(t, err)
	assert.True(t, ref.IsFunc)
	assert.Equal(t, "MutableList", ref.Receiver.Name)
	assert.Empty(t, ref.Params)

	ref, err = ParseType("(Int)")
	require.NoError(t, err)
	assert.False(t, ref.IsFunc)
	assert.Equal(t, "Int", ref.Name)

	ref, err = ParseType("_")
	require.NoError(t, err)
	assert.True(t, ref.Underscore)

	for _, bad := range []string{"", "List<Int", "(Int, String)", "Int?", "List<>"} {
		_, err := ParseType(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseTypeParam(t *testing.T) {
	d, err := ParseTypeParam("out T : Comparable<T>")
	require.NoError(t, err)
	assert.Equal(t, "T", d.Name)
	assert.Equal(t, types.Out, d.Variance)
	require.NotNil(t, d.Bound)
	assert.Equal(t, "Comparable", d.Bound.Name)

	d, err = ParseTypeParam("reified R")
	require.NoError(t, err)
	assert.True(t, d.Reified)
	assert.Nil(t, d.Bound)

	_, err = ParseTypeParam("in : Int")
	assert.Error(t, err)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("name: x\nexpr: {int: 1}\nunknown: 1\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("name: no expression\n"))
	assert.Error(t, err)
}

func TestBuildReportsUnknownTypes(t *testing.T) {
	ss, err := Parse([]byte(`
name: unknown type
functions:
  - {fun: f, params: [{name: x, type: Missing}]}
expr: {call: f}
`))
	require.NoError(t, err)
	_, err = ss[0].Build()
	assert.ErrorContains(t, err, "unknown type Missing")
}

func TestBuildDeclarations(t *testing.T) {
	ss, err := Parse([]byte(`
name: declarations
settings:
  features: {operator_rem: false}
classes:
  - name: Box
    params: ["out T : Comparable<T>"]
    supertypes: ["List<T>"]
    members:
      - {fun: get, params: [{name: i, type: Int}], returns: T, operator: true}
  - name: Registry
    object: true
    statics:
      - {val: default, type: "Box<Int>"}
functions:
  - fun: each
    type_params: [T]
    receiver: "List<T>"
    params: [{name: block, type: "(T) -> Unit"}]
    calls_in_place: {0: at_least_once}
locals:
  - {val: b, type: "Box<Int>"}
receiver: Registry
expected: Int
expr: {call: get, on: {name: b}, args: [{int: 0}]}
`))
	require.NoError(t, err)
	site, err := ss[0].Build()
	require.NoError(t, err)

	assert.False(t, site.Settings.Features.OperatorRem)
	assert.True(t, site.Settings.Features.BuilderInference)

	box := site.Table.Class("Box")
	require.NotNil(t, box)
	assert.Equal(t, types.Out, box.Params[0].Variance)
	assert.Equal(t, "Comparable<T>", types.TypeString(box.Params[0].Bounds[0]))
	assert.True(t, box.HasSuperClass(types.ListClass))
	assert.True(t, site.Table.Class("Registry").Object)
	assert.Len(t, site.Table.Statics(site.Table.Class("Registry")).Variables("default"), 1)

	b := site.Tower.LocalVariable("b")
	require.NotNil(t, b)
	assert.True(t, b.Local)
	assert.Equal(t, "Box<Int>", types.TypeString(b.Type))

	each := site.Tower.Lexical[2].Scope.Functions("each")
	require.Len(t, each, 1)
	require.NotNil(t, each[0].Contract)
	assert.Equal(t, symbols.AtLeastOnce, each[0].Contract.CallsInPlace[0].Kind)

	require.NotNil(t, site.Tower.Receiver(""))
	assert.Equal(t, "Registry", types.TypeString(site.Tower.Receiver("").Type))
	assert.Equal(t, types.Int, site.Expected)
	_, isCall := site.Expr.(*ast.Call)
	assert.True(t, isCall)
}

func run(t *testing.T, src string) *Outcome {
	t.Helper()
	ss, err := Parse([]byte(src))
	require.NoError(t, err)
	site, err := ss[0].Build()
	require.NoError(t, err)
	return site.Run(context.Background(), exprcheck.NewResolver())
}

func TestMostSpecificOverload(t *testing.T) {
	out := run(t, `
name: overloads
functions:
  - {fun: foo, params: [{name: a, type: Int}, {name: b, type: String}], returns: Int}
  - {fun: foo, params: [{name: a, type: Any}, {name: b, type: Any}], returns: String}
expr: {call: foo, args: [{int: 1}, {str: x}]}
`)
	require.Equal(t, calls.NoError, out.Kind)
	call := out.Call()
	require.NotNil(t, call)
	assert.Equal(t, "Int", types.TypeString(call.ReturnType))
	assert.Len(t, call.ArgumentMap(), 2)
	for arg, p := range call.ArgumentMap() {
		switch arg.Info().Node.(*ast.Literal).Kind {
		case ast.IntLit:
			assert.Equal(t, "a", p.Name)
		case ast.StringLit:
			assert.Equal(t, "b", p.Name)
		}
	}
}

func TestTrailingLambdaOnMember(t *testing.T) {
	out := run(t, `
name: member with lambda
classes:
  - name: Obj
    members:
      - {fun: bar, params: [{name: f, type: "(Int) -> Int"}], returns: Int}
locals:
  - {val: obj, type: Obj}
expr:
  call: bar
  on: {name: obj}
  trailing:
    - body: [{op: "+", left: {name: it}, right: {int: 1}}]
`)
	require.Equal(t, calls.NoError, out.Kind)
	assert.Equal(t, "Int", types.TypeString(out.Type))
	lambda := out.Call().Call.External.(*calls.LambdaArgument).Lambda
	lt, ok := out.Store.Get(binding.LambdaType, lambda)
	require.True(t, ok)
	assert.Equal(t, "(Int) -> Int", types.TypeString(lt.(types.Type)))
	_, coerced := out.Store.Get(binding.CoercedToUnit, lambda)
	assert.False(t, coerced)
}

func TestBuilderInference(t *testing.T) {
	out := run(t, `
name: buildList
prelude: true
expr:
  call: buildList
  trailing:
    - body: [{call: add, args: [{int: 1}]}]
`)
	require.Equal(t, calls.NoError, out.Kind)
	assert.Equal(t, "List<Int>", types.TypeString(out.Type))
	assert.Empty(t, out.Diagnostics())
}

func TestHiddenOnly(t *testing.T) {
	out := run(t, `
name: hidden
functions:
  - {fun: gone, deprecated: hidden}
expr: {call: gone}
`)
	nf, ok := out.Result.(*calls.NoneFound)
	require.True(t, ok)
	assert.True(t, nf.Hidden)
	assert.Equal(t, calls.NoneApplicable, out.Kind)
	assert.True(t, types.IsError(out.Type))
}

func TestRemainderAlias(t *testing.T) {
	out := run(t, `
name: rem alias
settings:
  features: {operator_rem: true}
classes:
  - name: Money
    members:
      - {fun: mod, operator: true, params: [{name: other, type: Int}], returns: Money}
locals:
  - {val: m, type: Money}
expr: {op: "%", left: {name: m}, right: {int: 3}}
`)
	require.Equal(t, calls.NoError, out.Kind)
	require.NotNil(t, out.Call())
	assert.Equal(t, "mod", out.Call().Symbol.CallableName())
	assert.Equal(t, "Money", types.TypeString(out.Type))
}

func TestNonCallExpression(t *testing.T) {
	out := run(t, `
name: collection literal
expected: "List<Number>"
expr: {list: [{int: 1}, {int: 2}]}
`)
	assert.Nil(t, out.Result)
	assert.Equal(t, "List<Number>", types.TypeString(out.Type))
}

func TestLoadTestdata(t *testing.T) {
	ss, err := Load("testdata/basics.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, ss)

	r := exprcheck.NewResolver()
	for _, s := range ss {
		t.Run(s.Name, func(t *testing.T) {
			site, err := s.Build()
			require.NoError(t, err)
			out := site.Run(context.Background(), r)
			assert.Equal(t, calls.NoError, out.Kind, "%v", out.Diagnostics())
			assert.Empty(t, out.Diagnostics())
			assert.False(t, types.IsError(out.Type), types.TypeString(out.Type))
		})
	}
}
