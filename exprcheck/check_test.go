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

package exprcheck_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/wdamron/calls/construct"

	"github.com/wdamron/calls"
	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/binding"
	"github.com/wdamron/calls/config"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/exprcheck"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

func newContext() (*calls.ResolutionContext, *binding.Store) {
	r := exprcheck.NewResolver()
	tw := tower.NewScopeTower(symbols.NewTable(), config.Default(), Prelude())
	store := binding.New()
	return calls.NewContext(context.Background(), r, tw, store), store
}

func check(rc *calls.ResolutionContext, e ast.Expr, expected types.Type) types.Type {
	t, _ := rc.Resolver.Checker.CheckExpression(rc, e, expected)
	return t
}

func kinds(store *binding.Store) []diag.Kind {
	var ks []diag.Kind
	for _, d := range store.Diagnostics() {
		ks = append(ks, d.Kind)
	}
	return ks
}

func TestLiterals(t *testing.T) {
	rc, store := newContext()
	for e, want := range map[ast.Expr]types.Type{
		Int(1):      types.Int,
		Str("x"):    types.String,
		Bool(false): types.Boolean,
	} {
		assert.Equal(t, want, check(rc, e, nil))
		assert.Equal(t, want, store.TypeOf(e))
	}
}

func TestFailures(t *testing.T) {
	rc, store := newContext()
	this := This("")
	assert.True(t, types.IsError(check(rc, this, nil)))
	assert.Contains(t, kinds(store), diag.UnresolvedReference)

	rc, store = newContext()
	bad := Bad("unexpected token")
	assert.True(t, types.IsError(check(rc, bad, nil)))
	assert.Equal(t, []diag.Kind{diag.ParseError}, kinds(store))
	assert.True(t, types.IsError(store.TypeOf(bad)))
}

func TestCallsThroughResolver(t *testing.T) {
	rc, store := newContext()
	call := Call("listOf", Int(1), Int(2))
	assert.Equal(t, "List<Int>", types.TypeString(check(rc, call, nil)))
	_, ok := store.CallOf(call)
	assert.True(t, ok)

	rc, store = newContext()
	missing := Call("missing")
	assert.True(t, types.IsError(check(rc, missing, nil)))
	assert.True(t, types.IsError(store.TypeOf(missing)))
}

func TestLambdaWithExpectedType(t *testing.T) {
	rc, store := newContext()
	lambda := Block(Binary("+", Name("it"), Int(1)))
	got := check(rc, lambda, TFunc1(types.Int, types.Int))
	assert.Equal(t, "(Int) -> Int", types.TypeString(got))
	lt, ok := store.Get(binding.LambdaType, lambda)
	require.True(t, ok)
	assert.Equal(t, got, lt)

	rc, store = newContext()
	check(rc, Lambda([]string{"x"}, Name("x")), nil)
	assert.Contains(t, kinds(store), diag.CannotInferParameterType)
}

func TestCollectionAndVal(t *testing.T) {
	rc, _ := newContext()
	list := Collection(Int(1), Int(2))
	assert.Equal(t, "List<Number>", types.TypeString(check(rc, list, types.ListOf(types.Number))))

	rc, store := newContext()
	val := Val("xs", Call("listOf", Int(1)))
	assert.Equal(t, types.Unit, check(rc, val, nil))
	assert.Equal(t, "List<Int>", types.TypeString(store.TypeOf(val.Value)))
}

func TestResolveTypeRef(t *testing.T) {
	c := exprcheck.New()
	tw := tower.NewScopeTower(symbols.NewTable(), config.Default())

	assert.Nil(t, c.ResolveTypeRef(TUnderscore(), tw))
	assert.Equal(t, "List<Int>", types.TypeString(c.ResolveTypeRef(TRef("List", TRef("Int")), tw)))
	assert.Equal(t, types.DynamicType, c.ResolveTypeRef(TRef("dynamic"), tw))
	assert.True(t, types.IsError(c.ResolveTypeRef(TRef("Missing"), tw)))
	assert.True(t, types.IsError(c.ResolveTypeRef(TRef("List"), tw)))

	fn := &ast.TypeRef{IsFunc: true, Receiver: TRef("String"), Params: []*ast.TypeRef{TRef("Int")}, Return: TRef("Boolean")}
	assert.Equal(t, "String.(Int) -> Boolean", types.TypeString(c.ResolveTypeRef(fn, tw)))

	fn = &ast.TypeRef{IsFunc: true, Params: []*ast.TypeRef{TUnderscore()}}
	ft := c.ResolveTypeRef(fn, tw).(*types.Func)
	assert.True(t, types.IsError(ft.Params[0]))
	assert.Equal(t, types.Unit, ft.Return)
}
