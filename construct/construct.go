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

package construct

import (
	"strconv"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/types"
)

// Types

// Type parameter: `T : Comparable<T>`
func TParam(name string, bounds ...types.Type) *types.Param {
	return &types.Param{Name: name, Bounds: bounds}
}

// Class with the given type parameters. Ids should start at types.FirstUserClassId.
func TClass(id int, name string, params ...*types.Param) *types.Class {
	return types.NewClass(id, name, params...)
}

// Class application: `Box<Int>`
func TNamed(c *types.Class, args ...types.Type) *types.Named {
	return types.NewNamed(c, args...)
}

// Function type: `(Int, String) -> Int`
func TFunc(params []types.Type, ret types.Type) *types.Func {
	return &types.Func{Params: params, Return: ret}
}

// Function type: `(Int) -> Int`
func TFunc1(param types.Type, ret types.Type) *types.Func {
	return &types.Func{Params: []types.Type{param}, Return: ret}
}

// Function type with receiver: `MutableList<E>.() -> Unit`
func TFuncWithReceiver(receiver types.Type, params []types.Type, ret types.Type) *types.Func {
	return &types.Func{Receiver: receiver, Params: params, Return: ret}
}

// Written type: `List<Int>`
func TRef(name string, args ...*ast.TypeRef) *ast.TypeRef {
	return &ast.TypeRef{Name: name, Args: args}
}

// Written type placeholder: `_`
func TUnderscore() *ast.TypeRef {
	return &ast.TypeRef{Name: "_", Underscore: true}
}

// Symbols

// Parameter: `x: Int`
func Param(name string, t types.Type) *symbols.Parameter {
	return &symbols.Parameter{Name: name, Type: t}
}

// Parameter with a default value: `x: Int = 0`
func DefaultParam(name string, t types.Type) *symbols.Parameter {
	return &symbols.Parameter{Name: name, Type: t, HasDefault: true}
}

// Vararg parameter: `vararg xs: Int`
func VarargParam(name string, elem types.Type) *symbols.Parameter {
	return &symbols.Parameter{Name: name, Type: elem, Vararg: true}
}

// Function: `fun name(params): ret`
func Fn(name string, ret types.Type, params ...*symbols.Parameter) *symbols.Function {
	return &symbols.Function{Common: symbols.Common{Name: name}, Params: params, Return: ret}
}

// Generic function: `fun <T> name(params): ret`
func GenericFn(name string, typeParams []*types.Param, ret types.Type, params ...*symbols.Parameter) *symbols.Function {
	return &symbols.Function{Common: symbols.Common{Name: name, TypeParams: typeParams}, Params: params, Return: ret}
}

// Extension function: `fun R.name(params): ret`
func ExtFn(receiver types.Type, name string, ret types.Type, params ...*symbols.Parameter) *symbols.Function {
	return &symbols.Function{Common: symbols.Common{Name: name, ExtensionReceiver: receiver}, Params: params, Return: ret}
}

// Property or local variable: `val name: T`
func Prop(name string, t types.Type) *symbols.Variable {
	return &symbols.Variable{Common: symbols.Common{Name: name}, Type: t}
}

// Scope declaring the given callables.
func Scope(name string, cs ...symbols.Callable) *symbols.MapScope {
	return symbols.NewScope(name).Declare(cs...)
}

// Prelude declares a few generic library functions:
//
//	fun <T> listOf(vararg elements: T): List<T>
//	fun <T> mutableListOf(): MutableList<T>
//	fun <T> emptyList(): List<T>
//	fun <E> buildList(builderAction: MutableList<E>.() -> Unit): List<E>
//	fun <R> run(block: () -> R): R
//	fun <T, R> T.let(block: (T) -> R): R
//	fun <T> T.also(block: (T) -> Unit): T
//	fun <T : Comparable<T>> maxOf(a: T, b: T): T
//	fun println(message: Any)
//
// The lambdas of buildList, run, let, and also are invoked exactly once.
func Prelude() *symbols.MapScope {
	once := func(param int) *symbols.Contract {
		return &symbols.Contract{CallsInPlace: []symbols.CallsInPlace{{Param: param, Kind: symbols.ExactlyOnce}}}
	}

	t := TParam("T")
	listOf := GenericFn("listOf", []*types.Param{t}, types.ListOf(t), VarargParam("elements", t))

	t = TParam("T")
	mutableListOf := GenericFn("mutableListOf", []*types.Param{t}, types.MutableListOf(t))

	t = TParam("T")
	emptyList := GenericFn("emptyList", []*types.Param{t}, types.ListOf(t))

	e := TParam("E")
	buildList := GenericFn("buildList", []*types.Param{e}, types.ListOf(e),
		Param("builderAction", TFuncWithReceiver(types.MutableListOf(e), nil, types.Unit)))
	buildList.Contract = once(0)

	r := TParam("R")
	run := GenericFn("run", []*types.Param{r}, r, Param("block", TFunc(nil, r)))
	run.Contract = once(0)

	t, r = TParam("T"), TParam("R")
	let := GenericFn("let", []*types.Param{t, r}, r, Param("block", TFunc1(t, r)))
	let.ExtensionReceiver = t
	let.Contract = once(0)

	t = TParam("T")
	also := GenericFn("also", []*types.Param{t}, t, Param("block", TFunc1(t, types.Unit)))
	also.ExtensionReceiver = t
	also.Contract = once(0)

	t = TParam("T")
	t.Bounds = []types.Type{TNamed(types.ComparableClass, t)}
	maxOf := GenericFn("maxOf", []*types.Param{t}, t, Param("a", t), Param("b", t))

	print := Fn("println", types.Unit, Param("message", types.Any))

	return Scope("prelude", listOf, mutableListOf, emptyList, buildList, run, let, also, maxOf, print)
}

// Expressions

// Integer literal: `1`
func Int(v int) *ast.Literal {
	return &ast.Literal{Kind: ast.IntLit, Syntax: strconv.Itoa(v)}
}

// String literal: `"x"`
func Str(s string) *ast.Literal {
	return &ast.Literal{Kind: ast.StringLit, Syntax: strconv.Quote(s)}
}

// Boolean literal: `true`
func Bool(b bool) *ast.Literal {
	return &ast.Literal{Kind: ast.BoolLit, Syntax: strconv.FormatBool(b)}
}

// Name: `x`
func Name(name string) *ast.Name {
	return &ast.Name{Name: name}
}

// Receiver: `this@label`
func This(label string) *ast.This {
	return &ast.This{Label: label}
}

// Call without a receiver: `f(a, b)`
func Call(name string, args ...ast.Expr) *ast.Call {
	return &ast.Call{Name: name, Args: positional(args)}
}

// Call on a receiver: `r.f(a, b)`
func CallOn(receiver ast.Expr, name string, args ...ast.Expr) *ast.Call {
	return &ast.Call{Receiver: receiver, Name: name, Args: positional(args)}
}

// Call with named or spread arguments: `f(a, name = b)`
func CallArgs(name string, args ...*ast.Argument) *ast.Call {
	return &ast.Call{Name: name, Args: args}
}

// Invocation of an expression: `(f)(a)`
func Invoke(callee ast.Expr, args ...ast.Expr) *ast.Call {
	return &ast.Call{Callee: callee, Args: positional(args)}
}

// Trailing adds lambdas after the parentheses of a call: `f(a) { ... }`
func Trailing(call *ast.Call, lambdas ...*ast.Lambda) *ast.Call {
	call.Trailing = append(call.Trailing, lambdas...)
	return call
}

// TypeArgs adds explicit type arguments to a call: `f<Int>()`
func TypeArgs(call *ast.Call, args ...*ast.TypeRef) *ast.Call {
	call.TypeArgs = append(call.TypeArgs, args...)
	return call
}

func positional(values []ast.Expr) []*ast.Argument {
	args := make([]*ast.Argument, len(values))
	for i, v := range values {
		args[i] = &ast.Argument{Value: v}
	}
	return args
}

// Positional argument: `a`
func Arg(value ast.Expr) *ast.Argument {
	return &ast.Argument{Value: value}
}

// Named argument: `name = a`
func NamedArg(name string, value ast.Expr) *ast.Argument {
	return &ast.Argument{Name: name, Value: value}
}

// Spread argument: `*xs`
func SpreadArg(value ast.Expr) *ast.Argument {
	return &ast.Argument{Spread: true, Value: value}
}

// Lambda with a parameter list: `{ x, y -> body }`
func Lambda(params []string, body ...ast.Expr) *ast.Lambda {
	l := &ast.Lambda{HasParams: true, Body: body}
	for _, p := range params {
		l.Params = append(l.Params, &ast.LambdaParam{Name: p})
	}
	return l
}

// Lambda without a parameter list: `{ body }`
func Block(body ...ast.Expr) *ast.Lambda {
	return &ast.Lambda{Body: body}
}

// Labeled lambda: `label@{ body }`
func Labeled(label string, l *ast.Lambda) *ast.Lambda {
	l.Label = label
	return l
}

// Return from a lambda: `return@label value`
func Return(label string, value ast.Expr) *ast.Return {
	return &ast.Return{Label: label, Value: value}
}

// Callable reference without a left-hand side: `::f`
func Ref(name string) *ast.CallableRef {
	return &ast.CallableRef{Name: name}
}

// Bound callable reference: `x::f`
func BoundRef(receiver ast.Expr, name string) *ast.CallableRef {
	return &ast.CallableRef{Receiver: receiver, Name: name}
}

// Unbound callable reference: `String::length`
func TypeRef(receiver *ast.TypeRef, name string) *ast.CallableRef {
	return &ast.CallableRef{ReceiverType: receiver, Name: name}
}

// Property access: `r.p`
func Select(receiver ast.Expr, name string) *ast.Select {
	return &ast.Select{Receiver: receiver, Name: name}
}

// Binary operator: `a % b`
func Binary(op string, left, right ast.Expr) *ast.Binary {
	return &ast.Binary{Op: op, Left: left, Right: right}
}

// Indexed assignment: `r[i] = v`
func IndexSet(receiver ast.Expr, value ast.Expr, indices ...ast.Expr) *ast.IndexSet {
	return &ast.IndexSet{Receiver: receiver, Indices: indices, Value: value}
}

// Collection literal: `[a, b]`
func Collection(elems ...ast.Expr) *ast.Collection {
	return &ast.Collection{Elems: elems}
}

// Local value: `val name = value`
func Val(name string, value ast.Expr) *ast.Val {
	return &ast.Val{Name: name, Value: value}
}

// Malformed expression
func Bad(reason string) *ast.Bad {
	return &ast.Bad{Reason: reason}
}
