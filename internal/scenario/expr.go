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
	"fmt"
	"strings"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/construct"
)

// ExprSpec describes an expression. Exactly one of the leading fields selects its kind; the
// remaining fields qualify it.
//
//	{int: 1}                                  1
//	{name: x}                                 x
//	{this: ""}                                this
//	{call: f, args: [{int: 1}]}               f(1)
//	{call: f, on: {name: r}}                  r.f()
//	{invoke: {name: f}, args: [...]}          (f)(...)
//	{select: p, on: {name: r}}                r.p
//	{op: "%", left: ..., right: ...}          a % b
//	{index: [{int: 0}], on: ..., value: ...}  r[0] = v
//	{ref: f, ref_type: String}                String::f
//	{list: [...]}                             [a, b]
//	{lambda: {params: [x], body: [...]}}      { x -> ... }
//	{return: {label: l, value: ...}}          return@l ...
//	{val: x, type: Int, value: ...}           val x: Int = ...
//	{bad: reason}
type ExprSpec struct {
	Int  *int    `yaml:"int"`
	Str  *string `yaml:"str"`
	Bool *bool   `yaml:"bool"`
	Name string  `yaml:"name"`
	// This holds the label of a receiver reference; an empty string selects the innermost one.
	This   *string     `yaml:"this"`
	Call   string      `yaml:"call"`
	Invoke *ExprSpec   `yaml:"invoke"`
	Select string      `yaml:"select"`
	Op     string      `yaml:"op"`
	Index  []*ExprSpec `yaml:"index"`
	Ref    string      `yaml:"ref"`
	List   []*ExprSpec `yaml:"list"`
	Lambda *LambdaSpec `yaml:"lambda"`
	Return *ReturnSpec `yaml:"return"`
	Val    string      `yaml:"val"`
	Bad    string      `yaml:"bad"`

	// On is the explicit receiver of a call, a property access, an indexed assignment, or a
	// bound callable reference.
	On       *ExprSpec     `yaml:"on"`
	TypeArgs []string      `yaml:"type_args"`
	Args     []*ArgSpec    `yaml:"args"`
	Trailing []*LambdaSpec `yaml:"trailing"`
	Infix    bool          `yaml:"infix"`
	Left     *ExprSpec     `yaml:"left"`
	Right    *ExprSpec     `yaml:"right"`
	// RefType is the type on the left-hand side of an unbound callable reference.
	RefType string `yaml:"ref_type"`
	// Type is the declared type of a local value.
	Type  string    `yaml:"type"`
	Value *ExprSpec `yaml:"value"`
}

// ArgSpec is an argument in parentheses.
type ArgSpec struct {
	ExprSpec `yaml:",inline"`

	ArgName string `yaml:"arg_name"`
	Spread  bool   `yaml:"spread"`
}

// LambdaSpec describes a lambda literal. Params are written as `x` or `x: Int`; Arrow marks an
// explicit parameter list, which may be empty.
type LambdaSpec struct {
	Params []string    `yaml:"params"`
	Arrow  bool        `yaml:"arrow"`
	Label  string      `yaml:"label"`
	Body   []*ExprSpec `yaml:"body"`
}

type ReturnSpec struct {
	Label string    `yaml:"label"`
	Value *ExprSpec `yaml:"value"`
}

// Build converts the description into an expression tree. Every call builds new nodes.
func (e *ExprSpec) Build() (ast.Expr, error) {
	switch {
	case e == nil:
		return nil, fmt.Errorf("missing expression")
	case e.Int != nil:
		return construct.Int(*e.Int), nil
	case e.Str != nil:
		return construct.Str(*e.Str), nil
	case e.Bool != nil:
		return construct.Bool(*e.Bool), nil
	case e.Name != "":
		return construct.Name(e.Name), nil
	case e.This != nil:
		return construct.This(*e.This), nil
	case e.Call != "", e.Invoke != nil:
		return e.buildCall()
	case e.Select != "":
		recv, err := e.On.Build()
		if err != nil {
			return nil, fmt.Errorf("receiver of .%s: %w", e.Select, err)
		}
		return construct.Select(recv, e.Select), nil
	case e.Op != "":
		left, err := e.Left.Build()
		if err != nil {
			return nil, fmt.Errorf("left operand of %s: %w", e.Op, err)
		}
		right, err := e.Right.Build()
		if err != nil {
			return nil, fmt.Errorf("right operand of %s: %w", e.Op, err)
		}
		return construct.Binary(e.Op, left, right), nil
	case e.Index != nil:
		return e.buildIndexSet()
	case e.Ref != "":
		return e.buildRef()
	case e.List != nil:
		elems, err := buildAll(e.List)
		if err != nil {
			return nil, err
		}
		return construct.Collection(elems...), nil
	case e.Lambda != nil:
		return e.Lambda.Build()
	case e.Return != nil:
		ret := construct.Return(e.Return.Label, nil)
		if e.Return.Value != nil {
			v, err := e.Return.Value.Build()
			if err != nil {
				return nil, err
			}
			ret.Value = v
		}
		return ret, nil
	case e.Val != "":
		v, err := e.Value.Build()
		if err != nil {
			return nil, fmt.Errorf("value of %s: %w", e.Val, err)
		}
		val := construct.Val(e.Val, v)
		if e.Type != "" {
			if val.Type, err = ParseType(e.Type); err != nil {
				return nil, err
			}
		}
		return val, nil
	case e.Bad != "":
		return construct.Bad(e.Bad), nil
	}
	return nil, fmt.Errorf("expression of unknown kind")
}

func buildAll(specs []*ExprSpec) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(specs))
	for i, s := range specs {
		e, err := s.Build()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (e *ExprSpec) buildCall() (ast.Expr, error) {
	call := &ast.Call{Name: e.Call, Infix: e.Infix}
	var err error
	switch {
	case e.Invoke != nil:
		if call.Callee, err = e.Invoke.Build(); err != nil {
			return nil, fmt.Errorf("invoked expression: %w", err)
		}
	case e.On != nil:
		if call.Receiver, err = e.On.Build(); err != nil {
			return nil, fmt.Errorf("receiver of %s: %w", e.Call, err)
		}
	}
	for _, ta := range e.TypeArgs {
		ref, err := ParseType(ta)
		if err != nil {
			return nil, err
		}
		call.TypeArgs = append(call.TypeArgs, ref)
	}
	for i, a := range e.Args {
		v, err := a.ExprSpec.Build()
		if err != nil {
			return nil, fmt.Errorf("argument %d of %s: %w", i, e.Call, err)
		}
		call.Args = append(call.Args, &ast.Argument{Name: a.ArgName, Spread: a.Spread, Value: v})
	}
	for _, l := range e.Trailing {
		lambda, err := l.Build()
		if err != nil {
			return nil, err
		}
		call.Trailing = append(call.Trailing, lambda)
	}
	return call, nil
}

func (e *ExprSpec) buildIndexSet() (ast.Expr, error) {
	recv, err := e.On.Build()
	if err != nil {
		return nil, fmt.Errorf("indexed receiver: %w", err)
	}
	indices, err := buildAll(e.Index)
	if err != nil {
		return nil, err
	}
	value, err := e.Value.Build()
	if err != nil {
		return nil, fmt.Errorf("assigned value: %w", err)
	}
	return construct.IndexSet(recv, value, indices...), nil
}

func (e *ExprSpec) buildRef() (ast.Expr, error) {
	switch {
	case e.RefType != "":
		t, err := ParseType(e.RefType)
		if err != nil {
			return nil, err
		}
		return construct.TypeRef(t, e.Ref), nil
	case e.On != nil:
		recv, err := e.On.Build()
		if err != nil {
			return nil, err
		}
		return construct.BoundRef(recv, e.Ref), nil
	}
	return construct.Ref(e.Ref), nil
}

// Build converts the description into a lambda literal.
func (l *LambdaSpec) Build() (*ast.Lambda, error) {
	body, err := buildAll(l.Body)
	if err != nil {
		return nil, err
	}
	lambda := &ast.Lambda{HasParams: l.Arrow || len(l.Params) > 0, Body: body, Label: l.Label}
	for _, p := range l.Params {
		name, typ, typed := strings.Cut(p, ":")
		param := &ast.LambdaParam{Name: strings.TrimSpace(name)}
		if typed {
			if param.Type, err = ParseType(typ); err != nil {
				return nil, err
			}
		}
		lambda.Params = append(lambda.Params, param)
	}
	return lambda, nil
}
