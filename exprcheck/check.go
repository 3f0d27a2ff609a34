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

// Package exprcheck is a minimal expression checker for call sites. Calls, names, operators
// and callable references are resolved through the resolver of the resolution context; the
// remaining expressions are typed directly.
package exprcheck

import (
	"github.com/wdamron/calls"
	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/binding"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/flow"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

var _ calls.ExpressionChecker = (*Checker)(nil)

// Checker checks expressions for a resolver. A checker holds no state and may be shared.
type Checker struct{}

func New() *Checker { return &Checker{} }

// NewResolver creates a resolver which checks expressions with a new Checker.
func NewResolver(opts ...calls.Option) *calls.Resolver {
	return calls.NewResolver(New(), opts...)
}

// CheckExpression computes the type of e. Types of expressions which are not resolved as calls are
// recorded in the context's store; resolved calls are recorded when they are completed.
func (c *Checker) CheckExpression(rc *calls.ResolutionContext, e ast.Expr, expected types.Type) (types.Type, flow.Facts) {
	r := rc.Resolver
	switch e := e.(type) {
	case *ast.Literal:
		t := literalType(e)
		rc.Store.RecordType(e, t)
		return t, rc.Facts

	case *ast.This:
		recv := rc.Tower.Receiver(e.Label)
		if recv == nil {
			rc.Store.Report(diag.New(diag.UnresolvedReference, e, "'this' is not defined in this context"))
			return record(rc, e, types.NewError("no receiver")), rc.Facts
		}
		return record(rc, e, recv.Type), rc.Facts

	case *ast.Name, *ast.Select:
		return resultType(rc, e, r.ResolveVariableExpr(rc.WithExpected(expected), e))

	case *ast.Call:
		return resultType(rc, e, r.ResolveCallExpr(rc.WithExpected(expected), e))

	case *ast.Binary:
		return resultType(rc, e, r.ResolveBinaryExpr(rc.WithExpected(expected), e))

	case *ast.IndexSet:
		t, facts := resultType(rc, e, r.ResolveIndexSetExpr(rc, e))
		if !types.IsError(t) {
			t = types.Unit
		}
		return t, facts

	case *ast.CallableRef:
		return resultType(rc, e, r.ResolveCallableReferenceExpr(rc.WithExpected(expected), e))

	case *ast.Collection:
		arg := &calls.CollectionLiteralArgument{ArgumentInfo: calls.ArgumentInfo{Node: e, Facts: rc.Facts}, Literal: e}
		facts := rc.Facts
		for _, el := range e.Elems {
			var t types.Type
			t, facts = c.CheckExpression(rc.WithFacts(facts), el, nil)
			arg.Elements = append(arg.Elements, t)
		}
		t := calls.MakeResolutionCallbacks(rc.Store, rc.Session).CheckCollectionLiteral(rc, arg, expected)
		return record(rc, e, t), facts

	case *ast.Lambda:
		return c.checkLambda(rc, e, expected), rc.Facts

	case *ast.Return:
		if e.Value != nil {
			c.CheckExpression(rc, e.Value, nil)
		}
		return record(rc, e, types.Nothing), rc.Facts

	case *ast.Val:
		var declared types.Type
		if e.Type != nil {
			declared = c.ResolveTypeRef(e.Type, rc.Tower)
		}
		_, facts := c.CheckExpression(rc, e.Value, declared)
		return record(rc, e, types.Unit), facts

	case *ast.Bad:
		rc.Store.Report(diag.New(diag.ParseError, e, "%s", e.Reason))
		return record(rc, e, types.NewError(e.Reason)), rc.Facts
	}
	panic("exprcheck: unexpected expression " + e.ExprName())
}

func record(rc *calls.ResolutionContext, e ast.Expr, t types.Type) types.Type {
	rc.Store.RecordType(e, t)
	return t
}

// resultType returns the type of a resolved expression and the facts after it. Failed calls are
// recorded with an error type.
func resultType(rc *calls.ResolutionContext, e ast.Expr, result calls.Result) (types.Type, flow.Facts) {
	t := calls.ResultType(result)
	s, ok := result.(*calls.Success)
	if !ok {
		return record(rc, e, t), rc.Facts
	}
	return t, s.Candidate.Call.Facts
}

// checkLambda checks a lambda outside of an argument list. Its parameter types come from the
// expected functional type or from declarations.
func (c *Checker) checkLambda(rc *calls.ResolutionContext, e *ast.Lambda, expected types.Type) types.Type {
	fn, _ := expected.(*types.Func)
	pl := &calls.PostponedLambda{Arg: &calls.LambdaArgument{ArgumentInfo: calls.ArgumentInfo{Node: e, Facts: rc.Facts}, Lambda: e}}
	params := make([]types.Type, len(e.Params))
	for i, p := range e.Params {
		switch {
		case p.Type != nil:
			params[i] = c.ResolveTypeRef(p.Type, rc.Tower)
		case fn != nil && i < len(fn.Params):
			params[i] = fn.Params[i]
		default:
			rc.Store.Report(diag.New(diag.CannotInferParameterType, e, "cannot infer a type for this parameter: %s", p.Name))
			params[i] = types.NewError("uninferred " + p.Name)
		}
	}
	var receiver, ret types.Type
	if fn != nil {
		receiver, ret = fn.Receiver, fn.Return
		if !e.HasParams && len(e.Params) == 0 && len(fn.Params) == 1 {
			params = fn.Params
		}
	}
	res := calls.MakeResolutionCallbacks(rc.Store, rc.Session).AnalyzeLambda(rc, pl, receiver, params, ret, nil)
	t := &types.Func{Receiver: receiver, Params: params, Return: types.Unit}
	if !res.CoercedToUnit && len(res.ReturnTypes) > 0 {
		t.Return = types.CommonSupertype(res.ReturnTypes)
	}
	rc.Store.Record(binding.LambdaType, e, t)
	return record(rc, e, t)
}

func literalType(e *ast.Literal) types.Type {
	switch e.Kind {
	case ast.IntLit:
		return types.Int
	case ast.LongLit:
		return types.Long
	case ast.DoubleLit:
		return types.Double
	case ast.StringLit:
		return types.String
	case ast.CharLit:
		return types.Char
	case ast.BoolLit:
		return types.Boolean
	}
	return types.NewError("unknown literal")
}

// ResolveTypeRef resolves a written type against the classes of the tower's table. It returns nil
// for `_` and an error type for unknown names.
func (c *Checker) ResolveTypeRef(ref *ast.TypeRef, tw *tower.ScopeTower) types.Type {
	switch {
	case ref == nil || ref.Underscore:
		return nil
	case ref.IsFunc:
		fn := &types.Func{Params: make([]types.Type, len(ref.Params)), Return: types.Unit}
		if ref.Receiver != nil {
			fn.Receiver = c.resolveOrError(ref.Receiver, tw)
		}
		for i, p := range ref.Params {
			fn.Params[i] = c.resolveOrError(p, tw)
		}
		if ref.Return != nil {
			fn.Return = c.resolveOrError(ref.Return, tw)
		}
		return fn
	case ref.Name == "dynamic":
		return types.DynamicType
	}
	cls := tw.Table.Class(ref.Name)
	if cls == nil {
		return types.NewError("unresolved type " + ref.Name)
	}
	if len(ref.Args) != len(cls.Params) {
		return types.NewError("wrong number of type arguments for " + ref.Name)
	}
	args := make([]types.Type, len(ref.Args))
	for i, a := range ref.Args {
		args[i] = c.resolveOrError(a, tw)
	}
	return types.NewNamed(cls, args...)
}

func (c *Checker) resolveOrError(ref *ast.TypeRef, tw *tower.ScopeTower) types.Type {
	if t := c.ResolveTypeRef(ref, tw); t != nil {
		return t
	}
	return types.NewError("underscore is not allowed here")
}
