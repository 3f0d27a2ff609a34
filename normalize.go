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

package calls

import (
	"strings"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/binding"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/flow"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

// NormalizeCall classifies the receiver, the type arguments, and the arguments of a call
// expression. Arguments are not checked against any parameter. Flow facts are threaded from
// left to right; the trailing lambda is normalized last.
func (r *Resolver) NormalizeCall(rc *ResolutionContext, e *ast.Call) *Call {
	call := &Call{Node: e, Name: e.Name, Kind: FunctionCall, Infix: e.Infix, Operator: e.Operator}
	facts := rc.Facts
	switch {
	case e.Callee != nil:
		var t types.Type
		t, facts = r.checkIndependent(rc, e.Callee)
		value := tower.NewReceiver(t, e.Callee).WithSmartCasts(smartCasts(rc.Facts, e.Callee))
		call.Kind, call.Name, call.Operator = InvokeCall, "invoke", true
		call.Explicit, call.DispatchReceiverForInvoke = value, value
	case e.Receiver != nil:
		call.Explicit, facts = r.normalizeReceiver(rc, e.Receiver)
	}
	call.TypeArgs = r.normalizeTypeArgs(rc, call, e.TypeArgs)

	for _, a := range e.Args {
		var arg Argument
		arg, facts = r.normalizeArgument(rc, call, a.Value, a.Name, a.Spread, facts)
		call.Args = append(call.Args, arg)
	}
	if len(e.Trailing) > 0 {
		for _, extra := range e.Trailing[1:] {
			call.Diagnostics = append(call.Diagnostics, diag.New(diag.ManyLambdaExpressionArguments, extra,
				"only one lambda expression is allowed outside a parenthesized argument list"))
		}
		var arg Argument
		arg, facts = r.normalizeArgument(rc, call, e.Trailing[0], "", false, facts)
		arg.(*LambdaArgument).External = true
		call.External = arg
	}
	call.Facts = facts
	return call
}

func (r *Resolver) checkIndependent(rc *ResolutionContext, e ast.Expr) (types.Type, flow.Facts) {
	return r.Checker.CheckExpression(rc.independent(), e, nil)
}

// smartCasts returns the types known for a stable value from flow facts.
func smartCasts(facts flow.Facts, e ast.Expr) []types.Type {
	switch e := e.(type) {
	case *ast.Name:
		return facts.Types(e.Name)
	case *ast.This:
		return facts.Types("this")
	}
	return nil
}

// normalizeReceiver classifies an explicit receiver. A class name which is not shadowed by a
// local variable is a qualifier; anything else is an expression resolved on its own.
func (r *Resolver) normalizeReceiver(rc *ResolutionContext, e ast.Expr) (tower.ExplicitReceiver, flow.Facts) {
	if n, ok := e.(*ast.Name); ok && rc.Tower.LocalVariable(n.Name) == nil {
		if cls := rc.Tower.Table.Class(n.Name); cls != nil {
			q := &tower.Qualifier{Name: n.Name, Static: rc.Tower.Table.Statics(cls)}
			if cls.Object {
				q.Object = tower.NewReceiver(types.NewNamed(cls), e)
			}
			return q, rc.Facts
		}
	}
	t, facts := r.checkIndependent(rc, e)
	return tower.NewReceiver(t, e).WithSmartCasts(smartCasts(rc.Facts, e)), facts
}

func (r *Resolver) normalizeTypeArgs(rc *ResolutionContext, call *Call, refs []*ast.TypeRef) []TypeArgument {
	if len(refs) == 0 {
		return nil
	}
	args := make([]TypeArgument, len(refs))
	for i, ref := range refs {
		if ref.Underscore {
			if !rc.Tower.Settings.Features.UnderscoredTypeArguments {
				call.Diagnostics = append(call.Diagnostics, diag.New(diag.UnderscoreTypeArgumentUnsupported, call.Node,
					"underscored type arguments are not supported"))
			}
			args[i] = TypeArgument{Underscore: true, Ref: ref}
			continue
		}
		args[i] = TypeArgument{Type: r.Checker.ResolveTypeRef(ref, rc.Tower), Ref: ref}
	}
	return args
}

// normalizeArgument classifies one argument expression. Nested calls are resolved in dependent
// mode; their variables are inferred together with the enclosing call.
func (r *Resolver) normalizeArgument(rc *ResolutionContext, call *Call, e ast.Expr, name string, spread bool, facts flow.Facts) (Argument, flow.Facts) {
	info := ArgumentInfo{Node: e, Name: name, Spread: spread, Facts: facts}
	arc := rc.WithFacts(facts)
	switch e := e.(type) {
	case *ast.Lambda:
		if spread {
			call.Diagnostics = append(call.Diagnostics, diag.New(diag.SpreadOnFunctionalArgument, e, "spread operator applied to a lambda"))
		}
		arg := &LambdaArgument{ArgumentInfo: info, Lambda: e}
		for i, p := range e.Params {
			if p.Type == nil {
				continue
			}
			if arg.ParamTypes == nil {
				arg.ParamTypes = make([]types.Type, len(e.Params))
			}
			arg.ParamTypes[i] = r.Checker.ResolveTypeRef(p.Type, rc.Tower)
		}
		return arg, facts

	case *ast.CallableRef:
		if spread {
			call.Diagnostics = append(call.Diagnostics, diag.New(diag.SpreadOnFunctionalArgument, e, "spread operator applied to a callable reference"))
		}
		lhs, after := r.referenceLHS(arc, e)
		return &CallableReferenceArgument{ArgumentInfo: info, Ref: e, LHS: lhs}, after

	case *ast.Collection:
		arg := &CollectionLiteralArgument{ArgumentInfo: info, Literal: e}
		after := facts
		for _, el := range e.Elems {
			var t types.Type
			t, after = r.checkIndependent(arc.WithFacts(after), el)
			arg.Elements = append(arg.Elements, t)
		}
		return arg, after

	case *ast.Bad:
		return &ParseErrorArgument{ArgumentInfo: info, Reason: e.Reason}, facts

	case *ast.Call, *ast.Binary:
		if s, ok := r.ResolveExpr(arc.dependent(), e).(*Success); ok {
			return &SubCallArgument{ArgumentInfo: info, Candidate: s.Candidate}, s.Candidate.Call.Facts
		}
		return &ExpressionArgument{ArgumentInfo: info, Type: types.NewError("unresolved " + ast.ExprString(e)), PreviousError: true}, facts
	}
	t, after := r.checkIndependent(arc, e)
	return &ExpressionArgument{ArgumentInfo: info, Type: t, SmartCasts: smartCasts(facts, e)}, after
}

// referenceLHS classifies the left-hand side of a callable reference. A class name which is not
// shadowed by a local variable is a type: `String::length`
func (r *Resolver) referenceLHS(rc *ResolutionContext, ref *ast.CallableRef) (CallableReferenceLHS, flow.Facts) {
	switch {
	case ref.ReceiverType != nil:
		return &TypeLHS{Type: r.Checker.ResolveTypeRef(ref.ReceiverType, rc.Tower)}, rc.Facts
	case ref.Receiver != nil:
		if n, ok := ref.Receiver.(*ast.Name); ok && rc.Tower.LocalVariable(n.Name) == nil {
			if cls := rc.Tower.Table.Class(n.Name); cls != nil {
				return &TypeLHS{Type: starProjection(cls)}, rc.Facts
			}
		}
		t, facts := r.checkIndependent(rc, ref.Receiver)
		return &ExpressionLHS{Receiver: tower.NewReceiver(t, ref.Receiver).WithSmartCasts(smartCasts(rc.Facts, ref.Receiver))}, facts
	}
	return NoLHS{}, rc.Facts
}

// starProjection applies a class to the upper bounds of its type parameters.
func starProjection(cls *types.Class) *types.Named {
	args := make([]types.Type, len(cls.Params))
	for i, p := range cls.Params {
		args[i] = types.Any
		if len(p.Bounds) > 0 {
			args[i] = p.Bounds[0]
		}
	}
	return types.NewNamed(cls, args...)
}

// ResolveExpr resolves an expression which is resolved as a call: calls, operators, indexed
// assignments, names, property accesses, and callable references.
func (r *Resolver) ResolveExpr(rc *ResolutionContext, e ast.Expr) Result {
	switch e := e.(type) {
	case *ast.Call:
		return r.ResolveCallExpr(rc, e)
	case *ast.Binary:
		return r.ResolveBinaryExpr(rc, e)
	case *ast.IndexSet:
		return r.ResolveIndexSetExpr(rc, e)
	case *ast.Name, *ast.Select:
		return r.ResolveVariableExpr(rc, e)
	case *ast.CallableRef:
		return r.ResolveCallableReferenceExpr(rc, e)
	}
	panic("calls: " + e.ExprName() + " is not resolved as a call")
}

// ResolveCallExpr normalizes and resolves a call expression: `r.f<T>(a) { ... }` or `(f)(a)`.
func (r *Resolver) ResolveCallExpr(rc *ResolutionContext, e *ast.Call) Result {
	return r.resolveNormalized(rc, r.NormalizeCall(rc, e))
}

// ResolveVariableExpr resolves a name or a property access: `x`, `r.p`
func (r *Resolver) ResolveVariableExpr(rc *ResolutionContext, e ast.Expr) Result {
	call := &Call{Node: e, Kind: VariableCall, Facts: rc.Facts}
	switch e := e.(type) {
	case *ast.Name:
		call.Name = e.Name
	case *ast.Select:
		call.Name = e.Name
		call.Explicit, call.Facts = r.normalizeReceiver(rc, e.Receiver)
	default:
		panic("calls: " + e.ExprName() + " is not a variable expression")
	}
	return r.resolveNormalized(rc, call)
}

// ResolveBinaryExpr resolves a binary operator through its operator convention: `a % b` calls
// `a.rem(b)`.
func (r *Resolver) ResolveBinaryExpr(rc *ResolutionContext, e *ast.Binary) Result {
	name, ok := ast.OperatorName(e.Op)
	if !ok {
		name = e.Op
	}
	left, facts := r.checkIndependent(rc, e.Left)
	call := &Call{
		Node:     e,
		Name:     name,
		Kind:     FunctionCall,
		Explicit: tower.NewReceiver(left, e.Left).WithSmartCasts(smartCasts(rc.Facts, e.Left)),
		Operator: true,
		IsRem:    e.Op == "%",
	}
	var arg Argument
	arg, call.Facts = r.normalizeArgument(rc, call, e.Right, "", false, facts)
	call.Args = []Argument{arg}
	return r.resolveNormalized(rc, call)
}

// ResolveIndexSetExpr resolves an indexed assignment through the `set` operator:
// `r[i] = v` calls `r.set(i, v)`.
func (r *Resolver) ResolveIndexSetExpr(rc *ResolutionContext, e *ast.IndexSet) Result {
	recv, facts := r.checkIndependent(rc, e.Receiver)
	call := &Call{
		Node:     e,
		Name:     "set",
		Kind:     FunctionCall,
		Explicit: tower.NewReceiver(recv, e.Receiver).WithSmartCasts(smartCasts(rc.Facts, e.Receiver)),
		Operator: true,
	}
	for _, index := range e.Indices {
		var arg Argument
		arg, facts = r.normalizeArgument(rc, call, index, "", false, facts)
		call.Args = append(call.Args, arg)
	}
	call.External, call.Facts = r.normalizeArgument(rc, call, e.Value, "", false, facts)
	return r.resolveNormalized(rc, call)
}

// ResolveCallableReferenceExpr resolves a callable reference outside of an argument list,
// using the expected type of the context to select among candidates.
func (r *Resolver) ResolveCallableReferenceExpr(rc *ResolutionContext, e *ast.CallableRef) Result {
	lhs, facts := r.referenceLHS(rc, e)
	arg := &CallableReferenceArgument{ArgumentInfo: ArgumentInfo{Node: e, Facts: rc.Facts}, Ref: e, LHS: lhs}
	call := referenceCall(arg)
	call.Facts = facts
	result := r.ResolveCall(rc, call, call.Name, CallableReferenceKind{})
	if s, ok := result.(*Success); ok && s.Call != nil {
		rc.Store.Record(binding.CallableTarget, e, s.Candidate.Symbol)
	}
	r.reportFailure(rc, result)
	return result
}

func (r *Resolver) resolveNormalized(rc *ResolutionContext, call *Call) Result {
	for _, d := range call.Diagnostics {
		rc.Store.Report(d)
	}
	var kind ResolutionKind = FunctionKind{}
	switch call.Kind {
	case InvokeCall:
		kind = InvokeKind{}
	case VariableCall:
		kind = VariableKind{}
	}
	result := r.ResolveCall(rc, call, call.Name, kind)
	r.reportFailure(rc, result)
	return result
}

// reportFailure reports a failed resolution at the call site. Failures caused by malformed or
// previously failed arguments are not reported again; errors of a single inapplicable candidate
// were reported when it was selected.
func (r *Resolver) reportFailure(rc *ResolutionContext, result Result) {
	switch res := result.(type) {
	case *NoneFound:
		if argumentErrorKind(res.Call) != NoError {
			return
		}
		if res.Hidden {
			rc.Store.Report(diag.New(diag.UnresolvedReference, res.Call.Node, "unresolved reference: %s (every declaration is hidden)", res.Call.Name))
			return
		}
		rc.Store.Report(diag.New(diag.UnresolvedReference, res.Call.Node, "unresolved reference: %s", res.Call.Name))
	case *ManyCandidates:
		if res.Kind == Ambiguous {
			rc.Store.Report(diag.New(diag.OverloadResolutionAmbiguity, res.Call.Node, "overload resolution ambiguity: %s", candidateList(res.Candidates)))
			return
		}
		if len(res.Candidates) > 1 && argumentErrorKind(res.Call) == NoError {
			rc.Store.Report(diag.New(diag.NoneApplicable, res.Call.Node, "none of the following candidates is applicable: %s", candidateList(res.Candidates)))
		}
	}
}

func candidateList(cands []*Candidate) string {
	names := make([]string, len(cands))
	for i, c := range cands {
		names[i] = symbols.String(c.Symbol)
	}
	return strings.Join(names, ", ")
}
