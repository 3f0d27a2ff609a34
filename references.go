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
	"log/slog"

	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/internal/typeutil"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

// referenceCall builds the call which enumerates the candidates of a callable reference.
func referenceCall(arg *CallableReferenceArgument) *Call {
	call := &Call{Node: arg.Ref, Name: arg.Ref.Name, Kind: CallableReferenceCall, LHS: arg.LHS, Facts: arg.Facts}
	switch lhs := arg.LHS.(type) {
	case *TypeLHS:
		call.Explicit = &tower.ReceiverValue{Type: lhs.Type, Expr: arg.Ref}
	case *ExpressionLHS:
		call.Explicit = lhs.Receiver
	}
	return call
}

// referenceCandidates resolves the candidates of a callable reference once. The candidates do
// not depend on the expected type; fitting them does.
func (r *Resolver) referenceCandidates(rc *ResolutionContext, arg *CallableReferenceArgument) []*Candidate {
	if arg.resolved {
		return arg.candidates
	}
	arg.resolved = true
	call := referenceCall(arg)
	for _, c := range r.collect(rc.independent(), call, call.Name, CallableReferenceKind{}) {
		if c.Applicability() >= diag.ResolvedWithError {
			arg.candidates = append(arg.candidates, c)
		}
	}
	r.debug(rc, "callable reference candidates", slog.String("name", call.Name), slog.Int("count", len(arg.candidates)))
	return arg.candidates
}

// referenceType computes the reflective functional type of a reference candidate. For an
// unbound reference, the receiver becomes the first parameter. fn is nil for variables.
func (c *Candidate) referenceType(fn *symbols.Function) types.Type {
	var params []types.Type
	if _, ok := c.Call.LHS.(*TypeLHS); ok {
		switch {
		case c.ExtensionType != nil:
			params = append(params, c.ExtensionType)
		case c.DispatchType != nil:
			params = append(params, c.DispatchType)
		}
	}
	if fn != nil {
		for i, p := range fn.Params {
			t := c.ParamTypes[i]
			if p.Vararg {
				t = types.ArrayOf(t)
			}
			params = append(params, t)
		}
	}
	return &types.Func{Params: params, Return: c.ReturnType, Reflective: true}
}

// adaptReference adapts a function reference to an expected functional type by skipping
// parameters with defaults, spreading a trailing vararg, and coercing the return type to Unit.
// ok is false when no adaptation applies.
func adaptReference(c *Candidate, expected *types.Func) (adapted types.Type, ok bool) {
	fn, isFunc := c.Symbol.(*symbols.Function)
	ref, isRef := c.ReturnType.(*types.Func)
	if !isFunc || !isRef {
		return nil, false
	}
	want := len(expected.AllParams())
	lead := len(ref.Params) - len(fn.Params)
	n := want - lead
	if n < 0 {
		return nil, false
	}
	params := append([]types.Type(nil), ref.Params[:lead]...)
	changed := false
	for i, p := range fn.Params {
		switch {
		case p.Vararg && i == len(fn.Params)-1 && n != len(fn.Params):
			for k := i; k < n; k++ {
				params = append(params, c.ParamTypes[i])
			}
			changed = true
		case i < n:
			t := c.ParamTypes[i]
			if p.Vararg {
				t = types.ArrayOf(t)
			}
			params = append(params, t)
		case p.HasDefault:
			changed = true
		default:
			return nil, false
		}
	}
	if len(params) != want {
		return nil, false
	}
	ret := ref.Return
	if types.IsUnit(expected.Return) && !types.IsUnit(ret) {
		ret, changed = types.Unit, true
	}
	if !changed {
		return nil, false
	}
	return &types.Func{Params: params, Return: ret}, true
}

type referenceFit struct {
	candidate *Candidate
	system    *typeutil.System
	typ       types.Type
	adapted   bool
}

// fitReferences returns the candidates whose type fits the expected type within sys. Each fit
// carries its own fork of sys with the candidate's system merged in.
func fitReferences(sys *typeutil.System, cands []*Candidate, expected types.Type, pos typeutil.Position) []referenceFit {
	var fits []referenceFit
	for _, c := range cands {
		fork := sys.Fork()
		fork.Merge(c.System)
		if expected == nil || fork.AddSubtype(c.ReturnType, expected, pos) {
			fits = append(fits, referenceFit{candidate: c, system: fork, typ: c.ReturnType})
			continue
		}
		fn, ok := sys.Substitute(expected).(*types.Func)
		if !ok {
			continue
		}
		if t, ok := adaptReference(c, fn); ok {
			fork = sys.Fork()
			fork.Merge(c.System)
			if fork.AddSubtype(t, expected, pos) {
				fits = append(fits, referenceFit{candidate: c, system: fork, typ: t, adapted: true})
			}
		}
	}
	return fits
}

func (pr *PostponedCallableReference) choose(fit referenceFit) {
	pr.analyzed = true
	pr.Chosen, pr.Type, pr.Adapted = fit.candidate, fit.typ, fit.adapted
}

// checkCallableReference resolves a reference argument eagerly when exactly one candidate fits
// the parameter type, and postpones it when several do.
func (r *Resolver) checkCallableReference(rc *ResolutionContext, c *Candidate, arg *CallableReferenceArgument, expected types.Type, pos typeutil.Position) {
	pr := &PostponedCallableReference{Arg: arg, Expected: expected, Position: pos}
	c.children = append(c.children, &CallableReferenceAtom{Postponed: pr})
	cands := r.referenceCandidates(rc, arg)
	if len(cands) == 0 {
		pr.analyzed = true
		c.report(diag.New(diag.UnresolvedCallableReference, arg.Ref, "unresolved reference: %s", arg.Ref.Name))
		return
	}
	fits := fitReferences(c.System, cands, expected, pos)
	switch len(fits) {
	case 0:
		pr.analyzed = true
		c.report(diag.New(diag.ArgumentTypeMismatch, arg.Ref, "no candidate of ::%s matches %s", arg.Ref.Name, types.TypeString(expected)))
	case 1:
		c.System = fits[0].system
		c.seenErrors = len(c.System.Errors())
		pr.choose(fits[0])
	default:
		for _, fit := range fits {
			pr.Candidates = append(pr.Candidates, fit.candidate)
		}
		c.Postponed = append(c.Postponed, pr)
	}
}
