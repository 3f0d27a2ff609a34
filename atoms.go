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
	"golang.org/x/exp/slices"

	"github.com/wdamron/calls/binding"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/internal/typeutil"
	"github.com/wdamron/calls/types"
)

// ResolvedAtom is a node of the tree of results which a completed call binds. Children are
// completed before their parent and every atom is completed once. The set is closed:
// *CallAtom, *LambdaAtom, *CallableReferenceAtom, *SubCallAtom, and *CollectionLiteralAtom.
type ResolvedAtom interface {
	resolvedAtom()
}

func (*CallAtom) resolvedAtom()              {}
func (*LambdaAtom) resolvedAtom()            {}
func (*CallableReferenceAtom) resolvedAtom() {}
func (*SubCallAtom) resolvedAtom()           {}
func (*CollectionLiteralAtom) resolvedAtom() {}

// CallAtom is the selected candidate of a call.
type CallAtom struct {
	Candidate *Candidate
	// Resolved is set once the atom is completed.
	Resolved *ResolvedCall
	children []ResolvedAtom
}

// Children returns the atoms of the call's arguments.
func (a *CallAtom) Children() []ResolvedAtom { return a.children }

type LambdaAtom struct {
	Postponed *PostponedLambda
	// Type is the final functional type of the lambda.
	Type *types.Func
}

type CallableReferenceAtom struct {
	Postponed *PostponedCallableReference
	Type      types.Type
}

type SubCallAtom struct {
	Arg      *SubCallArgument
	Call     *CallAtom
	Expected types.Type
}

type CollectionLiteralAtom struct {
	Arg      *CollectionLiteralArgument
	Expected types.Type
	Type     types.Type
}

// completer substitutes and binds atoms bottom-up.
type completer struct {
	r         *Resolver
	rc        *ResolutionContext
	store     *binding.Store
	subst     *typeutil.Substitutor
	callbacks ResolutionCallbacks
	// extra diagnostics are attached to the next completed root call.
	extra []diag.Diagnostic
}

func (cm *completer) complete(atom ResolvedAtom) {
	if cm.rc.isCompleted(atom) {
		return
	}
	switch a := atom.(type) {
	case *CallAtom:
		extra := cm.extra
		cm.extra = nil
		for _, child := range a.children {
			cm.complete(child)
		}
		cm.completeCall(a, extra)

	case *LambdaAtom:
		cm.completeLambda(a)

	case *CallableReferenceAtom:
		cm.completeReference(a)

	case *SubCallAtom:
		cm.complete(a.Call)
		if a.Expected != nil {
			cm.store.Record(binding.ExpectedType, a.Arg.Node, cm.subst.Apply(a.Expected))
		}

	case *CollectionLiteralAtom:
		expected := cm.subst.Apply(a.Expected)
		a.Type = cm.callbacks.CheckCollectionLiteral(cm.rc, a.Arg, expected)
		cm.store.RecordType(a.Arg.Literal, a.Type)
		cm.store.Record(binding.ExpectedType, a.Arg.Literal, expected)

	default:
		panic("calls: unexpected atom type")
	}
	cm.rc.markCompleted(atom)
}

func (cm *completer) completeCall(a *CallAtom, extra []diag.Diagnostic) {
	c := a.Candidate
	call := newResolvedCall(c, cm.subst)
	call.Diagnostics = append(call.Diagnostics, extra...)
	for _, check := range cm.r.Checkers {
		call.Diagnostics = append(call.Diagnostics, check(cm.rc, call)...)
	}
	a.Resolved = call

	cm.store.RecordCall(c.Call.Node, call)
	cm.store.RecordType(c.Call.Node, call.ReturnType)
	for _, d := range call.Diagnostics {
		cm.store.Report(d)
	}
	params := make([]int, 0, len(call.Invocations))
	for param := range call.Invocations {
		params = append(params, param)
	}
	slices.Sort(params)
	for _, param := range params {
		for _, arg := range call.ArgumentsOf(param) {
			cm.store.Record(binding.Invocation, arg.Info().Node, call.Invocations[param])
		}
	}
}

func (cm *completer) completeLambda(a *LambdaAtom) {
	pl := a.Postponed
	lambda := pl.Arg.Lambda
	if !pl.analyzed {
		cm.store.RecordType(lambda, types.NewError("lambda was not analyzed"))
		return
	}
	fn := &types.Func{Params: make([]types.Type, len(pl.Params)), Return: cm.subst.Apply(pl.Return)}
	if pl.Receiver != nil {
		fn.Receiver = cm.subst.Apply(pl.Receiver)
	}
	for i, t := range pl.Params {
		fn.Params[i] = cm.subst.Apply(t)
	}
	if pl.CoercedToUnit {
		fn.Return = types.Unit
		cm.store.Record(binding.CoercedToUnit, lambda, true)
	}
	a.Type = fn
	cm.store.Record(binding.LambdaType, lambda, fn)
	cm.store.RecordType(lambda, fn)
}

func (cm *completer) completeReference(a *CallableReferenceAtom) {
	pr := a.Postponed
	ref := pr.Arg.Ref
	if pr.Chosen == nil {
		cm.store.RecordType(ref, types.NewError("unresolved reference"))
		return
	}
	a.Type = cm.subst.Apply(pr.Type)
	target := newResolvedCall(pr.Chosen, cm.subst)
	target.ReturnType = a.Type
	cm.store.RecordCall(ref, target)
	cm.store.Record(binding.CallableTarget, ref, pr.Chosen.Symbol)
	cm.store.RecordType(ref, a.Type)
}
