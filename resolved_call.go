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
	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/flow"
	"github.com/wdamron/calls/internal/typeutil"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

// ResolvedCall is the completed result of a call: the selected symbol with its signature
// substituted by the final results of inference.
type ResolvedCall struct {
	Node          ast.Expr
	Call          *Call
	Candidate     *Candidate
	Symbol        symbols.Callable
	TypeArguments []types.Type
	ReceiverKind  ExplicitReceiverKind
	Dispatch      *tower.ReceiverValue
	Extension     *tower.ReceiverValue
	DispatchType  types.Type
	ExtensionType types.Type
	ContextArgs   []*tower.ReceiverValue
	ParamTypes    []types.Type
	ReturnType    types.Type
	// Variable is the variable side of an invocation through a function-typed variable.
	Variable *ResolvedCall
	// Facts hold after the call's arguments.
	Facts       flow.Facts
	Substitutor *typeutil.Substitutor
	Diagnostics []diag.Diagnostic
	// Invocations maps functional parameter indexes to their declared invocation kinds.
	Invocations map[int]symbols.InvocationKind

	mapping *ArgumentMapping
	argMap  map[Argument]*symbols.Parameter
}

func newResolvedCall(c *Candidate, s *typeutil.Substitutor) *ResolvedCall {
	call := &ResolvedCall{
		Node:         c.Call.Node,
		Call:         c.Call,
		Candidate:    c,
		Symbol:       c.Symbol,
		ReceiverKind: c.ReceiverKind,
		Dispatch:     c.Dispatch,
		Extension:    c.Extension,
		ContextArgs:  c.ContextArgs,
		Facts:        c.Call.Facts,
		Substitutor:  s,
		Diagnostics:  append([]diag.Diagnostic(nil), c.Diagnostics...),
		mapping:      c.Mapping,
	}
	call.TypeArguments = applyAll(s, c.TypeArguments)
	call.ParamTypes = applyAll(s, c.ParamTypes)
	call.ReturnType = s.Apply(c.ReturnType)
	if c.DispatchType != nil {
		call.DispatchType = s.Apply(c.DispatchType)
	}
	if c.ExtensionType != nil {
		call.ExtensionType = s.Apply(c.ExtensionType)
	}
	if c.Variable != nil {
		call.Variable = newResolvedCall(c.Variable, s)
	}
	return call
}

func applyAll(s *typeutil.Substitutor, ts []types.Type) []types.Type {
	if ts == nil {
		return nil
	}
	out := make([]types.Type, len(ts))
	for i, t := range ts {
		out[i] = s.Apply(t)
	}
	return out
}

// ArgumentMap maps each supplied argument to its parameter. It is computed on first use.
func (rc *ResolvedCall) ArgumentMap() map[Argument]*symbols.Parameter {
	if rc.argMap != nil || rc.mapping == nil {
		return rc.argMap
	}
	rc.argMap = make(map[Argument]*symbols.Parameter, len(rc.mapping.ParamOf))
	for arg, i := range rc.mapping.ParamOf {
		rc.argMap[arg] = rc.mapping.Params[i]
	}
	return rc.argMap
}

// ArgumentsOf returns the arguments supplied for the parameter at index i.
func (rc *ResolvedCall) ArgumentsOf(i int) []Argument {
	if rc.mapping == nil || i < 0 || i >= len(rc.mapping.Args) {
		return nil
	}
	return rc.mapping.Args[i].Arguments()
}

// UpdateReceivers substitutes the receiver types with a substitutor which became available after
// the call was completed, such as the enclosing call's results for calls within a builder lambda.
func (rc *ResolvedCall) UpdateReceivers(s *typeutil.Substitutor) {
	rc.Dispatch = substituteReceiver(rc.Dispatch, s)
	rc.Extension = substituteReceiver(rc.Extension, s)
	if rc.DispatchType != nil {
		rc.DispatchType = s.Apply(rc.DispatchType)
	}
	if rc.ExtensionType != nil {
		rc.ExtensionType = s.Apply(rc.ExtensionType)
	}
	rc.ReturnType = s.Apply(rc.ReturnType)
	if rc.Variable != nil {
		rc.Variable.UpdateReceivers(s)
	}
}

// substituteReceiver returns a copy of r with its type substituted. Receivers are shared with
// the tower and are never changed in place.
func substituteReceiver(r *tower.ReceiverValue, s *typeutil.Substitutor) *tower.ReceiverValue {
	if r == nil {
		return nil
	}
	t := s.Apply(r.Type)
	if t == r.Type {
		return r
	}
	c := *r
	c.Type = t
	return &c
}
