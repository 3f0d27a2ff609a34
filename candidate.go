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
	"github.com/wdamron/calls/binding"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/internal/typeutil"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

// ExplicitReceiverKind tells which receiver of a candidate the explicit receiver was bound to.
type ExplicitReceiverKind int

const (
	NoExplicitReceiver ExplicitReceiverKind = iota
	DispatchReceiver
	ExtensionReceiver
	BothReceivers
)

var explicitReceiverKindNames = [...]string{"NO_EXPLICIT_RECEIVER", "DISPATCH_RECEIVER", "EXTENSION_RECEIVER", "BOTH_RECEIVERS"}

func (k ExplicitReceiverKind) String() string { return explicitReceiverKindNames[k] }

// Candidate is a callable bound to receivers, with the constraint system of one resolution
// attempt. A candidate's failures are recorded as diagnostics and never abort the search.
type Candidate struct {
	Call         *Call
	Symbol       symbols.Callable
	Found        tower.Found
	ReceiverKind ExplicitReceiverKind
	Dispatch     *tower.ReceiverValue
	// DispatchType is the receiver type the member was found in.
	DispatchType types.Type
	Extension    *tower.ReceiverValue
	// ExtensionType is the instantiated declared extension receiver type.
	ExtensionType types.Type
	// ContextArgs are the receivers passed for declared context receivers.
	ContextArgs []*tower.ReceiverValue

	System        *typeutil.System
	Inst          *typeutil.Instantiation
	TypeArguments []types.Type
	Mapping       *ArgumentMapping
	// ParamTypes are the instantiated parameter types. For varargs, this is the element type.
	ParamTypes []types.Type
	// ReturnType is the instantiated return type; the functional type of a callable reference.
	ReturnType types.Type
	// Variable is the variable side of an invocation through a function-typed variable.
	Variable  *Candidate
	Postponed []PostponedArgument
	// Store is the candidate's private overlay. Only the selected candidate's overlay is committed.
	Store       *binding.Store
	Diagnostics []diag.Diagnostic

	children   []ResolvedAtom
	atom       *CallAtom
	seenErrors int
	committed  bool
}

// Applicability of the candidate, including its variable side.
func (c *Candidate) Applicability() diag.Applicability {
	a := diag.ResultApplicability(c.Diagnostics)
	if c.Variable != nil {
		if va := c.Variable.Applicability(); va < a {
			a = va
		}
	}
	return a
}

func (c *Candidate) report(ds ...diag.Diagnostic) { c.Diagnostics = append(c.Diagnostics, ds...) }

// syncErrors reports constraint errors added since the last call.
func (c *Candidate) syncErrors() {
	errs := c.System.Errors()
	for _, err := range errs[c.seenErrors:] {
		c.report(constraintDiagnostic(err, c.Call.Node))
	}
	c.seenErrors = len(errs)
}

// CallAtom returns the resolved atom of the candidate, created on first use.
func (c *Candidate) CallAtom() *CallAtom {
	if c.atom == nil {
		c.atom = &CallAtom{Candidate: c, children: c.children}
	}
	return c.atom
}

// commit writes the candidate's overlay, and the overlay of its variable side, into the store
// the candidate was created from.
func (c *Candidate) commit() {
	if c.committed {
		panic("calls: candidate committed twice")
	}
	c.committed = true
	c.Store.Commit()
	if c.Variable != nil {
		c.Variable.commit()
	}
}

// mergeSystem merges other into the candidate's system. Errors which other already had are
// not reported again.
func (c *Candidate) mergeSystem(other *typeutil.System) {
	c.syncErrors()
	c.System.Merge(other)
	errs := c.System.Errors()
	for _, err := range errs[c.seenErrors : len(errs)-len(other.Errors())] {
		c.report(constraintDiagnostic(err, c.Call.Node))
	}
	c.seenErrors = len(errs)
}

func constraintDiagnostic(err *typeutil.ConstraintError, fallback ast.Expr) diag.Diagnostic {
	node := err.Position.Node
	if node == nil {
		node = fallback
	}
	kind := diag.TypeMismatch
	switch err.Position.Kind {
	case typeutil.ArgumentPosition, typeutil.CallableReferencePosition:
		kind = diag.ArgumentTypeMismatch
	case typeutil.ReceiverPosition:
		kind = diag.ReceiverTypeMismatch
	case typeutil.ExpectedTypePosition:
		kind = diag.ExpectedTypeMismatch
	}
	return diag.New(kind, node, "type mismatch: inferred type is %s but %s was expected",
		types.TypeString(err.Sub), types.TypeString(err.Super))
}

func receiverKind(call *Call, found tower.Found) ExplicitReceiverKind {
	explicit := call.Receiver()
	if explicit == nil {
		return NoExplicitReceiver
	}
	dispatch, extension := found.Dispatch == explicit, found.Extension == explicit
	switch {
	case dispatch && extension:
		return BothReceivers
	case dispatch:
		return DispatchReceiver
	case extension:
		return ExtensionReceiver
	}
	return NoExplicitReceiver
}

// newCandidate binds a found callable to the call and checks it: receivers, explicit type
// arguments, argument mapping, and argument types. Lambdas and ambiguous callable references
// are postponed.
func (r *Resolver) newCandidate(rc *ResolutionContext, call *Call, found tower.Found) *Candidate {
	c := &Candidate{
		Call:         call,
		Symbol:       found.Symbol,
		Found:        found,
		ReceiverKind: receiverKind(call, found),
		Dispatch:     found.Dispatch,
		DispatchType: found.DispatchType,
		Extension:    found.Extension,
		System:       typeutil.NewSystem(),
		Store:        rc.Store.Fork(),
	}
	c.report(found.Diagnostics...)
	if c.Applicability() == diag.Hidden {
		return c
	}
	info := found.Symbol.Info()
	c.report(tower.CheckConventions(found.Symbol, call.Infix, call.Operator, call.Node)...)
	if info.LowPriority {
		c.report(diag.New(diag.LowPriorityInOverloadResolution, call.Node, "'%s' has low priority in overload resolution", info.Name))
	}

	c.instantiate(rc)
	c.checkTypeArguments()
	c.checkReceivers(rc)
	if c.Applicability() <= diag.WrongReceiver {
		return c
	}

	switch s := found.Symbol.(type) {
	case *symbols.Function:
		c.ParamTypes = make([]types.Type, len(s.Params))
		for i, p := range s.Params {
			c.ParamTypes[i] = c.Inst.Apply(p.Type)
		}
		c.ReturnType = c.Inst.Apply(s.Return)
		if call.Kind == CallableReferenceCall {
			c.ReturnType = c.referenceType(s)
			break
		}
		c.Mapping = MapArguments(s.Params, call.Args, call.External, call.Node)
		c.report(c.Mapping.Diagnostics...)
		for i, ra := range c.Mapping.Args {
			for _, arg := range ra.Arguments() {
				expected := c.ParamTypes[i]
				if s.Params[i].Vararg && arg.Info().Spread {
					expected = types.ArrayOf(expected)
				}
				r.checkArgument(rc, c, arg, expected, i)
			}
		}

	case *symbols.Variable:
		c.ReturnType = c.Inst.Apply(s.Type)
		if call.Kind == CallableReferenceCall {
			c.ReturnType = c.referenceType(nil)
		}
	}

	c.System.InferDirections(c.ReturnType)
	c.syncErrors()
	return c
}

func (c *Candidate) instantiate(rc *ResolutionContext) {
	info := c.Symbol.Info()
	c.Inst = typeutil.Instantiate(rc.Vars, c.System, info.TypeParams)
	c.TypeArguments = make([]types.Type, len(c.Inst.Vars))
	for i, tv := range c.Inst.Vars {
		c.TypeArguments[i] = tv
	}
	declared, ok := info.DispatchReceiver.(*types.Named)
	if !ok || c.DispatchType == nil {
		return
	}
	recv := namedOf(c.DispatchType)
	if recv == nil {
		return
	}
	super := types.FindSupertype(recv, declared.Class)
	if super == nil {
		return
	}
	m := make(map[*types.Param]types.Type, len(declared.Class.Params))
	for i, p := range declared.Class.Params {
		if i < len(super.Args) {
			m[p] = super.Args[i]
		}
	}
	c.Inst.Extend(m)
}

// namedOf returns the class type of a receiver type, using the first bound of a type parameter.
func namedOf(t types.Type) *types.Named {
	switch t := t.(type) {
	case *types.Named:
		return t
	case *types.Param:
		if len(t.Bounds) == 0 {
			return types.Any
		}
		return namedOf(t.Bounds[0])
	}
	return nil
}

func (c *Candidate) checkTypeArguments() {
	call := c.Call
	if len(call.TypeArgs) == 0 {
		return
	}
	params := c.Symbol.Info().TypeParams
	if len(call.TypeArgs) != len(params) {
		c.report(diag.New(diag.WrongNumberOfTypeArguments, call.Node, "%d type arguments expected for '%s', found %d",
			len(params), c.Symbol.CallableName(), len(call.TypeArgs)))
		return
	}
	for i, ta := range call.TypeArgs {
		if ta.Underscore || ta.Type == nil {
			continue
		}
		c.System.AddEqual(c.Inst.Vars[i], ta.Type, typeutil.Position{Kind: typeutil.ExplicitTypeArgumentPosition, Index: i, Node: call.Node})
	}
	c.syncErrors()
}

func (c *Candidate) checkReceivers(rc *ResolutionContext) {
	info := c.Symbol.Info()
	if info.ExtensionReceiver != nil {
		c.ExtensionType = c.Inst.Apply(info.ExtensionReceiver)
		switch {
		case c.Extension == nil:
			c.report(diag.New(diag.ReceiverMissing, c.Call.Node, "receiver of type %s is missing", types.TypeString(c.ExtensionType)))
		case !c.constrainReceiver(c.Extension, c.ExtensionType):
			c.report(diag.New(diag.ReceiverTypeMismatch, c.Call.Node, "receiver %s of type %s does not match %s",
				c.Extension.String(), types.TypeString(c.Extension.Type), types.TypeString(c.ExtensionType)))
		}
	}

	if len(info.ContextReceivers) == 0 {
		return
	}
	available := append(rc.Tower.ContextReceivers(), rc.Tower.ImplicitReceivers()...)
	for _, ct := range info.ContextReceivers {
		declared := c.Inst.Apply(ct)
		var found *tower.ReceiverValue
		for _, r := range available {
			if c.constrainReceiver(r, declared) {
				found = r
				break
			}
		}
		if found == nil {
			c.report(diag.New(diag.NoContextReceiver, c.Call.Node, "no context receiver of type %s", types.TypeString(declared)))
		}
		c.ContextArgs = append(c.ContextArgs, found)
	}
}

// constrainReceiver tries the declared and smart-cast types of a receiver in order. The system
// is only changed if one of them fits.
func (c *Candidate) constrainReceiver(r *tower.ReceiverValue, declared types.Type) bool {
	pos := typeutil.Position{Kind: typeutil.ReceiverPosition, Node: r.Expr}
	for _, t := range r.Types() {
		fork := c.System.Fork()
		if fork.AddSubtype(t, declared, pos) {
			c.System = fork
			return true
		}
	}
	return false
}

// constrain adds `sub <: super`, trying smart-cast types when the declared type does not fit.
func (c *Candidate) constrain(sub types.Type, casts []types.Type, super types.Type, pos typeutil.Position) {
	if len(casts) > 0 {
		for _, t := range append([]types.Type{sub}, casts...) {
			fork := c.System.Fork()
			if fork.AddSubtype(t, super, pos) {
				c.System = fork
				return
			}
		}
	}
	c.System.AddSubtype(sub, super, pos)
	c.syncErrors()
}

func (r *Resolver) checkArgument(rc *ResolutionContext, c *Candidate, arg Argument, expected types.Type, index int) {
	pos := typeutil.Position{Kind: typeutil.ArgumentPosition, Index: index, Node: arg.Info().Node}
	switch arg := arg.(type) {
	case *ExpressionArgument:
		c.constrain(arg.Type, arg.SmartCasts, expected, pos)

	case *SubCallArgument:
		sub := arg.Candidate
		c.mergeSystem(sub.System)
		c.Postponed = append(c.Postponed, sub.Postponed...)
		c.children = append(c.children, &SubCallAtom{Arg: arg, Call: sub.CallAtom(), Expected: expected})
		c.constrain(sub.ReturnType, nil, expected, pos)

	case *ParseErrorArgument:

	case *LambdaArgument:
		c.postponeLambda(rc, arg, expected, pos)

	case *CallableReferenceArgument:
		r.checkCallableReference(rc, c, arg, expected, pos)

	case *CollectionLiteralArgument:
		cb := MakeResolutionCallbacks(c.Store, rc.Session)
		t := cb.CheckCollectionLiteral(rc, arg, expected)
		c.children = append(c.children, &CollectionLiteralAtom{Arg: arg, Expected: expected})
		c.constrain(t, nil, expected, pos)

	default:
		panic("calls: unexpected argument type")
	}
}

// postponeLambda checks the shape of a lambda against its expected type and postpones its body.
// When the expected type is not functional, a functional type with fresh variables stands in.
func (c *Candidate) postponeLambda(rc *ResolutionContext, arg *LambdaArgument, expected types.Type, pos typeutil.Position) {
	lambda := arg.Lambda
	fn, ok := expected.(*types.Func)
	if !ok {
		switch e := expected.(type) {
		case *types.Var, *types.Error, *types.Dynamic:
		case *types.Named:
			if e.Class != types.AnyClass {
				c.report(diag.New(diag.ArgumentTypeMismatch, lambda, "lambda is not expected here: %s was expected", types.TypeString(expected)))
				return
			}
		default:
			c.report(diag.New(diag.ArgumentTypeMismatch, lambda, "lambda is not expected here: %s was expected", types.TypeString(expected)))
			return
		}
		fn = &types.Func{Params: make([]types.Type, len(lambda.Params))}
		for i := range lambda.Params {
			if i < len(arg.ParamTypes) && arg.ParamTypes[i] != nil {
				fn.Params[i] = arg.ParamTypes[i]
				continue
			}
			tv := rc.Vars.New(nil)
			c.System.AddVar(tv)
			fn.Params[i] = tv
		}
		ret := rc.Vars.New(nil)
		c.System.AddVar(ret)
		fn.Return = ret
		c.constrain(fn, nil, expected, pos)
	}

	if (lambda.HasParams && len(lambda.Params) != len(fn.Params)) || (!lambda.HasParams && len(fn.Params) > 1) {
		c.report(diag.New(diag.LambdaParameterCountMismatch, lambda, "expected %d parameters, found %d", len(fn.Params), len(lambda.Params)))
		return
	}

	params := make([]types.Type, len(fn.Params))
	copy(params, fn.Params)
	for i, declared := range arg.ParamTypes {
		if declared == nil || i >= len(params) {
			continue
		}
		c.constrain(params[i], nil, declared, pos)
		params[i] = declared
	}

	pl := &PostponedLambda{
		Arg:      arg,
		Expected: fn,
		Receiver: fn.Receiver,
		Params:   params,
		Return:   fn.Return,
		Position: pos,
	}
	c.Postponed = append(c.Postponed, pl)
	c.children = append(c.children, &LambdaAtom{Postponed: pl})
}
