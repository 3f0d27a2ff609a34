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

	"go.opentelemetry.io/otel/attribute"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/internal/typeutil"
	"github.com/wdamron/calls/internal/util"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/types"
)

// completion fixes the variables of one constraint system, analyzing postponed arguments as
// soon as their input types are known.
type completion struct {
	r         *Resolver
	rc        *ResolutionContext
	sys       *typeutil.System
	postponed []PostponedArgument
	callbacks ResolutionCallbacks
	node      ast.Expr
	// outer is the final substitutor of the enclosing call, for calls completed by a builder session.
	outer *typeutil.Substitutor

	ret, expected  types.Type
	expectedFailed bool

	diagnostics []diag.Diagnostic
	seenErrors  int
}

func (r *Resolver) newCompletion(rc *ResolutionContext, sys *typeutil.System, postponed []PostponedArgument, node ast.Expr) *completion {
	return &completion{
		r:          r,
		rc:         rc,
		sys:        sys,
		postponed:  postponed,
		callbacks:  MakeResolutionCallbacks(rc.Store, rc.Session),
		node:       node,
		seenErrors: len(sys.Errors()),
	}
}

// completeCall completes the selected candidate of a call and binds the resolved atoms.
func (r *Resolver) completeCall(rc *ResolutionContext, c *Candidate) *ResolvedCall {
	rc, span := r.startSpan(rc, "calls.Complete", attribute.String("calls.symbol", symbols.String(c.Symbol)))
	defer span.End()
	cp := r.newCompletion(rc, c.System, c.Postponed, c.Call.Node)
	cp.expect(c.ReturnType, rc.Expected)
	cp.run()
	cp.completeRoots(c.CallAtom())
	span.SetAttributes(attribute.Int("calls.diagnostics", len(c.CallAtom().Resolved.Diagnostics)))
	return c.CallAtom().Resolved
}

// expect constrains the return type by the expected type, unless that contradicts the system.
// A contradiction is reported after the variables are fixed.
func (cp *completion) expect(ret, expected types.Type) {
	if expected == nil {
		return
	}
	cp.ret, cp.expected = ret, expected
	fork := cp.sys.Fork()
	if fork.AddSubtype(ret, expected, typeutil.Position{Kind: typeutil.ExpectedTypePosition, Node: cp.node}) {
		cp.sys = fork
		return
	}
	cp.expectedFailed = true
}

func (cp *completion) report(d diag.Diagnostic) { cp.diagnostics = append(cp.diagnostics, d) }

func (cp *completion) syncErrors() {
	errs := cp.sys.Errors()
	for _, err := range errs[cp.seenErrors:] {
		cp.report(constraintDiagnostic(err, cp.node))
	}
	cp.seenErrors = len(errs)
}

func (cp *completion) run() {
	for cp.step() {
	}
	cp.fixRemaining()
	if cp.expectedFailed {
		s := cp.substitutor()
		ret, expected := s.Apply(cp.ret), s.Apply(cp.expected)
		if !types.IsSubtype(ret, expected) {
			cp.report(diag.New(diag.ExpectedTypeMismatch, cp.node, "type mismatch: inferred type is %s but %s was expected",
				types.TypeString(ret), types.TypeString(expected)))
		}
	}
	final := cp.substitutor()
	for _, p := range cp.postponed {
		if pl, ok := p.(*PostponedLambda); ok && pl.Builder != nil {
			pl.Builder.Complete(cp.rc, final)
		}
	}
	cp.syncErrors()
}

// step analyzes or unblocks one postponed argument. Returns false once every postponed argument
// was analyzed.
func (cp *completion) step() bool {
	var pending []PostponedArgument
	for _, p := range cp.postponed {
		if !p.Analyzed() {
			pending = append(pending, p)
		}
	}
	if len(pending) == 0 {
		return false
	}
	order := cp.order(pending)

	for _, p := range order {
		if len(cp.freeVars(p.Inputs())) == 0 {
			cp.analyze(p, nil)
			return true
		}
	}
	for _, p := range order {
		if cp.fixProper(cp.freeVars(p.Inputs())) {
			return true
		}
	}
	if cp.rc.Tower.Settings.Features.BuilderInference {
		for _, p := range order {
			if pl, ok := p.(*PostponedLambda); ok {
				stubs := cp.freeVars(pl.Inputs())
				cp.r.debug(cp.rc, "builder inference", slog.Int("stubs", len(stubs)))
				cp.analyze(pl, stubs)
				return true
			}
		}
	}

	p := order[0]
	for _, v := range cp.freeVars(p.Inputs()) {
		cp.report(diag.New(diag.CannotInferParameterType, postponedNode(p), "cannot infer a type for this parameter: %s", v.Name()))
		cp.fix(v, types.NewError("uninferred "+v.Name()))
	}
	cp.analyze(p, nil)
	return true
}

// order sorts postponed arguments so that an argument whose outputs are inputs of another one
// comes first.
func (cp *completion) order(ps []PostponedArgument) []PostponedArgument {
	if len(ps) < 2 {
		return ps
	}
	ins := make([][]*types.Var, len(ps))
	outs := make([][]*types.Var, len(ps))
	for i, p := range ps {
		ins[i], outs[i] = cp.freeVars(p.Inputs()), cp.freeVars(p.Outputs())
	}
	g := util.NewGraph(len(ps))
	for i := range ps {
		for j := range ps {
			if i != j && sharesVar(outs[i], ins[j]) {
				g.AddEdge(i, j)
			}
		}
	}
	ordered := make([]PostponedArgument, 0, len(ps))
	for _, comp := range g.SCC() {
		for _, i := range comp {
			ordered = append(ordered, ps[i])
		}
	}
	return ordered
}

func sharesVar(a, b []*types.Var) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// freeVars returns the variables of ts which are not fixed yet.
func (cp *completion) freeVars(ts []types.Type) []*types.Var {
	var vs []*types.Var
	for _, t := range ts {
		vs = types.CollectVars(cp.sys.Substitute(t), vs)
	}
	return vs
}

// fixProper fixes the variables which have proper constraints. Returns true if any was fixed.
func (cp *completion) fixProper(vs []*types.Var) bool {
	fixed := false
	for _, v := range vs {
		if cp.sys.IsFixed(v) {
			continue
		}
		if t, ok := cp.sys.ResultType(v); ok {
			cp.fix(v, t)
			fixed = true
		}
	}
	return fixed
}

func (cp *completion) fix(v *types.Var, t types.Type) {
	cp.r.debug(cp.rc, "fixed type variable", slog.String("var", v.Name()), slog.Int("id", v.Id()), typeAttr("type", t))
	cp.sys.Fix(v, t)
}

// fixRemaining fixes every variable which is not fixed yet. Variables without proper
// constraints are fixed to an error type.
func (cp *completion) fixRemaining() {
	for {
		vs := cp.sys.NotFixed()
		if len(vs) == 0 {
			return
		}
		if cp.fixFirst(vs) {
			continue
		}
		v := vs[0]
		cp.report(diag.New(diag.CannotInferParameterType, cp.node, "not enough information to infer type variable %s", v.Name()))
		cp.fix(v, types.NewError("uninferred "+v.Name()))
	}
}

// fixFirst fixes the first variable with proper constraints.
func (cp *completion) fixFirst(vs []*types.Var) bool {
	for _, v := range vs {
		if t, ok := cp.sys.ResultType(v); ok {
			cp.fix(v, t)
			return true
		}
	}
	return false
}

// substitutor returns the fixed results of the system, composed with the enclosing call's.
func (cp *completion) substitutor() *typeutil.Substitutor {
	s := cp.sys.Substitutor()
	if cp.outer.Len() == 0 {
		return s
	}
	composed := cp.outer
	s.Range(func(v *types.Var, t types.Type) bool {
		composed = composed.With(v, cp.outer.Apply(t))
		return true
	})
	return composed
}

func postponedNode(p PostponedArgument) ast.Expr {
	switch p := p.(type) {
	case *PostponedLambda:
		return p.Arg.Lambda
	case *PostponedCallableReference:
		return p.Arg.Ref
	}
	return nil
}

func (cp *completion) analyze(p PostponedArgument, stubs []*types.Var) {
	switch p := p.(type) {
	case *PostponedLambda:
		cp.analyzeLambda(p, stubs)
	case *PostponedCallableReference:
		sys, ds := cp.callbacks.ResolveCallableReference(cp.rc, p, cp.sys)
		cp.sys = sys
		cp.diagnostics = append(cp.diagnostics, ds...)
	}
	cp.syncErrors()
}

func (cp *completion) analyzeLambda(pl *PostponedLambda, stubs []*types.Var) {
	rc, span := cp.r.startSpan(cp.rc, "calls.AnalyzeLambda", attribute.Int("calls.stubs", len(stubs)))
	defer span.End()

	input := func(t types.Type) types.Type {
		if t == nil {
			return nil
		}
		return stub(cp.sys.Substitute(t), stubs)
	}
	params := make([]types.Type, len(pl.Params))
	for i, t := range pl.Params {
		params[i] = input(t)
	}
	res := cp.callbacks.AnalyzeLambda(rc, pl, input(pl.Receiver), params, cp.sys.Substitute(pl.Return), stubs)

	pl.analyzed = true
	pl.ReturnTypes, pl.CoercedToUnit, pl.Builder = res.ReturnTypes, res.CoercedToUnit, res.Builder
	pos := typeutil.Position{Kind: typeutil.LambdaReturnPosition, Index: pl.Position.Index, Node: pl.Arg.Lambda}
	if pl.CoercedToUnit {
		cp.sys.AddSubtype(types.Unit, pl.Return, pos)
	} else {
		for _, t := range res.ReturnTypes {
			cp.sys.AddSubtype(unstub(t), pl.Return, pos)
		}
	}
	if res.Builder == nil {
		return
	}
	bpos := typeutil.Position{Kind: typeutil.BuilderInferencePosition, Index: pl.Position.Index, Node: pl.Arg.Lambda}
	for _, sc := range res.Builder.StubConstraints() {
		cp.sys.AddSubtype(unstub(sc.Sub), unstub(sc.Super), bpos)
	}
	if call := res.Builder.Inapplicable(); call != nil {
		cp.report(diag.New(diag.InapplicableBuilderInferenceCall, call.Node, "call '%s' is inapplicable within a builder lambda", call.Name))
	}
}

// stub replaces the given variables by stubs.
func stub(t types.Type, vs []*types.Var) types.Type {
	if len(vs) == 0 {
		return t
	}
	return types.Replace(t, func(t types.Type) (types.Type, bool) {
		v, ok := t.(*types.Var)
		if !ok {
			return nil, false
		}
		for _, sv := range vs {
			if sv == v {
				return &types.Stub{Var: v}, true
			}
		}
		return nil, false
	})
}

func unstub(t types.Type) types.Type {
	return types.Replace(t, func(t types.Type) (types.Type, bool) {
		if s, ok := t.(*types.Stub); ok {
			return s.Var, true
		}
		return nil, false
	})
}

// completeRoots completes the atoms of the completed system bottom-up and binds them. The
// completion's diagnostics are attached to the first root.
func (cp *completion) completeRoots(roots ...ResolvedAtom) []diag.Diagnostic {
	cp.syncErrors()
	cm := &completer{r: cp.r, rc: cp.rc, store: cp.rc.Store, subst: cp.substitutor(), callbacks: cp.callbacks}
	for i, root := range roots {
		if i == 0 {
			cm.extra = cp.diagnostics
		}
		cm.complete(root)
		cm.extra = nil
	}
	return cp.diagnostics
}
