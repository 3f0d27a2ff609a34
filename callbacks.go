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
	"github.com/wdamron/calls/types"
)

// LambdaResult is what the analysis of a lambda body contributes to the enclosing call.
type LambdaResult struct {
	// ReturnTypes are the types of valued returns and of the last expression.
	ReturnTypes   []types.Type
	CoercedToUnit bool
	// Builder is the session the body was analyzed with, if its inputs were stubbed.
	Builder *BuilderSession
}

// ResolutionCallbacks analyze arguments whose types depend on the enclosing call.
type ResolutionCallbacks interface {
	// AnalyzeLambda checks the body of a lambda with the given input types. Variables in stubs
	// appear as stubs within the body and its calls register with a builder session.
	AnalyzeLambda(rc *ResolutionContext, lambda *PostponedLambda, receiver types.Type, params []types.Type, expectedReturn types.Type, stubs []*types.Var) *LambdaResult
	// ResolveCallableReference selects the candidate of a postponed reference which fits its
	// expected type within sys, returning the system with the chosen candidate's constraints.
	ResolveCallableReference(rc *ResolutionContext, ref *PostponedCallableReference, sys *typeutil.System) (*typeutil.System, []diag.Diagnostic)
	// CheckCollectionLiteral computes the type of a collection literal for an expected type.
	CheckCollectionLiteral(rc *ResolutionContext, arg *CollectionLiteralArgument, expected types.Type) types.Type
	NewSession(stubs []*types.Var) *BuilderSession
}

type resolutionCallbacks struct {
	store   *binding.Store
	session InferenceSession
}

// MakeResolutionCallbacks returns callbacks which write the results of lambda bodies into
// store. Lambda bodies are analyzed within session unless their inputs are stubbed.
func MakeResolutionCallbacks(store *binding.Store, session InferenceSession) ResolutionCallbacks {
	return &resolutionCallbacks{store: store, session: session}
}

func (cb *resolutionCallbacks) NewSession(stubs []*types.Var) *BuilderSession {
	return NewBuilderSession(cb.store, stubs)
}

func (cb *resolutionCallbacks) AnalyzeLambda(rc *ResolutionContext, pl *PostponedLambda, receiver types.Type, params []types.Type, expectedReturn types.Type, stubs []*types.Var) *LambdaResult {
	lambda := pl.Arg.Lambda
	checker := rc.Resolver.Checker
	fork := cb.store.Fork()

	scope := symbols.NewScope(lambda.Label)
	switch {
	case lambda.HasParams || len(lambda.Params) > 0:
		for i, p := range lambda.Params {
			if p.Name == "_" || i >= len(params) {
				continue
			}
			scope.Declare(&symbols.Variable{Common: symbols.Common{Name: p.Name}, Type: params[i], Local: true})
		}
	case len(params) == 1:
		scope.Declare(&symbols.Variable{Common: symbols.Common{Name: "it"}, Type: params[0], Local: true})
	}
	tw := rc.Tower.WithLambdaScope(lambda.Label, scope, receiver)

	res := &LambdaResult{}
	session := cb.session
	if len(stubs) > 0 {
		res.Builder = cb.NewSession(stubs)
		session = res.Builder
	}
	body := rc.WithTower(tw).WithStore(fork).WithSession(session).independent()

	unit := types.IsUnit(expectedReturn)
	var last types.Type = types.Unit
	for i, stmt := range lambda.Body {
		switch s := stmt.(type) {
		case *ast.Val:
			var declared types.Type
			if s.Type != nil {
				declared = checker.ResolveTypeRef(s.Type, tw)
			}
			t, facts := checker.CheckExpression(body.WithExpected(declared), s.Value, declared)
			if declared != nil {
				t = declared
			}
			scope.Declare(&symbols.Variable{Common: symbols.Common{Name: s.Name}, Type: t, Local: true})
			fork.RecordType(s, t)
			body = body.WithFacts(facts)
			last = types.Unit
		default:
			var expected types.Type
			if i == len(lambda.Body)-1 && !unit && expectedReturn != nil && !types.HasVars(expectedReturn) && !types.HasStubs(expectedReturn) {
				expected = expectedReturn
			}
			t, facts := checker.CheckExpression(body.WithExpected(expected), stmt, expected)
			body = body.WithFacts(facts)
			last = t
		}
		if res.Builder != nil && res.Builder.Inapplicable() != nil {
			fork.Discard()
			return res
		}
	}

	bare, valued := 0, 0
	for _, ret := range ast.Returns(lambda) {
		if ret.Value == nil {
			bare++
			continue
		}
		valued++
		if t := fork.TypeOf(ret.Value); t != nil {
			res.ReturnTypes = append(res.ReturnTypes, t)
		}
	}
	res.CoercedToUnit = unit || (bare > 0 && valued == 0)
	if res.CoercedToUnit {
		res.ReturnTypes = nil
	} else if _, isReturn := lastStatement(lambda).(*ast.Return); !isReturn {
		res.ReturnTypes = append(res.ReturnTypes, last)
	}
	fork.Commit()
	return res
}

func lastStatement(l *ast.Lambda) ast.Expr {
	if len(l.Body) == 0 {
		return nil
	}
	return l.Body[len(l.Body)-1]
}

func (cb *resolutionCallbacks) ResolveCallableReference(rc *ResolutionContext, ref *PostponedCallableReference, sys *typeutil.System) (*typeutil.System, []diag.Diagnostic) {
	ref.analyzed = true
	fits := fitReferences(sys, ref.Candidates, ref.Expected, ref.Position)
	switch len(fits) {
	case 0:
		return sys, []diag.Diagnostic{diag.New(diag.ArgumentTypeMismatch, ref.Arg.Ref, "no candidate of ::%s matches %s",
			ref.Arg.Ref.Name, types.TypeString(sys.Substitute(ref.Expected)))}
	case 1:
		ref.choose(fits[0])
		return fits[0].system, nil
	}
	cands := make([]*Candidate, len(fits))
	for i, fit := range fits {
		cands[i] = fit.candidate
	}
	if best := rc.Resolver.mostSpecific(cands); len(best) == 1 {
		for _, fit := range fits {
			if fit.candidate == best[0] {
				ref.choose(fit)
				return fit.system, nil
			}
		}
	}
	return sys, []diag.Diagnostic{diag.New(diag.AmbiguousCallableReference, ref.Arg.Ref, "callable reference ::%s is ambiguous", ref.Arg.Ref.Name)}
}

// CheckCollectionLiteral types a literal as an Array when an Array is expected and as a List
// otherwise. The element type is the common supertype of the elements, widened to the expected
// element type when it is known.
func (cb *resolutionCallbacks) CheckCollectionLiteral(rc *ResolutionContext, arg *CollectionLiteralArgument, expected types.Type) types.Type {
	array := false
	var want types.Type
	if n, ok := expected.(*types.Named); ok && len(n.Args) == 1 {
		switch n.Class {
		case types.ArrayClass:
			array, want = true, n.Args[0]
		case types.ListClass, types.CollectionClass, types.MutableListClass:
			want = n.Args[0]
		}
	}
	var elem types.Type
	switch {
	case len(arg.Elements) == 0 && want != nil:
		elem = want
	case len(arg.Elements) == 0:
		elem = types.Nothing
	default:
		elem = types.CommonSupertype(arg.Elements)
		if want != nil && !types.HasVars(want) && types.IsSubtype(elem, want) {
			elem = want
		}
	}
	if array {
		return types.ArrayOf(elem)
	}
	return types.ListOf(elem)
}
