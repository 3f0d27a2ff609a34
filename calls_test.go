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

package calls_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/wdamron/calls"
	. "github.com/wdamron/calls/construct"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/binding"
	"github.com/wdamron/calls/config"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/exprcheck"
	"github.com/wdamron/calls/flow"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

// site is a call site: a table, a file scope, an imported scope, and a block of locals.
type site struct {
	table    *symbols.Table
	file     *symbols.MapScope
	imported *symbols.MapScope
	local    *symbols.MapScope
	settings *config.Settings
	receiver *tower.ReceiverValue
	prelude  *symbols.MapScope
	resolver *calls.Resolver
}

func newSite() *site {
	return &site{
		table:    symbols.NewTable(),
		file:     symbols.NewScope("file"),
		imported: symbols.NewScope("imported"),
		local:    symbols.NewScope("block"),
		settings: config.Default(),
		resolver: exprcheck.NewResolver(),
	}
}

func (s *site) withPrelude() *site {
	s.prelude = Prelude()
	return s
}

func (s *site) tower() *tower.ScopeTower {
	importing := []symbols.Scope{s.imported}
	if s.prelude != nil {
		importing = append(importing, s.prelude)
	}
	tw := tower.NewScopeTower(s.table, s.settings, importing...)
	tw = tw.WithScope(&tower.LexicalScope{Name: "file", Scope: s.file})
	if s.receiver != nil {
		tw = tw.WithScope(&tower.LexicalScope{Name: s.receiver.Label, Receiver: s.receiver})
	}
	return tw.WithScope(&tower.LexicalScope{Name: "block", Scope: s.local, Local: true})
}

func (s *site) declareLocal(name string, t types.Type) *symbols.Variable {
	v := Prop(name, t)
	v.Local = true
	s.local.Declare(v)
	return v
}

func (s *site) resolve(e ast.Expr) (calls.Result, *binding.Store) {
	store := binding.New()
	rc := calls.NewContext(context.Background(), s.resolver, s.tower(), store)
	return s.resolver.ResolveExpr(rc, e), store
}

func requireSuccess(t *testing.T, result calls.Result, store *binding.Store) *calls.Success {
	t.Helper()
	s, ok := result.(*calls.Success)
	require.True(t, ok, "result: %T\ndiagnostics: %s", result, spew.Sdump(store.Diagnostics()))
	return s
}

func hasDiagnostic(store *binding.Store, kind diag.Kind) bool {
	for _, d := range store.Diagnostics() {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func TestMostSpecificOverload(t *testing.T) {
	s := newSite()
	specific := Fn("foo", types.Int, Param("a", types.Int), Param("b", types.String))
	general := Fn("foo", types.String, Param("a", types.Any), Param("b", types.Any))
	s.file.Declare(general, specific)

	call := Call("foo", Int(1), Str("x"))
	result, store := s.resolve(call)
	res := requireSuccess(t, result, store)
	require.NotNil(t, res.Call)

	assert.Same(t, specific, res.Call.Symbol)
	assert.Equal(t, "Int", types.TypeString(res.Call.ReturnType))
	assert.Equal(t, types.Int, store.TypeOf(call))

	args := res.Call.ArgumentMap()
	require.Len(t, args, 2)
	seen := map[*symbols.Parameter]bool{}
	for arg, p := range args {
		assert.False(t, seen[p], "parameter %s mapped twice", p.Name)
		seen[p] = true
		switch arg.Info().Node {
		case call.Args[0].Value:
			assert.Equal(t, "a", p.Name)
		case call.Args[1].Value:
			assert.Equal(t, "b", p.Name)
		default:
			t.Fatalf("unexpected argument %s", ast.ExprString(arg.Info().Node))
		}
	}
}

func TestNamedArguments(t *testing.T) {
	s := newSite()
	s.file.Declare(Fn("f", types.Unit, Param("a", types.Int), Param("b", types.String), DefaultParam("c", types.Boolean)))

	call := CallArgs("f", NamedArg("b", Str("x")), NamedArg("a", Int(1)))
	result, store := s.resolve(call)
	res := requireSuccess(t, result, store)

	byName := map[string]ast.Expr{}
	for arg, p := range res.Call.ArgumentMap() {
		byName[p.Name] = arg.Info().Node
	}
	assert.Equal(t, call.Args[1].Value, byName["a"])
	assert.Equal(t, call.Args[0].Value, byName["b"])
	assert.NotContains(t, byName, "c")
	assert.Empty(t, res.Call.ArgumentsOf(2))
}

func TestLambdaOnMember(t *testing.T) {
	s := newSite()
	obj := s.table.DeclareClass(TClass(types.FirstUserClassId, "Obj"))
	s.table.AddMembers(obj, Fn("bar", types.Int, Param("f", TFunc1(types.Int, types.Int))))
	s.declareLocal("obj", obj.Self())

	lambda := Block(Binary("+", Name("it"), Int(1)))
	call := Trailing(CallOn(Name("obj"), "bar"), lambda)
	result, store := s.resolve(call)
	res := requireSuccess(t, result, store)

	assert.Equal(t, calls.DispatchReceiver, res.Call.ReceiverKind)
	assert.Equal(t, "Int", types.TypeString(res.Call.ReturnType))
	lt, ok := store.Get(binding.LambdaType, lambda)
	require.True(t, ok)
	assert.Equal(t, "(Int) -> Int", types.TypeString(lt.(types.Type)))
	_, coerced := store.Get(binding.CoercedToUnit, lambda)
	assert.False(t, coerced)
}

func TestLambdaCoercedToUnit(t *testing.T) {
	s := newSite()
	s.file.Declare(Fn("onEach", types.Unit, Param("f", TFunc1(types.Int, types.Unit))))

	lambda := Block(Binary("+", Name("it"), Int(1)))
	result, store := s.resolve(Trailing(Call("onEach"), lambda))
	requireSuccess(t, result, store)

	coerced, ok := store.Get(binding.CoercedToUnit, lambda)
	require.True(t, ok)
	assert.Equal(t, true, coerced)
	assert.Equal(t, "(Int) -> Unit", types.TypeString(store.TypeOf(lambda)))
}

func TestBuilderInference(t *testing.T) {
	s := newSite().withPrelude()

	add := Call("add", Int(1))
	call := Trailing(Call("buildList"), Block(add))
	result, store := s.resolve(call)
	res := requireSuccess(t, result, store)

	assert.Equal(t, "List<Int>", types.TypeString(res.Call.ReturnType))
	require.Len(t, res.Call.TypeArguments, 1)
	assert.Equal(t, "Int", types.TypeString(res.Call.TypeArguments[0]))
	assert.Empty(t, diag.Errors(store.Diagnostics()))

	_, ok := store.CallOf(add)
	assert.True(t, ok, "the call within the builder lambda is completed")
}

func TestNestedInference(t *testing.T) {
	s := newSite().withPrelude()

	inner := Call("listOf", Int(1))
	result, store := s.resolve(Call("listOf", inner))
	res := requireSuccess(t, result, store)

	assert.Equal(t, "List<List<Int>>", types.TypeString(res.Call.ReturnType))
	assert.Equal(t, "List<Int>", types.TypeString(store.TypeOf(inner)))
	_, ok := store.CallOf(inner)
	assert.True(t, ok)
}

func TestHiddenOnly(t *testing.T) {
	s := newSite()
	hidden := Fn("gone", types.Unit)
	hidden.Deprecation = symbols.Deprecation{Level: symbols.DeprecatedHidden}
	s.file.Declare(hidden)

	result, store := s.resolve(Call("gone"))
	nf, ok := result.(*calls.NoneFound)
	require.True(t, ok, "%T", result)
	assert.True(t, nf.Hidden)
	assert.Equal(t, calls.NoneApplicable, calls.Classify(result))
	assert.True(t, hasDiagnostic(store, diag.UnresolvedReference))
}

func TestHiddenLosesToVisible(t *testing.T) {
	s := newSite()
	hidden := Fn("foo", types.Unit, Param("x", types.Int))
	hidden.Deprecation = symbols.Deprecation{Level: symbols.DeprecatedHidden}
	visible := Fn("foo", types.Int, Param("x", types.Int))
	s.file.Declare(hidden)
	s.imported.Declare(visible)

	result, store := s.resolve(Call("foo", Int(1)))
	res := requireSuccess(t, result, store)
	assert.Same(t, visible, res.Call.Symbol)
}

func TestRemainderAlias(t *testing.T) {
	newMoney := func() (*site, *symbols.Function) {
		s := newSite()
		money := s.table.DeclareClass(TClass(types.FirstUserClassId, "Money"))
		mod := Fn("mod", money.Self(), Param("other", types.Int))
		mod.Operator = true
		s.table.AddMembers(money, mod)
		s.declareLocal("m", money.Self())
		return s, mod
	}

	s, mod := newMoney()
	result, store := s.resolve(Binary("%", Name("m"), Int(3)))
	res := requireSuccess(t, result, store)
	assert.Same(t, mod, res.Call.Symbol)
	assert.Equal(t, "Money", types.TypeString(res.Call.ReturnType))

	s, mod = newMoney()
	s.settings.Features.OperatorRem = false
	result, store = s.resolve(Binary("%", Name("m"), Int(3)))
	res = requireSuccess(t, result, store)
	assert.Same(t, mod, res.Call.Symbol)

	// rem on Int is found first and never falls back
	s, _ = newMoney()
	result, store = s.resolve(Binary("%", Int(7), Int(3)))
	res = requireSuccess(t, result, store)
	assert.Equal(t, "rem", res.Call.Symbol.CallableName())
}

func TestInvokeThroughVariable(t *testing.T) {
	s := newSite()
	f := s.declareLocal("f", TFunc1(types.Int, types.String))

	result, store := s.resolve(Call("f", Int(1)))
	res := requireSuccess(t, result, store)

	assert.Equal(t, "invoke", res.Call.Symbol.CallableName())
	assert.Equal(t, "String", types.TypeString(res.Call.ReturnType))
	require.NotNil(t, res.Call.Variable)
	assert.Same(t, f, res.Call.Variable.Symbol)
}

func TestPendingVariableIsNotInvoked(t *testing.T) {
	s := newSite()
	s.declareLocal("f", types.PendingType)

	result, store := s.resolve(Call("f", Int(1)))
	_, ok := result.(*calls.NoneFound)
	require.True(t, ok, "%T", result)
	assert.True(t, hasDiagnostic(store, diag.UnresolvedReference))
}

func TestCollectAllCandidates(t *testing.T) {
	s := newSite()
	s.settings.CollectAllCandidates = true
	s.file.Declare(Fn("foo", types.Unit, Param("x", types.Int)), Fn("foo", types.Unit, Param("x", types.String)))

	result, _ := s.resolve(Call("foo", Int(1)))
	all, ok := result.(*calls.AllCandidates)
	require.True(t, ok, "%T", result)
	require.Len(t, all.Candidates, 2)
	assert.Equal(t, calls.NoError, calls.Classify(result))

	applicable := 0
	for _, c := range all.Candidates {
		if c.Applicability().IsSuccess() {
			applicable++
		}
	}
	assert.Equal(t, 1, applicable)
}

func TestAmbiguity(t *testing.T) {
	s := newSite()
	s.file.Declare(Fn("foo", types.Unit, Param("x", types.Int)), Fn("foo", types.Unit, Param("x", types.Int)))

	result, store := s.resolve(Call("foo", Int(1)))
	many, ok := result.(*calls.ManyCandidates)
	require.True(t, ok, "%T", result)
	assert.Equal(t, calls.Ambiguous, many.Kind)
	assert.True(t, hasDiagnostic(store, diag.OverloadResolutionAmbiguity))
}

func TestNoneApplicable(t *testing.T) {
	s := newSite()
	s.file.Declare(Fn("foo", types.Unit, Param("x", types.String)), Fn("foo", types.Unit, Param("x", types.Boolean)))

	result, store := s.resolve(Call("foo", Int(1)))
	many, ok := result.(*calls.ManyCandidates)
	require.True(t, ok, "%T", result)
	assert.Equal(t, calls.NoneApplicable, many.Kind)
	assert.Len(t, many.Candidates, 2)
	assert.True(t, hasDiagnostic(store, diag.NoneApplicable))
}

func TestFailedArgumentIsNotReportedTwice(t *testing.T) {
	s := newSite()
	s.file.Declare(Fn("foo", types.Unit, Param("x", types.Int)))

	_, store := s.resolve(Call("foo", Call("missing")))
	unresolved := 0
	for _, d := range store.Diagnostics() {
		if d.Kind == diag.UnresolvedReference {
			unresolved++
		}
	}
	assert.Equal(t, 1, unresolved)
}

func TestUnderscoreTypeArguments(t *testing.T) {
	s := newSite().withPrelude()
	s.settings.Features.UnderscoredTypeArguments = true
	result, store := s.resolve(TypeArgs(Call("listOf", Int(1)), TUnderscore()))
	res := requireSuccess(t, result, store)
	assert.Equal(t, "List<Int>", types.TypeString(res.Call.ReturnType))
	assert.False(t, hasDiagnostic(store, diag.UnderscoreTypeArgumentUnsupported))

	s.settings.Features.UnderscoredTypeArguments = false
	_, store = s.resolve(TypeArgs(Call("listOf", Int(1)), TUnderscore()))
	assert.True(t, hasDiagnostic(store, diag.UnderscoreTypeArgumentUnsupported))

	// disabled by default
	_, store = newSite().withPrelude().resolve(TypeArgs(Call("listOf", Int(1)), TUnderscore()))
	assert.True(t, hasDiagnostic(store, diag.UnderscoreTypeArgumentUnsupported))
}

func TestLambdaArgumentShape(t *testing.T) {
	s := newSite()
	s.file.Declare(Fn("f", types.Unit, Param("block", TFunc(nil, types.Unit))))

	_, store := s.resolve(Trailing(Call("f"), Block(), Block()))
	assert.True(t, hasDiagnostic(store, diag.ManyLambdaExpressionArguments))

	_, store = s.resolve(CallArgs("f", SpreadArg(Block())))
	assert.True(t, hasDiagnostic(store, diag.SpreadOnFunctionalArgument))
}

func TestContractInvocation(t *testing.T) {
	s := newSite().withPrelude()

	lambda := Block(Int(1))
	result, store := s.resolve(Trailing(Call("run"), lambda))
	res := requireSuccess(t, result, store)

	assert.Equal(t, "Int", types.TypeString(res.Call.ReturnType))
	assert.Equal(t, map[int]symbols.InvocationKind{0: symbols.ExactlyOnce}, res.Call.Invocations)
	kind, ok := store.Get(binding.Invocation, lambda)
	require.True(t, ok)
	assert.Equal(t, symbols.ExactlyOnce, kind)
}

func TestCallableReferenceAdaptation(t *testing.T) {
	s := newSite()
	s.file.Declare(
		Fn("apply", types.Unit, Param("f", TFunc1(types.Int, types.Unit))),
		Fn("g", types.Int, Param("x", types.Int), DefaultParam("y", types.Int)),
	)

	ref := Ref("g")
	result, store := s.resolve(Call("apply", ref))
	requireSuccess(t, result, store)

	target, ok := store.Get(binding.CallableTarget, ref)
	require.True(t, ok)
	assert.Equal(t, "g", target.(symbols.Callable).CallableName())
	assert.Equal(t, "(Int) -> Unit", types.TypeString(store.TypeOf(ref)))
}

func TestDslScopeViolation(t *testing.T) {
	s := newSite()
	html := s.table.DeclareClass(TClass(types.FirstUserClassId, "Html"))
	html.DslMarker = "html"
	body := s.table.DeclareClass(TClass(types.FirstUserClassId+1, "Body"))
	body.DslMarker = "html"
	s.table.AddMembers(html,
		Fn("body", types.Unit, Param("block", TFuncWithReceiver(body.Self(), nil, types.Unit))),
		Fn("title", types.Unit))
	s.receiver = tower.NewImplicitReceiver(html.Self(), "Html")

	result, store := s.resolve(Trailing(Call("body"), Block(Call("title"))))
	requireSuccess(t, result, store)
	assert.True(t, hasDiagnostic(store, diag.DslScopeViolation))

	s.settings.Features.DslMarkers = false
	_, store = s.resolve(Trailing(Call("body"), Block(Call("title"))))
	assert.False(t, hasDiagnostic(store, diag.DslScopeViolation))
}

func TestMissingArgument(t *testing.T) {
	s := newSite()
	s.file.Declare(Fn("f", types.Int, Param("a", types.Int), Param("b", types.Int)))

	var (
		result calls.Result
		store  *binding.Store
	)
	require.NotPanics(t, func() { result, store = s.resolve(Call("f", Int(1))) })
	many, ok := result.(*calls.ManyCandidates)
	require.True(t, ok, "%T", result)
	assert.Equal(t, calls.NoneApplicable, calls.Classify(result))
	assert.True(t, hasDiagnostic(store, diag.NoValueForParameter))

	mapping := many.Candidates[0].Mapping
	require.NotNil(t, mapping)
	require.Len(t, mapping.Args, 2)
	assert.IsType(t, &calls.MissingArgument{}, mapping.Args[1])
	assert.Empty(t, mapping.Args[1].Arguments())
}

func TestMissingArgumentOverload(t *testing.T) {
	s := newSite()
	one := Fn("f", types.Int, Param("a", types.Int))
	two := Fn("f", types.String, Param("a", types.Int), Param("b", types.Int))
	s.file.Declare(two, one)

	var (
		result calls.Result
		store  *binding.Store
	)
	require.NotPanics(t, func() { result, store = s.resolve(Call("f", Int(1))) })
	res := requireSuccess(t, result, store)
	assert.Same(t, one, res.Call.Symbol)
	assert.Equal(t, "Int", types.TypeString(res.Call.ReturnType))
	assert.False(t, hasDiagnostic(store, diag.NoValueForParameter))
}

func TestJointSession(t *testing.T) {
	s := newSite().withPrelude()
	store := binding.New()
	js := &calls.JointSession{}
	rc := calls.NewContext(context.Background(), s.resolver, s.tower(), store).WithSession(js)

	getValue, setValue := Call("listOf", Int(1)), Call("listOf", Str("x"))
	for _, e := range []*ast.Call{getValue, setValue} {
		res := requireSuccess(t, s.resolver.ResolveCallExpr(rc, e), store)
		assert.Nil(t, res.Call, "calls of a joint session stay partial")
	}
	_, bound := store.CallOf(getValue)
	assert.False(t, bound)

	completed := js.Complete(rc)
	require.Len(t, completed, 2)
	assert.Equal(t, "List<Int>", types.TypeString(completed[0].ReturnType))
	assert.Equal(t, "List<String>", types.TypeString(completed[1].ReturnType))
	_, bound = store.CallOf(getValue)
	assert.True(t, bound)
}

// accessorCall builds a call passing a value of type delegate, which stays a type variable until
// one of the accessors fixes it.
func accessorCall(name string, delegate types.Type) *calls.Call {
	d := Name("d")
	return &calls.Call{
		Node:  Call(name, d),
		Name:  name,
		Facts: flow.Empty,
		Args: []calls.Argument{
			&calls.ExpressionArgument{ArgumentInfo: calls.ArgumentInfo{Node: d, Facts: flow.Empty}, Type: delegate},
		},
	}
}

func TestJointSessionPairedAccessors(t *testing.T) {
	s := newSite()
	T := TParam("T")
	getValue := Fn("getValue", types.Unit, Param("delegate", types.Int))
	setValue := GenericFn("setValue", []*types.Param{T}, T, Param("delegate", T), Param("value", types.Int))
	s.file.Declare(getValue, setValue)

	store := binding.New()
	js := &calls.JointSession{}
	rc := calls.NewContext(context.Background(), s.resolver, s.tower(), store).WithSession(js)

	delegate := types.NewVar(100, nil)
	get, set := accessorCall("getValue", delegate), accessorCall("setValue", delegate)
	requireSuccess(t, s.resolver.ResolveCall(rc, get, get.Name, calls.FunctionKind{}), store)
	failed, ok := s.resolver.ResolveCall(rc, set, set.Name, calls.FunctionKind{}).(*calls.ManyCandidates)
	require.True(t, ok)
	require.Len(t, failed.Candidates, 1)
	assert.False(t, hasDiagnostic(store, diag.NoValueForParameter), "errors of a partial call are reported on completion")

	completed := js.Complete(rc)
	require.Len(t, completed, 2)
	assert.Same(t, getValue, completed[0].Symbol)
	assert.Same(t, setValue, completed[1].Symbol)

	fixed, ok := failed.Candidates[0].System.FixedType(delegate)
	require.True(t, ok, "fixed results of the successful accessor are copied")
	assert.Equal(t, "Int", types.TypeString(fixed))
	require.Len(t, completed[1].TypeArguments, 1)
	assert.Equal(t, "Int", types.TypeString(completed[1].TypeArguments[0]))
	assert.Equal(t, "Int", types.TypeString(completed[1].ReturnType))

	assert.False(t, hasDiagnostic(store, diag.CannotInferParameterType), "diagnostics: %s", spew.Sdump(store.Diagnostics()))
	assert.True(t, hasDiagnostic(store, diag.NoValueForParameter))
	_, bound := store.CallOf(set.Node)
	assert.True(t, bound)
}

func TestDeterministic(t *testing.T) {
	s := newSite().withPrelude()
	s.file.Declare(
		Fn("foo", types.Int, Param("a", types.Int), Param("b", types.String)),
		Fn("foo", types.String, Param("a", types.Any), Param("b", types.Any)),
	)
	expr := func() ast.Expr {
		return Call("listOf", Call("foo", Int(1), Str("x")), Call("maxOf", Int(1), Int(2)))
	}

	first, store1 := s.resolve(expr())
	second, store2 := s.resolve(expr())
	a, b := requireSuccess(t, first, store1), requireSuccess(t, second, store2)
	assert.Same(t, a.Call.Symbol, b.Call.Symbol)
	assert.Equal(t, types.TypeString(a.Call.ReturnType), types.TypeString(b.Call.ReturnType))
	assert.Equal(t, "List<Int>", types.TypeString(a.Call.ReturnType))
	assert.Equal(t, len(store1.Diagnostics()), len(store2.Diagnostics()))
}

func TestCallIsBoundOnce(t *testing.T) {
	s := newSite().withPrelude()
	store := binding.New()
	call := Trailing(Call("run"), Block(Call("listOf", Int(1))))

	rc := calls.NewContext(context.Background(), s.resolver, s.tower(), store)
	requireSuccess(t, s.resolver.ResolveExpr(rc, call), store)
	assert.Panics(t, func() {
		s.resolver.ResolveExpr(calls.NewContext(context.Background(), s.resolver, s.tower(), store), call)
	})
}

func TestExplicitTypeArguments(t *testing.T) {
	s := newSite().withPrelude()
	result, store := s.resolve(TypeArgs(Call("listOf", Int(1)), TRef("Number")))
	res := requireSuccess(t, result, store)
	assert.Equal(t, "List<Number>", types.TypeString(res.Call.ReturnType))

	_, store = s.resolve(TypeArgs(Call("listOf", Int(1)), TRef("Int"), TRef("Int")))
	assert.True(t, hasDiagnostic(store, diag.WrongNumberOfTypeArguments))
}

func TestExtensionReceiver(t *testing.T) {
	s := newSite()
	double := ExtFn(types.Int, "double", types.Int)
	s.file.Declare(double)

	result, store := s.resolve(CallOn(Int(2), "double"))
	res := requireSuccess(t, result, store)
	assert.Same(t, double, res.Call.Symbol)
	assert.Equal(t, calls.ExtensionReceiver, res.Call.ReceiverKind)

	result, _ = s.resolve(CallOn(Str("x"), "double"))
	assert.NotEqual(t, calls.NoError, calls.Classify(result))
}

func TestWrongReceiver(t *testing.T) {
	s := newSite()
	s.file.Declare(ExtFn(types.Int, "double", types.Int))

	result, store := s.resolve(CallOn(Str("x"), "double"))
	many, ok := result.(*calls.ManyCandidates)
	require.True(t, ok, "%T", result)
	require.Len(t, many.Candidates, 1)
	assert.Equal(t, diag.WrongReceiver, many.Candidates[0].Applicability())
	assert.Equal(t, calls.WrongReceiver, many.Kind)
	assert.Equal(t, calls.WrongReceiver, calls.Classify(result))
	assert.True(t, hasDiagnostic(store, diag.ReceiverTypeMismatch))
}

type neverMoreSpecific struct{}

func (neverMoreSpecific) IsMoreSpecific(a, b *calls.Candidate) bool { return false }

func TestResolverOptions(t *testing.T) {
	var logs bytes.Buffer
	s := newSite()
	s.resolver = exprcheck.NewResolver(
		calls.WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		calls.WithTracer(noop.NewTracerProvider().Tracer("calls_test")),
		calls.WithSpecificity(neverMoreSpecific{}),
	)
	s.file.Declare(
		Fn("foo", types.Int, Param("a", types.Int)),
		Fn("foo", types.String, Param("a", types.Any)),
	)

	result, store := s.resolve(Call("foo", Int(1)))
	assert.Equal(t, calls.Ambiguous, calls.Classify(result))
	assert.True(t, hasDiagnostic(store, diag.OverloadResolutionAmbiguity))
	assert.Contains(t, logs.String(), "ambiguous candidates")
}

func TestInapplicableOverloadIsSkipped(t *testing.T) {
	s := newSite()
	byString := Fn("foo", types.Unit, Param("p0", types.Int), Param("p1", types.String))
	byInt := Fn("foo", types.Unit, Param("p0", types.Int), Param("p1", types.Int))
	s.file.Declare(byInt, byString)

	call := Call("foo", Int(1), Str("x"))
	result, store := s.resolve(call)
	res := requireSuccess(t, result, store)
	assert.Same(t, byString, res.Call.Symbol)
	require.Len(t, res.Call.ArgumentsOf(0), 1)
	require.Len(t, res.Call.ArgumentsOf(1), 1)
	assert.Equal(t, call.Args[0].Value, res.Call.ArgumentsOf(0)[0].Info().Node)
	assert.Equal(t, call.Args[1].Value, res.Call.ArgumentsOf(1)[0].Info().Node)
}
