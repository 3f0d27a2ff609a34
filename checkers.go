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
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

// CallChecker inspects a completed call. Checkers run exactly once per call, after its type
// arguments are substituted, and may record effects on the call.
type CallChecker func(rc *ResolutionContext, call *ResolvedCall) []diag.Diagnostic

// DefaultCheckers returns the checkers run by a resolver unless WithCheckers is given.
func DefaultCheckers() []CallChecker {
	return []CallChecker{
		CheckVisibility,
		CheckDeprecation,
		CheckMissingSupertypes,
		CheckDslScope,
		CheckContract,
	}
}

// CheckVisibility reports private callables used outside of their owner.
func CheckVisibility(rc *ResolutionContext, call *ResolvedCall) []diag.Diagnostic {
	info := call.Symbol.Info()
	if info.Visibility != symbols.Private || info.Owner == "" {
		return nil
	}
	for _, s := range rc.Tower.Lexical {
		if s.Name == info.Owner {
			return nil
		}
	}
	return []diag.Diagnostic{diag.New(diag.InvisibleMember, call.Node, "cannot access '%s': it is private in '%s'", info.Name, info.Owner)}
}

func CheckDeprecation(rc *ResolutionContext, call *ResolvedCall) []diag.Diagnostic {
	info := call.Symbol.Info()
	switch info.Deprecation.Level {
	case symbols.DeprecatedWarning:
		return []diag.Diagnostic{diag.New(diag.Deprecated, call.Node, "'%s' is deprecated. %s", info.Name, info.Deprecation.Message)}
	case symbols.DeprecatedError:
		return []diag.Diagnostic{diag.New(diag.DeprecatedError, call.Node, "'%s' is deprecated. %s", info.Name, info.Deprecation.Message)}
	}
	return nil
}

func CheckMissingSupertypes(rc *ResolutionContext, call *ResolvedCall) []diag.Diagnostic {
	var ds []diag.Diagnostic
	for _, name := range call.Symbol.Info().MissingSupertypes {
		ds = append(ds, diag.New(diag.MissingSupertype, call.Node, "cannot access class '%s'. Check your module classpath", name))
	}
	return ds
}

// CheckDslScope reports a call on an implicit receiver of a DSL-marked class when an inner
// implicit receiver is marked with the same DSL marker.
func CheckDslScope(rc *ResolutionContext, call *ResolvedCall) []diag.Diagnostic {
	if !rc.Tower.Settings.Features.DslMarkers {
		return nil
	}
	var ds []diag.Diagnostic
	for _, r := range []*tower.ReceiverValue{call.Dispatch, call.Extension} {
		if r == nil || !r.IsImplicit() {
			continue
		}
		marker := dslMarker(r.Type)
		if marker == "" {
			continue
		}
		for _, inner := range rc.Tower.ImplicitReceivers() {
			if inner == r {
				break
			}
			if dslMarker(inner.Type) == marker {
				ds = append(ds, diag.New(diag.DslScopeViolation, call.Node,
					"'%s' can't be called in this context by implicit receiver. Use the explicit one if necessary", call.Symbol.CallableName()))
				break
			}
		}
	}
	return ds
}

func dslMarker(t types.Type) string {
	n, ok := t.(*types.Named)
	if !ok {
		return ""
	}
	marker := ""
	n.VisitSupertypes(func(s *types.Named) bool {
		if s.Class.DslMarker != "" {
			marker = s.Class.DslMarker
			return false
		}
		return true
	})
	return marker
}

// CheckContract records the declared invocation kinds of functional parameters which received a
// lambda.
func CheckContract(rc *ResolutionContext, call *ResolvedCall) []diag.Diagnostic {
	fn, ok := call.Symbol.(*symbols.Function)
	if !ok || fn.Contract == nil {
		return nil
	}
	for _, effect := range fn.Contract.CallsInPlace {
		for _, arg := range call.ArgumentsOf(effect.Param) {
			if _, ok := arg.(*LambdaArgument); !ok {
				continue
			}
			if call.Invocations == nil {
				call.Invocations = make(map[int]symbols.InvocationKind)
			}
			call.Invocations[effect.Param] = effect.Kind
		}
	}
	return nil
}
