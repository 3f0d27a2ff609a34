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

// calls provides overload resolution and type-argument inference for calls in a language with
// receivers, extensions, and trailing lambdas.
//
// A call is resolved by searching a tower of scopes and receivers for candidates, ranking the
// candidates of the first level which yields an applicable one, and inferring omitted type
// arguments with a constraint system. Lambda and callable-reference arguments are analyzed only
// once the types they depend on are known.
//
//
// Supported Features:
//
//   * Shadowing-aware search over local, member, extension, synthetic, context-receiver, imported, and dynamic levels
//   * Named, default, and vararg arguments
//   * Explicit and underscored type arguments
//   * Postponed analysis of lambdas and callable references, ordered by their type dependencies
//   * Builder inference through stub types in trailing lambdas
//   * Invocation of function-typed variables through the invoke convention
//   * Joint completion of related calls (delegated-property accessors)
//   * Speculative analysis of competing candidates in private binding-store overlays
//
//
// Links:
//
// Kotlin specification, overload resolution: https://kotlinlang.org/spec/overload-resolution.html
//
// Kotlin specification, type inference: https://kotlinlang.org/spec/type-inference.html
//
// Builder inference: https://kotlinlang.org/docs/using-builders-with-builder-inference.html
package calls

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/flow"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

// ExpressionChecker computes the types of expressions which are not resolved as calls by the
// resolver itself. Calls nested in checked expressions are resolved through rc.Resolver.
type ExpressionChecker interface {
	// CheckExpression computes the type of expr and the flow facts which hold after it.
	// The expected type may be nil.
	CheckExpression(rc *ResolutionContext, expr ast.Expr, expected types.Type) (types.Type, flow.Facts)
	// ResolveTypeRef resolves a type written at a call site. It returns nil for `_`.
	ResolveTypeRef(ref *ast.TypeRef, tower *tower.ScopeTower) types.Type
}

// Resolver resolves calls. A resolver holds no per-call state and may be shared between
// concurrent resolutions, each with its own ResolutionContext.
type Resolver struct {
	Checker     ExpressionChecker
	Specificity SpecificityComparator
	// Checkers run once for every completed call.
	Checkers []CallChecker

	logger *slog.Logger
	tracer trace.Tracer
}

// Option configures a resolver.
type Option func(*Resolver)

// Log resolution steps at debug level. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// Trace resolution with the given tracer instead of the global provider's tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Resolver) { r.tracer = tracer }
}

// Rank candidates of the final group with the given comparator instead of DefaultSpecificity.
func WithSpecificity(cmp SpecificityComparator) Option {
	return func(r *Resolver) { r.Specificity = cmp }
}

// Replace the default call checkers.
func WithCheckers(checkers ...CallChecker) Option {
	return func(r *Resolver) { r.Checkers = checkers }
}

// Create a new resolver which checks non-call expressions with checker.
func NewResolver(checker ExpressionChecker, opts ...Option) *Resolver {
	r := &Resolver{
		Checker:     checker,
		Specificity: DefaultSpecificity{},
		Checkers:    DefaultCheckers(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}
	return r
}

// Logger returns the logger of the resolver.
func (r *Resolver) Logger() *slog.Logger { return r.logger }
