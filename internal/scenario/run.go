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

package scenario

import (
	"context"

	"github.com/wdamron/calls"
	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/binding"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/types"
)

// Outcome of resolving the root expression of a site.
type Outcome struct {
	// Result is nil when the root expression is not resolved as a call.
	Result calls.Result
	Kind   calls.ErrorKind
	Type   types.Type
	Store  *binding.Store
}

// Call returns the completed call bound to the root expression, if any.
func (o *Outcome) Call() *calls.ResolvedCall {
	if s, ok := o.Result.(*calls.Success); ok {
		return s.Call
	}
	return nil
}

// Diagnostics returns every diagnostic reported during the resolution.
func (o *Outcome) Diagnostics() []diag.Diagnostic { return o.Store.Diagnostics() }

// Run resolves the root expression of the site with a fresh binding store. Calls, operators,
// names, and callable references are resolved as calls; other expressions are checked by the
// resolver's expression checker.
func (s *Site) Run(ctx context.Context, r *calls.Resolver) *Outcome {
	store := binding.New()
	rc := calls.NewContext(ctx, r, s.Tower, store).WithExpected(s.Expected)
	out := &Outcome{Store: store}
	switch s.Expr.(type) {
	case *ast.Call, *ast.Binary, *ast.IndexSet, *ast.Name, *ast.Select, *ast.CallableRef:
		out.Result = r.ResolveExpr(rc, s.Expr)
		out.Kind = calls.Classify(out.Result)
		out.Type = calls.ResultType(out.Result)
	default:
		out.Type, _ = r.Checker.CheckExpression(rc, s.Expr, s.Expected)
	}
	return out
}
