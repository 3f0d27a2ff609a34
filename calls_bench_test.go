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
	"context"
	"testing"

	. "github.com/wdamron/calls/construct"

	"github.com/wdamron/calls"
	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/binding"
	"github.com/wdamron/calls/types"
)

func benchResolve(b *testing.B, s *site, expr func() ast.Expr) {
	tw := s.tower()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := expr()
		store := binding.New()
		rc := calls.NewContext(context.Background(), s.resolver, tw, store)
		if _, ok := s.resolver.ResolveExpr(rc, e).(*calls.Success); !ok {
			b.Fatalf("unexpected failure for %s", ast.ExprString(e))
		}
	}
}

func BenchmarkOverloads(b *testing.B) {
	s := newSite()
	s.file.Declare(
		Fn("foo", types.Int, Param("a", types.Int), Param("b", types.String)),
		Fn("foo", types.String, Param("a", types.Any), Param("b", types.Any)),
		Fn("foo", types.Unit, Param("a", types.Boolean)),
	)
	benchResolve(b, s, func() ast.Expr { return Call("foo", Int(1), Str("x")) })
}

func BenchmarkNestedGenericCalls(b *testing.B) {
	s := newSite().withPrelude()
	benchResolve(b, s, func() ast.Expr {
		return Call("listOf", Call("listOf", Int(1)), Call("listOf", Call("maxOf", Int(1), Int(2))))
	})
}

func BenchmarkBuilderInference(b *testing.B) {
	s := newSite().withPrelude()
	benchResolve(b, s, func() ast.Expr {
		return Trailing(Call("buildList"), Block(Call("add", Int(1)), Call("add", Int(2))))
	})
}

func BenchmarkLambdaArguments(b *testing.B) {
	s := newSite().withPrelude()
	benchResolve(b, s, func() ast.Expr {
		return Trailing(Call("run"), Block(Trailing(CallOn(Int(1), "let"), Block(Binary("+", Name("it"), Int(1))))))
	})
}
