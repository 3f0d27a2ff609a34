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

package ast

// WalkExpr visits e and its sub-expressions in pre-order. Lambda bodies are visited;
// type references are not.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case *Literal, *Name, *This, *Bad:
		f(e)

	case *Call:
		f(e)
		WalkExpr(e.Receiver, f)
		WalkExpr(e.Callee, f)
		for _, arg := range e.Args {
			WalkExpr(arg.Value, f)
		}
		for _, l := range e.Trailing {
			WalkExpr(l, f)
		}

	case *Select:
		f(e)
		WalkExpr(e.Receiver, f)

	case *Lambda:
		f(e)
		for _, stmt := range e.Body {
			WalkExpr(stmt, f)
		}

	case *Return:
		f(e)
		WalkExpr(e.Value, f)

	case *CallableRef:
		f(e)
		WalkExpr(e.Receiver, f)

	case *Collection:
		f(e)
		for _, elem := range e.Elems {
			WalkExpr(elem, f)
		}

	case *Binary:
		f(e)
		WalkExpr(e.Left, f)
		WalkExpr(e.Right, f)

	case *IndexSet:
		f(e)
		WalkExpr(e.Receiver, f)
		for _, index := range e.Indices {
			WalkExpr(index, f)
		}
		WalkExpr(e.Value, f)

	case *Val:
		f(e)
		WalkExpr(e.Value, f)

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

// Returns collects the return expressions of a lambda body which target the lambda itself.
// Returns within nested lambdas are skipped unless they are labeled with label.
func Returns(l *Lambda) []*Return {
	var returns []*Return
	var visit func(e Expr, nested bool)
	visit = func(e Expr, nested bool) {
		switch e := e.(type) {
		case *Return:
			if !nested || (e.Label != "" && e.Label == l.Label) {
				returns = append(returns, e)
			}
			visit(e.Value, nested)
		case *Lambda:
			for _, stmt := range e.Body {
				visit(stmt, true)
			}
		case *Call:
			visit(e.Receiver, nested)
			visit(e.Callee, nested)
			for _, arg := range e.Args {
				visit(arg.Value, nested)
			}
			for _, t := range e.Trailing {
				visit(t, nested)
			}
		case *Select:
			visit(e.Receiver, nested)
		case *Binary:
			visit(e.Left, nested)
			visit(e.Right, nested)
		case *Collection:
			for _, elem := range e.Elems {
				visit(elem, nested)
			}
		case *IndexSet:
			visit(e.Receiver, nested)
			for _, index := range e.Indices {
				visit(index, nested)
			}
			visit(e.Value, nested)
		case *Val:
			visit(e.Value, nested)
		case *CallableRef:
			visit(e.Receiver, nested)
		}
	}
	for _, stmt := range l.Body {
		visit(stmt, false)
	}
	return returns
}
