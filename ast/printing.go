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

import (
	"strings"
)

// ExprString returns a string representation of an expression.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

// TypeRefString returns a string representation of a type reference.
func TypeRefString(t *TypeRef) string {
	var sb strings.Builder
	typeRefString(&sb, t)
	return sb.String()
}

func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch et := e.(type) {
	case nil:

	case *Literal:
		if et.Kind == StringLit {
			sb.WriteByte('"')
			sb.WriteString(et.Syntax)
			sb.WriteByte('"')
			return
		}
		sb.WriteString(et.Syntax)

	case *Name:
		sb.WriteString(et.Name)

	case *This:
		sb.WriteString("this")
		if et.Label != "" {
			sb.WriteByte('@')
			sb.WriteString(et.Label)
		}

	case *Call:
		if et.Infix && et.Receiver != nil && len(et.Args) == 1 {
			if simple {
				sb.WriteByte('(')
			}
			exprString(sb, true, et.Receiver)
			sb.WriteByte(' ')
			sb.WriteString(et.Name)
			sb.WriteByte(' ')
			exprString(sb, true, et.Args[0].Value)
			if simple {
				sb.WriteByte(')')
			}
			return
		}
		if et.Receiver != nil {
			exprString(sb, true, et.Receiver)
			sb.WriteByte('.')
		}
		if et.Callee != nil {
			sb.WriteByte('(')
			exprString(sb, false, et.Callee)
			sb.WriteByte(')')
		} else {
			sb.WriteString(et.Name)
		}
		if len(et.TypeArgs) > 0 {
			sb.WriteByte('<')
			for i, ta := range et.TypeArgs {
				if i > 0 {
					sb.WriteString(", ")
				}
				typeRefString(sb, ta)
			}
			sb.WriteByte('>')
		}
		if len(et.Args) > 0 || len(et.Trailing) == 0 {
			sb.WriteByte('(')
			for i, arg := range et.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				if arg.Name != "" {
					sb.WriteString(arg.Name)
					sb.WriteString(" = ")
				}
				if arg.Spread {
					sb.WriteByte('*')
				}
				exprString(sb, false, arg.Value)
			}
			sb.WriteByte(')')
		}
		for _, l := range et.Trailing {
			sb.WriteByte(' ')
			exprString(sb, false, l)
		}

	case *Select:
		exprString(sb, true, et.Receiver)
		sb.WriteByte('.')
		sb.WriteString(et.Name)

	case *Lambda:
		sb.WriteString("{ ")
		if et.HasParams {
			for i, p := range et.Params {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(p.Name)
				if p.Type != nil {
					sb.WriteString(": ")
					typeRefString(sb, p.Type)
				}
			}
			sb.WriteString(" -> ")
		}
		for i, stmt := range et.Body {
			if i > 0 {
				sb.WriteString("; ")
			}
			exprString(sb, false, stmt)
		}
		sb.WriteString(" }")

	case *Return:
		sb.WriteString("return")
		if et.Label != "" {
			sb.WriteByte('@')
			sb.WriteString(et.Label)
		}
		if et.Value != nil {
			sb.WriteByte(' ')
			exprString(sb, false, et.Value)
		}

	case *CallableRef:
		switch {
		case et.Receiver != nil:
			exprString(sb, true, et.Receiver)
		case et.ReceiverType != nil:
			typeRefString(sb, et.ReceiverType)
		}
		sb.WriteString("::")
		sb.WriteString(et.Name)

	case *Collection:
		sb.WriteByte('[')
		for i, elem := range et.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, elem)
		}
		sb.WriteByte(']')

	case *Binary:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, true, et.Left)
		sb.WriteByte(' ')
		sb.WriteString(et.Op)
		sb.WriteByte(' ')
		exprString(sb, true, et.Right)
		if simple {
			sb.WriteByte(')')
		}

	case *IndexSet:
		exprString(sb, true, et.Receiver)
		sb.WriteByte('[')
		for i, index := range et.Indices {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, index)
		}
		sb.WriteString("] = ")
		exprString(sb, false, et.Value)

	case *Val:
		sb.WriteString("val ")
		sb.WriteString(et.Name)
		if et.Type != nil {
			sb.WriteString(": ")
			typeRefString(sb, et.Type)
		}
		sb.WriteString(" = ")
		exprString(sb, false, et.Value)

	case *Bad:
		sb.WriteString("<error>")
	}
}

func typeRefString(sb *strings.Builder, t *TypeRef) {
	switch {
	case t == nil:
	case t.Underscore:
		sb.WriteByte('_')
	case t.IsFunc:
		if t.Receiver != nil {
			typeRefString(sb, t.Receiver)
			sb.WriteByte('.')
		}
		sb.WriteByte('(')
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			typeRefString(sb, p)
		}
		sb.WriteString(") -> ")
		typeRefString(sb, t.Return)
	default:
		sb.WriteString(t.Name)
		if len(t.Args) > 0 {
			sb.WriteByte('<')
			for i, arg := range t.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				typeRefString(sb, arg)
			}
			sb.WriteByte('>')
		}
	}
}
