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

// Expr is the base for all expressions at a call site.
//
// Expressions are compared by identity: results of analysis are recorded per node in a binding store.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	exprNode()
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Name)(nil)
	_ Expr = (*This)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Select)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*Return)(nil)
	_ Expr = (*CallableRef)(nil)
	_ Expr = (*Collection)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*IndexSet)(nil)
	_ Expr = (*Val)(nil)
	_ Expr = (*Bad)(nil)
)

func (*Literal) exprNode()     {}
func (*Name) exprNode()        {}
func (*This) exprNode()        {}
func (*Call) exprNode()        {}
func (*Select) exprNode()      {}
func (*Lambda) exprNode()      {}
func (*Return) exprNode()      {}
func (*CallableRef) exprNode() {}
func (*Collection) exprNode()  {}
func (*Binary) exprNode()      {}
func (*IndexSet) exprNode()    {}
func (*Val) exprNode()         {}
func (*Bad) exprNode()         {}

type LiteralKind int

const (
	IntLit LiteralKind = iota
	LongLit
	DoubleLit
	StringLit
	CharLit
	BoolLit
)

// Constant literal: `1`, `"x"`, `true`
type Literal struct {
	Kind   LiteralKind
	Syntax string
}

// "Literal"
func (e *Literal) ExprName() string { return "Literal" }

// Simple name reference: `x`
type Name struct {
	Name string
}

// "Name"
func (e *Name) ExprName() string { return "Name" }

// Receiver reference: `this` or `this@label`
type This struct {
	Label string
}

// "This"
func (e *This) ExprName() string { return "This" }

// Call: `r.f<T>(a, b) { ... }`
type Call struct {
	// Receiver is the optional explicit receiver.
	Receiver Expr
	// Callee is set instead of Name when an arbitrary expression is invoked: `(f)(1)`
	Callee   Expr
	Name     string
	TypeArgs []*TypeRef
	Args     []*Argument
	// Trailing lambdas outside of parentheses.
	Trailing []*Lambda
	// Infix call: `a f b`
	Infix bool
	// Operator call produced by operator syntax.
	Operator bool
}

// "Call"
func (e *Call) ExprName() string { return "Call" }

// Argument within parentheses, optionally named or spread: `name = *xs`
type Argument struct {
	Name   string
	Spread bool
	Value  Expr
}

// Property access: `r.p`
type Select struct {
	Receiver Expr
	Name     string
}

// "Select"
func (e *Select) ExprName() string { return "Select" }

// Lambda literal: `{ x, y -> body }`
type Lambda struct {
	Params []*LambdaParam
	// HasParams is true when the lambda declares a parameter list, even an empty one (`{ -> x }`).
	HasParams bool
	Body      []Expr
	Label     string
}

// "Lambda"
func (e *Lambda) ExprName() string { return "Lambda" }

// Lambda parameter with an optional declared type.
type LambdaParam struct {
	Name string
	Type *TypeRef
}

// Return from a lambda: `return@label value`. Value is nil for a bare return.
type Return struct {
	Value Expr
	Label string
}

// "Return"
func (e *Return) ExprName() string { return "Return" }

// Callable reference: `::f`, `String::length`, `x::f`
type CallableRef struct {
	// Receiver is an expression on the left-hand side (bound reference).
	Receiver Expr
	// ReceiverType is a type on the left-hand side (unbound reference).
	ReceiverType *TypeRef
	Name         string
}

// "CallableRef"
func (e *CallableRef) ExprName() string { return "CallableRef" }

// Collection literal: `[a, b]`
type Collection struct {
	Elems []Expr
}

// "Collection"
func (e *Collection) ExprName() string { return "Collection" }

// Binary operator expression: `a % b`
type Binary struct {
	Op          string
	Left, Right Expr
}

// "Binary"
func (e *Binary) ExprName() string { return "Binary" }

// Indexed assignment: `r[i] = v`
type IndexSet struct {
	Receiver Expr
	Indices  []Expr
	Value    Expr
}

// "IndexSet"
func (e *IndexSet) ExprName() string { return "IndexSet" }

// Local value declaration: `val x: T = v`
type Val struct {
	Name  string
	Type  *TypeRef
	Value Expr
}

// "Val"
func (e *Val) ExprName() string { return "Val" }

// Placeholder for a malformed expression.
type Bad struct {
	Reason string
}

// "Bad"
func (e *Bad) ExprName() string { return "Bad" }

// TypeRef is an unresolved type reference: `List<Int>`, `(Int) -> Unit`, `_`
type TypeRef struct {
	Name string
	Args []*TypeRef
	// Underscore marks an inferred type argument placeholder.
	Underscore bool
	// Function type components, when IsFunc is set.
	IsFunc   bool
	Receiver *TypeRef
	Params   []*TypeRef
	Return   *TypeRef
}

// OperatorName maps binary operator tokens to operator convention names.
func OperatorName(op string) (string, bool) {
	switch op {
	case "+":
		return "plus", true
	case "-":
		return "minus", true
	case "*":
		return "times", true
	case "/":
		return "div", true
	case "%":
		return "rem", true
	case "..":
		return "rangeTo", true
	}
	return "", false
}
