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
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/flow"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

// CallKind selects how the callee of a call is looked up.
type CallKind int

const (
	FunctionCall CallKind = iota
	VariableCall
	InvokeCall
	CallableReferenceCall
	GivenCandidatesCall
)

var callKindNames = [...]string{"FUNCTION", "VARIABLE", "INVOKE", "CALLABLE_REFERENCE", "GIVEN_CANDIDATES"}

func (k CallKind) String() string { return callKindNames[k] }

// Call is a normalized call: the callee's name, its receiver, and its arguments, each classified
// but not yet checked against any parameter.
type Call struct {
	Node     ast.Expr
	Name     string
	Kind     CallKind
	Explicit tower.ExplicitReceiver
	TypeArgs []TypeArgument
	Args     []Argument
	// External is the trailing lambda or the assigned value of an indexed assignment, if any.
	External Argument
	// DispatchReceiverForInvoke is the value invoked by an invoke call: `(f)(1)`
	DispatchReceiverForInvoke *tower.ReceiverValue
	Infix                     bool
	Operator                  bool
	// IsRem marks calls produced by the binary remainder operator.
	IsRem bool
	// LHS is the left-hand side of a callable reference call.
	LHS CallableReferenceLHS
	// Facts hold after every argument.
	Facts flow.Facts
	// Diagnostics found while normalizing the call.
	Diagnostics []diag.Diagnostic
}

// AllArgs returns the arguments in parentheses followed by the external argument.
func (c *Call) AllArgs() []Argument {
	if c.External == nil {
		return c.Args
	}
	all := make([]Argument, 0, len(c.Args)+1)
	all = append(all, c.Args...)
	return append(all, c.External)
}

// Receiver returns the explicit expression receiver of the call, if any.
func (c *Call) Receiver() *tower.ReceiverValue {
	switch r := c.Explicit.(type) {
	case *tower.ReceiverValue:
		return r
	case *tower.Qualifier:
		return r.Object
	}
	return nil
}

// TypeArgument is an explicit type argument. Underscored arguments are inferred.
type TypeArgument struct {
	Type       types.Type
	Underscore bool
	Ref        *ast.TypeRef
}

// ArgumentInfo holds what every argument has.
type ArgumentInfo struct {
	Node   ast.Expr
	Name   string
	Spread bool
	// Facts hold before the argument.
	Facts flow.Facts
}

func (a *ArgumentInfo) Info() *ArgumentInfo { return a }

// Argument of a call. The set is closed: *ExpressionArgument, *LambdaArgument,
// *CallableReferenceArgument, *CollectionLiteralArgument, *SubCallArgument, and *ParseErrorArgument.
type Argument interface {
	Info() *ArgumentInfo
	argument()
}

func (*ExpressionArgument) argument()        {}
func (*LambdaArgument) argument()            {}
func (*CallableReferenceArgument) argument() {}
func (*CollectionLiteralArgument) argument() {}
func (*SubCallArgument) argument()           {}
func (*ParseErrorArgument) argument()        {}

// Argument with a known type.
type ExpressionArgument struct {
	ArgumentInfo
	Type types.Type
	// SmartCasts are additional types known for a stable value.
	SmartCasts []types.Type
	// PreviousError marks arguments which stand in for a call that failed to resolve.
	PreviousError bool
}

// Lambda literal; analyzed once its parameter types are known.
type LambdaArgument struct {
	ArgumentInfo
	Lambda *ast.Lambda
	// ParamTypes holds the declared parameter types, with nil for undeclared ones.
	ParamTypes []types.Type
	// External lambdas are written after the parentheses.
	External bool
}

// Callable reference; resolved against the expected functional type.
type CallableReferenceArgument struct {
	ArgumentInfo
	Ref *ast.CallableRef
	LHS CallableReferenceLHS

	resolved   bool
	candidates []*Candidate
}

// Collection literal; typed once the expected type is known.
type CollectionLiteralArgument struct {
	ArgumentInfo
	Literal  *ast.Collection
	Elements []types.Type
}

// Nested call resolved in dependent mode: its type variables are inferred together with the
// enclosing call.
type SubCallArgument struct {
	ArgumentInfo
	Candidate *Candidate
}

// Malformed argument.
type ParseErrorArgument struct {
	ArgumentInfo
	Reason string
}

// ReturnType returns the return type of the nested call, which may mention its type variables.
func (a *SubCallArgument) ReturnType() types.Type { return a.Candidate.ReturnType }

// CallableReferenceLHS is the left-hand side of a callable reference. The set is closed:
// NoLHS, *TypeLHS, and *ExpressionLHS.
type CallableReferenceLHS interface {
	callableReferenceLHS()
}

func (NoLHS) callableReferenceLHS()          {}
func (*TypeLHS) callableReferenceLHS()       {}
func (*ExpressionLHS) callableReferenceLHS() {}

// No left-hand side: `::f`
type NoLHS struct{}

// Type on the left-hand side; the receiver becomes the first parameter: `String::length`
type TypeLHS struct {
	Type types.Type
}

// Value on the left-hand side; the receiver is bound: `s::length`
type ExpressionLHS struct {
	Receiver *tower.ReceiverValue
}

// LHSOf returns the left-hand side of a callable reference argument. Asking any other
// argument for its left-hand side is a programming error.
func LHSOf(arg Argument) CallableReferenceLHS {
	ref, ok := arg.(*CallableReferenceArgument)
	if !ok {
		panic("calls: left-hand side requested for a non-reference argument")
	}
	return ref.LHS
}

// argumentType returns the type of an argument which has one without further analysis.
func argumentType(arg Argument) (types.Type, bool) {
	switch arg := arg.(type) {
	case *ExpressionArgument:
		return arg.Type, true
	case *SubCallArgument:
		return arg.ReturnType(), true
	case *ParseErrorArgument:
		return types.NewError(arg.Reason), true
	}
	return nil, false
}
