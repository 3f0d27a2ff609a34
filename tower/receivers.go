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

// Package tower enumerates the candidates of a call by walking a tower of scopes and receivers
// in priority order, stopping at the first level which yields a successful candidate.
package tower

import (
	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/types"
)

// ExplicitReceiver is the receiver written before a call. The set is closed:
// *ReceiverValue for expression receivers and *Qualifier for class and package qualifiers.
type ExplicitReceiver interface {
	explicitReceiver()
}

func (*ReceiverValue) explicitReceiver() {}
func (*Qualifier) explicitReceiver()     {}

// ReceiverValue is a value used as a receiver of a call.
type ReceiverValue struct {
	Type types.Type
	// SmartCasts are additional types known for the value from flow facts.
	SmartCasts []types.Type
	// Expr is the receiver expression, or nil for implicit receivers.
	Expr ast.Expr
	// Label names the declaration which introduced an implicit receiver (`this@label`).
	Label string
}

// NewReceiver creates an explicit receiver for an expression.
func NewReceiver(t types.Type, expr ast.Expr) *ReceiverValue {
	return &ReceiverValue{Type: t, Expr: expr}
}

// NewImplicitReceiver creates the implicit receiver of a class body, extension, or lambda with receiver.
func NewImplicitReceiver(t types.Type, label string) *ReceiverValue {
	return &ReceiverValue{Type: t, Label: label}
}

func (r *ReceiverValue) IsImplicit() bool { return r.Expr == nil }

func (r *ReceiverValue) IsDynamic() bool { return types.IsDynamic(r.Type) }

// Types returns the declared type followed by smart-cast types.
func (r *ReceiverValue) Types() []types.Type {
	if len(r.SmartCasts) == 0 {
		return []types.Type{r.Type}
	}
	return append([]types.Type{r.Type}, r.SmartCasts...)
}

// WithSmartCasts returns a copy of r which also has the given types.
func (r *ReceiverValue) WithSmartCasts(ts []types.Type) *ReceiverValue {
	if len(ts) == 0 {
		return r
	}
	c := *r
	c.SmartCasts = append(append([]types.Type(nil), r.SmartCasts...), ts...)
	return &c
}

func (r *ReceiverValue) String() string {
	if r.Expr != nil {
		return ast.ExprString(r.Expr)
	}
	if r.Label != "" {
		return "this@" + r.Label
	}
	return "this"
}

// Qualifier is a class or package name used as the receiver of a call: `Foo.bar()`.
type Qualifier struct {
	Name string
	// Static enumerates the qualifier's static declarations (companion or package members).
	Static symbols.Scope
	// Object is set when the qualifier also denotes a value (an object or companion).
	Object *ReceiverValue
}
