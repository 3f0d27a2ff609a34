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

package types

// Type is the base interface for all types.
//
// The set of types is closed: Named, Func, Param, Var, Stub, Error, Dynamic, and Pending.
type Type interface {
	TypeName() string
	isType()
}

func (t *Named) TypeName() string   { return "Named" }
func (t *Func) TypeName() string    { return "Func" }
func (t *Param) TypeName() string   { return "Param" }
func (t *Var) TypeName() string     { return "Var" }
func (t *Stub) TypeName() string    { return "Stub" }
func (t *Error) TypeName() string   { return "Error" }
func (t *Dynamic) TypeName() string { return "Dynamic" }
func (t *Pending) TypeName() string { return "Pending" }

func (*Named) isType()   {}
func (*Func) isType()    {}
func (*Param) isType()   {}
func (*Var) isType()     {}
func (*Stub) isType()    {}
func (*Error) isType()   {}
func (*Dynamic) isType() {}
func (*Pending) isType() {}

// Variance of a declared type parameter.
type Variance int

const (
	Invariant Variance = iota
	// Covariant: `out T`
	Out
	// Contravariant: `in T`
	In
)

func (v Variance) String() string {
	switch v {
	case Out:
		return "out"
	case In:
		return "in"
	default:
		return ""
	}
}

// Application of a class to type arguments: `List<Int>`
type Named struct {
	Class *Class
	Args  []Type
}

// Function type: `(Int, String) -> Int` or `R.(Int) -> Unit`
type Func struct {
	// Receiver is the optional receiver of an extension function type.
	Receiver Type
	Params   []Type
	Return   Type
	// Reflective marks the type of a callable reference, which is a subtype of
	// the corresponding plain function type.
	Reflective bool
}

// Declared type parameter of a class or callable symbol.
type Param struct {
	Name     string
	Variance Variance
	// Bounds are the declared upper bounds. An empty list is equivalent to `Any`.
	Bounds []Type
	// Reified parameters must not be inferred to non-denotable types.
	Reified bool
}

// Type variable of a constraint system. Each variable is created for exactly one
// resolution attempt and is fixed exactly once.
type Var struct {
	id     int
	Origin *Param
}

// NewVar creates a type variable instantiating the given type parameter.
// The origin may be nil for variables introduced by analysis (lambda parameters, literals).
func NewVar(id int, origin *Param) *Var { return &Var{id: id, Origin: origin} }

// Id returns the identifier of the variable, unique within one resolution context.
func (tv *Var) Id() int { return tv.id }

// Name of the variable, derived from its origin when available.
func (tv *Var) Name() string {
	if tv.Origin != nil {
		return tv.Origin.Name
	}
	return "_"
}

// Stub stands in for a not-yet-inferred variable of an enclosing call while a lambda is
// analyzed with builder inference. Any relation involving a stub is recorded rather than checked.
type Stub struct {
	Var *Var
}

// Error type, produced for malformed or unresolved expressions. Error types are compatible
// with every other type so that a single failure does not cascade.
type Error struct {
	Reason string
}

func NewError(reason string) *Error { return &Error{Reason: reason} }

// Dynamic type: values of this type accept any member access.
type Dynamic struct{}

// Pending marks the type of a declaration which is currently being computed.
type Pending struct{}

var (
	DynamicType = &Dynamic{}
	PendingType = &Pending{}
)

// NewNamed applies a class to type arguments.
func NewNamed(c *Class, args ...Type) *Named { return &Named{Class: c, Args: args} }

// NewFunc creates a function type without a receiver.
func NewFunc(params []Type, ret Type) *Func { return &Func{Params: params, Return: ret} }

// AllParams returns the receiver (if any) followed by the value parameters.
func (t *Func) AllParams() []Type {
	if t.Receiver == nil {
		return t.Params
	}
	all := make([]Type, 0, len(t.Params)+1)
	all = append(all, t.Receiver)
	return append(all, t.Params...)
}

func IsError(t Type) bool {
	_, ok := t.(*Error)
	return ok
}

func IsDynamic(t Type) bool {
	_, ok := t.(*Dynamic)
	return ok
}

// IsUnit returns true if t is the Unit type.
func IsUnit(t Type) bool {
	n, ok := t.(*Named)
	return ok && n.Class == UnitClass
}

// IsNothing returns true if t is the Nothing type.
func IsNothing(t Type) bool {
	n, ok := t.(*Named)
	return ok && n.Class == NothingClass
}

// IsFunctional returns true if t is a function type.
func IsFunctional(t Type) bool {
	_, ok := t.(*Func)
	return ok
}
