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

// Package symbols describes the callable declarations which calls resolve to, and the scopes
// which enumerate them by name.
package symbols

import (
	"strings"

	"github.com/wdamron/calls/types"
)

type Visibility int

const (
	Public Visibility = iota
	Internal
	Protected
	Private
)

type DeprecationLevel int

const (
	NotDeprecated DeprecationLevel = iota
	DeprecatedWarning
	DeprecatedError
	// Hidden declarations are invisible to resolution.
	DeprecatedHidden
)

type Deprecation struct {
	Level   DeprecationLevel
	Message string
}

// Callable is a function or a variable. The set is closed: *Function and *Variable.
type Callable interface {
	CallableName() string
	Info() *Common
	callable()
}

func (f *Function) CallableName() string { return f.Name }
func (v *Variable) CallableName() string { return v.Name }

func (f *Function) Info() *Common { return &f.Common }
func (v *Variable) Info() *Common { return &v.Common }

func (*Function) callable() {}
func (*Variable) callable() {}

// Common holds the parts shared by all callables.
type Common struct {
	Name       string
	TypeParams []*types.Param
	// DispatchReceiver is the type of the containing class for members.
	DispatchReceiver types.Type
	// ExtensionReceiver is the receiver type of extensions.
	ExtensionReceiver types.Type
	// DynamicExtension marks extensions which only apply to dynamic receivers.
	DynamicExtension bool
	ContextReceivers []types.Type
	Visibility       Visibility
	// Owner identifies the container used for visibility checks (a file or class name).
	Owner       string
	Deprecation Deprecation
	// LowPriority candidates lose against every other applicable candidate of the same level.
	LowPriority bool
	// MissingSupertypes lists supertypes of the declaring class which could not be found.
	MissingSupertypes []string
}

// IsExtension returns true for extension callables.
func (h *Common) IsExtension() bool { return h.ExtensionReceiver != nil }

// IsMember returns true for members of a class.
func (h *Common) IsMember() bool { return h.DispatchReceiver != nil }

// Parameter of a function.
type Parameter struct {
	Name string
	// Type of the parameter. For varargs, this is the element type.
	Type       types.Type
	HasDefault bool
	Vararg     bool
}

// InvocationKind describes how often a function invokes a lambda argument.
type InvocationKind int

const (
	InvocationUnknown InvocationKind = iota
	AtMostOnce
	ExactlyOnce
	AtLeastOnce
)

func (k InvocationKind) String() string {
	switch k {
	case AtMostOnce:
		return "AT_MOST_ONCE"
	case ExactlyOnce:
		return "EXACTLY_ONCE"
	case AtLeastOnce:
		return "AT_LEAST_ONCE"
	default:
		return "UNKNOWN"
	}
}

// CallsInPlace declares that a functional parameter is invoked in place.
type CallsInPlace struct {
	Param int
	Kind  InvocationKind
}

// Contract of a function.
type Contract struct {
	CallsInPlace []CallsInPlace
}

// Function declaration.
type Function struct {
	Common
	Params   []*Parameter
	Return   types.Type
	Infix    bool
	Operator bool
	// HidesMembers extensions are preferred over members for selected names.
	HidesMembers bool
	Contract     *Contract
	// Synthetic functions are created on demand (for example, invoke on function types).
	Synthetic bool
}

// Variable or property declaration.
type Variable struct {
	Common
	// Type may be types.PendingType while the declaration's own type is being computed.
	Type    types.Type
	Mutable bool
	Local   bool
	// Synthetic properties are derived from accessor functions.
	Synthetic bool
	// Accessor is the function a synthetic property was derived from.
	Accessor *Function
}

// FunctionType returns the type of a function as a value, without its receivers.
func (f *Function) FunctionType() *types.Func {
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
		if p.Vararg {
			params[i] = types.ArrayOf(p.Type)
		}
	}
	return &types.Func{Receiver: f.ExtensionReceiver, Params: params, Return: f.Return}
}

// VarargIndex returns the index of the vararg parameter, or -1.
func (f *Function) VarargIndex() int {
	for i, p := range f.Params {
		if p.Vararg {
			return i
		}
	}
	return -1
}

// String renders a callable as a declaration: `fun <T> List<T>.get(index: Int): T`
func String(c Callable) string {
	var sb strings.Builder
	info := c.Info()
	switch c := c.(type) {
	case *Function:
		sb.WriteString("fun ")
		writeTypeParams(&sb, info.TypeParams)
		writeReceiver(&sb, info.ExtensionReceiver)
		sb.WriteString(c.Name)
		sb.WriteByte('(')
		for i, p := range c.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			if p.Vararg {
				sb.WriteString("vararg ")
			}
			sb.WriteString(p.Name)
			sb.WriteString(": ")
			sb.WriteString(types.TypeString(p.Type))
			if p.HasDefault {
				sb.WriteString(" = ...")
			}
		}
		sb.WriteString("): ")
		sb.WriteString(types.TypeString(c.Return))
	case *Variable:
		if c.Mutable {
			sb.WriteString("var ")
		} else {
			sb.WriteString("val ")
		}
		writeTypeParams(&sb, info.TypeParams)
		writeReceiver(&sb, info.ExtensionReceiver)
		sb.WriteString(c.Name)
		sb.WriteString(": ")
		sb.WriteString(types.TypeString(c.Type))
	}
	return sb.String()
}

func writeTypeParams(sb *strings.Builder, params []*types.Param) {
	if len(params) == 0 {
		return
	}
	sb.WriteByte('<')
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
	}
	sb.WriteString("> ")
}

func writeReceiver(sb *strings.Builder, receiver types.Type) {
	if receiver == nil {
		return
	}
	sb.WriteString(types.TypeString(receiver))
	sb.WriteByte('.')
}
