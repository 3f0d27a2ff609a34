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
	"github.com/wdamron/calls/symbols"
)

// ResolvedArgument is what a declared parameter receives. The set is closed: *SingleArgument,
// *VarargArgument, *DefaultArgument, and *MissingArgument.
type ResolvedArgument interface {
	// Arguments returns the supplied arguments, in call order.
	Arguments() []Argument
	resolvedArgument()
}

func (*SingleArgument) resolvedArgument()  {}
func (*VarargArgument) resolvedArgument()  {}
func (*DefaultArgument) resolvedArgument() {}
func (*MissingArgument) resolvedArgument() {}

type SingleArgument struct{ Arg Argument }

// Arguments collected by a vararg parameter; possibly none.
type VarargArgument struct{ Args []Argument }

// The parameter's default value is used.
type DefaultArgument struct{}

// No value was supplied for a required parameter. The mapping reports NoValueForParameter.
type MissingArgument struct{}

func (a *SingleArgument) Arguments() []Argument  { return []Argument{a.Arg} }
func (a *VarargArgument) Arguments() []Argument  { return a.Args }
func (a *DefaultArgument) Arguments() []Argument { return nil }
func (a *MissingArgument) Arguments() []Argument { return nil }

// ArgumentMapping maps every declared parameter to what it receives. Every supplied argument is
// mapped to at most one parameter; arguments which could not be mapped are reported.
type ArgumentMapping struct {
	Params []*symbols.Parameter
	// Args holds one non-nil entry per parameter.
	Args []ResolvedArgument
	// ParamOf maps each mapped argument to its parameter index.
	ParamOf     map[Argument]int
	Diagnostics []diag.Diagnostic
}

// MapArguments maps the arguments of a call to declared parameters: positional arguments in
// order, named arguments by name, the external argument to the last parameter. Arguments after
// the vararg parameter's position are collected by it until a named argument appears.
func MapArguments(params []*symbols.Parameter, args []Argument, external Argument, node ast.Expr) *ArgumentMapping {
	m := &ArgumentMapping{
		Params:  params,
		Args:    make([]ResolvedArgument, len(params)),
		ParamOf: make(map[Argument]int, len(args)+1),
	}
	varargs := make(map[int]*VarargArgument)
	position, named := 0, false

	assign := func(i int, arg Argument) {
		p := params[i]
		if p.Vararg {
			va := varargs[i]
			if va == nil {
				va = &VarargArgument{}
				varargs[i] = va
				m.Args[i] = va
			}
			va.Args = append(va.Args, arg)
		} else {
			if arg.Info().Spread {
				m.report(diag.New(diag.NonVarargSpread, arg.Info().Node, "spread operator applied to non-vararg parameter '%s'", p.Name))
			}
			m.Args[i] = &SingleArgument{Arg: arg}
		}
		m.ParamOf[arg] = i
	}

	for _, arg := range args {
		info := arg.Info()
		if info.Name != "" {
			named = true
			i := indexOfParam(params, info.Name)
			switch {
			case i < 0:
				m.report(diag.New(diag.NamedParameterNotFound, info.Node, "no parameter named '%s'", info.Name))
			case m.Args[i] != nil:
				m.report(diag.New(diag.ArgumentPassedTwice, info.Node, "argument '%s' passed twice", info.Name))
			default:
				assign(i, arg)
				if params[i].Vararg {
					// a named vararg takes exactly one argument
					varargs[i] = nil
				}
			}
			continue
		}
		if named {
			m.report(diag.New(diag.MixingNamedAndPositional, info.Node, "positional argument after named arguments"))
			continue
		}
		for position < len(params) && m.Args[position] != nil && !params[position].Vararg {
			position++
		}
		if position >= len(params) {
			m.report(diag.New(diag.TooManyArguments, info.Node, "too many arguments"))
			continue
		}
		assign(position, arg)
		if !params[position].Vararg {
			position++
		}
	}

	if external != nil {
		last := len(params) - 1
		if last < 0 || (m.Args[last] != nil && !params[last].Vararg) {
			m.report(diag.New(diag.TooManyArguments, external.Info().Node, "too many arguments"))
		} else {
			assign(last, external)
		}
	}

	for i, p := range params {
		if m.Args[i] != nil {
			continue
		}
		switch {
		case p.Vararg:
			m.Args[i] = &VarargArgument{}
		case p.HasDefault:
			m.Args[i] = &DefaultArgument{}
		default:
			m.Args[i] = &MissingArgument{}
			m.report(diag.New(diag.NoValueForParameter, node, "no value passed for parameter '%s'", p.Name))
		}
	}
	return m
}

func (m *ArgumentMapping) report(d diag.Diagnostic) { m.Diagnostics = append(m.Diagnostics, d) }

func indexOfParam(params []*symbols.Parameter, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// IsTrivial returns true if every parameter receives exactly one non-spread argument, in order.
func (m *ArgumentMapping) IsTrivial(args []Argument) bool {
	if len(args) != len(m.Params) {
		return false
	}
	for i, ra := range m.Args {
		s, ok := ra.(*SingleArgument)
		if !ok || s.Arg != args[i] || s.Arg.Info().Spread {
			return false
		}
	}
	return true
}
