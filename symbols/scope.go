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

package symbols

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wdamron/calls/types"
)

// Scope enumerates the callables it declares by name, in declaration order.
type Scope interface {
	Functions(name string) []*Function
	Variables(name string) []*Variable
}

// SyntheticScope derives callables for a receiver type on demand.
type SyntheticScope interface {
	SyntheticFunctions(receiver types.Type, name string) []*Function
	SyntheticVariables(receiver types.Type, name string) []*Variable
}

// MapScope is a Scope backed by maps from names to declarations.
type MapScope struct {
	Name  string
	funcs map[string][]*Function
	vars  map[string][]*Variable
}

var _ Scope = (*MapScope)(nil)

func NewScope(name string) *MapScope {
	return &MapScope{Name: name, funcs: make(map[string][]*Function), vars: make(map[string][]*Variable)}
}

// Declare adds callables to the scope. Declaration order is preserved per name.
func (s *MapScope) Declare(cs ...Callable) *MapScope {
	for _, c := range cs {
		switch c := c.(type) {
		case *Function:
			s.funcs[c.Name] = append(s.funcs[c.Name], c)
		case *Variable:
			s.vars[c.Name] = append(s.vars[c.Name], c)
		}
	}
	return s
}

func (s *MapScope) Functions(name string) []*Function { return s.funcs[name] }
func (s *MapScope) Variables(name string) []*Variable { return s.vars[name] }

// Len returns the number of declarations in the scope.
func (s *MapScope) Len() int {
	n := 0
	for _, fs := range s.funcs {
		n += len(fs)
	}
	for _, vs := range s.vars {
		n += len(vs)
	}
	return n
}

// Table holds classes and their member scopes. A table is read-only once resolution starts
// and may be shared between concurrent resolutions.
type Table struct {
	classes []*types.Class
	byName  map[string]*types.Class
	members map[*types.Class]*MapScope
	statics map[*types.Class]*MapScope
}

// NewTable creates a table containing the built-in classes and their members.
func NewTable() *Table {
	t := &Table{
		byName:  make(map[string]*types.Class),
		members: make(map[*types.Class]*MapScope),
		statics: make(map[*types.Class]*MapScope),
	}
	for _, c := range types.Builtins() {
		t.DeclareClass(c)
	}
	declareBuiltinMembers(t)
	return t
}

// DeclareClass registers a class by name.
func (t *Table) DeclareClass(c *types.Class) *types.Class {
	if _, ok := t.byName[c.Name]; !ok {
		t.classes = append(t.classes, c)
	}
	t.byName[c.Name] = c
	if t.members[c] == nil {
		t.members[c] = NewScope(c.Name)
	}
	return c
}

// Class looks up a class by name.
func (t *Table) Class(name string) *types.Class { return t.byName[name] }

// Classes returns the declared classes in declaration order.
func (t *Table) Classes() []*types.Class { return t.classes }

// AddMembers declares members of a class. Members without a dispatch receiver are bound to the class.
func (t *Table) AddMembers(c *types.Class, cs ...Callable) {
	t.DeclareClass(c)
	for _, m := range cs {
		if m.Info().DispatchReceiver == nil {
			m.Info().DispatchReceiver = c.Self()
		}
		if m.Info().Owner == "" {
			m.Info().Owner = c.Name
		}
	}
	t.members[c].Declare(cs...)
}

// AddStatics declares callables reachable through the class name used as a qualifier
// (companion and nested declarations). Statics have no dispatch receiver.
func (t *Table) AddStatics(c *types.Class, cs ...Callable) {
	t.DeclareClass(c)
	if t.statics[c] == nil {
		t.statics[c] = NewScope(c.Name)
	}
	for _, s := range cs {
		if s.Info().Owner == "" {
			s.Info().Owner = c.Name
		}
	}
	t.statics[c].Declare(cs...)
}

// Statics returns the static scope of a class.
func (t *Table) Statics(c *types.Class) Scope {
	if s := t.statics[c]; s != nil {
		return s
	}
	return emptyScope{}
}

// Members returns the member scope of a receiver type, including inherited members.
// Function types expose a synthetic `invoke` operator.
func (t *Table) Members(receiver types.Type) Scope {
	switch r := receiver.(type) {
	case *types.Named:
		return &memberScope{table: t, receiver: r}
	case *types.Func:
		return &invokeScope{fn: r}
	case *types.Param:
		if len(r.Bounds) == 0 {
			return &memberScope{table: t, receiver: types.Any}
		}
		if n, ok := r.Bounds[0].(*types.Named); ok {
			return &memberScope{table: t, receiver: n}
		}
	}
	return emptyScope{}
}

type emptyScope struct{}

func (emptyScope) Functions(string) []*Function { return nil }
func (emptyScope) Variables(string) []*Variable { return nil }

type memberScope struct {
	table    *Table
	receiver *types.Named
}

func (s *memberScope) Functions(name string) []*Function {
	var found []*Function
	s.receiver.VisitSupertypes(func(n *types.Named) bool {
		scope := s.table.members[n.Class]
		if scope == nil {
			return true
		}
	next:
		for _, f := range scope.Functions(name) {
			for _, existing := range found {
				if overrides(existing, f) {
					continue next
				}
			}
			found = append(found, f)
		}
		return true
	})
	return found
}

func (s *memberScope) Variables(name string) []*Variable {
	var found []*Variable
	s.receiver.VisitSupertypes(func(n *types.Named) bool {
		scope := s.table.members[n.Class]
		if scope == nil {
			return true
		}
		for _, v := range scope.Variables(name) {
			shadowed := false
			for _, existing := range found {
				shadowed = shadowed || (existing.ExtensionReceiver == nil) == (v.ExtensionReceiver == nil)
			}
			if !shadowed {
				found = append(found, v)
			}
		}
		return true
	})
	return found
}

// overrides approximates override matching by comparing parameter shapes.
func overrides(sub, super *Function) bool {
	if len(sub.Params) != len(super.Params) || (sub.ExtensionReceiver == nil) != (super.ExtensionReceiver == nil) {
		return false
	}
	for i := range sub.Params {
		if types.TypeString(sub.Params[i].Type) != types.TypeString(super.Params[i].Type) {
			return false
		}
	}
	return true
}

type invokeScope struct {
	fn *types.Func
}

func (s *invokeScope) Functions(name string) []*Function {
	if name != "invoke" {
		return nil
	}
	all := s.fn.AllParams()
	params := make([]*Parameter, len(all))
	for i, p := range all {
		params[i] = &Parameter{Name: "p" + strconv.Itoa(i), Type: p}
	}
	return []*Function{{
		Common:    Common{Name: "invoke", DispatchReceiver: s.fn},
		Params:    params,
		Return:    s.fn.Return,
		Operator:  true,
		Synthetic: true,
	}}
}

func (s *invokeScope) Variables(string) []*Variable { return nil }

// AccessorProperties derives synthetic properties from getter-style member functions:
// `getFoo()` is also visible as the property `foo`.
type AccessorProperties struct {
	Table *Table
}

var _ SyntheticScope = AccessorProperties{}

func (AccessorProperties) SyntheticFunctions(types.Type, string) []*Function { return nil }

func (a AccessorProperties) SyntheticVariables(receiver types.Type, name string) []*Variable {
	if name == "" {
		return nil
	}
	r, size := utf8.DecodeRuneInString(name)
	if !unicode.IsLower(r) {
		return nil
	}
	getter := "get" + strings.ToUpper(string(r)) + name[size:]
	var vars []*Variable
	for _, f := range a.Table.Members(receiver).Functions(getter) {
		if len(f.Params) != 0 || len(f.TypeParams) != 0 || f.ExtensionReceiver != nil || types.IsUnit(f.Return) {
			continue
		}
		vars = append(vars, &Variable{
			Common:    Common{Name: name, DispatchReceiver: f.DispatchReceiver, Visibility: f.Visibility, Owner: f.Owner, Deprecation: f.Deprecation},
			Type:      f.Return,
			Synthetic: true,
			Accessor:  f,
		})
	}
	return vars
}
