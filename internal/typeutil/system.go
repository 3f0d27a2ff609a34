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

// Package typeutil implements the constraint system used to infer type arguments of calls.
package typeutil

import (
	"strconv"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/types"
)

// PositionKind describes where a constraint came from.
type PositionKind int

const (
	ArgumentPosition PositionKind = iota
	ReceiverPosition
	ExplicitTypeArgumentPosition
	DeclaredUpperBoundPosition
	ExpectedTypePosition
	LambdaReturnPosition
	CallableReferencePosition
	BuilderInferencePosition
	FixationPosition
)

var positionNames = [...]string{
	"argument", "receiver", "explicit type argument", "declared upper bound", "expected type",
	"lambda return", "callable reference", "builder inference", "fixation",
}

// Position of a constraint.
type Position struct {
	Kind  PositionKind
	Index int
	Node  ast.Expr
}

func (p Position) String() string {
	s := positionNames[p.Kind]
	if p.Kind == ArgumentPosition || p.Kind == ExplicitTypeArgumentPosition {
		s += " #" + strconv.Itoa(p.Index)
	}
	return s
}

// BoundKind distinguishes lower and upper bounds.
type BoundKind int

const (
	Lower BoundKind = iota
	Upper
)

// Bound of a type variable: `T >: Int` is a lower bound.
type Bound struct {
	Kind     BoundKind
	Type     types.Type
	Position Position
}

// Direction selects which bounds a variable is fixed from.
type Direction int

const (
	// ToSubtype fixes a variable to the common supertype of its lower bounds, if any.
	ToSubtype Direction = iota
	// ToSupertype fixes a variable to its most specific upper bound, if any.
	ToSupertype
)

// ConstraintError records a violated subtyping relation.
type ConstraintError struct {
	Sub, Super types.Type
	Position   Position
}

func (e *ConstraintError) Error() string {
	return "Failed to constrain " + types.TypeString(e.Sub) + " <: " + types.TypeString(e.Super) + " at " + e.Position.String()
}

// StubConstraint is a relation involving a builder-inference stub which is kept for the
// enclosing call rather than checked.
type StubConstraint struct {
	Sub, Super types.Type
	Position   Position
}

// System holds the type variables of one resolution attempt with their bounds and fixed results.
//
// A system is not safe for concurrent use. Systems are combined only through Merge and CopyFixedFrom.
type System struct {
	vars       []*types.Var
	bounds     map[*types.Var][]Bound
	fixed      map[*types.Var]types.Type
	directions map[*types.Var]Direction
	errors     []*ConstraintError
	stubs      []StubConstraint
}

func NewSystem() *System {
	return &System{
		bounds:     make(map[*types.Var][]Bound, 8),
		fixed:      make(map[*types.Var]types.Type, 8),
		directions: make(map[*types.Var]Direction, 8),
	}
}

// AddVar registers a variable. Registering a variable twice has no effect.
func (s *System) AddVar(v *types.Var) {
	if _, ok := s.bounds[v]; ok {
		return
	}
	s.vars = append(s.vars, v)
	s.bounds[v] = nil
}

// Has returns true if v is registered with the system.
func (s *System) Has(v *types.Var) bool {
	_, ok := s.bounds[v]
	return ok
}

// Vars returns all registered variables in registration order.
func (s *System) Vars() []*types.Var { return s.vars }

// NotFixed returns the registered variables which are not fixed yet, in registration order.
func (s *System) NotFixed() []*types.Var {
	var vs []*types.Var
	for _, v := range s.vars {
		if _, ok := s.fixed[v]; !ok {
			vs = append(vs, v)
		}
	}
	return vs
}

func (s *System) IsFixed(v *types.Var) bool {
	_, ok := s.fixed[v]
	return ok
}

// FixedType returns the result a variable was fixed to.
func (s *System) FixedType(v *types.Var) (types.Type, bool) {
	t, ok := s.fixed[v]
	return t, ok
}

func (s *System) Bounds(v *types.Var) []Bound { return s.bounds[v] }

func (s *System) Errors() []*ConstraintError { return s.errors }

func (s *System) HasErrors() bool { return len(s.errors) > 0 }

// StubConstraints returns relations involving builder-inference stubs, in insertion order.
func (s *System) StubConstraints() []StubConstraint { return s.stubs }

func (s *System) SetDirection(v *types.Var, d Direction) { s.directions[v] = d }

func (s *System) Direction(v *types.Var) Direction { return s.directions[v] }

// Substitute replaces fixed variables within t.
func (s *System) Substitute(t types.Type) types.Type {
	if len(s.fixed) == 0 || t == nil {
		return t
	}
	for i := 0; i < 16; i++ {
		changed := false
		t = types.Replace(t, func(t types.Type) (types.Type, bool) {
			if v, ok := t.(*types.Var); ok {
				if r, ok := s.fixed[v]; ok {
					changed = true
					return r, true
				}
			}
			return nil, false
		})
		if !changed {
			break
		}
	}
	return t
}

// IsProper returns true if t mentions no variable which is not fixed yet.
func (s *System) IsProper(t types.Type) bool { return !types.HasVars(s.Substitute(t)) }

// ProperBounds returns the substituted types of v's proper bounds of the given kind.
// Declared upper bounds are included only when includeDeclared is set.
func (s *System) ProperBounds(v *types.Var, kind BoundKind, includeDeclared bool) []types.Type {
	var ts []types.Type
	for _, b := range s.bounds[v] {
		if b.Kind != kind || (!includeDeclared && b.Position.Kind == DeclaredUpperBoundPosition) {
			continue
		}
		if t := s.Substitute(b.Type); !types.HasVars(t) {
			ts = append(ts, t)
		}
	}
	return ts
}

// HasProperConstraints returns true if v has a proper bound other than a declared upper bound.
func (s *System) HasProperConstraints(v *types.Var) bool {
	return len(s.ProperBounds(v, Lower, false)) > 0 || len(s.ProperBounds(v, Upper, false)) > 0
}

// ResultType computes the type v would be fixed to, using its direction. ok is false when
// v has no proper constraints.
func (s *System) ResultType(v *types.Var) (t types.Type, ok bool) {
	if !s.HasProperConstraints(v) {
		return nil, false
	}
	lowers := s.ProperBounds(v, Lower, false)
	uppers := s.ProperBounds(v, Upper, true)
	fromLowers := func() (types.Type, bool) {
		if len(lowers) == 0 {
			return nil, false
		}
		return types.CommonSupertype(lowers), true
	}
	fromUppers := func() (types.Type, bool) {
		if len(uppers) == 0 {
			return nil, false
		}
		return mostSpecific(uppers), true
	}
	if s.directions[v] == ToSupertype {
		if t, ok := fromUppers(); ok {
			return t, true
		}
		return fromLowers()
	}
	if t, ok := fromLowers(); ok {
		return t, true
	}
	return fromUppers()
}

func mostSpecific(ts []types.Type) types.Type {
	for _, candidate := range ts {
		all := true
		for _, t := range ts {
			if !types.IsSubtype(candidate, t) {
				all = false
				break
			}
		}
		if all {
			return candidate
		}
	}
	return ts[0]
}

// Fix fixes v to t and checks t against all of v's bounds. A variable is fixed exactly once.
func (s *System) Fix(v *types.Var, t types.Type) {
	if _, ok := s.fixed[v]; ok {
		panic("typeutil: variable fixed twice: " + types.TypeString(v))
	}
	s.AddVar(v)
	s.fixed[v] = t
	for _, b := range s.bounds[v] {
		pos := Position{Kind: FixationPosition, Index: b.Position.Index, Node: b.Position.Node}
		switch b.Kind {
		case Lower:
			s.subtype(b.Type, t, pos, 0)
		case Upper:
			s.subtype(t, b.Type, pos, 0)
		}
	}
}

// Fork copies the system. The copy shares no mutable state with s.
func (s *System) Fork() *System {
	c := &System{
		vars:       append([]*types.Var(nil), s.vars...),
		bounds:     make(map[*types.Var][]Bound, len(s.bounds)),
		fixed:      make(map[*types.Var]types.Type, len(s.fixed)),
		directions: make(map[*types.Var]Direction, len(s.directions)),
		errors:     append([]*ConstraintError(nil), s.errors...),
		stubs:      append([]StubConstraint(nil), s.stubs...),
	}
	for v, bs := range s.bounds {
		c.bounds[v] = bs[:len(bs):len(bs)]
	}
	for v, t := range s.fixed {
		c.fixed[v] = t
	}
	for v, d := range s.directions {
		c.directions[v] = d
	}
	return c
}

// Merge adds the variables, bounds, fixed results, errors, and stub relations of other to s.
// Bounds are incorporated, so conflicts between the systems are reported as errors of s.
func (s *System) Merge(other *System) {
	if other == nil || other == s {
		return
	}
	for _, v := range other.vars {
		s.AddVar(v)
		if d, ok := other.directions[v]; ok {
			if _, exists := s.directions[v]; !exists {
				s.directions[v] = d
			}
		}
	}
	for _, v := range other.vars {
		if t, ok := other.fixed[v]; ok {
			if _, exists := s.fixed[v]; !exists {
				s.fixed[v] = t
			}
		}
	}
	for _, v := range other.vars {
		for _, b := range other.bounds[v] {
			switch b.Kind {
			case Lower:
				s.subtype(b.Type, v, b.Position, 0)
			case Upper:
				s.subtype(v, b.Type, b.Position, 0)
			}
		}
	}
	s.errors = append(s.errors, other.errors...)
	s.stubs = append(s.stubs, other.stubs...)
}

// CopyFixedFrom fixes every variable of s which is fixed in other but not in s.
func (s *System) CopyFixedFrom(other *System) {
	for _, v := range other.vars {
		t, ok := other.fixed[v]
		if !ok || !s.Has(v) || s.IsFixed(v) {
			continue
		}
		s.Fix(v, t)
	}
}

// Substitutor snapshots the fixed results of the system.
func (s *System) Substitutor() *Substitutor {
	b := newSubstitutorBuilder()
	for _, v := range s.vars {
		if t, ok := s.fixed[v]; ok {
			b.set(v, s.Substitute(t))
		}
	}
	return b.build()
}
