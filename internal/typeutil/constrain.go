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

package typeutil

import (
	"github.com/wdamron/calls/types"
)

// maxDepth bounds incorporation of transitive constraints through recursive bounds.
const maxDepth = 32

// AddSubtype adds the constraint `sub <: super`. Variables which are not registered yet are
// registered. Returns false if the constraint introduced a new error.
func (s *System) AddSubtype(sub, super types.Type, pos Position) bool {
	n := len(s.errors)
	s.subtype(sub, super, pos, 0)
	return len(s.errors) == n
}

// AddEqual adds the constraints `a <: b` and `b <: a`.
func (s *System) AddEqual(a, b types.Type, pos Position) bool {
	n := len(s.errors)
	s.subtype(a, b, pos, 0)
	s.subtype(b, a, pos, 0)
	return len(s.errors) == n
}

func (s *System) fail(sub, super types.Type, pos Position) {
	s.errors = append(s.errors, &ConstraintError{Sub: sub, Super: super, Position: pos})
}

func (s *System) subtype(sub, super types.Type, pos Position, depth int) {
	if depth > maxDepth || sub == nil || super == nil {
		return
	}
	sub, super = s.Substitute(sub), s.Substitute(super)
	if sub == super || types.Equal(sub, super) {
		return
	}

	subVar, subIsVar := sub.(*types.Var)
	superVar, superIsVar := super.(*types.Var)
	switch {
	case subIsVar && superIsVar:
		s.addBound(subVar, Bound{Kind: Upper, Type: super, Position: pos}, depth)
		s.addBound(superVar, Bound{Kind: Lower, Type: sub, Position: pos}, depth)
		return
	case subIsVar:
		s.addBound(subVar, Bound{Kind: Upper, Type: super, Position: pos}, depth)
		return
	case superIsVar:
		s.addBound(superVar, Bound{Kind: Lower, Type: sub, Position: pos}, depth)
		return
	}

	_, subIsStub := sub.(*types.Stub)
	_, superIsStub := super.(*types.Stub)
	if subIsStub || superIsStub {
		s.stubs = append(s.stubs, StubConstraint{Sub: sub, Super: super, Position: pos})
		return
	}

	switch {
	case types.IsError(sub), types.IsError(super), types.IsDynamic(sub), types.IsDynamic(super):
		return
	case types.IsNothing(sub):
		return
	}
	if n, ok := super.(*types.Named); ok && n.Class == types.AnyClass {
		return
	}

	switch sub := sub.(type) {
	case *types.Named:
		sup, ok := super.(*types.Named)
		if !ok {
			s.fail(sub, super, pos)
			return
		}
		found := types.FindSupertype(sub, sup.Class)
		if found == nil || len(found.Args) != len(sup.Args) {
			s.fail(sub, super, pos)
			return
		}
		for i, p := range sup.Class.Params {
			switch p.Variance {
			case types.Out:
				s.subtype(found.Args[i], sup.Args[i], pos, depth+1)
			case types.In:
				s.subtype(sup.Args[i], found.Args[i], pos, depth+1)
			default:
				s.subtype(found.Args[i], sup.Args[i], pos, depth+1)
				s.subtype(sup.Args[i], found.Args[i], pos, depth+1)
			}
		}

	case *types.Func:
		sup, ok := super.(*types.Func)
		if !ok || (sup.Reflective && !sub.Reflective) {
			s.fail(sub, super, pos)
			return
		}
		subParams, superParams := sub.AllParams(), sup.AllParams()
		if len(subParams) != len(superParams) {
			s.fail(sub, super, pos)
			return
		}
		for i := range subParams {
			s.subtype(superParams[i], subParams[i], pos, depth+1)
		}
		s.subtype(sub.Return, sup.Return, pos, depth+1)

	case *types.Param:
		if p, ok := super.(*types.Param); ok && p == sub {
			return
		}
		if len(sub.Bounds) == 0 {
			s.fail(sub, super, pos)
			return
		}
		s.subtype(sub.Bounds[0], super, pos, depth+1)

	default:
		s.fail(sub, super, pos)
	}
}

func (s *System) addBound(v *types.Var, b Bound, depth int) {
	s.AddVar(v)
	for _, existing := range s.bounds[v] {
		if existing.Kind == b.Kind && types.Equal(existing.Type, b.Type) {
			return
		}
	}
	existing := s.bounds[v]
	s.bounds[v] = append(existing, b)

	// incorporate: every lower bound must be a subtype of every upper bound
	for _, other := range existing {
		switch {
		case b.Kind == Upper && other.Kind == Lower:
			s.subtype(other.Type, b.Type, b.Position, depth+1)
		case b.Kind == Lower && other.Kind == Upper:
			s.subtype(b.Type, other.Type, b.Position, depth+1)
		}
	}
}

// InferDirections marks variables occurring in contravariant positions of t (usually the
// return type of a candidate) to be fixed from their upper bounds.
func (s *System) InferDirections(t types.Type) {
	s.inferDirections(t, true)
}

func (s *System) inferDirections(t types.Type, positive bool) {
	switch t := t.(type) {
	case *types.Var:
		if !positive && s.Has(t) {
			s.SetDirection(t, ToSupertype)
		}
	case *types.Named:
		for i, arg := range t.Args {
			if i >= len(t.Class.Params) {
				break
			}
			switch t.Class.Params[i].Variance {
			case types.In:
				s.inferDirections(arg, !positive)
			case types.Out:
				s.inferDirections(arg, positive)
			}
		}
	case *types.Func:
		for _, p := range t.AllParams() {
			s.inferDirections(p, !positive)
		}
		s.inferDirections(t.Return, positive)
	}
}
