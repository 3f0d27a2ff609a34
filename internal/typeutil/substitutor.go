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
	"github.com/benbjohnson/immutable"

	"github.com/wdamron/calls/types"
)

type substitution struct {
	v *types.Var
	t types.Type
}

// Substitutor is a persistent mapping from fixed type variables to their results, ordered by variable id.
type Substitutor struct {
	m *immutable.SortedMap
}

var emptySubstitutions = immutable.NewSortedMap(nil)

// EmptySubstitutor returns a substitutor which replaces nothing.
func EmptySubstitutor() *Substitutor { return &Substitutor{m: emptySubstitutions} }

type substitutorBuilder struct{ m *immutable.SortedMap }

func newSubstitutorBuilder() *substitutorBuilder { return &substitutorBuilder{m: emptySubstitutions} }

func (b *substitutorBuilder) set(v *types.Var, t types.Type) {
	b.m = b.m.Set(v.Id(), substitution{v: v, t: t})
}

func (b *substitutorBuilder) build() *Substitutor { return &Substitutor{m: b.m} }

func (s *Substitutor) Len() int {
	if s == nil || s.m == nil {
		return 0
	}
	return s.m.Len()
}

// With returns a copy of s which also replaces v with t.
func (s *Substitutor) With(v *types.Var, t types.Type) *Substitutor {
	m := emptySubstitutions
	if s != nil && s.m != nil {
		m = s.m
	}
	return &Substitutor{m: m.Set(v.Id(), substitution{v: v, t: t})}
}

// Lookup returns the result for v.
func (s *Substitutor) Lookup(v *types.Var) (types.Type, bool) {
	if s.Len() == 0 {
		return nil, false
	}
	x, ok := s.m.Get(v.Id())
	if !ok {
		return nil, false
	}
	sub := x.(substitution)
	if sub.v != v {
		return nil, false
	}
	return sub.t, true
}

// Apply replaces fixed variables, and stubs of fixed variables, within t.
func (s *Substitutor) Apply(t types.Type) types.Type {
	if s.Len() == 0 || t == nil {
		return t
	}
	return types.Replace(t, func(t types.Type) (types.Type, bool) {
		switch t := t.(type) {
		case *types.Var:
			return s.Lookup(t)
		case *types.Stub:
			return s.Lookup(t.Var)
		}
		return nil, false
	})
}

// Range visits substitutions in variable-id order.
func (s *Substitutor) Range(f func(*types.Var, types.Type) bool) {
	if s.Len() == 0 {
		return
	}
	itr := s.m.Iterator()
	for !itr.Done() {
		_, x := itr.Next()
		sub := x.(substitution)
		if !f(sub.v, sub.t) {
			return
		}
	}
}
