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
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/types"
)

// SpecificityComparator decides whether one successful candidate is at least as specific as
// another.
type SpecificityComparator interface {
	IsMoreSpecific(a, b *Candidate) bool
}

// DefaultSpecificity compares the parameter types each argument was mapped to, and the
// extension receiver types. Type variables are erased to their declared bounds.
type DefaultSpecificity struct{}

var _ SpecificityComparator = DefaultSpecificity{}

func (DefaultSpecificity) IsMoreSpecific(a, b *Candidate) bool {
	if a.ExtensionType != nil && b.ExtensionType != nil {
		if !types.IsSubtype(erase(a, a.ExtensionType), erase(b, b.ExtensionType)) {
			return false
		}
	}
	pa, pb := argumentParams(a), argumentParams(b)
	for arg, ta := range pa {
		tb, ok := pb[arg]
		if !ok {
			continue
		}
		if !types.IsSubtype(erase(a, ta), erase(b, tb)) {
			return false
		}
	}
	return true
}

// argumentParams maps each argument to the type of the parameter it was mapped to.
func argumentParams(c *Candidate) map[Argument]types.Type {
	m := make(map[Argument]types.Type)
	if c.Mapping == nil {
		return m
	}
	fn, _ := c.Symbol.(*symbols.Function)
	for i, ra := range c.Mapping.Args {
		for _, arg := range ra.Arguments() {
			t := c.ParamTypes[i]
			if fn != nil && fn.Params[i].Vararg && arg.Info().Spread {
				t = types.ArrayOf(t)
			}
			m[arg] = t
		}
	}
	return m
}

// erase replaces the candidate's type variables with their first declared upper bounds.
// Variables within bounds become Any.
func erase(c *Candidate, t types.Type) types.Type {
	return types.Replace(t, func(t types.Type) (types.Type, bool) {
		v, ok := t.(*types.Var)
		if !ok {
			return nil, false
		}
		if v.Origin == nil || len(v.Origin.Bounds) == 0 {
			return types.Any, true
		}
		return eraseVars(c.Inst.Apply(v.Origin.Bounds[0])), true
	})
}

func eraseVars(t types.Type) types.Type {
	return types.Replace(t, func(t types.Type) (types.Type, bool) {
		if _, ok := t.(*types.Var); ok {
			return types.Any, true
		}
		return nil, false
	})
}

// mostSpecific returns the candidates which are more specific than every other candidate.
// Remaining ties prefer non-generic candidates, then candidates not using a vararg.
func (r *Resolver) mostSpecific(cands []*Candidate) []*Candidate {
	best := filterCandidates(cands, func(c *Candidate) bool {
		for _, other := range cands {
			if other == c {
				continue
			}
			if !r.Specificity.IsMoreSpecific(c, other) {
				return false
			}
			if r.Specificity.IsMoreSpecific(other, c) && !r.breaksTie(c, other) {
				return false
			}
		}
		return true
	})
	if len(best) == 0 {
		return cands
	}
	return best
}

// breaksTie returns true if a wins over an equally specific b.
func (r *Resolver) breaksTie(a, b *Candidate) bool {
	ga, gb := len(a.Symbol.Info().TypeParams) > 0, len(b.Symbol.Info().TypeParams) > 0
	if ga != gb {
		return !ga
	}
	va, vb := usesVararg(a), usesVararg(b)
	if va != vb {
		return !va
	}
	return false
}

func usesVararg(c *Candidate) bool {
	if c.Mapping == nil {
		return false
	}
	for _, ra := range c.Mapping.Args {
		if _, ok := ra.(*VarargArgument); ok {
			return true
		}
	}
	return false
}

func filterCandidates(cands []*Candidate, keep func(*Candidate) bool) []*Candidate {
	var out []*Candidate
	for _, c := range cands {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
