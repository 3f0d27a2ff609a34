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

// Instantiation maps declared type parameters to the fresh variables created for them.
type Instantiation struct {
	Params []*types.Param
	Vars   []*types.Var
	lookup map[*types.Param]types.Type
}

// Instantiate creates a fresh variable for each type parameter. Declared upper bounds are
// added to the system, expressed in terms of the fresh variables.
func Instantiate(vt *VarTracker, sys *System, params []*types.Param) *Instantiation {
	inst := &Instantiation{
		Params: params,
		Vars:   make([]*types.Var, len(params)),
		lookup: make(map[*types.Param]types.Type, len(params)),
	}
	for i, p := range params {
		tv := vt.New(p)
		inst.Vars[i] = tv
		inst.lookup[p] = tv
		sys.AddVar(tv)
	}
	for i, p := range params {
		for _, bound := range p.Bounds {
			sys.AddSubtype(inst.Vars[i], inst.Apply(bound), Position{Kind: DeclaredUpperBoundPosition, Index: i})
		}
	}
	return inst
}

// Extend adds parameters to an instantiation which are replaced by already-known types
// (for example, class parameters substituted from a receiver type).
func (inst *Instantiation) Extend(m map[*types.Param]types.Type) {
	for p, t := range m {
		if _, exists := inst.lookup[p]; !exists {
			inst.lookup[p] = t
		}
	}
}

// Apply substitutes instantiated parameters within t.
func (inst *Instantiation) Apply(t types.Type) types.Type {
	if inst == nil || len(inst.lookup) == 0 {
		return t
	}
	return types.SubstituteParams(t, inst.lookup)
}

// Lookup returns the variable created for p.
func (inst *Instantiation) Lookup(p *types.Param) (*types.Var, bool) {
	t, ok := inst.lookup[p]
	if !ok {
		return nil, false
	}
	tv, ok := t.(*types.Var)
	return tv, ok
}
