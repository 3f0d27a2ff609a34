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

// Package flow holds flow-sensitive facts (smart casts) threaded through argument analysis.
package flow

import (
	"github.com/wdamron/calls/types"
)

// Facts maps stable value names to the additional types they are known to have.
// Facts are immutable; every update returns a new value.
type Facts struct {
	m types.TypeMap
}

// Empty facts.
var Empty = Facts{types.EmptyTypeMap}

// With returns facts where name is additionally known to have type t.
func (f Facts) With(name string, t types.Type) Facts {
	ts, _ := f.m.Get(name)
	return Facts{f.m.Set(name, ts.Append(t))}
}

// Types returns the additional types known for name.
func (f Facts) Types(name string) []types.Type {
	ts, ok := f.m.Get(name)
	if !ok {
		return nil
	}
	return ts.Slice()
}

// And combines two sets of facts which both hold.
func (f Facts) And(other Facts) Facts {
	if other.m.Len() == 0 {
		return f
	}
	return Facts{f.m.Merge(other.m)}
}

func (f Facts) Len() int { return f.m.Len() }

// Range visits each name with its known types, sorted by name.
func (f Facts) Range(visit func(name string, ts []types.Type) bool) {
	f.m.Range(func(name string, ts types.TypeList) bool {
		return visit(name, ts.Slice())
	})
}
