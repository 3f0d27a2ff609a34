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

import (
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

var EmptyTypeMap = TypeMap{emptyMap}

// TypeMap contains immutable mappings from labels to immutable lists of types.
type TypeMap struct {
	m *immutable.SortedMap
}

// Create a TypeMap with a single entry.
func SingletonTypeMap(label string, t Type) TypeMap {
	return TypeMap{emptyMap.Set(label, emptyList.Append(t))}
}

// Get the number of entries in the map.
func (m TypeMap) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Get the list of types for a label.
func (m TypeMap) Get(label string) (TypeList, bool) {
	if m.m == nil {
		return EmptyTypeList, false
	}
	l, ok := m.m.Get(label)
	if !ok {
		return EmptyTypeList, false
	}
	return TypeList{l: l.(*immutable.List)}, true
}

// Set returns a new map with the list for label replaced.
func (m TypeMap) Set(label string, ts TypeList) TypeMap {
	imm := m.m
	if imm == nil {
		imm = emptyMap
	}
	return TypeMap{imm.Set(label, ts.l)}
}

// Iterate over entries in the map. Entries are sorted by label.
// If f returns false, iteration will be stopped.
func (m TypeMap) Range(f func(string, TypeList) bool) {
	if m.m == nil {
		return
	}
	iter := m.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), TypeList{v.(*immutable.List)}) {
			return
		}
	}
}

// Merge returns a map containing the entries of both maps. Lists under the same label are concatenated.
func (m TypeMap) Merge(other TypeMap) TypeMap {
	out := m
	other.Range(func(label string, ts TypeList) bool {
		existing, _ := out.Get(label)
		ts.Range(func(_ int, t Type) bool {
			existing = existing.Append(t)
			return true
		})
		out = out.Set(label, existing)
		return true
	})
	return out
}
