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
	"testing"
)

func TestSubtyping(t *testing.T) {
	cases := []struct {
		sub, super Type
		ok         bool
	}{
		{Int, Any, true},
		{Int, Number, true},
		{Number, Int, false},
		{Nothing, String, true},
		{String, Int, false},
		{MutableListOf(Int), ListOf(Int), true},
		{MutableListOf(Int), ListOf(Number), true},
		{MutableListOf(Int), MutableListOf(Number), false},
		{ListOf(Int), NewNamed(CollectionClass, Any), true},
		{NewNamed(ComparableClass, Number), NewNamed(ComparableClass, Int), true},
		{NewFunc([]Type{Number}, Int), NewFunc([]Type{Int}, Number), true},
		{NewFunc([]Type{Int}, Int), NewFunc([]Type{Number}, Int), false},
		{&Func{Receiver: Int, Return: Unit}, NewFunc([]Type{Int}, Unit), true},
		{&Func{Params: []Type{Int}, Return: Int, Reflective: true}, NewFunc([]Type{Int}, Int), true},
		{NewFunc([]Type{Int}, Int), &Func{Params: []Type{Int}, Return: Int, Reflective: true}, false},
		{NewError("x"), Int, true},
		{DynamicType, String, true},
	}
	for _, c := range cases {
		if IsSubtype(c.sub, c.super) != c.ok {
			t.Fatalf("expected %s <: %s to be %v", TypeString(c.sub), TypeString(c.super), c.ok)
		}
	}
}

func TestFindSupertype(t *testing.T) {
	super := FindSupertype(MutableListOf(String), CollectionClass)
	if super == nil {
		t.Fatalf("expected Collection supertype")
	}
	if TypeString(super) != "Collection<String>" {
		t.Fatalf("super: %s", TypeString(super))
	}
	if FindSupertype(Int, StringClass) != nil {
		t.Fatalf("unexpected String supertype for Int")
	}
}

func TestCommonSupertype(t *testing.T) {
	cases := []struct {
		ts       []Type
		expected string
	}{
		{nil, "Nothing"},
		{[]Type{Int, Nothing}, "Int"},
		{[]Type{Int, Int}, "Int"},
		{[]Type{Int, Double}, "Number"},
		{[]Type{Int, Number}, "Number"},
		{[]Type{Int, String}, "Any"},
		{[]Type{ListOf(Int), MutableListOf(Double)}, "List<Number>"},
	}
	for _, c := range cases {
		if s := TypeString(CommonSupertype(c.ts)); s != c.expected {
			t.Fatalf("common supertype of %s: expected %s, found %s", TypeListString(c.ts), c.expected, s)
		}
	}
}

func TestReplaceSharesUnchangedComponents(t *testing.T) {
	v := NewVar(3, &Param{Name: "E"})
	ft := &Func{Receiver: MutableListOf(v), Return: Unit}
	replaced := Replace(ft, func(t Type) (Type, bool) {
		if t == v {
			return &Stub{Var: v}, true
		}
		return nil, false
	})
	if TypeString(replaced) != "MutableList<Stub(E#3)>.() -> Unit" {
		t.Fatalf("replaced: %s", TypeString(replaced))
	}
	if !HasStubs(replaced) || HasStubs(ft) {
		t.Fatalf("expected stubs only in the replaced type")
	}
	same := Replace(ft, func(Type) (Type, bool) { return nil, false })
	if same != Type(ft) {
		t.Fatalf("expected identical type when nothing is replaced")
	}
}

func TestTypeString(t *testing.T) {
	cases := []struct {
		t        Type
		expected string
	}{
		{ListOf(Int), "List<Int>"},
		{NewFunc([]Type{Int, String}, Unit), "(Int, String) -> Unit"},
		{NewFunc([]Type{NewFunc([]Type{Int}, Int)}, Int), "((Int) -> Int) -> Int"},
		{&Func{Params: []Type{Int}, Return: String, Reflective: true}, "KFunction1<Int, String>"},
		{NewVar(7, nil), "TypeVariable(_#7)"},
		{NewError("oops"), "[Error: oops]"},
	}
	for _, c := range cases {
		if s := TypeString(c.t); s != c.expected {
			t.Fatalf("expected %s, found %s", c.expected, s)
		}
	}
}

func TestTypeMapMerge(t *testing.T) {
	a := SingletonTypeMap("x", Int)
	b := SingletonTypeMap("x", String).Set("y", SingletonTypeList(Unit))
	m := a.Merge(b)
	xs, _ := m.Get("x")
	if xs.Len() != 2 || m.Len() != 2 {
		t.Fatalf("unexpected merge result: %d entries, %d types for x", m.Len(), xs.Len())
	}
	if a.Len() != 1 {
		t.Fatalf("merge must not mutate its receiver")
	}
}
