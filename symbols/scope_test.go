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
	"testing"

	"github.com/wdamron/calls/types"
)

func TestInheritedMembers(t *testing.T) {
	table := NewTable()
	sizes := table.Members(types.MutableListOf(types.Int)).Variables("size")
	if len(sizes) != 1 {
		t.Fatalf("expected inherited size property, found %d", len(sizes))
	}
	gets := table.Members(types.MutableListOf(types.Int)).Functions("get")
	if len(gets) != 1 || gets[0].DispatchReceiver.(*types.Named).Class != types.ListClass {
		t.Fatalf("expected get from List")
	}
}

func TestOverriddenMembersAreNotDuplicated(t *testing.T) {
	table := NewTable()
	base := table.DeclareClass(types.NewClass(types.FirstUserClassId, "Base"))
	derived := table.DeclareClass(types.NewClass(types.FirstUserClassId+1, "Derived"))
	derived.AddSupertype(types.NewNamed(base))
	table.AddMembers(base, &Function{Common: Common{Name: "f"}, Params: []*Parameter{{Name: "x", Type: types.Int}}, Return: types.Unit})
	table.AddMembers(derived, &Function{Common: Common{Name: "f"}, Params: []*Parameter{{Name: "x", Type: types.Int}}, Return: types.Unit})
	fs := table.Members(types.NewNamed(derived)).Functions("f")
	if len(fs) != 1 || fs[0].Owner != "Derived" {
		t.Fatalf("expected only the overriding member, found %d", len(fs))
	}
}

func TestInvokeOnFunctionTypes(t *testing.T) {
	table := NewTable()
	fn := &types.Func{Receiver: types.String, Params: []types.Type{types.Int}, Return: types.Boolean}
	invokes := table.Members(fn).Functions("invoke")
	if len(invokes) != 1 {
		t.Fatalf("expected synthetic invoke")
	}
	inv := invokes[0]
	if !inv.Operator || !inv.Synthetic || len(inv.Params) != 2 || inv.Params[0].Type != types.String {
		t.Fatalf("unexpected invoke shape: %d params", len(inv.Params))
	}
}

func TestAccessorProperties(t *testing.T) {
	table := NewTable()
	c := table.DeclareClass(types.NewClass(types.FirstUserClassId, "Person"))
	table.AddMembers(c,
		&Function{Common: Common{Name: "getName"}, Return: types.String},
		&Function{Common: Common{Name: "getNothing"}, Return: types.Unit},
	)
	synthetic := AccessorProperties{Table: table}
	vars := synthetic.SyntheticVariables(types.NewNamed(c), "name")
	if len(vars) != 1 || vars[0].Type != types.Type(types.String) || !vars[0].Synthetic {
		t.Fatalf("expected synthetic name property")
	}
	if len(synthetic.SyntheticVariables(types.NewNamed(c), "nothing")) != 0 {
		t.Fatalf("unit getters must not produce properties")
	}
}

func TestDeclarationOrder(t *testing.T) {
	s := NewScope("test")
	a := &Function{Common: Common{Name: "f"}}
	b := &Function{Common: Common{Name: "f"}}
	s.Declare(a, b, &Variable{Common: Common{Name: "f"}})
	fs := s.Functions("f")
	if len(fs) != 2 || fs[0] != a || fs[1] != b || s.Len() != 3 {
		t.Fatalf("declaration order was not preserved")
	}
}

func TestStatics(t *testing.T) {
	table := NewTable()
	c := table.DeclareClass(types.NewClass(types.FirstUserClassId, "Factory"))
	if fs := table.Statics(c).Functions("create"); len(fs) != 0 {
		t.Fatalf("expected no statics")
	}
	create := &Function{Common: Common{Name: "create"}, Return: types.NewNamed(c)}
	table.AddStatics(c, create)
	fs := table.Statics(c).Functions("create")
	if len(fs) != 1 || fs[0] != create || create.Owner != "Factory" || create.IsMember() {
		t.Fatalf("expected static create")
	}
}
