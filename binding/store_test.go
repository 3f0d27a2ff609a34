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

package binding

import (
	"testing"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/types"
)

func TestOverlayCommit(t *testing.T) {
	root := New()
	x, y := &ast.Name{Name: "x"}, &ast.Name{Name: "y"}
	root.RecordType(x, types.Int)

	child := root.Fork()
	if child.TypeOf(x) != types.Type(types.Int) {
		t.Fatalf("overlay must read through to its parent")
	}
	child.RecordType(y, types.String)
	child.Report(diag.New(diag.TypeMismatch, y, "mismatch"))
	if root.TypeOf(y) != nil || len(root.Diagnostics()) != 0 {
		t.Fatalf("overlay writes leaked before commit")
	}
	child.Commit()
	if root.TypeOf(y) != types.Type(types.String) || len(root.Diagnostics()) != 1 {
		t.Fatalf("overlay writes were not committed")
	}
}

func TestOverlayDiscard(t *testing.T) {
	root := New()
	e := &ast.Name{Name: "e"}
	a, b := root.Fork(), root.Fork()
	a.RecordType(e, types.Int)
	b.RecordType(e, types.String)
	a.Discard()
	b.Commit()
	if root.TypeOf(e) != types.Type(types.String) {
		t.Fatalf("expected the committed sibling's type, found %s", types.TypeString(root.TypeOf(e)))
	}
}

func TestNestedOverlays(t *testing.T) {
	root := New()
	e := &ast.Name{Name: "e"}
	outer := root.Fork()
	inner := outer.Fork()
	inner.RecordType(e, types.Unit)
	inner.Commit()
	if outer.TypeOf(e) == nil || root.TypeOf(e) != nil {
		t.Fatalf("inner commit must only reach its direct parent")
	}
	outer.Commit()
	if root.TypeOf(e) == nil {
		t.Fatalf("outer commit lost nested writes")
	}
}

func TestDoubleCommitPanics(t *testing.T) {
	child := New().Fork()
	child.Commit()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic on double commit")
		}
	}()
	child.Commit()
}

func TestCallBoundOnce(t *testing.T) {
	s := New()
	call := &ast.Call{Name: "f"}
	s.RecordCall(call, "first")
	if v, ok := s.CallOf(call); !ok || v != "first" {
		t.Fatalf("call was not recorded")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic when rebinding a call")
		}
	}()
	s.Fork().RecordCall(call, "second")
}
