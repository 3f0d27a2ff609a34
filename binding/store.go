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

// Package binding records the results of analysis per syntax node. Stores are layered:
// speculative work happens in a forked overlay which is either committed into its parent or dropped.
package binding

import (
	"fmt"
	"reflect"

	"github.com/benbjohnson/immutable"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/types"
)

// Slice identifies a kind of recorded information.
type Slice int

const (
	ExprType Slice = iota
	ResolvedCall
	LambdaType
	CallableTarget
	CoercedToUnit
	ExpectedType
	Invocation
)

var sliceNames = [...]string{"EXPR_TYPE", "RESOLVED_CALL", "LAMBDA_TYPE", "CALLABLE_TARGET", "COERCED_TO_UNIT", "EXPECTED_TYPE", "INVOCATION"}

func (s Slice) String() string {
	if s < 0 || int(s) >= len(sliceNames) {
		return fmt.Sprintf("Slice(%d)", int(s))
	}
	return sliceNames[s]
}

type key struct {
	slice Slice
	node  ast.Expr
}

type keyHasher struct{}

func (keyHasher) Hash(k interface{}) uint32 {
	kk := k.(key)
	h := uint32(2166136261)
	ptr := uint64(0)
	if kk.node != nil {
		ptr = uint64(reflect.ValueOf(kk.node).Pointer())
	}
	for i := 0; i < 8; i++ {
		h ^= uint32(ptr & 0xff)
		h *= 16777619
		ptr >>= 8
	}
	h ^= uint32(kk.slice)
	h *= 16777619
	return h
}

func (keyHasher) Equal(a, b interface{}) bool { return a.(key) == b.(key) }

var emptyEntries = immutable.NewMap(keyHasher{})

var emptyDiagnostics = immutable.NewList()

// Store is a layered binding store. The root store is created with New; overlays with Fork.
//
// A store is not safe for concurrent use. Each top-level resolution owns its own root.
type Store struct {
	parent  *Store
	entries *immutable.Map
	diags   *immutable.List
	done    bool
}

func New() *Store {
	return &Store{entries: emptyEntries, diags: emptyDiagnostics}
}

// Fork creates an overlay. Reads fall through to s; writes stay in the overlay until Commit.
func (s *Store) Fork() *Store {
	s.checkOpen("fork")
	return &Store{parent: s, entries: emptyEntries, diags: emptyDiagnostics}
}

// Parent returns the store an overlay was forked from, or nil for a root store.
func (s *Store) Parent() *Store { return s.parent }

// Commit writes the overlay's entries and diagnostics into its parent. An overlay may be
// committed or discarded at most once.
func (s *Store) Commit() {
	if s.parent == nil {
		panic("binding: commit of a root store")
	}
	s.checkOpen("commit")
	s.done = true
	p := s.parent
	p.checkOpen("commit into")
	iter := s.entries.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		p.entries = p.entries.Set(k, v)
	}
	diags := s.diags.Iterator()
	for !diags.Done() {
		_, d := diags.Next()
		p.diags = p.diags.Append(d)
	}
}

// Discard drops the overlay.
func (s *Store) Discard() {
	s.checkOpen("discard")
	s.done = true
}

func (s *Store) checkOpen(op string) {
	if s.done {
		panic("binding: " + op + " of a committed or discarded store")
	}
}

// Record stores a value for node.
func (s *Store) Record(slice Slice, node ast.Expr, value interface{}) {
	s.checkOpen("record into")
	s.entries = s.entries.Set(key{slice, node}, value)
}

// Get reads a value for node from the store or its parents.
func (s *Store) Get(slice Slice, node ast.Expr) (interface{}, bool) {
	k := key{slice, node}
	for st := s; st != nil; st = st.parent {
		if v, ok := st.entries.Get(k); ok {
			return v, true
		}
	}
	return nil, false
}

// Report adds a diagnostic to the store.
func (s *Store) Report(d diag.Diagnostic) {
	s.checkOpen("report into")
	s.diags = s.diags.Append(d)
}

// Diagnostics returns all diagnostics visible from the store, parents first.
func (s *Store) Diagnostics() []diag.Diagnostic {
	var chain []*Store
	for st := s; st != nil; st = st.parent {
		chain = append(chain, st)
	}
	var ds []diag.Diagnostic
	for i := len(chain) - 1; i >= 0; i-- {
		iter := chain[i].diags.Iterator()
		for !iter.Done() {
			_, d := iter.Next()
			ds = append(ds, d.(diag.Diagnostic))
		}
	}
	return ds
}

// Len returns the number of entries written directly into this store.
func (s *Store) Len() int { return s.entries.Len() }

// RecordType records the type of an expression.
func (s *Store) RecordType(e ast.Expr, t types.Type) { s.Record(ExprType, e, t) }

// TypeOf returns the recorded type of an expression, or nil.
func (s *Store) TypeOf(e ast.Expr) types.Type {
	if v, ok := s.Get(ExprType, e); ok {
		return v.(types.Type)
	}
	return nil
}

// RecordCall binds a resolved call to its call expression. A call expression is bound at most once
// per store layer chain.
func (s *Store) RecordCall(e ast.Expr, call interface{}) {
	if _, ok := s.Get(ResolvedCall, e); ok {
		panic("binding: call already resolved for " + ast.ExprString(e))
	}
	s.Record(ResolvedCall, e, call)
}

// CallOf returns the resolved call bound to a call expression.
func (s *Store) CallOf(e ast.Expr) (interface{}, bool) { return s.Get(ResolvedCall, e) }
