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

package flow

import (
	"testing"

	"github.com/wdamron/calls/types"
)

func TestFactsAreImmutable(t *testing.T) {
	a := Empty.With("x", types.String)
	b := a.With("x", types.Int).With("y", types.Int)
	if len(a.Types("x")) != 1 || len(b.Types("x")) != 2 {
		t.Fatalf("unexpected facts: %d, %d", len(a.Types("x")), len(b.Types("x")))
	}
	if Empty.Len() != 0 || a.Types("y") != nil {
		t.Fatalf("facts leaked between values")
	}
	both := a.And(Empty.With("z", types.Unit))
	if both.Len() != 2 {
		t.Fatalf("expected 2 names, found %d", both.Len())
	}
}
