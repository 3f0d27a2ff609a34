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
	"context"

	set "github.com/hashicorp/go-set/v2"

	"github.com/wdamron/calls/binding"
	"github.com/wdamron/calls/flow"
	"github.com/wdamron/calls/internal/typeutil"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

// ResolutionContext carries the state of one top-level resolution. Contexts for nested
// expressions and lambda bodies are derived with the With* methods, which copy the context;
// the variable tracker and the set of completed atoms are shared by all derived contexts.
//
// A resolution context cannot be used concurrently.
type ResolutionContext struct {
	Context  context.Context
	Resolver *Resolver
	Tower    *tower.ScopeTower
	// Store receives the bindings of resolved calls. Candidates write into forks of it.
	Store   *binding.Store
	Session InferenceSession
	Vars    *typeutil.VarTracker
	// Facts hold at the start of the expression being resolved.
	Facts flow.Facts
	// Expected type of the expression being resolved, or nil.
	Expected types.Type
	// Dependent contexts resolve sub-calls whose completion is deferred to the enclosing call.
	Dependent bool

	completed *set.Set[ResolvedAtom]
}

// Create a new resolution context for a top-level expression. Calls are completed independently
// unless a different session is set with WithSession.
func NewContext(ctx context.Context, r *Resolver, tw *tower.ScopeTower, store *binding.Store) *ResolutionContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ResolutionContext{
		Context:   ctx,
		Resolver:  r,
		Tower:     tw,
		Store:     store,
		Session:   DefaultSession{},
		Vars:      &typeutil.VarTracker{},
		Facts:     flow.Empty,
		completed: set.New[ResolvedAtom](16),
	}
}

func (rc *ResolutionContext) copy() *ResolutionContext {
	c := *rc
	return &c
}

func (rc *ResolutionContext) WithTower(tw *tower.ScopeTower) *ResolutionContext {
	c := rc.copy()
	c.Tower = tw
	return c
}

func (rc *ResolutionContext) WithStore(store *binding.Store) *ResolutionContext {
	c := rc.copy()
	c.Store = store
	return c
}

func (rc *ResolutionContext) WithSession(session InferenceSession) *ResolutionContext {
	c := rc.copy()
	c.Session = session
	return c
}

func (rc *ResolutionContext) WithFacts(facts flow.Facts) *ResolutionContext {
	c := rc.copy()
	c.Facts = facts
	return c
}

func (rc *ResolutionContext) WithExpected(expected types.Type) *ResolutionContext {
	c := rc.copy()
	c.Expected = expected
	return c
}

// independent returns a context for expressions which are resolved and completed on their own,
// such as receivers and statements of a lambda body.
func (rc *ResolutionContext) independent() *ResolutionContext {
	c := rc.copy()
	c.Dependent = false
	c.Expected = nil
	return c
}

func (rc *ResolutionContext) dependent() *ResolutionContext {
	c := rc.copy()
	c.Dependent = true
	c.Expected = nil
	return c
}

func (rc *ResolutionContext) isCompleted(atom ResolvedAtom) bool { return rc.completed.Contains(atom) }

func (rc *ResolutionContext) markCompleted(atom ResolvedAtom) {
	if !rc.completed.Insert(atom) {
		panic("calls: atom completed twice")
	}
}
