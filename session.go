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
	"log/slog"

	set "github.com/hashicorp/go-set/v2"

	"github.com/wdamron/calls/binding"
	"github.com/wdamron/calls/internal/typeutil"
	"github.com/wdamron/calls/types"
)

// InferenceSession decides whether a resolved call is completed on its own, or kept partial to
// be completed together with other calls. The set is closed: DefaultSession, *BuilderSession,
// and *JointSession.
type InferenceSession interface {
	ShouldCompleteResolvedCall(c *Candidate) bool
	AddPartialCall(c *Candidate)
	AddCompletedCall(call *ResolvedCall)
	inferenceSession()
}

func (DefaultSession) inferenceSession()  {}
func (*BuilderSession) inferenceSession() {}
func (*JointSession) inferenceSession()   {}

// DefaultSession completes every call independently.
type DefaultSession struct{}

func (DefaultSession) ShouldCompleteResolvedCall(*Candidate) bool { return true }
func (DefaultSession) AddPartialCall(*Candidate)                  { panic("calls: partial call in default session") }
func (DefaultSession) AddCompletedCall(*ResolvedCall)             {}

// BuilderSession is created for a lambda whose input types mention variables of the enclosing
// call without proper constraints. Those variables appear as stubs within the lambda body.
// Calls involving stubs stay partial; their relations with stubs are returned to the
// enclosing call, and they are completed once the enclosing call's variables are fixed.
type BuilderSession struct {
	stubs     *set.Set[*types.Var]
	partial   []*Candidate
	completed []*ResolvedCall
	// store receives the bindings of partial calls once they are completed.
	store        *binding.Store
	inapplicable *Call
}

// NewBuilderSession creates a session for stubs of the given variables. Bindings of partial
// calls are written into store when the session is completed.
func NewBuilderSession(store *binding.Store, stubs []*types.Var) *BuilderSession {
	return &BuilderSession{stubs: set.From(stubs), store: store}
}

// Stubbed returns true if v is replaced by a stub within the session.
func (s *BuilderSession) Stubbed(v *types.Var) bool { return s.stubs.Contains(v) }

func (s *BuilderSession) ShouldCompleteResolvedCall(c *Candidate) bool { return !involvesStubs(c) }

func (s *BuilderSession) AddPartialCall(c *Candidate) { s.partial = append(s.partial, c) }

func (s *BuilderSession) AddCompletedCall(call *ResolvedCall) { s.completed = append(s.completed, call) }

// PartialCalls returns the calls which wait for the enclosing call.
func (s *BuilderSession) PartialCalls() []*Candidate { return s.partial }

// Inapplicable returns the first call within the lambda which failed to resolve, if any.
func (s *BuilderSession) Inapplicable() *Call { return s.inapplicable }

func (s *BuilderSession) markInapplicable(call *Call) {
	if s.inapplicable == nil {
		s.inapplicable = call
	}
}

// StubConstraints returns every relation with a stub recorded by the partial calls.
func (s *BuilderSession) StubConstraints() []typeutil.StubConstraint {
	var cs []typeutil.StubConstraint
	for _, c := range s.partial {
		cs = append(cs, c.System.StubConstraints()...)
	}
	return cs
}

// Complete completes the partial calls with the enclosing call's final substitutor, and
// updates the receivers of calls which were completed within the lambda.
func (s *BuilderSession) Complete(rc *ResolutionContext, outer *typeutil.Substitutor) []*ResolvedCall {
	rc = rc.WithStore(s.store).WithSession(DefaultSession{})
	calls := make([]*ResolvedCall, 0, len(s.partial))
	for _, c := range s.partial {
		rc.Resolver.debug(rc, "completing builder call", symbolAttr(c.Symbol))
		cp := rc.Resolver.newCompletion(rc, c.System, c.Postponed, c.Call.Node)
		cp.outer = outer
		cp.run()
		cp.completeRoots(c.CallAtom())
		calls = append(calls, c.CallAtom().Resolved)
	}
	for _, call := range s.completed {
		call.UpdateReceivers(outer)
	}
	return calls
}

func involvesStubs(c *Candidate) bool {
	if len(c.System.StubConstraints()) > 0 || types.HasStubs(c.ReturnType) {
		return true
	}
	for _, t := range []types.Type{c.DispatchType, c.ExtensionType} {
		if t != nil && types.HasStubs(t) {
			return true
		}
	}
	for _, t := range c.ParamTypes {
		if types.HasStubs(t) {
			return true
		}
	}
	return c.Variable != nil && involvesStubs(c.Variable)
}

// JointSession keeps the calls of one defining expression partial, such as the paired
// accessors of a delegated property, and completes them together.
type JointSession struct {
	partial   []*Candidate
	completed []*ResolvedCall
}

func (s *JointSession) ShouldCompleteResolvedCall(*Candidate) bool { return false }

func (s *JointSession) AddPartialCall(c *Candidate) { s.partial = append(s.partial, c) }

func (s *JointSession) AddCompletedCall(call *ResolvedCall) { s.completed = append(s.completed, call) }

// Complete completes the partial calls. Their systems are merged into one, except for a pair of
// a successful and a failed call sharing variables (see completePairedAccessors).
func (s *JointSession) Complete(rc *ResolutionContext) []*ResolvedCall {
	if len(s.partial) == 0 {
		return nil
	}
	rc = rc.WithSession(DefaultSession{})
	r := rc.Resolver
	r.debug(rc, "completing joint session", slog.Int("calls", len(s.partial)))

	if len(s.partial) == 2 {
		a, b := s.partial[0], s.partial[1]
		if !a.Applicability().IsSuccess() {
			a, b = b, a
		}
		if a.Applicability().IsSuccess() && !b.Applicability().IsSuccess() && sharesVars(a.System, b.System) {
			return s.finish(completePairedAccessors(rc, a, b))
		}
	}

	shared := typeutil.NewSystem()
	var postponed []PostponedArgument
	roots := make([]ResolvedAtom, 0, len(s.partial))
	for _, c := range s.partial {
		shared.Merge(c.System)
		postponed = append(postponed, c.Postponed...)
		roots = append(roots, c.CallAtom())
	}
	cp := r.newCompletion(rc, shared, postponed, s.partial[0].Call.Node)
	cp.run()
	cp.completeRoots(roots...)
	calls := make([]*ResolvedCall, 0, len(s.partial))
	for _, c := range s.partial {
		calls = append(calls, c.CallAtom().Resolved)
	}
	return s.finish(calls)
}

func (s *JointSession) finish(calls []*ResolvedCall) []*ResolvedCall {
	s.partial = nil
	s.completed = append(s.completed, calls...)
	return calls
}

func sharesVars(a, b *typeutil.System) bool {
	for _, v := range a.Vars() {
		if b.Has(v) {
			return true
		}
	}
	return false
}

// completePairedAccessors completes a successful and a failed accessor of one delegated
// property. Merging the failed system would spread its errors into the successful call, so the
// systems stay separate and the fixed results of the successful one are copied into the other.
func completePairedAccessors(rc *ResolutionContext, ok, failed *Candidate) []*ResolvedCall {
	r := rc.Resolver
	cp := r.newCompletion(rc, ok.System, ok.Postponed, ok.Call.Node)
	cp.run()
	cp.completeRoots(ok.CallAtom())

	failed.System.CopyFixedFrom(cp.sys)
	fcp := r.newCompletion(rc, failed.System, failed.Postponed, failed.Call.Node)
	fcp.run()
	fcp.completeRoots(failed.CallAtom())
	return []*ResolvedCall{ok.CallAtom().Resolved, failed.CallAtom().Resolved}
}
