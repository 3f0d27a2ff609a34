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

	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

// ResolutionKind selects what a tower search enumerates for a call. The set is closed:
// FunctionKind, VariableKind, InvokeKind, CallableReferenceKind, and GivenCandidatesKind.
type ResolutionKind interface {
	steps(rc *ResolutionContext, name string) []tower.TowerData
	processor(r *Resolver, rc *ResolutionContext, call *Call, name string) tower.Processor[*Candidate]
	resolutionKind()
}

func (FunctionKind) resolutionKind()          {}
func (VariableKind) resolutionKind()          {}
func (InvokeKind) resolutionKind()            {}
func (CallableReferenceKind) resolutionKind() {}
func (GivenCandidatesKind) resolutionKind()   {}

// Functions at each level, then function-typed variables invoked through `invoke`.
type FunctionKind struct{}

// Variables and properties.
type VariableKind struct{}

// Operator `invoke` on the dispatch receiver for invoke.
type InvokeKind struct{}

// Functions and variables of one level in a single group.
type CallableReferenceKind struct{}

// Candidates supplied by the caller, such as delegated-property accessors.
type GivenCandidatesKind struct {
	Candidates []tower.Found
}

func (FunctionKind) steps(rc *ResolutionContext, name string) []tower.TowerData { return rc.Tower.Levels(name) }
func (VariableKind) steps(rc *ResolutionContext, name string) []tower.TowerData { return rc.Tower.Levels(name) }
func (InvokeKind) steps(rc *ResolutionContext, name string) []tower.TowerData   { return rc.Tower.Levels(name) }
func (CallableReferenceKind) steps(rc *ResolutionContext, name string) []tower.TowerData {
	return rc.Tower.Levels(name)
}
func (GivenCandidatesKind) steps(*ResolutionContext, string) []tower.TowerData {
	return []tower.TowerData{tower.Empty{}}
}

func (FunctionKind) processor(r *Resolver, rc *ResolutionContext, call *Call, name string) tower.Processor[*Candidate] {
	return func(data tower.TowerData) []tower.Group[*Candidate] {
		groups := r.groups(rc, call, data, tower.LookupFunctions, name)
		for _, found := range rc.Tower.Collect(data, tower.LookupVariables, name, call.Explicit) {
			groups = append(groups, func() []*Candidate { return r.invokeCandidates(rc, call, name, found) })
		}
		return groups
	}
}

func (VariableKind) processor(r *Resolver, rc *ResolutionContext, call *Call, name string) tower.Processor[*Candidate] {
	return func(data tower.TowerData) []tower.Group[*Candidate] {
		return r.groups(rc, call, data, tower.LookupVariables, name)
	}
}

func (InvokeKind) processor(r *Resolver, rc *ResolutionContext, call *Call, name string) tower.Processor[*Candidate] {
	return func(data tower.TowerData) []tower.Group[*Candidate] {
		return r.groups(rc, call, data, tower.LookupFunctions, name)
	}
}

func (CallableReferenceKind) processor(r *Resolver, rc *ResolutionContext, call *Call, name string) tower.Processor[*Candidate] {
	return tower.Unordered(func(data tower.TowerData) []tower.Group[*Candidate] {
		groups := r.groups(rc, call, data, tower.LookupFunctions, name)
		return append(groups, r.groups(rc, call, data, tower.LookupVariables, name)...)
	})
}

func (k GivenCandidatesKind) processor(r *Resolver, rc *ResolutionContext, call *Call, name string) tower.Processor[*Candidate] {
	return func(data tower.TowerData) []tower.Group[*Candidate] {
		if _, ok := data.(tower.Empty); !ok {
			return nil
		}
		return []tower.Group[*Candidate]{func() []*Candidate { return r.candidates(rc, call, k.Candidates) }}
	}
}

func (r *Resolver) groups(rc *ResolutionContext, call *Call, data tower.TowerData, lookup tower.Lookup, name string) []tower.Group[*Candidate] {
	var groups []tower.Group[*Candidate]
	for _, found := range rc.Tower.Collect(data, lookup, name, call.Explicit) {
		groups = append(groups, func() []*Candidate { return r.candidates(rc, call, found) })
	}
	return groups
}

func (r *Resolver) candidates(rc *ResolutionContext, call *Call, founds []tower.Found) []*Candidate {
	cands := make([]*Candidate, 0, len(founds))
	for _, found := range founds {
		cands = append(cands, r.newCandidate(rc, call, found))
	}
	if len(cands) > 0 {
		r.debug(rc, "candidate group", slog.String("name", call.Name), slog.Int("count", len(cands)),
			slog.String("best", bestApplicability(cands).String()))
	}
	return cands
}

func bestApplicability(cands []*Candidate) diag.Applicability {
	best := diag.Hidden
	for _, c := range cands {
		if a := c.Applicability(); a > best {
			best = a
		}
	}
	return best
}

// invokeCandidates composes variable candidates with the `invoke` operators callable on their
// values. The variable side is resolved first; invoke candidates are created in an overlay of
// the variable candidate's overlay.
func (r *Resolver) invokeCandidates(rc *ResolutionContext, call *Call, name string, founds []tower.Found) []*Candidate {
	var cands []*Candidate
	for _, found := range founds {
		vcall := &Call{Node: call.Node, Name: name, Kind: VariableCall, Explicit: call.Explicit, Facts: call.Facts}
		v := r.newCandidate(rc, vcall, found)
		if v.Applicability() == diag.Hidden {
			continue
		}
		// the variable's own type is being computed: invoking it would be a self-reference
		if _, pending := v.ReturnType.(*types.Pending); pending {
			r.debug(rc, "dropped variable with pending type", symbolAttr(v.Symbol))
			continue
		}
		value := &tower.ReceiverValue{Type: v.ReturnType, Expr: call.Node}
		icall := *call
		icall.Kind, icall.Name, icall.Explicit, icall.DispatchReceiverForInvoke = InvokeCall, "invoke", value, value
		icall.Operator = true
		for _, inv := range r.collect(rc.WithStore(v.Store), &icall, "invoke", InvokeKind{}) {
			inv.Variable = v
			inv.mergeSystem(v.System)
			cands = append(cands, inv)
		}
	}
	return cands
}
