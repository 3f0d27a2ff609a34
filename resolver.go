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

	"go.opentelemetry.io/otel/attribute"

	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/tower"
)

// ResolveCall searches the tower for callables named name, ranks the candidates, selects the
// most specific one and completes it within the context's inference session.
//
// In dependent contexts the winner is returned without completion: its constraint system and
// postponed arguments are merged into the enclosing call.
func (r *Resolver) ResolveCall(rc *ResolutionContext, call *Call, name string, kind ResolutionKind) Result {
	rc, span := r.startSpan(rc, "calls.ResolveCall",
		attribute.String("calls.name", name),
		attribute.String("calls.kind", call.Kind.String()),
		attribute.Bool("calls.dependent", rc.Dependent))
	result := r.resolveCall(rc, call, name, kind)
	endSpan(span, result)
	return result
}

func (r *Resolver) resolveCall(rc *ResolutionContext, call *Call, name string, kind ResolutionKind) Result {
	settings := rc.Tower.Settings
	refined := name
	alias, hasAlias := "", false
	if call.IsRem {
		alias, hasAlias = settings.RemAlias(name)
	}
	if hasAlias && !settings.Features.OperatorRem {
		refined = alias
	}

	all := settings.CollectAllCandidates
	cands, hidden := r.search(rc, call, refined, kind, all)
	if hasAlias && refined != alias && allInapplicable(cands) {
		r.debug(rc, "retrying remainder operator under its alias", slog.String("name", name), slog.String("alias", alias))
		cands, hidden = r.search(rc, call, alias, kind, all)
	}

	var result Result
	if all {
		result = &AllCandidates{Call: call, Candidates: cands}
	} else {
		result = r.toResult(rc, call, cands, hidden)
	}
	if _, ok := result.(*Success); !ok {
		if bs, ok := rc.Session.(*BuilderSession); ok {
			bs.markInapplicable(call)
		}
	}
	return result
}

func allInapplicable(cands []*Candidate) bool {
	for _, c := range cands {
		if c.Applicability() >= diag.ConventionError {
			return false
		}
	}
	return true
}

// hiddenCounter notes whether a search saw hidden candidates only.
type hiddenCounter struct {
	tower.Collector[*Candidate]
	hidden, visible int
}

func (h *hiddenCounter) Push(group []*Candidate) {
	for _, c := range group {
		if c.Applicability() == diag.Hidden {
			h.hidden++
		} else {
			h.visible++
		}
	}
	h.Collector.Push(group)
}

func (r *Resolver) search(rc *ResolutionContext, call *Call, name string, kind ResolutionKind, all bool) ([]*Candidate, bool) {
	var collector tower.Collector[*Candidate] = &tower.SuccessfulCollector[*Candidate]{}
	if all {
		collector = &tower.AllCandidatesCollector[*Candidate]{}
	}
	hc := &hiddenCounter{Collector: collector}
	cands := tower.Run(kind.steps(rc, name), kind.processor(r, rc, call, name), hc)
	return cands, hc.hidden > 0 && hc.visible == 0
}

// collect runs a nested search for reference candidates and invoke operators.
func (r *Resolver) collect(rc *ResolutionContext, call *Call, name string, kind ResolutionKind) []*Candidate {
	cands, _ := r.search(rc, call, name, kind, false)
	return cands
}

func (r *Resolver) toResult(rc *ResolutionContext, call *Call, cands []*Candidate, hidden bool) Result {
	if len(cands) == 0 {
		r.debug(rc, "no candidates", slog.String("name", call.Name), slog.Bool("hidden", hidden))
		return &NoneFound{Call: call, Hidden: hidden}
	}
	a := cands[0].Applicability()
	if len(cands) > 1 {
		if !a.IsSuccess() {
			return &ManyCandidates{Call: call, Candidates: cands, Kind: failureKind(a)}
		}
		best := r.mostSpecific(cands)
		if len(best) != 1 {
			r.debug(rc, "ambiguous candidates", slog.String("name", call.Name), slog.Int("count", len(best)))
			return &ManyCandidates{Call: call, Candidates: best, Kind: Ambiguous}
		}
		cands = best
	}

	winner := cands[0]
	if winner.Applicability() < diag.ConventionError {
		r.debug(rc, "single inapplicable candidate", symbolAttr(winner.Symbol),
			slog.String("applicability", winner.Applicability().String()))
		if js, ok := rc.Session.(*JointSession); ok && !rc.Dependent {
			js.AddPartialCall(winner)
			return &ManyCandidates{Call: call, Candidates: cands, Kind: failureKind(winner.Applicability())}
		}
		for _, d := range diag.Errors(winner.Diagnostics) {
			rc.Store.Report(d)
		}
		return &ManyCandidates{Call: call, Candidates: cands, Kind: failureKind(winner.Applicability())}
	}
	return r.succeed(rc, winner)
}

func (r *Resolver) succeed(rc *ResolutionContext, winner *Candidate) Result {
	r.debug(rc, "candidate selected", symbolAttr(winner.Symbol),
		slog.String("applicability", winner.Applicability().String()),
		typeAttr("type", winner.ReturnType))
	winner.commit()
	if rc.Dependent {
		return &Success{Candidate: winner}
	}
	if !rc.Session.ShouldCompleteResolvedCall(winner) {
		r.debug(rc, "partial call", symbolAttr(winner.Symbol))
		rc.Session.AddPartialCall(winner)
		return &Success{Candidate: winner}
	}
	resolved := r.completeCall(rc, winner)
	rc.Session.AddCompletedCall(resolved)
	return &Success{Candidate: winner, Call: resolved}
}
