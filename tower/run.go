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

package tower

import (
	"github.com/wdamron/calls/diag"
)

// Candidate is anything ranked by a tower search.
type Candidate interface {
	Applicability() diag.Applicability
}

// Group produces the candidates of one group on demand, so that groups after a successful
// one are never materialized.
type Group[C Candidate] func() []C

// Processor turns one search step into candidate groups.
type Processor[C Candidate] func(data TowerData) []Group[C]

// Collector accumulates candidate groups during a search.
type Collector[C Candidate] interface {
	Push(group []C)
	// Successful returns the candidates which stop the search, if any.
	Successful() ([]C, bool)
	// Final returns the result after every step was processed.
	Final() []C
}

// Run processes search steps in order until the collector reports success.
func Run[C Candidate](data []TowerData, process Processor[C], collector Collector[C]) []C {
	for _, d := range data {
		for _, group := range process(d) {
			collector.Push(group())
			if cs, ok := collector.Successful(); ok {
				return cs
			}
		}
	}
	return collector.Final()
}

// Unordered merges the groups of each step into one group, for searches where groups of the
// same step have no relative priority.
func Unordered[C Candidate](process Processor[C]) Processor[C] {
	return func(data TowerData) []Group[C] {
		groups := process(data)
		if len(groups) < 2 {
			return groups
		}
		return []Group[C]{func() []C {
			var all []C
			for _, g := range groups {
				all = append(all, g()...)
			}
			return all
		}}
	}
}

// SuccessfulCollector keeps the groups searched so far until a candidate with a
// search-stopping applicability is found. Once a group contains a successful candidate,
// earlier failed groups are dropped and only successful candidates are kept.
type SuccessfulCollector[C Candidate] struct {
	groups     [][]C
	successful bool
}

func (c *SuccessfulCollector[C]) Push(group []C) {
	hasSuccess := false
	for _, cand := range group {
		if cand.Applicability().IsSuccess() {
			hasSuccess = true
			break
		}
	}
	if !c.successful && !hasSuccess {
		c.groups = append(c.groups, group)
		return
	}
	if !c.successful {
		c.groups = nil
		c.successful = true
	}
	if hasSuccess {
		var ok []C
		for _, cand := range group {
			if cand.Applicability().IsSuccess() {
				ok = append(ok, cand)
			}
		}
		c.groups = append(c.groups, ok)
	}
}

func (c *SuccessfulCollector[C]) Successful() ([]C, bool) {
	if !c.successful {
		return nil, false
	}
	for _, g := range c.groups {
		var stop []C
		for _, cand := range g {
			if cand.Applicability() == diag.Resolved {
				stop = append(stop, cand)
			}
		}
		if len(stop) > 0 {
			return stop, true
		}
	}
	return nil, false
}

func (c *SuccessfulCollector[C]) Final() []C {
	var (
		best      []C
		bestGroup = diag.Hidden
		found     bool
	)
	for _, g := range c.groups {
		a := groupApplicability(g)
		if !found || a > bestGroup {
			best, bestGroup, found = g, a, true
		}
	}
	if !found || bestGroup == diag.Hidden {
		return nil
	}
	var final []C
	for _, cand := range best {
		if cand.Applicability() == bestGroup {
			final = append(final, cand)
		}
	}
	return final
}

func groupApplicability[C Candidate](g []C) diag.Applicability {
	a := diag.Hidden
	for _, cand := range g {
		if ca := cand.Applicability(); ca > a {
			a = ca
		}
	}
	return a
}

// AllCandidatesCollector visits every step and keeps every candidate which is not hidden.
type AllCandidatesCollector[C Candidate] struct {
	all []C
}

func (c *AllCandidatesCollector[C]) Push(group []C) {
	for _, cand := range group {
		if cand.Applicability() != diag.Hidden {
			c.all = append(c.all, cand)
		}
	}
}

func (c *AllCandidatesCollector[C]) Successful() ([]C, bool) { return nil, false }

func (c *AllCandidatesCollector[C]) Final() []C { return c.all }
