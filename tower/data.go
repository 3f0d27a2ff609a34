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

// TowerData is one step of a tower search. The set is closed: Empty, AtLevel,
// LevelAndImplicitReceiver, OnlyImplicitReceiver, and LevelAndContextGroup.
type TowerData interface {
	towerData()
}

func (Empty) towerData()                    {}
func (AtLevel) towerData()                  {}
func (LevelAndImplicitReceiver) towerData() {}
func (OnlyImplicitReceiver) towerData()     {}
func (LevelAndContextGroup) towerData()     {}

// Empty selects members of the explicit receiver.
type Empty struct{}

// AtLevel selects the declarations of a level.
type AtLevel struct{ Level Level }

// LevelAndImplicitReceiver selects the extensions of a level for an implicit receiver.
type LevelAndImplicitReceiver struct {
	Level    Level
	Receiver *ReceiverValue
}

// OnlyImplicitReceiver selects invoke-extensions on local variables for an implicit receiver.
type OnlyImplicitReceiver struct{ Receiver *ReceiverValue }

// LevelAndContextGroup selects the extensions of a level for a group of context receivers.
type LevelAndContextGroup struct {
	Level Level
	Group []*ReceiverValue
}

// Levels returns the steps of a search for name, in priority order. The same steps serve
// calls with and without an explicit receiver; Collect ignores steps which do not apply.
func (t *ScopeTower) Levels(name string) []TowerData {
	var (
		data      []TowerData
		hides     = t.Settings.HidesMembers(name)
		synthetic = t.SyntheticLevel()
		locals    []Level
	)
	for _, s := range t.Lexical {
		if s.Local && s.Scope != nil {
			locals = append(locals, &ScopeLevel{Scope: s.Scope, Local: true})
		}
	}
	nonLocals := t.nonLocalLevels()

	if hides {
		data = append(data, AtLevel{t.HidesMembersLevel()})
	}
	data = append(data, Empty{}, AtLevel{synthetic})
	for _, l := range locals {
		data = append(data, AtLevel{l})
	}

	var groups [][]*ReceiverValue
	for _, s := range t.Lexical {
		if t.Settings.Features.ContextReceivers && len(s.ContextReceivers) > 0 {
			groups = append(groups, s.ContextReceivers)
		}
		if !s.Local && s.Scope != nil {
			data = append(data, AtLevel{&ScopeLevel{Scope: s.Scope}})
		}
		r := s.Receiver
		if r == nil {
			continue
		}
		if hides {
			data = append(data, LevelAndImplicitReceiver{t.HidesMembersLevel(), r})
		}
		data = append(data,
			AtLevel{t.MemberLevel(r)},
			LevelAndImplicitReceiver{synthetic, r},
			OnlyImplicitReceiver{r})
		for _, l := range locals {
			data = append(data, LevelAndImplicitReceiver{l, r})
		}
		for _, l := range nonLocals {
			data = append(data, LevelAndImplicitReceiver{l, r})
		}
	}
	for _, g := range groups {
		data = append(data, AtLevel{t.ContextReceiversLevel(g)}, LevelAndContextGroup{synthetic, g})
		for _, l := range nonLocals {
			data = append(data, LevelAndContextGroup{l, g})
		}
	}
	for _, s := range t.Importing {
		data = append(data, AtLevel{&ScopeLevel{Scope: s, Importing: true}})
	}
	if t.Dynamic != nil {
		data = append(data, AtLevel{t.DynamicLevel()})
	}
	return data
}

func (t *ScopeTower) nonLocalLevels() []Level {
	var (
		levels []Level
		groups [][]*ReceiverValue
	)
	for _, s := range t.Lexical {
		if !s.Local && s.Scope != nil {
			levels = append(levels, &ScopeLevel{Scope: s.Scope})
		}
		if s.Receiver != nil {
			levels = append(levels, t.MemberLevel(s.Receiver))
		}
		if t.Settings.Features.ContextReceivers && len(s.ContextReceivers) > 0 {
			groups = append(groups, s.ContextReceivers)
		}
	}
	for _, g := range groups {
		levels = append(levels, t.ContextReceiversLevel(g))
	}
	for _, s := range t.Importing {
		levels = append(levels, &ScopeLevel{Scope: s, Importing: true})
	}
	return levels
}

// Collect enumerates the callables of one search step. Each returned slice is one group;
// earlier groups have higher priority.
func (t *ScopeTower) Collect(data TowerData, lookup Lookup, name string, explicit ExplicitReceiver) [][]Found {
	switch r := explicit.(type) {
	case nil:
		return t.collectImplicit(data, lookup, name)
	case *ReceiverValue:
		if r == nil {
			return t.collectImplicit(data, lookup, name)
		}
		return t.collectExplicit(data, lookup, name, r)
	case *Qualifier:
		var groups [][]Found
		if _, ok := data.(Empty); ok && r.Static != nil {
			var found []Found
			for _, c := range enumerate(r.Static, lookup, name) {
				if !c.Info().IsExtension() {
					found = append(found, check(Found{Symbol: c}))
				}
			}
			groups = append(groups, found)
		}
		if r.Object != nil {
			groups = append(groups, t.collectExplicit(data, lookup, name, r.Object)...)
		}
		return groups
	}
	panic("tower: unexpected explicit receiver")
}

func (t *ScopeTower) collectImplicit(data TowerData, lookup Lookup, name string) [][]Found {
	switch d := data.(type) {
	case Empty, OnlyImplicitReceiver:
		return nil
	case AtLevel:
		if _, ok := d.Level.(*HidesMembersLevel); ok {
			return nil
		}
		return [][]Found{d.Level.Find(lookup, name, nil)}
	case LevelAndImplicitReceiver:
		return [][]Found{d.Level.Find(lookup, name, d.Receiver)}
	case LevelAndContextGroup:
		var found []Found
		for _, r := range d.Group {
			found = append(found, d.Level.Find(lookup, name, r)...)
		}
		return [][]Found{found}
	}
	panic("tower: unexpected tower data")
}

func (t *ScopeTower) collectExplicit(data TowerData, lookup Lookup, name string, r *ReceiverValue) [][]Found {
	switch d := data.(type) {
	case Empty:
		return [][]Found{t.members(r, lookup, name, nil)}
	case AtLevel:
		if _, ok := d.Level.(*DynamicLevel); ok {
			return nil
		}
		return [][]Found{d.Level.Find(lookup, name, r)}
	case LevelAndImplicitReceiver, OnlyImplicitReceiver, LevelAndContextGroup:
		return nil
	}
	panic("tower: unexpected tower data")
}
