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
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/types"
)

// Found is a callable enumerated by a level, with its receivers bound.
type Found struct {
	Symbol symbols.Callable
	// Dispatch is the receiver a member is called on.
	Dispatch *ReceiverValue
	// DispatchType is the type of Dispatch the member was found in, which may be a smart cast.
	DispatchType types.Type
	// Extension is the receiver of an extension.
	Extension *ReceiverValue
	// Diagnostics found while enumerating (hidden declarations, receiver markers).
	Diagnostics []diag.Diagnostic
}

// Applicability of the enumerated callable before any argument is checked.
func (f Found) Applicability() diag.Applicability { return diag.ResultApplicability(f.Diagnostics) }

// Lookup selects which callables a level enumerates.
type Lookup int

const (
	LookupFunctions Lookup = iota
	LookupVariables
)

// Level is a group of declarations with the same priority. The set is closed:
// *ScopeLevel, *MemberLevel, *SyntheticLevel, *HidesMembersLevel, *ContextReceiversLevel, *DynamicLevel.
//
// Without an extension receiver, a level enumerates non-extension callables. With an extension
// receiver, it enumerates extensions applicable to that receiver.
type Level interface {
	Find(lookup Lookup, name string, extension *ReceiverValue) []Found
	level()
}

func (*ScopeLevel) level()            {}
func (*MemberLevel) level()           {}
func (*SyntheticLevel) level()        {}
func (*HidesMembersLevel) level()     {}
func (*ContextReceiversLevel) level() {}
func (*DynamicLevel) level()          {}

// ScopeLevel enumerates the declarations of a lexical or importing scope.
type ScopeLevel struct {
	Scope     symbols.Scope
	Local     bool
	Importing bool
}

// MemberLevel enumerates members of a receiver, or member extensions declared in the receiver's type.
type MemberLevel struct {
	tower    *ScopeTower
	Receiver *ReceiverValue
}

// SyntheticLevel enumerates members derived on demand for a receiver.
type SyntheticLevel struct {
	tower *ScopeTower
}

// HidesMembersLevel enumerates imported extensions which take priority over members.
type HidesMembersLevel struct {
	tower *ScopeTower
}

// ContextReceiversLevel enumerates members of a group of context receivers.
type ContextReceiversLevel struct {
	tower *ScopeTower
	Group []*ReceiverValue
}

// DynamicLevel enumerates declarations of the dynamic fallback scope.
type DynamicLevel struct {
	tower *ScopeTower
}

func (t *ScopeTower) MemberLevel(r *ReceiverValue) *MemberLevel { return &MemberLevel{tower: t, Receiver: r} }

func (t *ScopeTower) SyntheticLevel() *SyntheticLevel { return &SyntheticLevel{tower: t} }

func (t *ScopeTower) HidesMembersLevel() *HidesMembersLevel { return &HidesMembersLevel{tower: t} }

func (t *ScopeTower) ContextReceiversLevel(group []*ReceiverValue) *ContextReceiversLevel {
	return &ContextReceiversLevel{tower: t, Group: group}
}

func (t *ScopeTower) DynamicLevel() *DynamicLevel { return &DynamicLevel{tower: t} }

func enumerate(scope symbols.Scope, lookup Lookup, name string) []symbols.Callable {
	if scope == nil {
		return nil
	}
	var cs []symbols.Callable
	switch lookup {
	case LookupFunctions:
		for _, f := range scope.Functions(name) {
			cs = append(cs, f)
		}
	case LookupVariables:
		for _, v := range scope.Variables(name) {
			cs = append(cs, v)
		}
	}
	return cs
}

// check records diagnostics which hide a callable regardless of its arguments.
func check(found Found) Found {
	info := found.Symbol.Info()
	if info.Deprecation.Level == symbols.DeprecatedHidden {
		found.Diagnostics = append(found.Diagnostics, diag.New(diag.DeprecationHidden, nil, "%s is hidden", info.Name))
	}
	if info.DynamicExtension && (found.Extension == nil || !found.Extension.IsDynamic()) {
		found.Diagnostics = append(found.Diagnostics, diag.New(diag.DynamicExtensionOnStaticReceiver, nil, "%s requires a dynamic receiver", info.Name))
	}
	return found
}

func (l *ScopeLevel) Find(lookup Lookup, name string, extension *ReceiverValue) []Found {
	var found []Found
	for _, c := range enumerate(l.Scope, lookup, name) {
		info := c.Info()
		if info.IsMember() || info.IsExtension() != (extension != nil) {
			continue
		}
		found = append(found, check(Found{Symbol: c, Extension: extension}))
	}
	return found
}

func (l *MemberLevel) Find(lookup Lookup, name string, extension *ReceiverValue) []Found {
	return l.tower.members(l.Receiver, lookup, name, extension)
}

func (t *ScopeTower) members(r *ReceiverValue, lookup Lookup, name string, extension *ReceiverValue) []Found {
	if r.IsDynamic() {
		if extension != nil {
			return nil
		}
		var found []Found
		for _, c := range enumerate(t.Dynamic, lookup, name) {
			if !c.Info().IsExtension() {
				found = append(found, check(Found{Symbol: c, Dispatch: r, DispatchType: r.Type}))
			}
		}
		return found
	}
	var (
		found []Found
		seen  = make(map[symbols.Callable]bool)
	)
	for _, rt := range r.Types() {
		for _, c := range enumerate(t.Table.Members(rt), lookup, name) {
			if seen[c] || c.Info().IsExtension() != (extension != nil) {
				continue
			}
			seen[c] = true
			found = append(found, check(Found{Symbol: c, Dispatch: r, DispatchType: rt, Extension: extension}))
		}
	}
	return found
}

func (l *SyntheticLevel) Find(lookup Lookup, name string, extension *ReceiverValue) []Found {
	if extension == nil || extension.IsDynamic() {
		return nil
	}
	var found []Found
	for _, rt := range extension.Types() {
		for _, s := range l.tower.Synthetic {
			switch lookup {
			case LookupFunctions:
				for _, f := range s.SyntheticFunctions(rt, name) {
					found = append(found, check(Found{Symbol: f, Dispatch: extension, DispatchType: rt}))
				}
			case LookupVariables:
				for _, v := range s.SyntheticVariables(rt, name) {
					found = append(found, check(Found{Symbol: v, Dispatch: extension, DispatchType: rt}))
				}
			}
		}
	}
	return found
}

func (l *HidesMembersLevel) Find(lookup Lookup, name string, extension *ReceiverValue) []Found {
	if extension == nil || lookup != LookupFunctions {
		return nil
	}
	var found []Found
	for _, scope := range l.tower.Importing {
		for _, f := range scope.Functions(name) {
			if f.HidesMembers && f.IsExtension() {
				found = append(found, check(Found{Symbol: f, Extension: extension}))
			}
		}
	}
	return found
}

func (l *ContextReceiversLevel) Find(lookup Lookup, name string, extension *ReceiverValue) []Found {
	var found []Found
	for _, r := range l.Group {
		found = append(found, l.tower.members(r, lookup, name, extension)...)
	}
	return found
}

func (l *DynamicLevel) Find(lookup Lookup, name string, extension *ReceiverValue) []Found {
	var found []Found
	for _, c := range enumerate(l.tower.Dynamic, lookup, name) {
		if c.Info().IsExtension() != (extension != nil) {
			continue
		}
		found = append(found, check(Found{Symbol: c, Extension: extension}))
	}
	return found
}
