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
	"github.com/wdamron/calls/config"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/types"
)

// LexicalScope is one lexical scope of a call site: a block, a function body, a lambda body,
// a class body, or a file.
type LexicalScope struct {
	Name  string
	Scope symbols.Scope
	// Local scopes hold local declarations; they are searched before any implicit receiver.
	Local bool
	// Receiver is the implicit receiver introduced by this scope, if any.
	Receiver *ReceiverValue
	// ContextReceivers are the context receivers introduced by this scope.
	ContextReceivers []*ReceiverValue
}

// ScopeTower is the view of scopes and receivers at one call site. A tower is immutable
// during one resolution; WithLambdaScope derives towers for lambda bodies.
type ScopeTower struct {
	Table *symbols.Table
	// Lexical scopes, innermost first.
	Lexical []*LexicalScope
	// Importing scopes in priority order: explicit imports, star imports, default imports.
	Importing []symbols.Scope
	Synthetic []symbols.SyntheticScope
	// Dynamic enumerates members of dynamic receivers. It may be nil.
	Dynamic  symbols.Scope
	Settings *config.Settings
}

// NewScopeTower creates a tower over a symbol table. The settings may be nil.
func NewScopeTower(table *symbols.Table, settings *config.Settings, importing ...symbols.Scope) *ScopeTower {
	if settings == nil {
		settings = config.Default()
	}
	return &ScopeTower{
		Table:     table,
		Importing: importing,
		Synthetic: []symbols.SyntheticScope{symbols.AccessorProperties{Table: table}},
		Settings:  settings,
	}
}

// WithScope returns a copy of t with an innermost scope added.
func (t *ScopeTower) WithScope(s *LexicalScope) *ScopeTower {
	c := *t
	c.Lexical = make([]*LexicalScope, 0, len(t.Lexical)+1)
	c.Lexical = append(append(c.Lexical, s), t.Lexical...)
	return &c
}

// WithLambdaScope returns the tower of a lambda body: a local scope with the lambda's
// parameters, and the lambda's receiver as the innermost implicit receiver.
func (t *ScopeTower) WithLambdaScope(label string, params symbols.Scope, receiver types.Type) *ScopeTower {
	s := &LexicalScope{Name: label, Scope: params, Local: true}
	if receiver != nil {
		s.Receiver = NewImplicitReceiver(receiver, label)
	}
	return t.WithScope(s)
}

// ImplicitReceivers returns the implicit receivers of the lexical scopes, innermost first.
func (t *ScopeTower) ImplicitReceivers() []*ReceiverValue {
	var rs []*ReceiverValue
	for _, s := range t.Lexical {
		if s.Receiver != nil {
			rs = append(rs, s.Receiver)
		}
	}
	return rs
}

// ContextReceivers returns all context receivers of the lexical scopes, innermost first.
// Context receivers are only visible when the feature is enabled.
func (t *ScopeTower) ContextReceivers() []*ReceiverValue {
	if !t.Settings.Features.ContextReceivers {
		return nil
	}
	var rs []*ReceiverValue
	for _, s := range t.Lexical {
		rs = append(rs, s.ContextReceivers...)
	}
	return rs
}

// LocalVariable looks up a variable in the local lexical scopes.
func (t *ScopeTower) LocalVariable(name string) *symbols.Variable {
	for _, s := range t.Lexical {
		if !s.Local || s.Scope == nil {
			continue
		}
		if vs := s.Scope.Variables(name); len(vs) > 0 {
			return vs[len(vs)-1]
		}
	}
	return nil
}

// Receiver finds an implicit receiver by label. An empty label selects the innermost receiver.
func (t *ScopeTower) Receiver(label string) *ReceiverValue {
	for _, r := range t.ImplicitReceivers() {
		if label == "" || r.Label == label {
			return r
		}
	}
	return nil
}
