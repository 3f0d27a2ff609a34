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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/config"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/types"
)

type fixture struct {
	table    *symbols.Table
	tower    *ScopeTower
	local    *symbols.MapScope
	file     *symbols.MapScope
	imported *symbols.MapScope
	builder  *types.Class
}

func newFixture() *fixture {
	f := &fixture{
		table:    symbols.NewTable(),
		local:    symbols.NewScope("local"),
		file:     symbols.NewScope("file"),
		imported: symbols.NewScope("imported"),
	}
	f.builder = f.table.DeclareClass(types.NewClass(types.FirstUserClassId, "Builder"))
	f.tower = NewScopeTower(f.table, config.Default(), f.imported)
	f.tower = f.tower.WithScope(&LexicalScope{Name: "file", Scope: f.file})
	f.tower = f.tower.WithScope(&LexicalScope{Name: "class", Receiver: NewImplicitReceiver(f.builder.Self(), "Builder")})
	f.tower = f.tower.WithScope(&LexicalScope{Name: "block", Scope: f.local, Local: true})
	return f
}

func fn(name string, params ...types.Type) *symbols.Function {
	f := &symbols.Function{Common: symbols.Common{Name: name}, Return: types.Unit}
	for _, p := range params {
		f.Params = append(f.Params, &symbols.Parameter{Name: "p", Type: p})
	}
	return f
}

func ext(name string, receiver types.Type) *symbols.Function {
	f := fn(name)
	f.ExtensionReceiver = receiver
	return f
}

func collectAll(t *ScopeTower, name string, explicit ExplicitReceiver) []Found {
	var all []Found
	for _, d := range t.Levels(name) {
		for _, g := range t.Collect(d, LookupFunctions, name, explicit) {
			all = append(all, g...)
		}
	}
	return all
}

func TestLevelOrderWithoutReceiver(t *testing.T) {
	f := newFixture()
	inLocal, inFile, inImport := fn("f"), fn("f"), fn("f")
	member := fn("f")
	memberExt := ext("f", types.Int)
	extOnBuilder := ext("f", f.builder.Self())
	f.local.Declare(inLocal)
	f.file.Declare(inFile, extOnBuilder)
	f.imported.Declare(inImport)
	f.table.AddMembers(f.builder, member, memberExt)

	var order []symbols.Callable
	for _, found := range collectAll(f.tower, "f", nil) {
		order = append(order, found.Symbol)
	}
	// receiver types are not checked while enumerating, so the member extension on Int is listed too
	require.Equal(t, []symbols.Callable{inLocal, member, memberExt, extOnBuilder, inFile, inImport}, order)
}

func TestExplicitReceiverMembersFirst(t *testing.T) {
	f := newFixture()
	extOnInt := ext("plus", types.Int)
	f.file.Declare(extOnInt)
	recv := NewReceiver(types.Int, &ast.Name{Name: "x"})

	found := collectAll(f.tower, "plus", recv)
	require.Len(t, found, 2)
	require.Same(t, recv, found[0].Dispatch)
	require.Nil(t, found[0].Extension)
	require.Same(t, extOnInt, found[1].Symbol)
	require.Same(t, recv, found[1].Extension)
}

func TestMemberExtensionOfImplicitReceiver(t *testing.T) {
	f := newFixture()
	memberExt := ext("twice", types.Int)
	f.table.AddMembers(f.builder, memberExt)
	recv := NewReceiver(types.Int, &ast.Literal{Kind: ast.IntLit, Syntax: "1"})

	found := collectAll(f.tower, "twice", recv)
	require.Len(t, found, 1)
	assert.Equal(t, "this@Builder", found[0].Dispatch.String())
	assert.Same(t, recv, found[0].Extension)
}

func TestHiddenAndDynamicExtensions(t *testing.T) {
	f := newFixture()
	hidden := fn("g")
	hidden.Deprecation = symbols.Deprecation{Level: symbols.DeprecatedHidden}
	dyn := ext("g", types.Any)
	dyn.DynamicExtension = true
	f.file.Declare(hidden, dyn)

	found := collectAll(f.tower, "g", nil)
	require.Len(t, found, 2)
	require.Same(t, dyn, found[0].Symbol)
	for _, c := range found {
		require.Equal(t, diag.Hidden, c.Applicability())
	}

	found = collectAll(f.tower, "g", NewReceiver(types.String, &ast.Name{Name: "s"}))
	require.Len(t, found, 1)
	require.Equal(t, diag.Hidden, found[0].Applicability())

	found = collectAll(f.tower, "g", NewReceiver(types.DynamicType, &ast.Name{Name: "d"}))
	require.Len(t, found, 1)
	require.Equal(t, diag.Resolved, found[0].Applicability())
}

func TestHidesMembersLevelComesFirst(t *testing.T) {
	f := newFixture()
	forEach := ext("forEach", types.ListOf(types.Any))
	forEach.HidesMembers = true
	f.imported.Declare(forEach)
	f.table.AddMembers(types.ListClass, fn("forEach"))

	data := f.tower.Levels("forEach")
	require.IsType(t, AtLevel{}, data[0])
	require.IsType(t, &HidesMembersLevel{}, data[0].(AtLevel).Level)

	found := collectAll(f.tower, "forEach", NewReceiver(types.ListOf(types.Int), &ast.Name{Name: "xs"}))
	require.NotEmpty(t, found)
	require.Same(t, forEach, found[0].Symbol)
}

func TestQualifierStaticScope(t *testing.T) {
	f := newFixture()
	static := symbols.NewScope("Companion").Declare(fn("create"))
	q := &Qualifier{Name: "Builder", Static: static}
	found := collectAll(f.tower, "create", q)
	require.Len(t, found, 1)
	require.Nil(t, found[0].Dispatch)
}

func TestContextReceivers(t *testing.T) {
	f := newFixture()
	logger := f.table.DeclareClass(types.NewClass(types.FirstUserClassId+1, "Logger"))
	log := fn("log", types.String)
	f.table.AddMembers(logger, log)
	tw := f.tower.WithScope(&LexicalScope{Name: "ctx", ContextReceivers: []*ReceiverValue{NewImplicitReceiver(logger.Self(), "")}})

	found := collectAll(tw, "log", nil)
	require.Len(t, found, 1)
	require.Len(t, tw.ContextReceivers(), 1)

	disabled := *tw
	disabled.Settings = &config.Settings{}
	require.Empty(t, collectAll(&disabled, "log", nil))
}

func TestSmartCastMembers(t *testing.T) {
	f := newFixture()
	recv := NewReceiver(types.Any, &ast.Name{Name: "x"}).WithSmartCasts([]types.Type{types.String})
	found := collectAll(f.tower, "plus", recv)
	require.NotEmpty(t, found)
	require.Equal(t, types.String, found[0].DispatchType)
}

type ranked diag.Applicability

func (r ranked) Applicability() diag.Applicability { return diag.Applicability(r) }

func groups(gs ...[]ranked) Processor[ranked] {
	return func(TowerData) []Group[ranked] {
		var out []Group[ranked]
		for _, g := range gs {
			g := g
			out = append(out, func() []ranked { return g })
		}
		gs = nil
		return out
	}
}

func TestSuccessfulCollectorStopsOnResolved(t *testing.T) {
	materialized := 0
	process := func(d TowerData) []Group[ranked] {
		return []Group[ranked]{func() []ranked {
			materialized++
			if materialized == 2 {
				return []ranked{ranked(diag.Inapplicable), ranked(diag.Resolved)}
			}
			return []ranked{ranked(diag.Inapplicable)}
		}}
	}
	data := []TowerData{Empty{}, Empty{}, Empty{}}
	result := Run(data, process, &SuccessfulCollector[ranked]{})
	require.Equal(t, []ranked{ranked(diag.Resolved)}, result)
	require.Equal(t, 2, materialized)
}

func TestSuccessfulCollectorFinal(t *testing.T) {
	result := Run([]TowerData{Empty{}}, groups(
		[]ranked{ranked(diag.WrongReceiver)},
		[]ranked{ranked(diag.Inapplicable), ranked(diag.Inapplicable), ranked(diag.ArgumentMappingError)},
	), &SuccessfulCollector[ranked]{})
	require.Equal(t, []ranked{ranked(diag.Inapplicable), ranked(diag.Inapplicable)}, result)

	result = Run([]TowerData{Empty{}}, groups(
		[]ranked{ranked(diag.Inapplicable)},
		[]ranked{ranked(diag.ResolvedLowPriority)},
	), &SuccessfulCollector[ranked]{})
	require.Equal(t, []ranked{ranked(diag.ResolvedLowPriority)}, result)

	result = Run([]TowerData{Empty{}}, groups([]ranked{ranked(diag.Hidden)}), &SuccessfulCollector[ranked]{})
	require.Empty(t, result)
}

func TestAllCandidatesCollector(t *testing.T) {
	result := Run([]TowerData{Empty{}, Empty{}}, groups(
		[]ranked{ranked(diag.Resolved), ranked(diag.Hidden)},
		[]ranked{ranked(diag.Inapplicable)},
	), &AllCandidatesCollector[ranked]{})
	require.Equal(t, []ranked{ranked(diag.Resolved), ranked(diag.Inapplicable)}, result)
}

func TestUnorderedMergesGroups(t *testing.T) {
	process := Unordered(groups([]ranked{ranked(diag.Inapplicable)}, []ranked{ranked(diag.Resolved)}))
	gs := process(Empty{})
	require.Len(t, gs, 1)
	require.Len(t, gs[0](), 2)
}

func TestCheckConventions(t *testing.T) {
	plain := fn("plus", types.Int)
	require.Len(t, CheckConventions(plain, true, true, nil), 2)
	plain.Infix, plain.Operator = true, true
	require.Empty(t, CheckConventions(plain, true, true, nil))
	require.Empty(t, CheckConventions(&symbols.Variable{}, true, false, nil))
}
