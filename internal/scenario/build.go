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

package scenario

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/config"
	"github.com/wdamron/calls/construct"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/tower"
	"github.com/wdamron/calls/types"
)

// Site is a built scenario: the tower of the call site, its root expression, and the expected
// type of the expression.
type Site struct {
	Name     string
	Table    *symbols.Table
	Tower    *tower.ScopeTower
	Settings *config.Settings
	Expr     ast.Expr
	// Expected is nil when the scenario has no expected type.
	Expected types.Type
}

// env maps type parameter names to the parameters in scope.
type env map[string]*types.Param

func (e env) with(params []*types.Param) env {
	if len(params) == 0 {
		return e
	}
	c := make(env, len(e)+len(params))
	for k, v := range e {
		c[k] = v
	}
	for _, p := range params {
		c[p.Name] = p
	}
	return c
}

type builder struct {
	table  *symbols.Table
	nextId int
}

// Build declares the scenario's classes and callables and creates the tower of its call site.
// Scopes are stacked from the outside in: imports, the file, the implicit receiver, and the
// block of local declarations.
func (s *Scenario) Build() (*Site, error) {
	settings := config.Default()
	if s.Settings.Kind != 0 {
		if err := s.Settings.Decode(settings); err != nil {
			return nil, fmt.Errorf("decoding settings: %w", err)
		}
	}
	b := &builder{table: symbols.NewTable(), nextId: types.FirstUserClassId}
	if err := b.declareClasses(s.Classes); err != nil {
		return nil, err
	}

	imports, err := b.scope("imports", s.Imports, nil)
	if err != nil {
		return nil, err
	}
	importing := []symbols.Scope{imports}
	if s.Prelude {
		importing = append(importing, construct.Prelude())
	}
	tw := tower.NewScopeTower(b.table, settings, importing...)

	file, err := b.scope("file", s.Functions, nil)
	if err != nil {
		return nil, err
	}
	tw = tw.WithScope(&tower.LexicalScope{Name: "file", Scope: file})

	if s.Receiver != "" || len(s.Context) > 0 {
		ls := &tower.LexicalScope{Name: "receiver"}
		if s.Receiver != "" {
			t, err := b.resolveString(s.Receiver, nil)
			if err != nil {
				return nil, fmt.Errorf("implicit receiver: %w", err)
			}
			ls.Name = types.TypeString(t)
			ls.Receiver = tower.NewImplicitReceiver(t, ls.Name)
		}
		for _, c := range s.Context {
			t, err := b.resolveString(c, nil)
			if err != nil {
				return nil, fmt.Errorf("context receiver: %w", err)
			}
			ls.ContextReceivers = append(ls.ContextReceivers, tower.NewImplicitReceiver(t, types.TypeString(t)))
		}
		tw = tw.WithScope(ls)
	}

	block, err := b.scope("block", s.Locals, nil)
	if err != nil {
		return nil, err
	}
	tw = tw.WithScope(&tower.LexicalScope{Name: "block", Scope: block, Local: true})

	site := &Site{Name: s.Name, Table: b.table, Tower: tw, Settings: settings}
	if s.Expected != "" {
		if site.Expected, err = b.resolveString(s.Expected, nil); err != nil {
			return nil, fmt.Errorf("expected type: %w", err)
		}
	}
	if site.Expr, err = s.Expr.Build(); err != nil {
		return nil, fmt.Errorf("expression: %w", err)
	}
	return site, nil
}

// declareClasses declares every class before resolving any supertype, bound, or member, so that
// classes may refer to each other in any order.
func (b *builder) declareClasses(specs []ClassSpec) error {
	classes := make([]*types.Class, len(specs))
	decls := make([][]TypeParamDecl, len(specs))
	for i, spec := range specs {
		if b.table.Class(spec.Name) != nil {
			return fmt.Errorf("class %s is declared twice", spec.Name)
		}
		params := make([]*types.Param, len(spec.Params))
		for j, src := range spec.Params {
			d, err := ParseTypeParam(src)
			if err != nil {
				return fmt.Errorf("class %s: %w", spec.Name, err)
			}
			decls[i] = append(decls[i], d)
			params[j] = &types.Param{Name: d.Name, Variance: d.Variance, Reified: d.Reified}
		}
		c := types.NewClass(b.nextId, spec.Name, params...)
		b.nextId++
		c.Object, c.DslMarker = spec.Object, spec.DslMarker
		classes[i] = b.table.DeclareClass(c)
	}

	for i, spec := range specs {
		c := classes[i]
		scope := env{}.with(c.Params)
		if err := b.bounds(c.Params, decls[i], scope); err != nil {
			return fmt.Errorf("class %s: %w", c.Name, err)
		}
		for _, src := range spec.Supertypes {
			t, err := b.resolveString(src, scope)
			if err != nil {
				return fmt.Errorf("class %s: %w", c.Name, err)
			}
			super, ok := t.(*types.Named)
			if !ok {
				return fmt.Errorf("class %s: supertype %s is not a class", c.Name, src)
			}
			c.AddSupertype(super)
		}
		members, err := b.callables(spec.Members, scope)
		if err != nil {
			return fmt.Errorf("class %s: %w", c.Name, err)
		}
		for _, m := range members {
			m.Info().MissingSupertypes = spec.MissingSupertypes
		}
		b.table.AddMembers(c, members...)
		if len(spec.Statics) > 0 {
			statics, err := b.callables(spec.Statics, env{})
			if err != nil {
				return fmt.Errorf("class %s: %w", c.Name, err)
			}
			b.table.AddStatics(c, statics...)
		}
	}
	return nil
}

func (b *builder) bounds(params []*types.Param, decls []TypeParamDecl, scope env) error {
	for i, d := range decls {
		if d.Bound == nil {
			continue
		}
		t, err := b.resolve(d.Bound, scope)
		if err != nil {
			return err
		}
		params[i].Bounds = []types.Type{t}
	}
	return nil
}

func (b *builder) scope(name string, specs []CallableSpec, outer env) (*symbols.MapScope, error) {
	cs, err := b.callables(specs, outer)
	if err != nil {
		return nil, fmt.Errorf("%s scope: %w", name, err)
	}
	for _, c := range cs {
		if info := c.Info(); info.Owner == "" {
			info.Owner = name
		}
		if v, ok := c.(*symbols.Variable); ok && name == "block" {
			v.Local = true
		}
	}
	return symbols.NewScope(name).Declare(cs...), nil
}

func (b *builder) callables(specs []CallableSpec, outer env) ([]symbols.Callable, error) {
	cs := make([]symbols.Callable, 0, len(specs))
	for i := range specs {
		c, err := b.callable(&specs[i], outer)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", specs[i].Name(), err)
		}
		cs = append(cs, c)
	}
	return cs, nil
}

var deprecationLevels = map[string]symbols.DeprecationLevel{
	"":        symbols.NotDeprecated,
	"warning": symbols.DeprecatedWarning,
	"error":   symbols.DeprecatedError,
	"hidden":  symbols.DeprecatedHidden,
}

var invocationKinds = map[string]symbols.InvocationKind{
	"unknown":       symbols.InvocationUnknown,
	"at_most_once":  symbols.AtMostOnce,
	"exactly_once":  symbols.ExactlyOnce,
	"at_least_once": symbols.AtLeastOnce,
}

func (b *builder) callable(spec *CallableSpec, outer env) (symbols.Callable, error) {
	if spec.Name() == "" {
		return nil, fmt.Errorf("callable without a name")
	}
	common := symbols.Common{Name: spec.Name(), LowPriority: spec.LowPriority, DynamicExtension: spec.DynamicExtension}
	level, ok := deprecationLevels[spec.Deprecated]
	if !ok {
		return nil, fmt.Errorf("unknown deprecation level %q", spec.Deprecated)
	}
	common.Deprecation = symbols.Deprecation{Level: level, Message: spec.Message}
	if spec.Private {
		common.Visibility = symbols.Private
	}

	decls := make([]TypeParamDecl, len(spec.TypeParams))
	for i, src := range spec.TypeParams {
		d, err := ParseTypeParam(src)
		if err != nil {
			return nil, err
		}
		decls[i] = d
		common.TypeParams = append(common.TypeParams, &types.Param{Name: d.Name, Variance: d.Variance, Reified: d.Reified})
	}
	scope := outer.with(common.TypeParams)
	if err := b.bounds(common.TypeParams, decls, scope); err != nil {
		return nil, err
	}

	var err error
	if spec.Receiver != "" {
		if common.ExtensionReceiver, err = b.resolveString(spec.Receiver, scope); err != nil {
			return nil, err
		}
	}
	for _, src := range spec.Context {
		t, err := b.resolveString(src, scope)
		if err != nil {
			return nil, err
		}
		common.ContextReceivers = append(common.ContextReceivers, t)
	}

	if spec.Fun == "" {
		t, err := b.resolveString(spec.Type, scope)
		if err != nil {
			return nil, err
		}
		return &symbols.Variable{Common: common, Type: t, Mutable: spec.Var != ""}, nil
	}

	fn := &symbols.Function{Common: common, Return: types.Unit, Infix: spec.Infix, Operator: spec.Operator, HidesMembers: spec.HidesMembers}
	for _, p := range spec.Params {
		t, err := b.resolveString(p.Type, scope)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		fn.Params = append(fn.Params, &symbols.Parameter{Name: p.Name, Type: t, HasDefault: p.Default, Vararg: p.Vararg})
	}
	if spec.Returns != "" {
		if fn.Return, err = b.resolveString(spec.Returns, scope); err != nil {
			return nil, err
		}
	}
	if len(spec.CallsInPlace) > 0 {
		fn.Contract = &symbols.Contract{}
		params := make([]int, 0, len(spec.CallsInPlace))
		for p := range spec.CallsInPlace {
			params = append(params, p)
		}
		slices.Sort(params)
		for _, p := range params {
			kind, ok := invocationKinds[spec.CallsInPlace[p]]
			if !ok {
				return nil, fmt.Errorf("unknown invocation kind %q", spec.CallsInPlace[p])
			}
			if p < 0 || p >= len(fn.Params) {
				return nil, fmt.Errorf("contract names parameter %d of %d", p, len(fn.Params))
			}
			fn.Contract.CallsInPlace = append(fn.Contract.CallsInPlace, symbols.CallsInPlace{Param: p, Kind: kind})
		}
	}
	return fn, nil
}

func (b *builder) resolveString(src string, scope env) (types.Type, error) {
	ref, err := ParseType(src)
	if err != nil {
		return nil, err
	}
	return b.resolve(ref, scope)
}

// resolve resolves a written type in a declaration. Unlike types written at call sites, unknown
// names and placeholders are errors.
func (b *builder) resolve(ref *ast.TypeRef, scope env) (types.Type, error) {
	switch {
	case ref.Underscore:
		return nil, fmt.Errorf("`_` is not a type")
	case ref.IsFunc:
		fn := &types.Func{Params: make([]types.Type, len(ref.Params))}
		var err error
		if ref.Receiver != nil {
			if fn.Receiver, err = b.resolve(ref.Receiver, scope); err != nil {
				return nil, err
			}
		}
		for i, p := range ref.Params {
			if fn.Params[i], err = b.resolve(p, scope); err != nil {
				return nil, err
			}
		}
		if fn.Return, err = b.resolve(ref.Return, scope); err != nil {
			return nil, err
		}
		return fn, nil
	}
	if p, ok := scope[ref.Name]; ok {
		if len(ref.Args) > 0 {
			return nil, fmt.Errorf("type parameter %s has no type arguments", ref.Name)
		}
		return p, nil
	}
	switch ref.Name {
	case "dynamic":
		return types.DynamicType, nil
	case "pending":
		return types.PendingType, nil
	}
	c := b.table.Class(ref.Name)
	if c == nil {
		return nil, fmt.Errorf("unknown type %s", ref.Name)
	}
	if len(ref.Args) != len(c.Params) {
		return nil, fmt.Errorf("%s expects %d type arguments, found %d", c.Name, len(c.Params), len(ref.Args))
	}
	if len(ref.Args) == 0 {
		return types.NewNamed(c), nil
	}
	args := make([]types.Type, len(ref.Args))
	for i, a := range ref.Args {
		t, err := b.resolve(a, scope)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return types.NewNamed(c, args...), nil
}
