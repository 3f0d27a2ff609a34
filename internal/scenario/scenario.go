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

// Package scenario describes call sites and the declarations around them in YAML, builds the
// symbol table and scope tower they describe, and resolves their root expression.
//
// A scenario file holds one or more YAML documents:
//
//	name: rem alias
//	settings:
//	  features: {operator_rem: true}
//	classes:
//	  - name: Money
//	    members:
//	      - {fun: mod, operator: true, params: [{name: other, type: Int}], returns: Money}
//	locals:
//	  - {val: m, type: Money}
//	expr: {op: "%", left: {name: m}, right: {int: 3}}
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one call site with its declarations.
type Scenario struct {
	Name string `yaml:"name"`
	// Prelude imports listOf, buildList, run, let, and the other generic library functions.
	Prelude bool `yaml:"prelude"`
	// Settings are decoded on top of config.Default.
	Settings yaml.Node   `yaml:"settings"`
	Classes  []ClassSpec `yaml:"classes"`
	// Functions are declared in the file scope of the call site.
	Functions []CallableSpec `yaml:"functions"`
	// Imports are declared in an explicitly imported scope.
	Imports []CallableSpec `yaml:"imports"`
	// Locals are declared in the innermost block of the call site.
	Locals []CallableSpec `yaml:"locals"`
	// Receiver is the type of the implicit receiver of the enclosing class body.
	Receiver string `yaml:"receiver"`
	// Context lists the types of context receivers of the enclosing declaration.
	Context  []string  `yaml:"context"`
	Expected string    `yaml:"expected"`
	Expr     *ExprSpec `yaml:"expr"`
}

// ClassSpec declares a class.
type ClassSpec struct {
	Name string `yaml:"name"`
	// Params are type parameter declarations: `out T : Comparable<T>`
	Params     []string       `yaml:"params"`
	Supertypes []string       `yaml:"supertypes"`
	Object     bool           `yaml:"object"`
	DslMarker  string         `yaml:"dsl_marker"`
	Members    []CallableSpec `yaml:"members"`
	Statics    []CallableSpec `yaml:"statics"`
	// MissingSupertypes are reported whenever a member of the class is called.
	MissingSupertypes []string `yaml:"missing_supertypes"`
}

// CallableSpec declares a function (fun), an immutable variable (val), or a mutable one (var).
type CallableSpec struct {
	Fun string `yaml:"fun"`
	Val string `yaml:"val"`
	Var string `yaml:"var"`
	// Type of a variable.
	Type       string      `yaml:"type"`
	TypeParams []string    `yaml:"type_params"`
	Receiver   string      `yaml:"receiver"`
	Context    []string    `yaml:"context"`
	Params     []ParamSpec `yaml:"params"`
	Returns    string      `yaml:"returns"`

	Infix        bool `yaml:"infix"`
	Operator     bool `yaml:"operator"`
	HidesMembers bool `yaml:"hides_members"`
	LowPriority  bool `yaml:"low_priority"`
	// DynamicExtension extensions only apply to dynamic receivers.
	DynamicExtension bool `yaml:"dynamic_extension"`
	Private          bool `yaml:"private"`
	// Deprecated is one of warning, error, or hidden.
	Deprecated string `yaml:"deprecated"`
	Message    string `yaml:"message"`
	// CallsInPlace maps functional parameter indexes to at_most_once, exactly_once, at_least_once,
	// or unknown.
	CallsInPlace map[int]string `yaml:"calls_in_place"`
}

// ParamSpec declares a value parameter.
type ParamSpec struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default bool   `yaml:"default"`
	Vararg  bool   `yaml:"vararg"`
}

// Name returns the declared name of the callable.
func (c *CallableSpec) Name() string {
	switch {
	case c.Fun != "":
		return c.Fun
	case c.Val != "":
		return c.Val
	}
	return c.Var
}

// Parse decodes every scenario of a YAML stream.
func Parse(data []byte) ([]*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var all []*Scenario
	for {
		s := &Scenario{}
		err := dec.Decode(s)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding scenario %d: %w", len(all)+1, err)
		}
		if s.Expr == nil {
			return nil, fmt.Errorf("scenario %d (%s): no expression", len(all)+1, s.Name)
		}
		all = append(all, s)
	}
	if len(all) == 0 {
		return nil, errors.New("no scenarios")
	}
	return all, nil
}

// Load reads the scenarios of a YAML file.
func Load(path string) ([]*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios: %w", err)
	}
	return Parse(data)
}
