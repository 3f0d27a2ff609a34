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
	"strings"
	"unicode"

	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/types"
)

// ParseType parses a written type:
//
//	Int
//	List<T>
//	(Int, String) -> Int
//	MutableList<E>.() -> Unit
//	_
func ParseType(src string) (*ast.TypeRef, error) {
	p, err := newTypeParser(src)
	if err != nil {
		return nil, err
	}
	ref, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, p.errorf("unexpected %q", p.peek())
	}
	return ref, nil
}

// TypeParamDecl is a parsed type parameter declaration: `out T : Comparable<T>`
type TypeParamDecl struct {
	Name     string
	Variance types.Variance
	Bound    *ast.TypeRef
	Reified  bool
}

// ParseTypeParam parses a type parameter declaration with an optional variance, an optional
// `reified` modifier, and an optional upper bound.
func ParseTypeParam(src string) (TypeParamDecl, error) {
	var d TypeParamDecl
	p, err := newTypeParser(src)
	if err != nil {
		return d, err
	}
modifiers:
	for {
		switch p.peek() {
		case "in":
			d.Variance = types.In
		case "out":
			d.Variance = types.Out
		case "reified":
			d.Reified = true
		default:
			break modifiers
		}
		p.next()
	}
	d.Name = p.next()
	if !isIdent(d.Name) {
		return d, p.errorf("type parameter name expected")
	}
	if p.peek() == ":" {
		p.next()
		if d.Bound, err = p.parseType(); err != nil {
			return d, err
		}
	}
	if !p.done() {
		return d, p.errorf("unexpected %q", p.peek())
	}
	return d, nil
}

type typeParser struct {
	src  string
	toks []string
	pos  int
}

func newTypeParser(src string) (*typeParser, error) {
	p := &typeParser{src: src}
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '-' && i+1 < len(rs) && rs[i+1] == '>':
			p.toks = append(p.toks, "->")
			i += 2
		case strings.ContainsRune("<>(),.:", r):
			p.toks = append(p.toks, string(r))
			i++
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			j := i
			for j < len(rs) && (rs[j] == '_' || unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j])) {
				j++
			}
			p.toks = append(p.toks, string(rs[i:j]))
			i = j
		default:
			return nil, fmt.Errorf("type %q: unexpected character %q", src, r)
		}
	}
	if len(p.toks) == 0 {
		return nil, fmt.Errorf("empty type")
	}
	return p, nil
}

func (p *typeParser) done() bool { return p.pos >= len(p.toks) }

func (p *typeParser) peek() string {
	if p.done() {
		return ""
	}
	return p.toks[p.pos]
}

func (p *typeParser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *typeParser) expect(tok string) error {
	if got := p.next(); got != tok {
		return p.errorf("expected %q, found %q", tok, got)
	}
	return nil
}

func (p *typeParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("type %q: %s", p.src, fmt.Sprintf(format, args...))
}

func isIdent(tok string) bool {
	if tok == "" {
		return false
	}
	r := []rune(tok)[0]
	return r == '_' || unicode.IsLetter(r)
}

func (p *typeParser) parseType() (*ast.TypeRef, error) {
	if p.peek() == "(" {
		return p.parseFunc(nil)
	}
	named, err := p.parseNamed()
	if err != nil {
		return nil, err
	}
	if p.peek() == "." {
		p.next()
		return p.parseFunc(named)
	}
	return named, nil
}

func (p *typeParser) parseNamed() (*ast.TypeRef, error) {
	name := p.next()
	if !isIdent(name) {
		return nil, p.errorf("type name expected, found %q", name)
	}
	if name == "_" {
		return &ast.TypeRef{Name: name, Underscore: true}, nil
	}
	ref := &ast.TypeRef{Name: name}
	if p.peek() != "<" {
		return ref, nil
	}
	p.next()
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ref.Args = append(ref.Args, arg)
		if p.peek() != "," {
			break
		}
		p.next()
	}
	return ref, p.expect(">")
}

// parseFunc parses a parenthesized parameter list and a return type. A single parenthesized
// type without an arrow is a grouping.
func (p *typeParser) parseFunc(receiver *ast.TypeRef) (*ast.TypeRef, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var params []*ast.TypeRef
	for p.peek() != ")" {
		param, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.peek() != "," {
			break
		}
		p.next()
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if p.peek() != "->" {
		if receiver == nil && len(params) == 1 {
			return params[0], nil
		}
		return nil, p.errorf("expected \"->\"")
	}
	p.next()
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.TypeRef{IsFunc: true, Receiver: receiver, Params: params, Return: ret}, nil
}
