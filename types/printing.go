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

package types

import (
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{}
	},
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	p.sb.Reset()
	printerPool.Put(p)
}

type typePrinter struct {
	sb strings.Builder
}

// TypeString returns a string representation of a Type.
func TypeString(t Type) string {
	p := newTypePrinter()
	typeString(p, false, t)
	s := p.sb.String()
	p.Release()
	return s
}

// TypeListString returns a comma-separated representation of ts.
func TypeListString(ts []Type) string {
	p := newTypePrinter()
	for i, t := range ts {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		typeString(p, false, t)
	}
	s := p.sb.String()
	p.Release()
	return s
}

func typeString(p *typePrinter, simple bool, t Type) {
	switch t := t.(type) {
	case nil:
		p.sb.WriteString("<nil>")

	case *Named:
		p.sb.WriteString(t.Class.Name)
		if len(t.Args) == 0 {
			return
		}
		p.sb.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, false, arg)
		}
		p.sb.WriteByte('>')

	case *Func:
		if t.Reflective {
			p.sb.WriteString("KFunction")
			p.sb.WriteString(strconv.Itoa(len(t.AllParams())))
			p.sb.WriteByte('<')
			for _, param := range t.AllParams() {
				typeString(p, false, param)
				p.sb.WriteString(", ")
			}
			typeString(p, false, t.Return)
			p.sb.WriteByte('>')
			return
		}
		if simple {
			p.sb.WriteByte('(')
		}
		if t.Receiver != nil {
			typeString(p, true, t.Receiver)
			p.sb.WriteByte('.')
		}
		p.sb.WriteByte('(')
		for i, param := range t.Params {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, false, param)
		}
		p.sb.WriteString(") -> ")
		typeString(p, false, t.Return)
		if simple {
			p.sb.WriteByte(')')
		}

	case *Param:
		p.sb.WriteString(t.Name)

	case *Var:
		p.sb.WriteString("TypeVariable(")
		p.sb.WriteString(t.Name())
		p.sb.WriteByte('#')
		p.sb.WriteString(strconv.Itoa(t.Id()))
		p.sb.WriteByte(')')

	case *Stub:
		p.sb.WriteString("Stub(")
		p.sb.WriteString(t.Var.Name())
		p.sb.WriteByte('#')
		p.sb.WriteString(strconv.Itoa(t.Var.Id()))
		p.sb.WriteByte(')')

	case *Error:
		p.sb.WriteString("[Error")
		if t.Reason != "" {
			p.sb.WriteString(": ")
			p.sb.WriteString(t.Reason)
		}
		p.sb.WriteByte(']')

	case *Dynamic:
		p.sb.WriteString("dynamic")

	case *Pending:
		p.sb.WriteString("<pending>")
	}
}
