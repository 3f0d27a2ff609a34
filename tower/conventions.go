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
	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/symbols"
)

// CheckConventions reports infix and operator calls of functions which lack the modifier.
// Such candidates are ranked down rather than rejected.
func CheckConventions(c symbols.Callable, infix, operator bool, node ast.Expr) []diag.Diagnostic {
	f, ok := c.(*symbols.Function)
	if !ok {
		return nil
	}
	var ds []diag.Diagnostic
	if infix && !f.Infix {
		ds = append(ds, diag.New(diag.InfixCallNoInfixModifier, node, "'%s' is not marked infix", f.Name))
	}
	if operator && !f.Operator {
		ds = append(ds, diag.New(diag.OperatorCallNoOperatorModifier, node, "'%s' is not marked operator", f.Name))
	}
	return ds
}
