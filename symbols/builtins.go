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

package symbols

import (
	"github.com/wdamron/calls/types"
)

func declareBuiltinMembers(t *Table) {
	for _, c := range []*types.Class{types.IntClass, types.LongClass, types.DoubleClass} {
		self := types.NewNamed(c)
		for _, op := range []string{"plus", "minus", "times", "div", "rem"} {
			t.AddMembers(c, &Function{
				Common:   Common{Name: op},
				Params:   []*Parameter{{Name: "other", Type: self}},
				Return:   self,
				Operator: true,
			})
		}
		t.AddMembers(c, &Function{
			Common:   Common{Name: "compareTo"},
			Params:   []*Parameter{{Name: "other", Type: self}},
			Return:   types.Int,
			Operator: true,
		})
	}
	t.AddMembers(types.IntClass, &Function{
		Common: Common{Name: "toString"},
		Return: types.String,
	})

	t.AddMembers(types.StringClass,
		&Function{
			Common:   Common{Name: "plus"},
			Params:   []*Parameter{{Name: "other", Type: types.Any}},
			Return:   types.String,
			Operator: true,
		},
		&Variable{Common: Common{Name: "length"}, Type: types.Int},
	)

	t.AddMembers(types.CollectionClass,
		&Variable{Common: Common{Name: "size"}, Type: types.Int},
		&Function{Common: Common{Name: "isEmpty"}, Return: types.Boolean},
	)

	e := types.ListClass.Params[0]
	t.AddMembers(types.ListClass, &Function{
		Common:   Common{Name: "get"},
		Params:   []*Parameter{{Name: "index", Type: types.Int}},
		Return:   e,
		Operator: true,
	})

	e = types.MutableListClass.Params[0]
	t.AddMembers(types.MutableListClass,
		&Function{
			Common: Common{Name: "add"},
			Params: []*Parameter{{Name: "element", Type: e}},
			Return: types.Boolean,
		},
		&Function{
			Common:   Common{Name: "set"},
			Params:   []*Parameter{{Name: "index", Type: types.Int}, {Name: "element", Type: e}},
			Return:   e,
			Operator: true,
		},
	)

	t.AddMembers(types.ArrayClass, &Function{
		Common:   Common{Name: "get"},
		Params:   []*Parameter{{Name: "index", Type: types.Int}},
		Return:   types.ArrayClass.Params[0],
		Operator: true,
	})
}
