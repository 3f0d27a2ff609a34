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

// Built-in classes. Built-in types are shared and must not be mutated after initialization.
var (
	AnyClass     = NewClass(1, "Any")
	NothingClass = NewClass(2, "Nothing")
	UnitClass    = NewClass(3, "Unit")
	BooleanClass = NewClass(4, "Boolean")
	NumberClass  = NewClass(5, "Number")
	IntClass     = NewClass(6, "Int")
	LongClass    = NewClass(7, "Long")
	DoubleClass  = NewClass(8, "Double")
	StringClass  = NewClass(9, "String")
	CharClass    = NewClass(10, "Char")

	CollectionClass  = NewClass(11, "Collection", &Param{Name: "E", Variance: Out})
	ListClass        = NewClass(12, "List", &Param{Name: "E", Variance: Out})
	MutableListClass = NewClass(13, "MutableList", &Param{Name: "E"})
	ArrayClass       = NewClass(14, "Array", &Param{Name: "T"})
	ComparableClass  = NewClass(15, "Comparable", &Param{Name: "T", Variance: In})
)

// Ids below FirstUserClassId are reserved for built-in classes.
const FirstUserClassId = 64

var (
	Any     = NewNamed(AnyClass)
	Nothing = NewNamed(NothingClass)
	Unit    = NewNamed(UnitClass)
	Boolean = NewNamed(BooleanClass)
	Number  = NewNamed(NumberClass)
	Int     = NewNamed(IntClass)
	Long    = NewNamed(LongClass)
	Double  = NewNamed(DoubleClass)
	String  = NewNamed(StringClass)
	Char    = NewNamed(CharClass)
)

func init() {
	NumberClass.AddSupertype(Any)
	for _, c := range []*Class{IntClass, LongClass, DoubleClass} {
		c.AddSupertype(Number)
		c.AddSupertype(NewNamed(ComparableClass, NewNamed(c)))
	}
	StringClass.AddSupertype(NewNamed(ComparableClass, String))
	CharClass.AddSupertype(NewNamed(ComparableClass, Char))

	ListClass.AddSupertype(NewNamed(CollectionClass, ListClass.Params[0]))
	MutableListClass.AddSupertype(NewNamed(ListClass, MutableListClass.Params[0]))
}

// ListOf returns `List<elem>`.
func ListOf(elem Type) *Named { return NewNamed(ListClass, elem) }

// MutableListOf returns `MutableList<elem>`.
func MutableListOf(elem Type) *Named { return NewNamed(MutableListClass, elem) }

// ArrayOf returns `Array<elem>`.
func ArrayOf(elem Type) *Named { return NewNamed(ArrayClass, elem) }

// Builtins returns the built-in classes in declaration order.
func Builtins() []*Class {
	return []*Class{
		AnyClass, NothingClass, UnitClass, BooleanClass, NumberClass, IntClass, LongClass,
		DoubleClass, StringClass, CharClass, CollectionClass, ListClass, MutableListClass,
		ArrayClass, ComparableClass,
	}
}
