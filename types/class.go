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
	set "github.com/hashicorp/go-set/v2"
)

// Class is a nominal type constructor: `class MutableList<E> : List<E>`
type Class struct {
	// Id should be unique
	Id int
	// Name should be unique
	Name   string
	Params []*Param
	// Supertypes are expressed in terms of the class's own type parameters.
	Supertypes []*Named
	// Object is true for singleton classes, whose qualifier also denotes a value.
	Object bool
	// DslMarker names the DSL-marker annotation applied to the class, if any.
	DslMarker string
}

// Create a new class with the given type parameters.
func NewClass(id int, name string, params ...*Param) *Class {
	return &Class{Id: id, Name: name, Params: params}
}

// Add a supertype to the class. Arguments of the supertype may reference the class's type parameters.
func (c *Class) AddSupertype(super *Named) *Class {
	for _, existing := range c.Supertypes {
		if existing.Class == super.Class {
			return c
		}
	}
	c.Supertypes = append(c.Supertypes, super)
	return c
}

// Self returns the class applied to its own type parameters.
func (c *Class) Self() *Named {
	args := make([]Type, len(c.Params))
	for i, p := range c.Params {
		args[i] = p
	}
	return &Named{Class: c, Args: args}
}

// Check if a class is declared as a (transitive) subclass of another class.
func (c *Class) HasSuperClass(super *Class) bool {
	seen := set.New[int](8)
	return c.hasSuperClass(seen, super.Id)
}

func (c *Class) hasSuperClass(seen *set.Set[int], id int) bool {
	seen.Insert(c.Id)
	for _, super := range c.Supertypes {
		switch {
		case seen.Contains(super.Class.Id):
			continue
		case super.Class.Id == id, super.Class.hasSuperClass(seen, id):
			return true
		}
	}
	return false
}

// VisitSupertypes visits every supertype of t in breadth-first order, starting with t itself.
// Type arguments are substituted along the way. If visit returns false, the traversal stops.
func (t *Named) VisitSupertypes(visit func(*Named) bool) {
	seen := set.New[int](8)
	queue := []*Named{t}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if !seen.Insert(n.Class.Id) {
			continue
		}
		if !visit(n) {
			return
		}
		subst := n.classSubstitution()
		for _, super := range n.Class.Supertypes {
			queue = append(queue, SubstituteParams(super, subst).(*Named))
		}
	}
	if !seen.Contains(AnyClass.Id) {
		visit(Any)
	}
}

func (t *Named) classSubstitution() map[*Param]Type {
	if len(t.Class.Params) == 0 {
		return nil
	}
	m := make(map[*Param]Type, len(t.Class.Params))
	for i, p := range t.Class.Params {
		if i < len(t.Args) {
			m[p] = t.Args[i]
		}
	}
	return m
}

// FindSupertype returns the supertype of t whose class is c, with substituted type arguments.
func FindSupertype(t *Named, c *Class) *Named {
	var found *Named
	t.VisitSupertypes(func(n *Named) bool {
		if n.Class == c {
			found = n
			return false
		}
		return true
	})
	return found
}
