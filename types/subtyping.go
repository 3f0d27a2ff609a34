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

// IsSubtype checks `a <: b` for types without unfixed variables. Variables and stubs are only
// related to themselves; error and dynamic types are related to everything.
func IsSubtype(a, b Type) bool {
	if a == b {
		return true
	}
	switch {
	case IsError(a), IsError(b), IsDynamic(a), IsDynamic(b):
		return true
	case IsNothing(a):
		return true
	}
	if n, ok := b.(*Named); ok && n.Class == AnyClass {
		return true
	}

	switch a := a.(type) {
	case *Named:
		b, ok := b.(*Named)
		if !ok {
			return false
		}
		super := FindSupertype(a, b.Class)
		if super == nil {
			return false
		}
		return argsCompatible(b.Class, super.Args, b.Args)

	case *Func:
		b, ok := b.(*Func)
		if !ok || (b.Reflective && !a.Reflective) {
			return false
		}
		ap, bp := a.AllParams(), b.AllParams()
		if len(ap) != len(bp) {
			return false
		}
		for i := range ap {
			if !IsSubtype(bp[i], ap[i]) {
				return false
			}
		}
		return IsSubtype(a.Return, b.Return)

	case *Param:
		if bp, ok := b.(*Param); ok && bp == a {
			return true
		}
		if len(a.Bounds) == 0 {
			return false
		}
		for _, bound := range a.Bounds {
			if IsSubtype(bound, b) {
				return true
			}
		}
		return false
	}
	return Equal(a, b)
}

func argsCompatible(c *Class, sub, super []Type) bool {
	if len(sub) != len(super) {
		return false
	}
	for i, p := range c.Params {
		switch p.Variance {
		case Out:
			if !IsSubtype(sub[i], super[i]) {
				return false
			}
		case In:
			if !IsSubtype(super[i], sub[i]) {
				return false
			}
		default:
			if !Equal(sub[i], super[i]) && !(IsSubtype(sub[i], super[i]) && IsSubtype(super[i], sub[i])) {
				return false
			}
		}
	}
	return true
}

// CommonSupertype returns the least common supertype of ts, as far as it can be expressed
// without intersection types. Nothing is ignored; an empty list yields Nothing.
func CommonSupertype(ts []Type) Type {
	filtered := make([]Type, 0, len(ts))
	for _, t := range ts {
		if IsNothing(t) {
			continue
		}
		dup := false
		for _, f := range filtered {
			if Equal(f, t) {
				dup = true
				break
			}
		}
		if !dup {
			filtered = append(filtered, t)
		}
	}
	switch len(filtered) {
	case 0:
		return Nothing
	case 1:
		return filtered[0]
	}
	for _, t := range filtered {
		if IsError(t) {
			return t
		}
	}

	// One of the types may already be a supertype of all others:
	for _, candidate := range filtered {
		if allSubtypesOf(filtered, candidate) {
			return candidate
		}
	}

	first, ok := filtered[0].(*Named)
	if !ok {
		return Any
	}
	var result Type = Any
	first.VisitSupertypes(func(super *Named) bool {
		args, ok := commonArgs(super.Class, filtered)
		if !ok {
			return true
		}
		result = &Named{Class: super.Class, Args: args}
		return false
	})
	return result
}

func allSubtypesOf(ts []Type, super Type) bool {
	for _, t := range ts {
		if !IsSubtype(t, super) {
			return false
		}
	}
	return true
}

// commonArgs computes type arguments for class c such that every type in ts is a subtype of c<args>.
func commonArgs(c *Class, ts []Type) ([]Type, bool) {
	supers := make([]*Named, len(ts))
	for i, t := range ts {
		n, ok := t.(*Named)
		if !ok {
			return nil, false
		}
		if supers[i] = FindSupertype(n, c); supers[i] == nil {
			return nil, false
		}
	}
	args := make([]Type, len(c.Params))
	for i, p := range c.Params {
		column := make([]Type, len(supers))
		for j, s := range supers {
			column[j] = s.Args[i]
		}
		switch p.Variance {
		case Out:
			args[i] = CommonSupertype(column)
		default:
			for _, t := range column[1:] {
				if !Equal(t, column[0]) {
					return nil, false
				}
			}
			args[i] = column[0]
		}
	}
	return args, true
}
