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

// Replace rebuilds t top-down. When f returns ok, the returned type replaces the visited type
// and its components are not visited. Unchanged components are shared with t.
func Replace(t Type, f func(Type) (Type, bool)) Type {
	if t == nil {
		return nil
	}
	if r, ok := f(t); ok {
		return r
	}
	switch t := t.(type) {
	case *Named:
		var args []Type
		for i, arg := range t.Args {
			r := Replace(arg, f)
			if r != arg && args == nil {
				args = make([]Type, len(t.Args))
				copy(args, t.Args[:i])
			}
			if args != nil {
				args[i] = r
			}
		}
		if args == nil {
			return t
		}
		return &Named{Class: t.Class, Args: args}

	case *Func:
		changed := false
		recv := Replace(t.Receiver, f)
		changed = recv != t.Receiver
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = Replace(p, f)
			changed = changed || params[i] != p
		}
		ret := Replace(t.Return, f)
		changed = changed || ret != t.Return
		if !changed {
			return t
		}
		return &Func{Receiver: recv, Params: params, Return: ret, Reflective: t.Reflective}
	}
	return t
}

// SubstituteParams replaces declared type parameters according to m.
func SubstituteParams(t Type, m map[*Param]Type) Type {
	if len(m) == 0 {
		return t
	}
	return Replace(t, func(t Type) (Type, bool) {
		if p, ok := t.(*Param); ok {
			if r, ok := m[p]; ok {
				return r, true
			}
		}
		return nil, false
	})
}

// Contains returns true if pred holds for t or any of its components.
func Contains(t Type, pred func(Type) bool) bool {
	if t == nil {
		return false
	}
	if pred(t) {
		return true
	}
	switch t := t.(type) {
	case *Named:
		for _, arg := range t.Args {
			if Contains(arg, pred) {
				return true
			}
		}
	case *Func:
		if Contains(t.Receiver, pred) || Contains(t.Return, pred) {
			return true
		}
		for _, p := range t.Params {
			if Contains(p, pred) {
				return true
			}
		}
	}
	return false
}

// HasVars returns true if t mentions any type variable.
func HasVars(t Type) bool {
	return Contains(t, func(t Type) bool {
		_, ok := t.(*Var)
		return ok
	})
}

// HasStubs returns true if t mentions any builder-inference stub.
func HasStubs(t Type) bool {
	return Contains(t, func(t Type) bool {
		_, ok := t.(*Stub)
		return ok
	})
}

// CollectVars appends every distinct type variable mentioned by t, in order of appearance.
func CollectVars(t Type, vars []*Var) []*Var {
	Contains(t, func(t Type) bool {
		v, ok := t.(*Var)
		if !ok {
			return false
		}
		for _, existing := range vars {
			if existing == v {
				return false
			}
		}
		vars = append(vars, v)
		return false
	})
	return vars
}

// Equal reports structural equality. Variables, stubs, and parameters are compared by identity.
func Equal(a, b Type) bool {
	if a == b {
		return true
	}
	switch a := a.(type) {
	case *Named:
		b, ok := b.(*Named)
		if !ok || a.Class != b.Class || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case *Func:
		b, ok := b.(*Func)
		if !ok || a.Reflective != b.Reflective || len(a.Params) != len(b.Params) {
			return false
		}
		if (a.Receiver == nil) != (b.Receiver == nil) || (a.Receiver != nil && !Equal(a.Receiver, b.Receiver)) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equal(a.Return, b.Return)
	case *Stub:
		b, ok := b.(*Stub)
		return ok && a.Var == b.Var
	case *Error:
		_, ok := b.(*Error)
		return ok
	case *Dynamic:
		_, ok := b.(*Dynamic)
		return ok
	}
	return false
}
