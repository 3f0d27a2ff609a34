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

package calls

import (
	"github.com/wdamron/calls/internal/typeutil"
	"github.com/wdamron/calls/types"
)

// PostponedArgument is an argument whose analysis waits for the types of its inputs. The set is
// closed: *PostponedLambda and *PostponedCallableReference.
type PostponedArgument interface {
	// Inputs are the types which must be known before the argument is analyzed.
	Inputs() []types.Type
	// Outputs are the types the analysis contributes to.
	Outputs() []types.Type
	Analyzed() bool
	postponedArgument()
}

func (*PostponedLambda) postponedArgument()            {}
func (*PostponedCallableReference) postponedArgument() {}

// PostponedLambda is a lambda argument with its expected functional type.
type PostponedLambda struct {
	Arg      *LambdaArgument
	Expected *types.Func
	Receiver types.Type
	// Params are the expected parameter types, with declared types taking precedence.
	Params   []types.Type
	Return   types.Type
	Position typeutil.Position

	analyzed bool
	// Result of the analysis of the body.
	ReturnTypes   []types.Type
	CoercedToUnit bool
	// Builder is the session the body was analyzed with, if stubs were used.
	Builder *BuilderSession
}

func (l *PostponedLambda) Inputs() []types.Type {
	var ts []types.Type
	if l.Receiver != nil {
		ts = append(ts, l.Receiver)
	}
	return append(ts, l.Params...)
}

func (l *PostponedLambda) Outputs() []types.Type { return []types.Type{l.Return} }

func (l *PostponedLambda) Analyzed() bool { return l.analyzed }

// PostponedCallableReference is a callable reference with more than one candidate fitting its
// expected type. It is resolved once the expected parameter types are known.
type PostponedCallableReference struct {
	Arg        *CallableReferenceArgument
	Expected   types.Type
	Candidates []*Candidate
	Position   typeutil.Position

	analyzed bool
	// Chosen is the selected reference candidate, or nil if none could be selected.
	Chosen *Candidate
	// Type is the (possibly adapted) functional type of the chosen candidate.
	Type    types.Type
	Adapted bool
}

func (r *PostponedCallableReference) Inputs() []types.Type {
	if fn, ok := r.Expected.(*types.Func); ok {
		return fn.AllParams()
	}
	return nil
}

func (r *PostponedCallableReference) Outputs() []types.Type {
	if fn, ok := r.Expected.(*types.Func); ok {
		return []types.Type{fn.Return}
	}
	return []types.Type{r.Expected}
}

func (r *PostponedCallableReference) Analyzed() bool { return r.analyzed }
