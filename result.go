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
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/types"
)

// Result of resolving a call. The set is closed: *Success, *NoneFound, *ManyCandidates, and
// *AllCandidates.
type Result interface {
	result()
}

func (*Success) result()        {}
func (*NoneFound) result()      {}
func (*ManyCandidates) result() {}
func (*AllCandidates) result()  {}

// Success holds the selected candidate. Call is nil when completion is deferred: for sub-calls
// resolved in dependent mode and for partial calls of an inference session.
type Success struct {
	Candidate *Candidate
	Call      *ResolvedCall
}

// NoneFound is returned when no level yielded a candidate. Hidden is set when every
// enumerated callable was hidden; hidden callables count as absent, so the result is still
// classified as NoneApplicable.
type NoneFound struct {
	Call   *Call
	Hidden bool
}

// ManyCandidates holds the candidates of a failed resolution: ambiguous applicable candidates,
// or the best inapplicable ones.
type ManyCandidates struct {
	Call       *Call
	Candidates []*Candidate
	Kind       ErrorKind
}

// AllCandidates holds every non-hidden candidate, for diagnostics.
type AllCandidates struct {
	Call       *Call
	Candidates []*Candidate
}

// ErrorKind classifies failed resolutions.
type ErrorKind int

const (
	NoError ErrorKind = iota
	NoneApplicable
	Ambiguous
	WrongReceiver
	Hidden
	InapplicableBuilderInferenceCall
	ParseError
	PreviousResolutionError
)

var errorKindNames = [...]string{
	"NO_ERROR", "NONE_APPLICABLE", "AMBIGUOUS", "WRONG_RECEIVER", "HIDDEN",
	"INAPPLICABLE_BUILDER_INFERENCE_CALL", "PARSE_ERROR", "PREVIOUS_RESOLUTION_ERROR",
}

func (k ErrorKind) String() string { return errorKindNames[k] }

// Classify maps a result to the kind of its failure, or NoError.
func Classify(result Result) ErrorKind {
	switch r := result.(type) {
	case *Success:
		for _, d := range r.Candidate.Diagnostics {
			if d.Kind == diag.InapplicableBuilderInferenceCall {
				return InapplicableBuilderInferenceCall
			}
		}
		if r.Call != nil {
			for _, d := range r.Call.Diagnostics {
				if d.Kind == diag.InapplicableBuilderInferenceCall {
					return InapplicableBuilderInferenceCall
				}
			}
		}
		return NoError
	case *NoneFound:
		if k := argumentErrorKind(r.Call); k != NoError {
			return k
		}
		return NoneApplicable
	case *ManyCandidates:
		if k := argumentErrorKind(r.Call); k != NoError && r.Kind != Ambiguous {
			return k
		}
		return r.Kind
	case *AllCandidates:
		for _, c := range r.Candidates {
			if c.Applicability().IsSuccess() {
				return NoError
			}
		}
		return NoneApplicable
	}
	panic("calls: unexpected result type")
}

// argumentErrorKind attributes a failure to a malformed or previously failed argument.
func argumentErrorKind(call *Call) ErrorKind {
	if call == nil {
		return NoError
	}
	kind := NoError
	for _, arg := range call.AllArgs() {
		switch arg := arg.(type) {
		case *ParseErrorArgument:
			return ParseError
		case *ExpressionArgument:
			if arg.PreviousError {
				kind = PreviousResolutionError
			}
		}
	}
	return kind
}

func failureKind(a diag.Applicability) ErrorKind {
	switch a {
	case diag.Hidden:
		return Hidden
	case diag.WrongReceiver:
		return WrongReceiver
	}
	return NoneApplicable
}

// ResultType returns the type of the expression a result was resolved for. Calls whose
// completion is deferred have the uncompleted return type of their candidate, which may mention
// variables and stubs of the enclosing call. Failed results have an error type.
func ResultType(result Result) types.Type {
	s, ok := result.(*Success)
	switch {
	case !ok:
		return types.NewError("unresolved call")
	case s.Call != nil:
		return s.Call.ReturnType
	}
	return s.Candidate.ReturnType
}
