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

// Package diag defines candidate applicability and the diagnostics attached to candidates and calls.
package diag

import (
	"fmt"

	"github.com/wdamron/calls/ast"
)

// Applicability ranks candidates. Higher values are better.
type Applicability int

const (
	Hidden Applicability = iota
	WrongReceiver
	ArgumentMappingError
	Inapplicable
	ConventionError
	ResolvedWithError
	ResolvedLowPriority
	Resolved
)

var applicabilityNames = [...]string{
	Hidden:               "HIDDEN",
	WrongReceiver:        "INAPPLICABLE_WRONG_RECEIVER",
	ArgumentMappingError: "INAPPLICABLE_ARGUMENTS_MAPPING_ERROR",
	Inapplicable:         "INAPPLICABLE",
	ConventionError:      "CONVENTION_ERROR",
	ResolvedWithError:    "RESOLVED_WITH_ERROR",
	ResolvedLowPriority:  "RESOLVED_LOW_PRIORITY",
	Resolved:             "RESOLVED",
}

func (a Applicability) String() string {
	if a < 0 || int(a) >= len(applicabilityNames) {
		return fmt.Sprintf("Applicability(%d)", int(a))
	}
	return applicabilityNames[a]
}

// IsSuccess is true for candidates which stop the tower search.
func (a Applicability) IsSuccess() bool { return a >= ResolvedLowPriority }

// Severity of a diagnostic when it is reported.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

// Kind identifies a diagnostic.
type Kind int

const (
	DeprecationHidden Kind = iota
	DynamicExtensionOnStaticReceiver
	ReceiverTypeMismatch
	NoReceiverAllowed
	ReceiverMissing
	TooManyArguments
	NoValueForParameter
	NamedParameterNotFound
	ArgumentPassedTwice
	MixingNamedAndPositional
	NonVarargSpread
	WrongNumberOfTypeArguments
	ArgumentTypeMismatch
	TypeMismatch
	ExpectedTypeMismatch
	InfixCallNoInfixModifier
	OperatorCallNoOperatorModifier
	LowPriorityInOverloadResolution
	LambdaParameterCountMismatch
	UnresolvedCallableReference
	AmbiguousCallableReference
	InapplicableBuilderInferenceCall
	ManyLambdaExpressionArguments
	SpreadOnFunctionalArgument
	UnderscoreTypeArgumentUnsupported
	ParseError
	PreviousResolutionError
	CannotInferParameterType
	InvisibleMember
	Deprecated
	DeprecatedError
	MissingSupertype
	DslScopeViolation
	UnitCoercedReturn
	NoContextReceiver
	UnresolvedReference
	NoneApplicable
	OverloadResolutionAmbiguity
)

var kindNames = [...]string{
	DeprecationHidden:                 "DEPRECATION_HIDDEN",
	DynamicExtensionOnStaticReceiver:  "DYNAMIC_EXTENSION_ON_STATIC_RECEIVER",
	ReceiverTypeMismatch:              "RECEIVER_TYPE_MISMATCH",
	NoReceiverAllowed:                 "NO_RECEIVER_ALLOWED",
	ReceiverMissing:                   "RECEIVER_MISSING",
	TooManyArguments:                  "TOO_MANY_ARGUMENTS",
	NoValueForParameter:               "NO_VALUE_FOR_PARAMETER",
	NamedParameterNotFound:            "NAMED_PARAMETER_NOT_FOUND",
	ArgumentPassedTwice:               "ARGUMENT_PASSED_TWICE",
	MixingNamedAndPositional:          "MIXING_NAMED_AND_POSITIONED_ARGUMENTS",
	NonVarargSpread:                   "NON_VARARG_SPREAD",
	WrongNumberOfTypeArguments:        "WRONG_NUMBER_OF_TYPE_ARGUMENTS",
	ArgumentTypeMismatch:              "ARGUMENT_TYPE_MISMATCH",
	TypeMismatch:                      "TYPE_MISMATCH",
	ExpectedTypeMismatch:              "EXPECTED_TYPE_MISMATCH",
	InfixCallNoInfixModifier:          "INFIX_MODIFIER_REQUIRED",
	OperatorCallNoOperatorModifier:    "OPERATOR_MODIFIER_REQUIRED",
	LowPriorityInOverloadResolution:   "LOW_PRIORITY_IN_OVERLOAD_RESOLUTION",
	LambdaParameterCountMismatch:      "EXPECTED_PARAMETERS_NUMBER_MISMATCH",
	UnresolvedCallableReference:       "UNRESOLVED_CALLABLE_REFERENCE",
	AmbiguousCallableReference:        "CALLABLE_REFERENCE_RESOLUTION_AMBIGUITY",
	InapplicableBuilderInferenceCall:  "INAPPLICABLE_BUILDER_INFERENCE_CALL",
	ManyLambdaExpressionArguments:     "MANY_LAMBDA_EXPRESSION_ARGUMENTS",
	SpreadOnFunctionalArgument:        "SPREAD_OF_LAMBDA_OR_CALLABLE_REFERENCE",
	UnderscoreTypeArgumentUnsupported: "UNSUPPORTED_UNDERSCORE_TYPE_ARGUMENT",
	ParseError:                        "PARSE_ERROR",
	PreviousResolutionError:           "PREVIOUS_RESOLUTION_ERROR",
	CannotInferParameterType:          "CANNOT_INFER_PARAMETER_TYPE",
	InvisibleMember:                   "INVISIBLE_MEMBER",
	Deprecated:                        "DEPRECATION",
	DeprecatedError:                   "DEPRECATION_ERROR",
	MissingSupertype:                  "MISSING_DEPENDENCY_SUPERCLASS",
	DslScopeViolation:                 "DSL_SCOPE_VIOLATION",
	UnitCoercedReturn:                 "UNIT_COERCED_RETURN",
	NoContextReceiver:                 "NO_CONTEXT_RECEIVER",
	UnresolvedReference:               "UNRESOLVED_REFERENCE",
	NoneApplicable:                    "NONE_APPLICABLE",
	OverloadResolutionAmbiguity:       "OVERLOAD_RESOLUTION_AMBIGUITY",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Applicability is the best rank a candidate carrying a diagnostic of this kind can have.
func (k Kind) Applicability() Applicability {
	switch k {
	case DeprecationHidden, DynamicExtensionOnStaticReceiver:
		return Hidden
	case ReceiverTypeMismatch, NoReceiverAllowed, ReceiverMissing:
		return WrongReceiver
	case TooManyArguments, NoValueForParameter, NamedParameterNotFound, ArgumentPassedTwice,
		MixingNamedAndPositional, NonVarargSpread:
		return ArgumentMappingError
	case WrongNumberOfTypeArguments, ArgumentTypeMismatch, TypeMismatch, LambdaParameterCountMismatch,
		UnresolvedCallableReference, AmbiguousCallableReference, InapplicableBuilderInferenceCall, NoContextReceiver:
		return Inapplicable
	case InfixCallNoInfixModifier, OperatorCallNoOperatorModifier:
		return ConventionError
	case ExpectedTypeMismatch:
		return ResolvedWithError
	case LowPriorityInOverloadResolution:
		return ResolvedLowPriority
	default:
		return Resolved
	}
}

// Severity of a diagnostic of this kind.
func (k Kind) Severity() Severity {
	switch k {
	case Deprecated, UnitCoercedReturn:
		return Warning
	case LowPriorityInOverloadResolution:
		return Info
	default:
		return Error
	}
}

// Diagnostic is a resolution problem attached to a candidate, a call, or an argument.
type Diagnostic struct {
	Kind    Kind
	Node    ast.Expr
	Message string
}

// New creates a diagnostic with a formatted message.
func New(kind Kind, node ast.Expr, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: kind, Node: node, Message: fmt.Sprintf(format, args...)}
}

func (d Diagnostic) Applicability() Applicability { return d.Kind.Applicability() }

func (d Diagnostic) Severity() Severity { return d.Kind.Severity() }

func (d Diagnostic) String() string {
	if d.Message == "" {
		return d.Kind.String()
	}
	return d.Kind.String() + ": " + d.Message
}

// ResultApplicability is the lowest applicability among ds, or Resolved if ds is empty.
func ResultApplicability(ds []Diagnostic) Applicability {
	a := Resolved
	for _, d := range ds {
		if da := d.Applicability(); da < a {
			a = da
		}
	}
	return a
}

// Errors filters ds down to error-severity diagnostics.
func Errors(ds []Diagnostic) []Diagnostic {
	var errs []Diagnostic
	for _, d := range ds {
		if d.Severity() == Error {
			errs = append(errs, d)
		}
	}
	return errs
}
