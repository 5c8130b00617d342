package cerrors

import (
	"fmt"

	"github.com/coldfront-lang/corefront/internal/ast"
)

// SyntaxErrorKind enumerates the user-facing failure modes named across
// §4.4/§4.5/§7 of the specification.
type SyntaxErrorKind uint8

const (
	IncomparableOperands SyntaxErrorKind = iota
	RecordMissingField
	ArityMismatch
	UnknownName
	BreakOutsideLoop
	DuplicateCaseLabel
	DefaultNotLast
	InvalidLval
	SubtypeViolation
	InvalidBooleanExpression
)

var syntaxErrorKindNames = [...]string{
	"IncomparableOperands",
	"RecordMissingField",
	"ArityMismatch",
	"UnknownName",
	"BreakOutsideLoop",
	"DuplicateCaseLabel",
	"DefaultNotLast",
	"InvalidLval",
	"SubtypeViolation",
	"InvalidBooleanExpression",
}

func (k SyntaxErrorKind) String() string {
	if int(k) < len(syntaxErrorKindNames) {
		return syntaxErrorKindNames[k]
	}
	return "Unknown"
}

// SyntaxError is raised for every language-level mistake: an unresolvable
// name, a break outside a loop, incomparable operands, a duplicate case
// label, an invalid lval, a subtype violation, and so on (§7).
type SyntaxError struct {
	Message string
	Pos     ast.Position
	File    string
	Kind    SyntaxErrorKind
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos.String(), e.Kind, e.Message)
}

// InternalFailure indicates a compiler bug — a default branch of a
// kind-dispatch switch was reached, or some other invariant the core itself
// is responsible for maintaining was violated. Distinguished from
// SyntaxError so callers can tell "bad input" from "bug in us" apart (§7).
type InternalFailure struct {
	Message string
	Pos     ast.Position
	File    string
}

func (e *InternalFailure) Error() string {
	return fmt.Sprintf("internal error at %s: %s", e.Pos.String(), e.Message)
}

// NewSyntaxError is a small constructor convenience mirroring the common
// call shape across the resolver/codegen/runtimeassert packages.
func NewSyntaxError(kind SyntaxErrorKind, pos ast.Position, file, message string) *SyntaxError {
	return &SyntaxError{Message: message, Pos: pos, File: file, Kind: kind}
}

// NewInternalFailure is the equivalent convenience for InternalFailure.
func NewInternalFailure(pos ast.Position, file, message string) *InternalFailure {
	return &InternalFailure{Message: message, Pos: pos, File: file}
}
