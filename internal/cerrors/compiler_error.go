package cerrors

import (
	"fmt"
	"strings"
)

// CompilerError renders a SyntaxError or InternalFailure with a source
// excerpt and a caret pointing at the offending column, adapted from the
// teacher's internal/errors.CompilerError. The core itself never prints;
// this exists purely so a downstream CLI collaborator has something to
// hand to a human.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Line    int
	Column  int
}

// FromSyntaxError builds a CompilerError from a SyntaxError, given the
// original source text (which this module never owns or reads itself).
func FromSyntaxError(e *SyntaxError, source string) *CompilerError {
	return &CompilerError{Message: e.Kind.String() + ": " + e.Message, Source: source, File: e.File, Line: e.Pos.Line, Column: e.Pos.Column}
}

// FromInternalFailure builds a CompilerError from an InternalFailure.
func FromInternalFailure(e *InternalFailure, source string) *CompilerError {
	return &CompilerError{Message: "internal error: " + e.Message, Source: source, File: e.File, Line: e.Pos.Line, Column: e.Pos.Column}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a source line and caret. If color is true,
// ANSI codes highlight the message and caret.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Line, e.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Line, e.Column))
	}

	if line := e.sourceLine(e.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
