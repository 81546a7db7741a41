// Package diagnostics defines the error model shared by the parser, the rule
// engine and the interpreter.
package diagnostics

import (
	"fmt"
	"strings"

	"slang/interpreter-go/pkg/ast"
)

type ErrorType int

const (
	ErrorTypeSyntax ErrorType = iota
	ErrorTypeType
	ErrorTypeRuntime
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeSyntax:
		return "Syntax"
	case ErrorTypeType:
		return "Type"
	case ErrorTypeRuntime:
		return "Runtime"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(t))
	}
}

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "Warning"
	}
	return "Error"
}

// SourceError is a diagnostic tied to a place in the program text. Explain is
// the one-line message shown to students; Elaborate adds remediation text.
type SourceError interface {
	error
	Type() ErrorType
	Severity() Severity
	Location() ast.Location
	Explain() string
	Elaborate() string
}

// At carries the location shared by every diagnostic. Embed it.
type At struct {
	Loc ast.Location
}

func (a At) Location() ast.Location { return a.Loc }

// AtNode locates a diagnostic on a node, tolerating nil.
func AtNode(n ast.Node) At {
	if n == nil {
		return At{}
	}
	return At{Loc: n.Loc()}
}

// Message renders a diagnostic as "Line N: explanation".
func Message(e SourceError) string {
	loc := e.Location()
	if !loc.Valid() {
		return e.Explain()
	}
	return fmt.Sprintf("Line %d: %s", loc.Start.Line, e.Explain())
}

// Format renders each diagnostic on its own line in discovery order.
func Format(errs []SourceError) string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, Message(e))
	}
	return strings.Join(lines, "\n")
}

// HasErrors reports whether any diagnostic has ERROR severity.
func HasErrors(errs []SourceError) bool {
	for _, e := range errs {
		if e.Severity() == SeverityError {
			return true
		}
	}
	return false
}
