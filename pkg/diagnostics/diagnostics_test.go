package diagnostics

import (
	"testing"

	"slang/interpreter-go/pkg/ast"
)

func loc(line int) ast.Location {
	return ast.Location{Start: ast.Position{Line: line}, End: ast.Position{Line: line, Column: 4}}
}

func TestFormatPrefixesLines(t *testing.T) {
	errs := []SourceError{
		&MissingSemicolonError{At: At{Loc: loc(2)}},
		&TrailingCommaError{At: At{Loc: loc(5)}},
	}
	want := "Line 2: Missing semicolon at the end of statement\nLine 5: Trailing comma"
	if got := Format(errs); got != want {
		t.Fatalf("unexpected format:\n%s", got)
	}
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	warn := []SourceError{&TrailingCommaError{At: At{Loc: loc(1)}}}
	if HasErrors(warn) {
		t.Fatalf("warnings must not count as errors")
	}
	mixed := append(warn, &FatalSyntaxError{At: At{Loc: loc(1)}, Message: "boom"})
	if !HasErrors(mixed) {
		t.Fatalf("expected fatal syntax error to count")
	}
}

func TestMessageWithoutLocation(t *testing.T) {
	e := &FatalSyntaxError{Message: "SyntaxError: Unexpected end of input"}
	if got := e.Error(); got != "SyntaxError: Unexpected end of input" {
		t.Fatalf("unexpected message %q", got)
	}
	if e.Type().String() != "Syntax" || e.Severity().String() != "Error" {
		t.Fatalf("unexpected classification %s/%s", e.Type(), e.Severity())
	}
}
