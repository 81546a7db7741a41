package rules

import (
	"fmt"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
)

// ruleBase classifies every rule violation as a syntax error.
type ruleBase struct {
	diagnostics.At
}

func (ruleBase) Type() diagnostics.ErrorType    { return diagnostics.ErrorTypeSyntax }
func (ruleBase) Severity() diagnostics.Severity { return diagnostics.SeverityError }

func at(n ast.Node) ruleBase { return ruleBase{At: diagnostics.AtNode(n)} }

// BracesAroundIfElseError: Branch is "if" or "else".
type BracesAroundIfElseError struct {
	ruleBase
	Branch string
}

func (e *BracesAroundIfElseError) Error() string { return diagnostics.Message(e) }
func (e *BracesAroundIfElseError) Explain() string {
	return fmt.Sprintf("Missing curly braces around %q block.", e.Branch)
}
func (e *BracesAroundIfElseError) Elaborate() string {
	return "Wrap the statements of the branch in { and }, even when there is only one."
}

type BracesAroundWhileError struct{ ruleBase }

func (e *BracesAroundWhileError) Error() string   { return diagnostics.Message(e) }
func (e *BracesAroundWhileError) Explain() string { return `Missing curly braces around "while" block.` }
func (e *BracesAroundWhileError) Elaborate() string {
	return "Remember to enclose your while loop body with braces: while (test) { ... }"
}

type BracesAroundForError struct{ ruleBase }

func (e *BracesAroundForError) Error() string   { return diagnostics.Message(e) }
func (e *BracesAroundForError) Explain() string { return `Missing curly braces around "for" block.` }
func (e *BracesAroundForError) Elaborate() string {
	return "Remember to enclose your for loop body with braces: for (init; test; update) { ... }"
}

type StrictEqualityError struct {
	ruleBase
	Operator string
}

func (e *StrictEqualityError) Error() string { return diagnostics.Message(e) }
func (e *StrictEqualityError) Explain() string {
	if e.Operator == "==" {
		return "Use === instead of ==."
	}
	return "Use !== instead of !=."
}
func (e *StrictEqualityError) Elaborate() string {
	return "Only === and !== compare values here; == and != convert their operands first."
}

type MultipleDeclarationsError struct {
	ruleBase
	Names []string
}

func (e *MultipleDeclarationsError) Error() string { return diagnostics.Message(e) }
func (e *MultipleDeclarationsError) Explain() string {
	return "Multiple declarations in a single statement."
}
func (e *MultipleDeclarationsError) Elaborate() string {
	return fmt.Sprintf("Split the declarations of %v into one statement each.", e.Names)
}

type NoImplicitDeclareUndefinedError struct {
	ruleBase
	Name string
}

func (e *NoImplicitDeclareUndefinedError) Error() string { return diagnostics.Message(e) }
func (e *NoImplicitDeclareUndefinedError) Explain() string {
	return "Missing value in variable declaration."
}
func (e *NoImplicitDeclareUndefinedError) Elaborate() string {
	return fmt.Sprintf("A variable declaration assigns a value to a name. For instance, to assign 20 to %s, you can write:\n\n  let %s = 20;", e.Name, e.Name)
}

type NoImplicitReturnUndefinedError struct{ ruleBase }

func (e *NoImplicitReturnUndefinedError) Error() string   { return diagnostics.Message(e) }
func (e *NoImplicitReturnUndefinedError) Explain() string { return "Missing value in return statement." }
func (e *NoImplicitReturnUndefinedError) Elaborate() string {
	return "This return statement is missing a value. For instance, to return the value 42, you can write\n\n  return 42;"
}

type NoNonEmptyListError struct{ ruleBase }

func (e *NoNonEmptyListError) Error() string   { return diagnostics.Message(e) }
func (e *NoNonEmptyListError) Explain() string { return "Only empty list notation ([]) is allowed." }
func (e *NoNonEmptyListError) Elaborate() string {
	return "Build lists with pair or list instead of array literals."
}

type NoDeclareReservedError struct {
	ruleBase
	Name string
}

func (e *NoDeclareReservedError) Error() string { return diagnostics.Message(e) }
func (e *NoDeclareReservedError) Explain() string {
	return fmt.Sprintf("Reserved word '%s' is not allowed as a name.", e.Name)
}
func (e *NoDeclareReservedError) Elaborate() string {
	return fmt.Sprintf("%s is a reserved word in JavaScript. Choose a different name.", e.Name)
}

type NoDeclareMutableError struct {
	ruleBase
	Kind ast.DeclarationKind
}

func (e *NoDeclareMutableError) Error() string { return diagnostics.Message(e) }
func (e *NoDeclareMutableError) Explain() string {
	return fmt.Sprintf("Mutable variable declaration using keyword '%s' is not allowed.", e.Kind)
}
func (e *NoDeclareMutableError) Elaborate() string {
	return "Use const to declare names; their values cannot change."
}

type NoIfWithoutElseError struct{ ruleBase }

func (e *NoIfWithoutElseError) Error() string   { return diagnostics.Message(e) }
func (e *NoIfWithoutElseError) Explain() string { return `Missing "else" in "if-else" statement.` }
func (e *NoIfWithoutElseError) Elaborate() string {
	return "This \"if\" block requires a corresponding \"else\" block which will be evaluated when the condition is false."
}

type NoUnspecifiedOperatorError struct {
	ruleBase
	Operator string
}

func (e *NoUnspecifiedOperatorError) Error() string { return diagnostics.Message(e) }
func (e *NoUnspecifiedOperatorError) Explain() string {
	return fmt.Sprintf("Operator '%s' is not allowed.", e.Operator)
}
func (e *NoUnspecifiedOperatorError) Elaborate() string { return "" }
