package interpreter

import (
	"fmt"
	"strings"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/runtime"
)

// runtimeBase classifies fatal faults; embed it.
type runtimeBase struct {
	diagnostics.At
}

func (runtimeBase) Type() diagnostics.ErrorType    { return diagnostics.ErrorTypeRuntime }
func (runtimeBase) Severity() diagnostics.Severity { return diagnostics.SeverityError }
func (runtimeBase) Elaborate() string              { return "" }

func at(n ast.Node) runtimeBase { return runtimeBase{At: diagnostics.AtNode(n)} }

type UndefinedVariable struct {
	runtimeBase
	Name string
}

func (e *UndefinedVariable) Error() string   { return diagnostics.Message(e) }
func (e *UndefinedVariable) Explain() string { return fmt.Sprintf("Name %s not declared.", e.Name) }
func (e *UndefinedVariable) Elaborate() string {
	return fmt.Sprintf("Before you can read the value of %s, you need to declare it as a constant or a variable.", e.Name)
}

type InvalidNumberOfArguments struct {
	runtimeBase
	Callee   string
	Expected int
	Got      int
}

func (e *InvalidNumberOfArguments) Error() string { return diagnostics.Message(e) }
func (e *InvalidNumberOfArguments) Explain() string {
	return fmt.Sprintf("Expected %d arguments, but got %d.", e.Expected, e.Got)
}
func (e *InvalidNumberOfArguments) Elaborate() string {
	name := e.Callee
	if name == "" {
		name = "the function"
	}
	return fmt.Sprintf("Try calling %s again, but with %d arguments instead.", name, e.Expected)
}

type CallingNonFunctionValue struct {
	runtimeBase
	Callee runtime.Value
}

func (e *CallingNonFunctionValue) Error() string { return diagnostics.Message(e) }
func (e *CallingNonFunctionValue) Explain() string {
	return fmt.Sprintf("Calling non-function value %s.", runtime.Stringify(e.Callee))
}
func (e *CallingNonFunctionValue) Elaborate() string {
	return fmt.Sprintf("Because %s is not a function, you cannot run %s(...).", runtime.Stringify(e.Callee), runtime.Stringify(e.Callee))
}

// ExceptionError carries a failure raised by a host function.
type ExceptionError struct {
	runtimeBase
	Message string
}

func (e *ExceptionError) Error() string   { return diagnostics.Message(e) }
func (e *ExceptionError) Explain() string { return e.Message }

type MaximumStackLimitExceeded struct {
	runtimeBase
	Calls []string
}

func (e *MaximumStackLimitExceeded) Error() string { return diagnostics.Message(e) }
func (e *MaximumStackLimitExceeded) Explain() string {
	if len(e.Calls) == 0 {
		return "Maximum call stack size exceeded"
	}
	return "Maximum call stack size exceeded\n  " + strings.Join(e.Calls, "..  ") + ".."
}
func (e *MaximumStackLimitExceeded) Elaborate() string {
	return "Check that every recursive call brings the computation closer to its base case."
}

type InterruptedError struct {
	runtimeBase
}

func (e *InterruptedError) Error() string   { return diagnostics.Message(e) }
func (e *InterruptedError) Explain() string { return "Execution aborted by user." }

type VariableRedeclaration struct {
	runtimeBase
	Name string
}

func (e *VariableRedeclaration) Error() string { return diagnostics.Message(e) }
func (e *VariableRedeclaration) Explain() string {
	return fmt.Sprintf("Redeclaring name %s.", e.Name)
}

type ConstAssignment struct {
	runtimeBase
	Name string
}

func (e *ConstAssignment) Error() string { return diagnostics.Message(e) }
func (e *ConstAssignment) Explain() string {
	return fmt.Sprintf("Cannot assign new value to constant %s.", e.Name)
}
func (e *ConstAssignment) Elaborate() string {
	return fmt.Sprintf("As %s was declared as a constant, its value cannot be changed. You will have to declare a new variable.", e.Name)
}

type GetPropertyError struct {
	runtimeBase
	Target   runtime.Value
	Property string
}

func (e *GetPropertyError) Error() string { return diagnostics.Message(e) }
func (e *GetPropertyError) Explain() string {
	return fmt.Sprintf("Cannot read property %s of %s.", e.Property, runtime.Stringify(e.Target))
}

type SetPropertyError struct {
	runtimeBase
	Target   runtime.Value
	Property string
}

func (e *SetPropertyError) Error() string { return diagnostics.Message(e) }
func (e *SetPropertyError) Explain() string {
	return fmt.Sprintf("Cannot assign property %s of %s.", e.Property, runtime.Stringify(e.Target))
}

// ArrayLengthExceeded reports an index assignment that would grow an array
// past the session's limit.
type ArrayLengthExceeded struct {
	runtimeBase
	Index int
	Limit int
}

func (e *ArrayLengthExceeded) Error() string { return diagnostics.Message(e) }
func (e *ArrayLengthExceeded) Explain() string {
	return fmt.Sprintf("Array index %d is past the maximum array length of %d.", e.Index, e.Limit)
}
func (e *ArrayLengthExceeded) Elaborate() string {
	return "Arrays grow one assignment at a time; keep indices below the limit."
}

// TypeError is a recoverable operand mismatch. Evaluation records it and
// continues with undefined.
type TypeError struct {
	diagnostics.At
	Context  string
	Expected string
	Got      runtime.Value
}

func (e *TypeError) Type() diagnostics.ErrorType    { return diagnostics.ErrorTypeRuntime }
func (e *TypeError) Severity() diagnostics.Severity { return diagnostics.SeverityWarning }
func (e *TypeError) Error() string                  { return diagnostics.Message(e) }
func (e *TypeError) Explain() string {
	if e.Context == "" {
		return fmt.Sprintf("Expected %s, got %s.", e.Expected, describe(e.Got))
	}
	return fmt.Sprintf("Expected %s %s, got %s.", e.Expected, e.Context, describe(e.Got))
}
func (e *TypeError) Elaborate() string { return "" }

func describe(v runtime.Value) string {
	if v == nil {
		return "undefined"
	}
	return v.Kind().String()
}
