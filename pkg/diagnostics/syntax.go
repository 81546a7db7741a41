package diagnostics

import "fmt"

// FatalSyntaxError wraps a grammar-level failure.
type FatalSyntaxError struct {
	At
	Message string
}

func (e *FatalSyntaxError) Type() ErrorType    { return ErrorTypeSyntax }
func (e *FatalSyntaxError) Severity() Severity { return SeverityError }
func (e *FatalSyntaxError) Error() string      { return Message(e) }
func (e *FatalSyntaxError) Explain() string    { return e.Message }
func (e *FatalSyntaxError) Elaborate() string {
	return "There is a syntax error in your program"
}

type MissingSemicolonError struct {
	At
}

func (e *MissingSemicolonError) Type() ErrorType    { return ErrorTypeSyntax }
func (e *MissingSemicolonError) Severity() Severity { return SeverityError }
func (e *MissingSemicolonError) Error() string      { return Message(e) }
func (e *MissingSemicolonError) Explain() string    { return "Missing semicolon at the end of statement" }
func (e *MissingSemicolonError) Elaborate() string {
	return "Every statement must be terminated by a semicolon."
}

type TrailingCommaError struct {
	At
}

func (e *TrailingCommaError) Type() ErrorType    { return ErrorTypeSyntax }
func (e *TrailingCommaError) Severity() Severity { return SeverityWarning }
func (e *TrailingCommaError) Error() string      { return Message(e) }
func (e *TrailingCommaError) Explain() string    { return "Trailing comma" }
func (e *TrailingCommaError) Elaborate() string {
	return "Please remove the trailing comma"
}

// UnexpectedTokenError reports text the grammar could not place.
type UnexpectedTokenError struct {
	At
	Token    string
	Expected string
}

func (e *UnexpectedTokenError) Type() ErrorType    { return ErrorTypeSyntax }
func (e *UnexpectedTokenError) Severity() Severity { return SeverityError }
func (e *UnexpectedTokenError) Error() string      { return Message(e) }
func (e *UnexpectedTokenError) Explain() string {
	if e.Expected != "" {
		return fmt.Sprintf("SyntaxError: Expected %s", e.Expected)
	}
	return fmt.Sprintf("SyntaxError: Unexpected token %s", e.Token)
}
func (e *UnexpectedTokenError) Elaborate() string {
	return "There is a syntax error in your program"
}
