package rules

import (
	"fmt"
	"math"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
)

// Never is the threshold of constructs that no stage unlocks.
const Never = math.MaxInt

var minimumStage = map[ast.NodeType]int{
	ast.NodeProgram:                 3,
	ast.NodeExpressionStatement:     3,
	ast.NodeIfStatement:             3,
	ast.NodeFunctionDeclaration:     3,
	ast.NodeVariableDeclaration:     3,
	ast.NodeVariableDeclarator:      3,
	ast.NodeReturnStatement:         3,
	ast.NodeCallExpression:          3,
	ast.NodeUnaryExpression:         3,
	ast.NodeBinaryExpression:        3,
	ast.NodeLogicalExpression:       3,
	ast.NodeConditionalExpression:   3,
	ast.NodeFunctionExpression:      3,
	ast.NodeArrowFunctionExpression: 3,
	ast.NodeIdentifier:              3,
	ast.NodeLiteral:                 3,
	ast.NodeBlockStatement:          3,

	ast.NodeEmptyStatement:  5,
	ast.NodeArrayExpression: 5,

	ast.NodeAssignmentExpression: 8,
	ast.NodeWhileStatement:       8,

	ast.NodeForStatement:      9,
	ast.NodeBreakStatement:    9,
	ast.NodeContinueStatement: 9,
	ast.NodeMemberExpression:  9,

	ast.NodeObjectExpression: 10,
	ast.NodeProperty:         10,
	ast.NodeNewExpression:    10,
	ast.NodeThisExpression:   10,
}

// MinimumStage returns the first stage at which t is allowed. Types missing
// from the table, including every unsupported grammar form, are never allowed.
func MinimumStage(t ast.NodeType) int {
	if s, ok := minimumStage[t]; ok {
		return s
	}
	return Never
}

// DisallowedConstructError reports a node type that the stage has not unlocked.
type DisallowedConstructError struct {
	diagnostics.At
	NodeType ast.NodeType
}

func (e *DisallowedConstructError) Type() diagnostics.ErrorType { return diagnostics.ErrorTypeSyntax }
func (e *DisallowedConstructError) Severity() diagnostics.Severity {
	return diagnostics.SeverityError
}
func (e *DisallowedConstructError) Error() string   { return diagnostics.Message(e) }
func (e *DisallowedConstructError) Explain() string { return fmt.Sprintf("%s is not allowed.", e.NodeType) }
func (e *DisallowedConstructError) Elaborate() string {
	return fmt.Sprintf("You are trying to use %s, which is not allowed (yet).", e.NodeType)
}

// CheckSyntax reports node if its type is locked at stage.
func CheckSyntax(node ast.Node, stage int) diagnostics.SourceError {
	if stage >= MinimumStage(node.NodeType()) {
		return nil
	}
	return &DisallowedConstructError{At: diagnostics.AtNode(node), NodeType: node.NodeType()}
}
