package rules

import (
	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
)

var (
	allowedBinary = map[string]bool{
		"+": true, "-": true, "*": true, "/": true, "%": true,
		"===": true, "!==": true, "<": true, ">": true, "<=": true, ">=": true,
	}
	allowedLogical = map[string]bool{"&&": true, "||": true}
	allowedUnary   = map[string]bool{"!": true, "-": true}
)

var strictEquality = &Rule{
	Name: "strict-equality",
	Checkers: map[ast.NodeType]Checker{
		ast.NodeBinaryExpression: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.BinaryExpression)
			if n.Operator != "==" && n.Operator != "!=" {
				return nil
			}
			return one(&StrictEqualityError{ruleBase: at(n), Operator: n.Operator})
		},
	},
}

func unspecified(n ast.Node, op string, allowed map[string]bool) []diagnostics.SourceError {
	if allowed[op] {
		return nil
	}
	return one(&NoUnspecifiedOperatorError{ruleBase: at(n), Operator: op})
}

var noUnspecifiedOperator = &Rule{
	Name: "no-unspecified-operator",
	Checkers: map[ast.NodeType]Checker{
		ast.NodeBinaryExpression: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.BinaryExpression)
			// == and != belong to strict-equality.
			if n.Operator == "==" || n.Operator == "!=" {
				return nil
			}
			return unspecified(n, n.Operator, allowedBinary)
		},
		ast.NodeLogicalExpression: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.LogicalExpression)
			return unspecified(n, n.Operator, allowedLogical)
		},
		ast.NodeUnaryExpression: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.UnaryExpression)
			return unspecified(n, n.Operator, allowedUnary)
		},
		ast.NodeAssignmentExpression: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.AssignmentExpression)
			return unspecified(n, n.Operator, map[string]bool{"=": true})
		},
	},
}
