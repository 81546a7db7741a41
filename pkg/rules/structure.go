package rules

import (
	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
)

func isBlock(s ast.Statement) bool {
	_, ok := s.(*ast.BlockStatement)
	return ok
}

var bracesAroundIfElse = &Rule{
	Name: "braces-around-if-else",
	Checkers: map[ast.NodeType]Checker{
		ast.NodeIfStatement: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.IfStatement)
			var errs []diagnostics.SourceError
			if !isBlock(n.Consequent) {
				errs = append(errs, &BracesAroundIfElseError{ruleBase: at(n.Consequent), Branch: "if"})
			}
			if n.Alternate != nil && !isBlock(n.Alternate) {
				if _, elseIf := n.Alternate.(*ast.IfStatement); !elseIf {
					errs = append(errs, &BracesAroundIfElseError{ruleBase: at(n.Alternate), Branch: "else"})
				}
			}
			return errs
		},
	},
}

var bracesAroundWhile = &Rule{
	Name: "braces-around-while",
	Checkers: map[ast.NodeType]Checker{
		ast.NodeWhileStatement: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.WhileStatement)
			if isBlock(n.Body) {
				return nil
			}
			return one(&BracesAroundWhileError{ruleBase: at(n)})
		},
	},
}

var bracesAroundFor = &Rule{
	Name: "braces-around-for",
	Checkers: map[ast.NodeType]Checker{
		ast.NodeForStatement: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.ForStatement)
			if isBlock(n.Body) {
				return nil
			}
			return one(&BracesAroundForError{ruleBase: at(n)})
		},
	},
}

var noIfWithoutElse = &Rule{
	Name:      "no-if-without-else",
	DisableOn: 8,
	Checkers: map[ast.NodeType]Checker{
		ast.NodeIfStatement: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.IfStatement)
			if n.Alternate != nil {
				return nil
			}
			return one(&NoIfWithoutElseError{ruleBase: at(n)})
		},
	},
}

var noNonEmptyList = &Rule{
	Name:      "no-non-empty-list",
	DisableOn: 9,
	Checkers: map[ast.NodeType]Checker{
		ast.NodeArrayExpression: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.ArrayExpression)
			if len(n.Elements) == 0 {
				return nil
			}
			return one(&NoNonEmptyListError{ruleBase: at(n)})
		},
	},
}

var noImplicitReturnUndefined = &Rule{
	Name: "no-implicit-return-undefined",
	Checkers: map[ast.NodeType]Checker{
		ast.NodeReturnStatement: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.ReturnStatement)
			if n.Argument != nil {
				return nil
			}
			return one(&NoImplicitReturnUndefinedError{ruleBase: at(n)})
		},
	},
}
