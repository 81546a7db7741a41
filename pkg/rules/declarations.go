package rules

import (
	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
)

var reservedWords = map[string]bool{}

func init() {
	for _, w := range []string{
		"break", "case", "catch", "class", "const", "continue", "debugger",
		"default", "delete", "do", "else", "enum", "export", "extends", "false",
		"finally", "for", "function", "if", "implements", "import", "in",
		"instanceof", "interface", "let", "new", "null", "package", "private",
		"protected", "public", "return", "static", "super", "switch", "this",
		"throw", "true", "try", "typeof", "var", "void", "while", "with",
		"yield", "await", "arguments", "eval",
	} {
		reservedWords[w] = true
	}
}

// IsReserved reports whether name cannot be declared.
func IsReserved(name string) bool {
	return reservedWords[name]
}

var singleVariableDeclaration = &Rule{
	Name: "single-variable-declaration",
	Checkers: map[ast.NodeType]Checker{
		ast.NodeVariableDeclaration: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.VariableDeclaration)
			if len(n.Declarations) <= 1 {
				return nil
			}
			names := make([]string, 0, len(n.Declarations))
			for _, d := range n.Declarations {
				names = append(names, d.Name.Name)
			}
			return one(&MultipleDeclarationsError{ruleBase: at(n), Names: names})
		},
	},
}

var noImplicitDeclareUndefined = &Rule{
	Name: "no-implicit-declare-undefined",
	Checkers: map[ast.NodeType]Checker{
		ast.NodeVariableDeclarator: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.VariableDeclarator)
			if n.Init != nil {
				return nil
			}
			return one(&NoImplicitDeclareUndefinedError{ruleBase: at(n), Name: n.Name.Name})
		},
	},
}

func reservedNames(ids ...*ast.Identifier) []diagnostics.SourceError {
	var errs []diagnostics.SourceError
	for _, id := range ids {
		if id != nil && IsReserved(id.Name) {
			errs = append(errs, &NoDeclareReservedError{ruleBase: at(id), Name: id.Name})
		}
	}
	return errs
}

var noDeclareReserved = &Rule{
	Name: "no-declare-reserved",
	Checkers: map[ast.NodeType]Checker{
		ast.NodeVariableDeclarator: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			return reservedNames(node.(*ast.VariableDeclarator).Name)
		},
		ast.NodeFunctionDeclaration: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.FunctionDeclaration)
			return reservedNames(append([]*ast.Identifier{n.Name}, n.Params...)...)
		},
		ast.NodeFunctionExpression: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			return reservedNames(node.(*ast.FunctionExpression).Params...)
		},
		ast.NodeArrowFunctionExpression: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			return reservedNames(node.(*ast.ArrowFunctionExpression).Params...)
		},
	},
}

var noDeclareMutable = &Rule{
	Name:      "no-declare-mutable",
	DisableOn: 8,
	Checkers: map[ast.NodeType]Checker{
		ast.NodeVariableDeclaration: func(node ast.Node, _ []ast.Node) []diagnostics.SourceError {
			n := node.(*ast.VariableDeclaration)
			if n.Kind == ast.DeclarationConst {
				return nil
			}
			return one(&NoDeclareMutableError{ruleBase: at(n), Kind: n.Kind})
		},
	},
}
