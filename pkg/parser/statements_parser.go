package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/rules"
)

// converter turns the tree-sitter CST into the AST, collecting the
// diagnostics that only the concrete syntax can reveal.
type converter struct {
	source []byte
	errs   []diagnostics.SourceError
}

var unsupportedStatementKinds = map[string]ast.NodeType{
	"switch_statement":               ast.NodeSwitchStatement,
	"do_statement":                   ast.NodeDoWhileStatement,
	"labeled_statement":              ast.NodeLabeledStatement,
	"with_statement":                 ast.NodeWithStatement,
	"throw_statement":                ast.NodeThrowStatement,
	"try_statement":                  ast.NodeTryStatement,
	"class_declaration":              ast.NodeClassDeclaration,
	"debugger_statement":             ast.NodeDebuggerStatement,
	"import_statement":               ast.NodeImportDeclaration,
	"export_statement":               ast.NodeExportDeclaration,
	"generator_function_declaration": "GeneratorFunctionDeclaration",
}

func (c *converter) program(root *sitter.Node) *ast.Program {
	body := make([]ast.Statement, 0, root.NamedChildCount())
	for _, child := range namedChildren(root) {
		body = append(body, c.statement(child))
	}
	return annotate(ast.NewProgram(body), root)
}

func (c *converter) statement(node *sitter.Node) ast.Statement {
	switch node.Kind() {
	case "expression_statement":
		c.requireSemicolon(node)
		return annotate(ast.NewExpressionStatement(c.expression(firstNamedChild(node))), node)
	case "lexical_declaration", "variable_declaration":
		c.requireSemicolon(node)
		return c.declaration(node)
	case "function_declaration":
		return c.functionDeclaration(node)
	case "return_statement":
		c.requireSemicolon(node)
		var arg ast.Expression
		if child := firstNamedChild(node); child != nil {
			arg = c.expression(child)
		}
		return annotate(ast.NewReturnStatement(arg), node)
	case "if_statement":
		return c.ifStatement(node)
	case "while_statement":
		test := c.expression(node.ChildByFieldName("condition"))
		body := c.statement(node.ChildByFieldName("body"))
		return annotate(ast.NewWhileStatement(test, body), node)
	case "for_statement":
		return c.forStatement(node)
	case "for_in_statement":
		kind := ast.NodeForInStatement
		if operatorText(node, c.source) == "of" {
			kind = ast.NodeForOfStatement
		}
		return c.unsupported(node, kind)
	case "break_statement", "continue_statement":
		c.requireSemicolon(node)
		if node.ChildByFieldName("label") != nil {
			return c.unsupported(node, ast.NodeLabeledStatement)
		}
		if node.Kind() == "break_statement" {
			return annotate(ast.NewBreakStatement(), node)
		}
		return annotate(ast.NewContinueStatement(), node)
	case "statement_block":
		return c.block(node)
	case "empty_statement":
		return annotate(ast.NewEmptyStatement(), node)
	}
	if kind, ok := unsupportedStatementKinds[node.Kind()]; ok {
		return c.unsupported(node, kind)
	}
	return c.unsupported(node, ast.NodeUnknown)
}

func (c *converter) block(node *sitter.Node) *ast.BlockStatement {
	children := namedChildren(node)
	body := make([]ast.Statement, 0, len(children))
	for _, child := range children {
		body = append(body, c.statement(child))
	}
	return annotate(ast.NewBlockStatement(body), node)
}

// declaration converts let, const and var statements. Destructuring targets
// are reported and dropped.
func (c *converter) declaration(node *sitter.Node) ast.Statement {
	kind := ast.DeclarationVar
	if node.Kind() == "lexical_declaration" {
		kind = ast.DeclarationKind(sliceContent(node.ChildByFieldName("kind"), c.source))
	}
	var decls []*ast.VariableDeclarator
	for _, child := range namedChildren(node) {
		if child.Kind() != "variable_declarator" {
			continue
		}
		name := child.ChildByFieldName("name")
		if name == nil || name.Kind() != "identifier" {
			c.disallow(name, patternType(name))
			continue
		}
		var init ast.Expression
		if value := child.ChildByFieldName("value"); value != nil {
			init = c.expression(value)
		}
		decl := ast.NewVariableDeclarator(c.identifier(name), init)
		decls = append(decls, annotate(decl, child))
	}
	return annotate(ast.NewVariableDeclaration(kind, decls), node)
}

func (c *converter) functionDeclaration(node *sitter.Node) ast.Statement {
	fn := ast.NewFunctionDeclaration(
		c.identifier(node.ChildByFieldName("name")),
		c.parameters(node.ChildByFieldName("parameters")),
		c.block(node.ChildByFieldName("body")),
	)
	fn.Source = sliceContent(node, c.source)
	return annotate(fn, node)
}

func (c *converter) ifStatement(node *sitter.Node) ast.Statement {
	test := c.expression(node.ChildByFieldName("condition"))
	consequent := c.statement(node.ChildByFieldName("consequence"))
	var alternate ast.Statement
	if clause := node.ChildByFieldName("alternative"); clause != nil {
		alternate = c.statement(firstNamedChild(clause))
	}
	return annotate(ast.NewIfStatement(test, consequent, alternate), node)
}

// forStatement reads the header positionally. Grammar releases disagree on
// whether the test sits in an expression_statement, so the slots are filled
// in order and every `;` or terminated clause advances to the next slot.
func (c *converter) forStatement(node *sitter.Node) ast.Statement {
	var (
		init   ast.Node
		test   ast.Expression
		update ast.Expression
		slot   int
	)
	fill := func(expr ast.Expression) {
		switch slot {
		case 0:
			init = expr
		case 1:
			test = expr
		default:
			update = expr
		}
	}
	inHeader := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if isIgnorableNode(child) {
			continue
		}
		switch kind := child.Kind(); {
		case kind == "(":
			inHeader = true
		case kind == ")":
			inHeader = false
		case !inHeader:
		case kind == ";":
			slot++
		case kind == "lexical_declaration" || kind == "variable_declaration":
			init = c.declaration(child)
			slot++
		case kind == "expression_statement":
			fill(c.expression(firstNamedChild(child)))
			slot++
		case kind == "empty_statement":
			slot++
		case child.IsNamed():
			fill(c.expression(child))
		}
	}
	return annotate(ast.NewForStatement(init, test, update, c.statement(node.ChildByFieldName("body"))), node)
}

func (c *converter) unsupported(node *sitter.Node, kind ast.NodeType) *ast.Unsupported {
	var children []ast.Node
	for _, child := range namedChildren(node) {
		if n := c.known(child); n != nil {
			children = append(children, n)
		}
	}
	return annotate(ast.NewUnsupported(kind, children), node)
}

// known converts child only when it is an ordinary statement or expression,
// so violations nested inside unsupported forms still surface.
func (c *converter) known(child *sitter.Node) ast.Node {
	kind := child.Kind()
	if _, ok := statementKinds[kind]; ok {
		return c.statement(child)
	}
	if _, ok := expressionKinds[kind]; ok {
		return c.expression(child)
	}
	return nil
}

var statementKinds = map[string]struct{}{
	"expression_statement": {}, "lexical_declaration": {}, "variable_declaration": {},
	"function_declaration": {}, "return_statement": {}, "if_statement": {},
	"while_statement": {}, "for_statement": {}, "break_statement": {},
	"continue_statement": {}, "statement_block": {}, "empty_statement": {},
}

// requireSemicolon reports statements that relied on automatic semicolon
// insertion. The inserted token is invisible in the tree, so the statement
// simply does not end with `;`.
func (c *converter) requireSemicolon(node *sitter.Node) {
	last := lastToken(node)
	if last != nil && last.Kind() == ";" {
		return
	}
	c.errs = append(c.errs, &diagnostics.MissingSemicolonError{At: diagnostics.At{Loc: endLocation(node)}})
}

// checkTrailingComma warns when the token before the closing bracket is `,`.
func (c *converter) checkTrailingComma(node *sitter.Node) {
	count := int(node.ChildCount())
	var tokens []*sitter.Node
	for i := 0; i < count; i++ {
		child := node.Child(uint(i))
		if !isIgnorableNode(child) {
			tokens = append(tokens, child)
		}
	}
	if len(tokens) < 3 {
		return
	}
	comma := tokens[len(tokens)-2]
	if comma.Kind() != "," {
		return
	}
	c.errs = append(c.errs, &diagnostics.TrailingCommaError{At: diagnostics.At{Loc: locationFromNode(comma)}})
}

func (c *converter) disallow(node *sitter.Node, kind ast.NodeType) {
	c.errs = append(c.errs, &rules.DisallowedConstructError{
		At:       diagnostics.At{Loc: locationFromNode(node)},
		NodeType: kind,
	})
}

func patternType(node *sitter.Node) ast.NodeType {
	if node == nil {
		return ast.NodeUnknown
	}
	switch node.Kind() {
	case "object_pattern":
		return "ObjectPattern"
	case "array_pattern":
		return "ArrayPattern"
	case "assignment_pattern":
		return "AssignmentPattern"
	case "rest_pattern":
		return "RestElement"
	}
	return ast.NodeUnknown
}
