package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"slang/interpreter-go/pkg/ast"
)

var expressionKinds = map[string]struct{}{
	"parenthesized_expression": {}, "identifier": {}, "undefined": {}, "number": {},
	"string": {}, "true": {}, "false": {}, "null": {}, "this": {}, "array": {},
	"object": {}, "function_expression": {}, "function": {}, "arrow_function": {},
	"call_expression": {}, "new_expression": {}, "member_expression": {},
	"subscript_expression": {}, "assignment_expression": {},
	"augmented_assignment_expression": {}, "binary_expression": {},
	"unary_expression": {}, "update_expression": {}, "ternary_expression": {},
}

var unsupportedExpressionKinds = map[string]ast.NodeType{
	"sequence_expression": ast.NodeSequenceExpression,
	"template_string":     ast.NodeTemplateLiteral,
	"regex":               ast.NodeRegExpLiteral,
	"class":               ast.NodeClassExpression,
	"await_expression":    ast.NodeAwaitExpression,
	"yield_expression":    ast.NodeYieldExpression,
	"spread_element":      ast.NodeSpreadElement,
}

var logicalOperators = map[string]bool{"&&": true, "||": true, "??": true}

func (c *converter) expression(node *sitter.Node) ast.Expression {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "parenthesized_expression":
		return c.expression(firstNamedChild(node))
	case "identifier", "undefined":
		return c.identifier(node)
	case "number", "string", "true", "false", "null":
		return c.literal(node)
	case "this":
		return annotate(ast.NewThisExpression(), node)
	case "array":
		c.checkTrailingComma(node)
		var elements []ast.Expression
		for _, child := range namedChildren(node) {
			elements = append(elements, c.expression(child))
		}
		return annotate(ast.NewArrayExpression(elements), node)
	case "object":
		return c.object(node)
	case "function_expression", "function":
		fn := ast.NewFunctionExpression(nil,
			c.parameters(node.ChildByFieldName("parameters")),
			c.block(node.ChildByFieldName("body")))
		if name := node.ChildByFieldName("name"); name != nil {
			fn.Name = c.identifier(name)
		}
		fn.Source = sliceContent(node, c.source)
		return annotate(fn, node)
	case "arrow_function":
		return c.arrow(node)
	case "call_expression":
		args := node.ChildByFieldName("arguments")
		if args == nil || args.Kind() != "arguments" {
			return c.unsupported(node, ast.NodeTemplateLiteral)
		}
		callee := c.expression(node.ChildByFieldName("function"))
		return annotate(ast.NewCallExpression(callee, c.arguments(args)), node)
	case "new_expression":
		callee := c.expression(node.ChildByFieldName("constructor"))
		var args []ast.Expression
		if list := node.ChildByFieldName("arguments"); list != nil {
			args = c.arguments(list)
		}
		return annotate(ast.NewNewExpression(callee, args), node)
	case "member_expression":
		object := c.expression(node.ChildByFieldName("object"))
		prop := node.ChildByFieldName("property")
		if prop == nil || prop.Kind() != "property_identifier" {
			return c.unsupported(node, ast.NodeUnknown)
		}
		name := annotate(ast.NewIdentifier(sliceContent(prop, c.source)), prop)
		return annotate(ast.NewMemberExpression(object, name, false), node)
	case "subscript_expression":
		object := c.expression(node.ChildByFieldName("object"))
		index := c.expression(node.ChildByFieldName("index"))
		return annotate(ast.NewMemberExpression(object, index, true), node)
	case "assignment_expression":
		left := node.ChildByFieldName("left")
		if kind := patternType(left); kind != ast.NodeUnknown {
			c.disallow(left, kind)
		}
		return annotate(ast.NewAssignmentExpression("=",
			c.expression(left),
			c.expression(node.ChildByFieldName("right"))), node)
	case "augmented_assignment_expression":
		return annotate(ast.NewAssignmentExpression(operatorText(node, c.source),
			c.expression(node.ChildByFieldName("left")),
			c.expression(node.ChildByFieldName("right"))), node)
	case "binary_expression":
		op := operatorText(node, c.source)
		left := c.expression(node.ChildByFieldName("left"))
		right := c.expression(node.ChildByFieldName("right"))
		if logicalOperators[op] {
			return annotate(ast.NewLogicalExpression(op, left, right), node)
		}
		return annotate(ast.NewBinaryExpression(op, left, right), node)
	case "unary_expression":
		return annotate(ast.NewUnaryExpression(operatorText(node, c.source),
			c.expression(node.ChildByFieldName("argument"))), node)
	case "update_expression":
		op := operatorText(node, c.source)
		first := node.Child(0)
		prefix := first != nil && (first.Kind() == "++" || first.Kind() == "--")
		return annotate(ast.NewUpdateExpression(op, prefix,
			c.expression(node.ChildByFieldName("argument"))), node)
	case "ternary_expression":
		return annotate(ast.NewConditionalExpression(
			c.expression(node.ChildByFieldName("condition")),
			c.expression(node.ChildByFieldName("consequence")),
			c.expression(node.ChildByFieldName("alternative"))), node)
	}
	if kind, ok := unsupportedExpressionKinds[node.Kind()]; ok {
		return c.unsupported(node, kind)
	}
	return c.unsupported(node, ast.NodeUnknown)
}

func (c *converter) identifier(node *sitter.Node) *ast.Identifier {
	if node == nil {
		return nil
	}
	return annotate(ast.NewIdentifier(sliceContent(node, c.source)), node)
}

func (c *converter) arguments(node *sitter.Node) []ast.Expression {
	c.checkTrailingComma(node)
	children := namedChildren(node)
	args := make([]ast.Expression, 0, len(children))
	for _, child := range children {
		args = append(args, c.expression(child))
	}
	return args
}

// parameters accepts plain identifiers only. Defaults, rest parameters and
// destructuring are reported and skipped.
func (c *converter) parameters(node *sitter.Node) []*ast.Identifier {
	if node == nil {
		return nil
	}
	c.checkTrailingComma(node)
	var params []*ast.Identifier
	for _, child := range namedChildren(node) {
		if child.Kind() != "identifier" {
			c.disallow(child, patternType(child))
			continue
		}
		params = append(params, c.identifier(child))
	}
	return params
}

func (c *converter) arrow(node *sitter.Node) ast.Expression {
	var params []*ast.Identifier
	if single := node.ChildByFieldName("parameter"); single != nil {
		params = []*ast.Identifier{c.identifier(single)}
	} else {
		params = c.parameters(node.ChildByFieldName("parameters"))
	}
	var body ast.Node
	if b := node.ChildByFieldName("body"); b != nil && b.Kind() == "statement_block" {
		body = c.block(b)
	} else {
		body = c.expression(b)
	}
	fn := ast.NewArrowFunctionExpression(params, body)
	fn.Source = sliceContent(node, c.source)
	return annotate(fn, node)
}

func (c *converter) object(node *sitter.Node) ast.Expression {
	c.checkTrailingComma(node)
	var props []*ast.Property
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "pair":
			key, computed := c.propertyKey(child.ChildByFieldName("key"))
			value := c.expression(child.ChildByFieldName("value"))
			props = append(props, annotate(ast.NewProperty(key, value, computed), child))
		case "shorthand_property_identifier":
			id := c.identifier(child)
			props = append(props, annotate(ast.NewProperty(id, c.identifier(child), false), child))
		case "method_definition":
			c.disallow(child, "MethodDefinition")
		default:
			c.disallow(child, ast.NodeSpreadElement)
		}
	}
	return annotate(ast.NewObjectExpression(props), node)
}

func (c *converter) propertyKey(node *sitter.Node) (ast.Expression, bool) {
	switch node.Kind() {
	case "property_identifier":
		return annotate(ast.NewIdentifier(sliceContent(node, c.source)), node), false
	case "computed_property_name":
		return c.expression(firstNamedChild(node)), true
	default:
		return c.expression(node), false
	}
}
