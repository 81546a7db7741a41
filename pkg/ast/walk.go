package ast

// Children returns the direct child nodes of n in source order. Nil slots
// (a missing else branch, an empty for header) are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c == nil || isNilNode(c) {
				continue
			}
			out = append(out, c)
		}
	}
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Body {
			add(s)
		}
	case *ExpressionStatement:
		add(n.Expression)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			add(d)
		}
	case *VariableDeclarator:
		add(n.Name, n.Init)
	case *FunctionDeclaration:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *ReturnStatement:
		add(n.Argument)
	case *IfStatement:
		add(n.Test, n.Consequent, n.Alternate)
	case *WhileStatement:
		add(n.Test, n.Body)
	case *ForStatement:
		add(n.Init, n.Test, n.Update, n.Body)
	case *BlockStatement:
		for _, s := range n.Body {
			add(s)
		}
	case *BreakStatement, *ContinueStatement, *EmptyStatement:
	case *Identifier, *Literal, *ThisExpression:
	case *ArrayExpression:
		for _, e := range n.Elements {
			add(e)
		}
	case *ObjectExpression:
		for _, p := range n.Properties {
			add(p)
		}
	case *Property:
		add(n.Key, n.Value)
	case *FunctionExpression:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *ArrowFunctionExpression:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *CallExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *NewExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *MemberExpression:
		add(n.Object, n.Property)
	case *AssignmentExpression:
		add(n.Left, n.Right)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *LogicalExpression:
		add(n.Left, n.Right)
	case *UnaryExpression:
		add(n.Argument)
	case *UpdateExpression:
		add(n.Argument)
	case *ConditionalExpression:
		add(n.Test, n.Consequent, n.Alternate)
	case *Unsupported:
		add(n.Children...)
	}
	return out
}

// isNilNode catches typed nils stored in interface fields, e.g. a nil
// *Identifier for an anonymous function expression.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *BlockStatement:
		return v == nil
	case *VariableDeclaration:
		return v == nil
	}
	return false
}

// Inspect walks the tree rooted at n in pre-order. visit receives the node and
// its ancestors, outermost first; returning false skips the node's children.
func Inspect(n Node, visit func(node Node, ancestors []Node) bool) {
	var walk func(node Node, ancestors []Node)
	walk = func(node Node, ancestors []Node) {
		if !visit(node, ancestors) {
			return
		}
		next := append(ancestors[:len(ancestors):len(ancestors)], node)
		for _, child := range Children(node) {
			walk(child, next)
		}
	}
	walk(n, nil)
}
