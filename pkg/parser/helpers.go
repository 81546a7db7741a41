package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

func isIgnorableNode(node *sitter.Node) bool {
	return node == nil || node.Kind() == "comment"
}

func sliceContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := int(node.StartByte())
	end := int(node.EndByte())
	if start < 0 || end < start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if isIgnorableNode(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	children := namedChildren(node)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// lastToken returns the last non-comment child, named or not.
func lastToken(node *sitter.Node) *sitter.Node {
	for i := int(node.ChildCount()) - 1; i >= 0; i-- {
		child := node.Child(uint(i))
		if !isIgnorableNode(child) {
			return child
		}
	}
	return nil
}

// operatorText reads an operator field, which tree-sitter exposes as an
// anonymous node whose kind is the token itself.
func operatorText(node *sitter.Node, source []byte) string {
	op := node.ChildByFieldName("operator")
	if op == nil {
		return ""
	}
	return sliceContent(op, source)
}
