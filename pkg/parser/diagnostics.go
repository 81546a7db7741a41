package parser

import (
	"fmt"
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"slang/interpreter-go/pkg/diagnostics"
)

// syntaxError locates the first MISSING node, falling back to the first
// ERROR node, and phrases it the way students see grammar failures.
func syntaxError(root *sitter.Node, source []byte) *diagnostics.FatalSyntaxError {
	missing := findFirstMissingNode(root)
	errorNode := missing
	if errorNode == nil {
		errorNode = findFirstErrorNode(root)
	}
	if errorNode == nil {
		errorNode = root
	}
	if errorNode == nil {
		return &diagnostics.FatalSyntaxError{Message: "SyntaxError: Unexpected end of input"}
	}
	err := &diagnostics.FatalSyntaxError{At: diagnostics.At{Loc: locationFromNode(errorNode)}}
	switch {
	case missing != nil:
		err.Message = fmt.Sprintf("SyntaxError: Expected %s", formatExpectedKind(missing.Kind()))
	case errorNode.StartByte() >= uint(len(strings.TrimRight(string(source), " \t\r\n"))):
		err.Message = "SyntaxError: Unexpected end of input"
	default:
		token := strings.Fields(sliceContent(errorNode, source))
		if len(token) == 0 {
			err.Message = "SyntaxError: Unexpected token"
		} else {
			err.Message = fmt.Sprintf("SyntaxError: Unexpected token %s", firstToken(token[0]))
		}
	}
	return err
}

func findFirstMissingNode(root *sitter.Node) *sitter.Node {
	var best *sitter.Node
	walkNodes(root, func(node *sitter.Node) {
		if node == nil || !node.IsMissing() {
			return
		}
		if best == nil || node.StartByte() < best.StartByte() {
			best = node
		}
	})
	return best
}

func findFirstErrorNode(root *sitter.Node) *sitter.Node {
	var best *sitter.Node
	walkNodes(root, func(node *sitter.Node) {
		if node == nil || !node.IsError() {
			return
		}
		if best == nil || node.StartByte() < best.StartByte() {
			best = node
		}
	})
	return best
}

func walkNodes(root *sitter.Node, visit func(node *sitter.Node)) {
	if root == nil {
		return
	}
	visit(root)
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		walkNodes(child, visit)
	}
}

// firstToken trims a chunk of skipped text down to its leading token.
func firstToken(s string) string {
	for i, r := range s {
		if i > 0 && !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$') {
			return s[:i]
		}
		if i == 0 && !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$') {
			return s[:len(string(r))]
		}
	}
	return s
}

func formatExpectedKind(kind string) string {
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return "token"
	}
	isSymbol := true
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			isSymbol = false
			break
		}
	}
	if len(trimmed) == 1 || isSymbol {
		return fmt.Sprintf("'%s'", trimmed)
	}
	return strings.ReplaceAll(trimmed, "_", " ")
}
