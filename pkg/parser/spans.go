package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"slang/interpreter-go/pkg/ast"
)

// locationFromNode converts tree-sitter's 0-based rows to 1-based lines.
// Columns stay 0-based.
func locationFromNode(node *sitter.Node) ast.Location {
	if node == nil {
		return ast.Location{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return ast.Location{
		Start: ast.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
		End:   ast.Position{Line: int(end.Row) + 1, Column: int(end.Column)},
	}
}

// endLocation is the zero-width location just past node.
func endLocation(node *sitter.Node) ast.Location {
	loc := locationFromNode(node)
	loc.Start = loc.End
	return loc
}

func annotate[T ast.Node](node T, tsNode *sitter.Node) T {
	node.SetLoc(locationFromNode(tsNode))
	return node
}
