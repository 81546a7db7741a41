// Package language loads the tree-sitter grammar the parser is built on.
package language

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// JavaScript returns the tree-sitter language for ECMAScript source.
func JavaScript() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_javascript.Language())
}
