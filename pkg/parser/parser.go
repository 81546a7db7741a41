// Package parser turns source text into an AST for one curriculum stage. It
// wraps the tree-sitter JavaScript grammar, numbers every node, registers it
// with the context's control-flow graph and runs the stage gate and rules.
package parser

import (
	"errors"
	"fmt"
	"log/slog"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/parser/language"
	"slang/interpreter-go/pkg/rules"
	"slang/interpreter-go/pkg/runtime"
)

// Parser reuses one tree-sitter parser across calls. It is not safe for
// concurrent use.
type Parser struct {
	ts     *sitter.Parser
	logger *slog.Logger
}

// New constructs a parser with the JavaScript grammar loaded.
func New(logger *slog.Logger) (*Parser, error) {
	lang := language.JavaScript()
	if lang == nil {
		return nil, errors.New("parser: javascript language not available")
	}
	ts := sitter.NewParser()
	if err := ts.SetLanguage(lang); err != nil {
		ts.Close()
		return nil, fmt.Errorf("parser: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{ts: ts, logger: logger}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p == nil || p.ts == nil {
		return
	}
	p.ts.Close()
	p.ts = nil
}

// Parse returns the program, or nil when the grammar, the stage gate or a
// rule produced an ERROR severity diagnostic. Diagnostics are appended to
// ctx.Errors either way, and ctx.CFG is reset to this parse's nodes.
func (p *Parser) Parse(source string, ctx *runtime.Context) *ast.Program {
	if p == nil || p.ts == nil {
		panic("parser: use of closed parser")
	}
	src := []byte(source)
	firstError := len(ctx.Errors)
	ctx.CFG.Reset()

	tree := p.ts.Parse(src, nil)
	if tree == nil {
		ctx.AddError(syntaxError(nil, src))
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		ctx.AddError(syntaxError(root, src))
		p.logger.Debug("parse failed", "stage", ctx.Stage)
		return nil
	}

	conv := &converter{source: src}
	prog := conv.program(root)
	for _, err := range conv.errs {
		ctx.AddError(err)
	}

	count := Annotate(prog, ctx)
	p.logger.Debug("parsed program", "stage", ctx.Stage, "nodes", count, "errors", len(ctx.Errors)-firstError)

	if diagnostics.HasErrors(ctx.Errors[firstError:]) {
		return nil
	}
	ctx.CFG.Scopes[0].Node = prog
	return prog
}

// Annotate walks prog once in pre-order: every node gets the next id and an
// empty vertex, then the stage gate and rules run against it. It returns the
// number of nodes visited.
func Annotate(prog *ast.Program, ctx *runtime.Context) int {
	var next ast.NodeID
	ast.Inspect(prog, func(node ast.Node, ancestors []ast.Node) bool {
		next++
		node.SetID(next)
		ctx.CFG.Register(node)
		for _, err := range rules.Check(node, ancestors, ctx.Stage) {
			ctx.AddError(err)
		}
		return true
	})
	return int(next)
}

// Parse is a convenience wrapper that creates and closes a Parser.
func Parse(source string, ctx *runtime.Context) *ast.Program {
	p, err := New(nil)
	if err != nil {
		panic(err)
	}
	defer p.Close()
	return p.Parse(source, ctx)
}
