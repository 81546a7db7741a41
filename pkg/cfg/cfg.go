// Package cfg builds the control-flow graph of an accepted program. It is a
// static pass over the AST and plays no part in evaluation.
package cfg

import (
	"fmt"

	"slang/interpreter-go/internal/invariant"
	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/runtime"
)

// open is a vertex whose outgoing edge is still pending, with the label that
// edge will carry.
type open struct {
	vertex *runtime.Vertex
	label  runtime.EdgeLabel
}

type loop struct {
	head   *runtime.Vertex
	breaks []open
}

type reference struct {
	vertex *runtime.Vertex
	scope  *runtime.Scope
	block  *runtime.Block
}

type builder struct {
	graph     *runtime.CFG
	queue     []*runtime.Scope
	scope     *runtime.Scope
	block     *runtime.Block
	stack     []open
	loops     []*loop
	refs      []reference
	anonymous int
}

// GenerateCFG fills ctx.CFG.Edges and ctx.CFG.Scopes for the parsed program.
// The parser must already have registered every node and left exactly the
// global scope pointing at the program; anything else is a caller bug.
func GenerateCFG(ctx *runtime.Context) {
	invariant.NotNil(ctx, "ctx")
	invariant.Precondition(len(ctx.CFG.Scopes) == 1, "expected only the global scope, got %d scopes", len(ctx.CFG.Scopes))
	global := ctx.CFG.Scopes[0]
	_, isProgram := global.Node.(*ast.Program)
	invariant.Precondition(isProgram, "global scope must hold the program, got %T", global.Node)

	b := &builder{graph: &ctx.CFG, queue: []*runtime.Scope{global}}
	for len(b.queue) > 0 {
		scope := b.queue[0]
		b.queue = b.queue[1:]
		b.walkScope(scope)
	}
	for _, ref := range b.refs {
		name := ref.vertex.Node.(*ast.Identifier).Name
		if sym, ok := ref.scope.ResolveIn(ref.block, name); ok {
			ref.vertex.Usages = append(ref.vertex.Usages, sym)
		}
	}
}

func (b *builder) vertex(n ast.Node) *runtime.Vertex {
	v := b.graph.Nodes[n.ID()]
	invariant.Invariant(v != nil, "node %d (%s) was never registered", n.ID(), n.NodeType())
	return v
}

// connect links every open vertex to n and makes n the only open vertex.
func (b *builder) connect(n ast.Node) *runtime.Vertex {
	v := b.vertex(n)
	for _, o := range b.stack {
		b.graph.Edges[o.vertex.ID] = append(b.graph.Edges[o.vertex.ID], runtime.Edge{Label: o.label, To: v})
	}
	v.Scope = b.scope
	if b.scope.Entry == nil {
		b.scope.Entry = v
	}
	b.stack = []open{{vertex: v, label: runtime.EdgeNext}}
	return v
}

func (b *builder) flushExits() {
	for _, o := range b.stack {
		b.scope.Exits = append(b.scope.Exits, o.vertex)
	}
	b.stack = nil
}

func (b *builder) walkScope(scope *runtime.Scope) {
	b.scope = scope
	b.block = nil
	b.stack = nil
	b.loops = nil

	switch n := scope.Node.(type) {
	case *ast.Program:
		for _, s := range n.Body {
			b.walkStatement(s)
		}
	case ast.Function:
		if name := n.FunctionName(); name != "" {
			if _, isExpr := n.(*ast.FunctionExpression); isExpr {
				b.declare(name, runtime.SymbolFunction, n)
			}
		}
		for _, p := range n.FunctionParams() {
			b.declare(p.Name, runtime.SymbolParameter, p)
		}
		switch body := n.FunctionBody().(type) {
		case *ast.BlockStatement:
			for _, s := range body.Body {
				b.walkStatement(s)
			}
		case ast.Expression:
			b.connect(body)
			b.walkExpression(body)
		}
	}
	b.flushExits()
}

func (b *builder) declare(name string, kind runtime.SymbolKind, at ast.Node) {
	v := b.vertex(at)
	if v.Scope == nil {
		v.Scope = b.scope
	}
	sym := &runtime.Symbol{Name: name, Kind: kind, Declaration: v, Scope: b.scope, Bound: lastID(at) + 1}
	if b.block != nil {
		b.block.Env[name] = sym
		return
	}
	b.scope.Env[name] = sym
}

// lastID is the highest id in n's subtree.
func lastID(n ast.Node) ast.NodeID {
	last := n.ID()
	ast.Inspect(n, func(m ast.Node, _ []ast.Node) bool {
		last = max(last, m.ID())
		return true
	})
	return last
}

func (b *builder) enterBlock(n ast.Node) {
	b.block = runtime.NewBlock(b.block, n)
}

func (b *builder) leaveBlock() {
	b.block = b.block.Parent
}

func (b *builder) openScope(fn ast.Function) {
	name := fn.FunctionName()
	if name == "" {
		b.anonymous++
		name = fmt.Sprintf("*anonymous_%d*", b.anonymous)
	}
	scope := runtime.NewScope(name, b.scope, fn)
	scope.Block = b.block
	b.graph.Scopes = append(b.graph.Scopes, scope)
	b.queue = append(b.queue, scope)
}

func (b *builder) walkStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.ExpressionStatement:
		b.connect(n)
		b.walkExpression(n.Expression)
	case *ast.VariableDeclaration:
		b.connect(n)
		b.walkDeclaration(n)
	case *ast.FunctionDeclaration:
		b.connect(n)
		b.declare(n.FunctionName(), runtime.SymbolFunction, n)
		b.openScope(n)
	case *ast.ReturnStatement:
		b.connect(n)
		if n.Argument != nil {
			b.walkExpression(n.Argument)
		}
		b.flushExits()
	case *ast.IfStatement:
		v := b.connect(n)
		b.walkExpression(n.Test)

		b.stack = []open{{vertex: v, label: runtime.EdgeConsequent}}
		b.walkStatement(n.Consequent)
		consequent := b.stack

		b.stack = []open{{vertex: v, label: runtime.EdgeAlternate}}
		if n.Alternate != nil {
			b.walkStatement(n.Alternate)
		}
		b.stack = append(consequent, b.stack...)
	case *ast.BlockStatement:
		b.enterBlock(n)
		for _, inner := range n.Body {
			b.walkStatement(inner)
		}
		b.leaveBlock()
	case *ast.WhileStatement:
		head := b.connect(n)
		b.walkExpression(n.Test)
		b.walkLoopBody(head, n.Body)
	case *ast.ForStatement:
		if _, scoped := n.Init.(*ast.VariableDeclaration); scoped {
			b.enterBlock(n)
			defer b.leaveBlock()
		}
		switch init := n.Init.(type) {
		case *ast.VariableDeclaration:
			b.walkStatement(init)
		case ast.Expression:
			b.walkExpression(init)
		}
		head := b.connect(n)
		if n.Test != nil {
			b.walkExpression(n.Test)
		}
		if n.Update != nil {
			b.walkExpression(n.Update)
		}
		b.walkLoopBody(head, n.Body)
	case *ast.BreakStatement:
		b.connect(n)
		if l := b.innermostLoop(); l != nil {
			l.breaks = append(l.breaks, b.stack...)
		}
		b.stack = nil
	case *ast.ContinueStatement:
		b.connect(n)
		if l := b.innermostLoop(); l != nil {
			b.backEdges(l.head)
		}
		b.stack = nil
	default:
		b.connect(n)
	}
}

// walkLoopBody forks a body sub-walk from head, closes it with loop edges
// back to head, and leaves head plus any breaks open.
func (b *builder) walkLoopBody(head *runtime.Vertex, body ast.Statement) {
	l := &loop{head: head}
	b.loops = append(b.loops, l)
	b.stack = []open{{vertex: head, label: runtime.EdgeBody}}
	b.walkStatement(body)
	b.backEdges(head)
	b.loops = b.loops[:len(b.loops)-1]
	b.stack = append([]open{{vertex: head, label: runtime.EdgeNext}}, l.breaks...)
}

func (b *builder) backEdges(head *runtime.Vertex) {
	for _, o := range b.stack {
		b.graph.Edges[o.vertex.ID] = append(b.graph.Edges[o.vertex.ID], runtime.Edge{Label: runtime.EdgeLoop, To: head})
	}
}

func (b *builder) innermostLoop() *loop {
	if len(b.loops) == 0 {
		return nil
	}
	return b.loops[len(b.loops)-1]
}

func (b *builder) walkDeclaration(n *ast.VariableDeclaration) {
	kind := runtime.SymbolConst
	switch n.Kind {
	case ast.DeclarationLet:
		kind = runtime.SymbolLet
	case ast.DeclarationVar:
		kind = runtime.SymbolVar
	}
	for _, d := range n.Declarations {
		if d.Init != nil {
			b.walkExpression(d.Init)
		}
		b.declare(d.Name.Name, kind, d)
	}
}

// walkExpression records identifier references and opens a scope for every
// function literal without descending into it.
func (b *builder) walkExpression(e ast.Expression) {
	ast.Inspect(e, func(n ast.Node, ancestors []ast.Node) bool {
		switch n := n.(type) {
		case *ast.FunctionExpression:
			b.openScope(n)
			return false
		case *ast.ArrowFunctionExpression:
			b.openScope(n)
			return false
		case *ast.Identifier:
			if !isPropertyName(n, ancestors) {
				v := b.vertex(n)
				v.Scope = b.scope
				b.refs = append(b.refs, reference{vertex: v, scope: b.scope, block: b.block})
			}
		}
		return true
	})
}

func isPropertyName(id *ast.Identifier, ancestors []ast.Node) bool {
	if len(ancestors) == 0 {
		return false
	}
	switch parent := ancestors[len(ancestors)-1].(type) {
	case *ast.MemberExpression:
		return !parent.Computed && parent.Property == ast.Expression(id)
	case *ast.Property:
		return !parent.Computed && parent.Key == ast.Expression(id)
	}
	return false
}
