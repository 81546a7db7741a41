package runtime

import "slang/interpreter-go/pkg/ast"

type EdgeLabel string

const (
	EdgeNext       EdgeLabel = "next"
	EdgeConsequent EdgeLabel = "consequent"
	EdgeAlternate  EdgeLabel = "alternate"
	EdgeBody       EdgeLabel = "body"
	EdgeLoop       EdgeLabel = "loop"
)

type Edge struct {
	Label EdgeLabel
	To    *Vertex
}

// Vertex is created once per node at parse time.
type Vertex struct {
	ID     ast.NodeID
	Node   ast.Node
	Scope  *Scope
	Usages []*Symbol
}

type SymbolKind string

const (
	SymbolConst     SymbolKind = "const"
	SymbolLet       SymbolKind = "let"
	SymbolVar       SymbolKind = "var"
	SymbolFunction  SymbolKind = "function"
	SymbolParameter SymbolKind = "parameter"
)

type Symbol struct {
	Name        string
	Kind        SymbolKind
	Declaration *Vertex
	Scope       *Scope
	// Bound is the first node id evaluated after the name is bound. Reads
	// in the same scope with a lower id run before the binding exists.
	Bound ast.NodeID
}

// Scope is opened by the program and by every function literal. Block is the
// innermost block of the parent scope that encloses the literal.
type Scope struct {
	Name   string
	Parent *Scope
	Block  *Block
	Entry  *Vertex
	Exits  []*Vertex
	Node   ast.Node
	Env    map[string]*Symbol
}

// Block holds the names declared directly in a nested block statement or in
// the head of a for loop. The program and function bodies declare into their
// Scope instead.
type Block struct {
	Parent *Block
	Node   ast.Node
	Env    map[string]*Symbol
}

func NewBlock(parent *Block, node ast.Node) *Block {
	return &Block{Parent: parent, Node: node, Env: make(map[string]*Symbol)}
}

func NewScope(name string, parent *Scope, node ast.Node) *Scope {
	return &Scope{Name: name, Parent: parent, Node: node, Env: make(map[string]*Symbol)}
}

// Resolve finds the symbol for name in this scope or an enclosing one.
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	return s.ResolveIn(nil, name)
}

// ResolveIn looks name up from block, a block nested in s or nil for the
// top level of s, outwards through s and the blocks and scopes around it.
func (s *Scope) ResolveIn(block *Block, name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		for b := block; b != nil; b = b.Parent {
			if sym, ok := b.Env[name]; ok {
				return sym, true
			}
		}
		if sym, ok := cur.Env[name]; ok {
			return sym, true
		}
		block = cur.Block
	}
	return nil, false
}

// GlobalScopeName names the scope opened by the program.
const GlobalScopeName = "*global*"

type CFG struct {
	Nodes  map[ast.NodeID]*Vertex
	Edges  map[ast.NodeID][]Edge
	Scopes []*Scope
}

// Reset empties the graph and seeds the global scope.
func (c *CFG) Reset() {
	c.Nodes = make(map[ast.NodeID]*Vertex)
	c.Edges = make(map[ast.NodeID][]Edge)
	c.Scopes = []*Scope{NewScope(GlobalScopeName, nil, nil)}
}

// Register adds an empty vertex and edge list for node.
func (c *CFG) Register(node ast.Node) *Vertex {
	v := &Vertex{ID: node.ID(), Node: node}
	c.Nodes[node.ID()] = v
	c.Edges[node.ID()] = []Edge{}
	return v
}
