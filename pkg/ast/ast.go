package ast

import "fmt"

// NodeType names follow the ESTree vocabulary so stage tables and rules can be
// written against familiar names.
type NodeType string

const (
	NodeProgram                 NodeType = "Program"
	NodeExpressionStatement     NodeType = "ExpressionStatement"
	NodeVariableDeclaration     NodeType = "VariableDeclaration"
	NodeVariableDeclarator      NodeType = "VariableDeclarator"
	NodeFunctionDeclaration     NodeType = "FunctionDeclaration"
	NodeReturnStatement         NodeType = "ReturnStatement"
	NodeIfStatement             NodeType = "IfStatement"
	NodeWhileStatement          NodeType = "WhileStatement"
	NodeForStatement            NodeType = "ForStatement"
	NodeBreakStatement          NodeType = "BreakStatement"
	NodeContinueStatement       NodeType = "ContinueStatement"
	NodeBlockStatement          NodeType = "BlockStatement"
	NodeEmptyStatement          NodeType = "EmptyStatement"
	NodeIdentifier              NodeType = "Identifier"
	NodeLiteral                 NodeType = "Literal"
	NodeArrayExpression         NodeType = "ArrayExpression"
	NodeObjectExpression        NodeType = "ObjectExpression"
	NodeProperty                NodeType = "Property"
	NodeFunctionExpression      NodeType = "FunctionExpression"
	NodeArrowFunctionExpression NodeType = "ArrowFunctionExpression"
	NodeCallExpression          NodeType = "CallExpression"
	NodeNewExpression           NodeType = "NewExpression"
	NodeMemberExpression        NodeType = "MemberExpression"
	NodeAssignmentExpression    NodeType = "AssignmentExpression"
	NodeBinaryExpression        NodeType = "BinaryExpression"
	NodeLogicalExpression       NodeType = "LogicalExpression"
	NodeUnaryExpression         NodeType = "UnaryExpression"
	NodeUpdateExpression        NodeType = "UpdateExpression"
	NodeConditionalExpression   NodeType = "ConditionalExpression"
	NodeThisExpression          NodeType = "ThisExpression"

	// Grammar forms the language never evaluates. They only exist so the
	// stage gate can name them in diagnostics.
	NodeSwitchStatement    NodeType = "SwitchStatement"
	NodeDoWhileStatement   NodeType = "DoWhileStatement"
	NodeLabeledStatement   NodeType = "LabeledStatement"
	NodeSequenceExpression NodeType = "SequenceExpression"
	NodeWithStatement      NodeType = "WithStatement"
	NodeThrowStatement     NodeType = "ThrowStatement"
	NodeTryStatement       NodeType = "TryStatement"
	NodeCatchClause        NodeType = "CatchClause"
	NodeForInStatement     NodeType = "ForInStatement"
	NodeForOfStatement     NodeType = "ForOfStatement"
	NodeClassDeclaration   NodeType = "ClassDeclaration"
	NodeClassExpression    NodeType = "ClassExpression"
	NodeTemplateLiteral    NodeType = "TemplateLiteral"
	NodeDebuggerStatement  NodeType = "DebuggerStatement"
	NodeSpreadElement      NodeType = "SpreadElement"
	NodeRegExpLiteral      NodeType = "RegExpLiteral"
	NodeAwaitExpression    NodeType = "AwaitExpression"
	NodeYieldExpression    NodeType = "YieldExpression"
	NodeImportDeclaration  NodeType = "ImportDeclaration"
	NodeExportDeclaration  NodeType = "ExportDeclaration"
	NodeUnknown            NodeType = "Unknown"
)

// NodeID is assigned once per parse in pre-order. Zero means unassigned.
type NodeID int

// Position is a 1-based line and a 0-based column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Start.Line, l.Start.Column)
}

// Valid reports whether the location points into real source text.
func (l Location) Valid() bool {
	return l.Start.Line > 0
}

type Node interface {
	NodeType() NodeType
	ID() NodeID
	SetID(id NodeID)
	Loc() Location
	SetLoc(loc Location)
}

type nodeImpl struct {
	Type     NodeType `json:"type"`
	NodeID   NodeID   `json:"nodeId,omitempty"`
	Location Location `json:"loc"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n *nodeImpl) NodeType() NodeType  { return n.Type }
func (n *nodeImpl) ID() NodeID          { return n.NodeID }
func (n *nodeImpl) SetID(id NodeID)     { n.NodeID = id }
func (n *nodeImpl) Loc() Location       { return n.Location }
func (n *nodeImpl) SetLoc(loc Location) { n.Location = loc }

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Function is implemented by every node that evaluates to a closure.
type Function interface {
	Node
	FunctionName() string
	FunctionParams() []*Identifier
	// FunctionBody is a *BlockStatement, or an Expression for concise arrows.
	FunctionBody() Node
	SourceText() string
}
