package ast

// Statements

type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

// DeclarationKind is the keyword that introduced a declaration.
type DeclarationKind string

const (
	DeclarationConst DeclarationKind = "const"
	DeclarationLet   DeclarationKind = "let"
	DeclarationVar   DeclarationKind = "var"
)

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Kind         DeclarationKind       `json:"kind"`
	Declarations []*VariableDeclarator `json:"declarations"`
}

func NewVariableDeclaration(kind DeclarationKind, decls []*VariableDeclarator) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Kind: kind, Declarations: decls}
}

type VariableDeclarator struct {
	nodeImpl

	Name *Identifier `json:"id"`
	Init Expression  `json:"init,omitempty"`
}

func NewVariableDeclarator(name *Identifier, init Expression) *VariableDeclarator {
	return &VariableDeclarator{nodeImpl: newNodeImpl(NodeVariableDeclarator), Name: name, Init: init}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name   *Identifier     `json:"id"`
	Params []*Identifier   `json:"params"`
	Body   *BlockStatement `json:"body"`
	Source string          `json:"-"`
}

func NewFunctionDeclaration(name *Identifier, params []*Identifier, body *BlockStatement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, Body: body}
}

func (f *FunctionDeclaration) FunctionName() string {
	if f.Name == nil {
		return ""
	}
	return f.Name.Name
}
func (f *FunctionDeclaration) FunctionParams() []*Identifier { return f.Params }
func (f *FunctionDeclaration) FunctionBody() Node            { return f.Body }
func (f *FunctionDeclaration) SourceText() string            { return f.Source }

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(arg Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: arg}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate,omitempty"`
}

func NewIfStatement(test Expression, consequent, alternate Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Test: test, Consequent: consequent, Alternate: alternate}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Test Expression `json:"test"`
	Body Statement  `json:"body"`
}

func NewWhileStatement(test Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Test: test, Body: body}
}

// ForStatement.Init is a *VariableDeclaration, an Expression, or nil.
type ForStatement struct {
	nodeImpl
	statementMarker

	Init   Node       `json:"init,omitempty"`
	Test   Expression `json:"test,omitempty"`
	Update Expression `json:"update,omitempty"`
	Body   Statement  `json:"body"`
}

func NewForStatement(init Node, test, update Expression, body Statement) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement), Init: init, Test: test, Update: update, Body: body}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type EmptyStatement struct {
	nodeImpl
	statementMarker
}

func NewEmptyStatement() *EmptyStatement {
	return &EmptyStatement{nodeImpl: newNodeImpl(NodeEmptyStatement)}
}

// Unsupported stands in for grammar forms outside the language. Kind carries
// the ESTree name so diagnostics can say what was written.
type Unsupported struct {
	nodeImpl
	statementMarker
	expressionMarker

	Children []Node `json:"children,omitempty"`
}

func NewUnsupported(kind NodeType, children []Node) *Unsupported {
	return &Unsupported{nodeImpl: newNodeImpl(kind), Children: children}
}
