package ast

// Expressions

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literal.Value holds a float64, string, bool, or nil for null.
type Literal struct {
	nodeImpl
	expressionMarker

	Value any    `json:"value"`
	Raw   string `json:"raw"`
}

func NewLiteral(value any, raw string) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value, Raw: raw}
}

type ArrayExpression struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayExpression(elements []Expression) *ArrayExpression {
	return &ArrayExpression{nodeImpl: newNodeImpl(NodeArrayExpression), Elements: elements}
}

type Property struct {
	nodeImpl

	Key      Expression `json:"key"`
	Value    Expression `json:"value"`
	Computed bool       `json:"computed"`
}

func NewProperty(key, value Expression, computed bool) *Property {
	return &Property{nodeImpl: newNodeImpl(NodeProperty), Key: key, Value: value, Computed: computed}
}

// KeyName resolves a non-computed key to its property name.
func (p *Property) KeyName() (string, bool) {
	if p.Computed {
		return "", false
	}
	switch k := p.Key.(type) {
	case *Identifier:
		return k.Name, true
	case *Literal:
		if s, ok := k.Value.(string); ok {
			return s, true
		}
		return k.Raw, true
	}
	return "", false
}

type ObjectExpression struct {
	nodeImpl
	expressionMarker

	Properties []*Property `json:"properties"`
}

func NewObjectExpression(props []*Property) *ObjectExpression {
	return &ObjectExpression{nodeImpl: newNodeImpl(NodeObjectExpression), Properties: props}
}

type FunctionExpression struct {
	nodeImpl
	expressionMarker

	Name   *Identifier     `json:"id,omitempty"`
	Params []*Identifier   `json:"params"`
	Body   *BlockStatement `json:"body"`
	Source string          `json:"-"`
}

func NewFunctionExpression(name *Identifier, params []*Identifier, body *BlockStatement) *FunctionExpression {
	return &FunctionExpression{nodeImpl: newNodeImpl(NodeFunctionExpression), Name: name, Params: params, Body: body}
}

func (f *FunctionExpression) FunctionName() string {
	if f.Name == nil {
		return ""
	}
	return f.Name.Name
}
func (f *FunctionExpression) FunctionParams() []*Identifier { return f.Params }
func (f *FunctionExpression) FunctionBody() Node            { return f.Body }
func (f *FunctionExpression) SourceText() string            { return f.Source }

// ArrowFunctionExpression.Body is a *BlockStatement unless Expression is set.
type ArrowFunctionExpression struct {
	nodeImpl
	expressionMarker

	Params     []*Identifier `json:"params"`
	Body       Node          `json:"body"`
	Expression bool          `json:"expression"`
	Source     string        `json:"-"`
}

func NewArrowFunctionExpression(params []*Identifier, body Node) *ArrowFunctionExpression {
	_, isBlock := body.(*BlockStatement)
	return &ArrowFunctionExpression{nodeImpl: newNodeImpl(NodeArrowFunctionExpression), Params: params, Body: body, Expression: !isBlock}
}

func (f *ArrowFunctionExpression) FunctionName() string          { return "" }
func (f *ArrowFunctionExpression) FunctionParams() []*Identifier { return f.Params }
func (f *ArrowFunctionExpression) FunctionBody() Node            { return f.Body }
func (f *ArrowFunctionExpression) SourceText() string            { return f.Source }

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: args}
}

type NewExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewNewExpression(callee Expression, args []Expression) *NewExpression {
	return &NewExpression{nodeImpl: newNodeImpl(NodeNewExpression), Callee: callee, Arguments: args}
}

// MemberExpression.Property is an *Identifier when not Computed.
type MemberExpression struct {
	nodeImpl
	expressionMarker

	Object   Expression `json:"object"`
	Property Expression `json:"property"`
	Computed bool       `json:"computed"`
}

func NewMemberExpression(object, property Expression, computed bool) *MemberExpression {
	return &MemberExpression{nodeImpl: newNodeImpl(NodeMemberExpression), Object: object, Property: property, Computed: computed}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewAssignmentExpression(operator string, left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Left: left, Right: right}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewLogicalExpression(operator string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: operator, Left: left, Right: right}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Argument Expression `json:"argument"`
}

func NewUnaryExpression(operator string, arg Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Argument: arg}
}

type UpdateExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Prefix   bool       `json:"prefix"`
	Argument Expression `json:"argument"`
}

func NewUpdateExpression(operator string, prefix bool, arg Expression) *UpdateExpression {
	return &UpdateExpression{nodeImpl: newNodeImpl(NodeUpdateExpression), Operator: operator, Prefix: prefix, Argument: arg}
}

type ConditionalExpression struct {
	nodeImpl
	expressionMarker

	Test       Expression `json:"test"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate"`
}

func NewConditionalExpression(test, consequent, alternate Expression) *ConditionalExpression {
	return &ConditionalExpression{nodeImpl: newNodeImpl(NodeConditionalExpression), Test: test, Consequent: consequent, Alternate: alternate}
}

type ThisExpression struct {
	nodeImpl
	expressionMarker
}

func NewThisExpression() *ThisExpression {
	return &ThisExpression{nodeImpl: newNodeImpl(NodeThisExpression)}
}
