package ast

// Short constructors for building fragments in tests.

func ID(name string) *Identifier { return NewIdentifier(name) }

func Num(v float64) *Literal { return NewLiteral(v, "") }

func Str(v string) *Literal { return NewLiteral(v, "") }

func Bool(v bool) *Literal { return NewLiteral(v, "") }

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func Expr(e Expression) *ExpressionStatement { return NewExpressionStatement(e) }

func Block(body ...Statement) *BlockStatement { return NewBlockStatement(body) }

func Prog(body ...Statement) *Program { return NewProgram(body) }

func Ret(arg Expression) *ReturnStatement { return NewReturnStatement(arg) }

func Const(name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(DeclarationConst, []*VariableDeclarator{NewVariableDeclarator(ID(name), init)})
}

func Let(name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(DeclarationLet, []*VariableDeclarator{NewVariableDeclarator(ID(name), init)})
}

func Fn(name string, params []string, body ...Statement) *FunctionDeclaration {
	ids := make([]*Identifier, len(params))
	for i, p := range params {
		ids[i] = ID(p)
	}
	return NewFunctionDeclaration(ID(name), ids, Block(body...))
}
