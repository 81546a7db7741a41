package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
)

func TestGateAllowsIffStageReachesThreshold(t *testing.T) {
	types := []ast.NodeType{
		ast.NodeProgram, ast.NodeArrayExpression, ast.NodeWhileStatement,
		ast.NodeForStatement, ast.NodeObjectExpression, ast.NodeSwitchStatement,
		ast.NodeDoWhileStatement, ast.NodeTryStatement, ast.NodeUnknown,
	}
	for _, typ := range types {
		threshold := MinimumStage(typ)
		for stage := 1; stage <= 12; stage++ {
			err := CheckSyntax(ast.NewUnsupported(typ, nil), stage)
			if (err == nil) != (stage >= threshold) {
				t.Fatalf("%s at stage %d: threshold %d, got err=%v", typ, stage, threshold, err)
			}
		}
	}
}

func TestPermanentlyDisallowedConstructs(t *testing.T) {
	for _, typ := range []ast.NodeType{
		ast.NodeSwitchStatement, ast.NodeDoWhileStatement, ast.NodeLabeledStatement,
		ast.NodeSequenceExpression, ast.NodeWithStatement, ast.NodeThrowStatement,
		ast.NodeTryStatement, ast.NodeUpdateExpression,
	} {
		require.Equal(t, Never, MinimumStage(typ), string(typ))
	}
}

func TestDisallowedConstructMessage(t *testing.T) {
	err := CheckSyntax(ast.NewWhileStatement(ast.Bool(true), ast.Block()), 3)
	require.NotNil(t, err)
	require.Equal(t, "WhileStatement is not allowed.", err.Explain())
	require.Equal(t, diagnostics.SeverityError, err.Severity())
}

func findError[T diagnostics.SourceError](errs []diagnostics.SourceError) (T, bool) {
	var zero T
	for _, e := range errs {
		var target T
		if errors.As(e, &target) {
			return target, true
		}
	}
	return zero, false
}

func TestStrictEqualityAtEveryStage(t *testing.T) {
	for stage := 3; stage <= 10; stage++ {
		errs := Check(ast.Bin("==", ast.Num(1), ast.Num(2)), nil, stage)
		got, ok := findError[*StrictEqualityError](errs)
		require.True(t, ok, "stage %d", stage)
		require.Equal(t, "Use === instead of ==.", got.Explain())
		_, dup := findError[*NoUnspecifiedOperatorError](errs)
		require.False(t, dup, "== must only be reported once")
	}
}

func TestBracesAroundIfElse(t *testing.T) {
	body := ast.Expr(ast.Num(1))
	n := ast.NewIfStatement(ast.Bool(true), body, ast.NewIfStatement(ast.Bool(false), ast.Block(), body))
	errs := Check(n, nil, 8)
	got, ok := findError[*BracesAroundIfElseError](errs)
	require.True(t, ok)
	require.Equal(t, "if", got.Branch)

	inner := Check(n.Alternate, nil, 8)
	got, ok = findError[*BracesAroundIfElseError](inner)
	require.True(t, ok)
	require.Equal(t, "else", got.Branch)
}

func TestLoopBodiesNeedBraces(t *testing.T) {
	w := ast.NewWhileStatement(ast.Bool(true), ast.Expr(ast.Num(1)))
	_, ok := findError[*BracesAroundWhileError](Check(w, nil, 8))
	require.True(t, ok)

	f := ast.NewForStatement(nil, nil, nil, ast.NewEmptyStatement())
	_, ok = findError[*BracesAroundForError](Check(f, nil, 9))
	require.True(t, ok)
}

func TestDeclarationRules(t *testing.T) {
	multi := ast.NewVariableDeclaration(ast.DeclarationConst, []*ast.VariableDeclarator{
		ast.NewVariableDeclarator(ast.ID("a"), ast.Num(1)),
		ast.NewVariableDeclarator(ast.ID("b"), ast.Num(2)),
	})
	got, ok := findError[*MultipleDeclarationsError](Check(multi, nil, 3))
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, got.Names)

	bare := ast.NewVariableDeclarator(ast.ID("x"), nil)
	_, ok = findError[*NoImplicitDeclareUndefinedError](Check(bare, nil, 3))
	require.True(t, ok)

	reserved := ast.NewVariableDeclarator(ast.ID("static"), ast.Num(1))
	_, ok = findError[*NoDeclareReservedError](Check(reserved, nil, 3))
	require.True(t, ok)
}

func TestMutableDeclarationsLiftAtStageEight(t *testing.T) {
	decl := ast.Let("x", ast.Num(1))
	_, ok := findError[*NoDeclareMutableError](Check(decl, nil, 7))
	require.True(t, ok)
	_, ok = findError[*NoDeclareMutableError](Check(decl, nil, 8))
	require.False(t, ok)
}

func TestNonEmptyListLiftsAtStageNine(t *testing.T) {
	arr := ast.NewArrayExpression([]ast.Expression{ast.Num(1)})
	_, ok := findError[*NoNonEmptyListError](Check(arr, nil, 8))
	require.True(t, ok)
	require.Empty(t, Check(arr, nil, 9))
	require.Empty(t, Check(ast.NewArrayExpression(nil), nil, 5))
}

func TestReturnNeedsValue(t *testing.T) {
	_, ok := findError[*NoImplicitReturnUndefinedError](Check(ast.Ret(nil), nil, 3))
	require.True(t, ok)
}

func TestUnspecifiedOperators(t *testing.T) {
	cases := []ast.Node{
		ast.Bin("**", ast.Num(2), ast.Num(3)),
		ast.NewUnaryExpression("typeof", ast.Num(1)),
		ast.NewLogicalExpression("??", ast.Num(1), ast.Num(2)),
		ast.NewAssignmentExpression("+=", ast.ID("x"), ast.Num(1)),
	}
	for _, n := range cases {
		_, ok := findError[*NoUnspecifiedOperatorError](Check(n, nil, 10))
		require.True(t, ok, "%s", n.NodeType())
	}
	require.Empty(t, Check(ast.Bin("+", ast.Num(1), ast.Str("a")), nil, 3))
}

func TestRuleLookupAndActivity(t *testing.T) {
	r, ok := Lookup("no-if-without-else")
	require.True(t, ok)
	require.True(t, r.Active(7))
	require.False(t, r.Active(8))
	require.Len(t, All(), 12)
}
