package cfg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/parser"
	"slang/interpreter-go/pkg/runtime"
)

func build(t *testing.T, source string, stage int) (*ast.Program, *runtime.Context) {
	t.Helper()
	ctx := runtime.NewContext(stage, nil)
	prog := parser.Parse(source, ctx)
	if prog == nil {
		t.Fatalf("parse failed:\n%s", diagnostics.Format(ctx.Errors))
	}
	GenerateCFG(ctx)
	return prog, ctx
}

func edgesOf(ctx *runtime.Context, n ast.Node) map[runtime.EdgeLabel][]ast.NodeID {
	out := map[runtime.EdgeLabel][]ast.NodeID{}
	for _, e := range ctx.CFG.Edges[n.ID()] {
		out[e.Label] = append(out[e.Label], e.To.ID)
	}
	return out
}

func TestOneScopePerFunctionLiteral(t *testing.T) {
	source := "function f(x) {\n  return y => x + y;\n}\nconst g = function (a) {\n  return a;\n};\nf(1);"
	_, ctx := build(t, source, 3)
	var names []string
	for _, s := range ctx.CFG.Scopes {
		names = append(names, s.Name)
	}
	want := []string{runtime.GlobalScopeName, "f", "*anonymous_1*", "*anonymous_2*"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("scopes mismatch (-want +got):\n%s", diff)
	}
	require.Same(t, ctx.CFG.Scopes[1], ctx.CFG.Scopes[3].Parent)
}

func TestIfBranchesMergeIntoFollowingStatement(t *testing.T) {
	source := "const a = 1;\nif (a === 1) {\n  display(a);\n} else {\n  display(2);\n}\ndisplay(3);"
	prog, ctx := build(t, source, 3)
	decl, ifs, after := prog.Body[0], prog.Body[1].(*ast.IfStatement), prog.Body[2]
	consequent := ifs.Consequent.(*ast.BlockStatement).Body[0]
	alternate := ifs.Alternate.(*ast.BlockStatement).Body[0]

	require.Equal(t, []ast.NodeID{ifs.ID()}, edgesOf(ctx, decl)[runtime.EdgeNext])
	got := edgesOf(ctx, ifs)
	require.Equal(t, []ast.NodeID{consequent.ID()}, got[runtime.EdgeConsequent])
	require.Equal(t, []ast.NodeID{alternate.ID()}, got[runtime.EdgeAlternate])
	require.Equal(t, []ast.NodeID{after.ID()}, edgesOf(ctx, consequent)[runtime.EdgeNext])
	require.Equal(t, []ast.NodeID{after.ID()}, edgesOf(ctx, alternate)[runtime.EdgeNext])

	global := ctx.CFG.Scopes[0]
	require.Equal(t, decl.ID(), global.Entry.ID)
	require.Len(t, global.Exits, 1)
	require.Equal(t, after.ID(), global.Exits[0].ID)
}

func TestReturnsFlushIntoExits(t *testing.T) {
	source := "function f(x) {\n  if (x === 0) {\n    return 1;\n  } else {\n    return 2;\n  }\n}\nfunction g(x) {\n  display(x);\n}"
	_, ctx := build(t, source, 3)
	f, g := ctx.CFG.Scopes[1], ctx.CFG.Scopes[2]
	require.Len(t, f.Exits, 2)
	for _, exit := range f.Exits {
		_, ok := exit.Node.(*ast.ReturnStatement)
		require.True(t, ok, "exit %T", exit.Node)
	}
	require.False(t, FallsThrough(f))
	require.True(t, FallsThrough(g))
}

func TestWhileLoopHasBodyAndBackEdges(t *testing.T) {
	source := "let i = 0;\nwhile (i < 3) {\n  i = i + 1;\n}\ndisplay(i);"
	prog, ctx := build(t, source, 8)
	loop := prog.Body[1].(*ast.WhileStatement)
	step := loop.Body.(*ast.BlockStatement).Body[0]

	got := edgesOf(ctx, loop)
	require.Equal(t, []ast.NodeID{step.ID()}, got[runtime.EdgeBody])
	require.Equal(t, []ast.NodeID{prog.Body[2].ID()}, got[runtime.EdgeNext])
	require.Equal(t, []ast.NodeID{loop.ID()}, edgesOf(ctx, step)[runtime.EdgeLoop])
}

func TestUsagesResolveToDeclarations(t *testing.T) {
	source := "const a = 1;\nfunction f(b) {\n  return a + b;\n}"
	prog, ctx := build(t, source, 3)
	ret := prog.Body[1].(*ast.FunctionDeclaration).Body.Body[0].(*ast.ReturnStatement)
	sum := ret.Argument.(*ast.BinaryExpression)

	a := ctx.CFG.Nodes[sum.Left.ID()]
	require.Len(t, a.Usages, 1)
	require.Equal(t, runtime.SymbolConst, a.Usages[0].Kind)
	require.Equal(t, prog.Body[0].(*ast.VariableDeclaration).Declarations[0].ID(), a.Usages[0].Declaration.ID)

	b := ctx.CFG.Nodes[sum.Right.ID()]
	require.Len(t, b.Usages, 1)
	require.Equal(t, runtime.SymbolParameter, b.Usages[0].Kind)
}

func TestUndeclaredUsages(t *testing.T) {
	ctx := runtime.NewContext(3, nil)
	ctx.Runtime.Global().Define("display", runtime.Undefined, true)
	prog := parser.Parse("const a = b;\ndisplay(a);\nfunction f(x) {\n  return x + c;\n}", ctx)
	require.NotNil(t, prog)
	GenerateCFG(ctx)
	var names []string
	for _, id := range UndeclaredUsages(ctx) {
		names = append(names, id.Name)
	}
	require.Equal(t, []string{"b", "c"}, names)
}

func TestUsedBeforeDeclaration(t *testing.T) {
	_, ctx := build(t, "display(a);\nconst a = 1;", 3)
	got := UsedBeforeDeclaration(ctx)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].Name)
}

func TestReadInOwnInitializerIsUsedBeforeDeclaration(t *testing.T) {
	_, ctx := build(t, "const x = x + 1;\nconst y = 2;\nconst z = y;", 3)
	got := UsedBeforeDeclaration(ctx)
	require.Len(t, got, 1)
	require.Equal(t, "x", got[0].Name)
}

func TestBlockDeclarationsStayInBlock(t *testing.T) {
	ctx := runtime.NewContext(3, nil)
	ctx.Runtime.Global().Define("display", runtime.Undefined, true)
	source := "if (true) {\n  const x = 1;\n  display(x);\n} else {\n}\ndisplay(x);"
	prog := parser.Parse(source, ctx)
	require.NotNil(t, prog)
	GenerateCFG(ctx)

	got := UndeclaredUsages(ctx)
	require.Len(t, got, 1)
	require.Equal(t, "x", got[0].Name)
	require.Equal(t, 6, got[0].Loc().Start.Line)
}

func TestClosureInBlockSeesBlockDeclaration(t *testing.T) {
	source := "if (true) {\n  const k = 1;\n  const f = () => k;\n  f();\n} else {\n}"
	_, ctx := build(t, source, 3)
	require.Empty(t, UndeclaredUsages(ctx))
	require.Empty(t, UsedBeforeDeclaration(ctx))
}

func TestForHeadDeclarationIsLoopLocal(t *testing.T) {
	source := "let s = 0;\nfor (let i = 0; i < 3; i = i + 1) {\n  s = s + i;\n}\ns + i;"
	_, ctx := build(t, source, 9)
	got := UndeclaredUsages(ctx)
	require.Len(t, got, 1)
	require.Equal(t, "i", got[0].Name)
	require.Equal(t, 5, got[0].Loc().Start.Line)
}

func TestGenerateCFGRequiresParsedProgram(t *testing.T) {
	ctx := runtime.NewContext(3, nil)
	require.Panics(t, func() { GenerateCFG(ctx) })

	_, built := build(t, "function f() {\n  return 1;\n}", 3)
	require.Panics(t, func() { GenerateCFG(built) })
}
