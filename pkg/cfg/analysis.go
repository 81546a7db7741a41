package cfg

import (
	"sort"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/runtime"
)

// UndeclaredUsages returns identifier references that no scope declares and
// that neither the global frame nor the builtins provide, in source order.
func UndeclaredUsages(ctx *runtime.Context) []*ast.Identifier {
	global := ctx.Runtime.Global()
	var out []*ast.Identifier
	for _, v := range ctx.CFG.Nodes {
		id, ok := v.Node.(*ast.Identifier)
		if !ok || v.Scope == nil || len(v.Usages) > 0 {
			continue
		}
		if sym, isDecl := v.Scope.Env[id.Name]; isDecl && sym.Declaration == v {
			continue
		}
		if _, _, ok := global.Lookup(id.Name); ok {
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// FallsThrough reports whether a function with a block body can finish
// without reaching a return statement.
func FallsThrough(scope *runtime.Scope) bool {
	fn, ok := scope.Node.(ast.Function)
	if !ok {
		return false
	}
	if _, block := fn.FunctionBody().(*ast.BlockStatement); !block {
		return false
	}
	if len(scope.Exits) == 0 {
		return true
	}
	for _, exit := range scope.Exits {
		if _, ret := exit.Node.(*ast.ReturnStatement); !ret {
			return true
		}
	}
	return false
}

// UsedBeforeDeclaration returns references to a const, let or var name that
// are evaluated in the same scope before the name is bound, including reads
// inside its own initializer, in source order.
func UsedBeforeDeclaration(ctx *runtime.Context) []*ast.Identifier {
	var out []*ast.Identifier
	for _, v := range ctx.CFG.Nodes {
		id, ok := v.Node.(*ast.Identifier)
		if !ok {
			continue
		}
		for _, sym := range v.Usages {
			if sym.Kind == runtime.SymbolFunction || sym.Kind == runtime.SymbolParameter {
				continue
			}
			if sym.Scope == v.Scope && v.ID < sym.Bound {
				out = append(out, id)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
