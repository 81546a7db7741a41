// Package rules holds the stage gate and the structural checkers run on every
// node during parsing.
package rules

import (
	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
)

// Checker inspects one node. ancestors run outermost first, parent last.
type Checker func(node ast.Node, ancestors []ast.Node) []diagnostics.SourceError

// Rule groups checkers by node type. A rule with DisableOn > 0 stops applying
// from that stage onward.
type Rule struct {
	Name      string
	DisableOn int
	Checkers  map[ast.NodeType]Checker
}

// Active reports whether the rule applies at stage.
func (r *Rule) Active(stage int) bool {
	return r.DisableOn == 0 || stage < r.DisableOn
}

var registry = []*Rule{
	bracesAroundIfElse,
	bracesAroundWhile,
	bracesAroundFor,
	strictEquality,
	singleVariableDeclaration,
	noImplicitDeclareUndefined,
	noImplicitReturnUndefined,
	noNonEmptyList,
	noDeclareReserved,
	noDeclareMutable,
	noIfWithoutElse,
	noUnspecifiedOperator,
}

// All returns the registered rules in evaluation order.
func All() []*Rule {
	out := make([]*Rule, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a rule by name.
func Lookup(name string) (*Rule, bool) {
	for _, r := range registry {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// Check runs the stage gate and then every active rule for node's type.
func Check(node ast.Node, ancestors []ast.Node, stage int) []diagnostics.SourceError {
	var errs []diagnostics.SourceError
	if err := CheckSyntax(node, stage); err != nil {
		errs = append(errs, err)
	}
	for _, r := range registry {
		if !r.Active(stage) {
			continue
		}
		if check, ok := r.Checkers[node.NodeType()]; ok {
			errs = append(errs, check(node, ancestors)...)
		}
	}
	return errs
}

func one(err diagnostics.SourceError) []diagnostics.SourceError {
	return []diagnostics.SourceError{err}
}
