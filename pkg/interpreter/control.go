package interpreter

import (
	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/runtime"
)

// Control values travel up the evaluator as ordinary results. Loops absorb
// break and continue; apply absorbs return and tail calls. None of them is
// ever visible to a program.
type controlValue interface {
	runtime.Value
	control()
}

type ReturnValue struct {
	Value runtime.Value
}

func (*ReturnValue) Kind() runtime.Kind { return runtime.KindUndefined }
func (*ReturnValue) control()           {}

type BreakValue struct{}

func (BreakValue) Kind() runtime.Kind { return runtime.KindUndefined }
func (BreakValue) control()           {}

type ContinueValue struct{}

func (ContinueValue) Kind() runtime.Kind { return runtime.KindUndefined }
func (ContinueValue) control()           {}

// TailCallReturnValue asks the enclosing apply loop to replace its frame and
// call Callee instead of recursing.
type TailCallReturnValue struct {
	Callee runtime.Value
	Args   []runtime.Value
	Node   ast.Node
	This   runtime.Value
}

func (*TailCallReturnValue) Kind() runtime.Kind { return runtime.KindUndefined }
func (*TailCallReturnValue) control()           {}

func isControl(v runtime.Value) bool {
	_, ok := v.(controlValue)
	return ok
}

// settle turns a control value that escaped to the top level into a plain
// program value.
func settle(v runtime.Value) runtime.Value {
	switch c := v.(type) {
	case *ReturnValue:
		return c.Value
	case controlValue, nil:
		return runtime.Undefined
	}
	return v
}
