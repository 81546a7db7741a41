package interpreter

import (
	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/runtime"
)

func (e *evaluator) evaluateProgram(p *ast.Program) (runtime.Value, error) {
	return e.evaluateSequence(p.Body)
}

// evaluateSequence runs statements in the current frame. A control value stops
// the sequence and is handed to the caller; otherwise the value of the last
// statement is the value of the sequence.
func (e *evaluator) evaluateSequence(stmts []ast.Statement) (runtime.Value, error) {
	var last runtime.Value = runtime.Undefined
	for _, stmt := range stmts {
		v, err := e.evaluate(stmt)
		if err != nil {
			return nil, err
		}
		if isControl(v) {
			return v, nil
		}
		if _, isFn := stmt.(*ast.FunctionDeclaration); !isFn {
			last = v
		}
	}
	return last, nil
}

func (e *evaluator) evaluateBlock(b *ast.BlockStatement) (runtime.Value, error) {
	if !declaresNames(b.Body) {
		return e.evaluateSequence(b.Body)
	}
	rt := &e.ctx.Runtime
	rt.PushFrame(runtime.NewFrame("block", rt.Innermost()))
	v, err := e.evaluateSequence(b.Body)
	if err != nil {
		return nil, err
	}
	rt.PopFrame()
	return v, nil
}

func declaresNames(stmts []ast.Statement) bool {
	for _, stmt := range stmts {
		switch stmt.(type) {
		case *ast.VariableDeclaration, *ast.FunctionDeclaration:
			return true
		}
	}
	return false
}

// evaluateVariableDeclaration binds each declarator in the innermost frame and
// evaluates to the last bound value.
func (e *evaluator) evaluateVariableDeclaration(n *ast.VariableDeclaration) (runtime.Value, error) {
	frame := e.ctx.Runtime.Innermost()
	var last runtime.Value = runtime.Undefined
	for _, d := range n.Declarations {
		var v runtime.Value = runtime.Undefined
		if d.Init != nil {
			var err error
			if v, err = e.evaluate(d.Init); err != nil {
				return nil, err
			}
		}
		name := d.Name.Name
		if frame.Declares(name) && n.Kind != ast.DeclarationVar {
			return nil, &VariableRedeclaration{runtimeBase: at(d), Name: name}
		}
		inferName(v, name)
		frame.Define(name, v, n.Kind == ast.DeclarationConst)
		last = v
	}
	return last, nil
}

// inferName gives an anonymous function literal the name it is bound to.
func inferName(v runtime.Value, name string) {
	switch fn := v.(type) {
	case *runtime.Closure:
		if fn.Name == "" {
			fn.Name = name
		}
	case *runtime.ArrowClosure:
		if fn.Name == "" {
			fn.Name = name
		}
	}
}

func (e *evaluator) evaluateFunctionDeclaration(n *ast.FunctionDeclaration) (runtime.Value, error) {
	frame := e.ctx.Runtime.Innermost()
	name := n.Name.Name
	if prev, ok := frame.Environment[name]; ok && !declaredFunction(prev) {
		return nil, &VariableRedeclaration{runtimeBase: at(n), Name: name}
	}
	frame.Define(name, runtime.NewClosure(n, frame), true)
	return runtime.Undefined, nil
}

func declaredFunction(v runtime.Value) bool {
	c, ok := v.(*runtime.Closure)
	if !ok {
		return false
	}
	_, ok = c.Node.(*ast.FunctionDeclaration)
	return ok
}

func (e *evaluator) evaluateReturnStatement(n *ast.ReturnStatement) (runtime.Value, error) {
	if n.Argument == nil {
		return &ReturnValue{Value: runtime.Undefined}, nil
	}
	v, err := e.evaluateTail(n.Argument)
	if err != nil {
		return nil, err
	}
	if tc, ok := v.(*TailCallReturnValue); ok {
		return tc, nil
	}
	return &ReturnValue{Value: v}, nil
}

// evaluateTest evaluates a condition. A non-boolean is reported and treated
// as false.
func (e *evaluator) evaluateTest(test ast.Expression) (bool, error) {
	v, err := e.evaluate(test)
	if err != nil {
		return false, err
	}
	b, ok := v.(runtime.BoolValue)
	if !ok {
		e.warn(&TypeError{At: diagnostics.AtNode(test), Context: "as condition", Expected: "boolean", Got: v})
		return false, nil
	}
	return bool(b), nil
}

func (e *evaluator) evaluateIfStatement(n *ast.IfStatement) (runtime.Value, error) {
	ok, err := e.evaluateTest(n.Test)
	if err != nil {
		return nil, err
	}
	if ok {
		return e.evaluate(n.Consequent)
	}
	if n.Alternate != nil {
		return e.evaluate(n.Alternate)
	}
	return runtime.Undefined, nil
}

func (e *evaluator) evaluateWhileStatement(n *ast.WhileStatement) (runtime.Value, error) {
	var last runtime.Value = runtime.Undefined
	for {
		ok, err := e.evaluateTest(n.Test)
		if err != nil {
			return nil, err
		}
		if !ok {
			return last, nil
		}
		v, err := e.evaluate(n.Body)
		if err != nil {
			return nil, err
		}
		switch v.(type) {
		case BreakValue:
			return last, nil
		case ContinueValue:
		case *ReturnValue, *TailCallReturnValue:
			return v, nil
		default:
			last = v
		}
	}
}

// evaluateForStatement gives a declaring initializer its own frame and copies
// that frame before every update.
func (e *evaluator) evaluateForStatement(n *ast.ForStatement) (runtime.Value, error) {
	rt := &e.ctx.Runtime
	_, scoped := n.Init.(*ast.VariableDeclaration)
	if scoped {
		rt.PushFrame(runtime.NewFrame("for", rt.Innermost()))
	}
	if n.Init != nil {
		if _, err := e.evaluate(n.Init); err != nil {
			return nil, err
		}
	}

	var last runtime.Value = runtime.Undefined
loop:
	for {
		if n.Test != nil {
			ok, err := e.evaluateTest(n.Test)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
		}
		v, err := e.evaluate(n.Body)
		if err != nil {
			return nil, err
		}
		switch v.(type) {
		case BreakValue:
			break loop
		case ContinueValue:
		case *ReturnValue, *TailCallReturnValue:
			if scoped {
				rt.PopFrame()
			}
			return v, nil
		default:
			last = v
		}
		if scoped {
			rt.ReplaceFrame(rt.Innermost().Clone())
		}
		if n.Update != nil {
			if _, err := e.evaluate(n.Update); err != nil {
				return nil, err
			}
		}
	}
	if scoped {
		rt.PopFrame()
	}
	return last, nil
}
