package interpreter

import (
	"math"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/rules"
	"slang/interpreter-go/pkg/runtime"
)

func (e *evaluator) evaluateExpression(node ast.Node) (runtime.Value, error) {
	frame := e.ctx.Runtime.Innermost()
	switch n := node.(type) {
	case *ast.Literal:
		return literalValue(n), nil
	case *ast.Identifier:
		return e.evaluateIdentifier(n)
	case *ast.ArrayExpression:
		return e.evaluateArray(n)
	case *ast.ObjectExpression:
		return e.evaluateObject(n)
	case *ast.FunctionExpression:
		return runtime.NewClosure(n, frame), nil
	case *ast.ArrowFunctionExpression:
		return runtime.NewArrowClosure(n, frame), nil
	case *ast.CallExpression:
		return e.evaluateCall(n, false)
	case *ast.NewExpression:
		return e.evaluateNew(n)
	case *ast.MemberExpression:
		obj, key, err := e.evaluateMember(n)
		if err != nil {
			return nil, err
		}
		return getProperty(n, obj, key)
	case *ast.AssignmentExpression:
		return e.evaluateAssignment(n)
	case *ast.BinaryExpression:
		return e.evaluateBinary(n)
	case *ast.LogicalExpression:
		return e.evaluateLogical(n, false)
	case *ast.UnaryExpression:
		return e.evaluateUnary(n)
	case *ast.ConditionalExpression:
		return e.evaluateConditional(n, false)
	case *ast.ThisExpression:
		return frame.This(), nil
	default:
		return nil, &rules.DisallowedConstructError{At: diagnostics.AtNode(node), NodeType: node.NodeType()}
	}
}

// evaluateTail evaluates an expression in tail position. Calls there come
// back as a TailCallReturnValue instead of being applied.
func (e *evaluator) evaluateTail(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.CallExpression:
		return e.visit(n, func() (runtime.Value, error) { return e.evaluateCall(n, true) })
	case *ast.ConditionalExpression:
		return e.visit(n, func() (runtime.Value, error) { return e.evaluateConditional(n, true) })
	case *ast.LogicalExpression:
		return e.visit(n, func() (runtime.Value, error) { return e.evaluateLogical(n, true) })
	}
	return e.evaluate(node)
}

// visit is evaluate with a caller-supplied body.
func (e *evaluator) visit(node ast.Node, body func() (runtime.Value, error)) (runtime.Value, error) {
	rt := &e.ctx.Runtime
	rt.PushNode(node)
	if err := e.suspend(SuspendVisit, node); err != nil {
		rt.PopNode()
		return nil, err
	}
	v, err := body()
	rt.PopNode()
	return v, err
}

func (e *evaluator) branch(node ast.Expression, tail bool) (runtime.Value, error) {
	if tail {
		return e.evaluateTail(node)
	}
	return e.evaluate(node)
}

func literalValue(n *ast.Literal) runtime.Value {
	switch v := n.Value.(type) {
	case float64:
		return runtime.NumberValue(v)
	case string:
		return runtime.StringValue(v)
	case bool:
		return runtime.BoolValue(v)
	case nil:
		return runtime.Null
	}
	return runtime.Undefined
}

func (e *evaluator) evaluateIdentifier(n *ast.Identifier) (runtime.Value, error) {
	v, _, ok := e.ctx.Runtime.Innermost().Lookup(n.Name)
	if !ok {
		if n.Name == "undefined" {
			return runtime.Undefined, nil
		}
		return nil, &UndefinedVariable{runtimeBase: at(n), Name: n.Name}
	}
	return v, nil
}

func (e *evaluator) evaluateArray(n *ast.ArrayExpression) (runtime.Value, error) {
	elems := make([]runtime.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		if el == nil {
			elems = append(elems, runtime.Undefined)
			continue
		}
		v, err := e.evaluate(el)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return runtime.NewArray(elems...), nil
}

func (e *evaluator) evaluateObject(n *ast.ObjectExpression) (runtime.Value, error) {
	obj := runtime.NewObject(nil)
	for _, p := range n.Properties {
		key, ok := p.KeyName()
		if !ok {
			k, err := e.evaluate(p.Key)
			if err != nil {
				return nil, err
			}
			key = runtime.ToString(k)
		}
		v, err := e.evaluate(p.Value)
		if err != nil {
			return nil, err
		}
		inferName(v, key)
		obj.Set(key, v)
	}
	return obj, nil
}

func (e *evaluator) evaluateArguments(args []ast.Expression) ([]runtime.Value, error) {
	out := make([]runtime.Value, len(args))
	for i, arg := range args {
		v, err := e.evaluate(arg)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// evaluateCallee resolves the function in call position. A member callee
// also yields the receiver bound to `this`.
func (e *evaluator) evaluateCallee(callee ast.Expression) (fn, this runtime.Value, err error) {
	m, ok := callee.(*ast.MemberExpression)
	if !ok {
		fn, err = e.evaluate(callee)
		return fn, nil, err
	}
	fn, err = e.visit(m, func() (runtime.Value, error) {
		obj, key, err := e.evaluateMember(m)
		if err != nil {
			return nil, err
		}
		this = obj
		return getProperty(m, obj, key)
	})
	return fn, this, err
}

func (e *evaluator) evaluateCall(n *ast.CallExpression, tail bool) (runtime.Value, error) {
	callee, this, err := e.evaluateCallee(n.Callee)
	if err != nil {
		return nil, err
	}
	args, err := e.evaluateArguments(n.Arguments)
	if err != nil {
		return nil, err
	}
	if tail {
		return &TailCallReturnValue{Callee: callee, Args: args, Node: n, This: this}, nil
	}
	return e.apply(callee, args, n, this)
}

// evaluateNew allocates an object whose prototype is the constructor's and
// runs the constructor with it as `this`. An object returned by the
// constructor replaces the allocation.
func (e *evaluator) evaluateNew(n *ast.NewExpression) (runtime.Value, error) {
	callee, err := e.evaluate(n.Callee)
	if err != nil {
		return nil, err
	}
	args, err := e.evaluateArguments(n.Arguments)
	if err != nil {
		return nil, err
	}
	var obj *runtime.ObjectValue
	switch fn := callee.(type) {
	case *runtime.Closure:
		obj = runtime.NewObject(fn.Prototype())
	case *runtime.HostFunction:
		obj = runtime.NewObject(fn.Prototype)
	default:
		return nil, &CallingNonFunctionValue{runtimeBase: at(n), Callee: callee}
	}
	v, err := e.apply(callee, args, n, obj)
	if err != nil {
		return nil, err
	}
	if o, ok := v.(*runtime.ObjectValue); ok {
		return o, nil
	}
	return obj, nil
}

func (e *evaluator) evaluateMember(n *ast.MemberExpression) (obj, key runtime.Value, err error) {
	if obj, err = e.evaluate(n.Object); err != nil {
		return nil, nil, err
	}
	if !n.Computed {
		if id, ok := n.Property.(*ast.Identifier); ok {
			return obj, runtime.StringValue(id.Name), nil
		}
	}
	if key, err = e.evaluate(n.Property); err != nil {
		return nil, nil, err
	}
	return obj, key, nil
}

// arrayIndex accepts non-negative integral numbers only.
func arrayIndex(key runtime.Value) (int, bool) {
	n, ok := key.(runtime.NumberValue)
	if !ok {
		return 0, false
	}
	f := float64(n)
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func getProperty(node ast.Node, obj, key runtime.Value) (runtime.Value, error) {
	switch o := obj.(type) {
	case *runtime.ArrayValue:
		if i, ok := arrayIndex(key); ok {
			if i < len(o.Elements) {
				return o.Elements[i], nil
			}
			return runtime.Undefined, nil
		}
	case *runtime.ObjectValue:
		if v, ok := o.Get(runtime.ToString(key)); ok {
			return v, nil
		}
		return runtime.Undefined, nil
	}
	return nil, &GetPropertyError{runtimeBase: at(node), Target: obj, Property: runtime.ToString(key)}
}

// setProperty writes obj[key]. Writing past the end of an array fills the
// gap with undefined, up to maxArrayLength elements.
func (e *evaluator) setProperty(node ast.Node, obj, key, v runtime.Value) error {
	switch o := obj.(type) {
	case *runtime.ArrayValue:
		if i, ok := arrayIndex(key); ok {
			if i >= len(o.Elements) {
				if i >= e.maxArrayLength {
					return &ArrayLengthExceeded{runtimeBase: at(node), Index: i, Limit: e.maxArrayLength}
				}
				grown := make([]runtime.Value, i+1, max(i+1, 2*len(o.Elements)))
				copy(grown, o.Elements)
				for j := len(o.Elements); j < i; j++ {
					grown[j] = runtime.Undefined
				}
				o.Elements = grown
			}
			o.Elements[i] = v
			return nil
		}
	case *runtime.ObjectValue:
		o.Set(runtime.ToString(key), v)
		return nil
	}
	return &SetPropertyError{runtimeBase: at(node), Target: obj, Property: runtime.ToString(key)}
}

func (e *evaluator) evaluateAssignment(n *ast.AssignmentExpression) (runtime.Value, error) {
	switch left := n.Left.(type) {
	case *ast.Identifier:
		current, owner, ok := e.ctx.Runtime.Innermost().Lookup(left.Name)
		if !ok {
			return nil, &UndefinedVariable{runtimeBase: at(left), Name: left.Name}
		}
		if owner.IsConst(left.Name) {
			return nil, &ConstAssignment{runtimeBase: at(n), Name: left.Name}
		}
		v, err := e.assignedValue(n, current)
		if err != nil {
			return nil, err
		}
		owner.Environment[left.Name] = v
		return v, nil
	case *ast.MemberExpression:
		obj, key, err := e.evaluateMember(left)
		if err != nil {
			return nil, err
		}
		var current runtime.Value
		if n.Operator != "=" {
			if current, err = getProperty(left, obj, key); err != nil {
				return nil, err
			}
		}
		v, err := e.assignedValue(n, current)
		if err != nil {
			return nil, err
		}
		if err := e.setProperty(left, obj, key, v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, &rules.DisallowedConstructError{At: diagnostics.AtNode(n.Left), NodeType: n.Left.NodeType()}
}

// assignedValue evaluates the right side, combining it with current for
// compound operators such as +=.
func (e *evaluator) assignedValue(n *ast.AssignmentExpression, current runtime.Value) (runtime.Value, error) {
	v, err := e.evaluate(n.Right)
	if err != nil || n.Operator == "=" {
		return v, err
	}
	op := n.Operator[:len(n.Operator)-1]
	if te := checkBinary(n, op, current, v); te != nil {
		e.warn(te)
		return runtime.Undefined, nil
	}
	return binaryOp(op, current, v), nil
}

func (e *evaluator) evaluateBinary(n *ast.BinaryExpression) (runtime.Value, error) {
	left, err := e.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	if te := checkBinary(n, n.Operator, left, right); te != nil {
		e.warn(te)
		return runtime.Undefined, nil
	}
	return binaryOp(n.Operator, left, right), nil
}

func (e *evaluator) evaluateLogical(n *ast.LogicalExpression, tail bool) (runtime.Value, error) {
	left, err := e.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	if te := checkLogical(n, left); te != nil {
		e.warn(te)
		return runtime.Undefined, nil
	}
	b := bool(left.(runtime.BoolValue))
	if (n.Operator == "&&" && !b) || (n.Operator == "||" && b) {
		return left, nil
	}
	return e.branch(n.Right, tail)
}

func (e *evaluator) evaluateUnary(n *ast.UnaryExpression) (runtime.Value, error) {
	v, err := e.evaluate(n.Argument)
	if err != nil {
		return nil, err
	}
	if te := checkUnary(n, v); te != nil {
		e.warn(te)
		return runtime.Undefined, nil
	}
	return unaryOp(n.Operator, v), nil
}

func (e *evaluator) evaluateConditional(n *ast.ConditionalExpression, tail bool) (runtime.Value, error) {
	ok, err := e.evaluateTest(n.Test)
	if err != nil {
		return nil, err
	}
	if ok {
		return e.branch(n.Consequent, tail)
	}
	return e.branch(n.Alternate, tail)
}
