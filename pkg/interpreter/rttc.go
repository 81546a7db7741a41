package interpreter

import (
	"math"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/runtime"
)

const (
	leftSide  = "on left hand side of operation"
	rightSide = "on right hand side of operation"
)

func isNumber(v runtime.Value) bool {
	_, ok := v.(runtime.NumberValue)
	return ok
}

func isString(v runtime.Value) bool {
	_, ok := v.(runtime.StringValue)
	return ok
}

func isBool(v runtime.Value) bool {
	_, ok := v.(runtime.BoolValue)
	return ok
}

func mismatch(node ast.Node, context, expected string, got runtime.Value) *TypeError {
	return &TypeError{At: diagnostics.AtNode(node), Context: context, Expected: expected, Got: got}
}

// checkUnary requires a boolean operand for ! and a number for -.
func checkUnary(n *ast.UnaryExpression, v runtime.Value) *TypeError {
	switch n.Operator {
	case "!":
		if !isBool(v) {
			return mismatch(n, "", "boolean", v)
		}
	case "-", "+":
		if !isNumber(v) {
			return mismatch(n, "", "number", v)
		}
	}
	return nil
}

// checkBinary enforces operand kinds. Strict equality takes anything; + takes
// numbers or strings on either side; the other arithmetic operators take
// numbers; comparisons take two numbers or two strings.
func checkBinary(n ast.Node, op string, left, right runtime.Value) *TypeError {
	switch op {
	case "===", "!==", "==", "!=":
		return nil
	case "+":
		if !isNumber(left) && !isString(left) {
			return mismatch(n, leftSide, "string or number", left)
		}
		if !isNumber(right) && !isString(right) {
			return mismatch(n, rightSide, "string or number", right)
		}
	case "-", "*", "/", "%":
		if !isNumber(left) {
			return mismatch(n, leftSide, "number", left)
		}
		if !isNumber(right) {
			return mismatch(n, rightSide, "number", right)
		}
	case "<", ">", "<=", ">=":
		switch {
		case isNumber(left):
			if !isNumber(right) {
				return mismatch(n, rightSide, "number", right)
			}
		case isString(left):
			if !isString(right) {
				return mismatch(n, rightSide, "string", right)
			}
		default:
			return mismatch(n, leftSide, "string or number", left)
		}
	}
	return nil
}

func checkLogical(n *ast.LogicalExpression, left runtime.Value) *TypeError {
	if !isBool(left) {
		return mismatch(n, leftSide, "boolean", left)
	}
	return nil
}

// binaryOp assumes checkBinary accepted the operands.
func binaryOp(op string, left, right runtime.Value) runtime.Value {
	switch op {
	case "===", "==":
		return runtime.BoolValue(runtime.StrictEquals(left, right))
	case "!==", "!=":
		return runtime.BoolValue(!runtime.StrictEquals(left, right))
	case "+":
		l, lok := left.(runtime.NumberValue)
		r, rok := right.(runtime.NumberValue)
		if lok && rok {
			return l + r
		}
		return runtime.StringValue(runtime.ToString(left) + runtime.ToString(right))
	case "-", "*", "/", "%":
		l, r := float64(left.(runtime.NumberValue)), float64(right.(runtime.NumberValue))
		switch op {
		case "-":
			return runtime.NumberValue(l - r)
		case "*":
			return runtime.NumberValue(l * r)
		case "/":
			return runtime.NumberValue(l / r)
		default:
			return runtime.NumberValue(math.Mod(l, r))
		}
	case "<", ">", "<=", ">=":
		return runtime.BoolValue(compare(op, left, right))
	}
	return runtime.Undefined
}

func compare(op string, left, right runtime.Value) bool {
	var c int
	switch l := left.(type) {
	case runtime.NumberValue:
		r := right.(runtime.NumberValue)
		if math.IsNaN(float64(l)) || math.IsNaN(float64(r)) {
			return false
		}
		switch {
		case l < r:
			c = -1
		case l > r:
			c = 1
		}
	case runtime.StringValue:
		r := right.(runtime.StringValue)
		switch {
		case l < r:
			c = -1
		case l > r:
			c = 1
		}
	}
	switch op {
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	default:
		return c >= 0
	}
}

func unaryOp(op string, v runtime.Value) runtime.Value {
	switch op {
	case "!":
		return !v.(runtime.BoolValue)
	case "-":
		return -v.(runtime.NumberValue)
	case "+":
		return v
	case "typeof":
		return runtime.StringValue(typeOf(v))
	}
	return runtime.Undefined
}

func typeOf(v runtime.Value) string {
	switch v.Kind() {
	case runtime.KindNull, runtime.KindArray:
		return "object"
	}
	return v.Kind().String()
}
