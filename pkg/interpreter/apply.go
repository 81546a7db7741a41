package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/runtime"
)

// apply calls callee. Tail calls returned by the body are taken in the same
// loop iteration by replacing the innermost frame, so a chain of tail calls
// runs at constant frame and host stack depth.
func (e *evaluator) apply(callee runtime.Value, args []runtime.Value, site ast.Node, this runtime.Value) (runtime.Value, error) {
	rt := &e.ctx.Runtime
	entered := false
	for {
		if err := e.suspend(SuspendCall, site); err != nil {
			return nil, err
		}
		switch fn := callee.(type) {
		case *runtime.HostFunction:
			v, err := e.callHost(fn, args, site, this)
			if err != nil {
				return nil, err
			}
			if entered {
				e.leave()
			}
			return v, nil
		case *runtime.Closure, *runtime.ArrowClosure:
			frame, err := e.bind(fn, args, site, this)
			if err != nil {
				return nil, err
			}
			if entered {
				rt.ReplaceFrame(frame)
			} else {
				if err := e.enter(frame, site); err != nil {
					return nil, err
				}
				entered = true
			}
			v, err := e.evaluateBody(fn)
			if err != nil {
				return nil, err
			}
			if tc, ok := v.(*TailCallReturnValue); ok {
				callee, args, site, this = tc.Callee, tc.Args, tc.Node, tc.This
				continue
			}
			e.leave()
			return v, nil
		default:
			return nil, &CallingNonFunctionValue{runtimeBase: at(site), Callee: callee}
		}
	}
}

func (e *evaluator) enter(frame *runtime.Frame, site ast.Node) error {
	rt := &e.ctx.Runtime
	if e.depth >= e.maxDepth {
		return &MaximumStackLimitExceeded{runtimeBase: at(site), Calls: recentCalls(rt, frame, 3)}
	}
	e.depth++
	rt.PushFrame(frame)
	return nil
}

func (e *evaluator) leave() {
	e.depth--
	e.ctx.Runtime.PopFrame()
}

// bind checks arity and creates the frame for one application.
func (e *evaluator) bind(fn runtime.Value, args []runtime.Value, site ast.Node, this runtime.Value) (*runtime.Frame, error) {
	var (
		params []*ast.Identifier
		parent *runtime.Frame
		name   string
		arrow  bool
	)
	switch c := fn.(type) {
	case *runtime.Closure:
		params, parent, name = c.Node.FunctionParams(), c.Frame, c.Name
	case *runtime.ArrowClosure:
		params, parent, name, arrow = c.Node.Params, c.Frame, c.Name, true
	}
	if len(args) != len(params) {
		return nil, &InvalidNumberOfArguments{runtimeBase: at(site), Callee: name, Expected: len(params), Got: len(args)}
	}
	frameName := name
	if frameName == "" {
		frameName = "*anonymous*"
	}
	frame := runtime.NewFrame(frameName, parent)
	for i, p := range params {
		frame.Define(p.Name, args[i], false)
	}
	frame.CallSite = &runtime.CallSite{Node: site, Callee: name, Args: args}
	if !arrow {
		if this == nil {
			this = runtime.Undefined
		}
		frame.ThisContext = this
	}
	return frame, nil
}

// evaluateBody runs a function body in the frame apply just entered and
// reduces its completion to a return value or a pending tail call.
func (e *evaluator) evaluateBody(fn runtime.Value) (runtime.Value, error) {
	var body ast.Node
	switch c := fn.(type) {
	case *runtime.Closure:
		body = c.Node.FunctionBody()
	case *runtime.ArrowClosure:
		if c.Node.Expression {
			return e.evaluateTail(c.Node.Body.(ast.Expression))
		}
		body = c.Node.Body
	}
	block := body.(*ast.BlockStatement)
	v, err := e.visit(block, func() (runtime.Value, error) {
		return e.evaluateSequence(block.Body)
	})
	if err != nil {
		return nil, err
	}
	switch r := v.(type) {
	case *ReturnValue:
		return r.Value, nil
	case *TailCallReturnValue:
		return r, nil
	}
	return runtime.Undefined, nil
}

// callHost invokes a host function. Host failures become exceptions located
// at the call.
func (e *evaluator) callHost(fn *runtime.HostFunction, args []runtime.Value, site ast.Node, this runtime.Value) (runtime.Value, error) {
	if fn.Arity >= 0 && len(args) != fn.Arity {
		return nil, &InvalidNumberOfArguments{runtimeBase: at(site), Callee: fn.Name, Expected: fn.Arity, Got: len(args)}
	}
	if this == nil {
		this = runtime.Undefined
	}
	call := &runtime.HostCall{Context: e.ctx, Node: site, This: this}
	v, err := safeInvoke(func() (runtime.Value, error) { return fn.Fn(call, args) })
	if err != nil {
		var se diagnostics.SourceError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, &ExceptionError{runtimeBase: at(site), Message: err.Error()}
	}
	if v == nil {
		return runtime.Undefined, nil
	}
	return v, nil
}

// recentCalls renders up to n call sites, innermost first, starting with the
// frame that could not be entered.
func recentCalls(rt *runtime.Runtime, pending *runtime.Frame, n int) []string {
	var out []string
	add := func(f *runtime.Frame) {
		if f.CallSite != nil && len(out) < n {
			out = append(out, formatCall(f.CallSite))
		}
	}
	add(pending)
	for i := len(rt.Frames) - 1; i >= 0 && len(out) < n; i-- {
		add(rt.Frames[i])
	}
	return out
}

func formatCall(cs *runtime.CallSite) string {
	args := make([]string, len(cs.Args))
	for i, a := range cs.Args {
		args[i] = runtime.Stringify(a)
	}
	name := cs.Callee
	if name == "" {
		name = "*anonymous*"
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}
