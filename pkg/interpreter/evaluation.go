package interpreter

import (
	"errors"
	"iter"
	"log/slog"

	"slang/interpreter-go/internal/invariant"
	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested non-tail applications.
const DefaultMaxCallDepth = 10000

// DefaultMaxArrayLength bounds how far an index assignment may grow an array.
const DefaultMaxArrayLength = 1 << 20

// SuspensionReason tells a scheduler why the evaluator paused.
type SuspensionReason int

const (
	// SuspendVisit precedes the evaluation of every node.
	SuspendVisit SuspensionReason = iota
	// SuspendCall precedes every function application, including each
	// iteration of a tail call.
	SuspendCall
)

func (r SuspensionReason) String() string {
	if r == SuspendCall {
		return "call"
	}
	return "visit"
}

// Suspension is the value yielded at every pause point.
type Suspension struct {
	Reason SuspensionReason
	Node   ast.Node
}

var errStopped = errors.New("interpreter: evaluation stopped")

// EvalOption configures an Evaluation before its first step.
type EvalOption func(*evaluator)

func WithMaxCallDepth(n int) EvalOption {
	return func(e *evaluator) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

func WithMaxArrayLength(n int) EvalOption {
	return func(e *evaluator) {
		if n > 0 {
			e.maxArrayLength = n
		}
	}
}

func WithLogger(logger *slog.Logger) EvalOption {
	return func(e *evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Evaluation is a resumable computation over one node. Nothing runs until the
// first Step; each Step advances to the next suspension point. An Evaluation
// must be driven from one goroutine at a time.
type Evaluation struct {
	ctx  *runtime.Context
	next func() (Suspension, bool)
	stop func()

	current Suspension
	steps   int
	done    bool
	stopped bool

	value runtime.Value
	err   error
}

// Evaluate prepares node for stepwise evaluation in ctx.
func Evaluate(node ast.Node, ctx *runtime.Context, opts ...EvalOption) *Evaluation {
	invariant.NotNil(node, "node")
	invariant.NotNil(ctx, "ctx")

	e := &evaluator{
		ctx:            ctx,
		maxDepth:       DefaultMaxCallDepth,
		maxArrayLength: DefaultMaxArrayLength,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	ev := &Evaluation{ctx: ctx}
	seq := func(yield func(Suspension) bool) {
		e.yield = yield
		ev.value, ev.err = e.run(node)
	}
	ev.next, ev.stop = iter.Pull(seq)
	return ev
}

// Step advances to the next suspension. It returns false once the
// computation has finished or been stopped.
func (ev *Evaluation) Step() bool {
	if ev.done {
		return false
	}
	s, ok := ev.next()
	if !ok {
		ev.done = true
		ev.stop()
		return false
	}
	ev.current = s
	ev.steps++
	return true
}

// Stop abandons the computation. The evaluator unwinds without touching the
// frame stack; the caller owns the cleanup.
func (ev *Evaluation) Stop() {
	if ev.done {
		return
	}
	ev.stop()
	ev.done = true
	ev.stopped = true
}

func (ev *Evaluation) Done() bool                { return ev.done }
func (ev *Evaluation) Stopped() bool             { return ev.stopped }
func (ev *Evaluation) Steps() int                { return ev.steps }
func (ev *Evaluation) Current() Suspension       { return ev.current }
func (ev *Evaluation) Context() *runtime.Context { return ev.ctx }

// Result returns the completed value or the fatal error that ended the run.
func (ev *Evaluation) Result() (runtime.Value, error) {
	invariant.Precondition(ev.done, "Result called before the evaluation finished")
	if ev.stopped && ev.err == nil {
		return nil, errStopped
	}
	return ev.value, ev.err
}

// evaluator is the body of the coroutine behind an Evaluation.
type evaluator struct {
	ctx            *runtime.Context
	yield          func(Suspension) bool
	stopped        bool
	depth          int
	maxDepth       int
	maxArrayLength int
	logger         *slog.Logger
}

func (e *evaluator) suspend(reason SuspensionReason, node ast.Node) error {
	if e.stopped || !e.yield(Suspension{Reason: reason, Node: node}) {
		e.stopped = true
		return errStopped
	}
	return nil
}

// run evaluates the root node and records a fatal error on the context.
func (e *evaluator) run(node ast.Node) (runtime.Value, error) {
	rt := &e.ctx.Runtime
	rt.IsRunning = true
	e.logger.Debug("evaluation started", "node", node.NodeType(), "frames", len(rt.Frames))

	v, err := e.evaluate(node)
	if errors.Is(err, errStopped) {
		return nil, err
	}
	rt.IsRunning = false
	if err != nil {
		rt.ResetToGlobal()
		e.depth = 0
		se := asSourceError(err, node)
		e.ctx.AddError(se)
		e.logger.Debug("evaluation failed", "error", se.Explain())
		return nil, se
	}
	e.logger.Debug("evaluation finished", "kind", settle(v).Kind())
	return settle(v), nil
}

// asSourceError keeps located diagnostics and wraps anything else as an
// exception at fallback.
func asSourceError(err error, fallback ast.Node) diagnostics.SourceError {
	var se diagnostics.SourceError
	if errors.As(err, &se) {
		return se
	}
	return &ExceptionError{runtimeBase: at(fallback), Message: err.Error()}
}

func (e *evaluator) warn(err diagnostics.SourceError) {
	e.ctx.AddError(err)
}

// evaluate visits one node: it becomes the current node, the coroutine
// suspends, then the node is dispatched.
func (e *evaluator) evaluate(node ast.Node) (runtime.Value, error) {
	rt := &e.ctx.Runtime
	rt.PushNode(node)
	if err := e.suspend(SuspendVisit, node); err != nil {
		rt.PopNode()
		return nil, err
	}
	v, err := e.dispatch(node)
	rt.PopNode()
	return v, err
}

func (e *evaluator) dispatch(node ast.Node) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Program:
		return e.evaluateProgram(n)
	case *ast.ExpressionStatement:
		return e.evaluate(n.Expression)
	case *ast.VariableDeclaration:
		return e.evaluateVariableDeclaration(n)
	case *ast.FunctionDeclaration:
		return e.evaluateFunctionDeclaration(n)
	case *ast.ReturnStatement:
		return e.evaluateReturnStatement(n)
	case *ast.IfStatement:
		return e.evaluateIfStatement(n)
	case *ast.WhileStatement:
		return e.evaluateWhileStatement(n)
	case *ast.ForStatement:
		return e.evaluateForStatement(n)
	case *ast.BreakStatement:
		return BreakValue{}, nil
	case *ast.ContinueStatement:
		return ContinueValue{}, nil
	case *ast.BlockStatement:
		return e.evaluateBlock(n)
	case *ast.EmptyStatement:
		return runtime.Undefined, nil
	default:
		return e.evaluateExpression(node)
	}
}
