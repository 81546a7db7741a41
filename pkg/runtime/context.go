package runtime

import (
	"io"
	"sync/atomic"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/diagnostics"
)

// Runtime is the evaluator's mutable state. Frames are stored outermost
// first: Frames[0] is the global frame and is never popped.
type Runtime struct {
	IsRunning bool
	Frames    []*Frame
	Nodes     []ast.Node
}

// Global returns the session's global frame.
func (r *Runtime) Global() *Frame {
	return r.Frames[0]
}

// Builtins returns the frame above the global frame that holds the standard
// library and host externals. Programs may shadow these names.
func (r *Runtime) Builtins() *Frame {
	return r.Frames[0].Parent
}

// Innermost returns the frame currently evaluating.
func (r *Runtime) Innermost() *Frame {
	return r.Frames[len(r.Frames)-1]
}

func (r *Runtime) PushFrame(f *Frame) {
	r.Frames = append(r.Frames, f)
}

// PopFrame never removes the global frame.
func (r *Runtime) PopFrame() {
	if len(r.Frames) > 1 {
		r.Frames[len(r.Frames)-1] = nil
		r.Frames = r.Frames[:len(r.Frames)-1]
	}
}

// ReplaceFrame swaps the innermost frame, used for tail calls.
func (r *Runtime) ReplaceFrame(f *Frame) {
	if len(r.Frames) == 1 {
		r.PushFrame(f)
		return
	}
	r.Frames[len(r.Frames)-1] = f
}

// ResetToGlobal drops every frame and node above the global frame.
func (r *Runtime) ResetToGlobal() {
	for i := 1; i < len(r.Frames); i++ {
		r.Frames[i] = nil
	}
	r.Frames = r.Frames[:1]
	r.Nodes = r.Nodes[:0]
}

func (r *Runtime) PushNode(n ast.Node) {
	r.Nodes = append(r.Nodes, n)
}

func (r *Runtime) PopNode() {
	if len(r.Nodes) > 0 {
		r.Nodes = r.Nodes[:len(r.Nodes)-1]
	}
}

// CurrentNode is the innermost node being visited, or nil.
func (r *Runtime) CurrentNode() ast.Node {
	if len(r.Nodes) == 0 {
		return nil
	}
	return r.Nodes[len(r.Nodes)-1]
}

// Context is one evaluation session. It is owned by a single evaluation at a
// time; only the interrupt request may be posted from another goroutine.
type Context struct {
	Stage     int
	Externals []string
	Errors    []diagnostics.SourceError
	CFG       CFG
	Runtime   Runtime

	// Output receives program output such as display.
	Output io.Writer

	run atomic.Int32
}

// Run states. Only the owning scheduler moves a context in or out of
// runIdle; other goroutines may only move runActive to runInterrupting.
const (
	runIdle int32 = iota
	runActive
	runInterrupting
)

// NewContext creates a context whose runtime holds only the global frame,
// itself nested in an empty builtins frame.
func NewContext(stage int, output io.Writer) *Context {
	if output == nil {
		output = io.Discard
	}
	c := &Context{Stage: stage, Output: output}
	c.CFG.Reset()
	c.Runtime.Frames = []*Frame{NewFrame("global", NewFrame("builtins", nil))}
	return c
}

// AddError appends a diagnostic in discovery order.
func (c *Context) AddError(err diagnostics.SourceError) {
	c.Errors = append(c.Errors, err)
}

// HasErrors reports whether an ERROR severity diagnostic was recorded.
func (c *Context) HasErrors() bool {
	return diagnostics.HasErrors(c.Errors)
}

// BeginRun marks the context as owned by a scheduler. A request left over
// from an earlier run is dropped.
func (c *Context) BeginRun() {
	c.run.Store(runActive)
}

// EndRun releases the context and reports whether a stop request was still
// pending, so the caller can honour it instead of leaking it to the next run.
func (c *Context) EndRun() bool {
	return c.run.Swap(runIdle) == runInterrupting
}

// RequestInterrupt posts a stop request for the running scheduler. Safe from
// any goroutine. It returns false, posting nothing, when no run is active.
func (c *Context) RequestInterrupt() bool {
	for {
		switch state := c.run.Load(); state {
		case runIdle:
			return false
		case runInterrupting:
			return true
		default:
			if c.run.CompareAndSwap(state, runInterrupting) {
				return true
			}
		}
	}
}

// TakeInterrupt consumes a pending stop request.
func (c *Context) TakeInterrupt() bool {
	return c.run.CompareAndSwap(runInterrupting, runActive)
}

// Active reports whether a scheduler owns the context. Safe from any
// goroutine, unlike Runtime.IsRunning.
func (c *Context) Active() bool {
	return c.run.Load() != runIdle
}
