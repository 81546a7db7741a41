package interpreter

import (
	"context"

	"slang/interpreter-go/pkg/runtime"
)

type Status int

const (
	StatusFinished Status = iota
	StatusError
	StatusSuspended
)

func (s Status) String() string {
	switch s {
	case StatusFinished:
		return "finished"
	case StatusError:
		return "error"
	default:
		return "suspended"
	}
}

// Result is what a run settles to. Value is set when finished; the
// diagnostics of an error are on Context.Errors. A suspended result can be
// handed to Resume.
type Result struct {
	Status  Status
	Value   runtime.Value
	Context *runtime.Context

	evaluation *Evaluation
	scheduler  Scheduler
}

// Future settles exactly once with a Result.
type Future struct {
	done   chan struct{}
	result *Result
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func resolvedFuture(r *Result) *Future {
	f := newFuture()
	f.resolve(r)
	return f
}

func (f *Future) resolve(r *Result) {
	f.result = r
	close(f.done)
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the run settles or ctx is cancelled. Cancelling ctx
// does not stop the run; use Interrupt for that.
func (f *Future) Await(ctx context.Context) (*Result, error) {
	select {
	case <-f.done:
		return f.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Then calls fn with the result on its own goroutine once the run settles.
func (f *Future) Then(fn func(*Result)) {
	go func() {
		<-f.done
		fn(f.result)
	}()
}
