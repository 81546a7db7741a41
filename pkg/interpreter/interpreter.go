// Package interpreter evaluates parsed programs. Evaluation is a coroutine
// that suspends before every node, driven to a Result by a Scheduler.
package interpreter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/parser"
	"slang/interpreter-go/pkg/runtime"
	"slang/interpreter-go/pkg/stdlib"
)

// Host is the capability object a session is created with. Externals named
// at creation are looked up in Symbols; nothing else from the host is
// visible to programs.
type Host struct {
	Output  io.Writer
	Symbols map[string]runtime.Value
	Logger  *slog.Logger
}

const (
	SchedulerAsync      = "async"
	SchedulerPreemptive = "preemptive"
)

type Options struct {
	// Scheduler is SchedulerAsync (the default) or SchedulerPreemptive.
	Scheduler    string
	Steps        int
	MaxTicks     int
	MaxCallDepth int

	// MaxArrayLength bounds array growth by index assignment. Zero means
	// DefaultMaxArrayLength.
	MaxArrayLength int
	Logger         *slog.Logger
}

func (o Options) scheduler(logger *slog.Logger) Scheduler {
	if o.Scheduler == SchedulerPreemptive {
		return &PreemptiveScheduler{Steps: o.Steps, MaxTicks: o.MaxTicks, Logger: logger}
	}
	return &AsyncScheduler{Logger: logger}
}

// CreateContext starts a session at stage. The builtins frame receives the
// stage's library, the prelude and the requested externals.
func CreateContext(stage int, externals []string, host Host) (*runtime.Context, error) {
	logger := loggerOr(host.Logger)
	c := runtime.NewContext(stage, host.Output)
	c.Externals = externals
	builtins := c.Runtime.Builtins()
	stdlib.Install(builtins, stage)

	if src := stdlib.Prelude(stage); src != "" {
		if err := loadPrelude(src, c, logger); err != nil {
			return nil, fmt.Errorf("interpreter: prelude: %w", err)
		}
	}

	var missing []string
	for _, name := range externals {
		v, ok := host.Symbols[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		builtins.Define(name, v, true)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("interpreter: host does not provide %s", strings.Join(missing, ", "))
	}
	logger.Debug("context created", "stage", stage, "externals", len(externals))
	return c, nil
}

// loadPrelude evaluates library source directly into the builtins frame.
func loadPrelude(src string, c *runtime.Context, logger *slog.Logger) error {
	lib := runtime.NewContext(c.Stage, c.Output)
	lib.Runtime.Frames = []*runtime.Frame{c.Runtime.Builtins()}
	prog := parser.Parse(src, lib)
	if prog == nil {
		return fmt.Errorf("parse failed:\n%s", diagnostics.Format(lib.Errors))
	}
	ev := Evaluate(prog, lib, WithLogger(logger))
	for ev.Step() {
	}
	_, err := ev.Result()
	return err
}

// RunInContext parses source against c and schedules its evaluation. A
// program that fails to parse settles immediately with StatusError.
func RunInContext(ctx context.Context, source string, c *runtime.Context, opts Options) *Future {
	logger := loggerOr(opts.Logger)
	p, err := parser.New(logger)
	if err != nil {
		c.AddError(&ExceptionError{Message: err.Error()})
		return resolvedFuture(&Result{Status: StatusError, Context: c})
	}
	defer p.Close()

	prog := p.Parse(source, c)
	if prog == nil {
		logger.Debug("program rejected", "errors", len(c.Errors))
		return resolvedFuture(&Result{Status: StatusError, Context: c})
	}
	ev := Evaluate(prog, c, WithMaxCallDepth(opts.MaxCallDepth), WithMaxArrayLength(opts.MaxArrayLength), WithLogger(logger))
	return opts.scheduler(logger).Run(ctx, ev, c)
}

// Interrupt stops the evaluation running in c at its next tick boundary. A
// run that settles before reaching one is reported as interrupted all the
// same. If nothing is running it takes effect at once.
func Interrupt(c *runtime.Context) {
	if c.RequestInterrupt() {
		return
	}
	node := c.Runtime.CurrentNode()
	c.Runtime.ResetToGlobal()
	c.Runtime.IsRunning = false
	c.AddError(&InterruptedError{runtimeBase: at(node)})
}

// Resume continues a suspended result with the scheduler that suspended it.
// Any other result is returned as is.
func Resume(ctx context.Context, r *Result) *Future {
	if r == nil || r.Status != StatusSuspended {
		return resolvedFuture(r)
	}
	return r.scheduler.Run(ctx, r.evaluation, r.Context)
}
