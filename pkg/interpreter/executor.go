package interpreter

import (
	"context"
	"fmt"
	"log/slog"
	goruntime "runtime"

	"slang/interpreter-go/pkg/runtime"
)

// Scheduler drives an Evaluation to a Result.
type Scheduler interface {
	Run(ctx context.Context, ev *Evaluation, c *runtime.Context) *Future
}

const (
	DefaultSteps = 1000

	// asyncCheckEvery is how many steps the async scheduler takes between
	// looks at pending interrupts.
	asyncCheckEvery = 1024
)

// safeInvoke converts a panic in host code into an error.
func safeInvoke(task func() (runtime.Value, error)) (result runtime.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task()
}

// settled builds the Result for an evaluation that ran to its end.
func settled(ev *Evaluation) *Result {
	c := ev.Context()
	v, err := ev.Result()
	if err != nil {
		return &Result{Status: StatusError, Context: c}
	}
	return &Result{Status: StatusFinished, Value: v, Context: c}
}

// abort stops ev at the current tick boundary, discards every frame above the
// global frame and records the interruption.
func abort(ev *Evaluation) *Result {
	c := ev.Context()
	node := c.Runtime.CurrentNode()
	ev.Stop()
	c.Runtime.ResetToGlobal()
	c.Runtime.IsRunning = false
	c.AddError(&InterruptedError{runtimeBase: at(node)})
	return &Result{Status: StatusError, Context: c}
}

func interrupted(ctx context.Context, c *runtime.Context) bool {
	return c.TakeInterrupt() || ctx.Err() != nil
}

// finish releases c after ev ran to its end. A stop request that arrived
// after the last tick boundary still aborts a run that would have finished.
func finish(ev *Evaluation, c *runtime.Context) *Result {
	pending := c.EndRun()
	if _, err := ev.Result(); pending && err == nil {
		return abort(ev)
	}
	return settled(ev)
}

// AsyncScheduler runs the evaluation to completion on the calling goroutine
// and returns an already settled future.
type AsyncScheduler struct {
	Logger *slog.Logger
}

func (s *AsyncScheduler) Run(ctx context.Context, ev *Evaluation, c *runtime.Context) *Future {
	logger := loggerOr(s.Logger)
	c.BeginRun()
	for ev.Step() {
		if ev.Steps()%asyncCheckEvery == 0 && interrupted(ctx, c) {
			logger.Debug("evaluation interrupted", "steps", ev.Steps())
			c.EndRun()
			return resolvedFuture(abort(ev))
		}
	}
	logger.Debug("evaluation settled", "steps", ev.Steps())
	return resolvedFuture(finish(ev, c))
}

// PreemptiveScheduler runs the evaluation on its own goroutine in ticks of
// Steps suspensions, yielding the processor between ticks. Interrupts are
// applied at tick boundaries. With MaxTicks set, a run that has not finished
// after that many ticks settles as suspended and can be resumed.
type PreemptiveScheduler struct {
	Steps    int
	MaxTicks int
	Logger   *slog.Logger
}

func (s *PreemptiveScheduler) Run(ctx context.Context, ev *Evaluation, c *runtime.Context) *Future {
	steps := s.Steps
	if steps <= 0 {
		steps = DefaultSteps
	}
	logger := loggerOr(s.Logger)
	f := newFuture()
	c.BeginRun()
	go func() {
		f.resolve(s.loop(ctx, ev, c, steps, logger))
	}()
	return f
}

func (s *PreemptiveScheduler) loop(ctx context.Context, ev *Evaluation, c *runtime.Context, steps int, logger *slog.Logger) *Result {
	for ticks := 1; ; ticks++ {
		if interrupted(ctx, c) {
			logger.Debug("evaluation interrupted", "ticks", ticks)
			c.EndRun()
			return abort(ev)
		}
		for i := 0; i < steps; i++ {
			if !ev.Step() {
				logger.Debug("evaluation settled", "ticks", ticks, "steps", ev.Steps())
				return finish(ev, c)
			}
		}
		if s.MaxTicks > 0 && ticks >= s.MaxTicks {
			if c.EndRun() {
				logger.Debug("evaluation interrupted", "ticks", ticks)
				return abort(ev)
			}
			logger.Debug("evaluation suspended", "ticks", ticks)
			return &Result{Status: StatusSuspended, Context: c, evaluation: ev, scheduler: s}
		}
		goruntime.Gosched()
	}
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
