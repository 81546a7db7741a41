package interpreter

import (
	"context"
	"errors"
	"testing"
	"time"

	"slang/interpreter-go/pkg/runtime"
)

const spin = "let i = 0; while (true) { i = i + 1; }"

func awaitWithin(t *testing.T, f *Future, d time.Duration) *Result {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	r, err := f.Await(ctx)
	if err != nil {
		t.Fatalf("future did not settle: %v", err)
	}
	return r
}

func TestPreemptiveRunStopsOnlyWhenInterrupted(t *testing.T) {
	c := newContext(t, 8, Host{})
	f := RunInContext(context.Background(), spin, c, Options{Scheduler: SchedulerPreemptive, Steps: 1})

	select {
	case <-f.Done():
		t.Fatalf("an infinite loop settled on its own")
	case <-time.After(50 * time.Millisecond):
	}

	Interrupt(c)
	r := awaitWithin(t, f, 5*time.Second)
	if r.Status != StatusError {
		t.Fatalf("expected error, got %s", r.Status)
	}
	if c.Runtime.IsRunning {
		t.Fatalf("runtime still marked running")
	}
	if _, ok := findError[*InterruptedError](c.Errors); !ok {
		t.Fatalf("missing InterruptedError in %v", c.Errors)
	}
	if len(c.Runtime.Frames) != 1 {
		t.Fatalf("frames not reset: %d", len(c.Runtime.Frames))
	}
}

func TestCancelledContextInterrupts(t *testing.T) {
	c := newContext(t, 8, Host{})
	ctx, cancel := context.WithCancel(context.Background())
	f := RunInContext(ctx, spin, c, Options{Scheduler: SchedulerPreemptive, Steps: 10})
	cancel()
	r := awaitWithin(t, f, 5*time.Second)
	if _, ok := findError[*InterruptedError](c.Errors); !ok || r.Status != StatusError {
		t.Fatalf("expected an interrupted error result, got %s", r.Status)
	}
}

func TestSuspendedRunsResume(t *testing.T) {
	c := newContext(t, 8, Host{})
	src := "let i = 0; while (i < 100) { i = i + 1; } i;"
	r := awaitWithin(t, RunInContext(context.Background(), src, c, Options{Scheduler: SchedulerPreemptive, Steps: 10, MaxTicks: 1}), time.Second)
	suspensions := 0
	for r.Status == StatusSuspended {
		suspensions++
		if !c.Runtime.IsRunning {
			t.Fatalf("a suspended run is still running")
		}
		r = awaitWithin(t, Resume(context.Background(), r), time.Second)
	}
	expectFinished(t, r, "100")
	if suspensions < 2 {
		t.Fatalf("expected several suspensions, got %d", suspensions)
	}
}

func TestResumeOfSettledResultIsIdentity(t *testing.T) {
	r, _ := evalSource(t, 3, "1;")
	again := awaitWithin(t, Resume(context.Background(), r), time.Second)
	if again != r {
		t.Fatalf("expected the same result back")
	}
}

func TestInterruptWhenIdleAppliesAtOnce(t *testing.T) {
	c := newContext(t, 3, Host{})
	c.Runtime.PushFrame(runtime.NewFrame("stale", c.Runtime.Global()))
	Interrupt(c)
	if len(c.Runtime.Frames) != 1 || c.Runtime.IsRunning {
		t.Fatalf("idle interrupt did not reset the runtime")
	}
	if _, ok := findError[*InterruptedError](c.Errors); !ok {
		t.Fatalf("missing InterruptedError")
	}
	if c.TakeInterrupt() {
		t.Fatalf("idle interrupt left a pending request")
	}
}

func TestAsyncSchedulerSettlesBeforeReturning(t *testing.T) {
	c := newContext(t, 3, Host{})
	f := RunInContext(context.Background(), "function f(n) { return n === 0 ? 0 : 1 + f(n - 1); } f(500);", c, Options{})
	select {
	case <-f.Done():
	default:
		t.Fatalf("async run should settle synchronously")
	}
	r := awaitWithin(t, f, time.Second)
	expectFinished(t, r, "500")
}

func TestStoppedEvaluationReportsStop(t *testing.T) {
	c := newContext(t, 8, Host{})
	prog := mustParse(t, spin, c)
	ev := Evaluate(prog, c)
	for i := 0; i < 20 && ev.Step(); i++ {
	}
	ev.Stop()
	if ev.Step() {
		t.Fatalf("a stopped evaluation must not step")
	}
	if _, err := ev.Result(); !errors.Is(err, errStopped) {
		t.Fatalf("expected errStopped, got %v", err)
	}
}

func TestInterruptOfShortRunDoesNotLeakIntoNextRun(t *testing.T) {
	c := newContext(t, 8, Host{})
	opts := Options{Scheduler: SchedulerPreemptive, Steps: 1000}

	f := RunInContext(context.Background(), "1;", c, opts)
	Interrupt(c)
	r := awaitWithin(t, f, time.Second)
	if r.Status != StatusError {
		t.Fatalf("interrupted run should report an error, got %s", r.Status)
	}
	if _, ok := findError[*InterruptedError](c.Errors); !ok {
		t.Fatalf("missing InterruptedError")
	}
	if c.Active() {
		t.Fatalf("context still owned after the run settled")
	}

	seen := len(c.Errors)
	r = awaitWithin(t, RunInContext(context.Background(), "let i = 0; while (i < 10) { i = i + 1; } i;", c, opts), time.Second)
	expectFinished(t, r, "10")
	if len(c.Errors) != seen {
		t.Fatalf("next run recorded errors: %v", c.Errors[seen:])
	}
}

func TestRunDropsRequestFromEarlierRun(t *testing.T) {
	c := newContext(t, 8, Host{})
	c.BeginRun()
	c.RequestInterrupt()
	ev := Evaluate(mustParse(t, spin, c), c)
	s := &PreemptiveScheduler{Steps: 5, MaxTicks: 1}
	r := awaitWithin(t, s.Run(context.Background(), ev, c), time.Second)
	if r.Status != StatusSuspended {
		t.Fatalf("stale request aborted the run: %s", r.Status)
	}
	if c.Active() {
		t.Fatalf("suspended run should release the context")
	}
	ev.Stop()
}
