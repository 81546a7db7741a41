package conformance

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/interpreter"
	"slang/interpreter-go/pkg/runtime"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Case       LoadedCase
	Passed     bool
	Skipped    bool
	SkipReason string
	Err        error
}

// Runner executes cases, each in a fresh context.
type Runner struct {
	Logger *slog.Logger
}

func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Logger: logger}
}

// Run executes a single case. Suspended runs are resumed until they settle.
func (r *Runner) Run(ctx context.Context, lc LoadedCase) CaseResult {
	if lc.Case.Skip != "" {
		return CaseResult{Case: lc, Skipped: true, SkipReason: lc.Case.Skip}
	}
	var out bytes.Buffer
	c, err := interpreter.CreateContext(lc.Case.stage(lc.Suite), nil, interpreter.Host{Output: &out, Logger: r.Logger})
	if err != nil {
		return CaseResult{Case: lc, Err: err}
	}
	opts := interpreter.Options{
		Scheduler:    lc.Case.scheduler(lc.Suite),
		Steps:        lc.Case.Steps,
		MaxTicks:     lc.Case.MaxTicks,
		MaxCallDepth: lc.Case.MaxCallDepth,
		Logger:       r.Logger,
	}
	res, err := interpreter.RunInContext(ctx, lc.Case.Source, c, opts).Await(ctx)
	for err == nil && res.Status == interpreter.StatusSuspended {
		res, err = interpreter.Resume(ctx, res).Await(ctx)
	}
	if err != nil {
		return CaseResult{Case: lc, Err: err}
	}
	if err := check(lc.Case.Expect, res, out.String()); err != nil {
		return CaseResult{Case: lc, Err: err}
	}
	return CaseResult{Case: lc, Passed: true}
}

// RunAll runs cases in order.
func (r *Runner) RunAll(ctx context.Context, cases []LoadedCase) []CaseResult {
	results := make([]CaseResult, 0, len(cases))
	for _, lc := range cases {
		results = append(results, r.Run(ctx, lc))
	}
	return results
}

func check(want Expectation, res *interpreter.Result, output string) error {
	if want.Status != "" && want.Status != res.Status.String() {
		return fmt.Errorf("status: want %s, got %s\n%s", want.Status, res.Status, diagnostics.Format(res.Context.Errors))
	}
	if want.Value != nil {
		got := "<none>"
		if res.Status == interpreter.StatusFinished {
			got = runtime.Stringify(res.Value)
		}
		if got != *want.Value {
			return fmt.Errorf("value: want %s, got %s", *want.Value, got)
		}
	}
	if want.Output != nil && *want.Output != output {
		return fmt.Errorf("output: want %q, got %q", *want.Output, output)
	}
	if want.Errors != nil {
		return checkErrors(want.Errors, res.Context.Errors)
	}
	return nil
}

func checkErrors(want []ExpectedError, got []diagnostics.SourceError) error {
	if len(want) != len(got) {
		return fmt.Errorf("errors: want %d, got %d:\n%s", len(want), len(got), diagnostics.Format(got))
	}
	for i, w := range want {
		g := got[i]
		switch {
		case w.Type != "" && w.Type != g.Type().String():
			return fmt.Errorf("errors[%d]: want type %s, got %s (%s)", i, w.Type, g.Type(), g.Explain())
		case w.Severity != "" && w.Severity != g.Severity().String():
			return fmt.Errorf("errors[%d]: want severity %s, got %s (%s)", i, w.Severity, g.Severity(), g.Explain())
		case w.Line != 0 && w.Line != g.Location().Start.Line:
			return fmt.Errorf("errors[%d]: want line %d, got %d (%s)", i, w.Line, g.Location().Start.Line, g.Explain())
		case w.Explain != "" && !strings.Contains(g.Explain(), w.Explain):
			return fmt.Errorf("errors[%d]: want %q in %q", i, w.Explain, g.Explain())
		}
	}
	return nil
}

// Stats summarises a run.
type Stats struct {
	Total, Passed, Failed, Skipped int
}

func ComputeStats(results []CaseResult) Stats {
	s := Stats{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Skipped:
			s.Skipped++
		case r.Passed:
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("total %d, passed %d, failed %d, skipped %d", s.Total, s.Passed, s.Failed, s.Skipped)
}
