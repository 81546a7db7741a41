package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/driver"
	"slang/interpreter-go/pkg/interpreter"
	"slang/interpreter-go/pkg/runtime"
)

type runFlags struct {
	stage     int
	scheduler string
	revision  string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.stage, "stage", 0, "Language stage (overrides slang.yml)")
	cmd.Flags().StringVar(&f.scheduler, "scheduler", "", `Scheduler, "async" or "preemptive" (overrides slang.yml)`)
	cmd.Flags().StringVar(&f.revision, "rev", "", "Read the program as committed at this git revision")
}

// configFor resolves slang.yml next to path and applies flag overrides.
func (c *cli) configFor(path string, f *runFlags) (*driver.Config, error) {
	dir := "."
	if path != "-" {
		dir = filepath.Dir(path)
	}
	cfg, err := driver.ResolveConfig(dir, c.logger)
	if err != nil {
		return nil, err
	}
	if f.stage != 0 {
		cfg.Stage = f.stage
	}
	if f.scheduler != "" {
		cfg.Scheduler = f.scheduler
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *cli) source(path string, f *runFlags) (string, error) {
	if f.revision != "" {
		if path == "-" {
			return "", errors.New("--rev needs a file path")
		}
		return driver.LoadSourceAtRevision(path, f.revision)
	}
	return driver.LoadSource(path, c.stdin)
}

func (c *cli) runCommand() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run <file|->",
		Short: "Run a program and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.configFor(args[0], &flags)
			if err != nil {
				return err
			}
			src, err := c.source(args[0], &flags)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return c.execute(ctx, src, cfg)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) newContext(cfg *driver.Config) (*runtime.Context, error) {
	return interpreter.CreateContext(cfg.Stage, cfg.Externals, interpreter.Host{
		Output:  c.stdout,
		Symbols: hostSymbols(c.stdin),
		Logger:  c.logger,
	})
}

func (c *cli) execute(ctx context.Context, src string, cfg *driver.Config) error {
	rc, err := c.newContext(cfg)
	if err != nil {
		return err
	}
	res, err := settle(ctx, interpreter.RunInContext(ctx, src, rc, cfg.Options(c.logger)))
	if err != nil {
		return err
	}
	return c.report(res)
}

// settle waits for f and resumes suspended results. Cancelling ctx stops the
// scheduler, which then settles with an interruption, so the wait itself is
// not cancellable.
func settle(ctx context.Context, f *interpreter.Future) (*interpreter.Result, error) {
	res, err := f.Await(context.Background())
	for err == nil && res.Status == interpreter.StatusSuspended {
		res, err = interpreter.Resume(ctx, res).Await(context.Background())
	}
	return res, err
}

// report prints diagnostics to stderr and a finished value to stdout.
func (c *cli) report(res *interpreter.Result) error {
	if len(res.Context.Errors) > 0 {
		fmt.Fprintln(c.stderr, diagnostics.Format(res.Context.Errors))
	}
	if res.Status != interpreter.StatusFinished {
		return &exitError{code: 1}
	}
	fmt.Fprintln(c.stdout, runtime.Stringify(res.Value))
	return nil
}
