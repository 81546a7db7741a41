package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slang/interpreter-go/pkg/ast"
	"slang/interpreter-go/pkg/cfg"
	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/parser"
	"slang/interpreter-go/pkg/runtime"
)

func (c *cli) checkCommand() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "check <file|->",
		Short: "Parse a program and report static problems without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := c.configFor(args[0], &flags)
			if err != nil {
				return err
			}
			src, err := c.source(args[0], &flags)
			if err != nil {
				return err
			}
			rc, err := c.newContext(config)
			if err != nil {
				return err
			}
			p, err := parser.New(c.logger)
			if err != nil {
				return err
			}
			defer p.Close()

			if p.Parse(src, rc) == nil {
				fmt.Fprintln(c.stderr, diagnostics.Format(rc.Errors))
				return &exitError{code: 1}
			}
			if len(rc.Errors) > 0 {
				fmt.Fprintln(c.stderr, diagnostics.Format(rc.Errors))
			}
			if findings := analyze(rc); len(findings) > 0 {
				for _, f := range findings {
					fmt.Fprintln(c.stdout, f)
				}
				return &exitError{code: 1}
			}
			fmt.Fprintln(c.stdout, "ok")
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// analyze builds the control-flow graph of the parsed program and lists
// names that are never declared, names used before their declaration and
// functions that can finish without returning.
func analyze(rc *runtime.Context) []string {
	cfg.GenerateCFG(rc)
	var out []string
	for _, id := range cfg.UndeclaredUsages(rc) {
		out = append(out, fmt.Sprintf("Line %d: Name %s not declared.", id.Loc().Start.Line, id.Name))
	}
	for _, id := range cfg.UsedBeforeDeclaration(rc) {
		out = append(out, fmt.Sprintf("Line %d: Name %s used before its declaration.", id.Loc().Start.Line, id.Name))
	}
	for _, scope := range rc.CFG.Scopes {
		if cfg.FallsThrough(scope) {
			out = append(out, fmt.Sprintf("Line %d: Function %s can finish without returning a value.", scope.Node.Loc().Start.Line, functionName(scope)))
		}
	}
	return out
}

func functionName(scope *runtime.Scope) string {
	if fn, ok := scope.Node.(ast.Function); ok && fn.FunctionName() != "" {
		return fn.FunctionName()
	}
	return scope.Name
}
