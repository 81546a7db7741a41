package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"slang/interpreter-go/pkg/diagnostics"
	"slang/interpreter-go/pkg/driver"
	"slang/interpreter-go/pkg/interpreter"
	"slang/interpreter-go/pkg/runtime"
)

const (
	historyFile = ".slang_history"
	promptMain  = "> "
	promptCont  = "... "
)

// lineReader yields one complete input at a time. ok is false at end of input.
type lineReader interface {
	Read(prompt string) (line string, ok bool)
	Remember(entry string)
	Close()
}

type linerReader struct{ state *liner.State }

func (r *linerReader) Read(prompt string) (string, bool) {
	line, err := r.state.Prompt(prompt)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", true
	case err != nil:
		return "", false
	}
	return line, true
}

func (r *linerReader) Remember(entry string) {
	r.state.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
	if f, err := os.Create(historyPath()); err == nil {
		_, _ = r.state.WriteHistory(f)
		_ = f.Close()
	}
}

func (r *linerReader) Close() { _ = r.state.Close() }

type scanReader struct{ scanner *bufio.Scanner }

func (r *scanReader) Read(string) (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	return r.scanner.Text(), true
}

func (*scanReader) Remember(string) {}
func (*scanReader) Close()          {}

func historyPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, historyFile)
}

func (c *cli) newLineReader() lineReader {
	if f, ok := c.stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		if h, err := os.Open(historyPath()); err == nil {
			_, _ = state.ReadHistory(h)
			_ = h.Close()
		}
		return &linerReader{state: state}
	}
	return &scanReader{scanner: bufio.NewScanner(c.stdin)}
}

func (c *cli) replCommand() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.configFor(".", &flags)
			if err != nil {
				return err
			}
			rc, err := c.newContext(cfg)
			if err != nil {
				return err
			}
			in := c.newLineReader()
			defer in.Close()
			return c.repl(cmd, in, rc, cfg)
		},
	}
	cmd.Flags().IntVar(&flags.stage, "stage", 0, "Language stage (overrides slang.yml)")
	cmd.Flags().StringVar(&flags.scheduler, "scheduler", "", `Scheduler, "async" or "preemptive" (overrides slang.yml)`)
	return cmd
}

func (c *cli) repl(cmd *cobra.Command, in lineReader, rc *runtime.Context, cfg *driver.Config) error {
	fmt.Fprintf(c.stdout, "%s (stage %d). Type :quit to exit.\n", cliToolVersion, cfg.Stage)
	for {
		src, ok := readInput(in)
		if !ok {
			return nil
		}
		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":help":
			fmt.Fprintln(c.stdout, ":quit  leave the session")
			continue
		}
		in.Remember(src)

		seen := len(rc.Errors)
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		res, err := settle(ctx, interpreter.RunInContext(ctx, src, rc, cfg.Options(c.logger)))
		stop()
		if err != nil {
			return err
		}
		if fresh := rc.Errors[seen:]; len(fresh) > 0 {
			fmt.Fprintln(c.stderr, diagnostics.Format(fresh))
		}
		if res.Status == interpreter.StatusFinished {
			fmt.Fprintln(c.stdout, runtime.Stringify(res.Value))
		}
	}
}

// readInput keeps reading lines while brackets are left open.
func readInput(in lineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, ok := in.Read(prompt)
		if !ok {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if openBrackets(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

// openBrackets counts unclosed (, [ and { outside string literals.
func openBrackets(src string) int {
	depth := 0
	var quote rune
	escaped := false
	for _, r := range src {
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			depth--
		}
	}
	return depth
}
