package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type outcome struct {
	code   int
	stdout string
	stderr string
}

func invoke(t *testing.T, stdin string, args ...string) outcome {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return outcome{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func invokeContext(t *testing.T, ctx context.Context, stdin string, args ...string) outcome {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := runContext(ctx, args, strings.NewReader(stdin), &stdout, &stderr)
	return outcome{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRunPrintsOutputAndResult(t *testing.T) {
	program := filepath.Join(t.TempDir(), "main.js")
	writeFile(t, program, "display(1);\n1 + 2;\n")

	got := invoke(t, "", "run", program)
	if got.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", got.code, got.stderr)
	}
	if got.stdout != "1\n3\n" {
		t.Fatalf("stdout = %q, want %q", got.stdout, "1\n3\n")
	}
}

func TestRunReadsStdin(t *testing.T) {
	got := invoke(t, "'a' + 'b';", "run", "-")
	if got.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", got.code, got.stderr)
	}
	if got.stdout != "\"ab\"\n" {
		t.Fatalf("stdout = %q", got.stdout)
	}
}

func TestRunUsesConfigStage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "slang.yml"), "stage: 8\n")
	program := filepath.Join(dir, "main.js")
	writeFile(t, program, "let x = 1;\nx = x + 1;\nx;\n")

	got := invoke(t, "", "run", program)
	if got.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", got.code, got.stderr)
	}
	if got.stdout != "2\n" {
		t.Fatalf("stdout = %q, want %q", got.stdout, "2\n")
	}

	got = invoke(t, "", "run", "--stage", "3", program)
	if got.code != 1 {
		t.Fatalf("exit code = %d, want 1", got.code)
	}
	if !strings.Contains(got.stderr, "Mutable variable declaration") {
		t.Fatalf("stderr = %q", got.stderr)
	}
}

func TestRunRejectsInvalidStage(t *testing.T) {
	program := filepath.Join(t.TempDir(), "main.js")
	writeFile(t, program, "1;")
	got := invoke(t, "", "run", "--stage", "42", program)
	if got.code != 1 || !strings.Contains(got.stderr, "stage must be between") {
		t.Fatalf("code = %d, stderr = %q", got.code, got.stderr)
	}
}

func TestRunReportsRuntimeErrors(t *testing.T) {
	program := filepath.Join(t.TempDir(), "main.js")
	writeFile(t, program, "function f(x) { return x; }\nf(1, 2);\n")
	got := invoke(t, "", "run", program)
	if got.code != 1 {
		t.Fatalf("exit code = %d, want 1", got.code)
	}
	if !strings.Contains(got.stderr, "Expected 1 arguments, but got 2.") {
		t.Fatalf("stderr = %q", got.stderr)
	}
	if got.stdout != "" {
		t.Fatalf("stdout = %q, want nothing", got.stdout)
	}
}

func TestRunAtRevision(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	program := filepath.Join(root, "main.js")
	writeFile(t, program, "40 + 2;\n")
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add("main.js"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := wt.Commit("first", &git.CommitOptions{
		Author: &object.Signature{Name: "Ada", Email: "ada@example.com", When: time.Unix(0, 0)},
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	writeFile(t, program, "1;\n")

	got := invoke(t, "", "run", "--rev", "HEAD", program)
	if got.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", got.code, got.stderr)
	}
	if got.stdout != "42\n" {
		t.Fatalf("stdout = %q, want %q", got.stdout, "42\n")
	}
}

func TestRunWithPromptExternal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "slang.yml"), "externals: prompt\n")
	program := filepath.Join(dir, "main.js")
	writeFile(t, program, "const name = prompt(\"name? \");\n\"hi \" + name;\n")

	got := invoke(t, "Ada\n", "run", program)
	if got.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", got.code, got.stderr)
	}
	if got.stdout != "name? \"hi Ada\"\n" {
		t.Fatalf("stdout = %q", got.stdout)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name   string
		source string
		code   int
		want   string
	}{
		{name: "clean", source: "function f(x) { return x; }\nf(1);\n", code: 0, want: "ok"},
		{name: "undeclared", source: "z + 1;\n", code: 1, want: "Name z not declared."},
		{name: "falls through", source: "function f(x) {\n  const y = x;\n}\n", code: 1, want: "Function f can finish without returning a value."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			program := filepath.Join(dir, tc.name+".js")
			writeFile(t, program, tc.source)
			got := invoke(t, "", "check", program)
			if got.code != tc.code {
				t.Fatalf("exit code = %d, want %d\nstdout: %s\nstderr: %s", got.code, tc.code, got.stdout, got.stderr)
			}
			if !strings.Contains(got.stdout, tc.want) {
				t.Fatalf("stdout = %q, want it to contain %q", got.stdout, tc.want)
			}
		})
	}
}

func TestCheckReportsParseErrors(t *testing.T) {
	got := invoke(t, "1 == 2;", "check", "-")
	if got.code != 1 || !strings.Contains(got.stderr, "Use === instead of ==.") {
		t.Fatalf("code = %d, stderr = %q", got.code, got.stderr)
	}
}

func TestReplKeepsBindingsAcrossInputs(t *testing.T) {
	got := invoke(t, "const x = 2;\nfunction f(y) {\n  return x * y;\n}\nf(21);\n:quit\nf(0);\n", "repl")
	if got.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", got.code, got.stderr)
	}
	lines := strings.Split(strings.TrimSpace(got.stdout), "\n")
	if last := lines[len(lines)-1]; last != "42" {
		t.Fatalf("last line = %q, stdout:\n%s", last, got.stdout)
	}
}

func TestReplReportsErrorsAndContinues(t *testing.T) {
	got := invoke(t, "y;\n1 + 1;\n", "repl")
	if got.code != 0 {
		t.Fatalf("exit code = %d", got.code)
	}
	if !strings.Contains(got.stderr, "Name y not declared.") {
		t.Fatalf("stderr = %q", got.stderr)
	}
	if !strings.HasSuffix(got.stdout, "2\n") {
		t.Fatalf("stdout = %q", got.stdout)
	}
}

func TestOpenBrackets(t *testing.T) {
	cases := map[string]int{
		"f(1);":           0,
		"function f(x) {": 1,
		"g([1, 2":         2,
		"'{' + \"(\";":    0,
		"'it\\'s {';":     0,
		"}":               -1,
	}
	for src, want := range cases {
		if got := openBrackets(src); got != want {
			t.Errorf("openBrackets(%q) = %d, want %d", src, got, want)
		}
	}
}

func TestVersion(t *testing.T) {
	got := invoke(t, "", "--version")
	if got.code != 0 || !strings.Contains(got.stdout, cliToolVersion) {
		t.Fatalf("code = %d, stdout = %q", got.code, got.stdout)
	}
}

func TestRunCancelledReportsInterruption(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "slang.yml"), "stage: 8\n")
	program := filepath.Join(dir, "main.js")
	writeFile(t, program, "let i = 0;\nwhile (true) {\n  i = i + 1;\n}\n")

	for _, scheduler := range []string{"async", "preemptive"} {
		t.Run(scheduler, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			got := invokeContext(t, ctx, "", "run", "--scheduler", scheduler, program)
			if got.code != 1 {
				t.Fatalf("exit code = %d, want 1", got.code)
			}
			if !strings.Contains(got.stderr, "Execution aborted by user.") {
				t.Fatalf("stderr = %q", got.stderr)
			}
			if strings.Contains(got.stderr, "context canceled") {
				t.Fatalf("wait was cancelled instead of the run: %q", got.stderr)
			}
		})
	}
}

func TestReplCancelledInputReportsInterruption(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := invokeContext(t, ctx, "while (true) {\n}\n", "repl", "--stage", "8")
	if got.code != 0 {
		t.Fatalf("exit code = %d, stderr:\n%s", got.code, got.stderr)
	}
	if !strings.Contains(got.stderr, "Execution aborted by user.") {
		t.Fatalf("stderr = %q", got.stderr)
	}
}
