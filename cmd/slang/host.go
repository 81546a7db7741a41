package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"slang/interpreter-go/pkg/runtime"
)

// hostSymbols are the externals a slang.yml may request when running under
// the command line tool.
func hostSymbols(stdin io.Reader) map[string]runtime.Value {
	in := bufio.NewReader(stdin)
	return map[string]runtime.Value{
		"prompt": &runtime.HostFunction{Name: "prompt", Arity: 1, Fn: func(call *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
			if out := call.Context.Output; out != nil {
				fmt.Fprint(out, runtime.ToString(args[0]))
			}
			line, err := in.ReadString('\n')
			if errors.Is(err, io.EOF) && line == "" {
				return runtime.Undefined, nil
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("prompt: %w", err)
			}
			return runtime.StringValue(strings.TrimRight(line, "\r\n")), nil
		}},
	}
}
