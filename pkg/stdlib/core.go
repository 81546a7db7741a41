package stdlib

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"slang/interpreter-go/pkg/runtime"
)

var started = time.Now()

func init() {
	register(3, "undefined", runtime.Undefined)
	register(3, "NaN", runtime.NumberValue(math.NaN()))
	register(3, "Infinity", runtime.NumberValue(math.Inf(1)))

	fn(3, "display", -1, display)
	fn(3, "error", -1, raise)
	fn(3, "stringify", 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue(runtime.Stringify(args[0])), nil
	})
	fn(3, "runtime", 0, func(*runtime.HostCall, []runtime.Value) (runtime.Value, error) {
		return runtime.NumberValue(time.Since(started).Milliseconds()), nil
	})
	fn(3, "parse_int", 2, parseInt)

	kindPredicate("is_number", runtime.KindNumber)
	kindPredicate("is_string", runtime.KindString)
	kindPredicate("is_boolean", runtime.KindBool)
	kindPredicate("is_undefined", runtime.KindUndefined)
	fn(3, "is_function", 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		return runtime.BoolValue(runtime.IsCallable(args[0])), nil
	})
}

func kindPredicate(name string, kind runtime.Kind) {
	fn(3, name, 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		return runtime.BoolValue(args[0].Kind() == kind), nil
	})
}

// message renders display and error arguments: the value, optionally
// preceded by a string prefix.
func message(name string, args []runtime.Value) (string, error) {
	switch len(args) {
	case 1:
		return runtime.ToString(args[0]), nil
	case 2:
		prefix, ok := args[1].(runtime.StringValue)
		if !ok {
			return "", argError(name, "a string prefix", args[1])
		}
		return string(prefix) + " " + runtime.ToString(args[0]), nil
	}
	return "", fmt.Errorf("%s expects 1 or 2 arguments, but got %d", name, len(args))
}

// display writes its argument and returns it unchanged.
func display(call *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
	text, err := message("display", args)
	if err != nil {
		return nil, err
	}
	out := io.Discard
	if call.Context != nil && call.Context.Output != nil {
		out = call.Context.Output
	}
	if _, err := fmt.Fprintln(out, text); err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}
	return args[0], nil
}

func raise(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
	text, err := message("error", args)
	if err != nil {
		return nil, err
	}
	return nil, &ProgramError{Message: text}
}

// ProgramError is raised by the error builtin.
type ProgramError struct {
	Message string
}

func (e *ProgramError) Error() string { return "Error: " + e.Message }

func parseInt(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
	s, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, argError("parse_int", "a string", args[0])
	}
	radix, ok := args[1].(runtime.NumberValue)
	if !ok || radix != runtime.NumberValue(math.Trunc(float64(radix))) || radix < 2 || radix > 36 {
		return nil, argError("parse_int", "an integer radix between 2 and 36", args[1])
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(s)), int(radix), 64)
	if err != nil {
		return runtime.NumberValue(math.NaN()), nil
	}
	return runtime.NumberValue(n), nil
}
