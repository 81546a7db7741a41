package stdlib

import (
	"bytes"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"slang/interpreter-go/pkg/runtime"
)

func call(t *testing.T, frame *runtime.Frame, c *runtime.Context, name string, args ...runtime.Value) (runtime.Value, error) {
	t.Helper()
	v, _, ok := frame.Lookup(name)
	if !ok {
		t.Fatalf("%s is not installed", name)
	}
	fn := v.(*runtime.HostFunction)
	return fn.Fn(&runtime.HostCall{Context: c}, args)
}

func TestInstallGatesByStage(t *testing.T) {
	early := runtime.NewFrame("builtins", nil)
	Install(early, 3)
	if !early.Declares("display") || !early.Declares("math_PI") {
		t.Fatalf("stage 3 builtins missing")
	}
	if early.Declares("pair") || early.Declares("set_head") {
		t.Fatalf("list builtins leaked into stage 3")
	}
	if !early.IsConst("display") {
		t.Fatalf("builtins must be constant")
	}

	late := runtime.NewFrame("builtins", nil)
	Install(late, 9)
	for _, name := range []string{"pair", "set_tail", "array_length"} {
		if !late.Declares(name) {
			t.Fatalf("%s missing at stage 9", name)
		}
	}
	if !slices.IsSorted(Names(9)) {
		t.Fatalf("names must be sorted")
	}
}

func TestPreludeStartsWithLists(t *testing.T) {
	if Prelude(4) != "" {
		t.Fatalf("no prelude before lists")
	}
	if Prelude(PreludeStage) == "" {
		t.Fatalf("prelude missing at stage %d", PreludeStage)
	}
}

func TestListVectorRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		items := make([]runtime.Value, n)
		for i := range items {
			items[i] = runtime.NumberValue(i)
		}
		vec, err := ListToVector(List(items...))
		if err != nil {
			t.Fatalf("ListToVector: %v", err)
		}
		if diff := cmp.Diff(runtime.Stringify(runtime.NewArray(items...)), runtime.Stringify(vec)); diff != "" {
			t.Fatalf("round trip mismatch for %d items:\n%s", n, diff)
		}
	}
}

func TestIsListRejectsCyclesAndImproperLists(t *testing.T) {
	p := runtime.NewArray(runtime.NumberValue(1), runtime.NewArray())
	if !IsList(p) {
		t.Fatalf("proper list rejected")
	}
	p.Elements[1] = p
	if IsList(p) {
		t.Fatalf("cyclic structure accepted")
	}
	if IsList(runtime.NewArray(runtime.NumberValue(1), runtime.NumberValue(2))) {
		t.Fatalf("improper list accepted")
	}
	if _, err := ListToVector(runtime.NumberValue(1)); err == nil {
		t.Fatalf("expected an error for a non-list")
	}
}

func TestDisplayAndErrorMessages(t *testing.T) {
	var out bytes.Buffer
	c := runtime.NewContext(3, &out)
	frame := runtime.NewFrame("builtins", nil)
	Install(frame, 3)

	v, err := call(t, frame, c, "display", runtime.StringValue("hi"), runtime.StringValue("says:"))
	if err != nil || v != runtime.StringValue("hi") {
		t.Fatalf("display returned %v, %v", v, err)
	}
	if out.String() != "says: hi\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if _, err := call(t, frame, c, "display"); err == nil {
		t.Fatalf("display without arguments must fail")
	}

	_, err = call(t, frame, c, "error", runtime.NumberValue(3))
	var pe *ProgramError
	if pe, _ = err.(*ProgramError); pe == nil || pe.Error() != "Error: 3" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestNumericBuiltins(t *testing.T) {
	c := runtime.NewContext(3, nil)
	frame := runtime.NewFrame("builtins", nil)
	Install(frame, 3)

	cases := []struct {
		name string
		args []runtime.Value
		want float64
	}{
		{"math_max", []runtime.Value{runtime.NumberValue(1), runtime.NumberValue(7), runtime.NumberValue(3)}, 7},
		{"math_round", []runtime.Value{runtime.NumberValue(-2.5)}, -2},
		{"math_pow", []runtime.Value{runtime.NumberValue(2), runtime.NumberValue(10)}, 1024},
		{"parse_int", []runtime.Value{runtime.StringValue("ff"), runtime.NumberValue(16)}, 255},
	}
	for _, tc := range cases {
		v, err := call(t, frame, c, tc.name, tc.args...)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if float64(v.(runtime.NumberValue)) != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, v)
		}
	}

	v, err := call(t, frame, c, "parse_int", runtime.StringValue("zz"), runtime.NumberValue(10))
	if err != nil || !math.IsNaN(float64(v.(runtime.NumberValue))) {
		t.Fatalf("expected NaN, got %v (%v)", v, err)
	}
	if _, err := call(t, frame, c, "math_abs", runtime.StringValue("x")); err == nil {
		t.Fatalf("expected an error for a non-number")
	}
}
