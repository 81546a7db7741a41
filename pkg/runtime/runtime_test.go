package runtime

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"slang/interpreter-go/pkg/ast"
)

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		1:           "1",
		-2.5:        "-2.5",
		0.1:         "0.1",
		1e20:        "100000000000000000000",
		1e21:        "1e+21",
		1e-7:        "1e-7",
		123456789:   "123456789",
		math.Inf(1): "Infinity",
		math.NaN():  "NaN",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestToStringNestsQuotedStrings(t *testing.T) {
	list := NewArray(NumberValue(1), NewArray(StringValue("a"), NewArray()))
	if got := ToString(list); got != `[1, ["a", []]]` {
		t.Fatalf("unexpected rendering %s", got)
	}
	if got := ToString(StringValue("plain")); got != "plain" {
		t.Fatalf("top-level strings print bare, got %s", got)
	}
	if got := Stringify(StringValue("q")); got != `"q"` {
		t.Fatalf("stringify quotes, got %s", got)
	}
}

func TestToStringGuardsCycles(t *testing.T) {
	a := NewArray(NumberValue(1), Undefined)
	a.Elements[1] = a
	if got := ToString(a); got != "[1, ...<circular>]" {
		t.Fatalf("unexpected rendering %s", got)
	}
}

func TestObjectKeepsInsertionOrder(t *testing.T) {
	proto := NewObject(nil)
	proto.Set("greet", StringValue("hi"))
	o := NewObject(proto)
	o.Set("b", NumberValue(2))
	o.Set("a", NumberValue(1))
	o.Set("b", NumberValue(3))
	if got := ToString(o); got != `{"b": 3, "a": 1}` {
		t.Fatalf("unexpected rendering %s", got)
	}
	if v, ok := o.Get("greet"); !ok || v != StringValue("hi") {
		t.Fatalf("prototype lookup failed: %v %v", v, ok)
	}
}

func TestFrameLookupWalksParents(t *testing.T) {
	global := NewFrame("global", nil)
	global.Define("x", NumberValue(1), true)
	inner := NewFrame("f", global)
	inner.Define("y", NumberValue(2), false)

	v, owner, ok := inner.Lookup("x")
	if !ok || v != NumberValue(1) || owner != global {
		t.Fatalf("expected x from global frame")
	}
	if _, _, ok := global.Lookup("y"); ok {
		t.Fatalf("parents must not see child bindings")
	}
	if !global.IsConst("x") || inner.IsConst("y") {
		t.Fatalf("constness not tracked")
	}
	if diff := cmp.Diff([]string{"y"}, inner.Keys()); diff != "" {
		t.Fatalf("keys mismatch: %s", diff)
	}
}

func TestRuntimeNeverPopsGlobal(t *testing.T) {
	c := NewContext(3, nil)
	global := c.Runtime.Global()
	c.Runtime.PushFrame(NewFrame("f", global))
	c.Runtime.PushFrame(NewFrame("g", global))
	c.Runtime.PushNode(ast.ID("x"))
	c.Runtime.ResetToGlobal()
	c.Runtime.PopFrame()
	if len(c.Runtime.Frames) != 1 || c.Runtime.Innermost() != global {
		t.Fatalf("expected only the global frame, got %d", len(c.Runtime.Frames))
	}
	if c.Runtime.CurrentNode() != nil {
		t.Fatalf("node stack should be empty")
	}
	if global.Parent != c.Runtime.Builtins() || c.Runtime.Builtins().Parent != nil {
		t.Fatalf("global frame should sit directly under the builtins frame")
	}
}

func TestStrictEquals(t *testing.T) {
	arr := NewArray()
	if !StrictEquals(NumberValue(1), NumberValue(1)) || StrictEquals(NumberValue(1), StringValue("1")) {
		t.Fatalf("number equality wrong")
	}
	if StrictEquals(NumberValue(math.NaN()), NumberValue(math.NaN())) {
		t.Fatalf("NaN must not equal itself")
	}
	if !StrictEquals(arr, arr) || StrictEquals(arr, NewArray()) {
		t.Fatalf("arrays compare by identity")
	}
	if !StrictEquals(Undefined, UndefinedValue{}) || StrictEquals(Undefined, Null) {
		t.Fatalf("undefined/null equality wrong")
	}
}

func TestInterruptRequestIsConsumedOnce(t *testing.T) {
	c := NewContext(3, nil)
	c.BeginRun()
	if !c.RequestInterrupt() {
		t.Fatalf("request should be posted while a run is active")
	}
	if !c.TakeInterrupt() || c.TakeInterrupt() {
		t.Fatalf("interrupt should be observed exactly once")
	}
	if c.EndRun() || c.Active() {
		t.Fatalf("run should end idle with nothing pending")
	}
}

func TestInterruptRequestNeedsActiveRun(t *testing.T) {
	c := NewContext(3, nil)
	if c.RequestInterrupt() || c.TakeInterrupt() {
		t.Fatalf("an idle context must not hold a request")
	}
}

func TestPendingInterruptIsReportedAtEndOfRun(t *testing.T) {
	c := NewContext(3, nil)
	c.BeginRun()
	c.RequestInterrupt()
	if !c.EndRun() {
		t.Fatalf("EndRun should report the pending request")
	}
	c.BeginRun()
	if c.TakeInterrupt() {
		t.Fatalf("request leaked into the next run")
	}
}
