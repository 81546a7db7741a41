package runtime

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a number the way the language prints it.
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}
	abs := math.Abs(x)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	s := strconv.FormatFloat(x, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// ToString renders a value for display. Strings are bare at the top level
// and quoted when nested.
func ToString(v Value) string {
	var b strings.Builder
	writeValue(&b, v, false, map[any]bool{})
	return b.String()
}

// Stringify renders a value with strings always quoted.
func Stringify(v Value) string {
	var b strings.Builder
	writeValue(&b, v, true, map[any]bool{})
	return b.String()
}

func writeValue(b *strings.Builder, v Value, quote bool, seen map[any]bool) {
	switch val := v.(type) {
	case nil:
		b.WriteString("undefined")
	case NumberValue:
		b.WriteString(FormatNumber(float64(val)))
	case StringValue:
		if quote {
			b.WriteString(strconv.Quote(string(val)))
		} else {
			b.WriteString(string(val))
		}
	case BoolValue:
		b.WriteString(strconv.FormatBool(bool(val)))
	case UndefinedValue:
		b.WriteString("undefined")
	case NullValue:
		b.WriteString("null")
	case *ArrayValue:
		if seen[val] {
			b.WriteString("...<circular>")
			return
		}
		seen[val] = true
		b.WriteByte('[')
		for i, el := range val.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, el, true, seen)
		}
		b.WriteByte(']')
		delete(seen, val)
	case *ObjectValue:
		if seen[val] {
			b.WriteString("...<circular>")
			return
		}
		seen[val] = true
		b.WriteByte('{')
		for i, k := range val.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(k))
			b.WriteString(": ")
			writeValue(b, val.Props[k], true, seen)
		}
		b.WriteByte('}')
		delete(seen, val)
	case *Closure:
		b.WriteString(functionText(val.Node.SourceText(), val.Name))
	case *ArrowClosure:
		b.WriteString(functionText(val.Node.Source, ""))
	case *HostFunction:
		b.WriteString("function " + val.Name + "() {\n\t[implementation hidden]\n}")
	default:
		b.WriteString("<unknown>")
	}
}

func functionText(source, name string) string {
	if source != "" {
		return source
	}
	return "function " + name + "() { [body] }"
}
