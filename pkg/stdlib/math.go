package stdlib

import (
	"math"
	"math/rand/v2"

	"slang/interpreter-go/pkg/runtime"
)

func init() {
	register(3, "math_PI", runtime.NumberValue(math.Pi))
	register(3, "math_E", runtime.NumberValue(math.E))
	register(3, "math_LN2", runtime.NumberValue(math.Ln2))
	register(3, "math_LN10", runtime.NumberValue(math.Ln10))
	register(3, "math_SQRT2", runtime.NumberValue(math.Sqrt2))

	unary := map[string]func(float64) float64{
		"math_abs":   math.Abs,
		"math_acos":  math.Acos,
		"math_asin":  math.Asin,
		"math_atan":  math.Atan,
		"math_cbrt":  math.Cbrt,
		"math_ceil":  math.Ceil,
		"math_cos":   math.Cos,
		"math_exp":   math.Exp,
		"math_floor": math.Floor,
		"math_log":   math.Log,
		"math_log2":  math.Log2,
		"math_log10": math.Log10,
		"math_round": round,
		"math_sign":  sign,
		"math_sin":   math.Sin,
		"math_sqrt":  math.Sqrt,
		"math_tan":   math.Tan,
		"math_trunc": math.Trunc,
	}
	for name, f := range unary {
		fn(3, name, 1, numeric(name, func(xs []float64) float64 { return f(xs[0]) }))
	}
	fn(3, "math_pow", 2, numeric("math_pow", func(xs []float64) float64 { return math.Pow(xs[0], xs[1]) }))
	fn(3, "math_atan2", 2, numeric("math_atan2", func(xs []float64) float64 { return math.Atan2(xs[0], xs[1]) }))
	fn(3, "math_hypot", -1, numeric("math_hypot", func(xs []float64) float64 {
		sum := 0.0
		for _, x := range xs {
			sum += x * x
		}
		return math.Sqrt(sum)
	}))
	fn(3, "math_max", -1, numeric("math_max", func(xs []float64) float64 {
		best := math.Inf(-1)
		for _, x := range xs {
			if math.IsNaN(x) {
				return x
			}
			best = math.Max(best, x)
		}
		return best
	}))
	fn(3, "math_min", -1, numeric("math_min", func(xs []float64) float64 {
		best := math.Inf(1)
		for _, x := range xs {
			if math.IsNaN(x) {
				return x
			}
			best = math.Min(best, x)
		}
		return best
	}))
	fn(3, "math_random", 0, func(*runtime.HostCall, []runtime.Value) (runtime.Value, error) {
		return runtime.NumberValue(rand.Float64()), nil
	})
}

// numeric adapts a float function, rejecting non-number arguments.
func numeric(name string, f func([]float64) float64) runtime.HostFunc {
	return func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		xs := make([]float64, len(args))
		for i, a := range args {
			n, ok := a.(runtime.NumberValue)
			if !ok {
				return nil, argError(name, "a number", a)
			}
			xs[i] = float64(n)
		}
		return runtime.NumberValue(f(xs)), nil
	}
}

// round rounds half up, like the language's own Math.round.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x
}
