package stdlib

import (
	"fmt"

	"slang/interpreter-go/pkg/runtime"
)

func init() {
	fn(5, "pair", 2, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		return runtime.NewArray(args[0], args[1]), nil
	})
	fn(5, "head", 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		p, err := asPair("head", args[0])
		if err != nil {
			return nil, err
		}
		return p.Elements[0], nil
	})
	fn(5, "tail", 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		p, err := asPair("tail", args[0])
		if err != nil {
			return nil, err
		}
		return p.Elements[1], nil
	})
	fn(5, "is_pair", 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		return runtime.BoolValue(IsPair(args[0])), nil
	})
	fn(5, "is_empty_list", 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		return runtime.BoolValue(IsEmptyList(args[0])), nil
	})
	fn(5, "is_list", 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		return runtime.BoolValue(IsList(args[0])), nil
	})
	fn(5, "list", -1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		return List(args...), nil
	})
	fn(5, "length", 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		xs, err := ListToVector(args[0])
		if err != nil {
			return nil, fmt.Errorf("length: %w", err)
		}
		return runtime.NumberValue(len(xs.Elements)), nil
	})
	fn(5, "list_to_vector", 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		xs, err := ListToVector(args[0])
		if err != nil {
			return nil, fmt.Errorf("list_to_vector: %w", err)
		}
		return xs, nil
	})
	fn(5, "vector_to_list", 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		v, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return nil, argError("vector_to_list", "an array", args[0])
		}
		return List(v.Elements...), nil
	})

	fn(8, "set_head", 2, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		p, err := asPair("set_head", args[0])
		if err != nil {
			return nil, err
		}
		p.Elements[0] = args[1]
		return runtime.Undefined, nil
	})
	fn(8, "set_tail", 2, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		p, err := asPair("set_tail", args[0])
		if err != nil {
			return nil, err
		}
		p.Elements[1] = args[1]
		return runtime.Undefined, nil
	})

	fn(9, "array_length", 1, func(_ *runtime.HostCall, args []runtime.Value) (runtime.Value, error) {
		v, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return nil, argError("array_length", "an array", args[0])
		}
		return runtime.NumberValue(len(v.Elements)), nil
	})
}

// IsPair reports whether v is a two element array.
func IsPair(v runtime.Value) bool {
	a, ok := v.(*runtime.ArrayValue)
	return ok && len(a.Elements) == 2
}

// IsEmptyList reports whether v is an empty array.
func IsEmptyList(v runtime.Value) bool {
	a, ok := v.(*runtime.ArrayValue)
	return ok && len(a.Elements) == 0
}

// IsList follows tails until the empty list. Cyclic structures built with
// set_tail are not lists.
func IsList(v runtime.Value) bool {
	seen := map[*runtime.ArrayValue]bool{}
	for IsPair(v) {
		p := v.(*runtime.ArrayValue)
		if seen[p] {
			return false
		}
		seen[p] = true
		v = p.Elements[1]
	}
	return IsEmptyList(v)
}

// List builds a list of pairs ending in the empty list.
func List(items ...runtime.Value) runtime.Value {
	var out runtime.Value = runtime.NewArray()
	for i := len(items) - 1; i >= 0; i-- {
		out = runtime.NewArray(items[i], out)
	}
	return out
}

// ListToVector flattens a list into a fresh array.
func ListToVector(v runtime.Value) (*runtime.ArrayValue, error) {
	if !IsList(v) {
		return nil, fmt.Errorf("expected a list, but got %s", runtime.Stringify(v))
	}
	var out []runtime.Value
	for IsPair(v) {
		p := v.(*runtime.ArrayValue)
		out = append(out, p.Elements[0])
		v = p.Elements[1]
	}
	return runtime.NewArray(out...), nil
}

func asPair(name string, v runtime.Value) (*runtime.ArrayValue, error) {
	if !IsPair(v) {
		return nil, argError(name, "a pair", v)
	}
	return v.(*runtime.ArrayValue), nil
}
