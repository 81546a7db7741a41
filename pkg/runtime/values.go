package runtime

import (
	"slang/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindUndefined
	KindNull
	KindArray
	KindObject
	KindClosure
	KindArrowClosure
	KindHostFunction
)

// String returns the name the language itself would use for the category.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindClosure, KindArrowClosure, KindHostFunction:
		return "function"
	default:
		return "unknown"
	}
}

type Value interface {
	Kind() Kind
}

type NumberValue float64

func (NumberValue) Kind() Kind { return KindNumber }

type StringValue string

func (StringValue) Kind() Kind { return KindString }

type BoolValue bool

func (BoolValue) Kind() Kind { return KindBool }

type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind { return KindUndefined }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

var (
	Undefined Value = UndefinedValue{}
	Null      Value = NullValue{}
)

// ArrayValue is the only composite before stage 10. A two element array is a
// pair and the empty array is the empty list.
type ArrayValue struct {
	Elements []Value
}

func NewArray(elements ...Value) *ArrayValue {
	if elements == nil {
		elements = []Value{}
	}
	return &ArrayValue{Elements: elements}
}

func (*ArrayValue) Kind() Kind { return KindArray }

// ObjectValue keeps insertion order so printing is deterministic.
type ObjectValue struct {
	Props map[string]Value
	Keys  []string
	Proto *ObjectValue
}

func NewObject(proto *ObjectValue) *ObjectValue {
	return &ObjectValue{Props: make(map[string]Value), Proto: proto}
}

func (*ObjectValue) Kind() Kind { return KindObject }

// Get looks the key up along the prototype chain.
func (o *ObjectValue) Get(key string) (Value, bool) {
	for cur := o; cur != nil; cur = cur.Proto {
		if v, ok := cur.Props[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func (o *ObjectValue) Set(key string, v Value) {
	if _, ok := o.Props[key]; !ok {
		o.Keys = append(o.Keys, key)
	}
	o.Props[key] = v
}

// Closure is a function literal paired with the frame it was created in.
type Closure struct {
	Node  ast.Function
	Frame *Frame
	Name  string

	prototype *ObjectValue
}

func NewClosure(node ast.Function, frame *Frame) *Closure {
	name := node.FunctionName()
	return &Closure{Node: node, Frame: frame, Name: name}
}

func (*Closure) Kind() Kind { return KindClosure }

// Prototype is created on first use by `new`.
func (c *Closure) Prototype() *ObjectValue {
	if c.prototype == nil {
		c.prototype = NewObject(nil)
	}
	return c.prototype
}

// ArrowClosure differs from Closure in that a concise body is its own return
// value and it has no `this` of its own.
type ArrowClosure struct {
	Node  *ast.ArrowFunctionExpression
	Frame *Frame
	Name  string
}

func NewArrowClosure(node *ast.ArrowFunctionExpression, frame *Frame) *ArrowClosure {
	return &ArrowClosure{Node: node, Frame: frame}
}

func (*ArrowClosure) Kind() Kind { return KindArrowClosure }

// HostCall is what a host function sees of the running program.
type HostCall struct {
	Context *Context
	Node    ast.Node
	This    Value
}

type HostFunc func(call *HostCall, args []Value) (Value, error)

// HostFunction is a Go function exposed to programs. Arity -1 means variadic.
type HostFunction struct {
	Name      string
	Arity     int
	Fn        HostFunc
	Prototype *ObjectValue
}

func (*HostFunction) Kind() Kind { return KindHostFunction }

// IsCallable reports whether v can appear in call position.
func IsCallable(v Value) bool {
	switch v.(type) {
	case *Closure, *ArrowClosure, *HostFunction:
		return true
	}
	return false
}

// Arity returns the declared parameter count of a callable, -1 for variadic.
func Arity(v Value) int {
	switch fn := v.(type) {
	case *Closure:
		return len(fn.Node.FunctionParams())
	case *ArrowClosure:
		return len(fn.Node.Params)
	case *HostFunction:
		return fn.Arity
	}
	return 0
}

// StrictEquals implements ===: scalars compare by value, composites by identity.
func StrictEquals(a, b Value) bool {
	switch x := a.(type) {
	case NumberValue:
		y, ok := b.(NumberValue)
		return ok && x == y
	case StringValue:
		y, ok := b.(StringValue)
		return ok && x == y
	case BoolValue:
		y, ok := b.(BoolValue)
		return ok && x == y
	case UndefinedValue:
		_, ok := b.(UndefinedValue)
		return ok
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	}
	return a == b
}

// Truthy is only consulted after a type check has already warned about a
// non-boolean test.
func Truthy(v Value) bool {
	b, ok := v.(BoolValue)
	return ok && bool(b)
}
