package runtime

import (
	"sort"

	"slang/interpreter-go/pkg/ast"
)

// CallSite records the call that opened a frame, for stack-overflow hints.
type CallSite struct {
	Node   ast.Node
	Callee string
	Args   []Value
}

// Frame is one function application's bindings plus its lexical parent.
// Parent is never owned: closures keep their defining frame alive.
type Frame struct {
	Name        string
	Parent      *Frame
	CallSite    *CallSite
	Environment map[string]Value
	ThisContext Value

	consts map[string]bool
}

// NewFrame creates a frame nested under parent (nil for the global frame).
func NewFrame(name string, parent *Frame) *Frame {
	return &Frame{
		Name:        name,
		Parent:      parent,
		Environment: make(map[string]Value),
	}
}

// Define binds name in this frame. Constant bindings reject later assignment.
func (f *Frame) Define(name string, value Value, constant bool) {
	f.Environment[name] = value
	if constant {
		if f.consts == nil {
			f.consts = make(map[string]bool)
		}
		f.consts[name] = true
	} else if f.consts != nil {
		delete(f.consts, name)
	}
}

// Declares reports whether name is bound directly in this frame.
func (f *Frame) Declares(name string) bool {
	_, ok := f.Environment[name]
	return ok
}

// Lookup walks the parent chain and returns the value and the owning frame.
func (f *Frame) Lookup(name string) (Value, *Frame, bool) {
	for cur := f; cur != nil; cur = cur.Parent {
		if v, ok := cur.Environment[name]; ok {
			return v, cur, true
		}
	}
	return nil, nil, false
}

// IsConst reports whether name is a constant binding in this frame.
func (f *Frame) IsConst(name string) bool {
	return f.consts[name]
}

// Keys returns the bindings in sorted order.
func (f *Frame) Keys() []string {
	keys := make([]string, 0, len(f.Environment))
	for k := range f.Environment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// This resolves `this` through the chain; arrow and block frames have none.
func (f *Frame) This() Value {
	for cur := f; cur != nil; cur = cur.Parent {
		if cur.ThisContext != nil {
			return cur.ThisContext
		}
	}
	return Undefined
}

// Clone copies the bindings into a fresh frame with the same parent, so
// closures created in one loop iteration keep that iteration's values.
func (f *Frame) Clone() *Frame {
	c := NewFrame(f.Name, f.Parent)
	for k, v := range f.Environment {
		c.Define(k, v, f.consts[k])
	}
	c.CallSite = f.CallSite
	c.ThisContext = f.ThisContext
	return c
}
