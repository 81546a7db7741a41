// Package stdlib provides the host functions and constants a program sees,
// gated by curriculum stage, and the list prelude written in the language.
package stdlib

import (
	_ "embed"
	"fmt"
	"sort"

	"slang/interpreter-go/pkg/runtime"
)

// entry is one builtin binding and the stage that unlocks it.
type entry struct {
	stage int
	value runtime.Value
}

var registry = map[string]entry{}

func register(stage int, name string, value runtime.Value) {
	if fn, ok := value.(*runtime.HostFunction); ok && fn.Name == "" {
		fn.Name = name
	}
	registry[name] = entry{stage: stage, value: value}
}

func fn(stage int, name string, arity int, f runtime.HostFunc) {
	register(stage, name, &runtime.HostFunction{Name: name, Arity: arity, Fn: f})
}

// Names returns the builtins available at stage, sorted.
func Names(stage int) []string {
	var names []string
	for name, e := range registry {
		if e.stage <= stage {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Install defines every builtin available at stage as a constant in frame.
func Install(frame *runtime.Frame, stage int) {
	for _, name := range Names(stage) {
		frame.Define(name, registry[name].value, true)
	}
}

//go:embed prelude.js
var prelude string

// PreludeStage is the first stage whose programs see the prelude.
const PreludeStage = 5

// Prelude returns the source evaluated after Install, or "" before lists are
// unlocked.
func Prelude(stage int) string {
	if stage < PreludeStage {
		return ""
	}
	return prelude
}

func argError(name string, want string, got runtime.Value) error {
	return fmt.Errorf("%s expects %s, but got %s", name, want, runtime.Stringify(got))
}
