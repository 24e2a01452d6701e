// Package interp is the concrete, single-state interpreter for W
// (spec.md §4.2): it evaluates a program over an integer environment
// and either returns the final State or fails outright on the first
// error, mirroring the teacher's error-tolerant-vs-strict split
// between its semantic analysis passes and its (strict) evaluator
// shape.
package interp

import (
	"sort"
	"strconv"
)

// State is the concrete environment: a mapping from variable name to
// its current integer value.
type State struct {
	Env map[string]int
}

// NewState returns an empty state.
func NewState() *State {
	return &State{Env: map[string]int{}}
}

// Clone returns a deep copy so callers can branch without aliasing.
func (s *State) Clone() *State {
	env := make(map[string]int, len(s.Env))
	for k, v := range s.Env {
		env[k] = v
	}
	return &State{Env: env}
}

// String renders the environment with keys in sorted order, for
// deterministic diagnostic output (print_state, scenario #1).
func (s *State) String() string {
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := "{"
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += k + ": " + strconv.Itoa(s.Env[k])
	}
	return out + "}"
}
