// Package symstate implements the symbolic program state spec.md
// §4.4 describes: an environment of solver terms, an accumulated path
// condition, a sticky error flag and a scoped solver handle. It is the
// unit symexec forks and threads through a program.
package symstate

import "wlang/internal/smt"

// savedFrame is one push()'d snapshot, restored in LIFO order by pop().
type savedFrame struct {
	env  map[string]smt.Term
	path []smt.Term
}

// SymState is a single symbolic execution path: its environment
// (variable name -> solver term), its accumulated path condition, a
// dedicated solver instance, and a sticky error flag recording whether
// any assertion/invariant failure was found along this path.
type SymState struct {
	Env     map[string]smt.Term
	Path    []smt.Term
	Solver  *smt.Solver
	isError bool
	saved   []savedFrame
}

// New returns an empty symbolic state with a fresh solver.
func New() *SymState {
	return &SymState{Env: map[string]smt.Term{}, Solver: smt.NewSolver()}
}

// AddPC appends each of exps to the path condition and asserts it into
// the solver.
func (s *SymState) AddPC(exps ...smt.Term) {
	for _, e := range exps {
		s.Path = append(s.Path, e)
		s.Solver.Assert(e)
	}
}

// IsEmpty reports whether the state's path condition is UNSAT (no
// satisfying environment exists). A solver Unknown result is treated
// as "not empty" (spec.md §4.5: sound over-approximation).
func (s *SymState) IsEmpty() bool {
	return s.Solver.Check() == smt.Unsat
}

// CheckResult returns the solver's raw three-valued verdict for the
// current path condition. Callers that only need the sound
// over-approximation should use IsEmpty; CheckResult exists for
// callers (symexec's feasibility checks) that additionally need to
// flag an Unknown verdict rather than silently folding it into "not
// empty".
func (s *SymState) CheckResult() smt.Result {
	return s.Solver.Check()
}

// PickConcrete materializes a concrete environment consistent with the
// path condition, or ok=false if the path is infeasible.
func (s *SymState) PickConcrete() (map[string]int, bool) {
	if s.Solver.Check() != smt.Sat {
		return nil, false
	}
	out := make(map[string]int, len(s.Env))
	for name, term := range s.Env {
		out[name] = evalConcrete(term, s.Solver)
	}
	return out, true
}

// evalConcrete evaluates a term against the solver's last model,
// walking arithmetic combinations and defaulting free variables to
// the solver's own completion (0 when absent from the model).
func evalConcrete(t smt.Term, solver *smt.Solver) int {
	switch n := t.(type) {
	case smt.IntLit:
		return n.Value
	case smt.Var:
		return solver.EvalInt(n.Name)
	case smt.ArithTerm:
		acc := evalConcrete(n.Args[0], solver)
		for _, a := range n.Args[1:] {
			v := evalConcrete(a, solver)
			acc = applyArith(n.Op, acc, v)
		}
		return acc
	}
	return 0
}

func applyArith(op smt.ArithOp, a, b int) int {
	switch op {
	case smt.Add:
		return a + b
	case smt.Sub:
		return a - b
	case smt.Mul:
		return a * b
	case smt.Div:
		if b == 0 {
			return 0
		}
		return a / b
	}
	return 0
}

// Fork produces two independent descendants with identical
// environments (independent maps) and identical path conditions
// re-asserted into each child's own solver (spec.md §4.4, §5).
// Re-asserting the whole path is O(|path|) per fork but keeps each
// branch's solver instance fully independent, which is the simpler
// of the two strategies §9 calls acceptable.
func (s *SymState) Fork() (*SymState, *SymState) {
	left := s.cloneWithFreshSolver()
	right := s.cloneWithFreshSolver()
	return left, right
}

func (s *SymState) cloneWithFreshSolver() *SymState {
	env := make(map[string]smt.Term, len(s.Env))
	for k, v := range s.Env {
		env[k] = v
	}
	path := make([]smt.Term, len(s.Path))
	copy(path, s.Path)

	solver := smt.NewSolver()
	for _, p := range path {
		solver.Assert(p)
	}
	return &SymState{Env: env, Path: path, Solver: solver, isError: s.isError}
}

// Push saves a snapshot of env and path, and opens a new solver scope.
func (s *SymState) Push() {
	env := make(map[string]smt.Term, len(s.Env))
	for k, v := range s.Env {
		env[k] = v
	}
	path := make([]smt.Term, len(s.Path))
	copy(path, s.Path)
	s.saved = append(s.saved, savedFrame{env: env, path: path})
	s.Solver.Push()
}

// Pop restores the most recently saved snapshot and closes the
// matching solver scope. Popping with no saved frame is a no-op.
func (s *SymState) Pop() {
	if len(s.saved) == 0 {
		return
	}
	top := s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	s.Env = top.env
	s.Path = top.path
	s.Solver.Pop()
}

// MkError sets the sticky error flag.
func (s *SymState) MkError() {
	s.isError = true
}

// IsError reports whether an assertion or invariant failure was
// recorded along this path.
func (s *SymState) IsError() bool {
	return s.isError
}

// ToSMT2 serializes the current solver state as an SMT-LIB2 benchmark.
func (s *SymState) ToSMT2() string {
	return s.Solver.ToSMT2()
}

// Clone returns an independent copy sharing no mutable state: a fresh
// solver with the path re-asserted, the same way Fork builds each
// child. The saved push/pop frames are not copied.
func (s *SymState) Clone() *SymState {
	return s.cloneWithFreshSolver()
}
