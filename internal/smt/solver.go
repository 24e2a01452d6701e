package smt

import "sort"

// Result is the three-valued outcome of Check, matching the oracle's
// sat/unsat/unknown contract (the original implementation's "unknown"
// is folded into "not provably empty" by callers, per spec.md §4.4's
// is_empty semantics).
type Result int

const (
	Sat Result = iota
	Unsat
	Unknown
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	}
	return "unknown"
}

// Solver holds a stack of assertion scopes. Push/Pop/Assert/Check
// mirror the push/pop/assert/check-sat surface spec.md treats as an
// opaque oracle; fork() in symstate hands each branch its own Solver
// rather than sharing one across nested push levels (see SPEC_FULL.md
// §5's note on why).
type Solver struct {
	stack []([]Term)
	model map[string]int
}

// NewSolver returns a solver with a single, empty base scope.
func NewSolver() *Solver {
	return &Solver{stack: [][]Term{{}}}
}

// Push opens a new assertion scope.
func (s *Solver) Push() {
	s.stack = append(s.stack, []Term{})
}

// Pop discards the most recently opened scope. Popping the base scope
// is a no-op, mirroring z3's behavior of refusing to go below level 0.
func (s *Solver) Pop() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Assert adds t to the current (innermost) scope.
func (s *Solver) Assert(t Term) {
	top := len(s.stack) - 1
	s.stack[top] = append(s.stack[top], t)
}

// Assertions returns every term asserted across all open scopes, base
// scope first, in assertion order.
func (s *Solver) Assertions() []Term {
	var out []Term
	for _, scope := range s.stack {
		out = append(out, scope...)
	}
	return out
}

// searchRadius bounds the brute-force fallback's domain when the
// assertion set escapes the difference-logic fragment (diff.go).
// Widening this only helps Sat discovery; it can never turn a
// brute-force "no witness found" into a sound Unsat, so Check never
// reports Unsat from this path.
const searchRadius = 30

// maxSearchVars caps how many free variables the brute-force fallback
// will enumerate over before giving up and returning Unknown outright;
// beyond this the cartesian product is not worth paying for in a
// teaching tool.
const maxSearchVars = 4

// Check decides satisfiability of the conjunction of every assertion
// currently on the stack.
//
// It first normalizes to NNF, flattens top-level conjunctions, and
// eliminates variable-defining equalities (normalize.go) — this alone
// resolves most of the arithmetic identities spec.md's invariant rule
// produces. If every surviving conjunct is a difference-logic atom
// (diff.go), the decision is exact in both directions. Otherwise Check
// falls back to bounded brute-force search: a witness still proves
// Sat, but failure to find one only proves Unknown, never Unsat.
func (s *Solver) Check() Result {
	var conjuncts []Term
	for _, a := range s.Assertions() {
		conjuncts = append(conjuncts, flattenAnd(nnf(a))...)
	}
	conjuncts = eliminateEqualities(conjuncts)

	kept := conjuncts[:0]
	for _, c := range conjuncts {
		if lit, ok := c.(BoolLit); ok {
			if !lit.Value {
				return Unsat
			}
			continue
		}
		kept = append(kept, c)
	}
	conjuncts = kept
	if len(conjuncts) == 0 {
		s.model = map[string]int{}
		return Sat
	}

	if edges, ok := diffEdgesFor(conjuncts); ok {
		sat, model := diffSolve(edges)
		if !sat {
			return Unsat
		}
		s.model = model
		return Sat
	}

	return s.bruteForce(conjuncts)
}

// diffEdgesFor converts every conjunct to difference-logic edges,
// failing (ok=false) as soon as one conjunct escapes that fragment.
func diffEdgesFor(conjuncts []Term) ([]diffEdge, bool) {
	var edges []diffEdge
	for _, c := range conjuncts {
		e, ok := asDiffEdges(c)
		if !ok {
			return nil, false
		}
		edges = append(edges, e...)
	}
	return edges, true
}

func (s *Solver) bruteForce(conjuncts []Term) Result {
	varSet := map[string]bool{}
	var vars []string
	for _, c := range conjuncts {
		for _, v := range freeVars(c) {
			if !varSet[v.Name] {
				varSet[v.Name] = true
				vars = append(vars, v.Name)
			}
		}
	}
	sort.Strings(vars)
	if len(vars) == 0 {
		return Unknown // no variables left but no conjunct folded to a literal: give up honestly
	}
	if len(vars) > maxSearchVars {
		return Unknown
	}

	assign := make(map[string]int, len(vars))
	if search(vars, 0, assign, conjuncts) {
		s.model = make(map[string]int, len(assign))
		for k, v := range assign {
			s.model[k] = v
		}
		return Sat
	}
	return Unknown
}

func search(vars []string, i int, assign map[string]int, conjuncts []Term) bool {
	if i == len(vars) {
		for _, c := range conjuncts {
			v, ok := evalBool(c, assign)
			if !ok || !v {
				return false
			}
		}
		return true
	}
	for v := -searchRadius; v <= searchRadius; v++ {
		assign[vars[i]] = v
		if search(vars, i+1, assign, conjuncts) {
			return true
		}
	}
	delete(assign, vars[i])
	return false
}

func evalInt(t Term, assign map[string]int) (int, bool) {
	switch n := t.(type) {
	case IntLit:
		return n.Value, true
	case Var:
		v, ok := assign[n.Name]
		return v, ok
	case ArithTerm:
		acc, ok := evalInt(n.Args[0], assign)
		if !ok {
			return 0, false
		}
		for _, a := range n.Args[1:] {
			v, ok := evalInt(a, assign)
			if !ok {
				return 0, false
			}
			if n.Op == Div && v == 0 {
				return 0, false
			}
			acc = applyArith(n.Op, acc, v)
		}
		return acc, true
	}
	return 0, false
}

func evalBool(t Term, assign map[string]int) (bool, bool) {
	switch n := t.(type) {
	case BoolLit:
		return n.Value, true
	case RelTerm:
		l, ok1 := evalInt(n.Lhs, assign)
		r, ok2 := evalInt(n.Rhs, assign)
		if !ok1 || !ok2 {
			return false, false
		}
		return evalRel(n.Op, l, r), true
	case BoolTerm:
		switch n.Op {
		case Not:
			v, ok := evalBool(n.Args[0], assign)
			return !v, ok
		case And:
			for _, a := range n.Args {
				v, ok := evalBool(a, assign)
				if !ok {
					return false, false
				}
				if !v {
					return false, true
				}
			}
			return true, true
		case Or:
			for _, a := range n.Args {
				v, ok := evalBool(a, assign)
				if !ok {
					return false, false
				}
				if v {
					return true, true
				}
			}
			return false, true
		}
	}
	return false, false
}

// Model returns the witness assignment from the most recent Sat
// Check, keyed by variable name. Names missing from it are read as 0
// by EvalInt (mirroring z3's default model completion).
func (s *Solver) Model() map[string]int {
	return s.model
}

// EvalInt looks up a variable's value in the last Sat model, defaulting
// to 0 when the variable is absent (it was free to take any value).
func (s *Solver) EvalInt(name string) int {
	if s.model == nil {
		return 0
	}
	return s.model[name]
}
