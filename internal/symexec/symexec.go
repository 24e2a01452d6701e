// Package symexec implements the symbolic executor (spec.md §4.5):
// given a program and an initial symbolic state, it computes the set
// of symbolic states reachable at the program's exit along feasible
// paths, forking on every branch and discharging loop invariants or
// bounded-unrolling the loop when no invariant is given. It is
// deliberately error-tolerant (spec.md §7): an assertion or invariant
// failure is recorded as a diagnostic on a side branch, and execution
// continues down the feasible branch rather than stopping.
package symexec

import (
	"fmt"
	"io"
	"sort"

	"wlang/internal/ast"
	"wlang/internal/errors"
	"wlang/internal/smt"
	"wlang/internal/symstate"
	"wlang/internal/undef"
)

// DefaultUnrollLimit is the iteration cap spec.md §9 calls part of the
// observable contract (scenarios #3 and #5 depend on its exact value).
const DefaultUnrollLimit = 10

// Executor runs the symbolic execution rules over one program.
type Executor struct {
	// Out receives print_state output; nil discards it.
	Out io.Writer
	// Diagnostics accumulates assertion/invariant findings in emission
	// order; callers inspect it after Run returns.
	Diagnostics []errors.Diagnostic
	// UnrollLimit overrides DefaultUnrollLimit; zero means use the default.
	UnrollLimit int
}

// New returns an Executor writing print_state output to w.
func New(w io.Writer) *Executor {
	return &Executor{Out: w}
}

func (ex *Executor) limit() int {
	if ex.UnrollLimit > 0 {
		return ex.UnrollLimit
	}
	return DefaultUnrollLimit
}

func (ex *Executor) diag(d errors.Diagnostic) {
	ex.Diagnostics = append(ex.Diagnostics, d)
}

// feasible reports whether st's path condition is satisfiable. A
// solver verdict of Unknown is treated as feasible, the same sound
// over-approximation IsEmpty makes (spec.md §4.5), but is additionally
// recorded as a diagnostic at pos so a reader can see where the
// approximation was needed.
func (ex *Executor) feasible(st *symstate.SymState, pos ast.Position) bool {
	switch st.CheckResult() {
	case smt.Unsat:
		return false
	case smt.Unknown:
		ex.diag(errors.SolverUnknown(pos))
		return true
	default:
		return true
	}
}

// Run computes R(P, s0): the symbolic states reachable at stmt's exit
// along every feasible path.
func (ex *Executor) Run(stmt ast.Stmt, s0 *symstate.SymState) []*symstate.SymState {
	return ex.exec(stmt, s0)
}

func (ex *Executor) exec(stmt ast.Stmt, s *symstate.SymState) []*symstate.SymState {
	switch n := stmt.(type) {
	case *ast.Skip:
		return []*symstate.SymState{s}

	case *ast.PrintState:
		if ex.Out != nil {
			fmt.Fprintln(ex.Out, s.ToSMT2())
		}
		return []*symstate.SymState{s}

	case *ast.Assign:
		s.Env[n.Lhs.Name] = ex.evalInt(n.Rhs, s)
		return []*symstate.SymState{s}

	case *ast.Havoc:
		for _, v := range n.Vars {
			s.Env[v.Name] = smt.FreshInt(v.Name)
		}
		return []*symstate.SymState{s}

	case *ast.Assume:
		s.AddPC(ex.evalBool(n.Cond, s))
		if !ex.feasible(s, n.NodePos()) {
			return nil
		}
		return []*symstate.SymState{s}

	case *ast.Assert:
		return ex.execAssert(n, s)

	case *ast.If:
		return ex.execIf(n, s)

	case *ast.While:
		if n.Inv != nil {
			return ex.execWhileInvariant(n, s)
		}
		return ex.execWhileUnrolled(n, s)

	case *ast.StmtList:
		states := []*symstate.SymState{s}
		for _, child := range n.Stmts {
			var next []*symstate.SymState
			for _, st := range states {
				next = append(next, ex.exec(child, st)...)
			}
			states = next
			if len(states) == 0 {
				break
			}
		}
		return states
	}
	return nil
}

func (ex *Executor) execAssert(n *ast.Assert, s *symstate.SymState) []*symstate.SymState {
	condTerm := ex.evalBool(n.Cond, s)
	violated, ok := s.Fork()
	violated.AddPC(smt.NewNot(condTerm))
	if ex.feasible(violated, n.NodePos()) {
		violated.MkError()
		ex.diag(errors.AssertionMightBeViolated(n.NodePos()))
	}
	ok.AddPC(condTerm)
	if !ex.feasible(ok, n.NodePos()) {
		return nil
	}
	return []*symstate.SymState{ok}
}

func (ex *Executor) execIf(n *ast.If, s *symstate.SymState) []*symstate.SymState {
	condTerm := ex.evalBool(n.Cond, s)
	sThen, sElse := s.Fork()
	sThen.AddPC(condTerm)
	sElse.AddPC(smt.NewNot(condTerm))

	var out []*symstate.SymState
	if ex.feasible(sThen, n.NodePos()) {
		out = append(out, ex.exec(n.Then, sThen)...)
	}
	if n.HasElse() {
		if ex.feasible(sElse, n.NodePos()) {
			out = append(out, ex.exec(n.Else, sElse)...)
		}
	} else if ex.feasible(sElse, n.NodePos()) {
		out = append(out, sElse)
	}
	return out
}

// execWhileInvariant implements the Hoare-style loop rule: check the
// invariant holds on entry (initiation), then havoc every variable the
// body may modify and re-verify the invariant is preserved across one
// abstract iteration. Only the ¬cond exit of the havoc'd state
// contributes to the continuation; the verification side is
// discharged and never propagates (spec.md §4.5, §9's open question).
func (ex *Executor) execWhileInvariant(n *ast.While, s *symstate.SymState) []*symstate.SymState {
	invTerm := ex.evalBool(n.Inv, s)

	failsInitiation, holds := s.Fork()
	failsInitiation.AddPC(smt.NewNot(invTerm))
	if ex.feasible(failsInitiation, n.NodePos()) {
		failsInitiation.MkError()
		ex.diag(errors.InvariantFailsInitiation(n.NodePos()))
	}

	holds.AddPC(invTerm)
	if !ex.feasible(holds, n.NodePos()) {
		return nil
	}

	modified := undef.New(nil)
	modified.Check(n.Body)
	defs := modified.GetDefs()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		holds.Env[name] = smt.FreshInt(name)
	}

	invAfterHavoc := ex.evalBool(n.Inv, holds)
	holds.AddPC(invAfterHavoc)
	if !ex.feasible(holds, n.NodePos()) {
		return nil
	}

	condTerm := ex.evalBool(n.Cond, holds)
	sCond, sNotCond := holds.Fork()

	sCond.AddPC(condTerm)
	if ex.feasible(sCond, n.NodePos()) {
		for _, bodyState := range ex.exec(n.Body, sCond) {
			invAfterBody := ex.evalBool(n.Inv, bodyState)
			failsPreservation, _ := bodyState.Fork()
			failsPreservation.AddPC(smt.NewNot(invAfterBody))
			if ex.feasible(failsPreservation, n.NodePos()) {
				failsPreservation.MkError()
				ex.diag(errors.InvariantNotPreserved(n.NodePos()))
			}
		}
	}

	sNotCond.AddPC(smt.NewNot(condTerm))
	if ex.feasible(sNotCond, n.NodePos()) {
		return []*symstate.SymState{sNotCond}
	}
	return nil
}

// execWhileUnrolled implements bounded symbolic unrolling (spec.md
// §4.5, §9): the loop condition is checked limit+1 times (k=0..limit),
// emitting the ¬cond exit at every check; the body only executes for
// the first `limit` checks, so any state whose cond side is still
// feasible at the final (limit-th) check is silently dropped rather
// than unrolled further (scenarios #3 and #5 pin this exact boundary).
func (ex *Executor) execWhileUnrolled(n *ast.While, s *symstate.SymState) []*symstate.SymState {
	limit := ex.limit()
	var out []*symstate.SymState
	frontier := []*symstate.SymState{s}

	for k := 0; k <= limit && len(frontier) > 0; k++ {
		var nextFrontier []*symstate.SymState
		for _, st := range frontier {
			condTerm := ex.evalBool(n.Cond, st)
			sCond, sNotCond := st.Fork()

			sNotCond.AddPC(smt.NewNot(condTerm))
			if ex.feasible(sNotCond, n.NodePos()) {
				out = append(out, sNotCond)
			}

			if k == limit {
				continue
			}
			sCond.AddPC(condTerm)
			if ex.feasible(sCond, n.NodePos()) {
				nextFrontier = append(nextFrontier, ex.exec(n.Body, sCond)...)
			}
		}
		frontier = nextFrontier
	}
	return out
}

func (ex *Executor) evalInt(expr ast.IntExpr, s *symstate.SymState) smt.Term {
	switch n := expr.(type) {
	case *ast.IntConst:
		return smt.IntLit{Value: n.Value}
	case *ast.IntVar:
		if t, ok := s.Env[n.Name]; ok {
			return t
		}
		// the executor relies on prior definedness (spec.md §4.5); an
		// undefined read here is a programming error in the caller, not
		// a recoverable symbolic-execution outcome.
		panic(fmt.Sprintf("symexec: read of undefined variable %q", n.Name))
	case *ast.ArithExp:
		args := make([]smt.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = ex.evalInt(a, s)
		}
		return smt.NewArith(convertArithOp(n.Op), args...)
	}
	panic(fmt.Sprintf("symexec: unhandled int expr %T", expr))
}

func (ex *Executor) evalBool(expr ast.BoolExpr, s *symstate.SymState) smt.Term {
	switch n := expr.(type) {
	case *ast.BoolConst:
		return smt.BoolLit{Value: n.Value}
	case *ast.RelExp:
		return smt.NewRel(convertRelOp(n.Op), ex.evalInt(n.Lhs, s), ex.evalInt(n.Rhs, s))
	case *ast.BoolExp:
		if n.Op == ast.Not {
			return smt.NewNot(ex.evalBool(n.Args[0], s))
		}
		args := make([]smt.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = ex.evalBool(a, s)
		}
		return smt.NewBool(convertBoolOp(n.Op), args...)
	}
	panic(fmt.Sprintf("symexec: unhandled bool expr %T", expr))
}

func convertArithOp(op ast.ArithOp) smt.ArithOp {
	switch op {
	case ast.Add:
		return smt.Add
	case ast.Sub:
		return smt.Sub
	case ast.Mul:
		return smt.Mul
	case ast.Div:
		return smt.Div
	}
	panic("symexec: unknown arithmetic operator")
}

func convertRelOp(op ast.RelOp) smt.RelOp {
	switch op {
	case ast.Lt:
		return smt.Lt
	case ast.Le:
		return smt.Le
	case ast.Eq:
		return smt.Eq
	case ast.Ge:
		return smt.Ge
	case ast.Gt:
		return smt.Gt
	}
	panic("symexec: unknown relational operator")
}

func convertBoolOp(op ast.BoolOp) smt.BoolOp {
	switch op {
	case ast.And:
		return smt.And
	case ast.Or:
		return smt.Or
	}
	panic("symexec: unknown boolean operator")
}
