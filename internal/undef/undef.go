// Package undef implements the "used-before-defined" data-flow
// analysis (spec.md §4.3) the symbolic executor's invariant-guided
// loop rule depends on to compute which variables a loop body may
// modify (and must therefore havoc). It mirrors the teacher's
// FlowAnalyzer in shape — a single pass accumulating two name sets
// while walking the AST by hand — generalized from "declared before
// use" to "definitely defined before use".
package undef

import "wlang/internal/ast"

// Analyzer accumulates the defined and undef sets while walking one
// AST fragment. Re-run it (via New) per loop body; it is not meant to
// be reused across unrelated fragments.
type Analyzer struct {
	defined map[string]bool
	undef   map[string]bool
}

// New returns an analyzer whose defined set starts as pre (the
// variables already definitely assigned before this fragment begins).
// A nil pre means "start from empty".
func New(pre map[string]bool) *Analyzer {
	return &Analyzer{defined: cloneSet(pre), undef: map[string]bool{}}
}

// Check runs the analysis over stmt, updating the defined/undef sets.
func (a *Analyzer) Check(stmt ast.Stmt) {
	a.visitStmt(stmt)
}

// GetUndefs returns the set of variable names read while not
// definitely defined.
func (a *Analyzer) GetUndefs() map[string]bool {
	return cloneSet(a.undef)
}

// GetDefs returns the current defined set.
func (a *Analyzer) GetDefs() map[string]bool {
	return cloneSet(a.defined)
}

func cloneSet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

func intersect(a, b map[string]bool) map[string]bool {
	out := map[string]bool{}
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func (a *Analyzer) visitStmt(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.Skip, *ast.PrintState:
		// no effect on defined/undef
	case *ast.Assign:
		a.visitIntExpr(n.Rhs)
		a.defined[n.Lhs.Name] = true
	case *ast.Havoc:
		for _, v := range n.Vars {
			a.defined[v.Name] = true
		}
	case *ast.Assert:
		a.visitBoolExpr(n.Cond)
	case *ast.Assume:
		a.visitBoolExpr(n.Cond)
	case *ast.If:
		a.visitBoolExpr(n.Cond)
		d0 := cloneSet(a.defined)
		a.visitStmt(n.Then)
		dThen := cloneSet(a.defined)
		if n.HasElse() {
			a.defined = cloneSet(d0)
			a.visitStmt(n.Else)
			dElse := cloneSet(a.defined)
			a.defined = intersect(dThen, dElse)
		} else {
			// spec.md §9: the safe choice is the intersection with the
			// pre-if state, not the then-branch's defs, since the
			// branch may not be taken at all.
			a.defined = intersect(dThen, d0)
		}
	case *ast.While:
		pre := cloneSet(a.defined)
		a.visitBoolExpr(n.Cond)
		a.visitStmt(n.Body)
		a.defined = pre // body may run zero times
	case *ast.StmtList:
		for _, child := range n.Stmts {
			a.visitStmt(child)
		}
	}
}

func (a *Analyzer) visitIntExpr(expr ast.IntExpr) {
	switch n := expr.(type) {
	case *ast.IntConst:
	case *ast.IntVar:
		if !a.defined[n.Name] {
			a.undef[n.Name] = true
		}
	case *ast.ArithExp:
		for _, arg := range n.Args {
			a.visitIntExpr(arg)
		}
	}
}

func (a *Analyzer) visitBoolExpr(expr ast.BoolExpr) {
	switch n := expr.(type) {
	case *ast.BoolConst:
	case *ast.RelExp:
		a.visitIntExpr(n.Lhs)
		a.visitIntExpr(n.Rhs)
	case *ast.BoolExp:
		for _, arg := range n.Args {
			a.visitBoolExpr(arg)
		}
	}
}
