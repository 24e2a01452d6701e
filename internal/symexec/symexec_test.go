package symexec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wlang/internal/ast"
	"wlang/internal/smt"
	"wlang/internal/symexec"
	"wlang/internal/symstate"
)

var pos = ast.Position{Line: 1, Column: 1}

func v(name string) *ast.IntVar { return &ast.IntVar{Pos: pos, Name: name} }
func lit(n int) *ast.IntConst    { return &ast.IntConst{Pos: pos, Value: n} }
func rel(op ast.RelOp, l, r ast.IntExpr) *ast.RelExp {
	return &ast.RelExp{Pos: pos, Op: op, Lhs: l, Rhs: r}
}
func arith(op ast.ArithOp, args ...ast.IntExpr) *ast.ArithExp {
	e, err := ast.NewArithExp(pos, op, args...)
	if err != nil {
		panic(err)
	}
	return e
}
func boolExp(op ast.BoolOp, args ...ast.BoolExpr) *ast.BoolExp {
	e, err := ast.NewBoolExp(pos, op, args...)
	if err != nil {
		panic(err)
	}
	return e
}

// scenario #2: havoc x; assume x > 10; assert x > 15 -> 1 state, pc SAT
// with x>10 and x>15, plus one "Assertion might be violated" diagnostic.
func TestScenarioAssumeThenAssert(t *testing.T) {
	prog := &ast.StmtList{Pos: pos, Stmts: []ast.Stmt{
		&ast.Havoc{Pos: pos, Vars: []*ast.IntVar{v("x")}},
		&ast.Assume{Pos: pos, Cond: rel(ast.Gt, v("x"), lit(10))},
		&ast.Assert{Pos: pos, Cond: rel(ast.Gt, v("x"), lit(15))},
	}}
	ex := symexec.New(nil)
	out := ex.Run(prog, symstate.New())
	require.Len(t, out, 1)
	env, ok := out[0].PickConcrete()
	require.True(t, ok)
	assert.Greater(t, env["x"], 10)
	assert.Greater(t, env["x"], 15)
	// 10 < x <= 15 is feasible, so the assert's violation side is reported.
	assert.Len(t, ex.Diagnostics, 1)
}

// scenario #3: havoc x; while x > 0 do x := x - 1 -> exactly 11 states.
func TestScenarioUnrollBoundExact(t *testing.T) {
	prog := &ast.StmtList{Pos: pos, Stmts: []ast.Stmt{
		&ast.Havoc{Pos: pos, Vars: []*ast.IntVar{v("x")}},
		&ast.While{Pos: pos, Cond: rel(ast.Gt, v("x"), lit(0)),
			Body: &ast.Assign{Pos: pos, Lhs: v("x"), Rhs: arith(ast.Sub, v("x"), lit(1))}},
	}}
	ex := symexec.New(nil)
	out := ex.Run(prog, symstate.New())
	assert.Len(t, out, 11)
}

// scenario #4: havoc x; while false or 1 <= 0 do x := x - 1 -> 1 state.
func TestScenarioLoopNeverEnters(t *testing.T) {
	cond := boolExp(ast.Or, &ast.BoolConst{Pos: pos, Value: false}, rel(ast.Le, lit(1), lit(0)))
	prog := &ast.StmtList{Pos: pos, Stmts: []ast.Stmt{
		&ast.Havoc{Pos: pos, Vars: []*ast.IntVar{v("x")}},
		&ast.While{Pos: pos, Cond: cond,
			Body: &ast.Assign{Pos: pos, Lhs: v("x"), Rhs: arith(ast.Sub, v("x"), lit(1))}},
	}}
	ex := symexec.New(nil)
	out := ex.Run(prog, symstate.New())
	assert.Len(t, out, 1)
}

// scenario #5: x := 30; while x > 0 do x := x - 1 -> 0 states (truncated).
func TestScenarioTruncatedBeyondBound(t *testing.T) {
	prog := &ast.StmtList{Pos: pos, Stmts: []ast.Stmt{
		&ast.Assign{Pos: pos, Lhs: v("x"), Rhs: lit(30)},
		&ast.While{Pos: pos, Cond: rel(ast.Gt, v("x"), lit(0)),
			Body: &ast.Assign{Pos: pos, Lhs: v("x"), Rhs: arith(ast.Sub, v("x"), lit(1))}},
	}}
	ex := symexec.New(nil)
	out := ex.Run(prog, symstate.New())
	assert.Len(t, out, 0)
}

// scenario #6: invariant-guided loop verifies cleanly, no diagnostics,
// 1 output state.
func TestScenarioInvariantGuidedLoopVerifies(t *testing.T) {
	inv := boolExp(ast.And, rel(ast.Le, v("c"), v("y")),
		rel(ast.Eq, v("r"), arith(ast.Add, v("x"), v("c"))))
	body := &ast.StmtList{Pos: pos, Stmts: []ast.Stmt{
		&ast.Assign{Pos: pos, Lhs: v("r"), Rhs: arith(ast.Add, v("r"), lit(1))},
		&ast.Assign{Pos: pos, Lhs: v("c"), Rhs: arith(ast.Add, v("c"), lit(1))},
	}}
	prog := &ast.StmtList{Pos: pos, Stmts: []ast.Stmt{
		&ast.Havoc{Pos: pos, Vars: []*ast.IntVar{v("x"), v("y")}},
		&ast.Assume{Pos: pos, Cond: rel(ast.Ge, v("y"), lit(0))},
		&ast.Assign{Pos: pos, Lhs: v("c"), Rhs: lit(0)},
		&ast.Assign{Pos: pos, Lhs: v("r"), Rhs: v("x")},
		&ast.While{Pos: pos, Cond: rel(ast.Lt, v("c"), v("y")), Inv: inv, Body: body},
		&ast.Assert{Pos: pos, Cond: rel(ast.Eq, v("r"), arith(ast.Add, v("x"), v("y")))},
	}}
	ex := symexec.New(nil)
	out := ex.Run(prog, symstate.New())
	require.Len(t, out, 1)
	assert.Empty(t, ex.Diagnostics)
	assert.False(t, out[0].IsError())
}

// property #2: every emitted state is feasible.
func TestEveryEmittedStateIsFeasible(t *testing.T) {
	prog := &ast.If{Pos: pos, Cond: rel(ast.Gt, lit(1), lit(0)),
		Then: &ast.Skip{Pos: pos}, Else: &ast.Skip{Pos: pos}}
	ex := symexec.New(nil)
	for _, st := range ex.Run(prog, symstate.New()) {
		assert.False(t, st.IsEmpty())
	}
}

// property #3: after assume c, every emitted state's pc entails c.
func TestAssumeEntailsCondition(t *testing.T) {
	prog := &ast.Assume{Pos: pos, Cond: rel(ast.Gt, v("x"), lit(5))}
	ex := symexec.New(nil)
	s0 := symstate.New()
	s0.Env["x"] = smt.Var{Name: "x", S: smt.IntSort}
	out := ex.Run(prog, s0)
	require.Len(t, out, 1)
	env, ok := out[0].PickConcrete()
	require.True(t, ok)
	assert.Greater(t, env["x"], 5)
}

// assert violation marks the side branch's error flag but does not
// stop exploration of the feasible (assertion-true) branch.
func TestAssertViolationIsErrorTolerant(t *testing.T) {
	prog := &ast.Assert{Pos: pos, Cond: rel(ast.Gt, v("x"), lit(5))}
	ex := symexec.New(nil)
	s0 := symstate.New()
	s0.Env["x"] = smt.Var{Name: "x", S: smt.IntSort}
	out := ex.Run(prog, s0)
	require.Len(t, out, 1)
	assert.NotEmpty(t, ex.Diagnostics)
	assert.False(t, out[0].IsError())
}
