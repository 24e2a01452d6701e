package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wlang/internal/ast"
	"wlang/internal/errors"
	"wlang/internal/interp"
)

var pos = ast.Position{Line: 1, Column: 1}

func v(name string) *ast.IntVar { return &ast.IntVar{Pos: pos, Name: name} }
func lit(n int) *ast.IntConst    { return &ast.IntConst{Pos: pos, Value: n} }

// scenario #1: x := 10; print_state -> env = {x:10}, size 1
func TestAssignAndPrintState(t *testing.T) {
	var buf bytes.Buffer
	in := interp.New(&buf)
	prog := &ast.StmtList{Pos: pos, Stmts: []ast.Stmt{
		&ast.Assign{Pos: pos, Lhs: v("x"), Rhs: lit(10)},
		&ast.PrintState{Pos: pos},
	}}
	final, err := in.Run(prog, interp.NewState())
	require.NoError(t, err)
	require.NotNil(t, final)
	assert.Equal(t, 1, len(final.Env))
	assert.Equal(t, 10, final.Env["x"])
	assert.Contains(t, buf.String(), "x: 10")
}

// scenario #7: assert 1 > 2 raises AssertionViolation
func TestAssertFailureRaises(t *testing.T) {
	in := interp.New(nil)
	cond := &ast.RelExp{Pos: pos, Op: ast.Gt, Lhs: lit(1), Rhs: lit(2)}
	_, runErr := in.Run(&ast.Assert{Pos: pos, Cond: cond}, interp.NewState())
	require.Error(t, runErr)
	var ie *errors.InterpError
	require.ErrorAs(t, runErr, &ie)
	assert.Equal(t, errors.CodeAssertionViolated, ie.Code)
}

func TestUndefinedVariableFails(t *testing.T) {
	in := interp.New(nil)
	_, err := in.Run(&ast.Assign{Pos: pos, Lhs: v("y"), Rhs: v("x")}, interp.NewState())
	require.Error(t, err)
	var ie *errors.InterpError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, errors.CodeUndefinedVariable, ie.Code)
}

func TestDivisionByZeroFails(t *testing.T) {
	in := interp.New(nil)
	divExp, err := ast.NewArithExp(pos, ast.Div, lit(1), lit(0))
	require.NoError(t, err)
	_, runErr := in.Run(&ast.Assign{Pos: pos, Lhs: v("x"), Rhs: divExp}, interp.NewState())
	require.Error(t, runErr)
	var ie *errors.InterpError
	require.ErrorAs(t, runErr, &ie)
	assert.Equal(t, errors.CodeArithmeticError, ie.Code)
}

func TestWhileLoopCountsDown(t *testing.T) {
	in := interp.New(nil)
	s0 := interp.NewState()
	s0.Env["x"] = 3
	body := &ast.Assign{Pos: pos, Lhs: v("x"), Rhs: mustArith(ast.Sub, v("x"), lit(1))}
	loop := &ast.While{Pos: pos, Cond: &ast.RelExp{Pos: pos, Op: ast.Gt, Lhs: v("x"), Rhs: lit(0)}, Body: body}
	final, err := in.Run(loop, s0)
	require.NoError(t, err)
	assert.Equal(t, 0, final.Env["x"])
}

func TestAssumeFalseHaltsWithoutError(t *testing.T) {
	in := interp.New(nil)
	final, err := in.Run(&ast.Assume{Pos: pos, Cond: &ast.BoolConst{Pos: pos, Value: false}}, interp.NewState())
	require.NoError(t, err)
	assert.Nil(t, final)
}

func TestHavocSetsZero(t *testing.T) {
	in := interp.New(nil)
	final, err := in.Run(&ast.Havoc{Pos: pos, Vars: []*ast.IntVar{v("x"), v("y")}}, interp.NewState())
	require.NoError(t, err)
	assert.Equal(t, 0, final.Env["x"])
	assert.Equal(t, 0, final.Env["y"])
}

func mustArith(op ast.ArithOp, args ...ast.IntExpr) *ast.ArithExp {
	e, err := ast.NewArithExp(pos, op, args...)
	if err != nil {
		panic(err)
	}
	return e
}
