package smt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"wlang/internal/smt"
)

func TestNewArithFoldsConstants(t *testing.T) {
	sum := smt.NewArith(smt.Add, smt.IntLit{Value: 2}, smt.IntLit{Value: 3}, smt.IntLit{Value: 4})
	assert.Equal(t, smt.IntLit{Value: 9}, sum)
}

func TestNewArithDropsAdditiveIdentity(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	got := smt.NewArith(smt.Add, x, smt.IntLit{Value: 0})
	assert.Equal(t, x, got)
}

func TestNewArithMulByZero(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	got := smt.NewArith(smt.Mul, x, smt.IntLit{Value: 0})
	assert.Equal(t, smt.IntLit{Value: 0}, got)
}

func TestNewArithSubSelfIsZero(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	got := smt.NewArith(smt.Sub, x, x)
	assert.Equal(t, smt.IntLit{Value: 0}, got)
}

func TestNewRelStructurallyEqualSides(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	assert.Equal(t, smt.BoolLit{Value: true}, smt.NewRel(smt.Le, x, x))
	assert.Equal(t, smt.BoolLit{Value: false}, smt.NewRel(smt.Lt, x, x))
}

func TestNewBoolShortCircuits(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	atom := smt.NewRel(smt.Lt, x, smt.IntLit{Value: 5})
	assert.Equal(t, smt.BoolLit{Value: false}, smt.NewBool(smt.And, atom, smt.BoolLit{Value: false}))
	assert.Equal(t, smt.BoolLit{Value: true}, smt.NewBool(smt.Or, atom, smt.BoolLit{Value: true}))
}

func TestNewNotCancelsDoubleNegation(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	atom := smt.NewRel(smt.Lt, x, smt.IntLit{Value: 5})
	assert.Equal(t, atom, smt.NewNot(smt.NewNot(atom)))
}

func TestCheckSimpleBoundIsSat(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	s := smt.NewSolver()
	s.Assert(smt.NewRel(smt.Gt, x, smt.IntLit{Value: 10}))
	s.Assert(smt.NewRel(smt.Lt, x, smt.IntLit{Value: 20}))
	assert.Equal(t, smt.Sat, s.Check())
	assert.Greater(t, s.EvalInt("x"), 10)
	assert.Less(t, s.EvalInt("x"), 20)
}

func TestCheckContradictingBoundIsUnsat(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	s := smt.NewSolver()
	s.Assert(smt.NewRel(smt.Gt, x, smt.IntLit{Value: 10}))
	s.Assert(smt.NewRel(smt.Lt, x, smt.IntLit{Value: 5}))
	assert.Equal(t, smt.Unsat, s.Check())
}

// TestCheckInvariantPreservationUnsat mirrors the arithmetic spec.md's
// worked scenario produces when checking that "c <= y and r = x + c"
// is preserved across one more iteration of "c := c + 1; r := r + 1"
// while c < y holds: after substituting r = x + c through, the
// negated postcondition reduces to a pure difference-logic
// contradiction with the path condition.
func TestCheckInvariantPreservationUnsat(t *testing.T) {
	c := smt.Var{Name: "c", S: smt.IntSort}
	y := smt.Var{Name: "y", S: smt.IntSort}
	s := smt.NewSolver()
	s.Assert(smt.NewRel(smt.Le, c, y))  // c <= y (invariant)
	s.Assert(smt.NewRel(smt.Lt, c, y))  // c < y (loop guard, taken)
	cPlus1 := smt.NewArith(smt.Add, c, smt.IntLit{Value: 1})
	s.Assert(smt.NewRel(smt.Gt, cPlus1, y)) // not(c+1 <= y): the negated invariant after one step
	assert.Equal(t, smt.Unsat, s.Check())
}

func TestCheckEliminatesEqualityBeforeDeciding(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	r := smt.Var{Name: "r", S: smt.IntSort}
	s := smt.NewSolver()
	s.Assert(smt.NewRel(smt.Eq, r, smt.NewArith(smt.Add, x, smt.IntLit{Value: 5})))
	s.Assert(smt.NewRel(smt.Lt, x, smt.IntLit{Value: 0}))
	s.Assert(smt.NewRel(smt.Lt, r, smt.IntLit{Value: 0}))
	assert.Equal(t, smt.Sat, s.Check())
}

func TestCheckFallsBackToUnknownOutsideDiffLogic(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	y := smt.Var{Name: "y", S: smt.IntSort}
	s := smt.NewSolver()
	s.Assert(smt.NewRel(smt.Eq, smt.NewArith(smt.Mul, x, y), smt.IntLit{Value: 97}))
	result := s.Check()
	assert.NotEqual(t, smt.Unsat, result)
}

func TestPushPopScopesAssertions(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	s := smt.NewSolver()
	s.Assert(smt.NewRel(smt.Ge, x, smt.IntLit{Value: 0}))
	assert.Equal(t, smt.Sat, s.Check())

	s.Push()
	s.Assert(smt.NewRel(smt.Lt, x, smt.IntLit{Value: 0}))
	assert.Equal(t, smt.Unsat, s.Check())
	s.Pop()

	assert.Equal(t, smt.Sat, s.Check())
}

func TestToSMT2DeclaresFreeVarsAndAssertions(t *testing.T) {
	x := smt.Var{Name: "x", S: smt.IntSort}
	s := smt.NewSolver()
	s.Assert(smt.NewRel(smt.Gt, x, smt.IntLit{Value: 0}))
	out := s.ToSMT2()
	assert.Contains(t, out, "(set-logic QF_LIA)")
	assert.Contains(t, out, "(declare-const x Int)")
	assert.Contains(t, out, "(check-sat)")
}
