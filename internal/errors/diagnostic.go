package errors

import "wlang/internal/ast"

// The exact diagnostic text the symbolic executor emits (spec.md §9):
// part of the external contract for human readers, not for machine
// parsing.
const (
	MsgAssertionMightBeViolated = "Assertion might be violated"
	MsgInvariantFailsInitiation = "inv fails initiation"
	MsgInvariantNotPreserved    = "inv not preserved"
	MsgSolverUnknown            = "solver could not decide feasibility; treating branch as feasible"
)

// Diagnostic is a non-fatal finding recorded by the symbolic executor
// via SymState.mk_error — the executor never stops exploring feasible
// branches because of one.
type Diagnostic struct {
	Code    Code
	Message string
	Pos     ast.Position
}

func (d Diagnostic) String() string {
	return string(d.Code) + ": " + d.Message
}

// AssertionMightBeViolated builds the diagnostic for an Assert whose
// negation is feasible.
func AssertionMightBeViolated(pos ast.Position) Diagnostic {
	return Diagnostic{Code: CodeSymAssertion, Message: MsgAssertionMightBeViolated, Pos: pos}
}

// InvariantFailsInitiation builds the diagnostic for a loop invariant
// that does not hold on entry.
func InvariantFailsInitiation(pos ast.Position) Diagnostic {
	return Diagnostic{Code: CodeInvariantInitiation, Message: MsgInvariantFailsInitiation, Pos: pos}
}

// InvariantNotPreserved builds the diagnostic for a loop invariant that
// does not survive one symbolic body iteration.
func InvariantNotPreserved(pos ast.Position) Diagnostic {
	return Diagnostic{Code: CodeInvariantPreservation, Message: MsgInvariantNotPreserved, Pos: pos}
}

// SolverUnknown builds the diagnostic for a feasibility check the
// solver returned Unknown on; the executor proceeds as though the
// branch were feasible (spec.md §4.5's sound over-approximation) and
// records this so a reader can tell where the approximation bit.
func SolverUnknown(pos ast.Position) Diagnostic {
	return Diagnostic{Code: CodeSolverUnknown, Message: MsgSolverUnknown, Pos: pos}
}
