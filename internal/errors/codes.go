// Package errors defines W's typed error taxonomy (spec.md §7) and a
// color-formatted reporter for surfacing it on the CLI and LSP.
//
// Error code ranges:
// E0001-E0099: parser errors
// E1001-E1099: concrete interpreter errors
// E1101-E1199: symbolic executor diagnostics (non-fatal)
//
// There is no separate scanner-error code: W's lexer (parser.WLexer,
// a participle/v2/lexer.MustSimple set of rules) reports an
// unrecognized character through the same participle.Error channel as
// a grammar failure, so the parser package never produces a
// distinguishable scan-stage error to tag with its own code.
package errors

// Code identifies an error's stable, documented category.
type Code string

const (
	// Parser — reported by the parser package in its own format.
	CodeParse Code = "E0001"

	// Concrete interpreter — these halt evaluation (spec.md §7).
	CodeUndefinedVariable Code = "E1001"
	CodeArithmeticError   Code = "E1002"
	CodeAssertionViolated Code = "E1003"

	// Symbolic executor — recorded via SymState.mk_error, never returned
	// as a Go error; see Diagnostic in diagnostic.go.
	CodeSymAssertion          Code = "E1101"
	CodeInvariantInitiation   Code = "E1102"
	CodeInvariantPreservation Code = "E1103"
	CodeSolverUnknown         Code = "E1104"
)
