package smt

import (
	"fmt"
	"sort"
	"strings"
)

// ToSMT2 renders every assertion currently on the stack as a standalone
// SMT-LIB2 benchmark (logic QF_LIA), mirroring SymState.to_smt2 in the
// original implementation. It is diagnostic output only — nothing in
// this package parses it back.
func (s *Solver) ToSMT2() string {
	assertions := s.Assertions()

	declared := map[string]bool{}
	var names []string
	for _, a := range assertions {
		for _, v := range freeVars(a) {
			if !declared[v.Name] {
				declared[v.Name] = true
				names = append(names, v.Name)
			}
		}
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("(set-logic QF_LIA)\n")
	for _, n := range names {
		fmt.Fprintf(&b, "(declare-const %s Int)\n", n)
	}
	for _, a := range assertions {
		fmt.Fprintf(&b, "(assert %s)\n", toSMT2Term(a))
	}
	b.WriteString("(check-sat)\n")
	return b.String()
}

// toSMT2Term renders a term with SMT-LIB2's prefix operator names,
// where they differ from the ones Term.String() uses for debug output
// (boolean equality and distinctness, in particular).
func toSMT2Term(t Term) string {
	switch n := t.(type) {
	case IntLit:
		// SMT-LIB2's numeral grammar has no unary minus token: a
		// negative literal must be written as the negation application
		// "(- 5)", never the bare lexeme "-5".
		if n.Value < 0 {
			return fmt.Sprintf("(- %d)", -n.Value)
		}
		return t.String()
	case BoolLit, Var:
		return t.String()
	case ArithTerm:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = toSMT2Term(a)
		}
		return "(" + n.Op.String() + " " + strings.Join(parts, " ") + ")"
	case RelTerm:
		op := n.Op.String()
		if n.Op == Neq {
			op = "distinct"
		}
		return fmt.Sprintf("(%s %s %s)", op, toSMT2Term(n.Lhs), toSMT2Term(n.Rhs))
	case BoolTerm:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = toSMT2Term(a)
		}
		return "(" + n.Op.String() + " " + strings.Join(parts, " ") + ")"
	}
	return t.String()
}
