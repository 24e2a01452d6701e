package smt

// nnf pushes negation down to the relational leaves (De Morgan plus
// flipping comparison operators), so Check never has to special-case
// a Not wrapping an And/Or/Rel.
func nnf(t Term) Term {
	switch n := t.(type) {
	case BoolTerm:
		switch n.Op {
		case Not:
			return nnfNot(n.Args[0])
		case And, Or:
			args := make([]Term, len(n.Args))
			for i, a := range n.Args {
				args[i] = nnf(a)
			}
			return NewBool(n.Op, args...)
		}
	}
	return t
}

func nnfNot(t Term) Term {
	switch n := t.(type) {
	case BoolLit:
		return BoolLit{!n.Value}
	case BoolTerm:
		switch n.Op {
		case Not:
			return nnf(n.Args[0])
		case And:
			args := make([]Term, len(n.Args))
			for i, a := range n.Args {
				args[i] = nnfNot(a)
			}
			return NewBool(Or, args...)
		case Or:
			args := make([]Term, len(n.Args))
			for i, a := range n.Args {
				args[i] = nnfNot(a)
			}
			return NewBool(And, args...)
		}
	case RelTerm:
		return NewRel(negateRel(n.Op), n.Lhs, n.Rhs)
	}
	return NewNot(nnf(t))
}

func negateRel(op RelOp) RelOp {
	switch op {
	case Lt:
		return Ge
	case Le:
		return Gt
	case Eq:
		return Neq
	case Ge:
		return Lt
	case Gt:
		return Le
	case Neq:
		return Eq
	}
	return op
}

// flattenAnd returns the top-level conjuncts of t (t itself if it is
// not an And).
func flattenAnd(t Term) []Term {
	if bt, ok := t.(BoolTerm); ok && bt.Op == And {
		var out []Term
		for _, a := range bt.Args {
			out = append(out, flattenAnd(a)...)
		}
		return out
	}
	return []Term{t}
}

// substitute replaces every occurrence of variable name with repl.
func substitute(t Term, name string, repl Term) Term {
	switch n := t.(type) {
	case Var:
		if n.Name == name {
			return repl
		}
		return n
	case ArithTerm:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = substitute(a, name, repl)
		}
		return NewArith(n.Op, args...)
	case RelTerm:
		return NewRel(n.Op, substitute(n.Lhs, name, repl), substitute(n.Rhs, name, repl))
	case BoolTerm:
		if n.Op == Not {
			return NewNot(substitute(n.Args[0], name, repl))
		}
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = substitute(a, name, repl)
		}
		return NewBool(n.Op, args...)
	default:
		return t
	}
}

// asEqualitySubst reports whether conjunct is a `Var = Term` (or
// `Term = Var`) equality suitable for variable elimination: the
// replacement side must not mention the variable being eliminated.
func asEqualitySubst(conjunct Term) (name string, repl Term, ok bool) {
	rel, isRel := conjunct.(RelTerm)
	if !isRel || rel.Op != Eq {
		return "", nil, false
	}
	if v, isVar := rel.Lhs.(Var); isVar && !mentions(rel.Rhs, v.Name) {
		return v.Name, rel.Rhs, true
	}
	if v, isVar := rel.Rhs.(Var); isVar && !mentions(rel.Lhs, v.Name) {
		return v.Name, rel.Lhs, true
	}
	return "", nil, false
}

func mentions(t Term, name string) bool {
	switch n := t.(type) {
	case Var:
		return n.Name == name
	case ArithTerm:
		for _, a := range n.Args {
			if mentions(a, name) {
				return true
			}
		}
	case RelTerm:
		return mentions(n.Lhs, name) || mentions(n.Rhs, name)
	case BoolTerm:
		for _, a := range n.Args {
			if mentions(a, name) {
				return true
			}
		}
	}
	return false
}

// eliminateEqualities repeatedly substitutes away conjuncts of the form
// `Var = Term`, to a fixed point (bounded by len(conjuncts) passes,
// which is always enough since each pass removes one variable).
func eliminateEqualities(conjuncts []Term) []Term {
	for pass := 0; pass < len(conjuncts)+1; pass++ {
		changed := false
		for i, c := range conjuncts {
			name, repl, ok := asEqualitySubst(c)
			if !ok {
				continue
			}
			rest := make([]Term, 0, len(conjuncts)-1)
			for j, other := range conjuncts {
				if j == i {
					continue
				}
				rest = append(rest, substitute(other, name, repl))
			}
			conjuncts = rest
			changed = true
			break
		}
		if !changed {
			break
		}
	}
	return conjuncts
}

// freeVars returns the free variables of t, in first-appearance order.
func freeVars(t Term) []Var {
	seen := map[string]bool{}
	var order []Var
	var walk func(Term)
	walk = func(t Term) {
		switch n := t.(type) {
		case Var:
			if !seen[n.Name] {
				seen[n.Name] = true
				order = append(order, n)
			}
		case ArithTerm:
			for _, a := range n.Args {
				walk(a)
			}
		case RelTerm:
			walk(n.Lhs)
			walk(n.Rhs)
		case BoolTerm:
			for _, a := range n.Args {
				walk(a)
			}
		}
	}
	walk(t)
	return order
}
