package ast

// Equal reports whether two expressions are structurally identical,
// ignoring source position. IntVar compares by Name only, matching the
// "equality and hashing are by name" rule for identifier references.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *IntConst:
		y, ok := b.(*IntConst)
		return ok && x.Value == y.Value
	case *BoolConst:
		y, ok := b.(*BoolConst)
		return ok && x.Value == y.Value
	case *IntVar:
		y, ok := b.(*IntVar)
		return ok && x.Name == y.Name
	case *ArithExp:
		y, ok := b.(*ArithExp)
		if !ok || x.Op != y.Op || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *RelExp:
		y, ok := b.(*RelExp)
		return ok && x.Op == y.Op && Equal(x.Lhs, y.Lhs) && Equal(x.Rhs, y.Rhs)
	case *BoolExp:
		y, ok := b.(*BoolExp)
		if !ok || x.Op != y.Op || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// VarKey returns the map key identifying an IntVar by name — the
// idiomatic stand-in for "hash an IntVar": a plain string compares and
// hashes exactly the way the name-only equality rule requires, and is
// directly usable as a Go map key (unlike *IntVar, whose identity
// would otherwise track Position too).
func VarKey(v *IntVar) string { return v.Name }
