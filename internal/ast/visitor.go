package ast

// Visitor is a traversal facility for W's AST: callers populate the
// hooks they care about, leave the rest nil, and call Visit. A nil hook
// falls back to the default behavior of visiting children in
// declaration order and returning nil; a non-nil hook fully owns that
// node (it must recurse itself via Visit if it wants children visited
// too). Ctx threads arbitrary caller state through the traversal; the
// return value is whatever the matched hook (or the default, which
// returns nil) produces.
type Visitor struct {
	IntConst   func(n *IntConst, ctx any) any
	BoolConst  func(n *BoolConst, ctx any) any
	IntVar     func(n *IntVar, ctx any) any
	ArithExp   func(n *ArithExp, ctx any) any
	RelExp     func(n *RelExp, ctx any) any
	BoolExp    func(n *BoolExp, ctx any) any
	Skip       func(n *Skip, ctx any) any
	PrintState func(n *PrintState, ctx any) any
	Assign     func(n *Assign, ctx any) any
	If         func(n *If, ctx any) any
	While      func(n *While, ctx any) any
	Assert     func(n *Assert, ctx any) any
	Assume     func(n *Assume, ctx any) any
	Havoc      func(n *Havoc, ctx any) any
	StmtList   func(n *StmtList, ctx any) any
}

// Visit dispatches node to the matching hook, or to the default
// children-in-order traversal if no hook was supplied for its kind.
func (v *Visitor) Visit(node Node, ctx any) any {
	switch n := node.(type) {
	case *IntConst:
		if v.IntConst != nil {
			return v.IntConst(n, ctx)
		}
		return nil
	case *BoolConst:
		if v.BoolConst != nil {
			return v.BoolConst(n, ctx)
		}
		return nil
	case *IntVar:
		if v.IntVar != nil {
			return v.IntVar(n, ctx)
		}
		return nil
	case *ArithExp:
		if v.ArithExp != nil {
			return v.ArithExp(n, ctx)
		}
		for _, a := range n.Args {
			v.Visit(a, ctx)
		}
		return nil
	case *RelExp:
		if v.RelExp != nil {
			return v.RelExp(n, ctx)
		}
		v.Visit(n.Lhs, ctx)
		v.Visit(n.Rhs, ctx)
		return nil
	case *BoolExp:
		if v.BoolExp != nil {
			return v.BoolExp(n, ctx)
		}
		for _, a := range n.Args {
			v.Visit(a, ctx)
		}
		return nil
	case *Skip:
		if v.Skip != nil {
			return v.Skip(n, ctx)
		}
		return nil
	case *PrintState:
		if v.PrintState != nil {
			return v.PrintState(n, ctx)
		}
		return nil
	case *Assign:
		if v.Assign != nil {
			return v.Assign(n, ctx)
		}
		v.Visit(n.Lhs, ctx)
		v.Visit(n.Rhs, ctx)
		return nil
	case *If:
		if v.If != nil {
			return v.If(n, ctx)
		}
		v.Visit(n.Cond, ctx)
		v.Visit(n.Then, ctx)
		if n.HasElse() {
			v.Visit(n.Else, ctx)
		}
		return nil
	case *While:
		if v.While != nil {
			return v.While(n, ctx)
		}
		v.Visit(n.Cond, ctx)
		if n.Inv != nil {
			v.Visit(n.Inv, ctx)
		}
		v.Visit(n.Body, ctx)
		return nil
	case *Assert:
		if v.Assert != nil {
			return v.Assert(n, ctx)
		}
		v.Visit(n.Cond, ctx)
		return nil
	case *Assume:
		if v.Assume != nil {
			return v.Assume(n, ctx)
		}
		v.Visit(n.Cond, ctx)
		return nil
	case *Havoc:
		if v.Havoc != nil {
			return v.Havoc(n, ctx)
		}
		for _, vr := range n.Vars {
			v.Visit(vr, ctx)
		}
		return nil
	case *StmtList:
		if v.StmtList != nil {
			return v.StmtList(n, ctx)
		}
		for _, s := range n.Stmts {
			v.Visit(s, ctx)
		}
		return nil
	default:
		return nil
	}
}
