package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"wlang/internal/ast"
)

func convertPos(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Line: p.Line, Column: p.Column}
}

func convertProgram(p *Program) ast.Stmt {
	return convertStmt(p.Stmt)
}

func convertStmt(s *Stmt) ast.Stmt {
	first := convertSimpleStmt(s.First)
	if s.Rest == nil {
		return first
	}
	rest := convertStmt(s.Rest)
	stmts := []ast.Stmt{first}
	if list, ok := rest.(*ast.StmtList); ok {
		stmts = append(stmts, list.Stmts...)
	} else {
		stmts = append(stmts, rest)
	}
	return &ast.StmtList{Pos: convertPos(s.Pos), Stmts: stmts}
}

func convertSimpleStmt(s *SimpleStmt) ast.Stmt {
	pos := convertPos(s.Pos)
	switch {
	case s.Block != nil:
		return convertStmt(s.Block.Inner)
	case s.Skip != nil:
		return &ast.Skip{Pos: pos}
	case s.Print != nil:
		return &ast.PrintState{Pos: pos}
	case s.Havoc != nil:
		vars := make([]*ast.IntVar, len(s.Havoc.Vars))
		for i, name := range s.Havoc.Vars {
			vars[i] = &ast.IntVar{Pos: pos, Name: name}
		}
		return &ast.Havoc{Pos: pos, Vars: vars}
	case s.Assume != nil:
		return &ast.Assume{Pos: pos, Cond: convertOrExpr(s.Assume.Cond)}
	case s.Assert != nil:
		return &ast.Assert{Pos: pos, Cond: convertOrExpr(s.Assert.Cond)}
	case s.If != nil:
		n := &ast.If{Pos: pos, Cond: convertOrExpr(s.If.Cond), Then: convertCompoundBody(s.If.Then)}
		if s.If.Else != nil {
			n.Else = convertCompoundBody(s.If.Else)
		}
		return n
	case s.While != nil:
		n := &ast.While{Pos: pos, Cond: convertOrExpr(s.While.Cond), Body: convertCompoundBody(s.While.Body)}
		if s.While.Inv != nil {
			n.Inv = convertOrExpr(s.While.Inv)
		}
		return n
	case s.Assign != nil:
		return &ast.Assign{
			Pos: pos,
			Lhs: &ast.IntVar{Pos: pos, Name: s.Assign.Name},
			Rhs: convertAExpr(s.Assign.Rhs),
		}
	}
	panic("parser: empty SimpleStmt alternation")
}

// convertCompoundBody converts an if/while body, which is never itself
// a ";"-sequence: that sequencing belongs to the enclosing Stmt.
func convertCompoundBody(b *CompoundBody) ast.Stmt {
	switch {
	case b.Block != nil:
		return convertStmt(b.Block.Inner)
	case b.Stmt != nil:
		return convertSimpleStmt(b.Stmt)
	}
	panic("parser: empty CompoundBody alternation")
}

func convertOrExpr(e *OrExpr) ast.BoolExpr {
	left := convertAndExpr(e.Left)
	if len(e.Rest) == 0 {
		return left
	}
	args := append([]ast.BoolExpr{left}, convertAndExprs(e.Rest)...)
	n, err := ast.NewBoolExp(convertPos(e.Pos), ast.Or, args...)
	if err != nil {
		panic(err)
	}
	return n
}

func convertAndExprs(rest []*AndExpr) []ast.BoolExpr {
	out := make([]ast.BoolExpr, len(rest))
	for i, r := range rest {
		out[i] = convertAndExpr(r)
	}
	return out
}

func convertAndExpr(e *AndExpr) ast.BoolExpr {
	left := convertNotExpr(e.Left)
	if len(e.Rest) == 0 {
		return left
	}
	args := []ast.BoolExpr{left}
	for _, r := range e.Rest {
		args = append(args, convertNotExpr(r))
	}
	n, err := ast.NewBoolExp(convertPos(e.Pos), ast.And, args...)
	if err != nil {
		panic(err)
	}
	return n
}

func convertNotExpr(e *NotExpr) ast.BoolExpr {
	atom := convertBoolAtom(e.Atom)
	if !e.Not {
		return atom
	}
	n, err := ast.NewBoolExp(convertPos(e.Pos), ast.Not, atom)
	if err != nil {
		panic(err)
	}
	return n
}

func convertBoolAtom(e *BoolAtom) ast.BoolExpr {
	pos := convertPos(e.Pos)
	switch {
	case e.True != nil:
		return &ast.BoolConst{Pos: pos, Value: true}
	case e.False != nil:
		return &ast.BoolConst{Pos: pos, Value: false}
	case e.Paren != nil:
		return convertOrExpr(e.Paren)
	case e.Rel != nil:
		return convertRelExpr(e.Rel)
	}
	panic("parser: empty BoolAtom alternation")
}

func convertRelExpr(e *RelExpr) *ast.RelExp {
	return &ast.RelExp{
		Pos: convertPos(e.Pos),
		Op:  convertRelOp(e.Op),
		Lhs: convertAExpr(e.Lhs),
		Rhs: convertAExpr(e.Rhs),
	}
}

func convertRelOp(op string) ast.RelOp {
	switch op {
	case "<":
		return ast.Lt
	case "<=":
		return ast.Le
	case "=":
		return ast.Eq
	case ">=":
		return ast.Ge
	case ">":
		return ast.Gt
	}
	panic("parser: unknown relational operator " + op)
}

// convertAExpr folds a maximal run of consecutive same-operator terms
// into one variadic ArithExp, the same way convertOrExpr/convertAndExpr
// fold boolean chains: "a+b+c" becomes one Add node over [a,b,c], not
// nested binary Add(Add(a,b),c). A run ends at the next differing
// operator, whose result chains off the prior run's fold as its left
// operand — ArithExp's left-fold evaluator (interp.evalInt) makes the
// two shapes equivalent, so this never changes what a program computes.
func convertAExpr(e *AExpr) ast.IntExpr {
	cur := convertTerm(e.Left)
	rest := e.Rest
	for len(rest) > 0 {
		op := convertArithOp(rest[0].Op)
		args := []ast.IntExpr{cur}
		pos := rest[0].Pos
		i := 0
		for i < len(rest) && convertArithOp(rest[i].Op) == op {
			args = append(args, convertTerm(rest[i].Rhs))
			i++
		}
		n, err := ast.NewArithExp(convertPos(pos), op, args...)
		if err != nil {
			panic(err)
		}
		cur = n
		rest = rest[i:]
	}
	return cur
}

func convertTerm(e *Term) ast.IntExpr {
	cur := convertUnary(e.Left)
	rest := e.Rest
	for len(rest) > 0 {
		op := convertArithOp(rest[0].Op)
		args := []ast.IntExpr{cur}
		pos := rest[0].Pos
		i := 0
		for i < len(rest) && convertArithOp(rest[i].Op) == op {
			args = append(args, convertUnary(rest[i].Rhs))
			i++
		}
		n, err := ast.NewArithExp(convertPos(pos), op, args...)
		if err != nil {
			panic(err)
		}
		cur = n
		rest = rest[i:]
	}
	return cur
}

func convertArithOp(op string) ast.ArithOp {
	switch op {
	case "+":
		return ast.Add
	case "-":
		return ast.Sub
	case "*":
		return ast.Mul
	case "/":
		return ast.Div
	}
	panic("parser: unknown arithmetic operator " + op)
}

// convertUnary desugars unary minus: a literal negates directly into
// IntConst(-n); anything else becomes 0 - x (spec.md §6: "unary minus
// is syntactic ... structurally equivalent").
func convertUnary(e *Unary) ast.IntExpr {
	prim := convertPrimary(e.Primary)
	if !e.Negate {
		return prim
	}
	pos := convertPos(e.Pos)
	if lit, ok := prim.(*ast.IntConst); ok {
		return &ast.IntConst{Pos: pos, Value: -lit.Value}
	}
	n, err := ast.NewArithExp(pos, ast.Sub, &ast.IntConst{Pos: pos, Value: 0}, prim)
	if err != nil {
		panic(err)
	}
	return n
}

func convertPrimary(e *Primary) ast.IntExpr {
	pos := convertPos(e.Pos)
	switch {
	case e.Number != nil:
		return &ast.IntConst{Pos: pos, Value: *e.Number}
	case e.Ident != nil:
		return &ast.IntVar{Pos: pos, Name: *e.Ident}
	case e.Paren != nil:
		return convertAExpr(e.Paren)
	}
	panic("parser: empty Primary alternation")
}
