package interp

import (
	"fmt"
	"io"

	"wlang/internal/ast"
	"wlang/internal/errors"
)

// Interpreter evaluates W programs over a single concrete State,
// halting on the first error (spec.md §7: "the concrete interpreter
// halts on the first error").
type Interpreter struct {
	// Diagnostics receives print_state output; nil discards it.
	Diagnostics io.Writer
}

// New returns an Interpreter writing print_state output to w.
func New(w io.Writer) *Interpreter {
	return &Interpreter{Diagnostics: w}
}

// Run evaluates stmt starting from s0, returning the resulting state
// or the first error encountered. A nil, nil return means an assume
// failed and evaluation halted without error (spec.md's assume rule
// has no analogue to "failure" in concrete mode beyond stopping).
func (in *Interpreter) Run(stmt ast.Stmt, s0 *State) (*State, error) {
	return in.exec(stmt, s0)
}

func (in *Interpreter) exec(stmt ast.Stmt, s *State) (*State, error) {
	switch n := stmt.(type) {
	case *ast.Skip:
		return s, nil
	case *ast.PrintState:
		if in.Diagnostics != nil {
			fmt.Fprintln(in.Diagnostics, s.String())
		}
		return s, nil
	case *ast.Assign:
		v, err := in.evalInt(n.Rhs, s)
		if err != nil {
			return nil, err
		}
		s.Env[n.Lhs.Name] = v
		return s, nil
	case *ast.Havoc:
		for _, v := range n.Vars {
			s.Env[v.Name] = 0 // spec.md §9: concrete havoc is under-specified; 0 is the deterministic choice
		}
		return s, nil
	case *ast.Assume:
		ok, err := in.evalBool(n.Cond, s)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return s, nil
	case *ast.Assert:
		ok, err := in.evalBool(n.Cond, s)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.NewAssertionViolation(n.NodePos())
		}
		return s, nil
	case *ast.If:
		ok, err := in.evalBool(n.Cond, s)
		if err != nil {
			return nil, err
		}
		if ok {
			return in.exec(n.Then, s)
		}
		if n.HasElse() {
			return in.exec(n.Else, s)
		}
		return s, nil
	case *ast.While:
		for {
			ok, err := in.evalBool(n.Cond, s)
			if err != nil {
				return nil, err
			}
			if !ok {
				return s, nil
			}
			// inv is ignored in concrete mode (spec.md §4.2).
			s, err = in.exec(n.Body, s)
			if err != nil {
				return nil, err
			}
			if s == nil {
				return nil, nil // body's assume halted execution
			}
		}
	case *ast.StmtList:
		var err error
		for _, child := range n.Stmts {
			s, err = in.exec(child, s)
			if err != nil {
				return nil, err
			}
			if s == nil {
				return nil, nil
			}
		}
		return s, nil
	}
	return nil, fmt.Errorf("interp: unhandled statement %T", stmt)
}

func (in *Interpreter) evalInt(expr ast.IntExpr, s *State) (int, error) {
	switch n := expr.(type) {
	case *ast.IntConst:
		return n.Value, nil
	case *ast.IntVar:
		v, ok := s.Env[n.Name]
		if !ok {
			return 0, errors.NewUndefinedVariable(n.NodePos(), n.Name)
		}
		return v, nil
	case *ast.ArithExp:
		acc, err := in.evalInt(n.Args[0], s)
		if err != nil {
			return 0, err
		}
		for _, a := range n.Args[1:] {
			v, err := in.evalInt(a, s)
			if err != nil {
				return 0, err
			}
			acc, err = applyArith(n.Op, acc, v, n.NodePos())
			if err != nil {
				return 0, err
			}
		}
		return acc, nil
	}
	return 0, fmt.Errorf("interp: unhandled int expr %T", expr)
}

func applyArith(op ast.ArithOp, a, b int, pos ast.Position) (int, error) {
	switch op {
	case ast.Add:
		return a + b, nil
	case ast.Sub:
		return a - b, nil
	case ast.Mul:
		return a * b, nil
	case ast.Div:
		if b == 0 {
			return 0, errors.NewArithmeticError(pos, "division by zero")
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("interp: unknown arithmetic operator %v", op)
}

func (in *Interpreter) evalBool(expr ast.BoolExpr, s *State) (bool, error) {
	switch n := expr.(type) {
	case *ast.BoolConst:
		return n.Value, nil
	case *ast.RelExp:
		l, err := in.evalInt(n.Lhs, s)
		if err != nil {
			return false, err
		}
		r, err := in.evalInt(n.Rhs, s)
		if err != nil {
			return false, err
		}
		return evalRel(n.Op, l, r), nil
	case *ast.BoolExp:
		switch n.Op {
		case ast.Not:
			v, err := in.evalBool(n.Args[0], s)
			return !v, err
		case ast.And:
			result := true
			for _, a := range n.Args {
				v, err := in.evalBool(a, s)
				if err != nil {
					return false, err
				}
				result = result && v
			}
			return result, nil
		case ast.Or:
			result := false
			for _, a := range n.Args {
				v, err := in.evalBool(a, s)
				if err != nil {
					return false, err
				}
				result = result || v
			}
			return result, nil
		}
	}
	return false, fmt.Errorf("interp: unhandled bool expr %T", expr)
}

func evalRel(op ast.RelOp, a, b int) bool {
	switch op {
	case ast.Lt:
		return a < b
	case ast.Le:
		return a <= b
	case ast.Eq:
		return a == b
	case ast.Ge:
		return a >= b
	case ast.Gt:
		return a > b
	}
	return false
}
