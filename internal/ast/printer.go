package ast

import (
	"strconv"
	"strings"
)

// Print produces W's canonical surface syntax for node. Printing is
// purely diagnostic (used by the REPL, the CLI, and round-trip tests)
// and is not part of any semantic contract. It is built on top of
// Visitor to keep one traversal mechanism for the whole package.
func Print(node Node) string {
	var b strings.Builder
	printer.Visit(node, &b)
	return b.String()
}

func (n *IntConst) String() string   { return Print(n) }
func (n *BoolConst) String() string  { return Print(n) }
func (n *IntVar) String() string     { return Print(n) }
func (n *ArithExp) String() string   { return Print(n) }
func (n *RelExp) String() string     { return Print(n) }
func (n *BoolExp) String() string    { return Print(n) }
func (n *Skip) String() string       { return Print(n) }
func (n *PrintState) String() string { return Print(n) }
func (n *Assign) String() string     { return Print(n) }
func (n *If) String() string         { return Print(n) }
func (n *While) String() string      { return Print(n) }
func (n *Assert) String() string     { return Print(n) }
func (n *Assume) String() string     { return Print(n) }
func (n *Havoc) String() string      { return Print(n) }
func (n *StmtList) String() string   { return Print(n) }

func buf(ctx any) *strings.Builder { return ctx.(*strings.Builder) }

func printArgs(v *Visitor, b *strings.Builder, sep string, args []IntExpr) {
	for i, a := range args {
		if i > 0 {
			b.WriteString(sep)
		}
		v.Visit(a, b)
	}
}

func printBoolArgs(v *Visitor, b *strings.Builder, sep string, args []BoolExpr) {
	for i, a := range args {
		if i > 0 {
			b.WriteString(sep)
		}
		v.Visit(a, b)
	}
}

// printer is the single Visitor instance backing Print; each hook
// writes its own canonical rendering into the *strings.Builder ctx.
// The hooks recurse through printer, so they live in printerHooks and
// are copied in by init: a literal that refers to its own variable is
// an initialization cycle in Go.
var printer = &Visitor{}

func init() { *printer = printerHooks }

var printerHooks = Visitor{
	IntConst: func(n *IntConst, ctx any) any {
		buf(ctx).WriteString(strconv.Itoa(n.Value))
		return nil
	},
	BoolConst: func(n *BoolConst, ctx any) any {
		buf(ctx).WriteString(strconv.FormatBool(n.Value))
		return nil
	},
	IntVar: func(n *IntVar, ctx any) any {
		buf(ctx).WriteString(n.Name)
		return nil
	},
	ArithExp: func(n *ArithExp, ctx any) any {
		b := buf(ctx)
		b.WriteByte('(')
		printArgs(printer, b, " "+string(n.Op)+" ", n.Args)
		b.WriteByte(')')
		return nil
	},
	RelExp: func(n *RelExp, ctx any) any {
		b := buf(ctx)
		b.WriteByte('(')
		printer.Visit(n.Lhs, b)
		b.WriteString(" " + string(n.Op) + " ")
		printer.Visit(n.Rhs, b)
		b.WriteByte(')')
		return nil
	},
	BoolExp: func(n *BoolExp, ctx any) any {
		b := buf(ctx)
		if n.Op == Not {
			b.WriteString("(not ")
			printer.Visit(n.Args[0], b)
			b.WriteByte(')')
			return nil
		}
		b.WriteByte('(')
		printBoolArgs(printer, b, " "+string(n.Op)+" ", n.Args)
		b.WriteByte(')')
		return nil
	},
	Skip: func(n *Skip, ctx any) any {
		buf(ctx).WriteString("skip")
		return nil
	},
	PrintState: func(n *PrintState, ctx any) any {
		buf(ctx).WriteString("print_state")
		return nil
	},
	Assign: func(n *Assign, ctx any) any {
		b := buf(ctx)
		printer.Visit(n.Lhs, b)
		b.WriteString(" := ")
		printer.Visit(n.Rhs, b)
		return nil
	},
	If: func(n *If, ctx any) any {
		b := buf(ctx)
		b.WriteString("if ")
		printer.Visit(n.Cond, b)
		b.WriteString(" then ")
		printer.Visit(n.Then, b)
		if n.HasElse() {
			b.WriteString(" else ")
			printer.Visit(n.Else, b)
		}
		return nil
	},
	While: func(n *While, ctx any) any {
		b := buf(ctx)
		b.WriteString("while ")
		printer.Visit(n.Cond, b)
		if n.Inv != nil {
			b.WriteString(" inv ")
			printer.Visit(n.Inv, b)
		}
		b.WriteString(" do ")
		printer.Visit(n.Body, b)
		return nil
	},
	Assert: func(n *Assert, ctx any) any {
		b := buf(ctx)
		b.WriteString("assert ")
		printer.Visit(n.Cond, b)
		return nil
	},
	Assume: func(n *Assume, ctx any) any {
		b := buf(ctx)
		b.WriteString("assume ")
		printer.Visit(n.Cond, b)
		return nil
	},
	Havoc: func(n *Havoc, ctx any) any {
		b := buf(ctx)
		b.WriteString("havoc ")
		for i, v := range n.Vars {
			if i > 0 {
				b.WriteString(", ")
			}
			printer.Visit(v, b)
		}
		return nil
	},
	StmtList: func(n *StmtList, ctx any) any {
		b := buf(ctx)
		b.WriteByte('{')
		for i, s := range n.Stmts {
			if i > 0 {
				b.WriteString("; ")
			}
			printer.Visit(s, b)
		}
		b.WriteByte('}')
		return nil
	},
}
