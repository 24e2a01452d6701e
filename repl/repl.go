// SPDX-License-Identifier: Apache-2.0

// Package repl is an interactive, line-at-a-time driver over W
// fragments. It replaces the teacher's repl/repl.go, a stub that
// imported a nonexistent sibling module ("kanso-lang/lexer",
// "kanso-lang/parser") and so never built; here it is wired to
// wlang's own parser and the concrete/symbolic execution engines,
// with `:sym`/`:conc` commands to switch between them.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"wlang/internal/ast"
	"wlang/internal/errors"
	"wlang/internal/interp"
	"wlang/internal/parser"
	"wlang/internal/symexec"
	"wlang/internal/symstate"
)

const prompt = ">> "

// Start reads W fragments from in, one line at a time, and prints the
// resulting state(s) or diagnostics to out until in is exhausted.
// Concrete mode (the default) keeps state across lines, so variables
// assigned on one line are visible on the next; :sym mode starts a
// fresh symbolic state each line, since forked path sets don't carry
// a single "current" state to continue from.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	symbolic := false
	state := interp.NewState()

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()

		switch line {
		case ":sym":
			symbolic = true
			fmt.Fprintln(out, "switched to symbolic mode")
			continue
		case ":conc":
			symbolic = false
			fmt.Fprintln(out, "switched to concrete mode")
			continue
		case "":
			continue
		}

		stmt, err := parser.ParseString("<repl>", line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		if symbolic {
			runSymbolic(out, stmt)
		} else {
			state = runConcrete(out, stmt, state)
		}
	}
}

func runConcrete(out io.Writer, stmt ast.Stmt, state *interp.State) *interp.State {
	in := interp.New(out)
	next, err := in.Run(stmt, state)
	if err != nil {
		if ierr, ok := err.(*errors.InterpError); ok {
			fmt.Fprintln(out, ierr.Error())
		} else {
			fmt.Fprintln(out, err)
		}
		return state
	}
	if next == nil {
		fmt.Fprintln(out, "assume failed: no state")
		return state
	}
	fmt.Fprintln(out, next.String())
	return next
}

func runSymbolic(out io.Writer, stmt ast.Stmt) {
	ex := symexec.New(out)
	states := ex.Run(stmt, symstate.New())
	for _, d := range ex.Diagnostics {
		fmt.Fprintln(out, d.String())
	}
	fmt.Fprintf(out, "%d feasible state(s)\n", len(states))
	for i, s := range states {
		fmt.Fprintf(out, "state %d: error=%t\n", i, s.IsError())
	}
}
