// Package parser turns W source text into internal/ast, via a
// participle grammar (grammar.go) and a conversion pass (convert.go)
// — the same two-stage shape as the teacher's grammar package, minus
// the hand-rolled Pratt expression parser the teacher layers on top
// for operator precedence: W's grammar encodes precedence directly
// as nested participle types instead, since the whole surface
// language is small enough that a second, separate precedence-climbing
// pass would only add indirection.
package parser

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"

	"wlang/internal/ast"
	"wlang/internal/errors"
)

var build = participle.MustBuild[Program](
	participle.Lexer(WLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

// ParseError reports a malformed W program. Position is zero when the
// underlying parser couldn't attribute the failure to a location.
type ParseError struct {
	Code     errors.Code
	Message  string
	Position ast.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%s] %s:%d:%d: %s", e.Code, e.Position.Filename, e.Position.Line, e.Position.Column, e.Message)
}

// ParseString parses source (attributing positions to filename, used
// only in diagnostics) and returns the root statement.
func ParseString(filename, source string) (ast.Stmt, error) {
	program, err := build.ParseString(filename, source)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return convertProgram(program), nil
}

// ParseFile reads and parses a W source file.
func ParseFile(path string) (ast.Stmt, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: reading %s: %w", path, err)
	}
	return ParseString(path, string(source))
}

func wrapParseError(err error) *ParseError {
	pe, ok := err.(participle.Error)
	if !ok {
		return &ParseError{Code: errors.CodeParse, Message: err.Error()}
	}
	pos := pe.Position()
	return &ParseError{
		Code:     errors.CodeParse,
		Message:  pe.Message(),
		Position: ast.Position{Filename: pos.Filename, Line: pos.Line, Column: pos.Column},
	}
}
