package parser

import "github.com/alecthomas/participle/v2/lexer"

// WLexer tokenizes W source. Keywords (skip, havoc, if, ...) are not
// their own token kind — like the teacher's grammar package, they are
// matched as Ident-token literals directly in the grammar tags.
var WLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Operator", Pattern: `:=|<=|>=|[-+*/<>=(),;{}]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
