package parser

import "github.com/alecthomas/participle/v2/lexer"

// The types in this file are the raw participle parse tree for W's
// surface grammar (spec.md §6). They mirror the precedence table
// (or, and, not, relational, +/-, */, unary-minus, primary) the same
// way the teacher's grammar package chains BinaryExpr/UnaryExpr/
// PostfixExpr/PrimaryExpr: one grammar type per precedence level.
// convert.go turns this tree into internal/ast nodes; nothing outside
// this package ever sees these types.

// Program is a single top-level statement (which may itself be a
// ";"-chained sequence).
type Program struct {
	Pos  lexer.Position
	Stmt *Stmt `@@`
}

// Stmt is a right-associated sequence: "s1 ; s2 ; s3" parses as
// First=s1, Rest=(First=s2, Rest=(First=s3)).
type Stmt struct {
	Pos   lexer.Position
	First *SimpleStmt `@@`
	Rest  *Stmt       `[ ";" @@ ]`
}

// SimpleStmt is one statement form; exactly one field is non-nil.
type SimpleStmt struct {
	Pos     lexer.Position
	Block   *Block      `  @@`
	Skip    *SkipStmt   `| @@`
	Print   *PrintStmt  `| @@`
	Havoc   *HavocStmt  `| @@`
	Assume  *AssumeStmt `| @@`
	Assert  *AssertStmt `| @@`
	If      *IfStmt     `| @@`
	While   *WhileStmt  `| @@`
	Assign  *AssignStmt `| @@`
}

type Block struct {
	Pos   lexer.Position
	Inner *Stmt `"{" @@ "}"`
}

type SkipStmt struct {
	Pos  lexer.Position
	Kw   string `@"skip"`
}

type PrintStmt struct {
	Pos lexer.Position
	Kw  string `@"print_state"`
}

type HavocStmt struct {
	Pos  lexer.Position
	Vars []string `"havoc" @Ident ("," @Ident)*`
}

type AssumeStmt struct {
	Pos  lexer.Position
	Cond *OrExpr `"assume" @@`
}

type AssertStmt struct {
	Pos  lexer.Position
	Cond *OrExpr `"assert" @@`
}

type IfStmt struct {
	Pos  lexer.Position
	Cond *OrExpr       `"if" @@`
	Then *CompoundBody `"then" @@`
	Else *CompoundBody `[ "else" @@ ]`
}

type WhileStmt struct {
	Pos  lexer.Position
	Cond *OrExpr       `"while" @@`
	Inv  *OrExpr       `[ "inv" @@ ]`
	Body *CompoundBody `"do" @@`
}

// CompoundBody is an if/while body: a braced block or a single simple
// statement, with no ";"-tail of its own. Without this, "do { s1; s2
// } ; s3" would parse Body as a full Stmt, whose optional ";" tail
// greedily absorbs "; s3" into the loop body instead of leaving it for
// the enclosing sequence.
type CompoundBody struct {
	Pos   lexer.Position
	Block *Block      `  @@`
	Stmt  *SimpleStmt `| @@`
}

type AssignStmt struct {
	Pos  lexer.Position
	Name string  `@Ident ":="`
	Rhs  *AExpr  `@@`
}

// OrExpr .. BoolAtom/RelExpr form the boolean precedence chain: or < and < not
// < relational (non-associative — exactly one relation per atom).
type OrExpr struct {
	Pos  lexer.Position
	Left *AndExpr   `@@`
	Rest []*AndExpr `("or" @@)*`
}

type AndExpr struct {
	Pos  lexer.Position
	Left *NotExpr   `@@`
	Rest []*NotExpr `("and" @@)*`
}

type NotExpr struct {
	Pos  lexer.Position
	Not  bool      `[ @"not" ]`
	Atom *BoolAtom `@@`
}

type BoolAtom struct {
	Pos   lexer.Position
	True  *string  `(  @"true"`
	False *string  `  | @"false" )`
	Rel   *RelExpr `| @@`
	Paren *OrExpr  `| "(" @@ ")"`
}

type RelExpr struct {
	Pos lexer.Position
	Lhs *AExpr `@@`
	Op  string `@("<=" | ">=" | "<" | ">" | "=")`
	Rhs *AExpr `@@`
}

// AExpr .. Primary form the arithmetic precedence chain: +/- < */ <
// unary-minus < primary.
type AExpr struct {
	Pos  lexer.Position
	Left *Term        `@@`
	Rest []*AddOp     `{ @@ }`
}

type AddOp struct {
	Pos  lexer.Position
	Op   string `@("+" | "-")`
	Rhs  *Term  `@@`
}

type Term struct {
	Pos  lexer.Position
	Left *Unary   `@@`
	Rest []*MulOp `{ @@ }`
}

type MulOp struct {
	Pos lexer.Position
	Op  string `@("*" | "/")`
	Rhs *Unary `@@`
}

type Unary struct {
	Pos     lexer.Position
	Negate  bool     `[ @"-" ]`
	Primary *Primary `@@`
}

type Primary struct {
	Pos    lexer.Position
	Number *int     `(  @Integer`
	Ident  *string  `  | @Ident`
	Paren  *AExpr   `  | "(" @@ ")" )`
}
