// Package guard implements the guard-expression mini-language from spec
// §4.4: a small Pratt-precedence expression grammar evaluated against the
// matcher's current bindings using SameValueZero equality.
//
// The grammar reuses ast.PatternLexer so that a `when(...)` clause's raw
// token text (recovered by ast.GuardAttachment) re-lexes identically to
// how the surrounding pattern source first saw it.
package guard

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Expr is the root of a parsed guard expression.
type Expr struct {
	Pos  lexer.Position
	Expr *OrExpr `@@`
}

// OrExpr is the lowest-precedence level: `&&`-level operands joined by `||`.
type OrExpr struct {
	Pos    lexer.Position
	Left   *AndExpr  `@@`
	Rights []*OrRHS  `@@*`
}

type OrRHS struct {
	Pos   lexer.Position
	Right *AndExpr `"||" @@`
}

// AndExpr joins equality-level operands with `&&`.
type AndExpr struct {
	Pos    lexer.Position
	Left   *EqExpr  `@@`
	Rights []*AndRHS `@@*`
}

type AndRHS struct {
	Pos   lexer.Position
	Right *EqExpr `"&&" @@`
}

// EqExpr joins relational-level operands with `==`/`!=`.
type EqExpr struct {
	Pos    lexer.Position
	Left   *RelExpr `@@`
	Rights []*EqRHS `@@*`
}

type EqRHS struct {
	Pos   lexer.Position
	Op    string   `@( OpEq | OpNe )`
	Right *RelExpr `@@`
}

// RelExpr joins additive-level operands with `< > <= >=`.
type RelExpr struct {
	Pos    lexer.Position
	Left   *AddExpr `@@`
	Rights []*RelRHS `@@*`
}

type RelRHS struct {
	Pos   lexer.Position
	Op    string   `@( OpLe | OpGe | "<" | ">" )`
	Right *AddExpr `@@`
}

// AddExpr joins multiplicative-level operands with `+ -`.
type AddExpr struct {
	Pos    lexer.Position
	Left   *MulExpr `@@`
	Rights []*AddRHS `@@*`
}

type AddRHS struct {
	Pos   lexer.Position
	Op    string   `@( "+" | "-" )`
	Right *MulExpr `@@`
}

// MulExpr joins unary operands with `* %`.
type MulExpr struct {
	Pos    lexer.Position
	Left   *Unary `@@`
	Rights []*MulRHS `@@*`
}

type MulRHS struct {
	Pos   lexer.Position
	Op    string `@( "*" | "%" )`
	Right *Unary `@@`
}

// Unary is `!`/`-` prefixed any number of times, bottoming out at Primary.
type Unary struct {
	Pos     lexer.Position
	Not     *Unary   `  "!" @@`
	Neg     *Unary   `| "-" @@`
	Primary *Primary `| @@`
}

// Primary is the atomic level: parenthesized expr, function call,
// variable reference, the current-root sentinel `_`, or a literal.
type Primary struct {
	Pos   lexer.Position
	Paren *OrExpr  `  "(" @@ ")"`
	Call  *Call    `| @@`
	Var   *VarRef  `| @@`
	Root  bool     `| @Any`
	Str   *string  `| @String`
	Num   *string  `| @Num`
	True  bool     `| @"true"`
	False bool     `| @"false"`
	Null  bool     `| @"null"`
}

// Call is one of the builtin predicate/measure functions:
// number/string/boolean/size.
type Call struct {
	Pos  lexer.Position
	Name string  `@Ident "("`
	Arg  *OrExpr `@@ ")"`
}

// VarRef is `$name`, a reference into the current bindings environment.
type VarRef struct {
	Pos  lexer.Position
	Name string `"$" @Ident`
}
