// Package ast implements the surface pattern grammar from spec §4.1–4.2:
// a participle-driven lexer and parser that turn pattern source text into
// a typed surface AST, the same way grammar.go turns .lift source into a
// typed Program in the teacher repo.
package ast

import "github.com/alecthomas/participle/v2/lexer"

// PatternLexer tokenizes Tendril pattern source, including the token
// vocabulary needed by the embedded guard mini-language (pkg/guard reuses
// this same lexer.Definition so a `when(...)` clause's raw text re-lexes
// identically to how it was first seen). Ordering matters: participle's
// simple lexer tries rules in declaration order at each position, so
// multi-character operators must precede the single-character operators
// they prefix (e.g. "??" before "?", "(?=" before "(").
var PatternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Regex", Pattern: `/(\\.|[^/\\\n])*/[a-zA-Z]*`},
	{Name: "LookPos", Pattern: `\(\?=`},
	{Name: "LookNeg", Pattern: `\(\?!`},
	{Name: "Spread", Pattern: `\.\.`},
	{Name: "Arrow", Pattern: `:>`},
	{Name: "OpQQ", Pattern: `\?\?`},
	{Name: "OpPlusQ", Pattern: `\+\?`},
	{Name: "OpStarQ", Pattern: `\*\?`},
	{Name: "OpPlusPlus", Pattern: `\+\+`},
	{Name: "OpStarPlus", Pattern: `\*\+`},
	{Name: "OpAnd", Pattern: `&&`},
	{Name: "OpOr", Pattern: `\|\|`},
	{Name: "OpEq", Pattern: `==`},
	{Name: "OpNe", Pattern: `!=`},
	{Name: "OpLe", Pattern: `<=`},
	{Name: "OpGe", Pattern: `>=`},
	{Name: "Num", Pattern: `[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?`},
	{Name: "Any", Pattern: `_\b`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[{}\[\]()=,:|$@#.%!?+*<>-]`},
})

// Position is an alias for participle's lexer.Position, the source
// location carried by surface AST nodes.
type Position = lexer.Position
