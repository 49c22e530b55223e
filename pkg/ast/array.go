package ast

import "github.com/alecthomas/participle/v2/lexer"

// ArrPattern is `[` (AGroup (','? AGroup)*)? `]` from spec §4.2.
type ArrPattern struct {
	Pos   lexer.Position
	Items []*ArrGroup `"[" ( @@ ( ","? @@ )* )? "]"`
}

// ArrGroup is a single AGroup: either a bare skip ".." (sugar for an
// unbounded greedy Any span) or a pipe-chain of quantified bases.
type ArrGroup struct {
	Pos  lexer.Position
	Skip bool       `  @Spread`
	Alts []*ArrAlt  `| @@ ( "|" @@ )*`
}

// ArrAlt is one `AGroupBase Quant?` alternative within an ArrGroup.
type ArrAlt struct {
	Pos   lexer.Position
	Base  *ArrGroupBase `@@`
	Quant *Quant        `@@?`
}

// ArrGroupBase is AGroupBase: a parenthesized sub-sequence, an array-flavored
// group binding, a scalar binding, or a bare Term.
type ArrGroupBase struct {
	Pos       lexer.Position
	Paren     []*ArrGroup     `  "(" ( @@ ( ","? @@ )* )? ")"`
	GroupBind *ArrGroupBind   `| @@`
	Scalar    *ScalarBindTerm `| @@`
	Term      *Term           `| @@`
}

// ArrGroupBind is `@Id` or `@Id=(AGroup...)` inside an array — the bound
// value is a sequence slice over the nested elements (spec §3 GroupBind).
type ArrGroupBind struct {
	Pos  lexer.Position
	Name string      `"@" @Ident`
	Body []*ArrGroup `( "=" "(" ( @@ ( ","? @@ )* )? ")" )?`
}

// Quant is a quantifier suffix: greedy/reluctant/possessive symbolic forms
// or an explicit `{m}`/`{m,n}`/`{m,}`/`{,n}` range (spec §3, §4.2).
type Quant struct {
	Pos     lexer.Position
	Symbol  *string    `  @( "??" | "?" | "++" | "+?" | "+" | "*+" | "*?" | "*" )`
	OpenMax *BraceOpenMax `| @@`
	MinMax  *BraceMinMax  `| @@`
	MinOpen *BraceMinOpen `| @@`
	Exact   *BraceExact   `| @@`
}

// BraceExact is `{N}`.
type BraceExact struct {
	Pos lexer.Position
	N   int `"{" @Num "}"`
}

// BraceMinMax is `{m,n}`.
type BraceMinMax struct {
	Pos lexer.Position
	Min int `"{" @Num ","`
	Max int `@Num "}"`
}

// BraceMinOpen is `{m,}`.
type BraceMinOpen struct {
	Pos lexer.Position
	Min int `"{" @Num "," "}"`
}

// BraceOpenMax is `{,n}`.
type BraceOpenMax struct {
	Pos lexer.Position
	Max int `"{" "," @Num "}"`
}
