package ast

import "github.com/alecthomas/participle/v2/lexer"

// ObjPattern is `{` (OGroup ','?)* Remnant? `}` from spec §4.2.
type ObjPattern struct {
	Pos     lexer.Position
	Groups  []*OGroup `"{" ( @@ ","? )*`
	Remnant *Remnant  `@@? "}"`
}

// OGroup is one object-level group: a lookahead over a nested object body,
// a parenthesized sub-group, a named group binding, or a plain term.
type OGroup struct {
	Pos       lexer.Position
	LookPos   *OGroup     `  "(?=" @@ ")"`
	LookNeg   *OGroup     `| "(?!" @@ ")"`
	Paren     []*OGroup   `| "(" ( @@ ","? )* ")"`
	GroupBind *OGroupBind `| @@`
	Term      *OTerm      `| @@`
}

// OGroupBind is `@Id=(OGroup* Remnant?)`, group-binding a mapping
// projection over the nested object terms (spec §3 GroupBind, object
// context).
type OGroupBind struct {
	Pos     lexer.Position
	Name    string    `"@" @Ident "="`
	Groups  []*OGroup `"(" ( @@ ","? )*`
	Remnant *Remnant  `@@? ")"`
}

// OTermHead is the leading key of an object term: either a KeyPattern or
// the bare ".." sentinel (RootKey), which lowers to a wildcard key found
// at any depth below the mapping, as in `{.. : $x}`. The sentinel takes no
// key pattern of its own, so a form such as `{..password:$x}` does not
// parse.
type OTermHead struct {
	Pos  lexer.Position
	Key  *KeyPattern `  @@`
	Root bool        `| @Spread`
}

// OTerm is `Key Breadcrumb* (':'|':>') Item OQuant? '?'?` (spec §4.2).
type OTerm struct {
	Pos         lexer.Position
	Head        *OTermHead    `@@`
	Breadcrumbs []*Breadcrumb `@@*`
	Op          string        `@Arrow | @":"`
	Value       *Item         `@@`
	Quant       *OQuant       `@@?`
	Optional    bool          `@"?"?`
}

// KeyPattern selects which mapping keys an OTerm considers: a literal
// string, a bare identifier used as sugar for a literal key, a regex over
// key text, a capturing scalar bind (`$k`), or a wildcard matching any key.
type KeyPattern struct {
	Pos   lexer.Position
	Str   *string         `  @String`
	Regex *string         `| @Regex`
	Bind  *ScalarBindTerm `| @@`
	Wild  bool            `| @Any`
	Name  *string         `| @Ident`
}

// Breadcrumb is one step from a matched key's value before Item applies:
// '..' Item (skip any depth), '.' Item (one level), '[' Item ']' (one
// level via index/element form), or bare '..' directly before the op
// token (the "any key any depth" sentinel with no further descent).
type Breadcrumb struct {
	Pos      lexer.Position
	Skip     *Item `  @Spread @@`
	Dot      *Item `| "." @@`
	Bracket  *Item `| "[" @@ "]"`
	BareSkip bool  `| @Spread`
}

// OQuant is the object-term quantifier: `#?` (optional, min 0) or an
// explicit `#{m}`/`#{m,n}`/`#{m,}`/`#{,n}` range.
type OQuant struct {
	Pos     lexer.Position
	Opt     bool           `  "#" "?"`
	OpenMax *HashOpenMax   `| @@`
	MinMax  *HashMinMax    `| @@`
	MinOpen *HashMinOpen   `| @@`
	Exact   *HashExact     `| @@`
}

// HashExact is `#{N}`.
type HashExact struct {
	Pos lexer.Position
	N   int `"#" "{" @Num "}"`
}

// HashMinMax is `#{m,n}`.
type HashMinMax struct {
	Pos lexer.Position
	Min int `"#" "{" @Num ","`
	Max int `@Num "}"`
}

// HashMinOpen is `#{m,}`.
type HashMinOpen struct {
	Pos lexer.Position
	Min int `"#" "{" @Num "," "}"`
}

// HashOpenMax is `#{,n}`.
type HashOpenMax struct {
	Pos lexer.Position
	Max int `"#" "{" "," @Num "}"`
}

// Remnant describes the `%`/`remainder` residual-keys clause (spec §4.2,
// §4.5.4.5): full exhaustion (`$`), a plain (optionally bounded/optional)
// remainder, a named group-binding remainder, or a bare exhaustion assertion
// via negative lookahead.
type Remnant struct {
	Pos       lexer.Position
	Exhausted bool          `  @"$"`
	Bind      *RemnantBind  `| @@`
	Asserted  *AssertRemnant `| @@`
	Plain     *PlainRemnant `| @@`
}

// PlainRemnant is `('%'|'remainder') ('?' | '#{'…'}')?`.
type PlainRemnant struct {
	Pos      lexer.Position
	Kw       string     `@( "%" | "remainder" )`
	Optional bool       `( @"?"`
	Range    *HashRange `| @@ )?`
}

// RemnantBind is `@Id=('%'|'remainder' '?'?) ('#{…}')?`.
type RemnantBind struct {
	Pos      lexer.Position
	Name     string     `"@" @Ident "=" "("`
	Kw       string     `@( "%" | "remainder" )`
	Optional bool       `@"?"? ")"`
	Range    *HashRange `@@?`
}

// AssertRemnant is `(?!('%'|'remainder'))` — asserts the mapping is fully
// exhausted by the preceding terms.
type AssertRemnant struct {
	Pos lexer.Position
	Kw  string `"(?!" @( "%" | "remainder" ) ")"`
}

// HashRange is the shared `#{...}` range body reused by PlainRemnant and
// RemnantBind (which already consumed the leading "#" token themselves as
// part of their own literal sequence is NOT the case here — both refer to
// this type directly as `#{...}`, consuming "#" themselves via HashRange).
type HashRange struct {
	Pos     lexer.Position
	OpenMax *HashOpenMax `  @@`
	MinMax  *HashMinMax  `| @@`
	MinOpen *HashMinOpen `| @@`
	Exact   *HashExact   `| @@`
}
