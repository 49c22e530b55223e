package ast

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Pattern is the root of a compiled pattern source (spec §3 "Pattern AST").
type Pattern struct {
	Pos  lexer.Position
	Root *Item `@@`
}

// Item is an alternation of one or more Terms, lowering to Alt when more
// than one term is present (spec §4.3).
type Item struct {
	Pos   lexer.Position
	Alts  []*Term `@@ ( "|" @@ )*`
}

// Term is a single alternative within an Item, with an optional trailing
// guard attachment. The grammar in spec §4.2 does not show a surface
// attachment point for guard expressions (§4.4 scopes them only as far as
// the matcher consumes them); this repository resolves that silence with
// a `when(<guardExpr>)` suffix usable after any term, evaluated once the
// term's own bindings are in scope (see DESIGN.md).
type Term struct {
	Pos   lexer.Position
	Base  *TermBase        `@@`
	Guard *GuardAttachment `@@?`
}

// TermBase is the union of base term forms from spec §4.2's Term production.
type TermBase struct {
	Pos        lexer.Position
	Group      *Item           `  "(" @@ ")"`
	Look       *LookTerm       `| @@`
	Scalar     *ScalarBindTerm `| @@`
	GroupBind  *GroupBindTerm  `| @@`
	Any        bool            `| @Any`
	Literal    *Literal        `| @@`
	Obj        *ObjPattern     `| @@`
	Arr        *ArrPattern     `| @@`
}

// LookTerm is a positive or negative lookahead: '(?=' Item ')' | '(?!' Item ')'.
type LookTerm struct {
	Pos     lexer.Position
	Pos_    *Item `  "(?=" @@ ")"`
	Neg_    *Item `| "(?!" @@ ")"`
}

// Negated reports whether this is a negative lookahead.
func (l *LookTerm) Negated() bool { return l.Neg_ != nil }

// Body returns the lookahead's inner pattern, whichever branch matched.
func (l *LookTerm) Body() *Item {
	if l.Neg_ != nil {
		return l.Neg_
	}
	return l.Pos_
}

// ScalarBindTerm is `$Id` or `$Id=(Item)`.
type ScalarBindTerm struct {
	Pos  lexer.Position
	Name string `"$" @Ident`
	Body *Item  `( "=" "(" @@ ")" )?`
}

// GroupBindTerm is `@Id` or `@Id=(Item)` at generic Term position.
type GroupBindTerm struct {
	Pos  lexer.Position
	Name string `"@" @Ident`
	Body *Item  `( "=" "(" @@ ")" )?`
}

// Literal is an atomic scalar pattern: string/number/bool/null/regex.
type Literal struct {
	Pos   lexer.Position
	Str   *string `  @String`
	Num   *string `| @Num`
	True  bool    `| @"true"`
	False bool    `| @"false"`
	Null  bool    `| @"null"`
	Regex *string `| @Regex`
}

// GuardAttachment is the `when(<expr>)` suffix. It is implemented as a
// hand-rolled participle.Parseable so the guard expression's own grammar
// (pkg/guard) stays fully decoupled from the pattern grammar: this type
// only recovers the raw token text between the balanced parens, which
// pkg/guard re-lexes and parses on its own terms.
type GuardAttachment struct {
	Pos lexer.Position
	Src string
}

// Parse implements participle.Parseable.
func (g *GuardAttachment) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if tok.EOF() || tok.Value != "when" {
		return participle.NextMatch
	}
	g.Pos = tok.Pos
	lex.Next()

	open := lex.Peek()
	if open.Value != "(" {
		return participle.Errorf(open.Pos, "expected '(' after 'when'")
	}
	lex.Next()

	depth := 1
	prevEnd := -1
	var sb strings.Builder
	for {
		t := lex.Peek()
		if t.EOF() {
			return participle.Errorf(t.Pos, "unterminated when(...) clause")
		}
		if t.Value == "(" {
			depth++
		}
		if t.Value == ")" {
			depth--
			if depth == 0 {
				lex.Next()
				break
			}
		}
		if sb.Len() > 0 && t.Pos.Offset > prevEnd {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Value)
		prevEnd = t.Pos.Offset + len(t.Value)
		lex.Next()
	}
	g.Src = sb.String()
	return nil
}
