package ast

import "github.com/alecthomas/participle/v2"

// NewParser builds the participle parser for Tendril pattern source,
// mirroring grammar.NewParser in the teacher repo: a custom lexer, elided
// trivia tokens, and enough lookahead to resolve the grammar's shared
// prefixes (quantifier suffixes, object-group vs. object-term, breadcrumb
// skip vs. bare skip, remnant forms).
func NewParser() (*participle.Parser[Pattern], error) {
	return participle.Build[Pattern](
		participle.Lexer(PatternLexer),
		participle.UseLookahead(8),
		participle.Elide("Comment", "Whitespace"),
	)
}
