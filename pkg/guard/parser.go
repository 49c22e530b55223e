package guard

import (
	"github.com/alecthomas/participle/v2"

	"github.com/tendril-lang/tendril/pkg/ast"
)

// NewParser builds the participle parser for guard expression source,
// sharing ast.PatternLexer so tokens round-trip identically.
func NewParser() (*participle.Parser[Expr], error) {
	return participle.Build[Expr](
		participle.Lexer(ast.PatternLexer),
		participle.UseLookahead(4),
		participle.Elide("Comment", "Whitespace"),
	)
}

var sharedParser *participle.Parser[Expr]

func parser() (*participle.Parser[Expr], error) {
	if sharedParser != nil {
		return sharedParser, nil
	}
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	sharedParser = p
	return p, nil
}

// Parse compiles guard expression source text (as recovered from a
// `when(...)` clause) into an Expr.
func Parse(src string) (*Expr, error) {
	p, err := parser()
	if err != nil {
		return nil, err
	}
	return p.ParseString("", src)
}
