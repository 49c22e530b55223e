package ast_test

import (
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendril-lang/tendril/pkg/ast"
)

func parse(t *testing.T, src string) *ast.Pattern {
	t.Helper()
	p, err := ast.NewParser()
	require.NoError(t, err)
	out, err := p.ParseString("", src)
	require.NoError(t, err)
	return out
}

func TestParsesLiteralString(t *testing.T) {
	p := parse(t, `"hello"`)
	require.Len(t, p.Root.Alts, 1)
	lit := p.Root.Alts[0].Base.Literal
	require.NotNil(t, lit)
	require.NotNil(t, lit.Str)
	assert.Equal(t, `"hello"`, *lit.Str)
}

func TestParsesAlternation(t *testing.T) {
	p := parse(t, `"red" | "green" | "blue"`)
	assert.Len(t, p.Root.Alts, 3)
}

func TestParsesScalarBindWithBody(t *testing.T) {
	p := parse(t, `$x=("a" | "b")`)
	bind := p.Root.Alts[0].Base.Scalar
	require.NotNil(t, bind)
	assert.Equal(t, "x", bind.Name)
	require.NotNil(t, bind.Body)
	assert.Len(t, bind.Body.Alts, 2)
}

func TestParsesGuardAttachment(t *testing.T) {
	p := parse(t, `{"age": $age} when($age >= 18)`)
	term := p.Root.Alts[0]
	require.NotNil(t, term.Base.Obj)
	require.NotNil(t, term.Guard)
	assert.Equal(t, "$age >= 18", term.Guard.Src)
}

func TestParsesArrayPattern(t *testing.T) {
	p := parse(t, `[1, $mid*, 9]`)
	arr := p.Root.Alts[0].Base.Arr
	require.NotNil(t, arr)
}

func TestParsesLookahead(t *testing.T) {
	p := parse(t, `(?=1)`)
	require.Len(t, p.Root.Alts, 1)
	look := p.Root.Alts[0].Base.Look
	require.NotNil(t, look)
	assert.False(t, look.Negated())
}

func TestParseReturnsParticipleErrorOnBadSyntax(t *testing.T) {
	p, err := ast.NewParser()
	require.NoError(t, err)
	_, err = p.ParseString("", "{ : }")
	require.Error(t, err)
	var perr participle.Error
	require.ErrorAs(t, err, &perr)
}
