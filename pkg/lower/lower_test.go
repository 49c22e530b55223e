package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tendrilast "github.com/tendril-lang/tendril/pkg/ast"
	"github.com/tendril-lang/tendril/pkg/lower"
	"github.com/tendril-lang/tendril/pkg/matchast"
)

func lowerSrc(t *testing.T, src string) matchast.Node {
	t.Helper()
	p, err := tendrilast.NewParser()
	require.NoError(t, err)
	surface, err := p.ParseString("", src)
	require.NoError(t, err)
	root, err := lower.Lower(surface)
	require.NoError(t, err)
	return root
}

func TestLowerAlternationProducesAlt(t *testing.T) {
	n := lowerSrc(t, `"a" | "b" | "c"`)
	alt, ok := n.(matchast.Alt)
	require.True(t, ok)
	assert.Len(t, alt.Options, 3)
}

func TestLowerArrayQuantifierSymbolsResolveToMinMaxPolicy(t *testing.T) {
	n := lowerSrc(t, `[$a+, $b*, $c?]`)
	seq, ok := n.(matchast.Seq)
	require.True(t, ok)
	require.Len(t, seq.Elems, 3)

	assert.Equal(t, matchast.Quant{Min: 1, Max: -1, Policy: matchast.Greedy}, seq.Elems[0].Quant)
	assert.Equal(t, matchast.Quant{Min: 0, Max: -1, Policy: matchast.Greedy}, seq.Elems[1].Quant)
	assert.Equal(t, matchast.Quant{Min: 0, Max: 1, Policy: matchast.Greedy}, seq.Elems[2].Quant)
}

func TestLowerArraySkipBecomesUnboundedAny(t *testing.T) {
	n := lowerSrc(t, `[1, .., 9]`)
	seq, ok := n.(matchast.Seq)
	require.True(t, ok)
	require.Len(t, seq.Elems, 3)
	_, isAny := seq.Elems[1].Node.(matchast.Any)
	assert.True(t, isAny)
	assert.Equal(t, -1, seq.Elems[1].Quant.Max)
}

func TestLowerGuardClosesVariableBoundInSameTerm(t *testing.T) {
	n := lowerSrc(t, `{"age": $age} when($age >= 18)`)
	guarded, ok := n.(matchast.Guarded)
	require.True(t, ok)
	assert.Equal(t, []string{"age"}, guarded.ClosedVars)
}

func TestLowerGuardLeavesUnboundVariableOpen(t *testing.T) {
	n := lowerSrc(t, `_ when($x == 5)`)
	guarded, ok := n.(matchast.Guarded)
	require.True(t, ok)
	assert.Empty(t, guarded.ClosedVars)
}

func TestLowerRejectsInvalidGuardExpression(t *testing.T) {
	p, err := tendrilast.NewParser()
	require.NoError(t, err)
	surface, err := p.ParseString("", `1 when($x ==)`)
	require.NoError(t, err)
	_, err = lower.Lower(surface)
	assert.Error(t, err)
}
