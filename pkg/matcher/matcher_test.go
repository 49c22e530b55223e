package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendril-lang/tendril/pkg/matchast"
	"github.com/tendril-lang/tendril/pkg/matcher"
	"github.com/tendril-lang/tendril/pkg/value"
)

func nameTerm(key, bindName string) matchast.Node {
	return &matchast.OTerm{
		Key:   matchast.KeyMatch{Kind: matchast.KeyLiteral, Lit: key},
		Value: matchast.ScalarBind{Name: bindName},
		Quant: matchast.Quant{Min: 1, Max: 1, Policy: matchast.Greedy},
	}
}

func TestObjectWithoutRemainderAllowsExtraKeys(t *testing.T) {
	root := matchast.Obj{Terms: []matchast.Node{nameTerm("name", "name")}}
	subject := value.MustFromGo(map[string]any{"name": "ada", "extra": float64(1)})

	stream := matcher.Run(root, subject, matcher.Options{})
	sol, ok := stream.First()
	require.True(t, ok)
	v, _ := sol.Value("name")
	s, _ := v.AsString()
	assert.Equal(t, "ada", s)
}

func TestObjectWithExhaustedRemainderRejectsExtraKeys(t *testing.T) {
	root := matchast.Obj{
		Terms:     []matchast.Node{nameTerm("name", "name")},
		Remainder: &matchast.Remainder{Kind: matchast.RemainderExhausted},
	}

	withExtra := value.MustFromGo(map[string]any{"name": "ada", "extra": float64(1)})
	_, ok := matcher.Run(root, withExtra, matcher.Options{}).First()
	assert.False(t, ok)

	exact := value.MustFromGo(map[string]any{"name": "ada"})
	_, ok = matcher.Run(root, exact, matcher.Options{}).First()
	assert.True(t, ok)
}

func TestObjectMatchFailsOnMissingKey(t *testing.T) {
	root := matchast.Obj{Terms: []matchast.Node{nameTerm("name", "name")}}
	subject := value.MustFromGo(map[string]any{"title": "ada"})

	_, ok := matcher.Run(root, subject, matcher.Options{}).First()
	assert.False(t, ok)
}

func TestAltTriesEachOptionInOrder(t *testing.T) {
	root := matchast.Alt{Options: []matchast.Node{
		matchast.Lit{Value: matchast.LitValue{Kind: matchast.LitString, S: "red"}},
		matchast.Lit{Value: matchast.LitValue{Kind: matchast.LitString, S: "green"}},
	}}

	_, ok := matcher.Run(root, value.String("green"), matcher.Options{}).First()
	assert.True(t, ok)
	_, ok = matcher.Run(root, value.String("blue"), matcher.Options{}).First()
	assert.False(t, ok)
}

func TestNegativeLookaheadRejectsWhenBodyMatches(t *testing.T) {
	root := matchast.Look{
		Negative: true,
		Body:     matchast.Lit{Value: matchast.LitValue{Kind: matchast.LitNumber, N: 1}},
	}

	_, ok := matcher.Run(root, value.Number(1), matcher.Options{}).First()
	assert.False(t, ok)
	_, ok = matcher.Run(root, value.Number(2), matcher.Options{}).First()
	assert.True(t, ok)
}

func TestRunScanVisitsEveryNestedNode(t *testing.T) {
	root := matchast.Obj{Terms: []matchast.Node{nameTerm("n", "n")}}
	subject := value.MustFromGo([]any{
		map[string]any{"n": float64(1)},
		map[string]any{"other": "skip"},
		map[string]any{"n": float64(2)},
	})

	sols := matcher.RunScan(root, subject, matcher.Options{}).ToArray()
	require.Len(t, sols, 2)
	var got []float64
	for _, sol := range sols {
		v, ok := sol.Value("n")
		require.True(t, ok)
		n, _ := v.AsNumber()
		got = append(got, n)
	}
	assert.Equal(t, []float64{1, 2}, got)
}

func TestRunScanFirstClosesTheSearch(t *testing.T) {
	root := matchast.Any{}
	subject := value.MustFromGo([]any{float64(1), float64(2), float64(3)})

	stream := matcher.RunScan(root, subject, matcher.Options{})
	_, ok := stream.First()
	require.True(t, ok)
	// a second Next after First's implicit Close reports exhausted rather
	// than hanging, proving the background goroutine was torn down.
	_, ok = stream.Next()
	assert.False(t, ok)
}

func TestStepBudgetAbortsRunBeforeAnySolution(t *testing.T) {
	elems := make([]matchast.SeqElem, 50)
	for i := range elems {
		elems[i] = matchast.SeqElem{Node: matchast.Any{}, Quant: matchast.Quant{Min: 1, Max: 1, Policy: matchast.Greedy}}
	}
	root := matchast.Seq{Elems: elems}

	items := make([]any, 50)
	for i := range items {
		items[i] = float64(i)
	}
	subject := value.MustFromGo(items)

	_, ok := matcher.Run(root, subject, matcher.Options{MaxSteps: 1}).First()
	assert.False(t, ok)
}
