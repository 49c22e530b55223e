package tendril_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendril-lang/tendril"
	"github.com/tendril-lang/tendril/pkg/occurrence"
	"github.com/tendril-lang/tendril/pkg/value"
)

func mustCompile(t *testing.T, src string) *tendril.Pattern {
	t.Helper()
	p, err := tendril.Compile(src)
	require.NoError(t, err)
	return p
}

func TestCompileRejectsBadSyntax(t *testing.T) {
	_, err := tendril.Compile("{ : }")
	require.Error(t, err)
	var perr *tendril.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestMatchesLiteral(t *testing.T) {
	p := mustCompile(t, `"hello"`)
	assert.True(t, p.Matches(value.String("hello")))
	assert.False(t, p.Matches(value.String("goodbye")))
}

func TestMatchesNumberAndBool(t *testing.T) {
	p := mustCompile(t, `42`)
	assert.True(t, p.Matches(value.Number(42)))
	assert.False(t, p.Matches(value.Number(43)))

	b := mustCompile(t, `true`)
	assert.True(t, b.Matches(value.Bool(true)))
	assert.False(t, b.Matches(value.Bool(false)))
}

func TestExtractScalarBinding(t *testing.T) {
	p := mustCompile(t, `{"name": $name, "age": $age}`)
	subject := value.MustFromGo(map[string]any{"name": "ada", "age": float64(36)})

	bindings, ok := p.Extract(subject)
	require.True(t, ok)

	name, _ := bindings["name"].AsString()
	age, _ := bindings["age"].AsNumber()
	assert.Equal(t, "ada", name)
	assert.Equal(t, float64(36), age)
}

func TestExtractFailsOnShapeMismatch(t *testing.T) {
	p := mustCompile(t, `{"name": $name}`)
	subject := value.MustFromGo(map[string]any{"title": "ada"})

	_, ok := p.Extract(subject)
	assert.False(t, ok)
}

func TestArrayQuantifierSpansVariableLength(t *testing.T) {
	p := mustCompile(t, `[1, $mid*, 9]`)

	// A scalar bind re-entered across a repeated span rebinds $mid each
	// element, and every rebind must unify with what $mid already holds
	// (spec §3), so the span can only consume a run of equal values.
	repeated := value.MustFromGo([]any{float64(1), float64(2), float64(2), float64(9)})
	bindings, ok := p.Extract(repeated)
	require.True(t, ok)
	mid, _ := bindings["mid"].AsNumber()
	assert.Equal(t, float64(2), mid)

	empty := value.MustFromGo([]any{float64(1), float64(9)})
	assert.True(t, p.Matches(empty))

	// 2 and 3 can't both be bound to $mid within the same span, and no
	// other split of the run satisfies the trailing literal 9, so the
	// whole match fails.
	differing := value.MustFromGo([]any{float64(1), float64(2), float64(3), float64(9)})
	assert.False(t, p.Matches(differing))

	noMatch := value.MustFromGo([]any{float64(1), float64(2)})
	assert.False(t, p.Matches(noMatch)) // trailing literal 9 never satisfied
}

func TestRepeatedScalarBindMustUnify(t *testing.T) {
	// spec §8 scenario 2's worked example: a name used twice in one
	// pattern must see the same value both times.
	p := mustCompile(t, `[$a, $a]`)
	assert.True(t, p.Matches(value.MustFromGo([]any{float64(3), float64(3)})))
	assert.False(t, p.Matches(value.MustFromGo([]any{float64(3), float64(4)})))
}

func TestAlternation(t *testing.T) {
	p := mustCompile(t, `"red" | "green" | "blue"`)
	assert.True(t, p.Matches(value.String("green")))
	assert.False(t, p.Matches(value.String("purple")))
}

func TestGuardFiltersSolutions(t *testing.T) {
	p := mustCompile(t, `{"age": $age} when($age >= 18)`)

	adult := value.MustFromGo(map[string]any{"age": float64(21)})
	minor := value.MustFromGo(map[string]any{"age": float64(12)})

	assert.True(t, p.Matches(adult))
	assert.False(t, p.Matches(minor))
}

func TestRegexMatchesStrings(t *testing.T) {
	p := mustCompile(t, `/^[a-z]+@[a-z]+\.com$/i`)
	assert.True(t, p.Matches(value.String("ADA@example.com")))
	assert.False(t, p.Matches(value.String("not-an-email")))
}

func TestReplaceRewritesFirstMatch(t *testing.T) {
	p := mustCompile(t, `{"status": $status}`)
	subject := value.MustFromGo(map[string]any{"status": "pending", "id": float64(7)})

	out, ok := p.Replace(subject, "status", value.String("done"))
	require.True(t, ok)

	status, _ := out.Get("status")
	s, _ := status.AsString()
	assert.Equal(t, "done", s)

	// original tree is untouched
	orig, _ := subject.Get("status")
	origStr, _ := orig.AsString()
	assert.Equal(t, "pending", origStr)
}

func TestReplaceRewritesEveryItemWhenRunPerItem(t *testing.T) {
	p := mustCompile(t, `{"count": $count}`)
	subject := value.MustFromGo([]any{
		map[string]any{"count": float64(1)},
		map[string]any{"count": float64(2)},
	})

	// The pattern is anchored at an object, so run Replace once per item.
	items, _ := subject.AsSequence()
	var out []value.Value
	for _, item := range items {
		v, ok := p.Replace(item, "count", value.Number(0))
		require.True(t, ok)
		out = append(out, v)
	}
	for _, item := range out {
		c, _ := item.Get("count")
		n, _ := c.AsNumber()
		assert.Equal(t, float64(0), n)
	}
}

func TestSolutionsStreamIsLazy(t *testing.T) {
	p := mustCompile(t, `$x`)
	subject := value.String("only-one-shape")

	stream := p.Solutions(subject)
	first, ok := stream.First()
	require.True(t, ok)
	x, _ := first.Value("x")
	s, _ := x.AsString()
	assert.Equal(t, "only-one-shape", s)
}

func TestWithMaxStepsBudget(t *testing.T) {
	p, err := tendril.Compile(`[$a*, $b*]`, tendril.WithMaxSteps(1))
	require.NoError(t, err)

	big := make([]any, 200)
	for i := range big {
		big[i] = float64(i)
	}
	subject := value.MustFromGo(big)

	_, ok := p.Extract(subject)
	assert.False(t, ok) // budget exhausted before a solution streamed out
}

func TestOccurrencesScansEveryMatchingLocation(t *testing.T) {
	p := mustCompile(t, `{"count": $n}`)
	subject := value.MustFromGo(map[string]any{
		"a": map[string]any{"count": float64(1)},
		"b": map[string]any{"count": float64(2)},
		"c": []any{float64(3)},
	})

	var counts []float64
	for _, sol := range p.Occurrences(subject).ToArray() {
		n, ok := sol.Value("n")
		require.True(t, ok)
		v, _ := n.AsNumber()
		counts = append(counts, v)
	}
	assert.ElementsMatch(t, []float64{1, 2}, counts)
}

func TestOccurrencesMatchesContiguousArraySlices(t *testing.T) {
	// No single element of the array satisfies `[1, 2]`, only the
	// contiguous slice at positions 1..3 — exercising scan mode's
	// "every contiguous sequence slice" visits, not just per-node ones.
	p := mustCompile(t, `[1, 2]`)
	subject := value.MustFromGo([]any{float64(0), float64(1), float64(2), float64(3)})

	stream := p.Occurrences(subject)
	first, ok := stream.First()
	require.True(t, ok)
	assert.Equal(t, occurrence.KindArraySlice, first.Where.Kind)
	assert.Equal(t, 1, first.Where.Start)
	assert.Equal(t, 3, first.Where.End)
}

func TestWithEnvSeedPrebindsScalars(t *testing.T) {
	// $x is never bound by the pattern itself, so without a seed the
	// guard's reference to it is unbound and the clause always fails.
	unseeded := mustCompile(t, `_ when($x == 5)`)
	assert.False(t, unseeded.Matches(value.Number(1)))

	seeded, err := tendril.Compile(`_ when($x == 5)`, tendril.WithEnvSeed(map[string]value.Value{
		"x": value.Number(5),
	}))
	require.NoError(t, err)
	assert.True(t, seeded.Matches(value.Number(1)))
}
