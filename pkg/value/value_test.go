package value_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendril-lang/tendril/pkg/value"
)

func TestSameValueZeroScalars(t *testing.T) {
	assert.True(t, value.SameValueZero(value.Number(0), value.Number(math.Copysign(0, -1))))
	assert.True(t, value.SameValueZero(value.Number(math.NaN()), value.Number(math.NaN())))
	assert.False(t, value.SameValueZero(value.Number(1), value.Number(2)))
	assert.False(t, value.SameValueZero(value.String("a"), value.Number(1)))
	assert.True(t, value.SameValueZero(value.String("a"), value.String("a")))
}

func TestSameValueZeroFallsBackToDeepEqualForComposites(t *testing.T) {
	a := value.Sequence(value.Number(1), value.Number(2))
	b := value.Sequence(value.Number(1), value.Number(2))
	c := value.Sequence(value.Number(2), value.Number(1))
	assert.True(t, value.SameValueZero(a, b))
	assert.False(t, value.SameValueZero(a, c))
}

func TestDeepEqualMappingIsOrderInsensitive(t *testing.T) {
	a := value.Mapping(value.Pair{Key: "x", Value: value.Number(1)}, value.Pair{Key: "y", Value: value.Number(2)})
	b := value.Mapping(value.Pair{Key: "y", Value: value.Number(2)}, value.Pair{Key: "x", Value: value.Number(1)})
	assert.True(t, value.DeepEqual(a, b))

	c := value.Mapping(value.Pair{Key: "x", Value: value.Number(1)})
	assert.False(t, value.DeepEqual(a, c))
}

func TestMappingPreservesInsertionOrderOfFirstOccurrence(t *testing.T) {
	m := value.Mapping(
		value.Pair{Key: "b", Value: value.Number(1)},
		value.Pair{Key: "a", Value: value.Number(2)},
		value.Pair{Key: "b", Value: value.Number(3)}, // overwrites in place
	)
	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	require.True(t, ok)
	n, _ := v.AsNumber()
	assert.Equal(t, float64(3), n)
}

func TestCloneIsIndependentOfSource(t *testing.T) {
	orig := value.MustFromGo(map[string]any{"items": []any{float64(1), float64(2)}})
	cloned := value.Clone(orig)
	assert.True(t, value.DeepEqual(orig, cloned))
}

func TestGoStringRendersDebugForm(t *testing.T) {
	v := value.MustFromGo(map[string]any{"name": "ada"})
	assert.Equal(t, `{"name": "ada"}`, v.GoString())
}

func TestFromGoAndToGoRoundTrip(t *testing.T) {
	in := map[string]any{
		"name": "ada",
		"age":  float64(36),
		"tags": []any{"a", "b"},
	}
	v, err := value.FromGo(in)
	require.NoError(t, err)
	out := value.ToGo(v)
	assert.Equal(t, in, out)
}

func TestFromGoRejectsUnsupportedType(t *testing.T) {
	_, err := value.FromGo(struct{}{})
	assert.Error(t, err)
}

func TestParseJSONPreservesObjectKeyOrder(t *testing.T) {
	v, err := value.ParseJSON([]byte(`{"zeta": 1, "alpha": 2, "mid": [1,2,3]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, v.Keys())

	mid, ok := v.Get("mid")
	require.True(t, ok)
	seq, ok := mid.AsSequence()
	require.True(t, ok)
	assert.Len(t, seq, 3)
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	_, err := value.ParseJSON([]byte(`{"a": 1} garbage`))
	assert.Error(t, err)
}

func TestEncodeJSONRoundTripsThroughParseJSON(t *testing.T) {
	src := []byte(`{"b": 1, "a": [true, null, "x"]}`)
	v, err := value.ParseJSON(src)
	require.NoError(t, err)

	enc, err := value.EncodeJSON(v, "")
	require.NoError(t, err)

	v2, err := value.ParseJSON(enc)
	require.NoError(t, err)
	if diff := cmp.Diff(v, v2); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, v.Keys(), v2.Keys())
}

func TestEncodeJSONIndentsNestedStructures(t *testing.T) {
	v := value.MustFromGo(map[string]any{"a": float64(1)})
	enc, err := value.EncodeJSON(v, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(enc))
}
