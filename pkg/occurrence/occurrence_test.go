package occurrence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tendril-lang/tendril/pkg/occurrence"
)

func TestPathAppendDoesNotMutateReceiver(t *testing.T) {
	base := occurrence.Path{occurrence.KeyStep("a")}
	extended := base.Append(occurrence.IndexStep(2))

	assert.Len(t, base, 1)
	assert.Len(t, extended, 2)
	assert.Equal(t, occurrence.KeyStep("a"), base[0])
	assert.Equal(t, occurrence.IndexStep(2), extended[1])
}

func TestDepthReflectsPathLength(t *testing.T) {
	ref := occurrence.ValueRef(occurrence.Path{occurrence.KeyStep("a"), occurrence.IndexStep(1)})
	assert.Equal(t, 2, ref.Depth())
}

func TestArraySliceRefCarriesBounds(t *testing.T) {
	ref := occurrence.ArraySliceRef(occurrence.Path{}, 1, 4)
	assert.Equal(t, occurrence.KindArraySlice, ref.Kind)
	assert.Equal(t, 1, ref.Start)
	assert.Equal(t, 4, ref.End)
}

func TestObjectKeysRefCopiesKeys(t *testing.T) {
	keys := []string{"a", "b"}
	ref := occurrence.ObjectKeysRef(occurrence.Path{}, keys)
	keys[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, ref.Keys)
}
