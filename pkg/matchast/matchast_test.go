package matchast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tendril-lang/tendril/pkg/matchast"
)

func TestQuantUnbounded(t *testing.T) {
	assert.True(t, matchast.Quant{Min: 0, Max: -1}.Unbounded())
	assert.False(t, matchast.Quant{Min: 0, Max: 3}.Unbounded())
}

func TestQuantPolicyString(t *testing.T) {
	assert.Equal(t, "greedy", matchast.Greedy.String())
	assert.Equal(t, "reluctant", matchast.Reluctant.String())
	assert.Equal(t, "possessive", matchast.Possessive.String())
}
