package internal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardinalityEstimatorExactOnNoCollisions(t *testing.T) {
	const distinct = 50
	keys := make([][]byte, distinct)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("key-%d", i))
	}

	// A bitmap many times larger than the key count keeps collision
	// probability low enough that the estimate lands close to exact.
	est := EstimateCardinality(keys, 4096)
	assert.InDelta(t, distinct, est, float64(distinct)*0.2)
}

func TestCardinalityEstimatorIgnoresDuplicates(t *testing.T) {
	keys := [][]byte{[]byte("a"), []byte("a"), []byte("a"), []byte("b")}
	est := EstimateCardinality(keys, 4096)
	assert.InDelta(t, 2, est, 1)
}

func TestCardinalityEstimatorFullBitmapCapsAtSize(t *testing.T) {
	c := NewCardinalityEstimator(4)
	for i := 0; i < 100; i++ {
		c.Add([]byte(fmt.Sprintf("%d", i)))
	}
	assert.Equal(t, 4, c.Estimate())
}

func TestCardinalityEstimatorEmpty(t *testing.T) {
	assert.Equal(t, 0, EstimateCardinality(nil, 64))
}
