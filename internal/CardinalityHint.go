/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package internal

import (
	"math"

	"github.com/mlaurent/entropylab/hash"
)

// CardinalityEstimator is a linear-counting sketch: a bitmap of m bits,
// each key hashed to one bit via XXHash64. It exists to give
// entropy.PPMModel a coarse pre-sizing hint for its context table before
// the first pass over a buffer has finished counting anything exactly,
// per this laboratory's "coarse pre-sizing hints" design note. It is
// deliberately approximate; callers that need an exact count should just
// count.
type CardinalityEstimator struct {
	bitmap []bool
	m      int
	hasher *hash.XXHash64
	set    int
}

// NewCardinalityEstimator creates an estimator with a bitmap of
// bitmapSize bits. bitmapSize should be several times the expected
// distinct-key count to keep the estimate's relative error small; a
// bitmap that fills up degrades to reporting roughly its own size.
func NewCardinalityEstimator(bitmapSize int) *CardinalityEstimator {
	if bitmapSize < 1 {
		bitmapSize = 1
	}
	h, _ := hash.NewXXHash64(0)
	return &CardinalityEstimator{
		bitmap: make([]bool, bitmapSize),
		m:      bitmapSize,
		hasher: h,
	}
}

// Add folds key into the sketch.
func (c *CardinalityEstimator) Add(key []byte) {
	idx := c.hasher.Hash(key) % uint64(c.m)
	if !c.bitmap[idx] {
		c.bitmap[idx] = true
		c.set++
	}
}

// Estimate returns the linear-counting cardinality estimate:
// -m * ln(unset/m). Returns m itself (its ceiling) if every bit is set.
func (c *CardinalityEstimator) Estimate() int {
	unset := c.m - c.set
	if unset <= 0 {
		return c.m
	}
	est := -float64(c.m) * math.Log(float64(unset)/float64(c.m))
	if est < 0 {
		return 0
	}
	return int(math.Round(est))
}

// EstimateCardinality is a one-shot convenience wrapper: it folds every
// sample through a fresh estimator of the given bitmap size and returns
// the resulting estimate.
func EstimateCardinality(samples [][]byte, bitmapSize int) int {
	c := NewCardinalityEstimator(bitmapSize)
	for _, s := range samples {
		c.Add(s)
	}
	return c.Estimate()
}
