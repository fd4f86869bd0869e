package entropy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuffmanSingleSymbolAlphabet(t *testing.T) {
	h, err := NewHuffman([]byte{0xFF, 0xFF, 0xFF}, 8)
	require.NoError(t, err)

	r := h.Report()
	assert.Equal(t, uint64(1), r.NonzeroSymbols)
	assert.Equal(t, uint64(3), r.Occurrences)
	assert.InDelta(t, 1.0, r.ExpectedCodewordLength, 1e-9)
}

func TestHuffmanOptimalityBoundedByEntropyPlusOne(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		n := 2 + rng.Intn(30)
		buf := make([]byte, 500)
		weights := make([]float64, n)
		var total float64

		for i := range weights {
			weights[i] = rng.Float64() + 0.01
			total += weights[i]
		}

		cum := make([]float64, n)
		var acc float64
		for i, w := range weights {
			acc += w
			cum[i] = acc / total
		}

		for i := range buf {
			p := rng.Float64()
			sym := 0
			for p > cum[sym] {
				sym++
			}
			buf[i] = byte(sym)
		}

		h, err := NewHuffman(buf, 8)
		require.NoError(t, err)

		freq := h.freq
		var entropyBits float64
		for _, k := range freq.NonzeroKeys() {
			p := freq.Freq(k)
			if p > 0 {
				entropyBits -= p * math.Log2(p)
			}
		}

		if freq.CountNonzeros() < 2 {
			continue
		}

		r := h.Report()
		assert.LessOrEqual(t, r.ExpectedCodewordLength, entropyBits+1.0+1e-9)
	}
}

func TestHuffmanEmptyBuffer(t *testing.T) {
	h, err := NewHuffman(nil, 8)
	require.NoError(t, err)

	r := h.Report()
	assert.Equal(t, uint64(0), r.NonzeroSymbols)
	assert.Equal(t, uint64(0), r.Occurrences)
}
