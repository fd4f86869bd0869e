package entropy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendedHuffmanDegenerateMatchesPlainHuffman(t *testing.T) {
	buf := []byte("mississippi river")

	plain, err := NewHuffman(buf, 8)
	require.NoError(t, err)

	ext, err := NewExtendedHuffman(buf, 8, 1)
	require.NoError(t, err)

	pr, er := plain.Report(), ext.Report()
	assert.Equal(t, pr.NonzeroSymbols, er.NonzeroSymbols)
	assert.Equal(t, pr.Occurrences, er.Occurrences)
	assert.InDelta(t, pr.ExpectedCodewordLength, er.ExpectedCodewordLength, 1e-9)
}

func TestExtendedHuffmanOccurrencesTrackBaseSymbolCount(t *testing.T) {
	buf := make([]byte, 97)
	rng := rand.New(rand.NewSource(7))
	rng.Read(buf)

	for k := uint64(1); k <= 4; k++ {
		ext, err := NewExtendedHuffman(buf, 8, k)
		require.NoError(t, err)
		assert.Equal(t, uint64(len(buf)), ext.Report().Occurrences,
			"occurrences must track base symbols processed, not tuples formed, for k=%d", k)
	}
}

// TestExtendedHuffmanCompressionRatioMonotonic checks spec scenario 5:
// grouping symbols into larger tuples never makes the static Huffman
// coder worse, since the tuple-level code can always fall back to
// concatenating per-symbol codes.
func TestExtendedHuffmanCompressionRatioMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	// A skewed 4-symbol alphabet over a 2-bit stride: skew gives the
	// extension something to exploit.
	buf := make([]byte, 2000)
	weights := []float64{0.7, 0.15, 0.1, 0.05}
	cum := make([]float64, len(weights))
	var acc float64
	for i, w := range weights {
		acc += w
		cum[i] = acc
	}

	for i := range buf {
		p := rng.Float64()
		sym := 0
		for p > cum[sym] {
			sym++
		}
		buf[i] = byte(sym)
	}

	var prevRatio float64
	for k := uint64(1); k <= 3; k++ {
		ext, err := NewExtendedHuffman(buf, 2, k)
		require.NoError(t, err)

		r := ext.Report()
		if k > 1 {
			assert.GreaterOrEqualf(t, r.CompressionRatio, prevRatio-1e-9,
				"compression ratio should be weakly increasing in k: k=%d ratio=%f < previous %f",
				k, r.CompressionRatio, prevRatio)
		}
		prevRatio = r.CompressionRatio
	}
}

func TestExtendedHuffmanParallelMatchesSequential(t *testing.T) {
	buf := make([]byte, 4096)
	rng := rand.New(rand.NewSource(99))
	rng.Read(buf)

	seq, err := NewExtendedHuffman(buf, 8, 2)
	require.NoError(t, err)

	par, err := NewExtendedHuffmanParallel(buf, 8, 2, 4)
	require.NoError(t, err)

	sr, pr := seq.Report(), par.Report()
	assert.Equal(t, sr.NonzeroSymbols, pr.NonzeroSymbols)
	assert.Equal(t, sr.Occurrences, pr.Occurrences)
	assert.InDelta(t, sr.ExpectedCodewordLength, pr.ExpectedCodewordLength, 1e-9)
}

func TestExtendedHuffmanRejectsZeroExtendSize(t *testing.T) {
	_, err := NewExtendedHuffman([]byte("abc"), 8, 0)
	require.Error(t, err)
}
