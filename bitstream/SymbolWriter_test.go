package bitstream

import (
	"testing"

	entropylab "github.com/mlaurent/entropylab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolWriterRoundTripExactMultiple(t *testing.T) {
	w, err := NewSymbolWriter(8)
	require.NoError(t, err)

	w.WriteFull(entropylab.SymbolFromUint64(0x12))
	w.WriteFull(entropylab.SymbolFromUint64(0x34))

	assert.Equal(t, []byte{0x12, 0x34}, w.Bytes())
	assert.Equal(t, uint64(16), w.BitsWritten())
}

// TestSymbolWriterRoundTripThroughSymbolStream writes a stride-5 stream
// with WriteTrailing covering the final short symbol, then reads it back
// through SymbolStream, confirming the round trip reproduces the original
// bytes. The short final symbol, zero-padded by SymbolStream.Next on
// read, is shifted back down to its real width before WriteTrailing, and
// the final byte comparison covers it together with the full symbols.
func TestSymbolWriterRoundTripThroughSymbolStream(t *testing.T) {
	original := []byte{0x9A, 0xC7, 0x01}
	const stride = 5

	reader, err := NewSymbolStream(original, stride)
	require.NoError(t, err)

	var symbols []entropylab.Symbol
	for !reader.Empty() {
		symbols = append(symbols, reader.Next())
	}

	totalBits := len(original) * 8
	fullCount := totalBits / stride
	remBits := uint(totalBits % stride)

	w, err := NewSymbolWriter(stride)
	require.NoError(t, err)

	for i := 0; i < fullCount; i++ {
		w.WriteFull(symbols[i])
	}

	if remBits > 0 {
		last := symbols[len(symbols)-1]
		shifted, _ := last.Uint64()
		shifted >>= (stride - remBits)
		w.WriteTrailing(entropylab.SymbolFromUint64(shifted), remBits)
	}

	assert.Equal(t, original, w.Bytes())
}

func TestSymbolWriterRejectsBadStride(t *testing.T) {
	_, err := NewSymbolWriter(0)
	assert.Error(t, err)

	_, err = NewSymbolWriter(entropylab.MaxSymbolWidth + 1)
	assert.Error(t, err)
}

func TestSymbolWriterRejectsOversizeTrailing(t *testing.T) {
	w, err := NewSymbolWriter(6)
	require.NoError(t, err)

	assert.Panics(t, func() {
		w.WriteTrailing(entropylab.ZeroSymbol(), 7)
	})
}
