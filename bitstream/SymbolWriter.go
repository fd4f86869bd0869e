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

package bitstream

import (
	"fmt"
	"math/big"

	entropylab "github.com/mlaurent/entropylab"
	"github.com/mlaurent/entropylab/internal"
)

// SymbolWriter is SymbolStream's write-side counterpart: it packs
// fixed-width symbols MSB first into a byte buffer, padding the final
// partial byte with zero bits, so a round trip through SymbolStream
// reproduces every full symbol written. It exists for the "symbol stream
// round trip" testable property and for any experiment that wants to
// materialize a synthetic stride-N source instead of reading one from a
// file.
type SymbolWriter struct {
	buf      *internal.ByteBuffer
	stride   uint
	cur      byte
	curBits  uint
	bitsUsed uint64
}

// NewSymbolWriter creates a SymbolWriter that will pack stride-bit
// symbols. stride must be in [1, entropylab.MaxSymbolWidth].
func NewSymbolWriter(stride uint) (*SymbolWriter, error) {
	if stride < 1 || stride > entropylab.MaxSymbolWidth {
		return nil, fmt.Errorf("bitstream: stride must be in [1..%d], got %d", entropylab.MaxSymbolWidth, stride)
	}

	return &SymbolWriter{buf: internal.NewByteBuffer(), stride: stride}, nil
}

// WriteFull appends sym as exactly stride bits.
func (w *SymbolWriter) WriteFull(sym entropylab.Symbol) {
	w.writeBits(sym.Big(), w.stride)
}

// WriteTrailing appends sym as exactly bits bits, for emitting a short
// final symbol (bits < stride) without the zero padding a full Next()
// round trip would otherwise reintroduce. Mirrors SymbolStream.Next's own
// documented short-final-chunk behavior in reverse.
func (w *SymbolWriter) WriteTrailing(sym entropylab.Symbol, bits uint) {
	if bits > w.stride {
		panic("bitstream: WriteTrailing bits exceeds stride")
	}
	w.writeBits(sym.Big(), bits)
}

// writeBits emits the low `width` bits of v, most significant first.
func (w *SymbolWriter) writeBits(v *big.Int, width uint) {
	for i := int(width) - 1; i >= 0; i-- {
		bit := v.Bit(i)
		w.cur = (w.cur << 1) | byte(bit)
		w.curBits++
		w.bitsUsed++

		if w.curBits == 8 {
			if err := w.buf.WriteByte(w.cur); err != nil {
				panic(err)
			}
			w.cur = 0
			w.curBits = 0
		}
	}
}

// Bytes flushes any partial final byte (zero-padded on the right, per
// SymbolStream's short-chunk contract) and returns the packed buffer.
// Safe to call more than once; subsequent calls return the same bytes.
func (w *SymbolWriter) Bytes() []byte {
	if w.curBits > 0 {
		pad := 8 - w.curBits
		w.cur <<= pad
		if err := w.buf.WriteByte(w.cur); err != nil {
			panic(err)
		}
		w.cur = 0
		w.curBits = 0
	}
	return w.buf.Bytes()
}

// BitsWritten returns the number of symbol bits written so far,
// excluding any zero padding Bytes adds to complete the final byte.
func (w *SymbolWriter) BitsWritten() uint64 {
	return w.bitsUsed
}

// Stride returns the configured symbol width in bits.
func (w *SymbolWriter) Stride() uint {
	return w.stride
}
