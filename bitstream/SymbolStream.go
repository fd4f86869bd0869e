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

	entropylab "github.com/mlaurent/entropylab"
)

// SymbolStream partitions a BitReader's bit sequence into fixed-width
// chunks, MSB first. The final chunk, if short, is padded with zeros on
// the right: Next() returns it exactly once, after which Empty()
// becomes true.
type SymbolStream struct {
	bits   *BitReader
	stride uint
}

// NewSymbolStream creates a SymbolStream reading stride-bit symbols out of
// buf. stride must be in [1, entropylab.MaxSymbolWidth].
func NewSymbolStream(buf []byte, stride uint) (*SymbolStream, error) {
	if stride < 1 || stride > entropylab.MaxSymbolWidth {
		return nil, fmt.Errorf("bitstream: stride must be in [1..%d], got %d", entropylab.MaxSymbolWidth, stride)
	}

	return &SymbolStream{bits: NewBitReader(buf), stride: stride}, nil
}

// NewSymbolStreamAt creates a SymbolStream reading stride-bit symbols out
// of buf starting at bit offset startBit instead of 0, so that symbol
// framing stays exactly where a stream that started at buf[0] would be
// after reading startBit/stride symbols. Used to hand each worker of a
// parallel split a view into the same logical stream instead of one that
// restarts bit position 0 at an arbitrary byte boundary.
func NewSymbolStreamAt(buf []byte, stride uint, startBit uint64) (*SymbolStream, error) {
	if stride < 1 || stride > entropylab.MaxSymbolWidth {
		return nil, fmt.Errorf("bitstream: stride must be in [1..%d], got %d", entropylab.MaxSymbolWidth, stride)
	}

	return &SymbolStream{bits: NewBitReaderAt(buf, startBit), stride: stride}, nil
}

// Empty reports whether every symbol, including a short final one, has
// been returned by Next.
func (s *SymbolStream) Empty() bool {
	return s.bits.Empty()
}

// Next returns the next stride-bit symbol. If fewer than stride bits
// remain, the partial value of length r < stride is returned as
// p << (stride - r), per the zero-padding contract.
func (s *SymbolStream) Next() entropylab.Symbol {
	if s.Empty() {
		panic("bitstream: Next called on an empty SymbolStream")
	}

	value := entropylab.ZeroSymbol()
	read := uint(0)

	for read < s.stride {
		if s.bits.Empty() {
			break
		}

		value = value.ShiftAppend(1, entropylab.SymbolFromUint64(uint64(s.bits.Next())))
		read++
	}

	if read < s.stride {
		value = value.ShiftAppend(s.stride-read, entropylab.ZeroSymbol())
	}

	return value
}

// Stride returns the configured symbol width in bits.
func (s *SymbolStream) Stride() uint {
	return s.stride
}
