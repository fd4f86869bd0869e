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

// Package entropylab defines the top level types shared by the bitstream
// and entropy packages: the arbitrary-width Symbol representation, the
// error codes reported at the driver boundary, and the Listener interface
// used to report experiment progress.
//
// The statistical coders themselves live in the entropy package; reading
// a byte buffer as a sequence of fixed-width symbols lives in bitstream.
// Command-line entry points, file reading and progress printing live in
// cmd/entropylab and are thin collaborators around this core.
package entropylab

import "math/big"

// Driver-boundary error codes. The core packages (bitstream, entropy)
// never construct these directly; they return plain errors from
// constructors and panic on invariant violations. cmd/entropylab maps
// its own failures onto these codes for exit-status reporting.
const (
	ErrMissingInput    = 1
	ErrInvalidStride   = 2
	ErrUnknownPPMMode  = 3
	ErrInvalidWordLen  = 4
	ErrCreateCoder     = 5
	ErrReadFile        = 6
	ErrUnknownModeFlag = 7
)

// MaxSymbolWidth is the widest stride, in bits, a SymbolStream will
// produce a Symbol for.
const MaxSymbolWidth = 127

// Symbol is an unsigned integer of up to MaxSymbolWidth bits. Go has no
// native integer that wide, so Symbol wraps math/big.Int; none of the
// example repositories retrieved for this project pull in a third-party
// arbitrary-precision integer library, so math/big is used directly
// rather than inventing one.
type Symbol struct {
	v *big.Int
}

// NewSymbol wraps an existing non-negative value as a Symbol.
func NewSymbol(v *big.Int) Symbol {
	return Symbol{v: new(big.Int).Set(v)}
}

// SymbolFromUint64 builds a Symbol from a machine-width value, the common
// case for strides up to 64 bits.
func SymbolFromUint64(v uint64) Symbol {
	return Symbol{v: new(big.Int).SetUint64(v)}
}

// ZeroSymbol returns the additive identity, used to seed accumulators.
func ZeroSymbol() Symbol {
	return Symbol{v: new(big.Int)}
}

// Big returns the underlying value. Callers must not mutate it.
func (s Symbol) Big() *big.Int {
	if s.v == nil {
		return new(big.Int)
	}
	return s.v
}

// Key returns the canonical map key for this symbol: equal symbols
// always produce equal keys, regardless of how many bits were used to
// represent them along the way.
func (s Symbol) Key() string {
	return s.Big().Text(16)
}

// Uint64 returns the value truncated to 64 bits together with whether the
// truncation was exact (i.e. the value actually fits in 64 bits).
func (s Symbol) Uint64() (uint64, bool) {
	b := s.Big()
	return b.Uint64(), b.IsUint64()
}

// ShiftAppend returns a new symbol equal to (s << width) | low, where low
// is itself width bits wide. Used to build extended-Huffman tuple keys
// out of individual W-bit symbols, and by SymbolStream to accumulate a
// symbol bit by bit.
func (s Symbol) ShiftAppend(width uint, low Symbol) Symbol {
	out := new(big.Int).Lsh(s.Big(), width)
	out.Or(out, low.Big())
	return Symbol{v: out}
}

// Sub returns s - other. The result is only a valid Symbol when other
// does not exceed s.
func (s Symbol) Sub(other Symbol) Symbol {
	return Symbol{v: new(big.Int).Sub(s.Big(), other.Big())}
}

// Cmp mirrors big.Int.Cmp.
func (s Symbol) Cmp(other Symbol) int {
	return s.Big().Cmp(other.Big())
}

// String renders the decimal value, for diagnostics.
func (s Symbol) String() string {
	return s.Big().String()
}
