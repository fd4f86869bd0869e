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

package entropy

import (
	"fmt"
	"math"
	"strings"

	entropylab "github.com/mlaurent/entropylab"
)

// ArithmeticCoder is the bound machine of section 4.6: integer-interval
// arithmetic over a configurable word length, with E1/E2/E3
// renormalization. It reports a bit count only (no reconstructable
// stream, per spec's non-goals) but can optionally trace the emitted
// bit string for comparison against a textbook example.
type ArithmeticCoder struct {
	wordLen uint
	mask    uint64
	half    uint64
	quarter uint64

	lo, hi  uint64
	e3Count uint64

	trace    bool
	bitCount uint64
	traceBuf strings.Builder
}

// NewArithmeticCoder builds a coder with the given working word length
// W_L (spec's "compile-time parameter", a runtime one here).
func NewArithmeticCoder(wordLen uint) (*ArithmeticCoder, error) {
	if wordLen < 3 || wordLen >= 63 {
		return nil, fmt.Errorf("entropy: arithmetic coder word length must be in [3,62], got %d", wordLen)
	}

	mask := (uint64(1) << wordLen) - 1

	return &ArithmeticCoder{
		wordLen: wordLen,
		mask:    mask,
		half:    uint64(1) << (wordLen - 1),
		quarter: uint64(1) << (wordLen - 2),
		lo:      0,
		hi:      mask,
	}, nil
}

// EnableTrace turns on bit-string tracing for stepwise verification.
func (a *ArithmeticCoder) EnableTrace() { a.trace = true }

// Lo and Hi expose the current interval bounds, for invariant testing.
func (a *ArithmeticCoder) Lo() uint64 { return a.lo }
func (a *ArithmeticCoder) Hi() uint64 { return a.hi }

// BitCount returns the number of bits emitted so far.
func (a *ArithmeticCoder) BitCount() uint64 { return a.bitCount }

// Trace returns the concatenated emitted bit string; empty unless
// EnableTrace was called before encoding.
func (a *ArithmeticCoder) Trace() string { return a.traceBuf.String() }

// Encode narrows [lo,hi] to the sub-interval named by bound, then
// renormalizes, per spec's per-bound update.
func (a *ArithmeticCoder) Encode(bound Bound) {
	rng := float64(a.hi-a.lo) + 1

	newHi := a.lo + uint64(math.Floor(rng*bound.Upper)) - 1
	newLo := a.lo + uint64(math.Floor(rng*bound.Lower))

	a.hi = newHi & a.mask
	a.lo = newLo & a.mask

	a.renormalize()
}

// renormalize repeats E1/E2/E3 until the interval no longer qualifies
// for any of them, per the state-machine table in spec section 4.6.
func (a *ArithmeticCoder) renormalize() {
	for {
		switch {
		case a.hi < a.half: // E1: entirely in the lower half
			a.emitWithFollowers(0)
			a.shift()
		case a.lo >= a.half: // E2: entirely in the upper half
			a.emitWithFollowers(1)
			a.shift()
		case a.lo >= a.quarter && a.hi < 3*a.quarter: // E3: straddling the middle
			a.e3Count++
			a.shiftE3()
		default:
			return
		}
	}
}

// emitWithFollowers emits bit, then e3Count deferred opposite bits
// accumulated by prior E3 steps, resetting the counter.
func (a *ArithmeticCoder) emitWithFollowers(bit int) {
	a.emit(bit)
	opposite := 1 - bit
	for ; a.e3Count > 0; a.e3Count-- {
		a.emit(opposite)
	}
}

func (a *ArithmeticCoder) emit(bit int) {
	a.bitCount++
	if a.trace {
		if bit == 1 {
			a.traceBuf.WriteByte('1')
		} else {
			a.traceBuf.WriteByte('0')
		}
	}
}

// shift is the E1/E2 renormalization: left-shift both bounds, filling
// in 1 at the bottom of hi and 0 at the bottom of lo.
func (a *ArithmeticCoder) shift() {
	a.lo = (a.lo << 1) & a.mask
	a.hi = ((a.hi << 1) | 1) & a.mask
}

// shiftE3 is the E3 renormalization: subtract the quarter point from
// both bounds (collapsing the straddled middle toward zero) then apply
// the same shift as E1/E2.
func (a *ArithmeticCoder) shiftE3() {
	a.lo -= a.quarter
	a.hi -= a.quarter
	a.shift()
}

// FixedProbabilityModel is a semi-static probability source: built once
// from a frequency table and never updated thereafter, used for the
// "fixed (empirical) model" arithmetic-coding demonstration and for
// reproducing a textbook bound trace bit-exactly.
type FixedProbabilityModel struct {
	indexOf map[string]int
	cum     []uint64
	total   uint64
}

// NewFixedProbabilityModel builds a model from freq's nonzero symbols,
// in their existing insertion order.
func NewFixedProbabilityModel(freq *Frequency) *FixedProbabilityModel {
	keys := freq.NonzeroKeys()

	m := &FixedProbabilityModel{indexOf: make(map[string]int, len(keys))}
	cum := make([]uint64, len(keys)+1)

	for i, k := range keys {
		m.indexOf[k.Key()] = i
		cum[i+1] = cum[i] + freq.Get(k)
	}

	m.cum = cum
	m.total = cum[len(cum)-1]
	return m
}

// Bound returns sym's bound under this model, and whether sym was ever
// counted into it.
func (m *FixedProbabilityModel) Bound(sym entropylab.Symbol) (Bound, bool) {
	idx, ok := m.indexOf[sym.Key()]
	if !ok || m.total == 0 {
		return Bound{}, false
	}
	return Bound{
		Lower: float64(m.cum[idx]) / float64(m.total),
		Upper: float64(m.cum[idx+1]) / float64(m.total),
	}, true
}

// EncodeWithFixedModel runs an entire symbol sequence through coder
// under model, in order. It panics if a symbol is missing from model,
// since a fixed model built from the same sequence can never miss one.
func EncodeWithFixedModel(coder *ArithmeticCoder, model *FixedProbabilityModel, symbols []entropylab.Symbol) {
	for _, s := range symbols {
		b, ok := model.Bound(s)
		if !ok {
			panic("entropy: symbol absent from fixed probability model")
		}
		coder.Encode(b)
	}
}
