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

// Package entropy implements the statistical models and coders of the
// laboratory: frequency counting, static and adaptive Huffman, PPM
// context modeling, and the arithmetic coder bound machine. Everything
// here is pure computation over in-memory buffers; no I/O, no CLI.
package entropy

import (
	"math/big"

	entropylab "github.com/mlaurent/entropylab"
)

// denseSwitchDenom is the default fraction-of-alphabet threshold past
// which Frequency switches its internal representation from a sparse map
// to a dense array, per spec: 1/10 of the declared alphabet size.
const denseSwitchDenom = 10

// Frequency counts occurrences per symbol, exposing nonzero symbols in
// insertion order. It starts as a sparse map (the common case: alphabets
// of width > ~20 bits almost never approach 1/10 nonzero occupancy) and
// upgrades to a dense array once the nonzero fraction crosses the
// threshold, provided the declared alphabet size is small enough to
// allocate one. Ported from the original C++ Frequency<KeyType,
// ValueType, denom>, which makes the same sparse/dense decision via a
// pair of member-function pointers; Go expresses the same idea as a
// boolean flag plus two code paths, since there is no cheap way to swap
// method implementations per-instance without an interface indirection
// that would cost more than it saves here.
type Frequency struct {
	nelem      *big.Int
	nelemDense uint64 // valid iff denseEligible
	denseOK    bool

	sparse        map[string]uint64
	denseArr      []uint64
	usingDenseArr bool

	symbolOf   map[string]entropylab.Symbol
	nonzero    []entropylab.Symbol
	occurrence uint64
}

// NewFrequency creates a Frequency table over an alphabet of nelem
// possible symbols. nelem may be nil to declare an unbounded alphabet;
// in that case the table never switches to a dense array
// representation. (Extended Huffman passes the tuple alphabet size
// 2^(stride*k), so small tuple tables may still switch.)
func NewFrequency(nelem *big.Int) *Frequency {
	f := &Frequency{
		sparse:   make(map[string]uint64, 1024),
		symbolOf: make(map[string]entropylab.Symbol, 1024),
	}

	if nelem != nil {
		f.nelem = new(big.Int).Set(nelem)
		if f.nelem.IsUint64() {
			f.nelemDense = f.nelem.Uint64()
			// Guard against allocating an unreasonably large dense array
			// for wide-but-technically-uint64 alphabets (e.g. width 40).
			f.denseOK = f.nelemDense > 0 && f.nelemDense <= (1<<26)
		}
	}

	return f
}

// NewFrequencyFromWidth is a convenience constructor for a symbol stream
// of the given bit width: the alphabet size is 2^width.
func NewFrequencyFromWidth(width uint) *Frequency {
	return NewFrequency(new(big.Int).Lsh(big.NewInt(1), width))
}

// Count increments key's count by n (default 1 via CountOne) and the
// total occurrence count by the same amount.
func (f *Frequency) Count(key entropylab.Symbol, n uint64) {
	f.CountOccurrence(key, n, n)
}

// CountOne increments key's count by exactly one.
func (f *Frequency) CountOne(key entropylab.Symbol) {
	f.Count(key, 1)
}

// CountOccurrence increments key's count by addCount while advancing the
// total occurrence count by addOccurrence. The two are decoupled so that
// extended Huffman can aggregate tuple counts while the effective data
// size still advances one base symbol at a time.
func (f *Frequency) CountOccurrence(key entropylab.Symbol, addCount, addOccurrence uint64) {
	k := key.Key()

	if f.usingDenseArr {
		idx, ok := key.Uint64()
		if !ok || idx >= uint64(len(f.denseArr)) {
			panic("entropy: symbol out of range for dense Frequency table")
		}

		if f.denseArr[idx] == 0 && addCount > 0 {
			f.nonzero = append(f.nonzero, key)
		}

		f.denseArr[idx] += addCount
	} else {
		if _, seen := f.sparse[k]; !seen {
			if addCount > 0 {
				f.nonzero = append(f.nonzero, key)
			}
			f.symbolOf[k] = key
		} else if f.sparse[k] == 0 && addCount > 0 {
			f.nonzero = append(f.nonzero, key)
		}

		f.sparse[k] += addCount
		f.maybeSwitchToDense()
	}

	f.occurrence += addOccurrence
}

// maybeSwitchToDense migrates from the sparse map to a dense array once
// the nonzero count crosses the 1/10-of-alphabet threshold, if the
// alphabet is small enough to allocate densely.
func (f *Frequency) maybeSwitchToDense() {
	if f.usingDenseArr || !f.denseOK {
		return
	}

	if uint64(len(f.sparse)) < f.nelemDense/denseSwitchDenom {
		return
	}

	arr := make([]uint64, f.nelemDense)
	for k, v := range f.sparse {
		sym := f.symbolOf[k]
		idx, ok := sym.Uint64()
		if !ok || idx >= f.nelemDense {
			// A symbol outside the declared alphabet disables the
			// optimization rather than corrupting counts.
			return
		}
		arr[idx] = v
	}

	f.denseArr = arr
	f.usingDenseArr = true
	f.sparse = nil
	f.symbolOf = nil
}

// Get returns key's count, 0 if it was never counted. Calling Get does
// not add key to NonzeroKeys(); only Count/CountOccurrence does.
func (f *Frequency) Get(key entropylab.Symbol) uint64 {
	if f.usingDenseArr {
		idx, ok := key.Uint64()
		if !ok || idx >= uint64(len(f.denseArr)) {
			return 0
		}
		return f.denseArr[idx]
	}

	return f.sparse[key.Key()]
}

// Freq returns key's empirical frequency: Get(key) / Occurrences().
func (f *Frequency) Freq(key entropylab.Symbol) float64 {
	if f.occurrence == 0 {
		return 0
	}
	return float64(f.Get(key)) / float64(f.occurrence)
}

// NonzeroKeys returns every symbol that has ever been counted, in the
// order each first became nonzero. The caller must not mutate the
// returned slice.
func (f *Frequency) NonzeroKeys() []entropylab.Symbol {
	return f.nonzero
}

// CountNonzeros returns len(NonzeroKeys()).
func (f *Frequency) CountNonzeros() int {
	return len(f.nonzero)
}

// Occurrences returns the total occurrence count accumulated across every
// Count/CountOccurrence call.
func (f *Frequency) Occurrences() uint64 {
	return f.occurrence
}
