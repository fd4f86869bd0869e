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

import entropylab "github.com/mlaurent/entropylab"

// EscapeMethod selects one of the three PPM escape-probability estimators.
type EscapeMethod int

const (
	PPMEscapeA EscapeMethod = iota
	PPMEscapeB
	PPMEscapeC
)

func (m EscapeMethod) String() string {
	switch m {
	case PPMEscapeA:
		return "PPMA"
	case PPMEscapeB:
		return "PPMB"
	case PPMEscapeC:
		return "PPMC"
	default:
		return "unknown"
	}
}

// Bound is a probability interval handed to the arithmetic coder: a
// symbol or escape event occupies [Lower, Upper) of the unit interval.
type Bound struct {
	Lower, Upper float64
}

// ppmContext holds one prefix's symbol counts, insertion order preserved
// so cum[i] always lines up with symbols[i]. The escape-method dispatch
// is a method value chosen at construction (update), the Go analogue of
// the original C++'s per-context member-function pointer and the same
// shape as kanzi's own EntropyCodecFactory dispatch.
type ppmContext struct {
	method     EscapeMethod
	update     func(*ppmContext, entropylab.Symbol)
	indexOf    map[string]int
	symbols    []entropylab.Symbol
	counts     []uint64
	singletons uint64 // PPMB only: count of symbols with counts[i] == 0
}

func newPPMContext(method EscapeMethod) *ppmContext {
	c := &ppmContext{
		method:  method,
		indexOf: make(map[string]int),
	}

	switch method {
	case PPMEscapeA:
		c.update = (*ppmContext).updatePPMA
	case PPMEscapeB:
		c.update = (*ppmContext).updatePPMB
	case PPMEscapeC:
		c.update = (*ppmContext).updatePPMC
	default:
		c.update = (*ppmContext).updatePPMC
	}

	return c
}

// updatePPMA: counts increment by 1 on every occurrence; first
// appearance also initializes the symbol at count 0 before the
// increment, so its count is 1 after this call.
func (c *ppmContext) updatePPMA(sym entropylab.Symbol) {
	idx := c.indexOrInsert(sym, 0)
	c.counts[idx]++
}

// updatePPMB: a new symbol is inserted at count 0 (escape emitted, no
// mass yet); a repeat increments. singletons tracks how many symbols
// currently sit at count 0 (i.e. have appeared exactly once), which is
// PPMB's esc_count.
func (c *ppmContext) updatePPMB(sym entropylab.Symbol) {
	key := sym.Key()
	if idx, seen := c.indexOf[key]; seen {
		if c.counts[idx] == 0 {
			c.singletons--
		}
		c.counts[idx]++
		return
	}
	c.indexOrInsert(sym, 0)
	c.singletons++
}

// updatePPMC: a new symbol is inserted directly at count 1 (escape then
// data increment, in one step); a repeat increments by 1.
func (c *ppmContext) updatePPMC(sym entropylab.Symbol) {
	key := sym.Key()
	if idx, seen := c.indexOf[key]; seen {
		c.counts[idx]++
		return
	}
	c.indexOrInsert(sym, 1)
}

// indexOrInsert returns sym's existing index, or inserts it with the
// given initial count and returns the new index.
func (c *ppmContext) indexOrInsert(sym entropylab.Symbol, initial uint64) int {
	key := sym.Key()
	if idx, seen := c.indexOf[key]; seen {
		return idx
	}
	idx := len(c.symbols)
	c.indexOf[key] = idx
	c.symbols = append(c.symbols, sym)
	c.counts = append(c.counts, initial)
	return idx
}

// escCount returns the context's escape mass under its configured
// method: PPMA charges a flat 1 once anything has been seen, PPMB
// charges one unit per symbol seen exactly once, PPMC charges one unit
// per distinct symbol.
func (c *ppmContext) escCount() uint64 {
	switch c.method {
	case PPMEscapeA:
		if len(c.symbols) == 0 {
			return 0
		}
		return 1
	case PPMEscapeB:
		return c.singletons
	case PPMEscapeC:
		return uint64(len(c.symbols))
	default:
		return uint64(len(c.symbols))
	}
}

// maskedMass sums counts for every symbol not present in excluded,
// which may be nil (no exclusion in effect).
func (c *ppmContext) maskedMass(excluded map[string]bool) uint64 {
	var sum uint64
	for i, s := range c.symbols {
		if excluded == nil || !excluded[s.Key()] {
			sum += c.counts[i]
		}
	}
	return sum
}

// boundFor returns the bound for sym in this context, and whether sym
// is present with positive count and not excluded. Exclusion subtracts
// excluded symbols' mass from both the numerator segment below sym and
// the total, per spec.
func (c *ppmContext) boundFor(sym entropylab.Symbol, excluded map[string]bool) (Bound, bool) {
	idx, seen := c.indexOf[sym.Key()]
	if !seen || c.counts[idx] == 0 {
		return Bound{}, false
	}
	if excluded != nil && excluded[sym.Key()] {
		return Bound{}, false
	}

	var lower uint64
	for i := 0; i < idx; i++ {
		if excluded == nil || !excluded[c.symbols[i].Key()] {
			lower += c.counts[i]
		}
	}
	upper := lower + c.counts[idx]

	total := c.maskedMass(excluded) + c.escCount()
	if total == 0 {
		return Bound{}, false
	}

	return Bound{Lower: float64(lower) / float64(total), Upper: float64(upper) / float64(total)}, true
}

// escapeBound returns the context's escape event bound, [masked data
// mass / total, 1).
func (c *ppmContext) escapeBound(excluded map[string]bool) Bound {
	mass := c.maskedMass(excluded)
	total := mass + c.escCount()
	if total == 0 {
		return Bound{0, 1}
	}
	return Bound{Lower: float64(mass) / float64(total), Upper: 1.0}
}
