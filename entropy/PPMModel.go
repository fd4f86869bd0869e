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
	"time"

	entropylab "github.com/mlaurent/entropylab"
	"github.com/mlaurent/entropylab/bitstream"
	"github.com/mlaurent/entropylab/internal"
)

// PPMModel is an order-N context-mixing model: a context table keyed by
// prefix vectors of length 0..N, predicting each symbol by descending
// from the longest matching context to the shortest, escaping at each
// level that doesn't contain the symbol.
type PPMModel struct {
	order     int
	method    EscapeMethod
	exclusion bool
	nsymbols  uint64
	stride    uint

	contexts map[string]*ppmContext

	processed   uint64
	encodedBits float64 // -log2(product of emitted bound widths); Step/Process only, a theoretical estimate independent of any coder
	coderBits   uint64  // set by RunWithCoder: the real bit count an ArithmeticCoder emitted
	usingCoder  bool
	elapsed     time.Duration
}

// NewPPMModel builds an order-N PPM model over an alphabet of nsymbols
// distinct values, using the given escape method and exclusion setting.
func NewPPMModel(order int, method EscapeMethod, exclusion bool, nsymbols uint64) (*PPMModel, error) {
	if order < 0 {
		return nil, fmt.Errorf("entropy: PPM order must be >= 0, got %d", order)
	}
	if nsymbols == 0 {
		return nil, fmt.Errorf("entropy: PPM alphabet size must be >= 1")
	}

	return &PPMModel{
		order:     order,
		method:    method,
		exclusion: exclusion,
		nsymbols:  nsymbols,
		contexts:  make(map[string]*ppmContext, 1024),
	}, nil
}

// NewPPMModelSized is NewPPMModel plus a coarse pre-sizing hint: sample
// is a prefix of the buffer about to be processed, read as stride-bit
// symbols, used to estimate the number of distinct symbols in it (each
// one the key of an order-1 context) via a linear-counting sketch
// rather than growing the context map one
// rehash at a time. The estimate only ever affects the initial map
// capacity, never correctness.
func NewPPMModelSized(order int, method EscapeMethod, exclusion bool, nsymbols uint64, sample []byte, stride uint) (*PPMModel, error) {
	m, err := NewPPMModel(order, method, exclusion, nsymbols)
	if err != nil {
		return nil, err
	}

	if len(sample) == 0 || stride == 0 {
		return m, nil
	}

	ss, err := bitstream.NewSymbolStream(sample, stride)
	if err != nil {
		return m, nil
	}

	keys := make([][]byte, 0, len(sample)*8/int(stride)+1)
	for !ss.Empty() {
		keys = append(keys, []byte(ss.Next().Key()))
	}

	hint := internal.EstimateCardinality(keys, 4*len(keys)+16)
	if hint > len(m.contexts) {
		grown := make(map[string]*ppmContext, hint)
		for k, v := range m.contexts {
			grown[k] = v
		}
		m.contexts = grown
	}

	return m, nil
}

// prefixKey canonicalizes a prefix vector into a context-table key:
// order matters, so symbols are joined positionally rather than sorted.
func prefixKey(prefix []entropylab.Symbol) string {
	var b strings.Builder
	for i, s := range prefix {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(s.Key())
	}
	return b.String()
}

func (m *PPMModel) getOrCreateContext(prefix []entropylab.Symbol) *ppmContext {
	key := prefixKey(prefix)
	ctx, ok := m.contexts[key]
	if !ok {
		ctx = newPPMContext(m.method)
		m.contexts[key] = ctx
	}
	return ctx
}

// Predict returns the sequence of bounds the model would emit to the
// arithmetic coder for symbol x given prefix, per spec section 4.5:
// descend from the longest available context to order 0, escaping
// (optionally excluding already-ruled-out symbols) until one contains
// x, falling back to an equiprobable bound over the full alphabet if
// none do.
func (m *PPMModel) Predict(x entropylab.Symbol, prefix []entropylab.Symbol) []Bound {
	var bounds []Bound
	var excluded map[string]bool
	if m.exclusion {
		excluded = make(map[string]bool)
	}

	maxOrder := m.order
	if len(prefix) < maxOrder {
		maxOrder = len(prefix)
	}

	for o := maxOrder; o >= 0; o-- {
		suffix := prefix[len(prefix)-o:]
		ctx, ok := m.contexts[prefixKey(suffix)]
		if !ok {
			continue
		}

		if b, found := ctx.boundFor(x, excluded); found {
			bounds = append(bounds, b)
			return bounds
		}

		bounds = append(bounds, ctx.escapeBound(excluded))

		if m.exclusion {
			for _, s := range ctx.symbols {
				excluded[s.Key()] = true
			}
		}
	}

	idx, _ := x.Uint64()
	n := float64(m.nsymbols)
	bounds = append(bounds, Bound{Lower: float64(idx) / n, Upper: float64(idx+1) / n})
	return bounds
}

// updateContexts applies the observed symbol to every context from
// order 0 up to min(order, len(prefix)), per spec section 4.5.
func (m *PPMModel) updateContexts(x entropylab.Symbol, prefix []entropylab.Symbol) {
	maxOrder := len(prefix)
	if maxOrder > m.order {
		maxOrder = m.order
	}

	for o := 0; o <= maxOrder; o++ {
		suffix := prefix[len(prefix)-o:]
		ctx := m.getOrCreateContext(suffix)
		ctx.update(ctx, x)
	}
}

// Step predicts x given prefix, updates the model, and accrues bit
// accounting (-log2 of the product of the emitted bound widths). It
// returns the bounds emitted, for tracing and testing.
func (m *PPMModel) Step(x entropylab.Symbol, prefix []entropylab.Symbol) []Bound {
	bounds := m.Predict(x, prefix)

	for _, b := range bounds {
		width := b.Upper - b.Lower
		if width > 0 {
			m.encodedBits += -math.Log2(width)
		}
	}

	m.updateContexts(x, prefix)
	m.processed++
	return bounds
}

// Process runs Step over an entire symbol sequence, in order, building
// each step's prefix from the preceding min(order, t) symbols.
func (m *PPMModel) Process(symbols []entropylab.Symbol) [][]Bound {
	all := make([][]Bound, len(symbols))

	for t, x := range symbols {
		lo := t - m.order
		if lo < 0 {
			lo = 0
		}
		all[t] = m.Step(x, symbols[lo:t])
	}

	return all
}

// Encode predicts x given prefix, drives coder through every bound
// Predict returns, in order, and then updates the model. Unlike Step,
// this actually exercises the arithmetic coder's E1/E2/E3
// renormalization for each bound (including escapes) instead of only
// estimating the Shannon-ideal bit cost: this is how PPM and the
// arithmetic coder are meant to work together, per spec section 4.6 ("for
// each bound (l,u) from the probability model"). It returns the bounds
// emitted, for tracing and testing.
func (m *PPMModel) Encode(coder *ArithmeticCoder, x entropylab.Symbol, prefix []entropylab.Symbol) []Bound {
	bounds := m.Predict(x, prefix)

	for _, b := range bounds {
		coder.Encode(b)
	}

	m.updateContexts(x, prefix)
	m.processed++
	return bounds
}

// EncodeAll drives coder over an entire symbol sequence via Encode, in
// order, building each step's prefix from the preceding min(order, t)
// symbols.
func (m *PPMModel) EncodeAll(coder *ArithmeticCoder, symbols []entropylab.Symbol) {
	for t, x := range symbols {
		lo := t - m.order
		if lo < 0 {
			lo = 0
		}
		m.Encode(coder, x, symbols[lo:t])
	}
}

// RunWithCoder reads buf as stride-bit symbols and drives coder through
// all of them via EncodeAll, timing the whole pass. Report afterward
// reflects coder's actual emitted bit count, not a theoretical estimate.
func (m *PPMModel) RunWithCoder(coder *ArithmeticCoder, buf []byte, stride uint) error {
	start := time.Now()

	ss, err := bitstream.NewSymbolStream(buf, stride)
	if err != nil {
		return err
	}

	var symbols []entropylab.Symbol
	for !ss.Empty() {
		symbols = append(symbols, ss.Next())
	}

	m.stride = stride
	m.EncodeAll(coder, symbols)
	m.coderBits = coder.BitCount()
	m.usingCoder = true
	m.elapsed = time.Since(start)
	return nil
}

// Report summarizes this run's six output scalars. Once RunWithCoder has
// driven a real ArithmeticCoder, the codeword length and compression
// ratio are computed from its actual bit count; otherwise (a model only
// ever stepped via Step/Process, for bound-correctness testing) they
// fall back to the theoretical -log2(width) estimate.
func (m *PPMModel) Report() Report {
	bits := m.encodedBits
	if m.usingCoder {
		bits = float64(m.coderBits)
	}

	var ratio float64
	if m.usingCoder {
		ratio = compressionRatio(m.processed, m.stride, 1, m.coderBits)
	}

	// Every symbol updates the order-0 context (empty prefix key), so its
	// symbol list holds each distinct symbol seen.
	var nonzero uint64
	if ctx, ok := m.contexts[""]; ok {
		nonzero = uint64(len(ctx.symbols))
	}

	return Report{
		Label:                  fmt.Sprintf("Arithmetic + PPM (%s, exclusion=%v)", m.method, m.exclusion),
		Stride:                 m.stride,
		NonzeroSymbols:         nonzero,
		Occurrences:            m.processed,
		ExpectedCodewordLength: expectedCodewordLengthFloat(bits, m.processed),
		CompressionRatio:       ratio,
		ExecutionTime:          m.elapsed.Seconds(),
	}
}

func expectedCodewordLengthFloat(encodedBits float64, occurrences uint64) float64 {
	if occurrences == 0 {
		return 0
	}
	return encodedBits / float64(occurrences)
}
