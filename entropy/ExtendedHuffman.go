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
	"math/big"
	"sync"
	"time"
)

// ExtendedHuffman builds a static Huffman code over tuples of extendSize
// consecutive stride-bit symbols. The working frequency table is the
// extendSize-fold self product of the base distribution: for every pair
// of a previously-extended key p and a base key b, a tuple's count is
// count(p) * count(b) and its combined key is (p << stride) | b.
// Occurrences track the base symbol count (one input symbol advances the
// effective data size by one, not by extendSize), per spec. Because the
// product counts sum to the base count raised to extendSize, the tree's
// weighted depth sum is rescaled to occurrences tuples before it is
// reported as the encoded bit count.
type ExtendedHuffman struct {
	stride      uint
	extendSize  uint64
	freq        *Frequency
	occurrences uint64
	root        *huffmanNode
	encodedBits uint64
	elapsed     time.Duration
}

// NewExtendedHuffman builds an ExtendedHuffman coder over buf for the
// given extension factor. extendSize == 1 degenerates to plain static
// Huffman over individual symbols.
func NewExtendedHuffman(buf []byte, stride uint, extendSize uint64) (*ExtendedHuffman, error) {
	return newExtendedHuffman(buf, stride, extendSize, 0)
}

// NewExtendedHuffmanParallel is the fan-out variant: frequency counting
// runs over jobs goroutines, and the final codeword-length sum fans out
// one goroutine per top-level subtree, both accumulating under mutual
// exclusion, per spec's concurrency model.
func NewExtendedHuffmanParallel(buf []byte, stride uint, extendSize uint64, jobs int) (*ExtendedHuffman, error) {
	return newExtendedHuffman(buf, stride, extendSize, jobs)
}

func newExtendedHuffman(buf []byte, stride uint, extendSize uint64, jobs int) (*ExtendedHuffman, error) {
	if extendSize < 1 {
		return nil, fmt.Errorf("entropy: extend size must be >= 1, got %d", extendSize)
	}

	start := time.Now()

	var baseFreq *Frequency
	var err error

	if jobs > 1 {
		baseFreq, err = CountFrequencyParallel(buf, stride, jobs)
	} else {
		baseFreq, err = countFrequency(buf, stride)
	}
	if err != nil {
		return nil, err
	}

	freq := baseFreq

	for i := uint64(2); i <= extendSize; i++ {
		nelem := new(big.Int).Lsh(big.NewInt(1), stride*uint(i))
		temp := NewFrequency(nelem)

		for _, extendKey := range freq.NonzeroKeys() {
			extendCount := freq.Get(extendKey)

			for _, baseKey := range baseFreq.NonzeroKeys() {
				baseCount := baseFreq.Get(baseKey)
				newKey := extendKey.ShiftAppend(stride, baseKey)
				temp.CountOccurrence(newKey, extendCount*baseCount, 0)
			}
		}

		freq = temp
	}

	root := buildHuffmanTree(freq)

	var encodedBits uint64
	if jobs > 1 {
		encodedBits = parallelSumWeightedDepth(root, 0)
	} else {
		encodedBits = sumWeightedDepth(root, 0)
	}

	// The weighted depth sum is over product counts totalling root.weight;
	// scale it to occurrences tuples at the tree's expected codeword length.
	if root != nil && root.weight > 0 {
		scaled := new(big.Int).Mul(new(big.Int).SetUint64(encodedBits), new(big.Int).SetUint64(baseFreq.Occurrences()))
		scaled.Quo(scaled, new(big.Int).SetUint64(root.weight))
		encodedBits = scaled.Uint64()
	}

	return &ExtendedHuffman{
		stride:      stride,
		extendSize:  extendSize,
		freq:        freq,
		occurrences: baseFreq.Occurrences(),
		root:        root,
		encodedBits: encodedBits,
		elapsed:     time.Since(start),
	}, nil
}

// parallelSumWeightedDepth fans out the codeword-length sum across the
// root's two subtrees, accumulating under a mutex, then recurses
// sequentially within each subtree: most of the benefit of parallel
// traversal comes from the top few levels, and fanning out a goroutine
// per node would spend more on scheduling than it recovers.
func parallelSumWeightedDepth(root *huffmanNode, depth uint64) uint64 {
	if root == nil {
		return 0
	}

	if root.isLeaf {
		return sumWeightedDepth(root, depth)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var total uint64

	wg.Add(2)

	go func() {
		defer wg.Done()
		s := sumWeightedDepth(root.left, depth+1)
		mu.Lock()
		total += s
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		s := sumWeightedDepth(root.right, depth+1)
		mu.Lock()
		total += s
		mu.Unlock()
	}()

	wg.Wait()
	return total
}

// Report summarizes this run's six output scalars.
func (e *ExtendedHuffman) Report() Report {
	return Report{
		Label:                  fmt.Sprintf("Extended Huffman (k=%d)", e.extendSize),
		Stride:                 e.stride * uint(e.extendSize),
		NonzeroSymbols:         uint64(e.freq.CountNonzeros()),
		Occurrences:            e.occurrences,
		ExpectedCodewordLength: expectedCodewordLength(e.encodedBits, e.occurrences),
		CompressionRatio:       compressionRatio(e.occurrences, e.stride, e.extendSize, e.encodedBits),
		ExecutionTime:          e.elapsed.Seconds(),
	}
}
