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
	"container/heap"
	"time"

	entropylab "github.com/mlaurent/entropylab"
)

// huffmanNode is a weight-tree node: internal nodes have both children,
// leaves have neither and carry a symbol tag. Ported from the original
// C++ Node<ValueType>/LeafNode<KeyType, ValueType> pair; Go's lack of a
// constexpr-friendly class hierarchy collapses both into one struct
// distinguished by isLeaf, which is simpler here since this tree is
// never mutated once built (unlike AdaptiveHuffman's).
type huffmanNode struct {
	weight      uint64
	left, right *huffmanNode
	symbol      entropylab.Symbol
	isLeaf      bool
}

// huffmanHeap is a container/heap min-heap over *huffmanNode by weight,
// replacing the original's hand-rolled MinHeap<Node<ValueType> *> — Go's
// standard container/heap is the idiomatic equivalent and every
// compression-focused example in the retrieval pack that needs a
// priority queue defers to it or a close stdlib analogue rather than
// hand-rolling one.
type huffmanHeap []*huffmanNode

func (h huffmanHeap) Len() int            { return len(h) }
func (h huffmanHeap) Less(i, j int) bool  { return h[i].weight < h[j].weight }
func (h huffmanHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *huffmanHeap) Push(x interface{}) { *h = append(*h, x.(*huffmanNode)) }
func (h *huffmanHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// buildHuffmanTree runs the two-smallest merge over a min-heap of leaves,
// one per nonzero symbol in freq, until a single root remains. Ties are
// broken by heap iteration order, which is unspecified at the contract
// level: any Huffman-optimal tree is acceptable.
func buildHuffmanTree(freq *Frequency) *huffmanNode {
	keys := freq.NonzeroKeys()

	if len(keys) == 0 {
		return nil
	}

	if len(keys) == 1 {
		return &huffmanNode{weight: freq.Get(keys[0]), symbol: keys[0], isLeaf: true}
	}

	h := make(huffmanHeap, 0, len(keys))
	for _, k := range keys {
		h = append(h, &huffmanNode{weight: freq.Get(k), symbol: k, isLeaf: true})
	}
	heap.Init(&h)

	for h.Len() > 1 {
		n1 := heap.Pop(&h).(*huffmanNode)
		n2 := heap.Pop(&h).(*huffmanNode)
		heap.Push(&h, &huffmanNode{weight: n1.weight + n2.weight, left: n1, right: n2})
	}

	return heap.Pop(&h).(*huffmanNode)
}

// sumWeightedDepth returns sum(depth(leaf) * weight(leaf)) over every leaf
// beneath root, the total encoded bit count for a static Huffman tree.
func sumWeightedDepth(root *huffmanNode, depth uint64) uint64 {
	if root == nil {
		return 0
	}
	if root.isLeaf {
		// A single-symbol alphabet has depth 0; one bit is still needed
		// to signal "the symbol", so floor it at 1 to avoid reporting a
		// zero-length code for nonempty input.
		d := depth
		if d == 0 {
			d = 1
		}
		return d * root.weight
	}
	return sumWeightedDepth(root.left, depth+1) + sumWeightedDepth(root.right, depth+1)
}

// Huffman is a static Huffman coder: one probability pass over the input,
// then codeword lengths via weight-tree construction. It reports bit
// counts only; it does not emit an encoded stream (decoding is a
// non-goal for this laboratory).
type Huffman struct {
	stride      uint
	freq        *Frequency
	root        *huffmanNode
	encodedBits uint64
	elapsed     time.Duration
}

// NewHuffman builds a static Huffman coder over buf read as stride-bit
// symbols.
func NewHuffman(buf []byte, stride uint) (*Huffman, error) {
	start := time.Now()

	freq, err := countFrequency(buf, stride)
	if err != nil {
		return nil, err
	}

	root := buildHuffmanTree(freq)

	h := &Huffman{
		stride:      stride,
		freq:        freq,
		root:        root,
		encodedBits: sumWeightedDepth(root, 0),
	}
	h.elapsed = time.Since(start)

	return h, nil
}

// NewHuffmanParallel builds a static Huffman coder the same way as
// NewHuffman, but counts frequencies over jobs goroutine-per-chunk
// workers first, per CountFrequencyParallel.
func NewHuffmanParallel(buf []byte, stride uint, jobs int) (*Huffman, error) {
	start := time.Now()

	freq, err := CountFrequencyParallel(buf, stride, jobs)
	if err != nil {
		return nil, err
	}

	root := buildHuffmanTree(freq)

	h := &Huffman{
		stride:      stride,
		freq:        freq,
		root:        root,
		encodedBits: sumWeightedDepth(root, 0),
	}
	h.elapsed = time.Since(start)

	return h, nil
}

// Report summarizes this run's six output scalars.
func (h *Huffman) Report() Report {
	return Report{
		Label:                  "Static Huffman",
		Stride:                 h.stride,
		NonzeroSymbols:         uint64(h.freq.CountNonzeros()),
		Occurrences:            h.freq.Occurrences(),
		ExpectedCodewordLength: expectedCodewordLength(h.encodedBits, h.freq.Occurrences()),
		CompressionRatio:       compressionRatio(h.freq.Occurrences(), h.stride, 1, h.encodedBits),
		ExecutionTime:          h.elapsed.Seconds(),
	}
}

func expectedCodewordLength(encodedBits, occurrences uint64) float64 {
	if occurrences == 0 {
		return 0
	}
	return float64(encodedBits) / float64(occurrences)
}

func compressionRatio(occurrences uint64, stride uint, extendSize uint64, encodedBits uint64) float64 {
	if encodedBits == 0 {
		return 0
	}
	return float64(occurrences) * float64(stride) * float64(extendSize) / float64(encodedBits)
}
