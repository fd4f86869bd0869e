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
	"math/bits"
	"time"

	entropylab "github.com/mlaurent/entropylab"
	"github.com/mlaurent/entropylab/bitstream"
)

// adaptiveNode is a node of the FGK/Vitter tree. Unlike huffmanNode this
// tree is mutated in place after every symbol: nodes carry parent links
// (the "cyclic reference" the original C++ needs an arena of indices
// for; Go's garbage collector makes plain pointers fine) and an id used
// to enforce the sibling property.
type adaptiveNode struct {
	id        int
	weight    uint64
	parent    *adaptiveNode
	left      *adaptiveNode
	right     *adaptiveNode
	isLeaf    bool
	isNYT     bool
	symbol    entropylab.Symbol
	heapIndex int // position within its sibling block's heap, -1 when absent
}

// AdaptiveHuffman is a single-pass Huffman coder: the tree updates after
// every symbol under the sibling-property invariant, using a per-weight
// sibling-block index to find the leader in better than linear time
// (set useBlocks=false for the naive tree-walking variant used to
// cross-check it in tests).
//
// The alphabet here must be small enough to enumerate: unlike Huffman,
// ExtendedHuffman and the PPM contexts (which key on Symbol's big.Int
// text form and so tolerate the full 127-bit width spec.md allows), the
// FGK node-id scheme and NYT-suffix encoding both need a machine-sized
// n to compute e = floor(log2 n) and to bound the 2n-1 node ids. This is
// a property of the algorithm, not an arbitrary restriction.
type AdaptiveHuffman struct {
	n      uint64
	e      uint
	r      uint64
	stride uint

	root *adaptiveNode
	nyt  *adaptiveNode

	leaves       map[string]*adaptiveNode
	distinctSeen uint64
	nextID       uint64

	blocks    map[uint64]*nodeHeap
	useBlocks bool

	processed   uint64
	encodedBits uint64
	elapsed     time.Duration
}

func newAdaptiveHuffman(n uint64, stride uint, useBlocks bool) (*AdaptiveHuffman, error) {
	if n < 1 {
		return nil, fmt.Errorf("entropy: adaptive Huffman alphabet size must be >= 1, got %d", n)
	}
	if n > 1<<62 {
		return nil, fmt.Errorf("entropy: adaptive Huffman alphabet size %d too large to enumerate", n)
	}

	e := uint(bits.Len64(n) - 1)
	r := n - (uint64(1) << e)

	root := &adaptiveNode{id: int(2*n - 1), isLeaf: true, isNYT: true, heapIndex: -1}

	a := &AdaptiveHuffman{
		n:         n,
		e:         e,
		r:         r,
		stride:    stride,
		root:      root,
		nyt:       root,
		leaves:    make(map[string]*adaptiveNode),
		nextID:    2*n - 2,
		blocks:    make(map[uint64]*nodeHeap),
		useBlocks: useBlocks,
	}

	a.insertIntoBlock(root)

	return a, nil
}

// NewAdaptiveHuffman builds a block-indexed adaptive Huffman coder over a
// 2^stride-symbol alphabet (the common case: symbols read directly off a
// byte/word stream).
func NewAdaptiveHuffman(stride uint) (*AdaptiveHuffman, error) {
	if stride < 1 || stride > 62 {
		return nil, fmt.Errorf("entropy: adaptive Huffman stride must be in [1,62], got %d", stride)
	}
	return newAdaptiveHuffman(uint64(1)<<stride, stride, true)
}

// NewAdaptiveHuffmanNaive is NewAdaptiveHuffman without the sibling-block
// index: leader lookup walks the whole tree. Used only to cross-check
// the block-indexed variant produces identical trees.
func NewAdaptiveHuffmanNaive(stride uint) (*AdaptiveHuffman, error) {
	if stride < 1 || stride > 62 {
		return nil, fmt.Errorf("entropy: adaptive Huffman stride must be in [1,62], got %d", stride)
	}
	return newAdaptiveHuffman(uint64(1)<<stride, stride, false)
}

// NewAdaptiveHuffmanAlphabet builds a block-indexed coder over an
// explicit n-symbol alphabet whose symbols are the integers [0,n),
// independent of any bit stride (e.g. a 26-letter alphabet fed symbol
// indices directly via Update).
func NewAdaptiveHuffmanAlphabet(n uint64) (*AdaptiveHuffman, error) {
	return newAdaptiveHuffman(n, 0, true)
}

// NewAdaptiveHuffmanAlphabetNaive is the naive-leader-lookup counterpart
// to NewAdaptiveHuffmanAlphabet.
func NewAdaptiveHuffmanAlphabetNaive(n uint64) (*AdaptiveHuffman, error) {
	return newAdaptiveHuffman(n, 0, false)
}

// nytSuffix returns the NYT-suffix value and bit length for the given
// natural-order symbol index, per spec: n = 2^e + r; the first 2r
// symbols get an (e+1)-bit suffix equal to their index, the rest get an
// e-bit suffix equal to (index - r).
func (a *AdaptiveHuffman) nytSuffix(idx uint64) (value uint64, length uint) {
	if idx < 2*a.r {
		return idx, a.e + 1
	}
	return idx - a.r, a.e
}

// depthOf returns the number of edges from the root to nd.
func depthOf(nd *adaptiveNode) uint64 {
	d := uint64(0)
	for nd.parent != nil {
		d++
		nd = nd.parent
	}
	return d
}

// Update advances the tree by one occurrence of sym, per spec section
// 4.4: the codeword-length contribution is recorded before the tree
// changes, then the new-symbol split (or last-symbol optimization) or
// existing-leaf lookup feeds the shared slide-and-increment loop.
func (a *AdaptiveHuffman) Update(sym entropylab.Symbol) {
	idx, ok := sym.Uint64()
	if !ok || idx >= a.n {
		panic("entropy: symbol out of range for adaptive Huffman alphabet")
	}
	key := sym.Key()

	if leaf, seen := a.leaves[key]; seen {
		a.encodedBits += depthOf(leaf)
		a.slideAndIncrement(leaf)
		a.processed++
		return
	}

	_, suffixLen := a.nytSuffix(idx)
	a.encodedBits += depthOf(a.nyt) + uint64(suffixLen)

	if a.distinctSeen == a.n-1 {
		// The alphabet's last unseen symbol needs no NYT split: once
		// every other symbol has appeared, this one is the only
		// possibility left behind the NYT path.
		leaf := a.nyt
		leaf.isNYT = false
		leaf.symbol = sym
		a.leaves[key] = leaf
		a.nyt = nil
		a.slideAndIncrement(leaf)
	} else {
		oldNYT := a.nyt
		newNYT := &adaptiveNode{weight: 0, isLeaf: true, isNYT: true, parent: oldNYT, heapIndex: -1}
		newLeaf := &adaptiveNode{weight: 1, isLeaf: true, symbol: sym, parent: oldNYT, heapIndex: -1}

		newLeaf.id = int(a.nextID)
		a.nextID--
		newNYT.id = int(a.nextID)
		a.nextID--

		oldNYT.isLeaf = false
		oldNYT.isNYT = false
		oldNYT.left = newNYT
		oldNYT.right = newLeaf

		a.insertIntoBlock(newNYT)
		a.insertIntoBlock(newLeaf)

		a.nyt = newNYT
		a.leaves[key] = newLeaf

		a.slideAndIncrement(oldNYT)
	}

	a.distinctSeen++
	a.processed++
}

// slideAndIncrement is the generic "swap toward leader, increment,
// ascend" loop shared by new-symbol and repeat-symbol updates: current
// starts either at the reused-NYT-turned-internal node or at an
// existing leaf, and the walk proceeds to the root inclusive.
func (a *AdaptiveHuffman) slideAndIncrement(current *adaptiveNode) {
	for {
		leader := a.leaderOf(current.weight)
		if leader != nil && leader != current && leader != current.parent && leader.id > current.id {
			a.swap(current, leader)
		}

		a.removeFromBlock(current)
		current.weight++
		a.insertIntoBlock(current)

		if current.parent == nil {
			return
		}
		current = current.parent
	}
}

// swap exchanges x and y's tree positions (parent pointers and their
// parents' child slots) and their ids, leaving every other field with
// its original node, per spec's definition of a sibling-block swap.
func (a *AdaptiveHuffman) swap(x, y *adaptiveNode) {
	px, py := x.parent, y.parent
	xWasLeft := px != nil && px.left == x
	yWasLeft := py != nil && py.left == y

	if px != nil {
		if xWasLeft {
			px.left = y
		} else {
			px.right = y
		}
	}
	if py != nil {
		if yWasLeft {
			py.left = x
		} else {
			py.right = x
		}
	}
	x.parent, y.parent = py, px

	if a.root == x {
		a.root = y
	} else if a.root == y {
		a.root = x
	}

	x.id, y.id = y.id, x.id

	// x and y share a weight (both came from the same block), so fixing
	// the heap order after the id swap touches only that one block.
	a.fixBlock(x)
	a.fixBlock(y)
}

// Process feeds buf through a SymbolStream at the coder's configured
// stride, calling Update once per symbol. Only valid for coders built
// via NewAdaptiveHuffman/NewAdaptiveHuffmanNaive.
func (a *AdaptiveHuffman) Process(buf []byte) error {
	if a.stride == 0 {
		return fmt.Errorf("entropy: adaptive Huffman coder has no configured stride; built via an alphabet-size constructor")
	}

	start := time.Now()

	ss, err := bitstream.NewSymbolStream(buf, a.stride)
	if err != nil {
		return err
	}

	for !ss.Empty() {
		a.Update(ss.Next())
	}

	a.elapsed += time.Since(start)
	return nil
}

// Report summarizes this run's six output scalars.
func (a *AdaptiveHuffman) Report() Report {
	return Report{
		Label:                  "Adaptive Huffman",
		Stride:                 a.stride,
		NonzeroSymbols:         uint64(len(a.leaves)),
		Occurrences:            a.processed,
		ExpectedCodewordLength: expectedCodewordLength(a.encodedBits, a.processed),
		CompressionRatio:       compressionRatio(a.processed, a.stride, 1, a.encodedBits),
		ExecutionTime:          a.elapsed.Seconds(),
	}
}
