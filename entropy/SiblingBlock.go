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

import "container/heap"

// nodeHeap is a max-heap over *adaptiveNode ordered by id: the sibling
// block for one weight value. Ported from the original MinHeap.h idea
// (there templated over a comparator) onto container/heap, the idiomatic
// Go priority queue every compression-focused example in the retrieval
// pack reaches for instead of hand-rolling one. Each node remembers its
// own slot via heapIndex so a specific node can be pulled out of the
// middle of the heap in O(log n) with heap.Remove/heap.Fix rather than a
// linear scan.
type nodeHeap []*adaptiveNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].id > h[j].id } // max-heap
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *nodeHeap) Push(x interface{}) {
	nd := x.(*adaptiveNode)
	nd.heapIndex = len(*h)
	*h = append(*h, nd)
}

func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	nd := old[n-1]
	old[n-1] = nil
	nd.heapIndex = -1
	*h = old[:n-1]
	return nd
}

// peekMax returns the block's leader (the member with the largest id)
// without removing it, or nil if the block is empty.
func (h nodeHeap) peekMax() *adaptiveNode {
	if len(h) == 0 {
		return nil
	}
	return h[0]
}

// insertIntoBlock adds nd to the block for its current weight, creating
// the block on first use.
func (a *AdaptiveHuffman) insertIntoBlock(nd *adaptiveNode) {
	if !a.useBlocks {
		return
	}
	blk := a.blocks[nd.weight]
	if blk == nil {
		blk = &nodeHeap{}
		a.blocks[nd.weight] = blk
	}
	heap.Push(blk, nd)
}

// removeFromBlock removes nd from the block for its current weight.
// Empty blocks are dropped; the contract only requires query/insert/
// remove, so retaining an empty block buys nothing.
func (a *AdaptiveHuffman) removeFromBlock(nd *adaptiveNode) {
	if !a.useBlocks {
		return
	}
	blk := a.blocks[nd.weight]
	if blk == nil || nd.heapIndex < 0 || nd.heapIndex >= blk.Len() {
		return
	}
	heap.Remove(blk, nd.heapIndex)
	if blk.Len() == 0 {
		delete(a.blocks, nd.weight)
	}
}

// fixBlock restores heap order for nd's block after its id changed
// underneath the heap (a swap exchanges two nodes' ids in place).
func (a *AdaptiveHuffman) fixBlock(nd *adaptiveNode) {
	if !a.useBlocks {
		return
	}
	blk := a.blocks[nd.weight]
	if blk == nil || nd.heapIndex < 0 || nd.heapIndex >= blk.Len() {
		return
	}
	heap.Fix(blk, nd.heapIndex)
}

// leaderOf returns the largest-id member of the weight block, via the
// block index when enabled or by walking the whole tree otherwise. Both
// paths must agree on every call; AdaptiveHuffman_test.go cross-checks
// this on random streams.
func (a *AdaptiveHuffman) leaderOf(weight uint64) *adaptiveNode {
	if a.useBlocks {
		blk := a.blocks[weight]
		if blk == nil {
			return nil
		}
		return blk.peekMax()
	}

	var leader *adaptiveNode
	var walk func(nd *adaptiveNode)
	walk = func(nd *adaptiveNode) {
		if nd == nil {
			return
		}
		if nd.weight == weight && (leader == nil || nd.id > leader.id) {
			leader = nd
		}
		walk(nd.left)
		walk(nd.right)
	}
	walk(a.root)
	return leader
}
