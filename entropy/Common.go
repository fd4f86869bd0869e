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
	"sync"

	"github.com/mlaurent/entropylab/bitstream"
)

// countFrequency reads buf as stride-bit symbols and tallies them into a
// fresh Frequency table, sequentially.
func countFrequency(buf []byte, stride uint) (*Frequency, error) {
	ss, err := bitstream.NewSymbolStream(buf, stride)
	if err != nil {
		return nil, err
	}

	freq := NewFrequencyFromWidth(stride)

	for !ss.Empty() {
		freq.CountOne(ss.Next())
	}

	return freq, nil
}

// countSymbolRange tallies exactly count consecutive stride-bit symbols
// out of buf into freq, starting at bit offset startBit into the whole
// buffer (never a byte-sliced sub-buffer). Every symbol in the range is
// full width: callers only ever pass a range that falls strictly within
// whole symbols, short of the buffer's true end.
func countSymbolRange(buf []byte, stride uint, startBit, count uint64, freq *Frequency) error {
	ss, err := bitstream.NewSymbolStreamAt(buf, stride, startBit)
	if err != nil {
		return err
	}

	for i := uint64(0); i < count; i++ {
		freq.CountOne(ss.Next())
	}

	return nil
}

// countSymbolTail tallies every symbol from bit offset startBit to the
// true end of buf, including a short final symbol zero-padded per
// SymbolStream's contract: used for the last chunk of a parallel split,
// which must see exactly the tail countFrequency would have produced.
func countSymbolTail(buf []byte, stride uint, startBit uint64, freq *Frequency) error {
	ss, err := bitstream.NewSymbolStreamAt(buf, stride, startBit)
	if err != nil {
		return err
	}

	for !ss.Empty() {
		freq.CountOne(ss.Next())
	}

	return nil
}

// CountFrequencyParallel fans frequency counting out over jobs
// symbol-aligned chunks of buf, mirroring kanzi's own goroutine-per-chunk
// worker pool in app/Kanzi.go and io/CompressedStream.go, adapted here to
// a pure aggregation fan-out: each chunk builds a private Frequency,
// merged under a mutex into the shared table. Merge order is unspecified
// since counting is commutative; if jobs <= 1 or buf is too small to
// split into at least one full symbol per chunk, this degrades to the
// sequential path, which also preserves a single, deterministic
// insertion order for NonzeroKeys().
//
// Chunk boundaries are drawn in units of whole symbols, never raw bytes:
// stride need not divide 8 evenly, so slicing buf at a byte offset and
// handing each goroutine its own countFrequency call would restart bit
// position 0 mid-symbol, losing alignment with whatever symbol the
// sequential path would have read at that point. Instead every
// non-final worker reads a fixed count of symbols directly out of buf
// starting at its first symbol's true bit offset; only the final
// worker's chunk runs to the real end of buf and inherits the short
// final symbol's zero-padding, exactly as countFrequency's single pass
// would.
func CountFrequencyParallel(buf []byte, stride uint, jobs int) (*Frequency, error) {
	if jobs <= 1 || stride == 0 {
		return countFrequency(buf, stride)
	}

	totalSymbols := (uint64(len(buf)) * 8) / uint64(stride)
	chunkSymbols := totalSymbols / uint64(jobs)

	if chunkSymbols == 0 {
		return countFrequency(buf, stride)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	shared := NewFrequencyFromWidth(stride)

	for i := 0; i < jobs; i++ {
		startBit := uint64(i) * chunkSymbols * uint64(stride)
		last := i == jobs-1

		wg.Add(1)
		go func(startBit uint64, last bool) {
			defer wg.Done()

			local := NewFrequencyFromWidth(stride)

			var err error
			if last {
				err = countSymbolTail(buf, stride, startBit, local)
			} else {
				err = countSymbolRange(buf, stride, startBit, chunkSymbols, local)
			}

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}

			for _, k := range local.NonzeroKeys() {
				shared.Count(k, local.Get(k))
			}
		}(startBit, last)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return shared, nil
}
