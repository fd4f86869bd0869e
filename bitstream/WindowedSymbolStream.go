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

package bitstream

import entropylab "github.com/mlaurent/entropylab"

// WindowedSymbolStream returns a sliding window of up to size consecutive
// symbols ending at the symbol just read, oldest first: the last N
// symbols (a context prefix) together with the symbol to be coded. The
// PPM model does not use it; PPMModel.Process and EncodeAll slice their
// prefixes directly out of the symbol sequence.
type WindowedSymbolStream struct {
	ss      *SymbolStream
	size    int
	symbols []entropylab.Symbol
}

// NewWindowedSymbolStream wraps a SymbolStream, keeping at most size
// trailing symbols.
func NewWindowedSymbolStream(ss *SymbolStream, size int) *WindowedSymbolStream {
	return &WindowedSymbolStream{ss: ss, size: size, symbols: make([]entropylab.Symbol, 0, size)}
}

// Empty delegates to the underlying SymbolStream.
func (w *WindowedSymbolStream) Empty() bool {
	return w.ss.Empty()
}

// Next advances the underlying stream by one symbol and returns the
// updated window (oldest first, newest last). The returned slice is
// owned by WindowedSymbolStream and is only valid until the next call.
func (w *WindowedSymbolStream) Next() []entropylab.Symbol {
	sym := w.ss.Next()

	if len(w.symbols) == w.size {
		copy(w.symbols, w.symbols[1:])
		w.symbols = w.symbols[:w.size-1]
	}

	w.symbols = append(w.symbols, sym)
	return w.symbols
}
