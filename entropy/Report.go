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

import "fmt"

// Report aggregates the six output scalars spec.md assigns every
// experiment. Its String() layout mirrors kanzi's coder dump() methods
// and the original C++ AdaptiveHuffman::dump()/ExtendedHuffman::dump().
type Report struct {
	Label                  string
	Stride                 uint
	NonzeroSymbols         uint64
	Occurrences            uint64
	ExpectedCodewordLength float64
	CompressionRatio       float64
	ExecutionTime          float64
}

// String renders the report in the same label/value layout the teacher's
// coders use for their own textual dumps.
func (r Report) String() string {
	return fmt.Sprintf(
		"%-26s%s\n"+
			"Symbol Length:            %d (bit)\n"+
			"Nonzero Symbols:          %d\n"+
			"Data Size:                %d (# symbol)\n"+
			"Expected Codeword Length: %.6f (bit)\n"+
			"Compression Ratio:        %.6f\n"+
			"Execution Time:           %.6f (second)\n",
		"Coder:", r.Label, r.Stride, r.NonzeroSymbols, r.Occurrences,
		r.ExpectedCodewordLength, r.CompressionRatio, r.ExecutionTime)
}
