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

package main

import (
	"fmt"

	"github.com/spf13/afero"
)

// readInput reads path's full contents through fs, wrapping a missing or
// unreadable file as the driver's own ErrReadFile condition instead of
// letting the afero error escape untranslated.
func readInput(fs afero.Fs, path string) ([]byte, error) {
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("entropylab: could not read input %q: %w", path, err)
	}
	return buf, nil
}
