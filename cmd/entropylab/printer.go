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
	"io"

	"github.com/kr/pretty"

	entropylab "github.com/mlaurent/entropylab"
)

// InfoPrinter is the driver's default entropylab.Listener: it writes one
// line per event to out, mirroring kanzi's own InfoPrinter.go. With
// verbose set, it additionally dumps every event's raw field values via
// kr/pretty instead of a hand-rolled %#v, so arbitrarily nested report
// or event state stays readable without this package maintaining its
// own formatter.
type InfoPrinter struct {
	out     io.Writer
	verbose bool
}

// NewInfoPrinter creates an InfoPrinter writing to out.
func NewInfoPrinter(out io.Writer, verbose bool) *InfoPrinter {
	return &InfoPrinter{out: out, verbose: verbose}
}

// ProcessEvent implements entropylab.Listener.
func (p *InfoPrinter) ProcessEvent(evt *entropylab.Event) {
	fmt.Fprintln(p.out, evt.String())

	if p.verbose {
		fmt.Fprintf(p.out, "%# v\n", pretty.Formatter(evt))
	}
}

// dumpVerbose prints a pretty-formatted dump of any report or
// intermediate value the driver wants visible only under --verbose.
func dumpVerbose(out io.Writer, label string, v interface{}) {
	fmt.Fprintf(out, "-- %s --\n", label)
	fmt.Fprintf(out, "%# v\n", pretty.Formatter(v))
}
