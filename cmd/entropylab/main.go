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

// Command entropylab drives the experiments named in the laboratory's
// external interface: several static and adaptive Huffman variants,
// extended-Huffman with a configurable extension factor, and arithmetic
// coding under a fixed or PPM probability model. It exists to make the
// entropy package's coders runnable against a real file from the shell;
// all of the actual measurement happens in entropy and bitstream.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	entropylab "github.com/mlaurent/entropylab"
	"github.com/mlaurent/entropylab/bitstream"
	"github.com/mlaurent/entropylab/entropy"
)

// readSymbols decodes buf as stride-bit symbols, in order.
func readSymbols(buf []byte, stride uint) ([]entropylab.Symbol, error) {
	ss, err := bitstream.NewSymbolStream(buf, stride)
	if err != nil {
		return nil, err
	}

	var symbols []entropylab.Symbol
	for !ss.Empty() {
		symbols = append(symbols, ss.Next())
	}
	return symbols, nil
}

const (
	_APP_HEADER = "entropylab (c) Frederic Langlet"

	_ARG_INPUT      = "--input="
	_ARG_EXPERIMENT = "--experiment="
	_ARG_STRIDE     = "--stride="
	_ARG_K          = "--k="
	_ARG_ORDER      = "--order="
	_ARG_METHOD     = "--method="
	_ARG_EXCLUSION  = "--exclusion="
	_ARG_WORDLEN    = "--wordlen="
	_ARG_WINDOW_MB  = "--window-mb="
	_ARG_JOBS       = "--jobs="
	_ARG_VERBOSE    = "--verbose="
)

// config holds every flag the driver understands, with the defaults
// spec.md's scenarios exercise.
type config struct {
	input      string
	experiment string
	stride     uint
	k          uint64
	order      int
	method     entropy.EscapeMethod
	exclusion  bool
	wordLen    uint
	windowMB   uint64
	jobs       int
	verbose    bool
}

func defaultConfig() config {
	return config{
		experiment: "static8",
		stride:     8,
		k:          1,
		order:      2,
		method:     entropy.PPMEscapeC,
		wordLen:    32,
		windowMB:   1,
		jobs:       1,
	}
}

// parseArgs fills a config from argv (os.Args[1:]-style), kanzi's own
// manual --flag=value convention with no flag-parsing library, matching
// app/Kanzi.go.
func parseArgs(argv []string) (config, error) {
	cfg := defaultConfig()

	for _, a := range argv {
		switch {
		case strings.HasPrefix(a, _ARG_INPUT):
			cfg.input = strings.TrimPrefix(a, _ARG_INPUT)
		case strings.HasPrefix(a, _ARG_EXPERIMENT):
			cfg.experiment = strings.TrimPrefix(a, _ARG_EXPERIMENT)
		case strings.HasPrefix(a, _ARG_STRIDE):
			v, err := strconv.ParseUint(strings.TrimPrefix(a, _ARG_STRIDE), 10, 32)
			if err != nil {
				return cfg, fmt.Errorf("entropylab: invalid %s: %w", a, err)
			}
			cfg.stride = uint(v)
		case strings.HasPrefix(a, _ARG_K):
			v, err := strconv.ParseUint(strings.TrimPrefix(a, _ARG_K), 10, 64)
			if err != nil {
				return cfg, fmt.Errorf("entropylab: invalid %s: %w", a, err)
			}
			cfg.k = v
		case strings.HasPrefix(a, _ARG_ORDER):
			v, err := strconv.Atoi(strings.TrimPrefix(a, _ARG_ORDER))
			if err != nil {
				return cfg, fmt.Errorf("entropylab: invalid %s: %w", a, err)
			}
			cfg.order = v
		case strings.HasPrefix(a, _ARG_METHOD):
			m, err := parseMethod(strings.TrimPrefix(a, _ARG_METHOD))
			if err != nil {
				return cfg, err
			}
			cfg.method = m
		case strings.HasPrefix(a, _ARG_EXCLUSION):
			cfg.exclusion = strings.TrimPrefix(a, _ARG_EXCLUSION) == "true"
		case strings.HasPrefix(a, _ARG_WORDLEN):
			v, err := strconv.ParseUint(strings.TrimPrefix(a, _ARG_WORDLEN), 10, 32)
			if err != nil {
				return cfg, fmt.Errorf("entropylab: invalid %s: %w", a, err)
			}
			cfg.wordLen = uint(v)
		case strings.HasPrefix(a, _ARG_WINDOW_MB):
			v, err := strconv.ParseUint(strings.TrimPrefix(a, _ARG_WINDOW_MB), 10, 64)
			if err != nil {
				return cfg, fmt.Errorf("entropylab: invalid %s: %w", a, err)
			}
			cfg.windowMB = v
		case strings.HasPrefix(a, _ARG_JOBS):
			v, err := strconv.Atoi(strings.TrimPrefix(a, _ARG_JOBS))
			if err != nil {
				return cfg, fmt.Errorf("entropylab: invalid %s: %w", a, err)
			}
			cfg.jobs = v
		case strings.HasPrefix(a, _ARG_VERBOSE):
			cfg.verbose = strings.TrimPrefix(a, _ARG_VERBOSE) == "true"
		case a == "-h" || a == "--help":
			printUsage()
			os.Exit(0)
		}
	}

	return cfg, nil
}

func parseMethod(s string) (entropy.EscapeMethod, error) {
	switch strings.ToUpper(s) {
	case "A", "PPMA":
		return entropy.PPMEscapeA, nil
	case "B", "PPMB":
		return entropy.PPMEscapeB, nil
	case "C", "PPMC":
		return entropy.PPMEscapeC, nil
	default:
		return 0, fmt.Errorf("entropylab: unknown PPM method %q", s)
	}
}

func printUsage() {
	fmt.Println(_APP_HEADER)
	fmt.Println("Usage: entropylab --input=<file> --experiment=<name> [options]")
	fmt.Println("Experiments: static8, static32, window, widthsweep, adaptive, extended, arithmetic")
	fmt.Println("Options: --stride= --k= --order= --method=A|B|C --exclusion=true|false")
	fmt.Println("         --wordlen= --window-mb= --jobs= --verbose=true|false")
}

func main() {
	os.Exit(run(os.Args[1:], afero.NewOsFs(), os.Stdout))
}

// run is main's testable core: every dependency on the outside world
// (argv, the filesystem, stdout) is passed in, mirroring how kanzi's own
// app package keeps Kanzi.go's body free of bare os.* calls wherever a
// test wants to intercept them.
func run(argv []string, fs afero.Fs, out io.Writer) int {
	cfg, err := parseArgs(argv)
	if err != nil {
		fmt.Fprintln(out, err)
		return entropylab.ErrUnknownModeFlag
	}

	if cfg.input == "" {
		fmt.Fprintln(out, "entropylab: --input is required")
		return entropylab.ErrMissingInput
	}

	buf, err := readInput(fs, cfg.input)
	if err != nil {
		fmt.Fprintln(out, err)
		return entropylab.ErrReadFile
	}

	printer := NewInfoPrinter(out, cfg.verbose)
	printer.ProcessEvent(entropylab.NewEvent(entropylab.EvtExperimentStart, cfg.experiment, 0, uint64(len(buf))*8))

	report, err := runExperiment(cfg, buf, printer)
	if err != nil {
		fmt.Fprintln(out, err)
		return errCodeFor(cfg)
	}

	printer.ProcessEvent(entropylab.NewEventFromString(entropylab.EvtExperimentEnd, cfg.experiment, report.String()))
	fmt.Fprint(out, report.String())

	if cfg.verbose {
		dumpVerbose(out, "report", report)
	}

	return 0
}

func errCodeFor(cfg config) int {
	switch cfg.experiment {
	case "adaptive", "extended", "static8", "static32", "window", "widthsweep":
		if cfg.stride < 1 || cfg.stride > entropylab.MaxSymbolWidth {
			return entropylab.ErrInvalidStride
		}
	case "arithmetic":
		return entropylab.ErrCreateCoder
	}
	return entropylab.ErrUnknownModeFlag
}

// runExperiment dispatches on cfg.experiment, building and running the
// appropriate coder(s) and returning their Report.
func runExperiment(cfg config, buf []byte, printer *InfoPrinter) (entropy.Report, error) {
	switch cfg.experiment {
	case "static8":
		return runStatic(buf, 8, cfg.jobs)
	case "static32":
		return runStatic(buf, 32, cfg.jobs)
	case "window":
		return runWindow(buf, cfg.stride, cfg.windowMB, printer)
	case "widthsweep":
		return runWidthSweep(buf, printer)
	case "adaptive":
		return runAdaptive(buf, cfg.stride)
	case "extended":
		return runExtended(buf, cfg.stride, cfg.k, cfg.jobs)
	case "arithmetic":
		return runArithmetic(buf, cfg.stride, cfg.order, cfg.method, cfg.exclusion, cfg.wordLen)
	default:
		return entropy.Report{}, fmt.Errorf("entropylab: unknown experiment %q", cfg.experiment)
	}
}

func runStatic(buf []byte, stride uint, jobs int) (entropy.Report, error) {
	var (
		h   *entropy.Huffman
		err error
	)
	if jobs > 1 {
		h, err = entropy.NewHuffmanParallel(buf, stride, jobs)
	} else {
		h, err = entropy.NewHuffman(buf, stride)
	}
	if err != nil {
		return entropy.Report{}, err
	}
	return h.Report(), nil
}

// runWindow re-runs static Huffman independently over each windowMB
// megabyte slice of buf, reporting progress per window and returning the
// report for the final window (matching spec's "windowed per N
// megabytes" experiment, each window measured as its own static coder
// run rather than a running accumulation).
func runWindow(buf []byte, stride uint, windowMB uint64, printer *InfoPrinter) (entropy.Report, error) {
	windowBytes := windowMB * 1024 * 1024
	if windowBytes == 0 || windowBytes > uint64(len(buf)) {
		windowBytes = uint64(len(buf))
	}

	var last entropy.Report
	var processed uint64

	for start := uint64(0); start < uint64(len(buf)); start += windowBytes {
		end := start + windowBytes
		if end > uint64(len(buf)) {
			end = uint64(len(buf))
		}

		h, err := entropy.NewHuffman(buf[start:end], stride)
		if err != nil {
			return entropy.Report{}, err
		}
		last = h.Report()
		processed += end - start

		printer.ProcessEvent(entropylab.NewEvent(entropylab.EvtProgress, "window", processed*8, uint64(len(buf))*8))
	}

	return last, nil
}

// runWidthSweep runs static Huffman once per stride from 1 to 16 bits
// and returns the report with the highest compression ratio (the
// narrowest such width on a tie), printing every width's report as
// progress along the way.
func runWidthSweep(buf []byte, printer *InfoPrinter) (entropy.Report, error) {
	var best entropy.Report
	for stride := uint(1); stride <= 16; stride++ {
		h, err := entropy.NewHuffman(buf, stride)
		if err != nil {
			return entropy.Report{}, err
		}
		r := h.Report()
		printer.ProcessEvent(entropylab.NewEventFromString(entropylab.EvtProgress, "widthsweep", r.String()))

		if stride == 1 || r.CompressionRatio > best.CompressionRatio {
			best = r
		}
	}
	return best, nil
}

func runAdaptive(buf []byte, stride uint) (entropy.Report, error) {
	a, err := entropy.NewAdaptiveHuffman(stride)
	if err != nil {
		return entropy.Report{}, err
	}
	if err := a.Process(buf); err != nil {
		return entropy.Report{}, err
	}
	return a.Report(), nil
}

func runExtended(buf []byte, stride uint, k uint64, jobs int) (entropy.Report, error) {
	var (
		e   *entropy.ExtendedHuffman
		err error
	)
	if jobs > 1 {
		e, err = entropy.NewExtendedHuffmanParallel(buf, stride, k, jobs)
	} else {
		e, err = entropy.NewExtendedHuffman(buf, stride, k)
	}
	if err != nil {
		return entropy.Report{}, err
	}
	return e.Report(), nil
}

func runArithmetic(buf []byte, stride uint, order int, method entropy.EscapeMethod, exclusion bool, wordLen uint) (entropy.Report, error) {
	fixedCoder, err := entropy.NewArithmeticCoder(wordLen)
	if err != nil {
		return entropy.Report{}, err
	}

	freq, err := entropy.CountFrequencyParallel(buf, stride, 1)
	if err != nil {
		return entropy.Report{}, err
	}
	model := entropy.NewFixedProbabilityModel(freq)

	symbols, err := readSymbols(buf, stride)
	if err != nil {
		return entropy.Report{}, err
	}
	entropy.EncodeWithFixedModel(fixedCoder, model, symbols)

	nsymbols := uint64(1) << stride

	sample := buf
	if len(sample) > 4096 {
		sample = sample[:4096]
	}

	ppm, err := entropy.NewPPMModelSized(order, method, exclusion, nsymbols, sample, stride)
	if err != nil {
		return entropy.Report{}, err
	}

	ppmCoder, err := entropy.NewArithmeticCoder(wordLen)
	if err != nil {
		return entropy.Report{}, err
	}
	if err := ppm.RunWithCoder(ppmCoder, buf, stride); err != nil {
		return entropy.Report{}, err
	}

	report := ppm.Report()
	report.Stride = stride
	return report, nil
}
