package main

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSample(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	data := bytes.Repeat([]byte{0x01, 0x02, 0x03, 0x01, 0x01, 0x04}, 64)
	require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
}

func TestRunStaticExperiment(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSample(t, fs, "/in.bin")

	var out bytes.Buffer
	code := run([]string{"--input=/in.bin", "--experiment=static8"}, fs, &out)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Static Huffman")
}

func TestRunAdaptiveExperiment(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSample(t, fs, "/in.bin")

	var out bytes.Buffer
	code := run([]string{"--input=/in.bin", "--experiment=adaptive", "--stride=8"}, fs, &out)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Adaptive Huffman")
}

func TestRunArithmeticExperiment(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSample(t, fs, "/in.bin")

	var out bytes.Buffer
	code := run([]string{
		"--input=/in.bin", "--experiment=arithmetic", "--stride=8",
		"--order=1", "--method=C", "--exclusion=true",
	}, fs, &out)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "PPMC")
}

func TestRunMissingInput(t *testing.T) {
	fs := afero.NewMemMapFs()

	var out bytes.Buffer
	code := run([]string{"--experiment=static8"}, fs, &out)

	assert.NotEqual(t, 0, code)
}

func TestRunUnknownExperiment(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSample(t, fs, "/in.bin")

	var out bytes.Buffer
	code := run([]string{"--input=/in.bin", "--experiment=bogus"}, fs, &out)

	assert.NotEqual(t, 0, code)
}
