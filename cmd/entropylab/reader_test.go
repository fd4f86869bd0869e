package main

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputFromMemMapFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/sample.bin", []byte{1, 2, 3}, 0o644))

	buf, err := readInput(fs, "/data/sample.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, buf)
}

func TestReadInputMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := readInput(fs, "/data/missing.bin")
	assert.Error(t, err)
}
