package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProgram struct {
	renderer.SPIRVProgram
	vert, frag []byte
}

func (p stubProgram) VertexSPIRV() []byte   { return p.vert }
func (p stubProgram) FragmentSPIRV() []byte { return p.frag }

func TestWriteModules(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spv")
	programs := []renderer.SPIRVProgram{
		stubProgram{vert: []byte{1}, frag: []byte{2}},
		stubProgram{vert: []byte{3}, frag: []byte{4}},
	}
	require.NoError(t, writeModules(dir, "unlit", programs))

	got, err := os.ReadFile(filepath.Join(dir, "unlit_1.frag.spv"))
	require.NoError(t, err)
	assert.Equal(t, []byte{4}, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestWriteModulesWithoutDir(t *testing.T) {
	assert.NoError(t, writeModules("", "unlit", nil))
}

func TestRunMissingTemplate(t *testing.T) {
	err := run("unlit", filepath.Join(t.TempDir(), "missing.wgsl"), "", "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
