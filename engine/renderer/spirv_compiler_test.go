package renderer

import (
	"encoding/binary"
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSPIRVCompilerBuildsEveryVariant(t *testing.T) {
	c := NewSPIRVCompiler()
	vp, err := shader.NewVariantProgram(c, shader.WithLabel("unlit"))
	if err != nil {
		t.Skipf("WGSL frontend cannot compile the variant templates: %v", err)
	}
	defer vp.Teardown()

	progs := c.Programs()
	require.Len(t, progs, shader.VariantCount)
	for _, p := range progs {
		assert.Equal(t, SPIRVMagic, binary.LittleEndian.Uint32(p.VertexSPIRV()))
		assert.Equal(t, SPIRVMagic, binary.LittleEndian.Uint32(p.FragmentSPIRV()))
	}

	textured := vp.Variant(material.FeatureDiffuseTexture)
	assert.NotEqual(t, shader.NoLocation, textured.UniformLocation(shader.UniformTexture))
	assert.Equal(t, int32(1), textured.AttribLocation(model.AttribTexCoord))

	mesh := model.NewMesh(model.WithPositions([]float32{0, 0, 0}), model.WithIndices([]uint32{0, 0, 0}))
	err = vp.Render(common.Identity4(), shader.NewRenderData(mesh), material.NewMaterial())
	assert.ErrorIs(t, err, ErrHeadless)
}

func TestSPIRVCompilerPreprocessError(t *testing.T) {
	c := NewSPIRVCompiler()
	_, err := c.CompileProgram("bad", []string{"#endif\n"}, nil)
	assert.ErrorIs(t, err, shader.ErrPreprocess)
	assert.Empty(t, c.Programs())
}

func TestSPIRVCompilerDrawIsHeadless(t *testing.T) {
	assert.ErrorIs(t, NewSPIRVCompiler().DrawIndexed(nil), ErrHeadless)
}
