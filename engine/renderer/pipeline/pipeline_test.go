package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewRenderStateDefaults(t *testing.T) {
	s := NewRenderState()

	assert.True(t, s.DepthTestEnabled())
	assert.True(t, s.DepthWriteEnabled())
	assert.False(t, s.BlendEnabled())

	prim := s.Primitive()
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, prim.Topology)
	assert.Equal(t, wgpu.FrontFaceCCW, prim.FrontFace)
	assert.Equal(t, wgpu.CullModeNone, prim.CullMode)

	target := s.ColorTarget(wgpu.TextureFormatBGRA8Unorm)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, target.Format)
	assert.Nil(t, target.Blend)

	ds := s.DepthStencil()
	assert.Equal(t, DepthFormat, ds.Format)
	assert.Equal(t, wgpu.CompareFunctionLess, ds.DepthCompare)
}

func TestRenderStateOptions(t *testing.T) {
	s := NewRenderState(
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeBack),
		WithFrontFace(wgpu.FrontFaceCW),
	)

	assert.Equal(t, wgpu.CompareFunctionAlways, s.DepthStencil().DepthCompare)
	assert.False(t, s.DepthStencil().DepthWriteEnabled)
	assert.NotNil(t, s.ColorTarget(wgpu.TextureFormatRGBA8Unorm).Blend)
	assert.Equal(t, wgpu.CullModeBack, s.Primitive().CullMode)
	assert.Equal(t, wgpu.FrontFaceCW, s.Primitive().FrontFace)
}
