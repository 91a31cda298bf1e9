package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackFloats(t *testing.T) {
	b := packFloats(1, -2.5)
	require.Len(t, b, 8)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(b[0:])))
	assert.Equal(t, float32(-2.5), math.Float32frombits(binary.LittleEndian.Uint32(b[4:])))
	assert.Empty(t, packFloats())
}

func TestUniformBufferSize(t *testing.T) {
	cases := map[uint64]uint64{0: 16, 4: 16, 12: 16, 16: 16, 17: 32, 64: 64, 144: 144, 145: 160}
	for in, want := range cases {
		assert.Equal(t, want, uniformBufferSize(in), "size %d", in)
	}
}

func TestPadTo(t *testing.T) {
	assert.Equal(t, []byte{1, 2, 0, 0}, padTo([]byte{1, 2}, 4))
	assert.Equal(t, []byte{1, 2}, padTo([]byte{1, 2, 3}, 2))
	assert.Equal(t, make([]byte, 16), padTo(nil, 16))
}

func TestChannelBytes(t *testing.T) {
	f := model.Channel{Type: model.ChannelTypeFloat32, Stride: 1, Floats: []float32{1}}
	assert.Equal(t, packFloats(1), channelBytes(f))

	i := model.Channel{Type: model.ChannelTypeInt32, Stride: 2, Ints: []int32{1, -1}}
	b := channelBytes(i)
	require.Len(t, b, 8)
	assert.Equal(t, uint32(0xffffffff), binary.LittleEndian.Uint32(b[4:]))
}

func TestCheckAttribute(t *testing.T) {
	pos := shader.Attribute{Name: model.AttribPosition, Components: 3}
	assert.NoError(t, checkAttribute(pos, model.Channel{Stride: 3}))
	assert.Error(t, checkAttribute(pos, model.Channel{Stride: 2}))
	assert.Error(t, checkAttribute(pos, model.Channel{Stride: 3, Type: model.ChannelTypeInt32}))

	ids := shader.Attribute{Name: model.AttribBoneIndices, Components: 4, Integer: true}
	assert.NoError(t, checkAttribute(ids, model.Channel{Stride: 4, Type: model.ChannelTypeInt32}))
}

func TestParsePresentMode(t *testing.T) {
	assert.Equal(t, PresentModeUncapped, ParsePresentMode("uncapped"))
	assert.Equal(t, PresentModeVSync, ParsePresentMode("vsync"))
	assert.Equal(t, PresentModeVSync, ParsePresentMode("bogus"))
}

func TestSamplerDescriptorDefaults(t *testing.T) {
	desc := samplerDescriptor("Checker", common.SamplerStagingData{
		AddressModeV:  wgpu.AddressModeClampToEdge,
		LodMaxClamp:   4,
		MaxAnisotropy: 8,
	})

	assert.Equal(t, "Checker", desc.Label)
	assert.Equal(t, wgpu.AddressModeRepeat, desc.AddressModeU)
	assert.Equal(t, wgpu.AddressModeClampToEdge, desc.AddressModeV)
	assert.Equal(t, wgpu.AddressModeRepeat, desc.AddressModeW)
	assert.Equal(t, wgpu.FilterModeLinear, desc.MagFilter)
	assert.Equal(t, wgpu.FilterModeLinear, desc.MinFilter)
	assert.Equal(t, wgpu.MipmapFilterModeLinear, desc.MipmapFilter)
	assert.Equal(t, float32(0), desc.LodMinClamp)
	assert.Equal(t, float32(4), desc.LodMaxClamp)
	assert.Equal(t, uint16(8), desc.MaxAnisotropy)

	zero := samplerDescriptor("", common.SamplerStagingData{})
	assert.Equal(t, float32(32), zero.LodMaxClamp)
	assert.Equal(t, uint16(1), zero.MaxAnisotropy)
}
