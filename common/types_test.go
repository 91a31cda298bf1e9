package common

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestSamplerDefaults(t *testing.T) {
	s := SamplerStagingData{AddressModeU: wgpu.AddressModeClampToEdge, LodMinClamp: 2}.WithDefaults()

	assert.Equal(t, wgpu.AddressModeClampToEdge, s.AddressModeU)
	assert.Equal(t, wgpu.FilterModeLinear, s.MagFilter)
	assert.Equal(t, wgpu.FilterModeLinear, s.MinFilter)
	assert.Equal(t, wgpu.AddressModeRepeat, s.AddressModeW)
	assert.Equal(t, wgpu.MipmapFilterModeLinear, s.MipmapFilter)
	assert.Equal(t, float32(2), s.LodMinClamp)
	assert.Equal(t, float32(32), s.LodMaxClamp)
	assert.Equal(t, uint16(1), s.MaxAnisotropy)
}
