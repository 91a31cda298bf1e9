// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler pending GPU creation.
// Zero values fall back to linear filtering with repeat addressing.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// WithDefaults returns a copy with every zero field replaced by its default: repeat
// addressing, linear filtering, a 32 level LOD clamp and no anisotropy.
//
// Returns:
//   - SamplerStagingData: the filled configuration
func (s SamplerStagingData) WithDefaults() SamplerStagingData {
	s.AddressModeU = orDefault(s.AddressModeU, wgpu.AddressModeRepeat)
	s.AddressModeV = orDefault(s.AddressModeV, wgpu.AddressModeRepeat)
	s.AddressModeW = orDefault(s.AddressModeW, wgpu.AddressModeRepeat)
	s.MagFilter = orDefault(s.MagFilter, wgpu.FilterModeLinear)
	s.MinFilter = orDefault(s.MinFilter, wgpu.FilterModeLinear)
	s.MipmapFilter = orDefault(s.MipmapFilter, wgpu.MipmapFilterModeLinear)
	s.LodMaxClamp = orDefault(s.LodMaxClamp, 32)
	s.MaxAnisotropy = orDefault(s.MaxAnisotropy, 1)
	return s
}

// orDefault returns v unless it is the zero value.
func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// Checkerboard builds a square RGBA checkerboard pattern, used as a stand-in diffuse texture
// when no decoded image is available.
//
// Parameters:
//   - size: width and height in pixels
//   - cell: edge length of one checker cell in pixels (values < 1 are treated as 1)
//   - a, b: the two RGBA colors to alternate
//
// Returns:
//   - TextureStagingData: the generated pixel data
func Checkerboard(size, cell uint32, a, b [4]uint8) TextureStagingData {
	if cell == 0 {
		cell = 1
	}
	pixels := make([]byte, 0, size*size*4)
	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {
			c := a
			if ((x/cell)+(y/cell))%2 == 1 {
				c = b
			}
			pixels = append(pixels, c[0], c[1], c[2], c[3])
		}
	}
	return TextureStagingData{Pixels: pixels, Width: size, Height: size}
}
