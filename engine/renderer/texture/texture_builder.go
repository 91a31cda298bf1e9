package texture

import "github.com/cogentcore/webgpu/wgpu"

// TextureBuilderOption is a function that configures a texture instance during construction.
type TextureBuilderOption func(*texture)

// WithSize is an option builder that records the texel dimensions of the texture.
//
// Parameters:
//   - width: width in texels
//   - height: height in texels
//
// Returns:
//   - TextureBuilderOption: a function that applies the size option to a texture
func WithSize(width, height uint32) TextureBuilderOption {
	return func(t *texture) {
		t.width = width
		t.height = height
	}
}

// WithGPUTexture is an option builder that hands ownership of the GPU texture to the Texture,
// so Release frees it.
//
// Parameters:
//   - gpu: the GPU texture
//
// Returns:
//   - TextureBuilderOption: a function that applies the GPU texture option to a texture
func WithGPUTexture(gpu *wgpu.Texture) TextureBuilderOption {
	return func(t *texture) {
		t.gpu = gpu
	}
}

// WithView is an option builder that sets the texture view bound for sampling.
//
// Parameters:
//   - view: the texture view
//
// Returns:
//   - TextureBuilderOption: a function that applies the view option to a texture
func WithView(view *wgpu.TextureView) TextureBuilderOption {
	return func(t *texture) {
		t.view = view
	}
}

// WithSampler is an option builder that sets the sampler bound alongside the view.
//
// Parameters:
//   - sampler: the sampler
//
// Returns:
//   - TextureBuilderOption: a function that applies the sampler option to a texture
func WithSampler(sampler *wgpu.Sampler) TextureBuilderOption {
	return func(t *texture) {
		t.sampler = sampler
	}
}
