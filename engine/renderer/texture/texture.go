// Package texture wraps GPU texture resources together with the binding target they were
// created for.
package texture

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Target identifies how a texture is sampled in a shader.
type Target int

const (
	// Target2D is a plain two-dimensional texture.
	Target2D Target = iota

	// TargetCube is a six-faced cube map.
	TargetCube

	// TargetExternal is an externally produced image (video frames, camera streams).
	TargetExternal
)

// String returns the name of the target.
func (t Target) String() string {
	switch t {
	case Target2D:
		return "2d"
	case TargetCube:
		return "cube"
	case TargetExternal:
		return "external"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// texture is the implementation of the Texture interface.
type texture struct {
	target   Target
	width    uint32
	height   uint32
	gpu      *wgpu.Texture
	view     *wgpu.TextureView
	sampler  *wgpu.Sampler
	released bool
}

// Texture defines the interface for a sampled texture bound by a shader program.
type Texture interface {
	// Target retrieves the binding target of the texture.
	//
	// Returns:
	//   - Target: the texture target
	Target() Target

	// Size retrieves the texel dimensions of the texture.
	//
	// Returns:
	//   - uint32: width in texels
	//   - uint32: height in texels
	Size() (uint32, uint32)

	// View retrieves the GPU texture view, or nil for a texture with no GPU backing.
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view
	View() *wgpu.TextureView

	// Sampler retrieves the GPU sampler, or nil for a texture with no GPU backing.
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler
	Sampler() *wgpu.Sampler

	// Release frees the GPU resources owned by the texture. Safe to call more than once.
	Release()
}

var _ Texture = &texture{}

// NewTexture creates a new Texture with the given target, configured with the provided options.
//
// Parameters:
//   - target: the binding target of the texture
//   - options: variadic list of TextureBuilderOption functions
//
// Returns:
//   - Texture: a new Texture instance
func NewTexture(target Target, options ...TextureBuilderOption) Texture {
	t := &texture{target: target}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *texture) Target() Target {
	return t.target
}

func (t *texture) Size() (uint32, uint32) {
	return t.width, t.height
}

func (t *texture) View() *wgpu.TextureView {
	return t.view
}

func (t *texture) Sampler() *wgpu.Sampler {
	return t.sampler
}

func (t *texture) Release() {
	if t.released {
		return
	}
	t.released = true
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.gpu != nil {
		t.gpu.Release()
		t.gpu = nil
	}
}
