package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderStateBuilderOption is a functional option used to configure a RenderState during construction.
type RenderStateBuilderOption func(*renderState)

// WithDepthTestEnabled sets whether fragments are depth tested.
//
// Parameters:
//   - enabled: true to depth test
//
// Returns:
//   - RenderStateBuilderOption: a function that sets the depth test state
func WithDepthTestEnabled(enabled bool) RenderStateBuilderOption {
	return func(s *renderState) {
		s.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled sets whether fragments write depth.
//
// Parameters:
//   - enabled: true to write depth
//
// Returns:
//   - RenderStateBuilderOption: a function that sets the depth write state
func WithDepthWriteEnabled(enabled bool) RenderStateBuilderOption {
	return func(s *renderState) {
		s.depthWriteEnabled = enabled
	}
}

// WithBlendEnabled sets whether color blending is applied, as needed by materials with
// opacity below 1.
//
// Parameters:
//   - enabled: true to blend
//
// Returns:
//   - RenderStateBuilderOption: a function that sets the blend state
func WithBlendEnabled(enabled bool) RenderStateBuilderOption {
	return func(s *renderState) {
		s.blendEnabled = enabled
	}
}

// WithCullMode sets the face culling mode.
//
// Parameters:
//   - mode: the cull mode (e.g. wgpu.CullModeBack)
//
// Returns:
//   - RenderStateBuilderOption: a function that sets the cull mode
func WithCullMode(mode wgpu.CullMode) RenderStateBuilderOption {
	return func(s *renderState) {
		s.cullMode = mode
	}
}

// WithFrontFace sets the front face winding order.
//
// Parameters:
//   - frontFace: the winding order (e.g. wgpu.FrontFaceCW)
//
// Returns:
//   - RenderStateBuilderOption: a function that sets the front face
func WithFrontFace(frontFace wgpu.FrontFace) RenderStateBuilderOption {
	return func(s *renderState) {
		s.frontFace = frontFace
	}
}

// WithBlendState replaces the blend equation used when blending is enabled.
//
// Parameters:
//   - blendState: the blend state
//
// Returns:
//   - RenderStateBuilderOption: a function that sets the blend equation
func WithBlendState(blendState *wgpu.BlendState) RenderStateBuilderOption {
	return func(s *renderState) {
		s.blendState = blendState
	}
}
