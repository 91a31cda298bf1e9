// Package pipeline describes the fixed-function state every program compiled by a device
// shares: depth testing, blending, culling and primitive assembly.
package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the depth attachment format render state is built against.
const DepthFormat = wgpu.TextureFormatDepth24Plus

// renderState is the implementation of the RenderState interface.
type renderState struct {
	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// RenderState defines the fixed-function configuration a render pipeline is created with.
type RenderState interface {
	// DepthTestEnabled returns whether fragments are depth tested.
	//
	// Returns:
	//   - bool: true if depth testing is enabled
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether fragments write depth.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWriteEnabled() bool

	// BlendEnabled returns whether color blending is enabled.
	//
	// Returns:
	//   - bool: true if blending is enabled
	BlendEnabled() bool

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// Primitive builds the primitive assembly state.
	//
	// Returns:
	//   - wgpu.PrimitiveState: the primitive state
	Primitive() wgpu.PrimitiveState

	// ColorTarget builds the color target state for a surface format.
	//
	// Parameters:
	//   - format: the color attachment format
	//
	// Returns:
	//   - wgpu.ColorTargetState: the color target, with blending when enabled
	ColorTarget(format wgpu.TextureFormat) wgpu.ColorTargetState

	// DepthStencil builds the depth stencil state against DepthFormat.
	//
	// Returns:
	//   - *wgpu.DepthStencilState: the depth stencil state
	DepthStencil() *wgpu.DepthStencilState
}

var _ RenderState = &renderState{}

// NewRenderState creates render state with depth test and write on, blending off, no culling
// and counter-clockwise triangle lists, configured with the provided options.
//
// Parameters:
//   - opts: a variadic list of RenderStateBuilderOption functions
//
// Returns:
//   - RenderState: the configured render state
func NewRenderState(opts ...RenderStateBuilderOption) RenderState {
	s := &renderState{
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *renderState) DepthTestEnabled() bool {
	return s.depthTestEnabled
}

func (s *renderState) DepthWriteEnabled() bool {
	return s.depthWriteEnabled
}

func (s *renderState) BlendEnabled() bool {
	return s.blendEnabled
}

func (s *renderState) CullMode() wgpu.CullMode {
	return s.cullMode
}

func (s *renderState) Primitive() wgpu.PrimitiveState {
	return wgpu.PrimitiveState{
		Topology:  s.topology,
		FrontFace: s.frontFace,
		CullMode:  s.cullMode,
	}
}

func (s *renderState) ColorTarget(format wgpu.TextureFormat) wgpu.ColorTargetState {
	target := wgpu.ColorTargetState{
		Format:    format,
		WriteMask: s.writeMask,
	}
	if s.blendEnabled {
		target.Blend = s.blendState
	}
	return target
}

func (s *renderState) DepthStencil() *wgpu.DepthStencilState {
	compare := wgpu.CompareFunctionLess
	if !s.depthTestEnabled {
		compare = wgpu.CompareFunctionAlways
	}
	return &wgpu.DepthStencilState{
		Format:            DepthFormat,
		DepthWriteEnabled: s.depthWriteEnabled,
		DepthCompare:      compare,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
	}
}
