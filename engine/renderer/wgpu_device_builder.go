package renderer

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// WGPUDeviceBuilderOption is a function that configures a device during construction.
type WGPUDeviceBuilderOption func(*wgpuDevice)

// WithMSAA is an option builder that sets the sample count of the main render pass.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - WGPUDeviceBuilderOption: a function that applies the MSAA option
func WithMSAA(count MSAASampleCount) WGPUDeviceBuilderOption {
	return func(d *wgpuDevice) {
		d.sampleCount = count
	}
}

// WithPresentMode is an option builder that sets the initial present mode.
//
// Parameters:
//   - mode: the present mode
//
// Returns:
//   - WGPUDeviceBuilderOption: a function that applies the present mode option
func WithPresentMode(mode PresentMode) WGPUDeviceBuilderOption {
	return func(d *wgpuDevice) {
		if mode == PresentModeUncapped {
			d.presentMode = wgpu.PresentModeImmediate
		} else {
			d.presentMode = wgpu.PresentModeFifo
		}
	}
}

// WithForceSoftwareRenderer is an option builder that requests the fallback (CPU) adapter.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - WGPUDeviceBuilderOption: a function that applies the adapter option
func WithForceSoftwareRenderer(force bool) WGPUDeviceBuilderOption {
	return func(d *wgpuDevice) {
		d.forceFallback = force
	}
}

// WithRenderState is an option builder that sets the fixed-function state every compiled
// program uses.
//
// Parameters:
//   - rs: the render state
//
// Returns:
//   - WGPUDeviceBuilderOption: a function that applies the render state option
func WithRenderState(rs pipeline.RenderState) WGPUDeviceBuilderOption {
	return func(d *wgpuDevice) {
		d.renderState = rs
	}
}

// WithClearColor is an option builder that sets the color the main pass clears to.
//
// Parameters:
//   - rgba: the clear color
//
// Returns:
//   - WGPUDeviceBuilderOption: a function that applies the clear color option
func WithClearColor(rgba [4]float64) WGPUDeviceBuilderOption {
	return func(d *wgpuDevice) {
		d.clearColor = wgpu.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	}
}
