// Package renderer implements the shader.Device collaborator on top of WebGPU, plus a
// headless SPIR-V compiler used for offline variant validation.
package renderer

import "errors"

var (
	// ErrSurfaceNotConfigured is returned when programs are compiled or frames begun before
	// ConfigureSurface.
	ErrSurfaceNotConfigured = errors.New("surface not configured")

	// ErrNoFrame is returned by DrawIndexed outside BeginFrame/EndFrame.
	ErrNoFrame = errors.New("no frame in progress")

	// ErrNoProgram is returned by DrawIndexed before UseProgram.
	ErrNoProgram = errors.New("no program in use")

	// ErrMissingAttribute is returned when a mesh lacks a channel the program reads.
	ErrMissingAttribute = errors.New("mesh is missing a vertex channel")

	// ErrUnboundTexture is returned when a program samples a texture that was never bound.
	ErrUnboundTexture = errors.New("texture binding has no texture")

	// ErrHeadless is returned by draw calls on devices without a render target.
	ErrHeadless = errors.New("device has no render target")
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately and may tear.
	PresentModeUncapped
)

// MSAASampleCount is the number of samples per pixel of the main render pass. WebGPU
// guarantees 1 and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ParsePresentMode maps a config name to a PresentMode. Unknown names select VSync.
//
// Parameters:
//   - name: "vsync" or "uncapped"
//
// Returns:
//   - PresentMode: the present mode
func ParsePresentMode(name string) PresentMode {
	if name == "uncapped" {
		return PresentModeUncapped
	}
	return PresentModeVSync
}
