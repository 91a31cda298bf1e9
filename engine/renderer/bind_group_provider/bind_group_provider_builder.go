package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a function that configures a provider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBuffer is an option builder that attaches a uniform buffer to a binding.
//
// Parameters:
//   - binding: the binding index
//   - buf: the buffer, owned by the provider from now on
//
// Returns:
//   - BindGroupProviderOption: a function that applies the buffer option
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers[binding] = buf
	}
}

// WithVersion is an option builder that records the source version of mesh buffers.
//
// Parameters:
//   - v: the version
//
// Returns:
//   - BindGroupProviderOption: a function that applies the version option
func WithVersion(v uint64) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.version = v
	}
}
