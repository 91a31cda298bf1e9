package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// bindGroup is the GPU bind group built from the resources below, or nil until created.
	bindGroup *wgpu.BindGroup
	// buffers holds uniform buffers keyed by binding index.
	buffers map[int]*wgpu.Buffer
	// textureViews and samplers are borrowed from textures and never released here.
	textureViews map[int]*wgpu.TextureView
	samplers     map[int]*wgpu.Sampler

	// vertexBuffers holds one buffer per vertex input slot of a mesh.
	vertexBuffers map[uint32]*wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	indexCount    int
	// version is the vertex buffer version the mesh buffers were uploaded from.
	version uint64
}

// BindGroupProvider holds the GPU resources of one bind group or one uploaded mesh.
//
// Usage pattern:
//  1. The device creates a provider per draw for each bind group of the current program
//  2. Uniform buffers are created and written, texture views and samplers attached
//  3. The device builds the bind group and sets it on the render pass
//  4. After the frame is submitted the provider is released
//
// Mesh providers hold per-slot vertex buffers and the index buffer instead and live until
// the mesh's vertex buffer version changes.
type BindGroupProvider interface {
	// Release releases the buffers and bind group owned by this provider. Borrowed texture
	// views and samplers are left alone.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group, or nil.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// Buffer returns the uniform buffer of a binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the texture view of a binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.TextureView: the view or nil
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler of a binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler or nil
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the vertex buffer bound to a vertex input slot, or nil.
	//
	// Parameters:
	//   - slot: the vertex buffer slot
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	VertexBuffer(slot uint32) *wgpu.Buffer

	// IndexBuffer returns the index buffer, or nil.
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices in the index buffer.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Version returns the source version the mesh buffers were uploaded from.
	//
	// Returns:
	//   - uint64: the version
	Version() uint64

	SetBindGroup(bg *wgpu.BindGroup)
	SetBuffer(binding int, buf *wgpu.Buffer)
	SetTextureView(binding int, tv *wgpu.TextureView)
	SetSampler(binding int, s *wgpu.Sampler)
	SetVertexBuffer(slot uint32, buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer, count int)
	SetVersion(v uint64)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: the debug label
//   - options: variadic list of BindGroupProviderOption functions
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:         label,
		buffers:       make(map[int]*wgpu.Buffer),
		textureViews:  make(map[int]*wgpu.TextureView),
		samplers:      make(map[int]*wgpu.Sampler),
		vertexBuffers: make(map[uint32]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) VertexBuffer(slot uint32) *wgpu.Buffer {
	return p.vertexBuffers[slot]
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) Version() uint64 {
	return p.version
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetVertexBuffer(slot uint32, buf *wgpu.Buffer) {
	p.vertexBuffers[slot] = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer, count int) {
	p.indexBuffer = buf
	p.indexCount = count
}

func (p *bindGroupProvider) SetVersion(v uint64) {
	p.version = v
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for k, b := range p.buffers {
		if b != nil {
			b.Release()
		}
		delete(p.buffers, k)
	}
	for k, b := range p.vertexBuffers {
		if b != nil {
			b.Release()
		}
		delete(p.vertexBuffers, k)
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
	clear(p.textureViews)
	clear(p.samplers)
}
