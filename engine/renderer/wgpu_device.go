package renderer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// uniformAlign is the byte granularity uniform buffers are allocated in.
const uniformAlign = 16

// Stats is a snapshot of device counters.
type Stats struct {
	// Frames is the number of frames submitted.
	Frames uint64

	// Draws is the number of draw calls recorded in the last submitted frame.
	Draws int

	// Programs is the number of live programs.
	Programs int

	// Meshes is the number of meshes with GPU buffers.
	Meshes int
}

// wgpuProgram is one compiled render pipeline and the reflection its locations resolve from.
type wgpuProgram struct {
	id       uint32
	label    string
	refl     shader.Reflection
	attrs    []shader.Attribute
	layouts  []*wgpu.BindGroupLayout
	layout   *wgpu.PipelineLayout
	pipeline *wgpu.RenderPipeline
	uniforms map[int32][]byte
	textures map[int32]texture.Texture
	owner    *wgpuDevice
	released bool
}

var _ shader.Program = &wgpuProgram{}

func (p *wgpuProgram) ID() uint32 {
	return p.id
}

func (p *wgpuProgram) UniformLocation(name string) int32 {
	return p.refl.UniformLocation(name)
}

func (p *wgpuProgram) AttribLocation(name string) int32 {
	return p.refl.AttribLocation(name)
}

func (p *wgpuProgram) Release() {
	if p.released {
		return
	}
	p.released = true
	if p.pipeline != nil {
		p.pipeline.Release()
	}
	if p.layout != nil {
		p.layout.Release()
	}
	for _, l := range p.layouts {
		if l != nil {
			l.Release()
		}
	}
	p.uniforms = nil
	p.textures = nil
	if p.owner != nil {
		p.owner.forgetProgram(p)
	}
}

// meshEntry is the GPU copy of a mesh. Vertex buffers live in the provider keyed by slot,
// and slots maps channel names onto them.
type meshEntry struct {
	provider bind_group_provider.BindGroupProvider
	slots    map[string]uint32
	channels map[string]model.Channel
}

// wgpuDevice is the implementation of the WGPUDevice interface.
type wgpuDevice struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat        *wgpu.TextureFormat
	presentMode          wgpu.PresentMode
	sampleCount          MSAASampleCount
	forceFallback        bool
	renderState          pipeline.RenderState
	clearColor           wgpu.Color
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	frameEncoder   *wgpu.CommandEncoder
	framePass      *wgpu.RenderPassEncoder
	frameSurface   *wgpu.Texture
	frameView      *wgpu.TextureView
	frameProviders []bind_group_provider.BindGroupProvider

	nextProgramID uint32
	programs      map[uint32]*wgpuProgram
	current       *wgpuProgram
	meshes        map[model.Mesh]*meshEntry

	frames    uint64
	draws     int
	lastDraws int
}

// WGPUDevice is a shader.Device that renders to a window surface through WebGPU.
//
// Uniform and texture calls stage values on the program in use, matching the per-program
// state of a GL-style device. DrawIndexed snapshots the staged values into per-draw bind
// groups, so several draws with different values can share one frame.
//
// Every method must be called from the thread that created the device.
type WGPUDevice interface {
	shader.Device

	// ConfigureSurface (re)configures the swapchain and its MSAA and depth attachments.
	//
	// Parameters:
	//   - width: the framebuffer width in pixels
	//   - height: the framebuffer height in pixels
	//
	// Returns:
	//   - error: an error if an attachment could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode selects how frames are presented. Takes effect at the next
	// ConfigureSurface.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the next surface texture and opens the main render pass.
	//
	// Returns:
	//   - error: ErrSurfaceNotConfigured, or an acquisition error
	BeginFrame() error

	// EndFrame closes the render pass, submits the frame, and frees its per-draw bind groups.
	//
	// Returns:
	//   - error: ErrNoFrame, or a command encoding error
	EndFrame() error

	// Present displays the last submitted frame.
	Present()

	// CreateTexture uploads RGBA pixels into a sampled 2D texture with its sampler.
	//
	// Parameters:
	//   - pixels: the pixel data
	//   - sampler: the sampler configuration, zero fields take defaults
	//
	// Returns:
	//   - texture.Texture: the texture, owned by the caller
	//   - error: an error if a GPU object could not be created
	CreateTexture(pixels common.TextureStagingData, sampler common.SamplerStagingData) (texture.Texture, error)

	// ForgetMesh releases the GPU buffers uploaded for a mesh.
	//
	// Parameters:
	//   - mesh: the mesh
	ForgetMesh(mesh model.Mesh)

	// Stats retrieves the device counters.
	//
	// Returns:
	//   - Stats: the counters
	Stats() Stats

	// Release frees every GPU object owned by the device, including live programs.
	Release()
}

var _ WGPUDevice = &wgpuDevice{}

// NewWGPUDevice creates a device drawing to the given surface. The calling goroutine is
// locked to its OS thread.
//
// Parameters:
//   - surfaceDescriptor: the platform surface, usually from the window
//   - options: variadic list of WGPUDeviceBuilderOption functions
//
// Returns:
//   - WGPUDevice: the device
//   - error: an error if no adapter or device is available
func NewWGPUDevice(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...WGPUDeviceBuilderOption) (WGPUDevice, error) {
	runtime.LockOSThread()
	d := &wgpuDevice{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
		sampleCount: MSAA4x,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		programs:    make(map[uint32]*wgpuProgram),
		meshes:      make(map[model.Mesh]*meshEntry),
	}
	for _, opt := range options {
		opt(d)
	}
	if d.renderState == nil {
		d.renderState = pipeline.NewRenderState()
	}

	d.instance = wgpu.CreateInstance(nil)
	d.surface = d.instance.CreateSurface(surfaceDescriptor)

	a, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: d.forceFallback,
		CompatibleSurface:    d.surface,
	})
	if err != nil {
		d.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	d.adapter = a

	dev, err := a.RequestDevice(&wgpu.DeviceDescriptor{Label: "Main Device"})
	if err != nil {
		d.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	d.device = dev
	d.queue = dev.GetQueue()

	return d, nil
}

func (d *wgpuDevice) ConfigureSurface(width, height int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	capabilities := d.surface.GetCapabilities(d.adapter)
	if len(capabilities.Formats) == 0 {
		return errors.New("surface reports no formats")
	}
	d.surfaceFormat = &capabilities.Formats[0]

	d.surface.Configure(d.adapter, d.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *d.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: d.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	d.releaseAttachments()

	count := uint32(d.sampleCount)
	msaaEnabled := count > 1
	extent := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	var err error
	if msaaEnabled {
		d.msaaTexture, err = d.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          extent,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *d.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create msaa texture: %w", err)
		}
		if d.msaaTextureView, err = d.msaaTexture.CreateView(nil); err != nil {
			return fmt.Errorf("create msaa view: %w", err)
		}
	}

	// Depth sample count must match the color attachment.
	d.depthTexture, err = d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        pipeline.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	if d.depthTextureView, err = d.depthTexture.CreateView(nil); err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}

	// With MSAA the pass draws into the MSAA view and resolves to the swapchain view set in
	// BeginFrame. Without it the swapchain view is the attachment itself.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	d.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       d.msaaTextureView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: d.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            d.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	log.Printf("[Renderer] surface configured %dx%d, msaa %dx", width, height, count)
	return nil
}

func (d *wgpuDevice) SetPresentMode(mode PresentMode) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		d.presentMode = wgpu.PresentModeImmediate
	default:
		d.presentMode = wgpu.PresentModeFifo
	}
}

func (d *wgpuDevice) CompileProgram(label string, vertex, fragment []string) (shader.Program, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.surfaceFormat == nil {
		return nil, ErrSurfaceNotConfigured
	}

	vs, err := shader.Preprocess(vertex...)
	if err != nil {
		return nil, fmt.Errorf("vertex stage: %w", err)
	}
	fs, err := shader.Preprocess(fragment...)
	if err != nil {
		return nil, fmt.Errorf("fragment stage: %w", err)
	}
	refl := shader.Reflect(vs, wgpu.ShaderStageVertex).Merge(shader.Reflect(fs, wgpu.ShaderStageFragment))
	if refl.VertexEntry == "" || refl.FragmentEntry == "" {
		return nil, fmt.Errorf("%s: missing @vertex or @fragment entry point", label)
	}

	vsModule, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + " Vertex",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: vs},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: vertex module: %w", label, err)
	}
	defer vsModule.Release()
	fsModule, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + " Fragment",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: fs},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: fragment module: %w", label, err)
	}
	defer fsModule.Release()

	p := &wgpuProgram{
		label:    label,
		refl:     refl,
		attrs:    refl.SortedAttributes(),
		uniforms: make(map[int32][]byte),
		textures: make(map[int32]texture.Texture),
	}

	// Groups the shaders skip still need a layout, so gaps get an empty one.
	groups := refl.Groups()
	maxGroup := -1
	for g := range groups {
		maxGroup = max(maxGroup, int(g))
	}
	p.layouts = make([]*wgpu.BindGroupLayout, maxGroup+1)
	for g := range p.layouts {
		entries := groups[uint32(g)]
		layout, layoutErr := d.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%s Group %d", label, g),
			Entries: entries,
		})
		if layoutErr != nil {
			p.Release()
			return nil, fmt.Errorf("%s: bind group layout %d: %w", label, g, layoutErr)
		}
		p.layouts[g] = layout
	}

	p.layout, err = d.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label,
		BindGroupLayouts: p.layouts,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("%s: pipeline layout: %w", label, err)
	}

	// One buffer per attribute, matching how meshes store their channels.
	vertexLayouts := make([]wgpu.VertexBufferLayout, 0, len(p.attrs))
	for _, a := range p.attrs {
		vertexLayouts = append(vertexLayouts, wgpu.VertexBufferLayout{
			ArrayStride: a.Size,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{{
				Format:         a.Format,
				Offset:         0,
				ShaderLocation: a.Location,
			}},
		})
	}

	rs := d.renderState
	p.pipeline, err = d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Render Pipeline",
		Layout: p.layout,
		Vertex: wgpu.VertexState{
			Module:     vsModule,
			EntryPoint: refl.VertexEntry,
			Buffers:    vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     fsModule,
			EntryPoint: refl.FragmentEntry,
			Targets:    []wgpu.ColorTargetState{rs.ColorTarget(*d.surfaceFormat)},
		},
		Primitive: rs.Primitive(),
		Multisample: wgpu.MultisampleState{
			Count: uint32(d.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: rs.DepthStencil(),
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("%s: render pipeline: %w", label, err)
	}

	d.nextProgramID++
	p.id = d.nextProgramID
	p.owner = d
	d.programs[p.id] = p
	return p, nil
}

// forgetProgram drops a released program from the device tables.
func (d *wgpuDevice) forgetProgram(p *wgpuProgram) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.programs, p.id)
	if d.current == p {
		d.current = nil
	}
}

func (d *wgpuDevice) UseProgram(p shader.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()

	wp, ok := p.(*wgpuProgram)
	if !ok || wp.released || wp.owner != d {
		log.Printf("[Renderer] UseProgram: program is not live on this device")
		d.current = nil
		return
	}
	d.current = wp
}

func (d *wgpuDevice) UniformMatrix4(loc int32, m [16]float32) {
	d.stageUniform(loc, packFloats(m[:]...))
}

func (d *wgpuDevice) Uniform4f(loc int32, v [4]float32) {
	d.stageUniform(loc, packFloats(v[:]...))
}

func (d *wgpuDevice) Uniform3f(loc int32, v [3]float32) {
	d.stageUniform(loc, packFloats(v[:]...))
}

func (d *wgpuDevice) Uniform1f(loc int32, v float32) {
	d.stageUniform(loc, packFloats(v))
}

// BindTexture stages a texture for the binding at loc. WebGPU has no texture units, so unit
// is accepted for API compatibility and otherwise unused.
func (d *wgpuDevice) BindTexture(loc int32, unit int, tex texture.Texture) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil || loc == shader.NoLocation {
		return
	}
	d.current.textures[loc] = tex
}

// stageUniform records uniform bytes on the program in use. Unknown locations are ignored.
func (d *wgpuDevice) stageUniform(loc int32, data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil || loc == shader.NoLocation {
		return
	}
	d.current.uniforms[loc] = data
}

func (d *wgpuDevice) DrawIndexed(mesh model.Mesh) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.framePass == nil {
		return ErrNoFrame
	}
	p := d.current
	if p == nil {
		return ErrNoProgram
	}

	entry, err := d.uploadMesh(mesh)
	if err != nil {
		return err
	}

	slots := make([]uint32, len(p.attrs))
	for i, a := range p.attrs {
		slot, ok := entry.slots[a.Name]
		if !ok {
			return fmt.Errorf("%w: %q needs %s", ErrMissingAttribute, mesh.Name(), a.Name)
		}
		if err := checkAttribute(a, entry.channels[a.Name]); err != nil {
			return fmt.Errorf("%q: %w", mesh.Name(), err)
		}
		slots[i] = slot
	}

	bindGroups := make([]*wgpu.BindGroup, len(p.layouts))
	for g := range p.layouts {
		provider, err := d.buildBindGroup(p, uint32(g))
		if err != nil {
			return err
		}
		d.frameProviders = append(d.frameProviders, provider)
		bindGroups[g] = provider.BindGroup()
	}

	d.framePass.SetPipeline(p.pipeline)
	for g, bg := range bindGroups {
		d.framePass.SetBindGroup(uint32(g), bg, nil)
	}
	for i, slot := range slots {
		d.framePass.SetVertexBuffer(uint32(i), entry.provider.VertexBuffer(slot), 0, wgpu.WholeSize)
	}
	d.framePass.SetIndexBuffer(entry.provider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	d.framePass.DrawIndexed(uint32(entry.provider.IndexCount()), 1, 0, 0, 0)
	d.draws++
	return nil
}

// buildBindGroup snapshots the staged values of one group into a fresh bind group.
func (d *wgpuDevice) buildBindGroup(p *wgpuProgram, group uint32) (bind_group_provider.BindGroupProvider, error) {
	provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s Group %d", p.label, group))
	entries := p.refl.Groups()[group]

	var writes []bind_group_provider.BufferWrite
	bgEntries := make([]wgpu.BindGroupEntry, 0, len(entries))
	for _, e := range entries {
		loc := shader.EncodeLocation(group, e.Binding)
		switch {
		case e.Buffer.Type != wgpu.BufferBindingTypeUndefined:
			size := uniformBufferSize(e.Buffer.MinBindingSize)
			buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: fmt.Sprintf("%s Uniform %d/%d", p.label, group, e.Binding),
				Size:  size,
				Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				provider.Release()
				return nil, fmt.Errorf("uniform buffer %d/%d: %w", group, e.Binding, err)
			}
			provider.SetBuffer(int(e.Binding), buf)
			writes = append(writes, bind_group_provider.BufferWrite{
				Provider: provider,
				Binding:  int(e.Binding),
				Data:     padTo(p.uniforms[loc], size),
			})
			bgEntries = append(bgEntries, wgpu.BindGroupEntry{Binding: e.Binding, Buffer: buf, Size: size})
		case e.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			tex := p.textures[loc]
			if tex == nil || tex.View() == nil {
				provider.Release()
				return nil, fmt.Errorf("%w: %s group %d binding %d", ErrUnboundTexture, p.label, group, e.Binding)
			}
			provider.SetTextureView(int(e.Binding), tex.View())
			bgEntries = append(bgEntries, wgpu.BindGroupEntry{Binding: e.Binding, TextureView: tex.View()})
		case e.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			// A sampler pairs with the texture one binding below it.
			tex := p.textures[loc-1]
			if e.Binding == 0 || tex == nil || tex.Sampler() == nil {
				provider.Release()
				return nil, fmt.Errorf("%w: %s sampler group %d binding %d", ErrUnboundTexture, p.label, group, e.Binding)
			}
			provider.SetSampler(int(e.Binding), tex.Sampler())
			bgEntries = append(bgEntries, wgpu.BindGroupEntry{Binding: e.Binding, Sampler: tex.Sampler()})
		}
	}

	bg, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label(),
		Layout:  p.layouts[group],
		Entries: bgEntries,
	})
	if err != nil {
		provider.Release()
		return nil, fmt.Errorf("bind group %d: %w", group, err)
	}
	provider.SetBindGroup(bg)
	d.writeBuffers(writes)
	return provider, nil
}

func (d *wgpuDevice) writeBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		d.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

// uploadMesh returns the GPU copy of mesh, re-uploading when the vertex buffer version or
// index count changed since the last upload.
func (d *wgpuDevice) uploadMesh(mesh model.Mesh) (*meshEntry, error) {
	vb := mesh.VertexBuffer()
	if e, ok := d.meshes[mesh]; ok {
		if e.provider.Version() == vb.Version() && e.provider.IndexCount() == mesh.IndexCount() {
			return e, nil
		}
		e.provider.Release()
		delete(d.meshes, mesh)
	}
	if mesh.IndexCount() == 0 {
		return nil, fmt.Errorf("mesh %q has no indices", mesh.Name())
	}

	provider := bind_group_provider.NewBindGroupProvider(mesh.Name(), bind_group_provider.WithVersion(vb.Version()))
	e := &meshEntry{
		provider: provider,
		slots:    make(map[string]uint32),
		channels: make(map[string]model.Channel),
	}

	newBuffer := func(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
		buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: mesh.Name() + " " + label,
			Size:  uint64(len(data)),
			Usage: usage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, err
		}
		d.queue.WriteBuffer(buf, 0, data)
		return buf, nil
	}

	for i, name := range vb.ChannelNames() {
		c, _ := vb.Channel(name)
		data := channelBytes(c)
		if len(data) == 0 {
			continue
		}
		buf, err := newBuffer(name, wgpu.BufferUsageVertex, data)
		if err != nil {
			provider.Release()
			return nil, fmt.Errorf("vertex buffer %s: %w", name, err)
		}
		provider.SetVertexBuffer(uint32(i), buf)
		e.slots[name] = uint32(i)
		e.channels[name] = c
	}

	buf, err := newBuffer("Indices", wgpu.BufferUsageIndex, common.SliceToBytes(mesh.Indices()))
	if err != nil {
		provider.Release()
		return nil, fmt.Errorf("index buffer: %w", err)
	}
	provider.SetIndexBuffer(buf, mesh.IndexCount())

	d.meshes[mesh] = e
	return e, nil
}

func (d *wgpuDevice) ForgetMesh(mesh model.Mesh) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if e, ok := d.meshes[mesh]; ok {
		e.provider.Release()
		delete(d.meshes, mesh)
	}
}

func (d *wgpuDevice) BeginFrame() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.renderPassDescriptor == nil {
		return ErrSurfaceNotConfigured
	}
	// A held surface texture means the last frame was never presented.
	if d.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := d.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if d.sampleCount > 1 {
		d.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		d.renderPassDescriptor.ColorAttachments[0].View = view
	}

	d.frameEncoder = encoder
	d.framePass = encoder.BeginRenderPass(d.renderPassDescriptor)
	d.frameSurface = surfaceTexture
	d.frameView = view
	d.draws = 0
	return nil
}

func (d *wgpuDevice) EndFrame() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.framePass == nil {
		return ErrNoFrame
	}
	d.framePass.End()
	d.framePass = nil

	defer d.releaseFrameProviders()

	commandBuffer, err := d.frameEncoder.Finish(nil)
	if err != nil {
		d.frameEncoder.Release()
		d.frameView.Release()
		d.frameSurface.Release()
		d.frameEncoder = nil
		d.frameSurface = nil
		d.frameView = nil
		return fmt.Errorf("finish frame: %w", err)
	}

	d.queue.Submit(commandBuffer)
	commandBuffer.Release()
	d.frameEncoder.Release()
	d.frameEncoder = nil

	d.frames++
	d.lastDraws = d.draws
	return nil
}

func (d *wgpuDevice) releaseFrameProviders() {
	for _, p := range d.frameProviders {
		p.Release()
	}
	d.frameProviders = d.frameProviders[:0]
}

func (d *wgpuDevice) Present() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frameSurface == nil {
		return
	}
	d.surface.Present()

	if d.frameView != nil {
		d.frameView.Release()
		d.frameView = nil
	}
	d.frameSurface.Release()
	d.frameSurface = nil
}

func (d *wgpuDevice) CreateTexture(pixels common.TextureStagingData, sampler common.SamplerStagingData) (texture.Texture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if want := int(pixels.Width) * int(pixels.Height) * 4; len(pixels.Pixels) != want {
		return nil, fmt.Errorf("texture data is %d bytes, want %d", len(pixels.Pixels), want)
	}

	extent := wgpu.Extent3D{Width: pixels.Width, Height: pixels.Height, DepthOrArrayLayers: 1}
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Material Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          extent,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	d.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture: tex,
			Aspect:  wgpu.TextureAspectAll,
		},
		pixels.Pixels,
		&wgpu.TextureDataLayout{
			BytesPerRow:  pixels.Width * 4,
			RowsPerImage: pixels.Height,
		},
		&extent,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}

	samp, err := d.device.CreateSampler(samplerDescriptor("Material Sampler", sampler))
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}

	return texture.NewTexture(texture.Target2D,
		texture.WithSize(pixels.Width, pixels.Height),
		texture.WithGPUTexture(tex),
		texture.WithView(view),
		texture.WithSampler(samp),
	), nil
}

func (d *wgpuDevice) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	return Stats{
		Frames:   d.frames,
		Draws:    d.lastDraws,
		Programs: len(d.programs),
		Meshes:   len(d.meshes),
	}
}

func (d *wgpuDevice) Release() {
	d.mu.Lock()
	programs := make([]*wgpuProgram, 0, len(d.programs))
	for _, p := range d.programs {
		programs = append(programs, p)
	}
	d.mu.Unlock()

	// Release order is deterministic for log readability.
	sort.Slice(programs, func(i, j int) bool { return programs[i].id < programs[j].id })
	for _, p := range programs {
		p.Release()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for m, e := range d.meshes {
		e.provider.Release()
		delete(d.meshes, m)
	}
	d.releaseFrameProviders()
	d.releaseAttachments()
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

// releaseAttachments frees the MSAA and depth attachments.
func (d *wgpuDevice) releaseAttachments() {
	if d.msaaTextureView != nil {
		d.msaaTextureView.Release()
		d.msaaTextureView = nil
	}
	if d.msaaTexture != nil {
		d.msaaTexture.Release()
		d.msaaTexture = nil
	}
	if d.depthTextureView != nil {
		d.depthTextureView.Release()
		d.depthTextureView = nil
	}
	if d.depthTexture != nil {
		d.depthTexture.Release()
		d.depthTexture = nil
	}
}

// samplerDescriptor fills the zero fields of s with defaults and builds the descriptor.
func samplerDescriptor(label string, s common.SamplerStagingData) *wgpu.SamplerDescriptor {
	s = s.WithDefaults()
	return &wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  s.AddressModeU,
		AddressModeV:  s.AddressModeV,
		AddressModeW:  s.AddressModeW,
		MagFilter:     s.MagFilter,
		MinFilter:     s.MinFilter,
		MipmapFilter:  s.MipmapFilter,
		LodMinClamp:   s.LodMinClamp,
		LodMaxClamp:   s.LodMaxClamp,
		MaxAnisotropy: s.MaxAnisotropy,
	}
}

// packFloats encodes floats as little-endian bytes, the uniform buffer layout of WGSL.
func packFloats(vs ...float32) []byte {
	out := make([]byte, 0, len(vs)*4)
	for _, v := range vs {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

// uniformBufferSize rounds a reflected binding size up to the uniform allocation granularity.
func uniformBufferSize(size uint64) uint64 {
	if size < uniformAlign {
		return uniformAlign
	}
	return (size + uniformAlign - 1) &^ (uniformAlign - 1)
}

// padTo returns data zero-extended or truncated to exactly size bytes.
func padTo(data []byte, size uint64) []byte {
	out := make([]byte, size)
	copy(out, data)
	return out
}

// channelBytes views the components of a channel as bytes.
func channelBytes(c model.Channel) []byte {
	if c.Type == model.ChannelTypeInt32 {
		return common.SliceToBytes(c.Ints)
	}
	return common.SliceToBytes(c.Floats)
}

// checkAttribute reports whether a channel can feed a shader input.
func checkAttribute(a shader.Attribute, c model.Channel) error {
	if c.Stride != a.Components {
		return fmt.Errorf("channel %s has stride %d, shader reads %d components", a.Name, c.Stride, a.Components)
	}
	if a.Integer != (c.Type == model.ChannelTypeInt32) {
		return fmt.Errorf("channel %s component type does not match shader input", a.Name)
	}
	return nil
}
