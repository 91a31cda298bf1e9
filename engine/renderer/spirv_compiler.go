package renderer

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/texture"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic uint32 = 0x07230203

// spirvProgram is a program compiled to SPIR-V without a GPU.
type spirvProgram struct {
	id       uint32
	label    string
	refl     shader.Reflection
	vertex   []byte
	fragment []byte
}

// SPIRVProgram is a Program whose stages were compiled to SPIR-V binaries.
type SPIRVProgram interface {
	shader.Program

	// Label retrieves the label the program was compiled with.
	//
	// Returns:
	//   - string: the label
	Label() string

	// VertexSPIRV retrieves the little-endian SPIR-V of the vertex stage.
	//
	// Returns:
	//   - []byte: the module bytes
	VertexSPIRV() []byte

	// FragmentSPIRV retrieves the little-endian SPIR-V of the fragment stage.
	//
	// Returns:
	//   - []byte: the module bytes
	FragmentSPIRV() []byte
}

var _ SPIRVProgram = &spirvProgram{}

func (p *spirvProgram) ID() uint32 {
	return p.id
}

func (p *spirvProgram) Label() string {
	return p.label
}

func (p *spirvProgram) UniformLocation(name string) int32 {
	return p.refl.UniformLocation(name)
}

func (p *spirvProgram) AttribLocation(name string) int32 {
	return p.refl.AttribLocation(name)
}

func (p *spirvProgram) VertexSPIRV() []byte {
	return p.vertex
}

func (p *spirvProgram) FragmentSPIRV() []byte {
	return p.fragment
}

func (p *spirvProgram) Release() {
	p.vertex = nil
	p.fragment = nil
}

// spirvCompiler is the implementation of the SPIRVCompiler interface.
type spirvCompiler struct {
	nextID   uint32
	programs []SPIRVProgram
}

// SPIRVCompiler is a headless shader.Device. It compiles programs to SPIR-V for offline
// validation; uniform and texture calls are ignored and DrawIndexed returns ErrHeadless.
type SPIRVCompiler interface {
	shader.Device

	// Programs retrieves every program compiled so far, in compile order.
	//
	// Returns:
	//   - []SPIRVProgram: the programs
	Programs() []SPIRVProgram
}

var _ SPIRVCompiler = &spirvCompiler{}

// NewSPIRVCompiler creates a headless compiler.
//
// Returns:
//   - SPIRVCompiler: the compiler
func NewSPIRVCompiler() SPIRVCompiler {
	return &spirvCompiler{}
}

func (c *spirvCompiler) CompileProgram(label string, vertex, fragment []string) (shader.Program, error) {
	vs, err := shader.Preprocess(vertex...)
	if err != nil {
		return nil, fmt.Errorf("vertex stage: %w", err)
	}
	fs, err := shader.Preprocess(fragment...)
	if err != nil {
		return nil, fmt.Errorf("fragment stage: %w", err)
	}

	vsBin, err := compileSPIRV(vs)
	if err != nil {
		return nil, fmt.Errorf("%s: vertex stage: %w", label, err)
	}
	fsBin, err := compileSPIRV(fs)
	if err != nil {
		return nil, fmt.Errorf("%s: fragment stage: %w", label, err)
	}

	c.nextID++
	p := &spirvProgram{
		id:       c.nextID,
		label:    label,
		refl:     shader.Reflect(vs, wgpu.ShaderStageVertex).Merge(shader.Reflect(fs, wgpu.ShaderStageFragment)),
		vertex:   vsBin,
		fragment: fsBin,
	}
	c.programs = append(c.programs, p)
	log.Printf("[Renderer] %s: %d + %d bytes of SPIR-V", label, len(vsBin), len(fsBin))
	return p, nil
}

// compileSPIRV runs naga over one stage and checks the module header.
func compileSPIRV(wgsl string) ([]byte, error) {
	bin, err := naga.Compile(wgsl)
	if err != nil {
		return nil, err
	}
	if len(bin) < 4 || len(bin)%4 != 0 || binary.LittleEndian.Uint32(bin) != SPIRVMagic {
		return nil, fmt.Errorf("compiler returned %d bytes that are not a SPIR-V module", len(bin))
	}
	return bin, nil
}

func (c *spirvCompiler) Programs() []SPIRVProgram {
	return c.programs
}

func (c *spirvCompiler) UseProgram(shader.Program)               {}
func (c *spirvCompiler) UniformMatrix4(int32, [16]float32)       {}
func (c *spirvCompiler) Uniform4f(int32, [4]float32)             {}
func (c *spirvCompiler) Uniform3f(int32, [3]float32)             {}
func (c *spirvCompiler) Uniform1f(int32, float32)                {}
func (c *spirvCompiler) BindTexture(int32, int, texture.Texture) {}

func (c *spirvCompiler) DrawIndexed(model.Mesh) error {
	return ErrHeadless
}
