package shader

import (
	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/Carmen-Shannon/oxy-rig/engine/renderer/texture"
)

// Uniform names every variant program template may declare. A variant that does not use
// one of them reports NoLocation for it.
const (
	UniformMVP          = "u_mvp"
	UniformTexture      = "u_texture"
	UniformDiffuseColor = "u_diffuse_color"
	UniformAmbientColor = "u_ambient_color"
	UniformColor        = "u_color"
	UniformOpacity      = "u_opacity"
)

// Program is one compiled and linked GPU program.
type Program interface {
	// ID retrieves the identifier the device assigned to the program.
	//
	// Returns:
	//   - uint32: the program identifier, never 0 for a live program
	ID() uint32

	// UniformLocation retrieves the location of a named uniform or texture.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - int32: the location, or NoLocation if the program does not declare it
	UniformLocation(name string) int32

	// AttribLocation retrieves the location of a named vertex input.
	//
	// Parameters:
	//   - name: the vertex input name
	//
	// Returns:
	//   - int32: the location, or NoLocation if the program does not declare it
	AttribLocation(name string) int32

	// Release frees the GPU objects of the program. Safe to call more than once.
	Release()
}

// Device is the GPU context programs are compiled on and draws are issued to. Uniform
// setters act on the program most recently passed to UseProgram and ignore NoLocation.
// A Device is bound to the rendering thread and is not safe for concurrent use.
type Device interface {
	// CompileProgram compiles and links a program from ordered source snippets per stage.
	//
	// Parameters:
	//   - label: a debug label for the program
	//   - vertex: the vertex stage snippets, in order
	//   - fragment: the fragment stage snippets, in order
	//
	// Returns:
	//   - Program: the compiled program
	//   - error: an error if either stage fails to compile or the program fails to link
	CompileProgram(label string, vertex, fragment []string) (Program, error)

	// UseProgram makes p the target of subsequent uniform and draw calls.
	//
	// Parameters:
	//   - p: the program to use
	UseProgram(p Program)

	// UniformMatrix4 sets a column-major mat4 uniform.
	//
	// Parameters:
	//   - loc: the uniform location
	//   - m: the matrix
	UniformMatrix4(loc int32, m [16]float32)

	// Uniform4f sets a vec4 uniform.
	//
	// Parameters:
	//   - loc: the uniform location
	//   - v: the value
	Uniform4f(loc int32, v [4]float32)

	// Uniform3f sets a vec3 uniform.
	//
	// Parameters:
	//   - loc: the uniform location
	//   - v: the value
	Uniform3f(loc int32, v [3]float32)

	// Uniform1f sets a float uniform.
	//
	// Parameters:
	//   - loc: the uniform location
	//   - v: the value
	Uniform1f(loc int32, v float32)

	// BindTexture binds a texture and its sampler to a texture uniform on a texture unit.
	//
	// Parameters:
	//   - loc: the texture uniform location
	//   - unit: the texture unit
	//   - tex: the texture
	BindTexture(loc int32, unit int, tex texture.Texture)

	// DrawIndexed draws the mesh's indexed triangles with the current program, reading the
	// mesh's current index and vertex buffers.
	//
	// Parameters:
	//   - mesh: the mesh to draw
	//
	// Returns:
	//   - error: an error if the draw could not be issued
	DrawIndexed(mesh model.Mesh) error
}

// RenderData carries what a draw needs beyond the material.
type RenderData interface {
	// Mesh retrieves the mesh to draw.
	//
	// Returns:
	//   - model.Mesh: the mesh
	Mesh() model.Mesh
}

// meshRenderData is the plain RenderData returned by NewRenderData.
type meshRenderData struct {
	mesh model.Mesh
}

// NewRenderData wraps a mesh as RenderData.
//
// Parameters:
//   - mesh: the mesh to draw
//
// Returns:
//   - RenderData: the render data
func NewRenderData(mesh model.Mesh) RenderData {
	return meshRenderData{mesh: mesh}
}

func (r meshRenderData) Mesh() model.Mesh {
	return r.mesh
}
