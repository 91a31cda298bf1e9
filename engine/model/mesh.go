package model

// Standard attribute channel names shared by meshes and shader templates.
const (
	// AttribPosition is the vec3 position channel.
	AttribPosition = "a_position"

	// AttribTexCoord is the vec2 texture coordinate channel.
	AttribTexCoord = "a_tex_coord"

	// AttribBoneWeights is the per-vertex bone weight channel written by the skeleton package.
	AttribBoneWeights = "a_bone_weights"

	// AttribBoneIndices is the per-vertex bone index channel written by the skeleton package.
	AttribBoneIndices = "a_bone_indices"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name         string
	vertexCount  int
	indices      []uint32
	vertexBuffer VertexBuffer
}

// Mesh defines the interface for an indexed triangle mesh. The mesh owns a VertexBuffer of
// named attribute channels that other components (e.g. bone weight storage) write into.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// VertexCount returns the number of vertices in the mesh.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// Indices returns the triangle index list.
	//
	// Returns:
	//   - []uint32: indices, three per triangle
	Indices() []uint32

	// IndexCount returns the number of indices, used for indexed draw calls.
	//
	// Returns:
	//   - int: len(Indices())
	IndexCount() int

	// VertexBuffer returns the named-channel vertex buffer of this mesh.
	//
	// Returns:
	//   - VertexBuffer: the vertex buffer, never nil
	VertexBuffer() VertexBuffer

	// SetIndices replaces the triangle index list.
	//
	// Parameters:
	//   - indices: the new index list
	SetIndices(indices []uint32)
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh configured with the provided options. The vertex count is taken
// from WithVertexCount, or from the position channel when WithPositions is used.
//
// Parameters:
//   - options: variadic list of MeshBuilderOption functions to configure the mesh
//
// Returns:
//   - Mesh: a new Mesh instance
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &mesh{
		vertexBuffer: NewVertexBuffer(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) VertexCount() int {
	return m.vertexCount
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) IndexCount() int {
	return len(m.indices)
}

func (m *mesh) VertexBuffer() VertexBuffer {
	return m.vertexBuffer
}

func (m *mesh) SetIndices(indices []uint32) {
	m.indices = indices
}
