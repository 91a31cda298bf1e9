package model

import "fmt"

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithName is an option builder that sets the name of the Mesh.
//
// Parameters:
//   - name: the mesh identifier
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a mesh
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithVertexCount is an option builder that sets the vertex count of a Mesh without
// providing any channel data.
//
// Parameters:
//   - count: the number of vertices
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertex count option to a mesh
func WithVertexCount(count int) MeshBuilderOption {
	return func(m *mesh) {
		m.vertexCount = count
	}
}

// WithPositions is an option builder that sets the a_position channel and derives the
// vertex count from it. Panics if the slice is not a whole number of vec3 positions.
//
// Parameters:
//   - positions: xyz triples, one per vertex
//
// Returns:
//   - MeshBuilderOption: a function that applies the positions option to a mesh
func WithPositions(positions []float32) MeshBuilderOption {
	return func(m *mesh) {
		if err := m.vertexBuffer.SetFloatVec(AttribPosition, positions, 3); err != nil {
			panic(fmt.Sprintf("model: %v", err))
		}
		m.vertexCount = len(positions) / 3
	}
}

// WithTexCoords is an option builder that sets the a_tex_coord channel.
// Panics if the slice is not a whole number of vec2 coordinates.
//
// Parameters:
//   - uvs: uv pairs, one per vertex
//
// Returns:
//   - MeshBuilderOption: a function that applies the texture coordinate option to a mesh
func WithTexCoords(uvs []float32) MeshBuilderOption {
	return func(m *mesh) {
		if err := m.vertexBuffer.SetFloatVec(AttribTexCoord, uvs, 2); err != nil {
			panic(fmt.Sprintf("model: %v", err))
		}
	}
}

// WithIndices is an option builder that sets the triangle index list.
//
// Parameters:
//   - indices: three indices per triangle
//
// Returns:
//   - MeshBuilderOption: a function that applies the indices option to a mesh
func WithIndices(indices []uint32) MeshBuilderOption {
	return func(m *mesh) {
		m.indices = indices
	}
}
