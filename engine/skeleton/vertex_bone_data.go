// Package skeleton holds per-vertex skinning data for meshes: which bones influence each
// vertex, with what weight, and the bone matrix table animation code writes into.
package skeleton

import (
	"fmt"
	"log"
	"slices"

	"github.com/Carmen-Shannon/oxy-rig/engine/model"
	"github.com/chewxy/math32"
)

const (
	// BonesPerVertex is the number of (bone id, weight) slots available per vertex.
	BonesPerVertex = 4

	// MaxBones is the exclusive upper bound on bone ids.
	MaxBones = 60

	// WeightTolerance is the weight-sum magnitude at or below which a vertex is treated as
	// unrigged and left unnormalized.
	WeightTolerance float32 = 1e-6

	// NoSlot is returned by FreeBoneSlot when no slot is available or the vertex id is invalid.
	NoSlot = -1
)

// vertexBoneData is the implementation of the VertexBoneData interface.
type vertexBoneData struct {
	mesh      model.Mesh
	bones     []*Bone
	matrices  *MatrixTable
	tolerance float32

	// ids and weights hold BonesPerVertex entries per vertex.
	ids     []int32
	weights []float32
	// assigned has one bit per slot, set once a bone id has been written to it.
	assigned []uint8
}

// VertexBoneData defines the interface for the bone influence data of a single mesh.
//
// Usage pattern:
//  1. An importer calls Bind with the skeleton's bones
//  2. For every (vertex, bone, weight) influence it calls FreeBoneSlot then SetVertexBoneWeight
//  3. NormalizeAndUpload is called once to finalize weights into the mesh's vertex buffer
//  4. Animation code writes bone poses through each Bone's final transform handle
type VertexBoneData interface {
	// Mesh returns the mesh this data is bound to.
	//
	// Returns:
	//   - model.Mesh: the mesh
	Mesh() model.Mesh

	// Bind replaces the active bone set. The matrix table is resized to len(bones) and each
	// bone receives a handle to its slot; handles from earlier binds become stale. When bones
	// is non-empty the per-vertex storage is reset to the mesh's current vertex count,
	// discarding all previous weight assignments. An empty bone list leaves per-vertex
	// storage as it was. The slice is copied; a nil entry panics before any state changes.
	//
	// Parameters:
	//   - bones: the bones, in bone id order
	Bind(bones []*Bone)

	// Bones returns the active bone set.
	//
	// Returns:
	//   - []*Bone: the bones passed to the last Bind
	Bones() []*Bone

	// BoneCount returns the number of active bones.
	//
	// Returns:
	//   - int: len(Bones())
	BoneCount() int

	// VertexCount returns the number of vertices in the per-vertex storage.
	//
	// Returns:
	//   - int: the per-vertex table length
	VertexCount() int

	// BoneMatrices returns the bone matrix table, index-aligned with Bones.
	//
	// Returns:
	//   - *MatrixTable: the table
	BoneMatrices() *MatrixTable

	// FreeBoneSlot finds the lowest slot of a vertex that has no bone id assigned.
	// An invalid vertex id is logged and reported as NoSlot without changing any state.
	//
	// Parameters:
	//   - vertexID: the vertex to query
	//
	// Returns:
	//   - int: the slot index, or NoSlot if all slots are taken or vertexID is invalid
	FreeBoneSlot(vertexID int) int

	// SetVertexBoneWeight writes one bone influence into a vertex slot.
	// Panics if slot is outside [0, BonesPerVertex), boneID is outside [0, MaxBones) or
	// vertexID is outside the per-vertex storage; nothing is written in that case.
	//
	// Parameters:
	//   - vertexID: the vertex to write
	//   - slot: the slot within the vertex
	//   - boneID: the influencing bone
	//   - weight: the raw, not yet normalized, weight
	SetVertexBoneWeight(vertexID, slot, boneID int, weight float32)

	// VertexWeights returns the weights of a vertex. Out of range ids yield zeros.
	//
	// Parameters:
	//   - vertexID: the vertex to read
	//
	// Returns:
	//   - [BonesPerVertex]float32: the weights in slot order
	VertexWeights(vertexID int) [BonesPerVertex]float32

	// VertexBoneIDs returns the bone ids of a vertex. Out of range ids yield zeros.
	//
	// Parameters:
	//   - vertexID: the vertex to read
	//
	// Returns:
	//   - [BonesPerVertex]int32: the bone ids in slot order
	VertexBoneIDs(vertexID int) [BonesPerVertex]int32

	// NormalizeWeights scales every vertex's weights to sum to 1.0. Vertices whose weight sum
	// magnitude is within the tolerance are left untouched. Does nothing when no bones are bound.
	NormalizeWeights()

	// NormalizeAndUpload normalizes all weights and writes them, with the bone ids, into the
	// mesh's "a_bone_weights" float channel and "a_bone_indices" int channel, both with a
	// stride of BonesPerVertex. Does nothing when no bones are bound; skips the upload when
	// there are no vertices.
	//
	// Returns:
	//   - error: an error if the vertex buffer rejects a channel
	NormalizeAndUpload() error
}

var _ VertexBoneData = &vertexBoneData{}

// NewVertexBoneData creates bone influence storage bound to mesh, with no bones.
//
// Parameters:
//   - mesh: the mesh whose vertices carry the influences
//   - options: variadic list of VertexBoneDataBuilderOption functions
//
// Returns:
//   - VertexBoneData: the new store
func NewVertexBoneData(mesh model.Mesh, options ...VertexBoneDataBuilderOption) VertexBoneData {
	if mesh == nil {
		panic("skeleton: VertexBoneData requires a mesh")
	}
	d := &vertexBoneData{
		mesh:      mesh,
		matrices:  NewMatrixTable(0),
		tolerance: WeightTolerance,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *vertexBoneData) Mesh() model.Mesh {
	return d.mesh
}

func (d *vertexBoneData) Bind(bones []*Bone) {
	for i, b := range bones {
		if b == nil {
			panic(fmt.Sprintf("skeleton: nil bone %d", i))
		}
	}
	d.bones = slices.Clone(bones)
	d.matrices.Reset(len(bones))

	if len(bones) == 0 {
		return
	}

	n := d.mesh.VertexCount()
	d.ids = make([]int32, n*BonesPerVertex)
	d.weights = make([]float32, n*BonesPerVertex)
	d.assigned = make([]uint8, n)

	for i, b := range d.bones {
		b.SetFinalTransform(d.matrices.Handle(i))
	}
}

func (d *vertexBoneData) Bones() []*Bone {
	return d.bones
}

func (d *vertexBoneData) BoneCount() int {
	return len(d.bones)
}

func (d *vertexBoneData) VertexCount() int {
	return len(d.assigned)
}

func (d *vertexBoneData) BoneMatrices() *MatrixTable {
	return d.matrices
}

func (d *vertexBoneData) FreeBoneSlot(vertexID int) int {
	if vertexID < 0 || vertexID >= len(d.assigned) {
		log.Printf("[Skeleton] bad vertex id %d, table holds %d vertices (mesh has %d)", vertexID, len(d.assigned), d.mesh.VertexCount())
		return NoSlot
	}
	mask := d.assigned[vertexID]
	for slot := 0; slot < BonesPerVertex; slot++ {
		if mask&(1<<slot) == 0 {
			return slot
		}
	}
	return NoSlot
}

func (d *vertexBoneData) SetVertexBoneWeight(vertexID, slot, boneID int, weight float32) {
	if slot < 0 || slot >= BonesPerVertex {
		panic(fmt.Sprintf("skeleton: index out of bounds; bone slot: %d", slot))
	}
	if boneID < 0 || boneID >= MaxBones {
		panic(fmt.Sprintf("skeleton: index out of bounds; bone id: %d", boneID))
	}
	if vertexID < 0 || vertexID >= len(d.assigned) {
		panic(fmt.Sprintf("skeleton: index out of bounds; vertex id: %d", vertexID))
	}

	i := vertexID*BonesPerVertex + slot
	d.ids[i] = int32(boneID)
	d.weights[i] = weight
	d.assigned[vertexID] |= 1 << slot
}

func (d *vertexBoneData) VertexWeights(vertexID int) [BonesPerVertex]float32 {
	var out [BonesPerVertex]float32
	if vertexID < 0 || vertexID >= len(d.assigned) {
		return out
	}
	copy(out[:], d.weights[vertexID*BonesPerVertex:])
	return out
}

func (d *vertexBoneData) VertexBoneIDs(vertexID int) [BonesPerVertex]int32 {
	var out [BonesPerVertex]int32
	if vertexID < 0 || vertexID >= len(d.assigned) {
		return out
	}
	copy(out[:], d.ids[vertexID*BonesPerVertex:])
	return out
}

func (d *vertexBoneData) NormalizeWeights() {
	if len(d.bones) == 0 {
		return
	}
	for v := range d.assigned {
		w := d.weights[v*BonesPerVertex : (v+1)*BonesPerVertex]
		var sum float32
		for _, x := range w {
			sum += x
		}
		if math32.Abs(sum) <= d.tolerance {
			continue
		}
		for j := range w {
			w[j] /= sum
		}
	}
}

func (d *vertexBoneData) NormalizeAndUpload() error {
	if len(d.bones) == 0 {
		return nil
	}
	d.NormalizeWeights()

	if len(d.assigned) == 0 {
		return nil
	}
	vb := d.mesh.VertexBuffer()
	if err := vb.SetFloatVec(model.AttribBoneWeights, d.weights, BonesPerVertex); err != nil {
		return fmt.Errorf("failed to upload bone weights for mesh %q: %w", d.mesh.Name(), err)
	}
	if err := vb.SetIntVec(model.AttribBoneIndices, d.ids, BonesPerVertex); err != nil {
		return fmt.Errorf("failed to upload bone indices for mesh %q: %w", d.mesh.Name(), err)
	}
	return nil
}
