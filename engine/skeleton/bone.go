package skeleton

import "github.com/Carmen-Shannon/oxy-rig/common"

// Transform represents a decomposed transform for animation interpolation.
type Transform struct {
	// Translation is the position offset.
	Translation [3]float32

	// Rotation is the orientation as a quaternion (x, y, z, w).
	Rotation [4]float32

	// Scale is the scale factor along each axis.
	Scale [3]float32
}

// IdentityTransform returns a transform with no translation, no rotation and unit scale.
//
// Returns:
//   - Transform: the identity transform
func IdentityTransform() Transform {
	return Transform{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
}

// Matrix composes the transform as T * R * S in column-major order.
//
// Returns:
//   - common.Mat4: the composed matrix
func (t Transform) Matrix() common.Mat4 {
	x, y, z, w := t.Rotation[0], t.Rotation[1], t.Rotation[2], t.Rotation[3]
	sx, sy, sz := t.Scale[0], t.Scale[1], t.Scale[2]

	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return common.Mat4{
		(1 - 2*(yy+zz)) * sx, 2 * (xy + wz) * sx, 2 * (xz - wy) * sx, 0,
		2 * (xy - wz) * sy, (1 - 2*(xx+zz)) * sy, 2 * (yz + wx) * sy, 0,
		2 * (xz + wy) * sz, 2 * (yz - wx) * sz, (1 - 2*(xx+yy)) * sz, 0,
		t.Translation[0], t.Translation[1], t.Translation[2], 1,
	}
}

// Bone represents a single bone in a skeleton hierarchy. A bone does not own its final
// transform: the VertexBoneData it is bound to hands it a MatrixHandle, and animation code
// writes the pose through that handle.
type Bone struct {
	// Name is the bone's identifier (for debugging and animation targeting).
	Name string

	// ParentIndex is the index of the parent bone (-1 for root bones).
	ParentIndex int32

	// InverseBindMatrix transforms from model space to bone space at bind pose.
	InverseBindMatrix common.Mat4

	// LocalTransform is the bone's transform relative to its parent.
	LocalTransform Transform

	finalTransform MatrixHandle
}

// NewBone creates a root bone with an identity bind pose.
//
// Parameters:
//   - name: the bone identifier
//
// Returns:
//   - *Bone: the new bone
func NewBone(name string) *Bone {
	return &Bone{
		Name:              name,
		ParentIndex:       -1,
		InverseBindMatrix: common.Identity4(),
		LocalTransform:    IdentityTransform(),
	}
}

// SetFinalTransform stores the handle to this bone's final transform slot.
//
// Parameters:
//   - h: the handle issued by the owning matrix table
func (b *Bone) SetFinalTransform(h MatrixHandle) {
	b.finalTransform = h
}

// FinalTransformHandle returns the handle last given to this bone.
//
// Returns:
//   - MatrixHandle: the handle, possibly stale
func (b *Bone) FinalTransformHandle() MatrixHandle {
	return b.finalTransform
}

// FinalTransform reads the bone's final transform through its handle.
//
// Returns:
//   - common.Mat4: the matrix
//   - bool: false if the bone is unbound or its handle is stale
func (b *Bone) FinalTransform() (common.Mat4, bool) {
	return b.finalTransform.Get()
}

// WriteFinalTransform writes the bone's final transform through its handle.
//
// Parameters:
//   - m: the final transform
//
// Returns:
//   - bool: false if the bone is unbound or its handle is stale
func (b *Bone) WriteFinalTransform(m common.Mat4) bool {
	return b.finalTransform.Set(m)
}
