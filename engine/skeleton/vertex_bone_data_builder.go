package skeleton

// VertexBoneDataBuilderOption is a functional option for configuring a VertexBoneData via NewVertexBoneData.
type VertexBoneDataBuilderOption func(*vertexBoneData)

// WithTolerance is an option builder that overrides the weight-sum magnitude at or below which
// a vertex is left unnormalized. Defaults to WeightTolerance.
//
// Parameters:
//   - tolerance: the new tolerance, must be >= 0
//
// Returns:
//   - VertexBoneDataBuilderOption: a function that applies the tolerance option
func WithTolerance(tolerance float32) VertexBoneDataBuilderOption {
	return func(d *vertexBoneData) {
		if tolerance >= 0 {
			d.tolerance = tolerance
		}
	}
}

// WithBones is an option builder that binds bones at construction, equivalent to calling Bind
// right after NewVertexBoneData.
//
// Parameters:
//   - bones: the bones, in bone id order
//
// Returns:
//   - VertexBoneDataBuilderOption: a function that applies the bones option
func WithBones(bones []*Bone) VertexBoneDataBuilderOption {
	return func(d *vertexBoneData) {
		d.Bind(bones)
	}
}
