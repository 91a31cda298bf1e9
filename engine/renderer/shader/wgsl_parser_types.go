package shader

import "github.com/cogentcore/webgpu/wgpu"

// vertexFormatInfo holds the wgpu vertex format of an attribute type and its component layout.
type vertexFormatInfo struct {
	format     wgpu.VertexFormat
	size       uint64
	components int
	integer    bool
}

// wgslTypeLayout holds the byte size and alignment of a WGSL type in host-shareable memory.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

// parsedField is one member of a WGSL struct.
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct is a WGSL struct block.
type parsedStruct struct {
	name   string
	fields []parsedField
}

// Binding describes one @group/@binding resource declared by a shader.
type Binding struct {
	// Name is the WGSL variable name, e.g. "u_mvp".
	Name string

	// Location packs Group and Binding, see EncodeLocation.
	Location int32

	// Group is the bind group index.
	Group uint32

	// Binding is the binding index within the group.
	Binding uint32

	// TypeName is the declared WGSL type.
	TypeName string

	// Size is the byte size of a uniform buffer binding, 0 for textures and samplers.
	Size uint64

	// Entry is the layout entry for creating the bind group layout.
	Entry wgpu.BindGroupLayoutEntry
}

// Attribute describes one vertex shader input.
type Attribute struct {
	// Name is the input field name, which is also the vertex buffer channel it reads.
	Name string

	// Location is the @location index.
	Location uint32

	// Format is the vertex format of the input.
	Format wgpu.VertexFormat

	// Size is the byte size of one element.
	Size uint64

	// Components is the number of scalar components per vertex.
	Components int

	// Integer reports whether the input reads integer data.
	Integer bool
}

// Reflection is the resource interface of a shader program recovered from its WGSL source.
type Reflection struct {
	// Bindings maps variable names to their bind group declarations.
	Bindings map[string]Binding

	// Attributes maps vertex input names to their locations and formats.
	Attributes map[string]Attribute

	// VertexEntry is the name of the @vertex function, if any.
	VertexEntry string

	// FragmentEntry is the name of the @fragment function, if any.
	FragmentEntry string
}
