package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// NoLocation is the location reported for a uniform or attribute the program does not declare.
const NoLocation int32 = -1

// wgslVertexFormatMap maps WGSL vertex input types to their wgpu vertex format.
var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4, 1, false},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8, 2, false},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8, 2, false},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12, 3, false},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12, 3, false},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16, 4, false},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16, 4, false},
	"i32":       {wgpu.VertexFormatSint32, 4, 1, true},
	"vec2i":     {wgpu.VertexFormatSint32x2, 8, 2, true},
	"vec2<i32>": {wgpu.VertexFormatSint32x2, 8, 2, true},
	"vec3i":     {wgpu.VertexFormatSint32x3, 12, 3, true},
	"vec3<i32>": {wgpu.VertexFormatSint32x3, 12, 3, true},
	"vec4i":     {wgpu.VertexFormatSint32x4, 16, 4, true},
	"vec4<i32>": {wgpu.VertexFormatSint32x4, 16, 4, true},
}

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex matches @location(N) attributes
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// builtinRegex matches @builtin(...) attributes
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct field: optional attributes, name, colon, type.
	fieldRegex = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)

	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, optional address space, name and type of
	// declarations like "@group(0) @binding(0) var<uniform> u_mvp: mat4x4<f32>;".
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// EncodeLocation packs a bind group index and binding index into a single location value,
// the form uniform locations take in a Program.
//
// Parameters:
//   - group: the bind group index, below 1<<15
//   - binding: the binding index, below 1<<16
//
// Returns:
//   - int32: the packed location
func EncodeLocation(group, binding uint32) int32 {
	return int32(group<<16 | binding&0xffff)
}

// DecodeLocation splits a location produced by EncodeLocation.
//
// Parameters:
//   - loc: the packed location
//
// Returns:
//   - uint32: the bind group index
//   - uint32: the binding index
//   - bool: false for NoLocation or any other negative value
func DecodeLocation(loc int32) (uint32, uint32, bool) {
	if loc < 0 {
		return 0, 0, false
	}
	return uint32(loc) >> 16, uint32(loc) & 0xffff, true
}

// Reflect recovers the bind group declarations, vertex inputs and entry points of a
// preprocessed WGSL source. Bindings get the given stage visibility; merge the reflections of
// both stages with Merge.
//
// Parameters:
//   - source: preprocessed WGSL source
//   - visibility: the shader stage the source is compiled for
//
// Returns:
//   - Reflection: the recovered interface
func Reflect(source string, visibility wgpu.ShaderStage) Reflection {
	cleaned := stripComments(source)
	structs := parseStructBlocks(cleaned)

	r := Reflection{
		Bindings:      parseBindings(cleaned, structs, visibility),
		Attributes:    make(map[string]Attribute),
		VertexEntry:   firstSubmatch(vertexEntryRegex, cleaned),
		FragmentEntry: firstSubmatch(fragmentEntryRegex, cleaned),
	}

	if r.VertexEntry != "" {
		for _, ps := range structs {
			if !isVertexInputStruct(ps) {
				continue
			}
			for _, f := range ps.fields {
				info, ok := wgslVertexFormatMap[f.typeName]
				if !ok || f.location < 0 {
					continue
				}
				r.Attributes[f.name] = Attribute{
					Name:       f.name,
					Location:   uint32(f.location),
					Format:     info.format,
					Size:       info.size,
					Components: info.components,
					Integer:    info.integer,
				}
			}
		}
	}

	return r
}

// Merge combines the reflection of another stage of the same program. Bindings declared by
// both stages have their visibility flags combined.
//
// Parameters:
//   - o: the reflection of the other stage
//
// Returns:
//   - Reflection: the combined reflection
func (r Reflection) Merge(o Reflection) Reflection {
	out := Reflection{
		Bindings:      make(map[string]Binding, len(r.Bindings)+len(o.Bindings)),
		Attributes:    make(map[string]Attribute, len(r.Attributes)+len(o.Attributes)),
		VertexEntry:   r.VertexEntry,
		FragmentEntry: r.FragmentEntry,
	}
	if out.VertexEntry == "" {
		out.VertexEntry = o.VertexEntry
	}
	if out.FragmentEntry == "" {
		out.FragmentEntry = o.FragmentEntry
	}
	for name, b := range r.Bindings {
		out.Bindings[name] = b
	}
	for name, b := range o.Bindings {
		if prev, ok := out.Bindings[name]; ok {
			prev.Entry.Visibility |= b.Entry.Visibility
			out.Bindings[name] = prev
			continue
		}
		out.Bindings[name] = b
	}
	for name, a := range r.Attributes {
		out.Attributes[name] = a
	}
	for name, a := range o.Attributes {
		out.Attributes[name] = a
	}
	return out
}

// UniformLocation returns the packed location of a named binding.
//
// Parameters:
//   - name: the WGSL variable name
//
// Returns:
//   - int32: the location, or NoLocation if the program does not declare it
func (r Reflection) UniformLocation(name string) int32 {
	if b, ok := r.Bindings[name]; ok {
		return b.Location
	}
	return NoLocation
}

// AttribLocation returns the @location index of a named vertex input.
//
// Parameters:
//   - name: the vertex input name
//
// Returns:
//   - int32: the location, or NoLocation if the program does not declare it
func (r Reflection) AttribLocation(name string) int32 {
	if a, ok := r.Attributes[name]; ok {
		return int32(a.Location)
	}
	return NoLocation
}

// Groups returns the bind group layout entries per group index, each sorted by binding.
//
// Returns:
//   - map[uint32][]wgpu.BindGroupLayoutEntry: entries keyed by group index
func (r Reflection) Groups() map[uint32][]wgpu.BindGroupLayoutEntry {
	groups := make(map[uint32][]wgpu.BindGroupLayoutEntry)
	for _, b := range r.Bindings {
		groups[b.Group] = append(groups[b.Group], b.Entry)
	}
	for g := range groups {
		entries := groups[g]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
	}
	return groups
}

// SortedAttributes returns the vertex inputs ordered by location.
//
// Returns:
//   - []Attribute: the vertex inputs
func (r Reflection) SortedAttributes() []Attribute {
	attrs := make([]Attribute, 0, len(r.Attributes))
	for _, a := range r.Attributes {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Location < attrs[j].Location
	})
	return attrs
}

// parseBindings extracts every @group(N) @binding(M) declaration of the cleaned source.
func parseBindings(cleaned string, structs []parsedStruct, visibility wgpu.ShaderStage) map[string]Binding {
	structSizes := computeStructSizes(structs)
	out := make(map[string]Binding)

	for _, match := range bindGroupDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.ParseUint(match[1], 10, 32)
		binding, _ := strconv.ParseUint(match[2], 10, 32)
		addressSpace := strings.TrimSpace(match[3])
		name := strings.TrimSpace(match[4])
		typeName := strings.TrimSpace(match[5])

		b := Binding{
			Name:     name,
			Location: EncodeLocation(uint32(group), uint32(binding)),
			Group:    uint32(group),
			Binding:  uint32(binding),
			TypeName: typeName,
			Entry:    classifyResource(uint32(binding), visibility, addressSpace, typeName),
		}
		if b.Entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if layout, ok := resolveTypeLayout(typeName, structSizes); ok {
				b.Size = layout.size
				b.Entry.Buffer.MinBindingSize = layout.size
			}
		}
		out[name] = b
	}

	return out
}

func firstSubmatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// parseStructBlocks finds all struct blocks in comment-free WGSL source.
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))
	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}
	return structs
}

// parseStructFields parses a struct body into fields with their @location and @builtin
// attributes. Fields without @location get location -1.
func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field := parsedField{location: -1}
		field.isBuiltin = builtinRegex.MatchString(line)
		if m := locationRegex.FindStringSubmatch(line); m != nil {
			if loc, err := strconv.Atoi(m[1]); err == nil {
				field.location = loc
			}
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		field.name = fm[1]
		field.typeName = strings.TrimSpace(fm[2])
		fields = append(fields, field)
	}

	return fields
}

// isVertexInputStruct reports whether a struct has @location fields and no @builtin fields,
// which separates vertex inputs from inter-stage outputs carrying @builtin(position).
func isVertexInputStruct(ps parsedStruct) bool {
	hasLocation := false
	for _, f := range ps.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}
